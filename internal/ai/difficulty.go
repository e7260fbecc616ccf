package ai

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/config"
)

// DifficultyManager post-processes evaluator output according to a named
// profile: wild-card conservation filter, then disruption filter, then a
// possible randomized substitution of the final selection. All rolls use
// the injected random source, so a fixed seed reproduces every decision.
type DifficultyManager struct {
	name     string
	profile  config.Difficulty
	rand     *rand.Rand
	selector Selector
	log      logrus.FieldLogger
}

// NewDifficultyManager binds a profile to the shared random source.
func NewDifficultyManager(name string, profile config.Difficulty, r *rand.Rand, sel Selector, log logrus.FieldLogger) *DifficultyManager {
	return &DifficultyManager{name: name, profile: profile, rand: r, selector: sel, log: log}
}

// Name is the profile name the manager was built from.
func (m *DifficultyManager) Name() string { return m.name }

// FilterPlays applies wild-card conservation and disruption aggression.
// Neither filter may empty the candidate set; a filter that would leave
// nothing to play is abandoned for that decision.
func (m *DifficultyManager) FilterPlays(cands []*PlayCandidate) []*PlayCandidate {
	out := cands
	if m.rand.Float64() < m.profile.WildCardConservation {
		if kept := withoutWilds(out); len(kept) > 0 {
			if len(kept) < len(out) {
				m.log.Debugf("difficulty %s: holding wild cards back this turn", m.name)
			}
			out = kept
		}
	}
	if m.rand.Float64() >= m.profile.DisruptionAggression {
		if kept := withoutBlocking(out); len(kept) > 0 {
			if len(kept) < len(out) {
				m.log.Debugf("difficulty %s: passing on disruption this turn", m.name)
			}
			out = kept
		}
	}
	return out
}

// FilterMoves drops cascade candidates when the profile disables cascade
// optimization.
func (m *DifficultyManager) FilterMoves(cands []*MoveCandidate) []*MoveCandidate {
	if m.profile.CascadeOptimization {
		return cands
	}
	out := cands[:0:0]
	for _, c := range cands {
		if c.Category != MoveCascade {
			out = append(out, c)
		}
	}
	return out
}

// ChoosePlay selects from a best-first ranked list, occasionally taking a
// top-three candidate instead of the true best.
func (m *DifficultyManager) ChoosePlay(ranked []*PlayCandidate) *PlayCandidate {
	if len(ranked) == 0 {
		return nil
	}
	if idx := m.mistakeIndex(len(ranked)); idx > 0 {
		m.log.Debugf("difficulty %s: taking candidate %d instead of the best", m.name, idx)
		return ranked[idx]
	}
	return ranked[0]
}

// ChooseMove mirrors ChoosePlay for move candidates.
func (m *DifficultyManager) ChooseMove(ranked []*MoveCandidate) *MoveCandidate {
	if len(ranked) == 0 {
		return nil
	}
	if idx := m.mistakeIndex(len(ranked)); idx > 0 {
		m.log.Debugf("difficulty %s: taking move %d instead of the best", m.name, idx)
		return ranked[idx]
	}
	return ranked[0]
}

func (m *DifficultyManager) mistakeIndex(n int) int {
	if n < 2 || m.rand.Float64() >= m.profile.MistakeRate {
		return 0
	}
	top := 3
	if n < top {
		top = n
	}
	return m.selector.Pick(top)
}

func withoutWilds(cands []*PlayCandidate) []*PlayCandidate {
	out := cands[:0:0]
	for _, c := range cands {
		if !c.Card.IsWild() {
			out = append(out, c)
		}
	}
	return out
}

func withoutBlocking(cands []*PlayCandidate) []*PlayCandidate {
	out := cands[:0:0]
	for _, c := range cands {
		if c.Category != CategoryBlocking {
			out = append(out, c)
		}
	}
	return out
}
