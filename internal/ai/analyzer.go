package ai

import (
	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
)

// GamePhase buckets how far the game has progressed, derived from the
// cards left to draw.
type GamePhase int

const (
	PhaseEarly GamePhase = iota
	PhaseMid
	PhaseLate
)

func (p GamePhase) String() string {
	return []string{"early", "mid", "late"}[p]
}

// ThreatLevel grades how close the opponent is to completing a character.
type ThreatLevel int

const (
	ThreatLow ThreatLevel = iota
	ThreatMedium
	ThreatHigh
)

func (t ThreatLevel) String() string {
	return []string{"low", "medium", "high"}[t]
}

// Urgency grades a disruption opportunity.
type Urgency int

const (
	UrgencyMinor Urgency = iota
	UrgencyImportant
	UrgencyCritical
)

func (u Urgency) String() string {
	return []string{"minor", "important", "critical"}[u]
}

// CompletionOpportunity marks an own stack one held card away from
// completing a character.
type CompletionOpportunity struct {
	Character engine.Character
	StackID   int
	Pile      engine.BodyPart
}

// DisruptionOpportunity marks an opponent pile whose visible card is
// carrying their progress; covering or relocating it delays them.
type DisruptionOpportunity struct {
	Character engine.Character
	StackID   int
	Pile      engine.BodyPart
	Urgency   Urgency
}

// Position bundles the raw state one decision is made from. The driver
// assembles it from facade queries; nothing here aliases engine-owned
// memory.
type Position struct {
	Hand          []*engine.Card
	Own           []engine.StackView
	Opp           []engine.StackView
	OwnScore      int
	OppScore      int
	WinningScore  int
	DeckRemaining int
}

// Analysis is the snapshot the evaluators score against. It is recomputed
// from scratch at every decision point; stacks and hands mutate on every
// action, so nothing is worth caching.
type Analysis struct {
	Phase        GamePhase
	Threat       ThreatLevel
	SelfProgress map[engine.Character]int
	OppProgress  map[engine.Character]int
	Completions  []CompletionOpportunity
	Disruptions  []DisruptionOpportunity
	WildsInHand  int
}

// Analyze derives a fresh snapshot from the position.
func Analyze(pos Position) *Analysis {
	a := &Analysis{
		Phase:        phaseOf(pos.DeckRemaining),
		SelfProgress: bestProgress(pos.Own),
		OppProgress:  bestProgress(pos.Opp),
	}
	for _, c := range pos.Hand {
		if c.IsWild() {
			a.WildsInHand++
		}
	}
	a.Completions = findCompletions(pos)
	a.Disruptions = findDisruptions(pos)
	a.Threat = threatOf(pos, a)
	return a
}

func phaseOf(deckRemaining int) GamePhase {
	switch {
	case deckRemaining >= 27:
		return PhaseEarly
	case deckRemaining >= 12:
		return PhaseMid
	default:
		return PhaseLate
	}
}

func bestProgress(stacks []engine.StackView) map[engine.Character]int {
	best := make(map[engine.Character]int, 4)
	for _, ch := range engine.Characters() {
		for _, v := range stacks {
			if p := v.Progress(ch); p > best[ch] {
				best[ch] = p
			}
		}
	}
	return best
}

// missingPile names the pile holding a stack back from completing the
// character: an empty pile first, else a pile whose top does not match.
func missingPile(v engine.StackView, ch engine.Character) (engine.BodyPart, bool) {
	for _, pile := range engine.BodyParts() {
		if _, ok := v.Tops[pile]; !ok {
			return pile, true
		}
	}
	for _, pile := range engine.BodyParts() {
		if v.Tops[pile].EffectiveCharacter() != ch {
			return pile, true
		}
	}
	return engine.PartWild, false
}

// playableAs reports whether the held card can land on the pile carrying
// the character, nominating if wild.
func playableAs(c *engine.Card, ch engine.Character, pile engine.BodyPart) bool {
	if c.BodyPart != pile && !c.IsWild() {
		return false
	}
	if c.IsWild() {
		return c.Character == engine.CharacterWild || c.Character == ch
	}
	return c.EffectiveCharacter() == ch
}

func findCompletions(pos Position) []CompletionOpportunity {
	var out []CompletionOpportunity
	for _, v := range pos.Own {
		for _, ch := range engine.Characters() {
			if v.Progress(ch) != 2 {
				continue
			}
			pile, ok := missingPile(v, ch)
			if !ok {
				continue
			}
			for _, c := range pos.Hand {
				if playableAs(c, ch, pile) {
					out = append(out, CompletionOpportunity{Character: ch, StackID: v.ID, Pile: pile})
					break
				}
			}
		}
	}
	return out
}

func findDisruptions(pos Position) []DisruptionOpportunity {
	var out []DisruptionOpportunity
	for _, v := range pos.Opp {
		for _, ch := range engine.Characters() {
			progress := v.Progress(ch)
			if progress == 0 {
				continue
			}
			urgency := UrgencyMinor
			if progress >= 2 {
				urgency = UrgencyImportant
				if pos.OppScore >= pos.WinningScore-1 {
					urgency = UrgencyCritical
				}
			}
			// Every matching pile is a target; covering or removing its
			// top degrades the progress.
			for _, pile := range engine.BodyParts() {
				top, ok := v.Tops[pile]
				if !ok || top.EffectiveCharacter() != ch {
					continue
				}
				out = append(out, DisruptionOpportunity{Character: ch, StackID: v.ID, Pile: pile, Urgency: urgency})
			}
		}
	}
	return out
}

func threatOf(pos Position, a *Analysis) ThreatLevel {
	twos := 0
	for _, p := range a.OppProgress {
		if p >= 2 {
			twos++
		}
	}
	switch {
	case twos > 0 && pos.OppScore >= pos.WinningScore-1, twos >= 2:
		return ThreatHigh
	case twos > 0:
		return ThreatMedium
	default:
		return ThreatLow
	}
}

// urgencyFor looks up the analysis urgency for covering the given
// opponent pile, if it is a disruption target.
func (a *Analysis) urgencyFor(stackID int, pile engine.BodyPart) (Urgency, bool) {
	found := false
	best := UrgencyMinor
	for _, d := range a.Disruptions {
		if d.StackID == stackID && d.Pile == pile {
			if !found || d.Urgency > best {
				best = d.Urgency
			}
			found = true
		}
	}
	return best, found
}
