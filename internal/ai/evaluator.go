package ai

import (
	"fmt"
	"sort"

	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
)

// PlayCategory tags a candidate by tactical intent. Precedence for
// tie-breaking runs completion > blocking > building > neutral.
type PlayCategory int

const (
	CategoryNeutral PlayCategory = iota
	CategoryBuilding
	CategoryBlocking
	CategoryCompletion
)

func (c PlayCategory) String() string {
	return []string{"neutral", "building", "blocking", "completion"}[c]
}

// Reference values for the scoring tiers.
const (
	completionValue     = 1000
	criticalBlockValue  = 800
	buildingTwoValue    = 500
	importantBlockValue = 400
	buildingOneValue    = 300
	minorBlockValue     = 150
	newStackBase        = 50
	supportBonus        = 40
	coverOwnValue       = 20
	oppNeutralValue     = 10
	helpsOpponentValue  = 1
	wildHoldPenalty     = 200
	wildHoldFloor       = 5
)

// PlayCandidate is one scored (card, placement[, nomination]) option. A
// wild candidate bundles its placement and nomination as a single atomic
// decision; the two are never chosen independently.
type PlayCandidate struct {
	Card       *engine.Card
	HandIndex  int
	Placement  engine.Placement
	Nomination *engine.Nomination
	Category   PlayCategory
	Value      float64
	Reasoning  string
}

// EvaluatePlays scores every card in hand against every legal placement,
// including wild nominations paired with their placement.
func EvaluatePlays(pos Position, a *Analysis) []*PlayCandidate {
	var out []*PlayCandidate
	for i, card := range pos.Hand {
		if card.IsWild() {
			out = append(out, wildCandidates(pos, a, card, i)...)
			continue
		}
		out = append(out, regularCandidates(pos, a, card, i)...)
	}
	return out
}

// SortPlays orders candidates best-first: value, then category
// precedence, then hand order. The sort is stable so repeated evaluation
// of the same position ranks identically.
func SortPlays(cands []*PlayCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Value != cands[j].Value {
			return cands[i].Value > cands[j].Value
		}
		if cands[i].Category != cands[j].Category {
			return cands[i].Category > cands[j].Category
		}
		return cands[i].HandIndex < cands[j].HandIndex
	})
}

func regularCandidates(pos Position, a *Analysis, card *engine.Card, idx int) []*PlayCandidate {
	var out []*PlayCandidate
	pile := card.BodyPart
	for _, v := range pos.Own {
		cat, value, why := scoreOwnPlacement(v, card.EffectiveCharacter(), pile)
		out = append(out, &PlayCandidate{
			Card:      card,
			HandIndex: idx,
			Placement: engine.Placement{StackID: v.ID, Pile: pile},
			Category:  cat,
			Value:     value,
			Reasoning: why,
		})
	}
	for _, v := range pos.Opp {
		cat, value, why := scoreOpponentPlacement(a, v, card.EffectiveCharacter(), pile)
		out = append(out, &PlayCandidate{
			Card:      card,
			HandIndex: idx,
			Placement: engine.Placement{StackID: v.ID, Pile: pile},
			Category:  cat,
			Value:     value,
			Reasoning: why,
		})
	}
	out = append(out, &PlayCandidate{
		Card:      card,
		HandIndex: idx,
		Placement: engine.Placement{NewStack: true, Pile: pile},
		Category:  CategoryNeutral,
		Value:     newStackValue(pos, card, card.EffectiveCharacter()),
		Reasoning: fmt.Sprintf("start a new %s stack", card.EffectiveCharacter()),
	})
	return out
}

// wildCandidates enumerates the nominations the wild subtype allows and
// couples each with the placements that suit it. The nominated body part
// always matches the target pile, so a wild never lands somewhere its
// resolved identity contradicts.
func wildCandidates(pos Position, a *Analysis, card *engine.Card, idx int) []*PlayCandidate {
	chars := engine.Characters()
	if card.Character != engine.CharacterWild {
		chars = []engine.Character{card.Character}
	}
	parts := engine.BodyParts()
	if card.BodyPart != engine.PartWild {
		parts = []engine.BodyPart{card.BodyPart}
	}

	var out []*PlayCandidate
	for _, ch := range chars {
		for _, pile := range parts {
			nom := engine.Nomination{Character: ch, BodyPart: pile}
			for _, v := range pos.Own {
				cat, value, why := scoreOwnPlacement(v, ch, pile)
				out = append(out, wildCandidate(a, card, idx, engine.Placement{StackID: v.ID, Pile: pile}, nom, cat, value, why))
			}
			for _, v := range pos.Opp {
				cat, value, why := scoreOpponentPlacement(a, v, ch, pile)
				out = append(out, wildCandidate(a, card, idx, engine.Placement{StackID: v.ID, Pile: pile}, nom, cat, value, why))
			}
			out = append(out, wildCandidate(a, card, idx,
				engine.Placement{NewStack: true, Pile: pile}, nom,
				CategoryNeutral, newStackValue(pos, card, ch),
				fmt.Sprintf("start a new %s stack", ch)))
		}
	}
	return out
}

func wildCandidate(a *Analysis, card *engine.Card, idx int, pl engine.Placement, nom engine.Nomination, cat PlayCategory, value float64, why string) *PlayCandidate {
	c := &PlayCandidate{
		Card:       card,
		HandIndex:  idx,
		Placement:  pl,
		Nomination: &nom,
		Category:   cat,
		Value:      value,
		Reasoning:  why,
	}
	// Hoard wilds early: spending one on a non-essential play while few
	// remain in hand is discouraged.
	if cat != CategoryCompletion && cat != CategoryBlocking &&
		len(a.Completions) == 0 && a.Phase == PhaseEarly && a.WildsInHand <= 2 {
		c.Value -= wildHoldPenalty
		if c.Value < wildHoldFloor {
			c.Value = wildHoldFloor
		}
		c.Reasoning += ", conserving wild"
	}
	return c
}

// progressAfter counts the piles that would show ch once a card
// resolving to ch lands on the target pile. A count of 3 means the play
// completes the stack.
func progressAfter(v engine.StackView, ch engine.Character, pile engine.BodyPart) int {
	n := 0
	for _, q := range engine.BodyParts() {
		if q == pile {
			n++
			continue
		}
		if top, ok := v.Tops[q]; ok && top.EffectiveCharacter() == ch {
			n++
		}
	}
	return n
}

// scoreOwnPlacement grades landing a card resolving to ch on the pile of
// an own stack.
func scoreOwnPlacement(v engine.StackView, ch engine.Character, pile engine.BodyPart) (PlayCategory, float64, string) {
	switch after := progressAfter(v, ch, pile); after {
	case 3:
		return CategoryCompletion, completionValue, fmt.Sprintf("completes %s on stack %d", ch, v.ID)
	case 2:
		return CategoryBuilding, buildingTwoValue, fmt.Sprintf("builds %s to 2 of 3 on stack %d", ch, v.ID)
	default:
		if top, ok := v.Tops[pile]; ok && top.EffectiveCharacter() != ch && v.Progress(top.EffectiveCharacter()) > 0 {
			return CategoryNeutral, coverOwnValue, "covers own progress"
		}
		return CategoryBuilding, buildingOneValue, fmt.Sprintf("builds %s on stack %d", ch, v.ID)
	}
}

// scoreOpponentPlacement grades landing a card resolving to ch on the
// pile of an opponent stack. Covering their matching top is blocking;
// matching their progress hands them the completion.
func scoreOpponentPlacement(a *Analysis, v engine.StackView, ch engine.Character, pile engine.BodyPart) (PlayCategory, float64, string) {
	if progressAfter(v, ch, pile) == 3 {
		return CategoryNeutral, helpsOpponentValue, "would complete the opponent's stack"
	}
	top, ok := v.Tops[pile]
	if ok && top.EffectiveCharacter() != ch {
		if urgency, found := a.urgencyFor(v.ID, pile); found {
			switch urgency {
			case UrgencyCritical:
				return CategoryBlocking, criticalBlockValue, fmt.Sprintf("critical block of %s on stack %d", top.EffectiveCharacter(), v.ID)
			case UrgencyImportant:
				return CategoryBlocking, importantBlockValue, fmt.Sprintf("blocks %s on stack %d", top.EffectiveCharacter(), v.ID)
			default:
				return CategoryBlocking, minorBlockValue, fmt.Sprintf("hinders %s on stack %d", top.EffectiveCharacter(), v.ID)
			}
		}
	}
	if v.Progress(ch)+1 >= 2 {
		return CategoryNeutral, helpsOpponentValue, "builds the opponent's stack"
	}
	return CategoryNeutral, oppNeutralValue, fmt.Sprintf("dead card on opponent stack %d", v.ID)
}

// newStackValue scales a fresh stack by character scarcity: how much
// supporting material for the character the hand still holds.
func newStackValue(pos Position, played *engine.Card, ch engine.Character) float64 {
	support := 0
	for _, c := range pos.Hand {
		if c.ID == played.ID {
			continue
		}
		if c.Character == ch || c.Character == engine.CharacterWild {
			support++
		}
	}
	if support > 3 {
		support = 3
	}
	return float64(newStackBase + supportBonus*support)
}
