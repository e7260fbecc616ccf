package ai

import (
	"fmt"
	"sort"

	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
)

// MoveCategory tags a relocation by tactical intent. Precedence for
// tie-breaking runs cascade > disruption > organization.
type MoveCategory int

const (
	MoveOrganization MoveCategory = iota
	MoveDisruption
	MoveCascade
)

func (c MoveCategory) String() string {
	return []string{"organization", "disruption", "cascade"}[c]
}

const (
	cascadeValue          = 900
	cascadeSetupValue     = 700
	disruptCriticalValue  = 600
	disruptImportantValue = 350
	disruptMinorValue     = 150
	organizeTwoValue      = 250
	organizeOneValue      = 100
	// MoveValueFloor is the value below which skipping the move phase
	// beats churning the board.
	MoveValueFloor = 100
)

// MoveCandidate is one scored relocation of a visible top card.
type MoveCandidate struct {
	Spec      engine.MoveSpec
	Category  MoveCategory
	Value     float64
	Reasoning string
}

// EvaluateMoves enumerates legal relocations of every visible top card,
// on both players' stacks, and scores them. Moves that only help the
// opponent are not generated.
func EvaluateMoves(pos Position, a *Analysis) []*MoveCandidate {
	all := append(append([]engine.StackView(nil), pos.Own...), pos.Opp...)
	own := make(map[int]bool, len(pos.Own))
	for _, v := range pos.Own {
		own[v.ID] = true
	}

	var out []*MoveCandidate
	for _, src := range all {
		for _, fromPile := range engine.BodyParts() {
			card, ok := src.Tops[fromPile]
			if !ok {
				continue
			}
			for _, dst := range all {
				for _, toPile := range engine.BodyParts() {
					if dst.ID == src.ID && toPile == fromPile {
						continue
					}
					if card.BodyPart != toPile && !card.IsWild() {
						continue
					}
					if c := scoreMove(pos, a, own, card, src, fromPile, dst, toPile); c != nil {
						out = append(out, c)
					}
				}
			}
			// Relocating onto a fresh own stack only ever reorganizes.
			if pile := card.EffectiveBodyPart(); pile != engine.PartWild {
				if c := scoreMoveToNew(a, own, card, src, fromPile, pile); c != nil {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// SortMoves orders candidates best-first with the same determinism
// guarantees as SortPlays.
func SortMoves(cands []*MoveCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Value != cands[j].Value {
			return cands[i].Value > cands[j].Value
		}
		return cands[i].Category > cands[j].Category
	})
}

func scoreMove(pos Position, a *Analysis, own map[int]bool, card *engine.Card, src engine.StackView, fromPile engine.BodyPart, dst engine.StackView, toPile engine.BodyPart) *MoveCandidate {
	ch := card.EffectiveCharacter()
	spec := engine.MoveSpec{
		CardID:    card.ID,
		FromStack: src.ID,
		FromPile:  fromPile,
		ToStack:   dst.ID,
		ToPile:    toPile,
	}

	// A move that finishes one of our stacks is the jackpot.
	if own[dst.ID] && ch != engine.CharacterWild && progressAfter(dst, ch, toPile) == 3 {
		return &MoveCandidate{
			Spec:      spec,
			Category:  MoveCascade,
			Value:     cascadeValue,
			Reasoning: fmt.Sprintf("completes %s on stack %d", ch, dst.ID),
		}
	}
	// Never complete or build the opponent's stacks for them.
	if !own[dst.ID] {
		if ch != engine.CharacterWild && progressAfter(dst, ch, toPile) >= 2 {
			return nil
		}
		// Dumping a card on the opponent only makes sense as a block.
		if _, found := a.urgencyFor(dst.ID, toPile); !found {
			return nil
		}
	}

	var value float64
	category := MoveOrganization
	var reasons []string

	// Lifting the opponent's progress off their stack.
	if !own[src.ID] {
		if urgency, found := a.urgencyFor(src.ID, fromPile); found {
			category = MoveDisruption
			switch urgency {
			case UrgencyCritical:
				value += disruptCriticalValue
			case UrgencyImportant:
				value += disruptImportantValue
			default:
				value += disruptMinorValue
			}
			reasons = append(reasons, fmt.Sprintf("pulls %s off opponent stack %d", card, src.ID))
		} else {
			return nil
		}
	}
	// Covering the opponent's progress with the moved card.
	if !own[dst.ID] {
		if top, ok := dst.Tops[toPile]; ok && top.EffectiveCharacter() != ch {
			if urgency, found := a.urgencyFor(dst.ID, toPile); found {
				category = MoveDisruption
				switch urgency {
				case UrgencyCritical:
					value += disruptCriticalValue
				case UrgencyImportant:
					value += disruptImportantValue
				default:
					value += disruptMinorValue
				}
				reasons = append(reasons, fmt.Sprintf("buries the opponent's %s", top.EffectiveCharacter()))
			}
		}
	}
	// Consolidating our own board.
	if own[dst.ID] && ch != engine.CharacterWild {
		switch after := progressAfter(dst, ch, toPile); {
		case after == 2 && (!own[src.ID] || src.Progress(ch) < 2):
			value += organizeTwoValue
			reasons = append(reasons, fmt.Sprintf("gathers %s on stack %d", ch, dst.ID))
			if category == MoveOrganization && completionInHand(pos, dst, ch, toPile) {
				category = MoveCascade
				value = cascadeSetupValue
				reasons = append(reasons, "sets up a completion from hand")
			}
		case after == 1 && own[src.ID] && src.Progress(ch) <= 1 && uncovers(src, fromPile):
			value += organizeOneValue
			reasons = append(reasons, "frees buried progress")
		}
	}

	if value <= 0 {
		return nil
	}
	return &MoveCandidate{Spec: spec, Category: category, Value: value, Reasoning: joinReasons(reasons)}
}

func scoreMoveToNew(a *Analysis, own map[int]bool, card *engine.Card, src engine.StackView, fromPile, toPile engine.BodyPart) *MoveCandidate {
	spec := engine.MoveSpec{
		CardID:     card.ID,
		FromStack:  src.ID,
		FromPile:   fromPile,
		ToNewStack: true,
		ToPile:     toPile,
	}
	// Off the opponent's stack: pure disruption.
	if !own[src.ID] {
		urgency, found := a.urgencyFor(src.ID, fromPile)
		if !found {
			return nil
		}
		value := float64(disruptMinorValue)
		switch urgency {
		case UrgencyCritical:
			value = disruptCriticalValue
		case UrgencyImportant:
			value = disruptImportantValue
		}
		return &MoveCandidate{
			Spec:      spec,
			Category:  MoveDisruption,
			Value:     value,
			Reasoning: fmt.Sprintf("pulls %s off opponent stack %d onto a fresh stack", card, src.ID),
		}
	}
	// Off our own stack: worthwhile only when it uncovers buried progress.
	if !uncovers(src, fromPile) {
		return nil
	}
	return &MoveCandidate{
		Spec:      spec,
		Category:  MoveOrganization,
		Value:     organizeOneValue,
		Reasoning: "frees buried progress onto a fresh stack",
	}
}

// completionInHand reports whether a held card could finish the character
// on the stack's remaining pile after this move.
func completionInHand(pos Position, v engine.StackView, ch engine.Character, movedPile engine.BodyPart) bool {
	for _, q := range engine.BodyParts() {
		if q == movedPile {
			continue
		}
		if top, ok := v.Tops[q]; ok && top.EffectiveCharacter() == ch {
			continue
		}
		for _, c := range pos.Hand {
			if playableAs(c, ch, q) {
				return true
			}
		}
		return false
	}
	return false
}

// uncovers reports whether the pile is deep enough that lifting its top
// reveals a buried card. What is underneath is hidden information, so
// this is a guess, not a guarantee of progress.
func uncovers(v engine.StackView, pile engine.BodyPart) bool {
	return v.Depth[pile] > 1
}

func joinReasons(reasons []string) string {
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += "; "
		}
		out += r
	}
	return out
}
