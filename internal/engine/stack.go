package engine

import "fmt"

// Stack is a player-owned triple of piles, one per body part. Each pile is
// a LIFO sequence; only the top card of a pile is visible and playable
// against. A stack completes when all three top cards resolve to the same
// concrete character.
type Stack struct {
	id    int
	owner string
	piles map[BodyPart][]*Card
}

// NewStack creates an empty stack owned by the named player.
func NewStack(id int, owner string) *Stack {
	return &Stack{
		id:    id,
		owner: owner,
		piles: map[BodyPart][]*Card{Head: nil, Torso: nil, Legs: nil},
	}
}

// ID is the engine-assigned stack identifier, unique within a game.
func (s *Stack) ID() int { return s.id }

// Owner names the player whose completions this stack counts toward.
func (s *Stack) Owner() string { return s.owner }

// CanAcceptCard reports whether the card may be pushed onto the pile.
// The wild slot is never a placement target.
func (s *Stack) CanAcceptCard(c *Card, pile BodyPart) bool {
	if pile == PartWild {
		return false
	}
	return c.BodyPart == pile || c.IsWild()
}

// AddCard pushes the card onto the addressed pile.
func (s *Stack) AddCard(c *Card, pile BodyPart) error {
	if !s.CanAcceptCard(c, pile) {
		return fmt.Errorf("%w: %s cannot be placed on the %s pile", ErrValidation, c, pile)
	}
	s.piles[pile] = append(s.piles[pile], c)
	return nil
}

// TopCard returns the visible card of the pile, if the pile is non-empty.
func (s *Stack) TopCard(pile BodyPart) (*Card, bool) {
	cards := s.piles[pile]
	if len(cards) == 0 {
		return nil, false
	}
	return cards[len(cards)-1], true
}

// RemoveTop pops and returns the visible card of the pile.
func (s *Stack) RemoveTop(pile BodyPart) (*Card, error) {
	cards := s.piles[pile]
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: the %s pile of stack %d is empty", ErrNotFound, pile, s.id)
	}
	top := cards[len(cards)-1]
	s.piles[pile] = cards[:len(cards)-1]
	return top, nil
}

// PileDepth reports how many cards the pile holds.
func (s *Stack) PileDepth(pile BodyPart) int { return len(s.piles[pile]) }

// TopCards returns a read-only snapshot of the visible cards, keyed by
// pile. Empty piles are absent from the map.
func (s *Stack) TopCards() map[BodyPart]*Card {
	tops := make(map[BodyPart]*Card, 3)
	for _, pile := range BodyParts() {
		if top, ok := s.TopCard(pile); ok {
			tops[pile] = top.Clone()
		}
	}
	return tops
}

// Progress counts the piles whose visible card resolves to the given
// character, 0-3. Un-nominated wilds never match.
func (s *Stack) Progress(ch Character) int {
	if ch == CharacterWild {
		return 0
	}
	n := 0
	for _, pile := range BodyParts() {
		if top, ok := s.TopCard(pile); ok && top.EffectiveCharacter() == ch {
			n++
		}
	}
	return n
}

// IsComplete reports whether all three piles are non-empty and their top
// cards' effective characters agree on a concrete archetype.
func (s *Stack) IsComplete() bool {
	_, ok := s.CompletedCharacter()
	return ok
}

// CompletedCharacter returns the character the stack completes as.
func (s *Stack) CompletedCharacter() (Character, bool) {
	var ch Character
	for i, pile := range BodyParts() {
		top, ok := s.TopCard(pile)
		if !ok {
			return CharacterWild, false
		}
		eff := top.EffectiveCharacter()
		if eff == CharacterWild {
			return CharacterWild, false
		}
		if i == 0 {
			ch = eff
		} else if eff != ch {
			return CharacterWild, false
		}
	}
	return ch, true
}

// IsEmpty reports whether every pile is empty.
func (s *Stack) IsEmpty() bool {
	for _, pile := range BodyParts() {
		if len(s.piles[pile]) > 0 {
			return false
		}
	}
	return true
}

// Cards returns every card in the stack, bottom-up per pile. Used when a
// completed stack is consumed into the discard pile.
func (s *Stack) Cards() []*Card {
	var out []*Card
	for _, pile := range BodyParts() {
		out = append(out, s.piles[pile]...)
	}
	return out
}

// StackView is the read-only snapshot of a stack the engine hands to
// observers and the AI.
type StackView struct {
	ID    int
	Owner string
	Tops  map[BodyPart]*Card
	Depth map[BodyPart]int
}

// View snapshots the stack.
func (s *Stack) View() StackView {
	v := StackView{
		ID:    s.id,
		Owner: s.owner,
		Tops:  s.TopCards(),
		Depth: make(map[BodyPart]int, 3),
	}
	for _, pile := range BodyParts() {
		v.Depth[pile] = s.PileDepth(pile)
	}
	return v
}

// Progress mirrors Stack.Progress over the snapshot.
func (v StackView) Progress(ch Character) int {
	if ch == CharacterWild {
		return 0
	}
	n := 0
	for _, top := range v.Tops {
		if top.EffectiveCharacter() == ch {
			n++
		}
	}
	return n
}
