package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Character is one of the four archetypes a stack can complete as, plus a
// wild marker.
type Character int

const (
	CharacterWild Character = iota
	Ninja
	Pirate
	Zombie
	Robot
)

func (c Character) String() string {
	return []string{"Wild", "Ninja", "Pirate", "Zombie", "Robot"}[c]
}

// Characters returns the concrete archetypes in a fixed order.
func Characters() []Character {
	return []Character{Ninja, Pirate, Zombie, Robot}
}

// BodyPart is one of the three placement slots, plus a wild marker. The
// wild marker is never a valid placement target.
type BodyPart int

const (
	PartWild BodyPart = iota
	Head
	Torso
	Legs
)

func (p BodyPart) String() string {
	return []string{"Wild", "Head", "Torso", "Legs"}[p]
}

// BodyParts returns the concrete slots in a fixed order.
func BodyParts() []BodyPart {
	return []BodyPart{Head, Torso, Legs}
}

// Nomination is the one-time concrete (character, body part) assignment
// resolving a wild card's effective identity.
type Nomination struct {
	Character Character
	BodyPart  BodyPart
}

// Card is an immutable identity with a base character and body part.
// A card is wild if either field carries the wild marker; wild cards may
// be nominated exactly once during play.
type Card struct {
	ID         uuid.UUID
	Character  Character
	BodyPart   BodyPart
	nomination *Nomination
}

// NewCard creates a card with a fresh identity.
func NewCard(ch Character, part BodyPart) *Card {
	return &Card{ID: uuid.New(), Character: ch, BodyPart: part}
}

// IsWild reports whether the card has a wild character and/or body part.
func (c *Card) IsWild() bool {
	return c.Character == CharacterWild || c.BodyPart == PartWild
}

// IsNominated reports whether a nomination has been assigned.
func (c *Card) IsNominated() bool { return c.nomination != nil }

// Nomination returns the assigned nomination, if any.
func (c *Card) Nomination() (Nomination, bool) {
	if c.nomination == nil {
		return Nomination{}, false
	}
	return *c.nomination, true
}

// EffectiveCharacter is the nomination character if set, else the base.
func (c *Card) EffectiveCharacter() Character {
	if c.nomination != nil {
		return c.nomination.Character
	}
	return c.Character
}

// EffectiveBodyPart is the nomination body part if set, else the base.
func (c *Card) EffectiveBodyPart() BodyPart {
	if c.nomination != nil {
		return c.nomination.BodyPart
	}
	return c.BodyPart
}

// CanNominate validates a proposed nomination against the card's wild
// subtype. A character-wild keeps its printed character, a position-wild
// keeps its printed body part, a universal wild is free on both.
func (c *Card) CanNominate(n Nomination) error {
	if !c.IsWild() {
		return fmt.Errorf("%w: %s is not a wild card", ErrValidation, c)
	}
	if c.nomination != nil {
		return fmt.Errorf("%w: %s is already nominated", ErrValidation, c)
	}
	if n.Character == CharacterWild || n.BodyPart == PartWild {
		return fmt.Errorf("%w: nomination must name a concrete character and body part", ErrValidation)
	}
	if c.Character != CharacterWild && n.Character != c.Character {
		return fmt.Errorf("%w: %s can only be nominated as a %s", ErrValidation, c, c.Character)
	}
	if c.BodyPart != PartWild && n.BodyPart != c.BodyPart {
		return fmt.Errorf("%w: %s can only be nominated as a %s", ErrValidation, c, c.BodyPart)
	}
	return nil
}

// Nominate assigns the nomination. Fails without effect if the nomination
// is invalid or the card is already nominated.
func (c *Card) Nominate(n Nomination) error {
	if err := c.CanNominate(n); err != nil {
		return err
	}
	c.nomination = &n
	return nil
}

// ClearNomination returns the card to its un-nominated state. Used when a
// recycled wild re-enters the deck.
func (c *Card) ClearNomination() { c.nomination = nil }

// Clone copies the card, preserving its identity and any nomination.
func (c *Card) Clone() *Card {
	clone := &Card{ID: c.ID, Character: c.Character, BodyPart: c.BodyPart}
	if c.nomination != nil {
		n := *c.nomination
		clone.nomination = &n
	}
	return clone
}

func (c *Card) String() string {
	if c.nomination != nil {
		return fmt.Sprintf("%s %s (as %s %s)", c.Character, c.BodyPart, c.nomination.Character, c.nomination.BodyPart)
	}
	return fmt.Sprintf("%s %s", c.Character, c.BodyPart)
}
