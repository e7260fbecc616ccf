package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Hand is the unordered set of drawn, unplayed cards one player holds.
// It is mutated only by draws (add) and plays (remove).
type Hand struct {
	cards []*Card
}

// NewHand creates an empty hand.
func NewHand() *Hand { return &Hand{} }

// Add puts a card into the hand.
func (h *Hand) Add(c *Card) { h.cards = append(h.cards, c) }

// Find returns the held card with the given id, if present.
func (h *Hand) Find(id uuid.UUID) (*Card, bool) {
	for _, c := range h.cards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Remove takes the card with the given id out of the hand.
func (h *Hand) Remove(id uuid.UUID) (*Card, error) {
	for i, c := range h.cards {
		if c.ID == id {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: card %s is not in hand", ErrNotFound, id)
}

// Cards returns the held cards in stable draw order.
func (h *Hand) Cards() []*Card {
	out := make([]*Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Size reports the number of held cards.
func (h *Hand) Size() int { return len(h.cards) }
