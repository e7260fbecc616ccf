package engine

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestHand(t *testing.T) {
	t.Run("add, find and remove round-trip", func(t *testing.T) {
		h := NewHand()
		card := NewCard(Ninja, Head)
		h.Add(card)
		h.Add(NewCard(Pirate, Torso))

		got, ok := h.Find(card.ID)
		if !ok || got != card {
			t.Fatal("expected to find the added card")
		}
		removed, err := h.Remove(card.ID)
		if err != nil || removed != card {
			t.Fatalf("remove failed: %v", err)
		}
		if h.Size() != 1 {
			t.Errorf("expected one card left, got %d", h.Size())
		}
		if _, ok := h.Find(card.ID); ok {
			t.Error("expected the removed card to be gone")
		}
	})

	t.Run("removing an absent card is not found", func(t *testing.T) {
		h := NewHand()
		if _, err := h.Remove(uuid.New()); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("the snapshot keeps draw order and is detached", func(t *testing.T) {
		h := NewHand()
		first := NewCard(Zombie, Legs)
		second := NewCard(Robot, Head)
		h.Add(first)
		h.Add(second)

		cards := h.Cards()
		if cards[0] != first || cards[1] != second {
			t.Error("expected cards in draw order")
		}
		cards[0] = nil
		if got, ok := h.Find(first.ID); !ok || got != first {
			t.Error("expected the hand to be unaffected by snapshot mutation")
		}
	})
}
