package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"
)

type cardKind struct {
	ch   Character
	part BodyPart
}

func drainDeck(t *testing.T, d *Deck) []*Card {
	t.Helper()
	var out []*Card
	for {
		card, err := d.Draw()
		if errors.Is(err, ErrEmptyDeck) {
			return out
		}
		if err != nil {
			t.Fatalf("unexpected draw error: %v", err)
		}
		out = append(out, card)
	}
}

func TestDeckConstruction(t *testing.T) {
	// GIVEN a freshly built deck
	deck := NewDeck(rand.New(rand.NewSource(1)))
	cards := drainDeck(t, deck)

	t.Run("it holds exactly 44 cards with unique ids", func(t *testing.T) {
		if len(cards) != DeckSize {
			t.Fatalf("expected %d cards, got %d", DeckSize, len(cards))
		}
		seen := make(map[uuid.UUID]struct{})
		for _, c := range cards {
			if _, dup := seen[c.ID]; dup {
				t.Errorf("duplicate card id %s", c.ID)
			}
			seen[c.ID] = struct{}{}
		}
	})

	t.Run("it matches the printed distribution", func(t *testing.T) {
		counts := make(map[cardKind]int)
		for _, c := range cards {
			counts[cardKind{c.Character, c.BodyPart}]++
		}
		for _, ch := range Characters() {
			for _, part := range BodyParts() {
				if n := counts[cardKind{ch, part}]; n != 3 {
					t.Errorf("expected 3 copies of %s %s, got %d", ch, part, n)
				}
			}
			if n := counts[cardKind{ch, PartWild}]; n != 1 {
				t.Errorf("expected 1 %s wild, got %d", ch, n)
			}
		}
		for _, part := range BodyParts() {
			if n := counts[cardKind{CharacterWild, part}]; n != 1 {
				t.Errorf("expected 1 wild %s, got %d", part, n)
			}
		}
		if n := counts[cardKind{CharacterWild, PartWild}]; n != 1 {
			t.Errorf("expected 1 universal wild, got %d", n)
		}
	})
}

func TestShuffleIsAPermutation(t *testing.T) {
	// GIVEN two decks built from different seeds
	first := drainDeck(t, NewDeck(rand.New(rand.NewSource(7))))
	second := drainDeck(t, NewDeck(rand.New(rand.NewSource(1234))))

	// THEN the multiset of kinds is identical regardless of seed
	countKinds := func(cards []*Card) map[cardKind]int {
		counts := make(map[cardKind]int)
		for _, c := range cards {
			counts[cardKind{c.Character, c.BodyPart}]++
		}
		return counts
	}
	a, b := countKinds(first), countKinds(second)
	for kind, n := range a {
		if b[kind] != n {
			t.Errorf("kind %v: %d vs %d copies", kind, n, b[kind])
		}
	}
}

func TestDraw(t *testing.T) {
	t.Run("draw removes exactly one card", func(t *testing.T) {
		deck := NewDeck(rand.New(rand.NewSource(1)))
		before := deck.Remaining()
		if _, err := deck.Draw(); err != nil {
			t.Fatalf("draw failed: %v", err)
		}
		if deck.Remaining() != before-1 {
			t.Errorf("expected %d remaining, got %d", before-1, deck.Remaining())
		}
	})

	t.Run("drawing from an empty deck signals ErrEmptyDeck", func(t *testing.T) {
		deck := NewDeck(rand.New(rand.NewSource(1)))
		drainDeck(t, deck)
		if _, err := deck.Draw(); !errors.Is(err, ErrEmptyDeck) {
			t.Errorf("expected ErrEmptyDeck, got %v", err)
		}
	})
}

func TestReshuffle(t *testing.T) {
	// GIVEN an exhausted deck and a nominated wild among the discards
	deck := NewDeck(rand.New(rand.NewSource(1)))
	cards := drainDeck(t, deck)
	var wild *Card
	for _, c := range cards {
		if c.Character == CharacterWild && c.BodyPart == PartWild {
			wild = c
			break
		}
	}
	if err := wild.Nominate(Nomination{Character: Ninja, BodyPart: Head}); err != nil {
		t.Fatalf("nomination failed: %v", err)
	}

	// WHEN the discards are reshuffled in
	deck.Reshuffle(cards)

	// THEN the full set is drawable again and the wild is un-nominated
	if deck.Remaining() != DeckSize {
		t.Fatalf("expected %d cards after reshuffle, got %d", DeckSize, deck.Remaining())
	}
	if wild.IsNominated() {
		t.Error("expected the recycled wild to re-enter play un-nominated")
	}
}
