package engine

import "math/rand"

// DeckSize is the full card count: 4 characters x 3 body parts x 3 copies,
// plus 4 character-wilds, 3 position-wilds and 1 universal wild.
const DeckSize = 44

// Deck is the face-down draw pile. The random source is injected so
// shuffles are reproducible under a fixed seed.
type Deck struct {
	cards []*Card
	rand  *rand.Rand
}

// NewDeck builds and shuffles the full 44-card set.
func NewDeck(r *rand.Rand) *Deck {
	d := &Deck{rand: r}
	for _, ch := range Characters() {
		for _, part := range BodyParts() {
			for i := 0; i < 3; i++ {
				d.cards = append(d.cards, NewCard(ch, part))
			}
		}
		d.cards = append(d.cards, NewCard(ch, PartWild))
	}
	for _, part := range BodyParts() {
		d.cards = append(d.cards, NewCard(CharacterWild, part))
	}
	d.cards = append(d.cards, NewCard(CharacterWild, PartWild))
	d.Shuffle()
	return d
}

// Shuffle produces a uniform-random permutation of the remaining cards.
func (d *Deck) Shuffle() {
	d.rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card, or ErrEmptyDeck if none remain.
func (d *Deck) Draw() (*Card, error) {
	if len(d.cards) == 0 {
		return nil, ErrEmptyDeck
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// Reshuffle returns recycled cards to the pile and shuffles. Nominations
// are cleared so recycled wilds re-enter play un-nominated.
func (d *Deck) Reshuffle(cards []*Card) {
	for _, c := range cards {
		c.ClearNomination()
	}
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Remaining reports how many cards are left to draw.
func (d *Deck) Remaining() int { return len(d.cards) }
