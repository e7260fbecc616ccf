package ai

import "math/rand"

// Selector picks an index from n ranked options when the difficulty
// manager substitutes a near-best candidate for the true best. Swapping
// random and deterministic selection keeps games reproducible in tests.
type Selector interface {
	Pick(n int) int
}

// RandomSelector picks uniformly among the options.
type RandomSelector struct {
	rand *rand.Rand
}

// NewRandomSelector creates a selector over the shared random source.
func NewRandomSelector(rand *rand.Rand) *RandomSelector {
	return &RandomSelector{rand: rand}
}

func (r *RandomSelector) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rand.Intn(n)
}

// DeterministicSelector always picks the top-ranked option. This is used
// for predictable testing.
type DeterministicSelector struct{}

func (d *DeterministicSelector) Pick(n int) int { return 0 }
