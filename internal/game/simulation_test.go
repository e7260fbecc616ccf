package game

import (
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/config"
	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
	"github.com/tarttelin/npzr-ai-sub002/internal/events"
)

func simConfig() *config.GameConfig {
	return &config.GameConfig{
		Players:         []string{"Ann", "Bob"},
		WinningScore:    3,
		InitialHandSize: 5,
		TurnLimit:       200,
		Difficulties: map[string]config.Difficulty{
			"easy":   {WildCardConservation: 0.6, DisruptionAggression: 0.3, MistakeRate: 0.2},
			"medium": {WildCardConservation: 0.35, DisruptionAggression: 0.6, MistakeRate: 0.08, CascadeOptimization: true},
			"hard":   {WildCardConservation: 0.15, DisruptionAggression: 0.9, MistakeRate: 0.02, CascadeOptimization: true},
		},
	}
}

func simLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// boardCardCount totals every card visible through the public queries.
func boardCardCount(e *engine.Engine, players []string) int {
	total := e.DeckRemaining() + e.DiscardCount()
	for _, name := range players {
		total += len(e.Hand(name))
	}
	for _, v := range e.StackViews() {
		for _, d := range v.Depth {
			total += d
		}
	}
	return total
}

func TestSeededMatchIsReproducible(t *testing.T) {
	run := func(seed int64) (string, int) {
		cfg := simConfig()
		m, err := NewBuilder(cfg, simLogger(), rand.New(rand.NewSource(seed))).
			WithDifficulty("hard").
			Build()
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		winner, err := m.Run()
		if err != nil {
			t.Fatalf("match failed: %v", err)
		}
		return winner, m.Engine.Turn()
	}

	w1, t1 := run(42)
	w2, t2 := run(42)
	if w1 != w2 || t1 != t2 {
		t.Errorf("expected identical replays from one seed, got (%q, %d) and (%q, %d)", w1, t1, w2, t2)
	}
}

func TestFullMatches(t *testing.T) {
	for _, difficulty := range []string{"easy", "medium", "hard"} {
		t.Run(difficulty, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				cfg := simConfig()
				m, err := NewBuilder(cfg, simLogger(), rand.New(rand.NewSource(seed))).
					WithDifficulty(difficulty).
					Build()
				if err != nil {
					t.Fatalf("seed %d: build failed: %v", seed, err)
				}

				winner, err := m.Run()
				if err != nil {
					t.Fatalf("seed %d: match failed: %v", seed, err)
				}

				// The match must have ended one way or the other.
				if !m.Engine.Over() && m.Engine.Turn() < cfg.TurnLimit {
					t.Errorf("seed %d: the match stalled at turn %d", seed, m.Engine.Turn())
				}
				// Every card is still accounted for.
				if n := boardCardCount(m.Engine, cfg.Players); n != engine.DeckSize {
					t.Errorf("seed %d: expected %d cards on the table, got %d", seed, engine.DeckSize, n)
				}
				// A declared winner really reached the threshold.
				if winner != "" {
					if got := len(m.Engine.Score(winner)); got < cfg.WinningScore {
						t.Errorf("seed %d: winner %s has only %d completions", seed, winner, got)
					}
				}
			}
		})
	}
}

func TestBuilderRejectsUnknownDifficulty(t *testing.T) {
	_, err := NewBuilder(simConfig(), simLogger(), rand.New(rand.NewSource(1))).
		WithDifficulty("nightmare").
		Build()
	if err == nil {
		t.Error("expected an error for an unknown difficulty")
	}
}

func TestMatchEmitsLifecycleEvents(t *testing.T) {
	cfg := simConfig()
	b := NewBuilder(cfg, simLogger(), rand.New(rand.NewSource(9)))

	var seen []string
	b.EventManager().Subscribe(events.ListenerFunc(func(e events.Event) {
		switch e.(type) {
		case events.GameReadyEvent:
			seen = append(seen, "ready")
		case events.GameOverEvent:
			seen = append(seen, "over")
		}
	}))

	m, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := m.Run(); err != nil {
		t.Fatalf("match failed: %v", err)
	}

	if len(seen) < 2 || seen[0] != "ready" || seen[len(seen)-1] != "over" {
		t.Errorf("expected ready then over, got %v", seen)
	}
}
