package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *GameConfig {
	return &GameConfig{
		Players:         []string{"Player", "Computer"},
		WinningScore:    3,
		InitialHandSize: 5,
		TurnLimit:       200,
		Difficulties: map[string]Difficulty{
			"medium": {WildCardConservation: 0.35, DisruptionAggression: 0.6, MistakeRate: 0.08, CascadeOptimization: true},
		},
	}
}

func TestLoadDefaultConfig(t *testing.T) {
	// The shipped configuration must always load.
	cfg, err := Load(filepath.Join("..", "..", "default_config.json"))
	if err != nil {
		t.Fatalf("failed to load the default config: %v", err)
	}
	if len(cfg.Players) != 2 {
		t.Errorf("expected 2 players, got %d", len(cfg.Players))
	}
	if cfg.WinningScore != 3 {
		t.Errorf("expected winning_score 3, got %d", cfg.WinningScore)
	}
	for _, name := range []string{"easy", "medium", "hard"} {
		if _, err := cfg.Difficulty(name); err != nil {
			t.Errorf("expected a %s profile: %v", name, err)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("a missing file fails", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})

	t.Run("malformed json fails", func(t *testing.T) {
		if _, err := Load(write(t, "{not json")); err == nil {
			t.Error("expected a parse error")
		}
	})

	t.Run("an invalid config fails validation", func(t *testing.T) {
		body := `{"players":["Solo"],"winning_score":3,"initial_hand_size":5,"turn_limit":200}`
		if _, err := Load(write(t, body)); err == nil {
			t.Error("expected a validation error for a single player")
		}
	})
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		ok     bool
	}{
		{"the valid baseline passes", func(c *GameConfig) {}, true},
		{"duplicate player names fail", func(c *GameConfig) { c.Players = []string{"Ann", "Ann"} }, false},
		{"winning score above four fails", func(c *GameConfig) { c.WinningScore = 5 }, false},
		{"winning score below one fails", func(c *GameConfig) { c.WinningScore = 0 }, false},
		{"zero hand size fails", func(c *GameConfig) { c.InitialHandSize = 0 }, false},
		{"an oversized hand fails", func(c *GameConfig) { c.InitialHandSize = 11 }, false},
		{"the largest legal hand passes", func(c *GameConfig) { c.InitialHandSize = 10 }, true},
		{"zero turn limit fails", func(c *GameConfig) { c.TurnLimit = 0 }, false},
		{"a probability above one fails", func(c *GameConfig) {
			c.Difficulties["medium"] = Difficulty{MistakeRate: 1.5}
		}, false},
		{"a negative probability fails", func(c *GameConfig) {
			c.Difficulties["medium"] = Difficulty{WildCardConservation: -0.1}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.ok && err != nil {
				t.Errorf("expected the config to pass, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestUnknownDifficulty(t *testing.T) {
	cfg := validConfig()
	if _, err := cfg.Difficulty("nightmare"); err == nil {
		t.Error("expected an error for an unknown profile")
	}
}

func TestDeepCopy(t *testing.T) {
	// GIVEN a copy of the config
	orig := validConfig()
	cp := orig.DeepCopy()

	// WHEN the copy is mutated
	cp.Players[0] = "Changed"
	cp.Difficulties["medium"] = Difficulty{MistakeRate: 0.9}

	// THEN the original is untouched
	if orig.Players[0] != "Player" {
		t.Error("expected the player slice to be independent")
	}
	if orig.Difficulties["medium"].MistakeRate != 0.08 {
		t.Error("expected the difficulty map to be independent")
	}
}
