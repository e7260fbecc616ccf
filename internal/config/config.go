package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Difficulty bundles the four knobs shaping how optimally the AI acts.
// All probabilities are rolled against the same injectable random source
// the deck shuffle uses, so a fixed seed reproduces a full game.
type Difficulty struct {
	// WildCardConservation is the probability of withholding wild cards
	// from the available-to-play set for a decision.
	WildCardConservation float64 `json:"wild_card_conservation"`
	// DisruptionAggression is the probability of keeping blocking
	// candidates rather than filtering them out.
	DisruptionAggression float64 `json:"disruption_aggression"`
	// MistakeRate is the probability of accepting a near-best candidate
	// instead of the true best.
	MistakeRate float64 `json:"mistake_rate"`
	// CascadeOptimization gates whether cascade moves are considered.
	CascadeOptimization bool `json:"cascade_optimization"`
}

// GameConfig holds the static definitions for a game.
type GameConfig struct {
	Players         []string              `json:"players"`
	WinningScore    int                   `json:"winning_score"`
	InitialHandSize int                   `json:"initial_hand_size"`
	TurnLimit       int                   `json:"turn_limit"`
	Difficulties    map[string]Difficulty `json:"difficulties"`
}

// Load reads, parses and validates the game configuration from a file.
func Load(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *GameConfig) validate() error {
	if len(c.Players) != 2 {
		return fmt.Errorf("config: expected exactly 2 players, got %d", len(c.Players))
	}
	if c.Players[0] == c.Players[1] {
		return fmt.Errorf("config: player names must be distinct")
	}
	if c.WinningScore < 1 || c.WinningScore > 4 {
		return fmt.Errorf("config: winning_score must be 1-4, got %d", c.WinningScore)
	}
	// Two hands come out of a 44-card deck; a hand above 10 would risk
	// dealing short before the first turn.
	if c.InitialHandSize < 1 || c.InitialHandSize > 10 {
		return fmt.Errorf("config: initial_hand_size must be 1-10, got %d", c.InitialHandSize)
	}
	if c.TurnLimit < 1 {
		return fmt.Errorf("config: turn_limit must be positive, got %d", c.TurnLimit)
	}
	for _, p := range c.Difficulties {
		for name, v := range map[string]float64{
			"wild_card_conservation": p.WildCardConservation,
			"disruption_aggression":  p.DisruptionAggression,
			"mistake_rate":           p.MistakeRate,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("config: %s must be a probability, got %v", name, v)
			}
		}
	}
	return nil
}

// Difficulty resolves a named profile.
func (c *GameConfig) Difficulty(name string) (Difficulty, error) {
	p, ok := c.Difficulties[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("config: unknown difficulty %q", name)
	}
	return p, nil
}

// DeepCopy creates a new GameConfig with all slices and maps copied to
// prevent shared state.
func (c *GameConfig) DeepCopy() *GameConfig {
	cp := &GameConfig{
		WinningScore:    c.WinningScore,
		InitialHandSize: c.InitialHandSize,
		TurnLimit:       c.TurnLimit,
		Difficulties:    make(map[string]Difficulty, len(c.Difficulties)),
	}
	cp.Players = make([]string, len(c.Players))
	copy(cp.Players, c.Players)
	for k, v := range c.Difficulties {
		cp.Difficulties[k] = v
	}
	return cp
}
