package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/ai"
	"github.com/tarttelin/npzr-ai-sub002/internal/config"
	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
	"github.com/tarttelin/npzr-ai-sub002/internal/events"
	"github.com/tarttelin/npzr-ai-sub002/internal/player"
)

// MatchBuilder provides a step-by-step API for constructing a Match.
type MatchBuilder struct {
	cfg          *config.GameConfig
	eventManager *events.Manager
	log          *logrus.Logger
	rand         *rand.Rand
	difficulty   string
	console      player.Console
	pacing       time.Duration
}

// NewBuilder creates a MatchBuilder with its required dependencies.
func NewBuilder(cfg *config.GameConfig, logger *logrus.Logger, rand *rand.Rand) *MatchBuilder {
	return &MatchBuilder{
		cfg:          cfg,
		log:          logger,
		rand:         rand,
		difficulty:   "medium",
		eventManager: events.NewManager(),
	}
}

// EventManager exposes the bus so renderers can subscribe before Build.
func (b *MatchBuilder) EventManager() *events.Manager {
	return b.eventManager
}

// WithDifficulty names the AI profile. Immutable once the match is built.
func (b *MatchBuilder) WithDifficulty(name string) *MatchBuilder {
	b.difficulty = name
	return b
}

// WithHumanConsole puts a human in the first seat, driven by the console.
func (b *MatchBuilder) WithHumanConsole(console player.Console) *MatchBuilder {
	b.console = console
	return b
}

// WithPacing delays AI ticks so a rendered game is watchable.
func (b *MatchBuilder) WithPacing(d time.Duration) *MatchBuilder {
	b.pacing = d
	return b
}

// Build constructs the engine and players after all options are set.
func (b *MatchBuilder) Build() (*Match, error) {
	profile, err := b.cfg.Difficulty(b.difficulty)
	if err != nil {
		return nil, fmt.Errorf("build match: %w", err)
	}

	cfg := b.cfg.DeepCopy()
	eng := engine.New(cfg, b.log, b.rand, b.eventManager)

	match := &Match{
		Config:       cfg,
		Engine:       eng,
		EventManager: b.eventManager,
		log:          b.log,
		pacing:       b.pacing,
	}
	for i, name := range cfg.Players {
		facade := player.NewFacade(name, eng)
		var p player.Player
		if i == 0 && b.console != nil {
			p = player.NewHumanPlayer(facade, b.console)
		} else {
			// Each AI gets a child source of the match rand so the whole
			// game replays from one seed.
			aiRand := rand.New(rand.NewSource(b.rand.Int63()))
			selector := ai.NewRandomSelector(aiRand)
			manager := ai.NewDifficultyManager(b.difficulty, profile, aiRand, selector, b.log)
			p = ai.NewDriver(facade, manager, b.log)
		}
		match.Players = append(match.Players, p)
		b.eventManager.Subscribe(p)
	}

	b.eventManager.Publish(events.GameReadyEvent{
		Players:    cfg.Players,
		Difficulty: b.difficulty,
	})
	return match, nil
}
