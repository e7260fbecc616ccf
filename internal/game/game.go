package game

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/config"
	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
	"github.com/tarttelin/npzr-ai-sub002/internal/events"
	"github.com/tarttelin/npzr-ai-sub002/internal/player"
)

// Match wires an engine to its players and runs the turn loop.
type Match struct {
	Config       *config.GameConfig
	Engine       *engine.Engine
	Players      []player.Player
	EventManager *events.Manager
	log          *logrus.Logger
	pacing       time.Duration
}

// Run executes the main loop until a winner is found, the turn limit is
// reached, or no player can act. Each iteration resolves exactly one
// decision tick of the active player.
func (m *Match) Run() (string, error) {
	m.Engine.Start()

	// A turn takes a handful of ticks (draw, play, maybe nominate,
	// move); the cap only exists to stop a stuck loop.
	maxTicks := m.Config.TurnLimit * 8
	for tick := 0; tick < maxTicks; tick++ {
		if m.Engine.Over() || m.Engine.Turn() >= m.Config.TurnLimit {
			break
		}
		active, ok := m.activePlayer()
		if !ok {
			m.log.Warn("no active player; ending the match")
			break
		}
		if err := active.TakeAction(); err != nil {
			if isGameError(err) {
				// A refused action: the player may retry from unchanged
				// state on the next tick.
				m.log.Debugf("%s: %v", active.Name(), err)
				continue
			}
			// Input failures (e.g. an aborted prompt) end the match.
			return "", err
		}
		if active.IsHuman() {
			continue
		}
		if m.pacing > 0 {
			time.Sleep(m.pacing)
		}
	}

	if !m.Engine.Over() {
		m.EventManager.Publish(events.GameOverEvent{Turns: m.Engine.Turn() + 1})
	}
	return m.Engine.Winner(), nil
}

func (m *Match) activePlayer() (player.Player, bool) {
	name, ok := m.Engine.ActivePlayer()
	if !ok {
		return nil, false
	}
	for _, p := range m.Players {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

func isGameError(err error) bool {
	return errors.Is(err, engine.ErrValidation) ||
		errors.Is(err, engine.ErrNotFound) ||
		errors.Is(err, engine.ErrInvalidState) ||
		errors.Is(err, engine.ErrEmptyDeck)
}
