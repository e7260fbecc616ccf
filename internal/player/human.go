package player

import (
	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
	"github.com/tarttelin/npzr-ai-sub002/internal/events"
)

// Console is the input surface a human player needs. The CLI implements
// it; keeping the interface here leaves this package free of terminal
// concerns.
type Console interface {
	// ChooseCard picks one of the held cards.
	ChooseCard(prompt string, cards []*engine.Card) (*engine.Card, error)
	// ChoosePlacement picks where the chosen card lands.
	ChoosePlacement(card *engine.Card, stacks []engine.StackView) (engine.Placement, error)
	// ChooseNomination resolves a wild card's effective identity.
	ChooseNomination(card *engine.Card) (engine.Nomination, error)
	// ChooseMove picks a relocation for the move phase; nil skips it.
	ChooseMove(stacks []engine.StackView) (*engine.MoveSpec, error)
}

// HumanPlayer drives the facade from console input.
type HumanPlayer struct {
	facade  *Facade
	console Console
	pending *engine.Card // wild awaiting nomination
}

// NewHumanPlayer creates a console-driven player.
func NewHumanPlayer(facade *Facade, console Console) *HumanPlayer {
	return &HumanPlayer{facade: facade, console: console}
}

func (h *HumanPlayer) Name() string  { return h.facade.Name() }
func (h *HumanPlayer) IsHuman() bool { return true }

// HandleEvent implements events.Listener; the console renders events, the
// player itself has nothing to track.
func (h *HumanPlayer) HandleEvent(e events.Event) {}

// TakeAction prompts for and executes one action matching the current
// turn state. Input errors (including an aborted prompt) propagate so the
// match loop can stop cleanly.
func (h *HumanPlayer) TakeAction() error {
	switch state := h.facade.State(); {
	case state.CanDrawCard():
		_, err := h.facade.Draw()
		return err
	case state.CanPlayCard():
		return h.play()
	case state.CanNominate():
		return h.nominate()
	case state.CanMoveCard():
		return h.move()
	default:
		return nil
	}
}

func (h *HumanPlayer) play() error {
	card, err := h.console.ChooseCard("Which card do you want to play?", h.facade.Hand())
	if err != nil {
		return err
	}
	pl, err := h.console.ChoosePlacement(card, h.facade.Stacks())
	if err != nil {
		return err
	}
	if err := h.facade.Play(card.ID, pl); err != nil {
		return err
	}
	if card.IsWild() {
		h.pending = card
	}
	return nil
}

func (h *HumanPlayer) nominate() error {
	if h.pending == nil {
		// Shouldn't happen: a nomination is only pending right after a
		// wild play by this player.
		return h.facade.SkipMove()
	}
	n, err := h.console.ChooseNomination(h.pending)
	if err != nil {
		return err
	}
	if err := h.facade.Nominate(h.pending.ID, n); err != nil {
		return err
	}
	h.pending = nil
	return nil
}

func (h *HumanPlayer) move() error {
	spec, err := h.console.ChooseMove(h.facade.Stacks())
	if err != nil {
		return err
	}
	if spec == nil {
		return h.facade.SkipMove()
	}
	return h.facade.Move(*spec)
}
