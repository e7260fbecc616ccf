package player

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
	"github.com/tarttelin/npzr-ai-sub002/internal/events"
)

// Player is the interface that all player types (human or AI) must
// implement. TakeAction performs at most one engine action per scheduling
// tick; the match loop keeps invoking it while the player is active.
type Player interface {
	events.Listener

	Name() string
	IsHuman() bool
	TakeAction() error
}

// Actions is the narrow slice of engine behaviour a player facade needs,
// injected at construction instead of a back-reference to the whole
// orchestrator.
type Actions interface {
	DrawCard(player string) (*engine.Card, error)
	PlayCard(player string, cardID uuid.UUID, pl engine.Placement) error
	NominateWild(player string, cardID uuid.UUID, n engine.Nomination) error
	MoveCard(player string, m engine.MoveSpec) error
	SkipMove(player string) error

	TurnStateOf(player string) engine.TurnState
	Hand(player string) []*engine.Card
	StackViews() []engine.StackView
	Score(player string) []engine.Character
	Opponent(player string) (string, error)
	DeckRemaining() int
	WinningScore() int
	Over() bool
}

// Facade is one player's view of and actions on the game. Every action is
// gated on the owner's turn state before delegating; the engine validates
// again, so a bypassed facade still cannot corrupt the model.
type Facade struct {
	name string
	eng  Actions
}

// NewFacade binds a player name to the engine contract.
func NewFacade(name string, eng Actions) *Facade {
	return &Facade{name: name, eng: eng}
}

// Name is the owning player's name.
func (f *Facade) Name() string { return f.name }

// State reports the owner's current turn state.
func (f *Facade) State() engine.TurnState { return f.eng.TurnStateOf(f.name) }

func (f *Facade) gate(action string, guard func(engine.TurnState) bool) error {
	if s := f.State(); !guard(s) {
		return fmt.Errorf("%w: %s cannot %s in state %s", engine.ErrInvalidState, f.name, action, s)
	}
	return nil
}

// Draw draws a card for the owner.
func (f *Facade) Draw() (*engine.Card, error) {
	if err := f.gate("draw", engine.TurnState.CanDrawCard); err != nil {
		return nil, err
	}
	return f.eng.DrawCard(f.name)
}

// Play plays the identified hand card to the placement.
func (f *Facade) Play(cardID uuid.UUID, pl engine.Placement) error {
	if err := f.gate("play", engine.TurnState.CanPlayCard); err != nil {
		return err
	}
	return f.eng.PlayCard(f.name, cardID, pl)
}

// Nominate resolves the pending wild card.
func (f *Facade) Nominate(cardID uuid.UUID, n engine.Nomination) error {
	if err := f.gate("nominate", engine.TurnState.CanNominate); err != nil {
		return err
	}
	return f.eng.NominateWild(f.name, cardID, n)
}

// Move relocates a visible top card.
func (f *Facade) Move(m engine.MoveSpec) error {
	if err := f.gate("move", engine.TurnState.CanMoveCard); err != nil {
		return err
	}
	return f.eng.MoveCard(f.name, m)
}

// SkipMove declines the move phase.
func (f *Facade) SkipMove() error {
	if err := f.gate("skip", engine.TurnState.CanMoveCard); err != nil {
		return err
	}
	return f.eng.SkipMove(f.name)
}

// Hand snapshots the owner's hand.
func (f *Facade) Hand() []*engine.Card { return f.eng.Hand(f.name) }

// Stacks snapshots every stack on the board.
func (f *Facade) Stacks() []engine.StackView { return f.eng.StackViews() }

// OwnStacks snapshots only the owner's stacks.
func (f *Facade) OwnStacks() []engine.StackView {
	return f.stacksOf(f.name)
}

// OpponentStacks snapshots only the opponent's stacks.
func (f *Facade) OpponentStacks() []engine.StackView {
	opp, err := f.eng.Opponent(f.name)
	if err != nil {
		return nil
	}
	return f.stacksOf(opp)
}

func (f *Facade) stacksOf(name string) []engine.StackView {
	var out []engine.StackView
	for _, v := range f.eng.StackViews() {
		if v.Owner == name {
			out = append(out, v)
		}
	}
	return out
}

// Score lists the owner's completed characters.
func (f *Facade) Score() []engine.Character { return f.eng.Score(f.name) }

// OpponentScore lists the opponent's completed characters.
func (f *Facade) OpponentScore() []engine.Character {
	opp, err := f.eng.Opponent(f.name)
	if err != nil {
		return nil
	}
	return f.eng.Score(opp)
}

// DeckRemaining reports the draw pile size.
func (f *Facade) DeckRemaining() int { return f.eng.DeckRemaining() }

// WinningScore is the completion count needed to win.
func (f *Facade) WinningScore() int { return f.eng.WinningScore() }

// GameOver reports whether the game has concluded.
func (f *Facade) GameOver() bool { return f.eng.Over() }
