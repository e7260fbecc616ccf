package engine

// TurnState is the per-player state controlling which actions are legal.
// Exactly one player is active (neither waiting nor game-over) at a time.
type TurnState int

const (
	StateWaiting TurnState = iota
	StateDraw
	StatePlay
	StateNominate
	StateMove
	StateGameOver
)

func (s TurnState) String() string {
	return []string{
		"WAITING_FOR_OPPONENT",
		"DRAW_CARD",
		"PLAY_CARD",
		"NOMINATE_WILD",
		"MOVE_CARD",
		"GAME_OVER",
	}[s]
}

// CanDrawCard reports whether a draw is legal in this state.
func (s TurnState) CanDrawCard() bool { return s == StateDraw }

// CanPlayCard reports whether a play is legal in this state.
func (s TurnState) CanPlayCard() bool { return s == StatePlay }

// CanNominate reports whether a wild nomination is legal in this state.
func (s TurnState) CanNominate() bool { return s == StateNominate }

// CanMoveCard reports whether a move (or skip) is legal in this state.
func (s TurnState) CanMoveCard() bool { return s == StateMove }

// Active reports whether the player owning this state holds the turn.
func (s TurnState) Active() bool {
	return s != StateWaiting && s != StateGameOver
}

// Terminal reports whether the state machine has reached its end.
func (s TurnState) Terminal() bool { return s == StateGameOver }
