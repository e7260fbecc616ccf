package events

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to
// events.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(e Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Manager manages listeners and dispatches events. The core only ever
// publishes; it never reads events back.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}

func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// --- Event Types for Rendering ---

// GameReadyEvent is published once the match is built and hands are dealt.
type GameReadyEvent struct {
	Players    []string
	Difficulty string
}

type TurnStartEvent struct {
	TurnNumber int
	PlayerName string
}

// CardDrawnEvent announces a draw without revealing the card.
type CardDrawnEvent struct {
	PlayerName    string
	HandSize      int
	DeckRemaining int
}

// DeckExhaustedEvent marks the documented no-op draw: nothing left to
// draw and nothing to recycle.
type DeckExhaustedEvent struct {
	PlayerName string
}

type CardPlayedEvent struct {
	PlayerName string
	Card       string
	StackID    int
	Pile       string
	NewStack   bool
}

type WildNominatedEvent struct {
	PlayerName string
	Card       string
	Character  string
	BodyPart   string
}

type CardMovedEvent struct {
	PlayerName string
	Card       string
	FromStack  int
	FromPile   string
	ToStack    int
	ToPile     string
}

type MoveSkippedEvent struct {
	PlayerName string
}

type StackCompletedEvent struct {
	PlayerName string
	Character  string
	StackID    int
	Score      int
}

type GameOverEvent struct {
	Winner string // empty on a turn-limit draw
	Scores map[string][]string
	Turns  int
}
