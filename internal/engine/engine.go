package engine

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/config"
	"github.com/tarttelin/npzr-ai-sub002/internal/events"
)

// Placement addresses where a played card lands: an existing stack's pile,
// or the named pile of a brand-new stack owned by the playing player.
type Placement struct {
	NewStack bool
	StackID  int
	Pile     BodyPart
}

// MoveSpec addresses the relocation of a visible top card during the move
// phase. Source and destination may belong to either player; the
// destination may instead be a new stack owned by the moving player.
type MoveSpec struct {
	CardID     uuid.UUID
	FromStack  int
	FromPile   BodyPart
	ToNewStack bool
	ToStack    int
	ToPile     BodyPart
}

// playerState is everything the engine owns for one player.
type playerState struct {
	name   string
	hand   *Hand
	stacks []*Stack
	score  map[Character]bool
	state  TurnState
}

// Engine owns the deck, every player's hand, stacks and score, sequences
// turns, and validates and applies every action. Each action is
// all-or-nothing: any precondition failure returns a descriptive error
// with no mutation.
type Engine struct {
	cfg         *config.GameConfig
	deck        *Deck
	players     []*playerState
	discard     []*Card
	events      *events.Manager
	log         logrus.FieldLogger
	nextStackID int
	pendingWild *Card
	turn        int
	winner      string
	over        bool
}

// New builds an engine with a shuffled deck and deals each player their
// initial hand. No player is activated until Start.
func New(cfg *config.GameConfig, logger logrus.FieldLogger, r *rand.Rand, em *events.Manager) *Engine {
	e := &Engine{
		cfg:         cfg,
		deck:        NewDeck(r),
		events:      em,
		log:         logger,
		nextStackID: 1,
	}
	for _, name := range cfg.Players {
		e.players = append(e.players, &playerState{
			name:  name,
			hand:  NewHand(),
			score: make(map[Character]bool),
			state: StateWaiting,
		})
	}
	for i := 0; i < cfg.InitialHandSize; i++ {
		for _, p := range e.players {
			if card, err := e.deck.Draw(); err == nil {
				p.hand.Add(card)
			}
		}
	}
	return e
}

// Start activates the first player's turn.
func (e *Engine) Start() {
	e.players[0].state = StateDraw
	e.events.Publish(events.TurnStartEvent{TurnNumber: e.turn + 1, PlayerName: e.players[0].name})
}

func (e *Engine) playerByName(name string) (*playerState, error) {
	for _, p := range e.players {
		if p.name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no player named %q", ErrNotFound, name)
}

func (e *Engine) requireState(name, action string, guard func(TurnState) bool) (*playerState, error) {
	p, err := e.playerByName(name)
	if err != nil {
		return nil, err
	}
	if !guard(p.state) {
		return nil, fmt.Errorf("%w: %s cannot %s in state %s", ErrInvalidState, name, action, p.state)
	}
	return p, nil
}

func (e *Engine) stackByID(id int) (*Stack, *playerState, error) {
	for _, p := range e.players {
		for _, s := range p.stacks {
			if s.ID() == id {
				return s, p, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("%w: no stack with id %d", ErrNotFound, id)
}

// DrawCard draws the top deck card into the player's hand. An exhausted
// deck triggers an automatic reshuffle of the discard pile; if nothing is
// recyclable either, the draw is a no-op that still advances the state
// machine and a nil card is returned.
func (e *Engine) DrawCard(name string) (*Card, error) {
	p, err := e.requireState(name, "draw", TurnState.CanDrawCard)
	if err != nil {
		return nil, err
	}
	card, err := e.deck.Draw()
	if err != nil && len(e.discard) > 0 {
		e.log.Debugf("deck exhausted, reshuffling %d discarded cards", len(e.discard))
		e.deck.Reshuffle(e.discard)
		e.discard = nil
		card, err = e.deck.Draw()
	}
	if err != nil {
		e.events.Publish(events.DeckExhaustedEvent{PlayerName: name})
		e.advanceAfterDraw(p)
		return nil, nil
	}
	p.hand.Add(card)
	e.events.Publish(events.CardDrawnEvent{
		PlayerName:    name,
		HandSize:      p.hand.Size(),
		DeckRemaining: e.deck.Remaining(),
	})
	e.advanceAfterDraw(p)
	return card, nil
}

func (e *Engine) advanceAfterDraw(p *playerState) {
	// A hand can only be empty here after repeated no-op draws; playing
	// is then unreachable and the turn proceeds to the move phase.
	if p.hand.Size() == 0 {
		p.state = StateMove
		return
	}
	p.state = StatePlay
}

// PlayCard removes the card from the player's hand and pushes it onto the
// addressed pile. A wild play leaves the player in the nomination state;
// any other play proceeds to the move phase after completions are
// resolved.
func (e *Engine) PlayCard(name string, cardID uuid.UUID, pl Placement) error {
	p, err := e.requireState(name, "play", TurnState.CanPlayCard)
	if err != nil {
		return err
	}
	card, ok := p.hand.Find(cardID)
	if !ok {
		return fmt.Errorf("%w: card %s is not in %s's hand", ErrNotFound, cardID, name)
	}

	var target *Stack
	if pl.NewStack {
		if pl.Pile == PartWild {
			return fmt.Errorf("%w: a new stack needs a concrete target pile", ErrValidation)
		}
		if card.BodyPart != pl.Pile && !card.IsWild() {
			return fmt.Errorf("%w: %s cannot start the %s pile of a new stack", ErrValidation, card, pl.Pile)
		}
	} else {
		target, _, err = e.stackByID(pl.StackID)
		if err != nil {
			return err
		}
		if !target.CanAcceptCard(card, pl.Pile) {
			return fmt.Errorf("%w: %s cannot be placed on the %s pile of stack %d", ErrValidation, card, pl.Pile, pl.StackID)
		}
	}

	if _, err := p.hand.Remove(cardID); err != nil {
		return err
	}
	if target == nil {
		target = NewStack(e.nextStackID, name)
		e.nextStackID++
		p.stacks = append(p.stacks, target)
	}
	if err := target.AddCard(card, pl.Pile); err != nil {
		// Unreachable after the checks above; restore the hand anyway.
		p.hand.Add(card)
		return err
	}
	e.events.Publish(events.CardPlayedEvent{
		PlayerName: name,
		Card:       card.String(),
		StackID:    target.ID(),
		Pile:       pl.Pile.String(),
		NewStack:   pl.NewStack,
	})

	if card.IsWild() && !card.IsNominated() {
		e.pendingWild = card
		p.state = StateNominate
		return nil
	}
	e.resolveBoard()
	e.advanceAfterPlay(p)
	return nil
}

// NominateWild resolves the effective identity of the wild card just
// played. Only the pending wild may be nominated.
func (e *Engine) NominateWild(name string, cardID uuid.UUID, n Nomination) error {
	p, err := e.requireState(name, "nominate", TurnState.CanNominate)
	if err != nil {
		return err
	}
	if e.pendingWild == nil || e.pendingWild.ID != cardID {
		return fmt.Errorf("%w: card %s is not awaiting nomination", ErrValidation, cardID)
	}
	if err := e.pendingWild.Nominate(n); err != nil {
		return err
	}
	e.events.Publish(events.WildNominatedEvent{
		PlayerName: name,
		Card:       e.pendingWild.String(),
		Character:  n.Character.String(),
		BodyPart:   n.BodyPart.String(),
	})
	e.pendingWild = nil
	e.resolveBoard()
	e.advanceAfterPlay(p)
	return nil
}

func (e *Engine) advanceAfterPlay(p *playerState) {
	if e.over {
		return
	}
	p.state = StateMove
}

// MoveCard relocates a visible top card from one pile to another, or onto
// a new stack owned by the moving player. Either player's stacks may be
// the source or destination. A successful move ends the turn.
func (e *Engine) MoveCard(name string, m MoveSpec) error {
	p, err := e.requireState(name, "move", TurnState.CanMoveCard)
	if err != nil {
		return err
	}
	src, srcOwner, err := e.stackByID(m.FromStack)
	if err != nil {
		return err
	}
	card, ok := src.TopCard(m.FromPile)
	if !ok || card.ID != m.CardID {
		return fmt.Errorf("%w: card %s is not on top of the %s pile of stack %d", ErrNotFound, m.CardID, m.FromPile, m.FromStack)
	}

	var dst *Stack
	if m.ToNewStack {
		if m.ToPile == PartWild {
			return fmt.Errorf("%w: a new stack needs a concrete target pile", ErrValidation)
		}
		if card.BodyPart != m.ToPile && !card.IsWild() {
			return fmt.Errorf("%w: %s cannot start the %s pile of a new stack", ErrValidation, card, m.ToPile)
		}
	} else {
		if m.ToStack == m.FromStack && m.ToPile == m.FromPile {
			return fmt.Errorf("%w: a move must change the card's pile", ErrValidation)
		}
		dst, _, err = e.stackByID(m.ToStack)
		if err != nil {
			return err
		}
		if !dst.CanAcceptCard(card, m.ToPile) {
			return fmt.Errorf("%w: %s cannot be placed on the %s pile of stack %d", ErrValidation, card, m.ToPile, m.ToStack)
		}
	}

	if _, err := src.RemoveTop(m.FromPile); err != nil {
		return err
	}
	if dst == nil {
		dst = NewStack(e.nextStackID, name)
		e.nextStackID++
		p.stacks = append(p.stacks, dst)
	}
	if err := dst.AddCard(card, m.ToPile); err != nil {
		src.piles[m.FromPile] = append(src.piles[m.FromPile], card)
		return err
	}
	if src.IsEmpty() {
		e.removeStack(srcOwner, src)
	}
	e.events.Publish(events.CardMovedEvent{
		PlayerName: name,
		Card:       card.String(),
		FromStack:  m.FromStack,
		FromPile:   m.FromPile.String(),
		ToStack:    dst.ID(),
		ToPile:     m.ToPile.String(),
	})
	e.resolveBoard()
	e.endTurn(p)
	return nil
}

// SkipMove declines the move phase and hands the turn to the opponent.
func (e *Engine) SkipMove(name string) error {
	p, err := e.requireState(name, "skip the move phase", TurnState.CanMoveCard)
	if err != nil {
		return err
	}
	e.events.Publish(events.MoveSkippedEvent{PlayerName: name})
	e.endTurn(p)
	return nil
}

func (e *Engine) endTurn(p *playerState) {
	if e.over {
		return
	}
	p.state = StateWaiting
	next := e.opponentOf(p)
	next.state = StateDraw
	e.turn++
	e.events.Publish(events.TurnStartEvent{TurnNumber: e.turn + 1, PlayerName: next.name})
}

func (e *Engine) opponentOf(p *playerState) *playerState {
	for _, other := range e.players {
		if other != p {
			return other
		}
	}
	return p
}

func (e *Engine) removeStack(owner *playerState, s *Stack) {
	for i, st := range owner.stacks {
		if st == s {
			owner.stacks = append(owner.stacks[:i], owner.stacks[i+1:]...)
			return
		}
	}
}

// resolveBoard consumes completed stacks, credits their owners, and
// declares the winner when a score reaches the configured threshold.
// Completion credits the stack's owner regardless of whose action
// finished it.
func (e *Engine) resolveBoard() {
	for _, p := range e.players {
		for _, s := range append([]*Stack(nil), p.stacks...) {
			ch, ok := s.CompletedCharacter()
			if !ok {
				continue
			}
			p.score[ch] = true
			e.discard = append(e.discard, s.Cards()...)
			e.removeStack(p, s)
			e.events.Publish(events.StackCompletedEvent{
				PlayerName: p.name,
				Character:  ch.String(),
				StackID:    s.ID(),
				Score:      len(p.score),
			})
			e.log.Debugf("%s completed a %s (score %d)", p.name, ch, len(p.score))
		}
	}
	for _, p := range e.players {
		if len(p.score) >= e.cfg.WinningScore {
			e.declareWinner(p)
			return
		}
	}
}

func (e *Engine) declareWinner(winner *playerState) {
	e.over = true
	e.winner = winner.name
	scores := make(map[string][]string)
	for _, p := range e.players {
		p.state = StateGameOver
		for _, ch := range p.Score() {
			scores[p.name] = append(scores[p.name], ch.String())
		}
	}
	e.events.Publish(events.GameOverEvent{Winner: winner.name, Scores: scores, Turns: e.turn + 1})
}

// Score returns the player's completed characters in a fixed order.
func (p *playerState) Score() []Character {
	var out []Character
	for ch := range p.score {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- Query surface ---

// TurnStateOf reports the player's current turn state.
func (e *Engine) TurnStateOf(name string) TurnState {
	p, err := e.playerByName(name)
	if err != nil {
		return StateWaiting
	}
	return p.state
}

// Hand returns a snapshot of the player's hand in stable draw order.
func (e *Engine) Hand(name string) []*Card {
	p, err := e.playerByName(name)
	if err != nil {
		return nil
	}
	out := make([]*Card, 0, p.hand.Size())
	for _, c := range p.hand.Cards() {
		out = append(out, c.Clone())
	}
	return out
}

// StackViews snapshots every stack on the board, ordered by stack id.
func (e *Engine) StackViews() []StackView {
	var out []StackView
	for _, p := range e.players {
		for _, s := range p.stacks {
			out = append(out, s.View())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Score returns the player's completed characters.
func (e *Engine) Score(name string) []Character {
	p, err := e.playerByName(name)
	if err != nil {
		return nil
	}
	return p.Score()
}

// Opponent names the other player.
func (e *Engine) Opponent(name string) (string, error) {
	p, err := e.playerByName(name)
	if err != nil {
		return "", err
	}
	return e.opponentOf(p).name, nil
}

// DeckRemaining reports how many cards are left to draw.
func (e *Engine) DeckRemaining() int { return e.deck.Remaining() }

// DiscardCount reports how many consumed cards await recycling.
func (e *Engine) DiscardCount() int { return len(e.discard) }

// WinningScore is the configured completion count needed to win.
func (e *Engine) WinningScore() int { return e.cfg.WinningScore }

// Turn reports the zero-based count of completed turn handovers.
func (e *Engine) Turn() int { return e.turn }

// Over reports whether the game has concluded.
func (e *Engine) Over() bool { return e.over }

// Winner names the winning player, or empty while the game is live.
func (e *Engine) Winner() string { return e.winner }

// ActivePlayer names the player currently holding the turn, if any.
func (e *Engine) ActivePlayer() (string, bool) {
	for _, p := range e.players {
		if p.state.Active() {
			return p.name, true
		}
	}
	return "", false
}
