package ai

import (
	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/events"
	"github.com/tarttelin/npzr-ai-sub002/internal/player"
)

// Driver is the computer opponent. Each scheduling tick it dispatches on
// its turn state, runs the analysis/evaluation pipeline, and executes the
// winning candidate through the player facade. Errors are logged with
// context and never propagate, so the driver stays safe to re-invoke.
type Driver struct {
	facade     *player.Facade
	difficulty *DifficultyManager
	log        logrus.FieldLogger
}

// NewDriver creates the AI player for one seat.
func NewDriver(facade *player.Facade, difficulty *DifficultyManager, log logrus.FieldLogger) *Driver {
	return &Driver{facade: facade, difficulty: difficulty, log: log}
}

func (d *Driver) Name() string  { return d.facade.Name() }
func (d *Driver) IsHuman() bool { return false }

// HandleEvent implements events.Listener. The driver re-derives state
// from scratch each decision, so there is nothing to track.
func (d *Driver) HandleEvent(e events.Event) {}

// TakeAction performs one decision tick.
func (d *Driver) TakeAction() error {
	switch state := d.facade.State(); {
	case state.CanDrawCard():
		d.draw()
	case state.CanPlayCard():
		d.play()
	case state.CanNominate():
		// Placement and nomination are executed as one unit within play;
		// starting a tick here means they were decoupled somewhere.
		d.log.WithFields(logrus.Fields{
			"player": d.Name(),
			"state":  state.String(),
		}).Error("reached a standalone nomination state")
	case state.CanMoveCard():
		d.move()
	default:
		// Waiting or game over; nothing to do.
	}
	return nil
}

func (d *Driver) position() Position {
	return Position{
		Hand:          d.facade.Hand(),
		Own:           d.facade.OwnStacks(),
		Opp:           d.facade.OpponentStacks(),
		OwnScore:      len(d.facade.Score()),
		OppScore:      len(d.facade.OpponentScore()),
		WinningScore:  d.facade.WinningScore(),
		DeckRemaining: d.facade.DeckRemaining(),
	}
}

func (d *Driver) draw() {
	if _, err := d.facade.Draw(); err != nil {
		d.logError("draw", err)
	}
}

func (d *Driver) play() {
	pos := d.position()
	analysis := Analyze(pos)
	cands := EvaluatePlays(pos, analysis)
	SortPlays(cands)
	cands = d.difficulty.FilterPlays(cands)
	pick := d.difficulty.ChoosePlay(cands)
	if pick == nil {
		d.log.WithField("player", d.Name()).Error("no playable candidate found")
		return
	}
	d.log.WithFields(logrus.Fields{
		"player":     d.Name(),
		"action":     "play",
		"difficulty": d.difficulty.Name(),
		"cardId":     pick.Card.ID.String(),
		"category":   pick.Category.String(),
		"value":      pick.Value,
		"phase":      analysis.Phase.String(),
		"threat":     analysis.Threat.String(),
		"reasoning":  pick.Reasoning,
	}).Info("playing card")
	if err := d.facade.Play(pick.Card.ID, pick.Placement); err != nil {
		d.logError("play", err)
		return
	}
	// A wild winner carries its nomination; resolve it in the same tick.
	if pick.Nomination != nil {
		if err := d.facade.Nominate(pick.Card.ID, *pick.Nomination); err != nil {
			d.logError("nominate", err)
		}
	}
}

func (d *Driver) move() {
	pos := d.position()
	analysis := Analyze(pos)
	cands := EvaluateMoves(pos, analysis)
	SortMoves(cands)
	cands = d.difficulty.FilterMoves(cands)
	pick := d.difficulty.ChooseMove(cands)
	if pick == nil || pick.Value < MoveValueFloor {
		if err := d.facade.SkipMove(); err != nil {
			d.logError("skip", err)
		}
		return
	}
	d.log.WithFields(logrus.Fields{
		"player":     d.Name(),
		"action":     "move",
		"difficulty": d.difficulty.Name(),
		"cardId":     pick.Spec.CardID.String(),
		"category":   pick.Category.String(),
		"value":      pick.Value,
		"reasoning":  pick.Reasoning,
	}).Info("moving card")
	if err := d.facade.Move(pick.Spec); err != nil {
		d.logError("move", err)
		if err := d.facade.SkipMove(); err != nil {
			d.logError("skip", err)
		}
	}
}

func (d *Driver) logError(action string, err error) {
	d.log.WithFields(logrus.Fields{
		"player": d.Name(),
		"state":  d.facade.State().String(),
		"action": action,
		"error":  err,
	}).Error("action failed, abandoning this decision tick")
}
