package ai

import (
	"strings"
	"testing"

	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
)

func bestPlay(pos Position) *PlayCandidate {
	a := Analyze(pos)
	cands := EvaluatePlays(pos, a)
	SortPlays(cands)
	if len(cands) == 0 {
		return nil
	}
	return cands[0]
}

func TestCompletionOutranksEverything(t *testing.T) {
	// GIVEN a hand holding both a closer and a blocker, with the
	// opponent also one card from completing
	closer := card(engine.Ninja, engine.Legs)
	blocker := card(engine.Robot, engine.Head)
	pos := Position{
		Hand: []*engine.Card{blocker, closer},
		Own: []engine.StackView{view(1, "me", map[engine.BodyPart]*engine.Card{
			engine.Head:  card(engine.Ninja, engine.Head),
			engine.Torso: card(engine.Ninja, engine.Torso),
		})},
		Opp: []engine.StackView{view(2, "them", map[engine.BodyPart]*engine.Card{
			engine.Head:  card(engine.Pirate, engine.Head),
			engine.Torso: card(engine.Pirate, engine.Torso),
		})},
		OppScore:     2,
		WinningScore: 3,
	}

	// WHEN evaluated
	pick := bestPlay(pos)

	// THEN finishing our own stack beats even a critical block
	if pick.Category != CategoryCompletion {
		t.Fatalf("expected a completion, got %s (%s)", pick.Category, pick.Reasoning)
	}
	if pick.Card.ID != closer.ID || pick.Placement.StackID != 1 || pick.Placement.Pile != engine.Legs {
		t.Errorf("expected the closer on stack 1 legs, got %+v", pick)
	}
	if pick.Value < completionValue {
		t.Errorf("expected value >= %d, got %.0f", completionValue, pick.Value)
	}
}

func TestBlockingTiers(t *testing.T) {
	blocker := card(engine.Robot, engine.Head)
	oppStack := view(2, "them", map[engine.BodyPart]*engine.Card{
		engine.Head:  card(engine.Pirate, engine.Head),
		engine.Torso: card(engine.Pirate, engine.Torso),
	})

	t.Run("a near-winning opponent makes the block critical", func(t *testing.T) {
		pos := Position{
			Hand:         []*engine.Card{blocker},
			Opp:          []engine.StackView{oppStack},
			OppScore:     2,
			WinningScore: 3,
		}
		pick := bestPlay(pos)
		if pick.Category != CategoryBlocking || pick.Value != criticalBlockValue {
			t.Errorf("expected a critical block worth %d, got %s %.0f", criticalBlockValue, pick.Category, pick.Value)
		}
	})

	t.Run("two progress without the score pressure is important", func(t *testing.T) {
		pos := Position{
			Hand:         []*engine.Card{blocker},
			Opp:          []engine.StackView{oppStack},
			OppScore:     0,
			WinningScore: 3,
		}
		pick := bestPlay(pos)
		if pick.Category != CategoryBlocking || pick.Value != importantBlockValue {
			t.Errorf("expected an important block worth %d, got %s %.0f", importantBlockValue, pick.Category, pick.Value)
		}
	})

	t.Run("single-card progress rates a minor block", func(t *testing.T) {
		pos := Position{
			Hand: []*engine.Card{blocker},
			Opp: []engine.StackView{view(2, "them", map[engine.BodyPart]*engine.Card{
				engine.Head: card(engine.Pirate, engine.Head),
			})},
			WinningScore: 3,
		}
		pick := bestPlay(pos)
		if pick.Category != CategoryBlocking || pick.Value != minorBlockValue {
			t.Errorf("expected a minor block worth %d, got %s %.0f", minorBlockValue, pick.Category, pick.Value)
		}
	})
}

func TestNeverHandsTheOpponentACompletion(t *testing.T) {
	// GIVEN the only pile play would give the opponent their third part
	gift := card(engine.Pirate, engine.Legs)
	pos := Position{
		Hand: []*engine.Card{gift},
		Opp: []engine.StackView{view(2, "them", map[engine.BodyPart]*engine.Card{
			engine.Head:  card(engine.Pirate, engine.Head),
			engine.Torso: card(engine.Pirate, engine.Torso),
		})},
		WinningScore: 3,
	}
	a := Analyze(pos)
	cands := EvaluatePlays(pos, a)
	for _, c := range cands {
		if c.Placement.StackID != 2 || c.Placement.Pile != engine.Legs {
			continue
		}
		if c.Value > float64(helpsOpponentValue) {
			t.Errorf("expected the gifting play to be worth at most %d, got %.0f (%s)", helpsOpponentValue, c.Value, c.Reasoning)
		}
	}
}

func TestWildNominationBundle(t *testing.T) {
	// Every wild candidate carries a nomination whose body part matches
	// the target pile, and respects the wild's fixed axis.
	pos := Position{
		Hand: []*engine.Card{card(engine.Ninja, engine.PartWild)},
		Own: []engine.StackView{view(1, "me", map[engine.BodyPart]*engine.Card{
			engine.Head: card(engine.Ninja, engine.Head),
		})},
		DeckRemaining: 30,
	}
	a := Analyze(pos)
	cands := EvaluatePlays(pos, a)
	if len(cands) == 0 {
		t.Fatal("expected wild candidates")
	}
	for _, c := range cands {
		if c.Nomination == nil {
			t.Fatalf("expected every wild candidate to bundle a nomination: %+v", c)
		}
		if c.Nomination.BodyPart != c.Placement.Pile {
			t.Errorf("expected the nominated part to match the pile, got %s onto %s", c.Nomination.BodyPart, c.Placement.Pile)
		}
		if c.Nomination.Character != engine.Ninja {
			t.Errorf("expected the fixed character axis to hold, got %s", c.Nomination.Character)
		}
	}
}

func TestWildConservation(t *testing.T) {
	wild := card(engine.CharacterWild, engine.PartWild)

	t.Run("a speculative early wild play is penalized", func(t *testing.T) {
		// GIVEN an early position with nothing urgent
		pos := Position{
			Hand:          []*engine.Card{wild},
			DeckRemaining: 30,
		}
		pick := bestPlay(pos)

		// THEN the best wild play is held close to worthless
		if pick.Value > float64(newStackBase) {
			t.Errorf("expected the conservation penalty to apply, got %.0f (%s)", pick.Value, pick.Reasoning)
		}
		if !strings.Contains(pick.Reasoning, "conserving wild") {
			t.Errorf("expected conservation reasoning, got %q", pick.Reasoning)
		}
	})

	t.Run("a completion is never penalized", func(t *testing.T) {
		pos := Position{
			Hand: []*engine.Card{wild},
			Own: []engine.StackView{view(1, "me", map[engine.BodyPart]*engine.Card{
				engine.Head:  card(engine.Zombie, engine.Head),
				engine.Torso: card(engine.Zombie, engine.Torso),
			})},
			DeckRemaining: 30,
		}
		pick := bestPlay(pos)
		if pick.Category != CategoryCompletion || pick.Value != completionValue {
			t.Errorf("expected an unpenalized completion, got %s %.0f", pick.Category, pick.Value)
		}
	})

	t.Run("late in the game the penalty lapses", func(t *testing.T) {
		pos := Position{
			Hand:          []*engine.Card{wild},
			DeckRemaining: 5,
		}
		pick := bestPlay(pos)
		if strings.Contains(pick.Reasoning, "conserving wild") {
			t.Errorf("expected no conservation late, got %q", pick.Reasoning)
		}
	})
}

func TestNewStackSupport(t *testing.T) {
	t.Run("held support raises a fresh stack's value", func(t *testing.T) {
		ninjaHead := card(engine.Ninja, engine.Head)
		pos := Position{
			Hand: []*engine.Card{
				ninjaHead,
				card(engine.Ninja, engine.Torso),
				card(engine.Ninja, engine.Legs),
			},
		}
		if got := newStackValue(pos, ninjaHead, engine.Ninja); got != newStackBase+2*supportBonus {
			t.Errorf("expected %d, got %.0f", newStackBase+2*supportBonus, got)
		}
	})

	t.Run("support is capped", func(t *testing.T) {
		robotHead := card(engine.Robot, engine.Head)
		pos := Position{
			Hand: []*engine.Card{
				robotHead,
				card(engine.Robot, engine.Torso),
				card(engine.Robot, engine.Legs),
				card(engine.Robot, engine.PartWild),
				card(engine.CharacterWild, engine.Head),
			},
		}
		if got := newStackValue(pos, robotHead, engine.Robot); got != newStackBase+3*supportBonus {
			t.Errorf("expected the cap at %d, got %.0f", newStackBase+3*supportBonus, got)
		}
	})
}

func TestSortPlaysIsDeterministic(t *testing.T) {
	build := func() []*PlayCandidate {
		return []*PlayCandidate{
			{HandIndex: 2, Category: CategoryNeutral, Value: 10},
			{HandIndex: 0, Category: CategoryBlocking, Value: 400},
			{HandIndex: 1, Category: CategoryCompletion, Value: 400},
			{HandIndex: 3, Category: CategoryBuilding, Value: 300},
		}
	}
	a, b := build(), build()
	SortPlays(a)
	SortPlays(b)
	for i := range a {
		if a[i].HandIndex != b[i].HandIndex {
			t.Fatalf("expected identical rankings, diverged at %d", i)
		}
	}
	// Ties break on category precedence, then hand order.
	if a[0].Category != CategoryCompletion || a[1].Category != CategoryBlocking {
		t.Errorf("expected completion to outrank blocking at equal value, got %s then %s", a[0].Category, a[1].Category)
	}
}
