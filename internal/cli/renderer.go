package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
	"github.com/tarttelin/npzr-ai-sub002/internal/events"
)

// BoardSource is the query surface the renderer reads. The engine
// implements it.
type BoardSource interface {
	StackViews() []engine.StackView
	Hand(player string) []*engine.Card
	Score(player string) []engine.Character
	DeckRemaining() int
}

// MatchRenderer implements events.Listener and prints the play-by-play.
type MatchRenderer struct {
	// Verbose additionally prints per-action detail; the sim command
	// leaves it off when running many games.
	Verbose bool
}

// HandleEvent is the central dispatcher for rendering events.
func (r *MatchRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		C.Header.Printf("--- New game: %s (difficulty: %s) ---\n",
			strings.Join(event.Players, " vs "), event.Difficulty)
	case events.TurnStartEvent:
		if r.Verbose {
			C.Header.Printf("\n--- Turn %d: %s ---\n", event.TurnNumber, event.PlayerName)
		}
	case events.CardDrawnEvent:
		if r.Verbose {
			C.Info.Printf("%s draws a card (%d in hand, %d left in the deck).\n",
				event.PlayerName, event.HandSize, event.DeckRemaining)
		}
	case events.DeckExhaustedEvent:
		if r.Verbose {
			C.Warn.Printf("%s cannot draw: deck and discard are both empty.\n", event.PlayerName)
		}
	case events.CardPlayedEvent:
		if r.Verbose {
			target := fmt.Sprintf("stack %d", event.StackID)
			if event.NewStack {
				target = fmt.Sprintf("a new stack (%d)", event.StackID)
			}
			C.Info.Printf("%s plays %s on the %s pile of %s.\n",
				event.PlayerName, event.Card, event.Pile, target)
		}
	case events.WildNominatedEvent:
		if r.Verbose {
			C.Info.Printf("%s nominates the wild as %s %s.\n",
				event.PlayerName, event.Character, event.BodyPart)
		}
	case events.CardMovedEvent:
		if r.Verbose {
			C.Info.Printf("%s moves %s from stack %d (%s) to stack %d (%s).\n",
				event.PlayerName, event.Card, event.FromStack, event.FromPile, event.ToStack, event.ToPile)
		}
	case events.MoveSkippedEvent:
		if r.Verbose {
			C.Info.Printf("%s skips the move phase.\n", event.PlayerName)
		}
	case events.StackCompletedEvent:
		C.Good.Printf("*** %s completes a %s! (score: %d) ***\n",
			event.PlayerName, event.Character, event.Score)
	case events.GameOverEvent:
		r.renderGameResult(event)
	}
}

func (r *MatchRenderer) renderGameResult(event events.GameOverEvent) {
	C.Header.Println("\n--- GAME OVER ---")
	if event.Winner == "" {
		C.Warn.Printf("No winner after %d turns.\n", event.Turns)
		return
	}
	C.Good.Printf("%s wins after %d turns!\n", event.Winner, event.Turns)
	for name, chars := range event.Scores {
		C.Info.Printf("  %s completed: %s\n", name, strings.Join(chars, ", "))
	}
}

// RenderBoard prints the stacks, the player's hand and both scores.
func RenderBoard(src BoardSource, self, opponent string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Board")
	t.AppendHeader(table.Row{"Stack", "Owner", "Head", "Torso", "Legs"})
	for _, v := range src.StackViews() {
		row := table.Row{v.ID, v.Owner}
		for _, pile := range engine.BodyParts() {
			cell := "-"
			if top, ok := v.Tops[pile]; ok {
				cell = ColorizeCard(top)
				if v.Depth[pile] > 1 {
					cell = fmt.Sprintf("%s (+%d)", cell, v.Depth[pile]-1)
				}
			}
			row = append(row, cell)
		}
		t.AppendRow(row)
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter},
	})
	t.Render()

	var cards []string
	for _, card := range src.Hand(self) {
		cards = append(cards, ColorizeCard(card))
	}
	C.Info.Printf("Your hand: %s\n", strings.Join(cards, ", "))
	C.Info.Printf("Scores: you %s | %s %s | deck: %d\n",
		scoreString(src.Score(self)), opponent, scoreString(src.Score(opponent)), src.DeckRemaining())
}

func scoreString(chars []engine.Character) string {
	if len(chars) == 0 {
		return "0"
	}
	var names []string
	for _, ch := range chars {
		names = append(names, ColorizeCharacter(ch))
	}
	return fmt.Sprintf("%d (%s)", len(chars), strings.Join(names, ", "))
}
