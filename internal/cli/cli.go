package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"github.com/tarttelin/npzr-ai-sub002/internal/config"
	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
	"github.com/tarttelin/npzr-ai-sub002/internal/game"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State

	// Set for the duration of an interactive match.
	board    BoardSource
	self     string
	opponent string
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{log: log, line: line}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, cfg *config.GameConfig, rand *rand.Rand) error {
	defer c.line.Close()
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	switch args[0] {
	case "sim":
		games := 1
		difficulty := "medium"
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				c.printUsage()
				return fmt.Errorf("invalid game count %q", args[1])
			}
			games = n
		}
		if len(args) > 2 {
			difficulty = args[2]
		}
		return c.runSimulations(cfg, games, difficulty, rand)
	case "play":
		difficulty := "medium"
		if len(args) > 1 {
			difficulty = args[1]
		}
		return c.runInteractive(cfg, difficulty, rand)
	default:
		c.printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *CLI) printUsage() {
	C.Header.Println("Usage:")
	C.Info.Println("  npzr sim [games] [difficulty]   run AI-vs-AI matches")
	C.Info.Println("  npzr play [difficulty]          play against the computer")
	C.Info.Println("Difficulties: easy, medium, hard")
}

func (c *CLI) runSimulations(cfg *config.GameConfig, games int, difficulty string, rand *rand.Rand) error {
	wins := make(map[string]int)
	for i := 0; i < games; i++ {
		builder := game.NewBuilder(cfg, c.log, rand).WithDifficulty(difficulty)
		builder.EventManager().Subscribe(&MatchRenderer{Verbose: games == 1})

		match, err := builder.Build()
		if err != nil {
			return fmt.Errorf("failed to build match: %w", err)
		}
		winner, err := match.Run()
		if err != nil {
			return err
		}
		if winner == "" {
			wins["draw"]++
		} else {
			wins[winner]++
		}
	}
	C.Header.Printf("\n--- Results over %d game(s) ---\n", games)
	for name, n := range wins {
		C.Info.Printf("  %s: %d\n", name, n)
	}
	return nil
}

func (c *CLI) runInteractive(cfg *config.GameConfig, difficulty string, rand *rand.Rand) error {
	builder := game.NewBuilder(cfg, c.log, rand).
		WithDifficulty(difficulty).
		WithHumanConsole(c).
		WithPacing(300 * time.Millisecond)
	builder.EventManager().Subscribe(&MatchRenderer{Verbose: true})

	match, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build match: %w", err)
	}
	c.board = match.Engine
	c.self = cfg.Players[0]
	c.opponent = cfg.Players[1]
	defer func() { c.board = nil }()

	winner, err := match.Run()
	if err == io.EOF {
		C.Info.Println("\nGoodbye!")
		return nil
	}
	if err != nil {
		return err
	}
	switch winner {
	case c.self:
		C.Good.Println("You win!")
	case "":
	default:
		C.Bad.Println("The computer wins.")
	}
	return nil
}

// --- player.Console implementation ---

// ChooseCard shows the board and picks a hand card.
func (c *CLI) ChooseCard(prompt string, cards []*engine.Card) (*engine.Card, error) {
	if c.board != nil {
		RenderBoard(c.board, c.self, c.opponent)
	}
	options := make([]string, len(cards))
	for i, card := range cards {
		options[i] = ColorizeCard(card)
	}
	idx, err := c.promptForSelection(prompt, options)
	if err != nil {
		return nil, err
	}
	return cards[idx], nil
}

// ChoosePlacement picks a legal destination for the chosen card.
func (c *CLI) ChoosePlacement(card *engine.Card, stacks []engine.StackView) (engine.Placement, error) {
	var options []string
	var placements []engine.Placement
	for _, v := range stacks {
		for _, pile := range engine.BodyParts() {
			if card.BodyPart != pile && !card.IsWild() {
				continue
			}
			options = append(options, fmt.Sprintf("stack %d (%s), %s pile", v.ID, v.Owner, pile))
			placements = append(placements, engine.Placement{StackID: v.ID, Pile: pile})
		}
	}
	newPiles := []engine.BodyPart{card.BodyPart}
	if card.BodyPart == engine.PartWild {
		newPiles = engine.BodyParts()
	}
	for _, pile := range newPiles {
		options = append(options, fmt.Sprintf("new stack, %s pile", pile))
		placements = append(placements, engine.Placement{NewStack: true, Pile: pile})
	}
	idx, err := c.promptForSelection(fmt.Sprintf("Where do you want to play %s?", ColorizeCard(card)), options)
	if err != nil {
		return engine.Placement{}, err
	}
	return placements[idx], nil
}

// ChooseNomination resolves a wild card's effective identity.
func (c *CLI) ChooseNomination(card *engine.Card) (engine.Nomination, error) {
	n := engine.Nomination{Character: card.Character, BodyPart: card.BodyPart}
	if card.Character == engine.CharacterWild {
		var options []string
		for _, ch := range engine.Characters() {
			options = append(options, ColorizeCharacter(ch))
		}
		idx, err := c.promptForSelection("Nominate a character:", options)
		if err != nil {
			return engine.Nomination{}, err
		}
		n.Character = engine.Characters()[idx]
	}
	if card.BodyPart == engine.PartWild {
		var options []string
		for _, pile := range engine.BodyParts() {
			options = append(options, pile.String())
		}
		idx, err := c.promptForSelection("Nominate a body part:", options)
		if err != nil {
			return engine.Nomination{}, err
		}
		n.BodyPart = engine.BodyParts()[idx]
	}
	return n, nil
}

// ChooseMove picks a top-card relocation, or skips the move phase.
func (c *CLI) ChooseMove(stacks []engine.StackView) (*engine.MoveSpec, error) {
	type source struct {
		card *engine.Card
		id   int
		pile engine.BodyPart
	}
	options := []string{"skip the move phase"}
	sources := []source{{}}
	for _, v := range stacks {
		for _, pile := range engine.BodyParts() {
			if top, ok := v.Tops[pile]; ok {
				options = append(options, fmt.Sprintf("move %s from stack %d (%s), %s pile",
					ColorizeCard(top), v.ID, v.Owner, pile))
				sources = append(sources, source{card: top, id: v.ID, pile: pile})
			}
		}
	}
	idx, err := c.promptForSelection("Move a card?", options)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return nil, nil
	}
	src := sources[idx]

	var destOptions []string
	var specs []engine.MoveSpec
	for _, v := range stacks {
		for _, pile := range engine.BodyParts() {
			if v.ID == src.id && pile == src.pile {
				continue
			}
			if src.card.BodyPart != pile && !src.card.IsWild() {
				continue
			}
			destOptions = append(destOptions, fmt.Sprintf("stack %d (%s), %s pile", v.ID, v.Owner, pile))
			specs = append(specs, engine.MoveSpec{
				CardID: src.card.ID, FromStack: src.id, FromPile: src.pile,
				ToStack: v.ID, ToPile: pile,
			})
		}
	}
	if pile := src.card.EffectiveBodyPart(); pile != engine.PartWild {
		destOptions = append(destOptions, fmt.Sprintf("new stack, %s pile", pile))
		specs = append(specs, engine.MoveSpec{
			CardID: src.card.ID, FromStack: src.id, FromPile: src.pile,
			ToNewStack: true, ToPile: pile,
		})
	}
	destIdx, err := c.promptForSelection("Where to?", destOptions)
	if err != nil {
		return nil, err
	}
	return &specs[destIdx], nil
}
