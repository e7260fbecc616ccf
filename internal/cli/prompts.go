package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/tarttelin/npzr-ai-sub002/internal/engine"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Good, Bad, Info, Warn, Header, Prompt *color.Color
}{
	Good:   color.New(color.FgGreen),
	Bad:    color.New(color.FgRed),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
}

// CharacterColors maps archetypes to display colors.
var CharacterColors = map[engine.Character]*color.Color{
	engine.Ninja:  color.New(color.FgMagenta),
	engine.Pirate: color.New(color.FgRed),
	engine.Zombie: color.New(color.FgGreen),
	engine.Robot:  color.New(color.FgYellow),
}

// ColorizeCharacter returns the archetype name colored for the terminal.
func ColorizeCharacter(ch engine.Character) string {
	if c, ok := CharacterColors[ch]; ok {
		return c.Sprint(ch.String())
	}
	return ch.String()
}

// ColorizeCard renders a card with its effective character colored.
func ColorizeCard(card *engine.Card) string {
	if n, ok := card.Nomination(); ok {
		return fmt.Sprintf("%s %s (as %s %s)",
			card.Character, card.BodyPart, ColorizeCharacter(n.Character), n.BodyPart)
	}
	return fmt.Sprintf("%s %s", ColorizeCharacter(card.Character), card.BodyPart)
}

// promptForInt asks until it gets an integer in [min, max].
func (c *CLI) promptForInt(prompt string, min, max int) (int, error) {
	for {
		input, err := c.line.Prompt(C.Prompt.Sprint(prompt))
		if err != nil {
			return 0, promptErr(err)
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(input))
		if convErr == nil && n >= min && n <= max {
			return n, nil
		}
		C.Warn.Printf("Please enter a number between %d and %d.\n", min, max)
	}
}

// promptForSelection presents a numbered list and returns the chosen index.
func (c *CLI) promptForSelection(prompt string, options []string) (int, error) {
	C.Info.Println(prompt)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	n, err := c.promptForInt("> ", 1, len(options))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// promptErr normalizes liner's abort signals to io.EOF so callers treat
// Ctrl-C and Ctrl-D the same way.
func promptErr(err error) error {
	if err == liner.ErrPromptAborted {
		return io.EOF
	}
	return err
}
