// Package cli implements the interactive terminal front end.
package cli

import (
	"fmt"
	"io"
	"strings"

	"abchess/internal/board"
	"abchess/internal/core"
	"abchess/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdMove
	CmdAdvice
	CmdUndo
	CmdRemake
	CmdHistory
	CmdColor
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	upper   string
	down    string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		upper:   "\033[97m",
		down:    "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		upper:   "\033[97m",
		down:    "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		upper:   "\033[97m",
		down:    "\033[30m",
		reset:   "\033[0m",
	},
}

type CLI struct {
	output io.Writer
	theme  ColorTheme
}

func New(output io.Writer) *CLI {
	return &CLI{
		output: output,
		theme:  ThemeOff,
	}
}

// ParseCommand classifies one line of input. Anything that is not a known
// command word is treated as a move.
func (c *CLI) ParseCommand(input string) *Command {
	parts := strings.Fields(strings.TrimSpace(input))
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "advice":
		return &Command{Type: CmdAdvice}
	case "undo":
		return &Command{Type: CmdUndo, Args: args}
	case "remake":
		return &Command{Type: CmdRemake}
	case "history":
		return &Command{Type: CmdHistory}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		return &Command{Type: CmdMove, Args: []string{cmd}, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// DisplayBoard renders the logical 8x8 area with the active theme.
func (c *CLI) DisplayBoard(b *board.Board) {
	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for row := core.LineBegin; row < core.LineEnd; row++ {
		rank := '8' - rune(row-core.LineBegin)
		sb.WriteString(fmt.Sprintf("%c ", rank))
		for col := core.LineBegin; col < core.LineEnd; col++ {
			piece := b.Get(core.Pos{Row: row, Col: col})

			if c.theme == ThemeOff {
				if piece == core.EmptySquare {
					sb.WriteString(". ")
				} else {
					sb.WriteString(fmt.Sprintf("%c ", piece.Byte()))
				}
				continue
			}

			bg := theme.darkBg
			if (row+col)%2 == 0 {
				bg = theme.lightBg
			}
			if piece == core.EmptySquare {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				color := theme.down
				if piece.Side() == core.Upper {
					color = theme.upper
				}
				sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, piece.Byte(), theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %c\n", rank))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  <move>           - Make a move (e.g., e2e4; append r/n/b/q to promote: e7e8q)
  advice           - Ask the engine what it would play for you
  undo [count]     - Undo full moves (yours and the reply), default 1
  remake           - Restart the game from the opening position
  history          - Show the moves played so far
  color <theme>    - Set board color theme (off|brown|green|gray)
  help/?           - Show this help message
  quit/exit        - Exit the program`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Commands: <move>, advice, undo, remake, history, color, help/?, quit/exit")
	c.ShowMessage("You play the lowercase pieces and move first.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	moves := g.Moves()
	if len(moves) == 0 {
		c.ShowMessage("No moves played yet.")
		return
	}
	for i := 0; i < len(moves); i += 2 {
		moveNum := i/2 + 1
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", moveNum, moves[i], moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", moveNum, moves[i]))
		}
	}
	c.ShowMessage(fmt.Sprintf("Game state: %s", g.State()))
}

func (c *CLI) ShowEngineMove(result *game.MoveResult) {
	c.ShowMessage(fmt.Sprintf("Computer (%s): %s (depth=%d, score=%.0f)",
		result.Side, result.Move, result.Depth, result.Score))
}

func (c *CLI) ShowAdvice(notation string) {
	c.ShowMessage(fmt.Sprintf("Suggested move: %s", notation))
}

func (c *CLI) ShowGameOver(state core.State) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s", state))
	c.ShowMessage("Type 'remake' for a new game or 'quit' to exit.")
}
