// Package main implements the interactive terminal game. The human plays
// Down (lowercase, bottom) and moves first; the computer plays Upper.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"abchess/internal/cli"
	"abchess/internal/core"
	"abchess/internal/eval"
	"abchess/internal/game"
	"abchess/internal/search"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	var (
		depth  = flag.Int("depth", game.DefaultDepth, "Computer search depth (1-8)")
		tables = flag.String("tables", "", "Directory with evaluation table files (built-in defaults if empty)")
		theme  = flag.String("theme", "", "Board color theme: off, brown, green, gray (auto-detect if empty)")
	)
	flag.Parse()

	if *depth < 1 || *depth > 8 {
		fmt.Fprintf(os.Stderr, "Invalid depth %d: must be 1-8\n", *depth)
		os.Exit(1)
	}

	cfg := eval.Default()
	if *tables != "" {
		var err error
		cfg, err = eval.Load(*tables)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load evaluation tables: %v\n", err)
			os.Exit(1)
		}
	}
	engine := search.New(eval.New(cfg))

	view := cli.New(os.Stdout)
	if *theme == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			*theme = string(cli.ThemeBrown)
		} else {
			*theme = string(cli.ThemeOff)
		}
	}
	if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "abchess > ",
		HistoryFile:     ".abchess_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	newGame := func() *game.Game {
		upper := core.NewPlayer("computer", core.PlayerConfig{
			Type:  core.PlayerComputer,
			Depth: *depth,
		}, core.Upper)
		down := core.NewPlayer("human", core.PlayerConfig{
			Type: core.PlayerHuman,
		}, core.Down)
		return game.New(upper, down, engine)
	}

	g := newGame()
	view.ShowWelcome()
	view.DisplayBoard(g.Board())

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		cmd := view.ParseCommand(line)
		switch cmd.Type {
		case cli.CmdNone:
			continue

		case cli.CmdQuit:
			return

		case cli.CmdHelp:
			view.ShowHelp()

		case cli.CmdColor:
			if len(cmd.Args) != 1 {
				view.ShowMessage("Usage: color <off|brown|green|gray>")
				continue
			}
			if err := view.SetTheme(cli.ColorTheme(cmd.Args[0])); err != nil {
				view.ShowError(err)
				continue
			}
			view.DisplayBoard(g.Board())

		case cli.CmdHistory:
			view.ShowGameHistory(g)

		case cli.CmdRemake:
			g = newGame()
			view.ShowMessage("New game started.")
			view.DisplayBoard(g.Board())

		case cli.CmdAdvice:
			move, err := g.Advice(*depth)
			if err != nil {
				view.ShowError(err)
				continue
			}
			view.ShowAdvice(game.MoveNotation(move))

		case cli.CmdUndo:
			count := 1
			if len(cmd.Args) > 0 {
				count, err = strconv.Atoi(cmd.Args[0])
				if err != nil || count < 1 {
					view.ShowMessage("Usage: undo [count]")
					continue
				}
			}
			// A full move is the human ply plus the engine reply.
			plies := count * 2
			if played := len(g.Moves()); plies > played {
				plies = played
			}
			if plies == 0 {
				view.ShowMessage("Nothing to undo.")
				continue
			}
			if err := g.Undo(plies); err != nil {
				view.ShowError(err)
				continue
			}
			view.DisplayBoard(g.Board())

		case cli.CmdMove:
			result, err := g.MakeMove(cmd.Args[0])
			if err != nil {
				view.ShowError(err)
				continue
			}
			view.DisplayBoard(g.Board())

			if result.State != core.StateOngoing {
				view.ShowGameOver(result.State)
				continue
			}

			reply, err := g.EngineMove()
			if err != nil {
				view.ShowError(err)
				continue
			}
			view.ShowEngineMove(reply)
			view.DisplayBoard(g.Board())

			if reply.State != core.StateOngoing {
				view.ShowGameOver(reply.State)
			}
		}
	}
}
