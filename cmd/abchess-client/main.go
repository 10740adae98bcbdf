// Package main implements an interactive debugging client for the game
// server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"abchess/internal/client/api"
	"abchess/internal/client/display"
	"abchess/internal/core"
	"abchess/internal/game"

	"github.com/chzyer/readline"
)

type session struct {
	client      *api.Client
	currentGame string
	lastState   *core.GameResponse
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "API base URL")
	flag.Parse()

	s := &session{client: api.New(*apiURL)}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("abchess"),
		HistoryFile:     ".abchess_client_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sGame API Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.client.BaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		if strings.HasSuffix(line, " -v") {
			s.client.SetVerbose(true)
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.client.SetVerbose(false)
		}

		execute(s, line)
	}
}

func execute(s *session, line string) {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help", "?":
		showHelp()

	case "api":
		if len(args) != 1 {
			fmt.Println("Usage: api <url>")
			return
		}
		s.client.SetBaseURL(args[0])
		fmt.Printf("API base URL set to %s\n", s.client.BaseURL)

	case "health":
		s.client.Health()

	case "new":
		depth := game.DefaultDepth
		if len(args) > 0 {
			d, err := strconv.Atoi(args[0])
			if err != nil || d < 1 || d > 8 {
				fmt.Println("Usage: new [depth 1-8]")
				return
			}
			depth = d
		}
		resp, err := s.client.CreateGame(&core.CreateGameRequest{
			Upper: core.PlayerConfig{Type: core.PlayerComputer, Depth: depth},
			Down:  core.PlayerConfig{Type: core.PlayerHuman},
		})
		if err != nil {
			return
		}
		s.currentGame = resp.GameID
		s.lastState = resp
		fmt.Printf("Game created: %s\n", resp.GameID)

	case "game", "use":
		if len(args) != 1 {
			fmt.Println("Usage: game <gameId>")
			return
		}
		resp, err := s.client.GetGame(args[0])
		if err != nil {
			return
		}
		s.currentGame = args[0]
		s.lastState = resp

	case "state":
		if s.currentGame == "" {
			fmt.Println("No game selected: use 'new' or 'game <id>'")
			return
		}
		resp, err := s.client.GetGame(s.currentGame)
		if err != nil {
			return
		}
		s.lastState = resp
		showState(resp)

	case "board", "b":
		if s.currentGame == "" {
			fmt.Println("No game selected: use 'new' or 'game <id>'")
			return
		}
		resp, err := s.client.GetBoard(s.currentGame)
		if err != nil {
			return
		}
		display.RenderBoard(resp.Board)
		fmt.Printf("Turn: %s\n", display.ColorForTurn(resp.Turn))

	case "engine", "e":
		s.move("cccc")

	case "undo":
		if s.currentGame == "" {
			fmt.Println("No game selected: use 'new' or 'game <id>'")
			return
		}
		count := 1
		if len(args) > 0 {
			c, err := strconv.Atoi(args[0])
			if err != nil || c < 1 {
				fmt.Println("Usage: undo [count]")
				return
			}
			count = c
		}
		resp, err := s.client.UndoMoves(s.currentGame, count)
		if err != nil {
			return
		}
		s.lastState = resp

	case "delete":
		if s.currentGame == "" {
			fmt.Println("No game selected: use 'new' or 'game <id>'")
			return
		}
		if err := s.client.DeleteGame(s.currentGame); err != nil {
			return
		}
		s.currentGame = ""
		s.lastState = nil

	case "raw":
		if len(args) < 2 {
			fmt.Println("Usage: raw <method> <path> [json body]")
			return
		}
		body := ""
		if len(args) > 2 {
			body = strings.Join(args[2:], " ")
		}
		s.client.RawRequest(strings.ToUpper(args[0]), args[1], body)

	default:
		// Anything else is treated as a move
		s.move(cmd)
	}
}

func (s *session) move(notation string) {
	if s.currentGame == "" {
		fmt.Println("No game selected: use 'new' or 'game <id>'")
		return
	}
	resp, err := s.client.MakeMove(s.currentGame, notation)
	if err != nil {
		return
	}
	s.lastState = resp
	if resp.LastMove != nil {
		fmt.Printf("Played: %s (%s)\n", resp.LastMove.Move, resp.LastMove.Side)
	}
}

func showState(resp *core.GameResponse) {
	fmt.Printf("Game:  %s\n", resp.GameID)
	fmt.Printf("Turn:  %s\n", display.ColorForTurn(resp.Turn))
	fmt.Printf("State: %s\n", resp.State)
	fmt.Printf("Moves: %s\n", strings.Join(resp.Moves, " "))
}

func showHelp() {
	fmt.Println(`Commands:
  new [depth]       - Create game: you play Down, computer plays Upper
  game <id>         - Select an existing game
  state             - Show current game state
  board, b          - Show the board
  <move>            - Make a move (e.g. e2e4, e7e8q)
  engine, e         - Ask the engine to move for the side to play
  undo [count]      - Undo plies
  delete            - Delete the selected game
  health            - Server health check
  api <url>         - Change API base URL
  raw <m> <p> [b]   - Raw request (e.g. raw GET /health)
  help, ?           - This message
  quit/exit/x       - Leave

Append -v to any command for full request/response bodies.`)
}

func buildPrompt(s *session) string {
	promptStr := "abchess"
	if s.currentGame != "" {
		promptStr += fmt.Sprintf(" [%s%s%s]", display.White, s.currentGame[:8], display.Reset)
	}
	if s.lastState != nil {
		promptStr += " " + display.ColorForTurn(s.lastState.Turn)
	}
	return display.Prompt(promptStr)
}
