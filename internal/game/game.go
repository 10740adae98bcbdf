// Package game runs one chess session: turn order, human move validation,
// engine moves and undo. It is not safe for concurrent use; the service
// layer serializes access.
package game

import (
	"errors"
	"fmt"

	"abchess/internal/board"
	"abchess/internal/core"
	"abchess/internal/movegen"
	"abchess/internal/search"
)

const DefaultDepth = 5

var (
	// ErrInvalidMove: the (from,to) pair is not among the generated moves.
	ErrInvalidMove = errors.New("move does not fit the rules")
	// ErrNotYourPiece: the piece on the origin square belongs to the other
	// side (or the square is empty). Reported distinctly from ErrInvalidMove
	// so callers can give a more specific message.
	ErrNotYourPiece = errors.New("piece does not belong to the moving side")
	// ErrGameOver: a king has been captured; no further moves are accepted.
	ErrGameOver = errors.New("game is over")
)

// MoveResult reports a committed move.
type MoveResult struct {
	Move  string     `json:"move"`
	Side  core.Side  `json:"side"`
	Score float64    `json:"score,omitempty"`
	Depth int        `json:"depth,omitempty"`
	State core.State `json:"state"`
}

type Game struct {
	board      *board.Board
	engine     *search.Engine
	players    map[core.Side]*core.Player
	turn       core.Side
	state      core.State
	moves      []string
	lastResult *MoveResult
}

// New starts a game in the standard position. Down moves first.
func New(upper, down *core.Player, engine *search.Engine) *Game {
	return &Game{
		board:  board.New(),
		engine: engine,
		players: map[core.Side]*core.Player{
			core.Upper: upper,
			core.Down:  down,
		},
		turn:  core.Down,
		state: core.StateOngoing,
	}
}

func (g *Game) Board() *board.Board     { return g.board }
func (g *Game) Turn() core.Side         { return g.turn }
func (g *Game) State() core.State       { return g.state }
func (g *Game) LastResult() *MoveResult { return g.lastResult }

func (g *Game) Player(s core.Side) *core.Player {
	return g.players[s]
}

func (g *Game) NextPlayer() *core.Player {
	return g.players[g.turn]
}

// Moves returns the committed move notations in play order.
func (g *Game) Moves() []string {
	out := make([]string, len(g.moves))
	copy(out, g.moves)
	return out
}

// MakeMove validates and applies a human move given in file-rank notation
// with an optional promotion suffix. The board is untouched on error.
func (g *Game) MakeMove(notation string) (*MoveResult, error) {
	if g.state != core.StateOngoing {
		return nil, ErrGameOver
	}

	requested, err := core.ParseMove(notation)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	if g.board.Get(requested.From).Side() != g.turn {
		return nil, ErrNotYourPiece
	}

	move, err := g.matchMove(requested, notation)
	if err != nil {
		return nil, err
	}

	return g.commit(move), nil
}

// matchMove resolves the requested squares against the generated candidates
// for the origin square; the candidate supplies Kind and Promotion. A
// promotion suffix narrows the four promotion candidates; without one the
// queen is chosen.
func (g *Game) matchMove(requested core.Move, notation string) (core.Move, error) {
	promoKind := core.Queen
	if len(notation) == 5 {
		k, err := core.ParsePromotionKind(notation[4])
		if err != nil {
			return core.Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
		}
		promoKind = k
	}

	var matched core.Move
	found := false
	for _, candidate := range movegen.PieceMoves(g.board, requested.From) {
		if !candidate.SameSquares(requested) {
			continue
		}
		if candidate.Kind == core.Promote && candidate.Promotion.Kind() != promoKind {
			continue
		}
		matched = candidate
		found = true
		break
	}
	if !found {
		return core.Move{}, ErrInvalidMove
	}
	return matched, nil
}

// EngineMove computes and applies a move for the side to play at the seated
// player's depth.
func (g *Game) EngineMove() (*MoveResult, error) {
	if g.state != core.StateOngoing {
		return nil, ErrGameOver
	}

	depth := DefaultDepth
	if p := g.players[g.turn]; p != nil && p.Depth > 0 {
		depth = p.Depth
	}

	move := g.engine.BestMoveParallel(g.board, g.turn, depth)
	if move.Kind == core.InvalidMove {
		return nil, fmt.Errorf("no moves available for %s", g.turn)
	}

	result := g.commit(move)
	result.Depth = depth
	return result, nil
}

// Advice suggests a move for the side to play without applying it.
func (g *Game) Advice(depth int) (core.Move, error) {
	if g.state != core.StateOngoing {
		return core.Move{}, ErrGameOver
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	move := g.engine.BestMoveParallel(g.board, g.turn, depth)
	if move.Kind == core.InvalidMove {
		return core.Move{}, fmt.Errorf("no moves available for %s", g.turn)
	}
	return move, nil
}

func (g *Game) commit(move core.Move) *MoveResult {
	side := g.turn
	g.board.Apply(move)
	g.moves = append(g.moves, MoveNotation(move))
	g.turn = g.turn.Opposite()

	if winner := g.board.Winner(); winner != core.Neither {
		g.state = core.WinState(winner)
	}

	g.lastResult = &MoveResult{
		Move:  MoveNotation(move),
		Side:  side,
		Score: g.engine.Evaluate(g.board),
		State: g.state,
	}
	return g.lastResult
}

// Undo reverses the last count plies.
func (g *Game) Undo(count int) error {
	if count < 1 {
		return fmt.Errorf("invalid undo count: %d", count)
	}
	if count > len(g.moves) {
		return fmt.Errorf("cannot undo %d plies: only %d played", count, len(g.moves))
	}
	for i := 0; i < count; i++ {
		g.board.Undo()
		g.turn = g.turn.Opposite()
	}
	g.moves = g.moves[:len(g.moves)-count]
	g.state = core.StateOngoing
	g.lastResult = nil
	return nil
}

// MoveNotation renders a committed move, appending the promotion suffix for
// promotion moves.
func MoveNotation(m core.Move) string {
	s := m.String()
	if m.Kind == core.Promote {
		switch m.Promotion.Kind() {
		case core.Rook:
			s += "r"
		case core.Knight:
			s += "n"
		case core.Bishop:
			s += "b"
		default:
			s += "q"
		}
	}
	return s
}
