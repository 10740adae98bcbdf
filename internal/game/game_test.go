package game

import (
	"errors"
	"testing"

	"abchess/internal/core"
	"abchess/internal/eval"
	"abchess/internal/search"

	"github.com/google/go-cmp/cmp"
)

func newTestGame(depth int) *Game {
	upper := core.NewPlayer("u", core.PlayerConfig{Type: core.PlayerComputer, Depth: depth}, core.Upper)
	down := core.NewPlayer("d", core.PlayerConfig{Type: core.PlayerHuman}, core.Down)
	return New(upper, down, search.New(eval.New(eval.Default())))
}

func TestDownMovesFirst(t *testing.T) {
	g := newTestGame(1)
	if got := g.Turn(); got != core.Down {
		t.Fatalf("opening turn = %v, want Down", got)
	}

	// Moving an Upper piece out of turn
	if _, err := g.MakeMove("e7e5"); !errors.Is(err, ErrNotYourPiece) {
		t.Errorf("moving opponent piece: err = %v, want ErrNotYourPiece", err)
	}

	result, err := g.MakeMove("e2e4")
	if err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if result.Side != core.Down {
		t.Errorf("result side = %v, want Down", result.Side)
	}
	if got := g.Turn(); got != core.Upper {
		t.Errorf("turn after first move = %v, want Upper", got)
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	g := newTestGame(1)

	tests := []struct {
		name     string
		notation string
		wantErr  error
	}{
		{"unreachable square", "e2e5", ErrInvalidMove},
		{"empty origin", "e4e5", ErrNotYourPiece},
		{"garbage notation", "zzzz", ErrInvalidMove},
		{"wrong length", "e2", ErrInvalidMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.MakeMove(tt.notation); !errors.Is(err, tt.wantErr) {
				t.Errorf("MakeMove(%q) err = %v, want %v", tt.notation, err, tt.wantErr)
			}
		})
	}

	// Board and history untouched after the failures
	if got := len(g.Moves()); got != 0 {
		t.Errorf("move list = %d entries after rejected moves, want 0", got)
	}
	if g.Board().HistoryLen() != 0 {
		t.Errorf("board history = %d after rejected moves, want 0", g.Board().HistoryLen())
	}
}

func TestEngineMoveRespondsLegally(t *testing.T) {
	g := newTestGame(1)
	if _, err := g.MakeMove("e2e4"); err != nil {
		t.Fatal(err)
	}

	result, err := g.EngineMove()
	if err != nil {
		t.Fatalf("EngineMove: %v", err)
	}
	if result.Side != core.Upper {
		t.Errorf("engine moved for %v, want Upper", result.Side)
	}
	if result.Depth != 1 {
		t.Errorf("engine depth = %d, want the seated player's 1", result.Depth)
	}
	want := []string{"e2e4", result.Move}
	if diff := cmp.Diff(want, g.Moves()); diff != "" {
		t.Errorf("move list mismatch (-want +got):\n%s", diff)
	}
	if got := g.Turn(); got != core.Down {
		t.Errorf("turn after engine reply = %v, want Down", got)
	}
}

func TestAdviceDoesNotMove(t *testing.T) {
	g := newTestGame(1)

	move, err := g.Advice(1)
	if err != nil {
		t.Fatalf("Advice: %v", err)
	}
	if move.Kind == core.InvalidMove {
		t.Error("advice returned an invalid move in the opening")
	}
	if got := len(g.Moves()); got != 0 {
		t.Errorf("advice committed a move: %v", g.Moves())
	}
	if got := g.Turn(); got != core.Down {
		t.Errorf("advice flipped the turn to %v", got)
	}
}

func TestUndo(t *testing.T) {
	g := newTestGame(1)
	if _, err := g.MakeMove("e2e4"); err != nil {
		t.Fatal(err)
	}
	if _, err := g.EngineMove(); err != nil {
		t.Fatal(err)
	}

	if err := g.Undo(2); err != nil {
		t.Fatalf("Undo(2): %v", err)
	}
	if got := len(g.Moves()); got != 0 {
		t.Errorf("move list after undo = %v, want empty", g.Moves())
	}
	if got := g.Turn(); got != core.Down {
		t.Errorf("turn after undo = %v, want Down", got)
	}
	if g.LastResult() != nil {
		t.Error("last result must be cleared by undo")
	}
}

func TestUndoRejectsBadCounts(t *testing.T) {
	g := newTestGame(1)
	if err := g.Undo(0); err == nil {
		t.Error("Undo(0) must fail")
	}
	if err := g.Undo(1); err == nil {
		t.Error("Undo past the start of the game must fail")
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	g := newTestGame(1)

	// Give Down a queen one step from the Upper king
	g.Board().Put(core.Pos{Row: 3, Col: 6}, core.DownQueen) // e7

	result, err := g.MakeMove("e7e8")
	if err != nil {
		t.Fatalf("king capture: %v", err)
	}
	if result.State != core.StateDownWins {
		t.Errorf("state after king capture = %v, want down wins", result.State)
	}
	if g.State() != core.StateDownWins {
		t.Errorf("game state = %v, want down wins", g.State())
	}

	if _, err := g.MakeMove("a2a3"); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after game end: err = %v, want ErrGameOver", err)
	}
	if _, err := g.EngineMove(); !errors.Is(err, ErrGameOver) {
		t.Errorf("engine move after game end: err = %v, want ErrGameOver", err)
	}

	// Undo reopens the game
	if err := g.Undo(1); err != nil {
		t.Fatalf("Undo after game end: %v", err)
	}
	if g.State() != core.StateOngoing {
		t.Errorf("state after undo = %v, want ongoing", g.State())
	}
}

func TestPromotionSuffixSelectsPiece(t *testing.T) {
	g := newTestGame(1)

	// Down pawn ready to promote on an empty a8
	g.Board().Put(core.Pos{Row: 3, Col: 2}, core.DownPawn)    // a7
	g.Board().Put(core.Pos{Row: 2, Col: 2}, core.EmptySquare) // a8

	if _, err := g.MakeMove("a7a8n"); err != nil {
		t.Fatalf("a7a8n: %v", err)
	}
	if got := g.Board().Get(core.Pos{Row: 2, Col: 2}); got != core.DownKnight {
		t.Errorf("promoted piece = %v, want DownKnight", got)
	}
	if got := g.Moves()[0]; got != "a7a8n" {
		t.Errorf("recorded notation = %q, want a7a8n", got)
	}
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	g := newTestGame(1)
	g.Board().Put(core.Pos{Row: 3, Col: 2}, core.DownPawn)
	g.Board().Put(core.Pos{Row: 2, Col: 2}, core.EmptySquare)

	if _, err := g.MakeMove("a7a8"); err != nil {
		t.Fatalf("a7a8: %v", err)
	}
	if got := g.Board().Get(core.Pos{Row: 2, Col: 2}); got != core.DownQueen {
		t.Errorf("promoted piece = %v, want DownQueen", got)
	}
	if got := g.Moves()[0]; got != "a7a8q" {
		t.Errorf("recorded notation = %q, want a7a8q", got)
	}
}

func TestMoveNotation(t *testing.T) {
	normal, _ := core.ParseMove("e2e4")
	normal.Kind = core.NormalMove
	if got := MoveNotation(normal); got != "e2e4" {
		t.Errorf("normal notation = %q, want e2e4", got)
	}

	promote, _ := core.ParseMove("a7a8")
	promote.Kind = core.Promote
	promote.Promotion = core.DownRook
	if got := MoveNotation(promote); got != "a7a8r" {
		t.Errorf("promotion notation = %q, want a7a8r", got)
	}
}
