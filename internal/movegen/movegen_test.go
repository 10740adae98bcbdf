package movegen

import (
	"testing"

	"abchess/internal/board"
	"abchess/internal/core"

	"github.com/google/go-cmp/cmp"
)

func pos(t *testing.T, square string) core.Pos {
	t.Helper()
	m, err := core.ParseMove(square + square)
	if err != nil {
		t.Fatalf("bad square %q: %v", square, err)
	}
	return m.From
}

// clearBoard empties every logical square, leaving only the border.
func clearBoard(b *board.Board) {
	for r := core.LineBegin; r < core.LineEnd; r++ {
		for c := core.LineBegin; c < core.LineEnd; c++ {
			b.Put(core.Pos{Row: r, Col: c}, core.EmptySquare)
		}
	}
}

func TestOpeningMoveCount(t *testing.T) {
	b := board.New()
	for _, side := range []core.Side{core.Upper, core.Down} {
		if got := len(SideMoves(b, side)); got != 20 {
			t.Errorf("%v has %d opening moves, want 20", side, got)
		}
	}
}

func TestPawnOpeningMoves(t *testing.T) {
	b := board.New()
	moves := PieceMoves(b, pos(t, "e2"))

	var notations []string
	for _, m := range moves {
		notations = append(notations, m.String())
	}
	want := []string{"e2e4", "e2e3"}
	if diff := cmp.Diff(want, notations); diff != "" {
		t.Errorf("e2 pawn moves mismatch (-want +got):\n%s", diff)
	}
	if moves[0].Kind != core.PawnDoubleStep {
		t.Errorf("e2e4 kind = %v, want double-step", moves[0].Kind)
	}
	if moves[1].Kind != core.NormalMove {
		t.Errorf("e2e3 kind = %v, want normal", moves[1].Kind)
	}
}

func TestPawnBlocked(t *testing.T) {
	b := board.New()
	b.Put(pos(t, "e3"), core.UpperPawn)
	if got := len(PieceMoves(b, pos(t, "e2"))); got != 0 {
		t.Errorf("blocked pawn has %d forward moves, want 0 (captures aside)", got)
	}

	// A piece on the double-step square still allows the single step
	b = board.New()
	b.Put(pos(t, "e4"), core.UpperPawn)
	moves := PieceMoves(b, pos(t, "e2"))
	if len(moves) != 1 || moves[0].String() != "e2e3" {
		t.Errorf("pawn with blocked double step generated %v, want only e2e3", moves)
	}
}

func TestPawnCaptures(t *testing.T) {
	b := board.New()
	b.Put(pos(t, "d3"), core.UpperPawn)
	b.Put(pos(t, "f3"), core.UpperKnight)
	b.Put(pos(t, "e3"), core.DownPawn) // blocks the advance

	moves := PieceMoves(b, pos(t, "e2"))
	var notations []string
	for _, m := range moves {
		notations = append(notations, m.String())
	}
	// Capture order is higher column first
	want := []string{"e2f3", "e2d3"}
	if diff := cmp.Diff(want, notations); diff != "" {
		t.Errorf("capture moves mismatch (-want +got):\n%s", diff)
	}
}

func TestKnightMoves(t *testing.T) {
	b := board.New()
	clearBoard(b)
	b.Put(pos(t, "d4"), core.DownKnight)

	if got := len(PieceMoves(b, pos(t, "d4"))); got != 8 {
		t.Errorf("central knight has %d moves, want 8", got)
	}

	b.Put(pos(t, "a1"), core.DownKnight)
	if got := len(PieceMoves(b, pos(t, "a1"))); got != 2 {
		t.Errorf("corner knight has %d moves, want 2", got)
	}
}

func TestSlidersStopAtPieces(t *testing.T) {
	b := board.New()
	clearBoard(b)
	b.Put(pos(t, "a1"), core.DownRook)
	b.Put(pos(t, "a5"), core.DownPawn)  // own piece blocks
	b.Put(pos(t, "e1"), core.UpperPawn) // enemy piece is captured, then blocks

	moves := PieceMoves(b, pos(t, "a1"))
	want := map[string]bool{
		"a1a2": true, "a1a3": true, "a1a4": true,
		"a1b1": true, "a1c1": true, "a1d1": true, "a1e1": true,
	}
	if len(moves) != len(want) {
		t.Fatalf("rook has %d moves %v, want %d", len(moves), moves, len(want))
	}
	for _, m := range moves {
		if !want[m.String()] {
			t.Errorf("unexpected rook move %s", m.String())
		}
	}
}

func TestEnPassantGeneration(t *testing.T) {
	b := board.New()
	b.Put(pos(t, "d4"), core.UpperPawn)

	dbl, _ := core.ParseMove("e2e4")
	dbl.Kind = core.PawnDoubleStep
	b.Apply(dbl)

	moves := PieceMoves(b, pos(t, "d4"))
	var found *core.Move
	for i := range moves {
		if moves[i].Kind == core.EnPassant {
			found = &moves[i]
			break
		}
	}
	if found == nil {
		t.Fatalf("no en-passant move generated: %v", moves)
	}
	if got := found.String(); got != "d4e3" {
		t.Errorf("en-passant move = %s, want d4e3", got)
	}

	// The window closes after one more ply
	knight, _ := core.ParseMove("b1c3")
	knight.Kind = core.NormalMove
	b.Apply(knight)
	for _, m := range PieceMoves(b, pos(t, "d4")) {
		if m.Kind == core.EnPassant {
			t.Errorf("en-passant still generated after window closed: %v", m)
		}
	}
}

func TestPromotionCandidates(t *testing.T) {
	b := board.New()
	clearBoard(b)
	b.Put(pos(t, "a7"), core.DownPawn)

	moves := PieceMoves(b, pos(t, "a7"))
	if len(moves) != 4 {
		t.Fatalf("promoting pawn has %d moves %v, want 4", len(moves), moves)
	}
	wantOrder := []core.Piece{core.DownRook, core.DownKnight, core.DownBishop, core.DownQueen}
	for i, m := range moves {
		if m.Kind != core.Promote {
			t.Errorf("move %d kind = %v, want promote", i, m.Kind)
		}
		if m.Promotion != wantOrder[i] {
			t.Errorf("move %d promotes to %v, want %v", i, m.Promotion, wantOrder[i])
		}
		if m.String() != "a7a8" {
			t.Errorf("move %d squares = %s, want a7a8", i, m.String())
		}
	}
}

func TestShortCastleGeneration(t *testing.T) {
	b := board.New()
	b.Put(pos(t, "f1"), core.EmptySquare)
	b.Put(pos(t, "g1"), core.EmptySquare)

	var castle *core.Move
	for _, m := range PieceMoves(b, pos(t, "e1")) {
		if m.Kind == core.ShortCastle {
			castle = &m
			break
		}
	}
	if castle == nil {
		t.Fatal("short castle not generated with cleared gap")
	}
	if got := castle.String(); got != "e1g1" {
		t.Errorf("short castle = %s, want e1g1", got)
	}
}

func TestLongCastleGeneration(t *testing.T) {
	b := board.New()
	b.Put(pos(t, "b1"), core.EmptySquare)
	b.Put(pos(t, "c1"), core.EmptySquare)
	b.Put(pos(t, "d1"), core.EmptySquare)

	var castle *core.Move
	for _, m := range PieceMoves(b, pos(t, "e1")) {
		if m.Kind == core.LongCastle {
			castle = &m
			break
		}
	}
	if castle == nil {
		t.Fatal("long castle not generated with cleared gap")
	}
	if got := castle.String(); got != "e1c1" {
		t.Errorf("long castle = %s, want e1c1", got)
	}
}

func TestNoCastleThroughPieces(t *testing.T) {
	b := board.New()
	for _, m := range PieceMoves(b, pos(t, "e1")) {
		if m.Kind == core.ShortCastle || m.Kind == core.LongCastle {
			t.Errorf("castle generated through occupied gap: %v", m)
		}
	}
}

func TestNoCastleWithoutRight(t *testing.T) {
	b := board.New()
	b.Put(pos(t, "f1"), core.EmptySquare)
	b.Put(pos(t, "g1"), core.EmptySquare)

	kingMove, _ := core.ParseMove("e1f1")
	kingMove.Kind = core.NormalMove
	b.Apply(kingMove)
	back, _ := core.ParseMove("f1e1")
	back.Kind = core.NormalMove
	b.Apply(back)

	for _, m := range PieceMoves(b, pos(t, "e1")) {
		if m.Kind == core.ShortCastle {
			t.Errorf("castle generated after the king moved: %v", m)
		}
	}
}

func TestNoCastleWithoutCornerRook(t *testing.T) {
	b := board.New()
	b.Put(pos(t, "f1"), core.EmptySquare)
	b.Put(pos(t, "g1"), core.EmptySquare)
	b.Put(pos(t, "h1"), core.EmptySquare)

	for _, m := range PieceMoves(b, pos(t, "e1")) {
		if m.Kind == core.ShortCastle {
			t.Errorf("castle generated without the corner rook: %v", m)
		}
	}
}

func TestPieceMovesOnEmptySquare(t *testing.T) {
	b := board.New()
	if moves := PieceMoves(b, pos(t, "e4")); len(moves) != 0 {
		t.Errorf("empty square generated %v", moves)
	}
}

func TestSideMovesDeterministic(t *testing.T) {
	b := board.New()
	first := SideMoves(b, core.Down)
	second := SideMoves(b, core.Down)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("generation order not deterministic (-first +second):\n%s", diff)
	}
}
