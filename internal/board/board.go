// Package board owns the mutable game position: a 12x12 piece grid with an
// OffBoard border, castling rights, the en-passant target and an append-only
// history that makes every Apply exactly reversible.
package board

import (
	"fmt"
	"strings"

	"abchess/internal/core"
)

// startRows is the initial layout of the logical board, top row first.
// Upper pieces (uppercase) start on rows 2-3, Down pieces on rows 8-9.
var startRows = [8]string{
	"RNBQKBNR",
	"PPPPPPPP",
	"........",
	"........",
	"........",
	"........",
	"pppppppp",
	"rnbqkbnr",
}

// historyEntry captures everything needed to reverse one Apply.
type historyEntry struct {
	move        core.Move
	fromPiece   core.Piece
	toPiece     core.Piece
	enPassant   core.Pos
	upperCastle bool
	downCastle  bool
}

// Board trusts its callers to supply only moves produced by the move
// generator; it performs no legality checks of its own. The border cells are
// never written by any move, so out-of-range probes read OffBoard safely.
type Board struct {
	cells       [core.GridSize][core.GridSize]core.Piece
	upperCastle bool
	downCastle  bool
	enPassant   core.Pos
	history     []historyEntry
}

// New returns a board in the standard starting position.
func New() *Board {
	b := &Board{
		upperCastle: true,
		downCastle:  true,
	}
	for r := 0; r < core.GridSize; r++ {
		for c := 0; c < core.GridSize; c++ {
			b.cells[r][c] = core.OffBoard
		}
	}
	for i, row := range startRows {
		for j := 0; j < 8; j++ {
			p, err := core.PieceFromByte(row[j])
			if err != nil {
				panic(fmt.Sprintf("board: bad start layout: %v", err))
			}
			b.cells[core.LineBegin+i][core.LineBegin+j] = p
		}
	}
	return b
}

// Clone copies the position for an independent search task. The clone starts
// with an empty history; it only ever needs to unwind its own moves.
func (b *Board) Clone() *Board {
	c := &Board{
		cells:       b.cells,
		upperCastle: b.upperCastle,
		downCastle:  b.downCastle,
		enPassant:   b.enPassant,
	}
	return c
}

func (b *Board) Get(p core.Pos) core.Piece {
	return b.cells[p.Row][p.Col]
}

// At reads a cell by row and column.
func (b *Board) At(r, c int) core.Piece {
	return b.cells[r][c]
}

// Put places a piece directly, bypassing move application. Intended for
// setting up positions; it never touches the border.
func (b *Board) Put(p core.Pos, piece core.Piece) {
	if !p.OnBoard() {
		return
	}
	b.cells[p.Row][p.Col] = piece
}

func (b *Board) CanCastle(s core.Side) bool {
	if s == core.Upper {
		return b.upperCastle
	}
	return b.downCastle
}

// EnPassant returns the square a following en-passant capture would clear,
// or core.NoPos. The target is valid for exactly one ply.
func (b *Board) EnPassant() core.Pos {
	return b.enPassant
}

func (b *Board) HistoryLen() int {
	return len(b.history)
}

func (b *Board) set(p core.Pos, piece core.Piece) {
	b.cells[p.Row][p.Col] = piece
}

func (b *Board) setAt(r, c int, piece core.Piece) {
	b.cells[r][c] = piece
}

// Apply mutates the board according to the move, first recording a history
// entry sufficient for an exact Undo. The en-passant target is cleared on
// every application and re-set only by a double step that lands beside an
// enemy pawn.
func (b *Board) Apply(m core.Move) {
	fromP := b.Get(m.From)
	b.history = append(b.history, historyEntry{
		move:        m,
		fromPiece:   fromP,
		toPiece:     b.Get(m.To),
		enPassant:   b.enPassant,
		upperCastle: b.upperCastle,
		downCastle:  b.downCastle,
	})

	b.enPassant = core.NoPos

	if m.Kind == core.Promote {
		b.set(m.To, m.Promotion)
		b.set(m.From, core.EmptySquare)
		return
	}

	b.set(m.To, fromP)
	b.set(m.From, core.EmptySquare)

	switch fromP {
	case core.UpperKing:
		b.upperCastle = false
	case core.DownKing:
		b.downCastle = false
	}

	switch m.Kind {
	case core.LongCastle:
		b.setAt(m.From.Row, m.From.Col-1, b.At(m.From.Row, m.From.Col-4))
		b.setAt(m.From.Row, m.From.Col-4, core.EmptySquare)
	case core.ShortCastle:
		b.setAt(m.From.Row, m.From.Col+1, b.At(m.From.Row, m.From.Col+3))
		b.setAt(m.From.Row, m.From.Col+3, core.EmptySquare)
	case core.EnPassant:
		// The captured pawn sits on the capturer's origin row at the
		// destination column, not on the destination square.
		b.setAt(m.From.Row, m.To.Col, core.EmptySquare)
	case core.PawnDoubleStep:
		enemyPawn := core.DownPawn
		if fromP.Side() == core.Down {
			enemyPawn = core.UpperPawn
		}
		if b.At(m.To.Row, m.To.Col-1) == enemyPawn || b.At(m.To.Row, m.To.Col+1) == enemyPawn {
			b.enPassant = m.To
		}
	}
}

// Undo reverses the most recent Apply. No-op when the history is empty.
func (b *Board) Undo() {
	n := len(b.history)
	if n == 0 {
		return
	}
	h := b.history[n-1]
	b.history = b.history[:n-1]

	b.set(h.move.From, h.fromPiece)
	b.set(h.move.To, h.toPiece)

	switch h.move.Kind {
	case core.LongCastle:
		b.setAt(h.move.From.Row, h.move.From.Col-4, b.At(h.move.From.Row, h.move.From.Col-1))
		b.setAt(h.move.From.Row, h.move.From.Col-1, core.EmptySquare)
	case core.ShortCastle:
		b.setAt(h.move.From.Row, h.move.From.Col+3, b.At(h.move.From.Row, h.move.From.Col+1))
		b.setAt(h.move.From.Row, h.move.From.Col+1, core.EmptySquare)
	case core.EnPassant:
		capturedPawn := core.DownPawn
		if h.fromPiece.Side() == core.Down {
			capturedPawn = core.UpperPawn
		}
		b.setAt(h.move.From.Row, h.move.To.Col, capturedPawn)
	}

	b.enPassant = h.enPassant
	b.upperCastle = h.upperCastle
	b.downCastle = h.downCastle
}

// Winner returns the side whose opponent's king is no longer on the board,
// or core.Neither while both kings remain.
func (b *Board) Winner() core.Side {
	var upperKing, downKing bool
	for r := core.LineBegin; r < core.LineEnd; r++ {
		for c := core.LineBegin; c < core.LineEnd; c++ {
			switch b.cells[r][c] {
			case core.UpperKing:
				upperKing = true
			case core.DownKing:
				downKing = true
			}
		}
	}
	if upperKing && downKing {
		return core.Neither
	}
	if upperKing {
		return core.Upper
	}
	return core.Down
}

// ToASCII renders the logical board with file and rank labels.
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := core.LineBegin; r < core.LineEnd; r++ {
		rank := '8' - rune(r-core.LineBegin)
		sb.WriteString(fmt.Sprintf("%c ", rank))
		for c := core.LineBegin; c < core.LineEnd; c++ {
			sb.WriteByte(b.cells[r][c].Byte())
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf(" %c\n", rank))
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
