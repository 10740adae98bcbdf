// Package movegen produces pseudo-legal moves: moves that obey piece
// geometry and occupancy but are not filtered for leaving the mover's king
// attacked. Castling likewise skips attacked-square checks. That matches the
// king-capture ruleset: legality ends at geometry.
package movegen

import (
	"abchess/internal/board"
	"abchess/internal/core"
)

// tryMove is the shared destination probe. It appends a normal move when the
// target square is empty (and reports that a ray may continue) or holds an
// enemy piece (ray stops), and stops silently on own pieces or the border.
func tryMove(b *board.Board, from, to core.Pos, moves *[]core.Move) bool {
	toP := b.Get(to)
	switch {
	case toP == core.OffBoard:
		return false
	case toP == core.EmptySquare:
		*moves = append(*moves, core.Move{From: from, To: to, Kind: core.NormalMove})
		return true
	default:
		if b.Get(from).Side() != toP.Side() {
			*moves = append(*moves, core.Move{From: from, To: to, Kind: core.NormalMove})
		}
		return false
	}
}

func genCrossing(b *board.Board, from core.Pos, moves *[]core.Move) {
	for r := from.Row - 1; tryMove(b, from, core.Pos{Row: r, Col: from.Col}, moves); r-- {
	}
	for r := from.Row + 1; tryMove(b, from, core.Pos{Row: r, Col: from.Col}, moves); r++ {
	}
	for c := from.Col - 1; tryMove(b, from, core.Pos{Row: from.Row, Col: c}, moves); c-- {
	}
	for c := from.Col + 1; tryMove(b, from, core.Pos{Row: from.Row, Col: c}, moves); c++ {
	}
}

func genDiagonal(b *board.Board, from core.Pos, moves *[]core.Move) {
	for r, c := from.Row-1, from.Col-1; tryMove(b, from, core.Pos{Row: r, Col: c}, moves); r, c = r-1, c-1 {
	}
	for r, c := from.Row-1, from.Col+1; tryMove(b, from, core.Pos{Row: r, Col: c}, moves); r, c = r-1, c+1 {
	}
	for r, c := from.Row+1, from.Col-1; tryMove(b, from, core.Pos{Row: r, Col: c}, moves); r, c = r+1, c-1 {
	}
	for r, c := from.Row+1, from.Col+1; tryMove(b, from, core.Pos{Row: r, Col: c}, moves); r, c = r+1, c+1 {
	}
}

// addPawnAdvance emits a pawn arrival, expanding to the four promotion
// candidates (rook, knight, bishop, queen) when the pawn reaches its far rank.
func addPawnAdvance(s core.Side, from, to core.Pos, promotes bool, moves *[]core.Move) {
	if !promotes {
		*moves = append(*moves, core.Move{From: from, To: to, Kind: core.NormalMove})
		return
	}
	for _, kind := range [4]core.PieceKind{core.Rook, core.Knight, core.Bishop, core.Queen} {
		*moves = append(*moves, core.Move{
			From:      from,
			To:        to,
			Kind:      core.Promote,
			Promotion: core.PieceFor(s, kind),
		})
	}
}

func genPawn(b *board.Board, from core.Pos, moves *[]core.Move) {
	side := b.Get(from).Side()
	dir, homeRow, promoteRow := 1, core.UpperPawnHomeRow, core.UpperPawnPromoteRow
	if side == core.Down {
		dir, homeRow, promoteRow = -1, core.DownPawnHomeRow, core.DownPawnPromoteRow
	}

	if ep := b.EnPassant(); ep != core.NoPos && from.Row == ep.Row {
		if from.Col+1 == ep.Col || from.Col-1 == ep.Col {
			*moves = append(*moves, core.Move{
				From: from,
				To:   core.Pos{Row: from.Row + dir, Col: ep.Col},
				Kind: core.EnPassant,
			})
		}
	}

	if b.At(from.Row+dir, from.Col) == core.EmptySquare {
		if from.Row == homeRow && b.At(from.Row+2*dir, from.Col) == core.EmptySquare {
			*moves = append(*moves, core.Move{
				From: from,
				To:   core.Pos{Row: from.Row + 2*dir, Col: from.Col},
				Kind: core.PawnDoubleStep,
			})
		}
		addPawnAdvance(side, from, core.Pos{Row: from.Row + dir, Col: from.Col},
			from.Row+dir == promoteRow, moves)
	}

	for _, col := range [2]int{from.Col + 1, from.Col - 1} {
		target := b.At(from.Row+dir, col)
		if s := target.Side(); s != core.Neither && s != side {
			addPawnAdvance(side, from, core.Pos{Row: from.Row + dir, Col: col},
				from.Row+dir == promoteRow, moves)
		}
	}
}

func genKnight(b *board.Board, from core.Pos, moves *[]core.Move) {
	tryMove(b, from, core.Pos{Row: from.Row + 2, Col: from.Col - 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row + 2, Col: from.Col + 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row + 1, Col: from.Col - 2}, moves)
	tryMove(b, from, core.Pos{Row: from.Row + 1, Col: from.Col + 2}, moves)
	tryMove(b, from, core.Pos{Row: from.Row - 1, Col: from.Col - 2}, moves)
	tryMove(b, from, core.Pos{Row: from.Row - 1, Col: from.Col + 2}, moves)
	tryMove(b, from, core.Pos{Row: from.Row - 2, Col: from.Col - 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row - 2, Col: from.Col + 1}, moves)
}

func genKing(b *board.Board, from core.Pos, moves *[]core.Move) {
	tryMove(b, from, core.Pos{Row: from.Row - 1, Col: from.Col - 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row - 1, Col: from.Col}, moves)
	tryMove(b, from, core.Pos{Row: from.Row - 1, Col: from.Col + 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row, Col: from.Col - 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row, Col: from.Col + 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row + 1, Col: from.Col - 1}, moves)
	tryMove(b, from, core.Pos{Row: from.Row + 1, Col: from.Col}, moves)
	tryMove(b, from, core.Pos{Row: from.Row + 1, Col: from.Col + 1}, moves)

	side := b.Get(from).Side()
	if side == core.Neither || !b.CanCastle(side) {
		return
	}
	rook := core.PieceFor(side, core.Rook)

	if b.At(from.Row, from.Col+1) == core.EmptySquare &&
		b.At(from.Row, from.Col+2) == core.EmptySquare &&
		b.At(from.Row, from.Col+3) == rook {
		*moves = append(*moves, core.Move{
			From: from,
			To:   core.Pos{Row: from.Row, Col: from.Col + 2},
			Kind: core.ShortCastle,
		})
	}

	if b.At(from.Row, from.Col-1) == core.EmptySquare &&
		b.At(from.Row, from.Col-2) == core.EmptySquare &&
		b.At(from.Row, from.Col-3) == core.EmptySquare &&
		b.At(from.Row, from.Col-4) == rook {
		*moves = append(*moves, core.Move{
			From: from,
			To:   core.Pos{Row: from.Row, Col: from.Col - 2},
			Kind: core.LongCastle,
		})
	}
}

func genPiece(b *board.Board, from core.Pos, moves *[]core.Move) {
	switch b.Get(from).Kind() {
	case core.Pawn:
		genPawn(b, from, moves)
	case core.Rook:
		genCrossing(b, from, moves)
	case core.Knight:
		genKnight(b, from, moves)
	case core.Bishop:
		genDiagonal(b, from, moves)
	case core.Queen:
		genCrossing(b, from, moves)
		genDiagonal(b, from, moves)
	case core.King:
		genKing(b, from, moves)
	}
}

// PieceMoves generates the pseudo-legal moves for the piece on one square.
// An empty or border square yields no moves.
func PieceMoves(b *board.Board, from core.Pos) []core.Move {
	moves := make([]core.Move, 0, 32)
	genPiece(b, from, &moves)
	return moves
}

// SideMoves generates the pseudo-legal moves for every piece of one side,
// scanning the logical board row-major. The order is the insertion order of
// the per-piece generators, which keeps generation deterministic.
func SideMoves(b *board.Board, s core.Side) []core.Move {
	moves := make([]core.Move, 0, 160)
	for r := core.LineBegin; r < core.LineEnd; r++ {
		for c := core.LineBegin; c < core.LineEnd; c++ {
			from := core.Pos{Row: r, Col: c}
			if b.Get(from).Side() == s {
				genPiece(b, from, &moves)
			}
		}
	}
	return moves
}
