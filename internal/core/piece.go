// Package core holds the shared chess model: pieces, coordinates, moves,
// notation and the API types exchanged between the transports and the engine.
package core

import "fmt"

// Side identifies a player. Upper pieces start at the top of the internal
// grid, Down pieces at the bottom. Neither marks empty or out-of-board
// squares.
type Side int

const (
	Upper Side = iota
	Down
	Neither
)

func (s Side) String() string {
	switch s {
	case Upper:
		return "upper"
	case Down:
		return "down"
	default:
		return "-"
	}
}

func (s Side) Opposite() Side {
	switch s {
	case Upper:
		return Down
	case Down:
		return Upper
	default:
		return Neither
	}
}

// PieceKind classifies a piece independent of its side.
type PieceKind int

const (
	Pawn PieceKind = iota
	Rook
	Knight
	Bishop
	Queen
	King
	Empty
	OutOfBoard
)

// Piece is a compact value identifying (Side, PieceKind). The 12 playable
// combinations come first so they can index the evaluation tables directly;
// EmptySquare and OffBoard are sentinels.
type Piece int8

const (
	UpperPawn Piece = iota
	UpperRook
	UpperKnight
	UpperBishop
	UpperQueen
	UpperKing
	DownPawn
	DownRook
	DownKnight
	DownBishop
	DownQueen
	DownKing
	EmptySquare
	OffBoard
)

const (
	// NumPieces counts every Piece value including the two sentinels.
	NumPieces = 14
	// NumPlayablePieces excludes EmptySquare and OffBoard.
	NumPlayablePieces = 12
)

func (p Piece) Side() Side {
	switch {
	case p >= UpperPawn && p <= UpperKing:
		return Upper
	case p >= DownPawn && p <= DownKing:
		return Down
	default:
		return Neither
	}
}

func (p Piece) Kind() PieceKind {
	switch p {
	case UpperPawn, DownPawn:
		return Pawn
	case UpperRook, DownRook:
		return Rook
	case UpperKnight, DownKnight:
		return Knight
	case UpperBishop, DownBishop:
		return Bishop
	case UpperQueen, DownQueen:
		return Queen
	case UpperKing, DownKing:
		return King
	case EmptySquare:
		return Empty
	default:
		return OutOfBoard
	}
}

// pieceBytes maps each Piece to its board character. Upper pieces are
// uppercase, Down pieces lowercase, matching the rendered board.
var pieceBytes = [NumPieces]byte{
	'P', 'R', 'N', 'B', 'Q', 'K',
	'p', 'r', 'n', 'b', 'q', 'k',
	'.', '#',
}

func (p Piece) Byte() byte {
	if p < 0 || p >= NumPieces {
		return '#'
	}
	return pieceBytes[p]
}

func (p Piece) String() string {
	return string(p.Byte())
}

// PieceFromByte parses a board character back into a Piece.
func PieceFromByte(b byte) (Piece, error) {
	for i, pb := range pieceBytes {
		if pb == b {
			return Piece(i), nil
		}
	}
	return OffBoard, fmt.Errorf("unknown piece character %q", b)
}

// PieceFor returns the piece of the given kind belonging to side.
// Kind must be a playable kind and side must be Upper or Down.
func PieceFor(s Side, k PieceKind) Piece {
	base := UpperPawn
	if s == Down {
		base = DownPawn
	}
	return base + Piece(k)
}
