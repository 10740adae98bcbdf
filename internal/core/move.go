package core

// Grid geometry. The logical 8x8 board sits inside a 12x12 grid with a
// two-cell OffBoard border on every edge, so ray and offset generators can
// step outside the board and read a sentinel instead of bounds-checking.
const (
	GridSize  = 12
	LineBegin = 2  // first logical row/col
	LineEnd   = 10 // one past the last logical row/col

	UpperPawnHomeRow    = 3
	DownPawnHomeRow     = 8
	UpperPawnPromoteRow = 9
	DownPawnPromoteRow  = 2
)

// Pos addresses a grid cell. The zero value lies in the border and doubles
// as the "no square" marker for the en-passant target.
type Pos struct {
	Row, Col int
}

// NoPos is the absent-square sentinel.
var NoPos = Pos{}

// OnBoard reports whether the position is inside the logical 8x8 board.
func (p Pos) OnBoard() bool {
	return p.Row >= LineBegin && p.Row < LineEnd && p.Col >= LineBegin && p.Col < LineEnd
}

// MoveKind tags how a move mutates the board beyond the from/to relocation.
type MoveKind int

const (
	InvalidMove MoveKind = iota
	NormalMove
	EnPassant
	LongCastle
	ShortCastle
	Promote
	PawnDoubleStep
)

func (k MoveKind) String() string {
	switch k {
	case NormalMove:
		return "normal"
	case EnPassant:
		return "en-passant"
	case LongCastle:
		return "long-castle"
	case ShortCastle:
		return "short-castle"
	case Promote:
		return "promote"
	case PawnDoubleStep:
		return "double-step"
	default:
		return "invalid"
	}
}

// Move describes a single ply. Promotion moves carry the piece placed on To.
//
// Moves are matched against generated candidates by (From, To) only; Kind and
// Promotion are resolved from the matching candidate, not from the input.
type Move struct {
	From, To  Pos
	Kind      MoveKind
	Promotion Piece
}

// SameSquares reports move identity as defined for rule matching.
func (m Move) SameSquares(other Move) bool {
	return m.From == other.From && m.To == other.To
}
