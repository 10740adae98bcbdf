package core

import "fmt"

// Move notation is four characters <file><rank><file><rank> with files a-h
// left to right and rank 8 on the internal top row, e.g. "e2e4". A fifth
// character (r, n, b or q) optionally selects the promotion piece; without it
// a promotion defaults to queen at match time.

// ParseMove converts notation into a Move with unresolved Kind. The returned
// move carries only squares (and the requested promotion kind via
// ParsePromotionKind); Kind stays InvalidMove until matched against a
// generated candidate.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("move %q: want 4 or 5 characters", s)
	}
	from, err := parseSquare(s[0], s[1])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, err)
	}
	to, err := parseSquare(s[2], s[3])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", s, err)
	}
	return Move{From: from, To: to, Promotion: OffBoard}, nil
}

// ParsePromotionKind maps a notation suffix to the promoted piece kind.
func ParsePromotionKind(c byte) (PieceKind, error) {
	switch c {
	case 'r':
		return Rook, nil
	case 'n':
		return Knight, nil
	case 'b':
		return Bishop, nil
	case 'q':
		return Queen, nil
	default:
		return Empty, fmt.Errorf("promotion %q: want one of r, n, b, q", c)
	}
}

func parseSquare(file, rank byte) (Pos, error) {
	if file < 'a' || file > 'h' {
		return Pos{}, fmt.Errorf("file %q out of range", file)
	}
	if rank < '1' || rank > '8' {
		return Pos{}, fmt.Errorf("rank %q out of range", rank)
	}
	return Pos{
		Row: LineBegin + int('8'-rank),
		Col: LineBegin + int(file-'a'),
	}, nil
}

// Square renders a position in file-rank notation.
func (p Pos) Square() string {
	return string([]byte{
		byte('a' + p.Col - LineBegin),
		byte('8' - (p.Row - LineBegin)),
	})
}

// String renders a move in four-character notation.
func (m Move) String() string {
	return m.From.Square() + m.To.Square()
}
