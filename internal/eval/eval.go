package eval

import (
	"abchess/internal/board"
	"abchess/internal/core"
)

// Evaluator scores positions against one Config.
type Evaluator struct {
	cfg *Config
}

func New(cfg *Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate sums material and positional value over every occupied logical
// square. Higher favors Down, lower favors Upper.
func (e *Evaluator) Evaluate(b *board.Board) float64 {
	var score float64
	for r := core.LineBegin; r < core.LineEnd; r++ {
		for c := core.LineBegin; c < core.LineEnd; c++ {
			p := b.At(r, c)
			if p == core.EmptySquare {
				continue
			}
			score += e.cfg.PieceValue(p)
			score += e.cfg.PosValue(p, r, c)
		}
	}
	return score
}
