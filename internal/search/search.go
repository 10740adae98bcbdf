// Package search selects moves by fixed-depth minimax with alpha-beta
// pruning. Down maximizes the evaluation, Upper minimizes it. The search
// mutates one exclusively-owned board through Apply/Undo and restores it
// exactly before returning.
package search

import (
	"abchess/internal/board"
	"abchess/internal/core"
	"abchess/internal/eval"
	"abchess/internal/movegen"

	"golang.org/x/sync/errgroup"
)

// Score sentinels for the alpha-beta window. These must be true negative and
// positive bounds; math.SmallestNonzeroFloat64 is a tiny positive number near
// zero and would silently break the maximizing side.
const (
	LowerBound = -5000000.0
	UpperBound = 5000000.0
)

// rootChunks is how many contiguous slices the parallel variant splits the
// root move list into.
const rootChunks = 32

type Engine struct {
	eval *eval.Evaluator
}

func New(e *eval.Evaluator) *Engine {
	return &Engine{eval: e}
}

// Evaluate exposes the engine's static evaluation of a position.
func (e *Engine) Evaluate(b *board.Board) float64 {
	return e.eval.Evaluate(b)
}

// Search returns the alpha-beta value of the position at the given depth for
// the side to move. Depth zero evaluates the board directly.
func (e *Engine) Search(b *board.Board, depth int, alpha, beta float64, side core.Side) float64 {
	if depth == 0 {
		return e.eval.Evaluate(b)
	}

	moves := movegen.SideMoves(b, side)

	if side == core.Down {
		best := LowerBound
		for _, m := range moves {
			b.Apply(m)
			if v := e.Search(b, depth-1, alpha, beta, core.Upper); v > best {
				best = v
			}
			b.Undo()

			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := UpperBound
	for _, m := range moves {
		b.Apply(m)
		if v := e.Search(b, depth-1, alpha, beta, core.Down); v < best {
			best = v
		}
		b.Undo()

		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// BestMove picks a move for side at the given depth. Among equal scores the
// move generated later wins; callers relying on reproducible play depend on
// that tie-break.
func (e *Engine) BestMove(b *board.Board, side core.Side, depth int) core.Move {
	m, _ := e.bestOf(b, movegen.SideMoves(b, side), side, depth)
	return m
}

// bestOf runs the root selection loop over one move slice. Each root move is
// searched with the full window; the window is not tightened between root
// siblings.
func (e *Engine) bestOf(b *board.Board, moves []core.Move, side core.Side, depth int) (core.Move, float64) {
	var best core.Move

	if side == core.Upper {
		minValue := UpperBound
		for _, m := range moves {
			b.Apply(m)
			v := e.Search(b, depth, LowerBound, UpperBound, core.Down)
			b.Undo()

			if v <= minValue {
				minValue = v
				best = m
			}
		}
		return best, minValue
	}

	maxValue := LowerBound
	for _, m := range moves {
		b.Apply(m)
		v := e.Search(b, depth, LowerBound, UpperBound, core.Upper)
		b.Undo()

		if v >= maxValue {
			maxValue = v
			best = m
		}
	}
	return best, maxValue
}

// BestMoveParallel explores the same root move set as BestMove, split into
// contiguous chunks searched concurrently, each against its own board copy
// with a fresh full window. Because sibling chunks share no window the total
// pruning is weaker than the serial search; the chosen move is combined from
// the chunk winners with the same tie-break, chunk order standing in for
// generation order.
func (e *Engine) BestMoveParallel(b *board.Board, side core.Side, depth int) core.Move {
	moves := movegen.SideMoves(b, side)
	chunks := splitMoves(moves, rootChunks)
	if len(chunks) == 0 {
		return core.Move{}
	}

	bestMoves := make([]core.Move, len(chunks))
	bestValues := make([]float64, len(chunks))

	var g errgroup.Group
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			local := b.Clone()
			bestMoves[i], bestValues[i] = e.bestOf(local, chunk, side, depth)
			return nil
		})
	}
	g.Wait()

	best := bestMoves[0]
	bestValue := bestValues[0]
	for i := 1; i < len(chunks); i++ {
		if side == core.Upper {
			if bestValues[i] <= bestValue {
				best, bestValue = bestMoves[i], bestValues[i]
			}
		} else {
			if bestValues[i] >= bestValue {
				best, bestValue = bestMoves[i], bestValues[i]
			}
		}
	}
	return best
}

// splitMoves cuts the list into n contiguous chunks, or one move per chunk
// when there are fewer moves than chunks. The last chunk takes the remainder.
func splitMoves(moves []core.Move, n int) [][]core.Move {
	if len(moves) == 0 {
		return nil
	}
	chunkLen := len(moves) / n
	if chunkLen == 0 {
		n = len(moves)
		chunkLen = 1
	}

	chunks := make([][]core.Move, 0, n)
	for i := 0; i < n-1; i++ {
		chunks = append(chunks, moves[i*chunkLen:(i+1)*chunkLen])
	}
	chunks = append(chunks, moves[(n-1)*chunkLen:])
	return chunks
}
