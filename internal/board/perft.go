package board

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Perft counts the move sequences of the given depth starting with side to
// move and alternating colors. Moves follow PossibleMoves, so the count
// differs from standard perft tables: there is no check, castling,
// double-step, en passant or promotion. Root moves are searched in parallel.
func Perft(ctx context.Context, g Grid, side Color, depth int) (int64, error) {
	if depth <= 0 {
		return 1, nil
	}

	roots := g.Moves(side)
	if depth == 1 {
		return int64(len(roots)), nil
	}

	var nodes atomic.Int64
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for _, m := range roots {
		child := g
		child.apply(m)
		eg.Go(func() error {
			n, err := perft(ctx, &child, side.Other(), depth-1)
			nodes.Add(n)
			return err
		})
	}

	err := eg.Wait()
	return nodes.Load(), err
}

func perft(ctx context.Context, g *Grid, side Color, depth int) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	moves := g.Moves(side)
	if depth == 1 {
		return int64(len(moves)), nil
	}

	var nodes int64
	for _, m := range moves {
		child := *g
		child.apply(m)
		n, err := perft(ctx, &child, side.Other(), depth-1)
		nodes += n
		if err != nil {
			return nodes, err
		}
	}
	return nodes, nil
}
