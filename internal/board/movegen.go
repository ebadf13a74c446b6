package board

import "slices"

// direction is a unit step in files and ranks.
type direction struct {
	df, dr int
}

var (
	rookDirections   = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = []direction{{-1, 1}, {1, 1}, {1, -1}, {-1, -1}}
	queenDirections  = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {-1, 1}, {1, 1}, {1, -1}, {-1, -1}}

	knightOffsets = []direction{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = queenDirections
)

// PossibleMoves returns the squares p can move to on v, ordered by file
// then rank. It never mutates p or v, and every square it returns is on the
// board. Moves ignore check: a move that leaves the king attacked is still
// returned.
func (p Piece) PossibleMoves(v View) []Square {
	var moves []Square

	switch p.Type {
	case Pawn:
		moves = p.pawnMoves(v)
	case Knight:
		moves = p.stepMoves(v, knightOffsets)
	case Bishop:
		moves = p.slide(v, bishopDirections)
	case Rook:
		moves = p.slide(v, rookDirections)
	case Queen:
		moves = p.slide(v, queenDirections)
	case King:
		moves = p.stepMoves(v, kingOffsets)
	}

	slices.SortFunc(moves, func(a, b Square) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		}
		return 0
	})
	return moves
}

// pawnMoves generates a single push onto an empty square and the two
// forward-diagonal captures.
func (p Piece) pawnMoves(v View) []Square {
	var moves []Square
	dir := p.Color.forward()

	// Push
	ahead := p.Position.Offset(0, dir)
	if ahead.Valid() && !occupied(v, ahead) {
		moves = append(moves, ahead)
	}

	// Captures
	for _, df := range [2]int{-1, 1} {
		to := p.Position.Offset(df, dir)
		if p.isEnemy(v, to) {
			moves = append(moves, to)
		}
	}

	return moves
}

// slide walks outward along each direction. Empty squares are moves and the
// walk continues; the first occupied square ends the walk and is a move only
// if it holds an enemy piece.
func (p Piece) slide(v View, dirs []direction) []Square {
	var moves []Square
	for _, d := range dirs {
		for to := p.Position.Offset(d.df, d.dr); to.Valid(); to = to.Offset(d.df, d.dr) {
			q, ok := v.PieceAt(to)
			if !ok {
				moves = append(moves, to)
				continue
			}
			if q.Color != p.Color {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// stepMoves generates single jumps to empty or enemy-occupied squares.
func (p Piece) stepMoves(v View, offsets []direction) []Square {
	var moves []Square
	for _, d := range offsets {
		to := p.Position.Offset(d.df, d.dr)
		if !to.Valid() {
			continue
		}
		if q, ok := v.PieceAt(to); !ok || q.Color != p.Color {
			moves = append(moves, to)
		}
	}
	return moves
}

// isEnemy reports whether sq is on the board and holds a piece of the
// other color.
func (p Piece) isEnemy(v View, sq Square) bool {
	if !sq.Valid() {
		return false
	}
	q, ok := v.PieceAt(sq)
	return ok && q.Color != p.Color
}

func occupied(v View, sq Square) bool {
	_, ok := v.PieceAt(sq)
	return ok
}
