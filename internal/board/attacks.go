package board

// CanAttack reports whether p, from its current position, could capture a
// piece standing on (x, y). The target must hold an enemy piece: an empty
// square is never attacked. Sliding pieces also need every square strictly
// between to be empty.
func (p Piece) CanAttack(x, y int, v View) bool {
	target := NewSquare(x, y)
	if !target.Valid() || target == p.Position {
		return false
	}

	df := x - p.Position.File
	dr := y - p.Position.Rank

	switch p.Type {
	case Pawn:
		if abs(df) != 1 || dr != p.Color.forward() {
			return false
		}
	case Knight:
		if !(abs(df) == 1 && abs(dr) == 2) && !(abs(df) == 2 && abs(dr) == 1) {
			return false
		}
	case King:
		if abs(df) > 1 || abs(dr) > 1 {
			return false
		}
	case Rook:
		if df != 0 && dr != 0 {
			return false
		}
		if !p.IsPathClear(x, y, v, sign(df), sign(dr)) {
			return false
		}
	case Bishop:
		if abs(df) != abs(dr) {
			return false
		}
		if !p.IsPathClear(x, y, v, sign(df), sign(dr)) {
			return false
		}
	case Queen:
		if df != 0 && dr != 0 && abs(df) != abs(dr) {
			return false
		}
		if !p.IsPathClear(x, y, v, sign(df), sign(dr)) {
			return false
		}
	default:
		return false
	}

	return p.isEnemy(v, target)
}

// IsPathClear walks from the square after p's position in (dx, dy) steps up
// to, but not including, (x, y). It returns false as soon as an intermediate
// square is occupied. dx and dy must each be -1, 0 or 1 and not both zero;
// any other step, or one that leaves the board before reaching (x, y),
// returns false.
func (p Piece) IsPathClear(x, y int, v View, dx, dy int) bool {
	if abs(dx) > 1 || abs(dy) > 1 || (dx == 0 && dy == 0) {
		return false
	}

	target := NewSquare(x, y)
	for sq := p.Position.Offset(dx, dy); sq != target; sq = sq.Offset(dx, dy) {
		if !sq.Valid() {
			return false
		}
		if occupied(v, sq) {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
