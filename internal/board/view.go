package board

// View is a read-only occupancy view. PieceAt reports the piece on sq,
// or false if the square is empty or off the board.
type View interface {
	PieceAt(sq Square) (Piece, bool)
}

// Grid is a copy of board occupancy indexed [rank][file].
// A Grid is a plain value: copying it copies every piece.
type Grid [Size][Size]Piece

// PieceAt implements View.
func (g *Grid) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := g[sq.Rank][sq.File]
	return p, !p.Empty()
}

// Pieces returns the pieces of the given color in (file, rank) order.
// NoColor returns every piece.
func (g *Grid) Pieces(c Color) []Piece {
	var pieces []Piece
	for file := 0; file < Size; file++ {
		for rank := 0; rank < Size; rank++ {
			p := g[rank][file]
			if p.Empty() || (c != NoColor && p.Color != c) {
				continue
			}
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Moves returns every move available to the pieces of color c.
func (g *Grid) Moves(c Color) []Move {
	var moves []Move
	for _, p := range g.Pieces(c) {
		for _, to := range p.PossibleMoves(g) {
			moves = append(moves, Move{From: p.Position, To: to})
		}
	}
	return moves
}

// apply moves the piece on m.From to m.To, capturing whatever stood there.
// It does no validation and returns the captured piece, if any.
func (g *Grid) apply(m Move) Piece {
	p := g[m.From.Rank][m.From.File]
	captured := g[m.To.Rank][m.To.File]
	p.Position = m.To
	g[m.To.Rank][m.To.File] = p
	g[m.From.Rank][m.From.File] = Piece{}
	return captured
}

// set stores p at its own position.
func (g *Grid) set(p Piece) {
	g[p.Position.Rank][p.Position.File] = p
}
