// Package board implements an 8x8 chess board that owns piece placement
// and validates moves against per-piece move generation.
package board

import "fmt"

// Size is the number of files and ranks on the board.
const Size = 8

// Square is a (file, rank) coordinate on the board.
// File 0 is the a-file; rank 0 is White's home edge (the 1st rank).
type Square struct {
	File int
	Rank int
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// Valid reports whether both coordinates lie in [0, Size).
func (sq Square) Valid() bool {
	return inBounds(sq.File, sq.Rank)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.Valid() {
		return fmt.Sprintf("(%d,%d)", sq.File, sq.Rank)
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File, '1'+sq.Rank)
}

// Offset returns the square shifted by df files and dr ranks.
// The result may be off the board.
func (sq Square) Offset(df, dr int) Square {
	return Square{File: sq.File + df, Rank: sq.Rank + dr}
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if !inBounds(file, rank) {
		return Square{}, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank
	}
	return Size - 1 - sq.Rank
}

// less orders squares by file, then rank.
func (sq Square) less(o Square) bool {
	if sq.File != o.File {
		return sq.File < o.File
	}
	return sq.Rank < o.Rank
}

func inBounds(file, rank int) bool {
	return file >= 0 && file < Size && rank >= 0 && rank < Size
}
