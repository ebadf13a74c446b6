package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a Board holding its pieces.
// Only the piece placement field is read; side to move, castling rights and
// the clocks are accepted but ignored.
func ParseFEN(fen string, opts ...Option) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}

	pieces, err := parsePiecePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	b := NewBoard(opts...)
	if err := b.Load(pieces); err != nil {
		return nil, err
	}
	return b, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(placement string) ([]Piece, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return nil, fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	var pieces []Piece
	for i, rankStr := range ranks {
		rank := Size - 1 - i // FEN starts from rank 8
		file := 0

		for _, c := range rankStr {
			if file >= Size {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			p, err := ParsePiece(byte(c), NewSquare(file, rank))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
			}
			pieces = append(pieces, p)
			file++
		}

		if file != Size {
			return nil, fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, rank+1, file)
		}
	}

	return pieces, nil
}

// FEN returns the piece placement field of the board's FEN.
func (b *Board) FEN() string {
	g := b.Snapshot()
	return g.FEN()
}

// FEN returns the piece placement field for the grid.
func (g *Grid) FEN() string {
	var sb strings.Builder

	for rank := Size - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < Size; file++ {
			p := g[rank][file]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
