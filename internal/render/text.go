// Package render draws boards for people: a text grid for terminals and a
// PNG diagram. It reads boards only through board.View.
package render

import (
	"fmt"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

const rule = "  +---+---+---+---+---+---+---+---+\n"

// Text returns the board as a text grid with rank 8 on top and Unicode
// figurines for pieces.
func Text(v board.View) string {
	var sb strings.Builder

	sb.WriteString(rule)
	for rank := board.Size - 1; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d |", rank+1)
		for file := 0; file < board.Size; file++ {
			p, ok := v.PieceAt(board.NewSquare(file, rank))
			if !ok {
				sb.WriteString(" . |")
				continue
			}
			fmt.Fprintf(&sb, " %s |", p.Symbol())
		}
		sb.WriteByte('\n')
		sb.WriteString(rule)
	}
	sb.WriteString("    a   b   c   d   e   f   g   h\n")

	return sb.String()
}

// Squares formats a move list as "e3 f3".
func Squares(squares []board.Square) string {
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	return strings.Join(names, " ")
}
