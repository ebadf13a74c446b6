package board

import (
	"fmt"
	"strings"
)

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Valid reports whether c is White or Black.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// forward returns the rank step a pawn of this color advances by.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// ParseColor converts untyped input ("white", "b", ...) to a Color.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

// PieceType represents the type of a chess piece.
// The zero value marks an empty square.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// ParsePieceType converts a piece name ("rook") or letter ("r") to a PieceType.
func ParsePieceType(s string) (PieceType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for pt := Pawn; pt <= King; pt++ {
		if s == strings.ToLower(pt.String()) || (len(s) == 1 && s[0] == pt.Char()) {
			return pt, nil
		}
	}
	return NoPieceType, fmt.Errorf("%w: %q", ErrInvalidPiece, s)
}

// Valid reports whether pt names a real piece.
func (pt PieceType) Valid() bool {
	return pt >= Pawn && pt <= King
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if !pt.Valid() {
		return ' '
	}
	return " pnbrqk"[pt]
}

// Piece is a piece of a given type and color standing on Position.
// The zero value is the empty square.
type Piece struct {
	Type     PieceType
	Color    Color
	Position Square
}

// NewPiece creates a piece, rejecting unknown types and colors.
func NewPiece(pt PieceType, c Color, sq Square) (Piece, error) {
	if !c.Valid() {
		return Piece{}, fmt.Errorf("%w: %d", ErrInvalidColor, c)
	}
	if !pt.Valid() {
		return Piece{}, fmt.Errorf("%w: type %d", ErrInvalidPiece, pt)
	}
	return Piece{Type: pt, Color: c, Position: sq}, nil
}

// ParsePiece converts a FEN character ('P', 'r', ...) to a piece on sq.
func ParsePiece(c byte, sq Square) (Piece, error) {
	color := White
	lower := c
	if c >= 'a' && c <= 'z' {
		color = Black
	} else {
		lower = c + ('a' - 'A')
	}
	i := strings.IndexByte("pnbrqk", lower)
	if i < 0 {
		return Piece{}, fmt.Errorf("%w: character %q", ErrInvalidPiece, c)
	}
	return NewPiece(PieceType(i+1), color, sq)
}

// Empty reports whether p is the empty square.
func (p Piece) Empty() bool {
	return p.Type == NoPieceType
}

// Char returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	c := p.Type.Char()
	if p.Color == White && c != ' ' {
		c -= 'a' - 'A'
	}
	return c
}

var symbols = [2][7]string{
	{" ", "♙", "♘", "♗", "♖", "♕", "♔"},
	{" ", "♟", "♞", "♝", "♜", "♛", "♚"},
}

// Symbol returns the Unicode figurine for the piece.
func (p Piece) Symbol() string {
	if p.Empty() || !p.Color.Valid() || !p.Type.Valid() {
		return " "
	}
	return symbols[p.Color][p.Type]
}

// String returns e.g. "White Rook a1".
func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s %s", p.Color, p.Type, p.Position)
}
