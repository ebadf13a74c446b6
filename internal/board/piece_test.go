package board

import (
	"errors"
	"testing"
)

func TestNewPiece(t *testing.T) {
	if _, err := NewPiece(Rook, Color(7), sq(0, 0)); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("NewPiece with color 7: err = %v, want ErrInvalidColor", err)
	}
	if _, err := NewPiece(NoPieceType, White, sq(0, 0)); !errors.Is(err, ErrInvalidPiece) {
		t.Errorf("NewPiece with no type: err = %v, want ErrInvalidPiece", err)
	}

	p, err := NewPiece(Bishop, Black, sq(2, 7))
	if err != nil {
		t.Fatal(err)
	}
	if p.Empty() || p.Type != Bishop || p.Color != Black || p.Position != sq(2, 7) {
		t.Errorf("NewPiece = %+v", p)
	}
	if !(Piece{}).Empty() {
		t.Error("zero Piece is not empty")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"white", White},
		{"White", White},
		{"w", White},
		{"black", Black},
		{" B ", Black},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}

	for _, in := range []string{"blue", "", "whit"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestParsePieceType(t *testing.T) {
	tests := []struct {
		in   string
		want PieceType
	}{
		{"rook", Rook},
		{"Bishop", Bishop},
		{"n", Knight},
		{"K", King},
		{" pawn", Pawn},
	}
	for _, tc := range tests {
		got, err := ParsePieceType(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParsePieceType(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParsePieceType("dragon"); !errors.Is(err, ErrInvalidPiece) {
		t.Errorf("ParsePieceType(dragon) err = %v, want ErrInvalidPiece", err)
	}
}

func TestPieceCharsAndSymbols(t *testing.T) {
	tests := []struct {
		piece  Piece
		char   byte
		symbol string
	}{
		{Piece{Pawn, White, Square{}}, 'P', "♙"},
		{Piece{Pawn, Black, Square{}}, 'p', "♟"},
		{Piece{Rook, White, Square{}}, 'R', "♖"},
		{Piece{Rook, Black, Square{}}, 'r', "♜"},
		{Piece{Bishop, White, Square{}}, 'B', "♗"},
		{Piece{Bishop, Black, Square{}}, 'b', "♝"},
		{Piece{Knight, White, Square{}}, 'N', "♘"},
		{Piece{Queen, Black, Square{}}, 'q', "♛"},
		{Piece{King, White, Square{}}, 'K', "♔"},
	}
	for _, tc := range tests {
		if got := tc.piece.Char(); got != tc.char {
			t.Errorf("%v Char() = %c, want %c", tc.piece, got, tc.char)
		}
		if got := tc.piece.Symbol(); got != tc.symbol {
			t.Errorf("%v Symbol() = %s, want %s", tc.piece, got, tc.symbol)
		}

		parsed, err := ParsePiece(tc.char, sq(3, 3))
		if err != nil {
			t.Errorf("ParsePiece(%c): %v", tc.char, err)
			continue
		}
		if parsed.Type != tc.piece.Type || parsed.Color != tc.piece.Color {
			t.Errorf("ParsePiece(%c) = %v", tc.char, parsed)
		}
	}

	for _, c := range []byte{'x', '1', ' ', 'Z'} {
		if _, err := ParsePiece(c, sq(0, 0)); !errors.Is(err, ErrInvalidPiece) {
			t.Errorf("ParsePiece(%q) err = %v, want ErrInvalidPiece", c, err)
		}
	}
}

func TestSquares(t *testing.T) {
	tests := []struct {
		s          string
		file, rank int
	}{
		{"a1", 0, 0},
		{"e2", 4, 1},
		{"h8", 7, 7},
		{"c1", 2, 0},
	}
	for _, tc := range tests {
		got, err := ParseSquare(tc.s)
		if err != nil {
			t.Errorf("ParseSquare(%q): %v", tc.s, err)
			continue
		}
		if got != sq(tc.file, tc.rank) {
			t.Errorf("ParseSquare(%q) = %+v", tc.s, got)
		}
		if got.String() != tc.s {
			t.Errorf("String() = %q, want %q", got.String(), tc.s)
		}
	}

	for _, s := range []string{"i1", "a9", "a0", "e", "e22", ""} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) succeeded", s)
		}
	}

	if sq(-1, 3).Valid() || sq(0, 8).Valid() || !sq(7, 0).Valid() {
		t.Error("Valid() disagrees with board bounds")
	}

	m, err := ParseMove("e2e4")
	if err != nil || m != NewMove(sq(4, 1), sq(4, 3)) || m.String() != "e2e4" {
		t.Errorf("ParseMove(e2e4) = %v, %v", m, err)
	}
}
