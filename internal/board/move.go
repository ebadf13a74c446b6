package board

import "fmt"

// Move is a from/to square pair.
type Move struct {
	From Square
	To   Square
}

// NewMove creates a move between two squares.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// String returns the move in coordinate notation (e.g., "e2e4").
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation (e.g., "e2e4").
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("invalid move: %s", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, err
	}
	return NewMove(from, to), nil
}
