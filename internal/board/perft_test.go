package board

import (
	"context"
	"errors"
	"testing"
)

// TestPerftStartingPosition checks the sequence counts from the starting
// position. Without double steps White has 8 pawn pushes and 4 knight moves,
// and Black's replies do not depend on White's first move.
func TestPerftStartingPosition(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{0, 1},
		{1, 12},
		{2, 144},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got, err := Perft(context.Background(), b.Snapshot(), White, tc.depth)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// TestPerftLoneRooks checks a position small enough to count by hand.
// White rook a1 has 14 moves. When it lands on a8 or h1 it shortens one of
// the black rook's lines by a square but offers a capture there, so Black
// always has 14 replies.
func TestPerftLoneRooks(t *testing.T) {
	b, err := ParseFEN("7r/8/8/8/8/8/8/R7")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 196},
	}

	for _, tc := range tests {
		got, err := Perft(context.Background(), b.Snapshot(), White, tc.depth)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

func TestPerftCancelled(t *testing.T) {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Perft(ctx, b.Snapshot(), White, 3); !errors.Is(err, context.Canceled) {
		t.Errorf("Perft err = %v, want context.Canceled", err)
	}
}
