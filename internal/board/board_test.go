package board

import (
	"errors"
	"sync"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
)

// demoBoard sets up the position used by the command-line demo.
func demoBoard(t *testing.T, opts ...Option) *Board {
	t.Helper()
	b := NewBoard(opts...)
	for _, p := range []Piece{
		{Pawn, White, sq(4, 1)},
		{Rook, Black, sq(0, 0)},
		{Bishop, White, sq(2, 0)},
		{Rook, Black, sq(5, 2)},
	} {
		if err := b.Place(p); err != nil {
			t.Fatalf("Place(%v): %v", p, err)
		}
	}
	return b
}

func TestPlace(t *testing.T) {
	b := NewBoard()
	rook := mustPiece(t, Rook, White, sq(0, 0))
	if err := b.Place(rook); err != nil {
		t.Fatalf("Place: %v", err)
	}

	got, ok := b.Get(sq(0, 0))
	if !ok || got != rook {
		t.Errorf("Get(a1) = %v, %v; want %v, true", got, ok, rook)
	}

	err := b.Place(Piece{Pawn, Black, sq(0, 0)})
	if !errors.Is(err, ErrOccupiedSquare) {
		t.Errorf("Place on occupied square: err = %v, want ErrOccupiedSquare", err)
	}
	if got, _ := b.Get(sq(0, 0)); got != rook {
		t.Errorf("occupied square overwritten: got %v", got)
	}

	tests := []struct {
		piece Piece
		want  error
	}{
		{Piece{Rook, White, sq(8, 0)}, ErrOffBoard},
		{Piece{Rook, White, sq(0, -1)}, ErrOffBoard},
		{Piece{Rook, NoColor, sq(1, 1)}, ErrInvalidColor},
		{Piece{NoPieceType, White, sq(1, 1)}, ErrInvalidPiece},
	}
	for _, tc := range tests {
		if err := b.Place(tc.piece); !errors.Is(err, tc.want) {
			t.Errorf("Place(%+v) err = %v, want %v", tc.piece, err, tc.want)
		}
	}
	if n := len(b.Pieces()); n != 1 {
		t.Errorf("board holds %d pieces after failed placements, want 1", n)
	}
}

func TestMovePieceErrors(t *testing.T) {
	b := demoBoard(t)
	before := b.Snapshot()

	tests := []struct {
		name     string
		from, to Square
		want     error
	}{
		{"empty square", sq(4, 4), sq(4, 5), ErrNoPieceAtSquare},
		{"off board", sq(9, 9), sq(4, 5), ErrNoPieceAtSquare},
		{"pawn sideways", sq(4, 1), sq(5, 1), ErrIllegalMove},
		{"pawn double step", sq(4, 1), sq(4, 3), ErrIllegalMove},
		{"bishop onto own pawn", sq(2, 0), sq(4, 1), ErrIllegalMove},
		{"rook through rook", sq(0, 0), sq(7, 0), ErrIllegalMove},
		{"null move", sq(0, 0), sq(0, 0), ErrIllegalMove},
		{"off board target", sq(0, 0), sq(0, 8), ErrIllegalMove},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := b.MovePiece(tc.from, tc.to)
			if !errors.Is(err, tc.want) {
				t.Fatalf("MovePiece(%v, %v) err = %v, want %v", tc.from, tc.to, err, tc.want)
			}
			if b.Snapshot() != before {
				t.Error("failed move changed the board")
			}
		})
	}
}

func TestMovePieceCapture(t *testing.T) {
	b := demoBoard(t)
	before := b.Snapshot()

	// White pawn e2 takes the black rook on f3.
	if err := b.MovePiece(sq(4, 1), sq(5, 2)); err != nil {
		t.Fatalf("MovePiece: %v", err)
	}

	if _, ok := b.Get(sq(4, 1)); ok {
		t.Error("source square still occupied")
	}
	got, ok := b.Get(sq(5, 2))
	want := Piece{Pawn, White, sq(5, 2)}
	if !ok || got != want {
		t.Errorf("Get(f3) = %v, %v; want %v", got, ok, want)
	}
	if n := len(b.Pieces()); n != 3 {
		t.Errorf("board holds %d pieces, want 3", n)
	}

	// Every other square is untouched.
	after := b.Snapshot()
	for file := 0; file < Size; file++ {
		for rank := 0; rank < Size; rank++ {
			s := sq(file, rank)
			if s == sq(4, 1) || s == sq(5, 2) {
				continue
			}
			if after[rank][file] != before[rank][file] {
				t.Errorf("square %v changed", s)
			}
		}
	}

	// The moved piece keeps working from its new square.
	moves, err := b.PossibleMoves(sq(5, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 1 || moves[0] != sq(5, 3) {
		t.Errorf("pawn f3 moves = %v, want [f4]", moves)
	}
}

func TestBoardQueries(t *testing.T) {
	b := demoBoard(t)

	moves, err := b.PossibleMoves(sq(4, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 || moves[0] != sq(4, 2) || moves[1] != sq(5, 2) {
		t.Errorf("pawn e2 moves = %v, want [e3 f3]", moves)
	}

	ok, err := b.CanAttack(sq(2, 0), 4, 1)
	if err != nil || ok {
		t.Errorf("bishop c1 attacks e2 = %v, %v; want false, nil", ok, err)
	}

	if _, err := b.PossibleMoves(sq(7, 7)); !errors.Is(err, ErrNoPieceAtSquare) {
		t.Errorf("PossibleMoves(h8) err = %v, want ErrNoPieceAtSquare", err)
	}
	if _, err := b.CanAttack(sq(7, 7), 0, 0); !errors.Is(err, ErrNoPieceAtSquare) {
		t.Errorf("CanAttack(h8) err = %v, want ErrNoPieceAtSquare", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	b := demoBoard(t)
	p, _ := b.Get(sq(0, 0))
	p.Position = sq(3, 3)
	p.Color = White

	got, _ := b.Get(sq(0, 0))
	if got.Position != sq(0, 0) || got.Color != Black {
		t.Errorf("board piece changed through a copy: %v", got)
	}
}

func TestLoad(t *testing.T) {
	b := demoBoard(t)
	before := b.Snapshot()

	err := b.Load([]Piece{
		{King, White, sq(4, 0)},
		{King, Black, sq(4, 0)},
	})
	if !errors.Is(err, ErrOccupiedSquare) {
		t.Fatalf("Load with duplicate square err = %v, want ErrOccupiedSquare", err)
	}
	if b.Snapshot() != before {
		t.Error("failed Load changed the board")
	}

	if err := b.Load([]Piece{{King, White, sq(4, 0)}}); err != nil {
		t.Fatal(err)
	}
	if n := len(b.Pieces()); n != 1 {
		t.Errorf("board holds %d pieces after Load, want 1", n)
	}

	b.Clear()
	if n := len(b.Pieces()); n != 0 {
		t.Errorf("board holds %d pieces after Clear, want 0", n)
	}
}

func TestMoveLogging(t *testing.T) {
	h := memory.New()
	b := demoBoard(t, WithLogger(&log.Logger{Handler: h, Level: log.DebugLevel}))

	if err := b.MovePiece(sq(4, 1), sq(5, 2)); err != nil {
		t.Fatal(err)
	}
	if err := b.MovePiece(sq(4, 4), sq(4, 5)); err == nil {
		t.Fatal("move from empty square succeeded")
	}

	if len(h.Entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(h.Entries))
	}
	moved := h.Entries[0]
	if moved.Message != "piece moved" {
		t.Errorf("message = %q, want %q", moved.Message, "piece moved")
	}
	if moved.Fields.Get("captured") != "Rook" || moved.Fields.Get("to") != "f3" {
		t.Errorf("fields = %v", moved.Fields)
	}
	if h.Entries[1].Message != "move rejected" {
		t.Errorf("message = %q, want %q", h.Entries[1].Message, "move rejected")
	}
}

func TestConcurrentMovesAreAtomic(t *testing.T) {
	b := NewBoard()
	if err := b.Place(Piece{Rook, White, sq(0, 0)}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			from, to := sq(0, 0), sq(0, 7)
			if i%2 == 1 {
				from, to = to, from
			}
			if err := b.MovePiece(from, to); err != nil {
				t.Errorf("MovePiece(%v, %v): %v", from, to, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				g := b.Snapshot()
				pieces := g.Pieces(NoColor)
				if len(pieces) != 1 {
					t.Errorf("snapshot holds %d pieces", len(pieces))
					return
				}
				p := pieces[0]
				if got, _ := g.PieceAt(p.Position); got != p {
					t.Errorf("piece %v stored away from its position", p)
					return
				}
			}
		}()
	}

	wg.Wait()
}
