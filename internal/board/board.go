package board

import (
	"fmt"
	"slices"
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
)

// Board is an 8x8 grid that owns its pieces by value.
//
// A stored piece's Position always equals the square it is stored on.
// Mutations hold the write lock for their whole duration, so readers see
// either the board before a move or after it, never in between.
type Board struct {
	mu   sync.RWMutex
	grid Grid
	log  log.Interface
}

// Option configures a Board.
type Option func(*Board)

// WithLogger makes the board report moves to l.
func WithLogger(l log.Interface) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBoard creates an empty board.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		log: &log.Logger{Handler: discard.Default, Level: log.FatalLevel},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Place stores p on p.Position. It fails with ErrOccupiedSquare if another
// piece already stands there.
func (b *Board) Place(p Piece) error {
	if err := checkPiece(p); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if q, ok := b.grid.PieceAt(p.Position); ok {
		return fmt.Errorf("%w: %s holds %s", ErrOccupiedSquare, p.Position, q)
	}
	b.grid.set(p)
	return nil
}

// MovePiece moves the piece on from to to if to is one of its possible
// moves. A piece on to is captured. On error the board is unchanged.
func (b *Board) MovePiece(from, to Square) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.grid.PieceAt(from)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrNoPieceAtSquare, from)
		b.log.WithError(err).Debug("move rejected")
		return err
	}

	if !slices.Contains(p.PossibleMoves(&b.grid), to) {
		err := fmt.Errorf("%w: %s cannot move to %s", ErrIllegalMove, p, to)
		b.log.WithError(err).Debug("move rejected")
		return err
	}

	captured := b.grid.apply(NewMove(from, to))

	ctx := b.log.WithFields(log.Fields{
		"piece": p.Color.String() + " " + p.Type.String(),
		"from":  from.String(),
		"to":    to.String(),
	})
	if !captured.Empty() {
		ctx = ctx.WithField("captured", captured.Type.String())
	}
	ctx.Debug("piece moved")

	return nil
}

// Get returns a copy of the piece on sq.
func (b *Board) Get(sq Square) (Piece, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grid.PieceAt(sq)
}

// PieceAt implements View. Each call locks separately; use Snapshot when
// several reads must agree with each other.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	return b.Get(sq)
}

// PossibleMoves returns the possible moves of the piece on sq.
func (b *Board) PossibleMoves(sq Square) ([]Square, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.grid.PieceAt(sq)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPieceAtSquare, sq)
	}
	return p.PossibleMoves(&b.grid), nil
}

// CanAttack reports whether the piece on from can attack (x, y).
func (b *Board) CanAttack(from Square, x, y int) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.grid.PieceAt(from)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNoPieceAtSquare, from)
	}
	return p.CanAttack(x, y, &b.grid), nil
}

// Snapshot returns a copy of the occupancy grid.
func (b *Board) Snapshot() Grid {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.grid
}

// Pieces returns copies of all pieces in (file, rank) order.
func (b *Board) Pieces() []Piece {
	g := b.Snapshot()
	return g.Pieces(NoColor)
}

// Clear removes every piece.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.grid = Grid{}
}

// Load replaces the board contents with pieces. Either every piece is
// placed or, on error, the board is left unchanged.
func (b *Board) Load(pieces []Piece) error {
	var g Grid
	for _, p := range pieces {
		if err := checkPiece(p); err != nil {
			return err
		}
		if q, ok := g.PieceAt(p.Position); ok {
			return fmt.Errorf("%w: %s holds %s", ErrOccupiedSquare, p.Position, q)
		}
		g.set(p)
	}

	b.mu.Lock()
	b.grid = g
	b.mu.Unlock()
	return nil
}

// checkPiece validates a piece about to be stored.
func checkPiece(p Piece) error {
	if !p.Color.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColor, p.Color)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: type %d", ErrInvalidPiece, p.Type)
	}
	if !p.Position.Valid() {
		return fmt.Errorf("%w: %s", ErrOffBoard, p.Position)
	}
	return nil
}
