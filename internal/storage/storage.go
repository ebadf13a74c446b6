package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/hailam/chesscore/internal/board"
)

var (
	ErrNotFound    = errors.New("position not found")
	ErrInvalidName = errors.New("invalid position name")
)

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Record describes a saved position.
type Record struct {
	Name    string    `json:"name"`
	FEN     string    `json:"fen"`
	Pieces  int       `json:"pieces"`
	SavedAt time.Time `json:"saved_at"`
}

// Store persists named board positions.
type Store interface {
	// Save stores the current placement of b under name, replacing any
	// earlier position with that name.
	Save(name string, b *board.Board) (Record, error)
	// Load returns a new board holding the position saved under name.
	Load(name string, opts ...board.Option) (*board.Board, error)
	// List returns every saved position ordered by name.
	List() ([]Record, error)
	// Delete removes the position saved under name.
	Delete(name string) error
	Close() error
}

// Open opens the store for backend inside dir. An empty dir keeps
// everything in memory.
func Open(backend, dir string) (Store, error) {
	ctx := log.WithFields(log.Fields{"backend": backend, "dir": dir})

	var (
		s   Store
		err error
	)
	switch backend {
	case "", BackendBadger:
		path := dir
		if dir != "" {
			path = filepath.Join(dir, "badger")
		}
		s, err = OpenBadger(path)
	case BackendSQLite:
		path := ""
		if dir != "" {
			path = filepath.Join(dir, "positions.db")
		}
		s, err = OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", backend)
	}
	if err != nil {
		return nil, err
	}

	ctx.Info("storage opened")
	return s, nil
}

// newRecord snapshots b under name.
func newRecord(name string, b *board.Board) (Record, error) {
	if err := checkName(name); err != nil {
		return Record{}, err
	}
	g := b.Snapshot()
	return Record{
		Name:    name,
		FEN:     g.FEN(),
		Pieces:  len(g.Pieces(board.NoColor)),
		SavedAt: time.Now().UTC(),
	}, nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n/") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
