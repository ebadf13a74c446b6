package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hailam/chesscore/internal/board"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS positions (
	name     TEXT PRIMARY KEY,
	fen      TEXT NOT NULL,
	pieces   INTEGER NOT NULL,
	saved_at INTEGER NOT NULL
)`

// SQLiteStore keeps positions in a SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path, or an
// in-memory database if path is empty.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := path
	if path == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if path == "" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create positions table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(name string, b *board.Board) (Record, error) {
	rec, err := newRecord(name, b)
	if err != nil {
		return Record{}, err
	}

	_, err = s.db.Exec(`
		INSERT INTO positions (name, fen, pieces, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			fen = excluded.fen,
			pieces = excluded.pieces,
			saved_at = excluded.saved_at
	`, rec.Name, rec.FEN, rec.Pieces, rec.SavedAt.UnixNano())
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *SQLiteStore) Load(name string, opts ...board.Option) (*board.Board, error) {
	var fen string
	err := s.db.QueryRow(`SELECT fen FROM positions WHERE name = ?`, name).Scan(&fen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return board.ParseFEN(fen, opts...)
}

func (s *SQLiteStore) List() ([]Record, error) {
	rows, err := s.db.Query(`SELECT name, fen, pieces, saved_at FROM positions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			savedAt int64
		)
		if err := rows.Scan(&rec.Name, &rec.FEN, &rec.Pieces, &savedAt); err != nil {
			return nil, err
		}
		rec.SavedAt = time.Unix(0, savedAt).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM positions WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}
