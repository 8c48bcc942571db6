// Package store persists book records to a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"bookscrape/models"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	price REAL NOT NULL CHECK (price >= 0),
	availability TEXT NOT NULL,
	rating TEXT NOT NULL
)`

// Config selects the backing database. The schema is bound to the store at
// construction; nothing is registered process-wide.
type Config struct {
	Path string
}

// Store wraps the database handle. Every save runs as one transaction and
// the handle stays usable after a failed save.
type Store struct {
	db *sql.DB
}

// Open connects to the database at cfg.Path, creating it when absent, and
// ensures the books table exists. Opening an already-initialized database
// leaves existing rows untouched.
func Open(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, ErrPersistence{Op: "open", Err: err}
	}
	// sqlite allows a single writer, and :memory: databases live per
	// connection, so the pool is pinned to one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, ErrPersistence{Op: "open", Err: err}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, ErrPersistence{Op: "init schema", Err: err}
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes all records in one transaction: either every book becomes a
// row or none do. An empty batch is a no-op success.
func (s *Store) Save(ctx context.Context, books []models.Book) (int, error) {
	if len(books) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, ErrPersistence{Op: "begin", Err: err}
	}
	defer tx.Rollback()

	for _, book := range books {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO books (title, price, availability, rating) VALUES (?, ?, ?, ?)",
			book.Title, book.Price, book.Availability, book.Rating,
		)
		if err != nil {
			return 0, ErrPersistence{Op: fmt.Sprintf("insert %q", book.Title), Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, ErrPersistence{Op: "commit", Err: err}
	}
	return len(books), nil
}

// List returns all persisted rows in insertion order.
func (s *Store) List(ctx context.Context) ([]models.BookRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, price, availability, rating FROM books ORDER BY id")
	if err != nil {
		return nil, ErrPersistence{Op: "list", Err: err}
	}
	defer rows.Close()

	var out []models.BookRow
	for rows.Next() {
		var r models.BookRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Price, &r.Availability, &r.Rating); err != nil {
			return nil, ErrPersistence{Op: "scan", Err: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrPersistence{Op: "list", Err: err}
	}
	return out, nil
}

// Count reports the number of persisted rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	if err != nil {
		return 0, ErrPersistence{Op: "count", Err: err}
	}
	return count, nil
}
