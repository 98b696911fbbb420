// Package duckdb provides a DuckDB-backed spill store for feature sets too
// large to sort in memory. Features are bulk-inserted with the Appender API
// and read back in reference order.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

// DefaultBatchSize is the number of rows appended between flushes.
const DefaultBatchSize = 100000

// Store manages a DuckDB connection holding spilled features.
type Store struct {
	db      *sql.DB
	path    string
	batch   int
	nextSeq int64
	logger  *zap.Logger
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create spill directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path, batch: DefaultBatchSize, logger: zap.NewNop()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.db.QueryRow("SELECT COALESCE(MAX(seq) + 1, 0) FROM features").Scan(&s.nextSeq); err != nil {
		db.Close()
		return nil, fmt.Errorf("read sequence: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// SetLogger sets the logger for flush and query messages.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetBatchSize sets how many rows are appended between flushes.
// Values below one restore the default.
func (s *Store) SetBatchSize(n int) {
	if n < 1 {
		n = DefaultBatchSize
	}
	s.batch = n
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS features (
		seq BIGINT,
		reference_id BIGINT,
		left_pos BIGINT,
		right_pos BIGINT,
		is_reverse BOOLEAN,
		line VARCHAR
	)`)
	return err
}
