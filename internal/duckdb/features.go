package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/inodb/genomerator/internal/feature"
)

// WriteFeatures batch-inserts features into DuckDB using the Appender API.
// The payload of each feature is the text line it was decoded from. Rows
// get increasing sequence numbers so that features sharing a sort key come
// back in insertion order.
func (s *Store) WriteFeatures(features []*feature.Feature[string]) error {
	if len(features) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "features")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for i, f := range features {
		if err := appender.AppendRow(
			s.nextSeq, int64(f.ReferenceID()), int64(f.LeftPos()), int64(f.RightPos()),
			f.IsReverse(), f.Data(),
		); err != nil {
			return fmt.Errorf("append feature: %w", err)
		}
		s.nextSeq++

		if (i+1)%s.batch == 0 {
			if err := appender.Flush(); err != nil {
				return fmt.Errorf("flush features: %w", err)
			}
			s.logger.Debug("flushed spill batch", zap.Int("rows", s.batch), zap.Int64("total", s.nextSeq))
		}
	}

	return appender.Flush()
}

// EachSorted calls fn for every stored feature in (reference, left) order.
// Ties keep insertion order. A non-nil error from fn stops the iteration and
// is returned.
func (s *Store) EachSorted(fn func(*feature.Feature[string]) error) error {
	rows, err := s.db.Query(`SELECT reference_id, left_pos, right_pos, is_reverse, line
		FROM features
		ORDER BY reference_id, left_pos, seq`)
	if err != nil {
		return fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ref, left, right int64
			reverse          bool
			line             string
		)
		if err := rows.Scan(&ref, &left, &right, &reverse, &line); err != nil {
			return fmt.Errorf("scan feature: %w", err)
		}
		f, err := feature.New(int(ref), int(left), int(right), reverse, line)
		if err != nil {
			return fmt.Errorf("stored feature: %w", err)
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate features: %w", err)
	}
	return nil
}

// Count returns the number of stored features.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM features").Scan(&n); err != nil {
		return 0, fmt.Errorf("count features: %w", err)
	}
	return n, nil
}

// CountByReference returns the number of stored features per reference id.
func (s *Store) CountByReference() (map[int]int, error) {
	rows, err := s.db.Query("SELECT reference_id, COUNT(*) FROM features GROUP BY reference_id")
	if err != nil {
		return nil, fmt.Errorf("count by reference: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var ref, n int64
		if err := rows.Scan(&ref, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[int(ref)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// Clear removes all stored features.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM features"); err != nil {
		return err
	}
	s.nextSeq = 0
	return nil
}
