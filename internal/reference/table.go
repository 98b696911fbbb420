// Package reference maps reference sequence names to the integer ids used by
// features, and optionally records the length of each reference.
package reference

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/genomerator/internal/feature"
)

// ErrDuplicateName is returned when a reference file lists a name twice.
var ErrDuplicateName = errors.New("duplicate reference name")

// Table is an ordered list of reference names. The id of a reference is its
// index in the list, so the order of the table is the sort order of
// features.
//
// A learning table grows on lookup: an unseen name gets the next id.
type Table struct {
	names   []string
	ids     map[string]int
	lengths []int
	learn   bool
}

// New returns a fixed table holding names in order.
func New(names ...string) (*Table, error) {
	t := &Table{ids: make(map[string]int, len(names))}
	for _, name := range names {
		if err := t.add(name); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// NewLearning returns an empty table that assigns ids in order of first
// appearance.
func NewLearning() *Table {
	return &Table{ids: make(map[string]int), learn: true}
}

// WithLengths returns a fixed table with a length for every reference.
func WithLengths(names []string, lengths []int) (*Table, error) {
	if len(names) != len(lengths) {
		return nil, fmt.Errorf("%w: %d names, %d lengths", feature.ErrLengthMismatch, len(names), len(lengths))
	}
	t, err := New(names...)
	if err != nil {
		return nil, err
	}
	t.lengths = append([]int(nil), lengths...)
	return t, nil
}

func (t *Table) add(name string) error {
	if _, ok := t.ids[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	t.ids[name] = len(t.names)
	t.names = append(t.names, name)
	return nil
}

// Lookup returns the id of name. A fixed table fails with
// feature.ErrUnknownReference for names it does not hold.
func (t *Table) Lookup(name string) (int, error) {
	if id, ok := t.ids[name]; ok {
		return id, nil
	}
	if !t.learn {
		return -1, fmt.Errorf("%w: %q", feature.ErrUnknownReference, name)
	}
	id := len(t.names)
	t.ids[name] = id
	t.names = append(t.names, name)
	return id, nil
}

// Name returns the name of reference id.
func (t *Table) Name(id int) (string, error) {
	if id < 0 || id >= len(t.names) {
		return "", fmt.Errorf("%w: id %d", feature.ErrUnknownReference, id)
	}
	return t.names[id], nil
}

// Names returns the names in id order. The slice is shared with the table.
func (t *Table) Names() []string { return t.names }

// Lengths returns the reference lengths in id order, or nil when the table
// was not built with lengths.
func (t *Table) Lengths() []int { return t.lengths }

// HasLengths reports whether every reference has a known length.
func (t *Table) HasLengths() bool { return t.lengths != nil }

// Len returns the number of references.
func (t *Table) Len() int { return len(t.names) }

// Learning reports whether unseen names are added on lookup.
func (t *Table) Learning() bool { return t.learn }

// ReadNames reads a fixed table from r, taking the first column of each
// line. Blank lines and lines starting with '#' are skipped.
func ReadNames(r io.Reader) (*Table, error) {
	t := &Table{ids: make(map[string]int)}
	err := eachRow(r, func(n int, cols []string) error {
		return t.add(cols[0])
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ReadLengths reads a fixed table with lengths from r. Each line holds a
// name and a length; further columns are ignored, so samtools .fai indexes
// and bedtools .genome files are both accepted.
func ReadLengths(r io.Reader) (*Table, error) {
	t := &Table{ids: make(map[string]int), lengths: []int{}}
	err := eachRow(r, func(n int, cols []string) error {
		if len(cols) < 2 {
			return fmt.Errorf("line %d: missing length for %q", n, cols[0])
		}
		length, err := strconv.Atoi(cols[1])
		if err != nil || length < 0 {
			return fmt.Errorf("line %d: bad length %q for %q", n, cols[1], cols[0])
		}
		if err := t.add(cols[0]); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		t.lengths = append(t.lengths, length)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Read reads either kind of reference file. When the first row has a numeric
// second column the file is read as names with lengths, otherwise as names.
func Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read references: %w", err)
	}
	withLengths := false
	_ = eachRow(bytes.NewReader(data), func(_ int, cols []string) error {
		if len(cols) >= 2 {
			_, err := strconv.Atoi(cols[1])
			withLengths = err == nil
		}
		return io.EOF
	})
	if withLengths {
		return ReadLengths(bytes.NewReader(data))
	}
	return ReadNames(bytes.NewReader(data))
}

// eachRow calls fn with the 1-based line number and the whitespace-separated
// columns of every non-blank, non-comment line. A non-nil error from fn
// stops the scan and is returned, except io.EOF which stops it silently.
func eachRow(r io.Reader, fn func(n int, cols []string) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Fields(line)
		if len(cols) == 0 {
			continue
		}
		if err := fn(n, cols); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read references: %w", err)
	}
	return nil
}
