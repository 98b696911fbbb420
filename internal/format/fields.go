// Package format converts features to and from single lines of BED,
// bedGraph and GFF text.
//
// Decoders take the reference id of the line from the caller; resolving a
// chromosome name to an id is the job of the reference table. Encoders take
// the ordered reference-name table and render one line without a trailing
// newline.
package format

import (
	"errors"
	"fmt"

	"github.com/inodb/genomerator/internal/feature"
)

// ErrFormat is returned when a line has too few columns or a numeric column
// does not parse, and when encoder options are inconsistent.
var ErrFormat = errors.New("format error")

// Placeholder marks an absent optional column.
const Placeholder = "."

// Names of the optional fields stored in Fields.Parsed.
const (
	FieldName        = "name"         // string
	FieldScore       = "score"        // float64
	FieldStrand      = "strand"       // string, "+" or "-"
	FieldThickRange  = "thick_range"  // [2]int, 1-based inclusive
	FieldRGB         = "rgb"          // [3]uint8
	FieldBlockCount  = "block_count"  // int
	FieldBlockSizes  = "block_sizes"  // []int
	FieldBlockStarts = "block_starts" // []int, 0-based offsets from the left position
	FieldSource      = "source"       // string
	FieldType        = "type"         // string
	FieldPhase       = "phase"        // int
	FieldAttributes  = "attributes"   // map[string]string
)

// Fields is the payload of a decoded BED or GFF line. Raw always holds every
// column of the line. Parsed is set only when the caller asked for parsing
// and maps field names to typed values; absent columns have no entry.
type Fields struct {
	Raw    []string
	Parsed map[string]any
}

// IsParsed reports whether the optional columns were parsed.
func (f Fields) IsParsed() bool { return f.Parsed != nil }

// Text returns a parsed string field.
func (f Fields) Text(key string) (string, bool) {
	v, ok := f.Parsed[key].(string)
	return v, ok
}

// Float returns a parsed float field.
func (f Fields) Float(key string) (float64, bool) {
	v, ok := f.Parsed[key].(float64)
	return v, ok
}

// Int returns a parsed integer field.
func (f Fields) Int(key string) (int, bool) {
	v, ok := f.Parsed[key].(int)
	return v, ok
}

// Attributes returns the parsed GFF attributes.
func (f Fields) Attributes() map[string]string {
	v, _ := f.Parsed[FieldAttributes].(map[string]string)
	return v
}

// referenceName resolves a reference id against the caller's name table.
func referenceName(names []string, id int) (string, error) {
	if id < 0 || id >= len(names) {
		return "", fmt.Errorf("%w: id %d with %d names", feature.ErrUnknownReference, id, len(names))
	}
	return names[id], nil
}

func strandSymbol(l feature.Locus, use bool) string {
	switch {
	case !use:
		return Placeholder
	case l.IsReverse():
		return "-"
	default:
		return "+"
	}
}

// columnError reports a malformed column.
func columnError(format, column, value string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s %s %q: %v", ErrFormat, format, column, value, err)
	}
	return fmt.Errorf("%w: %s %s %q", ErrFormat, format, column, value)
}
