package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inodb/genomerator/internal/feature"
	"github.com/inodb/genomerator/internal/format"
	"github.com/inodb/genomerator/internal/reference"
)

// Supported text formats.
const (
	formatBED      = "bed"
	formatBedGraph = "bedgraph"
	formatGFF      = "gff"
)

// maxLineSize bounds a single input line.
const maxLineSize = 16 * 1024 * 1024

// LineError reports a failure on a specific input line.
type LineError struct {
	Line int // 1-based
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// parseFormat normalizes a format name. gff3 and gtf are read as gff.
func parseFormat(name string) (string, error) {
	switch strings.ToLower(name) {
	case "bed":
		return formatBED, nil
	case "bedgraph", "bg":
		return formatBedGraph, nil
	case "gff", "gff3", "gtf":
		return formatGFF, nil
	default:
		return "", &usageError{fmt.Errorf("unknown format %q (want bed, bedgraph or gff)", name)}
	}
}

// isHeader reports whether a line carries no feature: blank lines, comments
// and UCSC track or browser lines.
func isHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" ||
		strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "track") ||
		strings.HasPrefix(trimmed, "browser")
}

// chromOf returns the reference name column of a line.
func chromOf(fmtName, line string) string {
	if fmtName == formatGFF {
		name, _, _ := strings.Cut(line, "\t")
		return name
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// decodeFields decodes a line of any supported format into a feature whose
// payload holds the line's columns. bedGraph values are stored as the score.
func decodeFields(fmtName, line string, ref int, parse bool) (*feature.Feature[format.Fields], error) {
	switch fmtName {
	case formatBED:
		return format.DecodeBED(line, ref, parse)
	case formatGFF:
		return format.DecodeGFF(line, ref, parse)
	case formatBedGraph:
		f, err := format.DecodeBedGraph(line, ref)
		if err != nil {
			return nil, err
		}
		fields := format.Fields{Raw: strings.Fields(line)}
		if parse {
			fields.Parsed = map[string]any{format.FieldScore: f.Data()}
		}
		return feature.From(f, fields), nil
	default:
		return nil, fmt.Errorf("unknown format %q", fmtName)
	}
}

// record is a decoded input line.
type record struct {
	line   int
	text   string
	header bool
	ref    int
}

// scanRecords reads r line by line, resolving the reference of every feature
// line against refs. Header lines are passed with header set. Lines on
// references unknown to a fixed table are counted and skipped.
func scanRecords(r io.Reader, fmtName string, refs *reference.Table, fn func(record) error) (discarded int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimRight(scanner.Text(), "\r")
		if isHeader(text) {
			if err := fn(record{line: n, text: text, header: true}); err != nil {
				return discarded, err
			}
			continue
		}

		ref, err := refs.Lookup(chromOf(fmtName, text))
		if err != nil {
			discarded++
			continue
		}
		if err := fn(record{line: n, text: text, ref: ref}); err != nil {
			return discarded, err
		}
	}
	if err := scanner.Err(); err != nil {
		return discarded, fmt.Errorf("reading input: %w", err)
	}
	return discarded, nil
}

// loadReferences reads the reference table named by path, or returns a
// learning table when path is empty.
func loadReferences(path string) (*reference.Table, error) {
	if path == "" {
		return reference.NewLearning(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening references: %w", err)
	}
	defer f.Close()

	refs, err := reference.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading references %s: %w", path, err)
	}
	return refs, nil
}

// openInput opens path for reading; "-" or "" is stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// createOutput creates path for writing; "" or "-" is stdout.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
