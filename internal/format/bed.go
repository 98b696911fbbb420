package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/genomerator/internal/feature"
)

// BED column indices.
const (
	bedChrom = iota
	bedStart
	bedEnd
	bedName
	bedScore
	bedStrand
	bedThickStart
	bedThickEnd
	bedRGB
	bedBlockCount
	bedBlockSizes
	bedBlockStarts
	bedColumns
)

// DecodeBED decodes one BED line on reference ref. Columns are separated by
// tabs or spaces. BED coordinates are 0-based half-open and become 1-based
// inclusive: the start column gains one, the end column is kept.
// With parse set, optional columns are parsed into Fields.Parsed.
func DecodeBED(line string, ref int, parse bool) (*feature.Feature[Fields], error) {
	cols := strings.Fields(line)
	if len(cols) < bedName {
		return nil, fmt.Errorf("%w: bed line has %d columns, need at least 3", ErrFormat, len(cols))
	}

	start, err := strconv.Atoi(cols[bedStart])
	if err != nil {
		return nil, columnError("bed", "start", cols[bedStart], err)
	}
	end, err := strconv.Atoi(cols[bedEnd])
	if err != nil {
		return nil, columnError("bed", "end", cols[bedEnd], err)
	}
	reverse := len(cols) > bedStrand && cols[bedStrand] == "-"

	fields := Fields{Raw: cols}
	if parse {
		if fields.Parsed, err = parseBEDColumns(cols); err != nil {
			return nil, err
		}
	}

	return feature.New(ref, start+1, end, reverse, fields)
}

func parseBEDColumns(cols []string) (map[string]any, error) {
	parsed := make(map[string]any)
	get := func(i int) (string, bool) {
		if i >= len(cols) || cols[i] == Placeholder {
			return "", false
		}
		return cols[i], true
	}

	if v, ok := get(bedName); ok {
		parsed[FieldName] = v
	}
	if v, ok := get(bedScore); ok {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, columnError("bed", "score", v, err)
		}
		parsed[FieldScore] = score
	}
	if v, ok := get(bedStrand); ok {
		parsed[FieldStrand] = v
	}

	thickStart, hasStart := get(bedThickStart)
	thickEnd, hasEnd := get(bedThickEnd)
	if hasStart && hasEnd {
		s, err := strconv.Atoi(thickStart)
		if err != nil {
			return nil, columnError("bed", "thickStart", thickStart, err)
		}
		e, err := strconv.Atoi(thickEnd)
		if err != nil {
			return nil, columnError("bed", "thickEnd", thickEnd, err)
		}
		parsed[FieldThickRange] = [2]int{s + 1, e}
	}

	if v, ok := get(bedRGB); ok {
		rgb, err := parseRGB(v)
		if err != nil {
			return nil, err
		}
		parsed[FieldRGB] = rgb
	}

	if v, ok := get(bedBlockCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, columnError("bed", "blockCount", v, err)
		}
		parsed[FieldBlockCount] = n
	}
	if v, ok := get(bedBlockSizes); ok {
		sizes, err := parseIntList(v)
		if err != nil {
			return nil, columnError("bed", "blockSizes", v, err)
		}
		parsed[FieldBlockSizes] = sizes
	}
	if v, ok := get(bedBlockStarts); ok {
		starts, err := parseIntList(v)
		if err != nil {
			return nil, columnError("bed", "blockStarts", v, err)
		}
		parsed[FieldBlockStarts] = starts
	}

	return parsed, nil
}

// parseRGB parses an itemRgb column. A lone "0" means black.
func parseRGB(s string) ([3]uint8, error) {
	var rgb [3]uint8
	if s == "0" {
		return rgb, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return rgb, columnError("bed", "itemRgb", s, nil)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return rgb, columnError("bed", "itemRgb", s, err)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}

// parseIntList parses a comma-separated list, tolerating a trailing comma.
func parseIntList(s string) ([]int, error) {
	s = strings.TrimSuffix(s, ",")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// BEDOptions holds the optional BED columns. The zero value renders only the
// coordinates and the strand.
type BEDOptions struct {
	Name        string
	Score       *float64
	ThickRange  *[2]int // 1-based inclusive
	RGB         *[3]uint8
	BlockSizes  []int
	BlockStarts []int // 0-based offsets from the left position
	OmitStrand  bool
}

// BEDOptionsFrom recovers encoder options from parsed BED fields. A line
// without a strand column is re-encoded without one.
func BEDOptionsFrom(f Fields) *BEDOptions {
	opts := &BEDOptions{}
	opts.Name, _ = f.Text(FieldName)
	if _, ok := f.Text(FieldStrand); !ok {
		opts.OmitStrand = true
	}
	if s, ok := f.Float(FieldScore); ok {
		opts.Score = &s
	}
	if tr, ok := f.Parsed[FieldThickRange].([2]int); ok {
		opts.ThickRange = &tr
	}
	if rgb, ok := f.Parsed[FieldRGB].([3]uint8); ok {
		opts.RGB = &rgb
	}
	opts.BlockSizes, _ = f.Parsed[FieldBlockSizes].([]int)
	opts.BlockStarts, _ = f.Parsed[FieldBlockStarts].([]int)
	return opts
}

// EncodeBED renders l as a BED line. Coordinates are converted back to 0-based
// half-open. Trailing unset columns are dropped; unset columns before a set
// one render as ".". A nil opts is the same as the zero BEDOptions.
func EncodeBED(l feature.Locus, names []string, opts *BEDOptions) (string, error) {
	if opts == nil {
		opts = &BEDOptions{}
	}
	chrom, err := referenceName(names, l.ReferenceID())
	if err != nil {
		return "", err
	}
	if len(opts.BlockSizes) != len(opts.BlockStarts) {
		return "", fmt.Errorf("%w: %d block sizes but %d block starts", ErrFormat,
			len(opts.BlockSizes), len(opts.BlockStarts))
	}

	cols := make([]string, bedColumns)
	for i := range cols {
		cols[i] = Placeholder
	}
	cols[bedChrom] = chrom
	cols[bedStart] = strconv.Itoa(l.LeftPos() - 1)
	cols[bedEnd] = strconv.Itoa(l.RightPos())
	if opts.Name != "" {
		cols[bedName] = opts.Name
	}
	if opts.Score != nil {
		cols[bedScore] = strconv.FormatFloat(*opts.Score, 'f', -1, 64)
	}
	cols[bedStrand] = strandSymbol(l, !opts.OmitStrand)
	if opts.ThickRange != nil {
		cols[bedThickStart] = strconv.Itoa(opts.ThickRange[0] - 1)
		cols[bedThickEnd] = strconv.Itoa(opts.ThickRange[1])
	}
	if opts.RGB != nil {
		cols[bedRGB] = fmt.Sprintf("%d,%d,%d", opts.RGB[0], opts.RGB[1], opts.RGB[2])
	}
	if len(opts.BlockSizes) > 0 {
		cols[bedBlockCount] = strconv.Itoa(len(opts.BlockSizes))
		cols[bedBlockSizes] = joinInts(opts.BlockSizes)
		cols[bedBlockStarts] = joinInts(opts.BlockStarts)
	}

	n := len(cols)
	for n > bedName && cols[n-1] == Placeholder {
		n--
	}
	return strings.Join(cols[:n], "\t"), nil
}
