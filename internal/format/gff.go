package format

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/inodb/genomerator/internal/feature"
)

// GFF column indices.
const (
	gffSeqID = iota
	gffSource
	gffType
	gffStart
	gffEnd
	gffScore
	gffStrand
	gffPhase
	gffAttributes
	gffColumns
)

// DecodeGFF decodes one tab-separated GFF line on reference ref. GFF
// coordinates are already 1-based inclusive. Lines need at least the
// columns up to end; later columns are optional.
func DecodeGFF(line string, ref int, parse bool) (*feature.Feature[Fields], error) {
	cols := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(cols) < gffScore {
		return nil, fmt.Errorf("%w: gff line has %d columns, need at least 5", ErrFormat, len(cols))
	}

	start, err := strconv.Atoi(cols[gffStart])
	if err != nil {
		return nil, columnError("gff", "start", cols[gffStart], err)
	}
	end, err := strconv.Atoi(cols[gffEnd])
	if err != nil {
		return nil, columnError("gff", "end", cols[gffEnd], err)
	}
	reverse := len(cols) > gffStrand && cols[gffStrand] == "-"

	fields := Fields{Raw: cols}
	if parse {
		if fields.Parsed, err = parseGFFColumns(cols); err != nil {
			return nil, err
		}
	}

	return feature.New(ref, start, end, reverse, fields)
}

func parseGFFColumns(cols []string) (map[string]any, error) {
	parsed := make(map[string]any)
	get := func(i int) (string, bool) {
		if i >= len(cols) || cols[i] == Placeholder || cols[i] == "" {
			return "", false
		}
		return cols[i], true
	}

	if v, ok := get(gffSource); ok {
		parsed[FieldSource] = v
	}
	if v, ok := get(gffType); ok {
		parsed[FieldType] = v
	}
	if v, ok := get(gffScore); ok {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, columnError("gff", "score", v, err)
		}
		parsed[FieldScore] = score
	}
	if v, ok := get(gffStrand); ok {
		parsed[FieldStrand] = v
	}
	if v, ok := get(gffPhase); ok {
		phase, err := strconv.Atoi(v)
		if err != nil || phase < 0 || phase > 2 {
			return nil, columnError("gff", "phase", v, err)
		}
		parsed[FieldPhase] = phase
	}
	if v, ok := get(gffAttributes); ok {
		parsed[FieldAttributes] = parseAttributes(v)
	}

	return parsed, nil
}

// parseAttributes parses the attributes column. Both GFF3 (key=value) and
// GTF (key "value") pairs are accepted, separated by semicolons. Percent
// escapes in keys and values are decoded.
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.IndexAny(part, "= ")
		if idx == -1 {
			attrs[unescapeAttribute(part)] = ""
			continue
		}

		key := unescapeAttribute(part[:idx])
		value := strings.TrimSpace(part[idx+1:])
		attrs[key] = unescapeAttribute(strings.Trim(value, "\""))
	}

	return attrs
}

// unescapeAttribute decodes %XX escapes. A malformed escape leaves s as
// written.
func unescapeAttribute(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	u, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return u
}

var (
	// attributeEscaper escapes the characters with a meaning in column 9.
	attributeEscaper = strings.NewReplacer(
		"%", "%25", ";", "%3B", "=", "%3D", "&", "%26", ",", "%2C",
		"\t", "%09", "\n", "%0A", "\r", "%0D",
	)
	// listEscaper leaves commas alone, for tags whose values are
	// comma-separated lists.
	listEscaper = strings.NewReplacer(
		"%", "%25", ";", "%3B", "=", "%3D", "&", "%26",
		"\t", "%09", "\n", "%0A", "\r", "%0D",
	)
)

// multiValueTags are the GFF3 attributes whose values may list several items
// separated by commas.
var multiValueTags = map[string]bool{
	"Parent":        true,
	"Alias":         true,
	"Note":          true,
	"Dbxref":        true,
	"Ontology_term": true,
}

// formatAttributes renders attributes as GFF3 key=value pairs, sorted by key,
// percent-escaping reserved characters.
func formatAttributes(attrs map[string]string) string {
	if len(attrs) == 0 {
		return Placeholder
	}
	keys := slices.Sorted(maps.Keys(attrs))
	parts := make([]string, len(keys))
	for i, k := range keys {
		escaper := attributeEscaper
		if multiValueTags[k] {
			escaper = listEscaper
		}
		parts[i] = attributeEscaper.Replace(k) + "=" + escaper.Replace(attrs[k])
	}
	return strings.Join(parts, ";")
}

// GFFOptions holds the optional GFF columns. The zero value renders every
// optional column except the strand as ".".
type GFFOptions struct {
	Source     string
	Score      *float64
	Phase      *int
	Attributes map[string]string
	OmitStrand bool
}

// GFFOptionsFrom recovers encoder options from parsed GFF or BED fields.
// A BED name becomes the Name attribute.
func GFFOptionsFrom(f Fields) *GFFOptions {
	opts := &GFFOptions{}
	opts.Source, _ = f.Text(FieldSource)
	if s, ok := f.Float(FieldScore); ok {
		opts.Score = &s
	}
	if p, ok := f.Int(FieldPhase); ok {
		opts.Phase = &p
	}
	if attrs := f.Attributes(); len(attrs) > 0 {
		opts.Attributes = maps.Clone(attrs)
	}
	if name, ok := f.Text(FieldName); ok {
		if opts.Attributes == nil {
			opts.Attributes = make(map[string]string)
		}
		opts.Attributes["Name"] = name
	}
	if _, ok := f.Text(FieldStrand); !ok {
		opts.OmitStrand = true
	}
	return opts
}

// EncodeGFF renders l as a nine-column GFF line of the given type. CDS
// features must carry a phase. A nil opts is the same as the zero GFFOptions.
func EncodeGFF(l feature.Locus, names []string, featureType string, opts *GFFOptions) (string, error) {
	if opts == nil {
		opts = &GFFOptions{}
	}
	seqID, err := referenceName(names, l.ReferenceID())
	if err != nil {
		return "", err
	}
	if featureType == "" {
		return "", fmt.Errorf("%w: gff type is required", ErrFormat)
	}
	if featureType == "CDS" && opts.Phase == nil {
		return "", fmt.Errorf("%w: CDS feature %s:%d-%d needs a phase", ErrFormat,
			seqID, l.LeftPos(), l.RightPos())
	}

	cols := make([]string, gffColumns)
	for i := range cols {
		cols[i] = Placeholder
	}
	cols[gffSeqID] = seqID
	if opts.Source != "" {
		cols[gffSource] = opts.Source
	}
	cols[gffType] = featureType
	cols[gffStart] = strconv.Itoa(l.LeftPos())
	cols[gffEnd] = strconv.Itoa(l.RightPos())
	if opts.Score != nil {
		cols[gffScore] = strconv.FormatFloat(*opts.Score, 'f', -1, 64)
	}
	cols[gffStrand] = strandSymbol(l, !opts.OmitStrand)
	if opts.Phase != nil {
		cols[gffPhase] = strconv.Itoa(*opts.Phase)
	}
	cols[gffAttributes] = formatAttributes(opts.Attributes)

	return strings.Join(cols, "\t"), nil
}
