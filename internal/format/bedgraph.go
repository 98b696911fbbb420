package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inodb/genomerator/internal/feature"
)

// DecodeBedGraph decodes one bedGraph line (chrom, start, end, value) on
// reference ref. The value becomes the payload.
func DecodeBedGraph(line string, ref int) (*feature.Feature[float64], error) {
	cols := strings.Fields(line)
	if len(cols) != 4 {
		return nil, fmt.Errorf("%w: bedGraph line has %d columns, need 4", ErrFormat, len(cols))
	}

	start, err := strconv.Atoi(cols[1])
	if err != nil {
		return nil, columnError("bedGraph", "start", cols[1], err)
	}
	end, err := strconv.Atoi(cols[2])
	if err != nil {
		return nil, columnError("bedGraph", "end", cols[2], err)
	}
	value, err := strconv.ParseFloat(cols[3], 64)
	if err != nil {
		return nil, columnError("bedGraph", "value", cols[3], err)
	}

	return feature.New(ref, start+1, end, false, value)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// EncodeBedGraph renders f as a bedGraph line with its payload as the value.
func EncodeBedGraph(f *feature.Feature[float64], names []string) (string, error) {
	chrom, err := referenceName(names, f.ReferenceID())
	if err != nil {
		return "", err
	}
	return chrom + "\t" + strconv.Itoa(f.LeftPos()-1) + "\t" + strconv.Itoa(f.RightPos()) +
		"\t" + formatValue(f.Data()), nil
}

// EncodeBedGraphRuns renders a per-position track as bedGraph, one line per
// run of consecutive equal values.
func EncodeBedGraphRuns(a *feature.Array[float64], names []string) ([]string, error) {
	chrom, err := referenceName(names, a.ReferenceID())
	if err != nil {
		return nil, err
	}

	var lines []string
	data := a.Data()
	runStart := 0
	for i := 1; i <= len(data); i++ {
		if i < len(data) && data[i] == data[runStart] {
			continue
		}
		lines = append(lines, chrom+"\t"+strconv.Itoa(a.LeftPos()+runStart-1)+"\t"+
			strconv.Itoa(a.LeftPos()+i-1)+"\t"+formatValue(data[runStart]))
		runStart = i
	}
	return lines, nil
}
