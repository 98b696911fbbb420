package format

import (
	"strconv"

	"github.com/inodb/genomerator/internal/feature"
)

// WiggleTrackLine opens a wiggle track. It is written once, before the first
// variableStep block.
const WiggleTrackLine = "track type=wiggle_0"

// EncodeWiggle renders a per-position track as a variableStep wiggle block:
// a declaration line naming the reference, then one "position value" line per
// covered position. Positions are 1-based, as in the feature.
func EncodeWiggle(a *feature.Array[float64], names []string) ([]string, error) {
	chrom, err := referenceName(names, a.ReferenceID())
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, a.Len()+1)
	lines = append(lines, "variableStep chrom="+chrom)
	for p := range a.Positions() {
		lines = append(lines, strconv.Itoa(p.LeftPos())+" "+formatValue(p.Data()))
	}
	return lines, nil
}
