package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inodb/genomerator/internal/format"
	"github.com/inodb/genomerator/internal/reference"
)

func TestCoverageLines(t *testing.T) {
	input := `chr2	0	4
chr1	10	20
chr1	15	25
chr1	30	32
`
	refs, err := reference.New("chr1", "chr2")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, coverageLines(strings.NewReader(input), &out, refs,
		coverageOptions{format: formatBED}, zap.NewNop()))

	assert.Equal(t, `chr1	10	15	1
chr1	15	20	2
chr1	20	25	1
chr1	25	30	0
chr1	30	32	1
chr2	0	4	1
`, out.String())
}

func TestCoverageLines_Score(t *testing.T) {
	input := "chr1\t0\t2\ta\t0.5\nchr1\t1\t3\tb\t2\n"

	var out bytes.Buffer
	require.NoError(t, coverageLines(strings.NewReader(input), &out, reference.NewLearning(),
		coverageOptions{format: formatBED, useScore: true}, zap.NewNop()))

	assert.Equal(t, "chr1\t0\t1\t0.5\nchr1\t1\t2\t2.5\nchr1\t2\t3\t2\n", out.String())
}

func TestCoverageLines_Wiggle(t *testing.T) {
	input := "chr2\t0\t2\nchr1\t4\t6\nchr1\t5\t7\n"
	refs, err := reference.New("chr1", "chr2")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, coverageLines(strings.NewReader(input), &out, refs,
		coverageOptions{format: formatBED, wiggle: true}, zap.NewNop()))

	assert.Equal(t, `track type=wiggle_0
variableStep chrom=chr1
5 1
6 2
7 1
variableStep chrom=chr2
1 1
2 1
`, out.String())
}

func TestCoverageLines_MissingScore(t *testing.T) {
	err := coverageLines(strings.NewReader("chr1\t0\t2\n"), &bytes.Buffer{}, reference.NewLearning(),
		coverageOptions{format: formatBED, useScore: true}, zap.NewNop())

	var le *LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Line)
	assert.ErrorIs(t, err, format.ErrFormat)
}

func TestAccumulate(t *testing.T) {
	a, err := format.DecodeBED("chr1\t4\t8", 0, false)
	require.NoError(t, err)
	b, err := format.DecodeBED("chr1\t6\t10", 0, false)
	require.NoError(t, err)

	track, err := accumulate(0, []weighted{{loc: a, weight: 1}, {loc: b, weight: 3}})
	require.NoError(t, err)
	assert.Equal(t, 5, track.LeftPos())
	assert.Equal(t, 10, track.RightPos())
	assert.Equal(t, []float64{1, 1, 4, 4, 3, 3}, track.Data())
}
