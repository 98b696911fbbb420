package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/genomerator/internal/format"
	"github.com/inodb/genomerator/internal/reference"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{
		"bed":      formatBED,
		"BED":      formatBED,
		"bg":       formatBedGraph,
		"bedGraph": formatBedGraph,
		"gff3":     formatGFF,
		"gtf":      formatGFF,
	} {
		got, err := parseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseFormat("sam")
	var ue *usageError
	assert.True(t, errors.As(err, &ue))
}

func TestIsHeader(t *testing.T) {
	assert.True(t, isHeader(""))
	assert.True(t, isHeader("   "))
	assert.True(t, isHeader("#chrom\tstart"))
	assert.True(t, isHeader("track type=bedGraph"))
	assert.True(t, isHeader("browser position chr1:1-100"))
	assert.False(t, isHeader("chr1\t0\t10"))
}

func TestChromOf(t *testing.T) {
	assert.Equal(t, "chr1", chromOf(formatBED, "chr1 0 10"))
	assert.Equal(t, "chr 1", chromOf(formatGFF, "chr 1\tsrc\tgene\t1\t2"))
	assert.Empty(t, chromOf(formatBED, ""))
}

func TestDecodeFields_BedGraph(t *testing.T) {
	f, err := decodeFields(formatBedGraph, "chr1\t0\t5\t3", 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.LeftPos())
	score, ok := f.Data().Float(format.FieldScore)
	assert.True(t, ok)
	assert.Equal(t, 3.0, score)

	f, err = decodeFields(formatBedGraph, "chr1\t0\t5\t3", 0, false)
	require.NoError(t, err)
	assert.False(t, f.Data().IsParsed())
}

func TestScanRecords(t *testing.T) {
	refs, err := reference.New("chr1")
	require.NoError(t, err)

	var got []record
	discarded, err := scanRecords(strings.NewReader("#h\r\nchr1\t0\t1\r\nchr9\t0\t1\n"), formatBED, refs,
		func(rec record) error {
			got = append(got, rec)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 1, discarded)
	assert.Equal(t, []record{
		{line: 1, text: "#h", header: true},
		{line: 2, text: "chr1\t0\t1", ref: 0},
	}, got)
}

func TestLoadReferences(t *testing.T) {
	refs, err := loadReferences("")
	require.NoError(t, err)
	assert.True(t, refs.Learning())

	path := filepath.Join(t.TempDir(), "hg.genome")
	require.NoError(t, os.WriteFile(path, []byte("chr1\t100\nchr2\t50\n"), 0644))
	refs, err = loadReferences(path)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 50}, refs.Lengths())

	_, err = loadReferences(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
