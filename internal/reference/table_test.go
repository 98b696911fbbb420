package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/genomerator/internal/feature"
)

func TestFixedTable(t *testing.T) {
	tbl, err := New("chr1", "chr2", "chrX")
	require.NoError(t, err)

	id, err := tbl.Lookup("chr2")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = tbl.Lookup("chrM")
	assert.ErrorIs(t, err, feature.ErrUnknownReference)
	assert.Equal(t, 3, tbl.Len(), "fixed table does not grow")

	name, err := tbl.Name(2)
	require.NoError(t, err)
	assert.Equal(t, "chrX", name)
	_, err = tbl.Name(3)
	assert.ErrorIs(t, err, feature.ErrUnknownReference)

	assert.False(t, tbl.HasLengths())
	assert.Nil(t, tbl.Lengths())
}

func TestNew_Duplicate(t *testing.T) {
	_, err := New("chr1", "chr1")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestLearningTable(t *testing.T) {
	tbl := NewLearning()
	assert.True(t, tbl.Learning())

	for _, tc := range []struct {
		name string
		want int
	}{
		{"chr5", 0},
		{"chr1", 1},
		{"chr5", 0},
		{"chr2", 2},
		{"chr1", 1},
	} {
		id, err := tbl.Lookup(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.want, id, tc.name)
	}
	assert.Equal(t, []string{"chr5", "chr1", "chr2"}, tbl.Names())
}

func TestWithLengths(t *testing.T) {
	tbl, err := WithLengths([]string{"a", "b"}, []int{10, 20})
	require.NoError(t, err)
	assert.True(t, tbl.HasLengths())
	assert.Equal(t, []int{10, 20}, tbl.Lengths())

	_, err = WithLengths([]string{"a"}, []int{10, 20})
	assert.ErrorIs(t, err, feature.ErrLengthMismatch)
}

func TestReadNames(t *testing.T) {
	input := "# header\nchr1\textra\n\nchr2\nchr10\n"
	tbl, err := ReadNames(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"chr1", "chr2", "chr10"}, tbl.Names())
	assert.False(t, tbl.Learning())

	_, err = ReadNames(strings.NewReader("chr1\nchr1\n"))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestReadLengths(t *testing.T) {
	fai := "chr1\t248956422\t112\t70\t71\nchr2\t242193529\t252513167\t70\t71\n"
	tbl, err := ReadLengths(strings.NewReader(fai))
	require.NoError(t, err)
	assert.Equal(t, []string{"chr1", "chr2"}, tbl.Names())
	assert.Equal(t, []int{248956422, 242193529}, tbl.Lengths())

	tests := []struct {
		name  string
		input string
	}{
		{"missing length", "chr1\n"},
		{"non-numeric length", "chr1\tlong\n"},
		{"negative length", "chr1\t-5\n"},
		{"duplicate", "chr1\t5\nchr1\t6\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadLengths(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestRead_DetectsKind(t *testing.T) {
	tbl, err := Read(strings.NewReader("#comment\nchr1 100\nchr2 50\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{100, 50}, tbl.Lengths())

	tbl, err = Read(strings.NewReader("chr1\nchr2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"chr1", "chr2"}, tbl.Names())
	assert.False(t, tbl.HasLengths())

	tbl, err = Read(strings.NewReader("chr1\tp-arm\nchr2\tq-arm\n"))
	require.NoError(t, err)
	assert.False(t, tbl.HasLengths())
}

func TestTableFeedsProgress(t *testing.T) {
	tbl, err := Read(strings.NewReader("chr1\t100\nchr2\t100\n"))
	require.NoError(t, err)

	id, err := tbl.Lookup("chr2")
	require.NoError(t, err)
	f, err := feature.NewPosition(id, 51, false, struct{}{})
	require.NoError(t, err)

	p, err := f.Progress(tbl.Lengths())
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p, 1e-9)
}
