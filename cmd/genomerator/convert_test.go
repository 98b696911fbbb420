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

func TestConvertLines(t *testing.T) {
	tests := []struct {
		name  string
		opts  convertOptions
		input string
		want  string
	}{
		{
			name:  "bed to gff",
			opts:  convertOptions{from: formatBED, to: formatGFF, gffType: "exon"},
			input: "# comment\nchr1\t99\t200\tex1\t7\t-\n",
			want:  "chr1\t.\texon\t100\t200\t7\t-\t.\tName=ex1\n",
		},
		{
			name:  "gff to bed",
			opts:  convertOptions{from: formatGFF, to: formatBED},
			input: "chr1\thavana\tgene\t1\t50\t.\t+\t.\tID=g1;gene_name=A\n",
			want:  "chr1\t0\t50\tg1\t.\t+\n",
		},
		{
			name:  "gff keeps its type",
			opts:  convertOptions{from: formatGFF, to: formatGFF, gffType: "region"},
			input: "chr1\tsrc\tCDS\t10\t30\t.\t-\t2\tParent=t1\n",
			want:  "chr1\tsrc\tCDS\t10\t30\t.\t-\t2\tParent=t1\n",
		},
		{
			name:  "bedgraph to bed",
			opts:  convertOptions{from: formatBedGraph, to: formatBED},
			input: "chr1\t0\t10\t2.5\n",
			want:  "chr1\t0\t10\t.\t2.5\n",
		},
		{
			name:  "bed to bedgraph",
			opts:  convertOptions{from: formatBED, to: formatBedGraph},
			input: "chr1\t0\t10\tx\t4\n",
			want:  "chr1\t0\t10\t4\n",
		},
		{
			name:  "bed normalized",
			opts:  convertOptions{from: formatBED, to: formatBED},
			input: "chr1 9 12\n",
			want:  "chr1\t9\t12\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := convertLines(strings.NewReader(tt.input), &out, reference.NewLearning(), tt.opts, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestConvertLines_Errors(t *testing.T) {
	tests := []struct {
		name     string
		opts     convertOptions
		input    string
		wantLine int
	}{
		{
			name:     "bedgraph needs a score",
			opts:     convertOptions{from: formatBED, to: formatBedGraph},
			input:    "chr1\t0\t10\tx\t1\nchr1\t0\t10\n",
			wantLine: 2,
		},
		{
			name:     "CDS without phase",
			opts:     convertOptions{from: formatBED, to: formatGFF, gffType: "CDS"},
			input:    "chr1\t0\t10\n",
			wantLine: 1,
		},
		{
			name:     "bad score",
			opts:     convertOptions{from: formatBED, to: formatGFF, gffType: "region"},
			input:    "chr1\t0\t10\tx\tlots\n",
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := convertLines(strings.NewReader(tt.input), &bytes.Buffer{}, reference.NewLearning(), tt.opts, zap.NewNop())
			var le *LineError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.wantLine, le.Line)
			assert.ErrorIs(t, err, format.ErrFormat)
		})
	}
}

func TestConvertLines_DiscardsUnknownReferences(t *testing.T) {
	refs, err := reference.New("chr2")
	require.NoError(t, err)

	var out bytes.Buffer
	err = convertLines(strings.NewReader("chr1\t0\t10\nchr2\t5\t10\n"), &out, refs,
		convertOptions{from: formatBED, to: formatGFF, gffType: "region"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "chr2\t.\tregion\t6\t10\t.\t.\t.\t.\n", out.String())
}
