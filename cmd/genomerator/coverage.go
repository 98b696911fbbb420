package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/genomerator/internal/feature"
	"github.com/inodb/genomerator/internal/format"
	"github.com/inodb/genomerator/internal/reference"
)

type coverageOptions struct {
	format   string
	useScore bool // add the score column instead of 1 per feature
	wiggle   bool // variableStep wiggle instead of bedGraph runs
}

func newCoverageCmd() *cobra.Command {
	var (
		inputFormat string
		useScore    bool
		wiggle      bool
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "coverage [input]",
		Short: "Compute per-position coverage as bedGraph or wiggle",
		Long: `Count how many features cover each position and write the result as
bedGraph, one line per run of equal depth. Each reference is reported from
the leftmost to the rightmost covered position. With --score, positions
accumulate the feature score instead of a count. With --wiggle, the output
is a variableStep wiggle track with one line per position.`,
		Example: `  genomerator coverage reads.bed > depth.bg
  genomerator coverage --score -r hg38.genome weighted.bed
  genomerator coverage --wiggle reads.bed > depth.wig`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmtName, err := parseFormat(inputFormat)
			if err != nil {
				return err
			}
			logger, err := commandLogger()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			refs, err := loadReferences(viper.GetString("references"))
			if err != nil {
				return err
			}

			var inputPath string
			if len(args) > 0 {
				inputPath = args[0]
			}
			in, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer in.Close()
			out, err := createOutput(outputPath)
			if err != nil {
				return err
			}
			defer out.Close()

			return coverageLines(in, out, refs, coverageOptions{
				format:   fmtName,
				useScore: useScore,
				wiggle:   wiggle,
			}, logger)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "format", "f", formatBED, "input format: bed, bedgraph, gff")
	cmd.Flags().BoolVar(&useScore, "score", false, "accumulate the score column instead of counting features")
	cmd.Flags().BoolVar(&wiggle, "wiggle", false, "write variableStep wiggle instead of bedGraph")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}

type weighted struct {
	loc    *feature.Feature[format.Fields]
	weight float64
}

// coverageLines accumulates features into one float track per reference and
// writes each track in reference order, as run-length bedGraph or as a
// variableStep wiggle block.
func coverageLines(r io.Reader, w io.Writer, refs *reference.Table, opts coverageOptions, logger *zap.Logger) error {
	byRef := make(map[int][]weighted)

	discarded, err := scanRecords(r, opts.format, refs, func(rec record) error {
		if rec.header {
			return nil
		}
		f, err := decodeFields(opts.format, rec.text, rec.ref, opts.useScore)
		if err != nil {
			return &LineError{Line: rec.line, Err: err}
		}
		weight := 1.0
		if opts.useScore {
			score, ok := f.Data().Float(format.FieldScore)
			if !ok {
				return &LineError{Line: rec.line, Err: fmt.Errorf("%w: no score", format.ErrFormat)}
			}
			weight = score
		}
		byRef[rec.ref] = append(byRef[rec.ref], weighted{loc: f, weight: weight})
		return nil
	})
	if err != nil {
		return err
	}
	if discarded > 0 {
		logger.Warn("discarded lines on unknown references", zap.Int("lines", discarded))
	}

	bw := bufio.NewWriter(w)
	encode := format.EncodeBedGraphRuns
	if opts.wiggle {
		encode = format.EncodeWiggle
		if _, err := fmt.Fprintln(bw, format.WiggleTrackLine); err != nil {
			return err
		}
	}
	for ref := range refs.Len() {
		items := byRef[ref]
		if len(items) == 0 {
			continue
		}
		track, err := accumulate(ref, items)
		if err != nil {
			return err
		}
		lines, err := encode(track, refs.Names())
		if err != nil {
			return err
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return err
			}
		}
		logger.Debug("reference coverage",
			zap.Int("reference", ref),
			zap.Int("features", len(items)),
			zap.Int("span", track.Len()))
	}
	return bw.Flush()
}

// accumulate builds a track spanning all items and adds each item's weight at
// every position it covers.
func accumulate(ref int, items []weighted) (*feature.Array[float64], error) {
	left, right := items[0].loc.LeftPos(), items[0].loc.RightPos()
	for _, it := range items[1:] {
		left = min(left, it.loc.LeftPos())
		right = max(right, it.loc.RightPos())
	}

	track, err := feature.NewFilledArray[float64](ref, left, right, false, nil)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		for pos := it.loc.LeftPos(); pos <= it.loc.RightPos(); pos++ {
			v, err := track.ValueAt(pos)
			if err != nil {
				return nil, err
			}
			if err := track.SetAt(pos, v+it.weight); err != nil {
				return nil, err
			}
		}
	}
	return track, nil
}
