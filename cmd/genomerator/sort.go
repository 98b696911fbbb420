package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/genomerator/internal/duckdb"
	"github.com/inodb/genomerator/internal/feature"
	"github.com/inodb/genomerator/internal/reference"
)

type sortOptions struct {
	format string
	spill  string // DuckDB path; empty sorts in memory
	batch  int
}

func newSortCmd() *cobra.Command {
	var (
		inputFormat string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "sort [input]",
		Short: "Sort features into reference order",
		Long: `Sort features by reference and left position. References are ordered as
in --references; lines on references missing from that list are dropped.
Header, comment and track lines are written first, in input order.

With --spill, features are staged in a DuckDB file instead of memory.`,
		Example: `  genomerator sort -r hg38.fa.fai peaks.bed > peaks.sorted.bed
  genomerator sort --format gff -r chroms.txt genes.gff3
  genomerator sort --spill /tmp/sort.duckdb -r hg38.genome huge.bed`,
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

			return sortLines(in, out, refs, sortOptions{
				format: fmtName,
				spill:  viper.GetString("sort.spill"),
				batch:  viper.GetInt("sort.batch"),
			}, logger)
		},
	}

	cmd.Flags().StringVarP(&inputFormat, "format", "f", formatBED, "input format: bed, bedgraph, gff")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("spill", "", "DuckDB file to stage features in instead of memory")
	cmd.Flags().Int("batch", duckdb.DefaultBatchSize, "features appended to the spill file per flush")
	_ = viper.BindPFlag("sort.spill", cmd.Flags().Lookup("spill"))
	_ = viper.BindPFlag("sort.batch", cmd.Flags().Lookup("batch"))

	return cmd
}

// sortLines reads feature lines from r and writes them to w in (reference,
// left) order. Features with equal keys keep their input order.
func sortLines(r io.Reader, w io.Writer, refs *reference.Table, opts sortOptions, logger *zap.Logger) error {
	if opts.batch < 1 {
		opts.batch = duckdb.DefaultBatchSize
	}

	var (
		headers  []string
		features []*feature.Feature[string]
		store    *duckdb.Store
		total    int
	)
	if opts.spill != "" {
		var err error
		if store, err = duckdb.Open(opts.spill); err != nil {
			return err
		}
		defer store.Close()
		store.SetLogger(logger)
		store.SetBatchSize(opts.batch)
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing spill file: %w", err)
		}
		logger.Info("spilling features", zap.String("path", opts.spill))
	}

	discarded, err := scanRecords(r, opts.format, refs, func(rec record) error {
		if rec.header {
			headers = append(headers, rec.text)
			return nil
		}
		loc, err := decodeFields(opts.format, rec.text, rec.ref, false)
		if err != nil {
			return &LineError{Line: rec.line, Err: err}
		}
		features = append(features, feature.From(loc, rec.text))
		total++

		if store != nil && len(features) >= opts.batch {
			if err := store.WriteFeatures(features); err != nil {
				return err
			}
			features = features[:0]
		}
		return nil
	})
	if err != nil {
		return err
	}
	if discarded > 0 {
		logger.Warn("discarded lines on unknown references", zap.Int("lines", discarded))
	}

	bw := bufio.NewWriter(w)
	for _, h := range headers {
		if _, err := fmt.Fprintln(bw, h); err != nil {
			return err
		}
	}

	p := newProgress(refs, total, logger)
	emit := func(f *feature.Feature[string]) error {
		p.advance(f)
		_, err := fmt.Fprintln(bw, f.Data())
		return err
	}

	if store != nil {
		if err := store.WriteFeatures(features); err != nil {
			return err
		}
		if err := store.EachSorted(emit); err != nil {
			return err
		}
	} else {
		feature.Sort(features)
		for _, f := range features {
			if err := emit(f); err != nil {
				return err
			}
		}
	}

	logger.Info("sorted features", zap.Int("features", total), zap.Int("references", refs.Len()))
	return bw.Flush()
}

// progress logs how far through the genome the output has reached, once per
// percent. It is silent when reference lengths are unknown.
type progress struct {
	lengths []int
	logger  *zap.Logger
	total   int
	done    int
	last    int
}

func newProgress(refs *reference.Table, total int, logger *zap.Logger) *progress {
	return &progress{lengths: refs.Lengths(), logger: logger, total: total, last: -1}
}

func (p *progress) advance(f *feature.Feature[string]) {
	p.done++
	if len(p.lengths) == 0 {
		return
	}
	pct, err := f.ProgressPercent(p.lengths)
	if err != nil || pct == p.last {
		return
	}
	p.last = pct
	p.logger.Debug("sort progress",
		zap.Int("percent", pct),
		zap.Int("written", p.done),
		zap.Int("total", p.total))
}
