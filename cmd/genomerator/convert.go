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

type convertOptions struct {
	from    string
	to      string
	gffType string // used when the input carries no type
}

func newConvertCmd() *cobra.Command {
	var (
		from, to   string
		gffType    string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "convert [input]",
		Short: "Convert features between BED, bedGraph and GFF",
		Long: `Convert features between BED, bedGraph and GFF, keeping coordinates,
strand, name and score. BED and bedGraph are 0-based half-open; GFF is
1-based inclusive. Converting to bedGraph needs a score on every line.`,
		Example: `  genomerator convert --from bed --to gff --type exon exons.bed
  genomerator convert --from gff --to bed genes.gff3 -o genes.bed
  genomerator convert --from bedgraph --to bed signal.bg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFmt, err := parseFormat(from)
			if err != nil {
				return err
			}
			toFmt, err := parseFormat(to)
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

			return convertLines(in, out, refs, convertOptions{
				from:    fromFmt,
				to:      toFmt,
				gffType: gffType,
			}, logger)
		},
	}

	cmd.Flags().StringVar(&from, "from", formatBED, "input format: bed, bedgraph, gff")
	cmd.Flags().StringVar(&to, "to", formatGFF, "output format: bed, bedgraph, gff")
	cmd.Flags().StringVar(&gffType, "type", "region", "GFF type for input lines without one")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// convertLines re-encodes every feature line of r in the target format.
// Header lines are dropped since they do not carry over between formats.
func convertLines(r io.Reader, w io.Writer, refs *reference.Table, opts convertOptions, logger *zap.Logger) error {
	bw := bufio.NewWriter(w)
	converted := 0

	discarded, err := scanRecords(r, opts.from, refs, func(rec record) error {
		if rec.header {
			return nil
		}
		f, err := decodeFields(opts.from, rec.text, rec.ref, true)
		if err != nil {
			return &LineError{Line: rec.line, Err: err}
		}
		out, err := encodeFields(f, refs.Names(), opts)
		if err != nil {
			return &LineError{Line: rec.line, Err: err}
		}
		converted++
		_, err = fmt.Fprintln(bw, out)
		return err
	})
	if err != nil {
		return err
	}
	if discarded > 0 {
		logger.Warn("discarded lines on unknown references", zap.Int("lines", discarded))
	}
	logger.Info("converted features",
		zap.String("from", opts.from),
		zap.String("to", opts.to),
		zap.Int("features", converted))
	return bw.Flush()
}

func encodeFields(f *feature.Feature[format.Fields], names []string, opts convertOptions) (string, error) {
	fields := f.Data()
	switch opts.to {
	case formatBED:
		return format.EncodeBED(f, names, bedOptions(fields))
	case formatGFF:
		featureType, ok := fields.Text(format.FieldType)
		if !ok {
			featureType = opts.gffType
		}
		return format.EncodeGFF(f, names, featureType, format.GFFOptionsFrom(fields))
	case formatBedGraph:
		score, ok := fields.Float(format.FieldScore)
		if !ok {
			return "", fmt.Errorf("%w: bedGraph output needs a score", format.ErrFormat)
		}
		return format.EncodeBedGraph(feature.From(f, score), names)
	default:
		return "", fmt.Errorf("unknown format %q", opts.to)
	}
}

// bedOptions maps parsed fields of any input format to BED columns. GFF
// features are named after their Name or ID attribute.
func bedOptions(fields format.Fields) *format.BEDOptions {
	opts := format.BEDOptionsFrom(fields)
	if opts.Name == "" {
		attrs := fields.Attributes()
		if name, ok := attrs["Name"]; ok {
			opts.Name = name
		} else if id, ok := attrs["ID"]; ok {
			opts.Name = id
		}
	}
	return opts
}
