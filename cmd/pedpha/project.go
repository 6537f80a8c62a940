package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pedpha/pedpha/internal/domain"
	"github.com/pedpha/pedpha/internal/output"
	"github.com/pedpha/pedpha/internal/project"
)

func newProjectCmd() *cobra.Command {
	var (
		gffPath       string
		intervalsPath string
	)

	cmd := &cobra.Command{
		Use:   "project -i intervals [gff]",
		Short: "Map protein intervals onto the coding exons of each transcript",
		Long: `Load a table of protein intervals and report, for every valid transcript
listed in it, the genomic part of each coding exon the interval covers:

  label mrna exon strand estart estop ostart ostop [lstart lstop] p5-p3

The interval table has four columns: transcript ID, interval label, first
residue and last residue (1-based, inclusive). Columns are split on runs of
whitespace unless --delimiter is given. A malformed interval table is fatal.`,
		Example: `  pedpha project -i domains.txt genes.gff3
  pedpha project -i domains.csv -d , --local genes.gff3.gz
  zcat genes.gff3.gz | pedpha project -i domains.txt`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, outputFlagKeys); err != nil {
				return err
			}
			return bindFlags(cmd, map[string]string{
				"intervals.delimiter": "delimiter",
				"output.local":        "local",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if intervalsPath == "" {
				return usageErrorf("--intervals is required")
			}
			return runProject(cmd, intervalsPath, inputPath(gffPath, args))
		},
	}

	cmd.Flags().StringVarP(&gffPath, "gff", "g", "", "GFF3 file, plain or gzipped (default: stdin)")
	cmd.Flags().StringVarP(&intervalsPath, "intervals", "i", "", "Protein interval table (required)")
	cmd.Flags().StringP("delimiter", "d", "", "Interval table column delimiter (default: whitespace)")
	cmd.Flags().Bool("local", false, "Also write the overlap as offsets into the exon's CDS")
	addOutputFlags(cmd)

	return cmd
}

func runProject(cmd *cobra.Command, intervalsPath, gffPath string) error {
	// The interval table is validated in full before any GFF is read.
	table, err := loadIntervals(intervalsPath)
	if err != nil {
		return err
	}

	in, err := openGenes(cmd, gffPath)
	if err != nil {
		return err
	}
	defer in.Close()

	w := output.NewOverlapWriter(cmd.OutOrStdout(),
		viper.GetString("output.delimiter"), viper.GetBool("output.local"))
	if viper.GetBool("output.header") {
		if err := w.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	p := project.NewProjector(table)
	p.SetLogger(logger)
	if err := p.ProjectAll(in, w); err != nil {
		return err
	}

	logStats(in)
	return nil
}

// loadIntervals reads the interval table using the configured delimiter.
func loadIntervals(path string) (*domain.Table, error) {
	table, err := domain.Load(path, viper.GetString("intervals.delimiter"))
	if err != nil {
		return nil, err
	}
	logger.Info("loaded intervals",
		zap.String("path", displayPath(path)),
		zap.Int("transcripts", len(table.Transcripts())),
		zap.Int("intervals", table.Len()))
	return table, nil
}
