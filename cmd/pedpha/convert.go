package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pedpha/pedpha/internal/duckdb"
	"github.com/pedpha/pedpha/internal/gff"
	"github.com/pedpha/pedpha/internal/project"
)

func newConvertCmd() *cobra.Command {
	var (
		gffPath       string
		intervalsPath string
		force         bool
	)

	cmd := &cobra.Command{
		Use:   "convert -o out.duckdb [gff]",
		Short: "Store valid gene models, and optionally projections, in DuckDB",
		Long: `Convert GFF3 gene models into a DuckDB database with the tables genes,
mrnas, exons (with phases) and, when an interval table is given, overlaps.

A GFF file already converted into the same database is skipped unless
--force is given, which clears the database first.`,
		Example: `  pedpha convert -o models.duckdb genes.gff3.gz
  pedpha convert -o models.duckdb -i domains.txt genes.gff3.gz
  pedpha config set store.path ~/.pedpha/models.duckdb && pedpha convert genes.gff3`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				"store.path":          "output",
				"intervals.delimiter": "delimiter",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			storePath := viper.GetString("store.path")
			if storePath == "" {
				return usageErrorf("--output is required (or set store.path)")
			}
			return runConvert(cmd, inputPath(gffPath, args), storePath, intervalsPath, force)
		},
	}

	cmd.Flags().StringVarP(&gffPath, "gff", "g", "", "GFF3 file, plain or gzipped (default: stdin)")
	cmd.Flags().StringP("output", "o", "", "Output DuckDB file path")
	cmd.Flags().StringVarP(&intervalsPath, "intervals", "i", "", "Protein interval table to project and store")
	cmd.Flags().StringP("delimiter", "d", "", "Interval table column delimiter (default: whitespace)")
	cmd.Flags().BoolVar(&force, "force", false, "Clear the database and convert again")

	return cmd
}

func runConvert(cmd *cobra.Command, gffPath, storePath, intervalsPath string, force bool) error {
	var projector *project.Projector
	if intervalsPath != "" {
		table, err := loadIntervals(intervalsPath)
		if err != nil {
			return err
		}
		projector = project.NewProjector(table)
		projector.SetLogger(logger)
	}

	store, err := duckdb.Open(storePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	if force {
		if err := store.Clear(); err != nil {
			return err
		}
	}

	// Stdin has no fingerprint and is always converted.
	var fp *duckdb.FileFingerprint
	if gffPath != "-" {
		stat, err := duckdb.StatFile(gffPath)
		if err != nil {
			return fmt.Errorf("stat %s: %w", gffPath, err)
		}
		loaded, err := store.SourceLoaded(stat)
		if err != nil {
			return err
		}
		if loaded {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s is already converted into %s (use --force to convert again)\n",
				gffPath, storePath)
			return nil
		}
		fp = &stat
	}

	in, err := openGenes(cmd, gffPath)
	if err != nil {
		return err
	}
	defer in.Close()

	sink := duckdb.NewOverlapSink(store)
	var genes, overlaps int
	for {
		g, err := in.Next()
		if err != nil {
			return err
		}
		if g == nil {
			break
		}

		gff.CalculatePhases(g)
		if err := store.InsertGene(g); err != nil {
			return fmt.Errorf("storing gene %s: %w", g.ID, err)
		}
		genes++

		if projector != nil {
			for _, o := range projector.ProjectGene(g) {
				if err := sink.Write(o); err != nil {
					return err
				}
				overlaps++
			}
		}
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("storing overlaps: %w", err)
	}
	logStats(in)

	if fp != nil {
		if err := store.RecordSource(*fp, genes); err != nil {
			return err
		}
	}

	logger.Info("conversion complete",
		zap.String("store", storePath),
		zap.Int("genes", genes),
		zap.Int("overlaps", overlaps))
	fmt.Fprintf(cmd.ErrOrStderr(), "Converted %d genes (%d overlaps) into %s\n", genes, overlaps, storePath)
	return nil
}
