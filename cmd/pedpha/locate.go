package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pedpha/pedpha/internal/gff"
	"github.com/pedpha/pedpha/internal/index"
	"github.com/pedpha/pedpha/internal/output"
)

func newLocateCmd() *cobra.Command {
	var (
		gffPath string
		region  string
	)

	cmd := &cobra.Command{
		Use:   "locate --region seq:start-stop [gff]",
		Short: "Print the exons of valid gene models overlapping a region",
		Long: `Index the exons of every valid gene model on the region's sequence and
print the ones overlapping the region, in gene-model row format with phases.`,
		Example: `  pedpha locate --region Chr1:3631-5899 genes.gff3
  pedpha locate -r Chr1:4000 genes.gff3.gz`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, outputFlagKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if region == "" {
				return usageErrorf("--region is required")
			}
			seqID, bounds, err := index.ParseRegion(region)
			if err != nil {
				return &usageError{err: err}
			}
			return runLocate(cmd, inputPath(gffPath, args), seqID, bounds)
		},
	}

	cmd.Flags().StringVarP(&gffPath, "gff", "g", "", "GFF3 file, plain or gzipped (default: stdin)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Region as seq:start-stop or seq:pos (required)")
	addOutputFlags(cmd)

	return cmd
}

func runLocate(cmd *cobra.Command, path, seqID string, region gff.Bounds) error {
	in, err := openGenes(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	x := index.New()
	for {
		g, err := in.Next()
		if err != nil {
			return err
		}
		if g == nil {
			break
		}
		if g.SeqID != seqID {
			continue
		}
		gff.CalculatePhases(g)
		if err := x.Add(g); err != nil {
			return err
		}
	}
	logStats(in)

	hits := x.Find(seqID, region)
	logger.Info("region query",
		zap.String("seqid", seqID),
		zap.Int64("start", region.Start),
		zap.Int64("stop", region.Stop),
		zap.Int("indexed", x.Len()),
		zap.Int("hits", len(hits)))

	w := output.NewModelWriter(cmd.OutOrStdout(), viper.GetString("output.delimiter"))
	if viper.GetBool("output.header") {
		if err := w.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, h := range hits {
		if err := w.WriteExon(h.Gene, h.MRNA, h.Exon); err != nil {
			return fmt.Errorf("writing exon %s: %w", h.Exon.ID, err)
		}
	}
	return w.Flush()
}
