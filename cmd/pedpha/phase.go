package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pedpha/pedpha/internal/gff"
	"github.com/pedpha/pedpha/internal/output"
)

func newPhaseCmd() *cobra.Command {
	var gffPath string

	cmd := &cobra.Command{
		Use:   "phase [gff]",
		Short: "Print every exon of each valid gene model with its phases",
		Long: `Read GFF3 gene models and print one row per exon:

  seqid mrna tid gstart gstop strand num exon estart estop cstart cstop p5 p3

Non-coding exons and undefined phases are written as '.'. Genes that fail
structural validation are reported on stderr and skipped.`,
		Example: `  pedpha phase genes.gff3
  zcat genes.gff3.gz | pedpha phase
  pedpha phase --header --output-delimiter $'\t' genes.gff3.gz`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, outputFlagKeys)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhase(cmd, inputPath(gffPath, args))
		},
	}

	cmd.Flags().StringVarP(&gffPath, "gff", "g", "", "GFF3 file, plain or gzipped (default: stdin)")
	addOutputFlags(cmd)

	return cmd
}

func runPhase(cmd *cobra.Command, path string) error {
	in, err := openGenes(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()

	w := output.NewModelWriter(cmd.OutOrStdout(), viper.GetString("output.delimiter"))
	if viper.GetBool("output.header") {
		if err := w.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for {
		g, err := in.Next()
		if err != nil {
			return err
		}
		if g == nil {
			break
		}
		gff.CalculatePhases(g)
		if err := w.Write(g); err != nil {
			return fmt.Errorf("writing gene %s: %w", g.ID, err)
		}
	}

	logStats(in)
	return w.Flush()
}

// outputFlagKeys maps config keys to the flags added by addOutputFlags.
var outputFlagKeys = map[string]string{
	"output.delimiter": "output-delimiter",
	"output.header":    "header",
}

// addOutputFlags registers the delimiter and header flags shared by the
// commands that print rows.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("output-delimiter", output.DefaultDelimiter, "Output column delimiter")
	cmd.Flags().Bool("header", false, "Write a '#'-prefixed header line")
}

// bindFlags binds config keys to flags of the command being run. Several
// commands share flag names, so binding happens only once the command is
// known.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}
