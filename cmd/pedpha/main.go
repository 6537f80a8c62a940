// Package main provides the pedpha command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pedpha/pedpha/internal/gff"
	"github.com/pedpha/pedpha/internal/output"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is configured from log.level before any subcommand runs.
var logger = zap.NewNop()

// usageError marks errors caused by bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile  string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "pedpha",
		Short: "Exon phases and protein interval projection for GFF gene models",
		Long: `pedpha rebuilds gene models from GFF3 gene/mRNA/exon/CDS records,
reports the reading-frame phase at each exon boundary, and maps protein
intervals (e.g. domains) onto the genomic coordinates of each coding exon.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cfgFile); err != nil {
				return err
			}
			l, err := newLogger(viper.GetString("log.level"))
			if err != nil {
				return usageErrorf("%v", err)
			}
			logger = l
			return nil
		},
	}
	cmd.SetVersionTemplate("pedpha version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.pedpha.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newPhaseCmd())
	cmd.AddCommand(newProjectCmd())
	cmd.AddCommand(newLocateCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pedpha version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig reads the config file and environment into viper.
func initConfig(cfgFile string) error {
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("intervals.delimiter", "")
	viper.SetDefault("output.delimiter", output.DefaultDelimiter)
	viper.SetDefault("output.local", false)
	viper.SetDefault("output.header", false)
	viper.SetDefault("store.path", "")

	viper.SetEnvPrefix("PEDPHA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".pedpha")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	return cfg.Build()
}

// inputPath picks the GFF input from the --gff flag, then the positional
// argument, defaulting to stdin.
func inputPath(flagValue string, args []string) string {
	if flagValue != "" {
		return flagValue
	}
	if len(args) > 0 {
		return args[0]
	}
	return "-"
}

// geneInput is an open GFF source yielding validated gene models.
type geneInput struct {
	*gff.Reader
	closer io.Closer
}

func (in *geneInput) Close() error {
	return in.closer.Close()
}

// openGenes opens a GFF file and writes structural diagnostics to the
// command's stderr as they are found.
func openGenes(cmd *cobra.Command, path string) (*geneInput, error) {
	f, err := gff.Open(path)
	if err != nil {
		return nil, err
	}

	r := gff.NewReader(f)
	r.SetLogger(logger)
	errOut := cmd.ErrOrStderr()
	r.SetDiagnosticHandler(func(d gff.Diagnostic) {
		fmt.Fprintln(errOut, d.String())
	})

	logger.Debug("reading gene models", zap.String("path", displayPath(path)))
	return &geneInput{Reader: r, closer: f}, nil
}

// logStats reports what the builder did with the input.
func logStats(in *geneInput) {
	s := in.Stats()
	logger.Info("gene models read",
		zap.Int("lines", in.LineNumber()),
		zap.Int("records", s.Records),
		zap.Int("genes", s.Genes),
		zap.Int("dropped", s.Dropped),
		zap.Int("rejected", s.Rejected),
		zap.Int("skipped", s.Skipped))
}

func displayPath(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return filepath.Clean(path)
}
