package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SimonDaKappa/go-paramq/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "yaml"

	// Logger is installed by the root command before any subcommand runs.
	Logger *slog.Logger
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"json", "yaml"}

// NewRootCommand creates the root command for the paramq CLI. A nil cfg
// loads the configuration from the environment.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	if cfg == nil {
		cfg = config.Load()
	}
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "paramq",
		Short: "paramq - request parameters to queries",
		Long:  "Parse and validate request parameters against a YAML schema and render them as a database query.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.Logger = newLogger(cmd, opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|yaml)")

	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewSQLCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// newLogger writes text logs to stderr so that they never mix with the
// rendered output.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// logger returns the installed logger, or a discarding one when a
// subcommand runs without its parent (as in tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// defaults returns the loaded configuration or the built in one.
func (o *RootOptions) defaults() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.Default()
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
