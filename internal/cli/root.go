package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	DefaultDB string // default for --db, from TICKINPUT_DB
}

// Env holds process defaults read from the environment.
type Env struct {
	Format   string `env:"TICKINPUT_FORMAT" envDefault:"text"`
	Database string `env:"TICKINPUT_DB"`
}

// LoadEnv parses the environment defaults.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tickinput CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	defaults, envErr := LoadEnv()
	if envErr != nil {
		defaults = Env{Format: "text"}
	}
	opts.DefaultDB = defaults.Database

	cmd := &cobra.Command{
		Use:   "tickinput",
		Short: "tickinput - input across presentation and simulation ticks",
		Long: `Tools for the tick-domain input layer: run and record input scenarios,
verify recorded traces replay identically, validate binding files and watch
live terminal input gathered in both tick domains.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return WrapExitError(ExitCommandError, "invalid environment", envErr)
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaults.Format, "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// Logger returns a text logger on w at Info, or Debug when verbose.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
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
