package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tickinput/internal/binding"
	"github.com/roach88/tickinput/internal/harness"
	"github.com/roach88/tickinput/internal/live"
)

// File kinds accepted by validate.
const (
	KindAuto     = "auto"
	KindScenario = "scenario"
	KindBindings = "bindings"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Kind     string
	Terminal bool
}

// FileValidation is the outcome for one file.
type FileValidation struct {
	File  string `json:"file"`
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Line  int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate scenario and binding files",
		Long: `Validate scenario files and binding files without running anything.

CUE files are always bindings. YAML files are scenarios when they have a
top-level "steps" key and bindings otherwise, unless --kind says which.
With --terminal, bindings are also checked against the keys a terminal
can deliver.

Exit codes:
  0 - All files are valid
  1 - At least one file is invalid
  2 - Command error (file not found, etc.)

Examples:
  tickinput validate ./scenarios/one_shot.yaml
  tickinput validate ./bindings.cue --terminal
  tickinput validate --kind bindings ./keys.yml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", KindAuto, "file kind (auto|scenario|bindings)")
	cmd.Flags().BoolVar(&opts.Terminal, "terminal", false, "check bindings against terminal key names")

	return cmd
}

func runValidate(opts *ValidateOptions, files []string, cmd *cobra.Command) error {
	switch opts.Kind {
	case KindAuto, KindScenario, KindBindings:
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid kind %q: must be auto, scenario or bindings", opts.Kind))
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read file", err)
		}

		fv := validateFile(opts, file, data)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if opts.Format == "json" {
		code, msg := "", ""
		if !result.Valid {
			code, msg = ErrCodeInvalid, "validation failed"
		}
		if err := writeJSON(cmd.OutOrStdout(), okResponse(result, code, msg)); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, fv := range result.Files {
			if fv.Valid {
				fmt.Fprintf(w, "✓ %s (%s)\n", fv.File, fv.Kind)
				continue
			}
			fmt.Fprintf(w, "✗ %s (%s)\n", fv.File, fv.Kind)
			fmt.Fprintf(w, "  %s\n", fv.Error)
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func validateFile(opts *ValidateOptions, file string, data []byte) FileValidation {
	kind := opts.Kind
	if kind == KindAuto {
		kind = detectKind(file, data)
	}
	fv := FileValidation{File: file, Kind: kind, Valid: true}

	var err error
	switch kind {
	case KindScenario:
		_, err = harness.ParseScenario(data)
	case KindBindings:
		var b *binding.Bindings
		b, err = parseBindings(file, data)
		if err == nil && opts.Terminal {
			err = live.CheckTerminalBindings(b)
		}
	}

	if err != nil {
		fv.Valid = false
		fv.Error = err.Error()
		var be *binding.Error
		if errors.As(err, &be) && be.Pos.IsValid() {
			fv.Line = be.Pos.Line()
		}
	}
	return fv
}

// detectKind classifies a file by extension and, for YAML, by its keys.
func detectKind(file string, data []byte) string {
	if filepath.Ext(file) == ".cue" {
		return KindBindings
	}
	var top map[string]any
	if err := yaml.Unmarshal(data, &top); err == nil {
		if _, ok := top["steps"]; ok {
			return KindScenario
		}
	}
	return KindBindings
}

func parseBindings(file string, data []byte) (*binding.Bindings, error) {
	if filepath.Ext(file) == ".cue" {
		return binding.ParseCUE(data, file)
	}
	return binding.ParseYAML(data)
}
