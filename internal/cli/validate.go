package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"swcomp/internal/validate"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate composition definitions",
		Long: `Validate compositions for structural correctness.

Runs per-component checks (ports present, periodic runnables carry a
period), sender/receiver port matching across the composition, and cycle
detection over the derived component connectivity. All findings are
reported, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	compositions, err := LoadCompositions(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d composition(s) from %s", len(compositions), path)

	reports := make([]validate.Report, 0, len(compositions))
	total := 0
	for _, s := range compositions {
		report := validate.NewReport(s)
		total += len(report.Findings)
		reports = append(reports, report)
	}

	if formatter.Format == "json" {
		if err := formatter.Success(reports); err != nil {
			return err
		}
	} else {
		for _, report := range reports {
			if report.Valid {
				fmt.Fprintf(formatter.Writer, "✓ %s: composition is valid\n", report.Composition)
				continue
			}
			fmt.Fprintf(formatter.Writer, "✗ %s: %d finding(s)\n", report.Composition, len(report.Findings))
			for _, f := range report.Findings {
				fmt.Fprintf(formatter.Writer, "  %s\n", f)
			}
		}
	}

	if total > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d finding(s)", total))
	}
	return nil
}

// outputLoadError reports a load failure and wraps it as a command error.
func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message)
		return &ExitError{Code: ExitCommandError, Message: loadErr.Message, Err: nil}
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error())
	return &ExitError{Code: ExitCommandError, Message: err.Error()}
}
