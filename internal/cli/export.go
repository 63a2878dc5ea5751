package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"swcomp/internal/export"
	"swcomp/internal/validate"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	Out   string
	To    string // "json" | "sqlite"
	Force bool
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	exportOpts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export a composition snapshot",
		Long: `Export a composition snapshot to a JSON document (4-space
indented) or a SQLite database file. The composition is validated first;
a composition with findings is not exported unless --force is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, exportOpts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&exportOpts.Out, "out", "o", "", "output file (required)")
	cmd.Flags().StringVar(&exportOpts.To, "to", "json", "export target (json|sqlite)")
	cmd.Flags().BoolVar(&exportOpts.Force, "force", false, "export even when validation reports findings")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(opts *RootOptions, exportOpts *ExportOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if exportOpts.To != "json" && exportOpts.To != "sqlite" {
		message := fmt.Sprintf("invalid export target %q: must be json or sqlite", exportOpts.To)
		_ = formatter.Error(ErrCodeGeneric, message)
		return NewExitError(ExitCommandError, message)
	}

	compositions, err := LoadCompositions(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	if len(compositions) != 1 {
		message := fmt.Sprintf("export requires exactly one composition, found %d", len(compositions))
		_ = formatter.Error(ErrCodeGeneric, message)
		return NewExitError(ExitCommandError, message)
	}
	s := compositions[0]

	findings := validate.Composition(s)
	if len(findings) > 0 && !exportOpts.Force {
		_ = formatter.Error(findings[0].Code, fmt.Sprintf("composition %q has %d finding(s); re-run with --force to export anyway", s.Name, len(findings)))
		return NewExitError(ExitFailure, fmt.Sprintf("refusing to export invalid composition %q", s.Name))
	}
	if len(findings) > 0 {
		formatter.VerboseLog("Exporting despite %d finding(s)", len(findings))
	}

	snap := export.NewSnapshot(s)
	switch exportOpts.To {
	case "json":
		err = export.WriteJSONFile(exportOpts.Out, snap)
	case "sqlite":
		err = export.WriteSQLite(exportOpts.Out, snap)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error())
		return &ExitError{Code: ExitCommandError, Message: "export failed", Err: err}
	}

	return formatter.Success(fmt.Sprintf("Exported %q to %s", s.Name, exportOpts.Out))
}
