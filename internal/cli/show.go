package cli

import (
	"github.com/spf13/cobra"

	"swcomp/internal/export"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Render compositions",
		Long: `Render compositions as a readable tree of components, ports,
runnables, and interfaces. With --format json the snapshot document is
printed instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	if formatter.Format == "json" {
		snapshots := make([]*export.Snapshot, 0, len(compositions))
		for _, s := range compositions {
			snapshots = append(snapshots, export.NewSnapshot(s))
		}
		return formatter.Success(snapshots)
	}

	for _, s := range compositions {
		export.Render(formatter.Writer, s)
	}
	return nil
}
