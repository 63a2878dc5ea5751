package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"swcomp/internal/arch"
	"swcomp/internal/export"
	"swcomp/internal/manifest"
	"swcomp/internal/validate"
)

// Wrapper for survey to allow mocking in tests.
var askOneFunc = survey.AskOne

// NewOptions holds flags for the new command.
type NewOptions struct {
	Save   string // manifest path; skips the save prompt when set
	Export string // JSON snapshot path; skips the export prompt when set
}

// NewNewCommand creates the new command, an interactive wizard that
// builds a composition, validates it, and offers to save and export it.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	newOpts := &NewOptions{}

	cmd := &cobra.Command{
		Use:           "new",
		Short:         "Interactively build a composition",
		Long:          "Walks through creating a composition: components, ports, runnables, and interfaces. The result is rendered, validated, and can be saved as a YAML manifest and exported as a JSON snapshot.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(rootOpts, newOpts, cmd)
		},
	}

	cmd.Flags().StringVar(&newOpts.Save, "save", "", "write the composition manifest to this path without prompting")
	cmd.Flags().StringVar(&newOpts.Export, "export", "", "write the JSON snapshot to this path without prompting")

	return cmd
}

func runNew(opts *RootOptions, newOpts *NewOptions, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	var name string
	if err := askOneFunc(&survey.Input{Message: "Composition name:"}, &name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	s := arch.NewComposition(name)

	for {
		var addComponent bool
		if err := askOneFunc(&survey.Confirm{Message: "Add a software component?", Default: true}, &addComponent); err != nil {
			return err
		}
		if !addComponent {
			break
		}

		// A construction error aborts this one component and the loop
		// carries on, mirroring how an operator corrects a typo.
		if err := buildComponent(s, out); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	export.Render(out, s)

	report := validate.NewReport(s)
	fmt.Fprintln(out)
	if report.Valid {
		fmt.Fprintln(out, "✓ Composition is valid")
	} else {
		fmt.Fprintf(out, "✗ %d finding(s):\n", len(report.Findings))
		for _, f := range report.Findings {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}

	if err := saveManifest(s, newOpts, out); err != nil {
		return err
	}
	return exportSnapshot(s, newOpts, out)
}

// buildComponent walks through one component's prompts and registers it.
func buildComponent(s *arch.Composition, out io.Writer) error {
	var name string
	if err := askOneFunc(&survey.Input{Message: "Component name:"}, &name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	if _, exists := s.Component(name); exists {
		fmt.Fprintf(out, "Error: a component named %q already exists, choose a different name\n", name)
		return nil
	}

	var componentType string
	if err := askOneFunc(&survey.Input{Message: "Component type (e.g. Sensor, Controller):"}, &componentType); err != nil {
		return err
	}
	c := arch.NewComponent(name, componentType)

	if err := buildPorts(c, out); err != nil {
		return err
	}
	if err := buildRunnables(c, out); err != nil {
		return err
	}
	if err := buildInterfaces(c, out); err != nil {
		return err
	}

	if err := s.AddComponent(c); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return nil
}

func buildPorts(c *arch.Component, out io.Writer) error {
	for {
		var add bool
		if err := askOneFunc(&survey.Confirm{Message: fmt.Sprintf("Add a port to %q?", c.Name), Default: false}, &add); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var name, direction string
		if err := askOneFunc(&survey.Input{Message: "Port name:"}, &name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		if err := askOneFunc(&survey.Select{
			Message: "Port direction:",
			Options: []string{string(arch.DirectionSender), string(arch.DirectionReceiver)},
		}, &direction); err != nil {
			return err
		}
		if _, err := c.AddPort(name, arch.PortDirection(direction)); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func buildRunnables(c *arch.Component, out io.Writer) error {
	for {
		var add bool
		if err := askOneFunc(&survey.Confirm{Message: fmt.Sprintf("Add a runnable to %q?", c.Name), Default: false}, &add); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var name, trigger string
		if err := askOneFunc(&survey.Input{Message: "Runnable name:"}, &name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		if err := askOneFunc(&survey.Select{
			Message: "Trigger:",
			Options: []string{string(arch.TriggerPeriodic), string(arch.TriggerEvent)},
		}, &trigger); err != nil {
			return err
		}

		r := arch.Runnable{Name: name, Trigger: arch.TriggerKind(trigger)}
		if r.Trigger == arch.TriggerPeriodic {
			var periodStr string
			if err := askOneFunc(&survey.Input{Message: "Period (ms):"}, &periodStr); err != nil {
				return err
			}
			period, err := strconv.Atoi(periodStr)
			if err != nil {
				fmt.Fprintf(out, "Error: invalid period %q, runnable not added\n", periodStr)
				continue
			}
			r.Period = &period
		}

		if err := c.AddRunnable(r); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func buildInterfaces(c *arch.Component, out io.Writer) error {
	for {
		var add bool
		if err := askOneFunc(&survey.Confirm{Message: fmt.Sprintf("Add an interface to %q?", c.Name), Default: false}, &add); err != nil {
			return err
		}
		if !add {
			return nil
		}

		var name, kind string
		if err := askOneFunc(&survey.Input{Message: "Interface name:"}, &name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		if err := askOneFunc(&survey.Select{
			Message: "Interface type:",
			Options: []string{string(arch.InterfaceClientServer), string(arch.InterfaceSenderReceiver)},
		}, &kind); err != nil {
			return err
		}

		var portNames []string
		if available := c.PortNames(); len(available) > 0 {
			if err := askOneFunc(&survey.MultiSelect{
				Message: "Associate with ports:",
				Options: available,
			}, &portNames); err != nil {
				return err
			}
		}

		iface := arch.NewInterface(name, arch.InterfaceKind(kind))
		for {
			var addElement bool
			if err := askOneFunc(&survey.Confirm{Message: fmt.Sprintf("Add a data element to %q?", name), Default: false}, &addElement); err != nil {
				return err
			}
			if !addElement {
				break
			}
			var elemName, elemType string
			if err := askOneFunc(&survey.Input{Message: "Data element name:"}, &elemName, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
			if err := askOneFunc(&survey.Input{Message: "Data element type (e.g. int, float, string):"}, &elemType); err != nil {
				return err
			}
			iface.AddDataElement(arch.DataElement{Name: elemName, Type: elemType})
		}

		if err := c.AddInterface(iface, portNames); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func saveManifest(s *arch.Composition, newOpts *NewOptions, out io.Writer) error {
	path := newOpts.Save
	if path == "" {
		var save bool
		if err := askOneFunc(&survey.Confirm{Message: "Save the composition as a YAML manifest?", Default: false}, &save); err != nil {
			return err
		}
		if !save {
			return nil
		}
		if err := askOneFunc(&survey.Input{Message: "Manifest file:", Default: "composition.yaml"}, &path); err != nil {
			return err
		}
	}
	if err := manifest.Save(path, s); err != nil {
		return &ExitError{Code: ExitCommandError, Message: "saving manifest", Err: err}
	}
	fmt.Fprintf(out, "Saved manifest to %s\n", path)
	return nil
}

func exportSnapshot(s *arch.Composition, newOpts *NewOptions, out io.Writer) error {
	path := newOpts.Export
	if path == "" {
		var doExport bool
		if err := askOneFunc(&survey.Confirm{Message: "Export the configuration to a JSON file?", Default: false}, &doExport); err != nil {
			return err
		}
		if !doExport {
			return nil
		}
		if err := askOneFunc(&survey.Input{Message: "JSON file:", Default: "composition.json"}, &path); err != nil {
			return err
		}
	}
	if err := export.WriteJSONFile(path, export.NewSnapshot(s)); err != nil {
		return &ExitError{Code: ExitCommandError, Message: "exporting snapshot", Err: err}
	}
	fmt.Fprintf(out, "Exported configuration to %s\n", path)
	return nil
}
