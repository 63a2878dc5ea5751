package export

import (
	"fmt"
	"io"

	"swcomp/internal/arch"
)

// Render writes the human-readable composition tree: every component with
// its ports, runnables, and interfaces, in registration order.
func Render(w io.Writer, s *arch.Composition) {
	fmt.Fprintf(w, "Software Composition: %s\n", s.Name)
	for i, c := range s.Components() {
		fmt.Fprintf(w, "--Software Component %d: %s (Type: %s)\n", i+1, c.Name, c.Type)
		renderComponent(w, c)
	}
}

func renderComponent(w io.Writer, c *arch.Component) {
	fmt.Fprintln(w, "---Ports Associated:")
	ports := c.Ports()
	if len(ports) == 0 {
		fmt.Fprintln(w, "----No ports associated.")
	}
	for _, p := range ports {
		fmt.Fprintf(w, "----%s (Type: %s)\n", p.Name, p.Direction)
	}

	fmt.Fprintln(w, "---Runnables Associated:")
	runnables := c.Runnables
	if len(runnables) == 0 {
		fmt.Fprintln(w, "----No runnables associated.")
	}
	for _, r := range runnables {
		fmt.Fprintf(w, "----%s (Trigger: %s, Period: %s)\n", r.Name, r.Trigger, formatPeriod(r))
	}

	fmt.Fprintln(w, "---Interfaces Associated:")
	ifaces := c.Interfaces()
	if len(ifaces) == 0 {
		fmt.Fprintln(w, "----No interfaces associated.")
	}
	for _, iface := range ifaces {
		names := ""
		for j, p := range iface.AssociatedPorts() {
			if j > 0 {
				names += ", "
			}
			names += p.Name
		}
		fmt.Fprintf(w, "----%s (Type: %s, Associated with ports: %s)\n", iface.Name, iface.Kind, names)
		elements := iface.DataElements()
		if len(elements) == 0 {
			fmt.Fprintln(w, "------No data elements associated.")
			continue
		}
		fmt.Fprintln(w, "------Data Elements:")
		for _, e := range elements {
			fmt.Fprintf(w, "-------%s (Type: %s)\n", e.Name, e.Type)
		}
	}
}

// formatPeriod renders the period in milliseconds, or N/A for runnables
// that do not carry one.
func formatPeriod(r arch.Runnable) string {
	if r.Trigger == arch.TriggerPeriodic && r.Period != nil {
		return fmt.Sprintf("%dms", *r.Period)
	}
	return "N/A"
}
