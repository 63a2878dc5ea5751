package validate

import (
	"fmt"

	"swcomp/internal/arch"
)

// Structural checks a single component in isolation: it must expose at
// least one port, every periodic runnable must carry a period, and
// runnable names must be unique. The duplicate check is defensive; the
// registration API already enforces uniqueness, but a model assembled by
// hand in tests can bypass it.
func Structural(c *arch.Component) []Finding {
	var findings []Finding

	if len(c.Ports()) == 0 {
		findings = append(findings, Finding{
			Code:      ErrNoPorts,
			Category:  CategoryStructural,
			Component: c.Name,
			Detail:    fmt.Sprintf("component %q has no ports defined", c.Name),
		})
	}

	seen := make(map[string]bool)
	for _, r := range c.Runnables {
		if seen[r.Name] {
			findings = append(findings, Finding{
				Code:      ErrDuplicateRunnable,
				Category:  CategoryStructural,
				Component: c.Name,
				Detail:    fmt.Sprintf("duplicate runnable name %q in component %q", r.Name, c.Name),
			})
		}
		seen[r.Name] = true

		if r.Trigger == arch.TriggerPeriodic && (r.Period == nil || *r.Period <= 0) {
			findings = append(findings, Finding{
				Code:      ErrPeriodMissing,
				Category:  CategoryStructural,
				Component: c.Name,
				Detail:    fmt.Sprintf("runnable %q in component %q is periodic but has no period defined", r.Name, c.Name),
			})
		}
	}

	return findings
}
