package validate

import (
	"fmt"

	"swcomp/internal/arch"
)

// Topology detects circular dependencies between components. Components
// are graph nodes; two components are connected when they share a port
// name, regardless of direction, so edges are undirected.
//
// The traversal is a depth-first walk started from each not-yet-visited
// component in composition order, tracking the set of components on the
// active exploration stack. Reaching a component already on the stack
// means the walk has closed a loop; one finding names that component and
// the walk does not descend further along that branch.
//
// Two exclusions keep ordinary links from being misreported:
//   - the edge the walk arrived on is skipped, since an undirected edge
//     would otherwise bounce straight back to the parent and flag every
//     matched sender/receiver pair as a cycle;
//   - a component is never its own neighbor (port names are unique within
//     a component, and Adjacency excludes self regardless).
//
// Components are marked permanently visited as they are reached, so a
// cycle is reported exactly once even though every component is tried as
// a root.
func Topology(s *arch.Composition) []Finding {
	adj := s.Adjacency()

	var findings []Finding
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var visit func(name, parent string)
	visit = func(name, parent string) {
		visited[name] = true
		onStack[name] = true

		for _, neighbor := range adj[name] {
			if neighbor == parent {
				continue
			}
			if onStack[neighbor] {
				findings = append(findings, Finding{
					Code:      ErrDependencyCycle,
					Category:  CategoryTopology,
					Component: neighbor,
					Detail:    fmt.Sprintf("circular dependency detected involving component %q", neighbor),
				})
				continue
			}
			if !visited[neighbor] {
				visit(neighbor, name)
			}
		}

		onStack[name] = false
	}

	for _, name := range s.ComponentNames() {
		if !visited[name] {
			visit(name, "")
		}
	}

	return findings
}
