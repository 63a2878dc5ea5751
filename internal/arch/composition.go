package arch

import "fmt"

// Composition is the top-level named collection of components under
// validation. Insertion order is preserved so that reports and exports are
// deterministic.
type Composition struct {
	Name string

	components []*Component
	index      map[string]*Component
}

// NewComposition creates an empty composition.
func NewComposition(name string) *Composition {
	return &Composition{
		Name:  name,
		index: make(map[string]*Component),
	}
}

// AddComponent appends a component. Component names are unique within a
// composition (case-sensitive); adding a duplicate fails and leaves the
// composition unchanged.
func (s *Composition) AddComponent(c *Component) error {
	if _, exists := s.index[c.Name]; exists {
		return &BuildError{
			Code:   ErrDuplicateComponent,
			Detail: fmt.Sprintf("a component with the name %q already exists", c.Name),
		}
	}
	s.components = append(s.components, c)
	s.index[c.Name] = c
	return nil
}

// Component looks up a component by name.
func (s *Composition) Component(name string) (*Component, bool) {
	c, ok := s.index[name]
	return c, ok
}

// Components returns the components in insertion order.
func (s *Composition) Components() []*Component {
	out := make([]*Component, len(s.components))
	copy(out, s.components)
	return out
}

// ComponentNames returns the component names in insertion order.
func (s *Composition) ComponentNames() []string {
	out := make([]string, len(s.components))
	for i, c := range s.components {
		out[i] = c.Name
	}
	return out
}

// Adjacency derives the component connectivity relation: two components
// are neighbors when they share at least one port name, regardless of
// direction. The relation is symmetric, excludes self, and neighbor lists
// follow composition insertion order. It is computed in one pass over all
// ports; callers should build it once per validation run.
func (s *Composition) Adjacency() map[string][]string {
	// Port name -> components exposing it, in composition order.
	byPort := make(map[string][]string)
	for _, c := range s.components {
		for _, name := range c.portOrder {
			byPort[name] = append(byPort[name], c.Name)
		}
	}

	neighborSets := make(map[string]map[string]bool, len(s.components))
	for _, c := range s.components {
		neighborSets[c.Name] = make(map[string]bool)
	}
	for _, owners := range byPort {
		for _, a := range owners {
			for _, b := range owners {
				if a != b {
					neighborSets[a][b] = true
				}
			}
		}
	}

	adj := make(map[string][]string, len(s.components))
	for _, c := range s.components {
		neighbors := []string{}
		for _, other := range s.components {
			if neighborSets[c.Name][other.Name] {
				neighbors = append(neighbors, other.Name)
			}
		}
		adj[c.Name] = neighbors
	}
	return adj
}
