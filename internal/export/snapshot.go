// Package export produces the external representations of a composition:
// the JSON snapshot document, a SQLite snapshot file, and the plain-text
// tree rendering. Export reads the model and never mutates it; I/O
// failures are returned to the caller.
package export

import "swcomp/internal/arch"

// Snapshot is the serializable form of a composition. The field names are
// the exact keys of the exported JSON document.
type Snapshot struct {
	CompositionName string              `json:"composition_name"`
	Components      []ComponentSnapshot `json:"components"`
}

// ComponentSnapshot is one component in a snapshot.
type ComponentSnapshot struct {
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Ports      []PortSnapshot      `json:"ports"`
	Runnables  []RunnableSnapshot  `json:"runnables"`
	Interfaces []InterfaceSnapshot `json:"interfaces"`
}

// PortSnapshot is one port. Type carries the direction string.
type PortSnapshot struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// RunnableSnapshot is one runnable. Period is present only for periodic
// triggers.
type RunnableSnapshot struct {
	Name    string `json:"name"`
	Trigger string `json:"trigger"`
	Period  *int   `json:"period,omitempty"`
}

// InterfaceSnapshot is one interface with its associated port names and
// data elements.
type InterfaceSnapshot struct {
	Name            string                `json:"name"`
	Type            string                `json:"type"`
	AssociatedPorts []string              `json:"associated_ports"`
	DataElements    []DataElementSnapshot `json:"data_elements"`
}

// DataElementSnapshot is one data element.
type DataElementSnapshot struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// NewSnapshot captures a composition. All collections are non-nil so the
// JSON document always carries arrays, and iteration order follows the
// model's registration order throughout.
func NewSnapshot(s *arch.Composition) *Snapshot {
	snap := &Snapshot{
		CompositionName: s.Name,
		Components:      []ComponentSnapshot{},
	}
	for _, c := range s.Components() {
		cs := ComponentSnapshot{
			Name:       c.Name,
			Type:       c.Type,
			Ports:      []PortSnapshot{},
			Runnables:  []RunnableSnapshot{},
			Interfaces: []InterfaceSnapshot{},
		}
		for _, p := range c.Ports() {
			cs.Ports = append(cs.Ports, PortSnapshot{Name: p.Name, Type: string(p.Direction)})
		}
		for _, r := range c.Runnables {
			rs := RunnableSnapshot{Name: r.Name, Trigger: string(r.Trigger)}
			if r.Trigger == arch.TriggerPeriodic && r.Period != nil {
				period := *r.Period
				rs.Period = &period
			}
			cs.Runnables = append(cs.Runnables, rs)
		}
		for _, iface := range c.Interfaces() {
			is := InterfaceSnapshot{
				Name:            iface.Name,
				Type:            string(iface.Kind),
				AssociatedPorts: []string{},
				DataElements:    []DataElementSnapshot{},
			}
			for _, p := range iface.AssociatedPorts() {
				is.AssociatedPorts = append(is.AssociatedPorts, p.Name)
			}
			for _, e := range iface.DataElements() {
				is.DataElements = append(is.DataElements, DataElementSnapshot{Name: e.Name, Type: e.Type})
			}
			cs.Interfaces = append(cs.Interfaces, is)
		}
		snap.Components = append(snap.Components, cs)
	}
	return snap
}
