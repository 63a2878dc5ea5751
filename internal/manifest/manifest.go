// Package manifest reads and writes YAML composition manifests. This is
// the format the interactive wizard saves, and any command that accepts a
// composition path accepts a manifest file in place of a CUE directory.
package manifest

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"swcomp/internal/arch"
)

// Manifest is the YAML document shape.
type Manifest struct {
	Name       string      `yaml:"name"`
	Components []Component `yaml:"components,omitempty"`
}

// Component is one component entry in a manifest.
type Component struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"`
	Ports      []Port      `yaml:"ports,omitempty"`
	Runnables  []Runnable  `yaml:"runnables,omitempty"`
	Interfaces []Interface `yaml:"interfaces,omitempty"`
}

// Port is one port entry.
type Port struct {
	Name      string `yaml:"name"`
	Direction string `yaml:"direction"`
}

// Runnable is one runnable entry. Period is milliseconds and only
// meaningful for periodic triggers.
type Runnable struct {
	Name    string `yaml:"name"`
	Trigger string `yaml:"trigger"`
	Period  *int   `yaml:"period,omitempty"`
}

// Interface is one interface entry. Ports lists associated port names,
// which must exist on the owning component.
type Interface struct {
	Name  string        `yaml:"name"`
	Type  string        `yaml:"type"`
	Ports []string      `yaml:"ports,omitempty"`
	Data  []DataElement `yaml:"data,omitempty"`
}

// DataElement is one data element entry.
type DataElement struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FromComposition captures a composition as a manifest document.
func FromComposition(s *arch.Composition) *Manifest {
	m := &Manifest{Name: s.Name}
	for _, c := range s.Components() {
		mc := Component{Name: c.Name, Type: c.Type}
		for _, p := range c.Ports() {
			mc.Ports = append(mc.Ports, Port{Name: p.Name, Direction: string(p.Direction)})
		}
		for _, r := range c.Runnables {
			mr := Runnable{Name: r.Name, Trigger: string(r.Trigger)}
			if r.Period != nil {
				period := *r.Period
				mr.Period = &period
			}
			mc.Runnables = append(mc.Runnables, mr)
		}
		for _, iface := range c.Interfaces() {
			mi := Interface{Name: iface.Name, Type: string(iface.Kind)}
			for _, p := range iface.AssociatedPorts() {
				mi.Ports = append(mi.Ports, p.Name)
			}
			for _, e := range iface.DataElements() {
				mi.Data = append(mi.Data, DataElement{Name: e.Name, Type: e.Type})
			}
			mc.Interfaces = append(mc.Interfaces, mi)
		}
		m.Components = append(m.Components, mc)
	}
	return m
}

// Composition rebuilds the arch model through the registration API, so
// manifest input is held to the same construction invariants as every
// other source.
func (m *Manifest) Composition() (*arch.Composition, error) {
	s := arch.NewComposition(m.Name)
	for _, mc := range m.Components {
		c := arch.NewComponent(mc.Name, mc.Type)
		for _, mp := range mc.Ports {
			if _, err := c.AddPort(mp.Name, arch.PortDirection(mp.Direction)); err != nil {
				return nil, err
			}
		}
		for _, mr := range mc.Runnables {
			r := arch.Runnable{Name: mr.Name, Trigger: arch.TriggerKind(mr.Trigger)}
			if mr.Period != nil {
				period := *mr.Period
				r.Period = &period
			}
			if err := c.AddRunnable(r); err != nil {
				return nil, err
			}
		}
		for _, mi := range mc.Interfaces {
			iface := arch.NewInterface(mi.Name, arch.InterfaceKind(mi.Type))
			for _, e := range mi.Data {
				iface.AddDataElement(arch.DataElement{Name: e.Name, Type: e.Type})
			}
			if err := c.AddInterface(iface, mi.Ports); err != nil {
				return nil, err
			}
		}
		if err := s.AddComponent(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Decode reads a manifest document and rebuilds the composition.
func Decode(r io.Reader) (*arch.Composition, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return m.Composition()
}

// Encode writes a composition as a manifest document.
func Encode(w io.Writer, s *arch.Composition) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromComposition(s)); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return enc.Close()
}

// Load reads a manifest file.
func Load(path string) (*arch.Composition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes a manifest file.
func Save(path string, s *arch.Composition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
