package arch

import "fmt"

// Component is a named unit exposing ports, runnables, and interfaces.
// A component does not reference other components directly; connectivity
// is derived from shared port names at the composition level.
type Component struct {
	Name string
	Type string // free-form classification, e.g. "Sensor", "Controller"

	// Runnables in registration order. AddRunnable is the checked path;
	// validation re-checks name uniqueness in case the slice was
	// populated directly.
	Runnables []Runnable

	ports     map[string]*Port
	portOrder []string
	ifaces    []*Interface
}

// NewComponent creates an empty component.
func NewComponent(name, componentType string) *Component {
	return &Component{
		Name:  name,
		Type:  componentType,
		ports: make(map[string]*Port),
	}
}

// AddPort registers a port on the component. Port names are unique within
// a component; registering a duplicate name fails and leaves the component
// unchanged.
func (c *Component) AddPort(name string, dir PortDirection) (*Port, error) {
	if !dir.Valid() {
		return nil, &BuildError{
			Code:      ErrInvalidDirection,
			Component: c.Name,
			Detail:    fmt.Sprintf("invalid direction %q for port %q, must be %q or %q", dir, name, DirectionSender, DirectionReceiver),
		}
	}
	if _, exists := c.ports[name]; exists {
		return nil, &BuildError{
			Code:      ErrDuplicatePort,
			Component: c.Name,
			Detail:    fmt.Sprintf("port %q already exists", name),
		}
	}

	p := &Port{Name: name, Direction: dir}
	c.ports[name] = p
	c.portOrder = append(c.portOrder, name)
	return p, nil
}

// Port looks up a port by name.
func (c *Component) Port(name string) (*Port, bool) {
	p, ok := c.ports[name]
	return p, ok
}

// Ports returns the component's ports in registration order.
func (c *Component) Ports() []*Port {
	out := make([]*Port, 0, len(c.portOrder))
	for _, name := range c.portOrder {
		out = append(out, c.ports[name])
	}
	return out
}

// PortNames returns the port names in registration order.
func (c *Component) PortNames() []string {
	out := make([]string, len(c.portOrder))
	copy(out, c.portOrder)
	return out
}

// AddRunnable registers a runnable. Runnable names are unique within a
// component. An event-based runnable must not carry a period; a periodic
// runnable may be registered without one, which validation later reports
// as a finding.
func (c *Component) AddRunnable(r Runnable) error {
	if !r.Trigger.Valid() {
		return &BuildError{
			Code:      ErrInvalidTrigger,
			Component: c.Name,
			Detail:    fmt.Sprintf("invalid trigger %q for runnable %q, must be %q or %q", r.Trigger, r.Name, TriggerPeriodic, TriggerEvent),
		}
	}
	if r.Trigger == TriggerEvent && r.Period != nil {
		return &BuildError{
			Code:      ErrUnexpectedPeriod,
			Component: c.Name,
			Detail:    fmt.Sprintf("runnable %q is event-based and must not have a period", r.Name),
		}
	}
	for _, existing := range c.Runnables {
		if existing.Name == r.Name {
			return &BuildError{
				Code:      ErrDuplicateRunnable,
				Component: c.Name,
				Detail:    fmt.Sprintf("runnable %q already exists", r.Name),
			}
		}
	}

	c.Runnables = append(c.Runnables, r)
	return nil
}

// AddInterface registers an interface and associates it with the named
// ports. Every port name must already exist on the component; an unknown
// name fails the whole operation, leaving both the component and the
// interface unchanged.
func (c *Component) AddInterface(iface *Interface, portNames []string) error {
	if !iface.Kind.Valid() {
		return &BuildError{
			Code:      ErrInvalidInterface,
			Component: c.Name,
			Detail:    fmt.Sprintf("invalid kind %q for interface %q, must be %q or %q", iface.Kind, iface.Name, InterfaceClientServer, InterfaceSenderReceiver),
		}
	}

	// Resolve all names before mutating anything.
	resolved := make([]*Port, 0, len(portNames))
	for _, name := range portNames {
		p, ok := c.ports[name]
		if !ok {
			return &BuildError{
				Code:      ErrUnknownPort,
				Component: c.Name,
				Detail:    fmt.Sprintf("no port named %q to associate with interface %q", name, iface.Name),
			}
		}
		resolved = append(resolved, p)
	}

	iface.ports = append(iface.ports, resolved...)
	c.ifaces = append(c.ifaces, iface)
	return nil
}

// Interfaces returns the interfaces in registration order.
func (c *Component) Interfaces() []*Interface {
	out := make([]*Interface, len(c.ifaces))
	copy(out, c.ifaces)
	return out
}
