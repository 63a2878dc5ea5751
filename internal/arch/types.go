package arch

// PortDirection is the communication direction of a port.
// Port names are the matching key across components: a sender port is
// satisfied by any receiver port of the same name, anywhere in the
// composition.
type PortDirection string

const (
	DirectionSender   PortDirection = "sender"
	DirectionReceiver PortDirection = "receiver"
)

// Valid reports whether d is a known direction.
func (d PortDirection) Valid() bool {
	return d == DirectionSender || d == DirectionReceiver
}

// TriggerKind is the activation mode of a runnable.
type TriggerKind string

const (
	TriggerPeriodic TriggerKind = "periodic"
	TriggerEvent    TriggerKind = "event-based"
)

// Valid reports whether t is a known trigger kind.
func (t TriggerKind) Valid() bool {
	return t == TriggerPeriodic || t == TriggerEvent
}

// InterfaceKind is the communication pattern of an interface.
type InterfaceKind string

const (
	InterfaceClientServer   InterfaceKind = "clientServer"
	InterfaceSenderReceiver InterfaceKind = "senderReceiver"
)

// Valid reports whether k is a known interface kind.
func (k InterfaceKind) Valid() bool {
	return k == InterfaceClientServer || k == InterfaceSenderReceiver
}

// Port is a named, directional communication point on a component.
// Ports are created only through Component.AddPort and belong to exactly
// one component for their lifetime.
type Port struct {
	Name      string
	Direction PortDirection
}

// Runnable is a unit of work executed by a component.
//
// Period is the activation period in milliseconds. It must be nil for
// event-based runnables (enforced at registration) and is expected to be
// set and positive for periodic ones (checked by validation, not at
// registration, so that an incomplete model can still be inspected).
type Runnable struct {
	Name    string
	Trigger TriggerKind
	Period  *int
}

// DataElement is a named, typed payload field on an interface. The type
// tag is free-form; no type system is enforced.
type DataElement struct {
	Name string
	Type string
}

// Interface is a communication agreement grouping ports and data elements.
// It holds non-owning references to ports of the component it is
// registered on.
type Interface struct {
	Name string
	Kind InterfaceKind

	ports    []*Port
	elements []DataElement
}

// NewInterface creates an interface with no associated ports or data
// elements.
func NewInterface(name string, kind InterfaceKind) *Interface {
	return &Interface{Name: name, Kind: kind}
}

// AddDataElement appends a data element, preserving insertion order.
func (i *Interface) AddDataElement(e DataElement) {
	i.elements = append(i.elements, e)
}

// AssociatedPorts returns the ports this interface is bound to, in
// association order.
func (i *Interface) AssociatedPorts() []*Port {
	return i.ports
}

// DataElements returns the data elements in insertion order.
func (i *Interface) DataElements() []DataElement {
	return i.elements
}
