// Package compiler turns CUE composition definitions into the arch model.
// All model construction goes through the arch registration API, so the
// same invariants hold whether a composition is defined in CUE, loaded
// from a manifest, or built interactively.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"swcomp/internal/arch"
)

// CompileComposition parses a CUE value into a composition.
//
// The CUE value should be the composition struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`composition: Brake: { ... }`)
//	s, err := CompileComposition(v.LookupPath(cue.ParsePath("composition.Brake")))
func CompileComposition(v cue.Value) (*arch.Composition, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	// Composition name comes from the struct label (path selector).
	name := ""
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		name = labels[len(labels)-1].String()
	}
	s := arch.NewComposition(name)

	compVal := v.LookupPath(cue.ParsePath("component"))
	if !compVal.Exists() {
		return s, nil // empty composition is a valid model
	}

	iter, err := compVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		c, err := compileComponent(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		if err := s.AddComponent(c); err != nil {
			return nil, wrapBuildError(err, iter.Value().Pos())
		}
	}

	return s, nil
}

// compileComponent parses one component struct.
func compileComponent(name string, v cue.Value) (*arch.Component, error) {
	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return nil, &CompileError{
			Field:   fmt.Sprintf("component.%s.type", name),
			Message: "component type is required",
			Pos:     v.Pos(),
		}
	}
	componentType, err := typeVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	c := arch.NewComponent(name, componentType)

	if err := compilePorts(c, v); err != nil {
		return nil, err
	}
	if err := compileRunnables(c, v); err != nil {
		return nil, err
	}
	if err := compileInterfaces(c, v); err != nil {
		return nil, err
	}

	return c, nil
}

// compilePorts registers the component's ports. A port is either the bare
// direction string or a struct with a direction field:
//
//	port: speed: "sender"
//	port: ctrl: { direction: "receiver" }
func compilePorts(c *arch.Component, v cue.Value) error {
	portVal := v.LookupPath(cue.ParsePath("port"))
	if !portVal.Exists() {
		return nil
	}

	iter, err := portVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		portName := iter.Label()
		val := iter.Value()

		var direction string
		if dir, err := val.String(); err == nil {
			direction = dir
		} else {
			dirVal := val.LookupPath(cue.ParsePath("direction"))
			if !dirVal.Exists() {
				return &CompileError{
					Field:   fmt.Sprintf("component.%s.port.%s", c.Name, portName),
					Message: "port must be a direction string or a struct with a direction field",
					Pos:     val.Pos(),
				}
			}
			direction, err = dirVal.String()
			if err != nil {
				return formatCUEError(err)
			}
		}

		if _, err := c.AddPort(portName, arch.PortDirection(direction)); err != nil {
			return wrapBuildError(err, val.Pos())
		}
	}
	return nil
}

// compileRunnables registers the component's runnables:
//
//	runnable: sample: { trigger: "periodic", period: 10 }
func compileRunnables(c *arch.Component, v cue.Value) error {
	runVal := v.LookupPath(cue.ParsePath("runnable"))
	if !runVal.Exists() {
		return nil
	}

	iter, err := runVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		runName := iter.Label()
		val := iter.Value()

		triggerVal := val.LookupPath(cue.ParsePath("trigger"))
		if !triggerVal.Exists() {
			return &CompileError{
				Field:   fmt.Sprintf("component.%s.runnable.%s.trigger", c.Name, runName),
				Message: "runnable trigger is required",
				Pos:     val.Pos(),
			}
		}
		trigger, err := triggerVal.String()
		if err != nil {
			return formatCUEError(err)
		}

		r := arch.Runnable{Name: runName, Trigger: arch.TriggerKind(trigger)}
		periodVal := val.LookupPath(cue.ParsePath("period"))
		if periodVal.Exists() {
			period, err := periodVal.Int64()
			if err != nil {
				return formatCUEError(err)
			}
			p := int(period)
			r.Period = &p
		}

		if err := c.AddRunnable(r); err != nil {
			return wrapBuildError(err, val.Pos())
		}
	}
	return nil
}

// compileInterfaces registers the component's interfaces:
//
//	interface: ISpeed: {
//		type: "senderReceiver"
//		ports: ["speed"]
//		data: { value: "uint16" }
//	}
func compileInterfaces(c *arch.Component, v cue.Value) error {
	ifaceVal := v.LookupPath(cue.ParsePath("interface"))
	if !ifaceVal.Exists() {
		return nil
	}

	iter, err := ifaceVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		ifaceName := iter.Label()
		val := iter.Value()

		typeVal := val.LookupPath(cue.ParsePath("type"))
		if !typeVal.Exists() {
			return &CompileError{
				Field:   fmt.Sprintf("component.%s.interface.%s.type", c.Name, ifaceName),
				Message: "interface type is required",
				Pos:     val.Pos(),
			}
		}
		kind, err := typeVal.String()
		if err != nil {
			return formatCUEError(err)
		}
		iface := arch.NewInterface(ifaceName, arch.InterfaceKind(kind))

		var portNames []string
		portsVal := val.LookupPath(cue.ParsePath("ports"))
		if portsVal.Exists() {
			listIter, err := portsVal.List()
			if err != nil {
				return formatCUEError(err)
			}
			for listIter.Next() {
				portName, err := listIter.Value().String()
				if err != nil {
					return formatCUEError(err)
				}
				portNames = append(portNames, portName)
			}
		}

		dataVal := val.LookupPath(cue.ParsePath("data"))
		if dataVal.Exists() {
			dataIter, err := dataVal.Fields()
			if err != nil {
				return formatCUEError(err)
			}
			for dataIter.Next() {
				elemType, err := dataIter.Value().String()
				if err != nil {
					return formatCUEError(err)
				}
				iface.AddDataElement(arch.DataElement{Name: dataIter.Label(), Type: elemType})
			}
		}

		if err := c.AddInterface(iface, portNames); err != nil {
			return wrapBuildError(err, val.Pos())
		}
	}
	return nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// wrapBuildError attaches a source position to an arch construction error.
func wrapBuildError(err error, pos token.Pos) error {
	if be, ok := err.(*arch.BuildError); ok {
		field := be.Code
		if be.Component != "" {
			field = fmt.Sprintf("component.%s", be.Component)
		}
		return &CompileError{
			Field:   field,
			Message: be.Detail,
			Pos:     pos,
		}
	}
	return err
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	// Return first error with position info
	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
