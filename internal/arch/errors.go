package arch

import "fmt"

// Build error codes (B100-B199).
//
// Build errors are construction-time failures: they abort the single
// registration operation that raised them and leave the model unchanged.
// They are distinct from validation findings, which are collected as data
// after the model is fully built.
const (
	ErrDuplicateComponent = "B101" // component name already used in composition
	ErrDuplicatePort      = "B102" // port name already used on component
	ErrDuplicateRunnable  = "B103" // runnable name already used on component
	ErrUnknownPort        = "B104" // interface references a port that does not exist
	ErrInvalidDirection   = "B105" // port direction not sender/receiver
	ErrInvalidTrigger     = "B106" // trigger not periodic/event-based
	ErrInvalidInterface   = "B107" // interface kind not clientServer/senderReceiver
	ErrUnexpectedPeriod   = "B108" // period set on an event-based runnable
)

// BuildError reports a violated construction invariant.
type BuildError struct {
	Code      string `json:"code"`
	Component string `json:"component,omitempty"` // owning component, if any
	Detail    string `json:"detail"`
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("[%s] component %q: %s", e.Code, e.Component, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Detail)
}
