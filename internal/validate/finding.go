package validate

import "fmt"

// Finding codes (V100-V199).
const (
	// Per-component structural findings (V101-V109)
	ErrNoPorts           = "V101" // component exposes no ports
	ErrPeriodMissing     = "V102" // periodic runnable without a period
	ErrDuplicateRunnable = "V103" // duplicate runnable name (defensive)

	// Connection findings (V110-V119)
	ErrUnmatchedSender   = "V110" // sender port with no matching receiver
	ErrUnmatchedReceiver = "V111" // receiver port with no matching sender

	// Topology findings (V120-V129)
	ErrDependencyCycle = "V120" // circular dependency between components
)

// Category groups findings by the check that produced them.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryConnection Category = "connection"
	CategoryTopology   Category = "topology"
)

// Finding is one reported validation issue. Findings are data, never
// errors: a composition may have many simultaneous issues and validation
// reports all of them. All findings are error severity.
type Finding struct {
	Code      string   `json:"code"`
	Category  Category `json:"category"`
	Component string   `json:"component"`
	Detail    string   `json:"detail"`
}

// String renders the finding as a single report line.
func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Code, f.Category, f.Detail)
}
