// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives the application.
package primary

import "context"

// Mode tells a workflow whether it owns the process lifecycle.
type Mode int

const (
	// TopLevel runs as the entry point and tears down connections when done.
	TopLevel Mode = iota
	// SubStep runs inside another workflow and leaves connections open.
	SubStep
)

func (m Mode) String() string {
	if m == SubStep {
		return "sub-step"
	}
	return "top-level"
}

// SafetyDecision is the outcome of the production safety gate.
type SafetyDecision int

const (
	Proceed SafetyDecision = iota
	AbortSilently
	AbortWithDiagnostic
)

func (d SafetyDecision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case AbortSilently:
		return "abort-silently"
	case AbortWithDiagnostic:
		return "abort-with-diagnostic"
	default:
		return "unknown"
	}
}

// Truncator defines the primary port for clearing database tables.
type Truncator interface {
	// Truncate clears every non-bookkeeping table on one connection.
	Truncate(ctx context.Context, req TruncateRequest) (*TruncateResult, error)

	// TruncateAll clears every configured connection as sub-steps, then
	// tears the registry down once.
	TruncateAll(ctx context.Context, req TruncateAllRequest) ([]*TruncateResult, error)
}

// TruncateRequest contains parameters for a truncation run.
type TruncateRequest struct {
	// Connection names the target; empty means the primary connection.
	Connection string
	// Force skips the production confirmation.
	Force bool
	Mode  Mode
}

// TruncateAllRequest contains parameters for truncating every connection.
type TruncateAllRequest struct {
	Force bool
}

// TruncateResult reports what a truncation run did.
type TruncateResult struct {
	Connection string
	Decision   SafetyDecision
	Truncated  []string
	Skipped    []string
	TornDown   bool
}
