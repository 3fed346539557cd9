// Package truncation contains the pure business logic for truncation runs.
// This is part of the Functional Core - no I/O, only pure functions.
package truncation

import "fmt"

// SafetyContext provides context for the production safety guard.
type SafetyContext struct {
	InProduction bool
	Force        bool
}

// NeedsConsent reports whether the operator must confirm before tables
// are truncated.
// Rule: production runs without --force need an explicit yes.
func NeedsConsent(ctx SafetyContext) bool {
	return ctx.InProduction && !ctx.Force
}

// ConnectionContext provides context for the connection guard.
// Populated by the caller from the connection registry.
type ConnectionContext struct {
	Name   string
	Exists bool
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanTruncateConnection evaluates whether a connection can be truncated.
// Rule: the connection must be configured.
func CanTruncateConnection(ctx ConnectionContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%q is not a valid connection name. Double check \"database.connections\" in lucid.yaml", ctx.Name),
		}
	}
	return GuardResult{Allowed: true}
}
