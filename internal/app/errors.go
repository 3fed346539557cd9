package app

import "fmt"

// InvalidConnectionError is returned when a named connection is not configured.
type InvalidConnectionError struct {
	Name   string
	Reason string
}

func (e *InvalidConnectionError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("%q is not a valid connection name", e.Name)
}

// TruncateFailedError reports the first table that could not be truncated.
// Other tables may already have been cleared; nothing is rolled back.
type TruncateFailedError struct {
	Table string
	Err   error
}

func (e *TruncateFailedError) Error() string {
	return fmt.Sprintf("failed to truncate %s: %v", e.Table, e.Err)
}

func (e *TruncateFailedError) Unwrap() error {
	return e.Err
}
