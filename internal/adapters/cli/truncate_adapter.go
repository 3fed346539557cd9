package cli

import (
	"context"

	"github.com/abelorian/lucid/internal/ports/primary"
	"github.com/abelorian/lucid/internal/ui"
)

// SuccessMessage is printed once after a connection has been truncated.
const SuccessMessage = "Truncated tables successfully"

// TruncateAdapter translates db-truncate and db-wipe to Truncator calls.
type TruncateAdapter struct {
	service primary.Truncator
	ui      *ui.Printer
}

// NewTruncateAdapter creates a new TruncateAdapter.
func NewTruncateAdapter(service primary.Truncator, printer *ui.Printer) *TruncateAdapter {
	return &TruncateAdapter{
		service: service,
		ui:      printer,
	}
}

// Truncate clears one connection as the top-level command.
func (a *TruncateAdapter) Truncate(ctx context.Context, connection string, force bool) error {
	result, err := a.service.Truncate(ctx, primary.TruncateRequest{
		Connection: connection,
		Force:      force,
		Mode:       primary.TopLevel,
	})
	if err != nil {
		return err
	}
	if result.Decision == primary.Proceed {
		a.ui.Success(SuccessMessage)
	}
	return nil
}

// Wipe clears every configured connection.
func (a *TruncateAdapter) Wipe(ctx context.Context, force bool) error {
	results, err := a.service.TruncateAll(ctx, primary.TruncateAllRequest{Force: force})
	done := results
	if err != nil && len(done) > 0 {
		// the last result is the connection that failed
		done = done[:len(done)-1]
	}
	for _, r := range done {
		if r.Decision == primary.Proceed && r.Connection != "" {
			a.ui.Success("%s on %q", SuccessMessage, r.Connection)
		}
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		a.ui.Info("No connections configured")
	}
	return nil
}
