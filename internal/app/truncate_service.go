package app

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abelorian/lucid/internal/core/truncation"
	"github.com/abelorian/lucid/internal/ports/primary"
	"github.com/abelorian/lucid/internal/ports/secondary"
)

// ProductionQuestion is asked before truncating in production without --force.
const ProductionQuestion = "You are in production environment. Want to continue truncating the database?"

// TruncateConfig holds the settings the truncation workflow reads.
type TruncateConfig struct {
	InProduction  bool
	Schemas       []string
	ExcludeTables []string
}

// TruncateService implements the Truncator interface.
type TruncateService struct {
	registry     secondary.ConnectionRegistry
	prompter     secondary.Prompter
	logger       *zap.Logger
	inProduction bool
	schemas      []string
	exclude      []string
}

var _ primary.Truncator = (*TruncateService)(nil)

// NewTruncateService creates a new TruncateService with injected dependencies.
func NewTruncateService(
	registry secondary.ConnectionRegistry,
	prompter secondary.Prompter,
	logger *zap.Logger,
	cfg TruncateConfig,
) *TruncateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	schemas := cfg.Schemas
	if len(schemas) == 0 {
		schemas = []string{"public"}
	}
	return &TruncateService{
		registry:     registry,
		prompter:     prompter,
		logger:       logger,
		inProduction: cfg.InProduction,
		schemas:      schemas,
		exclude:      cfg.ExcludeTables,
	}
}

// Truncate clears every non-excluded table on one connection. In TopLevel
// mode the registry is closed on return, whatever the outcome.
func (s *TruncateService) Truncate(ctx context.Context, req primary.TruncateRequest) (result *primary.TruncateResult, err error) {
	name := req.Connection
	if name == "" {
		name = s.registry.PrimaryConnectionName()
	}
	result = &primary.TruncateResult{Connection: name}
	log := s.logger.With(zap.String("connection", name), zap.Stringer("mode", req.Mode))

	if req.Mode == primary.TopLevel {
		defer func() {
			if closeErr := s.registry.CloseAll(true); closeErr != nil {
				log.Warn("failed to close connections", zap.Error(closeErr))
			}
			result.TornDown = true
		}()
	}

	result.Decision = s.safetyGate(log, req.Force)
	if result.Decision != primary.Proceed {
		log.Info("truncation cancelled")
		return result, nil
	}

	guard := truncation.CanTruncateConnection(truncation.ConnectionContext{
		Name:   name,
		Exists: s.registry.Has(name),
	})
	if !guard.Allowed {
		result.Decision = primary.AbortWithDiagnostic
		return result, &InvalidConnectionError{Name: name, Reason: guard.Reason}
	}

	return s.truncateConnection(ctx, log, name, result)
}

// TruncateAll asks for production consent once, clears every configured
// connection as a sub-step and then closes the registry.
func (s *TruncateService) TruncateAll(ctx context.Context, req primary.TruncateAllRequest) ([]*primary.TruncateResult, error) {
	defer func() {
		if err := s.registry.CloseAll(true); err != nil {
			s.logger.Warn("failed to close connections", zap.Error(err))
		}
	}()

	if decision := s.safetyGate(s.logger, req.Force); decision != primary.Proceed {
		s.logger.Info("wipe cancelled")
		return []*primary.TruncateResult{{Decision: decision}}, nil
	}

	var results []*primary.TruncateResult
	for _, name := range s.registry.Names() {
		result, err := s.Truncate(ctx, primary.TruncateRequest{
			Connection: name,
			Force:      true,
			Mode:       primary.SubStep,
		})
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// safetyGate decides whether a destructive run may go ahead. A prompt
// that cannot be answered counts as a refusal.
func (s *TruncateService) safetyGate(log *zap.Logger, force bool) primary.SafetyDecision {
	if !truncation.NeedsConsent(truncation.SafetyContext{InProduction: s.inProduction, Force: force}) {
		return primary.Proceed
	}

	ok, err := s.prompter.Confirm(ProductionQuestion)
	if err != nil {
		log.Debug("production consent prompt failed", zap.Error(err))
		return primary.AbortSilently
	}
	if !ok {
		return primary.AbortSilently
	}
	return primary.Proceed
}

func (s *TruncateService) truncateConnection(
	ctx context.Context,
	log *zap.Logger,
	name string,
	result *primary.TruncateResult,
) (*primary.TruncateResult, error) {
	client, err := s.registry.Connection(name)
	if err != nil {
		return result, err
	}

	tables, err := client.GetAllTables(ctx, s.schemas)
	if err != nil {
		return result, err
	}

	plan := truncation.GeneratePlan(truncation.PlanInput{
		Tables:     tables,
		Namespaces: s.schemas,
		Exclude:    s.exclude,
	})
	result.Skipped = plan.Skip
	log.Debug("discovered tables", zap.Int("tables", len(tables)), zap.Strings("skipped", plan.Skip))

	var (
		mu        sync.Mutex
		truncated []string
		g         errgroup.Group
	)
	for _, table := range plan.Truncate {
		table := table
		g.Go(func() error {
			if err := client.Truncate(ctx, table, true); err != nil {
				return &TruncateFailedError{Table: table, Err: err}
			}
			mu.Lock()
			truncated = append(truncated, table)
			mu.Unlock()
			return nil
		})
	}
	err = g.Wait()

	sort.Strings(truncated)
	result.Truncated = truncated
	if err != nil {
		log.Error("truncation failed", zap.Error(err), zap.Int("truncated", len(truncated)))
		return result, err
	}

	log.Info("truncated tables", zap.Int("count", len(truncated)))
	return result, nil
}
