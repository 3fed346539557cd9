package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelorian/lucid/internal/ports/primary"
)

var defaultExclude = []string{"adonis_schema", "adonis_schema_versions"}

func newTestTruncateService(registry *mockRegistry, prompter *mockPrompter, inProduction bool) *TruncateService {
	return NewTruncateService(registry, prompter, nil, TruncateConfig{
		InProduction:  inProduction,
		Schemas:       []string{"public"},
		ExcludeTables: defaultExclude,
	})
}

func TestTruncate_FiltersExcludedTables(t *testing.T) {
	client := newMockClient("public.users", "public.posts", "adonis_schema")
	registry := newMockRegistry("pg").withClient("pg", client)
	service := newTestTruncateService(registry, &mockPrompter{}, false)

	result, err := service.Truncate(context.Background(), primary.TruncateRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"posts", "users"}, client.truncatedSorted())
	assert.Equal(t, []string{"posts", "users"}, result.Truncated)
	assert.Equal(t, []string{"adonis_schema"}, result.Skipped)
	assert.Equal(t, []string{"public"}, client.schemas)
	for _, cascade := range client.cascades {
		assert.True(t, cascade)
	}
}

func TestTruncate_ExclusionComparesUnqualifiedName(t *testing.T) {
	client := newMockClient("public.adonis_schema_versions", "audit.adonis_schema", "audit.events")
	registry := newMockRegistry("pg").withClient("pg", client)
	service := newTestTruncateService(registry, &mockPrompter{}, false)

	result, err := service.Truncate(context.Background(), primary.TruncateRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"audit.events"}, client.truncatedSorted())
	assert.ElementsMatch(t, []string{"adonis_schema_versions", "audit.adonis_schema"}, result.Skipped)
}

func TestTruncate_UsesPrimaryConnectionByDefault(t *testing.T) {
	primaryClient := newMockClient("users")
	otherClient := newMockClient("users")
	registry := newMockRegistry("pg").
		withClient("pg", primaryClient).
		withClient("mysql", otherClient)
	service := newTestTruncateService(registry, &mockPrompter{}, false)

	result, err := service.Truncate(context.Background(), primary.TruncateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "pg", result.Connection)
	assert.Equal(t, []string{"users"}, primaryClient.truncatedSorted())
	assert.Empty(t, otherClient.truncatedSorted())

	result, err = service.Truncate(context.Background(), primary.TruncateRequest{Connection: "mysql"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", result.Connection)
	assert.Equal(t, []string{"users"}, otherClient.truncatedSorted())
}

func TestTruncate_SafetyGate(t *testing.T) {
	tests := []struct {
		name         string
		inProduction bool
		force        bool
		prompter     *mockPrompter
		wantDecision primary.SafetyDecision
		wantPrompted bool
	}{
		{
			name:         "development proceeds without prompting",
			wantDecision: primary.Proceed,
		},
		{
			name:         "production with force proceeds without prompting",
			inProduction: true,
			force:        true,
			wantDecision: primary.Proceed,
		},
		{
			name:         "production confirmed",
			inProduction: true,
			prompter:     &mockPrompter{answer: true},
			wantDecision: primary.Proceed,
			wantPrompted: true,
		},
		{
			name:         "production declined",
			inProduction: true,
			prompter:     &mockPrompter{answer: false},
			wantDecision: primary.AbortSilently,
			wantPrompted: true,
		},
		{
			name:         "production prompt error counts as decline",
			inProduction: true,
			prompter:     &mockPrompter{answer: true, err: errors.New("stdin closed")},
			wantDecision: primary.AbortSilently,
			wantPrompted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompter := tt.prompter
			if prompter == nil {
				prompter = &mockPrompter{}
			}
			client := newMockClient("users")
			registry := newMockRegistry("pg").withClient("pg", client)
			service := newTestTruncateService(registry, prompter, tt.inProduction)

			result, err := service.Truncate(context.Background(), primary.TruncateRequest{Force: tt.force})
			require.NoError(t, err)

			assert.Equal(t, tt.wantDecision, result.Decision)
			if tt.wantPrompted {
				assert.Equal(t, []string{ProductionQuestion}, prompter.questions)
			} else {
				assert.Empty(t, prompter.questions)
			}
			if tt.wantDecision == primary.Proceed {
				assert.Equal(t, []string{"users"}, client.truncatedSorted())
			} else {
				assert.Empty(t, client.truncatedSorted())
				assert.Empty(t, registry.connections)
			}
		})
	}
}

func TestTruncate_InvalidConnection(t *testing.T) {
	registry := newMockRegistry("pg").withClient("pg", newMockClient("users"))
	service := newTestTruncateService(registry, &mockPrompter{}, false)

	result, err := service.Truncate(context.Background(), primary.TruncateRequest{Connection: "nope"})

	var invalid *InvalidConnectionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "nope", invalid.Name)
	assert.Contains(t, err.Error(), `"nope"`)
	assert.Equal(t, primary.AbortWithDiagnostic, result.Decision)
	assert.Empty(t, registry.connections)
}

func TestTruncate_SafetyGateRunsBeforeExistenceCheck(t *testing.T) {
	registry := newMockRegistry("pg")
	prompter := &mockPrompter{answer: false}
	service := newTestTruncateService(registry, prompter, true)

	result, err := service.Truncate(context.Background(), primary.TruncateRequest{Connection: "nope"})

	require.NoError(t, err)
	assert.Equal(t, primary.AbortSilently, result.Decision)
	assert.Len(t, prompter.questions, 1)
}

func TestTruncate_FailureReportsTableAndAwaitsAll(t *testing.T) {
	client := newMockClient("users", "posts", "comments")
	client.failOn["posts"] = errors.New("permission denied")
	registry := newMockRegistry("pg").withClient("pg", client)
	service := newTestTruncateService(registry, &mockPrompter{}, false)

	result, err := service.Truncate(context.Background(), primary.TruncateRequest{})

	var failed *TruncateFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "posts", failed.Table)
	assert.ErrorContains(t, err, "permission denied")
	assert.Equal(t, []string{"comments", "users"}, client.truncatedSorted())
	assert.Equal(t, []string{"comments", "users"}, result.Truncated)
}

func TestTruncate_DiscoveryError(t *testing.T) {
	client := newMockClient()
	client.tablesErr = errors.New("connection refused")
	registry := newMockRegistry("pg").withClient("pg", client)
	service := newTestTruncateService(registry, &mockPrompter{}, false)

	_, err := service.Truncate(context.Background(), primary.TruncateRequest{})
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, []bool{true}, registry.closeCalls)
}

func TestTruncate_Teardown(t *testing.T) {
	tests := []struct {
		name         string
		mode         primary.Mode
		connection   string
		inProduction bool
		wantClose    []bool
	}{
		{name: "top-level success", mode: primary.TopLevel, wantClose: []bool{true}},
		{name: "top-level declined", mode: primary.TopLevel, inProduction: true, wantClose: []bool{true}},
		{name: "top-level invalid connection", mode: primary.TopLevel, connection: "nope", wantClose: []bool{true}},
		{name: "sub-step success", mode: primary.SubStep},
		{name: "sub-step declined", mode: primary.SubStep, inProduction: true},
		{name: "sub-step invalid connection", mode: primary.SubStep, connection: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newMockRegistry("pg").withClient("pg", newMockClient("users"))
			service := newTestTruncateService(registry, &mockPrompter{answer: false}, tt.inProduction)

			result, _ := service.Truncate(context.Background(), primary.TruncateRequest{
				Connection: tt.connection,
				Mode:       tt.mode,
			})

			assert.Equal(t, tt.wantClose, registry.closeCalls)
			assert.Equal(t, tt.mode == primary.TopLevel, result.TornDown)
		})
	}
}

func TestTruncateAll(t *testing.T) {
	pg := newMockClient("public.users")
	mysql := newMockClient("orders", "adonis_schema")
	registry := newMockRegistry("pg").
		withClient("pg", pg).
		withClient("mysql", mysql)
	prompter := &mockPrompter{answer: true}
	service := newTestTruncateService(registry, prompter, true)

	results, err := service.TruncateAll(context.Background(), primary.TruncateAllRequest{})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "mysql", results[0].Connection)
	assert.Equal(t, "pg", results[1].Connection)
	for _, r := range results {
		assert.False(t, r.TornDown)
	}
	assert.Equal(t, []string{"orders"}, mysql.truncatedSorted())
	assert.Equal(t, []string{"users"}, pg.truncatedSorted())
	assert.Len(t, prompter.questions, 1)
	assert.Equal(t, []bool{true}, registry.closeCalls)
}

func TestTruncateAll_Declined(t *testing.T) {
	pg := newMockClient("users")
	registry := newMockRegistry("pg").withClient("pg", pg)
	service := newTestTruncateService(registry, &mockPrompter{answer: false}, true)

	results, err := service.TruncateAll(context.Background(), primary.TruncateAllRequest{})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, primary.AbortSilently, results[0].Decision)
	assert.Empty(t, pg.truncatedSorted())
	assert.Equal(t, []bool{true}, registry.closeCalls)
}

func TestTruncateAll_StopsAtFirstFailedConnection(t *testing.T) {
	a := newMockClient("users")
	a.failOn["users"] = errors.New("locked")
	b := newMockClient("users")
	registry := newMockRegistry("a").withClient("a", a).withClient("b", b)
	service := newTestTruncateService(registry, &mockPrompter{}, false)

	results, err := service.TruncateAll(context.Background(), primary.TruncateAllRequest{})

	var failed *TruncateFailedError
	require.ErrorAs(t, err, &failed)
	assert.Len(t, results, 1)
	assert.Empty(t, b.truncatedSorted())
	assert.Equal(t, []bool{true}, registry.closeCalls)
}
