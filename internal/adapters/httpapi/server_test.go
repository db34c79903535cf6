package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/httpapi"
	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/application/setup"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
	"github.com/andrescamacho/craftreq/test/helpers"
)

func newTestServer(t *testing.T, rps float64, burst int) *httptest.Server {
	t.Helper()
	inventories := helpers.NewMockInventoryRepository()
	require.NoError(t, inventories.Save(context.Background(), "workshop", []inventory.Stack{
		{Type: "hammer", Units: 1}, {Type: "saw", Units: 1},
		{Type: "plank", Units: 4}, {Type: "nail", Units: 4},
	}))
	actors := helpers.NewMockActorRepository(helpers.Crafter(t, "smith", map[string]int{"fabrication": 3}))

	m := mediator.NewMediator()
	registry := setup.NewHandlerRegistry(
		helpers.NewMockDeclarationRepository(helpers.BookshelfDeclaration(t)),
		inventories,
		actors,
		helpers.NewMockEvaluationLog(),
		crafting.NewEngine(helpers.WorkshopCatalog(t)),
	)
	require.NoError(t, registry.RegisterCraftingHandlers(m))

	srv, err := httpapi.NewServer(httpapi.Config{Mediator: m, RequestsPerSecond: rps, Burst: burst})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestCheck_ReportsMissingGroups(t *testing.T) {
	// Arrange
	ts := newTestServer(t, 0, 0)

	// Act
	resp, body := post(t, ts.URL+"/v1/check", `{"declaration_id":"bookshelf","inventory_id":"workshop"}`)

	// Assert
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["can_craft"])
	missing := body["missing"].([]any)
	require.Len(t, missing, 1)
	group := missing[0].(map[string]any)
	assert.Equal(t, "components", group["category"])
	alt := group["alternatives"].([]any)[0].(map[string]any)
	assert.Equal(t, "nail", alt["key"])
	assert.Equal(t, "unavailable", alt["availability"])
}

func TestChance_ReturnsProbabilityAndTiers(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	resp, body := post(t, ts.URL+"/v1/chance", `{"declaration_id":"bookshelf","actor_id":"smith"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["gate_met"])
	assert.InDelta(t, 0.5, body["probability"].(float64), 1e-9)
	skill := body["skills"].([]any)[0].(map[string]any)
	assert.Equal(t, "full", skill["tier"])
	assert.Equal(t, "level 3 fabrication", skill["description"])
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown declaration", "/v1/check", `{"declaration_id":"table","inventory_id":"workshop"}`, http.StatusNotFound},
		{"missing inventory", "/v1/check", `{"declaration_id":"bookshelf"}`, http.StatusBadRequest},
		{"unknown field", "/v1/check", `{"declaration":"bookshelf"}`, http.StatusBadRequest},
		{"negative batch", "/v1/check", `{"declaration_id":"bookshelf","inventory_id":"workshop","batch":-1}`, http.StatusBadRequest},
		{"oversized batch", "/v1/check", `{"declaration_id":"bookshelf","inventory_id":"workshop","batch":4611686018427387904}`, http.StatusBadRequest},
		{"unknown actor", "/v1/chance", `{"declaration_id":"bookshelf","actor_id":"ghost"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, 0.001, 1)

	first, _ := post(t, ts.URL+"/v1/check", `{"declaration_id":"bookshelf","inventory_id":"workshop"}`)
	second, _ := post(t, ts.URL+"/v1/check", `{"declaration_id":"bookshelf","inventory_id":"workshop"}`)

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}

func TestEvaluationsHistory(t *testing.T) {
	ts := newTestServer(t, 0, 0)
	post(t, ts.URL+"/v1/check", `{"declaration_id":"bookshelf","inventory_id":"workshop"}`)

	resp, err := http.Get(ts.URL + "/v1/declarations/bookshelf/evaluations")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body["evaluations"].([]any), 1)
}

func TestHandler_ServesMetricsWhenEnabled(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(func() {
		metrics.Registry = nil
		metrics.SetGlobalCraftingCollector(nil)
	})
	collector := metrics.NewCraftingMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalCraftingCollector(collector)

	srv, err := httpapi.NewServer(httpapi.Config{Mediator: mediator.NewMediator(), MetricsPath: "/metrics"})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	metrics.RecordCraftability(true, nil)

	// Act
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `craftreq_engine_evaluations_total{verdict="true"} 1`)
}

func TestNewServer_RequiresMediator(t *testing.T) {
	_, err := httpapi.NewServer(httpapi.Config{})
	assert.Error(t, err)
}
