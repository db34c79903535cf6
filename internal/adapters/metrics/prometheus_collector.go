package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

const (
	// Namespace for all metrics
	namespace = "craftreq"
	// Subsystem for engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalCraftingCollector is the singleton crafting metrics collector
	// Set by SetGlobalCraftingCollector() when metrics are enabled
	globalCraftingCollector CraftingMetricsRecorder
)

// CraftingMetricsRecorder defines the interface for recording engine outcomes
// This interface is used by application code to record metrics
type CraftingMetricsRecorder interface {
	RecordCraftability(canCraft bool, downgrades []crafting.Downgrade)
	RecordSuccessEstimate(gateMet bool, probability float64)
	RecordDiagnostics(diagnostics []crafting.Diagnostic)
	RecordDeclarationImport(loaded, failed, discarded int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalCraftingCollector sets the global crafting metrics collector
func SetGlobalCraftingCollector(collector CraftingMetricsRecorder) {
	globalCraftingCollector = collector
}

// RecordCraftability records one craftability evaluation globally
func RecordCraftability(canCraft bool, downgrades []crafting.Downgrade) {
	if globalCraftingCollector != nil {
		globalCraftingCollector.RecordCraftability(canCraft, downgrades)
	}
}

// RecordSuccessEstimate records one success estimate globally
func RecordSuccessEstimate(gateMet bool, probability float64) {
	if globalCraftingCollector != nil {
		globalCraftingCollector.RecordSuccessEstimate(gateMet, probability)
	}
}

// RecordDiagnostics records declaration diagnostics globally
func RecordDiagnostics(diagnostics []crafting.Diagnostic) {
	if globalCraftingCollector != nil {
		globalCraftingCollector.RecordDiagnostics(diagnostics)
	}
}

// RecordDeclarationImport records the outcome of a declaration import globally
func RecordDeclarationImport(loaded, failed, discarded int) {
	if globalCraftingCollector != nil {
		globalCraftingCollector.RecordDeclarationImport(loaded, failed, discarded)
	}
}
