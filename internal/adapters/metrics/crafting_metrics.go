package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// CraftingMetricsCollector handles requirement engine metrics
type CraftingMetricsCollector struct {
	evaluationsTotal   *prometheus.CounterVec
	downgradesTotal    *prometheus.CounterVec
	successProbability *prometheus.HistogramVec
	diagnosticsTotal   *prometheus.CounterVec
	declarationsTotal  *prometheus.CounterVec
}

// NewCraftingMetricsCollector creates a new crafting metrics collector
func NewCraftingMetricsCollector() *CraftingMetricsCollector {
	return &CraftingMetricsCollector{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of craftability evaluations by verdict",
			},
			[]string{"verdict"},
		),

		downgradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "reconciliation_downgrades_total",
				Help:      "Component alternatives downgraded to insufficient by reason",
			},
			[]string{"reason"},
		),

		successProbability: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "success_probability",
				Help:      "Distribution of compound success probabilities",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 0.99, 1.0},
			},
			[]string{"gate"},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "diagnostics_total",
				Help:      "Declaration diagnostics by kind",
			},
			[]string{"kind"},
		),

		declarationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "declarations_imported_total",
				Help:      "Imported declarations by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Register registers all crafting metrics with the Prometheus registry
func (c *CraftingMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.evaluationsTotal,
		c.downgradesTotal,
		c.successProbability,
		c.diagnosticsTotal,
		c.declarationsTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCraftability records the verdict and every reconciliation downgrade
func (c *CraftingMetricsCollector) RecordCraftability(canCraft bool, downgrades []crafting.Downgrade) {
	c.evaluationsTotal.WithLabelValues(strconv.FormatBool(canCraft)).Inc()
	for _, d := range downgrades {
		c.downgradesTotal.WithLabelValues(string(d.Reason)).Inc()
	}
}

// RecordSuccessEstimate records the compound probability, labelled by the skill gate
func (c *CraftingMetricsCollector) RecordSuccessEstimate(gateMet bool, probability float64) {
	gate := "met"
	if !gateMet {
		gate = "blocked"
	}
	c.successProbability.WithLabelValues(gate).Observe(probability)
}

// RecordDiagnostics counts diagnostics per kind
func (c *CraftingMetricsCollector) RecordDiagnostics(diagnostics []crafting.Diagnostic) {
	for _, d := range diagnostics {
		c.diagnosticsTotal.WithLabelValues(string(d.Kind)).Inc()
	}
}

// RecordDeclarationImport counts the declarations of one import by outcome
func (c *CraftingMetricsCollector) RecordDeclarationImport(loaded, failed, discarded int) {
	c.declarationsTotal.WithLabelValues("loaded").Add(float64(loaded))
	c.declarationsTotal.WithLabelValues("failed").Add(float64(failed))
	c.declarationsTotal.WithLabelValues("discarded").Add(float64(discarded))
}
