package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector handles command and query execution metrics
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Command and query execution duration distribution",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"command", "status"},
		),

		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Total number of commands and queries handled by type and status",
			},
			[]string{"command", "status"},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.commandDuration,
		c.commandsTotal,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordCommandExecution records command execution metrics
func (c *CommandMetricsCollector) RecordCommandExecution(
	commandName string,
	duration float64,
	success bool,
) {
	status := "success"
	if !success {
		status = "error"
	}

	c.commandDuration.WithLabelValues(commandName, status).Observe(duration)

	c.commandsTotal.WithLabelValues(commandName, status).Inc()
}
