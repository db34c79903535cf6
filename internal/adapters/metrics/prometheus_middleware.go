package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/craftreq/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// This middleware wraps all command/query execution and records:
// - Execution duration (histogram)
// - Success/failure counts (counter)
//
// Request names are reduced to the bare type name, e.g. "*queries.CheckCraftabilityQuery"
// is recorded as "CheckCraftabilityQuery".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
