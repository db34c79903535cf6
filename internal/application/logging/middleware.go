package logging

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/andrescamacho/craftreq/internal/application/mediator"
)

// Middleware logs every command and query with its duration and outcome
func Middleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("ERROR", "request failed", metadata)
		} else {
			logger.Log("DEBUG", "request handled", metadata)
		}
		return response, err
	}
}

// RequestName reduces "*queries.CheckCraftabilityQuery" to "CheckCraftabilityQuery"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
