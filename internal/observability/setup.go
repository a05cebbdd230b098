package observability

import (
	"context"

	"github.com/honeynil/employer-dashboard/internal/config"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/observability"
)

// Setup wires logs, metrics and traces and returns the tracer shutdown hook.
func Setup(serviceName string, cfg *config.Config) func(context.Context) error {
	observability.InitLogger()
	observability.InitMetrics(cfg.MetricsAddr)
	return observability.InitTracing(serviceName, cfg.OTLPEndpoint)
}
