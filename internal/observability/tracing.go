// Package observability wires OpenTelemetry trace export into Genkit's
// tracer provider. Genkit already creates spans for every generate call,
// tool invocation, and flow run; this package only attaches an OTLP HTTP
// exporter so those spans leave the process.
//
// Export is opt-in: with no endpoint configured the service runs without a
// span processor and tracing stays local to the Genkit developer UI.
package observability

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/core/tracing"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/marmalade-labs/banter/internal/log"
)

// Config for trace export.
type Config struct {
	// Endpoint is the OTLP HTTP host:port, e.g. "localhost:4318".
	// Empty disables export.
	Endpoint string
	// ServiceName tags exported spans; shown in the tracing backend.
	ServiceName string
}

// Setup attaches an OTLP exporter to Genkit's tracer provider and returns
// a shutdown function that flushes pending spans. Export failures at setup
// time are logged, not fatal: the chat service works fine without traces.
func Setup(ctx context.Context, cfg Config, logger log.Logger) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if cfg.Endpoint == "" {
		return noop, nil
	}

	// Genkit's TracerProvider reads the service name from the standard
	// OTEL environment variable.
	if cfg.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("failed to create trace exporter, tracing disabled", "error", err)
		return noop, nil
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("trace export enabled",
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
	)

	return tracing.TracerProvider().Shutdown, nil
}
