package monitoring

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/minervahq/minerva/internal/config"
	"github.com/minervahq/minerva/pkg/constants"
	"github.com/minervahq/minerva/pkg/logger"
)

// InitTracer sets up the global OpenTelemetry tracer provider with a Jaeger
// exporter. It returns a shutdown func that flushes pending spans. When
// tracing is disabled the returned shutdown is a no-op and the global
// provider stays at its default.
func InitTracer(cfg *config.TracingConfig, log logger.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		log.Info(context.Background(), "tracing is disabled")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(cfg.JaegerEndpoint),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(constants.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SamplingRate)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info(context.Background(), "tracing initialized", logger.Fields{
		"endpoint":      cfg.JaegerEndpoint,
		"sampling_rate": cfg.SamplingRate,
	})

	return provider.Shutdown, nil
}
