// Package otel provides OpenTelemetry tracer provider initialization and management.
package otel

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/mrzor/lilium-tools/internal/config"
	"github.com/mrzor/lilium-tools/internal/procmeta"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// InitProvider builds a tracer provider whose resource describes the
// running process. Spans are only exported when cfg.Trace is set, in which
// case each finished span is written to spans as one JSON object per line.
// Extra options are applied last, after the resource and exporter.
func InitProvider(cfg *config.Config, md *procmeta.ProcessMetadata, logger *log.Logger, spans io.Writer, opts ...sdktrace.TracerProviderOption) (*sdktrace.TracerProvider, error) {
	serviceName := cfg.OTEL.GetServiceName(md.Program)

	if cfg.Debug {
		logger.Printf("OTEL Configuration:")
		logger.Printf("  Service Name: %s", serviceName)
		logger.Printf("  Span Logging: %t", cfg.Trace)
		if cfg.OTEL.ResourceAttributes != "" {
			logger.Printf("  Resource Attributes: %s", cfg.OTEL.ResourceAttributes)
		}
	}

	// Build resource attributes
	resourceAttrs := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ProcessExecutableName(md.Program),
		),
	}
	if len(md.Args) > 0 {
		resourceAttrs = append(resourceAttrs, resource.WithAttributes(semconv.ProcessCommandArgs(md.Args...)))
	}

	// Add custom resource attributes from environment
	customAttrs := cfg.OTEL.ParseResourceAttributes()
	if len(customAttrs) > 0 {
		resourceAttrs = append(resourceAttrs, resource.WithAttributes(customAttrs...))
	}

	res, err := resource.New(context.Background(), resourceAttrs...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(spans))
		if err != nil {
			return nil, fmt.Errorf("failed to create span exporter: %w", err)
		}
		// Synchronous export: tools exit right after main returns.
		tpOpts = append(tpOpts, sdktrace.WithSyncer(exporter))
	}
	tpOpts = append(tpOpts, opts...)

	return sdktrace.NewTracerProvider(tpOpts...), nil
}

// ShutdownProvider gracefully shuts down the tracer provider, flushing any remaining spans.
func ShutdownProvider(tp *sdktrace.TracerProvider, ctx context.Context) error {
	if tp == nil {
		return nil
	}

	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	return nil
}
