package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Exporter kinds accepted by New
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Config selects where spans are sent
type Config struct {
	ServiceName string
	Exporter    string
	// Endpoint is the OTLP gRPC collector address, used with ExporterOTLP
	Endpoint string
	// Writer receives spans with ExporterStdout
	Writer io.Writer
}

// New builds a Tracer for the configured exporter
func New(ctx context.Context, cfg Config) (Tracer, error) {
	var (
		exporter trace.SpanExporter
		err      error
	)

	switch cfg.Exporter {
	case "", ExporterNone:
		return NewNoopTracer(), nil

	case ExporterStdout:
		opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
		if cfg.Writer != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.Writer))
		}
		exporter, err = stdouttrace.New(opts...)

	case ExporterOTLP:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)

	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", cfg.Exporter)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s exporter: %w", cfg.Exporter, err)
	}

	return NewTracer(cfg.ServiceName, exporter), nil
}
