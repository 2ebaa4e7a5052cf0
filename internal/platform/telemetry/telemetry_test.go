package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/jsamuelsen11/go-mail-relay/internal/platform/telemetry"
)

func TestInitTracer(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "relay-test", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitTracer(stdout) error = %v", err)
	}
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	if len(otel.GetTextMapPropagator().Fields()) == 0 {
		t.Error("global propagator has no fields, want trace context and baggage")
	}
}

func TestInitTracer_OTLP(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "relay-test", telemetry.ExporterOTLP, "http://localhost:4318")
	if err != nil {
		t.Fatalf("InitTracer(otlp) error = %v", err)
	}
	// No collector runs in unit tests, so the flush may fail.
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })
}

func TestInit_RejectsBadExporter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tests := []struct {
		name     string
		exporter string
		endpoint string
	}{
		{"unknown exporter", "zipkin", ""},
		{"otlp without endpoint", telemetry.ExporterOTLP, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := telemetry.InitTracer(ctx, "relay-test", tt.exporter, tt.endpoint); err == nil {
				t.Error("InitTracer error = nil, want error")
			}
			if _, err := telemetry.InitMeter(ctx, "relay-test", tt.exporter, tt.endpoint); err == nil {
				t.Error("InitMeter error = nil, want error")
			}
		})
	}
}

func TestInitMeter(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, "relay-test", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitMeter(stdout) error = %v", err)
	}
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })
}

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewMetrics(mp, "relay-test")
	if err != nil {
		t.Fatalf("NewMetrics error = %v", err)
	}

	instruments := map[string]any{
		"ServerRequestDuration": m.ServerRequestDuration,
		"ServerRequestTotal":    m.ServerRequestTotal,
		"ClientRequestDuration": m.ClientRequestDuration,
		"ClientRequestTotal":    m.ClientRequestTotal,
		"DeliveryDuration":      m.DeliveryDuration,
		"DeliveryTotal":         m.DeliveryTotal,
	}
	for name, inst := range instruments {
		if inst == nil {
			t.Errorf("%s is nil", name)
		}
	}
}
