package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/crusader/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor and forwards step spans to a reporter.
type Bridge struct {
	reporter ports.StepReporter
}

// NewBridge returns a new Bridge.
func NewBridge(reporter ports.StepReporter) *Bridge {
	return &Bridge{reporter: reporter}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.reporter == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}
	b.reporter.OnStepStart(sc.SpanID().String(), s.Name(), s.StartTime())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.reporter == nil {
		return
	}

	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "step failed"
		}
		err = errors.New(desc)
	}
	b.reporter.OnStepComplete(sc.SpanID().String(), s.EndTime(), err)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// NewProvider creates a tracer provider that reports every span to reporter.
func NewProvider(reporter ports.StepReporter) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(reporter)))
}

// Setup installs a provider reporting to reporter as the global tracer provider.
func Setup(reporter ports.StepReporter) *sdktrace.TracerProvider {
	tp := NewProvider(reporter)
	otel.SetTracerProvider(tp)
	return tp
}
