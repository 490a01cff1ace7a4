package commands

import (
	"context"

	"workorders/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "workorders/internal/core/application/usecases/commands"

// orchestratorMetrics records status updates, ledger side effects and
// compensations. Instruments that fail to register are skipped.
type orchestratorMetrics struct {
	tracer trace.Tracer

	updates             metric.Int64Counter
	updatesEnabled      bool
	sideEffects         metric.Int64Counter
	sideEffectsEnabled  bool
	compensations       metric.Int64Counter
	compensationEnabled bool
}

func newOrchestratorMetrics() orchestratorMetrics {
	meter := otel.GetMeterProvider().Meter(instrumentationName)

	updates, updatesErr := meter.Int64Counter(
		"workorder.status_updates",
		metric.WithDescription("Status update attempts by outcome"),
	)
	sideEffects, sideEffectsErr := meter.Int64Counter(
		"workorder.ledger_side_effects",
		metric.WithDescription("Inventory reserve and release calls made by status updates"),
	)
	compensations, compensationsErr := meter.Int64Counter(
		"workorder.compensations",
		metric.WithDescription("Ledger side effects undone after a failed commit"),
	)

	return orchestratorMetrics{
		tracer:              otel.GetTracerProvider().Tracer(instrumentationName),
		updates:             updates,
		updatesEnabled:      updatesErr == nil,
		sideEffects:         sideEffects,
		sideEffectsEnabled:  sideEffectsErr == nil,
		compensations:       compensations,
		compensationEnabled: compensationsErr == nil,
	}
}

func (m orchestratorMetrics) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (m orchestratorMetrics) update(ctx context.Context, from, to string, err error) {
	if !m.updatesEnabled {
		return
	}
	m.updates.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
		attribute.String("outcome", outcome(err)),
	))
}

func (m orchestratorMetrics) sideEffect(ctx context.Context, op string, err error) {
	if !m.sideEffectsEnabled {
		return
	}
	m.sideEffects.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome(err)),
	))
}

func (m orchestratorMetrics) compensation(ctx context.Context, op string, err error) {
	if !m.compensationEnabled {
		return
	}
	m.compensations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", outcome(err)),
	))
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return errs.KindOf(err).String()
}
