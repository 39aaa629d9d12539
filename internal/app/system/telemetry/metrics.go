package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names.
const (
	ActionsCounter    = "talenthub.collab.actions"
	ReapedCounter     = "talenthub.collab.coordinators.reaped"
	CoordinatorsGauge = "talenthub.collab.coordinators.live"
)

// Metrics records collaboration activity. A nil *Metrics is a no-op.
type Metrics struct {
	actions metric.Int64Counter
	reaped  metric.Int64Counter
	meter   metric.Meter
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	actions, err := meter.Int64Counter(ActionsCounter,
		metric.WithDescription("Collaboration actions by kind and whether they changed state"))
	if err != nil {
		return nil, err
	}
	reaped, err := meter.Int64Counter(ReapedCounter,
		metric.WithDescription("Idle coordinators dropped by the reaper"))
	if err != nil {
		return nil, err
	}
	return &Metrics{actions: actions, reaped: reaped, meter: meter}, nil
}

// RecordAction counts one action. applied=false marks a guard no-op.
func (m *Metrics) RecordAction(ctx context.Context, action string, applied bool) {
	if m == nil {
		return
	}
	m.actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.Bool("applied", applied),
	))
}

// RecordReaped counts dropped coordinators.
func (m *Metrics) RecordReaped(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reaped.Add(ctx, int64(n))
}

// ObserveCoordinators reports live() as a gauge on every collection.
func (m *Metrics) ObserveCoordinators(live func() int) error {
	if m == nil {
		return nil
	}
	_, err := m.meter.Int64ObservableGauge(CoordinatorsGauge,
		metric.WithDescription("Coordinators currently held in memory"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(live()))
			return nil
		}),
	)
	return err
}
