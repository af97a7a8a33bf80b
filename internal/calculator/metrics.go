package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// instruments are the calculator's OTel metric instruments.
type instruments struct {
	ops      metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	result   metric.Float64Gauge
}

// newInstruments registers the calculator instruments on meter.
func newInstruments(meter metric.Meter) (*instruments, error) {
	var (
		m   instruments
		err error
	)

	m.ops, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of successful calculations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ops counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	m.errors, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of failed calculations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	m.result, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The last numeric result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating result gauge: %w", err)
	}

	return &m, nil
}
