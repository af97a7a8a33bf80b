package main

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"

	"nlcalc/internal/observability"
)

// initTelemetry starts OTLP export of traces, metrics and logs. The returned
// function stops them in reverse order.
func initTelemetry(ctx context.Context) (observability.ShutdownFunc, error) {
	res, err := observability.NewResource(ctx, version)
	if err != nil {
		return nil, err
	}

	var started []observability.ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(started) - 1; i >= 0; i-- {
			errs = append(errs, started[i](ctx))
		}
		return errors.Join(errs...)
	}

	pipelines := []struct {
		name  string
		start func(context.Context, *resource.Resource) (observability.ShutdownFunc, error)
	}{
		{"tracing", observability.InitTracing},
		{"metrics", observability.InitMetrics},
		{"logging", observability.InitLogging},
	}
	for _, p := range pipelines {
		stop, err := p.start(ctx, res)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init %s: %w", p.name, err), shutdown(ctx))
		}
		started = append(started, stop)
	}

	return shutdown, nil
}
