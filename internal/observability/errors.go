package observability

import (
	"context"
	"net/http"

	"nlcalc/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises HTTP error handling: records the error on the span,
// increments counter, logs with trace context, and writes a JSON error body
// carrying the request id.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", "request"),
	))

	requestID := RequestIDFromContext(ctx)
	logger.Error(msg,
		zap.String("operation", opName),
		zap.Error(err),
		zap.String("request_id", requestID),
	)

	if requestID == "" {
		handlers.WriteError(w, status, msg)
		return
	}
	handlers.WriteJSON(w, status, map[string]string{
		"error":      msg,
		"request_id": requestID,
	})
}
