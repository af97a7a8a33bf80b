package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecordErrorRespondsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	ctx := ContextWithRequestID(context.Background(), "req-9")

	counter, err := otel.Meter("nlcalc-test").Int64Counter("calculator.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	w := httptest.NewRecorder()
	RecordError(ctx, trace.SpanFromContext(ctx), zap.New(core), counter,
		"calculate", "input is required", errors.New("empty input"),
		http.StatusBadRequest, w)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if body["error"] != "input is required" || body["request_id"] != "req-9" {
		t.Fatalf("expected error message and request id in the body, got %#v", body)
	}

	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["operation"] != "calculate" {
		t.Fatalf("expected operation field, got %#v", fields)
	}
}

func TestRecordErrorWithoutRequestID(t *testing.T) {
	counter, err := otel.Meter("nlcalc-test").Int64Counter("calculator.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	w := httptest.NewRecorder()
	RecordError(context.Background(), trace.SpanFromContext(context.Background()), zap.NewNop(), counter,
		"history", "n must be a non-negative integer", errors.New("bad n"),
		http.StatusBadRequest, w)

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if _, ok := body["request_id"]; ok {
		t.Fatalf("expected no request_id without one in context, got %#v", body)
	}
}
