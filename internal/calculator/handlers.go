package calculator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"nlcalc/internal/handlers"
	"nlcalc/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// maxBodyBytes caps POST /calculate bodies.
const maxBodyBytes = 64 << 10

// Handler exposes an Agent over HTTP.
type Handler struct {
	agent *Agent
}

// NewHandler returns HTTP handlers backed by agent.
func NewHandler(agent *Agent) *Handler {
	return &Handler{agent: agent}
}

// Calculate handles POST /calculate. A calculation failure is still a
// 200 response carrying the failed result; only malformed bodies are 400s.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.http.calculate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	var req CalculateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, h.agent.metrics.errors, "calculate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	input := strings.TrimSpace(req.Input)
	if input == "" {
		observability.RecordError(ctx, span, logger, h.agent.metrics.errors, "calculate", "input is required", fmt.Errorf("empty input"), http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("calculator.input", input))

	res := h.agent.Calculate(ctx, input)

	logger.Debug("calculate request served",
		zap.Bool("success", res.Success),
		zap.String("operation", string(res.OperationType)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, res)
}

// History handles GET /history?n=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.http.history")
	defer span.End()

	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			observability.RecordError(ctx, span, logger, h.agent.metrics.errors, "history", "n must be a non-negative integer", fmt.Errorf("n=%q", raw), http.StatusBadRequest, w)
			return
		}
		n = v
	}

	entries := h.agent.History(n)
	resp := HistoryResponse{
		Entries: make([]HistoryEntry, 0, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		resp.Entries = append(resp.Entries, HistoryEntry{
			Index:         i + 1,
			Input:         e.Input,
			Expression:    e.Expression,
			OperationType: e.OperationType,
			Result:        e.Value,
			Display:       e.Display,
			Timestamp:     e.Timestamp,
		})
	}
	span.SetAttributes(attribute.Int("history.count", resp.Count))

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// ClearHistory handles POST /clear-history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, span := tracer.Start(ctx, "calculator.http.clear_history")
	defer span.End()

	h.agent.ClearHistory()

	observability.LoggerWithTrace(ctx).Info("history cleared",
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Info handles GET /info.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, h.agent.Info())
}
