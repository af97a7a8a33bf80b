package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide base logger. It is a no-op until InitLogger runs.
var Logger = zap.NewNop()

// level backs every logger InitLogger builds.
var level = zap.NewAtomicLevelAt(zap.WarnLevel)

// InitLogger builds the base logger at the named level. Development mode writes
// human-readable console output; otherwise JSON. Output always goes to stderr
// so stdout stays free for calculation results.
func InitLogger(name string, development bool) error {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	level.SetLevel(lvl)
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	Logger = logger
	return nil
}

// SetLevel changes the level of the running logger.
func SetLevel(name string) error {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	level.SetLevel(lvl)
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace is WithTrace applied to the base Logger.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	return WithTrace(ctx, Logger)
}

// WithTrace returns a child of base enriched with trace_id and span_id from
// the active span in ctx.
//
// ctx itself is attached as a zap.Any("context", ctx) field: the otelzap
// bridge uses any context-valued field as the context for log.Logger.Emit,
// so exported OTLP records carry the native TraceID and SpanID. The plain
// string fields keep stdout JSON greppable.
func WithTrace(ctx context.Context, base *zap.Logger) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return base
	}

	return base.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
