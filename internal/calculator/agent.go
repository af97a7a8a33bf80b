// Package calculator runs the calculation pipeline: ans substitution,
// classification, extraction, evaluation or chart rendering, and the history
// update. It also exposes the pipeline over HTTP.
package calculator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"nlcalc/internal/calcerr"
	"nlcalc/internal/chart"
	"nlcalc/internal/expr"
	"nlcalc/internal/history"
	"nlcalc/internal/observability"
	"nlcalc/internal/parser"
	"nlcalc/internal/stats"
	"nlcalc/internal/units"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// DefaultPlotSamples is the number of points sampled for a function plot.
const DefaultPlotSamples = 101

// Options configures an Agent.
type Options struct {
	HistorySize int
	ChartDir    string
	PlotSamples int
	Logger      *zap.Logger
	// Now overrides the clock used for result timestamps.
	Now func() time.Time
}

// Agent is one calculator session. It owns the history ledger and the last
// answer; Calculate calls are serialized.
type Agent struct {
	mu sync.Mutex

	eval    *expr.Evaluator
	charts  *chart.Renderer
	ledger  *history.Ledger
	samples int
	logger  *zap.Logger
	now     func() time.Time
	metrics *instruments
}

// NewAgent builds an Agent from opts, filling in defaults.
func NewAgent(opts Options) (*Agent, error) {
	if opts.ChartDir == "" {
		opts.ChartDir = "charts"
	}
	if opts.PlotSamples < 2 {
		opts.PlotSamples = DefaultPlotSamples
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m, err := newInstruments(otel.Meter("calculator"))
	if err != nil {
		return nil, err
	}

	return &Agent{
		eval:    expr.New(),
		charts:  chart.NewRenderer(opts.ChartDir),
		ledger:  history.NewLedger(opts.HistorySize),
		samples: opts.PlotSamples,
		logger:  opts.Logger,
		now:     opts.Now,
		metrics: m,
	}, nil
}

// Calculate runs input through the full pipeline. Failures never escape as
// errors; they come back as a Result with Success false.
func (a *Agent) Calculate(ctx context.Context, input string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, span := tracer.Start(ctx, "calculator.calculate")
	defer span.End()

	text := a.ledger.Substitute(input, false)
	if !parser.IsNaturalLanguage(parser.Normalize(text)) {
		text = a.ledger.Substitute(input, true)
	}
	c := parser.Classify(text)

	span.SetAttributes(
		attribute.String("calculator.domain", string(c.Domain)),
		attribute.Bool("calculator.natural_language", c.NaturalLanguage),
	)

	op, err := parser.Extract(c)
	if err != nil {
		return a.fail(ctx, span, input, c.Domain, err)
	}
	return a.run(ctx, span, input, op)
}

// Convert converts value between two named units without going through the
// natural-language parser.
func (a *Agent) Convert(ctx context.Context, value float64, from, to string) Result {
	input := fmt.Sprintf("convert %s %s to %s", FormatNumber(value), from, to)
	return a.direct(ctx, "calculator.convert", input, parser.UnitConversion, func() (parser.Operation, error) {
		fu, ok := units.Lookup(from)
		if !ok {
			return nil, calcerr.New(calcerr.Extraction, "unknown unit %q", from)
		}
		tu, ok := units.Lookup(to)
		if !ok {
			return nil, calcerr.New(calcerr.Extraction, "unknown unit %q", to)
		}
		if fu.Category != tu.Category {
			return nil, calcerr.New(calcerr.Extraction, "cannot convert %s (%s) to %s (%s)", fu.Name, fu.Category, tu.Name, tu.Category)
		}
		return parser.Conversion{Value: value, From: fu, To: tu, Category: fu.Category}, nil
	})
}

// Plot samples body over [from, to] and renders it.
func (a *Agent) Plot(ctx context.Context, body string, from, to float64) Result {
	input := fmt.Sprintf("plot %s from %s to %s", body, FormatNumber(from), FormatNumber(to))
	return a.direct(ctx, "calculator.plot", input, parser.Graphing, func() (parser.Operation, error) {
		if from >= to {
			return nil, calcerr.New(calcerr.Extraction, "plot range is empty: from %s to %s", FormatNumber(from), FormatNumber(to))
		}
		return parser.FunctionPlot{Body: parser.Normalize(body), From: from, To: to}, nil
	})
}

// Scatter renders values read as alternating x, y pairs.
func (a *Agent) Scatter(ctx context.Context, values []float64) Result {
	input := "scatter " + joinNumbers(values)
	return a.direct(ctx, "calculator.scatter", input, parser.Graphing, func() (parser.Operation, error) {
		return parser.Extract(parser.Classify(input))
	})
}

// Histogram renders the distribution of data.
func (a *Agent) Histogram(ctx context.Context, data []float64) Result {
	input := "histogram " + joinNumbers(data)
	return a.direct(ctx, "calculator.histogram", input, parser.Graphing, func() (parser.Operation, error) {
		if len(data) == 0 {
			return nil, calcerr.New(calcerr.Extraction, "histogram needs at least one value")
		}
		return parser.HistogramPlot{Data: data}, nil
	})
}

func (a *Agent) direct(ctx context.Context, spanName, input string, domain parser.Domain, build func() (parser.Operation, error)) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	op, err := build()
	if err != nil {
		return a.fail(ctx, span, input, domain, err)
	}
	return a.run(ctx, span, input, op)
}

// run evaluates op and records the success. Caller holds a.mu.
func (a *Agent) run(ctx context.Context, span trace.Span, input string, op parser.Operation) Result {
	logger := observability.WithTrace(ctx, a.logger)
	start := time.Now()

	res, err := a.evaluate(ctx, op)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms
	if err != nil {
		return a.fail(ctx, span, input, op.Type(), err)
	}

	res.Success = true
	res.Input = input
	res.Expression = op.String()
	res.OperationType = op.Type()
	res.Timestamp = a.now()

	a.ledger.Record(history.Entry{
		Input:         input,
		Expression:    res.Expression,
		OperationType: string(res.OperationType),
		Value:         res.Value,
		Display:       Format(res),
		Timestamp:     res.Timestamp,
	}, res.Value)

	attrs := metric.WithAttributes(attribute.String("operation", string(res.OperationType)))
	a.metrics.ops.Add(ctx, 1, attrs)
	a.metrics.duration.Record(ctx, elapsed, attrs)
	if v, ok := res.Number(); ok {
		a.metrics.result.Record(ctx, v, attrs)
		span.SetAttributes(attribute.Float64("calculator.result", v))
	}

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("expression", res.Expression),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("operation", string(res.OperationType)),
		zap.String("expression", res.Expression),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	return res
}

// evaluate dispatches on the operation variant.
func (a *Agent) evaluate(ctx context.Context, op parser.Operation) (Result, error) {
	var res Result

	switch op := op.(type) {
	case parser.Expression:
		if !a.eval.IsValid(op.Text) {
			return res, calcerr.New(calcerr.Evaluation, "invalid expression %q", op.Text)
		}
		v, err := a.eval.Evaluate(op.Text, op.Angle)
		if err != nil {
			return res, err
		}
		res.Value = &v

	case parser.Statistic:
		v, err := stats.Apply(op.Op, op.Operands)
		if err != nil {
			return res, err
		}
		res.Value = &v

	case parser.Conversion:
		v, err := units.Convert(op.Value, op.From, op.To)
		if err != nil {
			return res, err
		}
		res.Value = &v
		res.Conversion = &ConversionDetail{
			Value:    op.Value,
			From:     op.From.Name,
			To:       op.To.Name,
			Category: string(op.Category),
		}

	case parser.FunctionPlot:
		compiled, err := a.eval.Compile(op.Body)
		if err != nil {
			return res, err
		}
		points := compiled.Sample(op.From, op.To, a.samples)
		if len(points) == 0 {
			return res, calcerr.New(calcerr.Evaluation, "%s has no finite values between %s and %s", op.Body, FormatNumber(op.From), FormatNumber(op.To))
		}
		art, err := a.render(ctx, func(ctx context.Context) (chart.Artifact, error) {
			return a.charts.Function(ctx, op.Body, a.samples, points)
		})
		if err != nil {
			return res, err
		}
		res.Plot = &art

	case parser.ScatterPlot:
		art, err := a.render(ctx, func(ctx context.Context) (chart.Artifact, error) {
			return a.charts.Scatter(ctx, op.X, op.Y)
		})
		if err != nil {
			return res, err
		}
		res.Plot = &art

	case parser.HistogramPlot:
		art, err := a.render(ctx, func(ctx context.Context) (chart.Artifact, error) {
			return a.charts.Histogram(ctx, op.Data)
		})
		if err != nil {
			return res, err
		}
		res.Plot = &art

	default:
		return res, calcerr.New(calcerr.Classification, "unsupported operation %T", op)
	}

	return res, nil
}

// render wraps chart I/O in its own span.
func (a *Agent) render(ctx context.Context, fn func(context.Context) (chart.Artifact, error)) (chart.Artifact, error) {
	ctx, span := tracer.Start(ctx, "calculator.render")
	defer span.End()

	art, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return art, err
	}
	span.SetAttributes(
		attribute.String("chart.kind", string(art.Kind)),
		attribute.String("chart.path", art.Path),
		attribute.Int("chart.points", art.Points),
	)
	return art, nil
}

func (a *Agent) fail(ctx context.Context, span trace.Span, input string, domain parser.Domain, err error) Result {
	kind := calcerr.KindOf(err)
	if kind == "" {
		kind = calcerr.Evaluation
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	a.metrics.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", string(domain)),
		attribute.String("kind", string(kind)),
	))

	observability.WithTrace(ctx, a.logger).Warn("calculation failed",
		zap.String("operation", string(domain)),
		zap.String("kind", string(kind)),
		zap.Error(err),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	return Result{
		Success:       false,
		Input:         input,
		OperationType: domain,
		Error:         err.Error(),
		Timestamp:     a.now(),
	}
}

// History returns up to n entries, newest first.
func (a *Agent) History(n int) []history.Entry {
	return a.ledger.Recent(n)
}

// Recall returns the i-th most recent entry, 1-based.
func (a *Agent) Recall(i int) (history.Entry, bool) {
	return a.ledger.Get(i)
}

// LastAnswer returns the last numeric result.
func (a *Agent) LastAnswer() (float64, bool) {
	return a.ledger.LastAnswer()
}

// ClearHistory drops the history and the last answer together.
func (a *Agent) ClearHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ledger.Clear()
}

// Ledger exposes the history ledger for read-only collectors.
func (a *Agent) Ledger() *history.Ledger {
	return a.ledger
}

func joinNumbers(values []float64) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += " "
		}
		s += FormatNumber(v)
	}
	return s
}
