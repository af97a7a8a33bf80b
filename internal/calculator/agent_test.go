package calculator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"nlcalc/internal/chart"
	"nlcalc/internal/parser"
)

func newAgent(t *testing.T, opts Options) *Agent {
	t.Helper()
	if opts.ChartDir == "" {
		opts.ChartDir = t.TempDir()
	}
	a, err := NewAgent(opts)
	require.NoError(t, err)
	return a
}

func requireValue(t *testing.T, res Result) float64 {
	t.Helper()
	require.True(t, res.Success, "calculation failed: %s", res.Error)
	v, ok := res.Number()
	require.True(t, ok, "expected a numeric result")
	return v
}

func TestCalculateScenarios(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		op    parser.Domain
	}{
		{"2 + 3 * 4", 14, parser.Arithmetic},
		{"What is 15 plus 27?", 42, parser.Arithmetic},
		{"mean([1, 2, 3, 4, 5])", 3, parser.Arithmetic},
		{"average of 1, 2, 3, 4, 5", 3, parser.Statistics},
		{"sine of 30 degrees", 0.5, parser.Trigonometry},
		{"2^10", 1024, parser.Arithmetic},
		{"√16 + 1", 5, parser.Arithmetic},
		{"square root of 144", 12, parser.Arithmetic},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			a := newAgent(t, Options{})
			res := a.Calculate(context.Background(), tc.input)
			assert.InDelta(t, tc.want, requireValue(t, res), 1e-9)
			assert.Equal(t, tc.op, res.OperationType)
			assert.Equal(t, tc.input, res.Input)
		})
	}
}

func TestCalculateConversion(t *testing.T) {
	a := newAgent(t, Options{})

	res := a.Calculate(context.Background(), "convert 32 fahrenheit to celsius")
	assert.InDelta(t, 0, requireValue(t, res), 1e-9)
	assert.Equal(t, parser.UnitConversion, res.OperationType)
	require.NotNil(t, res.Conversion)
	assert.Equal(t, "celsius", res.Conversion.To)
	assert.Equal(t, "fahrenheit", res.Conversion.From)
	assert.Equal(t, "32 fahrenheit = 0 celsius", Format(res))
}

func TestCalculateAnsUsesLastAnswer(t *testing.T) {
	a := newAgent(t, Options{})
	ctx := context.Background()

	requireValue(t, a.Calculate(ctx, "2 + 3"))
	res := a.Calculate(ctx, "ans * 4")
	assert.Equal(t, 20.0, requireValue(t, res))
	assert.Equal(t, "ans * 4", res.Input)
	assert.Equal(t, "5 * 4", res.Expression)

	requireValue(t, a.Calculate(ctx, "0 - 7"))
	assert.Equal(t, 49.0, requireValue(t, a.Calculate(ctx, "ans ^ 2")))
}

func TestCalculateNegativeAnsInNaturalLanguage(t *testing.T) {
	a := newAgent(t, Options{})
	ctx := context.Background()

	assert.Equal(t, -7.0, requireValue(t, a.Calculate(ctx, "0 - 7")))

	res := a.Calculate(ctx, "ans plus 3")
	assert.Equal(t, -4.0, requireValue(t, res))
	assert.Equal(t, parser.Arithmetic, res.OperationType)

	// Symbolic context still treats the negative answer as one operand.
	assert.Equal(t, 16.0, requireValue(t, a.Calculate(ctx, "ans ^ 2")))
	assert.Equal(t, -16.0, requireValue(t, a.Calculate(ctx, "0 - ans")))
	assert.Equal(t, -32.0, requireValue(t, a.Calculate(ctx, "ans times 2")))
}

func TestCalculatePowerPrecedence(t *testing.T) {
	a := newAgent(t, Options{})
	ctx := context.Background()

	res := a.Calculate(ctx, "2 ^ 3 ^ 2")
	assert.Equal(t, 512.0, requireValue(t, res))
	assert.Equal(t, "2 ^ 3 ^ 2 = 512", Format(res))

	assert.Equal(t, -4.0, requireValue(t, a.Calculate(ctx, "-2^2")))
}

func TestCalculateFunctionPlot(t *testing.T) {
	dir := t.TempDir()
	a := newAgent(t, Options{ChartDir: dir})

	res := a.Calculate(context.Background(), "plot x^2 from -5 to 5")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, parser.Graphing, res.OperationType)
	require.NotNil(t, res.Plot)
	assert.Equal(t, chart.Function, res.Plot.Kind)
	assert.Equal(t, 101, res.Plot.Samples)
	assert.Equal(t, 101, res.Plot.Points)
	assert.True(t, filepath.IsAbs(res.Plot.Path))
	assert.Equal(t, dir, filepath.Dir(res.Plot.Path))

	_, err := os.Stat(res.Plot.Path)
	require.NoError(t, err)

	_, ok := a.LastAnswer()
	assert.False(t, ok, "plots must not set the last answer")
	assert.Equal(t, 1, a.ledger.Len())
}

func TestCalculateFunctionPlotWithoutFinitePoints(t *testing.T) {
	a := newAgent(t, Options{})

	res := a.Calculate(context.Background(), "plot sqrt(x) from -10 to -1")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Zero(t, a.ledger.Len())
}

func TestCalculateFailuresAreNotRecorded(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := newAgent(t, Options{Logger: zap.New(core)})
	ctx := context.Background()

	requireValue(t, a.Calculate(ctx, "1 + 1"))

	for _, input := range []string{"hello there", "1 / 0", "2 +* 3", "convert 5 km to kg", "std of 4"} {
		res := a.Calculate(ctx, input)
		assert.False(t, res.Success, input)
		assert.NotEmpty(t, res.Error, input)
		assert.Equal(t, "Error: "+res.Error, Format(res))
	}

	assert.Equal(t, 1, a.ledger.Len())
	last, ok := a.LastAnswer()
	require.True(t, ok)
	assert.Equal(t, 2.0, last)
	assert.Equal(t, 5, logs.FilterMessage("calculation failed").Len())
}

func TestHistoryIsBounded(t *testing.T) {
	a := newAgent(t, Options{})
	ctx := context.Background()

	for i := 1; i <= 60; i++ {
		requireValue(t, a.Calculate(ctx, fmt.Sprintf("%d + 0", i)))
	}

	entries := a.History(0)
	require.Len(t, entries, 50)
	assert.Equal(t, "60 + 0", entries[0].Input)
	assert.Equal(t, "11 + 0", entries[49].Input)

	e, ok := a.Recall(2)
	require.True(t, ok)
	assert.Equal(t, "59 + 0", e.Input)

	a.ClearHistory()
	assert.Empty(t, a.History(0))
	_, ok = a.LastAnswer()
	assert.False(t, ok)
}

func TestDirectOperations(t *testing.T) {
	a := newAgent(t, Options{PlotSamples: 11})
	ctx := context.Background()

	res := a.Convert(ctx, 1, "km", "m")
	assert.Equal(t, 1000.0, requireValue(t, res))
	assert.Equal(t, "1 kilometer = 1000 meter", Format(res))

	assert.False(t, a.Convert(ctx, 1, "km", "kg").Success)
	assert.False(t, a.Convert(ctx, 1, "parsec", "m").Success)

	res = a.Plot(ctx, "x^3", -2, 2)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, 11, res.Plot.Points)
	assert.False(t, a.Plot(ctx, "x", 3, 3).Success)

	res = a.Scatter(ctx, []float64{1, 2, 3, 4})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, chart.Scatter, res.Plot.Kind)
	assert.False(t, a.Scatter(ctx, []float64{1, 2, 3}).Success)

	res = a.Histogram(ctx, []float64{1, 2, 2, 3, 3, 3})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, chart.Histogram, res.Plot.Kind)
	assert.False(t, a.Histogram(ctx, nil).Success)

	assert.Len(t, a.History(0), 4)
}

func TestResultTimestampUsesClock(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := newAgent(t, Options{Now: func() time.Time { return at }})

	res := a.Calculate(context.Background(), "1 + 2")
	assert.Equal(t, at, res.Timestamp)
	assert.Equal(t, at, a.History(1)[0].Timestamp)
}

func TestCalculateIsSafeForConcurrentUse(t *testing.T) {
	a := newAgent(t, Options{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a.Calculate(ctx, fmt.Sprintf("%d * 2", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, a.ledger.Len())
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	a := newAgent(t, Options{ChartDir: dir, HistorySize: 7})
	a.Calculate(context.Background(), "1 + 1")

	info := a.Info()
	assert.Equal(t, 1, info.HistoryEntries)
	assert.Equal(t, 7, info.HistoryCapacity)
	assert.Equal(t, dir, info.ChartDir)
	assert.Len(t, info.Capabilities, 5)
	assert.Contains(t, info.Units["temperature"], "celsius")
	assert.Contains(t, info.Statistics, "median")
	assert.Contains(t, info.Functions, "sqrt")
}

func TestExamplesAllSucceed(t *testing.T) {
	a := newAgent(t, Options{PlotSamples: 11})
	ctx := context.Background()

	requireValue(t, a.Calculate(ctx, "1 + 1"))
	for _, ex := range Examples() {
		res := a.Calculate(ctx, ex)
		assert.True(t, res.Success, "%q: %s", ex, res.Error)
	}
}
