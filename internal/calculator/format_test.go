package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nlcalc/internal/chart"
	"nlcalc/internal/history"
	"nlcalc/internal/parser"
)

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		14:          "14",
		0.5:         "0.5",
		1.0 / 3:     "0.333333",
		-2.25:       "-2.25",
		1e-9:        "0",
		-1e-9:       "0",
		123456789.5: "123456789.5",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatNumber(in), "%v", in)
	}
}

func TestFormat(t *testing.T) {
	v := 42.0
	assert.Equal(t, "15 + 27 = 42", Format(Result{
		Success: true, Expression: "15 + 27", OperationType: parser.Arithmetic, Value: &v,
	}))

	assert.Equal(t, "Error: boom", Format(Result{Error: "boom"}))

	assert.Equal(t, "function plot saved to /tmp/a.html (99 of 101 points)", Format(Result{
		Success:       true,
		OperationType: parser.Graphing,
		Plot:          &chart.Artifact{Kind: chart.Function, Path: "/tmp/a.html", Samples: 101, Points: 99},
	}))
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "No calculations yet.", FormatHistory(nil))

	got := FormatHistory([]history.Entry{
		{Input: "2 + 3", OperationType: "arithmetic", Display: "2 + 3 = 5", Timestamp: time.Now()},
		{Input: "1 km to m", OperationType: "unit conversion", Display: "1 kilometer = 1000 meter"},
	})
	assert.Equal(t, "  1. [arithmetic] 2 + 3  →  2 + 3 = 5\n  2. [unit conversion] 1 km to m  →  1 kilometer = 1000 meter", got)
}
