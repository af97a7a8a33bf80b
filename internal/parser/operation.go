package parser

import (
	"fmt"
	"strings"

	"nlcalc/internal/expr"
	"nlcalc/internal/stats"
	"nlcalc/internal/units"
)

// Operation is the canonical form of a request, one variant per domain.
type Operation interface {
	// Type reports the operation type used for routing results and formatting.
	Type() Domain
	// String renders the canonical expression shown to users and stored in history.
	String() string

	operation()
}

// Expression is a string the evaluator consumes directly.
type Expression struct {
	Text  string
	Angle expr.AngleUnit
	Kind  Domain
}

func (e Expression) Type() Domain {
	if e.Kind == "" {
		return Arithmetic
	}
	return e.Kind
}

func (e Expression) String() string { return e.Text }
func (Expression) operation()       {}

// Statistic applies one statistical operator over the operands.
type Statistic struct {
	Op       stats.Op
	Operands []float64
}

func (Statistic) Type() Domain { return Statistics }

func (s Statistic) String() string {
	parts := make([]string, len(s.Operands))
	for i, v := range s.Operands {
		parts[i] = formatNumber(v)
	}
	return fmt.Sprintf("%s(%s)", s.Op, strings.Join(parts, ", "))
}

func (Statistic) operation() {}

// Conversion converts Value between two units of the same category.
type Conversion struct {
	Value    float64
	From     units.Unit
	To       units.Unit
	Category units.Category
}

func (Conversion) Type() Domain { return UnitConversion }

func (c Conversion) String() string {
	return fmt.Sprintf("%s %s to %s", formatNumber(c.Value), c.From.Name, c.To.Name)
}

func (Conversion) operation() {}

// PlotKind is the chart kind of a graphing request.
type PlotKind string

const (
	FunctionKind  PlotKind = "function"
	ScatterKind   PlotKind = "scatter"
	HistogramKind PlotKind = "histogram"
)

// Plot is implemented by every graphing variant.
type Plot interface {
	Operation
	Kind() PlotKind
}

// FunctionPlot samples Body, an expression in x, over [From, To].
type FunctionPlot struct {
	Body string
	From float64
	To   float64
}

func (FunctionPlot) Type() Domain   { return Graphing }
func (FunctionPlot) Kind() PlotKind { return FunctionKind }
func (FunctionPlot) operation()     {}

func (f FunctionPlot) String() string {
	return fmt.Sprintf("%s from %s to %s", f.Body, formatNumber(f.From), formatNumber(f.To))
}

// ScatterPlot holds paired coordinates; len(X) == len(Y).
type ScatterPlot struct {
	X []float64
	Y []float64
}

func (ScatterPlot) Type() Domain   { return Graphing }
func (ScatterPlot) Kind() PlotKind { return ScatterKind }
func (ScatterPlot) operation()     {}

func (s ScatterPlot) String() string {
	parts := make([]string, len(s.X))
	for i := range s.X {
		parts[i] = fmt.Sprintf("(%s, %s)", formatNumber(s.X[i]), formatNumber(s.Y[i]))
	}
	return "scatter " + strings.Join(parts, " ")
}

// HistogramPlot holds the raw data sample.
type HistogramPlot struct {
	Data []float64
}

func (HistogramPlot) Type() Domain   { return Graphing }
func (HistogramPlot) Kind() PlotKind { return HistogramKind }
func (HistogramPlot) operation()     {}

func (h HistogramPlot) String() string {
	parts := make([]string, len(h.Data))
	for i, v := range h.Data {
		parts[i] = formatNumber(v)
	}
	return "histogram " + strings.Join(parts, ", ")
}
