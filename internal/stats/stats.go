// Package stats implements the statistical operators exposed both to natural
// language requests and to the expression evaluator.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"nlcalc/internal/calcerr"
)

// Op names a statistical operator.
type Op string

const (
	Mean   Op = "mean"
	Median Op = "median"
	Mode   Op = "mode"
	StdDev Op = "std"
	Var    Op = "var"
	Sum    Op = "sum"
	Count  Op = "count"
	Min    Op = "min"
	Max    Op = "max"
	Range  Op = "range"
)

// Ops lists every operator, in the order they are registered with the evaluator.
var Ops = []Op{Mean, Median, Mode, StdDev, Var, Sum, Count, Min, Max, Range}

// Apply evaluates op over values. The input slice is not modified.
func Apply(op Op, values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, calcerr.New(calcerr.Extraction, "%s needs at least one number", op)
	}

	switch op {
	case Mean:
		return stat.Mean(values, nil), nil
	case Median:
		return median(values), nil
	case Mode:
		sorted := sortedCopy(values)
		m, _ := stat.Mode(sorted, nil)
		return m, nil
	case StdDev, Var:
		if len(values) < 2 {
			return 0, calcerr.New(calcerr.Extraction, "%s needs at least two numbers", op)
		}
		if op == StdDev {
			return stat.StdDev(values, nil), nil
		}
		return stat.Variance(values, nil), nil
	case Sum:
		return floats.Sum(values), nil
	case Count:
		return float64(len(values)), nil
	case Min:
		return floats.Min(values), nil
	case Max:
		return floats.Max(values), nil
	case Range:
		return floats.Max(values) - floats.Min(values), nil
	}

	return 0, calcerr.New(calcerr.Extraction, "unknown statistic %q", op)
}

func median(values []float64) float64 {
	s := sortedCopy(values)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

func sortedCopy(values []float64) []float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return s
}

// Bin is one histogram bucket covering [Low, High).
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram buckets data using Sturges' rule for the bin count. The last
// bucket is closed so the maximum value is always counted.
func Histogram(data []float64) ([]Bin, error) {
	if len(data) == 0 {
		return nil, calcerr.New(calcerr.Extraction, "histogram needs at least one number")
	}

	sorted := sortedCopy(data)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	bins := int(math.Ceil(math.Log2(float64(len(sorted))))) + 1
	if lo == hi {
		bins = 1
	}

	dividers := make([]float64, bins+1)
	if lo == hi {
		dividers[0], dividers[1] = lo-0.5, hi+0.5
	} else {
		floats.Span(dividers, lo, hi)
	}
	// stat.Histogram uses half-open buckets; nudge the top edge past the max.
	dividers[bins] = math.Nextafter(dividers[bins], math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Low: dividers[i], High: dividers[i+1], Count: int(counts[i])}
	}
	return out, nil
}
