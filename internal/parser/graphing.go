package parser

import (
	"regexp"
	"strconv"
	"strings"

	"nlcalc/internal/calcerr"
)

const (
	defaultFrom = -10
	defaultTo   = 10
)

var functionClause = regexp.MustCompile(
	`(?:^|\s)(?:plot|graph|draw|chart|show|display)\s+(?:of\s+)?(?:(?:y|f\(x\))\s+)?(.+?)` +
		`(?:\s+from\s+(-?\d+(?:\.\d+)?))?(?:\s+to\s+(-?\d+(?:\.\d+)?))?$`)

// extractGraph picks the chart kind by keyword. The function body is not
// validated here; it is compiled and sampled by the caller.
func extractGraph(c Classified) (Operation, error) {
	switch {
	case c.has("scatter", "points"):
		return extractScatter(c)
	case c.has("histogram", "distribution"):
		return extractHistogram(c)
	default:
		return extractFunction(c)
	}
}

func extractFunction(c Classified) (Operation, error) {
	m := functionClause.FindStringSubmatch(c.Text)
	if m == nil {
		return nil, calcerr.New(calcerr.Extraction, "could not find a function to plot in %q", c.Text)
	}

	body := strings.TrimSpace(m[1])
	if body == "" {
		return nil, calcerr.New(calcerr.Extraction, "empty function to plot")
	}

	from, to := float64(defaultFrom), float64(defaultTo)
	if m[2] != "" {
		from, _ = strconv.ParseFloat(m[2], 64)
	}
	if m[3] != "" {
		to, _ = strconv.ParseFloat(m[3], 64)
	}
	if from >= to {
		return nil, calcerr.New(calcerr.Extraction, "plot range is empty: from %s to %s", formatNumber(from), formatNumber(to))
	}

	return FunctionPlot{Body: body, From: from, To: to}, nil
}

// extractScatter reads literals as alternating x, y pairs.
func extractScatter(c Classified) (Operation, error) {
	nums := Numbers(c.Text)
	if len(nums) < 4 || len(nums)%2 != 0 {
		return nil, calcerr.New(calcerr.Extraction, "scatter needs an even number of values, at least 4 (got %d)", len(nums))
	}

	p := ScatterPlot{
		X: make([]float64, 0, len(nums)/2),
		Y: make([]float64, 0, len(nums)/2),
	}
	for i, v := range nums {
		if i%2 == 0 {
			p.X = append(p.X, v)
		} else {
			p.Y = append(p.Y, v)
		}
	}
	return p, nil
}

func extractHistogram(c Classified) (Operation, error) {
	nums := Numbers(c.Text)
	if len(nums) == 0 {
		return nil, calcerr.New(calcerr.Extraction, "histogram needs at least one value")
	}
	return HistogramPlot{Data: nums}, nil
}
