package calculator

import (
	"fmt"
	"strconv"
	"strings"

	"nlcalc/internal/history"
	"nlcalc/internal/parser"
)

// FormatNumber renders v with at most six decimals and no trailing zeros.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

// Format renders a result for display. It has no side effects.
func Format(r Result) string {
	if !r.Success {
		return "Error: " + r.Error
	}

	switch r.OperationType {
	case parser.UnitConversion:
		if r.Conversion != nil && r.Value != nil {
			return fmt.Sprintf("%s %s = %s %s",
				FormatNumber(r.Conversion.Value), r.Conversion.From,
				FormatNumber(*r.Value), r.Conversion.To)
		}
	case parser.Graphing:
		if r.Plot != nil {
			return fmt.Sprintf("%s plot saved to %s (%d of %d points)",
				r.Plot.Kind, r.Plot.Path, r.Plot.Points, r.Plot.Samples)
		}
	}

	if r.Value != nil {
		return fmt.Sprintf("%s = %s", r.Expression, FormatNumber(*r.Value))
	}
	return r.Expression
}

// FormatHistory renders entries, newest first, one per line with a 1-based
// recall index.
func FormatHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return "No calculations yet."
	}

	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%3d. [%s] %s  →  %s\n", i+1, e.OperationType, e.Input, e.Display)
	}
	return strings.TrimRight(b.String(), "\n")
}
