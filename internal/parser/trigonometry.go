package parser

import (
	"nlcalc/internal/calcerr"
	"nlcalc/internal/expr"
)

var trigFunctions = []struct {
	name  string
	words []string
}{
	{"sin", []string{"sin", "sine"}},
	{"cos", []string{"cos", "cosine"}},
	{"tan", []string{"tan", "tangent"}},
}

// extractTrigonometry reads one function and one angle in degrees. The
// conversion to radians is left to the evaluator.
func extractTrigonometry(c Classified) (Operation, error) {
	fn := "sin"
	for _, f := range trigFunctions {
		if c.has(f.words...) {
			fn = f.name
			break
		}
	}

	nums := Numbers(c.Text)
	if len(nums) == 0 {
		return nil, calcerr.New(calcerr.Extraction, "no angle found for %s", fn)
	}

	return Expression{
		Text:  fn + "(" + formatNumber(nums[0]) + ")",
		Angle: expr.Degrees,
		Kind:  Trigonometry,
	}, nil
}
