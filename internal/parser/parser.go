package parser

import (
	"nlcalc/internal/calcerr"
	"nlcalc/internal/expr"
)

type extractor func(Classified) (Operation, error)

var extractors = map[Domain]extractor{
	Arithmetic:     extractArithmetic,
	Statistics:     extractStatistic,
	Trigonometry:   extractTrigonometry,
	UnitConversion: extractConversion,
	Graphing:       extractGraph,
}

// Extract runs the extractor of c's domain. Literal expressions pass through
// unchanged.
func Extract(c Classified) (Operation, error) {
	if !c.NaturalLanguage {
		return Expression{Text: c.Text, Angle: expr.Radians, Kind: Arithmetic}, nil
	}

	fn, ok := extractors[c.Domain]
	if !ok {
		return nil, calcerr.New(calcerr.Classification, "no extractor for domain %q", c.Domain)
	}
	return fn(c)
}

// Parse classifies and extracts text in one step.
func Parse(text string) (Classified, Operation, error) {
	c := Classify(text)
	op, err := Extract(c)
	return c, op, err
}
