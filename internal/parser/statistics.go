package parser

import (
	"nlcalc/internal/calcerr"
	"nlcalc/internal/stats"
)

// Keyword table in priority order; the first operator with a matching word wins.
var statKeywords = []struct {
	op    stats.Op
	words []string
}{
	{stats.Mean, []string{"mean", "average", "avg"}},
	{stats.Median, []string{"median"}},
	{stats.Mode, []string{"mode"}},
	{stats.StdDev, []string{"standard deviation", "std dev", "std", "stdev"}},
	{stats.Var, []string{"variance", "var"}},
	{stats.Sum, []string{"sum", "total"}},
	{stats.Count, []string{"count"}},
	{stats.Min, []string{"minimum", "smallest", "lowest"}},
	{stats.Max, []string{"maximum", "max", "largest", "highest"}},
	{stats.Range, []string{"range"}},
}

func statWords() []string {
	var words []string
	for _, k := range statKeywords {
		words = append(words, k.words...)
	}
	return words
}

func extractStatistic(c Classified) (Operation, error) {
	op := stats.Mean
	for _, k := range statKeywords {
		if c.has(k.words...) {
			op = k.op
			break
		}
	}

	operands := Numbers(c.Text)
	if len(operands) == 0 {
		return nil, calcerr.New(calcerr.Extraction, "no numbers found to compute the %s of", op)
	}

	return Statistic{Op: op, Operands: operands}, nil
}
