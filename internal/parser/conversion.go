package parser

import (
	"nlcalc/internal/calcerr"
	"nlcalc/internal/units"
)

var separators = map[string]bool{"to": true, "in": true, "as": true}

func extractConversion(c Classified) (Operation, error) {
	nums := Numbers(c.Text)
	if len(nums) == 0 {
		return nil, calcerr.New(calcerr.Extraction, "no value to convert")
	}

	from, to, err := conversionUnits(c.Tokens)
	if err != nil {
		return nil, err
	}

	return Conversion{Value: nums[0], From: from, To: to, Category: from.Category}, nil
}

func conversionUnits(tokens []string) (units.Unit, units.Unit, error) {
	sawSeparator := false
	for i, t := range tokens {
		if !separators[t] {
			continue
		}
		sawSeparator = true

		from, _, ok := units.Scan(tokens[:i], "")
		if !ok {
			// "how to convert 5 km to miles": try the next separator.
			continue
		}

		to, _, ok := units.Scan(tokens[i+1:], from.Category)
		if ok {
			return from, to, nil
		}
		if other, _, found := units.Scan(tokens[i+1:], ""); found {
			return units.Unit{}, units.Unit{}, calcerr.New(calcerr.Extraction,
				"cannot convert %s (%s) to %s (%s)", from.Name, from.Category, other.Name, other.Category)
		}
		return units.Unit{}, units.Unit{}, calcerr.New(calcerr.Extraction, "no %s unit to convert %s to", from.Category, from.Name)
	}
	if sawSeparator {
		return units.Unit{}, units.Unit{}, calcerr.New(calcerr.Extraction, "no unit to convert from")
	}

	from, end, ok := units.Scan(tokens, "")
	if !ok {
		return units.Unit{}, units.Unit{}, calcerr.New(calcerr.Extraction, "no unit to convert from")
	}
	for i := end; i < len(tokens); {
		u, n, ok := units.MatchAt(tokens, i, from.Category)
		if !ok {
			i++
			continue
		}
		if u.Name != from.Name {
			return from, u, nil
		}
		i += n
	}
	return units.Unit{}, units.Unit{}, calcerr.New(calcerr.Extraction, "no %s unit to convert %s to", from.Category, from.Name)
}
