package units

import (
	"math"

	"nlcalc/internal/calcerr"
)

// Convert converts value from one unit into another of the same category.
// Temperature pivots through Celsius; every other category goes through its
// base unit.
func Convert(value float64, from, to Unit) (float64, error) {
	if from.Category != to.Category {
		return 0, calcerr.New(calcerr.Extraction, "cannot convert %s (%s) to %s (%s)", from.Name, from.Category, to.Name, to.Category)
	}

	var result float64
	if from.Category == Temperature {
		c, err := toCelsius(value, from)
		if err != nil {
			return 0, err
		}
		result, err = fromCelsius(c, to)
		if err != nil {
			return 0, err
		}
	} else {
		if to.Factor == 0 {
			return 0, calcerr.New(calcerr.Extraction, "unit %s has no conversion factor", to.Name)
		}
		result = value * from.Factor / to.Factor
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, calcerr.New(calcerr.Evaluation, "conversion of %g %s to %s is not finite", value, from.Name, to.Name)
	}
	return result, nil
}

// ConvertNames resolves both unit names and converts value between them.
func ConvertNames(value float64, from, to string) (float64, Unit, Unit, error) {
	fu, ok := Lookup(from)
	if !ok {
		return 0, Unit{}, Unit{}, calcerr.New(calcerr.Extraction, "unknown unit %q", from)
	}
	tu, ok := Lookup(to)
	if !ok {
		return 0, Unit{}, Unit{}, calcerr.New(calcerr.Extraction, "unknown unit %q", to)
	}
	result, err := Convert(value, fu, tu)
	if err != nil {
		return 0, Unit{}, Unit{}, err
	}
	return result, fu, tu, nil
}

func toCelsius(v float64, u Unit) (float64, error) {
	switch u.Name {
	case "celsius":
		return v, nil
	case "fahrenheit":
		return (v - 32) * 5 / 9, nil
	case "kelvin":
		return v - 273.15, nil
	}
	return 0, calcerr.New(calcerr.Extraction, "unknown temperature unit %q", u.Name)
}

func fromCelsius(c float64, u Unit) (float64, error) {
	switch u.Name {
	case "celsius":
		return c, nil
	case "fahrenheit":
		return c*9/5 + 32, nil
	case "kelvin":
		return c + 273.15, nil
	}
	return 0, calcerr.New(calcerr.Extraction, "unknown temperature unit %q", u.Name)
}
