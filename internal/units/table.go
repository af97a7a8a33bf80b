// Package units holds the static unit tables and the conversion arithmetic
// used by the unit-conversion domain.
package units

import "strings"

// Category groups units that can be converted into each other.
type Category string

const (
	Length      Category = "length"
	Weight      Category = "weight"
	Temperature Category = "temperature"
	Area        Category = "area"
	Volume      Category = "volume"
	Time        Category = "time"
)

// Categories lists every category in scan order.
var Categories = []Category{Length, Weight, Temperature, Area, Volume, Time}

// Unit is one entry of a category table. Factor converts one of this unit
// into the category's base unit; it is unused for temperature.
type Unit struct {
	Name     string
	Category Category
	Factor   float64
	Aliases  []string
}

// Base units: meter, kilogram, square meter, liter, second.
var table = []Unit{
	{Name: "meter", Category: Length, Factor: 1, Aliases: []string{"meter", "meters", "metre", "metres", "m"}},
	{Name: "kilometer", Category: Length, Factor: 1000, Aliases: []string{"kilometer", "kilometers", "kilometre", "kilometres", "km"}},
	{Name: "centimeter", Category: Length, Factor: 0.01, Aliases: []string{"centimeter", "centimeters", "centimetre", "centimetres", "cm"}},
	{Name: "millimeter", Category: Length, Factor: 0.001, Aliases: []string{"millimeter", "millimeters", "millimetre", "millimetres", "mm"}},
	{Name: "mile", Category: Length, Factor: 1609.344, Aliases: []string{"mile", "miles", "mi"}},
	{Name: "nautical mile", Category: Length, Factor: 1852, Aliases: []string{"nautical mile", "nautical miles", "nmi"}},
	{Name: "yard", Category: Length, Factor: 0.9144, Aliases: []string{"yard", "yards", "yd"}},
	{Name: "foot", Category: Length, Factor: 0.3048, Aliases: []string{"foot", "feet", "ft"}},
	{Name: "inch", Category: Length, Factor: 0.0254, Aliases: []string{"inch", "inches"}},

	{Name: "kilogram", Category: Weight, Factor: 1, Aliases: []string{"kilogram", "kilograms", "kilo", "kilos", "kg"}},
	{Name: "gram", Category: Weight, Factor: 0.001, Aliases: []string{"gram", "grams", "g"}},
	{Name: "milligram", Category: Weight, Factor: 1e-6, Aliases: []string{"milligram", "milligrams", "mg"}},
	{Name: "tonne", Category: Weight, Factor: 1000, Aliases: []string{"tonne", "tonnes", "metric ton", "metric tons"}},
	{Name: "ton", Category: Weight, Factor: 907.18474, Aliases: []string{"ton", "tons"}},
	{Name: "pound", Category: Weight, Factor: 0.45359237, Aliases: []string{"pound", "pounds", "lb", "lbs"}},
	{Name: "ounce", Category: Weight, Factor: 0.028349523125, Aliases: []string{"ounce", "ounces", "oz"}},
	{Name: "stone", Category: Weight, Factor: 6.35029318, Aliases: []string{"stone", "stones"}},

	{Name: "celsius", Category: Temperature, Aliases: []string{"celsius", "centigrade"}},
	{Name: "fahrenheit", Category: Temperature, Aliases: []string{"fahrenheit"}},
	{Name: "kelvin", Category: Temperature, Aliases: []string{"kelvin", "kelvins"}},

	{Name: "square meter", Category: Area, Factor: 1, Aliases: []string{"square meter", "square meters", "square metre", "square metres", "sq m", "sqm", "m2"}},
	{Name: "square kilometer", Category: Area, Factor: 1e6, Aliases: []string{"square kilometer", "square kilometers", "square kilometre", "square kilometres", "sq km", "km2"}},
	{Name: "square foot", Category: Area, Factor: 0.09290304, Aliases: []string{"square foot", "square feet", "sq ft", "sqft", "ft2"}},
	{Name: "square inch", Category: Area, Factor: 0.00064516, Aliases: []string{"square inch", "square inches", "in2"}},
	{Name: "square yard", Category: Area, Factor: 0.83612736, Aliases: []string{"square yard", "square yards", "sq yd", "yd2"}},
	{Name: "square mile", Category: Area, Factor: 2589988.110336, Aliases: []string{"square mile", "square miles", "sq mi", "mi2"}},
	{Name: "acre", Category: Area, Factor: 4046.8564224, Aliases: []string{"acre", "acres"}},
	{Name: "hectare", Category: Area, Factor: 10000, Aliases: []string{"hectare", "hectares", "ha"}},

	{Name: "liter", Category: Volume, Factor: 1, Aliases: []string{"liter", "liters", "litre", "litres", "l"}},
	{Name: "milliliter", Category: Volume, Factor: 0.001, Aliases: []string{"milliliter", "milliliters", "millilitre", "millilitres", "ml"}},
	{Name: "cubic meter", Category: Volume, Factor: 1000, Aliases: []string{"cubic meter", "cubic meters", "cubic metre", "cubic metres", "m3"}},
	{Name: "gallon", Category: Volume, Factor: 3.785411784, Aliases: []string{"gallon", "gallons", "gal"}},
	{Name: "quart", Category: Volume, Factor: 0.946352946, Aliases: []string{"quart", "quarts", "qt"}},
	{Name: "pint", Category: Volume, Factor: 0.473176473, Aliases: []string{"pint", "pints", "pt"}},
	{Name: "cup", Category: Volume, Factor: 0.2365882365, Aliases: []string{"cup", "cups"}},
	{Name: "fluid ounce", Category: Volume, Factor: 0.0295735295625, Aliases: []string{"fluid ounce", "fluid ounces", "fl oz"}},
	{Name: "tablespoon", Category: Volume, Factor: 0.01478676478125, Aliases: []string{"tablespoon", "tablespoons", "tbsp"}},
	{Name: "teaspoon", Category: Volume, Factor: 0.00492892159375, Aliases: []string{"teaspoon", "teaspoons", "tsp"}},

	{Name: "second", Category: Time, Factor: 1, Aliases: []string{"second", "seconds", "sec", "secs"}},
	{Name: "millisecond", Category: Time, Factor: 0.001, Aliases: []string{"millisecond", "milliseconds", "ms"}},
	{Name: "minute", Category: Time, Factor: 60, Aliases: []string{"minute", "minutes", "min", "mins"}},
	{Name: "hour", Category: Time, Factor: 3600, Aliases: []string{"hour", "hours", "hr", "hrs"}},
	{Name: "day", Category: Time, Factor: 86400, Aliases: []string{"day", "days"}},
	{Name: "week", Category: Time, Factor: 604800, Aliases: []string{"week", "weeks"}},
	{Name: "month", Category: Time, Factor: 2629800, Aliases: []string{"month", "months"}},
	{Name: "year", Category: Time, Factor: 31557600, Aliases: []string{"year", "years", "yr", "yrs"}},
}

var (
	byAlias    = make(map[string]Unit)
	maxPhrase  = 1
	byCategory = make(map[Category][]Unit)
)

func init() {
	for _, u := range table {
		byCategory[u.Category] = append(byCategory[u.Category], u)
		for _, a := range u.Aliases {
			byAlias[a] = u
			if n := len(strings.Fields(a)); n > maxPhrase {
				maxPhrase = n
			}
		}
	}
}

// Lookup resolves a unit name or alias, which may span several words.
func Lookup(name string) (Unit, bool) {
	u, ok := byAlias[strings.Join(strings.Fields(strings.ToLower(name)), " ")]
	return u, ok
}

// InCategory lists the units of one category in table order.
func InCategory(c Category) []Unit {
	return byCategory[c]
}

// MatchAt tries to read a unit phrase starting at tokens[i], preferring the
// longest phrase. When within is non-empty only units of that category match.
// It returns the unit and the number of tokens consumed.
func MatchAt(tokens []string, i int, within Category) (Unit, int, bool) {
	for n := maxPhrase; n >= 1; n-- {
		if i+n > len(tokens) {
			continue
		}
		u, ok := byAlias[strings.Join(tokens[i:i+n], " ")]
		if !ok {
			continue
		}
		if within != "" && u.Category != within {
			continue
		}
		return u, n, true
	}
	return Unit{}, 0, false
}

// Scan returns the first unit found in tokens scanning left to right.
// The second result is the token index just past the match.
func Scan(tokens []string, within Category) (Unit, int, bool) {
	for i := range tokens {
		if u, n, ok := MatchAt(tokens, i, within); ok {
			return u, i + n, true
		}
	}
	return Unit{}, 0, false
}

// ContainsUnit reports whether any unit phrase occurs in tokens.
func ContainsUnit(tokens []string) bool {
	_, _, ok := Scan(tokens, "")
	return ok
}
