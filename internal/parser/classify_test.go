package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  What is 15 PLUS 27? ", "what is 15 plus 27"},
		{"mean([1, 2, 3])", "mean(1, 2, 3)"},
		{"√16 + π", "√16 + π"},
		{"convert 32°F   to\tcelsius!", "convert 32f to celsius"},
		{"a = b", "a b"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := Normalize(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, Normalize(got), "normalize must be idempotent")
		})
	}
}

func TestClassifyIsIdempotentUnderNormalize(t *testing.T) {
	inputs := []string{
		"2 + 3 * 4",
		"What is 15 plus 27?",
		"MEAN([1, 2, 3, 4, 5])",
		"Convert 32 Fahrenheit to Celsius",
		"Plot x^2 from -5 to 5",
		"What's the SINE of 30 degrees??",
		"median of 3, 9, 1",
		"scatter 1 2 3 4",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, Classify(in), Classify(Normalize(in)))
		})
	}
}

func TestClassifyRouting(t *testing.T) {
	tests := []struct {
		in      string
		natural bool
		domain  Domain
	}{
		{"2 + 3 * 4", false, Arithmetic},
		{"42", false, Arithmetic},
		{"mean([1, 2, 3, 4, 5])", false, Arithmetic},
		{"ans * 4", false, Arithmetic},
		{"what is 15 plus 27", true, Arithmetic},
		{"convert 32 fahrenheit to celsius", true, UnitConversion},
		{"how many feet are in 3 miles", true, UnitConversion},
		{"convert -40 celsius to fahrenheit", true, UnitConversion},
		{"average of 4 and 8", true, Statistics},
		{"standard deviation of 1 2 3", true, Statistics},
		{"cosine of 60", true, Trigonometry},
		{"plot x^2 from -5 to 5", true, Graphing},
		{"scatter 1 2 3 4", true, Graphing},
		{"histogram of 1, 2, 2, 3", true, Graphing},
		{"show points 1 2 3 4", true, Graphing},
		{"distribution of 1 2 3", true, Graphing},
		{"display x^2", true, Graphing},
		{"show y = x from 0 to 3", true, Graphing},
		{"show me the mean of 1 2", true, Statistics},
		{"display the max of 4 9", true, Statistics},
		// Priority: graphing beats statistics, units beat statistics.
		{"plot the mean", true, Graphing},
		{"average of 5 km and 3 km", true, UnitConversion},
		// "min" is minutes; the statistic is spelled out.
		{"what is the min of 3 and 5", true, UnitConversion},
		{"what is the minimum of 3 and 5", true, Statistics},
		// Whole words only: "using" does not contain the word "sin".
		{"using 3 and 4", true, Arithmetic},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			c := Classify(tc.in)
			assert.Equal(t, tc.natural, c.NaturalLanguage)
			assert.Equal(t, tc.domain, c.Domain)
		})
	}
}

func TestIsNaturalLanguage(t *testing.T) {
	assert.True(t, IsNaturalLanguage("what is 5 minus 3"))
	assert.True(t, IsNaturalLanguage("mean of -1 and 4"))
	assert.False(t, IsNaturalLanguage("5 - 3"))
	assert.False(t, IsNaturalLanguage("x-1 apples"))
	assert.False(t, IsNaturalLanguage("sqrt(4) apples"))
	assert.False(t, IsNaturalLanguage("12"))
}

func TestTokenizeSplitsNumberUnit(t *testing.T) {
	assert.Equal(t, []string{"convert", "5", "km", "to", "miles"}, Tokenize("convert 5km to miles."))
	assert.Equal(t, []string{"1", "2", "3"}, Tokenize("1,2, 3"))
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, []float64{1, -2.5, 3, 0.5}, Numbers("1, -2.5 and 3 or .5"))
	assert.Empty(t, Numbers("convert km2 to m2"))
	require.Len(t, Numbers("plot x^2 from -5 to 5"), 3)
}
