package units

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlcalc/internal/calcerr"
)

func TestConvertKnownValues(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{32, "fahrenheit", "celsius", 0},
		{100, "celsius", "fahrenheit", 212},
		{0, "kelvin", "celsius", -273.15},
		{-40, "celsius", "fahrenheit", -40},
		{1, "km", "m", 1000},
		{1, "mile", "feet", 5280},
		{12, "inches", "foot", 1},
		{1, "kg", "pounds", 2.2046226218487757},
		{1, "gallon", "liters", 3.785411784},
		{2, "hours", "minutes", 120},
		{1, "hectare", "square meters", 10000},
		{16, "ounces", "lb", 1},
	}

	for _, tc := range tests {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			got, _, _, err := ConvertNames(tc.value, tc.from, tc.to)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9*math.Max(1, math.Abs(tc.want)))
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	values := []float64{-459.67, -40, 0, 0.001, 1, 37.5, 1e6}

	for _, c := range Categories {
		list := InCategory(c)
		require.NotEmpty(t, list, "category %s", c)

		for _, u1 := range list {
			for _, u2 := range list {
				for _, v := range values {
					there, err := Convert(v, u1, u2)
					require.NoError(t, err)
					back, err := Convert(there, u2, u1)
					require.NoError(t, err)

					tol := 1e-9 * math.Max(1, math.Abs(v))
					if math.Abs(back-v) > tol {
						t.Fatalf("%s: %g %s -> %s -> %s gave %g", c, v, u1.Name, u2.Name, u1.Name, back)
					}
				}
			}
		}
	}
}

func TestConvertRejectsCrossCategory(t *testing.T) {
	_, _, _, err := ConvertNames(5, "meters", "kg")
	require.Error(t, err)
	assert.Equal(t, calcerr.Extraction, calcerr.KindOf(err))

	_, _, _, err = ConvertNames(5, "parsecs", "kg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown unit")
}

func TestScanPrefersLongestPhrase(t *testing.T) {
	tokens := strings.Fields("convert 3 fluid ounces to ml")

	u, end, ok := Scan(tokens, "")
	require.True(t, ok)
	assert.Equal(t, "fluid ounce", u.Name)
	assert.Equal(t, 4, end)

	u, _, ok = Scan(tokens[end:], Volume)
	require.True(t, ok)
	assert.Equal(t, "milliliter", u.Name)
}

func TestScanWithinCategorySkipsOthers(t *testing.T) {
	tokens := strings.Fields("5 pounds of feet in meters")

	u, _, ok := Scan(tokens, Length)
	require.True(t, ok)
	assert.Equal(t, "foot", u.Name)
}

func TestInIsNeverAUnit(t *testing.T) {
	_, ok := Lookup("in")
	assert.False(t, ok)
	assert.False(t, ContainsUnit([]string{"what", "is", "in", "it"}))
}
