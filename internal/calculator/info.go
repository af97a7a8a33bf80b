package calculator

import (
	"nlcalc/internal/expr"
	"nlcalc/internal/parser"
	"nlcalc/internal/stats"
	"nlcalc/internal/units"
)

// Capability describes one operation domain.
type Capability struct {
	Type        parser.Domain `json:"type"`
	Description string        `json:"description"`
	Examples    []string      `json:"examples"`
}

// Info describes what the agent can do and its current state.
type Info struct {
	Capabilities    []Capability        `json:"capabilities"`
	Functions       []string            `json:"functions"`
	Statistics      []string            `json:"statistics"`
	Units           map[string][]string `json:"units"`
	HistoryEntries  int                 `json:"history_entries"`
	HistoryCapacity int                 `json:"history_capacity"`
	ChartDir        string              `json:"chart_dir"`
}

var capabilities = []Capability{
	{
		Type:        parser.Arithmetic,
		Description: "Infix expressions or spoken arithmetic, with ans for the last answer.",
		Examples:    []string{"2 + 3 * 4", "What is 15 plus 27?", "square root of 144", "ans * 2"},
	},
	{
		Type:        parser.Statistics,
		Description: "Mean, median, mode, standard deviation, variance, sum, count, min, max and range.",
		Examples:    []string{"mean([1, 2, 3, 4, 5])", "average of 4, 8, 15, 16, 23, 42", "standard deviation of 2 4 4 4 5 5 7 9"},
	},
	{
		Type:        parser.Trigonometry,
		Description: "Sine, cosine and tangent; spoken requests are in degrees.",
		Examples:    []string{"sine of 30 degrees", "cos(pi)", "tangent of 45"},
	},
	{
		Type:        parser.UnitConversion,
		Description: "Length, weight, temperature, area, volume and time conversions.",
		Examples:    []string{"convert 32 fahrenheit to celsius", "5 km to miles", "2 pounds in ounces"},
	},
	{
		Type:        parser.Graphing,
		Description: "Function plots, scatter plots and histograms saved as HTML charts.",
		Examples:    []string{"plot x^2 from -5 to 5", "graph sin(x)", "scatter 1 2 2 4 3 6 4 8", "histogram of 1 2 2 3 3 3 4"},
	},
}

// Info reports capabilities, known units and the history fill level.
func (a *Agent) Info() Info {
	unitNames := make(map[string][]string, len(units.Categories))
	for _, c := range units.Categories {
		for _, u := range units.InCategory(c) {
			unitNames[string(c)] = append(unitNames[string(c)], u.Name)
		}
	}

	statNames := make([]string, 0, len(stats.Ops))
	for _, op := range stats.Ops {
		statNames = append(statNames, string(op))
	}

	return Info{
		Capabilities:    capabilities,
		Functions:       expr.Functions(),
		Statistics:      statNames,
		Units:           unitNames,
		HistoryEntries:  a.ledger.Len(),
		HistoryCapacity: a.ledger.Cap(),
		ChartDir:        a.charts.Dir(),
	}
}

// Examples returns sample inputs covering every domain.
func Examples() []string {
	var out []string
	for _, c := range capabilities {
		out = append(out, c.Examples...)
	}
	return out
}
