// Package parser turns free-form calculator input into a canonical operation:
// it normalizes and classifies text, then runs the extractor of the matching
// domain.
package parser

import (
	"regexp"
	"strings"

	"nlcalc/internal/units"
)

// Domain is the classification bucket of a request. Its value doubles as the
// user-facing operation type.
type Domain string

const (
	Arithmetic     Domain = "arithmetic"
	Statistics     Domain = "statistics"
	Trigonometry   Domain = "trigonometry"
	UnitConversion Domain = "unit conversion"
	Graphing       Domain = "graphing"
)

// Classified is the result of classification.
type Classified struct {
	Text            string
	Tokens          []string
	NaturalLanguage bool
	Domain          Domain

	phrase string
}

// has reports whether any of the words or multi-word phrases occurs as a
// whole token sequence.
func (c Classified) has(words ...string) bool {
	for _, w := range words {
		if strings.Contains(c.phrase, " "+w+" ") {
			return true
		}
	}
	return false
}

// route pairs a domain with its keyword predicate. Routes are evaluated in
// order and the first match wins. Graphing routes apply even when the text
// contains arithmetic symbols.
type route struct {
	domain       Domain
	match        func(Classified) bool
	allowSymbols bool
}

var (
	graphWords = []string{"plot", "graph", "draw", "chart", "scatter", "histogram", "points", "distribution"}
	trigWords  = []string{"sin", "sine", "cos", "cosine", "tan", "tangent"}

	// "show" and "display" only mean a plot when the text has the variable x,
	// so "show me the mean of 1 2" stays a statistic.
	displayWords = []string{"show", "display"}
	variableX    = regexp.MustCompile(`(?:^|[^a-z])x(?:[^a-z]|$)`)
)

func isGraphRequest(c Classified) bool {
	if c.has(graphWords...) {
		return true
	}
	return c.has(displayWords...) && variableX.MatchString(c.Text)
}

var routes = []route{
	{domain: Graphing, match: isGraphRequest, allowSymbols: true},
	{domain: UnitConversion, match: func(c Classified) bool { return c.has("convert") || units.ContainsUnit(c.Tokens) }},
	{domain: Statistics, match: func(c Classified) bool { return c.has(statWords()...) }},
	{domain: Trigonometry, match: func(c Classified) bool { return c.has(trigWords...) }},
}

// Classify normalizes text and assigns it a domain. Input that is not
// natural language is a literal expression in the arithmetic domain.
func Classify(text string) Classified {
	norm := Normalize(text)
	tokens := Tokenize(norm)

	c := Classified{
		Text:   norm,
		Tokens: tokens,
		Domain: Arithmetic,
		phrase: " " + strings.Join(tokens, " ") + " ",
	}

	natural := IsNaturalLanguage(norm)
	for _, r := range routes {
		if !natural && !r.allowSymbols {
			continue
		}
		if r.match(c) {
			c.NaturalLanguage = true
			c.Domain = r.domain
			return c
		}
	}

	c.NaturalLanguage = natural
	return c
}

// IsNaturalLanguage reports whether normalized text has letters and no
// arithmetic symbol. A minus sign that starts a number is not a symbol.
func IsNaturalLanguage(text string) bool {
	return hasLetters(text) && !hasSymbol(text)
}

func hasLetters(text string) bool {
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			return true
		}
	}
	return false
}

func hasSymbol(text string) bool {
	if strings.ContainsAny(text, "+*/^√()") {
		return true
	}
	for i := 0; i < len(text); i++ {
		if text[i] != '-' {
			continue
		}
		signed := (i == 0 || text[i-1] == ' ') &&
			i+1 < len(text) && (isDigit(text[i+1]) || text[i+1] == '.')
		if !signed {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
