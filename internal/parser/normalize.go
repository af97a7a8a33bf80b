package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	disallowed = regexp.MustCompile(`[^\w\s+\-*/().,^√π]`)
	whitespace = regexp.MustCompile(`\s+`)

	// A number not glued to a preceding word, so "km2" or "x2" never yield 2.
	numberLiteral = regexp.MustCompile(`(?:^|[^\w.])(-?(?:\d+(?:\.\d+)?|\.\d+))`)
	numericToken  = regexp.MustCompile(`^-?(?:\d+(?:\.\d+)?|\.\d+)$`)
	numberUnit    = regexp.MustCompile(`^(-?(?:\d+(?:\.\d+)?|\.\d+))([a-z]+\d?)$`)
)

// Normalize lowercases text, strips every character outside the calculator
// alphabet and collapses whitespace. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize splits normalized text on whitespace and commas, trims stray
// periods and separates a number glued to a unit ("5km" -> "5", "km").
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f == "" {
			continue
		}
		if m := numberUnit.FindStringSubmatch(f); m != nil {
			tokens = append(tokens, m[1], m[2])
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Numbers returns every signed decimal literal in text, left to right.
func Numbers(text string) []float64 {
	matches := numberLiteral.FindAllStringSubmatch(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func isNumeric(token string) bool {
	return numericToken.MatchString(token)
}

// formatNumber renders v for embedding in an expression.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var numberWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"ten": "10", "eleven": "11", "twelve": "12", "thirteen": "13",
	"fourteen": "14", "fifteen": "15", "sixteen": "16", "seventeen": "17",
	"eighteen": "18", "nineteen": "19", "twenty": "20",
}
