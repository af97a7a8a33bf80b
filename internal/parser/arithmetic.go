package parser

import (
	"strings"

	"nlcalc/internal/calcerr"
	"nlcalc/internal/expr"
)

var operatorWords = map[string]string{
	"plus":       "+",
	"add":        "+",
	"added":      "+",
	"minus":      "-",
	"subtract":   "-",
	"subtracted": "-",
	"negative":   "-",
	"times":      "*",
	"multiply":   "*",
	"multiplied": "*",
	"x":          "*",
	"divided":    "/",
	"divide":     "/",
	"over":       "/",
	"mod":        "%",
	"modulo":     "%",
	"power":      "^",
	"squared":    "^ 2",
	"cubed":      "^ 3",
}

var prefixFunctions = map[string]string{
	"sqrt": "sqrt",
	"log":  "log",
	"ln":   "ln",
}

var constantWords = map[string]bool{"pi": true, "e": true}

// extractArithmetic rewrites a natural-language arithmetic request into an
// infix expression. Unknown words, including connectors like "and" or
// "with", are dropped. Only zero to twenty are understood as number words.
func extractArithmetic(c Classified) (Operation, error) {
	var (
		out     []string
		pending string
	)

	emitOperand := func(v string) {
		if pending != "" {
			v = pending + "(" + v + ")"
			pending = ""
		}
		out = append(out, v)
	}

	tokens := c.Tokens
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		switch {
		case isNumeric(t):
			emitOperand(t)
		case numberWords[t] != "":
			emitOperand(numberWords[t])
		case constantWords[t]:
			emitOperand(t)
		case t == "square" && i+1 < len(tokens) && tokens[i+1] == "root":
			pending = "sqrt"
			i++
		case prefixFunctions[t] != "":
			pending = prefixFunctions[t]
		case t == "percent":
			if i+1 < len(tokens) && tokens[i+1] == "of" {
				out = append(out, "/ 100 *")
				i++
			} else {
				out = append(out, "/ 100")
			}
		case operatorWords[t] != "":
			out = append(out, operatorWords[t])
		}
	}

	if pending != "" {
		return nil, calcerr.New(calcerr.Extraction, "%s needs a number to apply to", pending)
	}
	if len(out) == 0 {
		return nil, calcerr.New(calcerr.Extraction, "could not find a calculation in %q", c.Text)
	}

	return Expression{Text: strings.Join(out, " "), Angle: expr.Radians, Kind: Arithmetic}, nil
}
