// Package expr adapts github.com/Knetic/govaluate to the calculator grammar:
// infix arithmetic, ^ exponentiation, sqrt/log/ln, trigonometry, the
// constants pi and e, and variadic statistical functions.
package expr

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"

	"nlcalc/internal/calcerr"
	"nlcalc/internal/stats"
)

// AngleUnit selects how trigonometric arguments are interpreted.
type AngleUnit int

const (
	Radians AngleUnit = iota
	Degrees
)

func (u AngleUnit) String() string {
	if u == Degrees {
		return "degrees"
	}
	return "radians"
}

var (
	rootCall   = regexp.MustCompile(`√\s*\(`)
	rootNumber = regexp.MustCompile(`√\s*([0-9]*\.?[0-9]+|pi|e)`)
)

// Translate rewrites calculator notation into govaluate syntax.
func Translate(text string) string {
	s := strings.ReplaceAll(text, "π", "pi")
	s = rootCall.ReplaceAllString(s, "sqrt(")
	s = rootNumber.ReplaceAllString(s, "sqrt($1)")
	// govaluate reads ^ as bitwise xor.
	return rewritePowers(s)
}

// Evaluator evaluates calculator expressions. It is safe for concurrent use.
type Evaluator struct {
	radians map[string]govaluate.ExpressionFunction
	degrees map[string]govaluate.ExpressionFunction
}

// New returns an Evaluator with the full function table registered.
func New() *Evaluator {
	return &Evaluator{
		radians: functions(Radians),
		degrees: functions(Degrees),
	}
}

func constants() map[string]interface{} {
	return map[string]interface{}{
		"pi": math.Pi,
		"e":  math.E,
	}
}

func (e *Evaluator) compile(text string, unit AngleUnit) (*govaluate.EvaluableExpression, error) {
	fns := e.radians
	if unit == Degrees {
		fns = e.degrees
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, calcerr.New(calcerr.Evaluation, "empty expression")
	}

	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(Translate(trimmed), fns)
	if err != nil {
		return nil, calcerr.Wrap(calcerr.Evaluation, err, fmt.Sprintf("invalid expression %q", trimmed))
	}
	return compiled, nil
}

// IsValid reports whether text compiles. Nothing is evaluated.
func (e *Evaluator) IsValid(text string) bool {
	_, err := e.compile(text, Radians)
	return err == nil
}

// Evaluate compiles and evaluates text to a finite number.
func (e *Evaluator) Evaluate(text string, unit AngleUnit) (float64, error) {
	compiled, err := e.compile(text, unit)
	if err != nil {
		return 0, err
	}
	return run(compiled, constants())
}

// Compiled is an expression with the free variable x, compiled once and
// evaluated per sample.
type Compiled struct {
	text string
	expr *govaluate.EvaluableExpression
}

// Compile prepares a function body in x for sampling.
func (e *Evaluator) Compile(body string) (*Compiled, error) {
	compiled, err := e.compile(body, Radians)
	if err != nil {
		return nil, err
	}
	return &Compiled{text: body, expr: compiled}, nil
}

// String returns the source text.
func (c *Compiled) String() string {
	return c.text
}

// At evaluates the body with x bound to the given value.
func (c *Compiled) At(x float64) (float64, error) {
	params := constants()
	params["x"] = x
	return run(c.expr, params)
}

func run(compiled *govaluate.EvaluableExpression, params map[string]interface{}) (v float64, err error) {
	// govaluate panics on some type mismatches instead of returning errors.
	defer func() {
		if r := recover(); r != nil {
			err = calcerr.New(calcerr.Evaluation, "evaluation failed: %v", r)
		}
	}()

	out, err := compiled.Evaluate(params)
	if err != nil {
		return 0, calcerr.Wrap(calcerr.Evaluation, err, "evaluation failed")
	}

	f, ok := out.(float64)
	if !ok {
		return 0, calcerr.New(calcerr.Evaluation, "result %v is not a number", out)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, calcerr.New(calcerr.Evaluation, "result is not finite")
	}
	return f, nil
}

// Point is one sampled (x, y) pair.
type Point struct {
	X float64
	Y float64
}

// Sample evaluates c at n evenly spaced points from..to inclusive. Samples
// that fail or are not finite are dropped.
func (c *Compiled) Sample(from, to float64, n int) []Point {
	if n < 2 {
		n = 2
	}
	step := (to - from) / float64(n-1)

	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		x := from + float64(i)*step
		if i == n-1 {
			x = to
		}
		y, err := c.At(x)
		if err != nil {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

// Functions lists the function names the evaluator understands, sorted.
func Functions() []string {
	fns := functions(Radians)
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func functions(unit AngleUnit) map[string]govaluate.ExpressionFunction {
	toRad := func(v float64) float64 { return v }
	if unit == Degrees {
		toRad = func(v float64) float64 { return v * math.Pi / 180 }
	}

	fns := map[string]govaluate.ExpressionFunction{
		"sqrt":  unary("sqrt", math.Sqrt),
		"log":   unary("log", math.Log10),
		"ln":    unary("ln", math.Log),
		"exp":   unary("exp", math.Exp),
		"abs":   unary("abs", math.Abs),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"round": unary("round", math.Round),
		"sin":   unary("sin", func(v float64) float64 { return math.Sin(toRad(v)) }),
		"cos":   unary("cos", func(v float64) float64 { return math.Cos(toRad(v)) }),
		"tan":   unary("tan", func(v float64) float64 { return math.Tan(toRad(v)) }),
		"asin":  unary("asin", math.Asin),
		"acos":  unary("acos", math.Acos),
		"atan":  unary("atan", math.Atan),
	}

	for _, op := range stats.Ops {
		fns[string(op)] = variadic(op)
	}
	return fns
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument, got %d", name, len(args))
		}
		v, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s: argument %v is not a number", name, args[0])
		}
		return fn(v), nil
	}
}

func variadic(op stats.Op) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		values := make([]float64, 0, len(args))
		for _, a := range args {
			v, ok := a.(float64)
			if !ok {
				return nil, fmt.Errorf("%s: argument %v is not a number", op, a)
			}
			values = append(values, v)
		}
		return stats.Apply(op, values)
	}
}
