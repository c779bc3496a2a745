package expr

import (
	"math"
	"sort"
)

// builtin describes a numeric function callable from expressions.
type builtin struct {
	minArgs int
	maxArgs int // < 0 means variadic
	fn      func(args []float64) float64
}

func unary(fn func(float64) float64) builtin {
	return builtin{minArgs: 1, maxArgs: 1, fn: func(args []float64) float64 { return fn(args[0]) }}
}

func binary(fn func(a, b float64) float64) builtin {
	return builtin{minArgs: 2, maxArgs: 2, fn: func(args []float64) float64 { return fn(args[0], args[1]) }}
}

var builtins = map[string]builtin{
	// Trigonometry.
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"atan2": binary(math.Atan2),

	// Hyperbolic.
	"sinh": unary(math.Sinh),
	"cosh": unary(math.Cosh),
	"tanh": unary(math.Tanh),

	// Exponentials and logs. log is the natural logarithm.
	"exp":   unary(math.Exp),
	"ln":    unary(math.Log),
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"log2":  unary(math.Log2),

	// Powers and roots.
	"pow":   binary(math.Pow),
	"sqrt":  unary(math.Sqrt),
	"cbrt":  unary(math.Cbrt),
	"hypot": binary(math.Hypot),

	// Rounding and sign.
	"abs":   unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"round": unary(math.Round),
	"sign":  unary(sign),
	"mod":   binary(mod),

	"min": {minArgs: 2, maxArgs: -1, fn: minOf},
	"max": {minArgs: 2, maxArgs: -1, fn: maxOf},
}

var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

func sign(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// mod is the floored remainder; mod(a, 0) is NaN.
func mod(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return a - b*math.Floor(a/b)
}

func minOf(args []float64) float64 {
	m := args[0]
	for _, v := range args[1:] {
		if math.IsNaN(v) {
			return v
		}
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(args []float64) float64 {
	m := args[0]
	for _, v := range args[1:] {
		if math.IsNaN(v) {
			return v
		}
		if v > m {
			m = v
		}
	}
	return m
}

// Functions returns the sorted names of the whitelisted functions.
func Functions() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Constants returns the sorted names of the predefined constants.
func Constants() []string {
	out := make([]string, 0, len(constants))
	for name := range constants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
