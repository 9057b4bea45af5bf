package vfpu

import (
	"math"
	"sort"
)

// Func is a function from reals to reals, usable in expressions as a custom
// function of one argument.
type Func func(float64) float64

var globalfuncs = map[string]Func{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"asinh": math.Asinh,
	"acosh": math.Acosh,
	"atanh": math.Atanh,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
	"sign":  sign,
	"exp":   math.Exp,
	"log":   math.Log, // natural logarithm
	"log10": math.Log10,
	"log2":  math.Log2,
}

// sign returns -1, 0, or 1 according to the sign of x. NaN stays NaN.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		// 0, -0, or NaN.
		return x
	}
}

// Builtins returns the names of the built-in functions, sorted. These names
// cannot be defined as variables or custom functions.
func Builtins() []string {
	r := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// IsBuiltin reports whether name is a built-in function.
func IsBuiltin(name string) bool {
	_, ok := globalfuncs[name]
	return ok
}
