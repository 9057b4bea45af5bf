package vfpu_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/vfpu"
)

func TestDefineVar(t *testing.T) {
	c := vfpu.New()
	require.False(t, c.IsVarDefined("x"))
	require.NoError(t, c.DefineVar("x", 1))
	require.True(t, c.IsVarDefined("x"))
	v, err := c.Var("x")
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	require.NoError(t, c.DefineVar("x", 2))
	v, err = c.Var("x")
	require.NoError(t, err)
	require.Equal(t, 2.0, v)

	c.UndefineVar("x")
	require.False(t, c.IsVarDefined("x"))
	_, err = c.Var("x")
	var ne *vfpu.NameError
	require.True(t, errors.As(err, &ne), "want *NameError, got %v", err)
	require.Equal(t, "x", ne.Name)
	// Undefining again is fine.
	c.UndefineVar("x")
}

func TestDefineInvalid(t *testing.T) {
	names := []string{"", "1x", "x y", " x", "x_1", "x.y", "x+y", "-x"}
	c := vfpu.New()
	for _, name := range names {
		var ie *vfpu.IdentError
		err := c.DefineVar(name, 0)
		require.True(t, errors.As(err, &ie), "DefineVar(%q): want *IdentError, got %v", name, err)
		require.Equal(t, name, ie.Name)
		err = c.DefineFunc(name, math.Abs)
		require.True(t, errors.As(err, &ie), "DefineFunc(%q): want *IdentError, got %v", name, err)
	}
	require.Empty(t, c.Vars())
	require.Empty(t, c.Funcs())
}

func TestDefineConflict(t *testing.T) {
	c := vfpu.New()
	require.NoError(t, c.DefineVar("a", 1))
	require.NoError(t, c.DefineFunc("f", math.Abs))

	var ce *vfpu.ConflictError
	err := c.DefineFunc("a", math.Abs)
	require.True(t, errors.As(err, &ce), "want *ConflictError, got %v", err)
	require.Equal(t, "variable", ce.Kind)
	require.False(t, c.IsFuncDefined("a"))

	err = c.DefineVar("f", 1)
	require.True(t, errors.As(err, &ce), "want *ConflictError, got %v", err)
	require.Equal(t, "function", ce.Kind)

	for _, name := range vfpu.Builtins() {
		err = c.DefineVar(name, 1)
		require.True(t, errors.As(err, &ce), "DefineVar(%q): want *ConflictError, got %v", name, err)
		require.Equal(t, "built-in function", ce.Kind)
		err = c.DefineFunc(name, math.Abs)
		require.True(t, errors.As(err, &ce), "DefineFunc(%q): want *ConflictError, got %v", name, err)
	}

	// Freeing the name allows the other namespace to use it.
	c.UndefineVar("a")
	require.NoError(t, c.DefineFunc("a", math.Abs))
	require.True(t, c.IsFuncDefined("a"))
}

func TestDefineFunc(t *testing.T) {
	c := vfpu.New()
	require.NoError(t, c.DefineFunc("half", func(x float64) float64 { return x / 2 }))
	require.True(t, c.IsFuncDefined("half"))
	require.False(t, c.IsFuncDefined("sin"))
	require.NoError(t, c.DefineFunc("half", nil))
	require.False(t, c.IsFuncDefined("half"))
	c.UndefineFunc("half")
}

func TestClear(t *testing.T) {
	c := vfpu.New(
		vfpu.SetVars(map[string]float64{"b": 1, "a": 2}),
		vfpu.SetFuncs(map[string]vfpu.Func{"g": math.Floor, "f": math.Ceil}),
	)
	require.Equal(t, []string{"a", "b"}, c.Vars())
	require.Equal(t, []string{"f", "g"}, c.Funcs())
	require.NoError(t, c.Compile("f(a) + g(b)"))

	c.ClearVars()
	require.Empty(t, c.Vars())
	require.Equal(t, []string{"f", "g"}, c.Funcs())
	_, err := c.Eval()
	var ne *vfpu.NameError
	require.True(t, errors.As(err, &ne), "want *NameError, got %v", err)

	c.ClearFuncs()
	require.Empty(t, c.Funcs())
	// The program survives clearing symbols.
	require.Equal(t, "a,f,b,g,+,", c.RPN())
}

func TestOptions(t *testing.T) {
	c := vfpu.New(
		vfpu.SetVar("x", 3),
		nil,
		vfpu.SetFunc("twice", func(x float64) float64 { return 2 * x }),
	)
	require.Equal(t, 6.0, mustEval(t, "twice(3)", vfpu.SetFunc("twice", func(x float64) float64 { return 2 * x })))
	require.NoError(t, c.Compile("twice x"))
	r, err := c.Eval()
	require.NoError(t, err)
	require.Equal(t, 6.0, r)

	require.Panics(t, func() { vfpu.New(vfpu.SetVar("1x", 0)) })
	require.Panics(t, func() { vfpu.New(vfpu.SetVar("sin", 0)) })
	require.Panics(t, func() { vfpu.New(vfpu.SetVar("f", 0), vfpu.SetFunc("f", math.Abs)) })
	require.Panics(t, func() { c.Clone(vfpu.SetFunc("x", math.Abs)) })
}

func TestBuiltins(t *testing.T) {
	want := []string{
		"abs", "acos", "acosh", "asin", "asinh", "atan", "atanh", "cos", "cosh",
		"exp", "log", "log10", "log2", "sign", "sin", "sinh", "sqrt", "tan", "tanh",
	}
	require.Equal(t, want, vfpu.Builtins())
	for _, name := range want {
		require.True(t, vfpu.IsBuiltin(name))
	}
	require.False(t, vfpu.IsBuiltin("ln"))
}
