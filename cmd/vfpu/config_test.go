package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/vfpu"
)

func TestParseBinding(t *testing.T) {
	b, err := parseBinding(" r = 2*3 ")
	require.NoError(t, err)
	require.Equal(t, binding{"r", "2*3"}, b)
	for _, s := range []string{"r", "=2", "r=", ""} {
		_, err := parseBinding(s)
		require.Error(t, err, "%q", s)
	}
}

func TestBind(t *testing.T) {
	c := vfpu.New()
	err := bind(c, []binding{{"a", "2"}, {"b", "a^3 + 1"}})
	require.NoError(t, err)
	b, err := c.Var("b")
	require.NoError(t, err)
	require.Equal(t, 9.0, b)

	err = bind(c, []binding{{"c", "d+1"}})
	var se *vfpu.SyntaxError
	require.True(t, errors.As(err, &se), "want *SyntaxError, got %v", err)
	require.False(t, c.IsVarDefined("c"))

	err = bind(c, []binding{{"sin", "1"}})
	var ce *vfpu.ConflictError
	require.True(t, errors.As(err, &ce), "want *ConflictError, got %v", err)
}

func TestLoadVars(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "vars.yaml")
	require.NoError(t, os.WriteFile(good, []byte("x: 1.5\nradius: 2\nn: -3\n"), 0o644))
	vars, err := loadVars(good)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"x": 1.5, "radius": 2, "n": -3}, vars)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("x: [1, 2]\n"), 0o644))
	_, err = loadVars(bad)
	require.Error(t, err)

	_, err = loadVars(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseSweep(t *testing.T) {
	sw, err := parseSweep("x=0:1:0.25")
	require.NoError(t, err)
	require.Equal(t, &sweep{name: "x", from: 0, to: 1, step: 0.25}, sw)
	require.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, sw.values())

	sw, err = parseSweep("t = 0 : 0.3 : 0.1")
	require.NoError(t, err)
	require.Len(t, sw.values(), 4)
	require.InDelta(t, 0.3, sw.values()[3], 1e-12)

	sw, err = parseSweep("k=2:2:1")
	require.NoError(t, err)
	require.Equal(t, []float64{2}, sw.values())

	for _, s := range []string{"x", "x=0:1", "=0:1:1", "x=0:1:0", "x=0:1:-1", "x=1:0:1", "x=a:1:1", "x=0:NaN:1", "x=0:1e300:1e-300", "x=0:1e7:1", "x=-1e308:1e308:1"} {
		_, err := parseSweep(s)
		require.Error(t, err, "%q", s)
	}
}

func TestDecodeInput(t *testing.T) {
	s, err := decodeInput([]byte("1+1"))
	require.NoError(t, err)
	require.Equal(t, "1+1", s)

	s, err = decodeInput([]byte{0xef, 0xbb, 0xbf, '2', 'x'})
	require.NoError(t, err)
	require.Equal(t, "2x", s)

	s, err = decodeInput([]byte{0xff, 0xfe, '1', 0, '+', 0, '1', 0})
	require.NoError(t, err)
	require.Equal(t, "1+1", s)

	s, err = decodeInput([]byte{0xfe, 0xff, 0, 'x', 0, '^', 0, '2'})
	require.NoError(t, err)
	require.Equal(t, "x^2", s)
}

func TestSplitExprs(t *testing.T) {
	require.Equal(t, []string{"1 +\n2\n"}, splitExprs("1 +\n2\n", false))
	require.Nil(t, splitExprs(" \n ", false))
	require.Equal(t, []string{"1 +", "2", "x"}, splitExprs("1 +\r\n2\n\n  x  \n", true))
}
