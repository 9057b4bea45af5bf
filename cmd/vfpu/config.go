package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/vfpu"
)

// binding is a name=value variable definition from the command line. The
// value is an expression.
type binding struct {
	name, value string
}

func parseBinding(s string) (binding, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return binding{}, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	b := binding{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])}
	if b.name == "" || b.value == "" {
		return binding{}, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	return b, nil
}

// bind evaluates each binding's value and defines it in c. Values may refer to
// variables bound earlier.
func bind(c *vfpu.Compiler, bs []binding) error {
	for _, b := range bs {
		e := c.Clone()
		if err := e.Compile(b.value); err != nil {
			return fmt.Errorf("setting %s: %w", b.name, err)
		}
		v, err := e.Eval()
		if err != nil {
			return fmt.Errorf("setting %s: %w", b.name, err)
		}
		if err := c.DefineVar(b.name, v); err != nil {
			return fmt.Errorf("setting %s: %w", b.name, err)
		}
	}
	return nil
}

// loadVars reads a YAML mapping of variable names to numbers.
func loadVars(name string) (map[string]float64, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var vars map[string]float64
	if err := yaml.Unmarshal(b, &vars); err != nil {
		return nil, fmt.Errorf("reading variables from %s: %w", name, err)
	}
	return vars, nil
}

// maxSweep is the most values a sweep may produce.
const maxSweep = 1e7

// sweep is a range of values for one variable.
type sweep struct {
	name           string
	from, to, step float64
}

// parseSweep parses name=from:to:step.
func parseSweep(s string) (*sweep, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return nil, fmt.Errorf(`sweep must be "name=from:to:step", not %q`, s)
	}
	r := strings.Split(d[1], ":")
	if len(r) != 3 {
		return nil, fmt.Errorf(`sweep must be "name=from:to:step", not %q`, s)
	}
	sw := sweep{name: strings.TrimSpace(d[0])}
	for i, p := range []*float64{&sw.from, &sw.to, &sw.step} {
		v, err := strconv.ParseFloat(strings.TrimSpace(r[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("sweep %q: %w", s, err)
		}
		*p = v
	}
	switch {
	case sw.name == "":
		return nil, fmt.Errorf("sweep %q: no variable name", s)
	case !(sw.step > 0):
		return nil, fmt.Errorf("sweep %q: step must be positive", s)
	case !(sw.from <= sw.to):
		return nil, fmt.Errorf("sweep %q: empty range", s)
	case math.IsInf(sw.to-sw.from, 0):
		return nil, fmt.Errorf("sweep %q: infinite range", s)
	case !((sw.to-sw.from)/sw.step < maxSweep):
		return nil, fmt.Errorf("sweep %q: more than %d values", s, int(maxSweep))
	}
	return &sw, nil
}

// values lists the values of the sweep. Each value is computed from the start
// rather than accumulated so that steps like 0.1 land on the end point.
func (sw *sweep) values() []float64 {
	n := int(math.Floor((sw.to-sw.from)/sw.step + 1e-9))
	r := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		r = append(r, sw.from+float64(i)*sw.step)
	}
	return r
}

// decodeInput converts input text to UTF-8. UTF-16 text is recognized by its
// byte order mark. A UTF-8 byte order mark is removed.
func decodeInput(b []byte) (string, error) {
	switch {
	case bytes.HasPrefix(b, []byte{0xff, 0xfe}), bytes.HasPrefix(b, []byte{0xfe, 0xff}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		u, err := dec.Bytes(b)
		if err != nil {
			return "", err
		}
		return string(u), nil
	case bytes.HasPrefix(b, []byte{0xef, 0xbb, 0xbf}):
		return string(b[3:]), nil
	default:
		return string(b), nil
	}
}

// splitExprs splits input text into expressions. With lines set, each
// non-blank line is an expression; otherwise the whole text is one.
func splitExprs(text string, lines bool) []string {
	if !lines {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	var r []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			r = append(r, l)
		}
	}
	return r
}
