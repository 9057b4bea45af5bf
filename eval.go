package vfpu

import (
	"sort"
	"strconv"
	"strings"
)

// Compiler compiles expressions and evaluates the compiled program. It owns
// the variables and custom functions that expressions refer to. The zero value
// is ready to use. A Compiler is not safe for concurrent use; use Clone to get
// an independent copy for another goroutine.
type Compiler struct {
	// prog is the compiled program in postfix order.
	prog []instr
	// src is the text last passed to Compile.
	src string
	// stack is reused between evaluations.
	stack []instr
	vars  map[string]float64
	funcs map[string]Func
	// result is the value of the last successful evaluation.
	result float64
}

// New creates a compiler with the given options applied in order. New panics
// if an option names an invalid identifier or defines a name that conflicts
// with an existing definition.
func New(opts ...Option) *Compiler {
	c := Compiler{
		vars:  make(map[string]float64),
		funcs: make(map[string]Func),
	}
	c.apply(opts)
	return &c
}

// Eval evaluates the compiled program. Variables and custom functions are
// looked up as they are used, so the result reflects their current
// definitions. Eval returns ErrNotCompiled if there is no program.
func (c *Compiler) Eval() (float64, error) {
	if len(c.prog) == 0 {
		return 0, ErrNotCompiled
	}
	stack := c.stack[:0]
	defer func() {
		// Keep the storage, but don't keep names alive.
		stack = stack[:cap(stack)]
		for i := range stack {
			stack[i] = instr{}
		}
		c.stack = stack[:0]
	}()
	for _, in := range c.prog {
		stack = append(stack, in)
		for !stack[len(stack)-1].operand() {
			var err error
			stack, err = c.reduce(stack)
			if err != nil {
				return 0, err
			}
		}
	}
	if len(stack) != 1 {
		return 0, c.evalError(strconv.Itoa(len(stack)) + " values left after evaluating")
	}
	r, err := c.value(stack[0])
	if err != nil {
		return 0, err
	}
	c.result = r
	return r, nil
}

// reduce applies the operation on top of the stack to the operands beneath
// it, replacing them all with a single literal.
func (c *Compiler) reduce(stack []instr) ([]instr, error) {
	k := len(stack) - 1
	op := stack[k]
	switch {
	case op.unary():
		if k < 1 {
			return stack, c.evalError("operation " + op.String() + " without operand")
		}
		x, err := c.operand(stack[k-1])
		if err != nil {
			return stack, err
		}
		var r float64
		switch op.kind {
		case instrNeg:
			r = -x
		case instrCall:
			r = op.fn(x)
		case instrCustom:
			fn := c.funcs[op.name]
			if fn == nil {
				return stack, &NameError{Name: op.name, Func: true, Src: c.src}
			}
			r = fn(x)
		}
		stack[k-1] = instr{kind: instrNum, val: r}
		return stack[:k], nil
	case op.binary():
		if k < 2 {
			return stack, c.evalError("operation " + op.String() + " without two operands")
		}
		// The deeper operand is the left-hand side.
		lhs, err := c.operand(stack[k-2])
		if err != nil {
			return stack, err
		}
		rhs, err := c.operand(stack[k-1])
		if err != nil {
			return stack, err
		}
		stack[k-2] = instr{kind: instrNum, val: op.apply(lhs, rhs)}
		return stack[:k-1], nil
	default:
		return stack, c.evalError("unexpected instruction " + op.kind.String())
	}
}

// operand gets the value of a stack entry that must be an operand.
func (c *Compiler) operand(in instr) (float64, error) {
	if !in.operand() {
		return 0, c.evalError("operand expected, found " + in.String())
	}
	return c.value(in)
}

// value gets the current value of a literal or variable.
func (c *Compiler) value(in instr) (float64, error) {
	switch in.kind {
	case instrNum:
		return in.val, nil
	case instrVar:
		v, ok := c.vars[in.name]
		if !ok {
			return 0, &NameError{Name: in.name, Src: c.src}
		}
		return v, nil
	default:
		return 0, c.evalError("operand expected, found " + in.String())
	}
}

func (c *Compiler) evalError(msg string) error {
	return &EvalError{Msg: msg, Src: c.src}
}

// Result returns the value of the last successful evaluation. It is 0 before
// any evaluation succeeds.
func (c *Compiler) Result() float64 {
	return c.result
}

// RPN returns the compiled program in postfix notation. Each instruction is
// followed by a comma. Literals are written as numbers, variable references
// by name, negation as [-], and functions by name.
func (c *Compiler) RPN() string {
	var b strings.Builder
	for _, in := range c.prog {
		in.fmt(&b)
		b.WriteByte(',')
	}
	return b.String()
}

// Source returns the text last passed to Compile, whether or not it compiled.
func (c *Compiler) Source() string {
	return c.src
}

// Len returns the number of instructions in the compiled program.
func (c *Compiler) Len() int {
	return len(c.prog)
}

// Reset discards the compiled program. Variables and functions are kept.
func (c *Compiler) Reset() {
	c.prog = nil
}

// Refs returns the names of the variables and custom functions that the
// compiled program refers to, sorted and without duplicates.
func (c *Compiler) Refs() []string {
	seen := make(map[string]bool)
	var r []string
	for _, in := range c.prog {
		if in.kind != instrVar && in.kind != instrCustom {
			continue
		}
		if !seen[in.name] {
			seen[in.name] = true
			r = append(r, in.name)
		}
	}
	sort.Strings(r)
	return r
}

// Clone creates a copy of the compiler with the same program, variables, and
// functions, and applies options to it. The copy shares nothing with c.
func (c *Compiler) Clone(opts ...Option) *Compiler {
	n := Compiler{
		prog:   append([]instr(nil), c.prog...),
		src:    c.src,
		vars:   make(map[string]float64, len(c.vars)),
		funcs:  make(map[string]Func, len(c.funcs)),
		result: c.result,
	}
	for k, v := range c.vars {
		n.vars[k] = v
	}
	for k, v := range c.funcs {
		n.funcs[k] = v
	}
	n.apply(opts)
	return &n
}

// EvalString is a shortcut to compile and evaluate an expression with a new
// compiler.
func EvalString(src string, opts ...Option) (float64, error) {
	c := New(opts...)
	if err := c.Compile(src); err != nil {
		return 0, err
	}
	return c.Eval()
}
