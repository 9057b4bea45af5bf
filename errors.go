package vfpu

import (
	"errors"
	"strconv"
)

// ErrNotCompiled is returned by Eval when no program has been compiled.
var ErrNotCompiled = errors.New("vfpu: no compiled expression")

// SyntaxError is an error indicating malformed expression text. It implements
// InputError.
type SyntaxError struct {
	// Col is the 1-based rune column of the offending token, or the column
	// just past the end of the input for errors found at the end.
	Col int
	// Token is the offending token text, if any.
	Token string
	// Msg describes the problem.
	Msg string
	// Src is the expression being compiled.
	Src string
	// Unknown is true when Token is an identifier that names no variable or
	// function.
	Unknown bool
	// Suggest is the closest defined name to an unknown identifier, if any.
	Suggest string
}

func (err *SyntaxError) Error() string {
	msg := err.Msg
	if err.Token != "" {
		msg += " " + strconv.Quote(err.Token)
	}
	if err.Suggest != "" {
		msg += " (did you mean " + strconv.Quote(err.Suggest) + "?)"
	}
	return withsrc(errpos(err.Col, msg), err.Src)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// NameError is an error from a lookup of a variable or custom function that
// is not defined.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Func is whether the name was looked up as a function.
	Func bool
	// Src is the expression being evaluated, if any.
	Src string
}

func (err *NameError) Error() string {
	if err.Func {
		return withsrc("undefined function: "+strconv.Quote(err.Name), err.Src)
	}
	return withsrc("undefined variable: "+strconv.Quote(err.Name), err.Src)
}

// ConflictError is an error indicating an attempt to define a name that
// already belongs to another namespace.
type ConflictError struct {
	// Name is the name being defined.
	Name string
	// Kind is what the name already is: "variable", "function", or
	// "built-in function".
	Kind string
}

func (err *ConflictError) Error() string {
	return "cannot define " + strconv.Quote(err.Name) + ": already a " + err.Kind
}

// IdentError is an error indicating a name that is not a valid identifier.
// Identifiers begin with a letter and contain only letters and digits.
type IdentError struct {
	Name string
}

func (err *IdentError) Error() string {
	if err.Name == "" {
		return "empty identifier"
	}
	return "invalid identifier " + strconv.Quote(err.Name)
}

// EvalError indicates a structurally invalid program found while evaluating.
// Programs produced by Compile do not cause it.
type EvalError struct {
	// Msg describes the problem.
	Msg string
	// Src is the text the program was compiled from.
	Src string
}

func (err *EvalError) Error() string {
	return withsrc("invalid program: "+err.Msg, err.Src)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

func withsrc(msg, src string) string {
	if src == "" {
		return msg
	}
	return msg + " in " + strconv.Quote(src)
}

// InputError is an error with position information. Every error resulting from
// invalid expression text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of the
	// token that caused the error.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)
