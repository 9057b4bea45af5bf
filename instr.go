package vfpu

import (
	"math"
	"strconv"
	"strings"
)

// instr is one element of a compiled program. It is small enough to copy
// freely; the evaluator works on copies.
type instr struct {
	kind instrKind

	// val is the value of a literal.
	val float64
	// name is the variable or function name for lookups and calls.
	name string
	// fn is the built-in function for instrCall.
	fn Func
	// pos is the source column of an open bracket.
	pos int
}

type instrKind int8

const (
	instrNone instrKind = iota

	instrNum    // push val
	instrVar    // push lookup(name)
	instrNeg    // negate operand
	instrCall   // fn(operand)
	instrCustom // lookup(name)(operand)
	instrAdd    // lhs + rhs
	instrSub    // lhs - rhs
	instrMul    // lhs * rhs
	instrDiv    // lhs / rhs
	instrPow    // lhs ^ rhs

	// Compile-time only.
	instrOpen
	instrClose
)

var instrKindNames = [...]string{
	instrNone:   "None",
	instrNum:    "Num",
	instrVar:    "Var",
	instrNeg:    "Neg",
	instrCall:   "Call",
	instrCustom: "Custom",
	instrAdd:    "Add",
	instrSub:    "Sub",
	instrMul:    "Mul",
	instrDiv:    "Div",
	instrPow:    "Pow",
	instrOpen:   "Open",
	instrClose:  "Close",
}

func (k instrKind) String() string {
	if k < 0 || int(k) >= len(instrKindNames) {
		return "instrKind(" + strconv.Itoa(int(k)) + ")"
	}
	return instrKindNames[k]
}

// prec is the binding precedence of an instruction. Higher binds tighter.
// Brackets have no precedence.
func (in instr) prec() int {
	switch in.kind {
	case instrNum, instrVar:
		return 0
	case instrAdd:
		return 2
	case instrSub:
		return 3
	case instrMul:
		return 4
	case instrDiv:
		return 5
	case instrPow:
		return 6
	case instrNeg:
		return 7
	case instrCall, instrCustom:
		return 8
	default:
		return -1
	}
}

// operand is whether the instruction pushes a value rather than consuming
// values.
func (in instr) operand() bool {
	return in.kind == instrNum || in.kind == instrVar
}

// unary is whether the instruction consumes one operand.
func (in instr) unary() bool {
	switch in.kind {
	case instrNeg, instrCall, instrCustom:
		return true
	}
	return false
}

// binary is whether the instruction consumes two operands.
func (in instr) binary() bool {
	switch in.kind {
	case instrAdd, instrSub, instrMul, instrDiv, instrPow:
		return true
	}
	return false
}

// rightAssoc is whether a binary operator groups from the right.
func (in instr) rightAssoc() bool {
	return in.kind == instrPow
}

func (in instr) String() string {
	var b strings.Builder
	in.fmt(&b)
	return b.String()
}

// fmt writes the RPN text of the instruction.
func (in instr) fmt(b *strings.Builder) {
	switch in.kind {
	case instrNum:
		b.WriteString(strconv.FormatFloat(in.val, 'g', -1, 64))
	case instrVar, instrCall, instrCustom:
		b.WriteString(in.name)
	case instrNeg:
		b.WriteString("[-]")
	case instrAdd:
		b.WriteByte('+')
	case instrSub:
		b.WriteByte('-')
	case instrMul:
		b.WriteByte('*')
	case instrDiv:
		b.WriteByte('/')
	case instrPow:
		b.WriteByte('^')
	case instrOpen:
		b.WriteByte('(')
	case instrClose:
		b.WriteByte(')')
	default:
		// Invalid instructions use an invalid character.
		b.WriteByte('$')
	}
}

// binop gets the binary operator for an operator token. If there is no such
// operator, the result has kind instrNone.
func binop(text string) instr {
	switch text {
	case "+":
		return instr{kind: instrAdd}
	case "-":
		return instr{kind: instrSub}
	case "*":
		return instr{kind: instrMul}
	case "/":
		return instr{kind: instrDiv}
	case "^":
		return instr{kind: instrPow}
	default:
		return instr{}
	}
}

// apply computes a binary operator.
func (in instr) apply(lhs, rhs float64) float64 {
	switch in.kind {
	case instrAdd:
		return lhs + rhs
	case instrSub:
		return lhs - rhs
	case instrMul:
		return lhs * rhs
	case instrDiv:
		return lhs / rhs
	case instrPow:
		return math.Pow(lhs, rhs)
	default:
		panic("vfpu: apply on non-binary instruction " + in.kind.String())
	}
}
