package vfpu

import (
	"errors"
	"sort"
	"strconv"

	"github.com/gammazero/deque"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// tokenClass is the class of the previously compiled token. It decides how
// the next token is read, e.g. whether - is negation or subtraction.
type tokenClass int8

const (
	classNone tokenClass = iota
	// classNumber is a literal or a variable.
	classNumber
	classOperator
	classFunction
	classOpen
	classClose
)

// compilation holds the state of a single call to Compile.
type compilation struct {
	src string
	c   *Compiler
	// out is the program being built.
	out []instr
	// ops holds operators, functions, and open brackets awaiting output.
	ops *deque.Deque[instr]
	// last is the class of the previous token, and lastTok the token itself.
	last    tokenClass
	lastTok lexToken
}

// Compile compiles an expression into a program that Eval evaluates. Any
// previously compiled program is discarded first, so if compiling fails, there
// is no program afterward.
//
// Identifiers in src must name built-in functions or variables and custom
// functions defined at the time of compiling. Their values are looked up
// whenever the program is evaluated, so defining them anew changes the result
// of Eval without compiling again.
func (c *Compiler) Compile(src string) error {
	c.prog = nil
	c.src = src
	p := compilation{
		src: src,
		c:   c,
		ops: new(deque.Deque[instr]),
	}
	prog, err := p.run()
	if err != nil {
		return err
	}
	c.prog = prog
	return nil
}

func (p *compilation) run() ([]instr, error) {
	var cur cursor
	for {
		tok, next := scan(p.src, cur)
		if tok.kind == tokenEOF {
			return p.finish(tok)
		}
		if err := p.token(tok); err != nil {
			return nil, err
		}
		p.lastTok = tok
		cur = next
	}
}

// token compiles one token.
func (p *compilation) token(tok lexToken) error {
	switch tok.kind {
	case tokenNum:
		switch p.last {
		case classNumber:
			return p.error(tok, "consecutive numbers")
		case classClose:
			return p.error(tok, "missing operator before")
		}
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// Out of range values are ±Inf, which is fine.
			return p.error(tok, "invalid number")
		}
		p.out = append(p.out, instr{kind: instrNum, val: v})
		p.last = classNumber
	case tokenOpen:
		switch p.last {
		case classClose:
			return p.error(tok, "missing operator or function before bracket")
		case classNumber:
			return p.error(tok, "missing operator before bracket")
		}
		p.ops.PushBack(instr{kind: instrOpen, pos: tok.pos})
		p.last = classOpen
	case tokenClose:
		switch p.last {
		case classOpen:
			return p.error(tok, "empty brackets")
		case classOperator, classFunction:
			return p.error(tok, "missing operand before")
		}
		if !p.popBracket() {
			return p.error(tok, "close bracket with no open bracket")
		}
		p.last = classClose
	case tokenOp:
		return p.operator(tok)
	case tokenIdent:
		return p.ident(tok)
	case tokenInvalid:
		return p.error(tok, "invalid character")
	default:
		panic("vfpu: unknown token: " + tok.String())
	}
	return nil
}

// operator compiles an operator token.
func (p *compilation) operator(tok lexToken) error {
	op := binop(tok.text)
	if op.kind == instrNone {
		panic("vfpu: unknown operator: " + tok.String())
	}
	if (p.last == classOperator || p.last == classFunction) && op.kind != instrSub {
		return p.error(tok, "unexpected operator")
	}
	if op.kind == instrSub && p.last != classNumber && p.last != classClose {
		op = instr{kind: instrNeg}
	}
	switch {
	case op.kind == instrNeg:
		// Negation is prefix, so nothing on the stack can be its operand.
		p.ops.PushBack(op)
	case p.last == classNone || p.last == classOpen:
		return p.error(tok, "unexpected operator")
	default:
		p.pushOperator(op)
	}
	p.last = classOperator
	return nil
}

// ident compiles an identifier as a function or variable.
func (p *compilation) ident(tok lexToken) error {
	if fn := globalfuncs[tok.text]; fn != nil {
		return p.function(tok, instr{kind: instrCall, name: tok.text, fn: fn})
	}
	if p.c.IsVarDefined(tok.text) {
		if p.last == classClose {
			return p.error(tok, "missing operator before")
		}
		if p.last == classNumber {
			p.pushOperator(instr{kind: instrMul})
		}
		p.out = append(p.out, instr{kind: instrVar, name: tok.text})
		p.last = classNumber
		return nil
	}
	if p.c.IsFuncDefined(tok.text) {
		return p.function(tok, instr{kind: instrCustom, name: tok.text})
	}
	return &SyntaxError{
		Col:     tok.pos,
		Token:   tok.text,
		Msg:     "unknown identifier",
		Src:     p.src,
		Unknown: true,
		Suggest: p.suggest(tok.text),
	}
}

// function compiles a built-in or custom function name.
func (p *compilation) function(tok lexToken, fn instr) error {
	switch p.last {
	case classFunction:
		return p.error(tok, "consecutive functions")
	case classClose:
		return p.error(tok, "missing operator before")
	case classNumber:
		p.pushOperator(instr{kind: instrMul})
	}
	p.pushFunction(fn)
	p.last = classFunction
	return nil
}

// pushOperator pushes a binary operator after moving every stacked entry that
// binds at least as tightly to the output. Right-associative operators move
// only entries that bind strictly tighter.
func (p *compilation) pushOperator(op instr) {
	for p.ops.Len() > 0 {
		top := p.ops.Back()
		if top.kind == instrOpen {
			break
		}
		if top.prec() < op.prec() || top.prec() == op.prec() && op.rightAssoc() {
			break
		}
		p.out = append(p.out, p.ops.PopBack())
	}
	p.ops.PushBack(op)
}

// pushFunction pushes a function after moving stacked entries that bind
// strictly tighter to the output. Unlike pushOperator, entries of equal
// precedence stay, so nested function applications keep their order.
func (p *compilation) pushFunction(fn instr) {
	for p.ops.Len() > 0 {
		top := p.ops.Back()
		if top.kind == instrOpen || top.prec() <= fn.prec() {
			break
		}
		p.out = append(p.out, p.ops.PopBack())
	}
	p.ops.PushBack(fn)
}

// popBracket moves stacked entries to the output up to the nearest open
// bracket, which it discards. Returns false if there is no open bracket.
func (p *compilation) popBracket() bool {
	for p.ops.Len() > 0 {
		top := p.ops.PopBack()
		if top.kind == instrOpen {
			return true
		}
		p.out = append(p.out, top)
	}
	return false
}

// finish checks the end of the expression and moves the remaining stack to
// the output.
func (p *compilation) finish(eof lexToken) ([]instr, error) {
	switch p.last {
	case classNone:
		return nil, p.error(eof, "empty expression")
	case classOperator, classFunction:
		return nil, p.error(p.lastTok, "missing operand after")
	}
	for p.ops.Len() > 0 {
		top := p.ops.PopBack()
		if top.kind == instrOpen {
			return nil, &SyntaxError{Col: top.pos, Token: "(", Msg: "unclosed bracket", Src: p.src}
		}
		p.out = append(p.out, top)
	}
	return p.out, nil
}

func (p *compilation) error(tok lexToken, msg string) error {
	return &SyntaxError{Col: tok.pos, Token: tok.text, Msg: msg, Src: p.src}
}

// suggest finds the defined name closest to an unknown identifier. The result
// is empty if nothing is close.
func (p *compilation) suggest(name string) string {
	names := append(p.c.Vars(), p.c.Funcs()...)
	names = append(names, Builtins()...)
	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
