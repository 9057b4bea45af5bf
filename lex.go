package vfpu

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a run of digits and dots.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open bracket.
	tokenOpen
	// tokenClose is a close bracket.
	tokenClose
	// tokenInvalid is a single rune that cannot begin any token.
	tokenInvalid
)

var tokenKindNames = [...]string{
	tokenNone:    "None",
	tokenEOF:     "EOF",
	tokenNum:     "Num",
	tokenIdent:   "Ident",
	tokenOp:      "Op",
	tokenOpen:    "Open",
	tokenClose:   "Close",
	tokenInvalid: "Invalid",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

// cursor is a position in the source text. The zero value is the start.
type cursor struct {
	// off is the byte offset.
	off int
	// col is the number of runes before off.
	col int
}

// scan returns the token at or after c and the cursor just past it. At the end
// of the input, the result is a tokenEOF token and c is unchanged apart from
// skipped whitespace. scan holds no state, so any cursor it has returned can
// be passed back to scan the rest of the input again.
func scan(src string, c cursor) (lexToken, cursor) {
	for c.off < len(src) {
		r, sz := utf8.DecodeRuneInString(src[c.off:])
		if !unicode.IsSpace(r) {
			break
		}
		c.off += sz
		c.col++
	}
	tok := lexToken{pos: c.col + 1}
	if c.off >= len(src) {
		tok.kind = tokenEOF
		return tok, c
	}
	start := c.off
	r, sz := utf8.DecodeRuneInString(src[c.off:])
	switch {
	case strings.ContainsRune(Operators, r):
		tok.kind = tokenOp
	case r == '(':
		tok.kind = tokenOpen
	case r == ')':
		tok.kind = tokenClose
	case isdigit(r), r == '.':
		c = scanNum(src, c)
		tok.kind = tokenNum
		tok.text = src[start:c.off]
		return tok, c
	case unicode.IsLetter(r):
		c = scanIdent(src, c)
		tok.kind = tokenIdent
		tok.text = src[start:c.off]
		return tok, c
	default:
		tok.kind = tokenInvalid
	}
	tok.text = src[start : start+sz]
	c.off += sz
	c.col++
	return tok, c
}

// scanNum advances over a run of digits and dots. A letter ends the run
// without being consumed, so 4sin is a number followed by an identifier.
func scanNum(src string, c cursor) cursor {
	for c.off < len(src) {
		r, sz := utf8.DecodeRuneInString(src[c.off:])
		if !isdigit(r) && r != '.' {
			return c
		}
		c.off += sz
		c.col++
	}
	return c
}

// scanIdent advances over letters, digits, and dots.
func scanIdent(src string, c cursor) cursor {
	for c.off < len(src) {
		r, sz := utf8.DecodeRuneInString(src[c.off:])
		if !unicode.IsLetter(r) && !isdigit(r) && r != '.' {
			return c
		}
		c.off += sz
		c.col++
	}
	return c
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// validIdent reports whether name is usable as a variable or function name:
// non-empty, starting with a letter, and otherwise only letters and digits.
func validIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && isdigit(r):
		default:
			return false
		}
	}
	return true
}
