// Package parse implements the lexer and parser for BASIC source lines.
//
// The parser is a hand-written recursive-descent parser that works on the
// token stream produced by Lex. It stops at the first error, which always
// has type *Error.
package parse

import (
	"fmt"
	"strings"

	"src.abasic.dev/pkg/diag"
)

// MaxLine is the largest valid line number.
const MaxLine = 63999

// Error is a syntax error.
type Error struct {
	Message string
	Context diag.Context
}

func (e *Error) toDiag() *diag.Error {
	return &diag.Error{Type: "syntax error", Message: e.Message, Context: e.Context}
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string { return e.toDiag().Error() }

// Range returns the range of the culprit.
func (e *Error) Range() diag.Ranging { return e.Context.Range() }

// Show shows the error with the culprit highlighted.
func (e *Error) Show(indent string) string { return e.toDiag().Show(indent) }

// SyntaxKind marks Error as a syntax error for errs.KindOf.
func (*Error) SyntaxKind() {}

// Parse lexes and parses the statements of src. The name is used in error
// messages.
func Parse(name, src string) ([]Stmt, error) {
	return ParseTokens(name, src, Lex(src))
}

// ParseTokens parses statements from tokens produced by Lex(src).
func ParseTokens(name, src string, toks []Token) (stmts []Stmt, err error) {
	ps := newParser(name, src, toks)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(*Error); ok {
			stmts, err = nil, e
			return
		}
		panic(r)
	}()
	stmts = ps.stmtList(false)
	return stmts, nil
}

// ParseExpr parses src as a single expression.
func ParseExpr(name, src string) (x Expr, err error) {
	ps := newParser(name, src, Lex(src))
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(*Error); ok {
			x, err = nil, e
			return
		}
		panic(r)
	}()
	x = ps.expr()
	if t := ps.peek(); t.Type != EOF {
		ps.errorf(t, "unexpected %s", describe(t))
	}
	return x, nil
}

// SplitLineNumber splits a leading line number from src. It returns ok ==
// false if src does not start with digits after optional blanks.
func SplitLineNumber(src string) (n int, rest string, ok bool) {
	s := strings.TrimLeft(src, " \t")
	i := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		if n > 10*MaxLine {
			n = 10 * MaxLine
		}
		i++
	}
	if i == 0 {
		return 0, src, false
	}
	return n, strings.TrimLeft(s[i:], " "), true
}

type parser struct {
	name string
	src  string
	toks []Token
	pos  int
}

func newParser(name, src string, toks []Token) *parser {
	filtered := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != Nop {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 || filtered[len(filtered)-1].Type != EOF {
		filtered = append(filtered, Token{Type: EOF, Ranging: diag.PointRanging(len(src))})
	}
	return &parser{name: name, src: src, toks: filtered}
}

func (ps *parser) peek() Token { return ps.toks[ps.pos] }

func (ps *parser) peekN(n int) Token {
	if ps.pos+n < len(ps.toks) {
		return ps.toks[ps.pos+n]
	}
	return ps.toks[len(ps.toks)-1]
}

func (ps *parser) next() Token {
	t := ps.toks[ps.pos]
	if t.Type != EOF {
		ps.pos++
	}
	return t
}

// last returns the most recently consumed token.
func (ps *parser) last() Token {
	if ps.pos == 0 {
		return ps.toks[0]
	}
	return ps.toks[ps.pos-1]
}

func (ps *parser) errorf(r diag.Ranger, format string, args ...any) {
	panic(&Error{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(ps.name, ps.src, r),
	})
}

func (ps *parser) expectOp(op string) Token {
	t := ps.peek()
	if !t.isOp(op) {
		ps.errorf(t, "expected %q, got %s", op, describe(t))
	}
	return ps.next()
}

func (ps *parser) expectKeyword(kw string) Token {
	t := ps.peek()
	if !t.isKeyword(kw) {
		ps.errorf(t, "expected %s, got %s", kw, describe(t))
	}
	return ps.next()
}

func (ps *parser) acceptOp(op string) bool {
	if ps.peek().isOp(op) {
		ps.next()
		return true
	}
	return false
}

func (ps *parser) acceptKeyword(kw string) bool {
	if ps.peek().isKeyword(kw) {
		ps.next()
		return true
	}
	return false
}

// span returns the range from the start of t to the end of the last
// consumed token.
func (ps *parser) span(t Token) diag.Ranging {
	return diag.Ranging{From: t.From, To: ps.last().To}
}

// endOfStmt reports whether the next token ends the current statement.
func (ps *parser) endOfStmt() bool { return endsStmt(ps.peek()) }

func endsStmt(t Token) bool {
	return t.Type == EOF || t.Type == Newline || t.isOp(":") || t.isKeyword("ELSE")
}

func (ps *parser) lineNumber() int {
	t := ps.peek()
	if t.Type != NumberTok || strings.ContainsAny(t.Text, ".Ee") || t.Num > MaxLine {
		ps.errorf(t, "expected line number, got %s", describe(t))
	}
	ps.next()
	return int(t.Num)
}

func describe(t Token) string {
	switch t.Type {
	case EOF:
		return "end of line"
	case Newline:
		return "newline"
	case StringTok:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

// stmtList parses statements separated by colons. Inside the branches of an
// IF it stops before ELSE and at the end of the line.
func (ps *parser) stmtList(inIf bool) []Stmt {
	var stmts []Stmt
	for {
		t := ps.peek()
		switch {
		case t.isOp(":"):
			ps.next()
			continue
		case t.Type == Newline:
			if inIf {
				return stmts
			}
			ps.next()
			continue
		case t.Type == EOF:
			return stmts
		case t.isKeyword("ELSE"):
			if inIf {
				return stmts
			}
			ps.errorf(t, "ELSE without IF")
		}
		stmts = append(stmts, ps.statement())
		if !ps.endOfStmt() {
			t := ps.peek()
			ps.errorf(t, "unexpected %s", describe(t))
		}
	}
}
