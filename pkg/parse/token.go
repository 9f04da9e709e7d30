package parse

import (
	"fmt"

	"src.abasic.dev/pkg/diag"
)

// Type is the type of a Token.
type Type int

// Possible values for Type.
const (
	EOF Type = iota
	Newline
	NumberTok
	StringTok
	Ident
	Keyword
	// Op covers operators and delimiters such as "+", "<=", ",", ":" and "(".
	Op
	// DataTok is the raw remainder of a DATA statement.
	DataTok
	// Remark is the remainder of the line after REM.
	Remark
	// Nop is a character with no meaning in the language. The parser skips
	// these.
	Nop
)

var typeNames = [...]string{
	EOF:       "EOF",
	Newline:   "Newline",
	NumberTok: "Number",
	StringTok: "String",
	Ident:     "Ident",
	Keyword:   "Keyword",
	Op:        "Op",
	DataTok:   "Data",
	Remark:    "Remark",
	Nop:       "Nop",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Token is a lexical unit of a source line.
//
// Text is the canonical spelling of the token: keywords and identifiers are
// upper-cased, strings have their quotes removed and numbers keep their
// literal text. Num is only meaningful for NumberTok tokens.
type Token struct {
	Type Type
	Text string
	Num  float64
	diag.Ranging
}

func (t Token) String() string {
	return fmt.Sprintf("%v %q", t.Type, t.Text)
}

func (t Token) is(typ Type, text string) bool {
	return t.Type == typ && t.Text == text
}

func (t Token) isOp(text string) bool { return t.is(Op, text) }

func (t Token) isKeyword(text string) bool { return t.is(Keyword, text) }
