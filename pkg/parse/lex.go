package parse

import (
	"strings"

	"src.abasic.dev/pkg/diag"
	"src.abasic.dev/pkg/eval/vals"
)

// Lex splits src into tokens. The result always ends with an EOF token.
//
// Keywords are recognized only as whole words, except that a keyword directly
// followed by digits ("GOTO100") is split into the keyword and a number.
// Characters with no meaning in the language become Nop tokens.
func Lex(src string) []Token {
	lx := &lexer{src: src}
	for lx.pos < len(src) {
		lx.lexOne()
	}
	lx.emit(EOF, "", len(src))
	return lx.toks
}

type lexer struct {
	src  string
	pos  int
	toks []Token
}

func (lx *lexer) emit(typ Type, text string, from int) {
	lx.toks = append(lx.toks, Token{
		Type: typ, Text: text, Ranging: diag.Ranging{From: from, To: lx.pos}})
}

func (lx *lexer) peekAt(i int) byte {
	if lx.pos+i < len(lx.src) {
		return lx.src[lx.pos+i]
	}
	return 0
}

func (lx *lexer) lexOne() {
	from := lx.pos
	c := lx.src[lx.pos]
	switch {
	case c == ' ' || c == '\t' || c == '\r':
		lx.pos++
	case c == '\n':
		lx.pos++
		lx.emit(Newline, "\n", from)
	case c == '"':
		lx.lexString()
	case isDigit(c) || (c == '.' && isDigit(lx.peekAt(1))):
		lx.lexNumber()
	case isLetter(c):
		lx.lexWord()
	case c == '@' && lx.peekAt(1) == '#' && isDigit(lx.peekAt(2)):
		lx.pos++
		lx.scanParam()
		lx.emit(Ident, lx.src[from:lx.pos], from)
	case c == '?':
		lx.pos++
		lx.emit(Keyword, "PRINT", from)
	case c == '<' || c == '>' || c == '=':
		lx.pos++
		if d := lx.peekAt(0); d != c && (d == '<' || d == '>' || d == '=') {
			lx.pos++
		}
		lx.emit(Op, normalizeRelOp(lx.src[from:lx.pos]), from)
	case strings.IndexByte("+-*/^(),;:", c) >= 0:
		lx.pos++
		lx.emit(Op, string(c), from)
	default:
		lx.pos++
		lx.emit(Nop, string(c), from)
	}
}

func normalizeRelOp(s string) string {
	switch s {
	case "=<":
		return "<="
	case "=>":
		return ">="
	case "><":
		return "<>"
	}
	return s
}

func (lx *lexer) lexString() {
	from := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '"' && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	text := lx.src[from+1 : lx.pos]
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
		lx.pos++
	}
	lx.emit(StringTok, text, from)
}

func (lx *lexer) lexNumber() {
	from := lx.pos
	n := scanNumber(lx.src[lx.pos:])
	lx.pos += n
	text := lx.src[from:lx.pos]
	v, _ := vals.ParseNumber(text)
	lx.emit(NumberTok, text, from)
	lx.toks[len(lx.toks)-1].Num = v
}

// scanNumber returns the length of the numeric literal at the start of s.
func scanNumber(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'E' || s[i] == 'e') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func (lx *lexer) lexWord() {
	from := lx.pos
	for lx.pos < len(lx.src) && isLetter(lx.src[lx.pos]) {
		lx.pos++
	}
	letterEnd := lx.pos
	for lx.pos < len(lx.src) && (isLetter(lx.src[lx.pos]) || isDigit(lx.src[lx.pos])) {
		lx.pos++
	}
	if c := lx.peekAt(0); c == '$' || c == '%' {
		lx.pos++
	}
	word := strings.ToUpper(lx.src[from:lx.pos])
	letters := strings.ToUpper(lx.src[from:letterEnd])

	switch {
	case keywords[word]:
	case keywords[letters] && letterEnd < lx.pos && allDigits(lx.src[letterEnd:lx.pos]):
		lx.pos = letterEnd
		word = letters
	case (word == "HIMEM" || word == "LOMEM") && lx.peekAt(0) == ':':
		lx.pos++
		word += ":"
	case (word == "PR" || word == "IN") && lx.peekAt(0) == '#':
		lx.pos++
		word += "#"
	default:
		if lx.peekAt(0) == '#' && isDigit(lx.peekAt(1)) {
			lx.scanParam()
			word = strings.ToUpper(lx.src[from:lx.pos])
		}
		lx.emit(Ident, word, from)
		return
	}
	lx.emit(Keyword, word, from)
	switch word {
	case "REM":
		lx.lexRest(Remark, "\n")
	case "DATA":
		lx.lexData()
	}
}

// scanParam consumes a "#digits" suffix.
func (lx *lexer) scanParam() {
	lx.pos++
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
}

func (lx *lexer) lexRest(typ Type, stops string) {
	from := lx.pos
	for lx.pos < len(lx.src) && strings.IndexByte(stops, lx.src[lx.pos]) < 0 {
		lx.pos++
	}
	lx.emit(typ, lx.src[from:lx.pos], from)
}

// lexData consumes the rest of a DATA statement, stopping at a colon outside
// quotes or the end of the line.
func (lx *lexer) lexData() {
	from := lx.pos
	quoted := false
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '\n' || (c == ':' && !quoted) {
			break
		}
		if c == '"' {
			quoted = !quoted
		}
		lx.pos++
	}
	lx.emit(DataTok, lx.src[from:lx.pos], from)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}
