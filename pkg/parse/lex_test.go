package parse

import (
	"testing"

	"github.com/nalgeon/be"
)

type tok struct {
	Type Type
	Text string
}

func lexSimple(src string) []tok {
	var toks []tok
	for _, t := range Lex(src) {
		if t.Type == EOF {
			break
		}
		toks = append(toks, tok{t.Type, t.Text})
	}
	return toks
}

var lexTests = []struct {
	name string
	src  string
	want []tok
}{
	{"keywords are case-insensitive", `print x`,
		[]tok{{Keyword, "PRINT"}, {Ident, "X"}}},
	{"question mark is PRINT", `?"HI"`,
		[]tok{{Keyword, "PRINT"}, {StringTok, "HI"}}},
	{"compound keywords", `CHR$(65)+LEFT$(A$,1)`,
		[]tok{{Keyword, "CHR$"}, {Op, "("}, {NumberTok, "65"}, {Op, ")"}, {Op, "+"},
			{Keyword, "LEFT$"}, {Op, "("}, {Ident, "A$"}, {Op, ","}, {NumberTok, "1"}, {Op, ")"}}},
	{"colon keywords", `HIMEM:16384`,
		[]tok{{Keyword, "HIMEM:"}, {NumberTok, "16384"}}},
	{"hash keywords", `PR#3`,
		[]tok{{Keyword, "PR#"}, {NumberTok, "3"}}},
	{"keyword glued to number", `GOTO100`,
		[]tok{{Keyword, "GOTO"}, {NumberTok, "100"}}},
	{"relational operators", `A<=B>=C<>D=<E`,
		[]tok{{Ident, "A"}, {Op, "<="}, {Ident, "B"}, {Op, ">="}, {Ident, "C"},
			{Op, "<>"}, {Ident, "D"}, {Op, "<="}, {Ident, "E"}}},
	{"scientific notation", `1.5E+3 .25 2E`,
		[]tok{{NumberTok, "1.5E+3"}, {NumberTok, ".25"}, {NumberTok, "2"}, {Ident, "E"}}},
	{"unterminated string", `PRINT "ABC`,
		[]tok{{Keyword, "PRINT"}, {StringTok, "ABC"}}},
	{"suffixed identifiers", `A% B$ C1`,
		[]tok{{Ident, "A%"}, {Ident, "B$"}, {Ident, "C1"}}},
	{"parameters stay in identifiers", `OPEN F$,L#128,@#3`,
		[]tok{{Keyword, "OPEN"}, {Ident, "F$"}, {Op, ","}, {Ident, "L#128"},
			{Op, ","}, {Ident, "@#3"}}},
	{"data runs to colon", `DATA 1, "A:B" ,X:PRINT`,
		[]tok{{Keyword, "DATA"}, {DataTok, ` 1, "A:B" ,X`}, {Op, ":"}, {Keyword, "PRINT"}}},
	{"remark runs to end of line", `REM HI: THERE`,
		[]tok{{Keyword, "REM"}, {Remark, " HI: THERE"}}},
	{"unknown characters", `A & B`,
		[]tok{{Ident, "A"}, {Nop, "&"}, {Ident, "B"}}},
	{"newline", "A\nB",
		[]tok{{Ident, "A"}, {Newline, "\n"}, {Ident, "B"}}},
}

func TestLex(t *testing.T) {
	for _, test := range lexTests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, lexSimple(test.src), test.want)
		})
	}
}

func TestLex_Positions(t *testing.T) {
	toks := Lex(`PRINT  12`)
	be.Equal(t, len(toks), 3)
	be.Equal(t, toks[1].From, 7)
	be.Equal(t, toks[1].To, 9)
	be.Equal(t, toks[1].Num, 12.0)
	be.Equal(t, toks[2].Type, EOF)
}

func TestLex_NumberValue(t *testing.T) {
	toks := Lex(`1.5E3`)
	be.Equal(t, toks[0].Num, 1500.0)
}

func TestKeywords(t *testing.T) {
	be.True(t, IsKeyword("PRINT"))
	be.True(t, IsKeyword("MID$"))
	be.True(t, !IsKeyword("PRINTX"))
	be.True(t, IsBuiltin("SQR"))
	be.True(t, !IsBuiltin("GOTO"))
	ws := Keywords()
	for i := 1; i < len(ws); i++ {
		be.True(t, ws[i-1] < ws[i])
	}
}
