package parse

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"src.abasic.dev/pkg/diag"
	"src.abasic.dev/pkg/eval/vals"
)

var astOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.IgnoreTypes(diag.Ranging{}),
	cmpopts.EquateEmpty(),
}

func num(x float64) *Number { return &Number{Value: x} }

func str(s string) *String { return &String{Value: s} }

func v(name string) *Var { return &Var{Name: name} }

func bin(op vals.Op, l, r Expr) *Binary { return &Binary{Op: op, L: l, R: r} }

var parseTests = []struct {
	src  string
	want []Stmt
}{
	// Precedence
	{`A=1+2*3`, []Stmt{&Let{Target: v("A"),
		Value: bin(vals.OpAdd, num(1), bin(vals.OpMul, num(2), num(3)))}}},
	{`A=2^3^2`, []Stmt{&Let{Target: v("A"),
		Value: bin(vals.OpPow, bin(vals.OpPow, num(2), num(3)), num(2))}}},
	{`A=-2^2`, []Stmt{&Let{Target: v("A"),
		Value: &Unary{Op: '-', X: bin(vals.OpPow, num(2), num(2))}}}},
	{`A=2^-1`, []Stmt{&Let{Target: v("A"),
		Value: bin(vals.OpPow, num(2), &Unary{Op: '-', X: num(1)})}}},
	{`A=NOT B=C`, []Stmt{&Let{Target: v("A"),
		Value: &Not{X: bin(vals.OpEq, v("B"), v("C"))}}}},
	{`A=B OR C AND D`, []Stmt{&Let{Target: v("A"),
		Value: bin(vals.OpOr, v("B"), bin(vals.OpAnd, v("C"), v("D")))}}},
	{`A=7 MOD 3*2`, []Stmt{&Let{Target: v("A"),
		Value: bin(vals.OpMul, bin(vals.OpMod, num(7), num(3)), num(2))}}},
	{`A=(1+2)*3`, []Stmt{&Let{Target: v("A"),
		Value: bin(vals.OpMul, bin(vals.OpAdd, num(1), num(2)), num(3))}}},
	// Calls
	{`A$=MID$(B$,2,3)`, []Stmt{&Let{Target: v("A$"),
		Value: &Call{Func: "MID$", Args: []Expr{v("B$"), num(2), num(3)}}}}},
	{`A=FN SQ(2)+FNSQ(3)`, []Stmt{&Let{Target: v("A"),
		Value: bin(vals.OpAdd, &FnCall{Name: "FNSQ", Arg: num(2)}, &FnCall{Name: "FNSQ", Arg: num(3)})}}},
	{`LET B(1,2)=X(3)`, []Stmt{&Let{
		Target: &Index{Name: "B", Subs: []Expr{num(1), num(2)}},
		Value:  &Index{Name: "X", Subs: []Expr{num(3)}}}}},
	// PRINT
	{`PRINT "A";B,`, []Stmt{&Print{Items: []PrintItem{
		{PrintExpr, str("A")}, {PrintSemi, nil}, {PrintExpr, v("B")}, {PrintComma, nil}}}}},
	{`?TAB(5)"X"`, []Stmt{&Print{Newline: true, Items: []PrintItem{
		{PrintTab, num(5)}, {PrintExpr, str("X")}}}}},
	{`PRINT`, []Stmt{&Print{Newline: true}}},
	// IF
	{`IF A THEN 100`, []Stmt{&If{Cond: v("A"),
		Then: []Stmt{&Jump{Keyword: "GOTO", Line: 100}}}}},
	{`IF A GOTO 100`, []Stmt{&If{Cond: v("A"),
		Then: []Stmt{&Jump{Keyword: "GOTO", Line: 100}}}}},
	{`IF A THEN PRINT 1: PRINT 2 ELSE 30`, []Stmt{&If{Cond: v("A"),
		Then: []Stmt{
			&Print{Newline: true, Items: []PrintItem{{PrintExpr, num(1)}}},
			&Print{Newline: true, Items: []PrintItem{{PrintExpr, num(2)}}}},
		Else: []Stmt{&Jump{Keyword: "GOTO", Line: 30}}}}},
	// Loops
	{`FOR I=1 TO 10 STEP 2: NEXT I,J`, []Stmt{
		&For{Var: "I", From: num(1), To: num(10), Step: num(2)},
		&Next{Vars: []string{"I", "J"}}}},
	{`WHILE X<3: WEND`, []Stmt{
		&While{Cond: bin(vals.OpLt, v("X"), num(3))},
		&Command{Keyword: "WEND"}}},
	// Data
	{`DATA 1, "A,B" , X Y`, []Stmt{&Data{Items: []DataItem{
		{"1", false}, {"A,B", true}, {"X Y", false}}}}},
	{`READ A,B$(1)`, []Stmt{&Read{Targets: []LValue{
		v("A"), &Index{Name: "B$", Subs: []Expr{num(1)}}}}}},
	{`RESTORE 20`, []Stmt{&Restore{Line: 20}}},
	{`RESTORE "VARS"`, []Stmt{&Restore{Line: NoLine, File: str("VARS")}}},
	{`DIM A(5),B$(2,3)`, []Stmt{&Dim{Arrays: []*Index{
		{Name: "A", Subs: []Expr{num(5)}},
		{Name: "B$", Subs: []Expr{num(2), num(3)}}}}}},
	// Flow
	{`ON X GOSUB 10,20`, []Stmt{&On{Index: v("X"), Gosub: true, Lines: []int{10, 20}}}},
	{`ONERR GOTO 100`, []Stmt{&OnErr{Line: 100}}},
	{`DEF FN F(X)=X*2`, []Stmt{&DefFn{Name: "FNF", Param: "X",
		Body: bin(vals.OpMul, v("X"), num(2))}}},
	{`INPUT "NAME";N$`, []Stmt{&Input{Prompt: "NAME", HasPrompt: true,
		Targets: []LValue{v("N$")}}}},
	{`LIST 10-`, []Stmt{&List{From: 10, To: NoLine}}},
	{`LIST 10`, []Stmt{&List{From: 10, To: 10}}},
	{`RUN`, []Stmt{&Run{Line: NoLine}}},
	{`REM HELLO`, []Stmt{&Rem{Text: " HELLO"}}},
	// Text, memory and graphics
	{`COLOR=3:HTAB 5`, []Stmt{
		&ExprStmt{Keyword: "COLOR", X: num(3)},
		&ExprStmt{Keyword: "HTAB", X: num(5)}}},
	{`POKE 768,0:WAIT 49152,128`, []Stmt{
		&Poke{Addr: num(768), Value: num(0)},
		&Wait{Addr: num(49152), Mask: num(128)}}},
	{`HLIN 1,10 AT 5`, []Stmt{&Lin{Keyword: "HLIN", A: num(1), B: num(10), At: num(5)}}},
	{`HPLOT TO 1,2 TO 3,4`, []Stmt{&HPlot{FromLast: true, Points: []Point{
		{num(1), num(2)}, {num(3), num(4)}}}}},
	{`DRAW 1 AT 10,20`, []Stmt{&Draw{Keyword: "DRAW", Shape: num(1),
		At: &Point{num(10), num(20)}}}},
	{`STORE A:RECALL B`, []Stmt{
		&StoreArray{Keyword: "STORE", Array: "A"},
		&StoreArray{Keyword: "RECALL", Array: "B"}}},
	{`STORE "GAME"`, []Stmt{&StoreVars{Name: str("GAME")}}},
	// Files
	{`OPEN F$,L#128`, []Stmt{&FileCmd{Keyword: "OPEN", Name: v("F$"),
		Params: map[byte]int{'L': 128}}}},
	{`RENAME "A","B"`, []Stmt{&FileCmd{Keyword: "RENAME", Name: str("A"),
		Name2: str("B"), Params: map[byte]int{}}}},
	{`CATALOG`, []Stmt{&FileCmd{Keyword: "CATALOG", Params: map[byte]int{}}}},
	{`SAVE "PROG"`, []Stmt{&Program{Keyword: "SAVE", File: str("PROG")}}},
	// Unknown characters are skipped.
	{`PRINT & 1`, []Stmt{&Print{Newline: true, Items: []PrintItem{{PrintExpr, num(1)}}}}},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		got, err := Parse("test", test.src)
		if err != nil {
			t.Errorf("Parse(%q) -> error %v", test.src, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, astOpts...); diff != "" {
			t.Errorf("Parse(%q) (-want +got):\n%s", test.src, diff)
		}
	}
}

var badSyntax = []string{
	`PRINT (1`,
	`A=`,
	`GOTO X`,
	`FOR I=1`,
	`IF A PRINT`,
	`DEF FN(X)=1`,
	`A=SQR(1,2)`,
	`ELSE 10`,
	`NEXT 1`,
	`DEL 10`,
	`RENAME "A"`,
	`OPEN "F",Z9`,
	`10`,
	`GOTO 70000`,
	`RECALL "X"`,
}

func TestParse_Errors(t *testing.T) {
	for _, src := range badSyntax {
		_, err := Parse("test", src)
		if err == nil {
			t.Errorf("Parse(%q) -> no error, want syntax error", src)
			continue
		}
		var pe *Error
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) -> error of type %T, want *Error", src, err)
		}
	}
}

func TestParse_ErrorContext(t *testing.T) {
	_, err := Parse("line 10", `PRINT 1 2)`)
	pe := err.(*Error)
	if got := pe.Context.Culprit(); got != ")" {
		t.Errorf("culprit = %q, want %q", got, ")")
	}
	if got := pe.Context.Name; got != "line 10" {
		t.Errorf("name = %q, want %q", got, "line 10")
	}
}

var (
	_ error       = (*Error)(nil)
	_ diag.Shower = (*Error)(nil)
	_ diag.Ranger = (*Error)(nil)
)

func TestError_Methods(t *testing.T) {
	_, err := Parse("line 10", `PRINT 1 2)`)
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("got error of type %T, want *Error", err)
	}
	if got, want := err.Error(), "syntax error: line 10:10: "; !strings.HasPrefix(got, want) {
		t.Errorf("Error() = %q, want prefix %q", got, want)
	}
	if got, want := pe.Range(), (diag.Ranging{From: 9, To: 10}); got != want {
		t.Errorf("Range() = %v, want %v", got, want)
	}
	if got := pe.Show(""); !strings.Contains(got, "line 10, col 10") {
		t.Errorf("Show() = %q, want it to locate the culprit", got)
	}
}

func TestParseExpr(t *testing.T) {
	x, err := ParseExpr("expr", `LEN("AB")*2`)
	if err != nil {
		t.Fatal(err)
	}
	want := bin(vals.OpMul, &Call{Func: "LEN", Args: []Expr{str("AB")}}, num(2))
	if diff := cmp.Diff(want, x, astOpts...); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := ParseExpr("expr", `1 2`); err == nil {
		t.Errorf("want error for trailing tokens")
	}
}

func TestSplitLineNumber(t *testing.T) {
	tests := []struct {
		src  string
		n    int
		rest string
		ok   bool
	}{
		{"10 PRINT", 10, "PRINT", true},
		{"  20", 20, "", true},
		{"PRINT 1", 0, "PRINT 1", false},
	}
	for _, test := range tests {
		n, rest, ok := SplitLineNumber(test.src)
		if n != test.n || rest != test.rest || ok != test.ok {
			t.Errorf("SplitLineNumber(%q) -> (%v, %q, %v), want (%v, %q, %v)",
				test.src, n, rest, ok, test.n, test.rest, test.ok)
		}
	}
}

func TestSplitData(t *testing.T) {
	got := SplitData(` "HI" JUNK, 2 ,`)
	want := []DataItem{{"HI", true}, {"2", false}, {"", false}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text string
		want *FileCmd
	}{
		{"", nil},
		{"OPEN DATA.TXT,L128", &FileCmd{Keyword: "OPEN", Name: str("DATA.TXT"),
			Params: map[byte]int{'L': 128}}},
		{"read data.txt,R#3", &FileCmd{Keyword: "READ", Name: str("data.txt"),
			Params: map[byte]int{'R': 3}}},
		{"BSAVE PIC,A$2000,L#16", &FileCmd{Keyword: "BSAVE", Name: str("PIC"),
			Params: map[byte]int{'A': 0x2000, 'L': 16}}},
		{"RENAME OLD,NEW", &FileCmd{Keyword: "RENAME", Name: str("OLD"),
			Name2: str("NEW"), Params: map[byte]int{}}},
		{"CLOSE", &FileCmd{Keyword: "CLOSE", Params: map[byte]int{}}},
	}
	for _, test := range tests {
		got, err := ParseCommand(test.text)
		if err != nil {
			t.Errorf("ParseCommand(%q) -> error %v", test.text, err)
			continue
		}
		if diff := cmp.Diff(test.want, got, astOpts...); diff != "" {
			t.Errorf("ParseCommand(%q) (-want +got):\n%s", test.text, diff)
		}
	}
	for _, bad := range []string{"FROB X", "OPEN", "OPEN F,QQ"} {
		if _, err := ParseCommand(bad); err == nil {
			t.Errorf("ParseCommand(%q) -> no error", bad)
		}
	}
}
