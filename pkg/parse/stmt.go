package parse

import (
	"strings"
)

type stmtParser func(ps *parser, kw Token) Stmt

var stmtParsers map[string]stmtParser

// Statements that consist of their keyword alone.
var bareCommands = []string{
	"CLEAR", "CONT", "END", "FLASH", "GR", "HGR", "HGR2", "HOME", "INVERSE",
	"NEW", "NORMAL", "NOTRACE", "POP", "RESUME", "RETURN", "STOP", "TEXT",
	"TRACE", "WEND",
}

// Statements that take one expression. Those mapped to true are followed by
// "=".
var exprCommands = map[string]bool{
	"CALL": false, "HTAB": false, "VTAB": false, "PR#": false, "IN#": false,
	"HIMEM:": false, "LOMEM:": false,
	"COLOR": true, "HCOLOR": true, "ROT": true, "SCALE": true, "SPEED": true,
}

func init() {
	stmtParsers = map[string]stmtParser{
		"LET":     (*parser).letStmt,
		"PRINT":   (*parser).printStmt,
		"IF":      (*parser).ifStmt,
		"GOTO":    (*parser).jumpStmt,
		"GOSUB":   (*parser).jumpStmt,
		"ON":      (*parser).onStmt,
		"ONERR":   (*parser).onErrStmt,
		"FOR":     (*parser).forStmt,
		"NEXT":    (*parser).nextStmt,
		"WHILE":   (*parser).whileStmt,
		"DIM":     (*parser).dimStmt,
		"DATA":    (*parser).dataStmt,
		"READ":    (*parser).readStmt,
		"RESTORE": (*parser).restoreStmt,
		"INPUT":   (*parser).inputStmt,
		"GET":     (*parser).getStmt,
		"DEF":     (*parser).defStmt,
		"REM":     (*parser).remStmt,
		"RUN":     (*parser).runStmt,
		"LIST":    (*parser).listStmt,
		"DEL":     (*parser).delStmt,
		"POKE":    (*parser).pokeStmt,
		"WAIT":    (*parser).waitStmt,
		"PLOT":    (*parser).plotStmt,
		"HLIN":    (*parser).linStmt,
		"VLIN":    (*parser).linStmt,
		"HPLOT":   (*parser).hplotStmt,
		"DRAW":    (*parser).drawStmt,
		"XDRAW":   (*parser).drawStmt,
		"SHLOAD":  (*parser).shloadStmt,
		"STORE":   (*parser).storeStmt,
		"RECALL":  (*parser).storeStmt,
		"SAVE":    (*parser).programStmt,
		"LOAD":    (*parser).programStmt,
	}
	for _, kw := range bareCommands {
		stmtParsers[kw] = (*parser).bareStmt
	}
	for kw := range exprCommands {
		stmtParsers[kw] = (*parser).exprStmt
	}
	for kw := range fileCommands {
		if _, ok := stmtParsers[kw]; !ok {
			stmtParsers[kw] = (*parser).fileStmt
		}
	}
}

func (ps *parser) statement() Stmt {
	t := ps.peek()
	if t.Type == Ident {
		return ps.assignment(t)
	}
	if t.Type == Keyword {
		if p, ok := stmtParsers[t.Text]; ok {
			ps.next()
			return p(ps, t)
		}
	}
	ps.errorf(t, "expected statement, got %s", describe(t))
	panic("unreachable")
}

func (ps *parser) bareStmt(kw Token) Stmt {
	return &Command{stmtNode{kw.Ranging}, kw.Text}
}

func (ps *parser) exprStmt(kw Token) Stmt {
	if exprCommands[kw.Text] {
		ps.expectOp("=")
	}
	x := ps.expr()
	return &ExprStmt{stmtNode{ps.span(kw)}, kw.Text, x}
}

func (ps *parser) letStmt(kw Token) Stmt {
	l := ps.assignment(ps.peek()).(*Let)
	l.From = kw.From
	return l
}

func (ps *parser) assignment(start Token) Stmt {
	target := ps.lvalue()
	ps.expectOp("=")
	value := ps.expr()
	return &Let{stmtNode{ps.span(start)}, target, value}
}

func (ps *parser) printStmt(kw Token) Stmt {
	p := &Print{Newline: true}
	for !ps.endOfStmt() {
		t := ps.peek()
		switch {
		case t.isOp(";"):
			ps.next()
			p.Items = append(p.Items, PrintItem{Kind: PrintSemi})
		case t.isOp(","):
			ps.next()
			p.Items = append(p.Items, PrintItem{Kind: PrintComma})
		case t.isKeyword("TAB") || t.isKeyword("SPC"):
			ps.next()
			ps.expectOp("(")
			x := ps.expr()
			ps.expectOp(")")
			kind := PrintTab
			if t.Text == "SPC" {
				kind = PrintSpc
			}
			p.Items = append(p.Items, PrintItem{kind, x})
		default:
			p.Items = append(p.Items, PrintItem{PrintExpr, ps.expr()})
		}
	}
	if n := len(p.Items); n > 0 {
		k := p.Items[n-1].Kind
		p.Newline = k != PrintSemi && k != PrintComma
	}
	p.Ranging = ps.span(kw)
	return p
}

func (ps *parser) ifStmt(kw Token) Stmt {
	s := &If{Cond: ps.expr()}
	switch t := ps.peek(); {
	case t.isKeyword("THEN"):
		ps.next()
		s.Then = ps.branch()
	case t.isKeyword("GOTO"):
		ps.next()
		s.Then = append([]Stmt{ps.gotoLine(t)}, ps.stmtList(true)...)
	default:
		ps.errorf(t, "expected THEN or GOTO, got %s", describe(t))
	}
	if ps.acceptKeyword("ELSE") {
		s.Else = ps.branch()
	}
	s.Ranging = ps.span(kw)
	return s
}

// branch parses the statements after THEN or ELSE. A bare line number means
// GOTO.
func (ps *parser) branch() []Stmt {
	if t := ps.peek(); t.Type == NumberTok {
		return append([]Stmt{ps.gotoLine(t)}, ps.stmtList(true)...)
	}
	return ps.stmtList(true)
}

func (ps *parser) gotoLine(start Token) Stmt {
	n := ps.lineNumber()
	return &Jump{stmtNode{ps.span(start)}, "GOTO", n}
}

func (ps *parser) jumpStmt(kw Token) Stmt {
	n := ps.lineNumber()
	return &Jump{stmtNode{ps.span(kw)}, kw.Text, n}
}

func (ps *parser) lineList() []int {
	lines := []int{ps.lineNumber()}
	for ps.acceptOp(",") {
		lines = append(lines, ps.lineNumber())
	}
	return lines
}

func (ps *parser) onStmt(kw Token) Stmt {
	s := &On{Index: ps.expr()}
	switch t := ps.peek(); {
	case t.isKeyword("GOSUB"):
		s.Gosub = true
	case !t.isKeyword("GOTO"):
		ps.errorf(t, "expected GOTO or GOSUB, got %s", describe(t))
	}
	ps.next()
	s.Lines = ps.lineList()
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) onErrStmt(kw Token) Stmt {
	ps.expectKeyword("GOTO")
	n := ps.lineNumber()
	return &OnErr{stmtNode{ps.span(kw)}, n}
}

func (ps *parser) forStmt(kw Token) Stmt {
	s := &For{Var: ps.scalarName()}
	ps.expectOp("=")
	s.From = ps.expr()
	ps.expectKeyword("TO")
	s.To = ps.expr()
	if ps.acceptKeyword("STEP") {
		s.Step = ps.expr()
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) nextStmt(kw Token) Stmt {
	s := &Next{}
	if !ps.endOfStmt() {
		s.Vars = append(s.Vars, ps.scalarName())
		for ps.acceptOp(",") {
			s.Vars = append(s.Vars, ps.scalarName())
		}
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) whileStmt(kw Token) Stmt {
	cond := ps.expr()
	return &While{stmtNode{ps.span(kw)}, cond}
}

func (ps *parser) dimStmt(kw Token) Stmt {
	s := &Dim{}
	for {
		t := ps.peek()
		name := ps.scalarName()
		ps.expectOp("(")
		subs := ps.exprList()
		ps.expectOp(")")
		s.Arrays = append(s.Arrays, &Index{exprNode{ps.span(t)}, name, subs})
		if !ps.acceptOp(",") {
			break
		}
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) dataStmt(kw Token) Stmt {
	t := ps.next()
	if t.Type != DataTok {
		ps.errorf(t, "expected data, got %s", describe(t))
	}
	return &Data{stmtNode{ps.span(kw)}, SplitData(t.Text)}
}

// SplitData splits the raw text of a DATA statement or an INPUT response into
// comma-separated items. Unquoted items are trimmed of blanks; quoted items
// keep their content verbatim and drop anything between the closing quote
// and the next comma.
func SplitData(raw string) []DataItem {
	var items []DataItem
	for {
		s := strings.TrimLeft(raw, " \t")
		var item DataItem
		var rest string
		hasRest := false
		if strings.HasPrefix(s, `"`) {
			item.Quoted = true
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				item.Text = s[1:]
			} else {
				item.Text = s[1 : 1+end]
				s = s[2+end:]
				if i := strings.IndexByte(s, ','); i >= 0 {
					rest, hasRest = s[i+1:], true
				}
			}
		} else {
			if i := strings.IndexByte(s, ','); i >= 0 {
				s, rest, hasRest = s[:i], s[i+1:], true
			}
			item.Text = strings.TrimRight(s, " \t")
		}
		items = append(items, item)
		if !hasRest {
			return items
		}
		raw = rest
	}
}

func (ps *parser) readStmt(kw Token) Stmt {
	targets := ps.lvalueList()
	return &Read{stmtNode{ps.span(kw)}, targets}
}

func (ps *parser) restoreStmt(kw Token) Stmt {
	s := &Restore{Line: NoLine}
	if !ps.endOfStmt() {
		if ps.peek().Type == NumberTok {
			s.Line = ps.lineNumber()
		} else {
			s.File = ps.expr()
		}
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) inputStmt(kw Token) Stmt {
	s := &Input{}
	if t := ps.peek(); t.Type == StringTok && ps.peekN(1).isOp(";") {
		ps.next()
		ps.next()
		s.Prompt, s.HasPrompt = t.Text, true
	}
	s.Targets = ps.lvalueList()
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) getStmt(kw Token) Stmt {
	target := ps.lvalue()
	return &Get{stmtNode{ps.span(kw)}, target}
}

func (ps *parser) defStmt(kw Token) Stmt {
	var name string
	t := ps.peek()
	switch {
	case t.isKeyword("FN"):
		ps.next()
		name = "FN" + ps.scalarName()
	case t.Type == Ident && strings.HasPrefix(t.Text, "FN") && len(t.Text) > 2:
		ps.next()
		name = t.Text
	default:
		ps.errorf(t, "expected FN, got %s", describe(t))
	}
	ps.expectOp("(")
	param := ps.scalarName()
	ps.expectOp(")")
	ps.expectOp("=")
	body := ps.expr()
	return &DefFn{stmtNode{ps.span(kw)}, name, param, body}
}

func (ps *parser) remStmt(kw Token) Stmt {
	text := ""
	if t := ps.peek(); t.Type == Remark {
		ps.next()
		text = t.Text
	}
	return &Rem{stmtNode{ps.span(kw)}, text}
}

func (ps *parser) runStmt(kw Token) Stmt {
	s := &Run{Line: NoLine}
	if !ps.endOfStmt() {
		if ps.peek().Type == NumberTok {
			s.Line = ps.lineNumber()
		} else {
			s.File = ps.expr()
		}
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) listStmt(kw Token) Stmt {
	s := &List{From: NoLine, To: NoLine}
	if ps.peek().Type == NumberTok {
		s.From = ps.lineNumber()
		s.To = s.From
	}
	if ps.acceptOp("-") || ps.acceptOp(",") {
		s.To = NoLine
		if ps.peek().Type == NumberTok {
			s.To = ps.lineNumber()
		}
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) delStmt(kw Token) Stmt {
	from := ps.lineNumber()
	ps.expectOp(",")
	to := ps.lineNumber()
	return &Del{stmtNode{ps.span(kw)}, from, to}
}

func (ps *parser) pokeStmt(kw Token) Stmt {
	addr := ps.expr()
	ps.expectOp(",")
	value := ps.expr()
	return &Poke{stmtNode{ps.span(kw)}, addr, value}
}

func (ps *parser) waitStmt(kw Token) Stmt {
	s := &Wait{Addr: ps.expr()}
	ps.expectOp(",")
	s.Mask = ps.expr()
	if ps.acceptOp(",") {
		s.Xor = ps.expr()
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) point() Point {
	x := ps.expr()
	ps.expectOp(",")
	return Point{x, ps.expr()}
}

func (ps *parser) plotStmt(kw Token) Stmt {
	p := ps.point()
	return &Plot{stmtNode{ps.span(kw)}, p.X, p.Y}
}

func (ps *parser) linStmt(kw Token) Stmt {
	p := ps.point()
	ps.expectKeyword("AT")
	at := ps.expr()
	return &Lin{stmtNode{ps.span(kw)}, kw.Text, p.X, p.Y, at}
}

func (ps *parser) hplotStmt(kw Token) Stmt {
	s := &HPlot{FromLast: ps.acceptKeyword("TO")}
	s.Points = append(s.Points, ps.point())
	for ps.acceptKeyword("TO") {
		s.Points = append(s.Points, ps.point())
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) drawStmt(kw Token) Stmt {
	s := &Draw{Keyword: kw.Text, Shape: ps.expr()}
	if ps.acceptKeyword("AT") {
		p := ps.point()
		s.At = &p
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) shloadStmt(kw Token) Stmt {
	s := &Shload{}
	if !ps.endOfStmt() {
		s.File = ps.expr()
	}
	s.Ranging = ps.span(kw)
	return s
}

func (ps *parser) storeStmt(kw Token) Stmt {
	t := ps.peek()
	if t.Type == Ident && endsStmt(ps.peekN(1)) {
		ps.next()
		return &StoreArray{stmtNode{ps.span(kw)}, kw.Text, t.Text}
	}
	if kw.Text == "RECALL" {
		ps.errorf(t, "expected array name, got %s", describe(t))
	}
	name := ps.expr()
	return &StoreVars{stmtNode{ps.span(kw)}, name}
}

func (ps *parser) programStmt(kw Token) Stmt {
	file := ps.expr()
	return &Program{stmtNode{ps.span(kw)}, kw.Text, file}
}
