package parse

import (
	"strings"

	"src.abasic.dev/pkg/diag"
	"src.abasic.dev/pkg/eval/vals"
)

// Expression grammar, from lowest to highest precedence:
//
//	expr   = and { OR and }
//	and    = not { AND not }
//	not    = NOT not | rel
//	rel    = add { relop add }
//	add    = mul { ("+" | "-") mul }
//	mul    = unary { ("*" | "/" | MOD) unary }
//	unary  = ("+" | "-") unary | pow
//	pow    = primary { "^" ["+" | "-"] primary }
//
// Power is left-associative and binds tighter than a unary sign, so -2^2 is
// -4.

var relOps = map[string]vals.Op{
	"=": vals.OpEq, "<>": vals.OpNe, "<": vals.OpLt,
	">": vals.OpGt, "<=": vals.OpLe, ">=": vals.OpGe,
}

func binary(op vals.Op, l, r Expr) Expr {
	return &Binary{exprNode{diag.MixedRanging(l, r)}, op, l, r}
}

func (ps *parser) expr() Expr {
	l := ps.andExpr()
	for ps.acceptKeyword("OR") {
		l = binary(vals.OpOr, l, ps.andExpr())
	}
	return l
}

func (ps *parser) andExpr() Expr {
	l := ps.notExpr()
	for ps.acceptKeyword("AND") {
		l = binary(vals.OpAnd, l, ps.notExpr())
	}
	return l
}

func (ps *parser) notExpr() Expr {
	if t := ps.peek(); t.isKeyword("NOT") {
		ps.next()
		x := ps.notExpr()
		return &Not{exprNode{ps.span(t)}, x}
	}
	return ps.relExpr()
}

func (ps *parser) relExpr() Expr {
	l := ps.addExpr()
	for {
		t := ps.peek()
		op, ok := relOps[t.Text]
		if t.Type != Op || !ok {
			return l
		}
		ps.next()
		l = binary(op, l, ps.addExpr())
	}
}

func (ps *parser) addExpr() Expr {
	l := ps.mulExpr()
	for {
		switch {
		case ps.acceptOp("+"):
			l = binary(vals.OpAdd, l, ps.mulExpr())
		case ps.acceptOp("-"):
			l = binary(vals.OpSub, l, ps.mulExpr())
		default:
			return l
		}
	}
}

func (ps *parser) mulExpr() Expr {
	l := ps.unaryExpr()
	for {
		switch {
		case ps.acceptOp("*"):
			l = binary(vals.OpMul, l, ps.unaryExpr())
		case ps.acceptOp("/"):
			l = binary(vals.OpDiv, l, ps.unaryExpr())
		case ps.acceptKeyword("MOD"):
			l = binary(vals.OpMod, l, ps.unaryExpr())
		default:
			return l
		}
	}
}

func (ps *parser) unaryExpr() Expr {
	t := ps.peek()
	if t.isOp("-") || t.isOp("+") {
		ps.next()
		x := ps.unaryExpr()
		return &Unary{exprNode{ps.span(t)}, t.Text[0], x}
	}
	return ps.powExpr()
}

func (ps *parser) powExpr() Expr {
	l := ps.primary()
	for ps.acceptOp("^") {
		var r Expr
		if t := ps.peek(); t.isOp("-") || t.isOp("+") {
			ps.next()
			x := ps.primary()
			r = &Unary{exprNode{ps.span(t)}, t.Text[0], x}
		} else {
			r = ps.primary()
		}
		l = binary(vals.OpPow, l, r)
	}
	return l
}

func (ps *parser) primary() Expr {
	t := ps.peek()
	switch t.Type {
	case NumberTok:
		ps.next()
		return &Number{exprNode{t.Ranging}, t.Num}
	case StringTok:
		ps.next()
		return &String{exprNode{t.Ranging}, t.Text}
	case Ident:
		if strings.HasPrefix(t.Text, "FN") && len(t.Text) > 2 && ps.peekN(1).isOp("(") {
			ps.next()
			return ps.fnCall(t, t.Text)
		}
		return ps.lvalue()
	case Op:
		if t.isOp("(") {
			ps.next()
			x := ps.expr()
			ps.expectOp(")")
			return x
		}
	case Keyword:
		if t.Text == "FN" {
			ps.next()
			name := ps.peek()
			if name.Type != Ident {
				ps.errorf(name, "expected function name, got %s", describe(name))
			}
			ps.next()
			return ps.fnCall(t, "FN"+name.Text)
		}
		if arity, ok := builtinArity[t.Text]; ok {
			ps.next()
			ps.expectOp("(")
			args := ps.exprList()
			ps.expectOp(")")
			if len(args) < arity[0] || len(args) > arity[1] {
				ps.errorf(ps.span(t), "wrong number of arguments to %s", t.Text)
			}
			return &Call{exprNode{ps.span(t)}, t.Text, args}
		}
	}
	ps.errorf(t, "expected expression, got %s", describe(t))
	panic("unreachable")
}

func (ps *parser) fnCall(start Token, name string) Expr {
	ps.expectOp("(")
	arg := ps.expr()
	ps.expectOp(")")
	return &FnCall{exprNode{ps.span(start)}, name, arg}
}

func (ps *parser) exprList() []Expr {
	xs := []Expr{ps.expr()}
	for ps.acceptOp(",") {
		xs = append(xs, ps.expr())
	}
	return xs
}

// lvalue parses a variable or array element.
func (ps *parser) lvalue() LValue {
	t := ps.peek()
	if t.Type != Ident || strings.Contains(t.Text, "#") {
		ps.errorf(t, "expected variable, got %s", describe(t))
	}
	ps.next()
	if ps.acceptOp("(") {
		subs := ps.exprList()
		ps.expectOp(")")
		return &Index{exprNode{ps.span(t)}, t.Text, subs}
	}
	return &Var{exprNode{t.Ranging}, t.Text}
}

func (ps *parser) lvalueList() []LValue {
	ls := []LValue{ps.lvalue()}
	for ps.acceptOp(",") {
		ls = append(ls, ps.lvalue())
	}
	return ls
}

// scalarName parses a plain variable name.
func (ps *parser) scalarName() string {
	t := ps.peek()
	if t.Type != Ident || strings.Contains(t.Text, "#") {
		ps.errorf(t, "expected variable, got %s", describe(t))
	}
	ps.next()
	return t.Text
}
