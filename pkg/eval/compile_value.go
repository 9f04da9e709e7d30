package eval

import (
	"math"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
	"src.abasic.dev/pkg/eval/vars"
	"src.abasic.dev/pkg/parse"
)

// valueOp is an executable expression.
type valueOp interface {
	eval(fm *Frame) (vals.Value, error)
}

func (cp *compiler) valueOp(n parse.Expr) valueOp {
	switch n := n.(type) {
	case *parse.Number:
		return literalOp{vals.Num(n.Value)}
	case *parse.String:
		return literalOp{vals.Str(n.Value)}
	case *parse.Var:
		return varOp{vars.Normalize(n.Name)}
	case *parse.Index:
		return &indexOp{vars.Normalize(n.Name), cp.valueOps(n.Subs)}
	case *parse.Unary:
		return &unaryOp{n.Op == '-', cp.valueOp(n.X)}
	case *parse.Not:
		return &notOp{cp.valueOp(n.X)}
	case *parse.Binary:
		return &binaryOp{n.Op, cp.valueOp(n.L), cp.valueOp(n.R)}
	case *parse.Call:
		fn, ok := builtinFns[n.Func]
		if !ok {
			cp.errorf("no built-in function %s", n.Func)
		}
		return &callOp{n.Func, fn, cp.valueOps(n.Args)}
	case *parse.FnCall:
		return &fnCallOp{vars.Normalize(n.Name), cp.valueOp(n.Arg)}
	}
	cp.errorf("unexpected expression %T", n)
	return nil
}

func (cp *compiler) valueOps(ns []parse.Expr) []valueOp {
	ops := make([]valueOp, len(ns))
	for i, n := range ns {
		ops[i] = cp.valueOp(n)
	}
	return ops
}

type literalOp struct{ v vals.Value }

func (op literalOp) eval(*Frame) (vals.Value, error) { return op.v, nil }

type varOp struct{ key string }

func (op varOp) eval(fm *Frame) (vals.Value, error) { return fm.vars.Get(op.key), nil }

type indexOp struct {
	key  string
	subs []valueOp
}

func (op *indexOp) eval(fm *Frame) (vals.Value, error) {
	idx, err := evalSubscripts(fm, op.subs)
	if err != nil {
		return vals.Value{}, err
	}
	return fm.vars.GetElem(op.key, idx)
}

type unaryOp struct {
	neg bool
	x   valueOp
}

func (op *unaryOp) eval(fm *Frame) (vals.Value, error) {
	x, err := evalNum(fm, op.x)
	if err != nil {
		return vals.Value{}, err
	}
	if op.neg {
		x = -x
	}
	return vals.Num(x), nil
}

type notOp struct{ x valueOp }

func (op *notOp) eval(fm *Frame) (vals.Value, error) {
	v, err := op.x.eval(fm)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Bool(!truthy(v)), nil
}

type binaryOp struct {
	op   vals.Op
	l, r valueOp
}

func (op *binaryOp) eval(fm *Frame) (vals.Value, error) {
	l, err := op.l.eval(fm)
	if err != nil {
		return vals.Value{}, err
	}
	r, err := op.r.eval(fm)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Binary(op.op, l, r)
}

type fnCallOp struct {
	key string
	arg valueOp
}

func (op *fnCallOp) eval(fm *Frame) (vals.Value, error) {
	arg, err := op.arg.eval(fm)
	if err != nil {
		return vals.Value{}, err
	}
	return fm.vars.Call(op.key, arg, func(body any) (vals.Value, error) {
		return body.(valueOp).eval(fm)
	})
}

// truthy reports whether v is a true condition. Numbers are true when
// nonzero, strings when nonempty.
func truthy(v vals.Value) bool {
	if v.IsString() {
		return v.Text() != ""
	}
	return v.Truthy()
}

func evalNum(fm *Frame, op valueOp) (float64, error) {
	v, err := op.eval(fm)
	if err != nil {
		return 0, err
	}
	if v.IsString() {
		return 0, errs.Newf(errs.TypeMismatch, "want number, got %v", v)
	}
	return v.Float(), nil
}

// evalInt evaluates a numeric expression and truncates it toward negative
// infinity.
func evalInt(fm *Frame, op valueOp) (int, error) {
	x, err := evalNum(fm, op)
	if err != nil {
		return 0, err
	}
	if math.Abs(x) > math.MaxInt32 {
		return 0, errs.Newf(errs.IllegalQuantity, "%v", x)
	}
	return int(math.Floor(x)), nil
}

// evalRange evaluates an integer that must be in [lo, hi].
func evalRange(fm *Frame, op valueOp, lo, hi int) (int, error) {
	n, err := evalInt(fm, op)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, errs.Newf(errs.IllegalQuantity, "%d not in [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func evalStr(fm *Frame, op valueOp) (string, error) {
	v, err := op.eval(fm)
	if err != nil {
		return "", err
	}
	if !v.IsString() {
		return "", errs.Newf(errs.TypeMismatch, "want string, got %v", v)
	}
	return v.Text(), nil
}

func evalSubscripts(fm *Frame, ops []valueOp) ([]int, error) {
	idx := make([]int, len(ops))
	for i, op := range ops {
		n, err := evalInt(fm, op)
		if err != nil {
			return nil, err
		}
		idx[i] = n
	}
	return idx, nil
}
