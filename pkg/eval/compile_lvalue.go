package eval

import (
	"src.abasic.dev/pkg/eval/vals"
	"src.abasic.dev/pkg/eval/vars"
	"src.abasic.dev/pkg/parse"
)

// lvalueOp resolves an assignment target.
type lvalueOp interface {
	resolve(fm *Frame) (vars.Var, error)
	// key returns the normalized variable name.
	key() string
}

func (cp *compiler) lvalueOp(n parse.LValue) lvalueOp {
	switch n := n.(type) {
	case *parse.Var:
		return scalarLValue(vars.Normalize(n.Name))
	case *parse.Index:
		return &elemLValue{vars.Normalize(n.Name), cp.valueOps(n.Subs)}
	}
	cp.errorf("unexpected lvalue %T", n)
	return nil
}

func (cp *compiler) lvalueOps(ns []parse.LValue) []lvalueOp {
	ops := make([]lvalueOp, len(ns))
	for i, n := range ns {
		ops[i] = cp.lvalueOp(n)
	}
	return ops
}

type scalarLValue string

func (lv scalarLValue) resolve(fm *Frame) (vars.Var, error) {
	return fm.vars.Scalar(string(lv)), nil
}

func (lv scalarLValue) key() string { return string(lv) }

type elemLValue struct {
	name string
	subs []valueOp
}

func (lv *elemLValue) resolve(fm *Frame) (vars.Var, error) {
	idx, err := evalSubscripts(fm, lv.subs)
	if err != nil {
		return nil, err
	}
	return fm.vars.Elem(lv.name, idx)
}

func (lv *elemLValue) key() string { return lv.name }

// assign resolves lv and stores v in it.
func assign(fm *Frame, lv lvalueOp, v vals.Value) error {
	target, err := lv.resolve(fm)
	if err != nil {
		return err
	}
	return target.Set(v)
}

type assignOp struct {
	lv    lvalueOp
	value valueOp
}

func (op *assignOp) exec(fm *Frame) error {
	v, err := op.value.eval(fm)
	if err != nil {
		return err
	}
	return assign(fm, op.lv, v)
}
