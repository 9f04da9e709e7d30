package eval

import (
	"src.abasic.dev/pkg/eval/vars"
	"src.abasic.dev/pkg/parse"
)

func (cp *compiler) stmtOp(n parse.Stmt) {
	switch n := n.(type) {
	case *parse.Rem:
		// Nothing to run.
	case *parse.Let:
		cp.add(&assignOp{cp.lvalueOp(n.Target), cp.valueOp(n.Value)})
	case *parse.Print:
		cp.add(cp.printOp(n))
	case *parse.If:
		cp.ifOps(n)
	case *parse.Jump:
		if n.Keyword == "GOSUB" {
			cp.add(gosubOp{n.Line})
		} else {
			cp.add(gotoOp{n.Line})
		}
	case *parse.On:
		cp.add(&onOp{cp.valueOp(n.Index), n.Gosub, n.Lines})
	case *parse.OnErr:
		cp.add(onErrOp{n.Line})
	case *parse.For:
		op := &forOp{key: vars.Normalize(n.Var), from: cp.valueOp(n.From), to: cp.valueOp(n.To)}
		if n.Step != nil {
			op.step = cp.valueOp(n.Step)
		}
		cp.add(op)
	case *parse.Next:
		keys := make([]string, len(n.Vars))
		for i, v := range n.Vars {
			keys[i] = vars.Normalize(v)
		}
		cp.add(&nextOp{keys})
	case *parse.While:
		cp.add(&whileOp{cp.valueOp(n.Cond)})
	case *parse.Dim:
		op := &dimOp{}
		for _, a := range n.Arrays {
			op.arrays = append(op.arrays, dimArray{vars.Normalize(a.Name), cp.valueOps(a.Subs)})
		}
		cp.add(op)
	case *parse.Data:
		cp.add(&dataOp{n.Items})
	case *parse.Read:
		cp.add(&readOp{cp.lvalueOps(n.Targets)})
	case *parse.Restore:
		if n.File != nil {
			cp.add(&restoreVarsOp{cp.valueOp(n.File)})
		} else {
			cp.add(restoreOp{n.Line})
		}
	case *parse.Input:
		cp.add(&inputOp{n.Prompt, n.HasPrompt, cp.lvalueOps(n.Targets)})
	case *parse.Get:
		cp.add(&getOp{cp.lvalueOp(n.Target)})
	case *parse.DefFn:
		cp.add(&defFnOp{vars.Normalize(n.Name), vars.Normalize(n.Param), cp.valueOp(n.Body)})
	case *parse.Run:
		op := &runOp{line: n.Line}
		if n.File != nil {
			op.file = cp.valueOp(n.File)
		}
		cp.add(op)
	case *parse.List:
		cp.add(listOp{n.From, n.To})
	case *parse.Del:
		cp.add(delOp{n.From, n.To})
	case *parse.Command:
		cp.add(cp.commandOp(n.Keyword))
	case *parse.ExprStmt:
		cp.add(&exprStmtOp{n.Keyword, cp.valueOp(n.X)})
	case *parse.Poke:
		cp.add(&pokeOp{cp.valueOp(n.Addr), cp.valueOp(n.Value)})
	case *parse.Wait:
		op := &waitOp{addr: cp.valueOp(n.Addr), mask: cp.valueOp(n.Mask)}
		if n.Xor != nil {
			op.xor = cp.valueOp(n.Xor)
		}
		cp.add(op)
	case *parse.Plot:
		cp.add(&plotOp{cp.valueOp(n.X), cp.valueOp(n.Y)})
	case *parse.Lin:
		cp.add(&linOp{n.Keyword == "VLIN", cp.valueOp(n.A), cp.valueOp(n.B), cp.valueOp(n.At)})
	case *parse.HPlot:
		op := &hplotOp{fromLast: n.FromLast}
		for _, p := range n.Points {
			op.points = append(op.points, cp.pointOp(p))
		}
		cp.add(op)
	case *parse.Draw:
		op := &drawOp{xor: n.Keyword == "XDRAW", shape: cp.valueOp(n.Shape)}
		if n.At != nil {
			p := cp.pointOp(*n.At)
			op.at = &p
		}
		cp.add(op)
	case *parse.Shload:
		op := &shloadOp{}
		if n.File != nil {
			op.file = cp.valueOp(n.File)
		}
		cp.add(op)
	case *parse.StoreArray:
		if n.Keyword == "RECALL" {
			cp.add(recallArrayOp{vars.Normalize(n.Array)})
		} else {
			cp.add(storeArrayOp{vars.Normalize(n.Array)})
		}
	case *parse.StoreVars:
		cp.add(&storeVarsOp{cp.valueOp(n.Name)})
	case *parse.Program:
		if n.Keyword == "LOAD" {
			cp.add(&loadOp{cp.valueOp(n.File)})
		} else {
			cp.add(&saveOp{cp.valueOp(n.File)})
		}
	case *parse.FileCmd:
		cp.add(cp.fileCmdOp(n))
	default:
		cp.errorf("unexpected statement %T", n)
	}
}

// ifOps compiles IF into a conditional skip over the THEN ops and, when
// there is an ELSE branch, an unconditional skip over the ELSE ops at the end
// of the THEN ops.
func (cp *compiler) ifOps(n *parse.If) {
	c := &condOp{cond: cp.valueOp(n.Cond)}
	cp.add(c)
	cp.stmtOps(n.Then)
	if len(n.Else) == 0 {
		c.target = len(cp.ops)
		return
	}
	s := &skipOp{}
	cp.add(s)
	c.target = len(cp.ops)
	cp.stmtOps(n.Else)
	s.target = len(cp.ops)
}

type condOp struct {
	cond   valueOp
	target int
}

func (op *condOp) exec(fm *Frame) error {
	v, err := op.cond.eval(fm)
	if err != nil {
		return err
	}
	if !truthy(v) {
		fm.next = pos{fm.cur.line, op.target}
	}
	return nil
}

type skipOp struct{ target int }

func (op *skipOp) exec(fm *Frame) error {
	fm.next = pos{fm.cur.line, op.target}
	return nil
}

type defFnOp struct {
	key, param string
	body       valueOp
}

func (op *defFnOp) exec(fm *Frame) error {
	fm.vars.Define(op.key, op.param, op.body)
	return nil
}

type dimArray struct {
	key  string
	subs []valueOp
}

type dimOp struct{ arrays []dimArray }

func (op *dimOp) exec(fm *Frame) error {
	for _, a := range op.arrays {
		dims, err := evalSubscripts(fm, a.subs)
		if err != nil {
			return err
		}
		if err := fm.vars.Dim(a.key, dims); err != nil {
			return err
		}
	}
	return nil
}
