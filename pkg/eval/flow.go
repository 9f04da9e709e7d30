package eval

import (
	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
)

type forFrame struct {
	key       string
	end, step float64
	body      pos
}

type whileFrame struct {
	cond valueOp
	body pos
	at   pos
}

// gosubFrame remembers the line of the GOSUB and how deep the loop stacks
// were, so that loops left open in the subroutine are discarded.
type gosubFrame struct {
	origin       int
	nFor, nWhile int
}

type gotoOp struct{ line int }

func (op gotoOp) exec(fm *Frame) error { return fm.gotoLine(op.line) }

type gosubOp struct{ line int }

func (op gosubOp) exec(fm *Frame) error { return fm.gosub(op.line) }

func (fm *Frame) gosub(line int) error {
	origin := fm.cur.line
	if err := fm.gotoLine(line); err != nil {
		return err
	}
	fm.gosubs = append(fm.gosubs, gosubFrame{origin, len(fm.fors), len(fm.whiles)})
	return nil
}

type returnOp struct{}

// RETURN continues at the line after the one holding the GOSUB; the rest of
// that line is not run. If the line was deleted meanwhile, the run loop
// continues at the next remaining line.
func (returnOp) exec(fm *Frame) error {
	n := len(fm.gosubs)
	if n == 0 {
		return errs.New(errs.ReturnWithoutGosub)
	}
	f := fm.gosubs[n-1]
	fm.gosubs = fm.gosubs[:n-1]
	if f.nFor < len(fm.fors) {
		fm.fors = fm.fors[:f.nFor]
	}
	if f.nWhile < len(fm.whiles) {
		fm.whiles = fm.whiles[:f.nWhile]
	}
	fm.next = afterLine(f.origin)
	return nil
}

type popOp struct{}

func (popOp) exec(fm *Frame) error {
	n := len(fm.gosubs)
	if n == 0 {
		return errs.New(errs.PopWithoutGosub)
	}
	fm.gosubs = fm.gosubs[:n-1]
	return nil
}

type onOp struct {
	index valueOp
	gosub bool
	lines []int
}

// An index outside [1, len(lines)] falls through to the next statement.
func (op *onOp) exec(fm *Frame) error {
	i, err := evalInt(fm, op.index)
	if err != nil {
		return err
	}
	if i < 0 || i > 255 {
		return errs.Newf(errs.IllegalQuantity, "ON index %d", i)
	}
	if i == 0 || i > len(op.lines) {
		return nil
	}
	if op.gosub {
		return fm.gosub(op.lines[i-1])
	}
	return fm.gotoLine(op.lines[i-1])
}

type forOp struct {
	key            string
	from, to, step valueOp
}

// The body of a FOR loop always runs at least once; the end test happens at
// NEXT.
func (op *forOp) exec(fm *Frame) error {
	from, err := evalNum(fm, op.from)
	if err != nil {
		return err
	}
	end, err := evalNum(fm, op.to)
	if err != nil {
		return err
	}
	step := 1.0
	if op.step != nil {
		if step, err = evalNum(fm, op.step); err != nil {
			return err
		}
	}
	if err := fm.vars.Set(op.key, vals.Num(from)); err != nil {
		return err
	}
	for i := len(fm.fors) - 1; i >= 0; i-- {
		if fm.fors[i].key == op.key {
			fm.fors = fm.fors[:i]
			break
		}
	}
	fm.fors = append(fm.fors, forFrame{op.key, vals.Round9(end), vals.Round9(step), fm.next})
	return nil
}

type nextOp struct{ keys []string }

func (op *nextOp) exec(fm *Frame) error {
	if len(op.keys) == 0 {
		_, err := fm.next1("")
		return err
	}
	for _, key := range op.keys {
		if looped, err := fm.next1(key); looped || err != nil {
			return err
		}
	}
	return nil
}

// next1 steps the loop of the given variable, or the innermost loop if key is
// empty. Loops opened inside it are discarded. It reports whether control
// went back to the body.
func (fm *Frame) next1(key string) (bool, error) {
	i := len(fm.fors) - 1
	if key != "" {
		for i >= 0 && fm.fors[i].key != key {
			i--
		}
	}
	if i < 0 {
		return false, errs.Newf(errs.NextWithoutFor, "%s", key)
	}
	fm.fors = fm.fors[:i+1]
	f := fm.fors[i]
	v := vals.Num(fm.vars.Get(f.key).Float() + f.step)
	if err := fm.vars.Set(f.key, v); err != nil {
		return false, err
	}
	x := fm.vars.Get(f.key).Float()
	if (f.step >= 0 && x <= f.end) || (f.step < 0 && x >= f.end) {
		fm.next = f.body
		return true, nil
	}
	fm.fors = fm.fors[:i]
	return false, nil
}

type whileOp struct{ cond valueOp }

func (op *whileOp) exec(fm *Frame) error {
	v, err := op.cond.eval(fm)
	if err != nil {
		return err
	}
	for i := len(fm.whiles) - 1; i >= 0; i-- {
		if fm.whiles[i].at == fm.cur {
			fm.whiles = fm.whiles[:i]
			break
		}
	}
	if truthy(v) {
		fm.whiles = append(fm.whiles, whileFrame{op.cond, fm.next, fm.cur})
		return nil
	}
	fm.next = fm.findWend(fm.next)
	return nil
}

// findWend returns the position after the WEND matching a WHILE whose body
// starts at p, or endPos if there is none.
func (fm *Frame) findWend(p pos) pos {
	depth := 0
	for {
		l := fm.lineAt(p.line)
		if l == nil {
			return endPos
		}
		for i := p.stmt; i < len(l.Ops); i++ {
			switch l.Ops[i].(type) {
			case *whileOp:
				depth++
			case wendOp:
				if depth == 0 {
					return pos{p.line, i + 1}
				}
				depth--
			}
		}
		if p.line == immediateLine {
			return endPos
		}
		nl := fm.prog.after(p.line)
		if nl == nil {
			return endPos
		}
		p = pos{nl.Number, 0}
	}
}

type wendOp struct{}

func (wendOp) exec(fm *Frame) error {
	n := len(fm.whiles)
	if n == 0 {
		return errs.New(errs.WendWithoutWhile)
	}
	f := fm.whiles[n-1]
	v, err := f.cond.eval(fm)
	if err != nil {
		return err
	}
	if truthy(v) {
		fm.next = f.body
	} else {
		fm.whiles = fm.whiles[:n-1]
	}
	return nil
}
