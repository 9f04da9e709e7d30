package eval

import (
	"strconv"
	"time"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/parse"
)

// Statements consisting of only a keyword. Built in init since some of them
// reach the compiler.
var bareCommands map[string]func(fm *Frame) error

func init() {
	bareCommands = map[string]func(fm *Frame) error{
		"CLEAR":   (*Frame).clearCmd,
		"CONT":    (*Frame).contCmd,
		"END":     (*Frame).endCmd,
		"FLASH":   func(fm *Frame) error { return fm.out.setAttr(attrFlash) },
		"INVERSE": func(fm *Frame) error { return fm.out.setAttr(attrInverse) },
		"NORMAL":  func(fm *Frame) error { return fm.out.setAttr(attrNormal) },
		"HOME":    func(fm *Frame) error { return fm.out.home() },
		"NEW":     (*Frame).newCmd,
		"NOTRACE": func(fm *Frame) error { return fm.setTrace(false) },
		"TRACE":   func(fm *Frame) error { return fm.setTrace(true) },
		"STOP":    (*Frame).stopCmd,
		"TEXT":    (*Frame).textCmd,
		"GR":      (*Frame).grCmd,
		"HGR":     func(fm *Frame) error { return fm.hgrCmd(1) },
		"HGR2":    func(fm *Frame) error { return fm.hgrCmd(2) },
	}
}

func (fm *Frame) setTrace(on bool) error {
	fm.trace = on
	return nil
}

func (cp *compiler) commandOp(kw string) effectOp {
	switch kw {
	case "RETURN":
		return returnOp{}
	case "POP":
		return popOp{}
	case "WEND":
		return wendOp{}
	case "RESUME":
		return resumeOp{}
	}
	f, ok := bareCommands[kw]
	if !ok {
		cp.errorf("unknown command %s", kw)
	}
	return commandOp{kw, f}
}

type commandOp struct {
	keyword string
	f       func(*Frame) error
}

func (op commandOp) exec(fm *Frame) error { return op.f(fm) }

func (fm *Frame) endCmd() error {
	fm.canCont = false
	fm.end()
	return nil
}

// STOP prints where the program stopped; CONT resumes after the STOP.
func (fm *Frame) stopCmd() error {
	if fm.cur.line == immediateLine {
		fm.end()
		return nil
	}
	fm.cont, fm.canCont = fm.next, true
	if fm.out.col != 0 {
		fm.out.write("\n")
	}
	fm.out.write("BREAK IN " + itoa(fm.cur.line) + "\n")
	fm.end()
	return nil
}

func (fm *Frame) contCmd() error {
	if !fm.canCont || fm.prog.len() == 0 {
		return errs.New(errs.CantContinue)
	}
	if fm.lineAt(fm.cont.line) == nil {
		return errs.Newf(errs.CantContinue, "line %d is gone", fm.cont.line)
	}
	fm.canCont = false
	fm.next = fm.cont
	return nil
}

func (fm *Frame) newCmd() error {
	fm.newProgram()
	fm.end()
	return nil
}

func (fm *Frame) clearCmd() error {
	fm.clearState()
	return nil
}

type runOp struct {
	line int
	file valueOp
}

// RUN clears the variables and stacks, rebuilds the DATA queue and starts at
// the given line or the first one. RUN "name" loads a program first.
func (op *runOp) exec(fm *Frame) error {
	if op.file != nil {
		name, err := evalStr(fm, op.file)
		if err != nil {
			return err
		}
		if err := fm.loadProgram(name); err != nil {
			return err
		}
		fm.halted = false
	}
	fm.clearState()
	fm.trap = trapState{}
	fm.canCont = false
	fm.rebuildData()
	logger.Println("run")
	if op.line != parse.NoLine {
		return fm.gotoLine(op.line)
	}
	if l := fm.prog.first(); l != nil {
		fm.next = pos{l.Number, 0}
	} else {
		fm.end()
	}
	return nil
}

type listOp struct{ from, to int }

func (op listOp) exec(fm *Frame) error {
	from, to := op.from, op.to
	if from == parse.NoLine {
		from = 0
	}
	if to == parse.NoLine {
		to = parse.MaxLine
	}
	var err error
	fm.prog.each(from, to, func(l *progLine) bool {
		err = fm.out.write(itoa(l.Number) + " " + l.Text + "\n")
		return err == nil && fm.ctx.Err() == nil
	})
	return err
}

type delOp struct{ from, to int }

func (op delOp) exec(fm *Frame) error {
	var ns []int
	fm.prog.each(op.from, op.to, func(l *progLine) bool {
		ns = append(ns, l.Number)
		return true
	})
	for _, n := range ns {
		fm.DeleteLine(n)
	}
	return nil
}

// exprStmtOp runs a statement taking one expression.
type exprStmtOp struct {
	keyword string
	x       valueOp
}

func (op *exprStmtOp) exec(fm *Frame) error {
	switch op.keyword {
	case "CALL":
		addr, err := evalRange(fm, op.x, -0xFFFF, 0xFFFF)
		if err != nil {
			return err
		}
		return fm.call(addr)
	case "HTAB":
		n, err := evalRange(fm, op.x, 1, 255)
		if err != nil {
			return err
		}
		return fm.out.htab(n - 1)
	case "VTAB":
		n, err := evalRange(fm, op.x, 1, 24)
		if err != nil {
			return err
		}
		return fm.out.vtab(n - 1)
	case "PR#", "IN#":
		slot, err := evalRange(fm, op.x, 0, 7)
		if err != nil {
			return err
		}
		if slot != 0 {
			logger.Printf("%s%d: no card in slot", op.keyword, slot)
		}
		return nil
	case "HIMEM:", "LOMEM:":
		n, err := evalRange(fm, op.x, 0, 0xFFFF)
		if err != nil {
			return err
		}
		low, high := fm.mem.Low, fm.mem.High
		if op.keyword == "HIMEM:" {
			high = n
		} else {
			low = n
		}
		if low > high {
			return errs.Newf(errs.IllegalQuantity, "LOMEM %d above HIMEM %d", low, high)
		}
		fm.mem.Low, fm.mem.High = low, high
		return nil
	case "SPEED":
		n, err := evalRange(fm, op.x, 0, 255)
		if err != nil {
			return err
		}
		fm.out.speed = n
		return nil
	case "COLOR", "HCOLOR", "ROT", "SCALE":
		return fm.graphicsParam(op.keyword, op.x)
	}
	return errs.Newf(errs.Internal, "unknown statement %s", op.keyword)
}

// Monitor routines reachable with CALL.
var callRoutines = map[int]func(fm *Frame) error{
	-936:  func(fm *Frame) error { return fm.out.home() },
	-958:  func(fm *Frame) error { return fm.out.clearToEnd("\033[J") },
	-868:  func(fm *Frame) error { return fm.out.clearToEnd("\033[K") },
	-922:  func(fm *Frame) error { return fm.out.write("\n") },
	-912:  func(fm *Frame) error { return fm.out.write("\n") },
	-198:  func(fm *Frame) error { return fm.out.write("\a") },
	-3288: func(fm *Frame) error { return nil },
}

// call runs a stubbed monitor routine. Other addresses do nothing.
func (fm *Frame) call(addr int) error {
	if addr > 0x7FFF {
		addr -= 0x10000
	}
	if f, ok := callRoutines[addr]; ok {
		return f(fm)
	}
	logger.Printf("CALL %d: no routine", addr)
	return nil
}

type pokeOp struct{ addr, value valueOp }

func (op *pokeOp) exec(fm *Frame) error {
	addr, err := evalInt(fm, op.addr)
	if err != nil {
		return err
	}
	v, err := evalInt(fm, op.value)
	if err != nil {
		return err
	}
	return fm.mem.Poke(addr, v)
}

const waitPoll = 10 * time.Millisecond

type waitOp struct{ addr, mask, xor valueOp }

// WAIT polls a cell until (value XOR xor) AND mask is nonzero, the configured
// timeout elapses or the run is interrupted.
func (op *waitOp) exec(fm *Frame) error {
	addr, err := evalInt(fm, op.addr)
	if err != nil {
		return err
	}
	mask, err := evalRange(fm, op.mask, 0, 255)
	if err != nil {
		return err
	}
	xor := 0
	if op.xor != nil {
		if xor, err = evalRange(fm, op.xor, 0, 255); err != nil {
			return err
		}
	}
	var deadline time.Time
	if fm.cfg.WaitTimeout > 0 {
		deadline = time.Now().Add(fm.cfg.WaitTimeout)
	}
	for {
		v, err := fm.mem.Peek(addr)
		if err != nil {
			return err
		}
		if (v^xor)&mask != 0 {
			return nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			logger.Printf("WAIT %d,%d,%d timed out", addr, mask, xor)
			return nil
		}
		if fm.ctx.Err() != nil {
			return errs.New(errs.Break)
		}
		fm.sleep(waitPoll)
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
