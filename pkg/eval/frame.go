package eval

import (
	"context"
	"fmt"
	"math"
	"time"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/parse"
)

// pos is a position in the program: a line number and the index of an op in
// that line. Control stacks store positions, never references to lines, so
// they survive edits of the program.
type pos struct {
	line, stmt int
}

const (
	// Line number of the immediate line.
	immediateLine = parse.NoLine
	// Line number past every program line.
	endLine = math.MaxInt32
)

var endPos = pos{endLine, 0}

// afterLine returns the position past the last statement of line n. The run
// loop continues from there at the line that follows n.
func afterLine(n int) pos { return pos{n, math.MaxInt32} }

// Frame is the state of one activation of the run loop, started by Exec.
type Frame struct {
	*Evaler

	ctx context.Context
	imm *progLine
	// Position of the running op and of the op that runs after it. Ops that
	// transfer control set next.
	cur, next pos
}

func (ev *Evaler) newFrame(ctx context.Context, imm *progLine) *Frame {
	ev.halted = false
	return &Frame{ev, ctx, imm, pos{immediateLine, 0}, pos{immediateLine, 0}}
}

// lineAt returns the line at the given position, or nil.
func (fm *Frame) lineAt(n int) *progLine {
	if n == immediateLine {
		return fm.imm
	}
	return fm.prog.get(n)
}

// runGuarded runs the loop, converting a panic escaping an op into an
// internal error.
func (fm *Frame) runGuarded() (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("panic at %v: %v", fm.cur, r)
			err = &RunError{fm.lineNumber(), errs.Newf(errs.Internal, "%v", r)}
		}
	}()
	return fm.run()
}

// run executes ops until the program ends, stops or halts on an error.
func (fm *Frame) run() error {
	for {
		l := fm.lineAt(fm.cur.line)
		if l == nil || fm.cur.stmt >= len(l.Ops) {
			if fm.cur.line == immediateLine {
				return nil
			}
			// Past the end of a line, or at a line that no longer exists.
			from := fm.cur.line
			if l == nil {
				from--
			}
			nl := fm.prog.after(from)
			if nl == nil {
				return nil
			}
			fm.cur = pos{nl.Number, 0}
			continue
		}
		if fm.ctx.Err() != nil {
			return fm.interrupt()
		}
		if fm.trace && fm.cur.stmt == 0 && fm.cur.line != immediateLine {
			fm.out.write(fmt.Sprintf("#%d ", fm.cur.line))
		}
		fm.next = pos{fm.cur.line, fm.cur.stmt + 1}
		if err := l.Ops[fm.cur.stmt].exec(fm); err != nil {
			if err := fm.handle(err); err != nil {
				return err
			}
		}
		if fm.halted {
			return nil
		}
		fm.cur = fm.next
		if d := fm.cfg.StatementDelay; d > 0 {
			fm.sleep(d)
		}
	}
}

func (fm *Frame) sleep(d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-fm.ctx.Done():
	}
}

func (fm *Frame) lineNumber() int {
	if fm.cur.line == immediateLine {
		return parse.NoLine
	}
	return fm.cur.line
}

// interrupt stops the run on a cancelled context. CONT resumes at the op that
// would have run.
func (fm *Frame) interrupt() error {
	if fm.cur.line != immediateLine {
		fm.cont, fm.canCont = fm.cur, true
	}
	return &RunError{fm.lineNumber(), errs.New(errs.Break)}
}

// handle decides what happens after an op fails: with an armed trap the
// error is recorded and execution continues at the handler, otherwise the run
// halts. It returns the error that halts the run, or nil.
func (fm *Frame) handle(err error) error {
	kind := errs.KindOf(err)
	if kind != errs.Break && fm.trap.armed && fm.cur.line != immediateLine {
		if fm.prog.get(fm.trap.handler) == nil {
			fm.canCont = false
			return &RunError{fm.cur.line, errs.Newf(errs.UndefStatement, "error handler %d", fm.trap.handler)}
		}
		logger.Printf("trapped %v in %d, continuing at %d", err, fm.cur.line, fm.trap.handler)
		fm.trap.record(fm.cur, kind, err)
		fm.mem.set(addrErrLineLo, byte(fm.cur.line&0xFF))
		fm.mem.set(addrErrLineHi, byte(fm.cur.line>>8))
		fm.mem.set(addrErrCode, byte(kind.Code()))
		fm.next = pos{fm.trap.handler, 0}
		return nil
	}
	if kind == errs.Break {
		return fm.interrupt()
	}
	fm.canCont = false
	return &RunError{fm.lineNumber(), err}
}

// gotoLine transfers control to the start of line n.
func (fm *Frame) gotoLine(n int) error {
	if fm.prog.get(n) == nil {
		return errs.Newf(errs.UndefStatement, "%d", n)
	}
	fm.next = pos{n, 0}
	return nil
}

// end stops the run after the current op.
func (fm *Frame) end() { fm.next = endPos }
