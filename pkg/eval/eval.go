// Package eval runs BASIC programs.
//
// An Evaler owns one interpreter session: the program, the variable store,
// the control-flow stacks, the trap state, the DATA queue, the memory map and
// the output cursor. Each line is parsed by pkg/parse and compiled into a flat
// list of ops when it is entered; running a program steps through those ops.
package eval

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
	"src.abasic.dev/pkg/eval/vars"
	"src.abasic.dev/pkg/logutil"
	"src.abasic.dev/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// Evaler is an interpreter session. It is not safe for concurrent use.
type Evaler struct {
	// Collaborators; any of them may be nil.
	Graphics Graphics
	Files    FileStore
	Tape     Tape
	VarStore VarStore
	Keys     KeyReader

	cfg  Config
	in   *bufio.Reader
	out  *printer
	prog *program
	vars *vars.Store
	mem  *Memory
	rand *vals.Rand
	data *dataQueue

	fors   []forFrame
	whiles []whileFrame
	gosubs []gosubFrame
	trap   trapState

	// Where CONT resumes; valid only after STOP or BREAK.
	cont    pos
	canCont bool
	// Set when the program is replaced while it runs.
	halted bool
	trace  bool

	// Graphics state.
	rot, scale int
	lastX      int
	lastY      int
	// DOS redirection of INPUT and PRINT.
	readFile, writeFile string
	// Latched keyboard byte for PEEK(49152).
	key byte
}

// NewEvaler creates an Evaler reading INPUT from stdin and printing to
// stdout.
func NewEvaler(cfg Config, stdin io.Reader, stdout io.Writer) *Evaler {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ev := &Evaler{
		cfg:   cfg,
		in:    bufio.NewReader(stdin),
		prog:  newProgram(),
		vars:  vars.NewStore(),
		mem:   newMemory(cfg.MemoryLow, cfg.MemoryHigh),
		rand:  vals.NewRand(seed),
		data:  &dataQueue{stale: true},
		scale: 1,
	}
	ev.out = newPrinter(stdout, cfg.ANSI)
	ev.out.onCommand = ev.dosCommand
	ev.installHooks()
	return ev
}

// Vars returns the variable store.
func (ev *Evaler) Vars() *vars.Store { return ev.vars }

// Memory returns the memory map.
func (ev *Evaler) Memory() *Memory { return ev.mem }

// Lines returns the numbers of all program lines in order.
func (ev *Evaler) Lines() []int {
	var ns []int
	ev.prog.each(0, parse.MaxLine, func(l *progLine) bool {
		ns = append(ns, l.Number)
		return true
	})
	return ns
}

// List returns the program text, one numbered line per line.
func (ev *Evaler) List() string { return ev.prog.text() }

// Enter handles one line typed at the prompt: a numbered line is added to or
// deleted from the program, anything else is executed immediately.
func (ev *Evaler) Enter(ctx context.Context, text string) error {
	n, rest, ok := parse.SplitLineNumber(text)
	if !ok {
		return ev.Exec(ctx, text)
	}
	if strings.TrimSpace(rest) == "" {
		ev.DeleteLine(n)
		return nil
	}
	ev.AddLine(n, rest)
	return nil
}

// AddLine stores a program line, replacing any line with the same number. A
// line that fails to parse is stored anyway and raises the parse error when
// executed; the error is returned so that callers may show it.
func (ev *Evaler) AddLine(n int, text string) error {
	text = strings.TrimSpace(text)
	l := &progLine{Number: n, Text: text}
	l.Stmts, l.Err = parse.Parse(fmt.Sprintf("line %d", n), text)
	if l.Err != nil {
		l.Ops = []effectOp{syntaxOp{l.Err}}
	} else {
		l.Ops = compile(l.Stmts)
	}
	ev.prog.put(l)
	ev.data.stale = true
	return l.Err
}

// DeleteLine removes a program line. It reports whether the line existed.
func (ev *Evaler) DeleteLine(n int) bool {
	ev.data.stale = true
	return ev.prog.delete(n)
}

// Load replaces the program with the numbered lines of text. Lines without a
// number are ignored.
func (ev *Evaler) Load(text string) error {
	ev.newProgram()
	var first error
	for _, line := range strings.Split(text, "\n") {
		n, rest, ok := parse.SplitLineNumber(line)
		if !ok || strings.TrimSpace(rest) == "" {
			continue
		}
		if err := ev.AddLine(n, rest); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Exec runs src in immediate mode. A runtime error is printed and returned
// as a *RunError.
func (ev *Evaler) Exec(ctx context.Context, src string) error {
	if strings.TrimSpace(src) == "" {
		return nil
	}
	stmts, err := parse.Parse("immediate", src)
	if err != nil {
		return ev.report(&RunError{parse.NoLine, err})
	}
	imm := &progLine{Number: immediateLine, Text: src, Stmts: stmts, Ops: compile(stmts)}
	fm := ev.newFrame(ctx, imm)
	err = fm.runGuarded()
	ev.cancelRedirect()
	return ev.report(err)
}

// Run runs the program from its first line, like the RUN statement.
func (ev *Evaler) Run(ctx context.Context) error { return ev.Exec(ctx, "RUN") }

// Check parses src as program text without changing the session and returns
// the parse errors of all numbered lines.
func Check(src string) []*parse.Error {
	var found []*parse.Error
	for _, line := range strings.Split(src, "\n") {
		n, rest, ok := parse.SplitLineNumber(line)
		if !ok {
			continue
		}
		if _, err := parse.Parse(fmt.Sprintf("line %d", n), rest); err != nil {
			if pe, ok := err.(*parse.Error); ok {
				found = append(found, pe)
			}
		}
	}
	return found
}

// report prints err, if any, the way the machine does and returns it.
func (ev *Evaler) report(err error) error {
	if err == nil {
		return nil
	}
	ev.cancelRedirect()
	logger.Println("halted:", err)
	if ev.out.col != 0 {
		ev.out.write("\n")
	}
	ev.out.write(err.Error() + "\n")
	return err
}

// newProgram implements NEW.
func (ev *Evaler) newProgram() {
	ev.prog.clear()
	ev.clearState()
	ev.data.stale = true
	ev.trap = trapState{}
	ev.canCont = false
}

// clearState implements CLEAR: variables, stacks and the DATA pointer.
func (ev *Evaler) clearState() {
	ev.vars.Clear()
	ev.fors, ev.whiles, ev.gosubs = nil, nil, nil
	ev.data.ptr = 0
}

// RunError is a runtime error that halted the program or an immediate line.
type RunError struct {
	// Line is the failing line, or parse.NoLine in immediate mode.
	Line int
	Err  error
}

// Error returns the message as printed, like "?SYNTAX ERROR IN 10". A BREAK
// prints as "BREAK IN 10".
func (e *RunError) Error() string {
	msg := errs.Message(e.Err)
	if errs.KindOf(e.Err) == errs.Break {
		msg = "BREAK"
	}
	if e.Line == parse.NoLine {
		return msg
	}
	return fmt.Sprintf("%s IN %d", msg, e.Line)
}

func (e *RunError) Unwrap() error { return e.Err }

// Kind returns the kind of the underlying error.
func (e *RunError) Kind() errs.Kind { return errs.KindOf(e.Err) }
