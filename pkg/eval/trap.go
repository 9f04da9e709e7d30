package eval

import "src.abasic.dev/pkg/eval/errs"

// trapState is the ONERR GOTO state.
type trapState struct {
	armed   bool
	handler int

	// Whether a trapped error has not yet been resumed, and where it
	// happened.
	active bool
	at     pos
	kind   errs.Kind
	err    error
}

func (t *trapState) arm(handler int) {
	t.armed, t.handler = true, handler
}

func (t *trapState) record(at pos, kind errs.Kind, err error) {
	t.active, t.at, t.kind, t.err = true, at, kind, err
}

type onErrOp struct{ line int }

func (op onErrOp) exec(fm *Frame) error {
	fm.trap.arm(op.line)
	return nil
}

// resumeOp retries the op that failed. The handler stays armed, so an error
// that happens again is trapped again.
type resumeOp struct{}

func (resumeOp) exec(fm *Frame) error {
	if !fm.trap.active {
		return errs.New(errs.ResumeWithoutError)
	}
	fm.trap.active = false
	fm.next = fm.trap.at
	return nil
}
