package eval

import (
	"fmt"

	"src.abasic.dev/pkg/parse"
)

// effectOp is an executable statement. Ops that transfer control set
// fm.next.
type effectOp interface {
	exec(fm *Frame) error
}

// compiler turns the statements of one line into a flat list of ops. IF
// compiles into a conditional skip over the ops of its THEN branch, so that
// every op of a line has a position.
type compiler struct {
	ops []effectOp
}

func compile(stmts []parse.Stmt) []effectOp {
	cp := &compiler{}
	cp.stmtOps(stmts)
	return cp.ops
}

func (cp *compiler) add(op effectOp) { cp.ops = append(cp.ops, op) }

func (cp *compiler) stmtOps(stmts []parse.Stmt) {
	for _, s := range stmts {
		cp.stmtOp(s)
	}
}

// The parser only produces the node types handled here, so an unknown type
// is an internal error.
func (cp *compiler) errorf(format string, args ...any) {
	panic(fmt.Sprintf("compiler: "+format, args...))
}

// syntaxOp raises a parse error stored with a program line.
type syntaxOp struct{ err error }

func (op syntaxOp) exec(*Frame) error { return op.err }

type nopOp struct{}

func (nopOp) exec(*Frame) error { return nil }
