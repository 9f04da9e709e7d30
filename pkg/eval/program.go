package eval

import (
	"strconv"
	"strings"

	"github.com/google/btree"

	"src.abasic.dev/pkg/parse"
)

// progLine is one numbered line of the program. Lines that fail to parse are
// kept; executing them raises the parse error.
type progLine struct {
	Number int
	Text   string
	Stmts  []parse.Stmt
	Ops    []effectOp
	Err    error
}

// program is the ordered map of line numbers to lines.
type program struct {
	t *btree.BTreeG[*progLine]
}

func lessLine(a, b *progLine) bool { return a.Number < b.Number }

func newProgram() *program {
	return &program{btree.NewG(8, lessLine)}
}

func key(n int) *progLine { return &progLine{Number: n} }

func (p *program) get(n int) *progLine {
	l, _ := p.t.Get(key(n))
	return l
}

func (p *program) put(l *progLine) { p.t.ReplaceOrInsert(l) }

func (p *program) delete(n int) bool {
	_, ok := p.t.Delete(key(n))
	return ok
}

// atLeast returns the first line numbered n or higher, or nil.
func (p *program) atLeast(n int) *progLine {
	var found *progLine
	p.t.AscendGreaterOrEqual(key(n), func(l *progLine) bool {
		found = l
		return false
	})
	return found
}

// after returns the first line numbered higher than n, or nil.
func (p *program) after(n int) *progLine { return p.atLeast(n + 1) }

func (p *program) first() *progLine {
	l, _ := p.t.Min()
	return l
}

// each calls f on the lines in [from, to] in order until f returns false.
func (p *program) each(from, to int, f func(*progLine) bool) {
	p.t.AscendGreaterOrEqual(key(from), func(l *progLine) bool {
		if l.Number > to {
			return false
		}
		return f(l)
	})
}

func (p *program) len() int { return p.t.Len() }

func (p *program) clear() { p.t.Clear(false) }

// text returns the program in the form accepted by Load.
func (p *program) text() string {
	var sb strings.Builder
	p.each(0, parse.MaxLine, func(l *progLine) bool {
		sb.WriteString(strconv.Itoa(l.Number))
		sb.WriteByte(' ')
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
