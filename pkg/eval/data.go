package eval

import (
	"sort"
	"strings"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
	"src.abasic.dev/pkg/eval/vars"
	"src.abasic.dev/pkg/parse"
)

// dataQueue holds the literals of all DATA statements of the program in line
// order, and the read pointer.
type dataQueue struct {
	items []parse.DataItem
	// Lines having DATA, in order, and the offset of their first item.
	lines   []int
	offsets map[int]int
	ptr     int
	// Set when the program changed since the queue was built.
	stale bool
}

// rebuildData scans every line of the program for DATA, regardless of
// control flow, and rewinds the read pointer.
func (ev *Evaler) rebuildData() {
	d := &dataQueue{offsets: make(map[int]int)}
	ev.prog.each(0, parse.MaxLine, func(l *progLine) bool {
		n := len(d.items)
		collectData(l.Stmts, &d.items)
		if len(d.items) > n {
			d.lines = append(d.lines, l.Number)
			d.offsets[l.Number] = n
		}
		return true
	})
	ev.data = d
}

func collectData(stmts []parse.Stmt, items *[]parse.DataItem) {
	for _, s := range stmts {
		switch s := s.(type) {
		case *parse.Data:
			*items = append(*items, s.Items...)
		case *parse.If:
			collectData(s.Then, items)
			collectData(s.Else, items)
		}
	}
}

// freshData returns the queue, rebuilding it first if the program was edited
// since it was built. The read pointer survives a rebuild.
func (ev *Evaler) freshData() *dataQueue {
	if ev.data.stale {
		ptr := ev.data.ptr
		ev.rebuildData()
		ev.data.ptr = ptr
	}
	return ev.data
}

// dataOp does nothing in a program, where DATA is collected before the run.
// Executed immediately, it appends its items to the queue.
type dataOp struct{ items []parse.DataItem }

func (op *dataOp) exec(fm *Frame) error {
	if fm.cur.line == immediateLine {
		d := fm.freshData()
		d.items = append(d.items, op.items...)
	}
	return nil
}

type readOp struct{ targets []lvalueOp }

func (op *readOp) exec(fm *Frame) error {
	d := fm.freshData()
	for _, lv := range op.targets {
		if d.ptr >= len(d.items) {
			return errs.New(errs.OutOfData)
		}
		item := d.items[d.ptr]
		d.ptr++
		if err := assign(fm, lv, dataValue(item, lv.key())); err != nil {
			return err
		}
	}
	return nil
}

// dataValue converts a DATA literal for a target: string variables take the
// text as is, numeric ones parse it. An empty item reads as 0.
func dataValue(item parse.DataItem, key string) vals.Value {
	switch {
	case vars.IsString(key) || item.Quoted:
		return vals.Str(item.Text)
	case strings.TrimSpace(item.Text) == "":
		return vals.Num(0)
	}
	return vals.FromText(item.Text)
}

type restoreOp struct{ line int }

// RESTORE without a line rewinds to the first item; with a line, to the
// first item of the first line at or after it that has DATA.
func (op restoreOp) exec(fm *Frame) error {
	d := fm.freshData()
	if op.line == parse.NoLine {
		d.ptr = 0
		return nil
	}
	if fm.prog.get(op.line) == nil {
		return errs.Newf(errs.UndefStatement, "%d", op.line)
	}
	i := sort.SearchInts(d.lines, op.line)
	if i == len(d.lines) {
		d.ptr = len(d.items)
	} else {
		d.ptr = d.offsets[d.lines[i]]
	}
	return nil
}
