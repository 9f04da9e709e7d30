package eval

import (
	"io"
	"strings"
	"time"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
	"src.abasic.dev/pkg/parse"
)

const (
	zoneWidth  = 14
	screenRows = 24
)

type textAttr int

const (
	attrNormal textAttr = iota
	attrInverse
	attrFlash
)

var attrSGR = [...]string{
	attrNormal:  "\033[0m",
	attrInverse: "\033[7m",
	attrFlash:   "\033[5m",
}

// printer writes program output and tracks the cursor. The cursor can only
// move forward: HTAB and VTAB emit spaces and newlines to catch up.
type printer struct {
	w    io.Writer
	ansi bool

	col, row int
	attr     textAttr
	speed    int

	// Text of a DOS command being printed after CHR$(4), or nil.
	cmd *strings.Builder
	// Runs a DOS command when its line ends.
	onCommand func(string) error
	// Receives output instead of w while a file is open for WRITE.
	redirect func(string) error
}

func newPrinter(w io.Writer, ansi bool) *printer {
	return &printer{w: w, ansi: ansi, speed: 255}
}

// write prints s, updating the cursor. A CHR$(4) at the start of a line
// begins a DOS command that lasts until the end of the line.
func (p *printer) write(s string) error {
	var buf []byte
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		out := buf
		buf = nil
		return p.emit(out)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if p.cmd != nil {
			if c == '\n' || c == '\r' {
				text := p.cmd.String()
				p.cmd = nil
				if err := flush(); err != nil {
					return err
				}
				if err := p.onCommand(text); err != nil {
					return err
				}
				continue
			}
			p.cmd.WriteByte(c)
			continue
		}
		switch {
		case c == 4 && p.col == 0 && p.onCommand != nil:
			p.cmd = &strings.Builder{}
			continue
		case c == '\n' || c == '\r':
			c = '\n'
			p.col = 0
			if p.row < screenRows-1 {
				p.row++
			}
		case c >= ' ':
			p.col++
		}
		buf = append(buf, c)
	}
	return flush()
}

func (p *printer) emit(b []byte) error {
	if p.redirect != nil {
		return p.redirect(string(b))
	}
	if p.speed < 255 {
		delay := time.Duration(255-p.speed) * 20 * time.Microsecond
		for i := range b {
			if _, err := p.w.Write(b[i : i+1]); err != nil {
				return errs.Newf(errs.IOError, "%v", err)
			}
			time.Sleep(delay)
		}
		return nil
	}
	if _, err := p.w.Write(b); err != nil {
		return errs.Newf(errs.IOError, "%v", err)
	}
	return nil
}

// escape writes a terminal control sequence, which does not move the cursor.
func (p *printer) escape(seq string) error {
	if !p.ansi || p.redirect != nil {
		return nil
	}
	if _, err := io.WriteString(p.w, seq); err != nil {
		return errs.Newf(errs.IOError, "%v", err)
	}
	return nil
}

func (p *printer) setAttr(a textAttr) error {
	p.attr = a
	return p.escape(attrSGR[a])
}

func (p *printer) home() error {
	p.col, p.row = 0, 0
	return p.escape("\033[2J\033[H")
}

func (p *printer) clearToEnd(seq string) error { return p.escape(seq) }

func (p *printer) spaces(n int) error {
	if n <= 0 {
		return nil
	}
	return p.write(strings.Repeat(" ", n))
}

// tabTo moves to column col if it is ahead of the cursor.
func (p *printer) tabTo(col int) error { return p.spaces(col - p.col) }

// zone moves to the start of the next print zone.
func (p *printer) zone() error {
	return p.tabTo((p.col/zoneWidth + 1) * zoneWidth)
}

func (p *printer) htab(col int) error { return p.tabTo(col) }

// vtab moves down to row, keeping the column.
func (p *printer) vtab(row int) error {
	if row <= p.row {
		return nil
	}
	col := p.col
	if err := p.write(strings.Repeat("\n", row-p.row)); err != nil {
		return err
	}
	return p.tabTo(col)
}

type printItemOp struct {
	kind parse.PrintKind
	x    valueOp
}

type printOp struct {
	items   []printItemOp
	newline bool
}

func (cp *compiler) printOp(n *parse.Print) *printOp {
	op := &printOp{newline: n.Newline}
	for _, it := range n.Items {
		item := printItemOp{kind: it.Kind}
		if it.X != nil {
			item.x = cp.valueOp(it.X)
		}
		op.items = append(op.items, item)
	}
	return op
}

func (op *printOp) exec(fm *Frame) error {
	p := fm.out
	for _, it := range op.items {
		var err error
		switch it.kind {
		case parse.PrintExpr:
			var v vals.Value
			if v, err = it.x.eval(fm); err == nil {
				err = p.write(v.Text())
			}
		case parse.PrintComma:
			err = p.zone()
		case parse.PrintTab:
			var n int
			if n, err = evalRange(fm, it.x, 0, 255); err == nil && n > 0 {
				err = p.tabTo(n - 1)
			}
		case parse.PrintSpc:
			var n int
			if n, err = evalRange(fm, it.x, 0, 255); err == nil {
				err = p.spaces(n)
			}
		}
		if err != nil {
			return err
		}
	}
	if op.newline {
		return p.write("\n")
	}
	return nil
}
