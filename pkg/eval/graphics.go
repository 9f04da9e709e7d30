package eval

import (
	"errors"
	"io"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/parse"
)

const (
	loresWidth  = 40
	loresHeight = 48
	hiresWidth  = 280
	hiresHeight = 192
)

// graphics returns the graphics collaborator, or GRAPHICS NOT ENABLED if
// there is none or graphics are disabled by configuration.
func (fm *Frame) graphics() (Graphics, error) {
	if fm.Graphics == nil || !fm.cfg.Graphics {
		return nil, errs.New(errs.GraphicsNotEnabled)
	}
	return fm.Graphics, nil
}

// TEXT is allowed without graphics; it only resets the text window.
func (fm *Frame) textCmd() error {
	if g, err := fm.graphics(); err == nil {
		g.Text()
	}
	return nil
}

func (fm *Frame) grCmd() error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	g.Lores()
	return nil
}

func (fm *Frame) hgrCmd(page int) error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	g.Hires(page)
	fm.lastX, fm.lastY = 0, 0
	return nil
}

// graphicsParam runs COLOR=, HCOLOR=, ROT= and SCALE=.
func (fm *Frame) graphicsParam(kw string, x valueOp) error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	switch kw {
	case "COLOR":
		c, err := evalRange(fm, x, 0, 15)
		if err != nil {
			return err
		}
		g.SetColor(c)
	case "HCOLOR":
		c, err := evalRange(fm, x, 0, 7)
		if err != nil {
			return err
		}
		g.SetHColor(c)
	case "ROT":
		if fm.rot, err = evalRange(fm, x, 0, 255); err != nil {
			return err
		}
	case "SCALE":
		if fm.scale, err = evalRange(fm, x, 0, 255); err != nil {
			return err
		}
	}
	return nil
}

type pointOp struct{ x, y valueOp }

func (cp *compiler) pointOp(p parse.Point) pointOp {
	return pointOp{cp.valueOp(p.X), cp.valueOp(p.Y)}
}

func (p pointOp) eval(fm *Frame, w, h int) (int, int, error) {
	x, err := evalRange(fm, p.x, 0, w-1)
	if err != nil {
		return 0, 0, err
	}
	y, err := evalRange(fm, p.y, 0, h-1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

type plotOp struct{ x, y valueOp }

func (op *plotOp) exec(fm *Frame) error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	x, y, err := pointOp{op.x, op.y}.eval(fm, loresWidth, loresHeight)
	if err != nil {
		return err
	}
	g.Plot(x, y)
	return nil
}

// linOp is HLIN a,b AT y or VLIN a,b AT x.
type linOp struct {
	vertical bool
	a, b, at valueOp
}

func (op *linOp) exec(fm *Frame) error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	along, across := loresWidth, loresHeight
	if op.vertical {
		along, across = across, along
	}
	a, err := evalRange(fm, op.a, 0, along-1)
	if err != nil {
		return err
	}
	b, err := evalRange(fm, op.b, 0, along-1)
	if err != nil {
		return err
	}
	at, err := evalRange(fm, op.at, 0, across-1)
	if err != nil {
		return err
	}
	if op.vertical {
		g.VLin(a, b, at)
	} else {
		g.HLin(a, b, at)
	}
	return nil
}

type hplotOp struct {
	fromLast bool
	points   []pointOp
}

// HPLOT plots its first point, then draws a line to each following one.
// HPLOT TO starts the line at the last point plotted.
func (op *hplotOp) exec(fm *Frame) error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	for i, p := range op.points {
		x, y, err := p.eval(fm, hiresWidth, hiresHeight)
		if err != nil {
			return err
		}
		if i == 0 && !op.fromLast {
			g.HPlot(x, y)
		} else {
			g.HLine(fm.lastX, fm.lastY, x, y)
		}
		fm.lastX, fm.lastY = x, y
	}
	return nil
}

type drawOp struct {
	xor   bool
	shape valueOp
	at    *pointOp
}

func (op *drawOp) exec(fm *Frame) error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	n, err := evalRange(fm, op.shape, 0, 255)
	if err != nil {
		return err
	}
	x, y := fm.lastX, fm.lastY
	if op.at != nil {
		if x, y, err = op.at.eval(fm, hiresWidth, hiresHeight); err != nil {
			return err
		}
	}
	fm.lastX, fm.lastY = x, y
	return g.Draw(n, x, y, fm.rot, fm.scale, op.xor)
}

type shloadOp struct{ file valueOp }

// SHLOAD reads a shape table from the named file, or the next tape record.
func (op *shloadOp) exec(fm *Frame) error {
	g, err := fm.graphics()
	if err != nil {
		return err
	}
	var table []byte
	if op.file != nil {
		name, err := evalStr(fm, op.file)
		if err != nil {
			return err
		}
		files, err := fm.files()
		if err != nil {
			return err
		}
		if table, err = files.ReadAll(name); err != nil {
			return err
		}
	} else {
		if fm.Tape == nil {
			return errs.Newf(errs.IOError, "no tape")
		}
		table, err = fm.Tape.ReadRecord()
		if errors.Is(err, io.EOF) {
			return errs.New(errs.EndOfData)
		} else if err != nil {
			return err
		}
	}
	return g.LoadShapes(table)
}
