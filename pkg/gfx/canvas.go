// Package gfx keeps the graphics screens of the interpreter in memory.
//
// A Canvas has one low-resolution screen of 40x48 blocks in 16 colors and two
// high-resolution pages of 280x192 dots in 8 colors. Nothing is displayed;
// the screens can be examined with Scrn and HScrn or written out with Render.
package gfx

import (
	"bufio"
	"io"

	"src.abasic.dev/pkg/eval/errs"
)

const (
	LoresWidth  = 40
	LoresHeight = 48
	HiresWidth  = 280
	HiresHeight = 192
)

// Mode is the screen being shown.
type Mode int

const (
	TextMode Mode = iota
	LoresMode
	HiresMode
)

// Canvas implements the Graphics collaborator of eval.
type Canvas struct {
	mode   Mode
	page   int
	color  int
	hcolor int
	lores  [LoresHeight][LoresWidth]byte
	hires  [2][HiresHeight][HiresWidth]byte
	shapes []byte
	// Set by every change to what is shown; cleared by Changed.
	dirty bool
}

// NewCanvas returns a Canvas showing text.
func NewCanvas() *Canvas { return &Canvas{page: 1} }

func (c *Canvas) Mode() Mode { return c.mode }

// Page returns the high-resolution page being drawn on, 1 or 2.
func (c *Canvas) Page() int { return c.page }

func (c *Canvas) Text() { c.mode, c.dirty = TextMode, true }

func (c *Canvas) Lores() {
	c.mode, c.dirty = LoresMode, true
	c.lores = [LoresHeight][LoresWidth]byte{}
}

func (c *Canvas) Hires(page int) {
	if page != 2 {
		page = 1
	}
	c.mode, c.page, c.dirty = HiresMode, page, true
	c.hires[page-1] = [HiresHeight][HiresWidth]byte{}
}

func (c *Canvas) SetColor(color int) { c.color = color & 15 }

func (c *Canvas) Plot(x, y int) {
	if inLores(x, y) {
		c.lores[y][x] = byte(c.color)
		c.dirty = true
	}
}

func (c *Canvas) HLin(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.Plot(x, y)
	}
}

func (c *Canvas) VLin(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.Plot(x, y)
	}
}

// Scrn returns the color of a block, or 0 outside the screen.
func (c *Canvas) Scrn(x, y int) int {
	if !inLores(x, y) {
		return 0
	}
	return int(c.lores[y][x])
}

func (c *Canvas) SetHColor(color int) { c.hcolor = color & 7 }

func (c *Canvas) HPlot(x, y int) { c.set(x, y, byte(c.hcolor)) }

// HLine draws a line with Bresenham's algorithm, both ends included.
func (c *Canvas) HLine(x1, y1, x2, y2 int) {
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := sign(x2-x1), sign(y2-y1)
	e := dx + dy
	for {
		c.HPlot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// Changed reports whether the screen has changed since the last call.
func (c *Canvas) Changed() bool {
	changed := c.dirty
	c.dirty = false
	return changed
}

// Width returns the width of the screen being shown, or 0 in text mode.
func (c *Canvas) Width() int {
	switch c.mode {
	case LoresMode:
		return LoresWidth
	case HiresMode:
		return HiresWidth
	}
	return 0
}

// HScrn returns the color of a dot on the current page.
func (c *Canvas) HScrn(x, y int) int {
	if !inHires(x, y) {
		return 0
	}
	return int(c.hires[c.page-1][y][x])
}

func (c *Canvas) set(x, y int, color byte) {
	if inHires(x, y) {
		c.hires[c.page-1][y][x] = color
		c.dirty = true
	}
}

// flip complements a dot between black and white of the same group.
func (c *Canvas) flip(x, y int) {
	if inHires(x, y) {
		c.hires[c.page-1][y][x] ^= 3
		c.dirty = true
	}
}

// LoadShapes replaces the shape table after checking its directory.
func (c *Canvas) LoadShapes(table []byte) error {
	if len(table) < 2 || table[0] == 0 || len(table) < 2+2*int(table[0]) {
		return errs.Newf(errs.IllegalQuantity, "bad shape table")
	}
	c.shapes = append([]byte(nil), table...)
	return nil
}

// Draw renders shape n. Each byte of a shape holds up to three vectors; the
// low two hold a plot bit and a direction, the top one only a direction and
// is never plotted. A zero byte ends the shape.
func (c *Canvas) Draw(n, x, y, rot, scale int, xor bool) error {
	if c.shapes == nil {
		return errs.Newf(errs.IllegalQuantity, "no shape table")
	}
	if n < 1 || n > int(c.shapes[0]) {
		return errs.Newf(errs.IllegalQuantity, "no shape %d", n)
	}
	off := int(c.shapes[2*n]) | int(c.shapes[2*n+1])<<8
	if off >= len(c.shapes) {
		return errs.Newf(errs.IllegalQuantity, "shape %d out of table", n)
	}
	if scale == 0 {
		scale = 256
	}
	turn := (rot & 63) / 16
	plot := c.HPlot
	if xor {
		plot = c.flip
	}
	move := func(v byte, canPlot bool) {
		dir := (int(v&3) + turn) & 3
		for i := 0; i < scale; i++ {
			if canPlot && v&4 != 0 {
				plot(x, y)
			}
			switch dir {
			case 0:
				y--
			case 1:
				x++
			case 2:
				y++
			case 3:
				x--
			}
		}
	}
	for _, b := range c.shapes[off:] {
		if b == 0 {
			break
		}
		a, bb, cc := b&7, (b>>3)&7, b>>6
		move(a, true)
		if bb != 0 || cc != 0 {
			move(bb, true)
		}
		if cc != 0 {
			move(cc, false)
		}
	}
	return nil
}

const colorDigits = "0123456789ABCDEF"

// Render writes the screen being shown: one character per block or dot, a
// hexadecimal color digit or '.' for black. The text screen renders as
// nothing.
func (c *Canvas) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	switch c.mode {
	case LoresMode:
		for _, row := range c.lores {
			writeRow(bw, row[:])
		}
	case HiresMode:
		for _, row := range c.hires[c.page-1] {
			writeRow(bw, row[:])
		}
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, row []byte) {
	for _, p := range row {
		if p == 0 {
			w.WriteByte('.')
		} else {
			w.WriteByte(colorDigits[p])
		}
	}
	w.WriteByte('\n')
}

func inLores(x, y int) bool { return x >= 0 && x < LoresWidth && y >= 0 && y < LoresHeight }

func inHires(x, y int) bool { return x >= 0 && x < HiresWidth && y >= 0 && y < HiresHeight }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
