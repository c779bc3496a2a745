// Package gfx draws primitives and text onto an RGB565 hal.Framebuffer.
package gfx

import (
	"image/color"
	"math"

	"fplot/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Text metrics of the built-in font.
const (
	LineHeight   = 10
	baselineOffs = 8
)

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Inset shrinks r by n pixels on every side.
func (r Rect) Inset(n int) Rect {
	r.X += n
	r.Y += n
	r.W -= 2 * n
	r.H -= 2 * n
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Display wraps a framebuffer with drawing helpers. It implements drivers.Displayer so
// tinyfont can render into it.
type Display struct {
	fb   hal.Framebuffer
	font tinyfont.Fonter
}

var _ drivers.Displayer = (*Display)(nil)

// New returns a Display drawing into fb.
func New(fb hal.Framebuffer) *Display {
	return &Display{fb: fb, font: &proggy.TinySZ8pt7b}
}

// Framebuffer returns the underlying framebuffer.
func (d *Display) Framebuffer() hal.Framebuffer { return d.fb }

func (d *Display) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

// Bounds returns the whole framebuffer as a Rect.
func (d *Display) Bounds() Rect {
	if d.fb == nil {
		return Rect{}
	}
	return Rect{W: d.fb.Width(), H: d.fb.Height()}
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	d.set(int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d *Display) set(x, y int, pixel uint16) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if x < 0 || y < 0 || x >= d.fb.Width() || y >= d.fb.Height() {
		return
	}
	off := y*d.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display presents the framebuffer.
func (d *Display) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.FillRect(Rect{X: int(x), Y: int(y), W: int(width), H: int(height)}, c)
	return nil
}

func (d *Display) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// Clear fills the whole framebuffer with c.
func (d *Display) Clear(c color.RGBA) {
	if d.fb == nil {
		return
	}
	d.fb.ClearRGB(c.R, c.G, c.B)
}

// FillRect fills r (clipped to the framebuffer) with c.
func (d *Display) FillRect(r Rect, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(r.X, 0, w)
	y0 := clampInt(r.Y, 0, h)
	x1 := clampInt(r.X+r.W, 0, w)
	y1 := clampInt(r.Y+r.H, 0, h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				break
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// StrokeRect draws a one pixel outline of r.
func (d *Display) StrokeRect(r Rect, c color.RGBA) {
	if r.Empty() {
		return
	}
	d.FillRect(Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, c)
	d.FillRect(Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}, c)
	d.FillRect(Rect{X: r.X, Y: r.Y, W: 1, H: r.H}, c)
	d.FillRect(Rect{X: r.X + r.W - 1, Y: r.Y, W: 1, H: r.H}, c)
}

// Line draws a line from (x0, y0) to (x1, y1) inclusive.
func (d *Display) Line(x0, y0, x1, y1 int, c color.RGBA) {
	pixel := hal.RGB565(c.R, c.G, c.B)
	dx := int(math.Abs(float64(x1 - x0)))
	dy := -int(math.Abs(float64(y1 - y0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		d.set(x0, y0, pixel)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Text draws s with its top-left corner at (x, y).
func (d *Display) Text(x, y int, s string, c color.RGBA) {
	if s == "" {
		return
	}
	tinyfont.WriteLine(d, d.font, int16(x), int16(y+baselineOffs), s, c)
}

// TextWidth returns the rendered width of s in pixels.
func (d *Display) TextWidth(s string) int {
	w, _ := tinyfont.LineWidth(d.font, s)
	return int(w)
}

// Truncate shortens s with a trailing ".." until it fits in maxW pixels.
func (d *Display) Truncate(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if d.TextWidth(s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if d.TextWidth(string(r)+"..") <= maxW {
			return string(r) + ".."
		}
	}
	return ""
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
