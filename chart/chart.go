// Package chart renders one sampled curve into a rectangle of a framebuffer.
//
// A Chart owns its area: every Draw repaints the whole rectangle, so a new series never
// lands on top of the previous one.
package chart

import (
	"math"

	"fplot/curve"
	"fplot/gfx"
)

// Margin is the relative headroom added above and below the finite y range.
const Margin = 0.05

const (
	leftMargin   = 40
	bottomMargin = gfx.LineHeight + 3
	pad          = 4
)

// Chart is a single-series line chart.
type Chart struct {
	d    *gfx.Display
	area gfx.Rect

	series *curve.Series

	xMin, xMax float64
	yMin, yMax float64

	// Hint is shown while no series is set.
	Hint string
}

// New returns an empty chart drawing into area of d.
func New(d *gfx.Display, area gfx.Rect) *Chart {
	return &Chart{d: d, area: area, xMin: -1, xMax: 1, yMin: -1, yMax: 1}
}

// Area returns the rectangle the chart owns.
func (c *Chart) Area() gfx.Rect { return c.area }

// Series returns the series currently shown, or nil.
func (c *Chart) Series() *curve.Series { return c.series }

// Ranges returns the data window mapped onto the plot rectangle.
func (c *Chart) Ranges() (xMin, xMax, yMin, yMax float64) {
	return c.xMin, c.xMax, c.yMin, c.yMax
}

// SetSeries replaces the shown series and rescales the axes to it.
//
// The x window is exactly the series domain. The y window spans the finite samples plus
// Margin on each side; a flat curve gets ±1 around its value.
func (c *Chart) SetSeries(s *curve.Series) {
	c.series = s
	if s == nil {
		c.xMin, c.xMax, c.yMin, c.yMax = -1, 1, -1, 1
		return
	}
	c.xMin, c.xMax = s.Domain.Min, s.Domain.Max
	lo, hi, ok := s.YRange()
	if !ok {
		lo, hi = -1, 1
	}
	c.yMin, c.yMax = YWindow(lo, hi)
}

// YWindow widens the finite data range [lo, hi] into the displayed y window.
func YWindow(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 || span < 1e-12*math.Max(math.Abs(lo), math.Abs(hi)) {
		return lo - 1, hi + 1
	}
	if math.IsInf(span, 0) {
		return lo, hi
	}
	m := span * Margin
	return lo - m, hi + m
}

// Clear paints the whole chart area with the background color.
func (c *Chart) Clear() {
	c.d.FillRect(c.area, gfx.ColorPanelBG)
}

// PlotRect returns the inner rectangle the curve is drawn into.
func (c *Chart) PlotRect() gfx.Rect {
	return gfx.Rect{
		X: c.area.X + leftMargin,
		Y: c.area.Y + pad,
		W: c.area.W - leftMargin - pad,
		H: c.area.H - bottomMargin - pad,
	}
}

// Draw repaints the chart area: background, grid, axes, curve, legend and frame.
func (c *Chart) Draw() {
	c.Clear()
	pr := c.PlotRect()
	if pr.W <= 2 || pr.H <= 2 {
		return
	}

	if c.series == nil {
		c.d.StrokeRect(pr, gfx.ColorBorder)
		if c.Hint != "" {
			hint := c.d.Truncate(c.Hint, pr.W-2*pad)
			x := pr.X + (pr.W-c.d.TextWidth(hint))/2
			y := pr.Y + (pr.H-gfx.LineHeight)/2
			c.d.Text(x, y, hint, gfx.ColorDim)
		}
		return
	}

	c.drawGrid(pr)
	c.drawAxes(pr)
	c.drawSeries(pr, c.series.X, c.series.Y)
	c.drawLegend(pr, c.series.Label())
	c.d.StrokeRect(pr, gfx.ColorBorder)
}

// ToPixel maps a data point to fractional pixel coordinates relative to the plot rectangle.
func (c *Chart) ToPixel(pr gfx.Rect, x, y float64) (px, py float64) {
	// Halved operands keep the differences finite for windows wider than MaxFloat64.
	px = (x/2 - c.xMin/2) / (c.xMax/2 - c.xMin/2) * float64(pr.W-1)
	py = (c.yMax/2 - y/2) / (c.yMax/2 - c.yMin/2) * float64(pr.H-1)
	return px, py
}
