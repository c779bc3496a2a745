package chart

// This file contains the grid, axis, legend and polyline renderers.

import (
	"fmt"
	"math"

	"fplot/gfx"
)

func (c *Chart) drawGrid(pr gfx.Rect) {
	if c.xMin >= c.xMax || c.yMin >= c.yMax {
		return
	}

	// Grid lines roughly every 50 px horizontally and 30 px vertically.
	xHalf := c.xMax/2 - c.xMin/2
	yHalf := c.yMax/2 - c.yMin/2
	stepX := niceStep(100 / float64(pr.W-1) * xHalf)
	stepY := niceStep(60 / float64(pr.H-1) * yHalf)

	for _, x := range ticks(c.xMin, c.xMax, stepX) {
		px, _ := c.ToPixel(pr, x, 0)
		ix := pr.X + roundInt(px)
		c.d.FillRect(gfx.Rect{X: ix, Y: pr.Y, W: 1, H: pr.H}, gfx.ColorGrid)
		c.drawXLabel(ix, pr.Y+pr.H+2, fmtAxis(x))
	}
	for _, y := range ticks(c.yMin, c.yMax, stepY) {
		_, py := c.ToPixel(pr, 0, y)
		iy := pr.Y + roundInt(py)
		c.d.FillRect(gfx.Rect{X: pr.X, Y: iy, W: pr.W, H: 1}, gfx.ColorGrid)
		c.drawYLabel(pr.X-2, iy, fmtAxis(y))
	}
}

// ticks returns the multiples of step inside [lo, hi].
func ticks(lo, hi, step float64) []float64 {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil
	}
	start := math.Ceil(lo/step) * step
	var out []float64
	for i := 0; i < 64; i++ {
		v := start + float64(i)*step
		if v > hi {
			break
		}
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		out = append(out, v)
	}
	return out
}

func (c *Chart) drawAxes(pr gfx.Rect) {
	if c.xMin <= 0 && c.xMax >= 0 {
		px, _ := c.ToPixel(pr, 0, 0)
		c.d.FillRect(gfx.Rect{X: pr.X + roundInt(px), Y: pr.Y, W: 1, H: pr.H}, gfx.ColorAxis)
	}
	if c.yMin <= 0 && c.yMax >= 0 {
		_, py := c.ToPixel(pr, 0, 0)
		c.d.FillRect(gfx.Rect{X: pr.X, Y: pr.Y + roundInt(py), W: pr.W, H: 1}, gfx.ColorAxis)
	}
}

func (c *Chart) drawXLabel(px, py int, s string) {
	if s == "" {
		return
	}
	w := c.d.TextWidth(s)
	x := px - w/2
	if x < c.area.X {
		x = c.area.X
	}
	if x+w > c.area.X+c.area.W {
		x = c.area.X + c.area.W - w
	}
	c.d.Text(x, py, s, gfx.ColorDim)
}

func (c *Chart) drawYLabel(rightEdge, py int, s string) {
	if s == "" {
		return
	}
	s = c.d.Truncate(s, leftMargin-3)
	x := rightEdge - c.d.TextWidth(s)
	y := py - gfx.LineHeight/2
	if y < c.area.Y {
		y = c.area.Y
	}
	if maxY := c.area.Y + c.area.H - gfx.LineHeight; y > maxY {
		y = maxY
	}
	c.d.Text(x, y, s, gfx.ColorDim)
}

func (c *Chart) drawLegend(pr gfx.Rect, label string) {
	if label == "" {
		label = "f(x)"
	}
	const swatchW = 12
	maxText := pr.W/2 - swatchW - 3*pad
	if maxText <= 0 {
		return
	}
	label = c.d.Truncate(label, maxText)
	box := gfx.Rect{
		X: pr.X + pad,
		Y: pr.Y + pad,
		W: swatchW + c.d.TextWidth(label) + 3*pad,
		H: gfx.LineHeight + 4,
	}
	c.d.FillRect(box, gfx.ColorLegendBG)
	c.d.StrokeRect(box, gfx.ColorAxis)
	c.d.FillRect(gfx.Rect{X: box.X + pad, Y: box.Y + box.H/2 - 1, W: swatchW, H: 2}, gfx.ColorPlot)
	c.d.Text(box.X+2*pad+swatchW, box.Y+2, label, gfx.ColorFG)
}

// drawSeries draws the polyline through the finite samples, clipped to pr.
// Non-finite samples break the line.
func (c *Chart) drawSeries(pr gfx.Rect, xs, ys []float64) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}
	if c.xMin >= c.xMax || c.yMin >= c.yMax {
		return
	}

	prevOK := false
	var prevX, prevY float64
	xMax := float64(pr.W - 1)
	yMax := float64(pr.H - 1)
	for i := range xs {
		x := xs[i]
		y := ys[i]
		if !finite(x) || !finite(y) {
			prevOK = false
			continue
		}

		curX, curY := c.ToPixel(pr, x, y)
		if !finite(curY) {
			prevOK = false
			continue
		}
		if prevOK {
			cx0, cy0, cx1, cy1, ok := clipLineToRect(prevX, prevY, curX, curY, 0, 0, xMax, yMax)
			if ok {
				c.d.Line(
					pr.X+roundInt(cx0),
					pr.Y+roundInt(cy0),
					pr.X+roundInt(cx1),
					pr.Y+roundInt(cy1),
					gfx.ColorPlot,
				)
			}
		} else if curX >= 0 && curX <= xMax && curY >= 0 && curY <= yMax {
			c.d.FillRect(gfx.Rect{X: pr.X + roundInt(curX), Y: pr.Y + roundInt(curY), W: 1, H: 1}, gfx.ColorPlot)
		}
		prevOK = true
		prevX = curX
		prevY = curY
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// clipLineToRect clips a segment with Liang-Barsky.
func clipLineToRect(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	u1 := 0.0
	u2 := 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			if t > u1 {
				u1 = t
			}
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			if t < u2 {
				u2 = t
			}
		}
	}

	cx0 = clampFloat(x0+u1*dx, xmin, xmax)
	cy0 = clampFloat(y0+u1*dy, ymin, ymax)
	cx1 = clampFloat(x0+u2*dx, xmin, xmax)
	cy1 = clampFloat(y0+u2*dy, ymin, ymax)
	return cx0, cy0, cx1, cy1, true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	if pow == 0 || math.IsNaN(pow) || math.IsInf(pow, 0) {
		return 1
	}
	frac := raw / pow
	switch {
	case frac <= 1:
		return 1 * pow
	case frac <= 2:
		return 2 * pow
	case frac <= 5:
		return 5 * pow
	default:
		return 10 * pow
	}
}

func fmtAxis(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	if math.Abs(v) < 1e-12 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 1000 || av < 0.01:
		return fmt.Sprintf("%.2g", v)
	case av >= 10:
		return fmt.Sprintf("%.0f", v)
	case av == math.Trunc(av):
		return fmt.Sprintf("%.0f", v)
	case av >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.3g", v)
	}
}
