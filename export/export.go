// Package export renders a sampled curve to an image file with gonum/plot.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"fplot/chart"
	"fplot/curve"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Default page size in inches.
const (
	DefaultWidthIn  = 6
	DefaultHeightIn = 4
)

var ErrEmptySeries = errors.New("export: empty series")

// Options controls the output size.
type Options struct {
	WidthIn  float64
	HeightIn float64
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.WidthIn, o.HeightIn
	if w <= 0 {
		w = DefaultWidthIn
	}
	if h <= 0 {
		h = DefaultHeightIn
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// Segments splits the series into runs of finite samples.
func Segments(s *curve.Series) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i := 0; i < s.Len(); i++ {
		x, y := s.X[i], s.Y[i]
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x, Y: y})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// NewPlot builds the gonum plot for s: one line per finite run, a grid and a legend entry.
func NewPlot(s *curve.Series) (*plot.Plot, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	segs := Segments(s)
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: no finite samples", ErrEmptySeries)
	}

	p := plot.New()
	p.Title.Text = "f(x) = " + s.Label()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "f(x)"
	p.Add(plotter.NewGrid())

	legendAdded := false
	for _, seg := range segs {
		if len(seg) == 1 {
			sc, err := plotter.NewScatter(seg)
			if err != nil {
				return nil, fmt.Errorf("export: scatter: %w", err)
			}
			sc.GlyphStyle.Radius = vg.Points(1)
			p.Add(sc)
			continue
		}
		l, err := plotter.NewLine(seg)
		if err != nil {
			return nil, fmt.Errorf("export: line: %w", err)
		}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		if !legendAdded {
			p.Legend.Add(s.Label(), l)
			legendAdded = true
		}
	}

	p.X.Min, p.X.Max = s.Domain.Min, s.Domain.Max
	if lo, hi, ok := s.YRange(); ok {
		p.Y.Min, p.Y.Max = chart.YWindow(lo, hi)
	}
	return p, nil
}

// WritePNG renders s as a PNG image to w.
func WritePNG(w io.Writer, s *curve.Series, opt Options) error {
	return write(w, s, opt, "png")
}

// WriteSVG renders s as an SVG document to w.
func WriteSVG(w io.Writer, s *curve.Series, opt Options) error {
	return write(w, s, opt, "svg")
}

func write(w io.Writer, s *curve.Series, opt Options, format string) error {
	p, err := NewPlot(s)
	if err != nil {
		return err
	}
	width, height := opt.size()
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("export: %s writer: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("export: write %s: %w", format, err)
	}
	return nil
}

// Save renders s to path; the format follows the file extension (png, svg, pdf, ...).
func Save(path string, s *curve.Series, opt Options) error {
	p, err := NewPlot(s)
	if err != nil {
		return err
	}
	width, height := opt.size()
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}
