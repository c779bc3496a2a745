package curve

import (
	"fmt"
	"math"

	"fplot/expr"
)

// Series is one sampled curve: parallel X and Y sequences.
//
// Y may contain NaN or ±Inf where the expression is undefined; renderers treat those
// samples as gaps.
type Series struct {
	Expr   *expr.Expr
	Domain Domain
	X      []float64
	Y      []float64
}

// Label returns the canonical text of the plotted expression.
func (s *Series) Label() string {
	if s == nil || s.Expr == nil {
		return ""
	}
	return s.Expr.String()
}

// Len returns the number of samples.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.X)
}

// YRange returns the smallest and largest finite Y value.
func (s *Series) YRange() (lo, hi float64, ok bool) {
	if s == nil {
		return 0, 0, false
	}
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, y := range s.Y {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Evaluate parses function and samples it at n evenly spaced points of d.
//
// Every failure is wrapped in ErrInvalidFunction, including a curve with no finite
// sample at all.
func Evaluate(function string, d Domain, n int) (*Series, error) {
	if n < MinSamples || n > MaxSamples {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrSampleCount, n, MinSamples, MaxSamples)
	}
	ex, err := expr.Parse(function)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFunction, err)
	}

	xs := Linspace(d.Min, d.Max, n)
	s := &Series{
		Expr:   ex,
		Domain: d,
		X:      xs,
		Y:      ex.EvalAll(make([]float64, 0, n), xs),
	}
	if _, _, ok := s.YRange(); !ok {
		return nil, fmt.Errorf("%w: %w over [%g, %g]", ErrInvalidFunction, ErrNoFiniteSamples, d.Min, d.Max)
	}
	return s, nil
}

// Plot runs the whole request pipeline: validate the inputs, then evaluate.
func Plot(function, minText, maxText string, n int) (*Series, error) {
	d, err := Validate(function, minText, maxText)
	if err != nil {
		return nil, err
	}
	return Evaluate(function, d, n)
}
