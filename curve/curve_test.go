package curve

import (
	"errors"
	"math"
	"testing"
)

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		function string
		min, max string
		want     error
		msg      string
	}{
		{name: "empty function", function: "", min: "0", max: "1", want: ErrMissingFunction, msg: MsgMissingFunction},
		{name: "empty function wins over bounds", function: "", min: "", max: "", want: ErrMissingFunction, msg: MsgMissingFunction},
		{name: "empty min", function: "x", min: "", max: "1", want: ErrMissingBounds, msg: MsgMissingBounds},
		{name: "empty max", function: "x", min: "0", max: "", want: ErrMissingBounds, msg: MsgMissingBounds},
		{name: "text min", function: "x", min: "abc", max: "1", want: ErrInvalidBounds, msg: MsgInvalidBounds},
		{name: "text max", function: "x", min: "0", max: "1..2", want: ErrInvalidBounds, msg: MsgInvalidBounds},
		{name: "blank min", function: "x", min: "   ", max: "1", want: ErrInvalidBounds, msg: MsgInvalidBounds},
		{name: "inf", function: "x", min: "-inf", max: "1", want: ErrInvalidBounds, msg: MsgInvalidBounds},
		{name: "nan", function: "x", min: "0", max: "nan", want: ErrInvalidBounds, msg: MsgInvalidBounds},
		{name: "overflow", function: "x", min: "0", max: "1e400", want: ErrInvalidBounds, msg: MsgInvalidBounds},
		{name: "equal", function: "x", min: "1", max: "1", want: ErrBoundsOrder, msg: MsgBoundsOrder},
		{name: "reversed", function: "x", min: "2", max: "-2", want: ErrBoundsOrder, msg: MsgBoundsOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.function, tt.min, tt.max)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate error = %v, want %v", err, tt.want)
			}
			if got := Message(err); got != tt.msg {
				t.Fatalf("Message = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestValidate_ParsesBounds(t *testing.T) {
	d, err := Validate("x", " -1.5 ", "2e1")
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if d.Min != -1.5 || d.Max != 20 {
		t.Fatalf("domain = %+v", d)
	}
}

func TestLinspace(t *testing.T) {
	xs := Linspace(0, 2, DefaultSamples)
	if len(xs) != 500 {
		t.Fatalf("len=%d, want 500", len(xs))
	}
	if xs[0] != 0 || xs[len(xs)-1] != 2 {
		t.Fatalf("endpoints = %v, %v", xs[0], xs[len(xs)-1])
	}
	step := 2.0 / 499
	for i := 1; i < len(xs); i++ {
		if d := xs[i] - xs[i-1]; math.Abs(d-step) > 1e-12 {
			t.Fatalf("uneven step at %d: %v", i, d)
		}
	}

	if got := Linspace(3, 4, 1); len(got) != 1 || got[0] != 3 {
		t.Fatalf("Linspace n=1 = %v", got)
	}
	if got := Linspace(3, 4, 0); got != nil {
		t.Fatalf("Linspace n=0 = %v", got)
	}
}

func TestLinspace_SpanBeyondFloatRange(t *testing.T) {
	xs := Linspace(-1e308, 1e308, DefaultSamples)
	if xs[0] != -1e308 || xs[len(xs)-1] != 1e308 {
		t.Fatalf("endpoints = %v, %v", xs[0], xs[len(xs)-1])
	}
	step := 1e308 / 499 * 2
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("xs[%d] = %v", i, x)
		}
		if i == 0 {
			continue
		}
		if d := x - xs[i-1]; math.Abs(d-step) > 1e-9*step {
			t.Fatalf("uneven step at %d: %v, want %v", i, d, step)
		}
	}

	xs = Linspace(-math.MaxFloat64, math.MaxFloat64, 2)
	if xs[0] != -math.MaxFloat64 || xs[1] != math.MaxFloat64 {
		t.Fatalf("n=2 = %v", xs)
	}
}

func TestPlot_HugeDomain(t *testing.T) {
	s, err := Plot("x", "-1e308", "1e308", DefaultSamples)
	if err != nil {
		t.Fatalf("Plot error: %v", err)
	}
	for i := range s.X {
		if s.X[i] != s.Y[i] || math.IsInf(s.X[i], 0) || math.IsNaN(s.X[i]) {
			t.Fatalf("sample %d = (%v, %v)", i, s.X[i], s.Y[i])
		}
	}
}

func TestPlot_Square(t *testing.T) {
	s, err := Plot("x^2", "0", "2", DefaultSamples)
	if err != nil {
		t.Fatalf("Plot error: %v", err)
	}
	if s.Len() != 500 || len(s.Y) != 500 {
		t.Fatalf("len X=%d Y=%d", len(s.X), len(s.Y))
	}
	if s.Y[0] != 0 || s.Y[499] != 4 {
		t.Fatalf("y(0)=%v y(2)=%v", s.Y[0], s.Y[499])
	}
	for i, x := range s.X {
		if math.Abs(s.Y[i]-x*x) > 1e-12 {
			t.Fatalf("y[%d]=%v, want %v", i, s.Y[i], x*x)
		}
	}
	if s.Label() != "x^2" {
		t.Fatalf("label=%q", s.Label())
	}
}

func TestPlot_Affine(t *testing.T) {
	s, err := Plot("5*x + 2", "-1", "1", DefaultSamples)
	if err != nil {
		t.Fatalf("Plot error: %v", err)
	}
	if s.Y[0] != -3 || s.Y[len(s.Y)-1] != 7 {
		t.Fatalf("y(-1)=%v y(1)=%v", s.Y[0], s.Y[len(s.Y)-1])
	}
	// Affine: constant first differences.
	d0 := s.Y[1] - s.Y[0]
	for i := 2; i < len(s.Y); i++ {
		if d := s.Y[i] - s.Y[i-1]; math.Abs(d-d0) > 1e-9 {
			t.Fatalf("non-constant slope at %d: %v vs %v", i, d, d0)
		}
	}
}

func TestPlot_InvalidFunction(t *testing.T) {
	tests := []struct {
		function string
		cause    error
	}{
		{function: "x +", cause: nil},
		{function: "y^2", cause: nil},
		{function: "sin(x, x)", cause: nil},
		{function: "sqrt(-1 - x^2)", cause: ErrNoFiniteSamples},
	}
	for _, tt := range tests {
		_, err := Plot(tt.function, "-1", "1", DefaultSamples)
		if !errors.Is(err, ErrInvalidFunction) {
			t.Fatalf("Plot(%q) error = %v, want ErrInvalidFunction", tt.function, err)
		}
		if tt.cause != nil && !errors.Is(err, tt.cause) {
			t.Fatalf("Plot(%q) error = %v, want cause %v", tt.function, err, tt.cause)
		}
		if got := Message(err); got != MsgInvalidFunction {
			t.Fatalf("Message = %q", got)
		}
	}
}

func TestPlot_PoleLeavesGap(t *testing.T) {
	// Three samples over [-1, 1] put the middle one exactly on the pole.
	s, err := Plot("1/x", "-1", "1", 3)
	if err != nil {
		t.Fatalf("Plot error: %v", err)
	}
	if !math.IsInf(s.Y[1], 0) {
		t.Fatalf("y(0)=%v, want Inf", s.Y[1])
	}
	lo, hi, ok := s.YRange()
	if !ok || lo != -1 || hi != 1 {
		t.Fatalf("YRange = %v, %v, %v", lo, hi, ok)
	}
}

func TestEvaluate_SampleCount(t *testing.T) {
	d := Domain{Min: 0, Max: 1}
	if _, err := Evaluate("x", d, 1); !errors.Is(err, ErrSampleCount) {
		t.Fatalf("n=1 error = %v", err)
	}
	if _, err := Evaluate("x", d, MaxSamples+1); !errors.Is(err, ErrSampleCount) {
		t.Fatalf("n=max+1 error = %v", err)
	}
}

func TestMessage_Nil(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q", got)
	}
}
