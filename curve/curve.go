// Package curve turns the three text inputs of a plot request into a sampled series.
//
// It owns the user-facing validation rules and the mapping from errors to the
// messages shown in the error dialog.
package curve

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultSamples is the number of points a curve is sampled at.
const DefaultSamples = 500

// Sample count limits accepted by Evaluate.
const (
	MinSamples = 2
	MaxSamples = 4096
)

var (
	ErrMissingFunction = errors.New("missing function")
	ErrMissingBounds   = errors.New("missing domain bound")
	ErrInvalidBounds   = errors.New("invalid domain bound")
	ErrBoundsOrder     = errors.New("domain max not greater than min")
	// ErrInvalidFunction wraps every failure to turn the expression into values.
	ErrInvalidFunction = errors.New("invalid function")
	ErrNoFiniteSamples = errors.New("no finite samples")
	ErrSampleCount     = errors.New("sample count out of range")
)

// User-facing messages, one per error class.
const (
	MsgMissingFunction = "Please enter a function."
	MsgMissingBounds   = "Please enter both min and max values of x."
	MsgInvalidBounds   = "Invalid min/max values of x."
	MsgBoundsOrder     = "Max value of x must be greater than min value of x."
	MsgInvalidFunction = "Invalid function."
)

// ErrorTitle is the title of the dialog every plot error is shown in.
const ErrorTitle = "Error"

// Message returns the dialog text for err.
//
// Anything that is not one of the input validation errors is reported as an invalid
// function, whatever its cause.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFunction):
		return MsgMissingFunction
	case errors.Is(err, ErrMissingBounds):
		return MsgMissingBounds
	case errors.Is(err, ErrInvalidBounds):
		return MsgInvalidBounds
	case errors.Is(err, ErrBoundsOrder):
		return MsgBoundsOrder
	default:
		return MsgInvalidFunction
	}
}

// Domain is a validated closed interval [Min, Max] with Min < Max, both finite.
type Domain struct {
	Min float64
	Max float64
}

// Validate checks the raw inputs of a plot request and parses the domain bounds.
//
// Checks run in a fixed order and the first failing one wins: empty expression,
// empty bound, unparsable or non-finite bound, min not below max.
func Validate(function, minText, maxText string) (Domain, error) {
	if function == "" {
		return Domain{}, ErrMissingFunction
	}
	if minText == "" || maxText == "" {
		return Domain{}, ErrMissingBounds
	}
	lo, err := parseBound(minText)
	if err != nil {
		return Domain{}, fmt.Errorf("%w: min: %w", ErrInvalidBounds, err)
	}
	hi, err := parseBound(maxText)
	if err != nil {
		return Domain{}, fmt.Errorf("%w: max: %w", ErrInvalidBounds, err)
	}
	if lo >= hi {
		return Domain{}, fmt.Errorf("%w: min=%g max=%g", ErrBoundsOrder, lo, hi)
	}
	return Domain{Min: lo, Max: hi}, nil
}

func parseBound(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return f, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
//
// The last value is exactly hi. n <= 0 yields nil and n == 1 yields [lo].
// Finite bounds always give finite samples, even when hi-lo overflows.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	last := float64(n - 1)
	if step := (hi - lo) / last; !math.IsInf(step, 0) {
		for i := range out {
			out[i] = lo + float64(i)*step
		}
	} else {
		for i := range out {
			t := float64(i) / last
			out[i] = lo*(1-t) + hi*t
		}
	}
	out[n-1] = hi
	return out
}
