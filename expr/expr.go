package expr

import (
	"errors"
	"fmt"
	"strings"
)

// Var is the name of the free variable.
const Var = "x"

var (
	ErrParse = errors.New("parse error")
	// ErrUnknownName is returned for identifiers that are neither x, a constant nor a function.
	ErrUnknownName = errors.New("unknown name")
	ErrArity       = errors.New("wrong argument count")
)

// Expr is a parsed expression in x.
//
// An Expr is immutable and safe for concurrent use.
type Expr struct {
	src  string
	root node
	fast node
}

// Parse parses src into an expression tree.
func Parse(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.cur().kind == tokEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %s", ErrParse, p.cur().describe())
	}
	return &Expr{src: src, root: root, fast: fold(root)}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string { return e.src }

// String returns the canonical form of the expression.
func (e *Expr) String() string {
	var b strings.Builder
	e.root.write(&b)
	return b.String()
}

// DependsOnX reports whether the expression references x.
func (e *Expr) DependsOnX() bool { return e.root.hasVar() }

// Eval evaluates the expression at x.
//
// Domain violations do not fail: they produce NaN or ±Inf the way IEEE arithmetic does.
func (e *Expr) Eval(x float64) float64 { return e.fast.eval(x) }

// EvalAll evaluates the expression at every sample in xs and appends the results to dst.
func (e *Expr) EvalAll(dst, xs []float64) []float64 {
	if cap(dst)-len(dst) < len(xs) {
		grown := make([]float64, len(dst), len(dst)+len(xs))
		copy(grown, dst)
		dst = grown
	}
	for _, x := range xs {
		dst = append(dst, e.fast.eval(x))
	}
	return dst
}
