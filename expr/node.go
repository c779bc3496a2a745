package expr

// This file contains the expression tree, its evaluator and its printer.

import (
	"math"
	"strconv"
	"strings"
)

// Binding strength used by the printer; higher binds tighter.
const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precPrimary
)

type node interface {
	eval(x float64) float64
	hasVar() bool
	prec() int
	write(b *strings.Builder)
}

type nodeNumber struct{ v float64 }

func (n nodeNumber) eval(float64) float64 { return n.v }
func (n nodeNumber) hasVar() bool         { return false }

func (n nodeNumber) prec() int {
	if math.Signbit(n.v) {
		return precUnary
	}
	return precPrimary
}

func (n nodeNumber) write(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(n.v, 'g', -1, 64))
}

type nodeConst struct {
	name string
	v    float64
}

func (n nodeConst) eval(float64) float64     { return n.v }
func (n nodeConst) hasVar() bool             { return false }
func (n nodeConst) prec() int                { return precPrimary }
func (n nodeConst) write(b *strings.Builder) { b.WriteString(n.name) }

type nodeVar struct{}

func (nodeVar) eval(x float64) float64   { return x }
func (nodeVar) hasVar() bool             { return true }
func (nodeVar) prec() int                { return precPrimary }
func (nodeVar) write(b *strings.Builder) { b.WriteString(Var) }

type nodeUnary struct {
	op byte
	x  node
}

func (n nodeUnary) eval(x float64) float64 {
	v := n.x.eval(x)
	if n.op == '-' {
		return -v
	}
	return v
}

func (n nodeUnary) hasVar() bool { return n.x.hasVar() }
func (n nodeUnary) prec() int    { return precUnary }

func (n nodeUnary) write(b *strings.Builder) {
	b.WriteByte(n.op)
	writeChild(b, n.x, precUnary)
}

type nodeBinary struct {
	op    byte
	left  node
	right node
}

func (n nodeBinary) eval(x float64) float64 {
	a := n.left.eval(x)
	c := n.right.eval(x)
	switch n.op {
	case '+':
		return a + c
	case '-':
		return a - c
	case '*':
		return a * c
	case '/':
		return a / c
	case '^':
		return math.Pow(a, c)
	default:
		return math.NaN()
	}
}

func (n nodeBinary) hasVar() bool { return n.left.hasVar() || n.right.hasVar() }

func (n nodeBinary) prec() int {
	switch n.op {
	case '+', '-':
		return precSum
	case '*', '/':
		return precProduct
	default:
		return precPower
	}
}

func (n nodeBinary) write(b *strings.Builder) {
	switch n.op {
	case '+', '-':
		writeChild(b, n.left, precSum)
		b.WriteString(" ")
		b.WriteByte(n.op)
		b.WriteString(" ")
		writeChild(b, n.right, precProduct)
	case '*', '/':
		writeChild(b, n.left, precProduct)
		b.WriteByte(n.op)
		writeChild(b, n.right, precUnary)
	default:
		writeChild(b, n.left, precPrimary)
		b.WriteByte('^')
		writeChild(b, n.right, precUnary)
	}
}

type nodeCall struct {
	name string
	fn   builtin
	args []node
}

func (n nodeCall) eval(x float64) float64 {
	var buf [4]float64
	args := buf[:0]
	if len(n.args) > len(buf) {
		args = make([]float64, 0, len(n.args))
	}
	for _, a := range n.args {
		args = append(args, a.eval(x))
	}
	return n.fn.fn(args)
}

func (n nodeCall) hasVar() bool {
	for _, a := range n.args {
		if a.hasVar() {
			return true
		}
	}
	return false
}

func (n nodeCall) prec() int { return precPrimary }

func (n nodeCall) write(b *strings.Builder) {
	b.WriteString(n.name)
	b.WriteByte('(')
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
	b.WriteByte(')')
}

func writeChild(b *strings.Builder, n node, min int) {
	if n.prec() >= min {
		n.write(b)
		return
	}
	b.WriteByte('(')
	n.write(b)
	b.WriteByte(')')
}

// fold replaces every subtree that does not reference x with its value.
func fold(n node) node {
	if !n.hasVar() {
		if _, ok := n.(nodeNumber); ok {
			return n
		}
		return nodeNumber{v: n.eval(0)}
	}
	switch t := n.(type) {
	case nodeUnary:
		t.x = fold(t.x)
		if t.op == '+' {
			return t.x
		}
		return t
	case nodeBinary:
		t.left = fold(t.left)
		t.right = fold(t.right)
		return t
	case nodeCall:
		args := make([]node, len(t.args))
		for i, a := range t.args {
			args[i] = fold(a)
		}
		t.args = args
		return t
	default:
		return n
	}
}
