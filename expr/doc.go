// Package expr parses and evaluates real-valued expressions in the single variable x.
//
// The grammar is fixed: numeric literals, x, the constants pi, e and tau, the operators
// + - * / ^ (also written **), parentheses and a whitelisted set of functions. Nothing
// else is accepted, so evaluating user text can never run arbitrary code.
package expr
