package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokVar
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q at %d", t.text, t.pos)
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() (token, error) {
	for l.i < len(l.s) && isSpace(l.s[l.i]) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}, nil
	}

	pos := l.i
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: pos}, nil
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: pos}, nil
	case '*':
		l.i++
		if l.i < len(l.s) && l.s[l.i] == '*' {
			l.i++
			return token{kind: tokCaret, text: "^", pos: pos}, nil
		}
		return token{kind: tokStar, text: "*", pos: pos}, nil
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: pos}, nil
	case '^':
		l.i++
		return token{kind: tokCaret, text: "^", pos: pos}, nil
	case '(', '[':
		l.i++
		return token{kind: tokLParen, text: "(", pos: pos}, nil
	case ')', ']':
		l.i++
		return token{kind: tokRParen, text: ")", pos: pos}, nil
	case ',':
		l.i++
		return token{kind: tokComma, text: ",", pos: pos}, nil
	}

	ch := rune(l.s[l.i])
	if isIdentStart(ch) {
		l.i++
		for l.i < len(l.s) && isIdentContinue(rune(l.s[l.i])) {
			l.i++
		}
		name := l.s[pos:l.i]
		if name == Var {
			return token{kind: tokVar, text: name, pos: pos}, nil
		}
		return token{kind: tokIdent, text: name, pos: pos}, nil
	}
	if ch == '.' || isDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[pos:l.i]
		f, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{}, fmt.Errorf("%w: bad number %q at %d", ErrParse, txt, pos)
		}
		return token{kind: tokNumber, text: txt, num: f, pos: pos}, nil
	}

	return token{}, fmt.Errorf("%w: unexpected character %q at %d", ErrParse, ch, pos)
}

func scanNumber(s string, i int) int {
	start := i
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(rune(s[i])) {
			i++
		}
	}
	if i == start+1 && s[start] == '.' {
		// A lone dot; let ParseFloat reject it.
		return i
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(rune(s[k])) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// tokenize rewrites src into the token stream consumed by the parser.
//
// Both ^ and ** become the power token and only a whole identifier x becomes the
// variable token, so names such as exp or max pass through untouched.
func tokenize(src string) ([]token, error) {
	l := lexer{s: src}
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokEOF {
			return out, nil
		}
	}
}

// Rewrite returns the canonical token text of src, one space between tokens.
//
// It is the textual view of what the parser sees: "x**2" and "x^2" both rewrite
// to "x ^ 2", while "exp(x)" stays "exp ( x )".
func Rewrite(src string) (string, error) {
	toks, err := tokenize(src)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(toks))
	for _, t := range toks {
		if t.kind == tokEOF {
			break
		}
		parts = append(parts, t.text)
	}
	return strings.Join(parts, " "), nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
