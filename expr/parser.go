package expr

import "fmt"

type parser struct {
	toks []token
	i    int
}

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) next() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

func (p *parser) parseExpr() (node, error) {
	return p.parseSum()
}

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokPlus || p.cur().kind == tokMinus {
		op := p.cur().text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokStar || p.cur().kind == tokSlash {
		op := p.cur().text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

// parseUnary binds looser than ^, so -x^2 is -(x^2).
func (p *parser) parseUnary() (node, error) {
	if p.cur().kind == tokPlus || p.cur().kind == tokMinus {
		op := p.cur().text[0]
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeUnary{op: op, x: x}, nil
	}
	return p.parsePower()
}

// parsePower is right-associative: 2^3^2 is 2^(3^2).
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return nodeBinary{op: '^', left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.cur()
	switch tok.kind {
	case tokNumber:
		p.next()
		return nodeNumber{v: tok.num}, nil
	case tokVar:
		p.next()
		return nodeVar{}, nil
	case tokIdent:
		p.next()
		if p.cur().kind == tokLParen {
			return p.parseCall(tok)
		}
		v, ok := constants[tok.text]
		if !ok {
			return nil, fmt.Errorf("%w %q at %d", ErrUnknownName, tok.text, tok.pos)
		}
		return nodeConst{name: tok.text, v: v}, nil
	case tokLParen:
		p.next()
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' before %s", ErrParse, p.cur().describe())
		}
		p.next()
		return ex, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s", ErrParse, tok.describe())
	}
}

func (p *parser) parseCall(name token) (node, error) {
	fn, ok := builtins[name.text]
	if !ok {
		return nil, fmt.Errorf("%w: function %q at %d", ErrUnknownName, name.text, name.pos)
	}
	p.next() // (

	var args []node
	if p.cur().kind != tokRParen {
		for {
			ex, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, ex)
			if p.cur().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if p.cur().kind != tokRParen {
		return nil, fmt.Errorf("%w: expected ')' before %s", ErrParse, p.cur().describe())
	}
	p.next()

	if len(args) < fn.minArgs || (fn.maxArgs >= 0 && len(args) > fn.maxArgs) {
		switch {
		case fn.minArgs == fn.maxArgs:
			return nil, fmt.Errorf("%w: %s expects %d argument(s), got %d", ErrArity, name.text, fn.minArgs, len(args))
		case fn.maxArgs < 0:
			return nil, fmt.Errorf("%w: %s expects >= %d argument(s), got %d", ErrArity, name.text, fn.minArgs, len(args))
		default:
			return nil, fmt.Errorf("%w: %s expects %d..%d argument(s), got %d", ErrArity, name.text, fn.minArgs, fn.maxArgs, len(args))
		}
	}
	return nodeCall{name: name.text, fn: fn, args: args}, nil
}
