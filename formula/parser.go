package formula

import "fmt"

// node is a parsed expression tree node. The evaluator walks the tree with
// a variable lookup; formulas are never executed as code.
type node interface {
	eval(vars map[string]float64) (float64, error)
}

type numberNode float64

func (n numberNode) eval(map[string]float64) (float64, error) {
	return float64(n), nil
}

type variableNode string

func (n variableNode) eval(vars map[string]float64) (float64, error) {
	v, ok := vars[string(n)]
	if !ok {
		return 0, fmt.Errorf("unknown identifier %q", string(n))
	}
	return v, nil
}

type unaryNode struct {
	op      rune
	operand node
}

func (n unaryNode) eval(vars map[string]float64) (float64, error) {
	v, err := n.operand.eval(vars)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryNode struct {
	op          rune
	left, right node
}

func (n binaryNode) eval(vars map[string]float64) (float64, error) {
	l, err := n.left.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(vars)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("unknown operator %q", n.op)
}

// parser is a recursive-descent parser over the token stream.
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// parse builds an expression tree from a formula string.
func parse(src string) (node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
	}
	return n, nil
}

// parseExpr handles addition and subtraction.
func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '+', left: left, right: right}
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '-', left: left, right: right}
		default:
			return left, nil
		}
	}
}

// parseTerm handles multiplication and division.
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '*', left: left, right: right}
		case tokSlash:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '/', left: left, right: right}
		default:
			return left, nil
		}
	}
}

// parseFactor handles literals, variables, unary minus and parentheses.
func (p *parser) parseFactor() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		var v float64
		if _, err := fmt.Sscanf(t.text, "%g", &v); err != nil {
			return nil, fmt.Errorf("bad number %q at position %d", t.text, t.pos)
		}
		return numberNode(v), nil
	case tokIdent:
		return variableNode(t.text), nil
	case tokMinus:
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: '-', operand: operand}, nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis at position %d", closing.pos)
		}
		return inner, nil
	}
	return nil, fmt.Errorf("unexpected token %q at position %d", t.text, t.pos)
}

// Identifiers returns every variable name referenced by the formula, in
// source order, with duplicates preserved. Used by the catalog self-check
// to reject forward references before any shape is resolved.
func Identifiers(src string) ([]string, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, t := range toks {
		if t.kind == tokIdent {
			ids = append(ids, t.text)
		}
	}
	return ids, nil
}
