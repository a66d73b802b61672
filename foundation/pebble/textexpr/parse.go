// File: parse.go
// Title: Expression Text Parser and Evaluator
// Description: Recursive descent over the scanned tokens into a small
//              expression tree, then evaluation with short-circuit and/or
//              and chained comparisons. Only literals are allowed; any
//              name other than True and False is rejected.
// Author: Adam Nassar
// Version: v0.1.0
// Created: 2025-09-14
// Modified: 2025-09-14
//
// Change History:
// - 2025-09-14 v0.1.0: Initial implementation

package textexpr

import (
	"github.com/AGOODGITDUCK/PebbleCode/foundation/pebble/value"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack
const maxDepth = 200

type node interface {
	eval() (value.Value, error)
}

type literal struct{ v value.Value }

type unary struct {
	op string
	x  node
}

type binary struct {
	op   string
	l, r node
}

// logical is a short-circuit "and" / "or" that yields one of its operands
type logical struct {
	op   string
	l, r node
}

// comparison is a chain a < b <= c evaluated pairwise
type comparison struct {
	first    node
	ops      []string
	operands []node
}

func (n literal) eval() (value.Value, error) { return n.v, nil }

func (n unary) eval() (value.Value, error) {
	x, err := n.x.eval()
	if err != nil {
		return nil, err
	}
	return value.Unary(n.op, x)
}

func (n binary) eval() (value.Value, error) {
	l, err := n.l.eval()
	if err != nil {
		return nil, err
	}
	r, err := n.r.eval()
	if err != nil {
		return nil, err
	}
	return value.Binary(n.op, l, r)
}

func (n logical) eval() (value.Value, error) {
	l, err := n.l.eval()
	if err != nil {
		return nil, err
	}
	if (n.op == "and") != l.Truthy() {
		return l, nil
	}
	return n.r.eval()
}

func (n comparison) eval() (value.Value, error) {
	left, err := n.first.eval()
	if err != nil {
		return nil, err
	}
	var result value.Value = value.Bool(true)
	for i, op := range n.ops {
		right, err := n.operands[i].eval()
		if err != nil {
			return nil, err
		}
		result, err = value.Compare(op, left, right)
		if err != nil {
			return nil, err
		}
		if !result.Truthy() {
			return result, nil
		}
		left = right
	}
	return result, nil
}

type exprParser struct {
	toks  []token
	pos   int
	depth int
}

// Eval evaluates literal-only expression text. It performs no variable
// substitution.
func Eval(text string) (value.Value, error) {
	toks, err := scan(text)
	if err != nil {
		return nil, err
	}
	p := &exprParser{toks: toks}
	n, err := p.orTest()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEnd {
		return nil, p.unexpected(tok)
	}
	return n.eval()
}

func (p *exprParser) peek() token {
	return p.toks[p.pos]
}

func (p *exprParser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEnd {
		p.pos++
	}
	return tok
}

func (p *exprParser) isOp(text string) bool {
	tok := p.peek()
	return tok.kind == tokOp && tok.text == text
}

func (p *exprParser) isKeyword(text string) bool {
	tok := p.peek()
	return tok.kind == tokName && tok.text == text
}

func (p *exprParser) unexpected(tok token) error {
	if tok.kind == tokEnd {
		return exprError(tok.pos, "unexpected end of expression")
	}
	return exprError(tok.pos, "unexpected %q", tok.text)
}

func (p *exprParser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return exprError(p.peek().pos, "expression nested too deeply")
	}
	return nil
}

func (p *exprParser) leave() { p.depth-- }

func (p *exprParser) orTest() (node, error) {
	n, err := p.andTest()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		p.next()
		r, err := p.andTest()
		if err != nil {
			return nil, err
		}
		n = logical{op: "or", l: n, r: r}
	}
	return n, nil
}

func (p *exprParser) andTest() (node, error) {
	n, err := p.notTest()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		p.next()
		r, err := p.notTest()
		if err != nil {
			return nil, err
		}
		n = logical{op: "and", l: n, r: r}
	}
	return n, nil
}

func (p *exprParser) notTest() (node, error) {
	if p.isKeyword("not") {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		p.next()
		x, err := p.notTest()
		if err != nil {
			return nil, err
		}
		return unary{op: "not", x: x}, nil
	}
	return p.comparison()
}

func isCompareOp(tok token) bool {
	if tok.kind != tokOp {
		return false
	}
	switch tok.text {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

func (p *exprParser) comparison() (node, error) {
	first, err := p.arith()
	if err != nil {
		return nil, err
	}
	if !isCompareOp(p.peek()) {
		return first, nil
	}
	c := comparison{first: first}
	for isCompareOp(p.peek()) {
		c.ops = append(c.ops, p.next().text)
		r, err := p.arith()
		if err != nil {
			return nil, err
		}
		c.operands = append(c.operands, r)
	}
	return c, nil
}

func (p *exprParser) arith() (node, error) {
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.next().text
		r, err := p.term()
		if err != nil {
			return nil, err
		}
		n = binary{op: op, l: n, r: r}
	}
	return n, nil
}

func (p *exprParser) term() (node, error) {
	n, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") || p.isOp("//") || p.isOp("%") {
		op := p.next().text
		r, err := p.factor()
		if err != nil {
			return nil, err
		}
		n = binary{op: op, l: n, r: r}
	}
	return n, nil
}

// factor = ("+" | "-") factor | power
func (p *exprParser) factor() (node, error) {
	if p.isOp("+") || p.isOp("-") {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		op := p.next().text
		x, err := p.factor()
		if err != nil {
			return nil, err
		}
		return unary{op: op, x: x}, nil
	}
	return p.power()
}

// power = atom ["**" factor]; the right operand may carry its own sign
func (p *exprParser) power() (node, error) {
	base, err := p.atom()
	if err != nil {
		return nil, err
	}
	if !p.isOp("**") {
		return base, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	p.next()
	exp, err := p.factor()
	if err != nil {
		return nil, err
	}
	return binary{op: "**", l: base, r: exp}, nil
}

func (p *exprParser) atom() (node, error) {
	tok := p.peek()
	switch tok.kind {
	case tokNumber:
		p.next()
		return literal{v: tok.val}, nil

	case tokString:
		// adjacent literals concatenate: 'a' "b" == 'ab'
		s := string(p.next().val.(value.Str))
		for p.peek().kind == tokString {
			s += string(p.next().val.(value.Str))
		}
		return literal{v: value.Str(s)}, nil

	case tokName:
		switch tok.text {
		case "True":
			p.next()
			return literal{v: value.Bool(true)}, nil
		case "False":
			p.next()
			return literal{v: value.Bool(false)}, nil
		case "and", "or", "not":
			return nil, p.unexpected(tok)
		}
		return nil, exprError(tok.pos, "name %q is not defined", tok.text)

	case tokOp:
		if tok.text == "(" {
			if err := p.enter(); err != nil {
				return nil, err
			}
			defer p.leave()
			p.next()
			n, err := p.orTest()
			if err != nil {
				return nil, err
			}
			if !p.isOp(")") {
				return nil, p.unexpected(p.peek())
			}
			p.next()
			return n, nil
		}
	}
	return nil, p.unexpected(tok)
}
