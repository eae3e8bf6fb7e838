package expr

import (
	"slices"

	"github.com/agbru/bigcalc/internal/bigint"
)

type node interface {
	pos() int
}

type (
	numberNode struct {
		at  int
		val *bigint.Int
	}
	identNode struct {
		at   int
		name string
	}
	unaryNode struct {
		at int
		op string
		x  node
	}
	binaryNode struct {
		at   int
		op   string
		x, y node
	}
	assignNode struct {
		at   int
		name string
		x    node
	}
	callNode struct {
		at   int
		name string
		args []node
	}
)

func (n *numberNode) pos() int { return n.at }
func (n *identNode) pos() int  { return n.at }
func (n *unaryNode) pos() int  { return n.at }
func (n *binaryNode) pos() int { return n.at }
func (n *assignNode) pos() int { return n.at }
func (n *callNode) pos() int   { return n.at }

// Binary operator levels, loosest first.
var levels = [][]string{
	{"<", "<=", ">", ">=", "==", "!="},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "%"},
}

type parser struct {
	toks []token
	i    int
}

// parse builds the syntax tree of src.
func parse(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.stmt()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errorf(t.pos, "unexpected %s %q", t.kind, t.text)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) stmt() (node, error) {
	if t := p.peek(); t.kind == tokIdent {
		if nt := p.toks[p.i+1]; nt.kind == tokOp && nt.text == "=" {
			p.i += 2
			x, err := p.stmt()
			if err != nil {
				return nil, err
			}
			return &assignNode{at: nt.pos, name: t.text, x: x}, nil
		}
	}
	return p.binary(0)
}

func (p *parser) binary(level int) (node, error) {
	if level == len(levels) {
		return p.unary()
	}
	x, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || !slices.Contains(levels[level], t.text) {
			return x, nil
		}
		p.next()
		y, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		x = &binaryNode{at: t.pos, op: t.text, x: x, y: y}
	}
}

func (p *parser) unary() (node, error) {
	if t := p.peek(); t.kind == tokOp && (t.text == "-" || t.text == "+") {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{at: t.pos, op: t.text, x: x}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := new(bigint.Int).SetString(t.text, 0)
		if err != nil {
			return nil, &Error{Pos: t.pos, Msg: "invalid number " + t.text, Err: err}
		}
		return &numberNode{at: t.pos, val: v}, nil
	case tokIdent:
		if p.peek().kind != tokLParen {
			return &identNode{at: t.pos, name: t.text}, nil
		}
		p.next()
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return &callNode{at: t.pos, name: t.text, args: args}, nil
	case tokLParen:
		x, err := p.stmt()
		if err != nil {
			return nil, err
		}
		if r := p.next(); r.kind != tokRParen {
			return nil, errorf(r.pos, "expected %s, found %s", tokRParen, r.kind)
		}
		return x, nil
	}
	return nil, errorf(t.pos, "unexpected %s", t.kind)
}

// args parses a comma-separated argument list after "(".
func (p *parser) args() ([]node, error) {
	var args []node
	if p.peek().kind == tokRParen {
		p.next()
		return args, nil
	}
	for {
		a, err := p.stmt()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch t := p.next(); t.kind {
		case tokComma:
		case tokRParen:
			return args, nil
		default:
			return nil, errorf(t.pos, `expected "," or ")", found %s`, t.kind)
		}
	}
}
