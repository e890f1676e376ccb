package scenario

import (
	"strconv"
	"strings"
	"text/scanner"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/born-ml/einstein/internal/expr"
	"github.com/born-ml/einstein/internal/functions"
	"github.com/born-ml/einstein/internal/index"
	"github.com/born-ml/einstein/internal/tensor"
)

// statement is a parsed assignment. Exactly one of rhs and fill is set.
type statement struct {
	target *expr.Tensor
	rhs    expr.Node
	fill   *tensor.Value
}

// parser reads one statement:
//
//	statement = target "=" sum
//	target    = name [ "(" [ subscript { "," subscript } ] ")" ]
//	sum       = product { ("+" | "-") product }
//	product   = unary { ("*" | "/") unary }
//	unary     = "-" unary | primary
//	primary   = number | "(" sum ")" | name "(" args ")" | name
//
// A name followed by "(" is a declared tensor, subscripted by index symbols
// and integers, or a registered function applied to expressions. A bare name
// is a rank-0 tensor or, if it is a single letter, an index used as a value.
type parser struct {
	sc   scanner.Scanner
	tok  rune
	vars map[string]variable
	src  string
}

func parseStatement(src string, vars map[string]variable) (st statement, err error) {
	p := &parser{vars: vars, src: src}
	p.sc.Init(strings.NewReader(src))
	p.sc.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.sc.Error = func(_ *scanner.Scanner, msg string) { p.fail(msg) }

	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(parseError); ok {
				err = pe.err
				return
			}
			panic(r)
		}
	}()

	p.next()
	st.target = p.target()
	p.expect('=')
	if fill, ok := p.literal(); ok {
		fill = untyped(fill, st.target.DType())
		st.fill = &fill
	} else {
		st.rhs = p.sum()
	}
	if p.tok != scanner.EOF {
		p.fail("unexpected " + p.sc.TokenText())
	}
	return st, nil
}

// untyped converts an integer literal to the integer type of its target when
// the value fits, the way Go treats an untyped constant.
func untyped(v tensor.Value, dt tensor.DataType) tensor.Value {
	if v.DType() != tensor.Int64 || !dt.IsInteger() {
		return v
	}
	if c := v.Convert(dt); c.Int64() == v.Int64() {
		return c
	}
	return v
}

// parseError carries a parse failure out of the recursive descent.
type parseError struct{ err error }

func (p *parser) fail(msg string) {
	panic(parseError{errors.Wrapf(ErrSyntax, "%q at column %d: %s", p.src, p.sc.Position.Column, msg)})
}

// check aborts parsing with err, which comes from building a node.
func (p *parser) check(err error) {
	if err != nil {
		panic(parseError{errors.WithMessagef(err, "%q", p.src)})
	}
}

func (p *parser) next() {
	p.tok = p.sc.Scan()
}

func (p *parser) expect(tok rune) {
	if p.tok != tok {
		p.fail("expected " + scanner.TokenString(tok) + ", got " + scanner.TokenString(p.tok))
	}
	p.next()
}

// literal consumes a right-hand side that is a single, optionally negated,
// number. Anything else is left to sum.
func (p *parser) literal() (tensor.Value, bool) {
	rest := strings.TrimSpace(p.src[p.sc.Position.Offset:])
	if p.tok == '-' {
		rest = strings.TrimSpace(rest[1:])
	}
	if _, err := strconv.ParseFloat(rest, 64); err != nil {
		return tensor.Value{}, false
	}
	neg := p.tok == '-'
	if neg {
		p.next()
	}
	v := p.number()
	if neg {
		v = tensor.Neg(v)
	}
	return v, true
}

func (p *parser) number() tensor.Value {
	text := p.sc.TokenText()
	var v tensor.Value
	switch p.tok {
	case scanner.Int:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			p.fail(err.Error())
		}
		v = tensor.ValueOf(n)
	case scanner.Float:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.fail(err.Error())
		}
		v = tensor.ValueOf(f)
	default:
		p.fail("expected a number, got " + text)
	}
	p.next()
	return v
}

func (p *parser) lookup(name string) variable {
	v, ok := p.vars[name]
	if !ok {
		p.check(errors.Wrapf(ErrUnknownName, "tensor %s", name))
	}
	return v
}

func (p *parser) target() *expr.Tensor {
	if p.tok != scanner.Ident {
		p.fail("expected a tensor name")
	}
	name := p.sc.TokenText()
	p.next()
	v := p.lookup(name)
	var subs []index.Subscript
	if p.tok == '(' {
		subs = p.subscripts()
	}
	leaf, err := expr.Of(v.src, subs...)
	p.check(err)
	return leaf
}

// subscripts reads "(" [ subscript { "," subscript } ] ")".
func (p *parser) subscripts() []index.Subscript {
	p.expect('(')
	var subs []index.Subscript
	for p.tok != ')' {
		if len(subs) > 0 {
			p.expect(',')
		}
		switch p.tok {
		case scanner.Ident:
			subs = append(subs, p.symbol())
		case scanner.Int:
			n, err := strconv.Atoi(p.sc.TokenText())
			if err != nil {
				p.fail(err.Error())
			}
			subs = append(subs, index.Coord(n))
			p.next()
		default:
			p.fail("expected an index or an integer, got " + scanner.TokenString(p.tok))
		}
	}
	p.next()
	return subs
}

// symbol reads a single-letter index name.
func (p *parser) symbol() index.Symbol {
	text := p.sc.TokenText()
	r, size := utf8.DecodeRuneInString(text)
	if size != len(text) {
		p.fail("index names are single letters, got " + text)
	}
	p.next()
	return index.Symbol(r)
}

func (p *parser) sum() expr.Node {
	n := p.product()
	for p.tok == '+' || p.tok == '-' {
		op := p.tok
		p.next()
		rhs := p.product()
		var err error
		if op == '+' {
			n, err = expr.Add(n, rhs)
		} else {
			n, err = expr.Sub(n, rhs)
		}
		p.check(err)
	}
	return n
}

func (p *parser) product() expr.Node {
	n := p.unary()
	for p.tok == '*' || p.tok == '/' {
		op := p.tok
		p.next()
		rhs := p.unary()
		var err error
		if op == '*' {
			n, err = expr.Mul(n, rhs)
		} else {
			n, err = expr.Div(n, rhs)
		}
		p.check(err)
	}
	return n
}

func (p *parser) unary() expr.Node {
	if p.tok != '-' {
		return p.primary()
	}
	p.next()
	n, err := expr.Neg(p.unary())
	p.check(err)
	return n
}

func (p *parser) primary() expr.Node {
	switch p.tok {
	case scanner.Int, scanner.Float:
		return expr.Scalar(p.number())
	case '(':
		p.next()
		n := p.sum()
		p.expect(')')
		return n
	case scanner.Ident:
	default:
		p.fail("unexpected " + scanner.TokenString(p.tok))
	}

	name := p.sc.TokenText()
	if v, ok := p.vars[name]; ok {
		p.next()
		var subs []index.Subscript
		if p.tok == '(' {
			subs = p.subscripts()
		}
		leaf, err := expr.Of(v.src, subs...)
		p.check(err)
		return leaf
	}
	p.next()
	if p.tok == '(' {
		if f, ok := functions.Lookup(name); ok {
			return p.call(f)
		}
		p.check(errors.Wrapf(ErrUnknownName, "%s is neither a tensor nor a function", name))
	}
	r, size := utf8.DecodeRuneInString(name)
	if size != len(name) {
		p.check(errors.Wrapf(ErrUnknownName, "%s", name))
	}
	x, err := expr.Index(index.Symbol(r))
	p.check(err)
	return x
}

// call reads the argument list of f.
func (p *parser) call(f expr.Func) expr.Node {
	p.expect('(')
	var args []expr.Node
	for p.tok != ')' {
		if len(args) > 0 {
			p.expect(',')
		}
		args = append(args, p.sum())
	}
	p.next()
	n, err := expr.Apply(f, args...)
	p.check(err)
	return n
}
