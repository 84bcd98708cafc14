// Package parser turns source text of a small JavaScript subset into a
// lossless tree: printing the result with formatter.Write reproduces the
// input byte for byte.
package parser

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// ErrSyntax is wrapped by every error Parse returns.
var ErrSyntax = errors.New("syntax error")

// Error is a syntax error at a source position.
type Error struct {
	Path string
	Line int
	Col  int
	Msg  string
}

func newError(path string, line, col int, format string, args ...any) *Error {
	return &Error{Path: path, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Msg)
}

func (e *Error) Unwrap() error { return ErrSyntax }

// binaryPrecedence orders binary operators, loosest first.
var binaryPrecedence = map[string]int{
	"||":  1,
	"&&":  2,
	"==":  3,
	"!=":  3,
	"===": 3,
	"!==": 3,
	"<":   4,
	">":   4,
	"<=":  4,
	">=":  4,
	"+":   5,
	"-":   5,
	"*":   6,
	"/":   6,
	"%":   6,
}

// Parse converts source text into a compilation unit. path is used only
// for error messages and is recorded on the unit.
func Parse(src, path string) (cu *tree.CompilationUnit, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			cu, err = nil, perr
		}
	}()

	p := &state{path: path, toks: newScanner(path, src).scanAll()}
	return p.compilationUnit(), nil
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (tree.Expression, error) {
	cu, err := Parse(src, "<expression>")
	if err != nil {
		return nil, err
	}
	if len(cu.Statements) != 1 {
		return nil, fmt.Errorf("%w: expected one expression, found %d statements", ErrSyntax, len(cu.Statements))
	}
	expr, ok := cu.Statements[0].Element.(tree.Expression)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an expression", ErrSyntax, cu.Statements[0].Element.Kind())
	}
	return expr, nil
}

// state is the recursive-descent parser over a pre-scanned token slice.
type state struct {
	path string
	toks []token
	pos  int
}

func (p *state) tok() token { return p.toks[p.pos] }

func (p *state) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *state) is(text string) bool {
	t := p.tok()
	return (t.kind == tokPunct || t.kind == tokKeyword) && t.text == text
}

func (p *state) fail(format string, args ...any) {
	t := p.tok()
	panic(newError(p.path, t.line, t.col, format, args...))
}

// expect consumes the token text and returns the space before it.
func (p *state) expect(text string) tree.Space {
	if !p.is(text) {
		p.fail("expected %q, found %s", text, describe(p.tok()))
	}
	return p.next().prefix
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.text)
}

func (p *state) compilationUnit() *tree.CompilationUnit {
	cu := &tree.CompilationUnit{Meta: tree.NewMeta(tree.EmptySpace), Path: p.path}
	for p.tok().kind != tokEOF {
		cu.Statements = append(cu.Statements, p.paddedStatement())
	}
	cu.EOF = p.next().prefix
	return cu
}

// paddedStatement parses a statement and its optional ";".
func (p *state) paddedStatement() *tree.RightPadded[tree.Statement] {
	rp := tree.Pad(p.statement())
	if p.is(";") {
		rp.After = p.next().prefix
		rp.Markers = tree.Markers{{Kind: tree.MarkerSemicolon}}
	}
	return rp
}

func (p *state) statement() tree.Statement {
	t := p.tok()
	if t.kind == tokKeyword {
		switch t.text {
		case "let", "const", "var":
			return p.variableDeclaration()
		case "function":
			return p.functionDeclaration()
		case "return":
			return p.returnStatement()
		case "if":
			return p.ifStatement()
		case "switch":
			return p.switchStatement()
		}
	}
	switch {
	case p.is("{"):
		return p.block()
	case p.is(";"):
		return &tree.Empty{Meta: tree.NewMeta(tree.EmptySpace)}
	}
	return p.expression()
}

func (p *state) block() *tree.Block {
	b := &tree.Block{Meta: tree.NewMeta(p.expect("{"))}
	for !p.is("}") {
		if p.tok().kind == tokEOF {
			p.fail("expected %q, found end of file", "}")
		}
		b.Statements = append(b.Statements, p.paddedStatement())
	}
	b.End = p.expect("}")
	return b
}

func (p *state) variableDeclaration() *tree.VariableDeclaration {
	kw := p.next()
	v := &tree.VariableDeclaration{Meta: tree.NewMeta(kw.prefix), Keyword: kw.text}
	v.Name = p.identifier()
	if p.is("=") {
		before := p.next().prefix
		v.Initializer = &tree.LeftPadded[tree.Expression]{Before: before, Element: p.expression()}
	}
	return v
}

func (p *state) functionDeclaration() *tree.FunctionDeclaration {
	f := &tree.FunctionDeclaration{Meta: tree.NewMeta(p.expect("function"))}
	f.Name = p.identifier()
	f.Parameters = p.container("(", ")", func() tree.Expression { return p.identifier() })
	f.Body = p.block()
	return f
}

func (p *state) returnStatement() *tree.Return {
	r := &tree.Return{Meta: tree.NewMeta(p.expect("return"))}
	t := p.tok()
	if t.kind == tokEOF || p.is(";") || p.is("}") || t.prefix.HasNewline() {
		return r
	}
	r.Expression = p.expression()
	return r
}

func (p *state) ifStatement() *tree.If {
	n := &tree.If{Meta: tree.NewMeta(p.expect("if"))}
	n.Condition = p.parentheses()
	n.Then = p.paddedStatement()
	if p.is("else") {
		els := &tree.Else{Meta: tree.NewMeta(p.next().prefix)}
		els.Body = p.paddedStatement()
		n.Else = els
	}
	return n
}

func (p *state) switchStatement() *tree.Switch {
	s := &tree.Switch{Meta: tree.NewMeta(p.expect("switch"))}
	s.Selector = p.parentheses()
	cases := &tree.Block{Meta: tree.NewMeta(p.expect("{"))}
	for !p.is("}") {
		cases.Statements = append(cases.Statements, tree.Pad[tree.Statement](p.caseClause()))
	}
	cases.End = p.expect("}")
	s.Cases = cases
	return s
}

func (p *state) caseClause() *tree.Case {
	c := &tree.Case{}
	switch {
	case p.is("case"):
		c.Meta = tree.NewMeta(p.next().prefix)
		c.Expression = p.expression()
	case p.is("default"):
		c.Meta = tree.NewMeta(p.next().prefix)
		c.Default = true
	default:
		p.fail("expected %q or %q, found %s", "case", "default", describe(p.tok()))
	}
	c.Colon = p.expect(":")
	for !p.is("case") && !p.is("default") && !p.is("}") {
		if p.tok().kind == tokEOF {
			p.fail("expected %q, found end of file", "}")
		}
		c.Body = append(c.Body, p.paddedStatement())
	}
	return c
}

// container parses open elem {, elem} [,] close. An empty list holds a
// single Empty element carrying the space before close.
func (p *state) container(open, closer string, elem func() tree.Expression) *tree.Container[tree.Expression] {
	ct := &tree.Container[tree.Expression]{Before: p.expect(open)}
	if p.is(closer) {
		empty := &tree.Empty{Meta: tree.NewMeta(p.next().prefix)}
		ct.Elements = []*tree.RightPadded[tree.Expression]{tree.Pad[tree.Expression](empty)}
		return ct
	}
	for {
		rp := tree.Pad(elem())
		switch {
		case p.is(","):
			rp.After = p.next().prefix
			if p.is(closer) {
				rp.Markers = tree.Markers{{Kind: tree.MarkerTrailingComma, Suffix: p.next().prefix}}
				ct.Elements = append(ct.Elements, rp)
				return ct
			}
			ct.Elements = append(ct.Elements, rp)
		case p.is(closer):
			rp.After = p.next().prefix
			ct.Elements = append(ct.Elements, rp)
			return ct
		default:
			p.fail("expected %q or %q, found %s", ",", closer, describe(p.tok()))
		}
	}
}

func (p *state) parentheses() *tree.Parentheses {
	n := &tree.Parentheses{Meta: tree.NewMeta(p.expect("("))}
	inner := tree.Pad(p.expression())
	inner.After = p.expect(")")
	n.Tree = inner
	return n
}

func (p *state) identifier() *tree.Identifier {
	t := p.tok()
	if t.kind != tokIdent {
		p.fail("expected identifier, found %s", describe(t))
	}
	p.next()
	return &tree.Identifier{Meta: tree.NewMeta(t.prefix), Name: t.text}
}

func (p *state) expression() tree.Expression {
	left := p.binary(1)
	if !p.is("=") {
		return left
	}
	before := p.next().prefix
	value := p.expression()
	return &tree.Assignment{
		Meta:     tree.NewMeta(tree.PrefixOf(left)),
		Variable: tree.WithPrefix(left, tree.EmptySpace),
		Value:    &tree.LeftPadded[tree.Expression]{Before: before, Element: value},
	}
}

// binary parses operators of at least minPrec by precedence climbing. The
// outermost node owns the leading space; its left operand starts empty.
func (p *state) binary(minPrec int) tree.Expression {
	left := p.unary()
	for {
		t := p.tok()
		prec, ok := binaryPrecedence[t.text]
		if t.kind != tokPunct || !ok || prec < minPrec {
			return left
		}
		p.next()
		right := p.binary(prec + 1)
		left = &tree.Binary{
			Meta:     tree.NewMeta(tree.PrefixOf(left)),
			Left:     tree.WithPrefix(left, tree.EmptySpace),
			Operator: &tree.LeftPadded[string]{Before: t.prefix, Element: t.text},
			Right:    right,
		}
	}
}

func (p *state) unary() tree.Expression {
	if p.is("!") || p.is("-") {
		t := p.next()
		return &tree.Unary{Meta: tree.NewMeta(t.prefix), Operator: t.text, Operand: p.unary()}
	}
	return p.postfix()
}

func (p *state) postfix() tree.Expression {
	e := p.primary()
	for {
		switch {
		case p.is("."):
			dot := p.next().prefix
			name := p.identifier()
			if p.is("(") {
				e = &tree.MethodInvocation{
					Meta:      tree.NewMeta(tree.PrefixOf(e)),
					Select:    &tree.RightPadded[tree.Expression]{Element: tree.WithPrefix(e, tree.EmptySpace), After: dot},
					Name:      name,
					Arguments: p.container("(", ")", p.expression),
				}
				continue
			}
			e = &tree.FieldAccess{
				Meta:   tree.NewMeta(tree.PrefixOf(e)),
				Target: tree.WithPrefix(e, tree.EmptySpace),
				Name:   &tree.LeftPadded[*tree.Identifier]{Before: dot, Element: name},
			}

		case p.is("("):
			id, ok := e.(*tree.Identifier)
			if !ok {
				p.fail("unsupported call target %s", e.Kind())
			}
			e = &tree.MethodInvocation{
				Meta:      tree.NewMeta(id.Prefix),
				Name:      tree.WithPrefix(id, tree.EmptySpace),
				Arguments: p.container("(", ")", p.expression),
			}

		default:
			return e
		}
	}
}

func (p *state) primary() tree.Expression {
	t := p.tok()
	switch t.kind {
	case tokIdent:
		return p.identifier()
	case tokNumber:
		p.next()
		return &tree.Literal{Meta: tree.NewMeta(t.prefix), Source: t.text, LiteralKind: tree.LiteralNumber}
	case tokString:
		p.next()
		return &tree.Literal{Meta: tree.NewMeta(t.prefix), Source: t.text, LiteralKind: tree.LiteralString}
	case tokKeyword:
		switch t.text {
		case "true", "false":
			p.next()
			return &tree.Literal{Meta: tree.NewMeta(t.prefix), Source: t.text, LiteralKind: tree.LiteralBoolean}
		case "null":
			p.next()
			return &tree.Literal{Meta: tree.NewMeta(t.prefix), Source: t.text, LiteralKind: tree.LiteralNull}
		}
	case tokPunct:
		switch t.text {
		case "(":
			return p.parentheses()
		case "[":
			ct := p.container("[", "]", p.expression)
			prefix := ct.Before
			ct.Before = tree.EmptySpace
			return &tree.ArrayLiteral{Meta: tree.NewMeta(prefix), Elements: ct}
		}
	}
	p.fail("unexpected %s", describe(t))
	return nil
}
