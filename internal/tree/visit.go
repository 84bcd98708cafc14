package tree

import "fmt"

// SpaceLoc tells a Visitor which slot a Space occupies.
type SpaceLoc int

const (
	LocPrefix SpaceLoc = iota
	LocBefore          // LeftPadded.Before, Container.Before
	LocAfter           // RightPadded.After
	LocMarker          // Marker.Suffix
	LocBlockEnd        // Block.End
	LocCaseColon       // Case.Colon
	LocEOF             // CompilationUnit.EOF
)

// PaddingKind identifies the wrapper a Padding describes.
type PaddingKind int

const (
	PaddingLeft PaddingKind = iota
	PaddingRight
	PaddingContainer
)

// Padding is the whitespace view of a wrapper, independent of the wrapped
// value. For a container, After is the space before the closing delimiter:
// the trailing comma's suffix when there is one, the last element's After
// otherwise.
type Padding struct {
	Kind    PaddingKind
	Before  Space
	After   Space
	Markers Markers
	Len     int
}

// Visitor transforms a tree during Visit. PreVisit may return a different
// node (or the same one with descend=false to skip the subtree, in which
// case PostVisit is not called). Embed BaseVisitor to inherit no-op hooks.
type Visitor interface {
	PreVisit(n Node, c *Cursor) (Node, bool)
	PostVisit(n Node, c *Cursor) Node
	PreVisitPadding(p Padding, c *Cursor)
	PostVisitPadding(p Padding, c *Cursor) Padding
	VisitSpace(s Space, loc SpaceLoc, c *Cursor) Space
}

// BaseVisitor implements Visitor as the identity transformation.
type BaseVisitor struct{}

func (BaseVisitor) PreVisit(n Node, _ *Cursor) (Node, bool)      { return n, true }
func (BaseVisitor) PostVisit(n Node, _ *Cursor) Node             { return n }
func (BaseVisitor) PreVisitPadding(Padding, *Cursor)             {}
func (BaseVisitor) PostVisitPadding(p Padding, _ *Cursor) Padding { return p }
func (BaseVisitor) VisitSpace(s Space, _ SpaceLoc, _ *Cursor) Space {
	return s
}

// Visit walks n depth-first with v, rebuilding only the nodes whose
// children, spaces or markers changed. parent may be nil.
func Visit(v Visitor, n Node, parent *Cursor) Node {
	if IsNil(n) {
		return n
	}
	return walker{v}.node(n, parent)
}

// VisitAs is Visit for a statically typed slot.
func VisitAs[T Node](v Visitor, n T, parent *Cursor) T {
	return visitAs(walker{v}, n, parent)
}

type walker struct {
	v Visitor
}

func same(a, b any) bool { return a == b }

func (w walker) node(n Node, parent *Cursor) Node {
	c := NewCursor(parent, n)
	out, descend := w.v.PreVisit(n, c)
	if !descend || IsNil(out) {
		return out
	}
	c.value = out
	out = w.children(out, c)
	c.value = out
	return w.v.PostVisit(out, c)
}

func visitAs[T Node](w walker, n T, parent *Cursor) T {
	if IsNil(n) {
		return n
	}
	out := w.node(n, parent)
	if out == nil {
		var zero T
		return zero
	}
	t, ok := out.(T)
	if !ok {
		panic(fmt.Sprintf("tree: visitor replaced %s with %T where %T is required", n.Kind(), out, n))
	}
	return t
}

func (w walker) meta(m Meta, c *Cursor) (Meta, bool) {
	p := w.v.VisitSpace(m.Prefix, LocPrefix, c)
	if p.Equal(m.Prefix) {
		return m, false
	}
	m.Prefix = p
	return m, true
}

func (w walker) markers(m Markers, c *Cursor) Markers {
	if len(m) == 0 {
		return m
	}
	var out Markers
	for i, mk := range m {
		s := w.v.VisitSpace(mk.Suffix, LocMarker, c)
		if s.Equal(mk.Suffix) {
			continue
		}
		if out == nil {
			out = append(Markers(nil), m...)
		}
		out[i].Suffix = s
	}
	if out == nil {
		return m
	}
	return out
}

func leftPadded[T Node](w walker, p *LeftPadded[T], parent *Cursor) *LeftPadded[T] {
	if p == nil {
		return nil
	}
	pad := Padding{Kind: PaddingLeft, Before: p.Before, Markers: p.Markers}
	c := NewCursor(parent, pad)
	w.v.PreVisitPadding(pad, c)
	before := w.v.VisitSpace(p.Before, LocBefore, c)
	elem := visitAs(w, p.Element, c)
	pad.Before = before
	pad.Markers = w.markers(p.Markers, c)
	pad = w.v.PostVisitPadding(pad, c)
	if same(elem, p.Element) && pad.Before.Equal(p.Before) && pad.Markers.Equal(p.Markers) {
		return p
	}
	return &LeftPadded[T]{Before: pad.Before, Element: elem, Markers: pad.Markers}
}

func leftPaddedValue[T any](w walker, p *LeftPadded[T], parent *Cursor) *LeftPadded[T] {
	if p == nil {
		return nil
	}
	pad := Padding{Kind: PaddingLeft, Before: p.Before, Markers: p.Markers}
	c := NewCursor(parent, pad)
	w.v.PreVisitPadding(pad, c)
	pad.Before = w.v.VisitSpace(p.Before, LocBefore, c)
	pad.Markers = w.markers(p.Markers, c)
	pad = w.v.PostVisitPadding(pad, c)
	if pad.Before.Equal(p.Before) && pad.Markers.Equal(p.Markers) {
		return p
	}
	return &LeftPadded[T]{Before: pad.Before, Element: p.Element, Markers: pad.Markers}
}

func rightPadded[T Node](w walker, p *RightPadded[T], parent *Cursor) *RightPadded[T] {
	if p == nil {
		return nil
	}
	pad := Padding{Kind: PaddingRight, After: p.After, Markers: p.Markers}
	c := NewCursor(parent, pad)
	w.v.PreVisitPadding(pad, c)
	elem := visitAs(w, p.Element, c)
	pad.After = w.v.VisitSpace(p.After, LocAfter, c)
	pad.Markers = w.markers(p.Markers, c)
	pad = w.v.PostVisitPadding(pad, c)
	if same(elem, p.Element) && pad.After.Equal(p.After) && pad.Markers.Equal(p.Markers) {
		return p
	}
	return &RightPadded[T]{Element: elem, After: pad.After, Markers: pad.Markers}
}

func rightPaddedList[T Node](w walker, list []*RightPadded[T], c *Cursor) ([]*RightPadded[T], bool) {
	var out []*RightPadded[T]
	for i, p := range list {
		np := rightPadded(w, p, c)
		if np == p {
			continue
		}
		if out == nil {
			out = make([]*RightPadded[T], len(list))
			copy(out, list)
		}
		out[i] = np
	}
	if out == nil {
		return list, false
	}
	return out, true
}

// closing returns the space before a container's closing delimiter.
func closing[T any](elems []*RightPadded[T]) Space {
	if len(elems) == 0 {
		return EmptySpace
	}
	last := elems[len(elems)-1]
	if tc, ok := last.Markers.Find(MarkerTrailingComma); ok {
		return tc.Suffix
	}
	return last.After
}

func withClosing[T any](elems []*RightPadded[T], s Space) []*RightPadded[T] {
	if len(elems) == 0 || closing(elems).Equal(s) {
		return elems
	}
	out := make([]*RightPadded[T], len(elems))
	copy(out, elems)
	last := *out[len(out)-1]
	if tc, ok := last.Markers.Find(MarkerTrailingComma); ok {
		tc.Suffix = s
		last.Markers = last.Markers.With(tc)
	} else {
		last.After = s
	}
	out[len(out)-1] = &last
	return out
}

func container[T Node](w walker, ct *Container[T], parent *Cursor) *Container[T] {
	if ct == nil {
		return nil
	}
	pad := Padding{Kind: PaddingContainer, Before: ct.Before, After: closing(ct.Elements), Markers: ct.Markers, Len: len(ct.Elements)}
	c := NewCursor(parent, pad)
	w.v.PreVisitPadding(pad, c)
	before := w.v.VisitSpace(ct.Before, LocBefore, c)
	elems, changed := rightPaddedList(w, ct.Elements, c)
	pad.Before = before
	pad.After = closing(elems)
	pad.Markers = w.markers(ct.Markers, c)
	pad = w.v.PostVisitPadding(pad, c)
	if !pad.After.Equal(closing(elems)) {
		elems = withClosing(elems, pad.After)
		changed = true
	}
	if !changed && pad.Before.Equal(ct.Before) && pad.Markers.Equal(ct.Markers) {
		return ct
	}
	return &Container[T]{Before: pad.Before, Elements: elems, Markers: pad.Markers}
}

func (w walker) children(n Node, c *Cursor) Node {
	switch n := n.(type) {
	case *CompilationUnit:
		m, mc := w.meta(n.Meta, c)
		stmts, sc := rightPaddedList(w, n.Statements, c)
		eof := w.v.VisitSpace(n.EOF, LocEOF, c)
		if !mc && !sc && eof.Equal(n.EOF) {
			return n
		}
		cp := *n
		cp.Meta, cp.Statements, cp.EOF = m, stmts, eof
		return &cp

	case *Block:
		m, mc := w.meta(n.Meta, c)
		stmts, sc := rightPaddedList(w, n.Statements, c)
		end := w.v.VisitSpace(n.End, LocBlockEnd, c)
		if !mc && !sc && end.Equal(n.End) {
			return n
		}
		cp := *n
		cp.Meta, cp.Statements, cp.End = m, stmts, end
		return &cp

	case *VariableDeclaration:
		m, mc := w.meta(n.Meta, c)
		name := visitAs(w, n.Name, c)
		init := leftPadded(w, n.Initializer, c)
		if !mc && name == n.Name && init == n.Initializer {
			return n
		}
		cp := *n
		cp.Meta, cp.Name, cp.Initializer = m, name, init
		return &cp

	case *FunctionDeclaration:
		m, mc := w.meta(n.Meta, c)
		name := visitAs(w, n.Name, c)
		params := container(w, n.Parameters, c)
		body := visitAs(w, n.Body, c)
		if !mc && name == n.Name && params == n.Parameters && body == n.Body {
			return n
		}
		cp := *n
		cp.Meta, cp.Name, cp.Parameters, cp.Body = m, name, params, body
		return &cp

	case *Return:
		m, mc := w.meta(n.Meta, c)
		expr := visitAs(w, n.Expression, c)
		if !mc && same(expr, n.Expression) {
			return n
		}
		cp := *n
		cp.Meta, cp.Expression = m, expr
		return &cp

	case *If:
		m, mc := w.meta(n.Meta, c)
		cond := visitAs(w, n.Condition, c)
		then := rightPadded(w, n.Then, c)
		els := visitAs(w, n.Else, c)
		if !mc && cond == n.Condition && then == n.Then && els == n.Else {
			return n
		}
		cp := *n
		cp.Meta, cp.Condition, cp.Then, cp.Else = m, cond, then, els
		return &cp

	case *Else:
		m, mc := w.meta(n.Meta, c)
		body := rightPadded(w, n.Body, c)
		if !mc && body == n.Body {
			return n
		}
		cp := *n
		cp.Meta, cp.Body = m, body
		return &cp

	case *Switch:
		m, mc := w.meta(n.Meta, c)
		sel := visitAs(w, n.Selector, c)
		cases := visitAs(w, n.Cases, c)
		if !mc && sel == n.Selector && cases == n.Cases {
			return n
		}
		cp := *n
		cp.Meta, cp.Selector, cp.Cases = m, sel, cases
		return &cp

	case *Case:
		m, mc := w.meta(n.Meta, c)
		expr := visitAs(w, n.Expression, c)
		colon := w.v.VisitSpace(n.Colon, LocCaseColon, c)
		body, bc := rightPaddedList(w, n.Body, c)
		if !mc && !bc && same(expr, n.Expression) && colon.Equal(n.Colon) {
			return n
		}
		cp := *n
		cp.Meta, cp.Expression, cp.Colon, cp.Body = m, expr, colon, body
		return &cp

	case *Identifier:
		return withVisitedMeta(w, n, c)

	case *Literal:
		return withVisitedMeta(w, n, c)

	case *Empty:
		return withVisitedMeta(w, n, c)

	case *Unary:
		m, mc := w.meta(n.Meta, c)
		operand := visitAs(w, n.Operand, c)
		if !mc && same(operand, n.Operand) {
			return n
		}
		cp := *n
		cp.Meta, cp.Operand = m, operand
		return &cp

	case *Binary:
		m, mc := w.meta(n.Meta, c)
		left := visitAs(w, n.Left, c)
		op := leftPaddedValue(w, n.Operator, c)
		right := visitAs(w, n.Right, c)
		if !mc && same(left, n.Left) && op == n.Operator && same(right, n.Right) {
			return n
		}
		cp := *n
		cp.Meta, cp.Left, cp.Operator, cp.Right = m, left, op, right
		return &cp

	case *Assignment:
		m, mc := w.meta(n.Meta, c)
		variable := visitAs(w, n.Variable, c)
		value := leftPadded(w, n.Value, c)
		if !mc && same(variable, n.Variable) && value == n.Value {
			return n
		}
		cp := *n
		cp.Meta, cp.Variable, cp.Value = m, variable, value
		return &cp

	case *FieldAccess:
		m, mc := w.meta(n.Meta, c)
		target := visitAs(w, n.Target, c)
		name := leftPadded(w, n.Name, c)
		if !mc && same(target, n.Target) && name == n.Name {
			return n
		}
		cp := *n
		cp.Meta, cp.Target, cp.Name = m, target, name
		return &cp

	case *MethodInvocation:
		m, mc := w.meta(n.Meta, c)
		sel := rightPadded(w, n.Select, c)
		name := visitAs(w, n.Name, c)
		args := container(w, n.Arguments, c)
		if !mc && sel == n.Select && name == n.Name && args == n.Arguments {
			return n
		}
		cp := *n
		cp.Meta, cp.Select, cp.Name, cp.Arguments = m, sel, name, args
		return &cp

	case *Parentheses:
		m, mc := w.meta(n.Meta, c)
		inner := rightPadded(w, n.Tree, c)
		if !mc && inner == n.Tree {
			return n
		}
		cp := *n
		cp.Meta, cp.Tree = m, inner
		return &cp

	case *ArrayLiteral:
		m, mc := w.meta(n.Meta, c)
		elems := container(w, n.Elements, c)
		if !mc && elems == n.Elements {
			return n
		}
		cp := *n
		cp.Meta, cp.Elements = m, elems
		return &cp
	}
	panic(fmt.Sprintf("tree: unhandled node %T", n))
}

func withVisitedMeta[N Node](w walker, n N, c *Cursor) Node {
	m, changed := w.meta(n.meta(), c)
	if !changed {
		return n
	}
	return n.withMeta(m)
}
