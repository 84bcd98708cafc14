package reconcile

import (
	"fmt"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// fields walks the structural fields of two nodes of the same kind.
// Identity tokens, resolved types and scalars always come from o.
func (r reconciler) fields(o, f tree.Node, s state) (tree.Node, state, bool) {
	var ok bool

	switch o := o.(type) {
	case *tree.CompilationUnit:
		f := f.(*tree.CompilationUnit)
		m, mc := meta(o.Meta, f.Meta, s)
		var stmts []*tree.RightPadded[tree.Statement]
		if stmts, s, ok = rightPaddedList(r, o.Statements, f.Statements, s); !ok {
			return o, s, false
		}
		eof, ec := space(o.EOF, f.EOF, s)
		if !mc && !ec && sameList(stmts, o.Statements) {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Statements, cp.EOF = m, stmts, eof
		return &cp, s, true

	case *tree.Block:
		f := f.(*tree.Block)
		m, mc := meta(o.Meta, f.Meta, s)
		var stmts []*tree.RightPadded[tree.Statement]
		if stmts, s, ok = rightPaddedList(r, o.Statements, f.Statements, s); !ok {
			return o, s, false
		}
		end, ec := space(o.End, f.End, s)
		if !mc && !ec && sameList(stmts, o.Statements) {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Statements, cp.End = m, stmts, end
		return &cp, s, true

	case *tree.VariableDeclaration:
		f := f.(*tree.VariableDeclaration)
		m, mc := meta(o.Meta, f.Meta, s)
		var name *tree.Identifier
		if name, s, ok = visit(r, o.Name, f.Name, s); !ok {
			return o, s, false
		}
		var init *tree.LeftPadded[tree.Expression]
		if init, s, ok = leftPadded(r, o.Initializer, f.Initializer, s); !ok {
			return o, s, false
		}
		if !mc && name == o.Name && init == o.Initializer {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Name, cp.Initializer = m, name, init
		return &cp, s, true

	case *tree.FunctionDeclaration:
		f := f.(*tree.FunctionDeclaration)
		m, mc := meta(o.Meta, f.Meta, s)
		var name *tree.Identifier
		if name, s, ok = visit(r, o.Name, f.Name, s); !ok {
			return o, s, false
		}
		var params *tree.Container[tree.Expression]
		if params, s, ok = container(r, o.Parameters, f.Parameters, s); !ok {
			return o, s, false
		}
		var body *tree.Block
		if body, s, ok = visit(r, o.Body, f.Body, s); !ok {
			return o, s, false
		}
		if !mc && name == o.Name && params == o.Parameters && body == o.Body {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Name, cp.Parameters, cp.Body = m, name, params, body
		return &cp, s, true

	case *tree.Return:
		f := f.(*tree.Return)
		m, mc := meta(o.Meta, f.Meta, s)
		var expr tree.Expression
		if expr, s, ok = visit(r, o.Expression, f.Expression, s); !ok {
			return o, s, false
		}
		if !mc && same(expr, o.Expression) {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Expression = m, expr
		return &cp, s, true

	case *tree.If:
		f := f.(*tree.If)
		m, mc := meta(o.Meta, f.Meta, s)
		var cond *tree.Parentheses
		if cond, s, ok = visit(r, o.Condition, f.Condition, s); !ok {
			return o, s, false
		}
		var then *tree.RightPadded[tree.Statement]
		if then, s, ok = rightPadded(r, o.Then, f.Then, s); !ok {
			return o, s, false
		}
		var els *tree.Else
		if els, s, ok = visit(r, o.Else, f.Else, s); !ok {
			return o, s, false
		}
		if !mc && cond == o.Condition && then == o.Then && els == o.Else {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Condition, cp.Then, cp.Else = m, cond, then, els
		return &cp, s, true

	case *tree.Else:
		f := f.(*tree.Else)
		m, mc := meta(o.Meta, f.Meta, s)
		var body *tree.RightPadded[tree.Statement]
		if body, s, ok = rightPadded(r, o.Body, f.Body, s); !ok {
			return o, s, false
		}
		if !mc && body == o.Body {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Body = m, body
		return &cp, s, true

	case *tree.Switch:
		f := f.(*tree.Switch)
		m, mc := meta(o.Meta, f.Meta, s)
		var sel *tree.Parentheses
		if sel, s, ok = visit(r, o.Selector, f.Selector, s); !ok {
			return o, s, false
		}
		var cases *tree.Block
		if cases, s, ok = visit(r, o.Cases, f.Cases, s); !ok {
			return o, s, false
		}
		if !mc && sel == o.Selector && cases == o.Cases {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Selector, cp.Cases = m, sel, cases
		return &cp, s, true

	case *tree.Case:
		f := f.(*tree.Case)
		m, mc := meta(o.Meta, f.Meta, s)
		var expr tree.Expression
		if expr, s, ok = visit(r, o.Expression, f.Expression, s); !ok {
			return o, s, false
		}
		colon, cc := space(o.Colon, f.Colon, s)
		var body []*tree.RightPadded[tree.Statement]
		if body, s, ok = rightPaddedList(r, o.Body, f.Body, s); !ok {
			return o, s, false
		}
		if !mc && !cc && same(expr, o.Expression) && sameList(body, o.Body) {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Expression, cp.Colon, cp.Body = m, expr, colon, body
		return &cp, s, true

	case *tree.Identifier:
		m, mc := meta(o.Meta, f.(*tree.Identifier).Meta, s)
		if !mc {
			return o, s, true
		}
		cp := *o
		cp.Meta = m
		return &cp, s, true

	case *tree.Literal:
		m, mc := meta(o.Meta, f.(*tree.Literal).Meta, s)
		if !mc {
			return o, s, true
		}
		cp := *o
		cp.Meta = m
		return &cp, s, true

	case *tree.Empty:
		m, mc := meta(o.Meta, f.(*tree.Empty).Meta, s)
		if !mc {
			return o, s, true
		}
		cp := *o
		cp.Meta = m
		return &cp, s, true

	case *tree.Unary:
		f := f.(*tree.Unary)
		m, mc := meta(o.Meta, f.Meta, s)
		var operand tree.Expression
		if operand, s, ok = visit(r, o.Operand, f.Operand, s); !ok {
			return o, s, false
		}
		if !mc && same(operand, o.Operand) {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Operand = m, operand
		return &cp, s, true

	case *tree.Binary:
		f := f.(*tree.Binary)
		m, mc := meta(o.Meta, f.Meta, s)
		var left, right tree.Expression
		if left, s, ok = visit(r, o.Left, f.Left, s); !ok {
			return o, s, false
		}
		var op *tree.LeftPadded[string]
		if op, ok = operator(o.Operator, f.Operator, s); !ok {
			return o, s, false
		}
		if right, s, ok = visit(r, o.Right, f.Right, s); !ok {
			return o, s, false
		}
		if !mc && same(left, o.Left) && op == o.Operator && same(right, o.Right) {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Left, cp.Operator, cp.Right = m, left, op, right
		return &cp, s, true

	case *tree.Assignment:
		f := f.(*tree.Assignment)
		m, mc := meta(o.Meta, f.Meta, s)
		var variable tree.Expression
		if variable, s, ok = visit(r, o.Variable, f.Variable, s); !ok {
			return o, s, false
		}
		var value *tree.LeftPadded[tree.Expression]
		if value, s, ok = leftPadded(r, o.Value, f.Value, s); !ok {
			return o, s, false
		}
		if !mc && same(variable, o.Variable) && value == o.Value {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Variable, cp.Value = m, variable, value
		return &cp, s, true

	case *tree.FieldAccess:
		f := f.(*tree.FieldAccess)
		m, mc := meta(o.Meta, f.Meta, s)
		var target tree.Expression
		if target, s, ok = visit(r, o.Target, f.Target, s); !ok {
			return o, s, false
		}
		var name *tree.LeftPadded[*tree.Identifier]
		if name, s, ok = leftPadded(r, o.Name, f.Name, s); !ok {
			return o, s, false
		}
		if !mc && same(target, o.Target) && name == o.Name {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Target, cp.Name = m, target, name
		return &cp, s, true

	case *tree.MethodInvocation:
		f := f.(*tree.MethodInvocation)
		m, mc := meta(o.Meta, f.Meta, s)
		var sel *tree.RightPadded[tree.Expression]
		if sel, s, ok = rightPadded(r, o.Select, f.Select, s); !ok {
			return o, s, false
		}
		var name *tree.Identifier
		if name, s, ok = visit(r, o.Name, f.Name, s); !ok {
			return o, s, false
		}
		var args *tree.Container[tree.Expression]
		if args, s, ok = container(r, o.Arguments, f.Arguments, s); !ok {
			return o, s, false
		}
		if !mc && sel == o.Select && name == o.Name && args == o.Arguments {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Select, cp.Name, cp.Arguments = m, sel, name, args
		return &cp, s, true

	case *tree.Parentheses:
		f := f.(*tree.Parentheses)
		m, mc := meta(o.Meta, f.Meta, s)
		var inner *tree.RightPadded[tree.Expression]
		if inner, s, ok = rightPadded(r, o.Tree, f.Tree, s); !ok {
			return o, s, false
		}
		if !mc && inner == o.Tree {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Tree = m, inner
		return &cp, s, true

	case *tree.ArrayLiteral:
		f := f.(*tree.ArrayLiteral)
		m, mc := meta(o.Meta, f.Meta, s)
		var elems *tree.Container[tree.Expression]
		if elems, s, ok = container(r, o.Elements, f.Elements, s); !ok {
			return o, s, false
		}
		if !mc && elems == o.Elements {
			return o, s, true
		}
		cp := *o
		cp.Meta, cp.Elements = m, elems
		return &cp, s, true
	}
	panic(fmt.Sprintf("reconcile: unhandled node %T", o))
}
