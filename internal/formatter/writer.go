// Package formatter provides the printer, the rule interface and the rule
// pipeline.
package formatter

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Write serializes a tree back into source text.
//
// Every byte of whitespace and every comment lives in a Space of the tree,
// so Write(parser.Parse(src)) == src.
func Write(n tree.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n tree.Node) {
	if tree.IsNil(n) {
		return
	}
	b.WriteString(tree.PrefixOf(n).String())

	switch n := n.(type) {
	case *tree.CompilationUnit:
		writeStatements(b, n.Statements)
		b.WriteString(n.EOF.String())

	case *tree.Block:
		b.WriteByte('{')
		writeStatements(b, n.Statements)
		b.WriteString(n.End.String())
		b.WriteByte('}')

	case *tree.VariableDeclaration:
		b.WriteString(n.Keyword)
		writeNode(b, n.Name)
		if n.Initializer != nil {
			b.WriteString(n.Initializer.Before.String())
			b.WriteByte('=')
			writeNode(b, n.Initializer.Element)
		}

	case *tree.FunctionDeclaration:
		b.WriteString("function")
		writeNode(b, n.Name)
		writeContainer(b, n.Parameters, "(", ")")
		writeNode(b, n.Body)

	case *tree.Return:
		b.WriteString("return")
		writeNode(b, n.Expression)

	case *tree.If:
		b.WriteString("if")
		writeNode(b, n.Condition)
		writeStatement(b, n.Then)
		writeNode(b, n.Else)

	case *tree.Else:
		b.WriteString("else")
		writeStatement(b, n.Body)

	case *tree.Switch:
		b.WriteString("switch")
		writeNode(b, n.Selector)
		writeNode(b, n.Cases)

	case *tree.Case:
		if n.Default {
			b.WriteString("default")
		} else {
			b.WriteString("case")
			writeNode(b, n.Expression)
		}
		b.WriteString(n.Colon.String())
		b.WriteByte(':')
		writeStatements(b, n.Body)

	case *tree.Identifier:
		b.WriteString(n.Name)

	case *tree.Literal:
		b.WriteString(n.Source)

	case *tree.Unary:
		b.WriteString(n.Operator)
		writeNode(b, n.Operand)

	case *tree.Binary:
		writeNode(b, n.Left)
		b.WriteString(n.Operator.Before.String())
		b.WriteString(n.Operator.Element)
		writeNode(b, n.Right)

	case *tree.Assignment:
		writeNode(b, n.Variable)
		b.WriteString(n.Value.Before.String())
		b.WriteByte('=')
		writeNode(b, n.Value.Element)

	case *tree.FieldAccess:
		writeNode(b, n.Target)
		b.WriteString(n.Name.Before.String())
		b.WriteByte('.')
		writeNode(b, n.Name.Element)

	case *tree.MethodInvocation:
		if n.Select != nil {
			writeNode(b, n.Select.Element)
			b.WriteString(n.Select.After.String())
			b.WriteByte('.')
		}
		writeNode(b, n.Name)
		writeContainer(b, n.Arguments, "(", ")")

	case *tree.Parentheses:
		b.WriteByte('(')
		writeNode(b, n.Tree.Element)
		b.WriteString(n.Tree.After.String())
		b.WriteByte(')')

	case *tree.ArrayLiteral:
		writeContainer(b, n.Elements, "[", "]")

	case *tree.Empty:
		// Nothing but the prefix.

	default:
		panic(fmt.Sprintf("formatter: cannot write %T", n))
	}
}

func writeStatements(b *strings.Builder, stmts []*tree.RightPadded[tree.Statement]) {
	for _, s := range stmts {
		writeStatement(b, s)
	}
}

func writeStatement(b *strings.Builder, s *tree.RightPadded[tree.Statement]) {
	if s == nil {
		return
	}
	writeNode(b, s.Element)
	b.WriteString(s.After.String())
	if s.Markers.Has(tree.MarkerSemicolon) {
		b.WriteByte(';')
	}
}

func writeContainer[T tree.Node](b *strings.Builder, c *tree.Container[T], open, closer string) {
	if c == nil {
		return
	}
	b.WriteString(c.Before.String())
	b.WriteString(open)
	for i, e := range c.Elements {
		writeNode(b, e.Element)
		b.WriteString(e.After.String())
		if i < len(c.Elements)-1 {
			b.WriteByte(',')
			continue
		}
		if tc, ok := e.Markers.Find(tree.MarkerTrailingComma); ok {
			b.WriteByte(',')
			b.WriteString(tc.Suffix.String())
		}
	}
	b.WriteString(closer)
}
