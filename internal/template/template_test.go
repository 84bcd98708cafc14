package template_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/splicefmt/internal/formatter"
	"github.com/donaldgifford/splicefmt/internal/parser"
	"github.com/donaldgifford/splicefmt/internal/template"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

func parse(t *testing.T, src string) *tree.CompilationUnit {
	t.Helper()
	cu, err := parser.Parse(src, "test.js")
	require.NoError(t, err)
	return cu
}

func body(cu *tree.CompilationUnit) *tree.Block {
	return cu.Statements[0].Element.(*tree.FunctionDeclaration).Body
}

func TestExpressionPrefix(t *testing.T) {
	root := parse(t, "foo(  n);\n")
	call := root.Statements[0].Element.(*tree.MethodInvocation)
	anchor := call.Arguments.Elements[0].Element
	x, err := parser.ParseExpression("x")
	require.NoError(t, err)

	tmpl := template.New("#{}.toString()", parser.Default)
	out, err := tmpl.Apply(context.Background(), root, template.Coordinates{
		Anchor:   anchor,
		Location: template.ExpressionPrefix,
		Mode:     template.Replace,
	}, x)
	require.NoError(t, err)
	assert.Equal(t, "foo(  x.toString());\n", formatter.Write(out))

	got := out.(*tree.CompilationUnit).Statements[0].Element.(*tree.MethodInvocation).
		Arguments.Elements[0].Element.(*tree.MethodInvocation)
	assert.Equal(t, "toString", got.Name.Name)
	assert.Equal(t, "  ", tree.PrefixOf(got).Whitespace)
	recv := got.Select.Element.(*tree.Identifier)
	assert.Equal(t, "x", recv.Name)
	assert.NotSame(t, x, recv)

	// The input tree is unchanged.
	assert.Equal(t, "foo(  n);\n", formatter.Write(root))
}

func TestExpressionPrefixReindents(t *testing.T) {
	root := parse(t, "function f() {\n  return a;\n}\n")
	ret := body(root).Statements[0].Element.(*tree.Return)

	tmpl := template.New("g(\n#{},\n1)", parser.Default)
	out, err := tmpl.Apply(context.Background(), root, template.Coordinates{
		Anchor:   ret.Expression,
		Location: template.ExpressionPrefix,
		Mode:     template.Replace,
	}, ret.Expression)
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  return g(\n    a,\n    1);\n}\n", formatter.Write(out))
}

func TestExpressionPrefixSeedsPastComment(t *testing.T) {
	root := parse(t, "function f() {\n  if (x) {\n    /* c */ a(\n1);\n  }\n}")
	ifStmt := body(root).Statements[0].Element.(*tree.If)
	call := ifStmt.Then.Element.(*tree.Block).Statements[0].Element.(*tree.MethodInvocation)
	arg := call.Arguments.Elements[0].Element

	out, err := template.New("g(\n#{})", parser.Default).Apply(context.Background(), root, template.Coordinates{
		Anchor:   arg,
		Location: template.ExpressionPrefix,
		Mode:     template.Replace,
	}, arg)
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  if (x) {\n    /* c */ a(\n      g(\n        1));\n  }\n}", formatter.Write(out))
}

func TestExpressionPrefixConditionSlot(t *testing.T) {
	root := parse(t, "if (x) y();\n")
	cond := root.Statements[0].Element.(*tree.If).Condition
	x := cond.Tree.Element

	out, err := template.New("(#{} && ready)", parser.Default).Apply(context.Background(), root, template.Coordinates{
		Anchor:   cond,
		Location: template.ExpressionPrefix,
		Mode:     template.Replace,
	}, x)
	require.NoError(t, err)
	assert.Equal(t, "if (x && ready) y();\n", formatter.Write(out))

	_, err = template.New("ready", parser.Default).Apply(context.Background(), root, template.Coordinates{
		Anchor:   cond,
		Location: template.ExpressionPrefix,
		Mode:     template.Replace,
	})
	assert.ErrorIs(t, err, template.ErrFragmentShape)
}

func TestStatementPrefix(t *testing.T) {
	src := "function f() {\n  a();\n  // keep\n  b();\n}\n"

	tests := []struct {
		mode template.Mode
		want string
	}{
		{template.Before, "function f() {\n  a();\n  log(1);\n  // keep\n  b();\n}\n"},
		{template.After, "function f() {\n  a();\n  // keep\n  b();\n  log(1);\n}\n"},
		{template.Replace, "function f() {\n  a();\n  log(1);\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			root := parse(t, src)
			anchor := body(root).Statements[1].Element

			out, err := template.New("log(#{});", parser.Default).Apply(context.Background(), root,
				template.Coordinates{Anchor: anchor, Location: template.StatementPrefix, Mode: tt.mode}, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, formatter.Write(out))
		})
	}
}

func TestStatementPrefixInCase(t *testing.T) {
	root := parse(t, "switch (x) {\n  case 1:\n    a();\n}\n")
	cases := root.Statements[0].Element.(*tree.Switch).Cases
	anchor := cases.Statements[0].Element.(*tree.Case).Body[0].Element

	out, err := template.New("b();", parser.Default).Apply(context.Background(), root,
		template.Coordinates{Anchor: anchor, Location: template.StatementPrefix, Mode: template.After})
	require.NoError(t, err)
	assert.Equal(t, "switch (x) {\n  case 1:\n    a();\n    b();\n}\n", formatter.Write(out))
}

func TestInvalidMode(t *testing.T) {
	root := parse(t, "a();\n")
	_, err := template.New("b();", parser.Default).Apply(context.Background(), root,
		template.Coordinates{Anchor: root.Statements[0].Element, Location: template.StatementPrefix, Mode: template.Mode(7)})
	assert.ErrorIs(t, err, template.ErrInvalidMode)
}

func TestBlockEnd(t *testing.T) {
	root := parse(t, "function f() {\n  a();\n}\n")
	blk := body(root)

	out, err := template.New("b();\nc();", parser.Default).Apply(context.Background(), root,
		template.Coordinates{Anchor: blk, Location: template.BlockEnd})
	require.NoError(t, err)

	got := body(out.(*tree.CompilationUnit))
	require.Len(t, got.Statements, 3)
	assert.Same(t, blk.Statements[0], got.Statements[0])
	for _, rp := range got.Statements[1:] {
		assert.True(t, rp.After.IsEmpty())
	}
	assert.Equal(t, "function f() {\n  a();\n  b();\n  c();\n}\n", formatter.Write(out))
}

func TestBlockEndNilTreeParameter(t *testing.T) {
	root := parse(t, "function f() {\n  a();\n}\n")

	out, err := template.New("log(#{});", parser.Default).Apply(context.Background(), root,
		template.Coordinates{Anchor: body(root), Location: template.BlockEnd}, (*tree.Identifier)(nil))
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  a();\n  log(null);\n}\n", formatter.Write(out))
}

func TestBlockEndIntoEmptyBlock(t *testing.T) {
	root := parse(t, "if (x) {}\n")
	blk := root.Statements[0].Element.(*tree.If).Then.Element

	out, err := template.New("y();", parser.Default).Apply(context.Background(), root,
		template.Coordinates{Anchor: blk, Location: template.BlockEnd})
	require.NoError(t, err)
	assert.Equal(t, "if (x) {\n  y();\n}\n", formatter.Write(out))
}

func TestBlockEndWithNoStatements(t *testing.T) {
	root := parse(t, "function f() {\n  a();\n}\n")

	out, err := template.New("", parser.Default).Apply(context.Background(), root,
		template.Coordinates{Anchor: body(root), Location: template.BlockEnd})
	require.NoError(t, err)
	assert.Same(t, root, out)
}

func TestApplyErrors(t *testing.T) {
	root := parse(t, "function f() {\n  a();\n}\n")
	other := parse(t, "a();")
	ctx := context.Background()

	_, err := template.New("b();", parser.Default).Apply(ctx, root,
		template.Coordinates{Anchor: other.Statements[0].Element, Location: template.StatementPrefix})
	assert.ErrorIs(t, err, template.ErrAnchorNotFound)

	_, err = template.New("a; b", parser.Default).Apply(ctx, root,
		template.Coordinates{Anchor: body(root).Statements[0].Element, Location: template.ExpressionPrefix})
	assert.ErrorIs(t, err, template.ErrFragmentShape)

	_, err = template.New("#{", parser.Default).Apply(ctx, root,
		template.Coordinates{Anchor: body(root), Location: template.BlockEnd})
	assert.ErrorIs(t, err, template.ErrUnmatchedBrace)

	_, err = template.New("b(", parser.Default).Apply(ctx, root,
		template.Coordinates{Anchor: body(root), Location: template.BlockEnd})
	assert.ErrorIs(t, err, parser.ErrSyntax)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = template.New("b();", parser.Default).Apply(cancelled, root,
		template.Coordinates{Anchor: body(root), Location: template.BlockEnd})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseCoordinates(t *testing.T) {
	loc, err := template.ParseLocation("block-end")
	require.NoError(t, err)
	assert.Equal(t, template.BlockEnd, loc)

	mode, err := template.ParseMode("Replace")
	require.NoError(t, err)
	assert.Equal(t, template.Replace, mode)

	_, err = template.ParseMode("around")
	assert.ErrorIs(t, err, template.ErrInvalidMode)
	_, err = template.ParseLocation("middle")
	assert.ErrorIs(t, err, template.ErrInvalidLocation)
}
