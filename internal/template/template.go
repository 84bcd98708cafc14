// Package template splices source text with typed placeholders into an
// existing tree.
package template

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/donaldgifford/splicefmt/internal/indent"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Parser turns source text into a tree. Identical text must yield trees of
// identical shape.
type Parser interface {
	Parse(ctx context.Context, text, path string) (*tree.CompilationUnit, error)
}

// fragmentPath names parsed template text in error messages.
const fragmentPath = "<template>"

// Template is source text with "#{}" placeholders.
type Template struct {
	Code   string
	Parser Parser

	// Indent configures the re-indentation of spliced code.
	Indent indent.Options
}

// New returns a template with default indentation.
func New(code string, p Parser) *Template {
	return &Template{Code: code, Parser: p, Indent: indent.DefaultOptions()}
}

// Fragment substitutes params, parses the result and restores tree
// parameters. It returns the template's statements.
func (t *Template) Fragment(ctx context.Context, params ...any) ([]*tree.RightPadded[tree.Statement], error) {
	subs := NewSubstitutions(t.Code, params...)
	text, err := subs.Substitute()
	if err != nil {
		return nil, err
	}

	cu, err := t.Parser.Parse(ctx, text, fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	stmts := make([]*tree.RightPadded[tree.Statement], len(cu.Statements))
	for i, rp := range cu.Statements {
		n, err := subs.Unsubstitute(rp.Element)
		if err != nil {
			return nil, err
		}
		stmt, ok := n.(tree.Statement)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a statement", ErrParameterPosition, n.Kind())
		}
		stmts[i] = rp.WithElement(stmt)
	}
	return stmts, nil
}

// Apply splices the template into root at coords and returns the new root.
// root itself is never modified. Parsing the template is the only
// blocking step and honours ctx.
func (t *Template) Apply(ctx context.Context, root tree.Node, coords Coordinates, params ...any) (tree.Node, error) {
	if err := coords.Validate(); err != nil {
		return root, err
	}

	stmts, err := t.Fragment(ctx, params...)
	if err != nil {
		return root, err
	}

	s := &splicer{coords: coords, stmts: stmts, indent: t.Indent}
	if coords.Location == ExpressionPrefix {
		if len(stmts) != 1 || !tree.IsExpression(stmts[0].Element) {
			return root, fmt.Errorf("%w: %s needs a single expression, template has %d statements",
				ErrFragmentShape, coords.Location, len(stmts))
		}
		s.expr = stmts[0].Element.(tree.Expression)
	}

	out := tree.Visit(s, root, nil)
	if s.err != nil {
		return root, s.err
	}
	if !s.found {
		return root, fmt.Errorf("%w: %s", ErrAnchorNotFound, coords)
	}

	slog.Debug("spliced template",
		"location", coords.Location.String(),
		"mode", coords.Mode.String(),
		"anchor", coords.Anchor.Kind().String(),
		"statements", len(stmts),
	)
	return out, nil
}

// splicer walks the target tree to the anchor. The walk stops descending
// once the splice is made.
type splicer struct {
	tree.BaseVisitor

	coords Coordinates
	stmts  []*tree.RightPadded[tree.Statement]
	expr   tree.Expression
	indent indent.Options

	found bool
	err   error
}

func (s *splicer) PreVisit(n tree.Node, c *tree.Cursor) (tree.Node, bool) {
	if s.found || s.err != nil {
		return n, false
	}
	switch s.coords.Location {
	case ExpressionPrefix:
		if n == s.coords.Anchor {
			s.found = true
			return s.replaceExpression(n, c), false
		}
	case StatementPrefix:
		if out, ok := s.insertStatements(n, c); ok {
			s.found = true
			return out, false
		}
	case BlockEnd:
		if n == s.coords.Anchor {
			s.found = true
			return s.appendStatements(n, c), false
		}
	}
	return n, true
}

func (s *splicer) replaceExpression(anchor tree.Node, c *tree.Cursor) tree.Node {
	repl := tree.WithPrefix(tree.Node(s.expr), tree.PrefixOf(anchor))
	if kind, ok := slotKind(c); ok && repl.Kind() != kind {
		s.err = fmt.Errorf("%w: %s slot cannot hold a %s", ErrFragmentShape, kind, repl.Kind())
		return anchor
	}
	if !tree.IsExpression(anchor) && !statementSlot(c) {
		s.err = fmt.Errorf("%w: %s anchor is not an expression", ErrFragmentShape, anchor.Kind())
		return anchor
	}
	return indent.Format(repl, c.Parent(), s.indent)
}

func statementsOf(n tree.Node) ([]*tree.RightPadded[tree.Statement], bool) {
	switch n := n.(type) {
	case *tree.CompilationUnit:
		return n.Statements, true
	case *tree.Block:
		return n.Statements, true
	case *tree.Case:
		return n.Body, true
	}
	return nil, false
}

func withStatements(n tree.Node, stmts []*tree.RightPadded[tree.Statement]) tree.Node {
	switch n := n.(type) {
	case *tree.CompilationUnit:
		cp := *n
		cp.Statements = stmts
		return &cp
	case *tree.Block:
		cp := *n
		cp.Statements = stmts
		return &cp
	case *tree.Case:
		cp := *n
		cp.Body = stmts
		return &cp
	}
	panic(fmt.Sprintf("template: %T has no statement list", n))
}

// insertStatements splices when n owns the statement list holding the
// anchor. Generated statements take the anchor's prefix without its
// comments.
func (s *splicer) insertStatements(n tree.Node, c *tree.Cursor) (tree.Node, bool) {
	list, ok := statementsOf(n)
	if !ok {
		return n, false
	}
	at := slices.IndexFunc(list, func(rp *tree.RightPadded[tree.Statement]) bool {
		return rp.Element == s.coords.Anchor
	})
	if at < 0 {
		return n, false
	}

	prefix := tree.PrefixOf(s.coords.Anchor).WithoutComments()
	gen := make([]*tree.RightPadded[tree.Statement], len(s.stmts))
	for i, rp := range s.stmts {
		stmt := tree.WithPrefix(rp.Element, prefix)
		gen[i] = rp.WithElement(indent.Format(stmt, c, s.indent).(tree.Statement))
	}

	var out []*tree.RightPadded[tree.Statement]
	switch s.coords.Mode {
	case Replace:
		out = slices.Concat(list[:at], gen, list[at+1:])
	case Before:
		out = slices.Concat(list[:at], gen, list[at:])
	case After:
		out = slices.Concat(list[:at+1], gen, list[at+1:])
	default:
		s.err = fmt.Errorf("%w: %s", ErrInvalidMode, s.coords.Mode)
		return n, true
	}
	return withStatements(n, out), true
}

// appendStatements adds the generated statements at the end of the anchor
// block, each on its own line with an empty trailing space, and
// re-indents the block.
func (s *splicer) appendStatements(n tree.Node, c *tree.Cursor) tree.Node {
	blk, ok := n.(*tree.Block)
	if !ok {
		s.err = fmt.Errorf("%w: %s anchor is not a block", ErrFragmentShape, n.Kind())
		return n
	}
	if len(s.stmts) == 0 {
		return blk
	}

	gen := make([]*tree.RightPadded[tree.Statement], len(s.stmts))
	for i, rp := range s.stmts {
		stmt := rp.Element
		if p := tree.PrefixOf(stmt); !p.HasNewline() {
			stmt = tree.WithPrefix(stmt, onNewLine(p))
		}
		gen[i] = &tree.RightPadded[tree.Statement]{Element: stmt, Markers: rp.Markers}
	}

	cp := *blk
	cp.Statements = slices.Concat(blk.Statements, gen)
	if !cp.End.HasNewline() && len(cp.End.Comments) == 0 {
		cp.End = tree.Format("\n")
	}
	return indent.Format(&cp, c.Parent(), s.indent)
}

func onNewLine(s tree.Space) tree.Space {
	s.Whitespace = "\n" + s.Whitespace
	return s
}
