package format

import (
	"strings"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// AlignAssignments column-aligns "=" within groups of consecutive variable
// declarations. Groups are delimited by blank lines, comments, or any
// other statement. Existing over-padding is normalized down to the
// minimum column required by the group.
type AlignAssignments struct{}

// Name returns the config key for this rule.
func (*AlignAssignments) Name() string {
	return "align_assignments"
}

// Format aligns "=" in every statement list of the unit.
func (*AlignAssignments) Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit {
	if !cfg.AlignAssignments || cfg.AssignmentSpacing == "preserve" {
		return cu
	}
	return tree.VisitAs(aligner{}, cu, nil)
}

type aligner struct {
	tree.BaseVisitor
}

func (aligner) PostVisit(n tree.Node, _ *tree.Cursor) tree.Node {
	switch n := n.(type) {
	case *tree.CompilationUnit:
		if stmts, ok := alignStatements(n.Statements); ok {
			cp := *n
			cp.Statements = stmts
			return &cp
		}
	case *tree.Block:
		if stmts, ok := alignStatements(n.Statements); ok {
			cp := *n
			cp.Statements = stmts
			return &cp
		}
	case *tree.Case:
		if stmts, ok := alignStatements(n.Body); ok {
			cp := *n
			cp.Body = stmts
			return &cp
		}
	}
	return n
}

// alignable returns the declaration in rp if it can join a group, and
// whether it starts a new group.
func alignable(rp *tree.RightPadded[tree.Statement], first bool) (*tree.VariableDeclaration, bool) {
	decl, ok := rp.Element.(*tree.VariableDeclaration)
	if !ok || decl.Initializer == nil || !plain(tree.PrefixOf(decl.Name)) {
		return nil, true
	}
	prefix := tree.PrefixOf(decl)
	if !first && !prefix.HasNewline() {
		return nil, true
	}
	breaks := len(prefix.Comments) > 0 || strings.Count(prefix.Whitespace, "\n") > 1
	return decl, breaks
}

func alignStatements(list []*tree.RightPadded[tree.Statement]) ([]*tree.RightPadded[tree.Statement], bool) {
	var out []*tree.RightPadded[tree.Statement]
	var group []int

	flush := func() {
		if len(group) > 1 {
			out = alignGroup(list, out, group)
		}
		group = group[:0]
	}

	for i, rp := range list {
		decl, breaks := alignable(rp, i == 0)
		if decl == nil || breaks {
			flush()
		}
		if decl != nil {
			group = append(group, i)
		}
	}
	flush()

	if out == nil {
		return list, false
	}
	return out, true
}

// head is the text of a declaration up to "=".
func head(d *tree.VariableDeclaration) int {
	return len(d.Keyword) + len(tree.PrefixOf(d.Name).Whitespace) + len(d.Name.Name)
}

// alignGroup pads the space before "=" of each declaration in group so all
// operators start one column after the longest head.
func alignGroup(list, out []*tree.RightPadded[tree.Statement], group []int) []*tree.RightPadded[tree.Statement] {
	width := 0
	for _, i := range group {
		width = max(width, head(list[i].Element.(*tree.VariableDeclaration)))
	}

	for _, i := range group {
		decl := list[i].Element.(*tree.VariableDeclaration)
		before := tree.Format(strings.Repeat(" ", width-head(decl)+1))
		init := spaceAround(decl.Initializer, before)
		if init == decl.Initializer {
			continue
		}
		if out == nil {
			out = append([]*tree.RightPadded[tree.Statement](nil), list...)
		}
		cp := *decl
		cp.Initializer = init
		out[i] = list[i].WithElement(tree.Statement(&cp))
	}
	return out
}
