package format

import (
	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// AssignmentSpacing normalizes whitespace around "=" in declarations and
// assignments.
type AssignmentSpacing struct{}

// Name returns the config key for this rule.
func (*AssignmentSpacing) Name() string {
	return "assignment_spacing"
}

// Format puts a single blank on each side of "=" based on config. Spaces
// that break a line or hold a comment are kept.
func (*AssignmentSpacing) Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit {
	if cfg.AssignmentSpacing == "preserve" {
		return cu
	}
	return tree.VisitAs(assignmentSpacer{}, cu, nil)
}

type assignmentSpacer struct {
	tree.BaseVisitor
}

func (assignmentSpacer) PostVisit(n tree.Node, _ *tree.Cursor) tree.Node {
	switch n := n.(type) {
	case *tree.VariableDeclaration:
		if n.Initializer == nil {
			return n
		}
		init := spaceAround(n.Initializer, tree.SingleSpace)
		if init == n.Initializer {
			return n
		}
		cp := *n
		cp.Initializer = init
		return &cp

	case *tree.Assignment:
		value := spaceAround(n.Value, tree.SingleSpace)
		if value == n.Value {
			return n
		}
		cp := *n
		cp.Value = value
		return &cp
	}
	return n
}

// spaceAround sets the space before "=" to before and the value's prefix
// to a single blank.
func spaceAround(lp *tree.LeftPadded[tree.Expression], before tree.Space) *tree.LeftPadded[tree.Expression] {
	b := lp.Before
	if plain(b) {
		b = before
	}
	elem := lp.Element
	if p := tree.PrefixOf(elem); plain(p) {
		elem = tree.WithPrefix(elem, tree.SingleSpace)
	}
	if b.Equal(lp.Before) && elem == lp.Element {
		return lp
	}
	return &tree.LeftPadded[tree.Expression]{Before: b, Element: elem, Markers: lp.Markers}
}

// plain reports whether s is blanks only.
func plain(s tree.Space) bool {
	return len(s.Comments) == 0 && !s.HasNewline()
}
