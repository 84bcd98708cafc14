package format

import "github.com/donaldgifford/splicefmt/internal/tree"

// spaceMapper rewrites every Space of a tree with fn.
type spaceMapper struct {
	tree.BaseVisitor
	fn func(s tree.Space, loc tree.SpaceLoc) tree.Space
}

func (m spaceMapper) VisitSpace(s tree.Space, loc tree.SpaceLoc, _ *tree.Cursor) tree.Space {
	return m.fn(s, loc)
}

// mapSpaces returns cu with fn applied to each of its spaces. Untouched
// subtrees are shared with cu.
func mapSpaces(cu *tree.CompilationUnit, fn func(tree.Space, tree.SpaceLoc) tree.Space) *tree.CompilationUnit {
	return tree.VisitAs(spaceMapper{fn: fn}, cu, nil)
}
