package template

import "github.com/donaldgifford/splicefmt/internal/tree"

// slotKind reports the kind a node at c must have when it sits in a field
// that holds one specific node type, such as a declaration's name or an
// if's condition. ok is false for fields typed as Expression or Statement.
func slotKind(c *tree.Cursor) (kind tree.Kind, ok bool) {
	parent := c.Parent()
	if parent == nil {
		return 0, false
	}
	cur, _ := c.Node()
	if n, isNode := parent.Node(); isNode {
		switch n.(type) {
		case *tree.VariableDeclaration, *tree.MethodInvocation:
			return tree.KindIdentifier, true
		case *tree.FunctionDeclaration:
			if cur != nil && cur.Kind() == tree.KindBlock {
				return tree.KindBlock, true
			}
			return tree.KindIdentifier, true
		case *tree.If:
			if cur != nil && cur.Kind() == tree.KindElse {
				return tree.KindElse, true
			}
			return tree.KindParentheses, true
		case *tree.Switch:
			if cur != nil && cur.Kind() == tree.KindBlock {
				return tree.KindBlock, true
			}
			return tree.KindParentheses, true
		}
		return 0, false
	}
	p, isPadding := parent.Value().(tree.Padding)
	if !isPadding || p.Kind != tree.PaddingLeft || parent.Parent() == nil {
		return 0, false
	}
	if n, isNode := parent.Parent().Node(); isNode && n.Kind() == tree.KindFieldAccess {
		return tree.KindIdentifier, true
	}
	return 0, false
}

// statementSlot reports whether the node at c sits in a statement list or
// a statement body, where non-expression statements are allowed.
func statementSlot(c *tree.Cursor) bool {
	parent := c.Parent()
	if parent == nil {
		return true
	}
	p, ok := parent.Value().(tree.Padding)
	if !ok || p.Kind != tree.PaddingRight || parent.Parent() == nil {
		return false
	}
	n, ok := parent.Parent().Node()
	if !ok {
		return false
	}
	switch n.Kind() {
	case tree.KindCompilationUnit, tree.KindBlock, tree.KindCase, tree.KindIf, tree.KindElse:
		return true
	}
	return false
}
