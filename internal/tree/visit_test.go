package tree_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/splicefmt/internal/formatter"
	"github.com/donaldgifford/splicefmt/internal/parser"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

const program = `function f(a, b) {
  // add
  let s = a + b;
  return s;
}
`

func parse(t *testing.T) *tree.CompilationUnit {
	t.Helper()
	cu, err := parser.Parse(program, "f.js")
	require.NoError(t, err)
	return cu
}

func TestVisitIdentitySharesTree(t *testing.T) {
	cu := parse(t)
	out := tree.VisitAs(tree.BaseVisitor{}, cu, nil)
	assert.Same(t, cu, out)
}

// renamer renames identifiers in PostVisit.
type renamer struct {
	tree.BaseVisitor
	from, to string
}

func (r renamer) PostVisit(n tree.Node, _ *tree.Cursor) tree.Node {
	if id, ok := n.(*tree.Identifier); ok && id.Name == r.from {
		c := *id
		c.Name = r.to
		return &c
	}
	return n
}

func TestVisitRebuildsChangedPath(t *testing.T) {
	cu := parse(t)
	out := tree.VisitAs(renamer{from: "s", to: "sum"}, cu, nil)

	assert.Equal(t, strings.ReplaceAll(program, " s", " sum"), formatter.Write(out))
	assert.Equal(t, program, formatter.Write(cu), "input must not change")

	before := cu.Statements[0].Element.(*tree.FunctionDeclaration)
	after := out.Statements[0].Element.(*tree.FunctionDeclaration)
	assert.NotSame(t, before, after)
	assert.Same(t, before.Parameters, after.Parameters, "unchanged subtrees are shared")
	assert.Equal(t, tree.ID(before), tree.ID(after))
}

// spaceCounter counts spaces by location and collapses comments away.
type spaceCounter struct {
	tree.BaseVisitor
	seen map[tree.SpaceLoc]int
}

func (s *spaceCounter) VisitSpace(sp tree.Space, loc tree.SpaceLoc, _ *tree.Cursor) tree.Space {
	s.seen[loc]++
	return sp.WithoutComments()
}

func TestVisitSpaceLocations(t *testing.T) {
	v := &spaceCounter{seen: map[tree.SpaceLoc]int{}}
	out := tree.VisitAs(v, parse(t), nil)

	assert.Equal(t, 1, v.seen[tree.LocEOF])
	assert.Equal(t, 1, v.seen[tree.LocBlockEnd])
	assert.Positive(t, v.seen[tree.LocPrefix])
	assert.Positive(t, v.seen[tree.LocBefore])
	assert.Positive(t, v.seen[tree.LocAfter])
	assert.NotContains(t, formatter.Write(out), "// add")
}

// skipper never descends into blocks and records what it entered.
type skipper struct {
	tree.BaseVisitor
	kinds []tree.Kind
}

func (s *skipper) PreVisit(n tree.Node, _ *tree.Cursor) (tree.Node, bool) {
	s.kinds = append(s.kinds, n.Kind())
	return n, n.Kind() != tree.KindBlock
}

func TestVisitPreVisitSkipsSubtree(t *testing.T) {
	v := &skipper{}
	tree.VisitAs(v, parse(t), nil)

	assert.Contains(t, v.kinds, tree.KindBlock)
	assert.NotContains(t, v.kinds, tree.KindVariableDeclaration)
	assert.NotContains(t, v.kinds, tree.KindReturn)
}

// parentRecorder records the kind of each identifier's nearest statement.
type parentRecorder struct {
	tree.BaseVisitor
	owners []tree.Kind
}

func (p *parentRecorder) PreVisit(n tree.Node, c *tree.Cursor) (tree.Node, bool) {
	if _, ok := n.(*tree.Identifier); ok {
		owner, found := c.Parent().NearestNode(func(n tree.Node) bool {
			return n.Kind() == tree.KindVariableDeclaration || n.Kind() == tree.KindReturn
		})
		if found {
			o, _ := owner.Node()
			p.owners = append(p.owners, o.Kind())
		}
	}
	return n, true
}

func TestVisitCursorChain(t *testing.T) {
	v := &parentRecorder{}
	tree.VisitAs(v, parse(t), nil)

	// s, a, b inside the declaration; s inside the return.
	assert.Equal(t, []tree.Kind{
		tree.KindVariableDeclaration,
		tree.KindVariableDeclaration,
		tree.KindVariableDeclaration,
		tree.KindReturn,
	}, v.owners)
}

func TestWithPrefix(t *testing.T) {
	id := &tree.Identifier{Meta: tree.NewMeta(tree.SingleSpace), Name: "x"}
	assert.Same(t, id, tree.WithPrefix(id, tree.SingleSpace))

	moved := tree.WithPrefix(id, tree.Format("\n"))
	assert.NotSame(t, id, moved)
	assert.Equal(t, tree.ID(id), tree.ID(moved))
	assert.Equal(t, " ", id.Prefix.Whitespace)

	fresh := tree.WithNewID(id)
	assert.NotEqual(t, tree.ID(id), tree.ID(fresh))
	assert.True(t, tree.IsNil((*tree.Identifier)(nil)))
	assert.False(t, tree.IsNil(id))
}
