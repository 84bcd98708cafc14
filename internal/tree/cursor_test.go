package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type msgKey struct{}

func TestCursorMessages(t *testing.T) {
	root := RootCursor()
	block := NewCursor(root, &Block{})
	left := NewCursor(block, &Identifier{Name: "a"})
	right := NewCursor(block, &Identifier{Name: "b"})

	root.PutMessage(msgKey{}, "root")
	left.PutMessage(msgKey{}, "left")

	v, ok := right.NearestMessage(msgKey{})
	require.True(t, ok)
	assert.Equal(t, "root", v, "siblings are never consulted")

	s, ok := NearestMessageOf[string](left, msgKey{})
	require.True(t, ok)
	assert.Equal(t, "left", s)

	_, ok = block.Message(msgKey{})
	assert.False(t, ok)

	_, ok = NearestMessageOf[int](left, msgKey{})
	assert.False(t, ok)

	_, ok = NearestMessageOf[string](nil, msgKey{})
	assert.False(t, ok)
}

func TestCursorNavigation(t *testing.T) {
	root := RootCursor()
	fn := &FunctionDeclaration{Name: &Identifier{Name: "f"}}
	fnCur := NewCursor(root, fn)
	blockCur := NewCursor(fnCur, &Block{})
	leaf := NewCursor(blockCur, &Identifier{Name: "x"})

	assert.Same(t, root, leaf.Root())
	assert.Equal(t, []*Cursor{root, fnCur, blockCur, leaf}, leaf.Path())

	found, ok := leaf.NearestNode(func(n Node) bool { return n.Kind() == KindFunctionDeclaration })
	require.True(t, ok)
	assert.Same(t, fnCur, found)

	_, ok = leaf.NearestNode(func(n Node) bool { return n.Kind() == KindSwitch })
	assert.False(t, ok)

	_, ok = root.Node()
	assert.False(t, ok)
	n, ok := fnCur.Node()
	require.True(t, ok)
	assert.Same(t, fn, n)
	assert.Nil(t, root.Parent())
}
