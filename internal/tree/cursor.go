package tree

// Cursor is a traversal handle: the value being visited, its parent cursor,
// and a side channel of messages that descendants can read. A Cursor lives
// for one traversal only.
//
// Values are Nodes, or a Padding while a wrapper is being visited.
type Cursor struct {
	parent   *Cursor
	value    any
	messages map[any]any
}

// NewCursor returns a cursor for value below parent. parent may be nil.
func NewCursor(parent *Cursor, value any) *Cursor {
	return &Cursor{parent: parent, value: value}
}

// RootCursor returns a parentless cursor with no value, used to anchor
// per-run messages.
func RootCursor() *Cursor {
	return &Cursor{value: rootValue{}}
}

type rootValue struct{}

// Parent returns the parent cursor, or nil at the root.
func (c *Cursor) Parent() *Cursor { return c.parent }

// Value returns the visited value.
func (c *Cursor) Value() any { return c.value }

// Node returns the visited value as a Node, if it is one.
func (c *Cursor) Node() (Node, bool) {
	n, ok := c.value.(Node)
	return n, ok
}

// Root returns the outermost cursor of the chain.
func (c *Cursor) Root() *Cursor {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// PutMessage publishes value under key for this cursor and its descendants.
func (c *Cursor) PutMessage(key, value any) {
	if c.messages == nil {
		c.messages = make(map[any]any)
	}
	c.messages[key] = value
}

// Message returns the value published under key on this cursor only.
func (c *Cursor) Message(key any) (any, bool) {
	v, ok := c.messages[key]
	return v, ok
}

// NearestMessage searches this cursor and then its ancestors for key.
// Siblings and unrelated branches are never consulted.
func (c *Cursor) NearestMessage(key any) (any, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.messages[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// NearestMessageOf is the typed form of Cursor.NearestMessage.
func NearestMessageOf[T any](c *Cursor, key any) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	v, ok := c.NearestMessage(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Path returns the cursors from the root down to c.
func (c *Cursor) Path() []*Cursor {
	var path []*Cursor
	for cur := c; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// NearestNode returns the closest cursor at or above c whose value is a
// Node accepted by match.
func (c *Cursor) NearestNode(match func(Node) bool) (*Cursor, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if n, ok := cur.value.(Node); ok && match(n) {
			return cur, true
		}
	}
	return nil, false
}
