// Package indent rewrites the indentation of a tree.
//
// Every node is given an indent string and an indent kind, published to
// its descendants through cursor messages. Only the tail after the last
// newline of a line-breaking Space is ever rewritten; other whitespace,
// comment text and non-whitespace content are left alone.
package indent

import (
	"slices"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Options controls Format.
type Options struct {
	// Unit is one level of indentation. Empty means two spaces.
	Unit string

	// AlignChains lists the node kinds whose operands stay at one column
	// when the node itself starts on a continuation line.
	AlignChains []tree.Kind

	// StopAfter ends the run once this node has been formatted. Nodes
	// printed after it keep their whitespace.
	StopAfter tree.Node
}

// DefaultOptions returns two-space indentation with aligned binary chains.
func DefaultOptions() Options {
	return Options{Unit: "  ", AlignChains: []tree.Kind{tree.KindBinary}}
}

type indentKind int

const (
	continuation indentKind = iota
	block
	align
)

// frame is what a cursor publishes for its subtree.
type frame struct {
	indent string
	kind   indentKind

	// closer is the indent of a container's closing delimiter.
	closer string
}

type (
	frameKey    struct{}
	stopKey     struct{}
	stopHereKey struct{}
)

// Format re-indents n. parent is the cursor n was reached through, or nil
// when n is the top of its tree; when given, the indentation of the
// ancestors already in the source seeds the computation.
func Format(n tree.Node, parent *tree.Cursor, opts Options) tree.Node {
	if tree.IsNil(n) {
		return n
	}
	if opts.Unit == "" {
		opts.Unit = "  "
	}
	v := &visitor{opts: opts}
	return tree.Visit(v, n, v.seed(parent))
}

type visitor struct {
	opts Options
}

// seed replays the path to parent on a fresh cursor chain, taking each
// ancestor's indent from the source where it has one.
func (v *visitor) seed(parent *tree.Cursor) *tree.Cursor {
	cur := tree.RootCursor()
	if parent == nil {
		return cur
	}
	for _, pc := range parent.Path() {
		switch val := pc.Value().(type) {
		case tree.Node:
			cur = tree.NewCursor(cur, val)
			v.enterNode(val, cur, true)
		case tree.Padding:
			cur = tree.NewCursor(cur, val)
			v.enterPadding(val, cur, true)
		}
	}
	return cur
}

func frameOf(c *tree.Cursor) (frame, bool) {
	return tree.NearestMessageOf[frame](c, frameKey{})
}

func ownFrame(c *tree.Cursor) frame {
	v, _ := c.Message(frameKey{})
	f, _ := v.(frame)
	return f
}

func stopped(c *tree.Cursor) bool {
	_, ok := c.Root().Message(stopKey{})
	return ok
}

// indentFor is the indent of something below f, given whether its own
// leading space breaks the line.
func (v *visitor) indentFor(f frame, broken bool) string {
	switch f.kind {
	case block:
		return f.indent + v.opts.Unit
	case continuation:
		if broken {
			return f.indent + v.opts.Unit
		}
	}
	return f.indent
}

func (v *visitor) enterNode(n tree.Node, c *tree.Cursor, existing bool) {
	parent, ok := frameOf(c.Parent())
	prefix := tree.PrefixOf(n)

	var own string
	switch {
	case existing && prefix.HasNewline():
		own = prefix.Indent()
	case !ok:
		own = ""
	case n.Kind() == tree.KindElse:
		own = parent.indent
	case n.Kind() == tree.KindEmpty && inContainer(c):
		// An empty list's placeholder carries the space before the closer.
		own = parent.closer
	default:
		own = v.indentFor(parent, prefix.HasNewline())
	}
	c.PutMessage(frameKey{}, frame{indent: own, kind: v.kindOf(n, c)})
}

func (v *visitor) kindOf(n tree.Node, c *tree.Cursor) indentKind {
	switch n.Kind() {
	case tree.KindCompilationUnit:
		return align
	case tree.KindBlock, tree.KindCase:
		return block
	}
	if !slices.Contains(v.opts.AlignChains, n.Kind()) {
		return continuation
	}
	if tree.PrefixOf(n).HasNewline() {
		return align
	}
	// A link inside a chain follows the chain's head.
	pc, ok := c.Parent().NearestNode(func(tree.Node) bool { return true })
	if ok {
		if pn, _ := pc.Node(); pn.Kind() == n.Kind() {
			return ownFrame(pc).kind
		}
	}
	return continuation
}

func inContainer(c *tree.Cursor) bool {
	rp := c.Parent()
	if rp == nil || rp.Parent() == nil {
		return false
	}
	p, ok := rp.Parent().Value().(tree.Padding)
	return ok && p.Kind == tree.PaddingContainer
}

func (v *visitor) enterPadding(p tree.Padding, c *tree.Cursor, existing bool) {
	parent, _ := frameOf(c.Parent())
	switch p.Kind {
	case tree.PaddingLeft:
		indent := parent.indent
		if p.Before.HasNewline() {
			switch {
			case existing:
				indent = p.Before.Indent()
			case parent.kind != align:
				indent += v.opts.Unit
			}
		}
		kind := continuation
		if parent.kind == align {
			kind = align
		}
		c.PutMessage(frameKey{}, frame{indent: indent, kind: kind})

	case tree.PaddingContainer:
		indent := parent.indent
		if p.Before.HasNewline() {
			if existing {
				indent = p.Before.Indent()
			} else {
				indent += v.opts.Unit
			}
		}
		c.PutMessage(frameKey{}, frame{indent: indent, kind: continuation, closer: parent.indent})
	}
}

func (v *visitor) PreVisit(n tree.Node, c *tree.Cursor) (tree.Node, bool) {
	if stopped(c) {
		return n, false
	}
	v.enterNode(n, c, false)
	if v.opts.StopAfter != nil && n == v.opts.StopAfter {
		c.PutMessage(stopHereKey{}, true)
	}
	return n, true
}

func (v *visitor) PostVisit(n tree.Node, c *tree.Cursor) tree.Node {
	if prefix := tree.PrefixOf(n); prefix.HasNewline() {
		n = tree.WithPrefix(n, prefix.Reindent(ownFrame(c).indent))
	}
	if _, ok := c.Message(stopHereKey{}); ok {
		c.Root().PutMessage(stopKey{}, true)
	}
	return n
}

func (v *visitor) PreVisitPadding(p tree.Padding, c *tree.Cursor) {
	if stopped(c) {
		return
	}
	v.enterPadding(p, c, false)
}

func (v *visitor) PostVisitPadding(p tree.Padding, c *tree.Cursor) tree.Padding {
	if p.Kind != tree.PaddingContainer || stopped(c) || !p.After.HasNewline() {
		return p
	}
	p.After = p.After.Reindent(ownFrame(c).closer)
	return p
}

func (v *visitor) VisitSpace(s tree.Space, loc tree.SpaceLoc, c *tree.Cursor) tree.Space {
	if !s.HasNewline() || stopped(c) {
		return s
	}
	switch loc {
	case tree.LocBefore, tree.LocBlockEnd, tree.LocEOF:
		return s.Reindent(ownFrame(c).indent)

	case tree.LocAfter:
		f, _ := frameOf(c)
		parent := c.Parent()
		if n, ok := parent.Node(); ok && n.Kind() == tree.KindParentheses {
			return s.Reindent(f.indent)
		}
		if p, ok := parent.Value().(tree.Padding); ok && p.Kind == tree.PaddingContainer {
			return s.Reindent(f.indent)
		}
		return s.Reindent(v.indentFor(f, true))
	}
	// Prefixes are rewritten on exit; marker suffixes and case colons keep
	// their layout.
	return s
}
