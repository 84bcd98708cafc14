// Package tree defines the immutable, whitespace-preserving syntax tree
// shared by the parser, printer, splicer, reconciler and indentation engine.
//
// Nodes are values produced copy-on-write: code outside the producer that
// built a node never assigns to its fields. Use the With* helpers or the
// Visit walker to derive modified versions.
package tree

import (
	"reflect"

	"github.com/google/uuid"
)

// Kind classifies a Node. A node's kind never changes.
type Kind int

const (
	KindCompilationUnit Kind = iota
	KindBlock
	KindVariableDeclaration
	KindFunctionDeclaration
	KindReturn
	KindIf
	KindElse
	KindSwitch
	KindCase
	KindIdentifier
	KindLiteral
	KindUnary
	KindBinary
	KindAssignment
	KindFieldAccess
	KindMethodInvocation
	KindParentheses
	KindArrayLiteral
	KindEmpty
)

var kindNames = map[Kind]string{
	KindCompilationUnit:     "compilation-unit",
	KindBlock:               "block",
	KindVariableDeclaration: "variable-declaration",
	KindFunctionDeclaration: "function-declaration",
	KindReturn:              "return",
	KindIf:                  "if",
	KindElse:                "else",
	KindSwitch:              "switch",
	KindCase:                "case",
	KindIdentifier:          "identifier",
	KindLiteral:             "literal",
	KindUnary:               "unary",
	KindBinary:              "binary",
	KindAssignment:          "assignment",
	KindFieldAccess:         "field-access",
	KindMethodInvocation:    "method-invocation",
	KindParentheses:         "parentheses",
	KindArrayLiteral:        "array-literal",
	KindEmpty:               "empty",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind returns the Kind whose String form is s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Type is a resolved semantic type attached by an external resolver.
// The tree algorithms never inspect or compare it.
type Type struct {
	FullyQualifiedName string
}

// Meta holds the fields every node carries: an identity token that is
// independent of structure, the leading whitespace, and the markers.
type Meta struct {
	ID      uuid.UUID
	Prefix  Space
	Markers Markers
}

func (m Meta) meta() Meta { return m }

// NewMeta returns Meta with a fresh identity token.
func NewMeta(prefix Space) Meta {
	return Meta{ID: uuid.New(), Prefix: prefix}
}

// Node is implemented by every tree variant in this package.
type Node interface {
	Kind() Kind
	meta() Meta
	withMeta(Meta) Node
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	isStatement()
}

// Expression is a node that produces a value. Every expression may also
// stand in a statement position.
type Expression interface {
	Statement
	isExpression()
}

// ID returns the identity token of n.
func ID(n Node) uuid.UUID { return n.meta().ID }

// PrefixOf returns the leading space of n.
func PrefixOf(n Node) Space { return n.meta().Prefix }

// MarkersOf returns the markers of n.
func MarkersOf(n Node) Markers { return n.meta().Markers }

// WithPrefix returns a copy of n whose leading space is s. n is returned
// unchanged when its prefix already equals s.
func WithPrefix[N Node](n N, s Space) N {
	m := n.meta()
	if m.Prefix.Equal(s) {
		return n
	}
	m.Prefix = s
	return n.withMeta(m).(N)
}

// WithMarkers returns a copy of n carrying markers.
func WithMarkers[N Node](n N, markers Markers) N {
	m := n.meta()
	m.Markers = markers
	return n.withMeta(m).(N)
}

// WithNewID returns a copy of n with a fresh identity token.
func WithNewID[N Node](n N) N {
	m := n.meta()
	m.ID = uuid.New()
	return n.withMeta(m).(N)
}

// IsNil reports whether n is absent: a nil interface or a typed nil pointer.
func IsNil(n any) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// LeftPadded is a value preceded by a Space, such as an operator or the
// "=" of an initializer.
type LeftPadded[T any] struct {
	Before  Space
	Element T
	Markers Markers
}

// WithBefore returns a copy of p whose Before is s.
func (p *LeftPadded[T]) WithBefore(s Space) *LeftPadded[T] {
	c := *p
	c.Before = s
	return &c
}

// WithElement returns a copy of p holding e.
func (p *LeftPadded[T]) WithElement(e T) *LeftPadded[T] {
	c := *p
	c.Element = e
	return &c
}

// RightPadded is a value followed by a Space, such as a statement before
// its ";" or a list element before its ",".
type RightPadded[T any] struct {
	Element T
	After   Space
	Markers Markers
}

// Pad wraps e with an empty trailing space.
func Pad[T any](e T) *RightPadded[T] {
	return &RightPadded[T]{Element: e}
}

// WithAfter returns a copy of p whose After is s.
func (p *RightPadded[T]) WithAfter(s Space) *RightPadded[T] {
	c := *p
	c.After = s
	return &c
}

// WithElement returns a copy of p holding e.
func (p *RightPadded[T]) WithElement(e T) *RightPadded[T] {
	c := *p
	c.Element = e
	return &c
}

// Container is a delimited list: Before is the space preceding the opening
// delimiter, each element carries the space up to its separator.
type Container[T any] struct {
	Before   Space
	Elements []*RightPadded[T]
	Markers  Markers
}

// Values returns the unwrapped elements.
func (c *Container[T]) Values() []T {
	out := make([]T, len(c.Elements))
	for i, e := range c.Elements {
		out[i] = e.Element
	}
	return out
}

// WithElements returns a copy of c holding elems.
func (c *Container[T]) WithElements(elems []*RightPadded[T]) *Container[T] {
	cp := *c
	cp.Elements = elems
	return &cp
}
