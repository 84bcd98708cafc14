package recipe

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/splicefmt/internal/formatter"
	"github.com/donaldgifford/splicefmt/internal/template"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Anchor selects a node by kind and, optionally, by its printed source.
// Occurrence counts matches in source order starting at 1; zero means the
// first.
type Anchor struct {
	Kind       string `yaml:"kind"`
	Text       string `yaml:"text,omitempty"`
	Occurrence int    `yaml:"occurrence,omitempty"`
}

// Resolve returns the node of root that a selects.
func (a Anchor) Resolve(root tree.Node) (tree.Node, error) {
	kind, ok := tree.ParseKind(a.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown anchor kind %q", ErrInvalidRecipe, a.Kind)
	}
	want := a.Occurrence
	if want == 0 {
		want = 1
	}

	f := &finder{kind: kind, text: strings.TrimSpace(a.Text), want: want}
	tree.Visit(f, root, nil)
	if f.match == nil {
		return nil, fmt.Errorf("%w: %s", template.ErrAnchorNotFound, a)
	}
	return f.match, nil
}

func (a Anchor) String() string {
	s := a.Kind
	if a.Text != "" {
		s += fmt.Sprintf(" %q", a.Text)
	}
	if a.Occurrence > 1 {
		s += fmt.Sprintf(" #%d", a.Occurrence)
	}
	return s
}

// finder stops descending once it has its match.
type finder struct {
	tree.BaseVisitor

	kind  tree.Kind
	text  string
	want  int
	seen  int
	match tree.Node
}

func (f *finder) PreVisit(n tree.Node, _ *tree.Cursor) (tree.Node, bool) {
	if f.match != nil {
		return n, false
	}
	if n.Kind() == f.kind && (f.text == "" || sourceOf(n) == f.text) {
		f.seen++
		if f.seen == f.want {
			f.match = n
			return n, false
		}
	}
	return n, true
}

// sourceOf prints n without its prefix, with surrounding space trimmed.
func sourceOf(n tree.Node) string {
	return strings.TrimSpace(formatter.Write(tree.WithPrefix(n, tree.Space{})))
}
