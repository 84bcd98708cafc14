// Package reconcile transplants whitespace from one tree onto another tree
// of the same shape.
//
// The original tree keeps its identity tokens, resolved types and scalar
// content; only Spaces and Markers are taken from the formatted tree. Any
// difference in shape (node kind, list length, a value present on one side
// only) abandons the whole run and the original is returned untouched.
package reconcile

import (
	"fmt"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

type state int

const (
	searching state = iota
	reconciling
	done
)

func (s state) String() string {
	switch s {
	case searching:
		return "searching"
	case reconciling:
		return "reconciling"
	case done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Reconcile returns original with the whitespace and markers of formatted.
// When target is non-nil only target and its descendants are changed;
// target is matched by identity against nodes of original.
//
// The boolean reports whether the two trees had the same shape. When it is
// false the result is original itself.
func Reconcile(original, formatted, target tree.Node) (tree.Node, bool) {
	s := reconciling
	if tree.IsNil(target) {
		target = nil
	} else {
		s = searching
	}
	out, _, ok := reconciler{target: target}.node(original, formatted, s)
	if !ok {
		return original, false
	}
	return out, true
}

type reconciler struct {
	target tree.Node
}

func (r reconciler) node(o, f tree.Node, s state) (tree.Node, state, bool) {
	if tree.IsNil(o) || tree.IsNil(f) {
		return o, s, tree.IsNil(o) && tree.IsNil(f)
	}
	if o.Kind() != f.Kind() {
		return o, s, false
	}
	entered := s == searching && o == r.target
	if entered {
		s = reconciling
	}
	out, s, ok := r.fields(o, f, s)
	if !ok {
		return o, s, false
	}
	if entered {
		s = done
	}
	return out, s, true
}

func visit[T tree.Node](r reconciler, o, f T, s state) (T, state, bool) {
	if tree.IsNil(o) || tree.IsNil(f) {
		return o, s, tree.IsNil(o) && tree.IsNil(f)
	}
	out, s, ok := r.node(o, f, s)
	if !ok {
		return o, s, false
	}
	return out.(T), s, true
}

func same(a, b any) bool { return a == b }

func space(o, f tree.Space, s state) (tree.Space, bool) {
	if s != reconciling || o.Equal(f) {
		return o, false
	}
	return f, true
}

func markers(o, f tree.Markers, s state) (tree.Markers, bool) {
	if s != reconciling || o.Equal(f) {
		return o, false
	}
	return f, true
}

// meta takes the prefix and markers; the identity token stays.
func meta(o, f tree.Meta, s state) (tree.Meta, bool) {
	p, pc := space(o.Prefix, f.Prefix, s)
	m, mc := markers(o.Markers, f.Markers, s)
	if !pc && !mc {
		return o, false
	}
	o.Prefix, o.Markers = p, m
	return o, true
}

func leftPadded[T tree.Node](r reconciler, o, f *tree.LeftPadded[T], s state) (*tree.LeftPadded[T], state, bool) {
	if o == nil || f == nil {
		return o, s, o == nil && f == nil
	}
	before, bc := space(o.Before, f.Before, s)
	elem, s, ok := visit(r, o.Element, f.Element, s)
	if !ok {
		return o, s, false
	}
	mk, mc := markers(o.Markers, f.Markers, s)
	if !bc && !mc && same(elem, o.Element) {
		return o, s, true
	}
	return &tree.LeftPadded[T]{Before: before, Element: elem, Markers: mk}, s, true
}

// operator reconciles a padded token whose value is a scalar.
func operator(o, f *tree.LeftPadded[string], s state) (*tree.LeftPadded[string], bool) {
	if o == nil || f == nil {
		return o, o == nil && f == nil
	}
	before, bc := space(o.Before, f.Before, s)
	mk, mc := markers(o.Markers, f.Markers, s)
	if !bc && !mc {
		return o, true
	}
	return &tree.LeftPadded[string]{Before: before, Element: o.Element, Markers: mk}, true
}

func rightPadded[T tree.Node](r reconciler, o, f *tree.RightPadded[T], s state) (*tree.RightPadded[T], state, bool) {
	if o == nil || f == nil {
		return o, s, o == nil && f == nil
	}
	elem, s, ok := visit(r, o.Element, f.Element, s)
	if !ok {
		return o, s, false
	}
	after, ac := space(o.After, f.After, s)
	mk, mc := markers(o.Markers, f.Markers, s)
	if !ac && !mc && same(elem, o.Element) {
		return o, s, true
	}
	return &tree.RightPadded[T]{Element: elem, After: after, Markers: mk}, s, true
}

// rightPaddedList returns o itself when no element changed.
func rightPaddedList[T tree.Node](r reconciler, o, f []*tree.RightPadded[T], s state) ([]*tree.RightPadded[T], state, bool) {
	if len(o) != len(f) {
		return o, s, false
	}
	var out []*tree.RightPadded[T]
	for i := range o {
		var (
			p  *tree.RightPadded[T]
			ok bool
		)
		p, s, ok = rightPadded(r, o[i], f[i], s)
		if !ok {
			return o, s, false
		}
		if p == o[i] {
			continue
		}
		if out == nil {
			out = make([]*tree.RightPadded[T], len(o))
			copy(out, o)
		}
		out[i] = p
	}
	if out == nil {
		return o, s, true
	}
	return out, s, true
}

func container[T tree.Node](r reconciler, o, f *tree.Container[T], s state) (*tree.Container[T], state, bool) {
	if o == nil || f == nil {
		return o, s, o == nil && f == nil
	}
	before, bc := space(o.Before, f.Before, s)
	elems, s, ok := rightPaddedList(r, o.Elements, f.Elements, s)
	if !ok {
		return o, s, false
	}
	mk, mc := markers(o.Markers, f.Markers, s)
	if !bc && !mc && sameList(elems, o.Elements) {
		return o, s, true
	}
	return &tree.Container[T]{Before: before, Elements: elems, Markers: mk}, s, true
}

func sameList[T any](a, b []*tree.RightPadded[T]) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
