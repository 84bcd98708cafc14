package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

const (
	placeholderPrefix = "__p"
	placeholderSuffix = "__"
)

// Substitutions binds the placeholders of a template to parameters.
//
// A placeholder is "#{pattern}". An empty pattern, or one containing
// "any()", takes the next positional parameter. Any other pattern is a
// name (the text before ":" when there is one); the first occurrence of a
// name takes the next positional parameter and later occurrences reuse it.
//
// Parameters are tree.Node fragments, which are written as synthesized
// identifiers and restored by Unsubstitute, or scalars (string, bool,
// numbers, fmt.Stringer) written verbatim.
type Substitutions struct {
	code       string
	parameters []any
}

// NewSubstitutions returns the substitutions of parameters into code.
func NewSubstitutions(code string, parameters ...any) *Substitutions {
	return &Substitutions{code: code, parameters: parameters}
}

// Substitute returns the template text with every placeholder replaced.
func (s *Substitutions) Substitute() (string, error) {
	var (
		b     strings.Builder
		next  int
		names = make(map[string]int)
	)

	code := s.code
	for {
		start := strings.Index(code, "#{")
		if start < 0 {
			b.WriteString(code)
			return b.String(), nil
		}
		b.WriteString(code[:start])

		end, err := matchBrace(code, start+2)
		if err != nil {
			return "", fmt.Errorf("%w at offset %d", err, len(s.code)-len(code)+start)
		}
		pattern := strings.TrimSpace(code[start+2 : end])
		code = code[end+1:]

		var index int
		if pattern == "" || strings.Contains(pattern, "any()") {
			index = next
			next++
		} else {
			name := pattern
			if i := strings.IndexByte(pattern, ':'); i >= 0 {
				name = strings.TrimSpace(pattern[:i])
			}
			bound, ok := names[name]
			if !ok {
				bound = next
				names[name] = bound
				next++
			}
			index = bound
		}

		text, err := s.parameterText(index)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
}

// matchBrace returns the index of the "}" closing a placeholder whose
// pattern starts at from.
func matchBrace(code string, from int) (int, error) {
	depth := 1
	for i := from; i < len(code); i++ {
		switch code[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, ErrUnmatchedBrace
}

func (s *Substitutions) parameterText(index int) (string, error) {
	if index >= len(s.parameters) {
		return "", fmt.Errorf("%w: placeholder %d, %d given", ErrMissingParameter, index, len(s.parameters))
	}
	if tree.IsNil(s.parameters[index]) {
		return "null", nil
	}
	switch p := s.parameters[index].(type) {
	case tree.Node:
		return placeholderPrefix + strconv.Itoa(index) + placeholderSuffix, nil
	case string:
		return p, nil
	case fmt.Stringer:
		return p.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(p), nil
	default:
		return "", fmt.Errorf("template parameter %d: unsupported type %T", index, p)
	}
}

// parameterIndex reports the parameter a synthesized identifier stands for.
func parameterIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, placeholderPrefix)
	if !ok {
		return 0, false
	}
	digits, ok := strings.CutSuffix(rest, placeholderSuffix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Unsubstitute replaces every synthesized identifier in n with a copy of
// its tree parameter, carrying the identifier's prefix.
func (s *Substitutions) Unsubstitute(n tree.Node) (tree.Node, error) {
	v := &unsubstituter{params: s.parameters}
	out := tree.Visit(v, n, nil)
	if v.err != nil {
		return n, v.err
	}
	return out, nil
}

type unsubstituter struct {
	tree.BaseVisitor
	params []any
	err    error
}

func (v *unsubstituter) PreVisit(n tree.Node, _ *tree.Cursor) (tree.Node, bool) {
	return n, v.err == nil
}

func (v *unsubstituter) PostVisit(n tree.Node, c *tree.Cursor) tree.Node {
	id, ok := n.(*tree.Identifier)
	if !ok {
		return n
	}
	index, ok := parameterIndex(id.Name)
	if !ok || index >= len(v.params) {
		return n
	}
	param, ok := v.params[index].(tree.Node)
	if !ok || tree.IsNil(param) {
		return n
	}

	if _, ok := param.(tree.Statement); !ok {
		v.err = fmt.Errorf("%w: %s parameter %d cannot be spliced", ErrParameterPosition, param.Kind(), index)
		return n
	}
	if kind, ok := slotKind(c); ok {
		if param.Kind() != kind {
			v.err = fmt.Errorf("%w: %s parameter %d in a %s slot", ErrParameterPosition, param.Kind(), index, kind)
			return n
		}
	} else if !tree.IsExpression(param) && !statementSlot(c) {
		v.err = fmt.Errorf("%w: %s parameter %d used as an expression", ErrParameterPosition, param.Kind(), index)
		return n
	}
	return tree.WithPrefix(tree.Copy(param), id.Prefix)
}
