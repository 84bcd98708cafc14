package tree

import (
	"slices"
	"strings"
)

// Comment is a comment attached to a Space. Text holds the full comment
// including its delimiters ("// x" or "/* x */"); Suffix is the whitespace
// that follows it up to the next comment or token.
type Comment struct {
	Text   string
	Suffix string
}

// Multiline reports whether the comment is a block comment.
func (c Comment) Multiline() bool {
	return strings.HasPrefix(c.Text, "/*")
}

// Space is the formatting between two significant tokens: leading
// whitespace followed by zero or more comments, each with its own suffix.
type Space struct {
	Whitespace string
	Comments   []Comment
}

// EmptySpace is the zero-width Space.
var EmptySpace = Space{}

// SingleSpace is a Space holding one blank.
var SingleSpace = Space{Whitespace: " "}

// Format returns a Space holding only whitespace.
func Format(ws string) Space {
	return Space{Whitespace: ws}
}

// IsEmpty reports whether the Space prints as nothing.
func (s Space) IsEmpty() bool {
	return s.Whitespace == "" && len(s.Comments) == 0
}

// String returns the source text of the Space.
func (s Space) String() string {
	if len(s.Comments) == 0 {
		return s.Whitespace
	}
	var b strings.Builder
	b.WriteString(s.Whitespace)
	for _, c := range s.Comments {
		b.WriteString(c.Text)
		b.WriteString(c.Suffix)
	}
	return b.String()
}

// Equal reports whether two spaces print identically.
func (s Space) Equal(o Space) bool {
	return s.Whitespace == o.Whitespace && slices.Equal(s.Comments, o.Comments)
}

// HasNewline reports whether any whitespace segment of the Space breaks a line.
func (s Space) HasNewline() bool {
	if strings.Contains(s.Whitespace, "\n") {
		return true
	}
	for _, c := range s.Comments {
		if strings.Contains(c.Suffix, "\n") {
			return true
		}
	}
	return false
}

// Indent returns the text after the last newline of the Space, taken from
// the last whitespace segment that breaks a line, or "" when none does.
// Comments following that newline on the same line do not change it.
func (s Space) Indent() string {
	for i := len(s.Comments) - 1; i >= 0; i-- {
		if j := strings.LastIndexByte(s.Comments[i].Suffix, '\n'); j >= 0 {
			return s.Comments[i].Suffix[j+1:]
		}
	}
	if j := strings.LastIndexByte(s.Whitespace, '\n'); j >= 0 {
		return s.Whitespace[j+1:]
	}
	return ""
}

// Reindent replaces the tail after the last newline of every whitespace
// segment that breaks a line with indent. Comment text is left untouched.
func (s Space) Reindent(indent string) Space {
	out := Space{Whitespace: reindent(s.Whitespace, indent)}
	if len(s.Comments) > 0 {
		out.Comments = make([]Comment, len(s.Comments))
		for i, c := range s.Comments {
			out.Comments[i] = Comment{Text: c.Text, Suffix: reindent(c.Suffix, indent)}
		}
	}
	return out
}

// WithoutComments drops the comments, keeping the whitespace that would
// have followed the final comment so the next token keeps its line.
func (s Space) WithoutComments() Space {
	if len(s.Comments) == 0 {
		return s
	}
	return Space{Whitespace: s.Comments[len(s.Comments)-1].Suffix}
}

// MapWhitespace applies fn to every whitespace segment.
func (s Space) MapWhitespace(fn func(string) string) Space {
	out := Space{Whitespace: fn(s.Whitespace)}
	if len(s.Comments) > 0 {
		out.Comments = make([]Comment, len(s.Comments))
		for i, c := range s.Comments {
			out.Comments[i] = Comment{Text: c.Text, Suffix: fn(c.Suffix)}
		}
	}
	return out
}

func reindent(ws, indent string) string {
	i := strings.LastIndexByte(ws, '\n')
	if i < 0 {
		return ws
	}
	return ws[:i+1] + indent
}

// MarkerKind identifies a marker.
type MarkerKind int

const (
	// MarkerSemicolon records an explicit ";" terminating a statement.
	MarkerSemicolon MarkerKind = iota
	// MarkerTrailingComma records a "," after the last container element.
	// Its Suffix is the space between the comma and the closing delimiter.
	MarkerTrailingComma
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerSemicolon:
		return "semicolon"
	case MarkerTrailingComma:
		return "trailing-comma"
	default:
		return "unknown"
	}
}

// Marker is a piece of metadata attached to a node or wrapper.
type Marker struct {
	Kind   MarkerKind
	Suffix Space
}

// Markers is the metadata sidecar of a node or wrapper.
type Markers []Marker

// Find returns the first marker of kind k.
func (m Markers) Find(k MarkerKind) (Marker, bool) {
	for _, mk := range m {
		if mk.Kind == k {
			return mk, true
		}
	}
	return Marker{}, false
}

// Has reports whether a marker of kind k is present.
func (m Markers) Has(k MarkerKind) bool {
	_, ok := m.Find(k)
	return ok
}

// With returns a copy of m with mk replacing any marker of the same kind.
func (m Markers) With(mk Marker) Markers {
	out := make(Markers, 0, len(m)+1)
	replaced := false
	for _, cur := range m {
		if cur.Kind == mk.Kind {
			out = append(out, mk)
			replaced = true
			continue
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, mk)
	}
	return out
}

// Without returns a copy of m with every marker of kind k removed.
func (m Markers) Without(k MarkerKind) Markers {
	var out Markers
	for _, cur := range m {
		if cur.Kind != k {
			out = append(out, cur)
		}
	}
	return out
}

// Equal reports whether both sidecars hold the same markers in order.
func (m Markers) Equal(o Markers) bool {
	return slices.EqualFunc(m, o, func(a, b Marker) bool {
		return a.Kind == b.Kind && a.Suffix.Equal(b.Suffix)
	})
}
