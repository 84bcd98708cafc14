package parser

import (
	"strings"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// tokenKind classifies a scanned token.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokKeyword
	tokNumber
	tokString
	tokPunct
)

// keywords are reserved words that never scan as identifiers.
var keywords = map[string]bool{
	"let":      true,
	"const":    true,
	"var":      true,
	"function": true,
	"return":   true,
	"if":       true,
	"else":     true,
	"switch":   true,
	"case":     true,
	"default":  true,
	"true":     true,
	"false":    true,
	"null":     true,
}

// punctuators, longest first so "===" wins over "==" and "=".
var punctuators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||",
	"(", ")", "{", "}", "[", "]", ";", ",", ".", ":",
	"=", "+", "-", "*", "/", "%", "<", ">", "!",
}

// token is a significant token together with the Space that precedes it.
type token struct {
	kind   tokenKind
	text   string
	prefix tree.Space
	line   int
	col    int
}

// scanner splits source text into tokens, attaching whitespace and
// comments to the token that follows them.
type scanner struct {
	path string
	src  string
	pos  int
	line int
	col  int
}

func newScanner(path, src string) *scanner {
	return &scanner{path: path, src: src, line: 1, col: 1}
}

func (s *scanner) scanAll() []token {
	var toks []token
	for {
		t := s.scan()
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks
		}
	}
}

func (s *scanner) advance(n int) {
	for _, r := range s.src[s.pos : s.pos+n] {
		if r == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
	s.pos += n
}

func (s *scanner) fail(format string, args ...any) {
	panic(newError(s.path, s.line, s.col, format, args...))
}

// whitespace consumes a run of blanks and line breaks.
func (s *scanner) whitespace() string {
	start := s.pos
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.advance(1)
		default:
			return s.src[start:s.pos]
		}
	}
	return s.src[start:s.pos]
}

// comment consumes one comment, or returns false if none starts here.
func (s *scanner) comment() (string, bool) {
	rest := s.src[s.pos:]
	switch {
	case strings.HasPrefix(rest, "//"):
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			end = len(rest)
		}
		s.advance(end)
		return rest[:end], true
	case strings.HasPrefix(rest, "/*"):
		end := strings.Index(rest[2:], "*/")
		if end < 0 {
			s.fail("unterminated block comment")
		}
		n := end + 4
		s.advance(n)
		return rest[:n], true
	}
	return "", false
}

func (s *scanner) space() tree.Space {
	sp := tree.Space{Whitespace: s.whitespace()}
	for {
		text, ok := s.comment()
		if !ok {
			return sp
		}
		sp.Comments = append(sp.Comments, tree.Comment{Text: text, Suffix: s.whitespace()})
	}
}

func (s *scanner) scan() token {
	prefix := s.space()
	t := token{prefix: prefix, line: s.line, col: s.col}
	if s.pos >= len(s.src) {
		t.kind = tokEOF
		return t
	}

	start := s.pos
	c := s.src[s.pos]
	switch {
	case isIdentStart(c):
		for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
			s.advance(1)
		}
		t.text = s.src[start:s.pos]
		t.kind = tokIdent
		if keywords[t.text] {
			t.kind = tokKeyword
		}

	case isDigit(c):
		for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '.') {
			s.advance(1)
		}
		t.text = s.src[start:s.pos]
		t.kind = tokNumber

	case c == '"' || c == '\'':
		s.advance(1)
		for {
			if s.pos >= len(s.src) || s.src[s.pos] == '\n' {
				s.fail("unterminated string literal")
			}
			ch := s.src[s.pos]
			if ch == '\\' && s.pos+1 < len(s.src) {
				s.advance(2)
				continue
			}
			s.advance(1)
			if ch == c {
				break
			}
		}
		t.text = s.src[start:s.pos]
		t.kind = tokString

	default:
		for _, p := range punctuators {
			if strings.HasPrefix(s.src[s.pos:], p) {
				s.advance(len(p))
				t.text = p
				t.kind = tokPunct
				return t
			}
		}
		s.fail("unexpected character %q", c)
	}
	return t
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
