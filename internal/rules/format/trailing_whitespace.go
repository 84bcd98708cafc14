// Package format contains individual formatting rule implementations.
package format

import (
	"strings"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// TrailingWhitespace removes trailing spaces and tabs from every line.
type TrailingWhitespace struct{}

// Name returns the config key for this rule.
func (r *TrailingWhitespace) Name() string {
	return "trim_trailing_whitespace"
}

// Format strips blanks before every line break, inside line comments and
// at the end of the file.
func (r *TrailingWhitespace) Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit {
	if !cfg.TrimTrailingWhitespace {
		return cu
	}
	return mapSpaces(cu, trimSpace)
}

func trimSpace(s tree.Space, loc tree.SpaceLoc) tree.Space {
	out := s.MapWhitespace(trimLines)
	for i, c := range out.Comments {
		out.Comments[i].Text = trimComment(c)
	}
	if loc == tree.LocEOF {
		out = trimEnd(out)
	}
	if out.Equal(s) {
		return s
	}
	return out
}

// trimLines trims every line of ws except the last, which is the
// indentation of whatever follows.
func trimLines(ws string) string {
	if !strings.Contains(ws, "\n") {
		return ws
	}
	lines := strings.Split(ws, "\n")
	for i := range lines[:len(lines)-1] {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	return strings.Join(lines, "\n")
}

func trimComment(c tree.Comment) string {
	if !c.Multiline() {
		return strings.TrimRight(c.Text, " \t\r")
	}
	lines := strings.Split(c.Text, "\n")
	for i := range lines[:len(lines)-1] {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	return strings.Join(lines, "\n")
}

// trimEnd drops blanks after the last line break of the file.
func trimEnd(s tree.Space) tree.Space {
	if n := len(s.Comments); n > 0 {
		s.Comments[n-1].Suffix = strings.TrimRight(s.Comments[n-1].Suffix, " \t\r")
		return s
	}
	s.Whitespace = strings.TrimRight(s.Whitespace, " \t\r")
	return s
}
