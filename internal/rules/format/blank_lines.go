package format

import (
	"strings"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// BlankLines collapses consecutive blank lines down to the configured maximum.
type BlankLines struct{}

// Name returns the config key for this rule.
func (*BlankLines) Name() string {
	return "max_blank_lines"
}

// Format collapses runs of blank lines to at most cfg.MaxBlankLines in
// every whitespace segment.
func (*BlankLines) Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit {
	if cfg.MaxBlankLines < 0 {
		return cu
	}
	limit := cfg.MaxBlankLines
	return mapSpaces(cu, func(s tree.Space, _ tree.SpaceLoc) tree.Space {
		out := s.MapWhitespace(func(ws string) string { return collapseBlankLines(ws, limit) })
		if out.Equal(s) {
			return s
		}
		return out
	})
}

// collapseBlankLines keeps at most limit empty lines between the text
// before the first line break and the indentation after the last.
func collapseBlankLines(ws string, limit int) string {
	if strings.Count(ws, "\n") <= limit+1 {
		return ws
	}
	first := strings.IndexByte(ws, '\n')
	last := strings.LastIndexByte(ws, '\n')
	return ws[:first] + strings.Repeat("\n", limit+1) + ws[last+1:]
}
