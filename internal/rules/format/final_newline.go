package format

import (
	"strings"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// FinalNewline ensures the file ends with exactly one newline.
// Everything after the last token or comment is replaced by a single
// line break.
type FinalNewline struct{}

// Name returns the config key for this rule.
func (r *FinalNewline) Name() string {
	return "insert_final_newline"
}

// Format rewrites the unit's trailing space. Empty files are left alone.
func (r *FinalNewline) Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit {
	if !cfg.InsertFinalNewline {
		return cu
	}
	if len(cu.Statements) == 0 && len(cu.EOF.Comments) == 0 {
		return cu
	}

	eof := cu.EOF
	if n := len(eof.Comments); n > 0 {
		comments := append([]tree.Comment(nil), eof.Comments...)
		comments[n-1].Suffix = finalBreak(comments[n-1].Suffix)
		eof.Comments = comments
	} else {
		eof.Whitespace = finalBreak(eof.Whitespace)
	}
	if eof.Equal(cu.EOF) {
		return cu
	}

	cp := *cu
	cp.EOF = eof
	return &cp
}

// finalBreak keeps the part of ws before its first line break and ends it
// with one newline.
func finalBreak(ws string) string {
	if i := strings.IndexByte(ws, '\n'); i >= 0 {
		ws = ws[:i]
	}
	return strings.TrimRight(ws, " \t\r") + "\n"
}
