package format

import (
	"strings"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// CommentSpacing ensures a space after "//" in line comments.
type CommentSpacing struct{}

// Name returns the config key for this rule.
func (*CommentSpacing) Name() string {
	return "space_after_comment"
}

// Format normalizes spacing after "//" in every line comment.
func (*CommentSpacing) Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit {
	if !cfg.SpaceAfterComment {
		return cu
	}
	return mapSpaces(cu, func(s tree.Space, _ tree.SpaceLoc) tree.Space {
		var out []tree.Comment
		for i, c := range s.Comments {
			if !shouldNormalize(c) {
				continue
			}
			if out == nil {
				out = append([]tree.Comment(nil), s.Comments...)
			}
			out[i].Text = "// " + c.Text[2:]
		}
		if out == nil {
			return s
		}
		return tree.Space{Whitespace: s.Whitespace, Comments: out}
	})
}

// shouldNormalize returns true if the comment should have its spacing fixed.
// Skips: block comments, empty comments, "///" directives, "//#" and "//!"
// pragmas, and comments that already start with a blank.
func shouldNormalize(c tree.Comment) bool {
	if c.Multiline() || len(c.Text) <= 2 {
		return false
	}
	return !strings.ContainsRune(" \t/#!", rune(c.Text[2]))
}
