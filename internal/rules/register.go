package rules

import (
	"github.com/donaldgifford/splicefmt/internal/rules/format"
)

func init() {
	// Line-level cleanup first, then spacing inside statements, then
	// indentation, which only rewrites the text after line breaks.
	RegisterFormatRule(&format.TrailingWhitespace{})
	RegisterFormatRule(&format.FinalNewline{})
	RegisterFormatRule(&format.BlankLines{})
	RegisterFormatRule(&format.AssignmentSpacing{})
	RegisterFormatRule(&format.AlignAssignments{})
	RegisterFormatRule(&format.CommentSpacing{})
	RegisterFormatRule(&format.Indent{})
}
