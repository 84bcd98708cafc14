package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrailingWhitespace(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"trailing spaces", "let x = 1;   \nfoo();\n", "let x = 1;\nfoo();\n"},
		{"trailing tab", "foo();\t\n", "foo();\n"},
		{"line comment", "// note   \nfoo();\n", "// note\nfoo();\n"},
		{"block comment lines", "/* a  \n b */\nfoo();\n", "/* a\n b */\nfoo();\n"},
		{"blank lines inside blocks", "if (x) {\n  a();\n    \n  b();\n}\n", "if (x) {\n  a();\n\n  b();\n}\n"},
		{"end of file", "foo();\n  ", "foo();\n"},
		{"no trailing", "foo();\n", "foo();\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(t, &TrailingWhitespace{}, defaultCfg(), tt.src))
		})
	}
}

func TestTrailingWhitespaceDisabled(t *testing.T) {
	cfg := defaultCfg()
	cfg.TrimTrailingWhitespace = false

	src := "// comment   \nfoo();  \n"
	assert.Equal(t, src, apply(t, &TrailingWhitespace{}, cfg, src))
}

func TestTrailingWhitespaceSharesCleanTree(t *testing.T) {
	cu := parse(t, "a();\nb();   \n")
	out := (&TrailingWhitespace{}).Format(cu, defaultCfg())
	assert.Same(t, cu.Statements[0], out.Statements[0])
	assert.NotSame(t, cu, out)

	clean := parse(t, "a();\n")
	assert.Same(t, clean, (&TrailingWhitespace{}).Format(clean, defaultCfg()))
}
