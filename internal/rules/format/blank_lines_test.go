package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlankLines(t *testing.T) {
	tests := []struct {
		name string
		max  int
		src  string
		want string
	}{
		{"within limit", 1, "a();\n\nb();\n", "a();\n\nb();\n"},
		{"collapse to one", 1, "a();\n\n\n\nb();\n", "a();\n\nb();\n"},
		{"collapse to zero", 0, "a();\n\n\nb();\n", "a();\nb();\n"},
		{"keeps indentation", 1, "if (x) {\n  a();\n\n\n  b();\n}\n", "if (x) {\n  a();\n\n  b();\n}\n"},
		{"around comments", 1, "a();\n\n\n// c\n\n\n\nb();\n", "a();\n\n// c\n\nb();\n"},
		{"two allowed", 2, "a();\n\n\n\n\nb();\n", "a();\n\n\nb();\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCfg()
			cfg.MaxBlankLines = tt.max
			assert.Equal(t, tt.want, apply(t, &BlankLines{}, cfg, tt.src))
		})
	}
}

func TestBlankLinesDisabled(t *testing.T) {
	cfg := defaultCfg()
	cfg.MaxBlankLines = -1
	src := "a();\n\n\n\nb();\n"
	assert.Equal(t, src, apply(t, &BlankLines{}, cfg, src))
}
