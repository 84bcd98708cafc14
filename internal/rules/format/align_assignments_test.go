package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignAssignments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "basic group",
			src:  "let a = 1;\nlet bcd = 2;\nconst e = 3;\n",
			want: "let a   = 1;\nlet bcd = 2;\nconst e = 3;\n",
		},
		{
			name: "blank line splits groups",
			src:  "let a = 1;\nlet bb = 2;\n\nlet ccc = 3;\nlet d = 4;\n",
			want: "let a  = 1;\nlet bb = 2;\n\nlet ccc = 3;\nlet d   = 4;\n",
		},
		{
			name: "comment splits groups",
			src:  "let a = 1;\n// c\nlet bb = 2;\n",
			want: "let a = 1;\n// c\nlet bb = 2;\n",
		},
		{
			name: "other statements split groups",
			src:  "let a = 1;\nf();\nlet bb = 2;\nlet c = 3;\n",
			want: "let a = 1;\nf();\nlet bb = 2;\nlet c  = 3;\n",
		},
		{
			name: "over padding normalized",
			src:  "let a        = 1;\nlet bb     = 2;\n",
			want: "let a  = 1;\nlet bb = 2;\n",
		},
		{
			name: "inside blocks",
			src:  "function f() {\n  let a = 1;\n  let bb = 2;\n}\n",
			want: "function f() {\n  let a  = 1;\n  let bb = 2;\n}\n",
		},
		{
			name: "single declaration",
			src:  "let a   = 1;\n",
			want: "let a   = 1;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCfg()
			cfg.AlignAssignments = true
			assert.Equal(t, tt.want, apply(t, &AlignAssignments{}, cfg, tt.src))
		})
	}
}

func TestAlignAssignmentsDisabled(t *testing.T) {
	src := "let a = 1;\nlet bcd = 2;\n"
	assert.Equal(t, src, apply(t, &AlignAssignments{}, defaultCfg(), src))
}
