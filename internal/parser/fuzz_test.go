package parser

import (
	"testing"

	"github.com/donaldgifford/splicefmt/internal/formatter"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"// comment\n",
		"let x = 1;\n",
		"let x=1\n",
		"const s = 'a\\'b';\n",
		"function f(a, b) {\n  return a + b;\n}\n",
		"if (a && !b) { x(); } else { y(); }\n",
		"switch (x) {\n  case 1:\n    y();\n  default:\n}\n",
		"list.map(f)\n  .filter(g);\n",
		"x = [1, 2,];\n",
		"/* block\n   comment */ z();\n",
		"\n",
		"",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		cu, err := Parse(input, "fuzz.js")
		if err != nil {
			return
		}
		if got := formatter.Write(cu); got != input {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", got, input)
		}
	})
}
