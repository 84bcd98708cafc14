package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

func TestIndentRule(t *testing.T) {
	src := "if (x) {\ny();\n}\n"
	assert.Equal(t, "if (x) {\n  y();\n}\n", apply(t, &Indent{}, defaultCfg(), src))

	cfg := defaultCfg()
	cfg.IndentStyle = "tab"
	assert.Equal(t, "if (x) {\n\ty();\n}\n", apply(t, &Indent{}, cfg, src))
}

func TestIndentOptions(t *testing.T) {
	cfg := defaultCfg()
	cfg.IndentWidth = 4
	cfg.AlignChains = []string{"binary", "nonsense", "method-invocation"}

	opts := IndentOptions(cfg)
	assert.Equal(t, "    ", opts.Unit)
	assert.Equal(t, []tree.Kind{tree.KindBinary, tree.KindMethodInvocation}, opts.AlignChains)
}
