package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/formatter"
	"github.com/donaldgifford/splicefmt/internal/parser"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

func defaultCfg() *config.FormatterConfig {
	return &config.DefaultConfig().Formatter
}

func parse(t *testing.T, src string) *tree.CompilationUnit {
	t.Helper()
	cu, err := parser.Parse(src, "test.js")
	require.NoError(t, err)
	return cu
}

// apply runs rule over src and checks that the input tree is untouched.
func apply(t *testing.T, rule formatter.FormatRule, cfg *config.FormatterConfig, src string) string {
	t.Helper()
	cu := parse(t, src)
	out := rule.Format(cu, cfg)
	require.Equal(t, src, formatter.Write(cu), "rule modified its input")
	return formatter.Write(out)
}
