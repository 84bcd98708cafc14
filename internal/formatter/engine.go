package formatter

import (
	"log/slog"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Run applies each formatting rule in order, piping the output of one
// as input to the next.
func Run(cu *tree.CompilationUnit, cfg *config.FormatterConfig, rules []FormatRule) *tree.CompilationUnit {
	result := cu
	for _, rule := range rules {
		next := rule.Format(result, cfg)
		if next != result {
			slog.Debug("format rule changed tree", "rule", rule.Name(), "path", cu.Path)
		}
		result = next
	}
	return result
}
