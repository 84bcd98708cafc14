package format

import (
	"log/slog"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/indent"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Indent re-indents every line of the unit by nesting depth.
type Indent struct{}

// Name returns the config key for this rule.
func (*Indent) Name() string {
	return "indent_style"
}

// Format runs the indentation engine over the whole unit.
func (*Indent) Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit {
	return indent.Format(cu, nil, IndentOptions(cfg)).(*tree.CompilationUnit)
}

// IndentOptions converts formatter settings to indentation engine options.
// Unknown chain kinds are skipped.
func IndentOptions(cfg *config.FormatterConfig) indent.Options {
	opts := indent.Options{Unit: cfg.IndentUnit()}
	for _, name := range cfg.AlignChains {
		k, ok := tree.ParseKind(name)
		if !ok {
			slog.Warn("ignoring unknown align_chains kind", "kind", name)
			continue
		}
		opts.AlignChains = append(opts.AlignChains, k)
	}
	return opts
}
