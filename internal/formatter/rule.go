package formatter

import (
	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// FormatRule transforms a compilation unit. Rules are applied in
// registered order.
type FormatRule interface {
	// Name returns the config key for this rule (e.g., "trim_trailing_whitespace").
	Name() string

	// Format receives the unit and config and returns the formatted unit.
	// Rules never mutate the input; they return new nodes where changes
	// are needed and share everything else.
	Format(cu *tree.CompilationUnit, cfg *config.FormatterConfig) *tree.CompilationUnit
}
