package parser

import (
	"context"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Func adapts a parse function to the context-aware Parser interfaces
// consumed by the template and external packages.
type Func func(src, path string) (*tree.CompilationUnit, error)

// Parse calls f unless ctx is already done.
func (f Func) Parse(ctx context.Context, text, path string) (*tree.CompilationUnit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f(text, path)
}

// Default parses with this package's Parse.
var Default = Func(Parse)
