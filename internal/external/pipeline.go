package external

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/splicefmt/internal/formatter"
	"github.com/donaldgifford/splicefmt/internal/reconcile"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Parser turns formatted text back into a tree.
type Parser interface {
	Parse(ctx context.Context, text, path string) (*tree.CompilationUnit, error)
}

// Pipeline prints a tree, formats the text externally, parses the output
// and reconciles its whitespace onto the tree.
type Pipeline struct {
	Formatter Formatter
	Parser    Parser
	Options   Options
}

// Format returns root with the external formatter's layout. When target is
// non-nil only target's subtree takes the new layout.
//
// If the formatted tree does not have root's shape, the formatted tree is
// returned instead and reconciled is false.
func (p *Pipeline) Format(ctx context.Context, root *tree.CompilationUnit, target tree.Node) (out *tree.CompilationUnit, reconciled bool, err error) {
	text, err := p.Formatter.Format(ctx, formatter.Write(root), p.Options)
	if err != nil {
		return nil, false, err
	}

	formatted, err := p.Parser.Parse(ctx, text, root.Path)
	if err != nil {
		return nil, false, fmt.Errorf("parsing external formatter output: %w", err)
	}

	result, ok := reconcile.Reconcile(root, formatted, target)
	if !ok {
		slog.Debug("external formatter changed tree shape, using its output",
			"path", root.Path,
		)
		return formatted, false, nil
	}
	return result.(*tree.CompilationUnit), true, nil
}
