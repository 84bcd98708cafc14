// Package recipe loads YAML splice recipes and applies them to parsed
// files.
//
// Literal parameters are spliced exactly as written in the YAML scalar, so
// a JavaScript string needs its own quotes inside the YAML ones.
//
// A recipe names its anchors by node kind and source text instead of by
// reference, so the same recipe can be applied to many files:
//
//	splices:
//	  - template: "log(#{}, #{});"
//	    parameters:
//	      - literal: '"start"'
//	      - literal: 1.0
//	    anchor:
//	      kind: method-invocation
//	      text: run()
//	    location: statement-prefix
//	    mode: before
package recipe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/splicefmt/internal/indent"
	"github.com/donaldgifford/splicefmt/internal/parser"
	"github.com/donaldgifford/splicefmt/internal/template"
	"github.com/donaldgifford/splicefmt/internal/tree"
)

// ErrInvalidRecipe is returned for a recipe that cannot be applied to any
// file.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Recipe is an ordered list of splices.
type Recipe struct {
	Splices []Splice `yaml:"splices"`
}

// Splice is one template application.
type Splice struct {
	Template   string      `yaml:"template"`
	Parameters []Parameter `yaml:"parameters"`
	Anchor     Anchor      `yaml:"anchor"`
	Location   string      `yaml:"location"`
	Mode       string      `yaml:"mode"`
}

// Parameter is either an expression fragment parsed from Tree or a scalar
// printed verbatim.
type Parameter struct {
	Tree    string  `yaml:"tree,omitempty"`
	Literal Literal `yaml:"literal,omitempty"`
}

// Literal is a scalar kept in its YAML source form: 1.0 stays "1.0".
type Literal struct {
	Source string
	Set    bool
}

// UnmarshalYAML records the scalar text. Sequences and mappings are rejected.
func (l *Literal) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: literal must be a scalar", value.Line)
	}
	l.Source, l.Set = value.Value, true
	return nil
}

// Load reads and validates the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a recipe. Unknown keys are rejected.
func Parse(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var r Recipe
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	for i := range r.Splices {
		if err := r.Splices[i].validate(); err != nil {
			return nil, fmt.Errorf("%w: splice %d: %w", ErrInvalidRecipe, i+1, err)
		}
	}
	return &r, nil
}

func (s *Splice) validate() error {
	if _, err := template.ParseLocation(s.Location); err != nil {
		return err
	}
	if s.Mode != "" {
		if _, err := template.ParseMode(s.Mode); err != nil {
			return err
		}
	}
	if _, ok := tree.ParseKind(s.Anchor.Kind); !ok {
		return fmt.Errorf("unknown anchor kind %q", s.Anchor.Kind)
	}
	if s.Anchor.Occurrence < 0 {
		return fmt.Errorf("anchor occurrence %d is negative", s.Anchor.Occurrence)
	}
	for i, p := range s.Parameters {
		if p.Tree != "" && p.Literal.Set {
			return fmt.Errorf("parameter %d sets both tree and literal", i+1)
		}
	}
	return nil
}

func (s *Splice) coordinates(anchor tree.Node) template.Coordinates {
	// Both already validated.
	loc, _ := template.ParseLocation(s.Location)
	mode := template.Before
	if s.Mode != "" {
		mode, _ = template.ParseMode(s.Mode)
	}
	return template.Coordinates{Anchor: anchor, Location: loc, Mode: mode}
}

func (s *Splice) parameters() ([]any, error) {
	params := make([]any, len(s.Parameters))
	for i, p := range s.Parameters {
		if p.Tree == "" {
			// A null literal never reaches UnmarshalYAML and splices as null.
			if p.Literal.Set {
				params[i] = p.Literal.Source
			}
			continue
		}
		expr, err := parser.ParseExpression(p.Tree)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i+1, err)
		}
		params[i] = expr
	}
	return params, nil
}

// Apply runs every splice against root in order. Each anchor is resolved
// against the tree produced by the splices before it.
func (r *Recipe) Apply(ctx context.Context, root *tree.CompilationUnit, p template.Parser, opts indent.Options) (*tree.CompilationUnit, error) {
	for i := range r.Splices {
		s := &r.Splices[i]

		anchor, err := s.Anchor.Resolve(root)
		if err != nil {
			return nil, fmt.Errorf("splice %d: %w", i+1, err)
		}
		params, err := s.parameters()
		if err != nil {
			return nil, fmt.Errorf("splice %d: %w", i+1, err)
		}

		tmpl := &template.Template{Code: s.Template, Parser: p, Indent: opts}
		out, err := tmpl.Apply(ctx, root, s.coordinates(anchor), params...)
		if err != nil {
			return nil, fmt.Errorf("splice %d: %w", i+1, err)
		}
		root = out.(*tree.CompilationUnit)
		slog.Debug("applied recipe splice", "splice", i+1, "path", root.Path)
	}
	return root, nil
}
