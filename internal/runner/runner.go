// Package runner orchestrates the parse -> splice -> format -> output
// pipeline.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/donaldgifford/splicefmt/internal/config"
	"github.com/donaldgifford/splicefmt/internal/external"
	"github.com/donaldgifford/splicefmt/internal/formatter"
	"github.com/donaldgifford/splicefmt/internal/output"
	"github.com/donaldgifford/splicefmt/internal/parser"
	"github.com/donaldgifford/splicefmt/internal/recipe"
	"github.com/donaldgifford/splicefmt/internal/rules"
	"github.com/donaldgifford/splicefmt/internal/rules/format"
	"github.com/donaldgifford/splicefmt/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitFormatDiff = 1
	ExitError      = 2
)

// stdinName labels standard input in diffs and errors.
const stdinName = "<stdin>"

// Options configures the runner behavior.
type Options struct {
	Files      []string
	Check      bool
	Diff       bool
	External   bool
	Recipe     string
	Watch      bool
	ConfigPath string
	Quiet      bool
	Verbose    bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Formatter replaces the configured external command.
	Formatter external.Formatter
}

// runner holds what every file needs.
type runner struct {
	opts     *Options
	cfg      *config.Config
	out      *output.Printer
	recipe   *recipe.Recipe
	pipeline *external.Pipeline
}

// Run executes the pipeline for every input and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	r, err := newRunner(opts)
	if err != nil {
		r.out.Errorf("%v", err)
		return ExitError
	}

	if len(opts.Files) == 0 {
		if opts.Watch {
			r.out.Errorf("watch mode needs at least one file")
			return ExitError
		}
		return r.runStdin(ctx)
	}

	exitCode := r.runFiles(ctx, opts.Files)
	if opts.Watch {
		if err := r.watch(ctx, opts.Files); err != nil {
			r.out.Errorf("watching: %v", err)
			return ExitError
		}
	}
	return exitCode
}

func newRunner(opts *Options) (*runner, error) {
	r := &runner{opts: opts, out: output.New(opts.Stdout, opts.Stderr)}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return r, err
	}
	r.cfg = cfg

	if opts.Recipe != "" {
		if r.recipe, err = recipe.Load(opts.Recipe); err != nil {
			return r, err
		}
	}

	if opts.External {
		f := opts.Formatter
		if f == nil {
			cmd, err := external.NewCommand(cfg.External.Command, cfg.External.TimeoutDuration())
			if err != nil {
				return r, err
			}
			f = cmd
		}
		r.pipeline = &external.Pipeline{
			Formatter: f,
			Parser:    parser.Default,
			Options:   externalOptions(cfg),
		}
	}
	return r, nil
}

func externalOptions(cfg *config.Config) external.Options {
	return external.Options{
		IndentWidth:   cfg.Formatter.IndentWidth,
		UseTabs:       cfg.Formatter.IndentStyle == config.IndentTab,
		Quote:         cfg.External.Quote,
		TrailingComma: cfg.External.TrailingComma,
		LineWidth:     cfg.External.LineWidth,
	}
}

func (r *runner) runFiles(ctx context.Context, files []string) int {
	exitCode := ExitOK
	for _, path := range files {
		if code := r.runFile(ctx, path); code > exitCode {
			exitCode = code
		}
	}
	return exitCode
}

func (r *runner) runStdin(ctx context.Context) int {
	src, err := io.ReadAll(r.opts.Stdin)
	if err != nil {
		r.out.Errorf("reading stdin: %v", err)
		return ExitError
	}

	input := string(src)
	result, err := r.format(ctx, input, stdinName)
	if err != nil {
		r.out.Errorf("%v", err)
		return ExitError
	}

	switch {
	case r.opts.Check:
		if input != result {
			return ExitFormatDiff
		}
	case r.opts.Diff:
		if d := diff.Unified(stdinName, input, result); d != "" {
			r.out.Diff(d)
			return ExitFormatDiff
		}
	default:
		r.out.Print(result)
	}
	return ExitOK
}

func (r *runner) runFile(ctx context.Context, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		r.out.Errorf("%v", err)
		return ExitError
	}

	input := string(src)
	result, err := r.format(ctx, input, path)
	if err != nil {
		r.out.Errorf("%v", err)
		return ExitError
	}

	if r.opts.Verbose {
		r.out.Notice(path)
	}

	if r.opts.Check {
		if input != result {
			if !r.opts.Quiet {
				r.out.Notice(path)
			}
			return ExitFormatDiff
		}
		return ExitOK
	}

	if r.opts.Diff {
		if d := diff.Unified(path, input, result); d != "" {
			r.out.Diff(d)
			return ExitFormatDiff
		}
		return ExitOK
	}

	// Write mode (default for file args).
	if input == result {
		return ExitOK
	}
	if err := os.WriteFile(path, []byte(result), 0o644); err != nil {
		r.out.Errorf("writing %s: %v", path, err)
		return ExitError
	}
	slog.Debug("formatted file", "path", path)
	return ExitOK
}

// format parses input, applies the recipe, runs the format rules and, when
// enabled, the external formatter.
func (r *runner) format(ctx context.Context, input, path string) (string, error) {
	cu, err := parser.Parse(input, path)
	if err != nil {
		return "", err
	}

	if r.recipe != nil {
		cu, err = r.recipe.Apply(ctx, cu, parser.Default, format.IndentOptions(&r.cfg.Formatter))
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
	}

	cu = formatter.Run(cu, &r.cfg.Formatter, rules.FormatRules())

	if r.pipeline != nil {
		out, reconciled, err := r.pipeline.Format(ctx, cu, nil)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		if !reconciled && !r.opts.Quiet {
			r.out.Notice(path + ": external formatter changed the tree; using its output")
		}
		cu = out
	}
	return formatter.Write(cu), nil
}
