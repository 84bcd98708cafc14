// Package external runs a third-party formatter over a tree and
// reconciles its layout back onto the original.
package external

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Quote styles.
const (
	QuoteDouble = "double"
	QuoteSingle = "single"
)

// Trailing comma policies.
const (
	TrailingCommaAll  = "all"
	TrailingCommaES5  = "es5"
	TrailingCommaNone = "none"
)

// Options are the layout settings handed to an external formatter.
type Options struct {
	IndentWidth   int
	UseTabs       bool
	Quote         string
	TrailingComma string
	LineWidth     int
}

// DefaultOptions returns two-space indentation, double quotes, trailing
// commas everywhere and an 80 column line width.
func DefaultOptions() Options {
	return Options{
		IndentWidth:   2,
		Quote:         QuoteDouble,
		TrailingComma: TrailingCommaAll,
		LineWidth:     80,
	}
}

// Flags renders o as command line flags in the style of prettier.
func (o Options) Flags() []string {
	flags := []string{"--tab-width", strconv.Itoa(o.IndentWidth)}
	if o.UseTabs {
		flags = append(flags, "--use-tabs")
	}
	if o.Quote == QuoteSingle {
		flags = append(flags, "--single-quote")
	}
	if o.TrailingComma != "" {
		flags = append(flags, "--trailing-comma", o.TrailingComma)
	}
	if o.LineWidth > 0 {
		flags = append(flags, "--print-width", strconv.Itoa(o.LineWidth))
	}
	return flags
}

// Formatter re-flows the whitespace of source text. It must not change
// anything else.
type Formatter interface {
	Format(ctx context.Context, text string, opts Options) (string, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(ctx context.Context, text string, opts Options) (string, error)

// Format calls f.
func (f FormatterFunc) Format(ctx context.Context, text string, opts Options) (string, error) {
	return f(ctx, text, opts)
}

// ErrCommand wraps failures of the external command.
var ErrCommand = errors.New("external formatter failed")

// Command is a Formatter that pipes source text through an executable.
type Command struct {
	Name string
	Args []string

	// PassOptions appends Options.Flags to Args.
	PassOptions bool

	// Timeout bounds one run. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// NewCommand returns a Command for argv, whose first element is the
// executable.
func NewCommand(argv []string, timeout time.Duration) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("%w: no command configured", ErrCommand)
	}
	return &Command{Name: argv[0], Args: argv[1:], PassOptions: true, Timeout: timeout}, nil
}

// Format runs the command with text on stdin and returns its stdout.
func (c *Command) Format(ctx context.Context, text string, opts Options) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append([]string(nil), c.Args...)
	if c.PassOptions {
		args = append(args, opts.Flags()...)
	}

	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdin = strings.NewReader(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrCommand, c.Name, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s: %s", ErrCommand, c.Name, msg)
	}
	return stdout.String(), nil
}
