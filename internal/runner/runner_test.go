package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/splicefmt/internal/external"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func run(t *testing.T, opts *Options) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts.Stdout, opts.Stderr = &out, &errOut
	code = Run(context.Background(), opts)
	return code, out.String(), errOut.String()
}

func TestRunWritesFiles(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.js", "let x=1;\n")

	code, _, _ := run(t, &Options{Files: []string{path}})
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "let x = 1;\n", readFile(t, path))
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.js", "let x=1;\n")
	good := writeFile(t, dir, "good.js", "let x = 1;\n")

	code, _, stderr := run(t, &Options{Files: []string{bad}, Check: true})
	assert.Equal(t, ExitFormatDiff, code)
	assert.Contains(t, stderr, bad)
	assert.Equal(t, "let x=1;\n", readFile(t, bad))

	code, _, _ = run(t, &Options{Files: []string{good}, Check: true})
	assert.Equal(t, ExitOK, code)

	code, _, stderr = run(t, &Options{Files: []string{bad}, Check: true, Quiet: true})
	assert.Equal(t, ExitFormatDiff, code)
	assert.Empty(t, stderr)

	code, _, _ = run(t, &Options{Files: []string{good, bad}, Check: true})
	assert.Equal(t, ExitFormatDiff, code)
}

func TestRunDiff(t *testing.T) {
	path := writeFile(t, t.TempDir(), "test.js", "let x=1;\n")

	code, stdout, _ := run(t, &Options{Files: []string{path}, Diff: true})
	assert.Equal(t, ExitFormatDiff, code)
	assert.Contains(t, stdout, "-let x=1;\n")
	assert.Contains(t, stdout, "+let x = 1;\n")
}

func TestRunStdin(t *testing.T) {
	code, stdout, _ := run(t, &Options{Stdin: strings.NewReader("if (x) {\ny=1;\n}")})
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "if (x) {\n  y = 1;\n}\n", stdout)

	code, _, _ = run(t, &Options{Stdin: strings.NewReader("let x=1;\n"), Check: true})
	assert.Equal(t, ExitFormatDiff, code)

	code, stdout, _ = run(t, &Options{Stdin: strings.NewReader("let x=1;\n"), Diff: true})
	assert.Equal(t, ExitFormatDiff, code)
	assert.Contains(t, stdout, "--- a/<stdin>")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := run(t, &Options{Files: []string{filepath.Join(dir, "missing.js")}})
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "splicefmt: ")

	broken := writeFile(t, dir, "broken.js", "let = ;\n")
	code, _, stderr = run(t, &Options{Files: []string{broken}})
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, broken+":1:")

	code, _, stderr = run(t, &Options{ConfigPath: filepath.Join(dir, "nope.yml"), Stdin: strings.NewReader("")})
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "config file not found")

	code, _, stderr = run(t, &Options{Watch: true, Stdin: strings.NewReader("")})
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "watch mode")

	code, _, stderr = run(t, &Options{External: true, Stdin: strings.NewReader("")})
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "no command configured")
}

func TestRunRecipe(t *testing.T) {
	dir := t.TempDir()
	recipePath := writeFile(t, dir, "recipe.yaml", `splices:
  - template: "log(#{});"
    parameters: [{literal: 1}]
    anchor: {kind: method-invocation, text: run()}
    location: statement-prefix
    mode: before
`)

	code, stdout, _ := run(t, &Options{
		Recipe: recipePath,
		Stdin:  strings.NewReader("function main() {\n  run();\n}\n"),
	})
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "function main() {\n  log(1);\n  run();\n}\n", stdout)

	code, _, stderr := run(t, &Options{
		Recipe: recipePath,
		Stdin:  strings.NewReader("stop();\n"),
	})
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "anchor not found")
}

func fixed(out string) external.Formatter {
	return external.FormatterFunc(func(context.Context, string, external.Options) (string, error) {
		return out, nil
	})
}

func TestRunExternal(t *testing.T) {
	src := "if (x) {\n  y();\n}\n"

	code, stdout, stderr := run(t, &Options{
		External:  true,
		Formatter: fixed("if (x) {\n    y();\n}\n"),
		Stdin:     strings.NewReader(src),
	})
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "if (x) {\n    y();\n}\n", stdout)
	assert.Empty(t, stderr)

	code, stdout, stderr = run(t, &Options{
		External:  true,
		Formatter: fixed("z();\n"),
		Stdin:     strings.NewReader(src),
	})
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "z();\n", stdout)
	assert.Contains(t, stderr, "external formatter changed the tree")
}

func TestExternalOptions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "splicefmt.yml", "formatter:\n  indent_style: tab\nexternal:\n  quote: single\n  line_width: 100\n")
	r, err := newRunner(&Options{ConfigPath: path, Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	require.NoError(t, err)

	opts := externalOptions(r.cfg)
	assert.True(t, opts.UseTabs)
	assert.Equal(t, "single", opts.Quote)
	assert.Equal(t, 100, opts.LineWidth)
	assert.Equal(t, "all", opts.TrailingComma)
}

// syncBuffer is a bytes.Buffer safe for the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	path := writeFile(t, t.TempDir(), "watched.js", "let a=1;\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stderr := &syncBuffer{}
	done := make(chan int)
	go func() {
		done <- Run(ctx, &Options{Files: []string{path}, Watch: true, Stdout: &syncBuffer{}, Stderr: stderr})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "watching")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "let a = 1;\n", readFile(t, path))

	require.NoError(t, os.WriteFile(path, []byte("let b=2;\n"), 0o644))
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && string(data) == "let b = 2;\n"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, ExitOK, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
