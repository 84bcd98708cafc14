// Package testutil provides shared test helpers for golden file testing.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/splicefmt/pkg/diff"
)

// Update is a flag that, when set, regenerates golden files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// Golden file names inside each case directory.
const (
	InputFile    = "input.js"
	ExpectedFile = "expected.js"
)

// FormatFunc formats one golden input.
type FormatFunc func(t *testing.T, input string) string

// RunGolden runs a single golden file test in the given directory.
// It reads input.js, applies formatFn, and compares against expected.js.
func RunGolden(t *testing.T, dir string, formatFn FormatFunc) {
	t.Helper()

	input, err := os.ReadFile(filepath.Join(dir, InputFile))
	require.NoError(t, err)

	actual := formatFn(t, string(input))

	expectedPath := filepath.Join(dir, ExpectedFile)
	if *Update {
		require.NoError(t, os.WriteFile(expectedPath, []byte(actual), 0o644))
		t.Logf("updated golden file: %s", expectedPath)
		return
	}

	expected, err := os.ReadFile(expectedPath)
	require.NoError(t, err)

	if d := diff.Unified(ExpectedFile, string(expected), actual); d != "" {
		t.Errorf("output mismatch for %s:\n%s", dir, d)
	}
}

// RunGoldenDir runs RunGolden as a subtest for every subdirectory of
// testdataDir.
func RunGoldenDir(t *testing.T, testdataDir string, formatFn FormatFunc) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	require.NoError(t, err)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			RunGolden(t, filepath.Join(testdataDir, entry.Name()), formatFn)
		})
	}
}
