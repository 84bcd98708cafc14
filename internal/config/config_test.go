package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	f := cfg.Formatter
	assert.Equal(t, IndentSpace, f.IndentStyle)
	assert.Equal(t, 2, f.IndentWidth)
	assert.Equal(t, 1, f.MaxBlankLines)
	assert.True(t, f.InsertFinalNewline)
	assert.True(t, f.TrimTrailingWhitespace)
	assert.Equal(t, "space", f.AssignmentSpacing)
	assert.False(t, f.AlignAssignments)
	assert.True(t, f.SpaceAfterComment)
	assert.Equal(t, []string{"binary"}, f.AlignChains)

	e := cfg.External
	assert.False(t, e.Enabled())
	assert.Equal(t, "double", e.Quote)
	assert.Equal(t, "all", e.TrailingComma)
	assert.Equal(t, 80, e.LineWidth)
	assert.Equal(t, 10*time.Second, e.TimeoutDuration())
}

func TestIndentUnit(t *testing.T) {
	tests := []struct {
		style string
		width int
		want  string
	}{
		{IndentSpace, 2, "  "},
		{IndentSpace, 4, "    "},
		{IndentSpace, 0, "  "},
		{IndentTab, 8, "\t"},
	}
	for _, tt := range tests {
		f := FormatterConfig{IndentStyle: tt.style, IndentWidth: tt.width}
		assert.Equal(t, tt.want, f.IndentUnit(), "%s/%d", tt.style, tt.width)
	}
}

func TestTimeoutDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, (&ExternalConfig{Timeout: "3s"}).TimeoutDuration())
	assert.Equal(t, 10*time.Second, (&ExternalConfig{Timeout: "soon"}).TimeoutDuration())
	assert.Equal(t, 10*time.Second, (&ExternalConfig{Timeout: "-1s"}).TimeoutDuration())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.yml", `formatter:
  indent_width: 4
  align_chains: []
external:
  command: [prettier, --stdin-filepath, x.js]
  quote: single
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Formatter.IndentWidth)
	assert.Empty(t, cfg.Formatter.AlignChains)
	assert.Equal(t, []string{"prettier", "--stdin-filepath", "x.js"}, cfg.External.Command)
	assert.True(t, cfg.External.Enabled())
	assert.Equal(t, "single", cfg.External.Quote)

	// Unset keys keep their defaults.
	assert.Equal(t, 1, cfg.Formatter.MaxBlankLines)
	assert.Equal(t, "all", cfg.External.TrailingComma)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "splicefmt.toml", `[formatter]
indent_style = "tab"
max_blank_lines = 2

[external]
timeout = "30s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, IndentTab, cfg.Formatter.IndentStyle)
	assert.Equal(t, "\t", cfg.Formatter.IndentUnit())
	assert.Equal(t, 2, cfg.Formatter.MaxBlankLines)
	assert.Equal(t, 30*time.Second, cfg.External.TimeoutDuration())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yml"))
	assert.ErrorContains(t, err, "config file not found")

	_, err = Load(writeFile(t, dir, "bad.yml", "formatter: [\n"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(writeFile(t, dir, "bad.toml", "formatter = \n"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(writeFile(t, dir, "invalid.yml", "formatter:\n  indent_style: wide\n"))
	assert.ErrorContains(t, err, "indent_style")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"indent width", func(c *Config) { c.Formatter.IndentWidth = 0 }, "indent_width"},
		{"assignment spacing", func(c *Config) { c.Formatter.AssignmentSpacing = "tight" }, "assignment_spacing"},
		{"align chains", func(c *Config) { c.Formatter.AlignChains = []string{"loop"} }, "align_chains"},
		{"quote", func(c *Config) { c.External.Quote = "backtick" }, "quote"},
		{"trailing comma", func(c *Config) { c.External.TrailingComma = "some" }, "trailing_comma"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	tab := DefaultConfig()
	tab.Formatter.IndentStyle = IndentTab
	tab.Formatter.IndentWidth = 0
	assert.NoError(t, tab.Validate())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Discover(dir))

	hidden := writeFile(t, dir, ".splicefmt.yaml", "")
	assert.Equal(t, hidden, Discover(dir))

	visible := writeFile(t, dir, "splicefmt.toml", "")
	assert.Equal(t, visible, Discover(dir))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "splicefmt configuration", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "formatter")
	assert.Contains(t, props, "external")
}
