// Package config defines the configuration types and defaults for splicefmt.
package config

import (
	"strings"
	"time"
)

// Indent styles.
const (
	IndentSpace = "space"
	IndentTab   = "tab"
)

// Config is the top-level configuration.
type Config struct {
	Formatter FormatterConfig `yaml:"formatter" toml:"formatter" json:"formatter"`
	External  ExternalConfig  `yaml:"external" toml:"external" json:"external"`
}

// FormatterConfig holds the settings of the built-in format rules.
type FormatterConfig struct {
	IndentStyle            string   `yaml:"indent_style" toml:"indent_style" json:"indent_style" jsonschema:"enum=space,enum=tab"`
	IndentWidth            int      `yaml:"indent_width" toml:"indent_width" json:"indent_width" jsonschema:"minimum=1"`
	MaxBlankLines          int      `yaml:"max_blank_lines" toml:"max_blank_lines" json:"max_blank_lines"`
	InsertFinalNewline     bool     `yaml:"insert_final_newline" toml:"insert_final_newline" json:"insert_final_newline"`
	TrimTrailingWhitespace bool     `yaml:"trim_trailing_whitespace" toml:"trim_trailing_whitespace" json:"trim_trailing_whitespace"`
	AssignmentSpacing      string   `yaml:"assignment_spacing" toml:"assignment_spacing" json:"assignment_spacing" jsonschema:"enum=space,enum=preserve"`
	AlignAssignments       bool     `yaml:"align_assignments" toml:"align_assignments" json:"align_assignments"`
	SpaceAfterComment      bool     `yaml:"space_after_comment" toml:"space_after_comment" json:"space_after_comment"`
	AlignChains            []string `yaml:"align_chains" toml:"align_chains" json:"align_chains"`
}

// ExternalConfig configures the external formatter whose layout is
// reconciled back onto the tree. An empty Command disables it.
type ExternalConfig struct {
	Command       []string `yaml:"command" toml:"command" json:"command,omitempty"`
	Quote         string   `yaml:"quote" toml:"quote" json:"quote" jsonschema:"enum=double,enum=single"`
	TrailingComma string   `yaml:"trailing_comma" toml:"trailing_comma" json:"trailing_comma" jsonschema:"enum=all,enum=es5,enum=none"`
	LineWidth     int      `yaml:"line_width" toml:"line_width" json:"line_width"`
	Timeout       string   `yaml:"timeout" toml:"timeout" json:"timeout"`
}

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			IndentStyle:            IndentSpace,
			IndentWidth:            2,
			MaxBlankLines:          1,
			InsertFinalNewline:     true,
			TrimTrailingWhitespace: true,
			AssignmentSpacing:      "space",
			AlignAssignments:       false,
			SpaceAfterComment:      true,
			AlignChains:            []string{"binary"},
		},
		External: ExternalConfig{
			Quote:         "double",
			TrailingComma: "all",
			LineWidth:     80,
			Timeout:       "10s",
		},
	}
}

// IndentUnit returns the string for one level of indentation.
func (f *FormatterConfig) IndentUnit() string {
	if f.IndentStyle == IndentTab {
		return "\t"
	}
	width := f.IndentWidth
	if width <= 0 {
		width = 2
	}
	return strings.Repeat(" ", width)
}

// TimeoutDuration parses Timeout, falling back to ten seconds.
func (e *ExternalConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(e.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Enabled reports whether an external formatter command is configured.
func (e *ExternalConfig) Enabled() bool {
	return len(e.Command) > 0
}
