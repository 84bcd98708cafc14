package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// configFileNames is the ordered list of config file names to search for.
var configFileNames = []string{
	"splicefmt.yml",
	"splicefmt.yaml",
	"splicefmt.toml",
	".splicefmt.yml",
	".splicefmt.yaml",
	".splicefmt.toml",
}

// Discover returns the path of the first config file found in dir,
// following the standard search order. It returns an empty string if
// no config file is found.
func Discover(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads and parses a splicefmt config file. If configPath is non-empty,
// that file is loaded directly. Otherwise, Load searches the current working
// directory using Discover. If no config file is found, DefaultConfig is
// returned.
//
// Partial files are supported: any fields not specified retain their
// default values. Files ending in .toml are decoded as TOML, everything
// else as YAML.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		configPath = Discover(wd)
	}

	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	// Start from defaults so missing fields retain non-zero defaults.
	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// Validate reports settings outside their allowed values.
func (c *Config) Validate() error {
	f := c.Formatter
	if f.IndentStyle != IndentSpace && f.IndentStyle != IndentTab {
		return fmt.Errorf("formatter.indent_style must be %q or %q, got %q", IndentSpace, IndentTab, f.IndentStyle)
	}
	if f.IndentStyle == IndentSpace && f.IndentWidth <= 0 {
		return fmt.Errorf("formatter.indent_width must be positive, got %d", f.IndentWidth)
	}
	if f.AssignmentSpacing != "space" && f.AssignmentSpacing != "preserve" {
		return fmt.Errorf("formatter.assignment_spacing must be %q or %q, got %q", "space", "preserve", f.AssignmentSpacing)
	}
	for _, k := range f.AlignChains {
		if _, ok := tree.ParseKind(k); !ok {
			return fmt.Errorf("formatter.align_chains: unknown node kind %q", k)
		}
	}
	switch c.External.Quote {
	case "double", "single":
	default:
		return fmt.Errorf("external.quote must be %q or %q, got %q", "double", "single", c.External.Quote)
	}
	switch c.External.TrailingComma {
	case "all", "es5", "none":
	default:
		return fmt.Errorf("external.trailing_comma must be one of all, es5, none, got %q", c.External.TrailingComma)
	}
	return nil
}

// Schema returns the JSON schema describing the config file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{DoNotReference: true}
	s := r.Reflect(&Config{})
	s.Title = "splicefmt configuration"
	return json.MarshalIndent(s, "", "  ")
}
