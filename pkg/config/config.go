// Package config implements loading of evalml settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'evalml.config'.
func tracer() tracing.Trace {
	return tracing.Select("evalml.config")
}

// File names searched by Load.
const (
	ProjectFile = ".evalml.yaml"
	UserDir     = ".evalml"
	UserFile    = "config.yaml"
)

// Accepted setting values.
var (
	Formats    = []string{"text", "tree", "json"}
	Languages  = []string{"auto", "ml1", "ml2"}
	ParenModes = []string{"minimal", "full"}
	Turnstiles = []string{"|-", "⊢"}
)

// Config holds the effective settings.
type Config struct {
	Indent    int    `yaml:"indent"`
	Turnstile string `yaml:"turnstile"`
	Parens    string `yaml:"parens"`
	Format    string `yaml:"format"`
	Language  string `yaml:"language"`
	MaxDepth  int    `yaml:"maxDepth"`
}

// Error wraps a diagnostic for configuration errors.
type Error struct {
	Diag diagnostics.Diagnostic
}

func (e *Error) Error() string {
	return e.Diag.Message
}

func configError(path, msg string) error {
	if path != "" {
		msg = path + ": " + msg
	}
	return &Error{Diag: diagnostics.MakeDiag(diagnostics.EConfig, msg, nil, "see 'evalml help output'")}
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Indent:    4,
		Turnstile: "|-",
		Parens:    "minimal",
		Format:    "text",
		Language:  "auto",
		MaxDepth:  0,
	}
}

// Load loads settings for projectDir.
// Precedence: project (.evalml.yaml) → user (~/.evalml/config.yaml) → defaults.
// It also returns the path of the file used, or "" for the defaults.
func Load(projectDir string) (*Config, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return LoadFrom(projectDir, home)
}

// LoadFrom is Load with an explicit home directory; an empty homeDir skips
// the user file.
func LoadFrom(projectDir, homeDir string) (*Config, string, error) {
	candidates := []string{filepath.Join(projectDir, ProjectFile)}
	if homeDir != "" {
		candidates = append(candidates, filepath.Join(homeDir, UserDir, UserFile))
	}

	for _, path := range candidates {
		cfg, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			tracer().Errorf("config %s: %v", path, err)
			return nil, path, err
		}
		tracer().Infof("using config %s", path)
		return cfg, path, nil
	}

	tracer().Debugf("no config file found, using defaults")
	return Default(), "", nil
}

// LoadFile reads a single YAML config file. Missing keys keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			return nil, configError(path, ce.Diag.Message)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML settings on top of the defaults and validates them.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, configError("", fmt.Sprintf("invalid YAML: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting against its accepted values.
func (c *Config) Validate() error {
	if c.Indent < 0 {
		return configError("", fmt.Sprintf("indent must not be negative, got %d", c.Indent))
	}
	if c.MaxDepth < 0 {
		return configError("", fmt.Sprintf("maxDepth must not be negative, got %d", c.MaxDepth))
	}
	checks := []struct {
		key, value string
		allowed    []string
	}{
		{"turnstile", c.Turnstile, Turnstiles},
		{"parens", c.Parens, ParenModes},
		{"format", c.Format, Formats},
		{"language", c.Language, Languages},
	}
	for _, ch := range checks {
		if !slices.Contains(ch.allowed, ch.value) {
			return configError("", fmt.Sprintf("%s must be one of %q, got %q", ch.key, ch.allowed, ch.value))
		}
	}
	return nil
}

// YAML renders the settings as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
