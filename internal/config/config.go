// Package config loads the list of generation jobs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "boilergen.yaml"
	EnvPath     = "BOILERGEN_CONFIG"

	KindColors = "colors"
	KindStyles = "styles"
)

var ErrInvalid = errors.New("invalid config")

type Job struct {
	Kind   string `yaml:"kind"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// colors
	ValidateColors bool `yaml:"validate_colors,omitempty"`

	// styles
	PrefixWidth *int `yaml:"prefix_width,omitempty"`
	SuffixWidth *int `yaml:"suffix_width,omitempty"`
}

type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// Default returns the job list used when no config file exists: the
// color table and style setters, read from and written to the working
// directory.
func Default() *Config {
	return &Config{Jobs: []Job{
		{Kind: KindColors, Input: "colors.txt", Output: "colors_result.txt"},
		{Kind: KindStyles, Input: "styles_source.txt", Output: "styles_output.txt"},
	}}
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// ResolvePath picks the config file: the explicit flag value, then
// BOILERGEN_CONFIG (a .env file in the working directory is honoured), then
// DefaultPath. explicit reports whether the flag or the environment named
// the file, in which case it must exist.
func ResolvePath(flagPath string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	_ = godotenv.Load()
	if p := os.Getenv(EnvPath); p != "" {
		return p, true
	}
	return DefaultPath, false
}

// Load reads path. A missing file yields Default unless required is set.
func Load(path string, required bool) (*Config, error) {
	full, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", full, err)
	}
	for i := range cfg.Jobs {
		j := &cfg.Jobs[i]
		if j.Input, err = ExpandPath(j.Input); err != nil {
			return nil, err
		}
		if j.Output, err = ExpandPath(j.Output); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", full, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalid)
	}
	for i, j := range c.Jobs {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}
	return nil
}

func (j Job) Validate() error {
	switch j.Kind {
	case KindColors, KindStyles:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalid, j.Kind)
	}
	if j.Input == "" || j.Output == "" {
		return fmt.Errorf("%w: input and output are required", ErrInvalid)
	}
	if filepath.Clean(j.Input) == filepath.Clean(j.Output) {
		return fmt.Errorf("%w: input and output are the same file", ErrInvalid)
	}
	if (j.PrefixWidth != nil && *j.PrefixWidth < 0) || (j.SuffixWidth != nil && *j.SuffixWidth < 0) {
		return fmt.Errorf("%w: negative width", ErrInvalid)
	}
	return nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	full, err := ExpandPath(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
