// Package config loads the optional YAML session-defaults file
// (~/.sqlit.yaml by default) the CLI merges its flags on top of.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the session defaults. CLI flags can override NullToken,
// Separator and HistoryFile; Prompt has no flag. A missing file is not
// an error — callers fall back to Default.
type Config struct {
	NullToken   string `yaml:"null_token"`
	Separator   string `yaml:"separator"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

// Default returns the built-in session defaults.
func Default() *Config {
	return &Config{
		NullToken:   "null",
		Separator:   "comma",
		Prompt:      "sqlit> ",
		HistoryFile: "",
	}
}

// Load reads path as YAML into a Config seeded with Default, so an
// incomplete file only overrides the keys it sets. An empty path is
// treated as "no config file" and returns Default unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
