package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corecalc/corecalc/internal/config"
)

// cliConfig is the optional --config file's shape: a handful of knobs the
// reference engine doesn't otherwise expose a flag for.
type cliConfig struct {
	MaxDepth  int    `yaml:"maxDepth"`
	DiskCache string `yaml:"diskCache"` // SQLite file used by `cache stat`/`cache clean` when no path argument is given
	Color     string `yaml:"color"`     // "auto" (default), "always", "never"
}

func defaultCLIConfig() cliConfig {
	return cliConfig{MaxDepth: config.DefaultMaxDepth, Color: "auto"}
}

func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = config.DefaultMaxDepth
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	return cfg, nil
}
