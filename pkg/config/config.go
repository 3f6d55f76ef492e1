// Package config loads the construction defaults for vector indexes from a
// YAML file, falling back to built-in defaults when none is given.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables this module's caller doesn't want hardcoded:
// default index construction options and log verbosity.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	HNSW  HNSWDefaults `yaml:"hnsw"`
	IVF   IVFDefaults  `yaml:"ivf_flat"`
}

// LogConfig controls the zap logger built by pkg/logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// HNSWDefaults are the options applied when a CREATE INDEX ... USING hnsw
// statement omits one of them.
type HNSWDefaults struct {
	M              int `yaml:"m"`
	EfConstruction int `yaml:"ef_construction"`
	EfSearch       int `yaml:"ef_search"`
}

// IVFDefaults are the options applied when a CREATE INDEX ... USING
// ivf_flat statement omits one of them.
type IVFDefaults struct {
	Lists      int `yaml:"lists"`
	ProbeLists int `yaml:"probe_lists"`
}

// Default returns built-in defaults, used when no config file is supplied.
func Default() *Config {
	return &Config{
		Log:  LogConfig{Level: "info"},
		HNSW: HNSWDefaults{M: 16, EfConstruction: 200, EfSearch: 50},
		IVF:  IVFDefaults{Lists: 100, ProbeLists: 8},
	}
}

// Load reads and parses a YAML config file, starting from Default() so a
// partial file only overrides the keys it sets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HNSW.M <= 0 || cfg.HNSW.EfConstruction <= 0 || cfg.HNSW.EfSearch <= 0 {
		return fmt.Errorf("hnsw defaults must all be positive")
	}
	if cfg.IVF.Lists <= 0 || cfg.IVF.ProbeLists <= 0 {
		return fmt.Errorf("ivf_flat defaults must all be positive")
	}
	if cfg.IVF.ProbeLists > cfg.IVF.Lists {
		return fmt.Errorf("ivf_flat probe_lists cannot exceed lists")
	}
	return nil
}
