// Package config loads CLI settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/TheusHen/safeid/internal/logger"
	"github.com/TheusHen/safeid/safeid/keystore"
)

const RecordFile = "anmpid.json"

type Config struct {
	Home     string
	Listen   string
	Log      LogConfig
	Keystore keystore.Params
}

type LogConfig struct {
	Level  slog.Level
	Format logger.Format
}

// fileConfig mirrors the YAML layout; pointer fields distinguish unset from zero.
type fileConfig struct {
	Home   string `yaml:"home"`
	Listen string `yaml:"listen"`
	Log    struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Keystore struct {
		Argon2 struct {
			Time      *uint32 `yaml:"time"`
			MemoryKiB *uint32 `yaml:"memoryKiB"`
			Threads   *uint8  `yaml:"threads"`
		} `yaml:"argon2"`
	} `yaml:"keystore"`
}

func Default() Config {
	home := ".safeid"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".safeid")
	}
	return Config{
		Home:     home,
		Listen:   "127.0.0.1:4433",
		Log:      LogConfig{Level: slog.LevelInfo, Format: logger.FormatText},
		Keystore: keystore.DefaultParams(),
	}
}

// Load reads path over the defaults, then applies SAFEID_* overrides.
// An empty path, or a missing file, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			var parsed fileConfig
			if err := yaml.Unmarshal(data, &parsed); err != nil {
				return Config{}, fmt.Errorf("config: %s: %w", path, err)
			}
			if err := merge(&cfg, parsed); err != nil {
				return Config{}, err
			}
		}
	}
	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func merge(dst *Config, src fileConfig) error {
	if src.Home != "" {
		dst.Home = src.Home
	}
	if src.Listen != "" {
		dst.Listen = src.Listen
	}
	if src.Log.Level != "" {
		lvl, ok := logger.ParseLevel(src.Log.Level)
		if !ok {
			return fmt.Errorf("config: unknown log level %q", src.Log.Level)
		}
		dst.Log.Level = lvl
	}
	if src.Log.Format != "" {
		dst.Log.Format = logger.ParseFormat(src.Log.Format)
	}
	a := src.Keystore.Argon2
	if a.Time != nil {
		dst.Keystore.Time = *a.Time
	}
	if a.MemoryKiB != nil {
		dst.Keystore.MemoryKiB = *a.MemoryKiB
	}
	if a.Threads != nil {
		dst.Keystore.Threads = *a.Threads
	}
	return nil
}

// ApplyEnvOverrides lets SAFEID_* variables win over file values.
func ApplyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("SAFEID_HOME"); v != "" {
		cfg.Home = v
	}
	if v := os.Getenv("SAFEID_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("SAFEID_LOG_LEVEL"); v != "" {
		lvl, ok := logger.ParseLevel(v)
		if !ok {
			return fmt.Errorf("config: unknown log level %q", v)
		}
		cfg.Log.Level = lvl
	}
	if v := os.Getenv("SAFEID_LOG_FORMAT"); v != "" {
		cfg.Log.Format = logger.ParseFormat(v)
	}
	if v := os.Getenv("SAFEID_ARGON2_MEMORY_KIB"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("config: SAFEID_ARGON2_MEMORY_KIB: %w", err)
		}
		cfg.Keystore.MemoryKiB = uint32(n)
	}
	return nil
}

// RecordPath is where the CLI keeps its sealed record.
func (c Config) RecordPath() string {
	return filepath.Join(c.Home, RecordFile)
}
