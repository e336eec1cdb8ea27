// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Route kinds.
const (
	KindConstantProduct = "constant_product"
	KindFixedRate       = "fixed_rate"
	KindUnavailable     = "unavailable"
)

// RouteConfig describes one exchange route. Routes are tried in file order.
type RouteConfig struct {
	Name        string `toml:"name"`
	Kind        string `toml:"kind"`
	Venue       string `toml:"venue"` // pool or counterparty public key
	FeeBps      uint16 `toml:"fee_bps,omitempty"`
	Numerator   uint64 `toml:"numerator,omitempty"`
	Denominator uint64 `toml:"denominator,omitempty"`
}

// Config holds the settings of the taxreward command.
type Config struct {
	DataDir   string        `toml:"data_dir"`
	LogLevel  string        `toml:"log_level"`
	Cluster   string        `toml:"cluster"`
	ProgramID string        `toml:"program_id"`
	Mint      string        `toml:"mint"`
	Routes    []RouteConfig `toml:"routes"`
}

// DefaultDataDir returns ~/.taxreward, or .taxreward when the home
// directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taxreward"
	}
	return filepath.Join(home, ".taxreward")
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
		Cluster:  "localnet",
	}
}

// ConfigPath returns the configuration file path inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.toml")
}

// DBPath returns the ledger database path inside dataDir.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "ledger.db")
}

// LoadConfig reads a TOML file. Keys missing from the file keep their
// default values; unknown keys are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path as TOML, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString("# taxreward configuration\n\n"); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
