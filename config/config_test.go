// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func key(seed byte) string {
	var k solana.PublicKey
	for i := range k {
		k[i] = seed
	}
	return k.String()
}

func sampleConfig() Config {
	return Config{
		DataDir:   "/tmp/test-taxreward",
		LogLevel:  "debug",
		Cluster:   "devnet",
		ProgramID: key(1),
		Mint:      key(2),
		Routes: []RouteConfig{
			{Name: "jupiter", Kind: KindUnavailable},
			{Name: "amm", Kind: KindConstantProduct, Venue: key(3), FeeBps: 30},
			{Name: "otc", Kind: KindFixedRate, Venue: key(4), Numerator: 3, Denominator: 2},
		},
	}
}

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"LogLevel", cfg.LogLevel, "info"},
		{"Cluster", cfg.Cluster, "localnet"},
		{"ProgramID", cfg.ProgramID, ""},
		{"Mint", cfg.Mint, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if cfg.DataDir == "" {
		t.Error("DataDir should not be empty")
	}
	if len(cfg.Routes) != 0 {
		t.Errorf("Routes = %v, want none", cfg.Routes)
	}
}

func TestDefaultDataDir_EndsWith_DotTaxreward(t *testing.T) {
	dir := DefaultDataDir()
	if !strings.HasSuffix(dir, ".taxreward") {
		t.Errorf("DefaultDataDir() = %q, want suffix %q", dir, ".taxreward")
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	original := sampleConfig()

	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
	}
}

func TestSaveConfigCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "config.toml")

	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Config file not created: %v", err)
	}
}

func TestSaveConfig_OutputContainsHeaderAndRoutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveConfig(path, sampleConfig()); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# taxreward configuration") {
		t.Error("saved config should start with the header comment")
	}
	if got := strings.Count(content, "[[routes]]"); got != 3 {
		t.Errorf("saved config has %d [[routes]] tables, want 3", got)
	}
	for _, k := range []string{"data_dir", "log_level", "cluster", "program_id", "mint"} {
		if !strings.Contains(content, k+" = ") {
			t.Errorf("saved config should contain key %q", k)
		}
	}
}

// ---------------------------------------------------------------------------
// LoadConfig tests
// ---------------------------------------------------------------------------

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.toml")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig nonexistent: got %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is = = not toml\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadConfig bad file: got %v, want ErrInvalidConfig", err)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `# only some keys
cluster = "devnet"

[[routes]]
name = "jupiter"
kind = "unavailable"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cluster != "devnet" {
		t.Errorf("Cluster = %q, want %q", cfg.Cluster, "devnet")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
	if len(cfg.Routes) != 1 || cfg.Routes[0].Kind != KindUnavailable {
		t.Errorf("Routes = %+v, want one unavailable route", cfg.Routes)
	}
}

func TestLoadConfigUnknownKeysIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "futurekey = \"futurevalue\"\ncluster = \"testnet\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig with unknown key: %v", err)
	}
	if cfg.Cluster != "testnet" {
		t.Errorf("Cluster = %q, want %q", cfg.Cluster, "testnet")
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfigDefaults(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Errorf("ValidateConfig(DefaultConfig()) = %v, want nil", err)
	}
	if err := ValidateConfig(sampleConfig()); err != nil {
		t.Errorf("ValidateConfig(sampleConfig()) = %v, want nil", err)
	}
}

func TestValidateConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "empty_datadir",
			modify:  func(c *Config) { c.DataDir = "" },
			wantErr: ErrEmptyDataDir,
		},
		{
			name:    "bad_cluster",
			modify:  func(c *Config) { c.Cluster = "regtest" },
			wantErr: ErrInvalidCluster,
		},
		{
			name:    "bad_loglevel",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "bad_program_id",
			modify:  func(c *Config) { c.ProgramID = "not-base58-0OIl" },
			wantErr: ErrInvalidKey,
		},
		{
			name:    "bad_mint",
			modify:  func(c *Config) { c.Mint = "abc" },
			wantErr: ErrInvalidKey,
		},
		{
			name:    "route_without_name",
			modify:  func(c *Config) { c.Routes[0].Name = "" },
			wantErr: ErrInvalidRoute,
		},
		{
			name:    "route_unknown_kind",
			modify:  func(c *Config) { c.Routes[0].Kind = "orderbook" },
			wantErr: ErrInvalidRoute,
		},
		{
			name:    "route_fee_too_high",
			modify:  func(c *Config) { c.Routes[1].FeeBps = 10_001 },
			wantErr: ErrInvalidRoute,
		},
		{
			name:    "route_bad_venue",
			modify:  func(c *Config) { c.Routes[1].Venue = "" },
			wantErr: ErrInvalidRoute,
		},
		{
			name:    "route_zero_denominator",
			modify:  func(c *Config) { c.Routes[2].Denominator = 0 },
			wantErr: ErrInvalidRoute,
		},
		{
			name:    "route_duplicate_name",
			modify:  func(c *Config) { c.Routes[2].Name = "amm" },
			wantErr: ErrInvalidRoute,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := sampleConfig()
			tc.modify(&cfg)
			err := ValidateConfig(cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateConfig: got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateConfigValidClusters(t *testing.T) {
	for _, cluster := range []string{"mainnet-beta", "devnet", "testnet", "localnet"} {
		cfg := DefaultConfig()
		cfg.Cluster = cluster
		if err := ValidateConfig(cfg); err != nil {
			t.Errorf("ValidateConfig with cluster %q: %v", cluster, err)
		}
	}
}

func TestValidateConfig_LogLevelCaseInsensitive(t *testing.T) {
	levels := []string{"INFO", "Debug", "WARN", "Error", "dEbUg"}
	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LogLevel = level
			if err := ValidateConfig(cfg); err != nil {
				t.Errorf("ValidateConfig with LogLevel %q: %v", level, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Path helpers
// ---------------------------------------------------------------------------

func TestConfigPath(t *testing.T) {
	got := ConfigPath("/home/user/.taxreward")
	want := filepath.Join("/home/user/.taxreward", "config.toml")
	if got != want {
		t.Errorf("ConfigPath = %q, want %q", got, want)
	}
}

func TestDBPath(t *testing.T) {
	got := DBPath("/home/user/.taxreward")
	want := filepath.Join("/home/user/.taxreward", "ledger.db")
	if got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}
}
