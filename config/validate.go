// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validClusters = map[string]bool{
	"mainnet-beta": true,
	"devnet":       true,
	"testnet":      true,
	"localnet":     true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
// ProgramID and Mint may be empty; when set they must be base58 keys.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if !validClusters[cfg.Cluster] {
		return ErrInvalidCluster
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	for name, key := range map[string]string{"program_id": cfg.ProgramID, "mint": cfg.Mint} {
		if key == "" {
			continue
		}
		if _, err := solana.PublicKeyFromBase58(key); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidKey, name, err)
		}
	}

	seen := make(map[string]bool, len(cfg.Routes))
	for i, r := range cfg.Routes {
		if err := validateRoute(r); err != nil {
			return fmt.Errorf("%w: routes[%d]: %w", ErrInvalidRoute, i, err)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: routes[%d]: duplicate name %q", ErrInvalidRoute, i, r.Name)
		}
		seen[r.Name] = true
	}

	return nil
}

// validateRoute checks the fields required by the route's kind.
func validateRoute(r RouteConfig) error {
	if r.Name == "" {
		return fmt.Errorf("name is empty")
	}
	switch r.Kind {
	case KindUnavailable:
		return nil
	case KindConstantProduct:
		if r.FeeBps > 10_000 {
			return fmt.Errorf("fee_bps %d exceeds 10000", r.FeeBps)
		}
	case KindFixedRate:
		if r.Denominator == 0 {
			return fmt.Errorf("denominator is zero")
		}
	default:
		return fmt.Errorf("unknown kind %q", r.Kind)
	}
	if _, err := solana.PublicKeyFromBase58(r.Venue); err != nil {
		return fmt.Errorf("venue: %w", err)
	}
	return nil
}
