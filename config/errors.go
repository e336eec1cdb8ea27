// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrInvalidCluster indicates the cluster name is not recognized.
	ErrInvalidCluster = errors.New("config: invalid cluster (must be \"mainnet-beta\", \"devnet\", \"testnet\", or \"localnet\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfig indicates the configuration file is not valid TOML.
	ErrInvalidConfig = errors.New("config: invalid configuration file")

	// ErrInvalidKey indicates a program id or mint that is not a base58 public key.
	ErrInvalidKey = errors.New("config: invalid public key")

	// ErrInvalidRoute indicates a malformed exchange route entry.
	ErrInvalidRoute = errors.New("config: invalid route")
)
