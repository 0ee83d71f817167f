// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package netconfig owns the Bittensor network config file: where it lives,
// how it is loaded and saved, and how the network setting is switched.
package netconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Network is the value stored under the "network" key.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"

	// NotSet is reported when the file is missing, unreadable as JSON,
	// or has no network key. Switch never writes it.
	NotSet Network = "Not set"
)

// Networks lists the values Switch accepts, in menu order.
var Networks = []Network{Mainnet, Testnet}

// ErrInvalidNetwork is returned when a network name is not one of Networks.
var ErrInvalidNetwork = errors.New("invalid network")

const (
	// DirName is the per-user Bittensor directory under the home directory.
	DirName = ".bittensor"

	// FileName is the config file inside DirName.
	FileName = "network_config.json"
)

// ParseNetwork validates name against Networks. Matching is exact.
func ParseNetwork(name string) (Network, error) {
	for _, n := range Networks {
		if string(n) == name {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w '%s' (must be %s)", ErrInvalidNetwork, name, NetworkNames())
}

// NetworkNames returns the accepted names joined for messages, e.g. "mainnet, testnet".
func NetworkNames() string {
	names := make([]string, len(Networks))
	for i, n := range Networks {
		names[i] = string(n)
	}
	return strings.Join(names, ", ")
}

// IsValid reports whether n is one of Networks.
func (n Network) IsValid() bool {
	_, err := ParseNetwork(string(n))
	return err == nil
}

func (n Network) String() string {
	return string(n)
}

// DefaultPath returns <home>/.bittensor/network_config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, DirName, FileName), nil
}
