// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// btswitch switches the Bittensor node client between mainnet and testnet by
// rewriting ~/.bittensor/network_config.json.
//
// Usage:
//
//	btswitch --network mainnet   Switch to mainnet and exit
//	btswitch --network testnet   Switch to testnet and exit
//	btswitch --check             Print the current network and exit
//	btswitch                     Interactive menu
//	btswitch tui                 Full-screen menu
//	btswitch watch               Print the network whenever the file changes
//	btswitch history             Show recent switches
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
