// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Network identifies the ledger a wallet lives on.
type Network string

const (
	// Testnet is the public test network. New testnet wallets are funded
	// through the friendbot faucet on creation.
	Testnet Network = "testnet"

	// Mainnet is the production network.
	Mainnet Network = "mainnet"
)

// IsValid reports whether n is one of the supported networks.
func (n Network) IsValid() bool {
	return n == Testnet || n == Mainnet
}

func (n Network) String() string {
	return string(n)
}
