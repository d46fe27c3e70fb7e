// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AccountSnapshot is the subset of a ledger account the service reads.
type AccountSnapshot struct {
	AccountID string    `json:"account_id"`
	Sequence  int64     `json:"sequence"`
	Balances  []Balance `json:"balances"`
}

// BalanceFor returns the balance line for asset, if the account holds one.
// The native line is always present on an existing account.
func (a AccountSnapshot) BalanceFor(asset Asset) (Balance, bool) {
	for _, b := range a.Balances {
		if b.Asset.Equal(asset) {
			return b, true
		}
	}
	return Balance{}, false
}

// Balance is one balance line of an account. Amounts are decimal strings with
// up to seven fractional digits.
type Balance struct {
	Asset   Asset  `json:"asset"`
	Balance string `json:"balance"`
	Limit   string `json:"limit,omitempty"`
}

// PathRecord is one strict-send path offered by the ledger.
type PathRecord struct {
	SourceAsset       Asset   `json:"source_asset"`
	SourceAmount      string  `json:"source_amount"`
	DestinationAsset  Asset   `json:"destination_asset"`
	DestinationAmount string  `json:"destination_amount"`
	Path              []Asset `json:"path"`
}

// OrderBookEntry is one price level of an order book.
type OrderBookEntry struct {
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

// OrderBook is a snapshot of the offers between two assets.
type OrderBook struct {
	Bids []OrderBookEntry `json:"bids"`
	Asks []OrderBookEntry `json:"asks"`
}

// SubmitResult is the ledger's acknowledgement of an accepted transaction.
type SubmitResult struct {
	Hash   string `json:"hash"`
	Ledger int64  `json:"ledger"`
}
