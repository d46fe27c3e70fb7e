// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ConversionRequest describes a strict-send path payment. Amounts are
// decimal strings. Destination defaults to the source account when empty.
type ConversionRequest struct {
	SourceAsset        Asset  `json:"source_asset"`
	DestinationAsset   Asset  `json:"destination_asset"`
	SourceAmount       string `json:"source_amount"`
	DestinationMin     string `json:"destination_min,omitempty"`
	DestinationAccount string `json:"destination_account,omitempty"`
	Memo               string `json:"memo,omitempty"`
}

// WalletConversionRequest authorizes a conversion signed by a custodial
// wallet.
type WalletConversionRequest struct {
	WalletID   string `json:"wallet_id"`
	Email      string `json:"email"`
	Passphrase string `json:"passphrase"`
	PlatformID string `json:"platform_id"`
	ConversionRequest
}

// ConversionRate is the rate implied by the best strict-send path.
type ConversionRate struct {
	SourceAsset       Asset   `json:"source_asset"`
	DestinationAsset  Asset   `json:"destination_asset"`
	SourceAmount      string  `json:"source_amount"`
	DestinationAmount string  `json:"destination_amount"`
	Rate              string  `json:"rate"`
	Path              []Asset `json:"path,omitempty"`
}

// ConversionEstimate is a quote for a conversion.
// DestinationAmount equals SourceAmount times Rate rounded to seven digits.
type ConversionEstimate struct {
	SourceAsset       Asset         `json:"source_asset"`
	DestinationAsset  Asset         `json:"destination_asset"`
	SourceAmount      string        `json:"source_amount"`
	DestinationAmount string        `json:"destination_amount"`
	Rate              string        `json:"rate"`
	Path              []Asset       `json:"path,omitempty"`
	Fee               string        `json:"fee"`
	EstimatedTime     time.Duration `json:"estimated_time"`
	PriceImpact       string        `json:"price_impact,omitempty"`
	ValidUntil        time.Time     `json:"valid_until"`
}

// ConversionResult is the outcome of an executed conversion.
type ConversionResult struct {
	Success           bool   `json:"success"`
	Hash              string `json:"hash,omitempty"`
	SourceAmount      string `json:"source_amount,omitempty"`
	DestinationAmount string `json:"destination_amount,omitempty"`
	Error             string `json:"error,omitempty"`
}

// TrustlineInfo reports whether an account can hold an asset.
type TrustlineInfo struct {
	Asset   Asset  `json:"asset"`
	Exists  bool   `json:"exists"`
	Balance string `json:"balance"`
	Limit   string `json:"limit,omitempty"`
}
