// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Operation types understood by the transaction codec. Operations of any
// other type are kept in the envelope and described as OperationOther.
const (
	OperationPayment               = "payment"
	OperationPathPaymentStrictSend = "path_payment_strict_send"
	OperationChangeTrust           = "change_trust"
	OperationCreateAccount         = "create_account"
	OperationOther                 = "other"
)

// Transaction is the decoded form of a base64 XDR transaction envelope.
//
// Envelope holds the encoded envelope the transaction was parsed from or
// last signed into. When it is set it is authoritative and the descriptive
// fields are not re-encoded.
type Transaction struct {
	Network       Network     `json:"-"`
	SourceAccount string      `json:"source_account"`
	Sequence      int64       `json:"sequence"`
	Fee           int64       `json:"fee"`
	Memo          string      `json:"memo,omitempty"`
	TimeBounds    *TimeBounds `json:"time_bounds,omitempty"`
	Operations    []Operation `json:"operations"`
	Signatures    []Signature `json:"-"`
	Envelope      string      `json:"-"`
}

// TimeBounds limits the ledger close times at which a transaction is valid.
// Zero means unbounded. Values are unix seconds.
type TimeBounds struct {
	MinTime int64 `json:"min_time"`
	MaxTime int64 `json:"max_time"`
}

// Operation is one ledger operation. Only the fields relevant to Type are
// set.
type Operation struct {
	Type          string  `json:"type"`
	SourceAccount string  `json:"source_account,omitempty"`
	Destination   string  `json:"destination,omitempty"`
	Asset         *Asset  `json:"asset,omitempty"`
	Amount        string  `json:"amount,omitempty"`
	SendAsset     *Asset  `json:"send_asset,omitempty"`
	SendAmount    string  `json:"send_amount,omitempty"`
	DestAsset     *Asset  `json:"dest_asset,omitempty"`
	DestMin       string  `json:"dest_min,omitempty"`
	Path          []Asset `json:"path,omitempty"`
	Limit         string  `json:"limit,omitempty"`
}

// Signature is a decorated ed25519 signature. Hint is the last four bytes of
// the signer's public key; both fields are base64 encoded.
type Signature struct {
	Hint      string `json:"hint"`
	Signature string `json:"signature"`
}
