// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// WalletStatus is the lifecycle state of an [InvisibleWallet].
type WalletStatus string

const (
	// WalletStatusActive is the state of every freshly created wallet.
	WalletStatusActive WalletStatus = "active"

	// WalletStatusSuspended is reserved for administrative suspension.
	WalletStatusSuspended WalletStatus = "suspended"
)

// InvisibleWallet is the durable custody record of one user keypair.
//
// The natural key (Email, PlatformID, Network) is unique. EncryptedSecret,
// Salt and IV form the persisted part of an [EncryptionEnvelope]; the
// envelope always decrypts to the secret seed whose public key is PublicKey.
type InvisibleWallet struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	PlatformID string  `json:"platform_id"`
	Network    Network `json:"network"`
	PublicKey  string  `json:"public_key"`

	// EncryptedSecret, Salt and IV are base64 encoded and never leave the
	// service layer.
	EncryptedSecret string `json:"-"`
	Salt            string `json:"-"`
	IV              string `json:"-"`

	Status         WalletStatus      `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// Envelope assembles the persisted ciphertext parameters of w into an
// [EncryptionEnvelope]. Algorithm metadata is filled in by the crypto layer.
func (w InvisibleWallet) Envelope() EncryptionEnvelope {
	return EncryptionEnvelope{
		Ciphertext: w.EncryptedSecret,
		Salt:       w.Salt,
		IV:         w.IV,
	}
}

// Response returns the public projection of w.
func (w InvisibleWallet) Response() WalletResponse {
	return WalletResponse{
		ID:             w.ID,
		Email:          w.Email,
		PlatformID:     w.PlatformID,
		Network:        w.Network,
		PublicKey:      w.PublicKey,
		Status:         w.Status,
		CreatedAt:      w.CreatedAt,
		LastAccessedAt: w.LastAccessedAt,
		Metadata:       w.Metadata,
	}
}

// WalletResponse is the public wallet metadata returned to callers. It never
// carries key material.
type WalletResponse struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	PlatformID     string            `json:"platform_id"`
	Network        Network           `json:"network"`
	PublicKey      string            `json:"public_key"`
	Status         WalletStatus      `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// WalletWithBalance combines a stored wallet with its live ledger balances.
// AccountExists is false while the account has not been funded yet.
type WalletWithBalance struct {
	WalletResponse
	AccountExists bool      `json:"account_exists"`
	Balances      []Balance `json:"balances"`
}

// CreateWalletRequest carries the input of wallet creation.
type CreateWalletRequest struct {
	Email      string            `json:"email"`
	Passphrase string            `json:"passphrase"`
	PlatformID string            `json:"platform_id"`
	Network    Network           `json:"network"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// RecoverWalletRequest carries the input of wallet recovery.
type RecoverWalletRequest struct {
	Email      string  `json:"email"`
	Passphrase string  `json:"passphrase"`
	PlatformID string  `json:"platform_id"`
	Network    Network `json:"network"`
}

// SignTransactionRequest carries the input of transaction signing.
// TransactionPayload is the opaque encoded transaction.
type SignTransactionRequest struct {
	WalletID           string `json:"wallet_id"`
	Email              string `json:"email"`
	Passphrase         string `json:"passphrase"`
	PlatformID         string `json:"platform_id"`
	TransactionPayload string `json:"transaction_payload"`
}

// SignResult is the outcome of a signing attempt. Failures after the wallet
// has been authorized are reported with Success=false and a user-facing
// Error message.
type SignResult struct {
	SignedPayload string `json:"signed_payload,omitempty"`
	Hash          string `json:"hash,omitempty"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}
