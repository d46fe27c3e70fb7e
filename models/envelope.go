// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EncryptionEnvelope is the transient bundle produced by encrypting a secret
// seed under a passphrase. Ciphertext, Salt and IV are base64 encoded; only
// those three fields are persisted. The algorithm metadata comes from
// configuration and must match at decrypt time.
type EncryptionEnvelope struct {
	Ciphertext string `json:"ciphertext"`
	Salt       string `json:"salt"`
	IV         string `json:"iv"`

	Algorithm  string `json:"algorithm"`
	KDF        string `json:"kdf"`
	Iterations int    `json:"iterations"`
	SaltLength int    `json:"salt_length"`
	IVLength   int    `json:"iv_length"`
}
