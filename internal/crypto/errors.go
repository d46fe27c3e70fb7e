// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrEncryption is returned when a secret cannot be sealed: empty input,
	// an unavailable random source or a cipher setup failure.
	ErrEncryption = errors.New("encryption failed")

	// ErrDecryption is returned for any failure to open an envelope. It does
	// not say which check failed.
	ErrDecryption = errors.New("decryption failed")

	// ErrRandomSource is returned when the OS CSPRNG cannot be read.
	ErrRandomSource = errors.New("random source unavailable")
)
