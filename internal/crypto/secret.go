// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// SecretBuffer holds decrypted secret material. Call Wipe as soon as the
// secret is no longer needed, normally with defer right after decryption.
type SecretBuffer struct {
	b     []byte
	wiped bool
}

// NewSecretBuffer takes ownership of b.
func NewSecretBuffer(b []byte) *SecretBuffer {
	return &SecretBuffer{b: b}
}

// Bytes returns the underlying plaintext. The slice aliases the buffer and is
// zeroed by Wipe.
func (s *SecretBuffer) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.b
}

// Len returns the plaintext length.
func (s *SecretBuffer) Len() int {
	if s == nil {
		return 0
	}
	return len(s.b)
}

// Wipe zeroes the plaintext. It is safe to call more than once and on nil.
func (s *SecretBuffer) Wipe() {
	if s == nil {
		return
	}
	Wipe(s.b)
	s.wiped = true
}

// IsWiped reports whether Wipe has been called.
func (s *SecretBuffer) IsWiped() bool {
	return s == nil || s.wiped
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	clear(b)
}
