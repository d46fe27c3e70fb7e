// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package keypair holds ed25519 ledger keypairs whose secret half can be
// wiped from memory.
//
// Account ids ("G...") and seeds ("S...") use the ledger strkey encoding of
// the Stellar SDK. The seed of a [Full] lives in a byte slice owned by this
// package, so [Full.Wipe] can zero it.
package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	sdkkeypair "github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stellar/go-stellar-sdk/strkey"
)

// Full is a keypair that can sign.
type Full struct {
	seed    []byte
	private ed25519.PrivateKey
	public  *FromAddress
}

// FromAddress is a public-only keypair.
type FromAddress struct {
	kp *sdkkeypair.FromAddress
}

// Random generates a new keypair from the OS CSPRNG.
func Random() (*Full, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	defer clear(seed)

	return FromRawSeed(seed)
}

// FromRawSeed builds a keypair from a 32-byte ed25519 seed. The seed is
// copied; the caller keeps ownership of raw.
func FromRawSeed(raw []byte) (*Full, error) {
	if len(raw) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed length %d", ErrInvalidKey, len(raw))
	}

	seed := make([]byte, ed25519.SeedSize)
	copy(seed, raw)
	private := ed25519.NewKeyFromSeed(seed)

	address, err := encode(strkey.VersionByteAccountID, private.Public().(ed25519.PublicKey))
	if err != nil {
		clear(seed)
		clear(private)
		return nil, err
	}
	public, err := ParseAddress(address)
	if err != nil {
		clear(seed)
		clear(private)
		return nil, err
	}

	return &Full{seed: seed, private: private, public: public}, nil
}

// FromSeed parses an encoded "S..." seed. The decoded seed is zeroed once the
// keypair holds its own copy.
func FromSeed(encoded []byte) (*Full, error) {
	raw, err := decode(strkey.VersionByteSeed, string(encoded))
	if err != nil {
		return nil, err
	}
	defer clear(raw)

	return FromRawSeed(raw)
}

// ParseAddress parses an encoded "G..." account id.
func ParseAddress(address string) (*FromAddress, error) {
	if _, err := decode(strkey.VersionByteAccountID, address); err != nil {
		return nil, err
	}

	kp, err := sdkkeypair.ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return &FromAddress{kp: kp}, nil
}

// IsValidAddress reports whether address is a well-formed account id.
func IsValidAddress(address string) bool {
	return strkey.IsValidEd25519PublicKey(address)
}

// Address returns the encoded account id.
func (f *Full) Address() string {
	return f.public.Address()
}

// Seed returns the encoded "S..." seed. The caller owns the result and must
// wipe it.
func (f *Full) Seed() ([]byte, error) {
	if f.seed == nil {
		return nil, ErrInvalidKey
	}

	encoded, err := encode(strkey.VersionByteSeed, f.seed)
	if err != nil {
		return nil, err
	}
	return []byte(encoded), nil
}

// Hint returns the last four bytes of the public key.
func (f *Full) Hint() [4]byte {
	return f.public.Hint()
}

// Sign signs data with the private key.
func (f *Full) Sign(data []byte) ([]byte, error) {
	if f.private == nil {
		return nil, ErrInvalidKey
	}
	return ed25519.Sign(f.private, data), nil
}

// Verify checks sig over data.
func (f *Full) Verify(data, sig []byte) error {
	return f.public.Verify(data, sig)
}

// Wipe zeroes the private key material. The keypair can no longer sign.
func (f *Full) Wipe() {
	if f == nil {
		return
	}
	clear(f.seed)
	clear(f.private)
	f.seed = nil
	f.private = nil
}

// Address returns the encoded account id.
func (a *FromAddress) Address() string {
	return a.kp.Address()
}

// Hint returns the last four bytes of the public key.
func (a *FromAddress) Hint() [4]byte {
	return a.kp.Hint()
}

// Verify checks sig over data.
func (a *FromAddress) Verify(data, sig []byte) error {
	if err := a.kp.Verify(data, sig); err != nil {
		return ErrInvalidSignature
	}
	return nil
}
