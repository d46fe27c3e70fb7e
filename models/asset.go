// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
)

// ErrInvalidAsset is returned by [ParseAsset] for strings that are neither
// "native" nor "CODE:ISSUER".
var ErrInvalidAsset = errors.New("invalid asset")

// nativeAsset is the canonical text form of the native asset.
const nativeAsset = "native"

// Asset identifies a ledger asset. The zero value is the native asset.
type Asset struct {
	Code   string `json:"code,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

// NativeAsset returns the native asset.
func NativeAsset() Asset {
	return Asset{}
}

// IsNative reports whether a is the native asset.
func (a Asset) IsNative() bool {
	return a.Code == "" && a.Issuer == ""
}

// Type returns the Horizon asset type of a: "native", "credit_alphanum4" or
// "credit_alphanum12".
func (a Asset) Type() string {
	switch {
	case a.IsNative():
		return nativeAsset
	case len(a.Code) <= 4:
		return "credit_alphanum4"
	default:
		return "credit_alphanum12"
	}
}

// String returns "native" for the native asset and "CODE:ISSUER" otherwise.
func (a Asset) String() string {
	if a.IsNative() {
		return nativeAsset
	}
	return a.Code + ":" + a.Issuer
}

// Equal reports whether a and b denote the same asset.
func (a Asset) Equal(b Asset) bool {
	return a.Code == b.Code && a.Issuer == b.Issuer
}

// ParseAsset parses the text form produced by [Asset.String].
func ParseAsset(s string) (Asset, error) {
	if s == "" || strings.EqualFold(s, nativeAsset) {
		return NativeAsset(), nil
	}

	code, issuer, ok := strings.Cut(s, ":")
	if !ok || code == "" || issuer == "" || len(code) > 12 {
		return Asset{}, ErrInvalidAsset
	}

	return Asset{Code: code, Issuer: issuer}, nil
}

// MarshalText implements [encoding.TextMarshaler].
func (a Asset) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Asset) UnmarshalText(text []byte) error {
	parsed, err := ParseAsset(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
