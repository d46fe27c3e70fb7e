// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a platform bearer token.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
// The subject claim carries the id of the integrating platform.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// PlatformID caches the "sub" claim.
	PlatformID string `json:"-"`
}

// GetPlatformID extracts the platform identifier from the "sub" claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetPlatformID() (string, error) {
	platformID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting PlatformID from token: %w", err)
	}
	if platformID == "" {
		return "", fmt.Errorf("error extracting PlatformID from token: empty subject")
	}

	return platformID, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
