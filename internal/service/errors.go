// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Error kinds. Every error returned by the services wraps exactly one of
// them; transports map kinds to status codes with errors.Is.
var (
	ErrValidation           = errors.New("validation error")
	ErrConflict             = errors.New("conflict")
	ErrNotFound             = errors.New("not found")
	ErrAuthorization        = errors.New("unauthorized")
	ErrCryptographic        = errors.New("cryptographic error")
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrInsufficientResource = errors.New("insufficient resources")
	ErrNetwork              = errors.New("network error")
	ErrStorage              = errors.New("persistence failure")
)

var (
	ErrInvalidEmail              = newKindError(ErrValidation, "invalid email")
	ErrInvalidPassphraseStrength = newKindError(ErrValidation, "invalid passphrase strength")
	ErrInvalidNetwork            = newKindError(ErrValidation, "invalid network")
	ErrInvalidRequest            = newKindError(ErrValidation, "invalid request")

	ErrWalletAlreadyExists = newKindError(ErrConflict, "wallet already exists")
	ErrWalletNotFound      = newKindError(ErrNotFound, "wallet not found")

	ErrUnauthorizedOrigin = newKindError(ErrAuthorization, "unauthorized origin")
	ErrTooManyAttempts    = newKindError(ErrAuthorization, "too many failed attempts")
	ErrWalletSuspended    = newKindError(ErrAuthorization, "wallet is suspended")

	ErrInvalidPassphrase = newKindError(ErrCryptographic, "Invalid passphrase")
	ErrKeyIntegrity      = newKindError(ErrCryptographic, "stored key does not match wallet public key")
	ErrEncryptionFailed  = newKindError(ErrCryptographic, "encryption failed")
	ErrSigningFailed     = newKindError(ErrCryptographic, "signing failed")

	ErrInvalidTransactionPayload = newKindError(ErrInvalidPayload, "invalid transaction payload")

	// ErrConversionFailed is returned when the ledger side of an authorized
	// conversion fails; the result carries the reason.
	ErrConversionFailed = newKindError(ErrInvalidPayload, "conversion failed")

	ErrInsufficientBalance = newKindError(ErrInsufficientResource, "Insufficient balance")
	ErrMissingTrustline    = newKindError(ErrInsufficientResource, "missing trustline")

	ErrLedgerUnavailable = newKindError(ErrNetwork, "ledger unavailable")
	ErrNoConversionPath  = newKindError(ErrNotFound, "no conversion path available")

	ErrVersionIsNotSpecified = newKindError(ErrValidation, "app version is not specified")
)

// kindError is a domain error whose message is safe to show to callers.
type kindError struct {
	kind error
	msg  string
}

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}

// Kind returns the kind sentinel err wraps, or nil for foreign errors.
func Kind(err error) error {
	for _, kind := range []error{
		ErrValidation,
		ErrConflict,
		ErrNotFound,
		ErrAuthorization,
		ErrCryptographic,
		ErrInvalidPayload,
		ErrInsufficientResource,
		ErrNetwork,
		ErrStorage,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// PublicMessage returns the caller-facing message of err. Validation and
// insufficient-resource errors keep their details; any other error is
// reduced to the message of its outermost domain error, without wrapped
// low-level causes.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrInsufficientResource) {
		return err.Error()
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.msg
	}
	if kind := Kind(err); kind != nil {
		return kind.Error()
	}
	return "internal error"
}
