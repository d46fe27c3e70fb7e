package txcodec

import "errors"

var (
	// ErrMalformedPayload is returned for payloads that cannot be decoded or
	// fail structural validation.
	ErrMalformedPayload = errors.New("malformed transaction payload")

	// ErrUnknownNetwork is returned when no passphrase is known for a network.
	ErrUnknownNetwork = errors.New("unknown network")
)
