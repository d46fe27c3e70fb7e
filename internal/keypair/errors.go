package keypair

import "errors"

var (
	// ErrInvalidKey is returned for text that is not a well-formed encoded key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidVersion is returned when an account id is given where a seed
	// is expected, or the other way round.
	ErrInvalidVersion = errors.New("invalid key version")

	// ErrInvalidSignature is returned by Verify.
	ErrInvalidSignature = errors.New("signature verification failed")
)
