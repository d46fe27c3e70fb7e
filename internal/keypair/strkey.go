package keypair

import (
	"errors"
	"fmt"

	"github.com/stellar/go-stellar-sdk/strkey"
)

// decode validates src as a strkey of the expected version and returns its
// raw payload. The caller owns the result and must wipe it when it is secret.
func decode(expected strkey.VersionByte, src string) ([]byte, error) {
	raw, err := strkey.Decode(expected, src)
	switch {
	case err == nil:
		return raw, nil
	case errors.Is(err, strkey.ErrInvalidVersionByte):
		return nil, ErrInvalidVersion
	default:
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
}

func encode(version strkey.VersionByte, payload []byte) (string, error) {
	encoded, err := strkey.Encode(version, payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return encoded, nil
}
