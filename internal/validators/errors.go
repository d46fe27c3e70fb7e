package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmptyPassphrase    = errors.New("passphrase is required")
	ErrWeakPassphrase     = errors.New("passphrase is too weak")
	ErrEmptyPlatformID    = errors.New("platform id is required")
	ErrInvalidNetwork     = errors.New("invalid network")
	ErrEmptyWalletID      = errors.New("wallet id is required")
	ErrEmptyPayload       = errors.New("transaction payload is required")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidAsset       = errors.New("invalid asset")
	ErrSameAsset          = errors.New("source and destination assets are equal")
	ErrInvalidDestination = errors.New("invalid destination account")
	ErrMemoTooLong        = errors.New("memo is too long")
)
