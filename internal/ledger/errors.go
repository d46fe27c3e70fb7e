package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAccountNotFound is returned when Horizon answers 404 for an account.
	ErrAccountNotFound = errors.New("ledger account not found")

	// ErrTransactionRejected is returned when Horizon refuses a submitted
	// transaction.
	ErrTransactionRejected = errors.New("transaction rejected")

	// ErrLedgerUnavailable is returned for transport failures, timeouts and
	// 5xx answers.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrUnexpectedResponse is returned for answers that cannot be decoded.
	ErrUnexpectedResponse = errors.New("unexpected ledger response")

	// ErrFundingUnsupported is returned by FundTestAccount outside testnet.
	ErrFundingUnsupported = errors.New("test account funding is only available on testnet")

	// ErrUnsupportedNetwork is returned by [Registry.Client] for networks
	// without a configured client.
	ErrUnsupportedNetwork = errors.New("unsupported network")
)

// RejectedError carries the result codes of a rejected transaction.
type RejectedError struct {
	Status          int
	TransactionCode string
	OperationCodes  []string
}

func (e *RejectedError) Error() string {
	msg := fmt.Sprintf("%s (status %d", ErrTransactionRejected, e.Status)
	if e.TransactionCode != "" {
		msg += ", " + e.TransactionCode
	}
	if len(e.OperationCodes) > 0 {
		msg += ": " + strings.Join(e.OperationCodes, ", ")
	}
	return msg + ")"
}

// Unwrap makes errors.Is(err, ErrTransactionRejected) hold.
func (e *RejectedError) Unwrap() error {
	return ErrTransactionRejected
}
