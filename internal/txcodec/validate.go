package txcodec

import (
	"fmt"

	"github.com/MKhiriev/invisible-wallet/models"
)

// maxOperations mirrors the ledger limit per transaction.
const maxOperations = 100

func validate(tx *models.Transaction) error {
	if tx.SourceAccount == "" {
		return fmt.Errorf("%w: missing source account", ErrMalformedPayload)
	}
	if tx.Fee <= 0 {
		return fmt.Errorf("%w: fee must be positive", ErrMalformedPayload)
	}
	if len(tx.Operations) == 0 || len(tx.Operations) > maxOperations {
		return fmt.Errorf("%w: operation count %d", ErrMalformedPayload, len(tx.Operations))
	}
	return nil
}
