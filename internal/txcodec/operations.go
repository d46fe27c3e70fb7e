package txcodec

import (
	"fmt"

	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/stellar/go-stellar-sdk/txnbuild"
)

// build encodes the descriptive fields of tx into an unsigned envelope. The
// sequence number is used as is.
func build(tx *models.Transaction) (*txnbuild.Transaction, error) {
	operations := make([]txnbuild.Operation, 0, len(tx.Operations))
	for i, op := range tx.Operations {
		encoded, err := buildOperation(op)
		if err != nil {
			return nil, fmt.Errorf("%w: operation %d: %w", ErrMalformedPayload, i, err)
		}
		operations = append(operations, encoded)
	}

	timeBounds := txnbuild.NewInfiniteTimeout()
	if tx.TimeBounds != nil {
		timeBounds = txnbuild.NewTimebounds(tx.TimeBounds.MinTime, tx.TimeBounds.MaxTime)
	}

	var memo txnbuild.Memo
	if tx.Memo != "" {
		memo = txnbuild.MemoText(tx.Memo)
	}

	envelope, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount: &txnbuild.SimpleAccount{
			AccountID: tx.SourceAccount,
			Sequence:  tx.Sequence,
		},
		IncrementSequenceNum: false,
		Operations:           operations,
		BaseFee:              tx.Fee,
		Memo:                 memo,
		Preconditions:        txnbuild.Preconditions{TimeBounds: timeBounds},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return envelope, nil
}

func buildOperation(op models.Operation) (txnbuild.Operation, error) {
	switch op.Type {
	case models.OperationPayment:
		return &txnbuild.Payment{
			Destination:   op.Destination,
			Amount:        op.Amount,
			Asset:         toAsset(op.Asset),
			SourceAccount: op.SourceAccount,
		}, nil
	case models.OperationCreateAccount:
		return &txnbuild.CreateAccount{
			Destination:   op.Destination,
			Amount:        op.Amount,
			SourceAccount: op.SourceAccount,
		}, nil
	case models.OperationPathPaymentStrictSend:
		var path []txnbuild.Asset
		for i := range op.Path {
			path = append(path, toAsset(&op.Path[i]))
		}
		return &txnbuild.PathPaymentStrictSend{
			SendAsset:     toAsset(op.SendAsset),
			SendAmount:    op.SendAmount,
			Destination:   op.Destination,
			DestAsset:     toAsset(op.DestAsset),
			DestMin:       op.DestMin,
			Path:          path,
			SourceAccount: op.SourceAccount,
		}, nil
	case models.OperationChangeTrust:
		if op.Asset == nil || op.Asset.IsNative() {
			return nil, fmt.Errorf("change trust needs a credit asset")
		}
		return &txnbuild.ChangeTrust{
			Line:          txnbuild.ChangeTrustAssetWrapper{Asset: toAsset(op.Asset)},
			Limit:         op.Limit,
			SourceAccount: op.SourceAccount,
		}, nil
	default:
		return nil, fmt.Errorf("cannot encode operation type %q", op.Type)
	}
}

// describe reads the fields of envelope into a transaction model.
func describe(envelope *txnbuild.Transaction) *models.Transaction {
	tx := &models.Transaction{
		SourceAccount: envelope.SourceAccount().AccountID,
		Sequence:      envelope.SequenceNumber(),
		Fee:           envelope.BaseFee(),
		Memo:          memoText(envelope.Memo()),
		Signatures:    signaturesOf(envelope),
	}

	if bounds := envelope.Timebounds(); bounds.MinTime != 0 || bounds.MaxTime != 0 {
		tx.TimeBounds = &models.TimeBounds{MinTime: bounds.MinTime, MaxTime: bounds.MaxTime}
	}

	for _, op := range envelope.Operations() {
		tx.Operations = append(tx.Operations, describeOperation(op))
	}
	return tx
}

func describeOperation(op txnbuild.Operation) models.Operation {
	switch o := op.(type) {
	case *txnbuild.Payment:
		return models.Operation{
			Type:          models.OperationPayment,
			SourceAccount: o.SourceAccount,
			Destination:   o.Destination,
			Asset:         fromAsset(o.Asset),
			Amount:        o.Amount,
		}
	case *txnbuild.CreateAccount:
		return models.Operation{
			Type:          models.OperationCreateAccount,
			SourceAccount: o.SourceAccount,
			Destination:   o.Destination,
			Amount:        o.Amount,
		}
	case *txnbuild.PathPaymentStrictSend:
		var path []models.Asset
		for _, hop := range o.Path {
			path = append(path, *fromAsset(hop))
		}
		return models.Operation{
			Type:          models.OperationPathPaymentStrictSend,
			SourceAccount: o.SourceAccount,
			Destination:   o.Destination,
			SendAsset:     fromAsset(o.SendAsset),
			SendAmount:    o.SendAmount,
			DestAsset:     fromAsset(o.DestAsset),
			DestMin:       o.DestMin,
			Path:          path,
		}
	case *txnbuild.ChangeTrust:
		return models.Operation{
			Type:          models.OperationChangeTrust,
			SourceAccount: o.SourceAccount,
			Asset:         &models.Asset{Code: o.Line.GetCode(), Issuer: o.Line.GetIssuer()},
			Limit:         o.Limit,
		}
	default:
		return models.Operation{Type: models.OperationOther}
	}
}

func toAsset(asset *models.Asset) txnbuild.Asset {
	if asset == nil || asset.IsNative() {
		return txnbuild.NativeAsset{}
	}
	return txnbuild.CreditAsset{Code: asset.Code, Issuer: asset.Issuer}
}

func fromAsset(asset txnbuild.Asset) *models.Asset {
	if asset == nil || asset.IsNative() {
		return &models.Asset{}
	}
	return &models.Asset{Code: asset.GetCode(), Issuer: asset.GetIssuer()}
}
