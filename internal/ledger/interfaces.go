package ledger

import (
	"context"

	"github.com/MKhiriev/invisible-wallet/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/ledger_client_mock.go -package=mock

// Client is the ledger capability of one network. Every call is bounded by
// the configured request timeout.
type Client interface {
	// LoadAccount returns the account snapshot of publicKey.
	// Returns [ErrAccountNotFound] if the account has not been created yet.
	LoadAccount(ctx context.Context, publicKey string) (models.AccountSnapshot, error)

	// FetchBaseFee returns the last ledger base fee in stroops.
	FetchBaseFee(ctx context.Context) (int64, error)

	// FindStrictSendPaths returns the payment paths that deliver one of
	// destAssets for exactly sourceAmount of sourceAsset, best path first.
	FindStrictSendPaths(ctx context.Context, sourceAsset models.Asset, sourceAmount string, destAssets ...models.Asset) ([]models.PathRecord, error)

	// GetOrderBook returns up to limit price levels per side.
	GetOrderBook(ctx context.Context, selling, buying models.Asset, limit int) (models.OrderBook, error)

	// SubmitTransaction submits a signed payload. A ledger rejection is
	// reported as [ErrTransactionRejected] wrapped in a [*RejectedError].
	SubmitTransaction(ctx context.Context, payload string) (models.SubmitResult, error)

	// FundTestAccount asks the testnet faucet to create and fund publicKey.
	// Returns [ErrFundingUnsupported] on mainnet.
	FundTestAccount(ctx context.Context, publicKey string) error
}
