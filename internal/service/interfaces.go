package service

import (
	"context"

	"github.com/MKhiriev/invisible-wallet/internal/ledger"
	"github.com/MKhiriev/invisible-wallet/models"
)

// InvisibleWalletService is the custody boundary: it creates wallets, proves
// passphrase knowledge and signs on behalf of a wallet. Decrypted secrets
// never leave a single call.
type InvisibleWalletService interface {
	CreateWallet(ctx context.Context, request models.CreateWalletRequest) (models.WalletResponse, error)
	RecoverWallet(ctx context.Context, request models.RecoverWalletRequest) (models.WalletResponse, error)

	// SignTransaction returns a zero result with the error when the wallet
	// cannot be found or authorized. Later failures return a result with
	// Success=false together with the error.
	SignTransaction(ctx context.Context, request models.SignTransactionRequest) (models.SignResult, error)

	// GetWalletWithBalance returns nil, nil when no wallet exists for the
	// natural key.
	GetWalletWithBalance(ctx context.Context, email, platformID string, network models.Network) (*models.WalletWithBalance, error)

	ConvertFromWallet(ctx context.Context, request models.WalletConversionRequest) (models.ConversionResult, error)
}

// ConversionEstimator quotes and executes strict-send conversions on one
// network. None of its methods fail past the boundary.
type ConversionEstimator interface {
	CheckTrustline(ctx context.Context, accountPublicKey string, asset models.Asset) models.TrustlineInfo
	GetExchangeRate(ctx context.Context, sourceAsset, destinationAsset models.Asset, sourceAmount string) *models.ConversionRate
	EstimateConversion(ctx context.Context, request models.ConversionRequest) *models.ConversionEstimate

	// ExecuteConversion signs with secret, an encoded seed owned and wiped
	// by the caller.
	ExecuteConversion(ctx context.Context, secret []byte, request models.ConversionRequest) models.ConversionResult
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// LedgerProvider resolves the ledger client of a network.
type LedgerProvider interface {
	Client(network models.Network) (ledger.Client, error)
}

// IDGenerator produces audit entry ids.
type IDGenerator interface {
	Generate() string
}
