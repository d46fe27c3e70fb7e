// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/keypair"
	"github.com/MKhiriev/invisible-wallet/internal/ledger"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/txcodec"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// amountPrecision is the number of fractional digits of ledger amounts.
	amountPrecision = 7

	defaultNominalFee = 100

	// transactionLifetime bounds the close time of conversion transactions.
	transactionLifetime = 5 * time.Minute
)

// DefaultSlippagePercent is the margin subtracted from an estimate when the
// caller does not provide a destination minimum.
var DefaultSlippagePercent = decimal.NewFromInt(5)

var (
	ErrInvalidSecretKey      = newKindError(ErrCryptographic, "invalid secret key")
	ErrInvalidDestination    = newKindError(ErrValidation, "invalid destination account")
	ErrTransactionRejected   = newKindError(ErrInvalidPayload, "transaction rejected by the ledger")
	ErrInvalidSlippage       = newKindError(ErrValidation, "slippage percent must be within [0, 100)")
	ErrSourceAccountNotFound = newKindError(ErrInsufficientResource, "source account does not exist on the ledger")
)

// ConversionEstimators holds one [ConversionEstimator] per network.
type ConversionEstimators map[models.Network]ConversionEstimator

// For returns the estimator of network or [ErrInvalidNetwork].
func (c ConversionEstimators) For(network models.Network) (ConversionEstimator, error) {
	estimator, ok := c[network]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNetwork, network)
	}
	return estimator, nil
}

type conversionEstimator struct {
	network models.Network
	ledger  ledger.Client
	codec   txcodec.Codec
	cfg     config.Conversion
	metrics *metrics.Collectors
	now     func() time.Time

	logger *logger.Logger
}

// NewConversionEstimator builds the estimator of network on top of client.
func NewConversionEstimator(network models.Network, client ledger.Client, codec txcodec.Codec, cfg config.Conversion, collectors *metrics.Collectors, logger *logger.Logger) ConversionEstimator {
	return &conversionEstimator{
		network: network,
		ledger:  client,
		codec:   codec,
		cfg:     cfg,
		metrics: collectors,
		now:     time.Now,
		logger:  logger,
	}
}

// CheckTrustline implements [ConversionEstimator]. The native asset always
// exists; lookup failures yield exists=false with a zero balance.
func (e *conversionEstimator) CheckTrustline(ctx context.Context, accountPublicKey string, asset models.Asset) models.TrustlineInfo {
	account, err := e.ledger.LoadAccount(ctx, accountPublicKey)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).
			Str("account", accountPublicKey).
			Str("asset", asset.String()).
			Msg("trustline lookup failed")
		return models.TrustlineInfo{Asset: asset, Exists: asset.IsNative(), Balance: zeroAmount()}
	}

	return trustlineFrom(account, asset)
}

// GetExchangeRate implements [ConversionEstimator]. Only the best path
// reported by the ledger is used.
func (e *conversionEstimator) GetExchangeRate(ctx context.Context, sourceAsset, destinationAsset models.Asset, sourceAmount string) *models.ConversionRate {
	log := logger.FromContext(ctx)

	amount, err := decimal.NewFromString(sourceAmount)
	if err != nil || !amount.IsPositive() {
		return nil
	}

	paths, err := e.ledger.FindStrictSendPaths(ctx, sourceAsset, sourceAmount, destinationAsset)
	if err != nil {
		log.Warn().Err(err).Str("network", e.network.String()).Msg("strict send path lookup failed")
		return nil
	}
	if len(paths) == 0 {
		return nil
	}

	best := paths[0]
	received, err := decimal.NewFromString(best.DestinationAmount)
	if err != nil || !received.IsPositive() {
		log.Warn().Str("destination_amount", best.DestinationAmount).Msg("unusable path amount")
		return nil
	}

	return &models.ConversionRate{
		SourceAsset:       sourceAsset,
		DestinationAsset:  destinationAsset,
		SourceAmount:      sourceAmount,
		DestinationAmount: best.DestinationAmount,
		Rate:              received.DivRound(amount, amountPrecision).StringFixed(amountPrecision),
		Path:              best.Path,
	}
}

// EstimateConversion implements [ConversionEstimator].
func (e *conversionEstimator) EstimateConversion(ctx context.Context, request models.ConversionRequest) *models.ConversionEstimate {
	rate := e.GetExchangeRate(ctx, request.SourceAsset, request.DestinationAsset, request.SourceAmount)
	e.metrics.Estimate(e.network.String(), rate != nil)
	if rate == nil {
		return nil
	}

	amount := decimal.RequireFromString(request.SourceAmount)
	r := decimal.RequireFromString(rate.Rate)

	return &models.ConversionEstimate{
		SourceAsset:       request.SourceAsset,
		DestinationAsset:  request.DestinationAsset,
		SourceAmount:      request.SourceAmount,
		DestinationAmount: amount.Mul(r).Round(amountPrecision).StringFixed(amountPrecision),
		Rate:              rate.Rate,
		Path:              rate.Path,
		Fee:               strconv.FormatInt(e.baseFee(ctx), 10),
		EstimatedTime:     e.cfg.EstimatedTime,
		PriceImpact:       e.priceImpact(ctx, request.SourceAsset, request.DestinationAsset, r),
		ValidUntil:        e.now().UTC().Add(e.cfg.QuoteTTL),
	}
}

// ExecuteConversion implements [ConversionEstimator].
func (e *conversionEstimator) ExecuteConversion(ctx context.Context, secret []byte, request models.ConversionRequest) models.ConversionResult {
	result, err := e.executeConversion(ctx, secret, request)
	e.metrics.Conversion(e.network.String(), err == nil)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("network", e.network.String()).Msg("conversion failed")
		return models.ConversionResult{
			Success:      false,
			SourceAmount: request.SourceAmount,
			Error:        PublicMessage(err),
		}
	}
	return result
}

func (e *conversionEstimator) executeConversion(ctx context.Context, secret []byte, request models.ConversionRequest) (models.ConversionResult, error) {
	kp, err := keypair.FromSeed(secret)
	if err != nil {
		return models.ConversionResult{}, ErrInvalidSecretKey
	}
	defer kp.Wipe()

	source := kp.Address()
	destination := request.DestinationAccount
	if destination == "" {
		destination = source
	}
	if destination != source && !keypair.IsValidAddress(destination) {
		return models.ConversionResult{}, ErrInvalidDestination
	}

	amount, err := decimal.NewFromString(request.SourceAmount)
	if err != nil || !amount.IsPositive() {
		return models.ConversionResult{}, fmt.Errorf("%w: source amount %q", ErrInvalidRequest, request.SourceAmount)
	}
	if !amount.Equal(amount.Truncate(amountPrecision)) {
		return models.ConversionResult{}, fmt.Errorf("%w: source amount %q has more than %d fractional digits",
			ErrInvalidRequest, request.SourceAmount, amountPrecision)
	}

	var (
		account          models.AccountSnapshot
		destinationTrust models.TrustlineInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		account, loadErr = e.ledger.LoadAccount(gctx, source)
		return loadErr
	})
	if destination != source {
		g.Go(func() error {
			destinationTrust = e.CheckTrustline(gctx, destination, request.DestinationAsset)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return models.ConversionResult{}, ErrSourceAccountNotFound
		}
		return models.ConversionResult{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	if destination == source {
		destinationTrust = trustlineFrom(account, request.DestinationAsset)
	}

	sourceTrust := trustlineFrom(account, request.SourceAsset)
	if !sourceTrust.Exists {
		return models.ConversionResult{}, fmt.Errorf("%w: source account has no trustline for %s", ErrMissingTrustline, request.SourceAsset)
	}
	if !request.DestinationAsset.IsNative() && !destinationTrust.Exists {
		return models.ConversionResult{}, fmt.Errorf("%w: destination account has no trustline for %s", ErrMissingTrustline, request.DestinationAsset)
	}

	balance, err := decimal.NewFromString(sourceTrust.Balance)
	if err != nil || balance.LessThan(amount) {
		return models.ConversionResult{}, fmt.Errorf("%w: available %s, required %s",
			ErrInsufficientBalance, sourceTrust.Balance, amount.StringFixed(amountPrecision))
	}

	paths, err := e.ledger.FindStrictSendPaths(ctx, request.SourceAsset, amount.StringFixed(amountPrecision), request.DestinationAsset)
	if err != nil {
		return models.ConversionResult{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	if len(paths) == 0 {
		return models.ConversionResult{}, ErrNoConversionPath
	}
	best := paths[0]

	destinationMin := request.DestinationMin
	if destinationMin == "" {
		if destinationMin, err = ApplySlippage(best.DestinationAmount, DefaultSlippagePercent); err != nil {
			return models.ConversionResult{}, err
		}
	}

	sendAsset, destAsset := request.SourceAsset, request.DestinationAsset
	tx := &models.Transaction{
		Network:       e.network,
		SourceAccount: source,
		Sequence:      account.Sequence + 1,
		Fee:           e.baseFee(ctx),
		Memo:          request.Memo,
		TimeBounds:    &models.TimeBounds{MaxTime: e.now().Add(transactionLifetime).Unix()},
		Operations: []models.Operation{{
			Type:        models.OperationPathPaymentStrictSend,
			Destination: destination,
			SendAsset:   &sendAsset,
			SendAmount:  amount.StringFixed(amountPrecision),
			DestAsset:   &destAsset,
			DestMin:     destinationMin,
			Path:        best.Path,
		}},
	}

	if err = e.codec.Sign(tx, kp); err != nil {
		return models.ConversionResult{}, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	payload, err := e.codec.Serialize(tx)
	if err != nil {
		return models.ConversionResult{}, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	hash, err := e.codec.Hash(tx)
	if err != nil {
		return models.ConversionResult{}, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	submitted, err := e.ledger.SubmitTransaction(ctx, payload)
	if err != nil {
		if errors.Is(err, ledger.ErrTransactionRejected) {
			return models.ConversionResult{}, fmt.Errorf("%w: %w", ErrTransactionRejected, err)
		}
		return models.ConversionResult{}, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	if submitted.Hash != "" {
		hash = submitted.Hash
	}

	return models.ConversionResult{
		Success:           true,
		Hash:              hash,
		SourceAmount:      amount.StringFixed(amountPrecision),
		DestinationAmount: best.DestinationAmount,
	}, nil
}

// baseFee returns the last ledger base fee, or the nominal fee when the
// query fails.
func (e *conversionEstimator) baseFee(ctx context.Context) int64 {
	fee, err := e.ledger.FetchBaseFee(ctx)
	if err == nil && fee > 0 {
		return fee
	}

	logger.FromContext(ctx).Debug().Err(err).Msg("base fee unavailable, using nominal fee")
	if e.cfg.NominalFee > 0 {
		return e.cfg.NominalFee
	}
	return defaultNominalFee
}

// priceImpact compares rate with the best bid of the order book, in percent.
// It is advisory: any failure yields an empty string.
func (e *conversionEstimator) priceImpact(ctx context.Context, selling, buying models.Asset, rate decimal.Decimal) string {
	book, err := e.ledger.GetOrderBook(ctx, selling, buying, 1)
	if err != nil || len(book.Bids) == 0 {
		return ""
	}

	best, err := decimal.NewFromString(book.Bids[0].Price)
	if err != nil || !best.IsPositive() {
		return ""
	}

	impact := best.Sub(rate).Div(best).Mul(decimal.NewFromInt(100))
	if impact.IsNegative() {
		impact = decimal.Zero
	}
	return impact.StringFixed(2)
}

// ApplySlippage reduces amount by percent, rounding down to the ledger
// precision. It yields the destination minimum of a conversion from the
// destination amount of an estimate.
func ApplySlippage(amount string, percent decimal.Decimal) (string, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil || value.IsNegative() {
		return "", fmt.Errorf("%w: amount %q", ErrInvalidRequest, amount)
	}
	hundred := decimal.NewFromInt(100)
	if percent.IsNegative() || percent.GreaterThanOrEqual(hundred) {
		return "", ErrInvalidSlippage
	}

	factor := hundred.Sub(percent).Div(hundred)
	return value.Mul(factor).Truncate(amountPrecision).StringFixed(amountPrecision), nil
}

func trustlineFrom(account models.AccountSnapshot, asset models.Asset) models.TrustlineInfo {
	line, ok := account.BalanceFor(asset)
	if !ok {
		return models.TrustlineInfo{Asset: asset, Exists: asset.IsNative(), Balance: zeroAmount()}
	}
	return models.TrustlineInfo{Asset: asset, Exists: true, Balance: line.Balance, Limit: line.Limit}
}

func zeroAmount() string {
	return "0"
}
