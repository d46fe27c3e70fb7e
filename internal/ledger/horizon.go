// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/go-resty/resty/v2"
)

const defaultRequestTimeout = 10 * time.Second

// horizonClient implements [Client] against the Horizon REST API of one
// network.
type horizonClient struct {
	network      models.Network
	client       *resty.Client
	friendbotURL string
	timeout      time.Duration
	logger       *logger.Logger
}

// NewHorizonClient constructs a [Client] for network using the URLs and
// timeout of cfg.
func NewHorizonClient(network models.Network, cfg config.Ledger, log *logger.Logger) (Client, error) {
	return newHorizonClient(network, cfg, log)
}

func newHorizonClient(network models.Network, cfg config.Ledger, log *logger.Logger) (*horizonClient, error) {
	var baseURL string
	switch network {
	case models.Testnet:
		baseURL = cfg.TestnetURL
	case models.Mainnet:
		baseURL = cfg.MainnetURL
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedNetwork, network)
	}
	if baseURL == "" {
		return nil, fmt.Errorf("%w: no Horizon URL for %s", ErrUnsupportedNetwork, network)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")

	return &horizonClient{
		network:      network,
		client:       cli,
		friendbotURL: cfg.FriendbotURL,
		timeout:      timeout,
		logger:       log,
	}, nil
}

// LoadAccount implements [Client].
func (h *horizonClient) LoadAccount(ctx context.Context, publicKey string) (models.AccountSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("account", publicKey).
		Get("/accounts/{account}")
	if err != nil {
		return models.AccountSnapshot{}, fmt.Errorf("%w: load account: %w", ErrLedgerUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.AccountSnapshot{}, ErrAccountNotFound
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountSnapshot{}, fmt.Errorf("load account: %w", err)
	}

	var account horizonAccount
	if err = json.Unmarshal(resp.Body(), &account); err != nil {
		return models.AccountSnapshot{}, fmt.Errorf("%w: decode account: %w", ErrUnexpectedResponse, err)
	}

	snapshot, err := account.toModel()
	if err != nil {
		return models.AccountSnapshot{}, fmt.Errorf("%w: account sequence: %w", ErrUnexpectedResponse, err)
	}

	return snapshot, nil
}

// FetchBaseFee implements [Client].
func (h *horizonClient) FetchBaseFee(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.client.R().SetContext(ctx).Get("/fee_stats")
	if err != nil {
		return 0, fmt.Errorf("%w: fee stats: %w", ErrLedgerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, fmt.Errorf("fee stats: %w", err)
	}

	var stats horizonFeeStats
	if err = json.Unmarshal(resp.Body(), &stats); err != nil {
		return 0, fmt.Errorf("%w: decode fee stats: %w", ErrUnexpectedResponse, err)
	}

	fee, err := strconv.ParseInt(stats.LastLedgerBaseFee, 10, 64)
	if err != nil || fee <= 0 {
		return 0, fmt.Errorf("%w: base fee %q", ErrUnexpectedResponse, stats.LastLedgerBaseFee)
	}

	return fee, nil
}

// FindStrictSendPaths implements [Client].
func (h *horizonClient) FindStrictSendPaths(ctx context.Context, sourceAsset models.Asset, sourceAmount string, destAssets ...models.Asset) ([]models.PathRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	params := url.Values{}
	setAssetParams(params, "source_", sourceAsset)
	params.Set("source_amount", sourceAmount)

	destinations := make([]string, 0, len(destAssets))
	for _, a := range destAssets {
		destinations = append(destinations, a.String())
	}
	params.Set("destination_assets", strings.Join(destinations, ","))

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/paths/strict-send")
	if err != nil {
		return nil, fmt.Errorf("%w: strict send paths: %w", ErrLedgerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, fmt.Errorf("strict send paths: %w", err)
	}

	var page horizonPathPage
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("%w: decode paths: %w", ErrUnexpectedResponse, err)
	}

	records := make([]models.PathRecord, 0, len(page.Embedded.Records))
	for _, r := range page.Embedded.Records {
		records = append(records, r.toModel())
	}

	return records, nil
}

// GetOrderBook implements [Client].
func (h *horizonClient) GetOrderBook(ctx context.Context, selling, buying models.Asset, limit int) (models.OrderBook, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	params := url.Values{}
	setAssetParams(params, "selling_", selling)
	setAssetParams(params, "buying_", buying)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/order_book")
	if err != nil {
		return models.OrderBook{}, fmt.Errorf("%w: order book: %w", ErrLedgerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.OrderBook{}, fmt.Errorf("order book: %w", err)
	}

	var book horizonOrderBook
	if err = json.Unmarshal(resp.Body(), &book); err != nil {
		return models.OrderBook{}, fmt.Errorf("%w: decode order book: %w", ErrUnexpectedResponse, err)
	}

	return models.OrderBook{Bids: book.Bids, Asks: book.Asks}, nil
}

// SubmitTransaction implements [Client].
func (h *horizonClient) SubmitTransaction(ctx context.Context, payload string) (models.SubmitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"tx": payload}).
		Post("/transactions")
	if err != nil {
		return models.SubmitResult{}, fmt.Errorf("%w: submit transaction: %w", ErrLedgerUnavailable, err)
	}

	status := resp.StatusCode()
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		rejected := &RejectedError{Status: status}

		var problem horizonProblem
		if json.Unmarshal(resp.Body(), &problem) == nil {
			rejected.TransactionCode = problem.Extras.ResultCodes.Transaction
			rejected.OperationCodes = problem.Extras.ResultCodes.Operations
		}

		h.logger.Warn().
			Str("network", h.network.String()).
			Str("tx_code", rejected.TransactionCode).
			Strs("op_codes", rejected.OperationCodes).
			Msg("transaction rejected by ledger")

		return models.SubmitResult{}, rejected
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SubmitResult{}, fmt.Errorf("submit transaction: %w", err)
	}

	var result horizonSubmitResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.SubmitResult{}, fmt.Errorf("%w: decode submit result: %w", ErrUnexpectedResponse, err)
	}

	return models.SubmitResult{Hash: result.Hash, Ledger: result.Ledger}, nil
}

// FundTestAccount implements [Client].
func (h *horizonClient) FundTestAccount(ctx context.Context, publicKey string) error {
	if h.network != models.Testnet || h.friendbotURL == "" {
		return ErrFundingUnsupported
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("addr", publicKey).
		Get(h.friendbotURL)
	if err != nil {
		return fmt.Errorf("%w: friendbot: %w", ErrLedgerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("friendbot: %w", err)
	}

	return nil
}

func setAssetParams(params url.Values, prefix string, asset models.Asset) {
	params.Set(prefix+"asset_type", asset.Type())
	if asset.IsNative() {
		return
	}
	params.Set(prefix+"asset_code", asset.Code)
	params.Set(prefix+"asset_issuer", asset.Issuer)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusTooManyRequests {
		return fmt.Errorf("%w: http %d: %s", ErrLedgerUnavailable, resp.StatusCode(), body)
	}
	return fmt.Errorf("%w: http %d: %s", ErrUnexpectedResponse, resp.StatusCode(), body)
}
