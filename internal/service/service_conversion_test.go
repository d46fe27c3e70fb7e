package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/ledger"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/mock"
	"github.com/MKhiriev/invisible-wallet/internal/txcodec"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestEstimator(t *testing.T, cfg config.Conversion) (*conversionEstimator, *mock.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	e := NewConversionEstimator(models.Testnet, client, txcodec.New(), cfg, metrics.New(), logger.Nop()).(*conversionEstimator)
	e.now = func() time.Time { return testEpoch }
	return e, client
}

func usdcAsset(t *testing.T) models.Asset {
	return models.Asset{Code: "USDC", Issuer: randomAddress(t)}
}

// ─────────────────────────────────────────────
// CheckTrustline
// ─────────────────────────────────────────────

func TestCheckTrustline(t *testing.T) {
	usdc := usdcAsset(t)
	account := randomAddress(t)

	tests := []struct {
		name     string
		asset    models.Asset
		snapshot models.AccountSnapshot
		loadErr  error
		want     models.TrustlineInfo
	}{
		{
			name:    "account does not exist",
			asset:   usdc,
			loadErr: ledger.ErrAccountNotFound,
			want:    models.TrustlineInfo{Asset: usdc, Exists: false, Balance: "0"},
		},
		{
			name:    "ledger unavailable",
			asset:   usdc,
			loadErr: ledger.ErrLedgerUnavailable,
			want:    models.TrustlineInfo{Asset: usdc, Exists: false, Balance: "0"},
		},
		{
			name:    "native always exists",
			asset:   models.NativeAsset(),
			loadErr: ledger.ErrAccountNotFound,
			want:    models.TrustlineInfo{Asset: models.NativeAsset(), Exists: true, Balance: "0"},
		},
		{
			name:  "trustline present",
			asset: usdc,
			snapshot: models.AccountSnapshot{Balances: []models.Balance{
				{Asset: models.NativeAsset(), Balance: "20.0000000"},
				{Asset: usdc, Balance: "3.5000000", Limit: "100.0000000"},
			}},
			want: models.TrustlineInfo{Asset: usdc, Exists: true, Balance: "3.5000000", Limit: "100.0000000"},
		},
		{
			name:     "trustline missing",
			asset:    usdc,
			snapshot: models.AccountSnapshot{Balances: []models.Balance{{Asset: models.NativeAsset(), Balance: "20.0000000"}}},
			want:     models.TrustlineInfo{Asset: usdc, Exists: false, Balance: "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, client := newTestEstimator(t, config.Conversion{})
			client.EXPECT().LoadAccount(gomock.Any(), account).Return(tt.snapshot, tt.loadErr)

			got := e.CheckTrustline(context.Background(), account, tt.asset)

			assert.Equal(t, tt.want, got)
		})
	}
}

// ─────────────────────────────────────────────
// GetExchangeRate / EstimateConversion
// ─────────────────────────────────────────────

func TestGetExchangeRate(t *testing.T) {
	usdc := usdcAsset(t)

	t.Run("best path wins", func(t *testing.T) {
		e, client := newTestEstimator(t, config.Conversion{})
		client.EXPECT().FindStrictSendPaths(gomock.Any(), models.NativeAsset(), "100", usdc).Return([]models.PathRecord{
			{DestinationAmount: "12.0000000"},
			{DestinationAmount: "11.0000000"},
		}, nil)

		rate := e.GetExchangeRate(context.Background(), models.NativeAsset(), usdc, "100")

		require.NotNil(t, rate)
		assert.Equal(t, "0.1200000", rate.Rate)
		assert.Equal(t, "12.0000000", rate.DestinationAmount)
	})

	t.Run("no path", func(t *testing.T) {
		e, client := newTestEstimator(t, config.Conversion{})
		client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		assert.Nil(t, e.GetExchangeRate(context.Background(), models.NativeAsset(), usdc, "100"))
	})

	t.Run("ledger error", func(t *testing.T) {
		e, client := newTestEstimator(t, config.Conversion{})
		client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, ledger.ErrLedgerUnavailable)

		assert.Nil(t, e.GetExchangeRate(context.Background(), models.NativeAsset(), usdc, "100"))
	})

	t.Run("non-positive amount skips the ledger", func(t *testing.T) {
		e, client := newTestEstimator(t, config.Conversion{})
		client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		assert.Nil(t, e.GetExchangeRate(context.Background(), models.NativeAsset(), usdc, "0"))
		assert.Nil(t, e.GetExchangeRate(context.Background(), models.NativeAsset(), usdc, "abc"))
	})
}

func TestEstimateConversion_DestinationMatchesRate(t *testing.T) {
	usdc := usdcAsset(t)
	amounts := []struct{ source, received string }{
		{"100", "12.3456789"},
		{"3.3333333", "1.0000000"},
		{"0.0000001", "0.0000003"},
		{"7", "22.0000001"},
	}

	for _, a := range amounts {
		t.Run(a.source, func(t *testing.T) {
			e, client := newTestEstimator(t, config.Conversion{QuoteTTL: 30 * time.Second, EstimatedTime: 5 * time.Second})
			client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), a.source, gomock.Any()).
				Return([]models.PathRecord{{DestinationAmount: a.received}}, nil)
			client.EXPECT().FetchBaseFee(gomock.Any()).Return(int64(200), nil)
			client.EXPECT().GetOrderBook(gomock.Any(), gomock.Any(), gomock.Any(), 1).Return(models.OrderBook{}, nil)

			estimate := e.EstimateConversion(context.Background(), models.ConversionRequest{
				SourceAsset:      models.NativeAsset(),
				DestinationAsset: usdc,
				SourceAmount:     a.source,
			})

			require.NotNil(t, estimate)
			source := decimal.RequireFromString(estimate.SourceAmount)
			rate := decimal.RequireFromString(estimate.Rate)
			destination := decimal.RequireFromString(estimate.DestinationAmount)
			diff := destination.Sub(source.Mul(rate)).Abs()
			assert.True(t, diff.LessThan(decimal.New(1, -7)), "diff %s", diff)

			assert.Equal(t, "200", estimate.Fee)
			assert.Equal(t, 5*time.Second, estimate.EstimatedTime)
			assert.Equal(t, testEpoch.Add(30*time.Second), estimate.ValidUntil)
			assert.Empty(t, estimate.PriceImpact)
		})
	}
}

func TestEstimateConversion_NominalFeeFallback(t *testing.T) {
	usdc := usdcAsset(t)

	tests := []struct {
		name    string
		cfg     config.Conversion
		wantFee string
	}{
		{name: "configured", cfg: config.Conversion{NominalFee: 150}, wantFee: "150"},
		{name: "default", cfg: config.Conversion{}, wantFee: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, client := newTestEstimator(t, tt.cfg)
			client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return([]models.PathRecord{{DestinationAmount: "10"}}, nil)
			client.EXPECT().FetchBaseFee(gomock.Any()).Return(int64(0), ledger.ErrLedgerUnavailable)
			client.EXPECT().GetOrderBook(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(models.OrderBook{}, errors.New("timeout"))

			estimate := e.EstimateConversion(context.Background(), models.ConversionRequest{
				SourceAsset:      models.NativeAsset(),
				DestinationAsset: usdc,
				SourceAmount:     "10",
			})

			require.NotNil(t, estimate)
			assert.Equal(t, tt.wantFee, estimate.Fee)
		})
	}
}

func TestEstimateConversion_PriceImpact(t *testing.T) {
	usdc := usdcAsset(t)
	e, client := newTestEstimator(t, config.Conversion{})
	client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.PathRecord{{DestinationAmount: "95"}}, nil)
	client.EXPECT().FetchBaseFee(gomock.Any()).Return(int64(100), nil)
	client.EXPECT().GetOrderBook(gomock.Any(), models.NativeAsset(), usdc, 1).Return(models.OrderBook{
		Bids: []models.OrderBookEntry{{Price: "1.0000000", Amount: "1000"}},
	}, nil)

	estimate := e.EstimateConversion(context.Background(), models.ConversionRequest{
		SourceAsset:      models.NativeAsset(),
		DestinationAsset: usdc,
		SourceAmount:     "100",
	})

	require.NotNil(t, estimate)
	assert.Equal(t, "5.00", estimate.PriceImpact)
}

func TestEstimateConversion_NoPath(t *testing.T) {
	e, client := newTestEstimator(t, config.Conversion{})
	client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.PathRecord{}, nil)
	client.EXPECT().FetchBaseFee(gomock.Any()).Times(0)

	estimate := e.EstimateConversion(context.Background(), models.ConversionRequest{
		SourceAsset:      models.NativeAsset(),
		DestinationAsset: usdcAsset(t),
		SourceAmount:     "100",
	})

	assert.Nil(t, estimate)
	count, err := testutil.GatherAndCount(e.metrics.Registry(), "invisible_wallet_conversion_estimates_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// ─────────────────────────────────────────────
// ExecuteConversion
// ─────────────────────────────────────────────

func TestExecuteConversion_InsufficientBalanceSubmitsNothing(t *testing.T) {
	e, client := newTestEstimator(t, config.Conversion{})
	seed, address := randomSeed(t)
	usdc := usdcAsset(t)

	client.EXPECT().LoadAccount(gomock.Any(), address).Return(models.AccountSnapshot{
		AccountID: address,
		Sequence:  7,
		Balances: []models.Balance{
			{Asset: models.NativeAsset(), Balance: "10.0000000"},
			{Asset: usdc, Balance: "0.0000000"},
		},
	}, nil)
	client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	client.EXPECT().SubmitTransaction(gomock.Any(), gomock.Any()).Times(0)

	result := e.ExecuteConversion(context.Background(), seed, models.ConversionRequest{
		SourceAsset:      models.NativeAsset(),
		DestinationAsset: usdc,
		SourceAmount:     "50",
		DestinationMin:   "5",
	})

	assert.False(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Error, "Insufficient balance"), result.Error)
}

func TestExecuteConversion_MissingTrustlines(t *testing.T) {
	usdc := usdcAsset(t)

	t.Run("source lacks source asset", func(t *testing.T) {
		e, client := newTestEstimator(t, config.Conversion{})
		seed, address := randomSeed(t)
		client.EXPECT().LoadAccount(gomock.Any(), address).Return(models.AccountSnapshot{
			Balances: []models.Balance{{Asset: models.NativeAsset(), Balance: "10.0000000"}},
		}, nil)
		client.EXPECT().SubmitTransaction(gomock.Any(), gomock.Any()).Times(0)

		result := e.ExecuteConversion(context.Background(), seed, models.ConversionRequest{
			SourceAsset:      usdc,
			DestinationAsset: models.NativeAsset(),
			SourceAmount:     "1",
			DestinationMin:   "1",
		})

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "source account has no trustline")
	})

	t.Run("destination lacks destination asset", func(t *testing.T) {
		e, client := newTestEstimator(t, config.Conversion{})
		seed, address := randomSeed(t)
		destination := randomAddress(t)
		client.EXPECT().LoadAccount(gomock.Any(), address).Return(models.AccountSnapshot{
			Balances: []models.Balance{{Asset: models.NativeAsset(), Balance: "10.0000000"}},
		}, nil)
		client.EXPECT().LoadAccount(gomock.Any(), destination).Return(models.AccountSnapshot{
			Balances: []models.Balance{{Asset: models.NativeAsset(), Balance: "1.0000000"}},
		}, nil)
		client.EXPECT().SubmitTransaction(gomock.Any(), gomock.Any()).Times(0)

		result := e.ExecuteConversion(context.Background(), seed, models.ConversionRequest{
			SourceAsset:        models.NativeAsset(),
			DestinationAsset:   usdc,
			SourceAmount:       "1",
			DestinationMin:     "1",
			DestinationAccount: destination,
		})

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "destination account has no trustline")
	})
}

func TestExecuteConversion_InvalidDestination(t *testing.T) {
	e, client := newTestEstimator(t, config.Conversion{})
	seed, _ := randomSeed(t)
	client.EXPECT().LoadAccount(gomock.Any(), gomock.Any()).Times(0)

	result := e.ExecuteConversion(context.Background(), seed, models.ConversionRequest{
		SourceAsset:        models.NativeAsset(),
		DestinationAsset:   usdcAsset(t),
		SourceAmount:       "1",
		DestinationAccount: "GNOTANACCOUNT",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "invalid destination account", result.Error)
}

func TestExecuteConversion_InvalidSecret(t *testing.T) {
	e, _ := newTestEstimator(t, config.Conversion{})

	result := e.ExecuteConversion(context.Background(), []byte("SNOTASEED"), models.ConversionRequest{
		SourceAsset:      models.NativeAsset(),
		DestinationAsset: usdcAsset(t),
		SourceAmount:     "1",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "invalid secret key", result.Error)
}

func TestExecuteConversion_RejectsAmountBeyondLedgerPrecision(t *testing.T) {
	e, client := newTestEstimator(t, config.Conversion{})
	seed, _ := randomSeed(t)
	client.EXPECT().LoadAccount(gomock.Any(), gomock.Any()).Times(0)
	client.EXPECT().SubmitTransaction(gomock.Any(), gomock.Any()).Times(0)

	result := e.ExecuteConversion(context.Background(), seed, models.ConversionRequest{
		SourceAsset:      models.NativeAsset(),
		DestinationAsset: usdcAsset(t),
		SourceAmount:     "1.12345678",
	})

	assert.False(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Error, "invalid request"), result.Error)
	assert.Contains(t, result.Error, "fractional digits")
}

func TestExecuteConversion_SubmitsSignedPathPayment(t *testing.T) {
	e, client := newTestEstimator(t, config.Conversion{})
	seed, address := randomSeed(t)
	usdc := usdcAsset(t)
	destination := randomAddress(t)
	hop := usdcAsset(t)
	hop.Code = "EURC"

	client.EXPECT().LoadAccount(gomock.Any(), address).Return(models.AccountSnapshot{
		AccountID: address,
		Sequence:  41,
		Balances:  []models.Balance{{Asset: models.NativeAsset(), Balance: "100.0000000"}},
	}, nil)
	client.EXPECT().LoadAccount(gomock.Any(), destination).Return(models.AccountSnapshot{
		Balances: []models.Balance{{Asset: usdc, Balance: "0.0000000", Limit: "10"}},
	}, nil)
	client.EXPECT().FindStrictSendPaths(gomock.Any(), models.NativeAsset(), "25.0000000", usdc).
		Return([]models.PathRecord{{DestinationAmount: "3.0000000", Path: []models.Asset{hop}}}, nil)
	client.EXPECT().FetchBaseFee(gomock.Any()).Return(int64(300), nil)

	var submitted string
	client.EXPECT().SubmitTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload string) (models.SubmitResult, error) {
			submitted = payload
			return models.SubmitResult{Ledger: 9}, nil
		})

	result := e.ExecuteConversion(context.Background(), seed, models.ConversionRequest{
		SourceAsset:        models.NativeAsset(),
		DestinationAsset:   usdc,
		SourceAmount:       "25",
		DestinationMin:     "2.5",
		DestinationAccount: destination,
		Memo:               "swap",
	})

	require.True(t, result.Success, result.Error)
	assert.Len(t, result.Hash, 64)
	assert.Equal(t, "25.0000000", result.SourceAmount)
	assert.Equal(t, "3.0000000", result.DestinationAmount)

	tx, err := txcodec.New().Parse(submitted, models.Testnet)
	require.NoError(t, err)
	require.NoError(t, txcodec.VerifySignature(tx, address))
	assert.Equal(t, int64(42), tx.Sequence)
	assert.Equal(t, int64(300), tx.Fee)
	assert.Equal(t, "swap", tx.Memo)
	require.NotNil(t, tx.TimeBounds)
	assert.Equal(t, testEpoch.Add(transactionLifetime).Unix(), tx.TimeBounds.MaxTime)

	require.Len(t, tx.Operations, 1)
	op := tx.Operations[0]
	assert.Equal(t, models.OperationPathPaymentStrictSend, op.Type)
	assert.Equal(t, destination, op.Destination)
	assert.Equal(t, "2.5000000", op.DestMin)
	assert.Equal(t, []models.Asset{hop}, op.Path)

	hash, err := txcodec.New().Hash(tx)
	require.NoError(t, err)
	assert.Equal(t, hash, result.Hash)
}

func TestExecuteConversion_LedgerFailures(t *testing.T) {
	tests := []struct {
		name      string
		loadErr   error
		submitErr error
		wantMsg   string
	}{
		{
			name:    "source account missing",
			loadErr: ledger.ErrAccountNotFound,
			wantMsg: "source account does not exist on the ledger",
		},
		{
			name:    "ledger down",
			loadErr: ledger.ErrLedgerUnavailable,
			wantMsg: "ledger unavailable",
		},
		{
			name:      "rejected",
			submitErr: &ledger.RejectedError{Status: 400, TransactionCode: "tx_failed", OperationCodes: []string{"op_under_dest_min"}},
			wantMsg:   "transaction rejected by the ledger",
		},
		{
			name:      "submission timeout",
			submitErr: context.DeadlineExceeded,
			wantMsg:   "ledger unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, client := newTestEstimator(t, config.Conversion{})
			seed, address := randomSeed(t)
			usdc := usdcAsset(t)

			client.EXPECT().LoadAccount(gomock.Any(), address).Return(models.AccountSnapshot{
				AccountID: address,
				Balances: []models.Balance{
					{Asset: models.NativeAsset(), Balance: "100.0000000"},
					{Asset: usdc, Balance: "0"},
				},
			}, tt.loadErr)
			if tt.loadErr == nil {
				client.EXPECT().FindStrictSendPaths(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]models.PathRecord{{DestinationAmount: "1"}}, nil)
				client.EXPECT().FetchBaseFee(gomock.Any()).Return(int64(100), nil)
				client.EXPECT().SubmitTransaction(gomock.Any(), gomock.Any()).Return(models.SubmitResult{}, tt.submitErr)
			}

			result := e.ExecuteConversion(context.Background(), seed, models.ConversionRequest{
				SourceAsset:      models.NativeAsset(),
				DestinationAsset: usdc,
				SourceAmount:     "1",
				DestinationMin:   "0.9",
			})

			assert.False(t, result.Success)
			assert.Equal(t, tt.wantMsg, result.Error)
		})
	}
}

// ─────────────────────────────────────────────
// ApplySlippage
// ─────────────────────────────────────────────

func TestApplySlippage(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		percent decimal.Decimal
		want    string
		wantErr error
	}{
		{name: "default margin", amount: "100", percent: DefaultSlippagePercent, want: "95.0000000"},
		{name: "rounds down", amount: "0.0000019", percent: decimal.NewFromInt(50), want: "0.0000009"},
		{name: "zero margin", amount: "12.3456789", percent: decimal.Zero, want: "12.3456789"},
		{name: "negative percent", amount: "1", percent: decimal.NewFromInt(-1), wantErr: ErrInvalidSlippage},
		{name: "full percent", amount: "1", percent: decimal.NewFromInt(100), wantErr: ErrInvalidSlippage},
		{name: "bad amount", amount: "x", percent: DefaultSlippagePercent, wantErr: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplySlippage(tt.amount, tt.percent)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
