package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/service"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: service.InvisibleWalletService
// ─────────────────────────────────────────────

type mockWalletService struct {
	createFn  func(ctx context.Context, request models.CreateWalletRequest) (models.WalletResponse, error)
	recoverFn func(ctx context.Context, request models.RecoverWalletRequest) (models.WalletResponse, error)
	signFn    func(ctx context.Context, request models.SignTransactionRequest) (models.SignResult, error)
	balanceFn func(ctx context.Context, email, platformID string, network models.Network) (*models.WalletWithBalance, error)
	convertFn func(ctx context.Context, request models.WalletConversionRequest) (models.ConversionResult, error)
}

func (m *mockWalletService) CreateWallet(ctx context.Context, request models.CreateWalletRequest) (models.WalletResponse, error) {
	return m.createFn(ctx, request)
}

func (m *mockWalletService) RecoverWallet(ctx context.Context, request models.RecoverWalletRequest) (models.WalletResponse, error) {
	return m.recoverFn(ctx, request)
}

func (m *mockWalletService) SignTransaction(ctx context.Context, request models.SignTransactionRequest) (models.SignResult, error) {
	return m.signFn(ctx, request)
}

func (m *mockWalletService) GetWalletWithBalance(ctx context.Context, email, platformID string, network models.Network) (*models.WalletWithBalance, error) {
	return m.balanceFn(ctx, email, platformID, network)
}

func (m *mockWalletService) ConvertFromWallet(ctx context.Context, request models.WalletConversionRequest) (models.ConversionResult, error) {
	return m.convertFn(ctx, request)
}

// ─────────────────────────────────────────────
// Mock: service.ConversionEstimator
// ─────────────────────────────────────────────

type mockEstimator struct {
	estimateFn func(ctx context.Context, request models.ConversionRequest) *models.ConversionEstimate
}

func (m *mockEstimator) CheckTrustline(_ context.Context, _ string, asset models.Asset) models.TrustlineInfo {
	return models.TrustlineInfo{Asset: asset, Balance: "0"}
}

func (m *mockEstimator) GetExchangeRate(_ context.Context, _, _ models.Asset, _ string) *models.ConversionRate {
	return nil
}

func (m *mockEstimator) EstimateConversion(ctx context.Context, request models.ConversionRequest) *models.ConversionEstimate {
	return m.estimateFn(ctx, request)
}

func (m *mockEstimator) ExecuteConversion(_ context.Context, _ []byte, request models.ConversionRequest) models.ConversionResult {
	return models.ConversionResult{SourceAmount: request.SourceAmount}
}

// ─────────────────────────────────────────────
// Mock: service.AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
	build   models.AppBuildInfo
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return m.build
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const (
	testSignKey  = "test-sign-key"
	testIssuer   = "invisible-wallet-test"
	testPlatform = "app-1"
)

var testAuth = config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer}

type routerFixture struct {
	wallets    *mockWalletService
	estimator  *mockEstimator
	collectors *metrics.Collectors
	router     http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	f := &routerFixture{
		wallets:    &mockWalletService{},
		estimator:  &mockEstimator{},
		collectors: metrics.New(),
	}

	h := NewHandler(&service.Services{
		WalletService:  f.wallets,
		Estimators:     service.ConversionEstimators{models.Testnet: f.estimator},
		AppInfoService: &mockAppInfoService{version: "1.0.0", build: models.NewAppBuildInfo("v1.0.0", "2026-10-01", "abc123")},
	}, testAuth, f.collectors, logger.Nop())
	f.router = h.Init()

	return f
}

// platformToken mints a valid token for platformID.
func platformToken(t *testing.T, platformID string) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testIssuer, platformID, time.Hour, testSignKey)
	require.NoError(t, err)
	return token.SignedString
}

// newAPIRequest builds an authorized JSON request for testPlatform.
func newAPIRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+platformToken(t, testPlatform))
	return req
}
