package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/crypto"
	"github.com/MKhiriev/invisible-wallet/internal/keypair"
	"github.com/MKhiriev/invisible-wallet/internal/ledger"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/mock"
	"github.com/MKhiriev/invisible-wallet/internal/store"
	"github.com/MKhiriev/invisible-wallet/internal/txcodec"
	"github.com/MKhiriev/invisible-wallet/internal/validators"
	"github.com/MKhiriev/invisible-wallet/internal/workers"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// Mock: store.WalletStore
// ─────────────────────────────────────────────

// mockWalletStore keeps wallets and audit entries in memory. Any fn field
// replaces the in-memory behaviour of its method.
type mockWalletStore struct {
	mu      sync.Mutex
	wallets map[string]models.InvisibleWallet
	audits  []models.AuditLogEntry

	saveWalletFn    func(ctx context.Context, wallet models.InvisibleWallet) error
	getWalletFn     func(ctx context.Context, email, platformID string, network models.Network) (models.InvisibleWallet, error)
	getWalletByIDFn func(ctx context.Context, id string) (models.InvisibleWallet, error)
	updateAccessFn  func(ctx context.Context, id string, accessedAt time.Time) error
	saveAuditLogFn  func(ctx context.Context, entry models.AuditLogEntry) error
}

func newMockWalletStore() *mockWalletStore {
	return &mockWalletStore{wallets: make(map[string]models.InvisibleWallet)}
}

func (m *mockWalletStore) SaveWallet(ctx context.Context, wallet models.InvisibleWallet) error {
	if m.saveWalletFn != nil {
		return m.saveWalletFn(ctx, wallet)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.Email == wallet.Email && w.PlatformID == wallet.PlatformID && w.Network == wallet.Network {
			return store.ErrWalletAlreadyExists
		}
	}
	m.wallets[wallet.ID] = wallet
	return nil
}

func (m *mockWalletStore) GetWallet(ctx context.Context, email, platformID string, network models.Network) (models.InvisibleWallet, error) {
	if m.getWalletFn != nil {
		return m.getWalletFn(ctx, email, platformID, network)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.Email == email && w.PlatformID == platformID && w.Network == network {
			return w, nil
		}
	}
	return models.InvisibleWallet{}, store.ErrWalletNotFound
}

func (m *mockWalletStore) GetWalletByID(ctx context.Context, id string) (models.InvisibleWallet, error) {
	if m.getWalletByIDFn != nil {
		return m.getWalletByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return models.InvisibleWallet{}, store.ErrWalletNotFound
	}
	return w, nil
}

func (m *mockWalletStore) UpdateWalletAccess(ctx context.Context, id string, accessedAt time.Time) error {
	if m.updateAccessFn != nil {
		return m.updateAccessFn(ctx, id, accessedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return store.ErrWalletNotFound
	}
	w.LastAccessedAt = accessedAt
	m.wallets[id] = w
	return nil
}

func (m *mockWalletStore) DeleteWallet(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[id]; !ok {
		return store.ErrWalletNotFound
	}
	delete(m.wallets, id)
	return nil
}

func (m *mockWalletStore) SaveAuditLog(ctx context.Context, entry models.AuditLogEntry) error {
	if m.saveAuditLogFn != nil {
		return m.saveAuditLogFn(ctx, entry)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits = append(m.audits, entry)
	return nil
}

func (m *mockWalletStore) ListAuditLogs(ctx context.Context, walletID string, limit uint64) ([]models.AuditLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AuditLogEntry
	for _, e := range m.audits {
		if e.WalletID == walletID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockWalletStore) auditEntries() []models.AuditLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLogEntry(nil), m.audits...)
}

func (m *mockWalletStore) walletCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.wallets)
}

// ─────────────────────────────────────────────
// Mock: cache.AttemptLimiter
// ─────────────────────────────────────────────

type mockLimiter struct {
	mu       sync.Mutex
	failures map[string]int64
	max      int64

	lockedErr error
}

func newMockLimiter(max int64) *mockLimiter {
	return &mockLimiter{failures: make(map[string]int64), max: max}
}

func (m *mockLimiter) Locked(ctx context.Context, key string) (bool, time.Duration, error) {
	if m.lockedErr != nil {
		return false, 0, m.lockedErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.max > 0 && m.failures[key] >= m.max, time.Minute, nil
}

func (m *mockLimiter) RegisterFailure(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[key]++
	return m.failures[key], nil
}

func (m *mockLimiter) Reset(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, key)
	return nil
}

func (m *mockLimiter) count(key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[key]
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const (
	testEmail      = "alice@example.com"
	testPassphrase = "correct-horse"
	testPlatform   = "app-1"
)

var testEpoch = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	current := testEpoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

type walletFixture struct {
	svc        *invisibleWalletService
	store      *mockWalletStore
	client     *mock.MockClient
	runner     *workers.Runner
	limiter    *mockLimiter
	collectors *metrics.Collectors

	fundMu  sync.Mutex
	funded  []string
	fundErr error
}

// fundedAccounts waits for background tasks and returns the funded keys.
func (f *walletFixture) fundedAccounts() []string {
	f.runner.Wait()
	f.fundMu.Lock()
	defer f.fundMu.Unlock()
	return append([]string(nil), f.funded...)
}

func newWalletFixture(t *testing.T) *walletFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	registry := ledger.NewRegistry(map[models.Network]ledger.Client{models.Testnet: client})
	collectors := metrics.New()
	codec := txcodec.New()
	runner := workers.NewRunner(time.Second)
	t.Cleanup(runner.Wait)

	estimator := NewConversionEstimator(models.Testnet, client, codec, config.Conversion{QuoteTTL: 30 * time.Second}, collectors, logger.Nop())
	estimator.(*conversionEstimator).now = func() time.Time { return testEpoch }

	f := &walletFixture{
		store:      newMockWalletStore(),
		client:     client,
		runner:     runner,
		limiter:    newMockLimiter(3),
		collectors: collectors,
	}

	client.EXPECT().FundTestAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, publicKey string) error {
			f.fundMu.Lock()
			defer f.fundMu.Unlock()
			if f.fundErr != nil {
				return f.fundErr
			}
			f.funded = append(f.funded, publicKey)
			return nil
		}).AnyTimes()

	svc := NewInvisibleWalletService(WalletDependencies{
		Store:      f.store,
		Crypto:     crypto.NewCryptoService(config.Crypto{Iterations: 1000}),
		Ledgers:    registry,
		Estimators: ConversionEstimators{models.Testnet: estimator},
		Validator:  validators.NewWalletValidator(0),
		Launcher:   runner,
		Limiter:    f.limiter,
		Codec:      codec,
		Metrics:    collectors,
	}, config.Workers{AuditTimeout: time.Second}, logger.Nop())

	f.svc = svc.(*invisibleWalletService)
	f.svc.now = tickingClock()

	return f
}

func (f *walletFixture) createWallet(t *testing.T, email, platformID string) models.WalletResponse {
	t.Helper()

	wallet, err := f.svc.CreateWallet(context.Background(), models.CreateWalletRequest{
		Email:      email,
		Passphrase: testPassphrase,
		PlatformID: platformID,
		Network:    models.Testnet,
	})
	require.NoError(t, err)
	return wallet
}

// paymentPayload builds an unsigned payment from source to a fresh account.
func paymentPayload(t *testing.T, source string) string {
	t.Helper()

	payload, err := txcodec.New().Serialize(&models.Transaction{
		SourceAccount: source,
		Sequence:      42,
		Fee:           100,
		Operations: []models.Operation{{
			Type:        models.OperationPayment,
			Destination: randomAddress(t),
			Asset:       &models.Asset{},
			Amount:      "10.0000000",
		}},
	})
	require.NoError(t, err)
	return payload
}

func randomAddress(t *testing.T) string {
	t.Helper()
	kp, err := keypair.Random()
	require.NoError(t, err)
	defer kp.Wipe()
	return kp.Address()
}

func randomSeed(t *testing.T) ([]byte, string) {
	t.Helper()
	kp, err := keypair.Random()
	require.NoError(t, err)
	defer kp.Wipe()
	seed, err := kp.Seed()
	require.NoError(t, err)
	return seed, kp.Address()
}
