package service

import (
	"fmt"

	"github.com/MKhiriev/invisible-wallet/internal/cache"
	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/crypto"
	"github.com/MKhiriev/invisible-wallet/internal/ledger"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/store"
	"github.com/MKhiriev/invisible-wallet/internal/txcodec"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
	"github.com/MKhiriev/invisible-wallet/internal/validators"
	"github.com/MKhiriev/invisible-wallet/internal/workers"
	"github.com/MKhiriev/invisible-wallet/models"
)

type Services struct {
	WalletService  InvisibleWalletService
	Estimators     ConversionEstimators
	AppInfoService AppInfoService
}

// NewServices wires the services of the HTTP server. One conversion
// estimator is built for every network the registry serves.
func NewServices(
	storages store.WalletStore,
	ledgers *ledger.Registry,
	limiter cache.AttemptLimiter,
	launcher workers.Launcher,
	collectors *metrics.Collectors,
	build models.AppBuildInfo,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	codec := txcodec.New()
	estimators := make(ConversionEstimators)
	for _, network := range ledgers.Networks() {
		client, err := ledgers.Client(network)
		if err != nil {
			return nil, fmt.Errorf("conversion estimator for %s: %w", network, err)
		}
		estimators[network] = NewConversionEstimator(network, client, codec, cfg.Conversion, collectors, logger)
	}

	walletService := NewInvisibleWalletService(WalletDependencies{
		Store:      storages,
		Crypto:     crypto.NewCryptoService(cfg.Crypto),
		Ledgers:    ledgers,
		Estimators: estimators,
		Validator:  validators.NewWalletValidator(cfg.App.MinPassphraseScore),
		Launcher:   launcher,
		Limiter:    limiter,
		Codec:      codec,
		Metrics:    collectors,
		IDs:        utils.NewUUIDGenerator(),
	}, cfg.Workers, logger)

	return &Services{
		WalletService:  walletService,
		Estimators:     estimators,
		AppInfoService: appInfo,
	}, nil
}
