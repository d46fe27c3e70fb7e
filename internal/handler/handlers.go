package handler

import (
	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/handler/http"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, collectors *metrics.Collectors, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if cfg.App.TokenSignKey == "" {
		return nil, errNoTokenSignKey
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg.App, collectors, logger),
	}, nil
}
