package http

import (
	"github.com/MKhiriev/invisible-wallet/internal/config"
	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/metrics"
	"github.com/MKhiriev/invisible-wallet/internal/service"
)

type Handler struct {
	services *service.Services
	auth     config.App
	metrics  *metrics.Collectors

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. auth carries the platform token key
// and issuer; collectors may be nil.
func NewHandler(services *service.Services, auth config.App, collectors *metrics.Collectors, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		auth:     auth,
		metrics:  collectors,
		logger:   logger,
	}
}
