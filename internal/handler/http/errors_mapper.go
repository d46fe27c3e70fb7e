package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/service"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
)

// errorStatusMap holds errors whose status differs from that of their kind.
// It is consulted before kindStatusMap.
var errorStatusMap = map[error]int{
	service.ErrTooManyAttempts:   http.StatusTooManyRequests,
	service.ErrInvalidPassphrase: http.StatusUnauthorized,
	service.ErrKeyIntegrity:      http.StatusInternalServerError,
	service.ErrEncryptionFailed:  http.StatusInternalServerError,
	service.ErrSigningFailed:     http.StatusInternalServerError,
	service.ErrLedgerUnavailable: http.StatusServiceUnavailable,
}

var kindStatusMap = map[error]int{
	service.ErrValidation:           http.StatusBadRequest,
	service.ErrConflict:             http.StatusConflict,
	service.ErrNotFound:             http.StatusNotFound,
	service.ErrAuthorization:        http.StatusForbidden,
	service.ErrCryptographic:        http.StatusUnauthorized,
	service.ErrInvalidPayload:       http.StatusUnprocessableEntity,
	service.ErrInsufficientResource: http.StatusUnprocessableEntity,
	service.ErrNetwork:              http.StatusBadGateway,
	service.ErrStorage:              http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	if status, ok := kindStatusMap[service.Kind(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeServiceError logs err and writes its public message with the mapped
// status.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Int("status", status).Msg(msg)

	utils.WriteError(w, service.PublicMessage(err), status)
}
