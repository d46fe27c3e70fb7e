package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/service"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/shopspring/decimal"
)

// estimateRequest is a [models.ConversionRequest] bound to a network.
type estimateRequest struct {
	Network models.Network `json:"network"`
	models.ConversionRequest
}

func (h *Handler) estimateConversion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.estimateConversion").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	if request.Network == "" {
		request.Network = models.Testnet
	}
	if amount, err := decimal.NewFromString(request.SourceAmount); err != nil || !amount.IsPositive() {
		utils.WriteError(w, service.ErrInvalidRequest.Error()+": source amount must be positive", http.StatusBadRequest)
		return
	}

	estimator, err := h.services.Estimators.For(request.Network)
	if err != nil {
		writeServiceError(w, r, err, "no estimator for network")
		return
	}

	estimate := estimator.EstimateConversion(r.Context(), request.ConversionRequest)
	if estimate == nil {
		utils.WriteError(w, service.ErrNoConversionPath.Error(), http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, estimate, http.StatusOK)
}
