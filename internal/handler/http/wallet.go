package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/service"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createWallet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.createWallet").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	request.PlatformID = platformID(r)

	wallet, err := h.services.WalletService.CreateWallet(r.Context(), request)
	if err != nil {
		writeServiceError(w, r, err, "wallet creation failed")
		return
	}

	utils.WriteJSON(w, wallet, http.StatusCreated)
}

func (h *Handler) recoverWallet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.RecoverWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.recoverWallet").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	request.PlatformID = platformID(r)

	wallet, err := h.services.WalletService.RecoverWallet(r.Context(), request)
	if err != nil {
		writeServiceError(w, r, err, "wallet recovery failed")
		return
	}

	utils.WriteJSON(w, wallet, http.StatusOK)
}

// signTransaction answers with the SignResult even on failure once the
// service produced one, so callers always read the outcome from the body.
func (h *Handler) signTransaction(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.SignTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.signTransaction").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	if !bindWalletID(r, &request.WalletID) {
		utils.WriteError(w, ErrWalletIDMismatch.Error(), http.StatusBadRequest)
		return
	}
	request.PlatformID = platformID(r)

	result, err := h.services.WalletService.SignTransaction(r.Context(), request)
	if err != nil {
		if result.Error == "" {
			writeServiceError(w, r, err, "transaction signing failed")
			return
		}
		status := statusFromError(err)
		log.Warn().Err(err).Int("status", status).Str("wallet_id", request.WalletID).Msg("transaction signing failed")
		utils.WriteJSON(w, result, status)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) convertFromWallet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.WalletConversionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.convertFromWallet").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	if !bindWalletID(r, &request.WalletID) {
		utils.WriteError(w, ErrWalletIDMismatch.Error(), http.StatusBadRequest)
		return
	}
	request.PlatformID = platformID(r)

	result, err := h.services.WalletService.ConvertFromWallet(r.Context(), request)
	if err != nil {
		if result.Error == "" {
			writeServiceError(w, r, err, "conversion failed")
			return
		}
		status := statusFromError(err)
		log.Warn().Err(err).Int("status", status).Str("wallet_id", request.WalletID).Msg("conversion failed")
		utils.WriteJSON(w, result, status)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) getWalletBalance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := query.Get("email")
	network := models.Network(query.Get("network"))
	if network == "" {
		network = models.Testnet
	}

	wallet, err := h.services.WalletService.GetWalletWithBalance(r.Context(), email, platformID(r), network)
	if err != nil {
		writeServiceError(w, r, err, "balance lookup failed")
		return
	}
	if wallet == nil {
		utils.WriteError(w, service.ErrWalletNotFound.Error(), http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, wallet, http.StatusOK)
}

// bindWalletID copies the path wallet id into dst. A body value that
// disagrees with the path is rejected.
func bindWalletID(r *http.Request, dst *string) bool {
	fromPath := chi.URLParam(r, "walletID")
	if *dst != "" && *dst != fromPath {
		return false
	}
	*dst = fromPath
	return true
}
