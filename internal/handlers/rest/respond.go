package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/KirkDiggler/midnight/internal/services/campaign"
	"github.com/KirkDiggler/midnight/internal/services/initiative"
	"github.com/KirkDiggler/midnight/internal/services/roll"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, &errorResponse{Error: message})
}

// writeServiceError maps service errors onto HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, campaign.ErrCampaignNotFound),
		errors.Is(err, campaign.ErrCharacterNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, campaign.ErrInvalidCampaign),
		errors.Is(err, campaign.ErrInvalidCharacter),
		errors.Is(err, campaign.ErrNilInput),
		errors.Is(err, initiative.ErrNilInput):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, roll.ErrInvalidRequest):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
