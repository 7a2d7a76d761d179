package rest

import (
	"net/http"

	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/roll"
)

type rollRequest struct {
	Formula       string               `json:"formula"`
	AdvantageMode models.AdvantageMode `json:"advantageMode"`
	Roller        string               `json:"roller"`
}

// postRoll resolves a formula server-side. The result is returned to the
// caller only; broadcasting stays on the socket.
func (h *Handler) postRoll(w http.ResponseWriter, r *http.Request) {
	var body rollRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid roll body")
		return
	}
	if body.AdvantageMode != "" && !body.AdvantageMode.IsValid() {
		h.writeError(w, http.StatusUnprocessableEntity, "unknown advantage mode")
		return
	}

	out, err := h.rollService.RollFormula(r.Context(), &roll.RollFormulaInput{
		Formula:       body.Formula,
		AdvantageMode: body.AdvantageMode,
		Roller:        body.Roller,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !out.Parsed {
		h.writeError(w, http.StatusUnprocessableEntity, "malformed formula")
		return
	}

	h.writeJSON(w, http.StatusOK, out.Result)
}
