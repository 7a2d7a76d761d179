package rest

import (
	"net/http"
	"strconv"

	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
	"github.com/KirkDiggler/midnight/internal/services/initiative"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	out, err := h.campaignService.GetCharacter(r.Context(), &campaign.GetCharacterInput{
		CharacterID: chi.URLParam(r, "characterID"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out.Character)
}

func (h *Handler) putCharacter(w http.ResponseWriter, r *http.Request) {
	var body models.Character
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid character body")
		return
	}
	body.ID = chi.URLParam(r, "characterID")

	out, err := h.campaignService.SaveCharacter(r.Context(), &campaign.SaveCharacterInput{
		Character: &body,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, out.Character)
}

func (h *Handler) deleteCharacter(w http.ResponseWriter, r *http.Request) {
	_, err := h.campaignService.DeleteCharacter(r.Context(), &campaign.DeleteCharacterInput{
		CharacterID: chi.URLParam(r, "characterID"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getCombatant builds an initiative entry from the character sheet. The
// initiative query parameter is the score the GM rolled.
func (h *Handler) getCombatant(w http.ResponseWriter, r *http.Request) {
	score := 0
	if raw := r.URL.Query().Get("initiative"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "initiative must be an integer")
			return
		}
		score = parsed
	}

	out, err := h.initiativeService.ImportCharacter(r.Context(), &initiative.ImportCharacterInput{
		CharacterID: chi.URLParam(r, "characterID"),
		Initiative:  score,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out.Combatant)
}
