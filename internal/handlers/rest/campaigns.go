package rest

import (
	"net/http"

	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
	"github.com/KirkDiggler/midnight/internal/services/room"
	"github.com/go-chi/chi/v5"
)

type roomResponse struct {
	CampaignID string `json:"campaignId"`
	Members    int    `json:"members"`
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	out, err := h.campaignService.GetCampaign(r.Context(), &campaign.GetCampaignInput{
		CampaignID: chi.URLParam(r, "campaignID"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, out.Campaign)
}

// putCampaign creates or replaces the campaign at the path id
func (h *Handler) putCampaign(w http.ResponseWriter, r *http.Request) {
	var body models.Campaign
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid campaign body")
		return
	}
	body.ID = chi.URLParam(r, "campaignID")

	out, err := h.campaignService.SaveCampaign(r.Context(), &campaign.SaveCampaignInput{
		Campaign: &body,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, out.Campaign)
}

func (h *Handler) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	_, err := h.campaignService.DeleteCampaign(r.Context(), &campaign.DeleteCampaignInput{
		CampaignID: chi.URLParam(r, "campaignID"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	out, err := h.campaignService.ListCharacters(r.Context(), &campaign.ListCharactersInput{
		CampaignID: chi.URLParam(r, "campaignID"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	characters := out.Characters
	if characters == nil {
		characters = []*models.Character{}
	}
	h.writeJSON(w, http.StatusOK, characters)
}

// listCampaignsByGM lists the campaigns a GM can open a room for
func (h *Handler) listCampaignsByGM(w http.ResponseWriter, r *http.Request) {
	out, err := h.campaignService.ListCampaignsByGM(r.Context(), &campaign.ListCampaignsByGMInput{
		GMID: chi.URLParam(r, "gmID"),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	campaigns := out.Campaigns
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}
	h.writeJSON(w, http.StatusOK, campaigns)
}

// getRoom reports how many sockets are live in the campaign room
func (h *Handler) getRoom(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	out, err := h.broadcaster.Members(r.Context(), &room.MembersInput{
		CampaignID: campaignID,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, &roomResponse{
		CampaignID: campaignID,
		Members:    out.MemberCount,
	})
}
