package ws

import (
	"context"
	"errors"

	"github.com/KirkDiggler/midnight/internal/protocol"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
	"github.com/KirkDiggler/midnight/internal/services/room"
)

// handleFrame routes one client frame. Problems are reported back to the
// sender as error frames and never end the connection.
func (h *Handler) handleFrame(ctx context.Context, conn *connection, env *protocol.Envelope) {
	logger := h.logger.With("connection_id", conn.id, "event", env.Event)

	switch env.Event {
	case protocol.EventJoinCampaign:
		campaignID, err := env.DecodeCampaignID()
		if err != nil {
			h.sendError(conn, "", err.Error())
			return
		}

		out, err := h.broadcaster.Join(ctx, &room.JoinInput{Connection: conn, CampaignID: campaignID})
		if err != nil {
			logger.Warn("join failed", "campaign_id", campaignID, "error", err)
			h.sendError(conn, campaignID, "could not join campaign")
			return
		}
		logger.Info("joined campaign",
			"campaign_id", campaignID,
			"user_id", conn.userID,
			"already_joined", out.AlreadyJoined,
			"members", out.MemberCount)

	case protocol.EventLeaveCampaign:
		campaignID, err := env.DecodeCampaignID()
		if err != nil {
			h.sendError(conn, "", err.Error())
			return
		}

		out, err := h.broadcaster.Leave(ctx, &room.LeaveInput{Connection: conn, CampaignID: campaignID})
		if err != nil {
			logger.Warn("leave failed", "campaign_id", campaignID, "error", err)
			return
		}
		logger.Info("left campaign",
			"campaign_id", campaignID,
			"was_member", out.WasMember,
			"room_closed", out.RoomClosed)

	case protocol.EventDiceRoll:
		var payload protocol.DiceRollPayload
		if err := env.Decode(&payload); err != nil {
			h.sendError(conn, "", err.Error())
			return
		}
		campaignID := firstNonEmpty(payload.CampaignID, env.CampaignID)
		if campaignID == "" || payload.Roll == nil {
			h.sendError(conn, campaignID, "dice-roll needs a campaignId and a roll")
			return
		}

		out, err := h.broadcaster.BroadcastRoll(ctx, &room.BroadcastRollInput{
			Connection: conn,
			CampaignID: campaignID,
			Roll:       payload.Roll,
		})
		if err != nil {
			logger.Warn("roll broadcast failed", "campaign_id", campaignID, "error", err)
			return
		}
		logger.Debug("relayed roll",
			"campaign_id", campaignID,
			"formula", payload.Roll.Formula,
			"total", payload.Roll.Total,
			"delivered", out.Delivered)

	case protocol.EventUpdateInitiative:
		var payload protocol.UpdateInitiativePayload
		if err := env.Decode(&payload); err != nil {
			h.sendError(conn, "", err.Error())
			return
		}
		campaignID := firstNonEmpty(payload.CampaignID, env.CampaignID)
		if campaignID == "" {
			h.sendError(conn, "", "update-initiative needs a campaignId")
			return
		}

		state := payload.State()
		if !state.Valid() {
			h.sendError(conn, campaignID, "initiative needs non-null combatants and an in-range currentTurn")
			return
		}

		if h.enforceGM {
			allowed, err := h.isGameMaster(ctx, campaignID, conn.userID)
			if err != nil {
				logger.Warn("GM check failed", "campaign_id", campaignID, "error", err)
				h.sendError(conn, campaignID, "could not verify game master")
				return
			}
			if !allowed {
				logger.Warn("dropped initiative update from non-GM",
					"campaign_id", campaignID,
					"user_id", conn.userID)
				h.sendError(conn, campaignID, "only the game master can update initiative")
				return
			}
		}

		out, err := h.broadcaster.BroadcastInitiative(ctx, &room.BroadcastInitiativeInput{
			Connection: conn,
			CampaignID: campaignID,
			State:      state,
		})
		if err != nil {
			logger.Warn("initiative broadcast failed", "campaign_id", campaignID, "error", err)
			return
		}
		logger.Debug("relayed initiative",
			"campaign_id", campaignID,
			"combatants", len(state.Combatants),
			"delivered", out.Delivered)

	case protocol.EventRequestInitiative:
		campaignID, err := env.DecodeCampaignID()
		if err != nil {
			h.sendError(conn, "", err.Error())
			return
		}

		out, err := h.broadcaster.RequestInitiative(ctx, &room.RequestInitiativeInput{
			Connection: conn,
			CampaignID: campaignID,
		})
		if err != nil {
			logger.Warn("initiative request failed", "campaign_id", campaignID, "error", err)
			return
		}
		logger.Debug("relayed initiative request", "campaign_id", campaignID, "delivered", out.Delivered)

	default:
		h.sendError(conn, env.CampaignID, "unknown event "+string(env.Event))
	}
}

func (h *Handler) isGameMaster(ctx context.Context, campaignID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	out, err := h.campaignService.IsGameMaster(ctx, &campaign.IsGameMasterInput{
		CampaignID: campaignID,
		UserID:     userID,
	})
	if errors.Is(err, campaign.ErrCampaignNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return out.IsGameMaster, nil
}

// sendError reports a rejected frame to its sender only
func (h *Handler) sendError(conn *connection, campaignID, message string) {
	env, err := protocol.NewEnvelope(protocol.EventError, campaignID, &protocol.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	if err := conn.Send(env); err != nil {
		h.logger.Debug("dropped error frame", "connection_id", conn.id, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
