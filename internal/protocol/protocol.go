// Package protocol defines the frames exchanged on the real-time channel.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/midnight/internal/models"
)

// EventName identifies a frame on the real-time channel
type EventName string

const (
	// client to server
	EventJoinCampaign     EventName = "join-campaign"
	EventLeaveCampaign    EventName = "leave-campaign"
	EventUpdateInitiative EventName = "update-initiative"

	// both directions
	EventDiceRoll          EventName = "dice-roll"
	EventRequestInitiative EventName = "request-initiative"

	// server to client
	EventInitiativeUpdate EventName = "initiative-update"
	EventError            EventName = "error"
)

// Envelope is a single JSON frame. CampaignID is set on server frames so a
// client in several rooms can route the payload.
type Envelope struct {
	Event      EventName       `json:"event"`
	CampaignID string          `json:"campaignId,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// DiceRollPayload is the client frame for a roll to relay
type DiceRollPayload struct {
	CampaignID string             `json:"campaignId"`
	Roll       *models.RollResult `json:"roll"`
}

// UpdateInitiativePayload is the client frame carrying the GM's snapshot
type UpdateInitiativePayload struct {
	CampaignID  string              `json:"campaignId"`
	Combatants  []*models.Combatant `json:"combatants"`
	CurrentTurn int                 `json:"currentTurn"`
	IsActive    bool                `json:"isActive"`
}

// State returns the snapshot carried by the frame
func (p *UpdateInitiativePayload) State() *models.InitiativeState {
	return &models.InitiativeState{
		Combatants:  p.Combatants,
		CurrentTurn: p.CurrentTurn,
		IsActive:    p.IsActive,
	}
}

// ErrorPayload reports a frame the server could not handle
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewEnvelope marshals data into a frame
func NewEnvelope(event EventName, campaignID string, data any) (*Envelope, error) {
	env := &Envelope{
		Event:      event,
		CampaignID: campaignID,
	}
	if data == nil {
		return env, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	env.Data = raw

	return env, nil
}

// Decode unmarshals the frame payload into v
func (e *Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("%s frame has no data", e.Event)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Event, err)
	}
	return nil
}

// DecodeCampaignID reads a payload that is a bare campaign id string
func (e *Envelope) DecodeCampaignID() (string, error) {
	var campaignID string
	if err := e.Decode(&campaignID); err != nil {
		return "", err
	}
	if campaignID == "" {
		return "", fmt.Errorf("%s frame has an empty campaign id", e.Event)
	}
	return campaignID, nil
}
