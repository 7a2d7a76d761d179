package client

import (
	"log/slog"

	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/roll"
)

const (
	// OwnRollCapacity is how many of the player's own rolls are kept
	OwnRollCapacity = 10

	// FeedCapacity is how many rolls the campaign feed keeps
	FeedCapacity = 50
)

// Config holds the configuration for a client session
type Config struct {
	Transport   Transport
	RollService roll.Service

	// Name is attached to every roll this session makes
	Name string

	// IsGM lets the session publish initiative and answer initiative requests
	IsGM bool

	// OnRoll is called from Run for every roll received from the room
	OnRoll func(campaignID string, result *models.RollResult)

	// OnInitiative is called from Run whenever a snapshot replaces the held state
	OnInitiative func(campaignID string, state *models.InitiativeState)

	// OnError is called from Run for error frames from the server
	OnError func(campaignID, message string)

	Logger *slog.Logger
}
