package room

import (
	"log/slog"

	"github.com/KirkDiggler/midnight/internal/models"
)

// DefaultQueueSize is the number of pending operations the event loop buffers
const DefaultQueueSize = 256

// Config holds configuration for the room broadcaster
type Config struct {
	// QueueSize bounds the pending operations waiting for the event loop
	QueueSize int

	Logger *slog.Logger
}

// JoinInput contains the parameters for joining a campaign room
type JoinInput struct {
	Connection Connection
	CampaignID string
}

// JoinOutput contains the result of joining a campaign room
type JoinOutput struct {
	// AlreadyJoined is true when the connection was a member before the call
	AlreadyJoined bool
	MemberCount   int
}

// LeaveInput contains the parameters for leaving a campaign room
type LeaveInput struct {
	Connection Connection
	CampaignID string
}

// LeaveOutput contains the result of leaving a campaign room
type LeaveOutput struct {
	// WasMember is false when the connection was not in the room
	WasMember bool

	// RoomClosed is true when the last member left and the room was discarded
	RoomClosed bool
}

// DisconnectInput contains the connection to remove from every room
type DisconnectInput struct {
	Connection Connection
}

// DisconnectOutput contains the result of a disconnect cleanup
type DisconnectOutput struct {
	// CampaignIDs lists the rooms the connection was removed from
	CampaignIDs []string
}

// BroadcastRollInput contains a roll to relay to everyone in the room but the sender
type BroadcastRollInput struct {
	Connection Connection
	CampaignID string
	Roll       *models.RollResult
}

// BroadcastInitiativeInput contains a full initiative snapshot to relay to the room
type BroadcastInitiativeInput struct {
	Connection Connection
	CampaignID string
	State      *models.InitiativeState
}

// RequestInitiativeInput asks the other members of a room for their initiative snapshot
type RequestInitiativeInput struct {
	Connection Connection
	CampaignID string
}

// BroadcastOutput reports how a fan-out went. Failed deliveries are counted
// but never retried.
type BroadcastOutput struct {
	Delivered int
	Failed    int
}

// MembersInput contains the room to count
type MembersInput struct {
	CampaignID string
}

// MembersOutput contains the number of live connections in a room
type MembersOutput struct {
	MemberCount int
}
