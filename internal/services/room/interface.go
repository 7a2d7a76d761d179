package room

import (
	"context"

	"github.com/KirkDiggler/midnight/internal/protocol"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_broadcaster.go github.com/KirkDiggler/midnight/internal/services/room Broadcaster

// Connection is a live client handle the broadcaster can deliver frames to
type Connection interface {
	// ID identifies the connection for membership bookkeeping
	ID() string

	// Send queues a frame for delivery. It must not block; an error means the
	// frame was not delivered and is otherwise ignored.
	Send(env *protocol.Envelope) error
}

// Broadcaster defines the interface for campaign room operations
type Broadcaster interface {
	// Join adds a connection to a campaign room, creating the room if needed
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave removes a connection from a campaign room
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// Disconnect removes a connection from every room it belongs to
	Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error)

	// BroadcastRoll relays a roll result to every other member of the room
	BroadcastRoll(ctx context.Context, input *BroadcastRollInput) (*BroadcastOutput, error)

	// BroadcastInitiative relays a full initiative snapshot to every other member of the room
	BroadcastInitiative(ctx context.Context, input *BroadcastInitiativeInput) (*BroadcastOutput, error)

	// RequestInitiative asks the other members of the room to resend their snapshot
	RequestInitiative(ctx context.Context, input *RequestInitiativeInput) (*BroadcastOutput, error)

	// Members reports the current size of a room
	Members(ctx context.Context, input *MembersInput) (*MembersOutput, error)
}
