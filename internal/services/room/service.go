package room

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/KirkDiggler/midnight/internal/protocol"
)

// service implements the Broadcaster interface. Every membership change and
// fan-out runs as one step on the Run loop, so the maps below are only ever
// touched by that goroutine.
type service struct {
	commands chan func()
	stopped  chan struct{}
	running  atomic.Bool
	logger   *slog.Logger

	// campaignID -> connectionID -> connection
	rooms map[string]map[string]Connection

	// connectionID -> campaignIDs, for cleanup on disconnect
	memberships map[string]map[string]struct{}
}

// New creates a new room broadcaster. Run must be started before any
// operation is called.
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		commands:    make(chan func(), queueSize),
		stopped:     make(chan struct{}),
		logger:      logger.With("component", "room"),
		rooms:       make(map[string]map[string]Connection),
		memberships: make(map[string]map[string]struct{}),
	}, nil
}

// Run processes operations until ctx is done. It may only be called once.
func (s *service) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrBroadcasterClosed
	}
	defer close(s.stopped)

	s.logger.InfoContext(ctx, "room broadcaster started")
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "room broadcaster stopped", "rooms", len(s.rooms))
			return nil
		case cmd := <-s.commands:
			cmd()
		}
	}
}

// do runs fn on the event loop and waits for it to finish
func (s *service) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	cmd := func() {
		fn()
		close(done)
	}

	select {
	case s.commands <- cmd:
	case <-s.stopped:
		return ErrBroadcasterClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-s.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrBroadcasterClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Join adds a connection to a campaign room
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := validate(input.Connection, input.CampaignID); err != nil {
		return nil, err
	}

	output := &JoinOutput{}
	err := s.do(ctx, func() {
		connID := input.Connection.ID()

		members, ok := s.rooms[input.CampaignID]
		if !ok {
			members = make(map[string]Connection)
			s.rooms[input.CampaignID] = members
			s.logger.DebugContext(ctx, "room opened", "campaign_id", input.CampaignID)
		}

		if _, exists := members[connID]; exists {
			output.AlreadyJoined = true
		} else {
			members[connID] = input.Connection
			rooms, ok := s.memberships[connID]
			if !ok {
				rooms = make(map[string]struct{})
				s.memberships[connID] = rooms
			}
			rooms[input.CampaignID] = struct{}{}
		}
		output.MemberCount = len(members)

		s.logger.InfoContext(ctx, "connection joined room",
			"campaign_id", input.CampaignID,
			"connection_id", connID,
			"already_joined", output.AlreadyJoined,
			"members", output.MemberCount)
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Leave removes a connection from a campaign room
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := validate(input.Connection, input.CampaignID); err != nil {
		return nil, err
	}
	conn, campaignID := input.Connection, input.CampaignID

	output := &LeaveOutput{}
	err := s.do(ctx, func() {
		output.WasMember, output.RoomClosed = s.remove(conn.ID(), campaignID)
		if output.WasMember {
			s.logger.InfoContext(ctx, "connection left room",
				"campaign_id", campaignID,
				"connection_id", conn.ID(),
				"room_closed", output.RoomClosed)
		}
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Disconnect removes a connection from every room it is in
func (s *service) Disconnect(ctx context.Context, input *DisconnectInput) (*DisconnectOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.Connection == nil {
		return nil, ErrNilConnection
	}

	output := &DisconnectOutput{}
	err := s.do(ctx, func() {
		connID := input.Connection.ID()
		for campaignID := range s.memberships[connID] {
			output.CampaignIDs = append(output.CampaignIDs, campaignID)
		}
		sort.Strings(output.CampaignIDs)

		for _, campaignID := range output.CampaignIDs {
			s.remove(connID, campaignID)
		}

		s.logger.InfoContext(ctx, "connection disconnected",
			"connection_id", connID,
			"rooms", len(output.CampaignIDs))
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// BroadcastRoll relays a roll result to the rest of the room
func (s *service) BroadcastRoll(ctx context.Context, input *BroadcastRollInput) (*BroadcastOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := validate(input.Connection, input.CampaignID); err != nil {
		return nil, err
	}
	if input.Roll == nil {
		return nil, ErrNilRoll
	}

	env, err := protocol.NewEnvelope(protocol.EventDiceRoll, input.CampaignID, input.Roll)
	if err != nil {
		return nil, err
	}

	return s.broadcast(ctx, input.Connection, input.CampaignID, env)
}

// BroadcastInitiative relays a full initiative snapshot to the rest of the room
func (s *service) BroadcastInitiative(ctx context.Context, input *BroadcastInitiativeInput) (*BroadcastOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := validate(input.Connection, input.CampaignID); err != nil {
		return nil, err
	}
	if input.State == nil {
		return nil, ErrNilState
	}

	env, err := protocol.NewEnvelope(protocol.EventInitiativeUpdate, input.CampaignID, input.State)
	if err != nil {
		return nil, err
	}

	return s.broadcast(ctx, input.Connection, input.CampaignID, env)
}

// RequestInitiative asks whoever holds the snapshot to resend it. The
// broadcaster keeps no initiative state of its own.
func (s *service) RequestInitiative(ctx context.Context, input *RequestInitiativeInput) (*BroadcastOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if err := validate(input.Connection, input.CampaignID); err != nil {
		return nil, err
	}

	env, err := protocol.NewEnvelope(protocol.EventRequestInitiative, input.CampaignID, input.CampaignID)
	if err != nil {
		return nil, err
	}

	return s.broadcast(ctx, input.Connection, input.CampaignID, env)
}

// Members reports the current size of a room
func (s *service) Members(ctx context.Context, input *MembersInput) (*MembersOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if input.CampaignID == "" {
		return nil, ErrEmptyCampaignID
	}

	output := &MembersOutput{}
	err := s.do(ctx, func() {
		output.MemberCount = len(s.rooms[input.CampaignID])
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

func (s *service) broadcast(ctx context.Context, sender Connection, campaignID string, env *protocol.Envelope) (*BroadcastOutput, error) {
	output := &BroadcastOutput{}
	err := s.do(ctx, func() {
		senderID := sender.ID()
		for connID, conn := range s.rooms[campaignID] {
			if connID == senderID {
				continue
			}
			if err := conn.Send(env); err != nil {
				output.Failed++
				s.logger.DebugContext(ctx, "dropped frame for member",
					"campaign_id", campaignID,
					"connection_id", connID,
					"event", env.Event,
					"error", err)
				continue
			}
			output.Delivered++
		}

		s.logger.DebugContext(ctx, "broadcast",
			"campaign_id", campaignID,
			"event", env.Event,
			"sender", senderID,
			"delivered", output.Delivered,
			"failed", output.Failed)
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// remove drops connID from the room and discards the room once empty. Must
// run on the event loop.
func (s *service) remove(connID, campaignID string) (wasMember, roomClosed bool) {
	members, ok := s.rooms[campaignID]
	if !ok {
		return false, false
	}
	if _, ok := members[connID]; !ok {
		return false, false
	}

	delete(members, connID)
	if rooms, ok := s.memberships[connID]; ok {
		delete(rooms, campaignID)
		if len(rooms) == 0 {
			delete(s.memberships, connID)
		}
	}

	if len(members) == 0 {
		delete(s.rooms, campaignID)
		return true, true
	}

	return true, false
}

func validate(conn Connection, campaignID string) error {
	if conn == nil {
		return ErrNilConnection
	}
	if campaignID == "" {
		return ErrEmptyCampaignID
	}
	return nil
}
