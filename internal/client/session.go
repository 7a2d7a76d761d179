package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/midnight/internal/common/ring"
	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/protocol"
	"github.com/KirkDiggler/midnight/internal/services/roll"
)

// campaignView is everything the session remembers about one campaign room
type campaignView struct {
	ownRolls   *ring.Buffer[*models.RollResult]
	feed       *ring.Buffer[*models.RollResult]
	initiative *models.InitiativeState
}

func newCampaignView() *campaignView {
	return &campaignView{
		ownRolls: ring.New[*models.RollResult](OwnRollCapacity),
		feed:     ring.New[*models.RollResult](FeedCapacity),
	}
}

// Session is one player's or GM's connection to the table. Rolls are resolved
// locally and then relayed; initiative is held as the last snapshot seen.
type Session struct {
	transport   Transport
	rollService roll.Service
	name        string
	isGM        bool

	onRoll       func(campaignID string, result *models.RollResult)
	onInitiative func(campaignID string, state *models.InitiativeState)
	onError      func(campaignID, message string)

	logger *slog.Logger

	// gorilla allows one concurrent writer
	writeMu sync.Mutex

	mu        sync.Mutex
	campaigns map[string]*campaignView
}

// New creates a new client session
func New(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Transport == nil {
		return nil, ErrNilTransport
	}
	if cfg.RollService == nil {
		return nil, ErrNilRollService
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		transport:    cfg.Transport,
		rollService:  cfg.RollService,
		name:         cfg.Name,
		isGM:         cfg.IsGM,
		onRoll:       cfg.OnRoll,
		onInitiative: cfg.OnInitiative,
		onError:      cfg.OnError,
		logger:       logger,
		campaigns:    make(map[string]*campaignView),
	}, nil
}

// IsGM reports whether the session acts as game master
func (s *Session) IsGM() bool {
	return s.isGM
}

// Join subscribes to a campaign room
func (s *Session) Join(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return ErrEmptyCampaignID
	}

	s.mu.Lock()
	s.view(campaignID)
	s.mu.Unlock()

	return s.write(ctx, protocol.EventJoinCampaign, "", campaignID)
}

// Leave unsubscribes from a campaign room. The table feed and initiative
// mirror are dropped so a later join starts fresh; own rolls are kept.
func (s *Session) Leave(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return ErrEmptyCampaignID
	}

	if err := s.write(ctx, protocol.EventLeaveCampaign, "", campaignID); err != nil {
		return err
	}

	s.mu.Lock()
	if v, ok := s.campaigns[campaignID]; ok {
		v.feed.Clear()
		v.initiative = nil
	}
	s.mu.Unlock()

	return nil
}

// Roll resolves req locally, records it and relays it to the room
func (s *Session) Roll(ctx context.Context, campaignID string, req *models.RollRequest) (*models.RollResult, error) {
	if campaignID == "" {
		return nil, ErrEmptyCampaignID
	}

	out, err := s.rollService.Roll(ctx, &roll.RollInput{
		Request: req,
		Roller:  s.name,
	})
	if err != nil {
		return nil, err
	}

	if err := s.record(ctx, campaignID, out.Result); err != nil {
		return out.Result, err
	}

	return out.Result, nil
}

// RollFormula parses and rolls a typed formula. A malformed formula rolls
// nothing and reports ok=false without an error.
func (s *Session) RollFormula(ctx context.Context, campaignID, formula string, mode models.AdvantageMode) (result *models.RollResult, ok bool, err error) {
	if campaignID == "" {
		return nil, false, ErrEmptyCampaignID
	}

	out, err := s.rollService.RollFormula(ctx, &roll.RollFormulaInput{
		Formula:       formula,
		AdvantageMode: mode,
		Roller:        s.name,
	})
	if err != nil {
		return nil, false, err
	}
	if !out.Parsed {
		return nil, false, nil
	}

	if err := s.record(ctx, campaignID, out.Result); err != nil {
		return out.Result, true, err
	}

	return out.Result, true, nil
}

// record keeps a local roll before relaying it; a failed relay leaves it in history
func (s *Session) record(ctx context.Context, campaignID string, result *models.RollResult) error {
	s.mu.Lock()
	v := s.view(campaignID)
	v.ownRolls.Push(result)
	v.feed.Push(result)
	s.mu.Unlock()

	return s.write(ctx, protocol.EventDiceRoll, "", &protocol.DiceRollPayload{
		CampaignID: campaignID,
		Roll:       result,
	})
}

// PublishInitiative stores the GM's snapshot and sends it to the room
func (s *Session) PublishInitiative(ctx context.Context, campaignID string, state *models.InitiativeState) error {
	if campaignID == "" {
		return ErrEmptyCampaignID
	}
	if !s.isGM {
		return ErrNotGM
	}
	if state == nil {
		return ErrNilState
	}
	if !state.Valid() {
		return ErrInvalidState
	}

	snapshot := state.Clone()

	s.mu.Lock()
	s.view(campaignID).initiative = snapshot
	s.mu.Unlock()

	return s.publish(ctx, campaignID, snapshot)
}

func (s *Session) publish(ctx context.Context, campaignID string, state *models.InitiativeState) error {
	return s.write(ctx, protocol.EventUpdateInitiative, "", &protocol.UpdateInitiativePayload{
		CampaignID:  campaignID,
		Combatants:  state.Combatants,
		CurrentTurn: state.CurrentTurn,
		IsActive:    state.IsActive,
	})
}

// RequestInitiative asks the room's GM to resend the current snapshot
func (s *Session) RequestInitiative(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return ErrEmptyCampaignID
	}

	return s.write(ctx, protocol.EventRequestInitiative, "", campaignID)
}

// Run reads frames until the transport fails or ctx is done. Closing the
// transport is how a blocked read is interrupted. Frames that do not decode
// are logged and skipped.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.transport.Close()
	})
	defer stop()

	for {
		_, raw, err := s.transport.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read frame: %w", err)
		}

		var env protocol.Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.logger.Warn("malformed frame", "error", err)
			continue
		}

		if err := s.handle(ctx, &env); err != nil {
			s.logger.Warn("dropped frame",
				"event", env.Event,
				"campaign_id", env.CampaignID,
				"error", err)
		}
	}
}

func (s *Session) handle(ctx context.Context, env *protocol.Envelope) error {
	switch env.Event {
	case protocol.EventDiceRoll:
		var result models.RollResult
		if err := env.Decode(&result); err != nil {
			return err
		}

		s.mu.Lock()
		s.view(env.CampaignID).feed.Push(&result)
		s.mu.Unlock()

		if s.onRoll != nil {
			s.onRoll(env.CampaignID, &result)
		}

	case protocol.EventInitiativeUpdate:
		var state models.InitiativeState
		if err := env.Decode(&state); err != nil {
			return err
		}
		state.Normalize()

		// last write wins
		s.mu.Lock()
		s.view(env.CampaignID).initiative = state.Clone()
		s.mu.Unlock()

		if s.onInitiative != nil {
			s.onInitiative(env.CampaignID, &state)
		}

	case protocol.EventRequestInitiative:
		if !s.isGM {
			return nil
		}

		s.mu.Lock()
		var snapshot *models.InitiativeState
		if v, ok := s.campaigns[env.CampaignID]; ok && v.initiative != nil {
			snapshot = v.initiative.Clone()
		}
		s.mu.Unlock()

		if snapshot == nil {
			return nil
		}
		return s.publish(ctx, env.CampaignID, snapshot)

	case protocol.EventError:
		var payload protocol.ErrorPayload
		if err := env.Decode(&payload); err != nil {
			return err
		}
		if s.onError != nil {
			s.onError(env.CampaignID, payload.Message)
		}

	default:
		return errors.New("unknown event " + string(env.Event))
	}

	return nil
}

// OwnRolls returns this session's rolls in a campaign, oldest first
func (s *Session) OwnRolls(campaignID string) []*models.RollResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.campaigns[campaignID]
	if !ok {
		return []*models.RollResult{}
	}
	return v.ownRolls.Items()
}

// Feed returns every roll seen in a campaign, oldest first
func (s *Session) Feed(campaignID string) []*models.RollResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.campaigns[campaignID]
	if !ok {
		return []*models.RollResult{}
	}
	return v.feed.Items()
}

// Initiative returns a copy of the held snapshot, or false when none has been seen
func (s *Session) Initiative(campaignID string) (*models.InitiativeState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.campaigns[campaignID]
	if !ok || v.initiative == nil {
		return nil, false
	}
	return v.initiative.Clone(), true
}

// Close closes the transport
func (s *Session) Close() error {
	return s.transport.Close()
}

// view returns the campaign's view, creating it. Callers hold mu.
func (s *Session) view(campaignID string) *campaignView {
	v, ok := s.campaigns[campaignID]
	if !ok {
		v = newCampaignView()
		s.campaigns[campaignID] = v
	}
	return v
}

func (s *Session) write(ctx context.Context, event protocol.EventName, campaignID string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env, err := protocol.NewEnvelope(event, campaignID, data)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.transport.WriteJSON(env); err != nil {
		return fmt.Errorf("write %s: %w", event, err)
	}
	return nil
}
