package initiative

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
)

// service implements the Service interface
type service struct {
	campaignService campaign.Service
	uuidGenerator   uuid.UUID
}

// New creates a new initiative tracker
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		campaignService: cfg.CampaignService,
		uuidGenerator:   cfg.UUIDGenerator,
	}, nil
}

// AddCombatant inserts a combatant, keeping the turn with whoever currently holds it
func (s *service) AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error) {
	if input == nil || input.Combatant == nil {
		return nil, ErrNilInput
	}

	combatant := input.Combatant.Clone()
	if err := prepareCombatant(combatant); err != nil {
		return nil, err
	}

	state := input.State.Clone()
	state.Normalize()

	if combatant.ID == "" {
		combatant.ID = s.uuidGenerator.NewUUID()
	} else if indexOf(state, combatant.ID) >= 0 {
		return nil, ErrDuplicateCombatant
	}

	current := state.Current()
	state.Combatants = append(state.Combatants, combatant)
	reorder(state, current)

	return &AddCombatantOutput{
		State:     state,
		Combatant: combatant.Clone(),
	}, nil
}

// RemoveCombatant drops a combatant. Removing the active combatant hands the
// turn to the one after it.
func (s *service) RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	state := input.State.Clone()
	state.Normalize()

	idx := indexOf(state, input.CombatantID)
	if idx < 0 {
		return nil, ErrCombatantNotFound
	}

	state.Combatants = slices.Delete(state.Combatants, idx, idx+1)
	if idx < state.CurrentTurn {
		state.CurrentTurn--
	}
	if state.CurrentTurn >= len(state.Combatants) {
		state.CurrentTurn = 0
	}
	state.Normalize()

	return &RemoveCombatantOutput{
		State: state,
	}, nil
}

// UpdateCombatant replaces a combatant and re-sorts when its initiative changed
func (s *service) UpdateCombatant(ctx context.Context, input *UpdateCombatantInput) (*UpdateCombatantOutput, error) {
	if input == nil || input.Combatant == nil {
		return nil, ErrNilInput
	}

	combatant := input.Combatant.Clone()
	if err := prepareCombatant(combatant); err != nil {
		return nil, err
	}

	state := input.State.Clone()
	state.Normalize()

	idx := indexOf(state, combatant.ID)
	if idx < 0 {
		return nil, ErrCombatantNotFound
	}

	current := state.Current()
	state.Combatants[idx] = combatant
	if current != nil && current.ID == combatant.ID {
		current = combatant
	}
	reorder(state, current)

	return &UpdateCombatantOutput{
		State:     state,
		Combatant: combatant.Clone(),
	}, nil
}

// AddCondition tags a combatant; adding a condition it already has is a no-op
func (s *service) AddCondition(ctx context.Context, input *AddConditionInput) (*AddConditionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	condition := strings.TrimSpace(input.Condition)
	if condition == "" {
		return nil, ErrInvalidCondition
	}

	state := input.State.Clone()
	state.Normalize()

	idx := indexOf(state, input.CombatantID)
	if idx < 0 {
		return nil, ErrCombatantNotFound
	}

	combatant := state.Combatants[idx]
	if !combatant.HasCondition(condition) {
		combatant.Conditions = append(combatant.Conditions, condition)
	}

	return &AddConditionOutput{
		State: state,
	}, nil
}

// RemoveCondition clears a condition from a combatant
func (s *service) RemoveCondition(ctx context.Context, input *RemoveConditionInput) (*RemoveConditionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	condition := strings.TrimSpace(input.Condition)
	if condition == "" {
		return nil, ErrInvalidCondition
	}

	state := input.State.Clone()
	state.Normalize()

	idx := indexOf(state, input.CombatantID)
	if idx < 0 {
		return nil, ErrCombatantNotFound
	}

	combatant := state.Combatants[idx]
	combatant.Conditions = slices.DeleteFunc(combatant.Conditions, func(c string) bool {
		return c == condition
	})

	return &RemoveConditionOutput{
		State: state,
	}, nil
}

// StartCombat activates the order with the highest initiative up first
func (s *service) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	state := input.State.Clone()
	state.Normalize()

	if len(state.Combatants) == 0 {
		return nil, ErrNoCombatants
	}

	reorder(state, nil)
	state.CurrentTurn = 0
	state.IsActive = true

	return &StartCombatOutput{
		State:   state,
		Current: state.Current().Clone(),
	}, nil
}

// NextTurn advances the turn, wrapping past the last combatant
func (s *service) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	state := input.State.Clone()
	state.Normalize()

	if !state.IsActive {
		return nil, ErrCombatNotActive
	}

	state.CurrentTurn = (state.CurrentTurn + 1) % len(state.Combatants)

	return &NextTurnOutput{
		State:    state,
		Current:  state.Current().Clone(),
		NewRound: state.CurrentTurn == 0,
	}, nil
}

// PreviousTurn steps the turn back, wrapping to the last combatant
func (s *service) PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	state := input.State.Clone()
	state.Normalize()

	if !state.IsActive {
		return nil, ErrCombatNotActive
	}

	n := len(state.Combatants)
	state.CurrentTurn = (state.CurrentTurn - 1 + n) % n

	return &PreviousTurnOutput{
		State:   state,
		Current: state.Current().Clone(),
	}, nil
}

// EndCombat deactivates the order and resets the turn to the top
func (s *service) EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	state := input.State.Clone()
	state.Normalize()
	state.IsActive = false
	state.CurrentTurn = 0

	return &EndCombatOutput{
		State: state,
	}, nil
}

// ImportCharacter turns a stored character sheet into a player combatant
func (s *service) ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrNilInput
	}
	if s.campaignService == nil {
		return nil, ErrNilCampaignService
	}

	out, err := s.campaignService.GetCharacter(ctx, &campaign.GetCharacterInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, err
	}

	character := out.Character
	hp := character.HP
	maxHP := character.MaxHP

	return &ImportCharacterOutput{
		Combatant: &models.Combatant{
			ID:         character.ID,
			Name:       character.Name,
			Initiative: input.Initiative,
			HP:         &hp,
			MaxHP:      &maxHP,
			Type:       models.CombatantTypePC,
			Conditions: []string{},
		},
	}, nil
}

// prepareCombatant validates a combatant and normalizes its optional fields
func prepareCombatant(c *models.Combatant) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrInvalidCombatant
	}
	if c.Type == "" {
		c.Type = models.CombatantTypeNPC
	}
	if !c.Type.IsValid() {
		return ErrInvalidCombatant
	}
	if c.Conditions == nil {
		c.Conditions = []string{}
	}

	if c.HP != nil && *c.HP < 0 {
		*c.HP = 0
	}
	if c.MaxHP != nil {
		if *c.MaxHP < 0 {
			*c.MaxHP = 0
		}
		if c.HP != nil && *c.HP > *c.MaxHP {
			*c.HP = *c.MaxHP
		}
	}
	return nil
}

// reorder sorts by initiative descending, keeping insertion order for ties,
// and moves the turn index to follow current
func reorder(state *models.InitiativeState, current *models.Combatant) {
	sort.SliceStable(state.Combatants, func(i, j int) bool {
		return state.Combatants[i].Initiative > state.Combatants[j].Initiative
	})

	if current == nil {
		return
	}
	for i, c := range state.Combatants {
		if c == current {
			state.CurrentTurn = i
			return
		}
	}
}

func indexOf(state *models.InitiativeState, id string) int {
	if id == "" {
		return -1
	}
	for i, c := range state.Combatants {
		if c.ID == id {
			return i
		}
	}
	return -1
}
