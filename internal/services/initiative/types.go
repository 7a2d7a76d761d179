package initiative

import (
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
)

// Config holds configuration for the initiative tracker
type Config struct {
	// CampaignService is only needed by ImportCharacter
	CampaignService campaign.Service
	UUIDGenerator   uuid.UUID
}

// AddCombatantInput assigns an ID to the combatant when it has none
type AddCombatantInput struct {
	State     *models.InitiativeState
	Combatant *models.Combatant
}

// AddCombatantOutput contains the result of adding a combatant
type AddCombatantOutput struct {
	State     *models.InitiativeState
	Combatant *models.Combatant
}

// RemoveCombatantInput contains parameters for removing a combatant
type RemoveCombatantInput struct {
	State       *models.InitiativeState
	CombatantID string
}

// RemoveCombatantOutput contains the result of removing a combatant
type RemoveCombatantOutput struct {
	State *models.InitiativeState
}

// UpdateCombatantInput matches on Combatant.ID and replaces the rest.
// HP is clamped into [0, MaxHP] when MaxHP is set.
type UpdateCombatantInput struct {
	State     *models.InitiativeState
	Combatant *models.Combatant
}

// UpdateCombatantOutput contains the result of updating a combatant
type UpdateCombatantOutput struct {
	State     *models.InitiativeState
	Combatant *models.Combatant
}

// AddConditionInput contains parameters for adding a condition
type AddConditionInput struct {
	State       *models.InitiativeState
	CombatantID string
	Condition   string
}

// AddConditionOutput contains the result of adding a condition
type AddConditionOutput struct {
	State *models.InitiativeState
}

// RemoveConditionInput contains parameters for removing a condition
type RemoveConditionInput struct {
	State       *models.InitiativeState
	CombatantID string
	Condition   string
}

// RemoveConditionOutput contains the result of removing a condition
type RemoveConditionOutput struct {
	State *models.InitiativeState
}

// StartCombatInput contains parameters for starting combat
type StartCombatInput struct {
	State *models.InitiativeState
}

// StartCombatOutput contains the result of starting combat
type StartCombatOutput struct {
	State   *models.InitiativeState
	Current *models.Combatant
}

// NextTurnInput contains parameters for advancing the turn
type NextTurnInput struct {
	State *models.InitiativeState
}

// NextTurnOutput contains the result of advancing the turn
type NextTurnOutput struct {
	State   *models.InitiativeState
	Current *models.Combatant
	// NewRound is set when the turn wrapped back to the top of the order
	NewRound bool
}

// PreviousTurnInput contains parameters for stepping the turn back
type PreviousTurnInput struct {
	State *models.InitiativeState
}

// PreviousTurnOutput contains the result of stepping the turn back
type PreviousTurnOutput struct {
	State   *models.InitiativeState
	Current *models.Combatant
}

// EndCombatInput contains parameters for ending combat
type EndCombatInput struct {
	State *models.InitiativeState
}

// EndCombatOutput contains the result of ending combat
type EndCombatOutput struct {
	State *models.InitiativeState
}

// ImportCharacterInput carries the initiative score the GM rolled or typed in
type ImportCharacterInput struct {
	CharacterID string
	Initiative  int
}

// ImportCharacterOutput contains the result of importing a character
type ImportCharacterOutput struct {
	Combatant *models.Combatant
}
