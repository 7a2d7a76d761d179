package initiative

import (
	"context"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/midnight/internal/services/initiative Service

// Service defines the GM-side turn order transitions.
// Every operation works on a copy of the input state and returns a state
// whose turn index is valid for its combatant list.
type Service interface {
	// AddCombatant inserts a combatant in initiative order
	AddCombatant(ctx context.Context, input *AddCombatantInput) (*AddCombatantOutput, error)

	// RemoveCombatant drops a combatant from the order
	RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error)

	// UpdateCombatant replaces a combatant's fields, keeping its ID
	UpdateCombatant(ctx context.Context, input *UpdateCombatantInput) (*UpdateCombatantOutput, error)

	// AddCondition tags a combatant with a condition
	AddCondition(ctx context.Context, input *AddConditionInput) (*AddConditionOutput, error)

	// RemoveCondition clears a condition from a combatant
	RemoveCondition(ctx context.Context, input *RemoveConditionInput) (*RemoveConditionOutput, error)

	// StartCombat activates the order at the top of the list
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)

	// NextTurn advances to the next combatant, wrapping to the top
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)

	// PreviousTurn steps back one combatant, wrapping to the bottom
	PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error)

	// EndCombat deactivates the order
	EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error)

	// ImportCharacter builds a player combatant from a stored character sheet
	ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error)
}
