package initiative

// InitiativeError represents an error in the initiative tracker
type InitiativeError string

func (e InitiativeError) Error() string {
	return string(e)
}

const (
	// ErrNilInput is returned when an input or its state is nil
	ErrNilInput InitiativeError = "input cannot be nil"

	// ErrNilConfig is returned when the service config is nil
	ErrNilConfig InitiativeError = "config cannot be nil"

	// ErrNilCampaignService is returned when importing without a campaign service
	ErrNilCampaignService InitiativeError = "campaign service cannot be nil"

	// ErrNilUUIDGenerator is returned when the UUID generator is nil
	ErrNilUUIDGenerator InitiativeError = "uuid generator cannot be nil"

	// ErrInvalidCombatant is returned when a combatant has no name or an unknown type
	ErrInvalidCombatant InitiativeError = "invalid combatant"

	// ErrDuplicateCombatant is returned when a combatant ID is already in the order
	ErrDuplicateCombatant InitiativeError = "combatant already in initiative"

	// ErrCombatantNotFound is returned when no combatant has the given ID
	ErrCombatantNotFound InitiativeError = "combatant not found"

	// ErrInvalidCondition is returned for an empty condition name
	ErrInvalidCondition InitiativeError = "invalid condition"

	// ErrNoCombatants is returned when starting combat with an empty order
	ErrNoCombatants InitiativeError = "no combatants in initiative"

	// ErrCombatNotActive is returned when moving turns outside of combat
	ErrCombatNotActive InitiativeError = "combat is not active"
)
