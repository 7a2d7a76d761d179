package messaging

import (
	"github.com/KirkDiggler/midnight/internal/dice"
	"github.com/KirkDiggler/midnight/internal/models"
)

// Config contains configuration for the messaging service
type Config struct {
	// DiceRoller picks among flavor lines
	DiceRoller dice.Roller
}

// GetRollResultMessageInput contains the input for GetRollResultMessage
type GetRollResultMessageInput struct {
	Roll *models.RollResult

	// IsPersonalMessage addresses the roller as "you"
	IsPersonalMessage bool
}

// GetRollResultMessageOutput contains the output for GetRollResultMessage
type GetRollResultMessageOutput struct {
	// Line is the deterministic feed entry, e.g. "Ava rolled 2d20 (advantage): [18, (7)] = 18"
	Line string

	// Title and Message are flavor, only set for natural 20s and natural 1s
	Title   string
	Message string

	IsCriticalHit  bool
	IsCriticalFail bool
}

// GetTurnMessageInput contains the input for GetTurnMessage
type GetTurnMessageInput struct {
	Current  *models.Combatant
	NewRound bool
}

// GetTurnMessageOutput contains the output for GetTurnMessage
type GetTurnMessageOutput struct {
	Message string
}

// GetInitiativeMessageInput contains the input for GetInitiativeMessage
type GetInitiativeMessageInput struct {
	State *models.InitiativeState
}

// GetInitiativeMessageOutput contains the output for GetInitiativeMessage
type GetInitiativeMessageOutput struct {
	Title string
	Lines []string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is the type of error
	ErrorType ErrorType

	// Detail is appended when set
	Detail string
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
}

// ErrorType categorizes errors shown to a player
type ErrorType string

const (
	ErrorTypeBadFormula   ErrorType = "bad_formula"
	ErrorTypeNotGM        ErrorType = "not_gm"
	ErrorTypeDisconnected ErrorType = "disconnected"
	ErrorTypeNoCampaign   ErrorType = "no_campaign"
	ErrorTypeServer       ErrorType = "server"
)
