package roll

import (
	"github.com/KirkDiggler/midnight/internal/common/clock"
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/dice"
	"github.com/KirkDiggler/midnight/internal/models"
)

const (
	// MinDiceSides is the smallest die the engine accepts
	MinDiceSides = 2

	// DefaultMaxDice bounds DiceCount when Config.MaxDice is unset
	DefaultMaxDice = 100
)

// Config holds configuration for the roll service
type Config struct {
	// Maximum number of dice in one request, before the advantage die
	MaxDice int

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// RollInput contains parameters for resolving a roll
type RollInput struct {
	Request *models.RollRequest

	// Roller is the display or character name attached to the result
	Roller string
}

// RollOutput contains the resolved roll
type RollOutput struct {
	Result *models.RollResult
}

// RollFormulaInput contains parameters for rolling a typed formula such as "2d6+3"
type RollFormulaInput struct {
	Formula       string
	AdvantageMode models.AdvantageMode
	Roller        string
}

// RollFormulaOutput contains the result of rolling a typed formula
type RollFormulaOutput struct {
	// Parsed is false when the formula did not match; Result is nil in that case
	Parsed bool
	Result *models.RollResult
}
