package roll

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/midnight/internal/services/roll Service

// Service defines the interface for roll operations
type Service interface {
	// Roll resolves a roll request into a result
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)

	// RollFormula parses a dice formula and resolves it; malformed formulas are not errors
	RollFormula(ctx context.Context, input *RollFormulaInput) (*RollFormulaOutput, error)
}
