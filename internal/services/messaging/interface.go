package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/midnight/internal/services/messaging Service

// Service renders table events as text for the terminal feed
type Service interface {
	// GetRollResultMessage returns the feed line and flavor text for a roll
	GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error)

	// GetTurnMessage announces whose turn it is
	GetTurnMessage(ctx context.Context, input *GetTurnMessageInput) (*GetTurnMessageOutput, error)

	// GetInitiativeMessage renders the turn order, one line per combatant
	GetInitiativeMessage(ctx context.Context, input *GetInitiativeMessageInput) (*GetInitiativeMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
