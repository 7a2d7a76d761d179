package character

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/midnight/internal/repositories/character Repository

import (
	"context"

	"github.com/KirkDiggler/midnight/internal/models"
)

// Repository defines the interface for character sheet persistence
type Repository interface {
	// SaveCharacter persists a character
	SaveCharacter(ctx context.Context, input *SaveCharacterInput) error

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*models.Character, error)

	// GetCharactersInCampaign retrieves all characters in a campaign
	GetCharactersInCampaign(ctx context.Context, input *GetCharactersInCampaignInput) (*GetCharactersInCampaignOutput, error)

	// DeleteCharacter removes a character
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) error
}
