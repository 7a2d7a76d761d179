package campaign

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/midnight/internal/services/campaign Service

import "context"

// Service defines the interface for campaign and character sheet operations
type Service interface {
	// GetCampaign returns a campaign by ID
	GetCampaign(ctx context.Context, input *GetCampaignInput) (*GetCampaignOutput, error)

	// SaveCampaign creates or updates a campaign
	SaveCampaign(ctx context.Context, input *SaveCampaignInput) (*SaveCampaignOutput, error)

	// DeleteCampaign removes a campaign
	DeleteCampaign(ctx context.Context, input *DeleteCampaignInput) (*DeleteCampaignOutput, error)

	// ListCampaignsByGM returns the campaigns a user runs, ordered by name
	ListCampaignsByGM(ctx context.Context, input *ListCampaignsByGMInput) (*ListCampaignsByGMOutput, error)

	// GetCharacter returns a character sheet by ID
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// SaveCharacter creates or updates a character sheet
	SaveCharacter(ctx context.Context, input *SaveCharacterInput) (*SaveCharacterOutput, error)

	// ListCharacters returns the character sheets in a campaign
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// DeleteCharacter removes a character sheet
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// IsGameMaster reports whether a user runs a campaign
	IsGameMaster(ctx context.Context, input *IsGameMasterInput) (*IsGameMasterOutput, error)
}
