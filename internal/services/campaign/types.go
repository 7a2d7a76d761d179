package campaign

import (
	"github.com/KirkDiggler/midnight/internal/common/clock"
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/models"
	campaignRepo "github.com/KirkDiggler/midnight/internal/repositories/campaign"
	characterRepo "github.com/KirkDiggler/midnight/internal/repositories/character"
)

// Config holds configuration for the campaign service
type Config struct {
	// Repository dependencies
	CampaignRepo  campaignRepo.Repository
	CharacterRepo characterRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// GetCampaignInput contains parameters for getting a campaign
type GetCampaignInput struct {
	CampaignID string
}

// GetCampaignOutput contains the result of getting a campaign
type GetCampaignOutput struct {
	Campaign *models.Campaign
}

// SaveCampaignInput creates the campaign when its ID is empty
type SaveCampaignInput struct {
	Campaign *models.Campaign
}

// SaveCampaignOutput contains the result of saving a campaign
type SaveCampaignOutput struct {
	Campaign *models.Campaign
	Created  bool
}

// DeleteCampaignInput contains parameters for deleting a campaign
type DeleteCampaignInput struct {
	CampaignID string
}

// DeleteCampaignOutput contains the result of deleting a campaign
type DeleteCampaignOutput struct {
	Success bool
}

// GetCharacterInput contains parameters for getting a character sheet
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput contains the result of getting a character sheet
type GetCharacterOutput struct {
	Character *models.Character
}

// SaveCharacterInput creates the character when its ID is empty
type SaveCharacterInput struct {
	Character *models.Character
}

// SaveCharacterOutput contains the result of saving a character sheet
type SaveCharacterOutput struct {
	Character *models.Character
	Created   bool
}

// ListCampaignsByGMInput contains parameters for listing a GM's campaigns
type ListCampaignsByGMInput struct {
	GMID string
}

// ListCampaignsByGMOutput contains the result of listing a GM's campaigns
type ListCampaignsByGMOutput struct {
	Campaigns []*models.Campaign
}

// ListCharactersInput contains parameters for listing a campaign's character sheets
type ListCharactersInput struct {
	CampaignID string
}

// ListCharactersOutput contains the result of listing a campaign's character sheets
type ListCharactersOutput struct {
	Characters []*models.Character
}

// DeleteCharacterInput contains parameters for deleting a character sheet
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput contains the result of deleting a character sheet
type DeleteCharacterOutput struct {
	Success bool
}

// IsGameMasterInput contains parameters for checking whether a user is the GM
type IsGameMasterInput struct {
	CampaignID string
	UserID     string
}

// IsGameMasterOutput contains the result of checking whether a user is the GM
type IsGameMasterOutput struct {
	IsGameMaster bool
}
