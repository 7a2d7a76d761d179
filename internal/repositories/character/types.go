package character

import "github.com/KirkDiggler/midnight/internal/models"

// SaveCharacterInput contains parameters for saving a character
type SaveCharacterInput struct {
	Character *models.Character
}

// GetCharacterInput contains parameters for retrieving a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharactersInCampaignInput contains parameters for retrieving characters in a campaign
type GetCharactersInCampaignInput struct {
	CampaignID string
}

// GetCharactersInCampaignOutput contains the result of retrieving characters in a campaign
type GetCharactersInCampaignOutput struct {
	Characters []*models.Character
}

// DeleteCharacterInput contains parameters for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}
