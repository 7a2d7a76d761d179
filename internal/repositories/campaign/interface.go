package campaign

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/midnight/internal/repositories/campaign Repository

import (
	"context"

	"github.com/KirkDiggler/midnight/internal/models"
)

// Repository defines the interface for campaign data persistence
type Repository interface {
	// SaveCampaign persists a campaign
	SaveCampaign(ctx context.Context, input *SaveCampaignInput) error

	// GetCampaign retrieves a campaign by ID
	GetCampaign(ctx context.Context, input *GetCampaignInput) (*models.Campaign, error)

	// DeleteCampaign removes a campaign
	DeleteCampaign(ctx context.Context, input *DeleteCampaignInput) error

	// GetCampaignsByGM retrieves every campaign run by a GM
	GetCampaignsByGM(ctx context.Context, input *GetCampaignsByGMInput) (*GetCampaignsByGMOutput, error)
}
