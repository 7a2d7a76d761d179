package campaign

import "github.com/KirkDiggler/midnight/internal/models"

type SaveCampaignInput struct {
	Campaign *models.Campaign
}

type GetCampaignInput struct {
	CampaignID string
}

type DeleteCampaignInput struct {
	CampaignID string
}

type GetCampaignsByGMInput struct {
	GMID string
}

type GetCampaignsByGMOutput struct {
	Campaigns []*models.Campaign
}
