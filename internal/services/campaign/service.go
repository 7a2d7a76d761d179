package campaign

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/midnight/internal/common/clock"
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	campaignRepo "github.com/KirkDiggler/midnight/internal/repositories/campaign"
	characterRepo "github.com/KirkDiggler/midnight/internal/repositories/character"
)

// service implements the Service interface
type service struct {
	campaignRepo  campaignRepo.Repository
	characterRepo characterRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new campaign service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.CampaignRepo == nil {
		return nil, ErrNilCampaignRepo
	}
	if cfg.CharacterRepo == nil {
		return nil, ErrNilCharacterRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		campaignRepo:  cfg.CampaignRepo,
		characterRepo: cfg.CharacterRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// GetCampaign returns a campaign by ID
func (s *service) GetCampaign(ctx context.Context, input *GetCampaignInput) (*GetCampaignOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, ErrNilInput
	}

	campaign, err := s.campaignRepo.GetCampaign(ctx, &campaignRepo.GetCampaignInput{
		CampaignID: input.CampaignID,
	})
	if err != nil {
		return nil, mapCampaignErr(err)
	}

	return &GetCampaignOutput{
		Campaign: campaign,
	}, nil
}

// SaveCampaign creates or updates a campaign, keeping the original creation time
func (s *service) SaveCampaign(ctx context.Context, input *SaveCampaignInput) (*SaveCampaignOutput, error) {
	if input == nil || input.Campaign == nil {
		return nil, ErrNilInput
	}

	campaign := *input.Campaign
	campaign.Name = strings.TrimSpace(campaign.Name)
	if campaign.Name == "" || campaign.GMID == "" {
		return nil, ErrInvalidCampaign
	}
	if campaign.PlayerIDs == nil {
		campaign.PlayerIDs = []string{}
	}

	now := s.clock.Now()
	created := false

	if campaign.ID == "" {
		campaign.ID = s.uuidGenerator.NewUUID()
		campaign.CreatedAt = now
		created = true
	} else {
		existing, err := s.campaignRepo.GetCampaign(ctx, &campaignRepo.GetCampaignInput{
			CampaignID: campaign.ID,
		})
		switch {
		case err == nil:
			campaign.CreatedAt = existing.CreatedAt
		case errors.Is(err, campaignRepo.ErrCampaignNotFound):
			campaign.CreatedAt = now
			created = true
		default:
			return nil, err
		}
	}
	campaign.UpdatedAt = now

	err := s.campaignRepo.SaveCampaign(ctx, &campaignRepo.SaveCampaignInput{
		Campaign: &campaign,
	})
	if err != nil {
		return nil, err
	}

	return &SaveCampaignOutput{
		Campaign: &campaign,
		Created:  created,
	}, nil
}

// DeleteCampaign removes a campaign
func (s *service) DeleteCampaign(ctx context.Context, input *DeleteCampaignInput) (*DeleteCampaignOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, ErrNilInput
	}

	err := s.campaignRepo.DeleteCampaign(ctx, &campaignRepo.DeleteCampaignInput{
		CampaignID: input.CampaignID,
	})
	if err != nil {
		return nil, mapCampaignErr(err)
	}

	return &DeleteCampaignOutput{
		Success: true,
	}, nil
}

// GetCharacter returns a character sheet by ID
func (s *service) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrNilInput
	}

	character, err := s.characterRepo.GetCharacter(ctx, &characterRepo.GetCharacterInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, mapCharacterErr(err)
	}

	return &GetCharacterOutput{
		Character: character,
	}, nil
}

// SaveCharacter creates or updates a character sheet in an existing campaign
func (s *service) SaveCharacter(ctx context.Context, input *SaveCharacterInput) (*SaveCharacterOutput, error) {
	if input == nil || input.Character == nil {
		return nil, ErrNilInput
	}

	character := *input.Character
	character.Name = strings.TrimSpace(character.Name)
	if character.Name == "" || character.CampaignID == "" {
		return nil, ErrInvalidCharacter
	}

	// The campaign must exist before sheets can be filed under it
	if _, err := s.campaignRepo.GetCampaign(ctx, &campaignRepo.GetCampaignInput{
		CampaignID: character.CampaignID,
	}); err != nil {
		return nil, mapCampaignErr(err)
	}

	now := s.clock.Now()
	created := false

	if character.ID == "" {
		character.ID = s.uuidGenerator.NewUUID()
		character.CreatedAt = now
		created = true
	} else {
		existing, err := s.characterRepo.GetCharacter(ctx, &characterRepo.GetCharacterInput{
			CharacterID: character.ID,
		})
		switch {
		case err == nil:
			character.CreatedAt = existing.CreatedAt
		case errors.Is(err, characterRepo.ErrCharacterNotFound):
			character.CreatedAt = now
			created = true
		default:
			return nil, err
		}
	}
	character.UpdatedAt = now

	err := s.characterRepo.SaveCharacter(ctx, &characterRepo.SaveCharacterInput{
		Character: &character,
	})
	if err != nil {
		return nil, err
	}

	return &SaveCharacterOutput{
		Character: &character,
		Created:   created,
	}, nil
}

// ListCampaignsByGM returns the campaigns a user runs, ordered by name
func (s *service) ListCampaignsByGM(ctx context.Context, input *ListCampaignsByGMInput) (*ListCampaignsByGMOutput, error) {
	if input == nil || input.GMID == "" {
		return nil, ErrNilInput
	}

	out, err := s.campaignRepo.GetCampaignsByGM(ctx, &campaignRepo.GetCampaignsByGMInput{
		GMID: input.GMID,
	})
	if err != nil {
		return nil, err
	}

	return &ListCampaignsByGMOutput{
		Campaigns: out.Campaigns,
	}, nil
}

// ListCharacters returns the character sheets in a campaign
func (s *service) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, ErrNilInput
	}

	out, err := s.characterRepo.GetCharactersInCampaign(ctx, &characterRepo.GetCharactersInCampaignInput{
		CampaignID: input.CampaignID,
	})
	if err != nil {
		return nil, err
	}

	return &ListCharactersOutput{
		Characters: out.Characters,
	}, nil
}

// DeleteCharacter removes a character sheet
func (s *service) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, ErrNilInput
	}

	err := s.characterRepo.DeleteCharacter(ctx, &characterRepo.DeleteCharacterInput{
		CharacterID: input.CharacterID,
	})
	if err != nil {
		return nil, mapCharacterErr(err)
	}

	return &DeleteCharacterOutput{
		Success: true,
	}, nil
}

// IsGameMaster reports whether a user runs a campaign
func (s *service) IsGameMaster(ctx context.Context, input *IsGameMasterInput) (*IsGameMasterOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, ErrNilInput
	}

	campaign, err := s.campaignRepo.GetCampaign(ctx, &campaignRepo.GetCampaignInput{
		CampaignID: input.CampaignID,
	})
	if err != nil {
		return nil, mapCampaignErr(err)
	}

	return &IsGameMasterOutput{
		IsGameMaster: campaign.IsGM(input.UserID),
	}, nil
}

func mapCampaignErr(err error) error {
	if errors.Is(err, campaignRepo.ErrCampaignNotFound) {
		return ErrCampaignNotFound
	}
	return err
}

func mapCharacterErr(err error) error {
	if errors.Is(err, characterRepo.ErrCharacterNotFound) {
		return ErrCharacterNotFound
	}
	return err
}
