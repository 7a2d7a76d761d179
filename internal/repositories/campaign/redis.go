package campaign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	campaignKeyPrefix    = "campaign:"
	gmCampaignsKeyPrefix = "gm_campaigns:"
)

// ErrCampaignNotFound is returned when a campaign is not found
var ErrCampaignNotFound = errors.New("campaign not found")

// Config holds configuration for the Redis campaign repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed campaign repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveCampaign persists a campaign to Redis and keeps the GM index current
func (r *redisRepository) SaveCampaign(ctx context.Context, input *SaveCampaignInput) error {
	if input == nil || input.Campaign == nil {
		return errors.New("input and campaign cannot be nil")
	}

	campaign := input.Campaign
	if campaign.ID == "" {
		return errors.New("campaign ID cannot be empty")
	}

	// Look up the previous GM so a handed-over campaign leaves the old index
	previous, err := r.GetCampaign(ctx, &GetCampaignInput{CampaignID: campaign.ID})
	if err != nil && !errors.Is(err, ErrCampaignNotFound) {
		return err
	}

	campaignJSON, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	pipe := r.client.TxPipeline()

	campaignKey := fmt.Sprintf("%s%s", campaignKeyPrefix, campaign.ID)
	pipe.Set(ctx, campaignKey, campaignJSON, 0)

	if previous != nil && previous.GMID != "" && previous.GMID != campaign.GMID {
		pipe.SRem(ctx, fmt.Sprintf("%s%s", gmCampaignsKeyPrefix, previous.GMID), campaign.ID)
	}
	if campaign.GMID != "" {
		pipe.SAdd(ctx, fmt.Sprintf("%s%s", gmCampaignsKeyPrefix, campaign.GMID), campaign.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}

	return nil
}

// GetCampaign retrieves a campaign by ID from Redis
func (r *redisRepository) GetCampaign(ctx context.Context, input *GetCampaignInput) (*models.Campaign, error) {
	if input == nil || input.CampaignID == "" {
		return nil, errors.New("input and campaign ID cannot be empty")
	}

	campaignKey := fmt.Sprintf("%s%s", campaignKeyPrefix, input.CampaignID)
	campaignJSON, err := r.client.Get(ctx, campaignKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	var campaign models.Campaign
	if err := json.Unmarshal([]byte(campaignJSON), &campaign); err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}

	return &campaign, nil
}

// DeleteCampaign removes a campaign and its GM index entry
func (r *redisRepository) DeleteCampaign(ctx context.Context, input *DeleteCampaignInput) error {
	if input == nil || input.CampaignID == "" {
		return errors.New("input and campaign ID cannot be empty")
	}

	campaign, err := r.GetCampaign(ctx, &GetCampaignInput{CampaignID: input.CampaignID})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, fmt.Sprintf("%s%s", campaignKeyPrefix, input.CampaignID))
	if campaign.GMID != "" {
		pipe.SRem(ctx, fmt.Sprintf("%s%s", gmCampaignsKeyPrefix, campaign.GMID), input.CampaignID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	return nil
}

// GetCampaignsByGM retrieves every campaign run by a GM, ordered by name
func (r *redisRepository) GetCampaignsByGM(ctx context.Context, input *GetCampaignsByGMInput) (*GetCampaignsByGMOutput, error) {
	if input == nil || input.GMID == "" {
		return nil, errors.New("input and GM ID cannot be empty")
	}

	campaignIDs, err := r.client.SMembers(ctx, fmt.Sprintf("%s%s", gmCampaignsKeyPrefix, input.GMID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign IDs for GM: %w", err)
	}

	if len(campaignIDs) == 0 {
		return &GetCampaignsByGMOutput{
			Campaigns: []*models.Campaign{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commands := make(map[string]*redis.StringCmd, len(campaignIDs))
	for _, campaignID := range campaignIDs {
		commands[campaignID] = pipe.Get(ctx, fmt.Sprintf("%s%s", campaignKeyPrefix, campaignID))
	}

	// redis.Nil from a single GET surfaces here too; it is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	campaigns := make([]*models.Campaign, 0, len(campaignIDs))
	for campaignID, cmd := range commands {
		campaignJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Campaign was deleted between reading the index and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get campaign %s: %w", campaignID, err)
		}

		var campaign models.Campaign
		if err := json.Unmarshal([]byte(campaignJSON), &campaign); err != nil {
			return nil, fmt.Errorf("failed to unmarshal campaign %s: %w", campaignID, err)
		}
		campaigns = append(campaigns, &campaign)
	}

	sort.Slice(campaigns, func(i, j int) bool {
		if campaigns[i].Name == campaigns[j].Name {
			return campaigns[i].ID < campaigns[j].ID
		}
		return campaigns[i].Name < campaigns[j].Name
	})

	return &GetCampaignsByGMOutput{
		Campaigns: campaigns,
	}, nil
}
