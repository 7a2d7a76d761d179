package character

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
	characterKeyPrefix          = "character:"
	campaignCharactersKeyPrefix = "campaign_characters:"
)

// ErrCharacterNotFound is returned when a character is not found
var ErrCharacterNotFound = errors.New("character not found")

// Config holds configuration for the Redis character repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed character repository
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

// SaveCharacter persists a character to Redis
func (r *redisRepository) SaveCharacter(ctx context.Context, input *SaveCharacterInput) error {
	if input == nil || input.Character == nil {
		return errors.New("input and character cannot be nil")
	}

	character := input.Character

	// Ensure the character has an ID
	if character.ID == "" {
		return errors.New("character ID cannot be empty")
	}

	// A character moved to another campaign must leave the old campaign's set
	previous, err := r.GetCharacter(ctx, &GetCharacterInput{CharacterID: character.ID})
	if err != nil && !errors.Is(err, ErrCharacterNotFound) {
		return err
	}

	characterJSON, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.TxPipeline()

	characterKey := fmt.Sprintf("%s%s", characterKeyPrefix, character.ID)
	pipe.Set(ctx, characterKey, characterJSON, 0)

	if previous != nil && previous.CampaignID != "" && previous.CampaignID != character.CampaignID {
		pipe.SRem(ctx, fmt.Sprintf("%s%s", campaignCharactersKeyPrefix, previous.CampaignID), character.ID)
	}
	if character.CampaignID != "" {
		pipe.SAdd(ctx, fmt.Sprintf("%s%s", campaignCharactersKeyPrefix, character.CampaignID), character.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save character: %w", err)
	}

	return nil
}

// GetCharacter retrieves a character by ID from Redis
func (r *redisRepository) GetCharacter(ctx context.Context, input *GetCharacterInput) (*models.Character, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.New("input and character ID cannot be empty")
	}

	characterKey := fmt.Sprintf("%s%s", characterKeyPrefix, input.CharacterID)
	characterJSON, err := r.client.Get(ctx, characterKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var character models.Character
	if err := json.Unmarshal([]byte(characterJSON), &character); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}

	return &character, nil
}

// GetCharactersInCampaign retrieves all characters in a campaign, ordered by name
func (r *redisRepository) GetCharactersInCampaign(ctx context.Context, input *GetCharactersInCampaignInput) (*GetCharactersInCampaignOutput, error) {
	if input == nil || input.CampaignID == "" {
		return nil, errors.New("input and campaign ID cannot be empty")
	}

	setKey := fmt.Sprintf("%s%s", campaignCharactersKeyPrefix, input.CampaignID)
	characterIDs, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get characters in campaign: %w", err)
	}

	characters := make([]*models.Character, 0, len(characterIDs))
	for _, characterID := range characterIDs {
		character, err := r.GetCharacter(ctx, &GetCharacterInput{CharacterID: characterID})
		if err != nil {
			// Skip characters deleted after the set was read
			if errors.Is(err, ErrCharacterNotFound) {
				continue
			}
			return nil, err
		}
		characters = append(characters, character)
	}

	sort.Slice(characters, func(i, j int) bool {
		if characters[i].Name == characters[j].Name {
			return characters[i].ID < characters[j].ID
		}
		return characters[i].Name < characters[j].Name
	})

	return &GetCharactersInCampaignOutput{
		Characters: characters,
	}, nil
}

// DeleteCharacter removes a character and its campaign set entry
func (r *redisRepository) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) error {
	if input == nil || input.CharacterID == "" {
		return errors.New("input and character ID cannot be empty")
	}

	character, err := r.GetCharacter(ctx, &GetCharacterInput{CharacterID: input.CharacterID})
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, fmt.Sprintf("%s%s", characterKeyPrefix, input.CharacterID))
	if character.CampaignID != "" {
		pipe.SRem(ctx, fmt.Sprintf("%s%s", campaignCharactersKeyPrefix, character.CampaignID), input.CharacterID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	return nil
}
