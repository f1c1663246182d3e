package presets

import (
	"context"
	"fmt"
	"time"

	"github.com/argoview/backend-go/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// DynamoStore keeps presets in a DynamoDB table keyed by presetId
type DynamoStore struct {
	client DynamoDBClient
	config *config.PresetConfig
	clock  clock
	sleep  func(time.Duration)
}

func NewDynamoStore(client DynamoDBClient, presetConfig *config.PresetConfig) *DynamoStore {
	if presetConfig == nil {
		presetConfig = config.GetPresetConfig()
	}
	return &DynamoStore{
		client: client,
		config: presetConfig,
		clock:  systemClock{},
		sleep:  time.Sleep,
	}
}

// GetPreset returns nil without error when the preset does not exist or has expired
func (s *DynamoStore) GetPreset(ctx context.Context, id string) (*Preset, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.config.TableName),
		Key: map[string]types.AttributeValue{
			"presetId": &types.AttributeValueMemberS{Value: id},
		},
	}

	result, err := s.client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("getting preset from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var preset Preset
	if err := attributevalue.UnmarshalMap(result.Item, &preset); err != nil {
		return nil, fmt.Errorf("unmarshaling preset: %w", err)
	}

	if !s.isValid(preset) {
		log.Debug().Str("preset_id", id).Msg("Preset expired")
		return nil, nil
	}

	return &preset, nil
}

func (s *DynamoStore) SavePreset(ctx context.Context, preset Preset) error {
	if err := preset.Validate(); err != nil {
		return fmt.Errorf("invalid preset: %w", err)
	}

	item, err := s.marshal(preset)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.config.TableName),
		Item:      item,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("putting preset in DynamoDB: %w", err)
	}

	log.Debug().Str("preset_id", preset.ID).Str("name", preset.Name).Msg("Saved preset")
	return nil
}

// SavePresetsBatch writes presets in batches, retrying each failed batch with exponential backoff
func (s *DynamoStore) SavePresetsBatch(ctx context.Context, presets []Preset) error {
	for _, preset := range presets {
		if err := preset.Validate(); err != nil {
			return fmt.Errorf("invalid preset: %w", err)
		}
	}

	batchSize := s.config.BatchSize
	if batchSize <= 0 {
		batchSize = 25
	}
	maxRetries := s.config.MaxBatchRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}

	for i := 0; i < len(presets); i += batchSize {
		end := i + batchSize
		if end > len(presets) {
			end = len(presets)
		}

		var writeRequests []types.WriteRequest
		for _, preset := range presets[i:end] {
			item, err := s.marshal(preset)
			if err != nil {
				return err
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := s.writeBatch(ctx, writeRequests, maxRetries); err != nil {
			return err
		}
	}

	return nil
}

// writeBatch sends requests until DynamoDB reports nothing unprocessed, resubmitting
// only the unprocessed items after each backoff
func (s *DynamoStore) writeBatch(ctx context.Context, pending []types.WriteRequest, maxRetries int) error {
	var lastErr error
	for retry := 0; retry < maxRetries; retry++ {
		if retry > 0 {
			s.sleep(time.Duration(1<<(retry-1)) * 100 * time.Millisecond)
		}

		input := &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.config.TableName: pending,
			},
		}

		output, err := s.client.BatchWriteItem(ctx, input)
		if err != nil {
			lastErr = err
			continue
		}

		pending = output.UnprocessedItems[s.config.TableName]
		if len(pending) == 0 {
			return nil
		}
		lastErr = fmt.Errorf("%d presets unprocessed", len(pending))
		log.Debug().Int("unprocessed", len(pending)).Int("attempt", retry+1).Msg("Retrying unprocessed presets")
	}

	return fmt.Errorf("batch writing presets after %d attempts: %w", maxRetries, lastErr)
}

func (s *DynamoStore) marshal(preset Preset) (map[string]types.AttributeValue, error) {
	now := s.clock.Now().Unix()
	if preset.CreatedAt == 0 {
		preset.CreatedAt = now
	}
	preset.TTL = now + int64(s.config.GetDynamoTTL().Seconds())

	item, err := attributevalue.MarshalMap(preset)
	if err != nil {
		return nil, fmt.Errorf("marshaling preset: %w", err)
	}
	return item, nil
}

func (s *DynamoStore) isValid(preset Preset) bool {
	return preset.TTL == 0 || s.clock.Now().Unix() < preset.TTL
}
