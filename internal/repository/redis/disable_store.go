package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/omarshaarawi/hoopsbot/internal/models"
	"github.com/redis/go-redis/v9"
)

// DisableStore persists player overrides as one JSON object under key, in the
// same flat shape the overrides are exchanged in.
type DisableStore struct {
	client *redis.Client
	key    string
}

// NewDisableStore connects to redisURL and verifies the connection.
func NewDisableStore(redisURL, key string) (*DisableStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewDisableStoreWithClient(client, key), nil
}

func NewDisableStoreWithClient(client *redis.Client, key string) *DisableStore {
	return &DisableStore{client: client, key: key}
}

func (s *DisableStore) Close() error {
	return s.client.Close()
}

// Load returns an empty state when nothing has been saved yet. A stored value
// that is not a JSON object is treated as empty rather than failing.
func (s *DisableStore) Load(ctx context.Context) (models.DisableState, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.DisableState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading disable state: %w", err)
	}
	return decodeState(raw), nil
}

func (s *DisableStore) Save(ctx context.Context, state models.DisableState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding disable state: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("saving disable state: %w", err)
	}
	return nil
}

func decodeState(raw []byte) models.DisableState {
	var state models.DisableState
	if err := json.Unmarshal(raw, &state); err != nil || state == nil {
		return models.DisableState{}
	}
	return state
}
