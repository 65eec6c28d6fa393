package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/fitpick/admin-gateway/internal/domain/auth"
)

// RememberStore persists remembered-identity records. Records carry no TTL:
// a remembered email outlives every session and every logout that does not
// explicitly clear it.
type RememberStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRememberStore creates a new Redis-based remembered-identity store.
func NewRememberStore(client redis.UniversalClient) *RememberStore {
	return &RememberStore{client: client, prefix: "remember:"}
}

func (s *RememberStore) Save(ctx context.Context, clientID string, rec domainauth.RememberedIdentity) error {
	if clientID == "" {
		return errors.New("client ID cannot be empty")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal remembered identity: %w", err)
	}

	return s.client.Set(ctx, s.prefix+clientID, data, 0).Err()
}

func (s *RememberStore) Get(ctx context.Context, clientID string) (domainauth.RememberedIdentity, error) {
	if clientID == "" {
		return domainauth.RememberedIdentity{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+clientID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.RememberedIdentity{}, ErrNotFound
		}
		return domainauth.RememberedIdentity{}, fmt.Errorf("redis get: %w", err)
	}

	var rec domainauth.RememberedIdentity
	if unmarshalErr := json.Unmarshal([]byte(data), &rec); unmarshalErr != nil {
		return domainauth.RememberedIdentity{}, fmt.Errorf("unmarshal remembered identity: %w", unmarshalErr)
	}

	return rec, nil
}

func (s *RememberStore) Delete(ctx context.Context, clientID string) error {
	if clientID == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+clientID).Err()
}
