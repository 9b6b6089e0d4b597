package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"uncharted_escape/internal/domain"
)

// SessionStore keeps each session's State as JSON. Every Save refreshes the TTL,
// so a session expires after ttl of inactivity.
type SessionStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewSessionStore(c *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{c: c, ttl: ttl}
}

func sessionKey(id string) string { return "session:" + id }

func (s *SessionStore) Load(ctx context.Context, id string) (domain.State, bool, error) {
	b, err := s.c.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return domain.State{}, false, nil
	}
	if err != nil {
		return domain.State{}, false, err
	}
	var st domain.State
	if err := json.Unmarshal(b, &st); err != nil {
		return domain.State{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, true, nil
}

func (s *SessionStore) Save(ctx context.Context, id string, st domain.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, sessionKey(id), b, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.c.Del(ctx, sessionKey(id)).Err()
}
