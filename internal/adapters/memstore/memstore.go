// Package memstore keeps sessions and cached values in process memory.
// Values are stored as JSON so readers never share slices with writers.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"uncharted_escape/internal/adapters/observability"
	"uncharted_escape/internal/domain"
)

type SessionStore struct{ c *gocache.Cache }

// NewSessionStore expires sessions after ttl without a Save.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{c: gocache.New(ttl, ttl/2+time.Second)}
}

func (s *SessionStore) Load(_ context.Context, id string) (domain.State, bool, error) {
	v, ok := s.c.Get(id)
	if !ok {
		return domain.State{}, false, nil
	}
	var st domain.State
	if err := json.Unmarshal(v.([]byte), &st); err != nil {
		return domain.State{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, true, nil
}

func (s *SessionStore) Save(_ context.Context, id string, st domain.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	s.c.Set(id, b, gocache.DefaultExpiration)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.c.Delete(id)
	return nil
}

type Cache struct{ c *gocache.Cache }

func NewCache() *Cache { return &Cache{c: gocache.New(gocache.NoExpiration, 10*time.Minute)} }

func (m *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(v.([]byte), dst)
}

func (m *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("memory", "set")
	m.c.Set(key, b, time.Duration(ttlSec)*time.Second)
	return nil
}

func (m *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	m.c.Delete(key)
	return nil
}
