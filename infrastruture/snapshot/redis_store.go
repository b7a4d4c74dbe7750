// Package snapshot keeps the latest state of each maze session in Redis.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/shifting-maze/game"
	"github.com/beka-birhanu/shifting-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "maze:session:"

var _ i.SnapshotStore = &RedisStore{}

// RedisStore stores one JSON encoded state per session, expiring after a TTL.
// Writes of a session are serialized by a redsync lock so an older version never
// overwrites a newer one, even across instances.
type RedisStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisStore initializes a RedisStore with the provided Redis client and TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("snapshot ttl must be positive, got %s", ttl)
	}
	store := &RedisStore{
		client: client,
		ttl:    ttl,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Save stores the state unless the stored one has the same or a newer version.
func (s *RedisStore) Save(ctx context.Context, state game.State) error {
	key := sessionKey(state.SessionID)
	mutex := s.locker.NewMutex(lockKey(state.SessionID))
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	current, err := s.load(ctx, key)
	if err != nil && !errors.Is(err, i.ErrSnapshotNotFound) {
		return err
	}
	if !isNewer(current, state) {
		return nil
	}

	data, err := encodeState(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Latest returns the stored state of the session.
func (s *RedisStore) Latest(ctx context.Context, sessionID uuid.UUID) (*game.State, error) {
	return s.load(ctx, sessionKey(sessionID))
}

func (s *RedisStore) load(ctx context.Context, key string) (*game.State, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, i.ErrSnapshotNotFound
		}
		return nil, err
	}
	return decodeState(data)
}

func sessionKey(id uuid.UUID) string {
	return keyPrefix + id.String()
}

func lockKey(id uuid.UUID) string {
	return sessionKey(id) + ":lock"
}

// isNewer reports whether next should replace current.
func isNewer(current *game.State, next game.State) bool {
	return current == nil || next.Version > current.Version
}

func encodeState(state game.State) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encoding session state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (*game.State, error) {
	var state game.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding session state: %w", err)
	}
	return &state, nil
}
