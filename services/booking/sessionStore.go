package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eventbook/models"
	"eventbook/utils"

	"github.com/go-redis/redis/v8"
)

const maxSessionUpdateAttempts = 3

// SessionStore keeps caller-owned timeline sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.TimelineSession, error)
	Save(ctx context.Context, session *models.TimelineSession) error
	// Update loads a session, applies fn and stores the result atomically. If
	// fn returns an error nothing is written.
	Update(ctx context.Context, id string, fn func(*models.TimelineSession) error) (*models.TimelineSession, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore stores sessions as JSON with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = utils.DefaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return utils.SessionCachePrefix + id
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.TimelineSession, error) {
	return s.get(ctx, s.client, id)
}

func (s *RedisSessionStore) get(ctx context.Context, cmd redis.Cmdable, id string) (*models.TimelineSession, error) {
	data, err := cmd.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	var session models.TimelineSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", id, err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.TimelineSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(session.ID), b, s.ttl).Err()
}

// Update uses WATCH so that two concurrent edits of one session cannot
// silently overwrite each other; a lost race is retried.
func (s *RedisSessionStore) Update(ctx context.Context, id string, fn func(*models.TimelineSession) error) (*models.TimelineSession, error) {
	key := sessionKey(id)
	var result *models.TimelineSession

	txf := func(tx *redis.Tx) error {
		session, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		b, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, s.ttl)
			return nil
		})
		if err == nil {
			result = session
		}
		return err
	}

	for attempt := 0; attempt < maxSessionUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("session %s: too many concurrent updates", id)
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}
