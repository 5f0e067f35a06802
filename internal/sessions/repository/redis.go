package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sessionserrors "lashstudio/internal/sessions/errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "lashstudio:session:"

type redisSessionRepository struct {
	redis *redis.Client
	ttl   time.Duration
	now   func() time.Time
}

// NewRedisSessionRepository stores each session as a JSON value whose TTL is
// refreshed on every write. Updates use WATCH so a concurrent writer aborts
// the transaction instead of overwriting it.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	if client == nil {
		panic("sessions: redis client cannot be nil")
	}
	return &redisSessionRepository{redis: client, ttl: ttl, now: time.Now}
}

func sessionKey(id string) string {
	return redisKeyPrefix + id
}

func (r *redisSessionRepository) Create(ctx context.Context, rec *Record) error {
	if err := validateID(rec.ID); err != nil {
		return err
	}

	rec.Revision = 1
	rec.CreatedAt = r.now().UTC()
	rec.UpdatedAt = rec.CreatedAt

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("sessions: failed to marshal session: %w", err)
	}

	ok, err := r.redis.SetNX(ctx, sessionKey(rec.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("sessions: failed to persist session: %w", err)
	}
	if !ok {
		return sessionserrors.ErrConflict
	}
	return nil
}

func (r *redisSessionRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return r.load(ctx, r.redis, id)
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisSessionRepository) load(ctx context.Context, c getter, id string) (*Record, error) {
	data, err := c.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sessionserrors.ErrNotFound
		}
		return nil, fmt.Errorf("sessions: failed to load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("sessions: failed to decode session: %w", err)
	}
	return &rec, nil
}

func (r *redisSessionRepository) Update(ctx context.Context, rec *Record) error {
	if err := validateID(rec.ID); err != nil {
		return err
	}
	key := sessionKey(rec.ID)

	var written Record
	err := r.redis.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := r.load(ctx, tx, rec.ID)
		if err != nil {
			return err
		}
		if stored.Revision != rec.Revision {
			return sessionserrors.ErrConflict
		}

		written = *rec
		written.Revision = stored.Revision + 1
		written.CreatedAt = stored.CreatedAt
		written.UpdatedAt = r.now().UTC()

		data, err := json.Marshal(&written)
		if err != nil {
			return fmt.Errorf("sessions: failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return sessionserrors.ErrConflict
	}
	if err != nil {
		return err
	}

	rec.Revision = written.Revision
	rec.CreatedAt = written.CreatedAt
	rec.UpdatedAt = written.UpdatedAt
	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	n, err := r.redis.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("sessions: failed to delete session: %w", err)
	}
	if n == 0 {
		return sessionserrors.ErrNotFound
	}
	return nil
}

func (r *redisSessionRepository) Ping(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}
