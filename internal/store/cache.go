package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dkeye/Notes/internal/config"
	"github.com/dkeye/Notes/internal/domain"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheStale rejects a fill whose listing predates an invalidation.
	ErrCacheStale = errors.New("cache entry invalidated during fill")
)

// NoteCache holds the note list of a room. Every invalidation bumps the
// room's version; a fill is only stored while the version it read is current.
type NoteCache interface {
	// GetRoom returns ErrCacheMiss together with the version to fill at.
	GetRoom(ctx context.Context, room domain.RoomID) ([]domain.Note, int64, error)
	SetRoom(ctx context.Context, room domain.RoomID, notes []domain.Note, version int64, ttl time.Duration) error
	InvalidateRoom(ctx context.Context, room domain.RoomID) error
	Close() error
}

type RedisNoteCache struct {
	client *redis.Client
	prefix string
}

func NewRedisNoteCache(cfg config.CacheConfig) (*RedisNoteCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisNoteCacheFromClient(client, cfg.Prefix), nil
}

func NewRedisNoteCacheFromClient(client *redis.Client, prefix string) *RedisNoteCache {
	return &RedisNoteCache{client: client, prefix: prefix}
}

func (c *RedisNoteCache) roomKey(room domain.RoomID) string {
	return fmt.Sprintf("%s:room:%s:notes", c.prefix, room)
}

func (c *RedisNoteCache) versionKey(room domain.RoomID) string {
	return fmt.Sprintf("%s:room:%s:version", c.prefix, room)
}

func (c *RedisNoteCache) GetRoom(ctx context.Context, room domain.RoomID) ([]domain.Note, int64, error) {
	vals, err := c.client.MGet(ctx, c.roomKey(room), c.versionKey(room)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get from redis: %w", err)
	}
	version, err := parseVersion(vals[1])
	if err != nil {
		return nil, 0, err
	}

	data, ok := vals[0].(string)
	if !ok {
		return nil, version, ErrCacheMiss
	}
	var notes []domain.Note
	if err := json.Unmarshal([]byte(data), &notes); err != nil {
		return nil, version, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return notes, version, nil
}

// SetRoom stores notes only if no invalidation happened since version was read.
func (c *RedisNoteCache) SetRoom(ctx context.Context, room domain.RoomID, notes []domain.Note, version int64, ttl time.Duration) error {
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	verKey := c.versionKey(room)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, verKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		v, err := parseVersion(cur)
		if err != nil {
			return err
		}
		if v != version {
			return ErrCacheStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, c.roomKey(room), data, ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCacheStale), errors.Is(err, redis.TxFailedErr):
		return ErrCacheStale
	default:
		return fmt.Errorf("failed to set in redis: %w", err)
	}
}

func (c *RedisNoteCache) InvalidateRoom(ctx context.Context, room domain.RoomID) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, c.versionKey(room))
		p.Del(ctx, c.roomKey(room))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate in redis: %w", err)
	}
	return nil
}

func parseVersion(v any) (int64, error) {
	switch s := v.(type) {
	case nil:
		return 0, nil
	case string:
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("bad cache version %q: %w", s, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("bad cache version type %T", v)
	}
}

func (c *RedisNoteCache) Close() error {
	return c.client.Close()
}
