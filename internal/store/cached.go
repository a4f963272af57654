package store

import (
	"context"
	"errors"
	"time"

	"github.com/dkeye/Notes/internal/domain"
	applog "github.com/dkeye/Notes/internal/log"
)

// CachedStore serves room listings from a NoteCache and drops the room's
// entry after every successful write. A listing read before a concurrent
// write is never cached. Cache failures fall through to the underlying store.
type CachedStore struct {
	NoteStore
	cache NoteCache
	ttl   time.Duration
}

func NewCachedStore(inner NoteStore, cache NoteCache, ttl time.Duration) *CachedStore {
	return &CachedStore{NoteStore: inner, cache: cache, ttl: ttl}
}

func (s *CachedStore) ListByRoom(ctx context.Context, room domain.RoomID) ([]domain.Note, error) {
	l := applog.Ctx(ctx)

	notes, version, err := s.cache.GetRoom(ctx, room)
	if err == nil {
		l.Debug().Str("room", string(room)).Msg("notes cache hit")
		return notes, nil
	}
	fill := errors.Is(err, ErrCacheMiss)
	if !fill {
		l.Warn().Err(err).Str("room", string(room)).Msg("notes cache read failed")
	}

	notes, err = s.NoteStore.ListByRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	if !fill {
		return notes, nil
	}
	switch err := s.cache.SetRoom(ctx, room, notes, version, s.ttl); {
	case err == nil:
	case errors.Is(err, ErrCacheStale):
		l.Debug().Str("room", string(room)).Msg("notes changed during cache fill, not cached")
	default:
		l.Warn().Err(err).Str("room", string(room)).Msg("notes cache write failed")
	}
	return notes, nil
}

func (s *CachedStore) Create(ctx context.Context, note *domain.Note) error {
	if err := s.NoteStore.Create(ctx, note); err != nil {
		return err
	}
	s.invalidate(ctx, note.RoomID)
	return nil
}

func (s *CachedStore) Update(ctx context.Context, note *domain.Note) error {
	if err := s.NoteStore.Update(ctx, note); err != nil {
		return err
	}
	s.invalidate(ctx, note.RoomID)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	note, err := s.NoteStore.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.NoteStore.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, note.RoomID)
	return nil
}

func (s *CachedStore) Close() error {
	return errors.Join(s.cache.Close(), s.NoteStore.Close())
}

func (s *CachedStore) invalidate(ctx context.Context, room domain.RoomID) {
	if err := s.cache.InvalidateRoom(ctx, room); err != nil {
		l := applog.Ctx(ctx)
		l.Warn().Err(err).Str("room", string(room)).Msg("notes cache invalidation failed")
	}
}
