package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dkeye/Notes/internal/domain"
	"github.com/dkeye/Notes/internal/mocks"
)

func TestCachedStore_ListByRoom(t *testing.T) {
	ctx := context.Background()
	cached := []domain.Note{{ID: "a", RoomID: "r1"}}
	fresh := []domain.Note{{ID: "b", RoomID: "r1"}}

	t.Run("hit skips the store", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		cache.EXPECT().GetRoom(ctx, domain.RoomID("r1")).Return(cached, int64(2), nil)

		got, err := NewCachedStore(inner, cache, time.Minute).ListByRoom(ctx, "r1")

		req.NoError(err)
		req.Equal(cached, got)
	})

	t.Run("miss fills the cache", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		gomock.InOrder(
			cache.EXPECT().GetRoom(ctx, domain.RoomID("r1")).Return(nil, int64(7), ErrCacheMiss),
			inner.EXPECT().ListByRoom(ctx, domain.RoomID("r1")).Return(fresh, nil),
			cache.EXPECT().SetRoom(ctx, domain.RoomID("r1"), fresh, int64(7), time.Minute).Return(nil),
		)

		got, err := NewCachedStore(inner, cache, time.Minute).ListByRoom(ctx, "r1")

		req.NoError(err)
		req.Equal(fresh, got)
	})

	t.Run("fill raced by a write is dropped", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		gomock.InOrder(
			cache.EXPECT().GetRoom(ctx, domain.RoomID("r1")).Return(nil, int64(3), ErrCacheMiss),
			inner.EXPECT().ListByRoom(ctx, domain.RoomID("r1")).Return(fresh, nil),
			cache.EXPECT().SetRoom(ctx, domain.RoomID("r1"), fresh, int64(3), time.Minute).Return(ErrCacheStale),
		)

		got, err := NewCachedStore(inner, cache, time.Minute).ListByRoom(ctx, "r1")

		req.NoError(err)
		req.Equal(fresh, got)
	})

	t.Run("broken cache falls through without a fill", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		cache.EXPECT().GetRoom(gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("redis down"))
		inner.EXPECT().ListByRoom(ctx, domain.RoomID("r1")).Return(fresh, nil)

		got, err := NewCachedStore(inner, cache, time.Minute).ListByRoom(ctx, "r1")

		req.NoError(err)
		req.Equal(fresh, got)
	})

	t.Run("store error is not cached", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		cache.EXPECT().GetRoom(gomock.Any(), gomock.Any()).Return(nil, int64(0), ErrCacheMiss)
		inner.EXPECT().ListByRoom(gomock.Any(), gomock.Any()).Return(nil, domain.ErrStore)

		_, err := NewCachedStore(inner, cache, time.Minute).ListByRoom(ctx, "r1")

		req.ErrorIs(err, domain.ErrStore)
	})
}

func TestCachedStore_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	note := &domain.Note{ID: "a", RoomID: "r1"}

	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		gomock.InOrder(
			inner.EXPECT().Create(ctx, note).Return(nil),
			cache.EXPECT().InvalidateRoom(ctx, domain.RoomID("r1")).Return(nil),
		)

		require.NoError(t, NewCachedStore(inner, cache, time.Minute).Create(ctx, note))
	})

	t.Run("failed update keeps cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		inner.EXPECT().Update(ctx, note).Return(domain.ErrNoteNotFound)

		err := NewCachedStore(inner, cache, time.Minute).Update(ctx, note)

		require.ErrorIs(t, err, domain.ErrNoteNotFound)
	})

	t.Run("delete looks up the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		inner := mocks.NewMockNoteStore(ctrl)
		cache := mocks.NewMockNoteCache(ctrl)
		gomock.InOrder(
			inner.EXPECT().Get(ctx, "a").Return(note, nil),
			inner.EXPECT().Delete(ctx, "a").Return(nil),
			cache.EXPECT().InvalidateRoom(ctx, domain.RoomID("r1")).Return(nil),
		)

		require.NoError(t, NewCachedStore(inner, cache, time.Minute).Delete(ctx, "a"))
	})
}
