// Package store persists notes.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/Notes/internal/domain"
)

// NoteStore fails with domain.ErrNoteNotFound for unknown ids and wraps
// every infrastructure failure in domain.ErrStore.
type NoteStore interface {
	Create(ctx context.Context, note *domain.Note) error
	Get(ctx context.Context, id string) (*domain.Note, error)
	ListByRoom(ctx context.Context, room domain.RoomID) ([]domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
	Close() error
}

var errDuplicateID = errors.New("duplicate note id")

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}
