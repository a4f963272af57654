// Package notes validates and persists notes, announcing successful writes to
// the note's room.
package notes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dkeye/Notes/internal/domain"
	applog "github.com/dkeye/Notes/internal/log"
	"github.com/dkeye/Notes/internal/store"
)

// Broadcaster queues a room event; exclude may be empty.
type Broadcaster interface {
	Broadcast(room domain.RoomID, evt domain.Event, exclude domain.SessionID) error
}

type Service struct {
	store  store.NoteStore
	events Broadcaster
	now    func() time.Time
	newID  func() string
}

func NewService(s store.NoteStore, events Broadcaster) *Service {
	return &Service{
		store:  s,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func (s *Service) List(ctx context.Context, room domain.RoomID) ([]domain.Note, error) {
	return s.store.ListByRoom(ctx, room)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Note, error) {
	return s.store.Get(ctx, id)
}

// Create persists the note and, once stored, announces it to every member of
// its room except origin.
func (s *Service) Create(ctx context.Context, req domain.CreateNoteRequest, origin domain.SessionID) (*domain.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	note := domain.NewNote(s.newID(), req, s.now())
	if err := s.store.Create(ctx, note); err != nil {
		return nil, err
	}
	s.announce(ctx, note.RoomID, domain.NoteCreatedEvent(note), origin)
	return note, nil
}

// Update overwrites title and content. The editing client announces the
// change itself once this returns.
func (s *Service) Update(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	note, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	note.Apply(req, s.now())
	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) Delete(ctx context.Context, id string, origin domain.SessionID) error {
	note, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, note.RoomID, domain.NoteDeletedEvent(id), origin)
	return nil
}

func (s *Service) announce(ctx context.Context, room domain.RoomID, evt domain.Event, origin domain.SessionID) {
	if err := s.events.Broadcast(room, evt, origin); err != nil {
		l := applog.Ctx(ctx)
		l.Warn().Err(err).Str("room", string(room)).Str("type", string(evt.Type)).Msg("broadcast not queued")
	}
}
