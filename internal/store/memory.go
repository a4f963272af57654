package store

import (
	"context"
	"sync"

	"github.com/dkeye/Notes/internal/domain"
)

// MemoryStore keeps notes in process memory, in creation order.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]*domain.Note
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: make(map[string]*domain.Note)}
}

func (s *MemoryStore) Create(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[note.ID]; ok {
		return storeErr("create", errDuplicateID)
	}
	cp := *note
	s.notes[note.ID] = &cp
	s.order = append(s.order, note.ID)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

func (s *MemoryStore) ListByRoom(_ context.Context, room domain.RoomID) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Note{}
	for _, id := range s.order {
		if n := s.notes[id]; n.RoomID == room {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[note.ID]
	if !ok {
		return domain.ErrNoteNotFound
	}
	n.Title = note.Title
	n.Content = note.Content
	n.UpdatedAt = note.UpdatedAt
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return domain.ErrNoteNotFound
	}
	delete(s.notes, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
