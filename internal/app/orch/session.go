package orch

import (
	"context"

	"github.com/dkeye/Notes/internal/domain"
)

type State int

const (
	StateConnected State = iota
	StateInRoom
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateInRoom:
		return "in_room"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Session is one connection's view of the protocol. Its methods queue work on
// the dispatcher and return ErrDispatcherStopped once it has shut down.
// Calls that are invalid for the current state are ignored.
type Session struct {
	ID domain.SessionID
	o  *Orchestrator

	// dispatcher-owned
	state State
	room  domain.RoomID
	name  string
}

func (s *Session) Join(room domain.RoomID, name string) error {
	return s.o.Dispatcher.Post(func() { s.o.join(s, room, name) })
}

func (s *Session) NoteEdited(note *domain.Note) error {
	return s.o.Dispatcher.Post(func() { s.o.noteEdited(s, note) })
}

func (s *Session) Typing(name string) error {
	return s.o.Dispatcher.Post(func() { s.o.typing(s, name) })
}

func (s *Session) Leave() error {
	return s.o.Dispatcher.Post(func() { s.o.leave(s) })
}

// Disconnect is safe to call any number of times.
func (s *Session) Disconnect() error {
	return s.o.Dispatcher.Post(func() { s.o.disconnect(s) })
}

func (s *Session) WhoAmI() error {
	return s.o.Dispatcher.Post(func() { s.o.whoAmI(s) })
}

// Snapshot reports the session's current state.
func (s *Session) Snapshot(ctx context.Context) (State, domain.RoomID, error) {
	var (
		state State
		room  domain.RoomID
	)
	err := s.o.Dispatcher.Do(ctx, func() { state, room = s.state, s.room })
	return state, room, err
}
