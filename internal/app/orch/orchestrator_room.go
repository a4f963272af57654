package orch

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/domain"
)

func (o *Orchestrator) join(s *Session, room domain.RoomID, name string) {
	if s.state == StateDisconnected {
		o.ignore(s, "join")
		return
	}
	if s.state == StateInRoom && s.room != room {
		o.leaveRoom(s)
	}

	users := o.Registry.Join(room, s.ID, name)
	s.state, s.room, s.name = StateInRoom, room, name
	log.Info().Str("module", "orch").Str("sid", string(s.ID)).Str("room", string(room)).Str("name", name).Msg("added to room")

	o.broadcast(room, domain.JoinedEvent(users, name), "")
}

func (o *Orchestrator) noteEdited(s *Session, note *domain.Note) {
	if s.state != StateInRoom || note == nil {
		o.ignore(s, "update_note")
		return
	}
	o.broadcast(s.room, domain.NoteUpdatedEvent(note), s.ID)
}

func (o *Orchestrator) typing(s *Session, name string) {
	if s.state != StateInRoom {
		o.ignore(s, "typing")
		return
	}
	if name == "" {
		name = s.name
	}
	o.broadcast(s.room, domain.TypingEvent(name), s.ID)
}

func (o *Orchestrator) leave(s *Session) {
	if s.state != StateInRoom {
		o.ignore(s, "leave")
		return
	}
	_ = o.Router.Send(s.ID, domain.Event{Type: domain.EventLeft, RoomID: s.room})
	o.kick(s.ID)
}

func (o *Orchestrator) disconnect(s *Session) {
	if s.state == StateDisconnected {
		return
	}
	if s.state == StateInRoom {
		o.leaveRoom(s)
	}
	s.state, s.room = StateDisconnected, ""
	delete(o.sessions, s.ID)
	o.Router.Detach(s.ID)
	log.Info().Str("module", "orch").Str("sid", string(s.ID)).Msg("session disconnected")
}

func (o *Orchestrator) whoAmI(s *Session) {
	evt := domain.Event{Type: domain.EventWhoAmI, SessionID: s.ID, Username: s.name, RoomID: s.room}
	_ = o.Router.Send(s.ID, evt)
}

// leaveRoom tells the remaining members, if there are any.
func (o *Orchestrator) leaveRoom(s *Session) {
	room, remaining, ok := o.Registry.Leave(s.ID)
	if !ok {
		return
	}
	log.Info().Str("module", "orch").Str("sid", string(s.ID)).Str("room", string(room)).Msg("removed from room")
	if len(remaining) > 0 {
		o.broadcast(room, domain.LeftEvent(remaining, s.name), "")
	}
}

// kick disconnects sid and closes its transport.
func (o *Orchestrator) kick(sid domain.SessionID) {
	conn, attached := o.Router.Detach(sid)
	if s, ok := o.sessions[sid]; ok {
		o.disconnect(s)
	}
	if attached {
		conn.Close()
	}
}

// EvictRoom kicks every member of room.
func (o *Orchestrator) EvictRoom(ctx context.Context, room domain.RoomID) (int, error) {
	var n int
	err := o.Dispatcher.Do(ctx, func() {
		for _, p := range o.Registry.Members(room) {
			o.kick(p.ID)
			n++
		}
		log.Info().Str("module", "orch").Str("room", string(room)).Int("kicked", n).Msg("room evicted")
	})
	return n, err
}

func (o *Orchestrator) ignore(s *Session, op string) {
	log.Debug().Str("module", "orch").Str("sid", string(s.ID)).Str("state", s.state.String()).Str("op", op).Msg("ignored in current state")
}
