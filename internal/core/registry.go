package core

import (
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Notes/internal/domain"
)

type roomEntry struct {
	members []domain.Participant
}

func (e *roomEntry) indexOf(sid domain.SessionID) int {
	return slices.IndexFunc(e.members, func(p domain.Participant) bool { return p.ID == sid })
}

func (e *roomEntry) snapshot() []domain.Participant {
	return slices.Clone(e.members)
}

// Registry tracks which session sits in which room.
// A room exists only while it has at least one participant.
type Registry struct {
	rooms    map[domain.RoomID]*roomEntry
	sessions map[domain.SessionID]domain.RoomID
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[domain.RoomID]*roomEntry),
		sessions: make(map[domain.SessionID]domain.RoomID),
		now:      time.Now,
	}
}

// Join places sid into room, leaving any other room first, and returns the
// room's participants in join order. Joining the same room again replaces
// the entry where it stands.
func (r *Registry) Join(room domain.RoomID, sid domain.SessionID, name string) []domain.Participant {
	if cur, ok := r.sessions[sid]; ok && cur != room {
		r.Leave(sid)
	}

	e, ok := r.rooms[room]
	if !ok {
		e = &roomEntry{}
		r.rooms[room] = e
		log.Debug().Str("module", "core.registry").Str("room", string(room)).Msg("room created")
	}

	p := domain.Participant{ID: sid, Username: name, JoinedAt: r.now()}
	if i := e.indexOf(sid); i >= 0 {
		e.members[i] = p
	} else {
		e.members = append(e.members, p)
	}
	r.sessions[sid] = room

	log.Info().Str("module", "core.registry").Str("sid", string(sid)).Str("room", string(room)).Int("members", len(e.members)).Msg("joined")
	return e.snapshot()
}

// Leave removes sid from its room. ok is false when sid was in no room.
// remaining is empty, not nil, when the room was deleted.
func (r *Registry) Leave(sid domain.SessionID) (room domain.RoomID, remaining []domain.Participant, ok bool) {
	room, ok = r.sessions[sid]
	if !ok {
		return "", nil, false
	}
	delete(r.sessions, sid)

	e, exists := r.rooms[room]
	if !exists {
		return room, []domain.Participant{}, true
	}
	if i := e.indexOf(sid); i >= 0 {
		e.members = slices.Delete(e.members, i, i+1)
	}
	if len(e.members) == 0 {
		delete(r.rooms, room)
		log.Debug().Str("module", "core.registry").Str("room", string(room)).Msg("room deleted")
		return room, []domain.Participant{}, true
	}

	log.Info().Str("module", "core.registry").Str("sid", string(sid)).Str("room", string(room)).Int("members", len(e.members)).Msg("left")
	return room, e.snapshot(), true
}

func (r *Registry) RoomOf(sid domain.SessionID) (domain.RoomID, bool) {
	room, ok := r.sessions[sid]
	return room, ok
}

// Members returns nil for an unknown room.
func (r *Registry) Members(room domain.RoomID) []domain.Participant {
	e, ok := r.rooms[room]
	if !ok {
		return nil
	}
	return e.snapshot()
}

func (r *Registry) Participant(sid domain.SessionID) (domain.Participant, bool) {
	room, ok := r.sessions[sid]
	if !ok {
		return domain.Participant{}, false
	}
	e := r.rooms[room]
	if i := e.indexOf(sid); i >= 0 {
		return e.members[i], true
	}
	return domain.Participant{}, false
}

// Rooms lists live rooms ordered by id.
func (r *Registry) Rooms() []RoomInfo {
	out := lo.MapToSlice(r.rooms, func(id domain.RoomID, e *roomEntry) RoomInfo {
		return RoomInfo{ID: id, MemberCount: len(e.members)}
	})
	slices.SortFunc(out, func(a, b RoomInfo) int { return strings.Compare(string(a.ID), string(b.ID)) })
	return out
}
