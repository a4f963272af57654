package core

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/domain"
)

// Router fans events out to the endpoints of a room's sessions.
// Room membership is read from the Registry at send time.
type Router struct {
	registry *Registry
	conns    map[domain.SessionID]SignalConnection
}

func NewRouter(reg *Registry) *Router {
	return &Router{
		registry: reg,
		conns:    make(map[domain.SessionID]SignalConnection),
	}
}

// Attach binds an endpoint to sid. Every Attach must be paired with Detach.
func (rt *Router) Attach(sid domain.SessionID, conn SignalConnection) {
	rt.conns[sid] = conn
}

// Detach unbinds sid and returns the endpoint it had, if any.
func (rt *Router) Detach(sid domain.SessionID) (SignalConnection, bool) {
	conn, ok := rt.conns[sid]
	delete(rt.conns, sid)
	return conn, ok
}

func (rt *Router) Attached(sid domain.SessionID) bool {
	_, ok := rt.conns[sid]
	return ok
}

// Broadcast sends evt to every participant of room except exclude, in join
// order. A failed recipient never affects the others. Only recipients with a
// full buffer land in Dropped; missing or closed endpoints are skipped.
func (rt *Router) Broadcast(room domain.RoomID, evt domain.Event, exclude domain.SessionID) PublishResult {
	res := PublishResult{}
	frame, err := evt.Encode()
	if err != nil {
		log.Error().Err(err).Str("module", "core.router").Str("room", string(room)).Msg("encode failed")
		return res
	}

	for _, p := range rt.registry.Members(room) {
		if p.ID == exclude {
			continue
		}
		conn, ok := rt.conns[p.ID]
		if !ok {
			res.Skipped++
			continue
		}
		switch err := conn.TrySend(frame); {
		case err == nil:
			res.SentTo++
		case errors.Is(err, ErrBackpressure):
			res.Dropped = append(res.Dropped, p.ID)
		default:
			res.Skipped++
		}
	}
	log.Debug().Str("module", "core.router").Str("room", string(room)).Str("type", string(evt.Type)).
		Int("sent_to", res.SentTo).Int("skipped", res.Skipped).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

// Send delivers evt to a single session.
func (rt *Router) Send(sid domain.SessionID, evt domain.Event) error {
	conn, ok := rt.conns[sid]
	if !ok {
		return ErrConnectionClosed
	}
	frame, err := evt.Encode()
	if err != nil {
		return err
	}
	return conn.TrySend(frame)
}
