// Package orch implements the per-connection room protocol on top of the
// presence registry and the event router.
package orch

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/app"
	"github.com/dkeye/Notes/internal/core"
	"github.com/dkeye/Notes/internal/domain"
)

// Orchestrator owns the registry, the router and every live Session.
// All of them are only touched from inside the Dispatcher.
type Orchestrator struct {
	Registry   *core.Registry
	Router     *core.Router
	Dispatcher *app.Dispatcher
	Policy     app.Policy

	sessions map[domain.SessionID]*Session
}

func New(disp *app.Dispatcher, policy app.Policy) *Orchestrator {
	reg := core.NewRegistry()
	if policy == nil {
		policy = app.SimplePolicy{}
	}
	return &Orchestrator{
		Registry:   reg,
		Router:     core.NewRouter(reg),
		Dispatcher: disp,
		Policy:     policy,
		sessions:   make(map[domain.SessionID]*Session),
	}
}

// Connect registers a new session bound to conn. The returned session starts
// in StateConnected; its Disconnect must eventually be called.
func (o *Orchestrator) Connect(sid domain.SessionID, conn core.SignalConnection) (*Session, error) {
	s := &Session{ID: sid, o: o}
	err := o.Dispatcher.Post(func() {
		o.sessions[sid] = s
		o.Router.Attach(sid, conn)
		log.Info().Str("module", "orch").Str("sid", string(sid)).Msg("session connected")
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Broadcast queues evt for every member of room but exclude.
func (o *Orchestrator) Broadcast(room domain.RoomID, evt domain.Event, exclude domain.SessionID) error {
	return o.Dispatcher.Post(func() {
		o.broadcast(room, evt, exclude)
	})
}

func (o *Orchestrator) Rooms(ctx context.Context) ([]core.RoomInfo, error) {
	var out []core.RoomInfo
	err := o.Dispatcher.Do(ctx, func() { out = o.Registry.Rooms() })
	return out, err
}

func (o *Orchestrator) Members(ctx context.Context, room domain.RoomID) ([]domain.Participant, error) {
	var out []domain.Participant
	err := o.Dispatcher.Do(ctx, func() { out = o.Registry.Members(room) })
	return out, err
}

// Attached reports whether sid has a live transport.
func (o *Orchestrator) Attached(ctx context.Context, sid domain.SessionID) (bool, error) {
	var ok bool
	err := o.Dispatcher.Do(ctx, func() { ok = o.Router.Attached(sid) })
	return ok, err
}

func (o *Orchestrator) broadcast(room domain.RoomID, evt domain.Event, exclude domain.SessionID) {
	res := o.Router.Broadcast(room, evt, exclude)
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("sid", string(slow)).Str("room", string(room)).Msg("kicking slow session")
			o.kick(slow)
		case app.DropFrame, app.NoAction:
			log.Debug().Str("module", "orch").Str("sid", string(slow)).Str("type", string(evt.Type)).Msg("frame dropped")
		}
	}
}
