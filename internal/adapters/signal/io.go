package signal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/app"
	"github.com/dkeye/Notes/internal/domain"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(ctl.cfg.WriteWait))
			return
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping failed")
				return
			}
		}
	}
}

// readPump owns the session: when it returns the session is disconnected.
func (ctl *SignalWSController) readPump(cl *wsClient) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(cl.sid)).Msg("readPump closing")
		if err := cl.sess.Disconnect(); err != nil && !errors.Is(err, app.ErrDispatcherStopped) {
			log.Error().Err(err).Str("module", "signal").Str("sid", string(cl.sid)).Msg("disconnect")
		}
		cl.conn.Close()
		ctl.limiter.Forget(cl.sid)
	}()

	ws := cl.conn.conn
	ws.SetReadLimit(ctl.cfg.ReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(ctl.cfg.PongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(ctl.cfg.PongWait))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Warn().Err(err).Str("module", "signal").Str("sid", string(cl.sid)).Msg("readPump read error")
			}
			return
		}
		ctl.handleSignal(cl, data)
	}
}

func (ctl *SignalWSController) handleSignal(cl *wsClient, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(cl.sid)).Msg("bad json")
		return
	}

	var err error
	switch env.Type {
	case domain.MsgJoinRoom:
		err = ctl.handleJoin(cl, data)
	case domain.MsgUpdateNote:
		err = ctl.handleUpdateNote(cl, data)
	case domain.MsgTyping:
		err = ctl.handleTyping(cl, data)
	case domain.MsgLeaveRoom:
		err = ctl.handleLeave(cl)
	case domain.MsgPing:
		ctl.handlePing(cl)
	case domain.MsgWhoAmI:
		err = ctl.handleWhoAmI(cl)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(cl.sid)).Str("type", env.Type).Msg("signal not handled")
	}
}

func (ctl *SignalWSController) send(c *WsSignalConn, evt domain.Event) {
	b, err := evt.Encode()
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("send encode")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(cl *wsClient, reason string) {
	ctl.send(cl.conn, domain.ErrorEvent(reason))
}
