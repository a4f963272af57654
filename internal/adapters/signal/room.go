package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/domain"
)

func (ctl *SignalWSController) handleJoin(cl *wsClient, data []byte) error {
	var p domain.JoinRoomMessage
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(cl, "bad_payload")
		return nil
	}
	if !ctl.limiter.Allow(cl.sid) {
		ctl.sendError(cl, "rate_limited")
		return nil
	}

	name := domain.NormalizeUsername(p.Username, cl.fallback)
	log.Info().Str("module", "signal").Str("sid", string(cl.sid)).Str("room", string(p.RoomID)).Str("name", name).Msg("join")
	return cl.sess.Join(p.RoomID, name)
}

func (ctl *SignalWSController) handleUpdateNote(cl *wsClient, data []byte) error {
	var p domain.UpdateNoteMessage
	if err := json.Unmarshal(data, &p); err != nil || p.Note == nil || p.Note.ID == "" {
		log.Warn().Err(err).Str("module", "signal").Msg("bad update_note payload")
		ctl.sendError(cl, "bad_payload")
		return nil
	}
	return cl.sess.NoteEdited(p.Note)
}

func (ctl *SignalWSController) handleTyping(cl *wsClient, data []byte) error {
	var p domain.TypingMessage
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad typing payload")
		return nil
	}
	name := ""
	if p.Username != "" {
		name = domain.NormalizeUsername(p.Username, "")
	}
	return cl.sess.Typing(name)
}

// handleLeave ends the session; the server closes the socket after the "left" ack.
func (ctl *SignalWSController) handleLeave(cl *wsClient) error {
	log.Info().Str("module", "signal").Str("sid", string(cl.sid)).Msg("leave")
	return cl.sess.Leave()
}
