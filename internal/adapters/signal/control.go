package signal

import "github.com/dkeye/Notes/internal/domain"

func (ctl *SignalWSController) handlePing(cl *wsClient) {
	ctl.send(cl.conn, domain.Event{Type: domain.EventPong})
}
