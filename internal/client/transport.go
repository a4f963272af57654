package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dkeye/Notes/internal/domain"
)

// Transport carries client messages to the server.
type Transport interface {
	Send(v any) error
	Close() error
}

const writeWait = 5 * time.Second

type WSTransport struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func Dial(ctx context.Context, url string, header http.Header) (*WSTransport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &WSTransport{conn: conn}, nil
}

func (t *WSTransport) Send(v any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.conn.WriteJSON(v)
}

// Listen delivers server events to handle until the connection ends.
// A normal close returns nil.
func (t *WSTransport) Listen(ctx context.Context, handle func(domain.Event)) error {
	stop := context.AfterFunc(ctx, func() { _ = t.conn.Close() })
	defer stop()

	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		evt, err := domain.DecodeEvent(data)
		if err != nil {
			continue
		}
		handle(evt)
	}
}

func (t *WSTransport) Close() error {
	t.mu.Lock()
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	t.mu.Unlock()
	return t.conn.Close()
}
