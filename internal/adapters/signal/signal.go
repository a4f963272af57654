package signal

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/app/orch"
	"github.com/dkeye/Notes/internal/config"
	"github.com/dkeye/Notes/internal/core"
	"github.com/dkeye/Notes/internal/domain"
)

// SignalWSController bridges websocket connections to the room protocol.
type SignalWSController struct {
	Orch    *orch.Orchestrator
	cfg     config.WebSocketConfig
	limiter *RoomRateLimiter
}

func NewSignalWSController(o *orch.Orchestrator, cfg config.WebSocketConfig) *SignalWSController {
	return &SignalWSController{
		Orch:    o,
		cfg:     withDefaults(cfg),
		limiter: NewRoomRateLimiter(cfg.JoinLimit, cfg.JoinWindow),
	}
}

func withDefaults(cfg config.WebSocketConfig) config.WebSocketConfig {
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 32768
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = 5 * time.Second
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}
	return cfg
}

// WsSignalConn is the outbound half of a websocket. Close only stops new
// frames; the write pump flushes what is queued and then closes the socket.
type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsSignalConn(ws *websocket.Conn, buffer int) *WsSignalConn {
	return &WsSignalConn{conn: ws, send: make(chan core.Frame, buffer)}
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnectionClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// wsClient is everything the read loop needs about one connection.
type wsClient struct {
	sid      domain.SessionID
	conn     *WsSignalConn
	sess     *orch.Session
	fallback string
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and serves it until either side hangs up
// or ctx is cancelled. fallbackName is used by join_room without a username.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context, fallbackName string) {
	sid := domain.SessionID(uuid.NewString())

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("client", c.GetString("client_token")).Msg("new WS connection")

	conn := newWsSignalConn(ws, ctl.cfg.SendBuffer)
	sess, err := ctl.Orch.Connect(sid, conn)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("connect rejected")
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "shutting down"),
			time.Now().Add(ctl.cfg.WriteWait))
		_ = ws.Close()
		return
	}

	client := &wsClient{sid: sid, conn: conn, sess: sess, fallback: fallbackName}
	ctl.send(conn, domain.Event{Type: domain.EventWelcome, SessionID: sid})

	go ctl.writePump(ctx, conn)
	go ctl.readPump(client)
}
