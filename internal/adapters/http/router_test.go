package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Notes/internal/app"
	"github.com/dkeye/Notes/internal/app/notes"
	"github.com/dkeye/Notes/internal/app/orch"
	"github.com/dkeye/Notes/internal/config"
	"github.com/dkeye/Notes/internal/domain"
	"github.com/dkeye/Notes/internal/store"
)

type testServer struct {
	srv  *httptest.Server
	orch *orch.Orchestrator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	disp := app.NewDispatcher(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = disp.Run(ctx)
	}()

	o := orch.New(disp, app.SimplePolicy{})
	svc := notes.NewService(store.NewMemoryStore(), o)
	cfg := &config.Config{
		Mode:       "test",
		Secret:     "test-secret",
		AdminToken: "op-token",
		WebSocket: config.WebSocketConfig{
			PongWait:   time.Second,
			PingPeriod: 500 * time.Millisecond,
			WriteWait:  time.Second,
			SendBuffer: 16,
			JoinLimit:  5,
			JoinWindow: time.Second,
		},
	}
	srv := httptest.NewServer(SetupRouter(ctx, cfg, o, svc))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})
	return &testServer{srv: srv, orch: o}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, header http.Header) (int, Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	httpReq, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		httpReq.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func decodeData[T any](t *testing.T, r Response) T {
	t.Helper()
	b, err := json.Marshal(r.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

type wsPeer struct {
	t    *testing.T
	conn *websocket.Conn
	sid  domain.SessionID
}

func (ts *testServer) dial(t *testing.T) *wsPeer {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	p := &wsPeer{t: t, conn: conn}
	welcome := p.next()
	require.Equal(t, domain.EventWelcome, welcome.Type)
	require.NotEmpty(t, welcome.SessionID)
	p.sid = welcome.SessionID
	return p
}

func (p *wsPeer) send(v any) {
	p.t.Helper()
	require.NoError(p.t, p.conn.WriteJSON(v))
}

func (p *wsPeer) next() domain.Event {
	p.t.Helper()
	require.NoError(p.t, p.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt domain.Event
	require.NoError(p.t, p.conn.ReadJSON(&evt))
	return evt
}

// nextOf skips frames of other types.
func (p *wsPeer) nextOf(typ domain.EventType) domain.Event {
	p.t.Helper()
	for {
		if evt := p.next(); evt.Type == typ {
			return evt
		}
	}
}

func TestNotesAPI_CRUD(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)

	// Create
	status, resp := ts.do(t, http.MethodPost, "/api/notes", domain.CreateNoteRequest{
		Title: "Todo", Content: "buy milk", RoomID: "r1", CreatedBy: "alice",
	}, nil)
	req.Equal(http.StatusCreated, status)
	req.True(resp.Success)
	note := decodeData[domain.Note](t, resp)
	req.NotEmpty(note.ID)
	req.False(note.CreatedAt.IsZero())

	// List
	status, resp = ts.do(t, http.MethodGet, "/api/notes/room/r1", nil, nil)
	req.Equal(http.StatusOK, status)
	list := decodeData[[]domain.Note](t, resp)
	req.Len(list, 1)
	req.Equal(note.ID, list[0].ID)

	// Update
	status, resp = ts.do(t, http.MethodPut, "/api/notes/"+note.ID, domain.UpdateNoteRequest{Title: "Todo!", Content: "eggs"}, nil)
	req.Equal(http.StatusOK, status)
	updated := decodeData[domain.Note](t, resp)
	req.Equal("eggs", updated.Content)
	req.False(updated.UpdatedAt.Before(note.UpdatedAt))

	// Delete
	status, _ = ts.do(t, http.MethodDelete, "/api/notes/"+note.ID, nil, nil)
	req.Equal(http.StatusOK, status)
	status, resp = ts.do(t, http.MethodGet, "/api/notes/room/r1", nil, nil)
	req.Equal(http.StatusOK, status)
	req.Empty(decodeData[[]domain.Note](t, resp))
}

func TestNotesAPI_Errors(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)

	status, resp := ts.do(t, http.MethodPost, "/api/notes", domain.CreateNoteRequest{
		Title: "ab", Content: "x", RoomID: "r1", CreatedBy: "alice",
	}, nil)
	req.Equal(http.StatusBadRequest, status)
	req.False(resp.Success)
	req.Equal(CodeValidation, resp.Error.Code)
	req.Equal("title", resp.Error.Field)

	status, resp = ts.do(t, http.MethodPut, "/api/notes/ghost", domain.UpdateNoteRequest{Title: "Todo", Content: "x"}, nil)
	req.Equal(http.StatusNotFound, status)
	req.Equal(CodeNotFound, resp.Error.Code)

	status, resp = ts.do(t, http.MethodDelete, "/api/notes/ghost", nil, nil)
	req.Equal(http.StatusNotFound, status)
	req.Equal(CodeNotFound, resp.Error.Code)
}

func TestNotesAPI_UpdateRejectedKeepsUpdatedAt(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	_, resp := ts.do(t, http.MethodPost, "/api/notes", domain.CreateNoteRequest{
		Title: "Todo", Content: "milk", RoomID: "r1", CreatedBy: "alice",
	}, nil)
	note := decodeData[domain.Note](t, resp)

	status, _ := ts.do(t, http.MethodPut, "/api/notes/"+note.ID, domain.UpdateNoteRequest{Title: "ab", Content: "milk"}, nil)
	req.Equal(http.StatusBadRequest, status)

	_, resp = ts.do(t, http.MethodGet, "/api/notes/"+note.ID, nil, nil)
	again := decodeData[domain.Note](t, resp)
	req.True(note.UpdatedAt.Equal(again.UpdatedAt))
	req.Equal("Todo", again.Title)
}

func TestSessionHandshake(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)

	status, resp := ts.do(t, http.MethodPost, "/api/session", sessionRequest{Username: "  "}, nil)
	req.Equal(http.StatusBadRequest, status)
	req.Equal(CodeValidation, resp.Error.Code)

	status, resp = ts.do(t, http.MethodPost, "/api/session", sessionRequest{Username: " alice "}, nil)
	req.Equal(http.StatusOK, status)
	req.Equal("alice", decodeData[sessionResponse](t, resp).Username)
}

func TestRoomSession_EndToEnd(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	alice := ts.dial(t)
	bob := ts.dial(t)

	// alice joins, then bob
	alice.send(domain.NewJoinRoomMessage("r1", "alice"))
	evt := alice.nextOf(domain.EventUserJoined)
	req.Len(evt.Users, 1)

	bob.send(domain.NewJoinRoomMessage("r1", "bob"))
	for _, p := range []*wsPeer{alice, bob} {
		evt := p.nextOf(domain.EventUserJoined)
		req.Len(evt.Users, 2)
		req.Equal("alice", evt.Users[0].Username)
		req.Equal("bob", evt.Users[1].Username)
	}

	// alice creates a note over HTTP naming her session
	status, resp := ts.do(t, http.MethodPost, "/api/notes", domain.CreateNoteRequest{
		Title: "Todo", Content: "buy milk", RoomID: "r1", CreatedBy: "alice",
	}, http.Header{HeaderSessionID: []string{string(alice.sid)}})
	req.Equal(http.StatusCreated, status)
	created := decodeData[domain.Note](t, resp)

	evt = bob.nextOf(domain.EventNoteCreated)
	req.Equal(created.ID, evt.Note.ID)
	req.False(evt.Note.CreatedAt.IsZero())

	// alice's edit reaches bob only
	created.Content = "buy eggs"
	alice.send(domain.NewUpdateNoteMessage("r1", &created))
	evt = bob.nextOf(domain.EventNoteUpdated)
	req.Equal("buy eggs", evt.Note.Content)

	// bob types
	bob.send(domain.NewTypingMessage("r1", "bob"))
	evt = alice.nextOf(domain.EventUserTyping)
	req.Equal("bob", evt.Username)

	// bob drops the connection
	req.NoError(bob.conn.Close())
	evt = alice.nextOf(domain.EventUserLeft)
	req.Len(evt.Users, 1)
	req.Equal("bob has left the room", evt.Message)

	members, err := ts.orch.Members(context.Background(), "r1")
	req.NoError(err)
	req.Len(members, 1)

	// alice leaves explicitly
	alice.send(domain.NewLeaveRoomMessage("r1"))
	evt = alice.nextOf(domain.EventLeft)
	req.Equal(domain.RoomID("r1"), evt.RoomID)

	req.Eventually(func() bool {
		rooms, err := ts.orch.Rooms(context.Background())
		return err == nil && len(rooms) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRoomSession_PingAndBadFrames(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	p := ts.dial(t)

	req.NoError(p.conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	p.send(map[string]string{"type": domain.MsgJoinRoom})
	evt := p.next()
	req.Equal(domain.EventError, evt.Type)
	req.Equal("bad_payload", evt.Error)

	p.send(map[string]string{"type": domain.MsgPing})
	req.Equal(domain.EventPong, p.next().Type)
}

func TestRoomsAPI(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	p := ts.dial(t)
	p.send(domain.NewJoinRoomMessage("r9", "zed"))
	p.nextOf(domain.EventUserJoined)

	status, resp := ts.do(t, http.MethodGet, "/api/rooms/r9/members", nil, nil)
	req.Equal(http.StatusOK, status)
	members := decodeData[[]domain.Participant](t, resp)
	req.Len(members, 1)
	req.Equal("zed", members[0].Username)

	status, resp = ts.do(t, http.MethodDelete, "/api/rooms/r9/members", nil, nil)
	req.Equal(http.StatusForbidden, status)
	req.Equal(CodeForbidden, resp.Error.Code)
	status, _ = ts.do(t, http.MethodDelete, "/api/rooms/r9/members", nil,
		http.Header{HeaderAdminToken: []string{"wrong"}})
	req.Equal(http.StatusForbidden, status)
	members, err := ts.orch.Members(context.Background(), "r9")
	req.NoError(err)
	req.Len(members, 1)

	status, resp = ts.do(t, http.MethodDelete, "/api/rooms/r9/members", nil,
		http.Header{HeaderAdminToken: []string{"op-token"}})
	req.Equal(http.StatusOK, status)
	req.EqualValues(1, decodeData[map[string]any](t, resp)["kicked"])

	status, resp = ts.do(t, http.MethodGet, "/api/rooms", nil, nil)
	req.Equal(http.StatusOK, status)
	req.Empty(decodeData[[]map[string]any](t, resp))
}

func TestNotesHandler_OriginNeedsLiveSession(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	p := ts.dial(t)
	h := NewNotesHandler(nil, ts.orch)

	origin := func(sid string) domain.SessionID {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/api/notes", nil)
		c.Request.Header.Set(HeaderSessionID, sid)
		return h.originOf(c)
	}

	req.Equal(p.sid, origin(string(p.sid)))
	req.Empty(origin("made-up-session"))
	req.Empty(origin(""))

	req.NoError(p.conn.Close())
	req.Eventually(func() bool { return origin(string(p.sid)) == "" }, time.Second, 10*time.Millisecond)
}
