package http

import (
	"github.com/gin-gonic/gin"

	"github.com/dkeye/Notes/internal/app/notes"
	"github.com/dkeye/Notes/internal/app/orch"
	"github.com/dkeye/Notes/internal/domain"
	applog "github.com/dkeye/Notes/internal/log"
)

// HeaderSessionID lets a websocket client exclude itself from the broadcast
// its own write triggers.
const HeaderSessionID = "X-Session-ID"

type NotesHandler struct {
	svc  *notes.Service
	orch *orch.Orchestrator
}

func NewNotesHandler(svc *notes.Service, o *orch.Orchestrator) *NotesHandler {
	return &NotesHandler{svc: svc, orch: o}
}

func (h *NotesHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/notes")
	g.GET("/room/:roomId", h.ListByRoom)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *NotesHandler) ListByRoom(c *gin.Context) {
	ctx := c.Request.Context()
	room := domain.RoomID(c.Param("roomId"))

	list, err := h.svc.List(ctx, room)
	if err != nil {
		l := applog.Ctx(ctx)
		l.Error().Err(err).Str("room", string(room)).Msg("failed to list notes")
		failWith(c, err)
		return
	}
	success(c, list)
}

func (h *NotesHandler) Get(c *gin.Context) {
	note, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failWith(c, err)
		return
	}
	success(c, note)
}

func (h *NotesHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	l := applog.Ctx(ctx)

	var req domain.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind create note request")
		badRequest(c, "invalid JSON body")
		return
	}

	note, err := h.svc.Create(ctx, req, h.originOf(c))
	if err != nil {
		l.Warn().Err(err).Str("room", string(req.RoomID)).Msg("note not created")
		failWith(c, err)
		return
	}
	l.Info().Str("note_id", note.ID).Str("room", string(note.RoomID)).Msg("note created")
	created(c, note)
}

func (h *NotesHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	l := applog.Ctx(ctx)
	id := c.Param("id")

	var req domain.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind update note request")
		badRequest(c, "invalid JSON body")
		return
	}

	note, err := h.svc.Update(ctx, id, req)
	if err != nil {
		l.Warn().Err(err).Str("note_id", id).Msg("note not updated")
		failWith(c, err)
		return
	}
	success(c, note)
}

func (h *NotesHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.svc.Delete(ctx, id, h.originOf(c)); err != nil {
		l := applog.Ctx(ctx)
		l.Warn().Err(err).Str("note_id", id).Msg("note not deleted")
		failWith(c, err)
		return
	}
	success(c, gin.H{"id": id})
}

// originOf honours X-Session-ID only for a session with a live websocket.
func (h *NotesHandler) originOf(c *gin.Context) domain.SessionID {
	sid := domain.SessionID(c.GetHeader(HeaderSessionID))
	if sid == "" {
		return ""
	}
	ctx := c.Request.Context()
	if ok, err := h.orch.Attached(ctx, sid); err != nil || !ok {
		l := applog.Ctx(ctx)
		l.Debug().Err(err).Str("sid", string(sid)).Msg("ignoring unknown origin session")
		return ""
	}
	return sid
}
