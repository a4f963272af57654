package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/Notes/internal/app/orch"
	"github.com/dkeye/Notes/internal/domain"
	applog "github.com/dkeye/Notes/internal/log"
)

// HeaderAdminToken carries the operator token for eviction.
const HeaderAdminToken = "X-Admin-Token"

// RoomsHandler exposes live presence. Rooms exist only while occupied.
type RoomsHandler struct {
	orch       *orch.Orchestrator
	adminToken string
}

func NewRoomsHandler(o *orch.Orchestrator, adminToken string) *RoomsHandler {
	return &RoomsHandler{orch: o, adminToken: adminToken}
}

func (h *RoomsHandler) Register(api *gin.RouterGroup) {
	g := api.Group("/rooms")
	g.GET("", h.List)
	g.GET("/:room/members", h.Members)
	g.DELETE("/:room/members", h.requireOperator, h.Evict)
}

// requireOperator rejects every request when no admin token is configured.
func (h *RoomsHandler) requireOperator(c *gin.Context) {
	token := c.GetHeader(HeaderAdminToken)
	if h.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
		l := applog.Ctx(c.Request.Context())
		l.Warn().Str("room", c.Param("room")).Msg("eviction refused")
		fail(c, http.StatusForbidden, ErrorInfo{Code: CodeForbidden, Message: "operator token required"})
		c.Abort()
		return
	}
	c.Next()
}

func (h *RoomsHandler) List(c *gin.Context) {
	rooms, err := h.orch.Rooms(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}
	success(c, rooms)
}

func (h *RoomsHandler) Members(c *gin.Context) {
	members, err := h.orch.Members(c.Request.Context(), domain.RoomID(c.Param("room")))
	if err != nil {
		failWith(c, err)
		return
	}
	if members == nil {
		members = []domain.Participant{}
	}
	success(c, members)
}

func (h *RoomsHandler) Evict(c *gin.Context) {
	ctx := c.Request.Context()
	room := domain.RoomID(c.Param("room"))

	n, err := h.orch.EvictRoom(ctx, room)
	if err != nil {
		failWith(c, err)
		return
	}
	l := applog.Ctx(ctx)
	l.Info().Str("room", string(room)).Int("kicked", n).Msg("room evicted")
	success(c, gin.H{"room": room, "kicked": n})
}
