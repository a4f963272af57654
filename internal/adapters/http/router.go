package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Notes/internal/adapters/signal"
	"github.com/dkeye/Notes/internal/app/notes"
	"github.com/dkeye/Notes/internal/app/orch"
	"github.com/dkeye/Notes/internal/config"
	applog "github.com/dkeye/Notes/internal/log"
)

// SetupRouter wires REST and websocket routes. ctx bounds the lifetime of
// every websocket connection.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, svc *notes.Service) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(applog.GinMiddleware(applog.L()))

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true})
	r.Use(sessions.Sessions(SessionName, store))
	r.Use(ClientTokenMiddleware())

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
		log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("serving static files")
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/session", GetSession)
	api.POST("/session", PostSession)
	NewNotesHandler(svc, o).Register(api)
	NewRoomsHandler(o, cfg.AdminToken).Register(api)

	ws := signal.NewSignalWSController(o, cfg.WebSocket)
	api.GET("/ws", func(c *gin.Context) {
		ws.HandleSignal(ctx, c, SessionUsername(c))
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
