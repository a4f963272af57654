package http

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dkeye/Notes/internal/domain"
	applog "github.com/dkeye/Notes/internal/log"
)

const (
	SessionName        = "NotesSessions"
	sessionKeyUsername = "username"
	clientTokenCookie  = "ct"
	ctxClientToken     = "client_token"
)

// ClientTokenMiddleware tags a browser with a long-lived cookie. It only
// correlates logs; presence is tracked per connection.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(clientTokenCookie)
		if token == "" {
			token = uuid.NewString()
			c.SetCookie(clientTokenCookie, token, 3600*24*7, "/", "", false, true)
		}
		c.Set(ctxClientToken, token)
		if name := SessionUsername(c); name != "" {
			c.Set(applog.FieldUsername, name)
		}
		c.Next()
	}
}

// SessionUsername returns the name stored by the handshake, if any.
func SessionUsername(c *gin.Context) string {
	name, _ := sessions.Default(c).Get(sessionKeyUsername).(string)
	return name
}

type sessionRequest struct {
	Username string `json:"username"`
}

type sessionResponse struct {
	Username string `json:"username"`
}

func GetSession(c *gin.Context) {
	success(c, sessionResponse{Username: SessionUsername(c)})
}

// PostSession stores the caller's display name in the cookie session.
func PostSession(c *gin.Context) {
	ctx := c.Request.Context()
	l := applog.Ctx(ctx)

	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if err := domain.ValidateUsername(req.Username); err != nil {
		fail(c, http.StatusBadRequest, ErrorInfo{Code: CodeValidation, Message: err.Error(), Field: "username"})
		return
	}

	name := domain.NormalizeUsername(req.Username, "")
	s := sessions.Default(c)
	s.Set(sessionKeyUsername, name)
	if err := s.Save(); err != nil {
		l.Error().Err(err).Msg("failed to save session")
		fail(c, http.StatusInternalServerError, ErrorInfo{Code: CodeInternal, Message: "session not saved"})
		return
	}
	l.Info().Str("client", c.GetString(ctxClientToken)).Str("username", name).Msg("username set")
	success(c, sessionResponse{Username: name})
}
