package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkeye/Notes/internal/domain"
)

const (
	CodeBadRequest = "BAD_REQUEST"
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeForbidden  = "FORBIDDEN"
	CodeStore      = "STORE_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, info ErrorInfo) {
	c.JSON(status, Response{Success: false, Error: &info})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, ErrorInfo{Code: CodeBadRequest, Message: message})
}

// failWith maps the domain error taxonomy onto status codes.
func failWith(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fail(c, http.StatusBadRequest, ErrorInfo{Code: CodeValidation, Message: verr.Error(), Field: verr.Field})
	case errors.Is(err, domain.ErrNoteNotFound):
		fail(c, http.StatusNotFound, ErrorInfo{Code: CodeNotFound, Message: "note not found"})
	case errors.Is(err, domain.ErrStore):
		fail(c, http.StatusInternalServerError, ErrorInfo{Code: CodeStore, Message: "note store unavailable"})
	default:
		fail(c, http.StatusInternalServerError, ErrorInfo{Code: CodeInternal, Message: "internal error"})
	}
}
