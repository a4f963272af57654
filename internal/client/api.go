package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/dkeye/Notes/internal/domain"
)

// ErrRequestFailed wraps server errors that have no domain equivalent.
var ErrRequestFailed = errors.New("notes request failed")

// NotesAPI is the CRUD boundary the controller talks to.
type NotesAPI interface {
	List(ctx context.Context, room domain.RoomID) ([]domain.Note, error)
	Create(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error)
	Update(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
	// SetOrigin names the websocket session whose writes these are.
	SetOrigin(sid domain.SessionID)
}

type HTTPNotesAPI struct {
	base   *url.URL
	client *http.Client

	mu     sync.RWMutex
	origin domain.SessionID
}

func NewHTTPNotesAPI(baseURL string, client *http.Client) (*HTTPNotesAPI, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPNotesAPI{base: u, client: client}, nil
}

func (a *HTTPNotesAPI) SetOrigin(sid domain.SessionID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.origin = sid
}

func (a *HTTPNotesAPI) List(ctx context.Context, room domain.RoomID) ([]domain.Note, error) {
	var out []domain.Note
	err := a.do(ctx, http.MethodGet, "/api/notes/room/"+url.PathEscape(string(room)), nil, &out)
	return out, err
}

func (a *HTTPNotesAPI) Create(ctx context.Context, req domain.CreateNoteRequest) (*domain.Note, error) {
	var out domain.Note
	if err := a.do(ctx, http.MethodPost, "/api/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *HTTPNotesAPI) Update(ctx context.Context, id string, req domain.UpdateNoteRequest) (*domain.Note, error) {
	var out domain.Note
	if err := a.do(ctx, http.MethodPut, "/api/notes/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *HTTPNotesAPI) Delete(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/api/notes/"+url.PathEscape(id), nil, nil)
}

// Handshake stores name in the server-side cookie session. The client must
// carry a cookie jar for the name to stick.
func (a *HTTPNotesAPI) Handshake(ctx context.Context, name string) (string, error) {
	var out struct {
		Username string `json:"username"`
	}
	if err := a.do(ctx, http.MethodPost, "/api/session", map[string]string{"username": name}, &out); err != nil {
		return "", err
	}
	return out.Username, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

func (a *HTTPNotesAPI) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.base.JoinPath(path).String(), rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	a.mu.RLock()
	if a.origin != "" {
		req.Header.Set("X-Session-ID", string(a.origin))
	}
	a.mu.RUnlock()

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: %s %s: status %d", ErrRequestFailed, method, path, resp.StatusCode)
	}
	if !env.Success || env.Error != nil {
		return envelopeError(resp.StatusCode, &env)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func envelopeError(status int, env *envelope) error {
	if env.Error == nil {
		return fmt.Errorf("%w: status %d", ErrRequestFailed, status)
	}
	switch env.Error.Code {
	case "VALIDATION_ERROR":
		return &domain.ValidationError{Field: env.Error.Field, Message: env.Error.Message}
	case "NOT_FOUND":
		return domain.ErrNoteNotFound
	case "STORE_ERROR":
		return fmt.Errorf("%w: %s", domain.ErrStore, env.Error.Message)
	default:
		return fmt.Errorf("%w: %s: %s", ErrRequestFailed, env.Error.Code, env.Error.Message)
	}
}
