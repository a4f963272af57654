// Package client keeps a local, reconciled view of one room for an
// interactive client.
package client

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/Notes/internal/domain"
)

const (
	DefaultDebounceWindow = time.Second
	DefaultTypingWindow   = 2 * time.Second
	MaxNotifications      = 10
)

var ErrNotInRoom = errors.New("not in a room")

type Config struct {
	Username       string
	DebounceWindow time.Duration
	TypingWindow   time.Duration
	RequestTimeout time.Duration
	// OnChange runs after any visible state change, outside the controller lock.
	OnChange func()
	// OnError receives failures of background saves and sends.
	OnError func(error)
}

type Notification struct {
	Message string
	At      time.Time
}

type Controller struct {
	api       NotesAPI
	transport Transport
	cfg       Config
	typing    *TypingSet

	mu            sync.Mutex
	sessionID     domain.SessionID
	room          domain.RoomID
	notes         []domain.Note
	current       string
	participants  []domain.Participant
	notifications []Notification
	saves         map[string]*Debouncer
}

func NewController(api NotesAPI, transport Transport, cfg Config) *Controller {
	// the server applies the same fallback on join; notes need a non-empty author
	cfg.Username = domain.NormalizeUsername(cfg.Username, "")
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = DefaultDebounceWindow
	}
	if cfg.TypingWindow <= 0 {
		cfg.TypingWindow = DefaultTypingWindow
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	c := &Controller{
		api:       api,
		transport: transport,
		cfg:       cfg,
		saves:     make(map[string]*Debouncer),
	}
	c.typing = NewTypingSet(cfg.TypingWindow, c.changed)
	return c
}

// HandleEvent reconciles one server event into local state.
func (c *Controller) HandleEvent(evt domain.Event) {
	c.mu.Lock()
	switch evt.Type {
	case domain.EventWelcome:
		c.sessionID = evt.SessionID
		c.api.SetOrigin(evt.SessionID)
	case domain.EventNoteCreated, domain.EventNoteUpdated:
		if evt.Note == nil || evt.Note.RoomID != c.room {
			c.mu.Unlock()
			return
		}
		c.upsert(*evt.Note)
	case domain.EventNoteDeleted:
		c.remove(evt.NoteID)
	case domain.EventUserJoined, domain.EventUserLeft:
		c.participants = slices.Clone(evt.Users)
		c.notify(evt.Message)
	case domain.EventUserTyping:
		c.mu.Unlock()
		if evt.Username != "" {
			c.typing.Add(evt.Username)
		}
		return
	case domain.EventError:
		c.mu.Unlock()
		c.fail(fmt.Errorf("server: %s", evt.Error))
		return
	default:
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.changed()
}

// Join enters room and loads its notes.
func (c *Controller) Join(ctx context.Context, room domain.RoomID) error {
	c.FlushEdits()
	// reset first, the user_joined reply may arrive before Send returns
	c.mu.Lock()
	c.reset()
	c.room = room
	c.mu.Unlock()
	if err := c.transport.Send(domain.NewJoinRoomMessage(room, c.cfg.Username)); err != nil {
		c.mu.Lock()
		c.room = ""
		c.mu.Unlock()
		return fmt.Errorf("join %s: %w", room, err)
	}

	list, err := c.api.List(ctx, room)
	if err != nil {
		return fmt.Errorf("load notes of %s: %w", room, err)
	}
	c.mu.Lock()
	// events that arrived during the request win over the listing
	for _, n := range list {
		if slices.IndexFunc(c.notes, func(x domain.Note) bool { return x.ID == n.ID }) < 0 {
			c.notes = append(c.notes, n)
		}
	}
	c.mu.Unlock()
	c.changed()
	return nil
}

// Leave saves pending edits and leaves the room. The server closes the
// connection afterwards.
func (c *Controller) Leave() error {
	c.FlushEdits()
	c.mu.Lock()
	room := c.room
	c.mu.Unlock()
	if room == "" {
		return ErrNotInRoom
	}
	if err := c.transport.Send(domain.NewLeaveRoomMessage(room)); err != nil {
		return fmt.Errorf("leave %s: %w", room, err)
	}
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
	c.changed()
	return nil
}

func (c *Controller) Create(ctx context.Context, title, content string) (*domain.Note, error) {
	c.mu.Lock()
	room := c.room
	c.mu.Unlock()
	if room == "" {
		return nil, ErrNotInRoom
	}

	note, err := c.api.Create(ctx, domain.CreateNoteRequest{
		Title:     title,
		Content:   content,
		RoomID:    room,
		CreatedBy: c.cfg.Username,
	})
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.upsert(*note)
	c.current = note.ID
	c.mu.Unlock()
	c.changed()
	return note, nil
}

func (c *Controller) Open(id string) error {
	c.mu.Lock()
	if c.indexOf(id) < 0 {
		c.mu.Unlock()
		return domain.ErrNoteNotFound
	}
	c.current = id
	c.mu.Unlock()
	c.changed()
	return nil
}

// Edit applies the change locally at once, tells the room that we are typing
// and saves after the debounce window has passed without further edits.
func (c *Controller) Edit(id, title, content string) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return domain.ErrNoteNotFound
	}
	c.notes[i].Title = title
	c.notes[i].Content = content
	room := c.room
	d, ok := c.saves[id]
	if !ok {
		d = NewDebouncer(c.cfg.DebounceWindow)
		c.saves[id] = d
	}
	c.mu.Unlock()

	if err := c.transport.Send(domain.NewTypingMessage(room, c.cfg.Username)); err != nil {
		c.fail(fmt.Errorf("typing: %w", err))
	}
	d.Trigger(func() { c.save(id, title, content) })
	c.changed()
	return nil
}

func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	d := c.saves[id]
	delete(c.saves, id)
	c.mu.Unlock()
	if d != nil {
		d.Stop()
	}

	if err := c.api.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	c.remove(id)
	c.mu.Unlock()
	c.changed()
	return nil
}

// FlushEdits saves every pending edit now.
func (c *Controller) FlushEdits() {
	c.mu.Lock()
	pending := lo.Values(c.saves)
	c.mu.Unlock()
	for _, d := range pending {
		d.Flush()
	}
}

// Close drops pending edits and timers.
func (c *Controller) Close() {
	c.mu.Lock()
	for _, d := range c.saves {
		d.Stop()
	}
	c.saves = make(map[string]*Debouncer)
	c.mu.Unlock()
	c.typing.Reset()
}

func (c *Controller) save(id, title, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
	defer cancel()

	note, err := c.api.Update(ctx, id, domain.UpdateNoteRequest{Title: title, Content: content})
	if err != nil {
		c.fail(fmt.Errorf("save note %s: %w", id, err))
		return
	}

	c.mu.Lock()
	room := c.room
	if note.RoomID == room {
		c.upsert(*note)
	}
	c.mu.Unlock()

	if err := c.transport.Send(domain.NewUpdateNoteMessage(note.RoomID, note)); err != nil {
		c.fail(fmt.Errorf("announce note %s: %w", id, err))
	}
	log.Debug().Str("module", "client").Str("note_id", id).Msg("note saved")
	c.changed()
}

func (c *Controller) SessionID() domain.SessionID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Controller) Room() domain.RoomID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Controller) Notes() []domain.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.notes)
}

// Current returns the open note.
func (c *Controller) Current() (domain.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(c.current); i >= 0 {
		return c.notes[i], true
	}
	return domain.Note{}, false
}

func (c *Controller) Participants() []domain.Participant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.participants)
}

func (c *Controller) Typing() []string {
	return c.typing.Names()
}

// Notifications returns up to MaxNotifications join/leave messages, oldest first.
func (c *Controller) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.notifications)
}

// The helpers below expect mu to be held.

func (c *Controller) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(c.notes, func(n domain.Note) bool { return n.ID == id })
}

func (c *Controller) upsert(n domain.Note) {
	if i := c.indexOf(n.ID); i >= 0 {
		c.notes[i] = n
		return
	}
	c.notes = append(c.notes, n)
}

func (c *Controller) remove(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.notes = slices.Delete(c.notes, i, i+1)
	}
	if c.current == id {
		c.current = ""
	}
}

func (c *Controller) notify(msg string) {
	if msg == "" {
		return
	}
	c.notifications = append(c.notifications, Notification{Message: msg, At: time.Now()})
	if extra := len(c.notifications) - MaxNotifications; extra > 0 {
		c.notifications = slices.Delete(c.notifications, 0, extra)
	}
}

func (c *Controller) reset() {
	c.room = ""
	c.notes = nil
	c.current = ""
	c.participants = nil
	c.notifications = nil
	c.typing.Reset()
}

func (c *Controller) changed() {
	if c.cfg.OnChange != nil {
		c.cfg.OnChange()
	}
}

func (c *Controller) fail(err error) {
	log.Warn().Err(err).Str("module", "client").Msg("operation failed")
	if c.cfg.OnError != nil {
		c.cfg.OnError(err)
	}
}
