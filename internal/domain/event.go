package domain

import (
	"encoding/json"
	"fmt"
)

type EventType string

// Server to client.
const (
	EventUserJoined  EventType = "user_joined"
	EventUserLeft    EventType = "user_left"
	EventNoteCreated EventType = "new_note"
	EventNoteUpdated EventType = "note_updated"
	EventNoteDeleted EventType = "note_deleted"
	EventUserTyping  EventType = "user_typing"

	EventWelcome EventType = "welcome"
	EventWhoAmI  EventType = "whoami"
	EventLeft    EventType = "left"
	EventPong    EventType = "pong"
	EventError   EventType = "error"
)

// Client to server.
const (
	MsgJoinRoom   = "join_room"
	MsgUpdateNote = "update_note"
	MsgTyping     = "typing"
	MsgLeaveRoom  = "leave_room"
	MsgPing       = "ping"
	MsgWhoAmI     = "whoami"
)

// Event is every frame the server pushes. Unused fields are omitted on the wire.
type Event struct {
	Type      EventType     `json:"type"`
	Users     []Participant `json:"users,omitempty"`
	Message   string        `json:"message,omitempty"`
	Note      *Note         `json:"note,omitempty"`
	NoteID    string        `json:"noteId,omitempty"`
	Username  string        `json:"username,omitempty"`
	RoomID    RoomID        `json:"roomId,omitempty"`
	SessionID SessionID     `json:"sessionId,omitempty"`
	Error     string        `json:"error,omitempty"`
}

func (e Event) Encode() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	return b, nil
}

func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}

func JoinedEvent(users []Participant, name string) Event {
	return Event{Type: EventUserJoined, Users: users, Message: fmt.Sprintf("%s has joined the room", name)}
}

func LeftEvent(users []Participant, name string) Event {
	return Event{Type: EventUserLeft, Users: users, Message: fmt.Sprintf("%s has left the room", name)}
}

func NoteCreatedEvent(n *Note) Event { return Event{Type: EventNoteCreated, Note: n} }

func NoteUpdatedEvent(n *Note) Event { return Event{Type: EventNoteUpdated, Note: n} }

func NoteDeletedEvent(id string) Event { return Event{Type: EventNoteDeleted, NoteID: id} }

func TypingEvent(name string) Event { return Event{Type: EventUserTyping, Username: name} }

func ErrorEvent(reason string) Event { return Event{Type: EventError, Error: reason} }

// Messages sent by clients. Type is always set by the constructor.
type (
	JoinRoomMessage struct {
		Type     string `json:"type"`
		RoomID   RoomID `json:"roomId"`
		Username string `json:"username,omitempty"`
	}
	UpdateNoteMessage struct {
		Type   string `json:"type"`
		RoomID RoomID `json:"roomId"`
		Note   *Note  `json:"note"`
	}
	TypingMessage struct {
		Type     string `json:"type"`
		RoomID   RoomID `json:"roomId"`
		Username string `json:"username,omitempty"`
	}
	LeaveRoomMessage struct {
		Type   string `json:"type"`
		RoomID RoomID `json:"roomId,omitempty"`
	}
)

func NewJoinRoomMessage(room RoomID, username string) JoinRoomMessage {
	return JoinRoomMessage{Type: MsgJoinRoom, RoomID: room, Username: username}
}

func NewUpdateNoteMessage(room RoomID, n *Note) UpdateNoteMessage {
	return UpdateNoteMessage{Type: MsgUpdateNote, RoomID: room, Note: n}
}

func NewTypingMessage(room RoomID, username string) TypingMessage {
	return TypingMessage{Type: MsgTyping, RoomID: room, Username: username}
}

func NewLeaveRoomMessage(room RoomID) LeaveRoomMessage {
	return LeaveRoomMessage{Type: MsgLeaveRoom, RoomID: room}
}
