// Package domain contains the entities shared by the server and the client.
package domain

import "time"

// RoomID is chosen by clients. Knowing it is enough to join.
type RoomID string

// SessionID identifies one live connection. A browser opening two tabs gets two.
type SessionID string

// Participant is one session's presence entry in a room.
type Participant struct {
	ID       SessionID `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
}
