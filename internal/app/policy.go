package app

import (
	"strings"

	"github.com/dkeye/Notes/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

func (a BackpressureAction) String() string {
	switch a {
	case KickMember:
		return "kick"
	case DropFrame:
		return "drop"
	default:
		return "none"
	}
}

// Policy decides what happens to a session whose send buffer was full
// during a broadcast.
type Policy interface {
	OnBackPressure(room domain.RoomID, sid domain.SessionID) BackpressureAction
}

// SimplePolicy disconnects slow sessions; they resync on rejoin.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomID, domain.SessionID) BackpressureAction {
	return KickMember
}

// DropPolicy loses the frame and keeps the session.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.RoomID, domain.SessionID) BackpressureAction {
	return DropFrame
}

// PolicyFromString maps the dispatcher.backpressure setting. Unknown values kick.
func PolicyFromString(name string) Policy {
	if strings.EqualFold(strings.TrimSpace(name), "drop") {
		return DropPolicy{}
	}
	return SimplePolicy{}
}
