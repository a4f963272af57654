// Package core holds room presence and event fan-out. Nothing here is safe for
// concurrent use; callers serialize access through a single goroutine.
package core

import "github.com/dkeye/Notes/internal/domain"

// PublishResult reports delivery stats/backpressure to orchestrator.
type PublishResult struct {
	SentTo  int
	Skipped int
	Dropped []domain.SessionID
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"memberCount"`
}
