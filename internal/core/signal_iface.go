package core

import "errors"

var (
	ErrBackpressure     = errors.New("backpressure")
	ErrConnectionClosed = errors.New("connection closed")
)

// Frame is one encoded event.
type Frame []byte

// SignalConnection abstracts a session's outbound transport.
// Owned by the adapter; TrySend must never block.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
