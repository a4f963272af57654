// Package app runs the room state machine on a single goroutine.
package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

var ErrDispatcherStopped = errors.New("dispatcher stopped")

const DefaultQueueSize = 256

// Dispatcher executes submitted operations one at a time, in submission order.
// Everything that touches presence or routing state runs inside it.
type Dispatcher struct {
	ops  chan func()
	done chan struct{}
}

func NewDispatcher(queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		ops:  make(chan func(), queueSize),
		done: make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled. Operations still queued at that point are dropped.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)
	log.Info().Str("module", "app.dispatcher").Msg("dispatcher started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.dispatcher").Int("pending", len(d.ops)).Msg("dispatcher stopped")
			return nil
		case op := <-d.ops:
			d.exec(op)
		}
	}
}

func (d *Dispatcher) exec(op func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("module", "app.dispatcher").Interface("panic", r).Msg("operation panicked")
		}
	}()
	op()
}

// Post enqueues op without waiting for it to run.
func (d *Dispatcher) Post(op func()) error {
	select {
	case <-d.done:
		return ErrDispatcherStopped
	default:
	}
	select {
	case <-d.done:
		return ErrDispatcherStopped
	case d.ops <- op:
		return nil
	}
}

// Do enqueues op and waits until it has run.
func (d *Dispatcher) Do(ctx context.Context, op func()) error {
	finished := make(chan struct{})
	if err := d.Post(func() {
		defer close(finished)
		op()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
