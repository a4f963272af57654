package client

import (
	"slices"
	"sync"
	"time"
)

// TypingSet holds the names of people typing right now. Each name expires
// after the window unless it is seen again.
type TypingSet struct {
	mu       sync.Mutex
	window   time.Duration
	entries  map[string]*typingEntry
	order    []string
	gen      uint64
	onChange func()
}

// typingEntry is armed by the Add call that set gen; older timers are stale.
type typingEntry struct {
	timer *time.Timer
	gen   uint64
}

func NewTypingSet(window time.Duration, onChange func()) *TypingSet {
	return &TypingSet{
		window:   window,
		entries:  make(map[string]*typingEntry),
		onChange: onChange,
	}
}

// Add inserts name or re-arms its expiry.
func (t *TypingSet) Add(name string) {
	t.mu.Lock()
	e, seen := t.entries[name]
	if seen {
		e.timer.Stop()
	} else {
		e = &typingEntry{}
		t.entries[name] = e
		t.order = append(t.order, name)
	}
	t.gen++
	gen := t.gen
	e.gen = gen
	e.timer = time.AfterFunc(t.window, func() { t.expire(name, gen) })
	t.mu.Unlock()

	if !seen {
		t.changed()
	}
}

func (t *TypingSet) expire(name string, gen uint64) {
	t.mu.Lock()
	if e, ok := t.entries[name]; !ok || e.gen != gen {
		t.mu.Unlock()
		return
	}
	delete(t.entries, name)
	if i := slices.Index(t.order, name); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	t.mu.Unlock()
	t.changed()
}

// Names lists typing users in the order they started.
func (t *TypingSet) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.order)
}

// Reset drops every entry without notifying.
func (t *TypingSet) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		e.timer.Stop()
	}
	t.entries = make(map[string]*typingEntry)
	t.order = nil
}

func (t *TypingSet) changed() {
	if t.onChange != nil {
		t.onChange()
	}
}
