package client

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncer_LastTriggerWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var got atomic.Int32
	for i := int32(1); i <= 3; i++ {
		d.Trigger(func() { got.Store(i) })
	}
	require.True(t, d.Pending())
	require.Eventually(t, func() bool { return got.Load() == 3 }, time.Second, 5*time.Millisecond)
	require.False(t, d.Pending())
}

func TestDebouncer_FlushAndStop(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Flush()
	require.EqualValues(t, 1, calls.Load())
	d.Flush()
	require.EqualValues(t, 1, calls.Load())

	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	require.False(t, d.Pending())
	d.Flush()
	require.EqualValues(t, 1, calls.Load())
}

func TestTypingSet_RearmKeepsSingleEntry(t *testing.T) {
	var changes atomic.Int32
	ts := NewTypingSet(80*time.Millisecond, func() { changes.Add(1) })

	ts.Add("bob")
	ts.Add("carol")
	time.Sleep(40 * time.Millisecond)
	ts.Add("bob")
	require.Equal(t, []string{"bob", "carol"}, ts.Names())

	require.Eventually(t, func() bool {
		names := ts.Names()
		return len(names) == 1 && names[0] == "bob"
	}, time.Second, 2*time.Millisecond)
	require.Eventually(t, func() bool { return len(ts.Names()) == 0 }, time.Second, 2*time.Millisecond)

	// two adds and two removals, re-arm is silent
	require.EqualValues(t, 4, changes.Load())
}

func TestTypingSet_Reset(t *testing.T) {
	var changes atomic.Int32
	ts := NewTypingSet(10*time.Millisecond, func() { changes.Add(1) })
	ts.Add("bob")
	ts.Reset()
	require.Empty(t, ts.Names())
	time.Sleep(30 * time.Millisecond)
	require.EqualValues(t, 1, changes.Load())
}

func TestTypingSet_TinyWindowSettles(t *testing.T) {
	var changes atomic.Int32
	ts := NewTypingSet(time.Nanosecond, func() { changes.Add(1) })

	for range 200 {
		ts.Add("bob")
		ts.Add("carol")
	}
	// every insertion is matched by exactly one removal
	require.Eventually(t, func() bool {
		return len(ts.Names()) == 0 && changes.Load()%2 == 0
	}, time.Second, time.Millisecond)
}
