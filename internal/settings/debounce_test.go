package settings

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var fired int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&fired, 1) })
	}

	// nothing fired inside the window
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))

	// flush runs only the latest pending function
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// flushing again is a no-op
	d.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestDebouncer_FiresAfterWindow(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	done := make(chan struct{})
	d.Trigger(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced write never fired")
	}
}

func TestDebouncer_StopDiscardsPending(t *testing.T) {
	d := NewDebouncer(time.Hour)

	var fired int32
	d.Trigger(func() { atomic.AddInt32(&fired, 1) })
	d.Stop()
	d.Flush()

	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestDebouncer_LatestTriggerWins(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var got atomic.Value
	d.Trigger(func() { got.Store("first") })
	d.Trigger(func() { got.Store("second") })
	d.Flush()

	assert.Equal(t, "second", got.Load())
}
