package location

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestTrackerDeliversFixes(t *testing.T) {
	src := NewPushSource()
	defer src.Close()

	tr := NewTracker(src)
	var mu sync.Mutex
	var got []Position
	require.NoError(t, tr.Start(func(u Update) {
		if u.Position != nil {
			mu.Lock()
			got = append(got, *u.Position)
			mu.Unlock()
		}
	}))
	defer tr.Stop()

	src.Push(1, 1)
	src.Push(2, 2)

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	})

	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, float64(2), cur.Lat)
}

func TestTrackerDiscardsOutOfOrderFix(t *testing.T) {
	src := NewPushSource()
	defer src.Close()

	tr := NewTracker(src)
	require.NoError(t, tr.Start(nil))
	defer tr.Stop()

	t0 := time.Now()
	src.PushAt(Position{Lat: 1, Lng: 1, Timestamp: t0})
	// Earlier acquisition time arriving late must not win.
	src.PushAt(Position{Lat: 2, Lng: 2, Timestamp: t0.Add(-time.Second)})

	waitFor(t, func() bool {
		cur, ok := tr.Current()
		return ok && cur.Lat == 1
	})

	// Give the stale fix a chance to land wrongly.
	time.Sleep(50 * time.Millisecond)
	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, float64(1), cur.Lat)
	assert.Equal(t, float64(1), cur.Lng)
}

func TestTrackerSurfacesErrorUntilRecovery(t *testing.T) {
	src := NewPushSource()
	defer src.Close()

	tr := NewTracker(src)
	require.NoError(t, tr.Start(nil))
	defer tr.Stop()

	src.Fail(ErrUnavailable)
	waitFor(t, func() bool { return tr.LastError() != nil })
	assert.ErrorIs(t, tr.LastError(), ErrUnavailable)

	// A fresh fix clears the error state.
	src.Push(3, 3)
	waitFor(t, func() bool { return tr.LastError() == nil })
	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, float64(3), cur.Lat)
}

func TestTrackerStopIsIdempotentAndSilencesCallbacks(t *testing.T) {
	src := NewPushSource()
	defer src.Close()

	tr := NewTracker(src)
	var mu sync.Mutex
	count := 0
	require.NoError(t, tr.Start(func(Update) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	src.Push(1, 1)
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})

	tr.Stop()
	tr.Stop() // second call must not panic or block

	src.Push(2, 2)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}

func TestTrackerStartTwice(t *testing.T) {
	src := NewPushSource()
	defer src.Close()

	tr := NewTracker(src)
	require.NoError(t, tr.Start(nil))
	assert.Error(t, tr.Start(nil))
	tr.Stop()
}

func TestTrackerStopBeforeStart(t *testing.T) {
	tr := NewTracker(NewPushSource())
	tr.Stop() // must not block waiting for a goroutine that never ran
}
