package location

import (
	"errors"
	"sync"
	"time"
)

// ErrUnavailable is reported by a source when position acquisition is
// denied or the underlying sensor is unavailable. It is not fatal; the
// source may recover on its own and emit positions again.
var ErrUnavailable = errors.New("location unavailable")

var errAlreadyStarted = errors.New("tracker already started")

// Position is one acquired fix. Timestamp is the acquisition time, used to
// drop out-of-order deliveries.
type Position struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// Update carries either a Position or an error, never both.
type Update struct {
	Position *Position
	Err      error
}

// Source is a continuous emitter of position updates. Implementations must
// only emit fresh fixes (no cached positions) and close the channel when
// they shut down.
type Source interface {
	Updates() <-chan Update
}

// Tracker consumes a Source on a background goroutine and delivers updates
// to a single subscriber in non-decreasing acquisition-time order. A fix
// stamped older than the last accepted one is discarded, so a stale update
// can never overwrite a newer position.
type Tracker struct {
	src Source

	mu      sync.Mutex
	started bool
	current *Position
	lastErr error

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewTracker(src Source) *Tracker {
	return &Tracker{
		src:  src,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start begins delivery. callback may be nil when only Current/LastError
// polling is needed. A tracker is single-use: Start returns an error on a
// second call, including after Stop.
func (t *Tracker) Start(callback func(Update)) error {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return errAlreadyStarted
	}
	t.started = true
	t.mu.Unlock()

	go t.loop(callback)
	return nil
}

func (t *Tracker) loop(callback func(Update)) {
	defer close(t.done)
	for {
		select {
		case <-t.stop:
			return
		case u, ok := <-t.src.Updates():
			if !ok {
				return
			}
			if !t.accept(u) {
				continue
			}
			if callback != nil {
				callback(u)
			}
		}
	}
}

// accept records the update and reports whether it should be delivered.
func (t *Tracker) accept(u Update) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if u.Err != nil {
		t.lastErr = u.Err
		return true
	}
	if u.Position == nil {
		return false
	}
	if t.current != nil && u.Position.Timestamp.Before(t.current.Timestamp) {
		// Out-of-order fix, keep the newer one.
		return false
	}
	pos := *u.Position
	t.current = &pos
	t.lastErr = nil
	return true
}

// Stop ends delivery. It is idempotent and does not return until the
// delivery goroutine has exited, so no callback fires after it returns.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })

	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if started {
		<-t.done
	}
}

// Current returns the last accepted fix, if any.
func (t *Tracker) Current() (Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Position{}, false
	}
	return *t.current, true
}

// LastError returns the most recent source error, cleared whenever a fix
// is accepted afterwards.
func (t *Tracker) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}
