package location

import (
	"sync"
	"time"
)

// PushSource is a Source fed by the HTTP layer: each client position ping
// becomes one emission. Emissions are queued into a single-consumer
// ordered channel; when the consumer falls behind, the newest ping is
// dropped rather than blocking the caller.
type PushSource struct {
	ch chan Update

	closeOnce sync.Once
}

func NewPushSource() *PushSource {
	return &PushSource{ch: make(chan Update, 16)}
}

func (s *PushSource) Updates() <-chan Update {
	return s.ch
}

// Push stamps the fix with the current time and enqueues it.
func (s *PushSource) Push(lat, lng float64) {
	s.PushAt(Position{Lat: lat, Lng: lng, Timestamp: time.Now()})
}

// PushAt enqueues a fix with an explicit acquisition time.
func (s *PushSource) PushAt(pos Position) {
	s.emit(Update{Position: &pos})
}

// Fail enqueues a source error (denied / unavailable).
func (s *PushSource) Fail(err error) {
	s.emit(Update{Err: err})
}

func (s *PushSource) emit(u Update) {
	defer func() {
		// Pushing after Close is a no-op.
		recover()
	}()
	select {
	case s.ch <- u:
	default:
	}
}

// Close releases the source. Idempotent.
func (s *PushSource) Close() {
	s.closeOnce.Do(func() { close(s.ch) })
}
