package upload

import (
	"io"
	"sync"
)

// Event reports how many body bytes the transport has consumed so far.
// Total is SizeUnknown when the body length is not known.
type Event struct {
	Loaded int64
	Total  int64
}

// LengthComputable reports whether a percentage can be derived.
func (e Event) LengthComputable() bool {
	return e.Total > 0
}

// Percent returns floor(Loaded/Total*100) clamped to [0, 100]. ok is false
// when the total is unknown.
func (e Event) Percent() (p int, ok bool) {
	if !e.LengthComputable() {
		return 0, false
	}
	v := e.Loaded * 100 / e.Total
	switch {
	case v < 0:
		v = 0
	case v > 100:
		v = 100
	}
	return int(v), true
}

// Indicator is the progress display shared by all uploads.
// Implementations must be safe for concurrent use.
type Indicator interface {
	Show()
	Set(percent int)
	Hide()
}

type nopIndicator struct{}

func (nopIndicator) Show()   {}
func (nopIndicator) Set(int) {}
func (nopIndicator) Hide()   {}

// progressBuffer bounds how far a slow Progress consumer may lag before
// older events are dropped. The indicator never misses an event.
const progressBuffer = 64

// tracker turns byte counts of one request into Events and indicator
// updates. Reads may still arrive from the transport after the request has
// returned, so every method is guarded and tolerates a finished tracker.
type tracker struct {
	mu        sync.Mutex
	indicator Indicator
	events    chan Event
	total     int64
	loaded    int64
	last      int
	visible   bool
	finished  bool
}

func newTracker(ind Indicator, total int64) *tracker {
	return &tracker{
		indicator: ind,
		events:    make(chan Event, progressBuffer),
		total:     total,
	}
}

func (t *tracker) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = true
	t.indicator.Show()
}

func (t *tracker) advance(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}

	t.loaded += n
	ev := Event{Loaded: t.loaded, Total: t.total}

	t.publish(ev)

	p, ok := ev.Percent()
	if !ok || !t.visible {
		return
	}
	if p < t.last {
		p = t.last
	}
	t.last = p
	t.indicator.Set(p)

	if p == 100 {
		t.hide()
	}
}

// publish never blocks: when the buffer is full the oldest pending event is
// discarded, so the most recent one is always delivered. Expects t.mu held.
func (t *tracker) publish(ev Event) {
	select {
	case t.events <- ev:
		return
	default:
	}
	select {
	case <-t.events:
	default:
	}
	t.events <- ev
}

// hide expects t.mu to be held.
func (t *tracker) hide() {
	t.indicator.Hide()
	t.indicator.Set(0)
	t.visible = false
}

func (t *tracker) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}
	t.finished = true
	close(t.events)
	if t.visible {
		t.hide()
	}
}

func (t *tracker) wrap(rc io.ReadCloser) io.ReadCloser {
	return &progressReader{rc: rc, t: t}
}

type progressReader struct {
	rc io.ReadCloser
	t  *tracker
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if n > 0 {
		r.t.advance(int64(n))
	}
	return n, err
}

func (r *progressReader) Close() error {
	return r.rc.Close()
}
