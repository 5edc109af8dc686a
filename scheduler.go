package kinetic

import (
	"fmt"
	"math"
	"time"
)

// FrameToken identifies an outstanding frame request.
type FrameToken uint64

// FrameSource delivers display-refresh callbacks. Timestamps are monotonic
// milliseconds.
type FrameSource interface {
	RequestFrame(cb func(timestampMs float64)) FrameToken
	CancelFrame(tok FrameToken)
}

// Clock is an optional FrameSource capability. When present the scheduler
// reads the time a loop is armed so the first frame has a real delta.
type Clock interface {
	Now() float64
}

// Ticker is a unit of per-frame work. Advance is called once per frame
// with the current time and the clamped delta, both in seconds, and
// returns false when the ticker has finished.
type Ticker interface {
	Advance(now, dt float64) bool
}

// Canceler is implemented by tickers that need notice when the scheduler
// drops them after a panic.
type Canceler interface {
	Cancel()
}

// EntryID identifies a scheduled ticker.
type EntryID uint64

type schedEntry struct {
	id      EntryID
	ticker  Ticker
	removed bool
}

type tickHook struct {
	id uint32
	fn func(now float64)
}

// Scheduler runs the single animation loop of a document. It keeps at most
// one outstanding frame request and only re-requests while tickers remain.
// A scheduler is confined to the host UI thread.
type Scheduler struct {
	diag

	source  FrameSource
	entries []*schedEntry
	hooks   []tickHook

	nextEntry EntryID
	nextHook  uint32

	pending bool
	token   FrameToken
	ticking bool
	hasLast bool
	lastMs  float64
	now     float64
	frames  uint64
}

// NewScheduler returns a scheduler driven by src.
func NewScheduler(src FrameSource) *Scheduler {
	return &Scheduler{source: src}
}

// Add schedules t starting with the next frame.
func (s *Scheduler) Add(t Ticker) EntryID {
	s.nextEntry++
	s.entries = append(s.entries, &schedEntry{id: s.nextEntry, ticker: t})
	s.arm()
	return s.nextEntry
}

// Remove unschedules id. It is safe to call during a tick.
func (s *Scheduler) Remove(id EntryID) {
	for _, e := range s.entries {
		if e.id == id {
			e.removed = true
		}
	}
	if !s.ticking {
		s.compact()
		s.quiesce()
	}
}

// AfterTick registers fn to run after every ticker has advanced, in
// registration order. The returned func unregisters it.
func (s *Scheduler) AfterTick(fn func(now float64)) (remove func()) {
	s.nextHook++
	id := s.nextHook
	s.hooks = append(s.hooks, tickHook{id: id, fn: fn})
	return func() {
		for i, h := range s.hooks {
			if h.id == id {
				s.hooks = append(s.hooks[:i], s.hooks[i+1:]...)
				return
			}
		}
	}
}

// Active returns the number of scheduled tickers.
func (s *Scheduler) Active() int {
	n := 0
	for _, e := range s.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Pending reports whether a frame request is outstanding.
func (s *Scheduler) Pending() bool { return s.pending }

// Ticking reports whether the scheduler is inside a tick.
func (s *Scheduler) Ticking() bool { return s.ticking }

// Now returns the time of the latest tick in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// Frames returns the number of ticks run.
func (s *Scheduler) Frames() uint64 { return s.frames }

func (s *Scheduler) arm() {
	if s.pending || s.ticking || s.source == nil {
		return
	}
	if !s.hasLast {
		if c, ok := s.source.(Clock); ok {
			s.lastMs = c.Now()
			s.hasLast = true
		}
	}
	s.pending = true
	s.token = s.source.RequestFrame(s.tick)
}

// quiesce drops the outstanding request once nothing is scheduled.
func (s *Scheduler) quiesce() {
	if len(s.entries) > 0 || !s.pending {
		return
	}
	s.source.CancelFrame(s.token)
	s.pending = false
	s.hasLast = false
}

func (s *Scheduler) compact() {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = kept
}

func (s *Scheduler) tick(ms float64) {
	s.pending = false
	dt := 0.0
	if s.hasLast {
		dt = (ms - s.lastMs) / 1000
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	s.lastMs = ms
	s.hasLast = true
	s.now = ms / 1000
	s.frames++

	s.ticking = true
	// Tickers added during this tick start next frame.
	n := len(s.entries)
	for i := 0; i < n; i++ {
		e := s.entries[i]
		if e.removed {
			continue
		}
		if !s.advance(e, dt) {
			e.removed = true
		}
	}
	for _, h := range append([]tickHook(nil), s.hooks...) {
		s.runHook(h)
	}
	s.ticking = false

	s.compact()
	if len(s.entries) > 0 {
		s.arm()
		return
	}
	s.hasLast = false
}

// advance isolates a panicking ticker: it is logged, cancelled and dropped.
func (s *Scheduler) advance(e *schedEntry, dt float64) (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logError("ticker panicked; cancelled", "entry", uint64(e.id), "panic", fmt.Sprint(r))
			if c, ok := e.ticker.(Canceler); ok {
				func() {
					defer func() { _ = recover() }()
					c.Cancel()
				}()
			}
			alive = false
		}
	}()
	return e.ticker.Advance(s.now, dt)
}

func (s *Scheduler) runHook(h tickHook) {
	defer func() {
		if r := recover(); r != nil {
			s.logError("after-tick hook panicked", "panic", fmt.Sprint(r))
		}
	}()
	h.fn(s.now)
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func(now, dt float64) bool

// Advance calls f.
func (f TickerFunc) Advance(now, dt float64) bool { return f(now, dt) }

// --- Manual frame source ---

// ManualFrames is a deterministic FrameSource for tests and headless hosts.
// Frames fire only when Step is called.
type ManualFrames struct {
	now      float64
	next     FrameToken
	pending  []manualRequest
	Requests int // total RequestFrame calls
}

type manualRequest struct {
	tok FrameToken
	cb  func(float64)
}

// NewManualFrames returns a manual frame source at time zero.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

// RequestFrame queues cb for the next Step.
func (m *ManualFrames) RequestFrame(cb func(float64)) FrameToken {
	m.next++
	m.Requests++
	m.pending = append(m.pending, manualRequest{tok: m.next, cb: cb})
	return m.next
}

// CancelFrame drops a queued request.
func (m *ManualFrames) CancelFrame(tok FrameToken) {
	for i, r := range m.pending {
		if r.tok == tok {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Now returns the clock in milliseconds.
func (m *ManualFrames) Now() float64 { return m.now }

// Outstanding returns the number of queued requests.
func (m *ManualFrames) Outstanding() int { return len(m.pending) }

// Step advances the clock by d and fires the requests queued before the
// call. Requests made by those callbacks wait for the next Step.
func (m *ManualFrames) Step(d time.Duration) {
	m.now += float64(d) / float64(time.Millisecond)
	batch := m.pending
	m.pending = nil
	for _, r := range batch {
		r.cb(m.now)
	}
}

// Advance moves the clock by d without firing frames, simulating time
// passing while nothing is scheduled.
func (m *ManualFrames) Advance(d time.Duration) {
	m.now += float64(d) / float64(time.Millisecond)
}

// Run steps in increments of step until total has elapsed and returns the
// number of steps taken. The last step may overshoot total.
func (m *ManualFrames) Run(total, step time.Duration) int {
	if step <= 0 {
		step = 16 * time.Millisecond
	}
	n := 0
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		m.Step(step)
		n++
	}
	return n
}
