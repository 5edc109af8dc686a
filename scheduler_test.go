package kinetic

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

// harness drives an engine from a manual frame source.
type harness struct {
	frames *ManualFrames
	sched  *Scheduler
	engine *Engine
	logs   *bytes.Buffer
}

func newHarness() *harness {
	frames := NewManualFrames()
	s := NewScheduler(frames)
	e := NewEngine(s)
	logs := &bytes.Buffer{}
	l := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s.SetLogger(l)
	e.SetLogger(l)
	return &harness{frames: frames, sched: s, engine: e, logs: logs}
}

func (h *harness) element() (*Element, *RecordingSink) {
	sink := NewRecordingSink(Rect{Width: 100, Height: 100})
	return NewElement(sink), sink
}

func (h *harness) run(d time.Duration) int { return h.frames.Run(d, frame) }

func (h *harness) step() { h.frames.Step(frame) }

func TestSchedulerQuiescence(t *testing.T) {
	h := newHarness()
	calls := 0
	h.sched.Add(TickerFunc(func(_, _ float64) bool {
		calls++
		return calls < 3
	}))
	if !h.sched.Pending() || h.frames.Outstanding() != 1 {
		t.Fatal("Add should request exactly one frame")
	}
	h.run(10 * frame)
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if h.sched.Pending() || h.frames.Outstanding() != 0 {
		t.Errorf("no frame should be outstanding once idle: pending=%v outstanding=%d",
			h.sched.Pending(), h.frames.Outstanding())
	}
	if h.frames.Requests != 3 {
		t.Errorf("requests = %d, want 3", h.frames.Requests)
	}
}

func TestSchedulerSingleOutstandingRequest(t *testing.T) {
	h := newHarness()
	for i := 0; i < 5; i++ {
		h.sched.Add(TickerFunc(func(_, _ float64) bool { return true }))
	}
	if h.frames.Outstanding() != 1 {
		t.Errorf("outstanding = %d, want 1", h.frames.Outstanding())
	}
	h.step()
	if h.frames.Outstanding() != 1 {
		t.Errorf("after tick outstanding = %d, want 1", h.frames.Outstanding())
	}
}

func TestSchedulerDeltaClamp(t *testing.T) {
	h := newHarness()
	var dts []float64
	h.sched.Add(TickerFunc(func(_, dt float64) bool {
		dts = append(dts, dt)
		return len(dts) < 2
	}))
	h.frames.Step(frame)
	h.frames.Step(2 * time.Second)
	if len(dts) != 2 {
		t.Fatalf("ticks = %d", len(dts))
	}
	assertNear(t, "first dt", dts[0], 0.016)
	assertNear(t, "clamped dt", dts[1], maxFrameDelta)
}

func TestSchedulerIdleGapDoesNotLeak(t *testing.T) {
	h := newHarness()
	h.sched.Add(TickerFunc(func(_, _ float64) bool { return false }))
	h.step()
	h.frames.Advance(5 * time.Second)
	var dt float64
	h.sched.Add(TickerFunc(func(_, d float64) bool { dt = d; return false }))
	h.step()
	assertNear(t, "dt after idle", dt, 0.016)
}

type panicTicker struct{ cancelled bool }

func (p *panicTicker) Advance(_, _ float64) bool { panic("boom") }
func (p *panicTicker) Cancel()                   { p.cancelled = true }

func TestSchedulerPanicIsolation(t *testing.T) {
	h := newHarness()
	bad := &panicTicker{}
	good := 0
	h.sched.Add(bad)
	h.sched.Add(TickerFunc(func(_, _ float64) bool { good++; return good < 3 }))
	h.run(5 * frame)
	if !bad.cancelled {
		t.Error("panicking ticker should be cancelled")
	}
	if good != 3 {
		t.Errorf("healthy ticker ran %d times, want 3", good)
	}
	if !strings.Contains(h.logs.String(), "ticker panicked") {
		t.Errorf("expected panic log, got %q", h.logs.String())
	}
}

func TestSchedulerAddDuringTick(t *testing.T) {
	h := newHarness()
	var order []string
	h.sched.Add(TickerFunc(func(_, _ float64) bool {
		order = append(order, "a")
		if len(order) == 1 {
			h.sched.Add(TickerFunc(func(_, _ float64) bool {
				order = append(order, "b")
				return false
			}))
		}
		return len(order) < 3
	}))
	h.step()
	if strings.Join(order, "") != "a" {
		t.Fatalf("tickers added mid-tick must wait a frame: %v", order)
	}
	h.step()
	if strings.Join(order, "") != "aab" {
		t.Errorf("order = %v", order)
	}
}

func TestSchedulerRemove(t *testing.T) {
	h := newHarness()
	n := 0
	id := h.sched.Add(TickerFunc(func(_, _ float64) bool { n++; return true }))
	h.step()
	h.sched.Remove(id)
	if h.frames.Outstanding() != 0 {
		t.Error("removing the last ticker should cancel the frame request")
	}
	h.run(3 * frame)
	if n != 1 {
		t.Errorf("removed ticker ran %d times", n)
	}
}

func TestSchedulerAfterTick(t *testing.T) {
	h := newHarness()
	var got []string
	remove := h.sched.AfterTick(func(float64) { got = append(got, "hook") })
	h.sched.AfterTick(func(float64) { panic("hook panic") })
	h.sched.Add(TickerFunc(func(_, _ float64) bool { got = append(got, "tick"); return true }))
	h.step()
	remove()
	h.step()
	if strings.Join(got, ",") != "tick,hook,tick" {
		t.Errorf("got %v", got)
	}
	if !strings.Contains(h.logs.String(), "after-tick hook panicked") {
		t.Error("hook panic should be logged")
	}
}
