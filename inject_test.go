package kinetic

import (
	"testing"
	"time"
)

func TestInjectQueueIsConsumedInOrder(t *testing.T) {
	r, l := newLoggedRecognizer()
	r.InjectDrag(0, 0, 50, 0, 5)
	if got := r.PendingInjected(); got != 5 {
		t.Fatalf("pending = %d, want 5", got)
	}
	if got := r.InjectClock(); got != 80 {
		t.Errorf("clock = %v, want 80", got)
	}
	if !r.ProcessInjected() {
		t.Fatal("first ProcessInjected should consume the press")
	}
	if r.PendingInjected() != 4 || r.State() != GesturePressed {
		t.Fatalf("after press: pending %d, state %v", r.PendingInjected(), r.State())
	}
	if n := r.FlushInjected(); n != 4 {
		t.Errorf("flushed %d, want 4", n)
	}
	if r.ProcessInjected() {
		t.Error("empty queue should report false")
	}
	ends := l.of(GestureDrag, PhaseEnd)
	if len(ends) != 1 || ends[0].DX != 50 {
		t.Fatalf("drag end = %+v, want one with DX 50", ends)
	}
	if ends[0].Timestamp != 64 {
		t.Errorf("release at %v, want 64", ends[0].Timestamp)
	}
}

func TestInjectTapHoldAndWait(t *testing.T) {
	r, l := newLoggedRecognizer()
	r.InjectTap(10, 10, 50*time.Millisecond)
	if got := r.InjectClock(); got != 66 {
		t.Errorf("clock after tap = %v, want 66", got)
	}
	r.InjectWait(100 * time.Millisecond)
	if got := r.InjectClock(); got != 166 {
		t.Errorf("clock after wait = %v, want 166", got)
	}
	r.FlushInjected()
	ends := l.of(GestureTap, PhaseEnd)
	if len(ends) != 1 || ends[0].Timestamp != 50 {
		t.Fatalf("tap end = %+v, want one at 50ms", ends)
	}
}

func TestInjectHover(t *testing.T) {
	r, l := newLoggedRecognizer()
	r.SetInjectClock(1000)
	r.InjectEnter(5, 5)
	r.InjectEnter(6, 6)
	r.InjectLeave(7, 7)
	r.FlushInjected()
	if len(l.of(GestureHover, PhaseStart)) != 1 {
		t.Errorf("hover starts = %d, want 1", len(l.of(GestureHover, PhaseStart)))
	}
	endsAt := l.of(GestureHover, PhaseEnd)
	if len(endsAt) != 1 || endsAt[0].Timestamp != 1032 {
		t.Errorf("hover end = %+v, want one at 1032", endsAt)
	}
}

func TestInjectCancelAbortsPress(t *testing.T) {
	r, l := newLoggedRecognizer()
	r.InjectPress(0, 0)
	r.InjectCancel()
	r.FlushInjected()
	if len(l.of(GestureTap, PhaseCancel)) != 1 {
		t.Errorf("tap cancels = %d, want 1", len(l.of(GestureTap, PhaseCancel)))
	}
	if len(l.of(GestureTap, PhaseEnd)) != 0 {
		t.Error("a cancelled press must not end as a tap")
	}
}
