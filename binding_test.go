package kinetic

import (
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/kinetic/signal"
)

func bindX(h *harness, rt *signal.Runtime, x *signal.Signal[float64]) (*Element, *Binding) {
	el, _ := h.element()
	b := Bind(h.engine, el, TargetProducer(func() *Target {
		return NewTarget().Set("x", Pixels(x.Get()))
	}), rt, BindOptions{})
	return el, b
}

func TestBindingReactiveRetarget(t *testing.T) {
	h := newHarness()
	rt := signal.NewRuntime()
	x := signal.New(rt, 0.0)
	el, b := bindX(h, rt, x)
	if b.Starts() != 1 {
		t.Fatalf("mount starts = %d, want 1", b.Starts())
	}

	x.Set(100)
	h.run(500 * time.Millisecond)
	if xOf(el) != 100 {
		t.Fatalf("x = %v, want 100", xOf(el))
	}

	x.Set(0)
	h.run(500 * time.Millisecond)
	x.Set(100)
	h.run(150 * time.Millisecond)
	mid := xOf(el)
	assertClose(t, "mid-flight x", mid, 50, 15)

	x.Set(200)
	h.step()
	if got := xOf(el); got < mid || got > mid+10 {
		t.Errorf("retarget should continue from %v, got %v", mid, got)
	}
	h.run(304 * time.Millisecond)
	if xOf(el) != 200 {
		t.Errorf("x = %v, want 200 after the new 0.3s transition", xOf(el))
	}
}

func TestBindingEqualTargetIsIdempotent(t *testing.T) {
	h := newHarness()
	rt := signal.NewRuntime()
	x := signal.New(rt, 10.0)
	noise := signal.New(rt, 0)
	el, _ := h.element()
	b := Bind(h.engine, el, TargetProducer(func() *Target {
		_ = noise.Get()
		return NewTarget().Set("x", Pixels(x.Get())).Set("opacity", Number(1))
	}), rt, BindOptions{})
	starts := b.Starts()
	for i := 1; i <= 5; i++ {
		noise.Set(i)
	}
	if b.Starts() != starts {
		t.Errorf("equal targets started %d animations", b.Starts()-starts)
	}

	h.run(400 * time.Millisecond)
	x.Set(20)
	if b.Starts() != starts+1 {
		t.Fatalf("starts = %d", b.Starts())
	}
	anims := b.Animations()
	if len(anims) != 1 {
		t.Fatalf("active animations = %d, want 1", len(anims))
	}
	if got := anims[0].Properties(); len(got) != 1 || got[0] != "x" {
		t.Errorf("only changed properties restart, got %v", got)
	}
}

func TestBindingProducerPanicKeepsTarget(t *testing.T) {
	h := newHarness()
	rt := signal.NewRuntime()
	x := signal.New(rt, 1.0)
	fail := signal.New(rt, false)
	el, _ := h.element()
	b := Bind(h.engine, el, TargetProducer(func() *Target {
		if fail.Get() {
			panic("bad producer")
		}
		return NewTarget().Set("x", Pixels(x.Get()))
	}), rt, BindOptions{})
	prev := b.Target()
	fail.Set(true)
	if b.Target() != prev {
		t.Error("panicking producer replaced the target")
	}
	if !strings.Contains(h.logs.String(), "target producer panicked") {
		t.Errorf("logs = %q", h.logs.String())
	}
	fail.Set(false)
	x.Set(50)
	h.run(400 * time.Millisecond)
	if xOf(el) != 50 {
		t.Errorf("binding should recover, x = %v", xOf(el))
	}
}

func TestBindingInitialAndTransition(t *testing.T) {
	h := newHarness()
	el, _ := h.element()
	tr := linear(160 * time.Millisecond)
	b := Bind(h.engine, el, func() (*Target, *Transition) {
		return NewTarget().Set("opacity", Number(1)), &tr
	}, nil, BindOptions{Initial: NewTarget().Set("opacity", Number(0))})
	if got := opacityOf(t, el); got != 0 {
		t.Errorf("initial opacity = %v", got)
	}
	h.run(80 * time.Millisecond)
	assertClose(t, "opacity", opacityOf(t, el), 0.5, 0.01)
	h.run(100 * time.Millisecond)
	if opacityOf(t, el) != 1 {
		t.Error("producer transition should be used")
	}
	b.Refresh()
	if b.Starts() != 1 {
		t.Errorf("refresh with the same target started %d", b.Starts())
	}
}

func TestBindingDispose(t *testing.T) {
	h := newHarness()
	rt := signal.NewRuntime()
	x := signal.New(rt, 0.0)
	el, b := bindX(h, rt, x)
	x.Set(100)
	h.run(48 * time.Millisecond)
	at := xOf(el)
	b.Dispose()
	b.Dispose()
	x.Set(300)
	h.run(400 * time.Millisecond)
	if xOf(el) != at {
		t.Errorf("disposed binding kept animating: %v -> %v", at, xOf(el))
	}
	if x.Subscribers() != 0 {
		t.Error("dispose should unsubscribe the effect")
	}
}
