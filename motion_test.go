package kinetic

import (
	"testing"
	"time"

	"github.com/phanxgames/kinetic/signal"
)

func drawerVariants() Variants {
	return Variants{
		"closed": {Target: NewTarget().Set("x", Pixels(0)).Set("opacity", Number(1))},
		"open":   {Target: NewTarget().Set("x", Pixels(100))},
	}
}

func TestMotionMount(t *testing.T) {
	h := newHarness()
	rt := signal.NewRuntime()
	open := signal.New(rt, false)
	el, sink := h.element()
	m := Mount(h.engine, el, MotionProps{
		Initial: Named("closed"),
		AnimateVariant: func() string {
			if open.Get() {
				return "open"
			}
			return "closed"
		},
		WhileHover: Lit(NewTarget().Set("scale", Number(1.2))),
		Exit:       Lit(NewTarget().Set("opacity", Number(0))),
		Transition: linear(64 * time.Millisecond),
		Variants:   drawerVariants(),
	}, rt)
	if m.Binding() == nil || m.Recognizer() == nil || m.Bridge() == nil {
		t.Fatal("mount should wire binding, recognizer and bridge")
	}
	if opacityOf(t, el) != 1 {
		t.Errorf("initial opacity = %v", opacityOf(t, el))
	}

	open.Set(true)
	h.run(100 * time.Millisecond)
	if xOf(el) != 100 {
		t.Errorf("x = %v, want the open variant", xOf(el))
	}

	sink.Dispatch(PointerEvent{Kind: PointerEnter, Type: PointerMouse})
	h.run(100 * time.Millisecond)
	assertNear(t, "hovered", scaleOf(el), 1.2)
	sink.Dispatch(PointerEvent{Kind: PointerLeave, Type: PointerMouse})
	h.run(100 * time.Millisecond)
	assertNear(t, "unhovered", scaleOf(el), 1)

	c := m.Child("drawer")
	if c.Key != "drawer" || c.Element != el {
		t.Errorf("child = %+v", c)
	}
	if v, _ := c.Animate.Get("x"); !Equal(v, Pixels(100)) {
		t.Errorf("child animate x = %v", v)
	}
	if c.Exit.Len() != 1 || c.Initial.Len() != 2 {
		t.Error("child should carry the exit and initial targets")
	}

	done := 0
	m.Exit(func() { done++ })
	if sink.Listeners(PointerEnter) != 0 {
		t.Error("exit should detach pointer listeners")
	}
	open.Set(false)
	h.run(100 * time.Millisecond)
	if opacityOf(t, el) != 0 || done != 1 {
		t.Errorf("exit: opacity = %v done = %d", opacityOf(t, el), done)
	}
	if xOf(el) != 100 {
		t.Error("exit should stop reacting to animate changes")
	}

	m.Unmount()
	m.Unmount()
	if h.engine.ActiveCount() != 0 {
		t.Errorf("active after unmount = %d", h.engine.ActiveCount())
	}
}

func TestMotionStaticProps(t *testing.T) {
	h := newHarness()
	el, sink := h.element()
	m := Mount(h.engine, el, MotionProps{
		Initial: Lit(NewTarget().Set("opacity", Number(0.25))),
	}, nil)
	if m.Binding() != nil || m.Bridge() != nil {
		t.Error("static props need no binding or gestures")
	}
	if opacityOf(t, el) != 0.25 {
		t.Errorf("initial opacity = %v", opacityOf(t, el))
	}
	if sink.Listeners(PointerDown) != 0 {
		t.Error("no gesture props should register no listeners")
	}
	done := false
	if m.Exit(func() { done = true }) != nil || !done {
		t.Error("exit without a target should finish immediately")
	}
}

func TestMotionRelayout(t *testing.T) {
	h := newHarness()
	el, sink := h.element()
	plain := Mount(h.engine, el, MotionProps{}, nil)
	snap := plain.Measure()
	sink.Rect = Rect{X: 30, Width: 100, Height: 100}
	if plain.Relayout(snap) != nil {
		t.Error("relayout without Layout should do nothing")
	}

	el2, sink2 := h.element()
	m := Mount(h.engine, el2, MotionProps{Layout: true, Transition: linear(64 * time.Millisecond)}, nil)
	snap = m.Measure()
	sink2.Rect = Rect{X: 30, Width: 100, Height: 100}
	if m.Relayout(snap) == nil {
		t.Fatal("layout motion should animate")
	}
	h.run(100 * time.Millisecond)
	if xOf(el2) != 0 {
		t.Errorf("x = %v after relayout", xOf(el2))
	}
}
