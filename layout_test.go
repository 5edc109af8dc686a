package kinetic

import (
	"strings"
	"testing"
	"time"
)

func TestAnimateLayoutInvertsAndPlays(t *testing.T) {
	h := newHarness()
	el, sink := h.element()
	snap := MeasureLayout(el)
	if snap.Rect() != (Rect{Width: 100, Height: 100}) {
		t.Fatalf("snapshot = %+v", snap.Rect())
	}

	sink.Rect = Rect{X: 50, Width: 200, Height: 100}
	a := snap.Play(h.engine, linear(96*time.Millisecond))
	if a == nil {
		t.Fatal("moved element should animate")
	}
	tr := el.Transform()
	assertNear(t, "inverted x", tr.Component(TranslateX), -100)
	assertNear(t, "inverted scaleX", tr.Component(ScaleX), 0.5)
	assertNear(t, "inverted scaleY", tr.Component(ScaleY), 1)

	h.run(150 * time.Millisecond)
	tr = el.Transform()
	if tr.Component(TranslateX) != 0 || tr.Component(ScaleX) != 1 {
		t.Errorf("layout animation should land on the new box: %s", tr.CSS())
	}
}

func TestAnimateLayoutKeepsCurrentTransform(t *testing.T) {
	h := newHarness()
	el, sink := h.element()
	h.engine.Set(el, NewTarget().Set("x", Pixels(10)).Set("scale", Number(2)))
	snap := MeasureLayout(el)
	sink.Rect = Rect{Y: 40, Width: 100, Height: 100}
	snap.Play(h.engine, linear(64*time.Millisecond))
	assertNear(t, "inverted y", el.Transform().Component(TranslateY), -40)
	h.run(100 * time.Millisecond)
	tr := el.Transform()
	if tr.Component(TranslateX) != 10 || tr.Component(ScaleX) != 2 || tr.Component(TranslateY) != 0 {
		t.Errorf("transform after layout = %s", tr.CSS())
	}
}

func TestAnimateLayoutNoChange(t *testing.T) {
	h := newHarness()
	el, sink := h.element()
	snap := MeasureLayout(el)
	if snap.Play(h.engine, Transition{}) != nil {
		t.Error("unchanged box should not animate")
	}
	sink.Dead = true
	el.Dispose()
	if h.engine.AnimateLayout(el, Rect{X: 5}, Transition{}) != nil {
		t.Error("disposed element should not animate")
	}
	if !strings.Contains(h.logs.String(), "layout animation on disposed element") {
		t.Error("disposed layout animation not logged")
	}
}
