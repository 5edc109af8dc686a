package kinetic

import (
	"testing"
	"time"
)

type bridgeRig struct {
	*harness
	el     *Element
	sink   *RecordingSink
	rec    *Recognizer
	bridge *Bridge
}

func newBridgeRig(opts BridgeOptions) *bridgeRig {
	h := newHarness()
	el, sink := h.element()
	rec := NewRecognizer(GestureConfig{})
	rec.Attach(sink)
	b := NewBridge(h.engine, el, rec, opts)
	return &bridgeRig{harness: h, el: el, sink: sink, rec: rec, bridge: b}
}

func (r *bridgeRig) send(ev PointerEvent) { r.sink.Dispatch(ev) }

func scaleOf(el *Element) float64 { return el.Transform().Component(ScaleX) }

func TestBridgeDragElasticMomentum(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{Drag: &DragConfig{
		Axis:        AxisX,
		Constraints: ConstrainX(0, 100),
		Elastic:     0.3,
		Momentum:    true,
	}})
	rig.engine.Set(rig.el, NewTarget().Set("x", Pixels(50)))
	var ended []Vec2
	rig.bridge.OnDragEnd(func(p Vec2) { ended = append(ended, p) })

	rig.send(down(1, 50, 0, 0))
	for i := 1; i <= 10; i++ {
		rig.send(move(1, 50+float64(i)*10, 0, float64(i)*10))
	}
	rig.send(up(1, 150, 0, 100))

	assertNear(t, "release x", xOf(rig.el), 115)
	assertNear(t, "release velocity", rig.rec.Velocity().X, 1)
	if !rig.bridge.Dragging() || rig.bridge.Momentum() == nil {
		t.Fatal("momentum should run after release")
	}

	for i := 0; i < 200 && rig.bridge.Dragging(); i++ {
		rig.step()
		if xOf(rig.el) > 115 {
			t.Fatalf("frame %d: x = %v oscillated past 115", i, xOf(rig.el))
		}
	}
	if rig.bridge.Dragging() {
		t.Fatal("momentum never settled")
	}
	if xOf(rig.el) != 100 {
		t.Errorf("settled x = %v, want exactly 100", xOf(rig.el))
	}
	if len(ended) != 1 || ended[0].X != 100 {
		t.Errorf("drag end = %v", ended)
	}
	rig.run(100 * time.Millisecond)
	if rig.frames.Outstanding() != 0 {
		t.Error("scheduler should be idle after the drag")
	}
}

func TestBridgeDragSuspendsAnimate(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{Drag: &DragConfig{}})
	base := rig.engine.Start(rig.el, NewTarget().Set("x", Pixels(500)), linear(time.Second))
	rig.step()
	rig.send(down(1, 0, 0, 0))
	rig.send(move(1, 20, 10, 16))
	rig.send(move(1, 40, 20, 32))
	at := xOf(rig.el)
	rig.run(200 * time.Millisecond)
	if xOf(rig.el) != at {
		t.Errorf("animate wrote x during drag: %v -> %v", at, xOf(rig.el))
	}
	if p := rig.bridge.Position(); p.Y != 20 {
		t.Errorf("free drag y = %v", p.Y)
	}
	rig.send(up(1, 40, 20, 400))
	rig.run(1500 * time.Millisecond)
	if xOf(rig.el) != 500 || base.State() != StateCompleted {
		t.Errorf("animate should resume after release: x = %v state = %v", xOf(rig.el), base.State())
	}
}

func TestBridgeSnapBackWithoutMomentum(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{Drag: &DragConfig{
		Axis:           AxisX,
		Constraints:    ConstrainX(0, 100),
		SnapTransition: linear(100 * time.Millisecond),
	}})
	var ended []Vec2
	rig.bridge.OnDragEnd(func(p Vec2) { ended = append(ended, p) })
	rig.send(down(1, 0, 0, 0))
	rig.send(move(1, 200, 0, 16))
	rig.send(move(1, 200, 0, 32))
	rig.send(up(1, 200, 0, 400))
	assertNear(t, "released in elastic zone", xOf(rig.el), 130)
	if len(ended) != 0 {
		t.Fatal("drag end must wait for the snap animation")
	}
	rig.run(200 * time.Millisecond)
	if xOf(rig.el) != 100 || len(ended) != 1 {
		t.Errorf("x = %v ended = %v", xOf(rig.el), ended)
	}
}

func TestBridgeHoverOverride(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{
		Overrides:  Overrides{Hover: NewTarget().Set("scale", Number(1.1))},
		Transition: linear(100 * time.Millisecond),
	})
	rig.send(PointerEvent{Kind: PointerEnter, Type: PointerMouse})
	if rig.bridge.Override(GestureHover) == nil {
		t.Fatal("hover override not started")
	}
	rig.run(200 * time.Millisecond)
	assertNear(t, "hovered", scaleOf(rig.el), 1.1)
	rig.send(PointerEvent{Kind: PointerLeave, Type: PointerMouse})
	rig.run(200 * time.Millisecond)
	assertNear(t, "restored", scaleOf(rig.el), 1)
	if rig.bridge.Override(GestureHover) != nil {
		t.Error("override should be cleared on leave")
	}
}

func TestBridgeTapOverridePreemptsAnimate(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{
		Overrides:  Overrides{Tap: NewTarget().Set("scale", Number(0.9))},
		Transition: linear(64 * time.Millisecond),
	})
	rig.engine.Start(rig.el, NewTarget().Set("scale", Number(2)), linear(time.Second))
	rig.run(96 * time.Millisecond)
	rig.send(down(1, 5, 5, 0))
	rig.run(96 * time.Millisecond)
	pressed := scaleOf(rig.el)
	assertNear(t, "pressed", pressed, 0.9)
	rig.run(200 * time.Millisecond)
	if scaleOf(rig.el) != pressed {
		t.Errorf("lower priority animation wrote scale during press: %v", scaleOf(rig.el))
	}
	rig.send(up(1, 5, 5, 100))
	rig.run(1500 * time.Millisecond)
	assertNear(t, "resumed", scaleOf(rig.el), 2)
}

func TestBridgeFocusAndInView(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{
		Overrides: Overrides{
			Focus:  NewTarget().Set("opacity", Number(0.5)),
			InView: NewTarget().Set("y", Pixels(-20)),
		},
		Transition: linear(64 * time.Millisecond),
	})
	rig.bridge.SetFocused(true)
	rig.bridge.SetFocused(true)
	rig.bridge.SetInView(true)
	rig.run(100 * time.Millisecond)
	if opacityOf(t, rig.el) != 0.5 || rig.el.Transform().Component(TranslateY) != -20 {
		t.Errorf("focus/in-view not applied: opacity %v y %v",
			opacityOf(t, rig.el), rig.el.Transform().Component(TranslateY))
	}
	rig.bridge.SetFocused(false)
	rig.bridge.SetInView(false)
	rig.run(100 * time.Millisecond)
	if opacityOf(t, rig.el) != 1 || rig.el.Transform().Component(TranslateY) != 0 {
		t.Error("releasing the overrides should restore the rest values")
	}
}

func TestBridgeDispose(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{
		Overrides: Overrides{Hover: NewTarget().Set("scale", Number(1.5))},
		Drag:      &DragConfig{Momentum: true},
	})
	rig.send(PointerEvent{Kind: PointerEnter, Type: PointerMouse})
	rig.bridge.Dispose()
	rig.bridge.Dispose()
	if rig.bridge.Override(GestureHover) != nil {
		t.Error("dispose should stop overrides")
	}
	rig.send(down(1, 0, 0, 0))
	rig.send(move(1, 50, 0, 16))
	if rig.bridge.Dragging() || xOf(rig.el) != 0 {
		t.Error("disposed bridge reacted to gestures")
	}
	rig.run(400 * time.Millisecond)
	if rig.engine.ActiveCount() != 0 || scaleOf(rig.el) != 1 {
		t.Errorf("active = %d scale = %v after dispose", rig.engine.ActiveCount(), scaleOf(rig.el))
	}
}

func TestBridgeMomentumResumesFromLastWrite(t *testing.T) {
	rig := newBridgeRig(BridgeOptions{Drag: &DragConfig{Axis: AxisX, Momentum: true}})
	base := rig.engine.Start(rig.el, NewTarget().Set("x", Pixels(500)), linear(time.Second))
	rig.step()
	rig.send(down(1, 0, 0, 0))
	for i := 1; i <= 10; i++ {
		rig.send(move(1, float64(i)*10, 0, float64(i)*10))
	}
	rig.send(up(1, 100, 0, 100))
	for i := 0; i < 300 && rig.bridge.Dragging(); i++ {
		rig.step()
	}
	if rig.bridge.Dragging() {
		t.Fatal("momentum never settled")
	}
	last := rig.bridge.Position().X
	assertNear(t, "displayed", xOf(rig.el), last)
	from, _ := scalarOf(base.props[0].from)
	assertNear(t, "resumed from", from, last)
	rig.run(1500 * time.Millisecond)
	assertNear(t, "resumed to", xOf(rig.el), 500)
}
