package kinetic

// LayoutSnapshot is an element's measured box before a layout change.
type LayoutSnapshot struct {
	el   *Element
	rect Rect
}

// MeasureLayout records el's current layout box. Call it before the host
// moves or resizes the element, then Play the snapshot afterwards.
func MeasureLayout(el *Element) LayoutSnapshot {
	return LayoutSnapshot{el: el, rect: el.Sink().ReadBoundingRect()}
}

// Rect returns the measured box.
func (s LayoutSnapshot) Rect() Rect { return s.rect }

// Play animates from the snapshot to the element's new box.
func (s LayoutSnapshot) Play(e *Engine, tr Transition) *Animation {
	return e.AnimateLayout(s.el, s.rect, tr)
}

// AnimateLayout plays a FLIP animation: it measures el's new box, inverts
// the change from first with a translate and scale about the box center,
// and animates the inversion back to the element's current transform.
// Sinks report the untransformed layout box. Returns nil when nothing
// moved.
func (e *Engine) AnimateLayout(el *Element, first Rect, tr Transition) *Animation {
	if el.Disposed() {
		e.logWarn("layout animation on disposed element", "element", el.id)
		return nil
	}
	last := el.Sink().ReadBoundingRect()
	d := first.Center().Sub(last.Center())
	sx, sy := 1.0, 1.0
	if last.Width > 0 && first.Width > 0 {
		sx = first.Width / last.Width
	}
	if last.Height > 0 && first.Height > 0 {
		sy = first.Height / last.Height
	}
	if d == (Vec2{}) && sx == 1 && sy == 1 {
		return nil
	}

	cur := el.Transform()
	x, y := cur.Component(TranslateX), cur.Component(TranslateY)
	csx, csy := cur.Component(ScaleX), cur.Component(ScaleY)
	initial := NewTarget().
		Set("x", Pixels(x+d.X)).
		Set("y", Pixels(y+d.Y)).
		Set("scaleX", Number(csx*sx)).
		Set("scaleY", Number(csy*sy))
	target := NewTarget().
		Set("x", Pixels(x)).
		Set("y", Pixels(y)).
		Set("scaleX", Number(csx)).
		Set("scaleY", Number(csy))
	return e.StartWith(el, target, tr, StartOptions{Initial: initial})
}
