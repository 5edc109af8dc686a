package kinetic

import "time"

// injectFrameMs is the synthetic clock advance per injected event.
const injectFrameMs = 16.0

// injectPointerID is the pointer id used by single-pointer injections.
const injectPointerID = 1

func (r *Recognizer) inject(kind PointerKind, id int, x, y float64) {
	r.injectQueue = append(r.injectQueue, PointerEvent{
		Kind:      kind,
		PointerID: id,
		Type:      PointerMouse,
		X:         x,
		Y:         y,
		Pressure:  0.5,
		Timestamp: r.injectClock,
	})
	r.injectClock += injectFrameMs
}

// InjectClock returns the synthetic time of the next injected event in ms.
func (r *Recognizer) InjectClock() float64 { return r.injectClock }

// SetInjectClock moves the synthetic clock to ms.
func (r *Recognizer) SetInjectClock(ms float64) { r.injectClock = ms }

// InjectPress queues a pointer down at (x, y). Events are consumed by
// ProcessInjected.
func (r *Recognizer) InjectPress(x, y float64) {
	r.inject(PointerDown, injectPointerID, x, y)
}

// InjectMove queues a pointer move with the pointer held.
func (r *Recognizer) InjectMove(x, y float64) {
	r.inject(PointerMove, injectPointerID, x, y)
}

// InjectRelease queues a pointer up at (x, y).
func (r *Recognizer) InjectRelease(x, y float64) {
	r.inject(PointerUp, injectPointerID, x, y)
}

// InjectCancel queues a pointer cancel.
func (r *Recognizer) InjectCancel() {
	r.inject(PointerCancel, injectPointerID, 0, 0)
}

// InjectEnter queues a mouse enter at (x, y).
func (r *Recognizer) InjectEnter(x, y float64) {
	r.inject(PointerEnter, injectPointerID, x, y)
}

// InjectLeave queues a mouse leave at (x, y).
func (r *Recognizer) InjectLeave(x, y float64) {
	r.inject(PointerLeave, injectPointerID, x, y)
}

// InjectWait advances the synthetic clock without queueing an event.
func (r *Recognizer) InjectWait(d time.Duration) {
	r.injectClock += ms(d)
}

// InjectTap queues a press and a release at (x, y) held for hold.
func (r *Recognizer) InjectTap(x, y float64, hold time.Duration) {
	r.InjectPress(x, y)
	r.injectClock += ms(hold) - injectFrameMs
	r.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Events are one synthetic frame apart. Minimum
// frames is 2 (press + release).
func (r *Recognizer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		r.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	r.InjectRelease(toX, toY)
}

// InjectPinch queues a two-pointer gesture centered on (cx, cy). The
// pointers start fromDist apart on the horizontal axis and end toDist
// apart rotated by angle radians, over frames moves.
func (r *Recognizer) InjectPinch(cx, cy, fromDist, toDist, angle float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	half := fromDist / 2
	r.inject(PointerDown, 1, cx-half, cy)
	r.inject(PointerDown, 2, cx+half, cy)
	var ax, ay, bx, by float64
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		h := (fromDist + (toDist-fromDist)*t) / 2
		v := Vec2{X: h, Y: 0}.Rotate(angle * t)
		ax, ay = cx-v.X, cy-v.Y
		bx, by = cx+v.X, cy+v.Y
		r.inject(PointerMove, 1, ax, ay)
		r.inject(PointerMove, 2, bx, by)
	}
	r.inject(PointerUp, 2, bx, by)
	r.inject(PointerUp, 1, ax, ay)
}

// PendingInjected returns the number of queued injected events.
func (r *Recognizer) PendingInjected() int { return len(r.injectQueue) }

// ProcessInjected pops one injected event and feeds it through Handle. It
// returns true if an event was consumed; hosts skip real input that frame.
func (r *Recognizer) ProcessInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	ev := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]
	r.Advance(ev.Timestamp)
	r.Handle(ev)
	return true
}

// FlushInjected processes every queued injected event.
func (r *Recognizer) FlushInjected() int {
	n := 0
	for r.ProcessInjected() {
		n++
	}
	return n
}
