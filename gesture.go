package kinetic

import (
	"fmt"
	"math"
	"time"
)

// --- Gesture events ---

// GestureKind identifies a recognizer.
type GestureKind uint8

const (
	GestureTap GestureKind = iota
	GestureHover
	GestureDrag
	GesturePinch
	GestureRotate
)

var gestureKindNames = [...]string{"tap", "hover", "drag", "pinch", "rotate"}

func (k GestureKind) String() string {
	if int(k) < len(gestureKindNames) {
		return gestureKindNames[k]
	}
	return "unknown"
}

// GesturePhase is the transition a gesture event reports.
type GesturePhase uint8

const (
	PhaseStart GesturePhase = iota
	PhaseUpdate
	PhaseEnd
	PhaseCancel
)

var gesturePhaseNames = [...]string{"start", "update", "end", "cancel"}

func (p GesturePhase) String() string {
	if int(p) < len(gesturePhaseNames) {
		return gesturePhaseNames[p]
	}
	return "unknown"
}

// GestureEvent is emitted on every recognizer transition. Offsets are
// relative to the gesture start; velocity is in px/ms; rotation is in
// radians and unwrapped.
type GestureEvent struct {
	Kind      GestureKind
	Phase     GesturePhase
	PointerID int
	Timestamp float64

	X, Y           float64
	StartX, StartY float64
	DX, DY         float64
	VX, VY         float64

	// Count is the multi-tap count on tap end.
	Count int

	Scale            float64
	Rotation         float64
	CenterX, CenterY float64
}

// GestureState is the recognizer's state machine state.
type GestureState uint8

const (
	GestureIdle GestureState = iota
	GesturePressed
	GestureDragging
	GesturePinching
	GestureCooldown
)

var gestureStateNames = [...]string{"idle", "pressed", "dragging", "pinching", "cooldown"}

func (s GestureState) String() string {
	if int(s) < len(gestureStateNames) {
		return gestureStateNames[s]
	}
	return "unknown"
}

// GestureConfig tunes recognition. Zero fields select the defaults.
type GestureConfig struct {
	TapMaxDuration  time.Duration // 300ms
	TapMaxDistance  float64       // 10px
	MultiTapWindow  time.Duration // 500ms
	DragThreshold   float64       // 3px
	VelocitySamples int           // 5
	VelocityWindow  time.Duration // 66ms
	Cooldown        time.Duration // 100ms after a cancel
}

func (c GestureConfig) withDefaults() GestureConfig {
	if c.TapMaxDuration <= 0 {
		c.TapMaxDuration = 300 * time.Millisecond
	}
	if c.TapMaxDistance <= 0 {
		c.TapMaxDistance = 10
	}
	if c.MultiTapWindow <= 0 {
		c.MultiTapWindow = 500 * time.Millisecond
	}
	if c.DragThreshold <= 0 {
		c.DragThreshold = 3
	}
	if c.VelocitySamples <= 1 {
		c.VelocitySamples = 5
	}
	if c.VelocityWindow <= 0 {
		c.VelocityWindow = 66 * time.Millisecond
	}
	if c.Cooldown < 0 {
		c.Cooldown = 0
	} else if c.Cooldown == 0 {
		c.Cooldown = 100 * time.Millisecond
	}
	return c
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// --- Recognizer ---

type pointerSample struct {
	x, y, pressure, t float64
}

type trackedPointer struct {
	id      int
	typ     PointerType
	cur     pointerSample
	ignored bool
}

type pinchTrack struct {
	a, b         int
	initialDist  float64
	initialAngle float64
	prevAngle    float64
	rotation     float64
	scale        float64
}

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

// GestureHandle removes a registered gesture handler.
type GestureHandle struct {
	id uint32
	r  *Recognizer
}

// Remove unregisters the handler.
func (h GestureHandle) Remove() {
	if h.r == nil {
		return
	}
	for i := range h.r.handlers {
		if h.r.handlers[i].id == h.id {
			copy(h.r.handlers[i:], h.r.handlers[i+1:])
			h.r.handlers[len(h.r.handlers)-1] = gestureHandler{}
			h.r.handlers = h.r.handlers[:len(h.r.handlers)-1]
			return
		}
	}
}

// Recognizer is the per-element gesture state machine. Feed it pointer
// events with Handle, or Attach it to a sink. It is confined to the host
// UI thread.
type Recognizer struct {
	diag

	cfg   GestureConfig
	state GestureState

	pointers []*trackedPointer
	primary  int
	start    pointerSample
	samples  []pointerSample
	lastTS   float64

	tapCount   int
	lastTapEnd float64
	windowOpen bool

	hovering      bool
	pinch         pinchTrack
	cooldownUntil float64
	vel           Vec2
	offset        Vec2

	handlers []gestureHandler
	nextID   uint32

	dispatching bool
	failed      bool

	// synthetic input
	injectQueue []PointerEvent
	injectClock float64
}

// NewRecognizer returns an idle recognizer.
func NewRecognizer(cfg GestureConfig) *Recognizer {
	return &Recognizer{cfg: cfg.withDefaults(), primary: -1}
}

// Config returns the effective configuration.
func (r *Recognizer) Config() GestureConfig { return r.cfg }

// State returns the current state.
func (r *Recognizer) State() GestureState { return r.state }

// TapCount returns the latest multi-tap count. It stays frozen after the
// window expires until the next tap.
func (r *Recognizer) TapCount() int { return r.tapCount }

// Velocity returns the latest drag velocity in px/ms.
func (r *Recognizer) Velocity() Vec2 { return r.vel }

// Offset returns the drag offset from the gesture start.
func (r *Recognizer) Offset() Vec2 { return r.offset }

// Hovering reports whether a non-touch pointer is over the element.
func (r *Recognizer) Hovering() bool { return r.hovering }

// PinchScale returns the current pinch scale, 1 when not pinching.
func (r *Recognizer) PinchScale() float64 {
	if r.state != GesturePinching {
		return 1
	}
	return r.pinch.scale
}

// Rotation returns the current unwrapped pinch rotation in radians.
func (r *Recognizer) Rotation() float64 {
	if r.state != GesturePinching {
		return 0
	}
	return r.pinch.rotation
}

// ActivePointers returns the number of pointers currently down.
func (r *Recognizer) ActivePointers() int { return len(r.pointers) }

// OnGesture registers fn for every gesture event.
func (r *Recognizer) OnGesture(fn func(GestureEvent)) GestureHandle {
	r.nextID++
	r.handlers = append(r.handlers, gestureHandler{id: r.nextID, fn: fn})
	return GestureHandle{id: r.nextID, r: r}
}

// On registers fn for events of kind only.
func (r *Recognizer) On(kind GestureKind, fn func(GestureEvent)) GestureHandle {
	return r.OnGesture(func(ev GestureEvent) {
		if ev.Kind == kind {
			fn(ev)
		}
	})
}

// Attach subscribes to every pointer kind of sink. The returned func
// detaches.
func (r *Recognizer) Attach(sink ElementSink) (detach func()) {
	kinds := []PointerKind{PointerDown, PointerMove, PointerUp, PointerCancel,
		PointerEnter, PointerLeave, PointerLostCapture}
	ids := make([]ListenerID, len(kinds))
	for i, k := range kinds {
		ids[i] = sink.AddPointerListener(k, r.Handle)
	}
	return func() {
		for i, k := range kinds {
			sink.RemovePointerListener(k, ids[i])
		}
	}
}

// Reset drops all pointers and returns to idle without emitting events.
func (r *Recognizer) Reset() {
	r.pointers = r.pointers[:0]
	r.primary = -1
	r.samples = r.samples[:0]
	r.state = GestureIdle
	r.vel = Vec2{}
	r.offset = Vec2{}
}

// Advance lets the recognizer observe time passing without input, closing
// an expired multi-tap window and ending cooldown.
func (r *Recognizer) Advance(nowMs float64) {
	r.expireTapWindow(nowMs)
	if r.state == GestureCooldown && nowMs >= r.cooldownUntil {
		r.state = GestureIdle
	}
}

// Handle feeds one pointer event through the state machine.
func (r *Recognizer) Handle(ev PointerEvent) {
	// Interleaving across pointers is monotonic by timestamp.
	if ev.Timestamp < r.lastTS {
		ev.Timestamp = r.lastTS
	}
	r.lastTS = ev.Timestamp
	r.failed = false

	switch ev.Kind {
	case PointerEnter:
		if ev.Type != PointerTouch && !r.hovering {
			r.hovering = true
			r.emit(r.event(GestureHover, PhaseStart, ev))
		}
	case PointerLeave:
		if r.hovering {
			r.hovering = false
			r.emit(r.event(GestureHover, PhaseEnd, ev))
		}
	case PointerDown:
		r.down(ev)
	case PointerMove:
		r.move(ev)
	case PointerUp:
		r.up(ev)
	case PointerCancel, PointerLostCapture:
		r.cancel(ev)
	}
}

func (r *Recognizer) find(id int) *trackedPointer {
	for _, p := range r.pointers {
		if p.id == id {
			return p
		}
	}
	return nil
}

func (r *Recognizer) removePointer(id int) {
	for i, p := range r.pointers {
		if p.id == id {
			r.pointers = append(r.pointers[:i], r.pointers[i+1:]...)
			return
		}
	}
}

func (r *Recognizer) expireTapWindow(now float64) {
	if r.windowOpen && now-r.lastTapEnd > ms(r.cfg.MultiTapWindow) {
		r.windowOpen = false
	}
}

func (r *Recognizer) down(ev PointerEvent) {
	r.expireTapWindow(ev.Timestamp)
	if r.state == GestureCooldown {
		if ev.Timestamp < r.cooldownUntil {
			r.pointers = append(r.pointers, &trackedPointer{id: ev.PointerID, typ: ev.Type, ignored: true})
			return
		}
		r.state = GestureIdle
	}
	if r.find(ev.PointerID) != nil {
		return
	}
	p := &trackedPointer{id: ev.PointerID, typ: ev.Type, cur: sampleOf(ev)}
	r.pointers = append(r.pointers, p)

	switch r.state {
	case GestureIdle:
		r.primary = ev.PointerID
		r.start = p.cur
		r.samples = append(r.samples[:0], p.cur)
		r.vel = Vec2{}
		r.offset = Vec2{}
		r.state = GesturePressed
		r.emit(r.event(GestureTap, PhaseStart, ev))
	case GesturePressed, GestureDragging:
		other := r.find(r.primary)
		if other == nil {
			return
		}
		if r.state == GestureDragging {
			r.emit(r.event(GestureDrag, PhaseCancel, ev))
		} else {
			r.emit(r.event(GestureTap, PhaseCancel, ev))
		}
		if r.failed {
			return
		}
		r.beginPinch(other, p, ev)
	default:
		// Extra pointers during a pinch are tracked but do not participate.
		p.ignored = true
	}
}

func (r *Recognizer) beginPinch(a, b *trackedPointer, ev PointerEvent) {
	dx := b.cur.x - a.cur.x
	dy := b.cur.y - a.cur.y
	angle := math.Atan2(dy, dx)
	r.pinch = pinchTrack{
		a:            a.id,
		b:            b.id,
		initialDist:  math.Hypot(dx, dy),
		initialAngle: angle,
		prevAngle:    angle,
		scale:        1,
	}
	r.state = GesturePinching
	r.emitPinch(PhaseStart, ev)
}

func (r *Recognizer) move(ev PointerEvent) {
	p := r.find(ev.PointerID)
	if p == nil || p.ignored {
		return
	}
	p.cur = sampleOf(ev)

	switch r.state {
	case GesturePressed:
		if ev.PointerID != r.primary {
			return
		}
		r.pushSample(p.cur)
		dx, dy := p.cur.x-r.start.x, p.cur.y-r.start.y
		if math.Hypot(dx, dy) > r.cfg.DragThreshold {
			r.emit(r.event(GestureTap, PhaseCancel, ev))
			if r.failed {
				return
			}
			r.state = GestureDragging
			r.offset = Vec2{X: dx, Y: dy}
			r.vel = r.velocity()
			r.emit(r.event(GestureDrag, PhaseStart, ev))
		}
	case GestureDragging:
		if ev.PointerID != r.primary {
			return
		}
		r.pushSample(p.cur)
		r.offset = Vec2{X: p.cur.x - r.start.x, Y: p.cur.y - r.start.y}
		r.vel = r.velocity()
		r.emit(r.event(GestureDrag, PhaseUpdate, ev))
	case GesturePinching:
		if ev.PointerID != r.pinch.a && ev.PointerID != r.pinch.b {
			return
		}
		r.updatePinch()
		r.emitPinch(PhaseUpdate, ev)
	}
}

func (r *Recognizer) updatePinch() {
	a, b := r.find(r.pinch.a), r.find(r.pinch.b)
	if a == nil || b == nil {
		return
	}
	dx := b.cur.x - a.cur.x
	dy := b.cur.y - a.cur.y
	if r.pinch.initialDist > 0 {
		r.pinch.scale = math.Hypot(dx, dy) / r.pinch.initialDist
	}
	angle := math.Atan2(dy, dx)
	delta := angle - r.pinch.prevAngle
	// Unwrap across the ±π seam.
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}
	r.pinch.rotation += delta
	r.pinch.prevAngle = angle
}

func (r *Recognizer) up(ev PointerEvent) {
	p := r.find(ev.PointerID)
	if p == nil {
		return
	}
	if p.ignored {
		r.removePointer(ev.PointerID)
		return
	}
	p.cur = sampleOf(ev)

	switch r.state {
	case GesturePressed:
		if ev.PointerID != r.primary {
			break
		}
		r.pushSample(p.cur)
		dur := p.cur.t - r.start.t
		dist := math.Hypot(p.cur.x-r.start.x, p.cur.y-r.start.y)
		if dur <= ms(r.cfg.TapMaxDuration) && dist <= r.cfg.TapMaxDistance {
			if r.windowOpen && p.cur.t-r.lastTapEnd <= ms(r.cfg.MultiTapWindow) {
				r.tapCount++
			} else {
				r.tapCount = 1
			}
			r.lastTapEnd = p.cur.t
			r.windowOpen = true
			r.state = GestureIdle
			r.emit(r.event(GestureTap, PhaseEnd, ev))
		} else {
			r.state = GestureIdle
			r.emit(r.event(GestureTap, PhaseCancel, ev))
		}
	case GestureDragging:
		if ev.PointerID != r.primary {
			break
		}
		r.pushSample(p.cur)
		r.offset = Vec2{X: p.cur.x - r.start.x, Y: p.cur.y - r.start.y}
		r.vel = r.velocity()
		r.state = GestureIdle
		r.emit(r.event(GestureDrag, PhaseEnd, ev))
	case GesturePinching:
		if ev.PointerID != r.pinch.a && ev.PointerID != r.pinch.b {
			break
		}
		r.updatePinch()
		r.state = GestureIdle
		r.emitPinch(PhaseEnd, ev)
		// The remaining pointer does not start a new gesture.
		for _, q := range r.pointers {
			q.ignored = true
		}
	}
	r.removePointer(ev.PointerID)
	if len(r.pointers) == 0 {
		r.primary = -1
	}
}

// cancel aborts the active gesture and enters cooldown.
func (r *Recognizer) cancel(ev PointerEvent) {
	switch r.state {
	case GesturePressed:
		r.emit(r.event(GestureTap, PhaseCancel, ev))
	case GestureDragging:
		r.emit(r.event(GestureDrag, PhaseCancel, ev))
	case GesturePinching:
		r.emitPinch(PhaseCancel, ev)
	}
	r.enterCooldown(ev.Timestamp)
}

func (r *Recognizer) enterCooldown(now float64) {
	r.Reset()
	r.state = GestureCooldown
	r.cooldownUntil = now + ms(r.cfg.Cooldown)
}

func sampleOf(ev PointerEvent) pointerSample {
	return pointerSample{x: ev.X, y: ev.Y, pressure: ev.Pressure, t: ev.Timestamp}
}

func (r *Recognizer) pushSample(s pointerSample) {
	r.samples = append(r.samples, s)
	if n := len(r.samples); n > r.cfg.VelocitySamples {
		copy(r.samples, r.samples[n-r.cfg.VelocitySamples:])
		r.samples = r.samples[:r.cfg.VelocitySamples]
	}
}

// velocity averages over the retained samples that also fall inside the
// velocity window of the newest one.
func (r *Recognizer) velocity() Vec2 {
	n := len(r.samples)
	if n < 2 {
		return Vec2{}
	}
	last := r.samples[n-1]
	oldest := last
	for i := n - 2; i >= 0; i-- {
		if last.t-r.samples[i].t > ms(r.cfg.VelocityWindow) {
			break
		}
		oldest = r.samples[i]
	}
	dt := last.t - oldest.t
	if dt <= 0 {
		return r.vel
	}
	return Vec2{X: (last.x - oldest.x) / dt, Y: (last.y - oldest.y) / dt}
}

func (r *Recognizer) event(kind GestureKind, phase GesturePhase, ev PointerEvent) GestureEvent {
	return GestureEvent{
		Kind:      kind,
		Phase:     phase,
		PointerID: ev.PointerID,
		Timestamp: ev.Timestamp,
		X:         ev.X,
		Y:         ev.Y,
		StartX:    r.start.x,
		StartY:    r.start.y,
		DX:        r.offset.X,
		DY:        r.offset.Y,
		VX:        r.vel.X,
		VY:        r.vel.Y,
		Count:     r.tapCount,
		Scale:     1,
	}
}

// emitPinch reports the combined pinch and rotate transition.
func (r *Recognizer) emitPinch(phase GesturePhase, ev PointerEvent) {
	ge := r.event(GesturePinch, phase, ev)
	ge.Scale = r.pinch.scale
	ge.Rotation = r.pinch.rotation
	if a, b := r.find(r.pinch.a), r.find(r.pinch.b); a != nil && b != nil {
		ge.CenterX = (a.cur.x + b.cur.x) / 2
		ge.CenterY = (a.cur.y + b.cur.y) / 2
	}
	r.emit(ge)
	if r.failed {
		return
	}
	ge.Kind = GestureRotate
	r.emit(ge)
}

// emit dispatches to handlers. A panicking handler cancels the gesture and
// resets the state machine.
func (r *Recognizer) emit(ev GestureEvent) {
	if r.failed {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logError("gesture handler panicked; gesture cancelled",
				"gesture", ev.Kind.String(), "phase", ev.Phase.String(), "panic", fmt.Sprint(rec))
			r.failed = true
			r.enterCooldown(ev.Timestamp)
		}
	}()
	for _, h := range append([]gestureHandler(nil), r.handlers...) {
		h.fn(ev)
	}
}
