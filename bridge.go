package kinetic

// Overrides holds the while_* targets of an element. Nil entries are
// skipped.
type Overrides struct {
	Hover  *Target
	Tap    *Target
	Focus  *Target
	Drag   *Target
	InView *Target
}

type overrideKind uint8

const (
	overrideHover overrideKind = iota
	overrideTap
	overrideFocus
	overrideDrag
	overrideInView
	overrideCount
)

func (o Overrides) target(k overrideKind) *Target {
	switch k {
	case overrideHover:
		return o.Hover
	case overrideTap:
		return o.Tap
	case overrideFocus:
		return o.Focus
	case overrideDrag:
		return o.Drag
	case overrideInView:
		return o.InView
	}
	return nil
}

var overridePriority = [overrideCount]Priority{
	overrideHover:  PriorityHover,
	overrideTap:    PriorityTap,
	overrideFocus:  PriorityFocus,
	overrideDrag:   PriorityDrag,
	overrideInView: PriorityInView,
}

// BridgeOptions configures a Bridge.
type BridgeOptions struct {
	Overrides  Overrides
	Transition Transition
	// Drag enables dragging when non-nil.
	Drag *DragConfig
}

// Bridge turns recognizer transitions into engine overrides on one
// element. Gesture starts preempt lower priority animations; the matching
// end stops the override so the next lower animation resumes.
type Bridge struct {
	engine *Engine
	el     *Element
	rec    *Recognizer
	opts   BridgeOptions

	active [overrideCount]*Animation
	handle GestureHandle

	hold     *Animation
	origin   Vec2
	pos      Vec2
	dragging bool

	momentum      *Momentum
	momentumEntry EntryID
	snap          *Animation

	onDragEnd []func(pos Vec2)
	disposed  bool
}

// NewBridge subscribes to r and drives el through e.
func NewBridge(e *Engine, el *Element, r *Recognizer, opts BridgeOptions) *Bridge {
	b := &Bridge{engine: e, el: el, rec: r, opts: opts}
	b.handle = r.OnGesture(b.onGesture)
	return b
}

// Position returns the displayed drag position.
func (b *Bridge) Position() Vec2 { return b.pos }

// Dragging reports whether a drag or its momentum is in progress.
func (b *Bridge) Dragging() bool { return b.dragging || b.momentum != nil }

// Momentum returns the running momentum, or nil.
func (b *Bridge) Momentum() *Momentum { return b.momentum }

// Override returns the running override animation for the named gesture
// target, or nil.
func (b *Bridge) Override(kind GestureKind) *Animation {
	switch kind {
	case GestureHover:
		return b.active[overrideHover]
	case GestureTap:
		return b.active[overrideTap]
	case GestureDrag:
		return b.active[overrideDrag]
	}
	return nil
}

// OnDragEnd registers fn to receive the settled position after a drag and
// its momentum finish.
func (b *Bridge) OnDragEnd(fn func(pos Vec2)) {
	b.onDragEnd = append(b.onDragEnd, fn)
}

// SetFocused starts or stops the while_focus override.
func (b *Bridge) SetFocused(focused bool) { b.toggle(overrideFocus, focused) }

// SetInView starts or stops the while_in_view override.
func (b *Bridge) SetInView(inView bool) { b.toggle(overrideInView, inView) }

// Dispose stops every override, the drag hold and momentum, and
// unsubscribes from the recognizer.
func (b *Bridge) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.handle.Remove()
	b.stopMomentum()
	for k := range b.active {
		b.toggle(overrideKind(k), false)
	}
	b.engine.Stop(b.hold)
	b.engine.Stop(b.snap)
	b.hold, b.snap = nil, nil
}

func (b *Bridge) onGesture(ev GestureEvent) {
	if b.disposed {
		return
	}
	switch ev.Kind {
	case GestureHover:
		b.toggle(overrideHover, ev.Phase == PhaseStart)
	case GestureTap:
		b.toggle(overrideTap, ev.Phase == PhaseStart)
	case GestureDrag:
		if b.opts.Drag == nil {
			return
		}
		switch ev.Phase {
		case PhaseStart:
			b.startDrag(ev)
		case PhaseUpdate:
			b.moveDrag(ev)
		case PhaseEnd:
			b.moveDrag(ev)
			b.endDrag(ev, true)
		case PhaseCancel:
			b.endDrag(ev, false)
		}
	}
}

func (b *Bridge) toggle(k overrideKind, on bool) {
	if !on {
		if a := b.active[k]; a != nil {
			b.active[k] = nil
			b.engine.Stop(a)
		}
		return
	}
	target := b.opts.Overrides.target(k)
	if target.Len() == 0 {
		return
	}
	if a := b.active[k]; a != nil && a.State() != StateCancelled {
		return
	}
	b.active[k] = b.engine.StartWith(b.el, target, b.opts.Transition,
		StartOptions{Priority: overridePriority[k], Restore: true})
}

func (b *Bridge) dragProps() []string {
	switch b.opts.Drag.Axis {
	case AxisX:
		return []string{"x"}
	case AxisY:
		return []string{"y"}
	}
	return []string{"x", "y"}
}

// displayed reads the element's current translate offset.
func (b *Bridge) displayed() Vec2 {
	var p Vec2
	if v, ok := b.el.Value("x", Pixels(0)); ok {
		p.X, _ = scalarOf(v)
	}
	if v, ok := b.el.Value("y", Pixels(0)); ok {
		p.Y, _ = scalarOf(v)
	}
	return p
}

func (b *Bridge) startDrag(GestureEvent) {
	b.stopMomentum()
	b.engine.Stop(b.snap)
	b.snap = nil
	b.dragging = true
	b.toggle(overrideDrag, true)
	if b.hold == nil || b.hold.State() == StateCancelled {
		b.hold = b.engine.Hold(b.el, b.dragProps(), PriorityDrag)
	}
	b.origin = b.displayed()
	b.pos = b.origin
}

func (b *Bridge) moveDrag(ev GestureEvent) {
	if !b.dragging {
		return
	}
	cfg := *b.opts.Drag
	delta := cfg.axisMask(Vec2{X: ev.DX, Y: ev.DY})
	b.write(cfg.Clamp(b.origin.Add(delta)))
}

func (b *Bridge) dragTarget(p Vec2) *Target {
	t := NewTarget()
	for _, prop := range b.dragProps() {
		if prop == "x" {
			t.Set("x", Pixels(p.X))
		} else {
			t.Set("y", Pixels(p.Y))
		}
	}
	return t
}

func (b *Bridge) write(p Vec2) {
	b.pos = p
	b.engine.Set(b.el, b.dragTarget(p))
}

func (b *Bridge) endDrag(ev GestureEvent, released bool) {
	if !b.dragging {
		return
	}
	b.dragging = false
	b.toggle(overrideDrag, false)
	cfg := *b.opts.Drag
	if released && cfg.Momentum {
		m := NewMomentum(cfg, b.pos, Vec2{X: ev.VX, Y: ev.VY})
		m.OnUpdate(b.write)
		m.OnDone(func(Vec2) {
			b.momentum = nil
			b.finishDrag()
		})
		b.momentum = m
		b.momentumEntry = b.engine.sched.Add(m)
		return
	}
	b.finishDrag()
}

// finishDrag releases the hold and animates back inside the constraints
// if the element was left in the elastic zone. Inside a tick the release
// waits for the flush, so resumed animations start from the last drag
// write.
func (b *Bridge) finishDrag() {
	if b.engine.sched.Ticking() {
		b.engine.queue(nil, func() {
			if !b.disposed && !b.dragging {
				b.settle()
			}
		})
		return
	}
	b.settle()
}

func (b *Bridge) settle() {
	b.engine.Stop(b.hold)
	b.hold = nil
	cfg := *b.opts.Drag
	inside := cfg.Inside(b.pos)
	if inside != b.pos {
		b.snap = b.engine.Start(b.el, b.dragTarget(inside), cfg.SnapTransition)
		end := inside
		b.snap.OnComplete(func() { b.ended(end) })
		b.pos = inside
		return
	}
	b.ended(b.pos)
}

func (b *Bridge) ended(p Vec2) {
	for _, fn := range b.onDragEnd {
		fn(p)
	}
}

func (b *Bridge) stopMomentum() {
	if b.momentum == nil {
		return
	}
	b.momentum.Cancel()
	b.engine.sched.Remove(b.momentumEntry)
	b.momentum = nil
}
