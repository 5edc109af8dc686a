package kinetic

import (
	"fmt"
	"math"
)

// AnimationState is the lifecycle state of an animation.
type AnimationState uint8

const (
	StateIdle AnimationState = iota
	StateDelayed
	StateRunning
	StatePaused
	StateCompleted
	StateCancelled
)

var animationStateNames = [...]string{"idle", "delayed", "running", "paused", "completed", "cancelled"}

func (s AnimationState) String() string {
	if int(s) < len(animationStateNames) {
		return animationStateNames[s]
	}
	return "unknown"
}

// StartOptions tunes Engine.StartWith.
type StartOptions struct {
	// Initial is written immediately and used as the start value of the
	// matching properties.
	Initial *Target
	// Priority orders competing animations on the same property.
	Priority Priority
	// Restore makes a preempting override remember the displayed value of
	// properties nothing else animates, so releasing the override animates
	// back to it.
	Restore bool
}

// slotKey names one written component of an element. Transform aliases
// share the component's slot.
type slotKey struct {
	el   uint64
	prop string
}

// slotNames returns the slots prop writes: "scale" owns scaleX and scaleY,
// "transform" owns every component, and x and translateX share one.
func slotNames(prop string) []string {
	if prop == "transform" {
		names := make([]string, numTransformComponents)
		for c := TransformComponent(0); c < numTransformComponents; c++ {
			names[c] = c.String()
		}
		return names
	}
	if comps, ok := transformProps[prop]; ok {
		names := make([]string, len(comps))
		for i, c := range comps {
			names[i] = c.String()
		}
		return names
	}
	return []string{prop}
}

func slotKeys(el uint64, prop string) []slotKey {
	names := slotNames(prop)
	keys := make([]slotKey, len(names))
	for i, n := range names {
		keys[i] = slotKey{el, n}
	}
	return keys
}

// slot tracks who owns one (element, property). stack holds suspended
// animations in ascending priority order.
type slot struct {
	active *propAnim
	stack  []*propAnim
}

// Engine owns every animation and is the single writer of animated values.
// It is confined to the host UI thread.
type Engine struct {
	diag

	// Debug logs per-tick stats at debug level.
	Debug bool

	sched   *Scheduler
	nextID  uint64
	active  map[*Animation]struct{}
	slots   map[slotKey]*slot
	dirty   []*Element
	queued  []queuedCallback
	interps map[string]ComplexInterpolator
	stats   debugStats
	unhook  func()
	store   EventStore
}

type queuedCallback struct {
	a  *Animation
	fn func()
}

// NewEngine returns an engine ticking on s.
func NewEngine(s *Scheduler) *Engine {
	e := &Engine{
		sched:   s,
		active:  map[*Animation]struct{}{},
		slots:   map[slotKey]*slot{},
		interps: map[string]ComplexInterpolator{},
	}
	e.unhook = s.AfterTick(e.flush)
	return e
}

// Close stops every animation and detaches the engine from its scheduler.
func (e *Engine) Close() {
	for len(e.active) > 0 {
		for a := range e.active {
			e.Stop(a)
			break
		}
	}
	for len(e.slots) > 0 {
		for k, s := range e.slots {
			if s.active != nil && s.active.rec.state != StateCancelled {
				e.Stop(s.active.rec)
			} else {
				delete(e.slots, k)
			}
			break
		}
	}
	e.unhook()
}

// Scheduler returns the engine's scheduler.
func (e *Engine) Scheduler() *Scheduler { return e.sched }

// RegisterInterpolator installs fn for Complex values of kind.
func (e *Engine) RegisterInterpolator(kind string, fn ComplexInterpolator) {
	if fn == nil {
		delete(e.interps, kind)
		return
	}
	e.interps[kind] = fn
}

// Interpolate is Interpolate with the engine's Complex interpolators.
func (e *Engine) Interpolate(from, to Value, t float64) Value {
	return interpolate(e.interps, from, to, t)
}

// ActiveCount returns the number of animations that have neither completed
// nor been cancelled. Restore placeholders waiting behind an override are
// not counted until they resume.
func (e *Engine) ActiveCount() int { return len(e.active) }

// Owner returns the animation currently allowed to write prop on el. For
// an alias covering several components, such as "scale", it is the
// highest priority owner among them.
func (e *Engine) Owner(el *Element, prop string) *Animation {
	var owner *Animation
	for _, k := range slotKeys(el.id, prop) {
		s := e.slots[k]
		if s == nil || s.active == nil {
			continue
		}
		if owner == nil || s.active.rec.priority > owner.priority {
			owner = s.active.rec
		}
	}
	return owner
}

// Start animates el toward target at PriorityAnimate.
func (e *Engine) Start(el *Element, target *Target, tr Transition) *Animation {
	return e.StartWith(el, target, tr, StartOptions{})
}

// StartWith animates el toward target. Each property preempts a running
// animation of lower priority (which is suspended), replaces one of equal
// priority, and is itself suspended behind one of higher priority. Start
// values are the element's rendered values unless opts.Initial names them.
func (e *Engine) StartWith(el *Element, target *Target, tr Transition, opts StartOptions) *Animation {
	a := e.newAnimation(el, opts.Priority)
	if el.Disposed() {
		e.logWarn("start on disposed element", "element", el.id)
		a.state = StateCancelled
		return a
	}
	if opts.Initial.Len() > 0 {
		e.Set(el, opts.Initial)
	}
	target.Each(func(prop string, to Value) {
		ptr := tr.For(prop).resolved()
		if el.baseTr == nil {
			el.baseTr = map[string]Transition{}
		}
		if opts.Priority == PriorityAnimate {
			el.baseTr[prop] = ptr
		}
		from, ok := opts.Initial.Get(prop)
		if ok {
			from = coerce(from, to)
		} else {
			from = e.sampleFrom(el, prop, to)
		}
		pa := newPropAnim(a, prop, from, to, ptr)
		a.props = append(a.props, pa)
		e.claim(pa, opts.Restore)
	})
	e.schedule(a)
	e.announce(a)
	return a
}

// StartKeyframes plays a keyframe timeline on el over tr.Duration. Tracks
// with a single stop tween from the rendered value with tr's easing;
// longer tracks use linear timeline progress and per-segment easing.
func (e *Engine) StartKeyframes(el *Element, kfs Keyframes, tr Transition, opts StartOptions) *Animation {
	kfs = kfs.Normalized()
	a := e.newAnimation(el, opts.Priority)
	if el.Disposed() {
		e.logWarn("start on disposed element", "element", el.id)
		a.state = StateCancelled
		return a
	}
	tracks := kfs.tracks()
	for _, prop := range kfs.Properties() {
		track := tracks[prop]
		ptr := tr.For(prop).resolved()
		to := track.values[len(track.values)-1]
		var pa *propAnim
		if len(track.times) == 1 {
			pa = newPropAnim(a, prop, e.sampleFrom(el, prop, to), to, ptr)
		} else {
			pa = newPropAnim(a, prop, track.values[0], to, ptr)
			pa.track = track
			pa.spring = nil
		}
		a.props = append(a.props, pa)
		e.claim(pa, opts.Restore)
	}
	e.schedule(a)
	e.announce(a)
	return a
}

// Hold claims props on el at priority p without animating them, so lower
// priority animations are suspended while the caller writes the
// properties with Set. Stop the returned animation to release.
func (e *Engine) Hold(el *Element, props []string, p Priority) *Animation {
	a := e.newAnimation(el, p)
	a.hold = true
	for _, prop := range props {
		cur := e.sampleFrom(el, prop, nil)
		pa := newPropAnim(a, prop, cur, cur, Transition{Duration: Instant}.resolved())
		pa.done = true
		pa.static = true
		a.props = append(a.props, pa)
		e.claim(pa, false)
	}
	a.state = StateCompleted
	delete(e.active, a)
	return a
}

// Set writes target to el without animating. Inside a tick the write joins
// the element's batch; otherwise it is applied immediately.
func (e *Engine) Set(el *Element, target *Target) {
	if target.Len() == 0 {
		return
	}
	if el.Disposed() {
		e.logWarn("set on disposed element", "element", el.id)
		return
	}
	if e.sched.Ticking() {
		target.Each(func(p string, v Value) { e.stage(el, p, v) })
		return
	}
	el.apply(target)
}

// Stop cancels a. Rendered values are left where they are; suspended lower
// priority animations on the same properties resume. No further callbacks
// fire.
func (e *Engine) Stop(a *Animation) {
	if a == nil || a.state == StateCancelled {
		return
	}
	for _, pa := range a.props {
		if pa.cancelled {
			continue
		}
		pa.cancelled = true
		e.release(pa)
	}
	a.state = StateCancelled
	e.unschedule(a)
	delete(e.active, a)
	e.emitLifecycle(LifecycleCancelled, a)
}

// StopElement stops every animation touching el.
func (e *Engine) StopElement(el *Element) {
	var owned []*Animation
	seen := map[*Animation]bool{}
	for k, s := range e.slots {
		if k.el != el.id {
			continue
		}
		for _, pa := range append([]*propAnim{s.active}, s.stack...) {
			if pa != nil && !seen[pa.rec] {
				seen[pa.rec] = true
				owned = append(owned, pa.rec)
			}
		}
	}
	for a := range e.active {
		if a.el == el && !seen[a] {
			seen[a] = true
			owned = append(owned, a)
		}
	}
	for _, a := range owned {
		e.Stop(a)
	}
}

// Pause freezes a's elapsed time. Springs stop sub-stepping.
func (e *Engine) Pause(a *Animation) {
	if a == nil || a.paused || a.state == StateCancelled || a.state == StateCompleted {
		return
	}
	a.paused = true
	e.unschedule(a)
}

// Resume continues a paused animation.
func (e *Engine) Resume(a *Animation) {
	if a == nil || !a.paused {
		return
	}
	a.paused = false
	e.schedule(a)
}

// IsActive reports whether a has neither completed nor been cancelled.
func (e *Engine) IsActive(a *Animation) bool {
	if a == nil {
		return false
	}
	_, ok := e.active[a]
	return ok
}

// Progress returns the least progress over a's properties in [0, 1].
func (e *Engine) Progress(a *Animation) float64 {
	if a == nil {
		return 0
	}
	if a.state == StateCompleted {
		return 1
	}
	p := 1.0
	for _, pa := range a.props {
		if pa.cancelled && a.state != StateCancelled {
			continue
		}
		p = math.Min(p, pa.progress())
	}
	return p
}

// SetOnComplete registers fn to run once when a completes. It runs after
// the tick's writes.
func (e *Engine) SetOnComplete(a *Animation, fn func()) {
	a.onComplete = append(a.onComplete, fn)
}

// SetOnUpdate registers fn to run after every tick that wrote values for
// a. The target holds the values written.
func (e *Engine) SetOnUpdate(a *Animation, fn func(values *Target)) {
	a.onUpdate = append(a.onUpdate, fn)
}

// Seek moves a to timeline progress t in [0, 1] and writes the sampled
// values without ticking. Seeking to the same t twice writes the same
// values. Seeking a completed animation before its end reclaims its
// properties and leaves it paused; seeking it to 1 does nothing.
func (e *Engine) Seek(a *Animation, t float64) {
	if a == nil || a.state == StateCancelled {
		return
	}
	t = clamp01(t)
	if t < 1 && !a.hold {
		e.rearm(a)
	}
	vals := NewTarget()
	for _, pa := range a.props {
		if pa.cancelled || pa.suspended || (pa.done && !a.hold) {
			continue
		}
		vals.Set(pa.prop, pa.seek(t))
	}
	e.Set(a.el, vals)
}

// rearm reclaims the slots of a's finished properties so a scrubbed-back
// animation is their writer again. A completed animation comes back
// paused; Resume plays it from the seek position.
func (e *Engine) rearm(a *Animation) {
	rearmed := false
	for _, pa := range a.props {
		if !pa.done || pa.cancelled {
			continue
		}
		pa.done = false
		e.claim(pa, false)
		rearmed = true
	}
	if !rearmed || a.state != StateCompleted {
		return
	}
	a.state = StateRunning
	a.completed = false
	a.paused = true
	e.active[a] = struct{}{}
	e.announce(a)
}

// --- internals ---

func (e *Engine) newAnimation(el *Element, p Priority) *Animation {
	e.nextID++
	a := &Animation{e: e, id: e.nextID, el: el, priority: p, hold: p > PriorityAnimate}
	e.active[a] = struct{}{}
	return a
}

func (e *Engine) schedule(a *Animation) {
	if a.scheduled || a.paused || a.state == StateCancelled {
		return
	}
	a.scheduled = true
	a.entry = e.sched.Add(a)
}

func (e *Engine) unschedule(a *Animation) {
	if !a.scheduled {
		return
	}
	a.scheduled = false
	e.sched.Remove(a.entry)
}

// sampleFrom returns the displayed value of prop coerced to to's variant.
// Unknown opacity reads as 1; any other unknown property starts at to.
func (e *Engine) sampleFrom(el *Element, prop string, to Value) Value {
	cur, ok := el.Value(prop, to)
	if !ok {
		if prop != "opacity" {
			return to
		}
		cur = Number(1)
	}
	if to == nil {
		return cur
	}
	return coerce(cur, to)
}

// coerce converts scalar cur into like's unit variant. Angles convert
// between degrees and radians; other scalars keep their number.
func coerce(cur, like Value) Value {
	if Compatible(cur, like) {
		return cur
	}
	f, ok := scalarOf(cur)
	if !ok {
		return cur
	}
	if _, ok := scalarOf(like); !ok {
		return cur
	}
	switch cur.(type) {
	case Degrees:
		if _, ok := like.(Radians); ok {
			return Radians(f * math.Pi / 180)
		}
	case Radians:
		if _, ok := like.(Degrees); ok {
			return Degrees(f * 180 / math.Pi)
		}
	}
	return withScalar(like, f)
}

// claim installs pa in each of its slots per the priority rules. pa is
// suspended while any of its slots is owned by a higher priority.
func (e *Engine) claim(pa *propAnim, restore bool) {
	p := pa.rec.priority
	var rest *Animation
	for _, key := range pa.keys {
		s := e.slots[key]
		if s == nil {
			s = &slot{}
			e.slots[key] = s
		}
		var dropped []*propAnim
		kept := s.stack[:0]
		for _, q := range s.stack {
			if q.rec.priority == p && q != pa {
				dropped = append(dropped, q)
				continue
			}
			kept = append(kept, q)
		}
		s.stack = kept

		switch {
		case s.active == pa:
		case s.active == nil:
			if restore && p > PriorityAnimate && len(s.stack) == 0 {
				rest = e.pushRest(rest, s, key, pa)
			}
			s.active = pa
		case s.active.rec.priority == p:
			dropped = append(dropped, s.active)
			s.active = pa
		case s.active.rec.priority < p:
			s.active.block()
			s.push(s.active)
			s.active = pa
		default:
			pa.block()
			s.push(pa)
		}
		for _, q := range dropped {
			e.drop(q)
		}
	}
}

// pushRest suspends a priority-0 animation of key's component back to its
// displayed value, so releasing pa returns the element to it. Rest
// properties for one claim share rest, created on first use.
func (e *Engine) pushRest(rest *Animation, s *slot, key slotKey, pa *propAnim) *Animation {
	el := pa.rec.el
	like := pa.to
	if key.prop != pa.prop {
		like = nil
	}
	cur := e.sampleFrom(el, key.prop, like)
	tr, ok := el.baseTr[key.prop]
	if !ok {
		tr, ok = el.baseTr[pa.prop]
	}
	if !ok {
		tr = pa.tr
		tr.Repeat = Never
		tr.Delay = 0
	}
	if rest == nil {
		rest = e.newAnimation(el, PriorityAnimate)
		delete(e.active, rest)
	}
	rp := newPropAnim(rest, key.prop, cur, cur, tr)
	rp.keys = []slotKey{key}
	rp.block()
	rest.props = append(rest.props, rp)
	s.push(rp)
	return rest
}

func (s *slot) push(pa *propAnim) {
	i := len(s.stack)
	for i > 0 && s.stack[i-1].rec.priority > pa.rec.priority {
		i--
	}
	s.stack = append(s.stack, nil)
	copy(s.stack[i+1:], s.stack[i:])
	s.stack[i] = pa
}

// drop cancels a replaced property animation and frees its other slots.
func (e *Engine) drop(pa *propAnim) {
	if pa.cancelled {
		return
	}
	pa.cancelled = true
	e.release(pa)
	pa.rec.propEnded()
}

// release frees pa's slots and resumes the highest suspended animation of
// each. A resumed animation starts once none of its slots is held above it.
func (e *Engine) release(pa *propAnim) {
	for _, key := range pa.keys {
		s := e.slots[key]
		if s == nil {
			continue
		}
		if s.active == pa {
			s.active = nil
			if n := len(s.stack); n > 0 {
				top := s.stack[n-1]
				s.stack = s.stack[:n-1]
				s.active = top
				if top.unblock() {
					e.resumeProp(top)
				}
			}
		} else {
			for i, q := range s.stack {
				if q == pa {
					s.stack = append(s.stack[:i], s.stack[i+1:]...)
					pa.unblock()
					break
				}
			}
		}
		if s.active == nil && len(s.stack) == 0 {
			delete(e.slots, key)
		}
	}
}

// resumeProp restarts a suspended property animation from the displayed
// value toward its target, without delay.
func (e *Engine) resumeProp(pa *propAnim) {
	if pa.static {
		return
	}
	pa.done = false
	pa.from = e.sampleFrom(pa.rec.el, pa.prop, pa.to)
	pa.restart()
	a := pa.rec
	e.stats.suspendedResumed++
	if a.state == StateCompleted {
		a.state = StateRunning
	}
	if _, ok := e.active[a]; !ok && !a.hold && a.state != StateCancelled {
		e.active[a] = struct{}{}
	}
	e.schedule(a)
}

func (e *Engine) stage(el *Element, prop string, v Value) {
	if el.pending.Len() == 0 {
		e.dirty = append(e.dirty, el)
	}
	el.stage(prop, v)
}

func (e *Engine) queue(a *Animation, fn func()) {
	e.queued = append(e.queued, queuedCallback{a: a, fn: fn})
}

// flush writes every dirty element once, then runs queued callbacks.
func (e *Engine) flush(float64) {
	for _, el := range e.dirty {
		if el.flush() {
			e.stats.elementsFlushed++
		}
	}
	e.dirty = e.dirty[:0]
	// Callbacks may start animations and queue more; those run next tick.
	cbs := e.queued
	e.queued = nil
	for _, cb := range cbs {
		if cb.a != nil && cb.a.state == StateCancelled {
			continue
		}
		e.runCallback(cb)
		e.stats.callbacksFired++
	}
	e.debugLog(e.stats)
	e.stats = debugStats{}
}

func (e *Engine) runCallback(cb queuedCallback) {
	defer func() {
		if r := recover(); r != nil {
			if cb.a == nil {
				e.logError("callback panicked", "panic", fmt.Sprint(r))
				return
			}
			e.logError("animation callback panicked; cancelled", "handle", cb.a.id, "panic", fmt.Sprint(r))
			e.Stop(cb.a)
		}
	}()
	cb.fn()
}

// --- Animation ---

// Animation is the handle of one started animation. Ids are assigned
// monotonically per engine.
type Animation struct {
	e        *Engine
	id       uint64
	el       *Element
	props    []*propAnim
	priority Priority
	hold     bool

	state     AnimationState
	paused    bool
	scheduled bool
	entry     EntryID
	completed bool
	announced bool

	onComplete []func()
	onUpdate   []func(*Target)
}

// ID returns the handle id.
func (a *Animation) ID() uint64 { return a.id }

// Element returns the animated element.
func (a *Animation) Element() *Element { return a.el }

// Priority returns the animation's override priority.
func (a *Animation) Priority() Priority { return a.priority }

// Properties returns the animated property names.
func (a *Animation) Properties() []string {
	out := make([]string, 0, len(a.props))
	for _, pa := range a.props {
		out = append(out, pa.prop)
	}
	return out
}

// State returns the lifecycle state.
func (a *Animation) State() AnimationState {
	switch {
	case a.state == StateCancelled, a.state == StateCompleted:
		return a.state
	case a.paused:
		return StatePaused
	}
	anyRunning, anyLive := false, false
	for _, pa := range a.props {
		if pa.cancelled || pa.done || pa.suspended {
			continue
		}
		anyLive = true
		if pa.elapsed-pa.delay >= 0 && pa.started {
			anyRunning = true
		}
	}
	switch {
	case anyRunning:
		return StateRunning
	case anyLive && a.state != StateIdle:
		return StateDelayed
	}
	return a.state
}

func (a *Animation) Stop() { a.e.Stop(a) }
func (a *Animation) Pause() { a.e.Pause(a) }
func (a *Animation) Resume() { a.e.Resume(a) }
func (a *Animation) IsActive() bool { return a.e.IsActive(a) }
func (a *Animation) Progress() float64 { return a.e.Progress(a) }
func (a *Animation) Seek(t float64) { a.e.Seek(a, t) }
func (a *Animation) OnComplete(fn func()) { a.e.SetOnComplete(a, fn) }
func (a *Animation) OnUpdate(fn func(values *Target)) { a.e.SetOnUpdate(a, fn) }

// Cancel is called by the scheduler when Advance panics.
func (a *Animation) Cancel() { a.e.Stop(a) }

// Advance ticks every running property and stages the values on the
// element. It reports false once nothing is left to tick.
func (a *Animation) Advance(_, dt float64) bool {
	e := a.e
	if a.state == StateCancelled || a.paused {
		a.scheduled = false
		return false
	}
	if a.el.Disposed() {
		e.logWarn("element disposed; animation stopped", "handle", a.id, "element", a.el.id)
		a.scheduled = false
		e.Stop(a)
		return false
	}
	if a.state == StateIdle {
		a.state = StateRunning
	}
	e.stats.recordsAdvanced++
	var updated *Target
	running, suspended := 0, 0
	for _, pa := range a.props {
		switch {
		case pa.cancelled, pa.done:
			continue
		case pa.suspended:
			suspended++
			continue
		}
		v, finished := pa.step(e.interps, dt)
		if v != nil {
			e.stage(a.el, pa.prop, v)
			if updated == nil {
				updated = NewTarget()
			}
			updated.Set(pa.prop, v)
		}
		if finished {
			pa.done = true
			if !a.hold {
				e.release(pa)
			}
			continue
		}
		running++
	}
	if updated != nil && len(a.onUpdate) > 0 {
		for _, fn := range a.onUpdate {
			fn := fn
			e.queue(a, func() { fn(updated) })
		}
	}
	if running > 0 {
		return true
	}
	a.scheduled = false
	if suspended == 0 {
		a.complete()
	}
	return false
}

// propEnded is called when a property is dropped by a replacement.
func (a *Animation) propEnded() {
	if a.state == StateCancelled {
		return
	}
	done := false
	for _, pa := range a.props {
		if !pa.cancelled && !pa.done {
			return
		}
		if pa.done && !pa.cancelled {
			done = true
		}
	}
	if done {
		a.complete()
		a.e.unschedule(a)
		return
	}
	a.state = StateCancelled
	a.e.unschedule(a)
	delete(a.e.active, a)
	a.e.emitLifecycle(LifecycleCancelled, a)
}

func (a *Animation) complete() {
	e := a.e
	a.state = StateCompleted
	delete(e.active, a)
	e.stats.recordsFinished++
	if a.completed {
		return
	}
	a.completed = true
	for _, fn := range a.onComplete {
		e.queue(a, fn)
	}
	e.emitLifecycle(LifecycleCompleted, a)
}

// --- per-property interpolator ---

type propAnim struct {
	rec   *Animation
	prop  string
	from  Value
	to    Value
	tr    Transition
	delay float64
	dur   float64

	track  *keyframeTrack
	spring *SpringIntegrator
	sp     *SpringEasing

	keys []slotKey

	elapsed   float64
	iteration int
	reversed  bool
	started   bool

	done      bool
	suspended bool
	blocked   int // slots where a higher priority holds pa back
	cancelled bool
	static    bool // Hold placeholder; never ticks
}

func (pa *propAnim) block() {
	pa.blocked++
	pa.suspended = true
}

// unblock reports whether pa is free to run again.
func (pa *propAnim) unblock() bool {
	if pa.blocked > 0 {
		pa.blocked--
	}
	pa.suspended = pa.blocked > 0
	return !pa.suspended
}

func newPropAnim(a *Animation, prop string, from, to Value, tr Transition) *propAnim {
	pa := &propAnim{
		rec:   a,
		prop:  prop,
		from:  from,
		to:    to,
		tr:    tr,
		delay: seconds(tr.Delay),
		dur:   seconds(tr.Duration),
		keys:  slotKeys(a.el.id, prop),
	}
	if s, ok := tr.Easing.(SpringEasing); ok {
		pa.sp = &s
		pa.spring = NewSpringIntegrator(s.Config, 0, 1)
	}
	return pa
}

// restart rewinds to the start of the current iteration, skipping delay.
func (pa *propAnim) restart() {
	pa.elapsed = pa.delay
	if pa.sp != nil && pa.track == nil {
		pa.spring = NewSpringIntegrator(pa.sp.Config, 0, 1)
	}
}

func (pa *propAnim) step(reg map[string]ComplexInterpolator, dt float64) (Value, bool) {
	pa.started = true
	pa.elapsed += dt
	local := pa.elapsed - pa.delay
	if local < 0 {
		return nil, false
	}
	var raw, eased float64
	end := false
	if pa.spring != nil && pa.track == nil {
		x, rest := pa.spring.Step(math.Min(dt, local))
		raw, eased, end = clamp01(x), x, rest
	} else {
		raw = 1
		if pa.dur > 0 {
			raw = local / pa.dur
		}
		if raw >= 1 {
			raw, end = 1, true
		}
		eased = pa.tr.Easing.Ease(raw)
	}
	v := pa.sample(reg, raw, eased)
	if !end {
		return v, false
	}
	if !pa.tr.Repeat.allows(pa.iteration) {
		return v, true
	}
	pa.iteration++
	overflow := 0.0
	if pa.spring == nil && pa.dur > 0 {
		overflow = math.Max(0, local-pa.dur)
		overflow = math.Mod(overflow, pa.dur)
	}
	if pa.tr.Repeat.Kind == RepeatInfinitePingPong {
		pa.reversed = !pa.reversed
	}
	pa.restart()
	pa.elapsed += overflow
	return v, false
}

func (pa *propAnim) sample(reg map[string]ComplexInterpolator, raw, eased float64) Value {
	if pa.track != nil {
		if pa.reversed {
			raw = 1 - raw
		}
		return pa.track.sample(reg, raw)
	}
	from, to := pa.from, pa.to
	if pa.reversed {
		from, to = to, from
	}
	return interpolate(reg, from, to, eased)
}

// seek positions the interpolator at progress t of the current iteration
// and returns the value there.
func (pa *propAnim) seek(t float64) Value {
	reg := pa.rec.e.interps
	pa.started = true
	if pa.sp != nil && pa.track == nil {
		est := pa.sp.Config.EstimateDuration()
		pa.spring = NewSpringIntegrator(pa.sp.Config, 0, 1)
		x, _ := pa.spring.Step(t * est)
		pa.elapsed = pa.delay + t*est
		if t >= 1 {
			x = 1
		}
		return pa.sample(reg, clamp01(x), x)
	}
	pa.elapsed = pa.delay + t*pa.dur
	return pa.sample(reg, t, pa.tr.Easing.Ease(t))
}

func (pa *propAnim) progress() float64 {
	if pa.done {
		return 1
	}
	local := pa.elapsed - pa.delay
	if local <= 0 {
		return 0
	}
	if pa.spring != nil && pa.track == nil {
		return math.Min(clamp01(pa.spring.Position()), 0.999)
	}
	if pa.dur <= 0 {
		return 1
	}
	return clamp01(local / pa.dur)
}
