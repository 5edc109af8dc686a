package kinetic

import "fmt"

// EffectRunner is the host reactive capability: Effect runs fn now and
// again whenever an observable read during its last run changes, until the
// returned dispose func is called.
type EffectRunner interface {
	Effect(fn func()) (dispose func())
}

// Producer computes a target from observable values. A nil transition
// keeps the binding's default.
type Producer func() (*Target, *Transition)

// TargetProducer adapts a target-only closure.
func TargetProducer(fn func() *Target) Producer {
	return func() (*Target, *Transition) { return fn(), nil }
}

// BindOptions tunes Bind.
type BindOptions struct {
	// Transition is used when the producer returns none.
	Transition Transition
	// Initial is applied before the first target.
	Initial *Target
	// Priority of the started animations.
	Priority Priority
}

// Binding keeps an element animating toward the latest target of its
// producer. Only changed properties restart.
type Binding struct {
	diag

	engine   *Engine
	el       *Element
	produce  Producer
	opts     BindOptions
	last     *Target
	owned    []*Animation
	mounted  bool
	disposed bool
	dispose  func()
	starts   int
}

// Bind evaluates produce inside an effect of runner and animates el toward
// each new target. A nil runner evaluates once at mount.
func Bind(e *Engine, el *Element, produce Producer, runner EffectRunner, opts BindOptions) *Binding {
	b := &Binding{engine: e, el: el, produce: produce, opts: opts}
	b.logger = e.logger
	if runner == nil {
		b.evaluate()
		return b
	}
	b.dispose = runner.Effect(b.evaluate)
	return b
}

// Target returns the last target applied.
func (b *Binding) Target() *Target { return b.last }

// Starts returns how many animations the binding has started.
func (b *Binding) Starts() int { return b.starts }

// Animations returns the owned animations still active.
func (b *Binding) Animations() []*Animation {
	b.prune()
	return append([]*Animation(nil), b.owned...)
}

// Refresh re-evaluates the producer, for hosts without change
// notifications.
func (b *Binding) Refresh() { b.evaluate() }

// Dispose stops the effect and every owned animation.
func (b *Binding) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	if b.dispose != nil {
		b.dispose()
	}
	for _, a := range b.owned {
		b.engine.Stop(a)
	}
	b.owned = nil
}

func (b *Binding) evaluate() {
	if b.disposed {
		return
	}
	next, tr, ok := b.call()
	if !ok {
		return
	}
	if next == b.last {
		return
	}
	changed := b.last.Changed(next)
	first := !b.mounted
	b.mounted = true
	if len(changed) == 0 {
		b.last = next
		return
	}
	t := b.opts.Transition
	if tr != nil {
		t = *tr
	}
	opts := StartOptions{Priority: b.opts.Priority}
	if first {
		opts.Initial = b.opts.Initial
	}
	a := b.engine.StartWith(b.el, next.Only(changed), t, opts)
	b.starts++
	b.prune()
	b.owned = append(b.owned, a)
	b.last = next
}

// call runs the producer, keeping the previous target when it panics.
func (b *Binding) call() (t *Target, tr *Transition, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logWarn("target producer panicked; keeping previous target",
				"element", b.el.id, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	t, tr = b.produce()
	return t, tr, true
}

func (b *Binding) prune() {
	kept := b.owned[:0]
	for _, a := range b.owned {
		if b.engine.IsActive(a) {
			kept = append(kept, a)
		}
	}
	b.owned = kept
}
