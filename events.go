package kinetic

// LifecycleKind names an animation lifecycle transition.
type LifecycleKind uint8

const (
	LifecycleStarted LifecycleKind = iota
	LifecycleCompleted
	LifecycleCancelled
)

var lifecycleKindNames = [...]string{"started", "completed", "cancelled"}

func (k LifecycleKind) String() string {
	if int(k) < len(lifecycleKindNames) {
		return lifecycleKindNames[k]
	}
	return "unknown"
}

// LifecycleEvent reports an animation starting, completing or being
// cancelled.
type LifecycleEvent struct {
	Kind       LifecycleKind
	Animation  uint64
	Element    uint64
	Priority   Priority
	Properties []string
}

// EventStore receives lifecycle and gesture events, typically to forward
// them into an entity world. Calls happen synchronously on the UI thread;
// stores that need deferred delivery queue internally.
type EventStore interface {
	EmitAnimation(ev LifecycleEvent)
	EmitGesture(element uint64, ev GestureEvent)
}

// SetEventStore installs s to receive lifecycle events for animations
// started afterwards, and gesture events of elements mounted afterwards.
// nil disables delivery.
func (e *Engine) SetEventStore(s EventStore) { e.store = s }

// EventStore returns the installed store, or nil.
func (e *Engine) EventStore() EventStore { return e.store }

// announce emits the started event and marks a for the matching end event.
func (e *Engine) announce(a *Animation) {
	if e.store == nil || a.state == StateCancelled {
		return
	}
	a.announced = true
	e.emitLifecycle(LifecycleStarted, a)
	if a.completed {
		e.emitLifecycle(LifecycleCompleted, a)
	}
}

func (e *Engine) emitLifecycle(kind LifecycleKind, a *Animation) {
	if e.store == nil || !a.announced {
		return
	}
	if kind != LifecycleStarted {
		a.announced = false
	}
	e.store.EmitAnimation(LifecycleEvent{
		Kind:       kind,
		Animation:  a.id,
		Element:    a.el.id,
		Priority:   a.priority,
		Properties: a.Properties(),
	})
}
