// Package signal is a small single-threaded signal/effect runtime. It
// implements the observable capability kinetic bindings consume: reads
// inside an effect subscribe it, and writes re-run subscribed effects
// synchronously.
package signal

// Runtime tracks the running effect and deferred notifications.
type Runtime struct {
	current *effect
	batch   int
	queue   []*effect
}

// NewRuntime returns an empty runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

type source interface {
	unsubscribe(e *effect)
}

type effect struct {
	rt       *Runtime
	fn       func()
	deps     []source
	running  bool
	dirty    bool
	disposed bool
	queued   bool
}

// Effect runs fn immediately and again whenever a signal it read changes.
// The returned func disposes the effect.
func (rt *Runtime) Effect(fn func()) (dispose func()) {
	e := &effect{rt: rt, fn: fn}
	e.run()
	return e.dispose
}

// Batch defers effect re-runs until fn returns. Each effect runs at most
// once per batch.
func (rt *Runtime) Batch(fn func()) {
	rt.batch++
	defer func() {
		rt.batch--
		if rt.batch == 0 {
			rt.drain()
		}
	}()
	fn()
}

// Untracked runs fn without subscribing the current effect.
func (rt *Runtime) Untracked(fn func()) {
	prev := rt.current
	rt.current = nil
	defer func() { rt.current = prev }()
	fn()
}

func (rt *Runtime) notify(e *effect) {
	if rt.batch > 0 {
		if !e.queued {
			e.queued = true
			rt.queue = append(rt.queue, e)
		}
		return
	}
	e.run()
}

func (rt *Runtime) drain() {
	for len(rt.queue) > 0 {
		q := rt.queue
		rt.queue = nil
		for _, e := range q {
			e.queued = false
			e.run()
		}
	}
}

func (e *effect) run() {
	if e.disposed {
		return
	}
	if e.running {
		e.dirty = true
		return
	}
	for {
		e.clear()
		prev := e.rt.current
		e.rt.current = e
		e.running = true
		func() {
			defer func() {
				e.running = false
				e.rt.current = prev
			}()
			e.fn()
		}()
		if !e.dirty || e.disposed {
			return
		}
		e.dirty = false
	}
}

func (e *effect) clear() {
	for _, d := range e.deps {
		d.unsubscribe(e)
	}
	e.deps = e.deps[:0]
}

func (e *effect) dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.clear()
}

// Signal is an observable value.
type Signal[T comparable] struct {
	rt    *Runtime
	value T
	subs  []*effect
}

// New returns a signal holding v.
func New[T comparable](rt *Runtime, v T) *Signal[T] {
	return &Signal[T]{rt: rt, value: v}
}

// Get returns the value and subscribes the running effect.
func (s *Signal[T]) Get() T {
	if e := s.rt.current; e != nil && !e.disposed {
		s.track(e)
	}
	return s.value
}

// Peek returns the value without subscribing.
func (s *Signal[T]) Peek() T { return s.value }

// Set stores v and re-runs subscribed effects when it differs from the
// current value.
func (s *Signal[T]) Set(v T) {
	if v == s.value {
		return
	}
	s.value = v
	subs := append([]*effect(nil), s.subs...)
	for _, e := range subs {
		s.rt.notify(e)
	}
}

// Update sets the result of fn applied to the current value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Subscribers returns the number of subscribed effects.
func (s *Signal[T]) Subscribers() int { return len(s.subs) }

func (s *Signal[T]) track(e *effect) {
	for _, sub := range s.subs {
		if sub == e {
			return
		}
	}
	s.subs = append(s.subs, e)
	e.deps = append(e.deps, s)
}

func (s *Signal[T]) unsubscribe(e *effect) {
	for i, sub := range s.subs {
		if sub == e {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Memo is a derived value recomputed when its inputs change.
type Memo[T comparable] struct {
	sig     *Signal[T]
	dispose func()
}

// NewMemo computes fn inside an effect and exposes the result as a signal.
func NewMemo[T comparable](rt *Runtime, fn func() T) *Memo[T] {
	m := &Memo[T]{}
	m.dispose = rt.Effect(func() {
		v := fn()
		if m.sig == nil {
			m.sig = New(rt, v)
			return
		}
		m.sig.Set(v)
	})
	return m
}

// Get returns the memoized value, subscribing the running effect.
func (m *Memo[T]) Get() T { return m.sig.Get() }

// Dispose stops recomputation.
func (m *Memo[T]) Dispose() { m.dispose() }
