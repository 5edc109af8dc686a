package kinetic

import "sort"

// --- Pointer events ---

// PointerKind is the type of a pointer event delivered by an element sink.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
	PointerEnter
	PointerLeave
	PointerLostCapture
)

var pointerKindNames = [...]string{"down", "move", "up", "cancel", "enter", "leave", "lostcapture"}

func (k PointerKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "unknown"
}

// ParsePointerKind resolves a kind by its String form.
func ParsePointerKind(s string) (PointerKind, bool) {
	for i, n := range pointerKindNames {
		if n == s {
			return PointerKind(i), true
		}
	}
	return 0, false
}

// PointerType is the device that produced a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// PointerEvent is one pointer sample in the sink's coordinate space.
// Timestamp is in monotonic milliseconds.
type PointerEvent struct {
	Kind      PointerKind
	PointerID int
	Type      PointerType
	X, Y      float64
	Pressure  float64
	Timestamp float64
}

// PointerHandler receives pointer events from a sink.
type PointerHandler func(PointerEvent)

// ListenerID identifies a registered pointer listener.
type ListenerID uint64

// ElementSink is the host capability the runtime drives. WriteStyles must
// apply the whole map as one batched write.
type ElementSink interface {
	WriteStyles(styles map[string]string)
	WriteClass(class string)
	WriteAttribute(name, value string)
	ReadBoundingRect() Rect
	AddPointerListener(kind PointerKind, h PointerHandler) ListenerID
	RemovePointerListener(kind PointerKind, id ListenerID)
}

// Disposable is an optional sink capability reporting host teardown.
type Disposable interface {
	Disposed() bool
}

// --- Element ---

// elementIDCounter assigns element ids. Single-threaded.
var elementIDCounter uint64

func nextElementID() uint64 {
	elementIDCounter++
	return elementIDCounter
}

// Element wraps a sink with a stable identity and the last rendered value
// of every property the runtime has written. Rendered values are the source
// of animation start points, so the runtime never reads styles back.
type Element struct {
	id       uint64
	sink     ElementSink
	values   map[string]Value
	tr       Transform
	disposed bool

	// baseTr remembers the last transition of each property at
	// PriorityAnimate, used when an override is released.
	baseTr map[string]Transition

	// pending holds writes batched for the engine's end-of-tick flush.
	pending *Target
}

// NewElement wraps sink. The returned element has a fresh id.
func NewElement(sink ElementSink) *Element {
	return &Element{id: nextElementID(), sink: sink, values: map[string]Value{}}
}

// ID returns the element's stable id.
func (e *Element) ID() uint64 { return e.id }

// Sink returns the wrapped sink.
func (e *Element) Sink() ElementSink { return e.sink }

// Dispose marks the element torn down. Animations on it stop at the next
// tick.
func (e *Element) Dispose() { e.disposed = true }

// Disposed reports whether the element or its sink has been torn down.
func (e *Element) Disposed() bool {
	if e.disposed || e.sink == nil {
		return true
	}
	if d, ok := e.sink.(Disposable); ok {
		return d.Disposed()
	}
	return false
}

// Transform returns the composed transform last written.
func (e *Element) Transform() Transform { return e.tr }

// Value returns the last rendered value of prop. Transform-routed
// properties are read back from the composed transform, where unset
// components read as their identity. like selects the scalar variant of
// the result when non-nil.
func (e *Element) Value(prop string, like Value) (Value, bool) {
	if RouteOf(prop) == RouteTransform {
		return transformPropValue(e.tr, prop, like)
	}
	v, ok := e.values[prop]
	return v, ok
}

// Rendered returns a snapshot of every rendered value, including transform
// components under their short names.
func (e *Element) Rendered() *Target {
	out := NewTarget()
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Set(k, e.values[k])
	}
	if e.tr.Has() {
		out.Set("transform", e.tr)
	}
	return out
}

// stage records a write for the next flush.
func (e *Element) stage(prop string, v Value) {
	if e.pending == nil {
		e.pending = NewTarget()
	}
	e.pending.Set(prop, v)
}

// flush writes the staged values to the sink as one batch and reports
// whether anything was written.
func (e *Element) flush() bool {
	if e.pending.Len() == 0 {
		return false
	}
	t := e.pending
	e.pending = nil
	if e.Disposed() {
		return false
	}
	e.apply(t)
	return true
}

// apply writes t to the sink immediately in one batch.
func (e *Element) apply(t *Target) {
	split := SplitTargetBySink(t)
	t.Each(func(prop string, v Value) {
		if RouteOf(prop) != RouteTransform {
			e.values[prop] = v
		}
	})
	styles := split.Styles
	if split.Transform.Has() {
		e.tr = e.tr.Merge(split.Transform)
		styles["transform"] = e.tr.CSS()
	}
	if len(styles) > 0 {
		e.sink.WriteStyles(styles)
	}
	if split.HasClass {
		e.sink.WriteClass(split.Class)
	}
	keys := make([]string, 0, len(split.Attributes))
	for k := range split.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.sink.WriteAttribute(k, split.Attributes[k])
	}
}

// --- Recording sink ---

// RecordingSink is an in-memory ElementSink. It records every batched
// write, keeps the merged style state and dispatches pointer events to its
// listeners via Dispatch.
type RecordingSink struct {
	Rect       Rect
	Styles     map[string]string
	Class      string
	Attributes map[string]string
	Writes     []map[string]string
	Dead       bool

	listeners map[PointerKind][]sinkListener
	nextID    ListenerID
}

type sinkListener struct {
	id ListenerID
	fn PointerHandler
}

// NewRecordingSink returns an empty recording sink with bounds r.
func NewRecordingSink(r Rect) *RecordingSink {
	return &RecordingSink{
		Rect:       r,
		Styles:     map[string]string{},
		Attributes: map[string]string{},
		listeners:  map[PointerKind][]sinkListener{},
	}
}

func (s *RecordingSink) WriteStyles(styles map[string]string) {
	batch := make(map[string]string, len(styles))
	for k, v := range styles {
		batch[k] = v
		s.Styles[k] = v
	}
	s.Writes = append(s.Writes, batch)
}

func (s *RecordingSink) WriteClass(class string) { s.Class = class }
func (s *RecordingSink) WriteAttribute(name, value string) { s.Attributes[name] = value }
func (s *RecordingSink) ReadBoundingRect() Rect { return s.Rect }
func (s *RecordingSink) Disposed() bool { return s.Dead }

func (s *RecordingSink) AddPointerListener(kind PointerKind, h PointerHandler) ListenerID {
	s.nextID++
	s.listeners[kind] = append(s.listeners[kind], sinkListener{id: s.nextID, fn: h})
	return s.nextID
}

func (s *RecordingSink) RemovePointerListener(kind PointerKind, id ListenerID) {
	ls := s.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			s.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of listeners registered for kind.
func (s *RecordingSink) Listeners(kind PointerKind) int {
	return len(s.listeners[kind])
}

// Dispatch delivers ev to the listeners registered for its kind.
func (s *RecordingSink) Dispatch(ev PointerEvent) {
	for _, l := range append([]sinkListener(nil), s.listeners[ev.Kind]...) {
		l.fn(ev)
	}
}
