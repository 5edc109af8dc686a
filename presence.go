package kinetic

import "github.com/google/uuid"

// PresenceMode selects how entries and exits overlap.
type PresenceMode uint8

const (
	// PresenceConcurrent runs entries and exits in parallel.
	PresenceConcurrent PresenceMode = iota
	// PresenceWait defers entries until every exit completes.
	PresenceWait
	// PresencePopLayout keeps several records per key; a new element for a
	// key enters while the older versions exit.
	PresencePopLayout
)

// PresencePhase is the lifecycle state of a keyed child.
type PresencePhase uint8

const (
	PresenceEntering PresencePhase = iota
	PresencePresent
	PresenceExiting
)

var presencePhaseNames = [...]string{"entering", "present", "exiting"}

func (p PresencePhase) String() string {
	if int(p) < len(presencePhaseNames) {
		return presencePhaseNames[p]
	}
	return "unknown"
}

// Child is one keyed child of a Presence update. Nil targets fall back to
// the PresenceOptions defaults.
type Child struct {
	Key     string
	Element *Element
	Initial *Target
	Animate *Target
	Exit    *Target
}

// PresenceOptions configures a Presence.
type PresenceOptions struct {
	Mode PresenceMode

	Initial *Target
	Animate *Target
	Exit    *Target

	Transition     Transition
	ExitTransition *Transition // nil uses Transition

	// SkipInitial mounts the children of the first Update as present
	// without running their entry.
	SkipInitial bool

	// OnRemove runs after a child's exit completes and its record leaves
	// the rendered set.
	OnRemove func(key string, el *Element)
}

// PresenceEntry is one rendered record.
type PresenceEntry struct {
	Key     string
	ID      uuid.UUID
	Phase   PresencePhase
	Element *Element
}

type presenceRecord struct {
	id       uuid.UUID
	child    Child
	phase    PresencePhase
	anim     *Animation
	deferred bool
}

// Presence keeps removed children rendered until their exit animation
// completes. Its rendered view lags the structural children by exactly the
// exiting records.
type Presence struct {
	diag

	engine  *Engine
	opts    PresenceOptions
	records []*presenceRecord
	mounted bool
}

// NewPresence returns a presence controller with no children.
func NewPresence(e *Engine, opts PresenceOptions) *Presence {
	p := &Presence{engine: e, opts: opts}
	p.logger = e.logger
	return p
}

// Mode returns the configured mode.
func (p *Presence) Mode() PresenceMode { return p.opts.Mode }

// Update reconciles the rendered records with the structural children.
func (p *Presence) Update(children []Child) {
	p.settle()
	first := !p.mounted
	p.mounted = true

	wanted := make(map[string]Child, len(children))
	for _, c := range children {
		wanted[c.Key] = c
	}

	// Exit live records whose key left, or that a new element replaces in
	// PopLayout mode.
	for _, r := range append([]*presenceRecord(nil), p.records...) {
		if r.phase == PresenceExiting {
			continue
		}
		c, ok := wanted[r.child.Key]
		switch {
		case !ok:
			p.exit(r)
		case p.opts.Mode == PresencePopLayout && c.Element != r.child.Element:
			p.exit(r)
		}
	}

	live := make([]*presenceRecord, 0, len(children))
	var entering []*presenceRecord
	for _, c := range children {
		r := p.liveRecord(c.Key)
		switch {
		case r != nil:
			if c.Element != nil {
				r.child.Element = c.Element
			}
			r.child.Initial, r.child.Animate, r.child.Exit = c.Initial, c.Animate, c.Exit
		case p.opts.Mode != PresencePopLayout && p.exitingRecord(c.Key) != nil:
			r = p.exitingRecord(c.Key)
			r.child = c
			p.revive(r)
		default:
			r = &presenceRecord{id: uuid.New(), child: c, phase: PresenceEntering}
			entering = append(entering, r)
		}
		live = append(live, r)
	}

	p.records = p.merge(live)

	for _, r := range entering {
		switch {
		case first && p.opts.SkipInitial:
			if r.child.Element != nil {
				p.engine.Set(r.child.Element, p.animateOf(r.child))
			}
			r.phase = PresencePresent
		case p.opts.Mode == PresenceWait && p.exiting() > 0:
			r.deferred = true
		default:
			p.enter(r)
		}
	}
}

// merge interleaves the exiting records into live at their last rendered
// index.
func (p *Presence) merge(live []*presenceRecord) []*presenceRecord {
	out := live
	for i, r := range p.records {
		if r.phase != PresenceExiting {
			continue
		}
		at := i
		if at > len(out) {
			at = len(out)
		}
		out = append(out, nil)
		copy(out[at+1:], out[at:])
		out[at] = r
	}
	return out
}

func (p *Presence) liveRecord(key string) *presenceRecord {
	for _, r := range p.records {
		if r.child.Key == key && r.phase != PresenceExiting {
			return r
		}
	}
	return nil
}

func (p *Presence) exitingRecord(key string) *presenceRecord {
	for _, r := range p.records {
		if r.child.Key == key && r.phase == PresenceExiting {
			return r
		}
	}
	return nil
}

func (p *Presence) exiting() int {
	n := 0
	for _, r := range p.records {
		if r.phase == PresenceExiting {
			n++
		}
	}
	return n
}

func (p *Presence) initialOf(c Child) *Target {
	if c.Initial != nil {
		return c.Initial
	}
	return p.opts.Initial
}

func (p *Presence) animateOf(c Child) *Target {
	if c.Animate != nil {
		return c.Animate
	}
	return p.opts.Animate
}

func (p *Presence) exitOf(c Child) *Target {
	if c.Exit != nil {
		return c.Exit
	}
	return p.opts.Exit
}

func (p *Presence) enter(r *presenceRecord) {
	r.deferred = false
	r.phase = PresenceEntering
	el := r.child.Element
	target := p.animateOf(r.child)
	if el == nil || el.Disposed() || target.Len() == 0 {
		if el != nil && !el.Disposed() {
			p.engine.Set(el, p.initialOf(r.child))
		}
		r.phase = PresencePresent
		return
	}
	a := p.engine.StartWith(el, target, p.opts.Transition, StartOptions{Initial: p.initialOf(r.child)})
	r.anim = a
	a.OnComplete(func() {
		if r.anim == a && r.phase == PresenceEntering {
			r.phase = PresencePresent
			r.anim = nil
		}
	})
}

// revive turns an exiting record back into an entering one.
func (p *Presence) revive(r *presenceRecord) {
	p.engine.Stop(r.anim)
	r.anim = nil
	el := r.child.Element
	target := p.animateOf(r.child)
	r.phase = PresenceEntering
	if el == nil || target.Len() == 0 {
		r.phase = PresencePresent
		return
	}
	a := p.engine.Start(el, target, p.opts.Transition)
	r.anim = a
	a.OnComplete(func() {
		if r.anim == a && r.phase == PresenceEntering {
			r.phase = PresencePresent
			r.anim = nil
		}
	})
}

func (p *Presence) exit(r *presenceRecord) {
	if r.deferred {
		// Never entered.
		r.phase = PresenceExiting
		p.remove(r)
		return
	}
	p.engine.Stop(r.anim)
	r.anim = nil
	r.phase = PresenceExiting
	el := r.child.Element
	target := p.exitOf(r.child)
	if el == nil || el.Disposed() || target.Len() == 0 {
		p.remove(r)
		return
	}
	tr := p.opts.Transition
	if p.opts.ExitTransition != nil {
		tr = *p.opts.ExitTransition
	}
	a := p.engine.Start(el, target, tr)
	r.anim = a
	a.OnComplete(func() {
		if r.anim == a && r.phase == PresenceExiting {
			p.remove(r)
		}
	})
}

// remove drops r from the rendered set and releases deferred entries once
// no exit is left.
func (p *Presence) remove(r *presenceRecord) {
	found := false
	for i, q := range p.records {
		if q == r {
			p.records = append(p.records[:i], p.records[i+1:]...)
			found = true
			break
		}
	}
	r.anim = nil
	if found && p.opts.OnRemove != nil {
		p.opts.OnRemove(r.child.Key, r.child.Element)
	}
	if p.exiting() > 0 {
		return
	}
	for _, q := range p.records {
		if q.deferred {
			p.enter(q)
		}
	}
}

// settle removes exiting records whose exit can no longer complete.
func (p *Presence) settle() {
	for _, r := range append([]*presenceRecord(nil), p.records...) {
		if r.phase != PresenceExiting || r.anim == nil {
			continue
		}
		if r.anim.State() == StateCancelled || r.child.Element.Disposed() {
			p.logWarn("exit animation cancelled; child removed", "key", r.child.Key)
			p.remove(r)
		}
	}
}

// Rendered returns the records currently in the rendered set, in order.
// Deferred entries are excluded.
func (p *Presence) Rendered() []PresenceEntry {
	p.settle()
	out := make([]PresenceEntry, 0, len(p.records))
	for _, r := range p.records {
		if r.deferred {
			continue
		}
		out = append(out, PresenceEntry{Key: r.child.Key, ID: r.id, Phase: r.phase, Element: r.child.Element})
	}
	return out
}

// Phase returns the phase of the newest rendered record for key.
func (p *Presence) Phase(key string) (PresencePhase, bool) {
	var (
		ph    PresencePhase
		found bool
	)
	for _, r := range p.records {
		if r.child.Key != key || r.deferred {
			continue
		}
		if !found || r.phase != PresenceExiting {
			ph, found = r.phase, true
		}
	}
	return ph, found
}

// Deferred returns the keys waiting for exits to finish.
func (p *Presence) Deferred() []string {
	var out []string
	for _, r := range p.records {
		if r.deferred {
			out = append(out, r.child.Key)
		}
	}
	return out
}

// Dispose stops every entry and exit animation and drops all records
// without running OnRemove.
func (p *Presence) Dispose() {
	for _, r := range p.records {
		p.engine.Stop(r.anim)
	}
	p.records = nil
}
