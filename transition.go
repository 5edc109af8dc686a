package kinetic

import (
	"strconv"
	"strings"
	"time"
)

// RepeatKind selects a repeat policy.
type RepeatKind uint8

const (
	RepeatNever RepeatKind = iota
	RepeatCount
	RepeatInfinite
	RepeatInfinitePingPong
)

// Repeat is a repeat policy. Count is the number of extra plays for
// RepeatCount.
type Repeat struct {
	Kind  RepeatKind
	Count int
}

var (
	// Never plays once.
	Never = Repeat{}
	// Infinite restarts from the start value forever.
	Infinite = Repeat{Kind: RepeatInfinite}
	// InfinitePingPong alternates direction forever.
	InfinitePingPong = Repeat{Kind: RepeatInfinitePingPong}
)

// Count plays an animation n extra times.
func Count(n int) Repeat {
	if n <= 0 {
		return Never
	}
	return Repeat{Kind: RepeatCount, Count: n}
}

// allows reports whether another iteration follows iteration i (0-based).
func (r Repeat) allows(i int) bool {
	switch r.Kind {
	case RepeatCount:
		return i < r.Count
	case RepeatInfinite, RepeatInfinitePingPong:
		return true
	}
	return false
}

// Transition describes how values move toward a target. Zero Duration
// selects DefaultDuration; negative durations clamp to zero. A nil Easing
// selects EaseInOut. Properties holds per-property overrides whose zero
// Duration and nil Easing inherit from the parent.
type Transition struct {
	Duration   time.Duration
	Delay      time.Duration
	Easing     Easing
	Repeat     Repeat
	Stagger    *StaggerConfig
	Properties map[string]Transition
}

// For returns the transition used for prop.
func (t Transition) For(prop string) Transition {
	o, ok := t.Properties[prop]
	if !ok {
		return t
	}
	if o.Duration == 0 {
		o.Duration = t.Duration
	}
	if o.Easing == nil {
		o.Easing = t.Easing
	}
	if o.Delay == 0 {
		o.Delay = t.Delay
	}
	if o.Repeat == (Repeat{}) {
		o.Repeat = t.Repeat
	}
	o.Stagger = t.Stagger
	o.Properties = nil
	return o
}

// resolved applies defaults and clamps.
func (t Transition) resolved() Transition {
	switch {
	case t.Duration == 0:
		t.Duration = DefaultDuration
	case t.Duration < 0:
		t.Duration = 0
	}
	if t.Delay < 0 {
		t.Delay = 0
	}
	if t.Easing == nil {
		t.Easing = EaseInOut
	}
	if t.Repeat.Kind == RepeatCount && t.Repeat.Count <= 0 {
		t.Repeat = Never
	}
	return t
}

// WithDelay returns a copy of t with the delay extended by d.
func (t Transition) WithDelay(d time.Duration) Transition {
	t.Delay += d
	return t
}

// CSS renders the transition as CSS transition longhands for hosts that
// prefer native transitions:
//
//	transition-duration: 300ms; transition-delay: 0ms; transition-timing-function: ease-in-out
func (t Transition) CSS() string {
	r := t.resolved()
	dur := r.Duration
	if s, ok := r.Easing.(SpringEasing); ok {
		dur = time.Duration(s.Config.EstimateDuration() * float64(time.Second))
	}
	var b strings.Builder
	b.WriteString("transition-duration: ")
	b.WriteString(strconv.FormatInt(dur.Milliseconds(), 10))
	b.WriteString("ms; transition-delay: ")
	b.WriteString(strconv.FormatInt(r.Delay.Milliseconds(), 10))
	b.WriteString("ms; transition-timing-function: ")
	b.WriteString(EasingCSS(r.Easing))
	return b.String()
}
