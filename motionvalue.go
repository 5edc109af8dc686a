package kinetic

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// MotionValue is a standalone animated scalar with velocity tracking.
// Subscribers see every change. AnimateTo tweens it on the scheduler,
// independent of any element.
type MotionValue struct {
	diag

	sched    *Scheduler
	value    float64
	velocity float64 // units per second

	tween     *gween.Tween
	to        float64
	spring    *SpringIntegrator
	entry     EntryID
	scheduled bool

	subs       []motionSub
	nextSub    int
	onComplete []func()
}

type motionSub struct {
	id int
	fn func(float64)
}

// NewMotionValue returns a motion value holding v.
func NewMotionValue(s *Scheduler, v float64) *MotionValue {
	mv := &MotionValue{sched: s, value: v}
	mv.logger = s.logger
	return mv
}

// Get returns the current value.
func (mv *MotionValue) Get() float64 { return mv.value }

// Velocity returns the current velocity in units per second.
func (mv *MotionValue) Velocity() float64 { return mv.velocity }

// IsAnimating reports whether AnimateTo is in progress.
func (mv *MotionValue) IsAnimating() bool { return mv.scheduled }

// Set stops any animation and jumps to v.
func (mv *MotionValue) Set(v float64) {
	mv.Stop()
	mv.velocity = 0
	mv.update(v)
}

// Subscribe registers fn to receive every new value. The returned func
// unsubscribes.
func (mv *MotionValue) Subscribe(fn func(v float64)) (unsubscribe func()) {
	mv.nextSub++
	id := mv.nextSub
	mv.subs = append(mv.subs, motionSub{id: id, fn: fn})
	return func() {
		for i := range mv.subs {
			if mv.subs[i].id == id {
				mv.subs = append(mv.subs[:i], mv.subs[i+1:]...)
				return
			}
		}
	}
}

// OnComplete registers fn to run each time an AnimateTo reaches its end.
func (mv *MotionValue) OnComplete(fn func()) {
	mv.onComplete = append(mv.onComplete, fn)
}

// AnimateTo tweens toward to over d with easing. A SpringEasing springs
// from the current velocity instead and ignores d.
func (mv *MotionValue) AnimateTo(to float64, d time.Duration, easing Easing) {
	mv.Stop()
	mv.to = to
	if s, ok := easing.(SpringEasing); ok {
		cfg := s.Config
		cfg.InitialVelocity = mv.velocity
		mv.spring = NewSpringIntegrator(cfg, mv.value, to)
	} else {
		dur := Transition{Duration: d}.resolved().Duration
		if easing == nil {
			easing = EaseInOut
		}
		mv.tween = gween.New(float32(mv.value), float32(to), float32(dur.Seconds()), tweenFunc(easing))
	}
	mv.scheduled = true
	mv.entry = mv.sched.Add(mv)
}

// Stop ends the animation at the current value.
func (mv *MotionValue) Stop() {
	if !mv.scheduled {
		return
	}
	mv.scheduled = false
	mv.sched.Remove(mv.entry)
	mv.tween, mv.spring = nil, nil
}

// Cancel is called by the scheduler when a subscriber panics.
func (mv *MotionValue) Cancel() {
	mv.scheduled = false
	mv.tween, mv.spring = nil, nil
}

// Advance implements Ticker.
func (mv *MotionValue) Advance(_, dt float64) bool {
	if !mv.scheduled {
		return false
	}
	prev := mv.value
	var (
		v        float64
		finished bool
	)
	switch {
	case mv.spring != nil:
		v, finished = mv.spring.Step(dt)
	case mv.tween != nil:
		f, done := mv.tween.Update(float32(dt))
		v, finished = float64(f), done
	default:
		return false
	}
	if finished {
		v = mv.to
	}
	if dt > 0 {
		mv.velocity = (v - prev) / dt
	}
	mv.update(v)
	if !finished {
		return true
	}
	mv.scheduled = false
	mv.tween, mv.spring = nil, nil
	mv.velocity = 0
	for _, fn := range mv.onComplete {
		fn()
	}
	return false
}

func (mv *MotionValue) update(v float64) {
	if v == mv.value {
		return
	}
	mv.value = v
	for _, s := range append([]motionSub(nil), mv.subs...) {
		mv.notify(s, v)
	}
}

func (mv *MotionValue) notify(s motionSub, v float64) {
	defer func() {
		if r := recover(); r != nil {
			mv.logError("motion value subscriber panicked", "panic", fmt.Sprint(r))
		}
	}()
	s.fn(v)
}

// Drive writes the value to prop on el through e whenever it changes,
// using like's unit variant. The returned func stops driving.
func (mv *MotionValue) Drive(e *Engine, el *Element, prop string, like Value) (stop func()) {
	if like == nil {
		like = Number(0)
	}
	write := func(v float64) {
		e.Set(el, NewTarget().Set(prop, withScalar(like, v)))
	}
	write(mv.value)
	return mv.Subscribe(write)
}

// tweenFunc returns e as a gween easing function.
func tweenFunc(e Easing) ease.TweenFunc {
	if n, ok := e.(*namedEasing); ok {
		return n.fn
	}
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(e.Ease(float64(t/d)))
	}
}
