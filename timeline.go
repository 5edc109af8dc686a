package kinetic

import "math"

// Timeline plays keyframe tracks on one or more elements as a single
// animation. Every element's track starts in the same scheduler frame.
type Timeline struct {
	engine *Engine
	tr     Transition
	tracks []timelineTrack
	anims  []*Animation

	onProgress []func(t float64)
	onComplete []func()

	entry     EntryID
	scheduled bool
	paused    bool
	finished  bool
	last      float64
}

type timelineTrack struct {
	el  *Element
	kfs Keyframes
}

// NewTimeline returns an empty timeline timed by tr.
func NewTimeline(e *Engine, tr Transition) *Timeline {
	return &Timeline{engine: e, tr: tr}
}

// Add appends a track for el and returns t for chaining. Tracks added
// after Play start on the next Play.
func (t *Timeline) Add(el *Element, kfs Keyframes) *Timeline {
	t.tracks = append(t.tracks, timelineTrack{el: el, kfs: kfs})
	return t
}

// OnProgress registers fn to run after every tick with the timeline
// progress in [0, 1].
func (t *Timeline) OnProgress(fn func(p float64)) {
	t.onProgress = append(t.onProgress, fn)
}

// OnComplete registers fn to run once all tracks complete.
func (t *Timeline) OnComplete(fn func()) {
	t.onComplete = append(t.onComplete, fn)
}

// Animations returns the per-element animations of the current run.
func (t *Timeline) Animations() []*Animation {
	return append([]*Animation(nil), t.anims...)
}

// Play starts the timeline from the beginning, or continues it after Pause
// or ScrubTo.
func (t *Timeline) Play() {
	if len(t.anims) > 0 && !t.finished {
		t.Resume()
		return
	}
	t.start()
	t.follow()
}

func (t *Timeline) start() {
	t.Stop()
	t.finished = false
	t.paused = false
	t.last = 0
	t.anims = t.anims[:0]
	for _, tk := range t.tracks {
		t.anims = append(t.anims, t.engine.StartKeyframes(tk.el, tk.kfs, t.tr, StartOptions{}))
	}
}

// follow schedules the progress ticker behind the element animations.
func (t *Timeline) follow() {
	if t.scheduled || t.paused || t.finished {
		return
	}
	t.scheduled = true
	t.entry = t.engine.sched.Add(TickerFunc(t.advance))
}

// Pause freezes every track.
func (t *Timeline) Pause() {
	if t.paused {
		return
	}
	t.paused = true
	for _, a := range t.anims {
		t.engine.Pause(a)
	}
	if t.scheduled {
		t.scheduled = false
		t.engine.sched.Remove(t.entry)
	}
}

// Resume continues after Pause.
func (t *Timeline) Resume() {
	if !t.paused {
		return
	}
	t.paused = false
	for _, a := range t.anims {
		t.engine.Resume(a)
	}
	t.follow()
}

// Stop cancels the tracks.
func (t *Timeline) Stop() {
	for _, a := range t.anims {
		t.engine.Stop(a)
	}
	if t.scheduled {
		t.scheduled = false
		t.engine.sched.Remove(t.entry)
	}
}

// ScrubTo samples every track at progress p and writes the values without
// ticking. The timeline is left paused at p; Play continues from there.
func (t *Timeline) ScrubTo(p float64) {
	if len(t.anims) == 0 || t.finished {
		t.start()
	}
	t.Pause()
	p = clamp01(p)
	for _, a := range t.anims {
		t.engine.Seek(a, p)
	}
	t.last = p
	for _, fn := range t.onProgress {
		fn(p)
	}
}

// Progress returns the least progress over the tracks.
func (t *Timeline) Progress() float64 {
	if len(t.anims) == 0 {
		return t.last
	}
	p := 1.0
	for _, a := range t.anims {
		p = math.Min(p, t.engine.Progress(a))
	}
	return p
}

func (t *Timeline) advance(_, _ float64) bool {
	p := t.Progress()
	t.last = p
	done := true
	for _, a := range t.anims {
		if t.engine.IsActive(a) {
			done = false
		}
	}
	e := t.engine
	for _, fn := range t.onProgress {
		fn := fn
		e.queue(nil, func() { fn(p) })
	}
	if !done {
		return true
	}
	t.scheduled = false
	t.finished = true
	for _, fn := range t.onComplete {
		e.queue(nil, fn)
	}
	return false
}
