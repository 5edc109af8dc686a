package kinetic

import (
	"math"
	"sort"
)

// Keyframe is one stop of a keyframe timeline. Time is normalized progress
// in [0, 1]. Easing shapes the segment from this keyframe to the next; nil
// means Linear.
type Keyframe struct {
	Time   float64
	Target *Target
	Easing Easing
}

// Keyframes is an ordered keyframe timeline.
type Keyframes []Keyframe

// Normalized returns a copy with non-finite times dropped, times clamped to
// [0, 1] and sorted. Of keyframes sharing a time the last one wins, so the
// result has strictly increasing times.
func (k Keyframes) Normalized() Keyframes {
	out := make(Keyframes, 0, len(k))
	for _, kf := range k {
		if math.IsNaN(kf.Time) || math.IsInf(kf.Time, 0) {
			continue
		}
		kf.Time = clamp01(kf.Time)
		out = append(out, kf)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	dedup := out[:0]
	for _, kf := range out {
		if n := len(dedup); n > 0 && dedup[n-1].Time == kf.Time {
			dedup[n-1] = kf
			continue
		}
		dedup = append(dedup, kf)
	}
	return dedup
}

// Properties returns every property named by any keyframe, in first-seen
// order.
func (k Keyframes) Properties() []string {
	seen := map[string]bool{}
	var out []string
	for _, kf := range k {
		kf.Target.Each(func(p string, _ Value) {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		})
	}
	return out
}

// keyframeTrack is the timeline of a single property: only keyframes that
// name the property contribute a stop.
type keyframeTrack struct {
	times   []float64
	values  []Value
	easings []Easing
}

// tracks splits normalized keyframes into per-property tracks.
func (k Keyframes) tracks() map[string]*keyframeTrack {
	out := map[string]*keyframeTrack{}
	for _, kf := range k {
		kf.Target.Each(func(p string, v Value) {
			tr := out[p]
			if tr == nil {
				tr = &keyframeTrack{}
				out[p] = tr
			}
			tr.times = append(tr.times, kf.Time)
			tr.values = append(tr.values, v)
			tr.easings = append(tr.easings, kf.Easing)
		})
	}
	return out
}

// sample returns the track value at global progress p. Before the first
// stop the first value holds; after the last stop the last value holds.
// The enclosing segment is found by binary search and shaped by the easing
// of its starting keyframe.
func (tr *keyframeTrack) sample(reg map[string]ComplexInterpolator, p float64) Value {
	n := len(tr.times)
	if n == 0 {
		return nil
	}
	if p <= tr.times[0] {
		return tr.values[0]
	}
	if p >= tr.times[n-1] {
		return tr.values[n-1]
	}
	i := sort.Search(n, func(i int) bool { return tr.times[i] > p }) - 1
	span := tr.times[i+1] - tr.times[i]
	local := (p - tr.times[i]) / span
	e := tr.easings[i]
	if e == nil {
		e = Linear
	}
	return interpolate(reg, tr.values[i], tr.values[i+1], e.Ease(local))
}

// SampleKeyframes evaluates every property of the timeline at progress p.
// Single-stop tracks return their only value.
func SampleKeyframes(k Keyframes, p float64) *Target {
	k = k.Normalized()
	out := NewTarget()
	tracks := k.tracks()
	for _, prop := range k.Properties() {
		out.Set(prop, tracks[prop].sample(nil, p))
	}
	return out
}
