package kinetic

import (
	"math"
	"time"
)

// StaggerOriginKind picks the child that starts first.
type StaggerOriginKind uint8

const (
	StaggerFirst StaggerOriginKind = iota
	StaggerLast
	StaggerCenter
	StaggerIndex
)

// StaggerConfig offsets each child's start by its index distance from
// Origin times Delay.
type StaggerConfig struct {
	Delay  time.Duration
	Origin StaggerOriginKind
	// Index is the origin child for StaggerIndex.
	Index int
}

// distance returns child i's index distance from the origin among n.
func (s StaggerConfig) distance(i, n int) float64 {
	switch s.Origin {
	case StaggerLast:
		return float64(n - 1 - i)
	case StaggerCenter:
		return math.Abs(float64(i) - float64(n-1)/2)
	case StaggerIndex:
		return math.Abs(float64(i - s.Index))
	}
	return float64(i)
}

// Offset returns the start offset of child i among n.
func (s StaggerConfig) Offset(i, n int) time.Duration {
	if s.Delay <= 0 || n <= 0 {
		return 0
	}
	return time.Duration(s.distance(i, n) * float64(s.Delay))
}

// StartStaggered starts target on every element, offsetting each start by
// tr.Stagger. All animations share one scheduler frame, so their clocks
// stay in step.
func (e *Engine) StartStaggered(els []*Element, target *Target, tr Transition, opts StartOptions) []*Animation {
	out := make([]*Animation, len(els))
	for i, el := range els {
		ctr := tr
		if tr.Stagger != nil {
			ctr = tr.WithDelay(tr.Stagger.Offset(i, len(els)))
			ctr.Properties = staggerOverrides(tr, tr.Stagger.Offset(i, len(els)))
		}
		out[i] = e.StartWith(el, target, ctr, opts)
	}
	return out
}

// staggerOverrides shifts per-property overrides that carry their own
// delay by the same offset.
func staggerOverrides(tr Transition, off time.Duration) map[string]Transition {
	if len(tr.Properties) == 0 {
		return nil
	}
	out := make(map[string]Transition, len(tr.Properties))
	for k, o := range tr.Properties {
		if o.Delay != 0 {
			o.Delay += off
		}
		out[k] = o
	}
	return out
}
