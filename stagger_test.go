package kinetic

import (
	"testing"
	"time"
)

func TestStaggerOffset(t *testing.T) {
	const d = 100 * time.Millisecond
	tests := []struct {
		name string
		cfg  StaggerConfig
		i, n int
		want time.Duration
	}{
		{"first", StaggerConfig{Delay: d}, 2, 5, 200 * time.Millisecond},
		{"last", StaggerConfig{Delay: d, Origin: StaggerLast}, 0, 5, 400 * time.Millisecond},
		{"center edge", StaggerConfig{Delay: d, Origin: StaggerCenter}, 0, 5, 200 * time.Millisecond},
		{"center mid", StaggerConfig{Delay: d, Origin: StaggerCenter}, 2, 5, 0},
		{"center even", StaggerConfig{Delay: d, Origin: StaggerCenter}, 1, 4, 50 * time.Millisecond},
		{"index", StaggerConfig{Delay: d, Origin: StaggerIndex, Index: 3}, 0, 5, 300 * time.Millisecond},
		{"no delay", StaggerConfig{}, 4, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Offset(tt.i, tt.n); got != tt.want {
				t.Errorf("Offset(%d, %d) = %v, want %v", tt.i, tt.n, got, tt.want)
			}
		})
	}
}

func TestStartStaggered(t *testing.T) {
	h := newHarness()
	els := make([]*Element, 3)
	for i := range els {
		els[i], _ = h.element()
	}
	tr := linear(100 * time.Millisecond)
	tr.Stagger = &StaggerConfig{Delay: 100 * time.Millisecond}
	tr.Properties = map[string]Transition{"opacity": {Delay: 50 * time.Millisecond}}
	anims := h.engine.StartStaggered(els, NewTarget().Set("x", Pixels(100)).Set("opacity", Number(0)), tr, StartOptions{})

	for _, pa := range anims[1].props {
		if pa.prop == "opacity" {
			assertNear(t, "opacity delay", pa.delay, 0.15)
		}
	}

	h.run(96 * time.Millisecond)
	if xOf(els[0]) == 0 {
		t.Error("first child should be moving")
	}
	if xOf(els[1]) != 0 || xOf(els[2]) != 0 {
		t.Errorf("later children started early: %v %v", xOf(els[1]), xOf(els[2]))
	}
	h.run(304 * time.Millisecond)
	for i, el := range els {
		if xOf(el) != 100 {
			t.Errorf("child %d x = %v", i, xOf(el))
		}
	}
}
