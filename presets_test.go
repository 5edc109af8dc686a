package kinetic

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const presetYAML = `
transitions:
  quick:
    duration: 150ms
    easing: easeOut
  bouncy:
    easing: spring
    stiffness: 300
    damping: 10
  soft:
    preset: gentle
    delay: 50
  staggered:
    duration: 200ms
    repeat: "2"
    stagger: {delay: 30ms, origin: center}
    properties:
      opacity: {duration: 100ms, easing: linear}
variants:
  card:
    hidden:
      values: {opacity: "0", y: "20px"}
    visible:
      values: {opacity: "1", y: "0px", background: "#ff0000"}
      transition: quick
    wobble:
      values: {rotate: "5deg"}
      transition: wobbly
`

func TestLoadPresets(t *testing.T) {
	p, err := LoadPresets([]byte(presetYAML))
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}

	quick, ok := p.Transition("quick")
	if !ok || quick.Duration != 150*time.Millisecond || quick.Easing != EaseOut {
		t.Errorf("quick = %+v", quick)
	}

	bouncy, _ := p.Transition("bouncy")
	sp, ok := bouncy.Easing.(SpringEasing)
	if !ok || sp.Config.Stiffness != 300 || sp.Config.Damping != 10 {
		t.Errorf("bouncy easing = %#v", bouncy.Easing)
	}

	soft, _ := p.Transition("soft")
	if soft.Delay != 50*time.Millisecond || soft.Easing != PresetGentle.Easing {
		t.Errorf("soft = %+v", soft)
	}

	st, _ := p.Transition("staggered")
	if st.Repeat != Count(2) || st.Stagger == nil || st.Stagger.Origin != StaggerCenter || st.Stagger.Delay != 30*time.Millisecond {
		t.Errorf("staggered = %+v", st)
	}
	if o := st.For("opacity"); o.Duration != 100*time.Millisecond || o.Easing != Linear {
		t.Errorf("opacity override = %+v", o)
	}

	card, ok := p.VariantSet("card")
	if !ok {
		t.Fatal("card variants missing")
	}
	if got := strings.Join(card.Names(), ","); got != "hidden,visible,wobble" {
		t.Errorf("names = %s", got)
	}
	vis := card["visible"]
	if v, _ := vis.Target.Get("y"); !Equal(v, Pixels(0)) {
		t.Errorf("visible y = %v", v)
	}
	if v, _ := vis.Target.Get("background"); !Equal(v, RGBA(255, 0, 0, 1)) {
		t.Errorf("visible background = %v", v)
	}
	if vis.Transition == nil || vis.Transition.Duration != 150*time.Millisecond {
		t.Errorf("visible transition = %+v", vis.Transition)
	}
	if w := card["wobble"]; w.Transition == nil || w.Transition.Easing != PresetWobbly.Easing {
		t.Error("variant transitions fall back to built-in presets")
	}
}

func TestLoadPresetsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "transitions: [", "load presets"},
		{"easing", "transitions: {a: {easing: wiggle}}", `transition "a"`},
		{"duration", "transitions: {a: {duration: soon}}", "parse duration"},
		{"preset", "transitions: {a: {preset: nope}}", "unknown preset"},
		{"origin", "transitions: {a: {stagger: {origin: middle}}}", "stagger origin"},
		{"variant transition", "variants: {s: {v: {transition: missing}}}", "unknown transition"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPresets([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
	_, err := LoadPresets([]byte("transitions: {a: {easing: wiggle}}"))
	if !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("easing errors should wrap ErrUnknownEasing: %v", err)
	}
	_, err = LoadPresets([]byte(`transitions: {a: {repeat: "often"}}`))
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("repeat errors should wrap ErrInvalidValue: %v", err)
	}
}

func TestBuiltinPresets(t *testing.T) {
	var p *Presets
	for _, name := range []string{"default", "gentle", "wobbly", "stiff", "slow", "molasses"} {
		if _, ok := p.Transition(name); !ok {
			t.Errorf("missing built-in %q", name)
		}
	}
	if _, ok := p.VariantSet("x"); ok {
		t.Error("nil presets have no variants")
	}
	if PresetWobbly.Easing.(SpringEasing).Config.Kind() != Underdamped {
		t.Error("wobbly should oscillate")
	}
	if PresetMolasses.Easing.(SpringEasing).Config.Kind() != Overdamped {
		t.Error("molasses should not overshoot")
	}
}

func TestEntrancePresets(t *testing.T) {
	h := newHarness()
	el, _ := h.element()
	en := SlideUp(24)
	vs := en.Variants()
	h.engine.StartVariant(el, vs, linear(64*time.Millisecond), StartOptions{Initial: en.Initial}, "animate")
	if got := el.Transform().Component(TranslateY); got != 24 {
		t.Errorf("initial y = %v", got)
	}
	h.run(100 * time.Millisecond)
	if el.Transform().Component(TranslateY) != 0 || opacityOf(t, el) != 1 {
		t.Error("slide up should land at rest")
	}
	if v, _ := ScaleIn(0.5).Initial.Get("scale"); !Equal(v, Number(0.5)) {
		t.Errorf("scale in initial = %v", v)
	}
	if FadeIn().Exit.Len() != 1 {
		t.Error("fade in exit")
	}
}
