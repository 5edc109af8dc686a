package kinetic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in spring transitions.
var (
	PresetDefault  = Transition{Easing: Spring(SpringConfig{Stiffness: 170, Damping: 26, Mass: 1})}
	PresetGentle   = Transition{Easing: Spring(SpringConfig{Stiffness: 120, Damping: 14, Mass: 1})}
	PresetWobbly   = Transition{Easing: Spring(SpringConfig{Stiffness: 180, Damping: 12, Mass: 1})}
	PresetStiff    = Transition{Easing: Spring(SpringConfig{Stiffness: 210, Damping: 20, Mass: 1})}
	PresetSlow     = Transition{Easing: Spring(SpringConfig{Stiffness: 280, Damping: 60, Mass: 1})}
	PresetMolasses = Transition{Easing: Spring(SpringConfig{Stiffness: 280, Damping: 120, Mass: 1})}
)

// Entrance is an initial/animate/exit triple for presence children.
type Entrance struct {
	Initial *Target
	Animate *Target
	Exit    *Target
}

// FadeIn fades from transparent.
func FadeIn() Entrance {
	return Entrance{
		Initial: NewTarget().Set("opacity", Number(0)),
		Animate: NewTarget().Set("opacity", Number(1)),
		Exit:    NewTarget().Set("opacity", Number(0)),
	}
}

// SlideUp fades in while rising by distance pixels.
func SlideUp(distance float64) Entrance {
	return Entrance{
		Initial: NewTarget().Set("opacity", Number(0)).Set("y", Pixels(distance)),
		Animate: NewTarget().Set("opacity", Number(1)).Set("y", Pixels(0)),
		Exit:    NewTarget().Set("opacity", Number(0)).Set("y", Pixels(-distance)),
	}
}

// ScaleIn fades in while growing from from.
func ScaleIn(from float64) Entrance {
	return Entrance{
		Initial: NewTarget().Set("opacity", Number(0)).Set("scale", Number(from)),
		Animate: NewTarget().Set("opacity", Number(1)).Set("scale", Number(1)),
		Exit:    NewTarget().Set("opacity", Number(0)).Set("scale", Number(from)),
	}
}

// Variants returns the entrance as "initial", "animate" and "exit"
// variants.
func (en Entrance) Variants() Variants {
	return Variants{
		"initial": {Target: en.Initial},
		"animate": {Target: en.Animate},
		"exit":    {Target: en.Exit},
	}
}

// Presets is a loaded set of named transitions and variant sets.
type Presets struct {
	Transitions map[string]Transition
	Variants    map[string]Variants
}

// Transition returns the named transition, falling back to the built-in
// spring presets ("default", "gentle", "wobbly", "stiff", "slow",
// "molasses").
func (p *Presets) Transition(name string) (Transition, bool) {
	if p != nil {
		if t, ok := p.Transitions[name]; ok {
			return t, true
		}
	}
	t, ok := builtinTransitions[name]
	return t, ok
}

// VariantSet returns the named variant set.
func (p *Presets) VariantSet(name string) (Variants, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.Variants[name]
	return v, ok
}

var builtinTransitions = map[string]Transition{
	"default":  PresetDefault,
	"gentle":   PresetGentle,
	"wobbly":   PresetWobbly,
	"stiff":    PresetStiff,
	"slow":     PresetSlow,
	"molasses": PresetMolasses,
}

type transitionSpec struct {
	Preset     string                    `yaml:"preset"`
	Duration   string                    `yaml:"duration"`
	Delay      string                    `yaml:"delay"`
	Easing     string                    `yaml:"easing"`
	Repeat     string                    `yaml:"repeat"`
	Stiffness  float64                   `yaml:"stiffness"`
	Damping    float64                   `yaml:"damping"`
	Mass       float64                   `yaml:"mass"`
	Velocity   float64                   `yaml:"velocity"`
	Stagger    *staggerSpec              `yaml:"stagger"`
	Properties map[string]transitionSpec `yaml:"properties"`
}

type staggerSpec struct {
	Delay  string `yaml:"delay"`
	Origin string `yaml:"origin"`
	Index  int    `yaml:"index"`
}

type variantSpec struct {
	Transition string            `yaml:"transition"`
	Values     map[string]string `yaml:"values"`
}

type presetFile struct {
	Transitions map[string]transitionSpec          `yaml:"transitions"`
	Variants    map[string]map[string]variantSpec `yaml:"variants"`
}

// LoadPresets parses a YAML preset file:
//
//	transitions:
//	  quick: {duration: 150ms, easing: easeOut}
//	  bouncy: {easing: spring, stiffness: 300, damping: 10}
//	variants:
//	  card:
//	    hidden: {values: {opacity: "0", y: "20px"}}
//	    visible: {values: {opacity: "1", y: "0px"}, transition: quick}
//
// Variant transitions name an entry of transitions or a built-in preset.
func LoadPresets(data []byte) (*Presets, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	p := &Presets{
		Transitions: make(map[string]Transition, len(f.Transitions)),
		Variants:    make(map[string]Variants, len(f.Variants)),
	}
	for _, name := range sortedKeys(f.Transitions) {
		t, err := f.Transitions[name].build()
		if err != nil {
			return nil, fmt.Errorf("load presets: transition %q: %w", name, err)
		}
		p.Transitions[name] = t
	}
	for set, specs := range f.Variants {
		vs := make(Variants, len(specs))
		for name, spec := range specs {
			v := Variant{Target: NewTarget()}
			for _, prop := range sortedKeys(spec.Values) {
				v.Target.Set(prop, ParseValue(spec.Values[prop]))
			}
			if spec.Transition != "" {
				t, ok := p.Transition(spec.Transition)
				if !ok {
					return nil, fmt.Errorf("load presets: variant %s.%s: unknown transition %q", set, name, spec.Transition)
				}
				v.Transition = &t
			}
			vs[name] = v
		}
		p.Variants[set] = vs
	}
	return p, nil
}

func (s transitionSpec) build() (Transition, error) {
	var t Transition
	if s.Preset != "" {
		b, ok := builtinTransitions[s.Preset]
		if !ok {
			return t, fmt.Errorf("unknown preset %q", s.Preset)
		}
		t = b
	}
	var err error
	if s.Duration != "" {
		if t.Duration, err = parseDuration(s.Duration); err != nil {
			return t, err
		}
	}
	if s.Delay != "" {
		if t.Delay, err = parseDuration(s.Delay); err != nil {
			return t, err
		}
	}
	if s.Easing != "" {
		if t.Easing, err = ParseEasing(s.Easing); err != nil {
			return t, err
		}
	}
	if sp, ok := t.Easing.(SpringEasing); ok {
		if s.Stiffness != 0 {
			sp.Config.Stiffness = s.Stiffness
		}
		if s.Damping != 0 {
			sp.Config.Damping = s.Damping
		}
		if s.Mass != 0 {
			sp.Config.Mass = s.Mass
		}
		if s.Velocity != 0 {
			sp.Config.InitialVelocity = s.Velocity
		}
		t.Easing = sp
	}
	if t.Repeat, err = parseRepeat(s.Repeat); err != nil {
		return t, err
	}
	if s.Stagger != nil {
		st, err := s.Stagger.build()
		if err != nil {
			return t, err
		}
		t.Stagger = &st
	}
	if len(s.Properties) > 0 {
		t.Properties = make(map[string]Transition, len(s.Properties))
		for _, prop := range sortedKeys(s.Properties) {
			o, err := s.Properties[prop].build()
			if err != nil {
				return t, fmt.Errorf("property %q: %w", prop, err)
			}
			t.Properties[prop] = o
		}
	}
	return t, nil
}

func (s staggerSpec) build() (StaggerConfig, error) {
	var st StaggerConfig
	var err error
	if st.Delay, err = parseDuration(s.Delay); err != nil {
		return st, err
	}
	switch strings.ToLower(s.Origin) {
	case "", "first":
		st.Origin = StaggerFirst
	case "last":
		st.Origin = StaggerLast
	case "center":
		st.Origin = StaggerCenter
	case "index":
		st.Origin = StaggerIndex
		st.Index = s.Index
	default:
		return st, fmt.Errorf("unknown stagger origin %q", s.Origin)
	}
	return st, nil
}

// parseDuration accepts Go durations and bare numbers of milliseconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(f * float64(time.Millisecond)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return d, nil
}

func parseRepeat(s string) (Repeat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "never", "none":
		return Never, nil
	case "infinite", "loop":
		return Infinite, nil
	case "pingpong", "ping-pong", "mirror", "reverse":
		return InfinitePingPong, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return Never, fmt.Errorf("parse repeat %q: %w", s, ErrInvalidValue)
	}
	return Count(n), nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
