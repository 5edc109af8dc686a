package kinetic

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestInterpolateScalars(t *testing.T) {
	tests := []struct {
		name     string
		from, to Value
		t        float64
		want     Value
	}{
		{"pixels mid", Pixels(0), Pixels(100), 0.5, Pixels(50)},
		{"overshoot", Pixels(0), Pixels(100), 1.25, Pixels(125)},
		{"number", Number(1), Number(2), 0.25, Number(1.25)},
		{"degrees", Degrees(-90), Degrees(90), 0.5, Degrees(0)},
		{"incompatible early", Pixels(10), Percent(50), 0.4, Pixels(10)},
		{"incompatible late", Pixels(10), Percent(50), 0.5, Percent(50)},
		{"string holds", String("none"), String("block"), 0.99, String("none")},
		{"nil from", nil, Pixels(3), 0.5, Pixels(3)},
		{"nil to", Pixels(3), nil, 0.5, Pixels(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Interpolate(tt.from, tt.to, tt.t); !Equal(got, tt.want) {
				t.Errorf("Interpolate(%v, %v, %v) = %#v, want %#v", tt.from, tt.to, tt.t, got, tt.want)
			}
		})
	}
}

func TestInterpolateColorLinearSpace(t *testing.T) {
	black := Color{A: 1}
	white := Color{R: 1, G: 1, B: 1, A: 1}
	mid := Interpolate(black, white, 0.5).(Color)
	// Halfway in linear light is brighter than halfway in sRGB.
	if mid.R <= 0.5 || mid.R > 0.8 {
		t.Errorf("mid channel = %v, want about 0.735", mid.R)
	}
	if mid.A != 1 {
		t.Errorf("alpha = %v", mid.A)
	}
}

func TestInterpolateComplex(t *testing.T) {
	e := NewEngine(NewScheduler(NewManualFrames()))
	from := Complex{Kind: "blur", Payload: 0.0}
	to := Complex{Kind: "blur", Payload: 10.0}
	if got := e.Interpolate(from, to, 0.3); !Equal(got, from) {
		t.Errorf("unregistered kind should switch discretely, got %#v", got)
	}
	e.RegisterInterpolator("blur", func(a, b Complex, t float64) Complex {
		x, y := a.Payload.(float64), b.Payload.(float64)
		return Complex{Kind: "blur", Payload: x + (y-x)*t}
	})
	got := e.Interpolate(from, to, 0.3).(Complex)
	assertNear(t, "blur", got.Payload.(float64), 3)
}

func TestInterpolateEndpointIdentity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	easings := allEasings()
	kinds := []func(f float64) Value{
		func(f float64) Value { return Number(f) },
		func(f float64) Value { return Pixels(f) },
		func(f float64) Value { return Percent(f) },
		func(f float64) Value { return Degrees(f) },
		func(f float64) Value { return Color{R: clamp01(f / 1000), G: 0.5, B: 0.25, A: 1} },
		func(f float64) Value { return Translate(f, -f) },
	}

	properties.Property("interpolate yields from at 0 and to at 1", prop.ForAll(
		func(a, b float64, kind, ei int) bool {
			mk := kinds[kind]
			from, to := mk(a), mk(b)
			e := easings[ei]
			return Equal(Interpolate(from, to, e.Ease(0)), from) &&
				Equal(Interpolate(from, to, e.Ease(1)), to)
		},
		gen.Float64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
		gen.IntRange(0, len(kinds)-1),
		gen.IntRange(0, len(easings)-1),
	))

	properties.TestingRun(t)
}
