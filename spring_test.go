package kinetic

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSpringKind(t *testing.T) {
	tests := []struct {
		name string
		cfg  SpringConfig
		want DampingKind
	}{
		{"default", SpringConfig{}, Underdamped},
		{"critical", SpringConfig{Stiffness: 100, Damping: 20, Mass: 1}, CriticallyDamped},
		{"over", SpringConfig{Stiffness: 100, Damping: 40, Mass: 1}, Overdamped},
		{"heavy", SpringConfig{Stiffness: 100, Damping: 10, Mass: 4}, Underdamped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpringInvalidConfigUsesDefaults(t *testing.T) {
	bad := SpringConfig{Stiffness: -5, Damping: math.NaN(), Mass: 0, InitialVelocity: math.Inf(1)}
	if got, want := bad.EstimateDuration(), DefaultSpring().EstimateDuration(); got != want {
		t.Errorf("EstimateDuration = %v, want default %v", got, want)
	}
	si := NewSpringIntegrator(bad, 0, 1)
	if si.Velocity() != 0 {
		t.Errorf("infinite initial velocity should reset to 0, got %v", si.Velocity())
	}
}

func TestSpringEstimateDuration(t *testing.T) {
	// zeta 0.5, omega 10: envelope e^(-5t).
	assertNear(t, "default", DefaultSpring().EstimateDuration(), 0.8)
	assertNear(t, "critical", SpringConfig{Stiffness: 100, Damping: 20, Mass: 1}.EstimateDuration(), 0.3)
}

func TestSpringSnapsToTarget(t *testing.T) {
	si := NewSpringIntegrator(SpringConfig{}, 0, 100)
	var x float64
	rested := false
	for i := 0; i < 60*30 && !rested; i++ {
		x, rested = si.Step(1.0 / 60)
	}
	if !rested {
		t.Fatal("spring did not rest within 30s")
	}
	if x != 100 || si.Velocity() != 0 {
		t.Errorf("rest position = %v velocity = %v, want exactly 100 and 0", x, si.Velocity())
	}
	if x2, r := si.Step(1); x2 != 100 || !r {
		t.Error("a rested spring should stay put")
	}
}

func TestSpringFrameRateIndependent(t *testing.T) {
	a := NewSpringIntegrator(SpringConfig{}, 0, 1)
	b := NewSpringIntegrator(SpringConfig{}, 0, 1)
	for i := 0; i < 30; i++ {
		a.Step(1.0 / 30)
	}
	for i := 0; i < 120; i++ {
		b.Step(1.0 / 120)
	}
	if d := math.Abs(a.Position() - b.Position()); d > 0.02 {
		t.Errorf("30fps and 120fps diverged by %v", d)
	}
}

func TestSpringRetarget(t *testing.T) {
	si := NewSpringIntegrator(SpringConfig{Stiffness: 200, Damping: 30}, 0, 1)
	for i := 0; i < 10; i++ {
		si.Step(1.0 / 60)
	}
	v := si.Velocity()
	si.Retarget(-1)
	if si.Velocity() != v {
		t.Error("retarget must keep velocity")
	}
	for i := 0; i < 600 && !si.AtRest(); i++ {
		si.Step(1.0 / 60)
	}
	if si.Position() != -1 {
		t.Errorf("position = %v, want -1", si.Position())
	}
}

func TestSpringTermination(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	const maxTicks = 60 * 600

	properties.Property("springs with positive parameters come to rest", prop.ForAll(
		func(k, c, m, from, to, v float64) bool {
			si := NewSpringIntegrator(SpringConfig{
				Stiffness:       k,
				Damping:         c,
				Mass:            m,
				InitialVelocity: v,
			}, from, to)
			for i := 0; i < maxTicks; i++ {
				if x, rest := si.Step(1.0 / 60); rest {
					return x == to
				}
			}
			return false
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(1, 50),
		gen.Float64Range(0.5, 5),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t)
}

func TestSpringEasingEndpoints(t *testing.T) {
	e := Spring(SpringConfig{Stiffness: 170, Damping: 26})
	if e.Ease(0) != 0 || e.Ease(1) != 1 {
		t.Error("spring easing endpoints")
	}
	if v := e.Ease(0.5); v <= 0.5 {
		t.Errorf("spring should be well past halfway at 0.5, got %v", v)
	}
}
