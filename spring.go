package kinetic

import "math"

// springSubstep is the fixed integration step. Stiff or heavily damped
// configurations subdivide it further (see substepsFor).
const springSubstep = 1.0 / 240

// SpringConfig parameterizes a mass-spring-damper. Zero (or invalid)
// fields select the defaults: stiffness 100, damping 10, mass 1,
// rest epsilons 0.01. InitialVelocity is in units per second.
type SpringConfig struct {
	Stiffness           float64
	Damping             float64
	Mass                float64
	InitialVelocity     float64
	RestPositionEpsilon float64
	RestVelocityEpsilon float64
}

// DefaultSpring returns the default configuration.
func DefaultSpring() SpringConfig {
	return SpringConfig{
		Stiffness:           100,
		Damping:             10,
		Mass:                1,
		RestPositionEpsilon: 0.01,
		RestVelocityEpsilon: 0.01,
	}
}

func positiveOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return def
	}
	return v
}

// normalized replaces zero, negative and NaN fields with defaults.
func (c SpringConfig) normalized() SpringConfig {
	d := DefaultSpring()
	c.Stiffness = positiveOr(c.Stiffness, d.Stiffness)
	c.Damping = positiveOr(c.Damping, d.Damping)
	c.Mass = positiveOr(c.Mass, d.Mass)
	c.RestPositionEpsilon = positiveOr(c.RestPositionEpsilon, d.RestPositionEpsilon)
	c.RestVelocityEpsilon = positiveOr(c.RestVelocityEpsilon, d.RestVelocityEpsilon)
	if math.IsNaN(c.InitialVelocity) || math.IsInf(c.InitialVelocity, 0) {
		c.InitialVelocity = 0
	}
	return c
}

// DampingKind classifies a spring by damping ratio.
type DampingKind uint8

const (
	Underdamped      DampingKind = iota // oscillates
	CriticallyDamped                    // fastest approach without overshoot
	Overdamped                          // slow approach without overshoot
)

// omega is the undamped natural frequency; zeta the damping ratio.
func (c SpringConfig) omegaZeta() (omega, zeta float64) {
	c = c.normalized()
	omega = math.Sqrt(c.Stiffness / c.Mass)
	zeta = c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
	return omega, zeta
}

// Kind reports the damping classification.
func (c SpringConfig) Kind() DampingKind {
	_, zeta := c.omegaZeta()
	switch {
	case math.Abs(zeta-1) < 1e-9:
		return CriticallyDamped
	case zeta < 1:
		return Underdamped
	}
	return Overdamped
}

// EstimateDuration estimates the seconds a spring needs to settle from the
// exponential decay envelope of its slowest mode.
func (c SpringConfig) EstimateDuration() float64 {
	omega, zeta := c.omegaZeta()
	switch c.Kind() {
	case Underdamped:
		return 4 / (zeta * omega)
	case CriticallyDamped:
		return 3 / omega
	}
	slow := omega * (zeta - math.Sqrt(zeta*zeta-1))
	return 5 / slow
}

// substepsFor returns how many integration steps one springSubstep is
// split into so semi-implicit Euler stays stable.
func substepsFor(c SpringConfig) int {
	omega := math.Sqrt(c.Stiffness / c.Mass)
	n := math.Max(omega*springSubstep/0.5, (c.Damping/c.Mass)*springSubstep)
	if n <= 1 {
		return 1
	}
	if n > 1000 {
		return 1000
	}
	return int(math.Ceil(n))
}

// SpringIntegrator advances one mass-spring-damper toward a target with a
// fixed sub-step, independent of the host frame rate.
type SpringIntegrator struct {
	cfg    SpringConfig
	x, v   float64
	target float64
	h      float64
	steps  int
	accum  float64

	restPrev bool
	rested   bool
}

// NewSpringIntegrator starts a spring at from moving toward to.
func NewSpringIntegrator(cfg SpringConfig, from, to float64) *SpringIntegrator {
	cfg = cfg.normalized()
	n := substepsFor(cfg)
	return &SpringIntegrator{
		cfg:    cfg,
		x:      from,
		v:      cfg.InitialVelocity,
		target: to,
		h:      springSubstep / float64(n),
		steps:  n,
	}
}

// Position returns the current position.
func (s *SpringIntegrator) Position() float64 { return s.x }

// Velocity returns the current velocity.
func (s *SpringIntegrator) Velocity() float64 { return s.v }

// AtRest reports whether the spring has settled.
func (s *SpringIntegrator) AtRest() bool { return s.rested }

// Retarget moves the rest point, keeping position and velocity.
func (s *SpringIntegrator) Retarget(to float64) {
	s.target = to
	s.rested = false
	s.restPrev = false
}

func (s *SpringIntegrator) atRestNow() bool {
	return math.Abs(s.x-s.target) < s.cfg.RestPositionEpsilon &&
		math.Abs(s.v) < s.cfg.RestVelocityEpsilon
}

// Step advances the spring by dt seconds and returns the new position and
// whether it has come to rest. The rest condition must hold at the end of
// two consecutive ticks; on rest the position snaps to the target.
func (s *SpringIntegrator) Step(dt float64) (float64, bool) {
	if s.rested {
		return s.x, true
	}
	if dt > 0 {
		s.accum += dt
	}
	c := s.cfg
	for s.accum >= springSubstep {
		s.accum -= springSubstep
		for i := 0; i < s.steps; i++ {
			a := (-c.Stiffness*(s.x-s.target) - c.Damping*s.v) / c.Mass
			s.v += a * s.h
			s.x += s.v * s.h
		}
	}
	now := s.atRestNow()
	if now && s.restPrev {
		s.x = s.target
		s.v = 0
		s.rested = true
	}
	s.restPrev = now
	return s.x, s.rested
}

// SpringEasing animates normalized progress with a spring. Used as a
// transition's easing, the engine integrates it per tick; Ease evaluates it
// over the estimated settle duration for static sampling.
type SpringEasing struct {
	Config SpringConfig
}

// Spring returns a spring easing.
func Spring(cfg SpringConfig) SpringEasing {
	return SpringEasing{Config: cfg}
}

// Ease samples the spring's normalized position at t of its estimated
// settle duration.
func (e SpringEasing) Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	total := e.Config.EstimateDuration()
	si := NewSpringIntegrator(e.Config, 0, 1)
	x, _ := si.Step(t * total)
	return x
}
