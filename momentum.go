package kinetic

import "math"

// Drag defaults.
const (
	DefaultElastic     = 0.3
	DefaultFriction    = 0.95 // per 16ms
	DefaultBounce      = 0.5  // velocity kept when reflecting off a bound
	DefaultMinVelocity = 0.1  // px/ms
	frictionFrameMs    = 16.0
)

// DragConstraints bounds the drag offset. Only axes with HasX or HasY set
// are bounded, so MinX == MaxX == 0 with HasX pins x at 0.
type DragConstraints struct {
	MinX, MaxX float64
	MinY, MaxY float64
	HasX, HasY bool
}

// ConstrainX bounds x to [lo, hi] and leaves y free.
func ConstrainX(lo, hi float64) *DragConstraints {
	return &DragConstraints{MinX: lo, MaxX: hi, HasX: true}
}

// ConstrainY bounds y to [lo, hi] and leaves x free.
func ConstrainY(lo, hi float64) *DragConstraints {
	return &DragConstraints{MinY: lo, MaxY: hi, HasY: true}
}

// Constrain bounds both axes.
func Constrain(minX, maxX, minY, maxY float64) *DragConstraints {
	return &DragConstraints{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, HasX: true, HasY: true}
}

// DragConfig configures a draggable element.
type DragConfig struct {
	Axis        Axis
	Constraints *DragConstraints
	// Elastic scales overshoot outside Constraints. Zero selects
	// DefaultElastic; a negative value clamps hard.
	Elastic float64
	// Momentum continues the motion after release.
	Momentum bool
	// Friction is the velocity kept per 16ms. Zero selects DefaultFriction.
	Friction float64
	// Bounce is the velocity kept when reflecting off a bound. Zero
	// selects DefaultBounce.
	Bounce float64
	// MinVelocity ends momentum, in px/ms. Zero selects
	// DefaultMinVelocity.
	MinVelocity float64
	// SnapTransition animates an out-of-bounds release back inside when
	// Momentum is off. The zero value uses the default duration.
	SnapTransition Transition
}

func (c DragConfig) elastic() float64 {
	switch {
	case c.Elastic < 0:
		return 0
	case c.Elastic == 0:
		return DefaultElastic
	}
	return math.Min(c.Elastic, 1)
}

func (c DragConfig) friction() float64 {
	if c.Friction <= 0 || c.Friction >= 1 {
		return DefaultFriction
	}
	return c.Friction
}

func (c DragConfig) bounce() float64 {
	if c.Bounce <= 0 || c.Bounce > 1 {
		return DefaultBounce
	}
	return c.Bounce
}

func (c DragConfig) minVelocity() float64 {
	if c.MinVelocity <= 0 {
		return DefaultMinVelocity
	}
	return c.MinVelocity
}

// axisMask zeroes the component orthogonal to the drag axis.
func (c DragConfig) axisMask(v Vec2) Vec2 {
	switch c.Axis {
	case AxisX:
		v.Y = 0
	case AxisY:
		v.X = 0
	}
	return v
}

func (c DragConfig) bounds(axis int) (lo, hi float64, ok bool) {
	if c.Constraints == nil {
		return 0, 0, false
	}
	lo, hi, ok = c.Constraints.MinX, c.Constraints.MaxX, c.Constraints.HasX
	if axis == 1 {
		lo, hi, ok = c.Constraints.MinY, c.Constraints.MaxY, c.Constraints.HasY
	}
	if !ok {
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// Clamp applies the elastic bounds to a raw drag position: overshoot Δ
// outside [min, max] displays at bound + Δ×elastic.
func (c DragConfig) Clamp(p Vec2) Vec2 {
	k := c.elastic()
	clamp := func(v, lo, hi float64) float64 {
		switch {
		case v < lo:
			return lo + (v-lo)*k
		case v > hi:
			return hi + (v-hi)*k
		}
		return v
	}
	if lo, hi, ok := c.bounds(0); ok {
		p.X = clamp(p.X, lo, hi)
	}
	if lo, hi, ok := c.bounds(1); ok {
		p.Y = clamp(p.Y, lo, hi)
	}
	return p
}

// Inside returns p pulled onto the nearest bound on each violated axis.
func (c DragConfig) Inside(p Vec2) Vec2 {
	if lo, hi, ok := c.bounds(0); ok {
		p.X = math.Max(lo, math.Min(hi, p.X))
	}
	if lo, hi, ok := c.bounds(1); ok {
		p.Y = math.Max(lo, math.Min(hi, p.Y))
	}
	return p
}

// Momentum decays a release velocity into a settling position. It is a
// scheduler Ticker; dt is in seconds and velocity in px/ms.
type Momentum struct {
	cfg  DragConfig
	pos  Vec2
	vel  Vec2
	done bool

	onUpdate func(pos Vec2)
	onDone   func(pos Vec2)
}

// NewMomentum starts from the displayed position pos with release
// velocity vel.
func NewMomentum(cfg DragConfig, pos, vel Vec2) *Momentum {
	return &Momentum{cfg: cfg, pos: pos, vel: cfg.axisMask(vel)}
}

// Position returns the current position.
func (m *Momentum) Position() Vec2 { return m.pos }

// Velocity returns the current velocity in px/ms.
func (m *Momentum) Velocity() Vec2 { return m.vel }

// Done reports whether the motion settled.
func (m *Momentum) Done() bool { return m.done }

// OnUpdate registers fn to receive every new position.
func (m *Momentum) OnUpdate(fn func(pos Vec2)) { m.onUpdate = fn }

// OnDone registers fn to receive the settled position.
func (m *Momentum) OnDone(fn func(pos Vec2)) { m.onDone = fn }

// Cancel stops the motion where it is.
func (m *Momentum) Cancel() { m.done = true }

// Advance implements Ticker.
func (m *Momentum) Advance(_, dt float64) bool {
	if m.done {
		return false
	}
	dtMs := dt * 1000
	decay := math.Pow(m.cfg.friction(), dtMs/frictionFrameMs)
	m.vel = m.vel.Scale(decay)
	m.pos.X, m.vel.X = m.stepAxis(0, m.pos.X, m.vel.X, dtMs)
	m.pos.Y, m.vel.Y = m.stepAxis(1, m.pos.Y, m.vel.Y, dtMs)

	if m.vel.Len() < m.cfg.minVelocity() {
		m.pos = m.cfg.Inside(m.pos)
		m.vel = Vec2{}
		m.done = true
	}
	if m.onUpdate != nil {
		m.onUpdate(m.pos)
	}
	if m.done && m.onDone != nil {
		m.onDone(m.pos)
	}
	return !m.done
}

func (m *Momentum) stepAxis(axis int, p, v, dtMs float64) (float64, float64) {
	lo, hi, ok := m.cfg.bounds(axis)
	if !ok {
		return p + v*dtMs, v
	}
	outside := p < lo || p > hi
	if outside && (p > hi) == (v > 0) && v != 0 {
		// Moving further out: reflect.
		v = -v * m.cfg.bounce()
	}
	next := p + v*dtMs
	nextOutside := next < lo || next > hi
	switch {
	case !outside && nextOutside:
		bound := hi
		if next < lo {
			bound = lo
		}
		next = bound + (next-bound)*m.cfg.elastic()
		v = -v * m.cfg.bounce()
	case outside && !nextOutside, outside && (p > hi) != (next > hi):
		// Re-entered: settle on the violated bound.
		next = hi
		if p < lo {
			next = lo
		}
		v = 0
	}
	return next, v
}
