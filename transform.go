package kinetic

import "strings"

// TransformComponent names one slot of a Transform.
type TransformComponent uint8

const (
	TranslateX TransformComponent = iota // px
	TranslateY                           // px
	TranslateZ                           // px
	RotateX                              // deg
	RotateY                              // deg
	RotateZ                              // deg
	ScaleX                               // unitless
	ScaleY                               // unitless
	ScaleZ                               // unitless
	SkewX                                // deg
	SkewY                                // deg

	numTransformComponents
)

var transformComponentNames = [numTransformComponents]string{
	"translateX", "translateY", "translateZ",
	"rotateX", "rotateY", "rotateZ",
	"scaleX", "scaleY", "scaleZ",
	"skewX", "skewY",
}

func (c TransformComponent) String() string {
	if c < numTransformComponents {
		return transformComponentNames[c]
	}
	return "unknown"
}

// identity returns the neutral value of the component: 1 for scales, 0
// otherwise.
func (c TransformComponent) identity() float64 {
	if c == ScaleX || c == ScaleY || c == ScaleZ {
		return 1
	}
	return 0
}

// Transform stores up to eleven optional components. A missing component
// is its identity element. The zero Transform is the identity. Transform
// is comparable with ==.
type Transform struct {
	set uint16
	v   [numTransformComponents]float64
}

// With returns a copy of t with component c set to v.
func (t Transform) With(c TransformComponent, v float64) Transform {
	if c >= numTransformComponents {
		return t
	}
	t.set |= 1 << c
	t.v[c] = v
	return t
}

// Without returns a copy of t with component c unset.
func (t Transform) Without(c TransformComponent) Transform {
	if c >= numTransformComponents {
		return t
	}
	t.set &^= 1 << c
	t.v[c] = 0
	return t
}

// Get returns the component and whether it is set.
func (t Transform) Get(c TransformComponent) (float64, bool) {
	if c >= numTransformComponents || t.set&(1<<c) == 0 {
		return 0, false
	}
	return t.v[c], true
}

// Component returns the component value, or its identity when unset.
func (t Transform) Component(c TransformComponent) float64 {
	if v, ok := t.Get(c); ok {
		return v
	}
	return c.identity()
}

// Has reports whether any component is set.
func (t Transform) Has() bool {
	return t.set != 0
}

// IsIdentity reports whether every component equals its identity.
func (t Transform) IsIdentity() bool {
	for c := TransformComponent(0); c < numTransformComponents; c++ {
		if t.Component(c) != c.identity() {
			return false
		}
	}
	return true
}

// Merge returns t with every component set in o copied over.
func (t Transform) Merge(o Transform) Transform {
	for c := TransformComponent(0); c < numTransformComponents; c++ {
		if v, ok := o.Get(c); ok {
			t = t.With(c, v)
		}
	}
	return t
}

// lerpTransform interpolates component-wise. A component missing on one
// side is interpolated from or to its identity.
func lerpTransform(from, to Transform, t float64) Transform {
	var out Transform
	for c := TransformComponent(0); c < numTransformComponents; c++ {
		_, fok := from.Get(c)
		_, tok := to.Get(c)
		if !fok && !tok {
			continue
		}
		a, b := from.Component(c), to.Component(c)
		out = out.With(c, a+(b-a)*t)
	}
	return out
}

// CSS assembles the transform in the fixed order
// translate3d rotate rotateX rotateY scale3d skew. Groups at identity are
// omitted; a transform entirely at identity renders as "none".
func (t Transform) CSS() string {
	var parts []string
	tx, ty, tz := t.Component(TranslateX), t.Component(TranslateY), t.Component(TranslateZ)
	if tx != 0 || ty != 0 || tz != 0 {
		parts = append(parts, "translate3d("+
			formatNumber(tx)+"px, "+formatNumber(ty)+"px, "+formatNumber(tz)+"px)")
	}
	if rz := t.Component(RotateZ); rz != 0 {
		parts = append(parts, "rotate("+formatNumber(rz)+"deg)")
	}
	if rx := t.Component(RotateX); rx != 0 {
		parts = append(parts, "rotateX("+formatNumber(rx)+"deg)")
	}
	if ry := t.Component(RotateY); ry != 0 {
		parts = append(parts, "rotateY("+formatNumber(ry)+"deg)")
	}
	sx, sy, sz := t.Component(ScaleX), t.Component(ScaleY), t.Component(ScaleZ)
	if sx != 1 || sy != 1 || sz != 1 {
		parts = append(parts, "scale3d("+
			formatNumber(sx)+", "+formatNumber(sy)+", "+formatNumber(sz)+")")
	}
	kx, ky := t.Component(SkewX), t.Component(SkewY)
	if kx != 0 || ky != 0 {
		parts = append(parts, "skew("+formatNumber(kx)+"deg, "+formatNumber(ky)+"deg)")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Translate is a convenience constructor for a 2D translation.
func Translate(x, y float64) Transform {
	return Transform{}.With(TranslateX, x).With(TranslateY, y)
}

// Scale is a convenience constructor for a uniform 2D scale.
func Scale(s float64) Transform {
	return Transform{}.With(ScaleX, s).With(ScaleY, s)
}

// Rotate is a convenience constructor for a rotation in degrees.
func Rotate(deg float64) Transform {
	return Transform{}.With(RotateZ, deg)
}
