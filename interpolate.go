package kinetic

// ComplexInterpolator blends two Complex values of the same Kind. t is eased
// progress and may leave [0, 1] for overshooting curves.
type ComplexInterpolator func(from, to Complex, t float64) Complex

// Interpolate blends from toward to at eased progress t using the built-in
// rules. Complex values without a registered interpolator switch discretely.
func Interpolate(from, to Value, t float64) Value {
	return interpolate(nil, from, to, t)
}

// interpolate applies the per-variant rules:
//
//   - t == 0 yields from and t == 1 yields to exactly
//   - incompatible values switch to to at t >= 0.5
//   - String switches at t >= 1
//   - scalars lerp their inner value and keep to's variant
//   - Color lerps in linear space, Transform component-wise
//   - Complex calls the interpolator registered for its Kind
func interpolate(reg map[string]ComplexInterpolator, from, to Value, t float64) Value {
	if from == nil {
		return to
	}
	if to == nil {
		return from
	}
	if t == 0 {
		return from
	}
	if t == 1 {
		return to
	}
	if !Compatible(from, to) {
		return discrete(from, to, t)
	}
	switch tv := to.(type) {
	case String:
		if t >= 1 {
			return to
		}
		return from
	case Color:
		return lerpColor(from.(Color), tv, t)
	case Transform:
		return lerpTransform(from.(Transform), tv, t)
	case Complex:
		fn := reg[tv.Kind]
		if fn == nil {
			return discrete(from, to, t)
		}
		return fn(from.(Complex), tv, t)
	}
	a, _ := scalarOf(from)
	b, _ := scalarOf(to)
	return withScalar(to, a+(b-a)*t)
}

func discrete(from, to Value, t float64) Value {
	if t >= 0.5 {
		return to
	}
	return from
}
