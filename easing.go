package kinetic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// ErrUnknownEasing is returned by ParseEasing for unrecognized names.
var ErrUnknownEasing = errors.New("kinetic: unknown easing")

// Easing maps progress in [0, 1] to eased progress. Every easing returns 0
// at 0 and 1 at 1; back and spring curves may overshoot in between.
type Easing interface {
	Ease(t float64) float64
}

// namedEasing adapts a gween curve. Values are pointers so Easing
// interfaces stay comparable.
// namedEasing wraps a gween curve. gween evaluates in float32, so values
// inside (0, 1) carry about 1e-7 of error against the closed form; the
// endpoints are exact.
type namedEasing struct {
	name string
	css  string
	fn   ease.TweenFunc
}

func (e *namedEasing) Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return float64(e.fn(float32(t), 0, 1, 1))
}

func (e *namedEasing) String() string { return e.name }

// FromTween wraps any gween easing function, for curves without a
// predefined variable. Like the named curves it has float32 precision
// inside (0, 1).
func FromTween(name string, fn ease.TweenFunc) Easing {
	return &namedEasing{name: name, css: "linear", fn: fn}
}

// Named easing curves. EaseIn/EaseOut/EaseInOut are quadratic. They are
// evaluated by gween in float32: mid-curve values match the closed forms
// to about 1e-7, while 0 and 1 map exactly to 0 and 1.
var (
	Linear    Easing = &namedEasing{"linear", "linear", ease.Linear}
	EaseIn    Easing = &namedEasing{"easeIn", "ease-in", ease.InQuad}
	EaseOut   Easing = &namedEasing{"easeOut", "ease-out", ease.OutQuad}
	EaseInOut Easing = &namedEasing{"easeInOut", "ease-in-out", ease.InOutQuad}
	CircIn    Easing = &namedEasing{"circIn", "cubic-bezier(0.55, 0.055, 0.675, 0.19)", ease.InCirc}
	CircOut   Easing = &namedEasing{"circOut", "cubic-bezier(0.215, 0.61, 0.355, 1)", ease.OutCirc}
	CircInOut Easing = &namedEasing{"circInOut", "cubic-bezier(0.645, 0.045, 0.355, 1)", ease.InOutCirc}
	BackIn    Easing = &namedEasing{"backIn", "cubic-bezier(0.6, -0.28, 0.735, 0.045)", ease.InBack}
	BackOut   Easing = &namedEasing{"backOut", "cubic-bezier(0.175, 0.885, 0.32, 1.275)", ease.OutBack}
	BackInOut Easing = &namedEasing{"backInOut", "cubic-bezier(0.68, -0.55, 0.265, 1.55)", ease.InOutBack}

	SineIn     Easing = &namedEasing{"sineIn", "cubic-bezier(0.12, 0, 0.39, 0)", ease.InSine}
	SineOut    Easing = &namedEasing{"sineOut", "cubic-bezier(0.61, 1, 0.88, 1)", ease.OutSine}
	SineInOut  Easing = &namedEasing{"sineInOut", "cubic-bezier(0.37, 0, 0.63, 1)", ease.InOutSine}
	CubicIn    Easing = &namedEasing{"cubicIn", "cubic-bezier(0.32, 0, 0.67, 0)", ease.InCubic}
	CubicOut   Easing = &namedEasing{"cubicOut", "cubic-bezier(0.33, 1, 0.68, 1)", ease.OutCubic}
	CubicInOut Easing = &namedEasing{"cubicInOut", "cubic-bezier(0.65, 0, 0.35, 1)", ease.InOutCubic}
	BounceOut  Easing = &namedEasing{"bounceOut", "linear", ease.OutBounce}
	ElasticOut Easing = &namedEasing{"elasticOut", "linear", ease.OutElastic}
)

var easingsByName = map[string]Easing{}

func init() {
	for _, e := range []Easing{
		Linear, EaseIn, EaseOut, EaseInOut, CircIn, CircOut, CircInOut,
		BackIn, BackOut, BackInOut, SineIn, SineOut, SineInOut,
		CubicIn, CubicOut, CubicInOut, BounceOut, ElasticOut,
	} {
		easingsByName[normalizeEasingName(e.(*namedEasing).name)] = e
	}
}

func normalizeEasingName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// ParseEasing resolves an easing by name: linear, easeIn, ease-out,
// circInOut, backIn, sineOut, ..., spring (default spring), or
// cubicBezier(x1, y1, x2, y2).
func ParseEasing(s string) (Easing, error) {
	n := normalizeEasingName(s)
	if e, ok := easingsByName[n]; ok {
		return e, nil
	}
	if n == "spring" {
		return Spring(SpringConfig{}), nil
	}
	for _, prefix := range []string{"cubicbezier(", "bezier("} {
		if strings.HasPrefix(n, prefix) && strings.HasSuffix(n, ")") {
			args := strings.Split(n[len(prefix):len(n)-1], ",")
			if len(args) != 4 {
				break
			}
			var p [4]float64
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return nil, fmt.Errorf("parse easing %q: %w", s, ErrUnknownEasing)
				}
				p[i] = f
			}
			return CubicBezier{X1: p[0], Y1: p[1], X2: p[2], Y2: p[3]}, nil
		}
	}
	return nil, fmt.Errorf("parse easing %q: %w", s, ErrUnknownEasing)
}

// EasingCSS returns the CSS timing-function for e.
func EasingCSS(e Easing) string {
	switch v := e.(type) {
	case *namedEasing:
		return v.css
	case CubicBezier:
		return fmt.Sprintf("cubic-bezier(%s, %s, %s, %s)",
			formatNumber(v.X1), formatNumber(v.Y1), formatNumber(v.X2), formatNumber(v.Y2))
	case SpringEasing:
		return "cubic-bezier(0.68, -0.55, 0.265, 1.55)"
	}
	return "linear"
}

// --- Cubic bezier ---

const (
	bezierNewtonIterations = 8
	bezierEpsilon          = 1e-6
	bezierBisectIterations = 64
)

// CubicBezier is a CSS-style timing curve through (0,0), (X1,Y1), (X2,Y2)
// and (1,1). X1 and X2 are clamped to [0, 1].
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// bezierCoord evaluates one axis of the curve at parameter s.
func bezierCoord(s, p1, p2 float64) float64 {
	// B(s) = 3(1-s)^2 s p1 + 3(1-s) s^2 p2 + s^3
	ms := 1 - s
	return 3*ms*ms*s*p1 + 3*ms*s*s*p2 + s*s*s
}

// bezierSlope is dB/ds for one axis.
func bezierSlope(s, p1, p2 float64) float64 {
	ms := 1 - s
	return 3*ms*ms*p1 + 6*ms*s*(p2-p1) + 3*s*s*(1-p2)
}

// solveX finds the curve parameter whose x equals x. Newton-Raphson first,
// bisection when the slope flattens or Newton does not converge.
func (b CubicBezier) solveX(x float64) float64 {
	x1 := clamp01(b.X1)
	x2 := clamp01(b.X2)
	s := x
	for i := 0; i < bezierNewtonIterations; i++ {
		err := bezierCoord(s, x1, x2) - x
		if math.Abs(err) < bezierEpsilon {
			return s
		}
		d := bezierSlope(s, x1, x2)
		if math.Abs(d) < bezierEpsilon {
			break
		}
		s = clamp01(s - err/d)
	}
	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < bezierBisectIterations; i++ {
		v := bezierCoord(s, x1, x2)
		if math.Abs(v-x) < bezierEpsilon {
			return s
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// Ease evaluates the curve's y at x = t.
func (b CubicBezier) Ease(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return bezierCoord(b.solveX(t), b.Y1, b.Y2)
}
