package kinetic

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrInvalidValue is returned when a declarative value cannot be parsed.
	ErrInvalidValue = errors.New("kinetic: invalid value")
	// ErrInvalidColor is returned by ParseColor for unrecognized colors.
	ErrInvalidColor = errors.New("kinetic: invalid color")
)

// Value is an animatable value. The concrete variants are Number, Pixels,
// Percent, Degrees, Radians, Color, Transform, String and Complex.
type Value interface {
	// CSS returns the host string for the value.
	CSS() string
	isValue()
}

// Number is a unitless scalar.
type Number float64

// Pixels is a length in px.
type Pixels float64

// Percent is a percentage.
type Percent float64

// Degrees is an angle in degrees.
type Degrees float64

// Radians is an angle in radians.
type Radians float64

// String is a non-interpolating value. It switches from the start value to
// the end value when progress reaches 1.
type String string

// Complex delegates interpolation to a function registered on the engine
// under Kind. Payload is opaque to the runtime.
type Complex struct {
	Kind    string
	Payload any
	// Text is the serialized form written to the sink.
	Text string
}

func (Number) isValue()    {}
func (Pixels) isValue()    {}
func (Percent) isValue()   {}
func (Degrees) isValue()   {}
func (Radians) isValue()   {}
func (String) isValue()    {}
func (Complex) isValue()   {}
func (Color) isValue()     {}
func (Transform) isValue() {}

func (v Number) CSS() string  { return formatNumber(float64(v)) }
func (v Pixels) CSS() string  { return formatNumber(float64(v)) + "px" }
func (v Percent) CSS() string { return formatNumber(float64(v)) + "%" }
func (v Degrees) CSS() string { return formatNumber(float64(v)) + "deg" }
func (v Radians) CSS() string { return formatNumber(float64(v)) + "rad" }
func (v String) CSS() string  { return string(v) }
func (v Complex) CSS() string { return v.Text }

// Serialize returns the host string for v. A nil value serializes to "".
func Serialize(v Value) string {
	if v == nil {
		return ""
	}
	return v.CSS()
}

// scalarOf extracts the inner scalar of the unit variants.
func scalarOf(v Value) (float64, bool) {
	switch s := v.(type) {
	case Number:
		return float64(s), true
	case Pixels:
		return float64(s), true
	case Percent:
		return float64(s), true
	case Degrees:
		return float64(s), true
	case Radians:
		return float64(s), true
	}
	return 0, false
}

// withScalar returns a value of the same variant as like carrying f.
func withScalar(like Value, f float64) Value {
	switch like.(type) {
	case Pixels:
		return Pixels(f)
	case Percent:
		return Percent(f)
	case Degrees:
		return Degrees(f)
	case Radians:
		return Radians(f)
	}
	return Number(f)
}

// Compatible reports whether a and b can be interpolated component-wise.
// Values are compatible when they share a variant; Complex values must also
// share a Kind.
func Compatible(a, b Value) bool {
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if ca, ok := a.(Complex); ok {
		return ca.Kind == b.(Complex).Kind
	}
	return true
}

// Equal reports deep equality of two values.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ca, aok := a.(Complex)
	cb, bok := b.(Complex)
	if aok || bok {
		return aok && bok && ca.Kind == cb.Kind && ca.Text == cb.Text &&
			reflect.DeepEqual(ca.Payload, cb.Payload)
	}
	return a == b
}

// formatNumber renders f with at most four decimals and no trailing zeros.
// Non-finite numbers render as "0".
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	r := math.Round(f*1e4) / 1e4
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ParseValue parses a declarative value string. Unit suffixes px, %, deg
// and rad select the matching variant; plain numbers become Number; colors
// (hex, rgb(), rgba(), CSS names) become Color; anything else is a String.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return String("")
	}
	for _, u := range []struct {
		suffix string
		mk     func(float64) Value
	}{
		{"px", func(f float64) Value { return Pixels(f) }},
		{"%", func(f float64) Value { return Percent(f) }},
		{"deg", func(f float64) Value { return Degrees(f) }},
		{"rad", func(f float64) Value { return Radians(f) }},
	} {
		if strings.HasSuffix(s, u.suffix) {
			if f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, u.suffix)), 64); err == nil {
				return u.mk(f)
			}
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	if c, err := ParseColor(s); err == nil {
		return c
	}
	return String(s)
}
