package kinetic

import (
	"math"
	"strings"
)

// Target is an ordered mapping from property name to value describing an
// intended end state. A nil *Target is an empty target.
type Target struct {
	keys []string
	vals map[string]Value
}

// NewTarget returns an empty target.
func NewTarget() *Target {
	return &Target{vals: make(map[string]Value)}
}

// Set assigns prop and returns t for chaining. Re-setting a property keeps
// its original position. A nil value removes the property.
func (t *Target) Set(prop string, v Value) *Target {
	if t.vals == nil {
		t.vals = make(map[string]Value)
	}
	if v == nil {
		t.Delete(prop)
		return t
	}
	if _, ok := t.vals[prop]; !ok {
		t.keys = append(t.keys, prop)
	}
	t.vals[prop] = v
	return t
}

// Delete removes prop.
func (t *Target) Delete(prop string) {
	if t == nil {
		return
	}
	if _, ok := t.vals[prop]; !ok {
		return
	}
	delete(t.vals, prop)
	for i, k := range t.keys {
		if k == prop {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value for prop.
func (t *Target) Get(prop string) (Value, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.vals[prop]
	return v, ok
}

// Len returns the number of properties.
func (t *Target) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the properties in insertion order.
func (t *Target) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Each calls fn for every property in insertion order.
func (t *Target) Each(fn func(prop string, v Value)) {
	if t == nil {
		return
	}
	for _, k := range t.keys {
		fn(k, t.vals[k])
	}
}

// Clone returns a shallow copy.
func (t *Target) Clone() *Target {
	out := NewTarget()
	t.Each(func(k string, v Value) { out.Set(k, v) })
	return out
}

// Merge returns a new target holding t's properties overridden by o's.
func (t *Target) Merge(o *Target) *Target {
	out := t.Clone()
	o.Each(func(k string, v Value) { out.Set(k, v) })
	return out
}

// Equal reports whether t and o hold the same properties with deeply equal
// values. Insertion order is ignored.
func (t *Target) Equal(o *Target) bool {
	if t == o {
		return true
	}
	if t.Len() != o.Len() {
		return false
	}
	for _, k := range t.Keys() {
		ov, ok := o.Get(k)
		if !ok || !Equal(t.vals[k], ov) {
			return false
		}
	}
	return true
}

// Changed returns the properties of next whose values differ from t.
func (t *Target) Changed(next *Target) []string {
	var out []string
	next.Each(func(k string, v Value) {
		if cur, ok := t.Get(k); !ok || !Equal(cur, v) {
			out = append(out, k)
		}
	})
	return out
}

// Only returns a target restricted to props.
func (t *Target) Only(props []string) *Target {
	out := NewTarget()
	for _, p := range props {
		if v, ok := t.Get(p); ok {
			out.Set(p, v)
		}
	}
	return out
}

// --- Sink routing ---

// Route is where a property is written on the element sink.
type Route uint8

const (
	RouteStyle     Route = iota // direct style property
	RouteTransform              // assembled into the single transform style
	RouteClass                  // class string
	RouteAttribute              // attribute, from the "attr:" prefix
)

// attrPrefix marks attribute properties, e.g. "attr:aria-hidden".
const attrPrefix = "attr:"

// transformProps maps property names to the components they drive.
var transformProps = map[string][]TransformComponent{
	"x":          {TranslateX},
	"y":          {TranslateY},
	"z":          {TranslateZ},
	"translateX": {TranslateX},
	"translateY": {TranslateY},
	"translateZ": {TranslateZ},
	"rotate":     {RotateZ},
	"rotateZ":    {RotateZ},
	"rotateX":    {RotateX},
	"rotateY":    {RotateY},
	"scale":      {ScaleX, ScaleY},
	"scaleX":     {ScaleX},
	"scaleY":     {ScaleY},
	"scaleZ":     {ScaleZ},
	"skew":       {SkewX, SkewY},
	"skewX":      {SkewX},
	"skewY":      {SkewY},
}

// RouteOf returns the static routing decision for prop.
func RouteOf(prop string) Route {
	if prop == "transform" {
		return RouteTransform
	}
	if _, ok := transformProps[prop]; ok {
		return RouteTransform
	}
	if prop == "class" || prop == "className" {
		return RouteClass
	}
	if strings.HasPrefix(prop, attrPrefix) {
		return RouteAttribute
	}
	return RouteStyle
}

// SplitTarget is a target divided by sink destination.
type SplitTarget struct {
	Transform  Transform
	Styles     map[string]string
	Class      string
	HasClass   bool
	Attributes map[string]string
}

// SplitTargetBySink divides t into transform components, style writes,
// class and attributes. Style names are converted to kebab-case.
func SplitTargetBySink(t *Target) SplitTarget {
	out := SplitTarget{Styles: map[string]string{}, Attributes: map[string]string{}}
	t.Each(func(prop string, v Value) {
		switch RouteOf(prop) {
		case RouteTransform:
			out.Transform = applyTransformProp(out.Transform, prop, v)
		case RouteClass:
			out.Class = Serialize(v)
			out.HasClass = true
		case RouteAttribute:
			out.Attributes[strings.TrimPrefix(prop, attrPrefix)] = Serialize(v)
		default:
			out.Styles[StyleName(prop)] = Serialize(v)
		}
	})
	return out
}

// StyleName converts a camelCase property name to its kebab-case style
// name. Custom properties ("--x") and names already containing dashes pass
// through.
func StyleName(prop string) string {
	if strings.HasPrefix(prop, "--") || strings.ContainsRune(prop, '-') {
		return prop
	}
	var b strings.Builder
	for i, r := range prop {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// applyTransformProp writes a transform-routed property into tr.
func applyTransformProp(tr Transform, prop string, v Value) Transform {
	if prop == "transform" {
		if o, ok := v.(Transform); ok {
			return tr.Merge(o)
		}
		return tr
	}
	comps := transformProps[prop]
	f, ok := componentScalar(comps, v)
	if !ok {
		return tr
	}
	for _, c := range comps {
		tr = tr.With(c, f)
	}
	return tr
}

// componentScalar converts v to the unit of comps: degrees for rotations
// and skews, px for translations.
func componentScalar(comps []TransformComponent, v Value) (float64, bool) {
	if len(comps) == 0 {
		return 0, false
	}
	angular := comps[0] >= RotateX && comps[0] <= RotateZ || comps[0] >= SkewX
	if r, ok := v.(Radians); ok && angular {
		return float64(r) * 180 / math.Pi, true
	}
	return scalarOf(v)
}

// transformPropValue reads the current value of a transform-routed property
// back from tr, in the variant of like when like is a scalar.
func transformPropValue(tr Transform, prop string, like Value) (Value, bool) {
	if prop == "transform" {
		return tr, true
	}
	comps, ok := transformProps[prop]
	if !ok {
		return nil, false
	}
	f := tr.Component(comps[0])
	switch like.(type) {
	case Radians:
		return Radians(f * math.Pi / 180), true
	case Pixels, Percent, Degrees, Number:
		return withScalar(like, f), true
	}
	if comps[0] >= ScaleX && comps[0] <= ScaleZ {
		return Number(f), true
	}
	if comps[0] <= TranslateZ {
		return Pixels(f), true
	}
	return Degrees(f), true
}
