package ebitenhost

import (
	"math"
	"strconv"
	"strings"

	"github.com/phanxgames/kinetic"
)

// boxTransform is the 2D part of a written transform.
type boxTransform struct {
	x, y           float64
	rotate         float64 // degrees
	scaleX, scaleY float64
}

var identity = boxTransform{scaleX: 1, scaleY: 1}

// Box is a rectangular element sink. Layout is the untransformed box in
// screen pixels; the host draws it offset, rotated and scaled about its
// center by the last written transform.
type Box struct {
	Name   string
	Layout kinetic.Rect
	// Hidden boxes are neither drawn nor hit tested.
	Hidden bool

	fill    kinetic.Color
	opacity float64
	tr      boxTransform
	class   string
	attrs   map[string]string
	writes  int
	removed bool

	listeners map[kinetic.PointerKind][]boxListener
	nextID    kinetic.ListenerID
}

type boxListener struct {
	id kinetic.ListenerID
	fn kinetic.PointerHandler
}

// NewBox returns a visible box filled with fill.
func NewBox(name string, layout kinetic.Rect, fill kinetic.Color) *Box {
	return &Box{
		Name:      name,
		Layout:    layout,
		fill:      fill,
		opacity:   1,
		tr:        identity,
		attrs:     map[string]string{},
		listeners: map[kinetic.PointerKind][]boxListener{},
	}
}

// Opacity returns the written opacity.
func (b *Box) Opacity() float64 { return b.opacity }

// Fill returns the fill color.
func (b *Box) Fill() kinetic.Color { return b.fill }

// Offset returns the written translation.
func (b *Box) Offset() kinetic.Vec2 { return kinetic.Vec2{X: b.tr.x, Y: b.tr.y} }

// Rotation returns the written rotation in degrees.
func (b *Box) Rotation() float64 { return b.tr.rotate }

// Scale returns the written scale.
func (b *Box) Scale() (sx, sy float64) { return b.tr.scaleX, b.tr.scaleY }

// Class returns the written class string.
func (b *Box) Class() string { return b.class }

// Attribute returns a written attribute.
func (b *Box) Attribute(name string) string { return b.attrs[name] }

// Writes returns the number of batched style writes received.
func (b *Box) Writes() int { return b.writes }

// Bounds returns the displayed box: Layout translated and scaled about its
// center. Rotation is ignored.
func (b *Box) Bounds() kinetic.Rect {
	w, h := b.Layout.Width*math.Abs(b.tr.scaleX), b.Layout.Height*math.Abs(b.tr.scaleY)
	c := b.Layout.Center()
	return kinetic.Rect{
		X:      c.X + b.tr.x - w/2,
		Y:      c.Y + b.tr.y - h/2,
		Width:  w,
		Height: h,
	}
}

// Contains reports whether the screen point lies inside the displayed box.
func (b *Box) Contains(x, y float64) bool {
	return !b.Hidden && !b.removed && b.Bounds().Contains(x, y)
}

// Remove tears the box down. The element reports disposed afterwards.
func (b *Box) Remove() { b.removed = true }

// Disposed implements kinetic.Disposable.
func (b *Box) Disposed() bool { return b.removed }

// WriteStyles implements kinetic.ElementSink. Unknown styles are ignored.
func (b *Box) WriteStyles(styles map[string]string) {
	b.writes++
	for name, v := range styles {
		switch name {
		case "opacity":
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				b.opacity = clamp01(f)
			}
		case "background-color", "background", "color":
			if c, err := kinetic.ParseColor(v); err == nil {
				b.fill = c
			}
		case "transform":
			b.tr = parseTransform(v)
		}
	}
}

// WriteClass implements kinetic.ElementSink.
func (b *Box) WriteClass(class string) { b.class = class }

// WriteAttribute implements kinetic.ElementSink.
func (b *Box) WriteAttribute(name, value string) { b.attrs[name] = value }

// ReadBoundingRect implements kinetic.ElementSink. It reports Layout.
func (b *Box) ReadBoundingRect() kinetic.Rect { return b.Layout }

// AddPointerListener implements kinetic.ElementSink.
func (b *Box) AddPointerListener(kind kinetic.PointerKind, h kinetic.PointerHandler) kinetic.ListenerID {
	b.nextID++
	b.listeners[kind] = append(b.listeners[kind], boxListener{id: b.nextID, fn: h})
	return b.nextID
}

// RemovePointerListener implements kinetic.ElementSink.
func (b *Box) RemovePointerListener(kind kinetic.PointerKind, id kinetic.ListenerID) {
	ls := b.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			b.listeners[kind] = append(ls[:i], ls[i+1:]...)
			return
		}
	}
}

// dispatch delivers ev to the listeners registered for its kind.
func (b *Box) dispatch(ev kinetic.PointerEvent) {
	for _, l := range append([]boxListener(nil), b.listeners[ev.Kind]...) {
		l.fn(ev)
	}
}

func (b *Box) listening() bool {
	for _, ls := range b.listeners {
		if len(ls) > 0 {
			return true
		}
	}
	return false
}

// parseTransform reads the translate3d, rotate and scale3d functions of a
// serialized transform. Other functions are ignored.
func parseTransform(css string) boxTransform {
	tr := identity
	css = strings.TrimSpace(css)
	for css != "" && css != "none" {
		open := strings.IndexByte(css, '(')
		end := strings.IndexByte(css, ')')
		if open < 0 || end < open {
			break
		}
		name := strings.TrimSpace(css[:open])
		args := splitArgs(css[open+1 : end])
		switch name {
		case "translate3d", "translate":
			if len(args) > 0 {
				tr.x = args[0]
			}
			if len(args) > 1 {
				tr.y = args[1]
			}
		case "translateX":
			if len(args) > 0 {
				tr.x = args[0]
			}
		case "translateY":
			if len(args) > 0 {
				tr.y = args[0]
			}
		case "rotate", "rotateZ":
			if len(args) > 0 {
				tr.rotate = args[0]
			}
		case "scale3d", "scale":
			if len(args) > 0 {
				tr.scaleX, tr.scaleY = args[0], args[0]
			}
			if len(args) > 1 {
				tr.scaleY = args[1]
			}
		}
		css = strings.TrimSpace(css[end+1:])
	}
	return tr
}

func splitArgs(s string) []float64 {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimSuffix(part, "px")
		part = strings.TrimSuffix(part, "deg")
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			f = 0
		}
		out = append(out, f)
	}
	return out
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

var _ kinetic.ElementSink = (*Box)(nil)
