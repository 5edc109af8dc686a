package kinetic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an RGBA color with sRGB-encoded components in [0, 1]. Not
// premultiplied. Interpolation happens in linear space.
type Color struct {
	R, G, B, A float64
}

// RGBA builds a Color from 0-255 channels and a 0-1 alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

// CSS renders the color as rgba(r, g, b, a), clamping channels to [0, 255]
// and alpha to [0, 1].
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		channel255(c.R), channel255(c.G), channel255(c.B), formatNumber(clamp01(c.A)))
}

func channel255(v float64) int {
	return int(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// srgbToLinear decodes one sRGB channel.
func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// linearToSRGB encodes one linear channel.
func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// lerpColor interpolates channel-wise in linear space. Alpha is already
// linear.
func lerpColor(from, to Color, t float64) Color {
	mix := func(a, b float64) float64 {
		la := srgbToLinear(clamp01(a))
		lb := srgbToLinear(clamp01(b))
		return linearToSRGB(clamp01(la + (lb-la)*t))
	}
	return Color{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: from.A + (to.A-from.A)*t,
	}
}

// ParseColor parses #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba(),
// "transparent" and CSS color names.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return Color{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFuncColor(s)
	}
	if rgba, ok := colornames.Map[s]; ok {
		return RGBA(rgba.R, rgba.G, rgba.B, float64(rgba.A)/255), nil
	}
	return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
}

func parseHexColor(s string) (Color, error) {
	hex := s[1:]
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
	if len(hex) == 6 {
		n = n<<8 | 0xff
	}
	return RGBA(uint8(n>>24), uint8(n>>16), uint8(n>>8), float64(uint8(n))/255), nil
}

func parseFuncColor(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
	parts := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		pct := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, ErrInvalidColor)
		}
		switch {
		case pct:
			f /= 100
		case i < 3:
			f /= 255
		}
		ch[i] = clamp01(f)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
