package kinetic

import (
	"errors"
	"testing"
)

func TestValueCSS(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"number", Number(0.5), "0.5"},
		{"pixels", Pixels(100), "100px"},
		{"percent", Percent(12.5), "12.5%"},
		{"degrees", Degrees(-45), "-45deg"},
		{"radians", Radians(1.2), "1.2rad"},
		{"rounded", Pixels(1.234567), "1.2346px"},
		{"negative zero", Pixels(-0.00001), "0px"},
		{"string", String("block"), "block"},
		{"color", Color{R: 1, G: 0.5, B: 0, A: 0.25}, "rgba(255, 128, 0, 0.25)"},
		{"color clamped", Color{R: 2, G: -1, B: 0, A: 3}, "rgba(255, 0, 0, 1)"},
		{"complex", Complex{Kind: "path", Text: "M0 0L1 1"}, "M0 0L1 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.v); got != tt.want {
				t.Errorf("Serialize(%#v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
	if Serialize(nil) != "" {
		t.Error("Serialize(nil) should be empty")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"100px", Pixels(100)},
		{" 50% ", Percent(50)},
		{"45deg", Degrees(45)},
		{"1.5rad", Radians(1.5)},
		{"0.5", Number(0.5)},
		{"#ff8800", RGBA(255, 136, 0, 1)},
		{"red", RGBA(255, 0, 0, 1)},
		{"block", String("block")},
		{"", String("")},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); !Equal(got, tt.want) {
			t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#f80", RGBA(255, 136, 0, 1)},
		{"#ff880080", RGBA(255, 136, 0, 128.0/255)},
		{"rgb(255, 0, 0)", Color{R: 1, A: 1}},
		{"rgba(0, 0, 255, 0.5)", Color{B: 1, A: 0.5}},
		{"rgb(100% 0% 0% / 50%)", Color{R: 1, A: 0.5}},
		{"transparent", Color{}},
		{"CornflowerBlue", RGBA(100, 149, 237, 1)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"#12", "rgb(1,2)", "nocolor", "#gggggg"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestCompatibleAndEqual(t *testing.T) {
	if !Compatible(Pixels(1), Pixels(2)) {
		t.Error("same variant should be compatible")
	}
	if Compatible(Pixels(1), Percent(1)) {
		t.Error("px and % should not be compatible")
	}
	if Compatible(Complex{Kind: "a"}, Complex{Kind: "b"}) {
		t.Error("complex kinds must match")
	}
	if Compatible(nil, Number(1)) {
		t.Error("nil is never compatible")
	}
	if !Equal(Complex{Kind: "k", Payload: []int{1}}, Complex{Kind: "k", Payload: []int{1}}) {
		t.Error("complex payloads should compare deeply")
	}
	if Equal(Number(1), Pixels(1)) {
		t.Error("different variants are not equal")
	}
	if !Equal(nil, nil) || Equal(nil, Number(0)) {
		t.Error("nil equality")
	}
}
