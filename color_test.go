package windmill

import (
	"image/color"
	"testing"
)

func TestRGBA(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want color.RGBA
	}{
		{"black", Black, color.RGBA{0, 0, 0, 255}},
		{"white", White, color.RGBA{255, 255, 255, 255}},
		{"transparent red keeps color", Color{1, 0, 0, 0}, color.RGBA{255, 0, 0, 0}},
		{"half", Color{0.5, 0.35, 0, 1}, color.RGBA{128, 89, 0, 255}},
		{"clamped", Color{-1, 2, 0.5, 1}, color.RGBA{0, 255, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RGBA(tt.c); got != tt.want {
				t.Errorf("RGBA(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestInterpolate(t *testing.T) {
	red := Color{1, 0, 0, 1}
	green := Color{0, 1, 0, 1}
	blue := Color{0, 0, 1, 1}

	got := Interpolate(red, green, blue, 1, 0, 0)
	if got != red {
		t.Errorf("Interpolate at vertex 0 = %v, want %v", got, red)
	}

	got = Interpolate(red, green, blue, 0.5, 0.5, 0)
	want := Color{0.5, 0.5, 0, 1}
	if !got.ApproxEqual(want) {
		t.Errorf("Interpolate midpoint = %v, want %v", got, want)
	}
}
