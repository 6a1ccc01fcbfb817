package windmill

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a straight (non-premultiplied) RGBA color with components in
// [0, 1], laid out the way the color attribute is uploaded.
type Color = mgl32.Vec4

// Common colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// RGBA converts c to an 8-bit color as a framebuffer write would store it:
// components are clamped and not premultiplied.
func RGBA(c Color) color.RGBA {
	return color.RGBA{
		R: unorm8(c[0]),
		G: unorm8(c[1]),
		B: unorm8(c[2]),
		A: unorm8(c[3]),
	}
}

// NRGBA converts c to the standard non-premultiplied 8-bit color.
func NRGBA(c Color) color.NRGBA {
	rgba := RGBA(c)
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
}

// Interpolate blends three colors with barycentric weights.
func Interpolate(c0, c1, c2 Color, w0, w1, w2 float32) Color {
	return c0.Mul(w0).Add(c1.Mul(w1)).Add(c2.Mul(w2))
}

// unorm8 converts a normalized float to 8 bits with round-to-nearest.
func unorm8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
