// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/windmill"
)

// RenderTarget defines where rendering output goes.
//
// Pixels are stored the way a framebuffer stores them: 8-bit straight RGBA,
// written without blending. Alpha is carried but never composited.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data.
	// Each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	target.Clear(windmill.Black)
//	img := target.Opaque()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with c.
func (t *PixmapTarget) Clear(c windmill.Color) {
	rgba := windmill.RGBA(c)
	pix := t.img.Pix
	if len(pix) < 4 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = rgba.R, rgba.G, rgba.B, rgba.A
	// Double the filled prefix until the buffer is full.
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// SetPixel stores c at (x, y). Out-of-bounds writes are dropped.
func (t *PixmapTarget) SetPixel(x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(t.img.Rect)) {
		return
	}
	i := t.img.PixOffset(x, y)
	p := t.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// GetPixel returns the stored bytes at (x, y).
func (t *PixmapTarget) GetPixel(x, y int) color.RGBA {
	return t.img.RGBAAt(x, y)
}

// Resize creates a new backing image with the given dimensions.
// The contents are not preserved.
func (t *PixmapTarget) Resize(width, height int) {
	t.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Opaque returns a copy of the target with every alpha forced to 255, the
// way a window without an alpha channel presents the frame.
func (t *PixmapTarget) Opaque() *image.RGBA {
	out := image.NewRGBA(t.img.Rect)
	copy(out.Pix, t.img.Pix)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// Downsample scales src onto dst with a Catmull-Rom filter. It resolves a
// supersampled target to its presentation size. Pixels hold straight alpha
// and are never blended, so the result is resolved from the opaque frame and
// every alpha in dst is 255.
func Downsample(dst, src *PixmapTarget) {
	opaque := src.Opaque()
	if dst.Width() == src.Width() && dst.Height() == src.Height() {
		copy(dst.img.Pix, opaque.Pix)
		return
	}
	draw.CatmullRom.Scale(dst.img, dst.img.Rect, opaque, opaque.Rect, draw.Src, nil)
}

// Ensure PixmapTarget implements RenderTarget.
var _ RenderTarget = (*PixmapTarget)(nil)
