// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/scene"
	"github.com/gogpu/windmill/shader"
	"github.com/gogpu/windmill/shape"
	"github.com/gogpu/windmill/store"
)

// newTestRasterizer returns a rasterizer over a size x size target with every
// shape uploaded.
func newTestRasterizer(t *testing.T, size int) *Rasterizer {
	t.Helper()

	prog, err := shader.LoadProgram(shader.GLSLInfos())
	if err != nil {
		t.Fatalf("LoadProgram() error = %v", err)
	}
	r, err := NewRasterizer(NewPixmapTarget(size, size), prog)
	if err != nil {
		t.Fatalf("NewRasterizer() error = %v", err)
	}

	geoms, err := shape.BuildAll()
	if err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}
	st, err := store.New(geoms)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	if err := st.Upload(r); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	return r
}

func drawShape(r *Rasterizer, k shape.Kind, s shape.Slot, model mgl32.Mat4, mode scene.Mode) {
	r.UseProgram()
	r.SetModel(model)
	n := r.BindGeometry(k)
	r.BindColors(s)
	r.Draw(mode, n)
}

func TestRasterizerFullScreenSquare(t *testing.T) {
	r := newTestRasterizer(t, 8)
	r.Clear(windmill.Transparent)
	drawShape(r, shape.Square, shape.SkyBlue, mgl32.Ident4(), scene.Triangles)

	st := r.Stats()
	if st.Draws != 1 || st.Triangles != 2 {
		t.Errorf("Stats() = %+v, want 1 draw of 2 triangles", st)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if r.Target().GetPixel(x, y).A == 0 {
				t.Fatalf("pixel (%d, %d) not covered", x, y)
			}
		}
	}
}

func TestRasterizerMirroredWinding(t *testing.T) {
	r := newTestRasterizer(t, 8)
	r.Clear(windmill.Transparent)
	drawShape(r, shape.Square, shape.GrassGreen, mgl32.Scale3D(-1, 1, 1), scene.Triangles)

	if got := r.Stats().Triangles; got != 2 {
		t.Errorf("Triangles = %d, want 2 for clockwise input", got)
	}
	if r.Target().GetPixel(0, 0).A == 0 {
		t.Error("mirrored square left pixels uncovered")
	}
}

func TestRasterizerTranslateScale(t *testing.T) {
	r := newTestRasterizer(t, 8)
	r.Clear(windmill.Transparent)
	model := mgl32.Translate3D(0.5, 0.5, 0).Mul4(mgl32.Scale3D(0.5, 0.5, 1))
	drawShape(r, shape.Square, shape.HouseBrown, model, scene.Triangles)

	tests := []struct {
		x, y    int
		covered bool
	}{
		{6, 1, true},  // top right
		{4, 3, true},  // quadrant corner
		{1, 6, false}, // bottom left
		{1, 1, false}, // top left
		{6, 6, false}, // bottom right
	}
	for _, tt := range tests {
		if got := r.Target().GetPixel(tt.x, tt.y).A != 0; got != tt.covered {
			t.Errorf("pixel (%d, %d) covered = %v, want %v", tt.x, tt.y, got, tt.covered)
		}
	}
}

func TestRasterizerFanCenterColor(t *testing.T) {
	r := newTestRasterizer(t, 9)
	r.Clear(windmill.Transparent)
	drawShape(r, shape.Sun, shape.SunYellow, mgl32.Scale3D(0.5, 0.5, 1), scene.Fan)

	center := shape.DefaultSun().Center
	want := color.RGBA{
		R: uint8(center[0]*255 + 0.5),
		G: uint8(center[1]*255 + 0.5),
		B: uint8(center[2]*255 + 0.5),
		A: uint8(center[3]*255 + 0.5),
	}
	if got := r.Target().GetPixel(4, 4); got != want {
		t.Errorf("sun center = %v, want %v", got, want)
	}
	if got := r.Stats().Triangles; got == 0 || got > shape.SunRimVertices-1 {
		t.Errorf("fan triangles = %d, want (0, %d]", got, shape.SunRimVertices-1)
	}
	if r.Target().GetPixel(0, 0).A != 0 {
		t.Error("corner pixel covered by a half-size sun")
	}
}

func TestRasterizerDepthClip(t *testing.T) {
	r := newTestRasterizer(t, 8)
	r.Clear(windmill.Transparent)
	drawShape(r, shape.Square, shape.SkyBlue, mgl32.Translate3D(0, 0, 2), scene.Triangles)

	if got := r.Stats().Pixels; got != 0 {
		t.Errorf("Pixels = %d, want 0 beyond the far plane", got)
	}

	// z = 1 lies on the far plane and is kept.
	drawShape(r, shape.Square, shape.SkyBlue, mgl32.Translate3D(0, 0, 1), scene.Triangles)
	if got := r.Stats().Pixels; got == 0 {
		t.Error("geometry on the far plane was clipped")
	}
}

func TestRasterizerDegenerate(t *testing.T) {
	r := newTestRasterizer(t, 8)
	r.Clear(windmill.Transparent)
	drawShape(r, shape.Triangle, shape.FanBlue, mgl32.Scale3D(0, 0.3, -0.1), scene.Triangles)

	st := r.Stats()
	if st.Draws != 1 || st.Triangles != 0 || st.Pixels != 0 {
		t.Errorf("Stats() = %+v, want a draw with no area", st)
	}
}

func TestRasterizerIncompleteState(t *testing.T) {
	r := newTestRasterizer(t, 4)
	r.Clear(windmill.Transparent)

	r.SetModel(mgl32.Ident4())
	n := r.BindGeometry(shape.Square)
	r.BindColors(shape.SkyBlue)
	r.Draw(scene.Triangles, n)
	if got := r.Stats().Draws; got != 0 {
		t.Errorf("Draws = %d without UseProgram, want 0", got)
	}

	r.UseProgram()
	r.Draw(scene.Triangles, n+3)
	if got := r.Stats().Draws; got != 0 {
		t.Errorf("Draws = %d past the buffer end, want 0", got)
	}
}

func TestRasterizerClearResetsStats(t *testing.T) {
	r := newTestRasterizer(t, 4)
	drawShape(r, shape.Square, shape.SkyBlue, mgl32.Ident4(), scene.Triangles)
	r.Clear(windmill.Transparent)
	if got := r.Stats(); got != (Stats{}) {
		t.Errorf("Stats() after Clear = %+v", got)
	}
}

func TestRasterizerUploadErrors(t *testing.T) {
	prog, err := shader.LoadProgram(shader.GLSLInfos())
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRasterizer(NewPixmapTarget(2, 2), prog)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.UploadPositions(shape.Square, make([]float32, 5), 3); !errors.Is(err, ErrBufferSize) {
		t.Errorf("UploadPositions() error = %v, want ErrBufferSize", err)
	}
	if err := r.UploadColors(shape.SkyBlue, make([]float32, 6)); !errors.Is(err, ErrBufferSize) {
		t.Errorf("UploadColors() error = %v, want ErrBufferSize", err)
	}
}

func TestRasterizerMissingSymbol(t *testing.T) {
	sources := []shader.Source{
		{Stage: shader.Vertex, Path: "a.vert", Language: shader.GLSL, Code: "in vec2 vPosition;\nvoid main() {}\n"},
		{Stage: shader.Fragment, Path: "a.frag", Language: shader.GLSL, Code: "void main() {}\n"},
	}
	prog, err := shader.NewProgram(sources)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewRasterizer(NewPixmapTarget(2, 2), prog); !errors.Is(err, shader.ErrMissingSymbol) {
		t.Errorf("NewRasterizer() error = %v, want ErrMissingSymbol", err)
	}
}
