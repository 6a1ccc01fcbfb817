// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/scene"
	"github.com/gogpu/windmill/shader"
	"github.com/gogpu/windmill/shape"
	"github.com/gogpu/windmill/store"
)

// Errors returned by the rasterizer.
var (
	// ErrBufferSize is returned when an uploaded buffer does not match its
	// vertex layout.
	ErrBufferSize = errors.New("render: buffer size does not match layout")

	// ErrLayout is returned when a program's vertex layout cannot be fetched.
	ErrLayout = errors.New("render: unsupported vertex layout")
)

// Stats counts the work done since the last Clear.
type Stats struct {
	Draws     int
	Triangles int
	Pixels    int
}

// Rasterizer is a CPU implementation of the scene pipeline.
//
// It runs the transform program's vertex stage (model x position) on the
// CPU, maps clip space to the target's pixels and fills triangles at pixel
// centers with barycentric color interpolation. Writes replace the stored
// pixel; there is no blending, matching a pipeline with blending disabled.
//
// Rasterizer implements both [scene.Device] and [store.Uploader].
// It is not safe for concurrent use.
type Rasterizer struct {
	target *PixmapTarget

	// Vertex fetch, resolved from the program's layouts.
	posLayout gputypes.VertexBufferLayout
	colLayout gputypes.VertexBufferLayout
	posComps  int
	colComps  int

	positions [shape.NumKinds][]float32
	counts    [shape.NumKinds]int
	colors    [shape.NumSlots][]float32

	// Bound state.
	program bool
	model   mgl32.Mat4
	kind    shape.Kind
	slot    shape.Slot
	bound   bool
	colored bool

	stats Stats
}

// NewRasterizer returns a rasterizer drawing into target with the vertex
// layout of prog.
func NewRasterizer(target *PixmapTarget, prog *shader.Program) (*Rasterizer, error) {
	locs, err := prog.Locations()
	if err != nil {
		return nil, err
	}

	r := &Rasterizer{target: target, model: mgl32.Ident4()}
	layouts := locs.VertexLayouts()
	if len(layouts) != 2 {
		return nil, fmt.Errorf("%w: %d buffers", ErrLayout, len(layouts))
	}
	r.posLayout, r.colLayout = layouts[0], layouts[1]
	if r.posComps, err = fetchComponents(r.posLayout); err != nil {
		return nil, err
	}
	if r.colComps, err = fetchComponents(r.colLayout); err != nil {
		return nil, err
	}

	windmill.Logger().Debug("render: rasterizer ready",
		"width", target.Width(), "height", target.Height(),
		"program", prog.Language, "position", locs.Position, "color", locs.Color)
	return r, nil
}

// fetchComponents returns the float count of a single-attribute layout whose
// stride is tightly packed.
func fetchComponents(l gputypes.VertexBufferLayout) (int, error) {
	if len(l.Attributes) != 1 {
		return 0, fmt.Errorf("%w: %d attributes per buffer", ErrLayout, len(l.Attributes))
	}
	a := l.Attributes[0]
	n := int(shader.Components(a.Format))
	if n == 0 || a.Offset != 0 || l.ArrayStride != uint64(4*n) {
		return 0, fmt.Errorf("%w: format %v stride %d", ErrLayout, a.Format, l.ArrayStride)
	}
	return n, nil
}

// Target returns the target the rasterizer draws into.
func (r *Rasterizer) Target() *PixmapTarget {
	return r.target
}

// Stats returns the counters accumulated since the last Clear.
func (r *Rasterizer) Stats() Stats {
	return r.stats
}

// UploadPositions stores the positions of shape k.
func (r *Rasterizer) UploadPositions(k shape.Kind, data []float32, count int) error {
	if len(data) != count*r.posComps {
		return fmt.Errorf("%w: %s has %d floats for %d vertices", ErrBufferSize, k, len(data), count)
	}
	r.positions[k] = append([]float32(nil), data...)
	r.counts[k] = count
	return nil
}

// UploadColors stores the colors of slot s.
func (r *Rasterizer) UploadColors(s shape.Slot, data []float32) error {
	if len(data)%r.colComps != 0 {
		return fmt.Errorf("%w: %s has %d floats", ErrBufferSize, s, len(data))
	}
	r.colors[s] = append([]float32(nil), data...)
	return nil
}

// Clear fills the target with c and resets the stats.
func (r *Rasterizer) Clear(c windmill.Color) {
	r.target.Clear(c)
	r.stats = Stats{}
}

// UseProgram selects the transform program.
func (r *Rasterizer) UseProgram() {
	r.program = true
}

// SetModel sets the model matrix uniform.
func (r *Rasterizer) SetModel(m mgl32.Mat4) {
	r.model = m
}

// BindGeometry binds shape k and returns its vertex count.
func (r *Rasterizer) BindGeometry(k shape.Kind) int {
	r.kind = k
	r.bound = true
	return r.counts[k]
}

// BindColors binds the colors of slot s.
func (r *Rasterizer) BindColors(s shape.Slot) {
	r.slot = s
	r.colored = true
}

// Draw rasterizes count vertices of the bound buffers in the given mode.
// Draws with incomplete state are skipped and logged.
func (r *Rasterizer) Draw(mode scene.Mode, count int) {
	log := windmill.Logger()
	if !r.program || !r.bound || !r.colored {
		log.Warn("render: draw with incomplete state skipped",
			"program", r.program, "geometry", r.bound, "colors", r.colored)
		return
	}

	pos, col := r.positions[r.kind], r.colors[r.slot]
	if count > r.counts[r.kind] || count*r.colComps > len(col) {
		log.Warn("render: draw past end of buffer skipped",
			"shape", r.kind, "slot", r.slot, "count", count)
		return
	}

	verts := make([]vertex, count)
	for i := range verts {
		verts[i] = r.shade(pos[i*r.posComps:], col[i*r.colComps:])
	}

	r.stats.Draws++
	switch mode {
	case scene.Fan:
		for i := 1; i+1 < count; i++ {
			r.triangle(verts[0], verts[i], verts[i+1])
		}
	default:
		for i := 0; i+2 < count; i += 3 {
			r.triangle(verts[i], verts[i+1], verts[i+2])
		}
	}
}

// depthEpsilon absorbs interpolation error for geometry on a clip plane.
const depthEpsilon = 1e-5

// vertex is a shaded vertex in window coordinates.
type vertex struct {
	x, y, z float32
	color   windmill.Color
}

// shade runs the vertex stage: gl_Position = model x vec4(position, 0, 1),
// followed by the perspective divide and the viewport transform.
func (r *Rasterizer) shade(pos, col []float32) vertex {
	p := mgl32.Vec4{0, 0, 0, 1}
	copy(p[:], pos[:r.posComps])
	clip := r.model.Mul4x1(p)

	w := clip[3]
	if w == 0 {
		w = 1
	}
	ndc := clip.Vec3().Mul(1 / w)

	var c windmill.Color
	copy(c[:], col[:r.colComps])
	if r.colComps < 4 {
		c[3] = 1
	}

	width, height := float32(r.target.Width()), float32(r.target.Height())
	return vertex{
		x:     (ndc[0] + 1) * 0.5 * width,
		y:     (1 - ndc[1]) * 0.5 * height,
		z:     ndc[2],
		color: c,
	}
}

// triangle fills the pixels whose centers lie inside a, b, c.
func (r *Rasterizer) triangle(a, b, c vertex) {
	area := edge(a, b, c.x, c.y)
	if area == 0 || math.IsNaN(float64(area)) {
		return
	}
	r.stats.Triangles++

	width, height := r.target.Width(), r.target.Height()
	minX := clampCoord(floor(min(a.x, b.x, c.x)), width)
	maxX := clampCoord(ceil(max(a.x, b.x, c.x)), width)
	minY := clampCoord(floor(min(a.y, b.y, c.y)), height)
	maxY := clampCoord(ceil(max(a.y, b.y, c.y)), height)

	inv := 1 / area
	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py) * inv
			w1 := edge(c, a, px, py) * inv
			w2 := edge(a, b, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			// Depth clipping against the near and far planes.
			z := w0*a.z + w1*b.z + w2*c.z
			if z < -1-depthEpsilon || z > 1+depthEpsilon {
				continue
			}
			col := windmill.Interpolate(a.color, b.color, c.color, w0, w1, w2)
			r.target.SetPixel(x, y, windmill.RGBA(col))
			r.stats.Pixels++
		}
	}
}

// edge is twice the signed area of (a, b, p).
func edge(a, b vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func floor(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil(v float32) float32  { return float32(math.Ceil(float64(v))) }

// clampCoord converts a window coordinate to a pixel index in [0, hi].
func clampCoord(v float32, hi int) int {
	switch {
	case v <= 0:
		return 0
	case v >= float32(hi):
		return hi
	}
	return int(v)
}

// Ensure Rasterizer implements the pipeline interfaces.
var (
	_ scene.Device   = (*Rasterizer)(nil)
	_ store.Uploader = (*Rasterizer)(nil)
)
