package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/scene"
	"github.com/gogpu/windmill/shader"
	"github.com/gogpu/windmill/shape"
)

// UploadPositions creates the vertex array and position buffer of shape k.
func (t *Target) UploadPositions(k shape.Kind, data []float32, count int) error {
	if len(data) == 0 || count <= 0 {
		return fmt.Errorf("opengl: %s has no positions", k)
	}
	gl.GenVertexArrays(1, &t.vaos[k])
	gl.BindVertexArray(t.vaos[k])

	gl.GenBuffers(1, &t.posBufs[k])
	gl.BindBuffer(gl.ARRAY_BUFFER, t.posBufs[k])
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	t.counts[k] = count
	return checkError("upload positions")
}

// UploadColors creates the color buffer of slot s.
func (t *Target) UploadColors(s shape.Slot, data []float32) error {
	if len(data) == 0 {
		return fmt.Errorf("opengl: %s has no colors", s)
	}
	gl.GenBuffers(1, &t.colBufs[s])
	gl.BindBuffer(gl.ARRAY_BUFFER, t.colBufs[s])
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	return checkError("upload colors")
}

// UseProgram makes the transform program current.
func (t *Target) UseProgram() {
	gl.UseProgram(t.program)
}

// SetModel uploads the model matrix uniform.
func (t *Target) SetModel(m mgl32.Mat4) {
	gl.UniformMatrix4fv(t.locs.Model, 1, false, &m[0])
}

// BindGeometry binds the vertex array and position buffer of shape k and
// points the position attribute at it.
func (t *Target) BindGeometry(k shape.Kind) int {
	gl.BindVertexArray(t.vaos[k])
	gl.BindBuffer(gl.ARRAY_BUFFER, t.posBufs[k])
	enable(t.layouts[0])
	return t.counts[k]
}

// BindColors binds the color buffer of slot s and points the color attribute
// at it.
func (t *Target) BindColors(s shape.Slot) {
	gl.BindBuffer(gl.ARRAY_BUFFER, t.colBufs[s])
	enable(t.layouts[1])
}

// Draw draws count vertices from the bound buffers.
func (t *Target) Draw(mode scene.Mode, count int) {
	prim := uint32(gl.TRIANGLES)
	if mode == scene.Fan {
		prim = gl.TRIANGLE_FAN
	}
	gl.DrawArrays(prim, 0, int32(count))
}

// enable sets up and enables the single attribute of a buffer layout for the
// bound array buffer.
func enable(l gputypes.VertexBufferLayout) {
	for _, a := range l.Attributes {
		gl.VertexAttribPointer(a.ShaderLocation, shader.Components(a.Format), gl.FLOAT, false,
			int32(l.ArrayStride), gl.PtrOffset(int(a.Offset)))
		gl.EnableVertexAttribArray(a.ShaderLocation)
	}
}

// checkError reports the first pending GL error.
func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		windmill.Logger().Warn("opengl: error", "op", op, "code", fmt.Sprintf("%#x", code))
		return fmt.Errorf("opengl: %s: error %#x", op, code)
	}
	return nil
}
