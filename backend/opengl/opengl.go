// Package opengl is the windowed backend: a GLFW window with an OpenGL 4.1
// core context, drawing the scene with the GLSL transform program.
//
// GLFW and OpenGL calls must come from the main thread, so importing this
// package locks the main goroutine to its OS thread. Open, the frame loop and
// Close must all run on the main goroutine.
package opengl

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/backend"
	"github.com/gogpu/windmill/driver"
	"github.com/gogpu/windmill/shader"
	"github.com/gogpu/windmill/shape"
)

// Defaults for zero Options fields.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
	DefaultTitle  = "Don Quixote 2022"
)

func init() {
	runtime.LockOSThread()
	backend.Register(backend.BackendGL, func() backend.Backend {
		return Backend{}
	})
}

// Backend opens GLFW windows.
type Backend struct{}

// Name returns the backend identifier.
func (Backend) Name() string {
	return backend.BackendGL
}

// Open creates a window target.
func (Backend) Open(opts backend.Options) (backend.Target, error) {
	return Open(opts)
}

// Target is a GLFW window with the linked transform program and the
// uploaded scene buffers.
type Target struct {
	window  *glfw.Window
	program uint32
	locs    shader.Locations
	layouts []gputypes.VertexBufferLayout

	vaos    [shape.NumKinds]uint32
	posBufs [shape.NumKinds]uint32
	counts  [shape.NumKinds]int
	colBufs [shape.NumSlots]uint32

	input  driver.Input
	closed bool
}

// Open creates the window, makes its context current and links the program
// from opts.GLSL, or the embedded trans.vert and trans.frag when nil.
// Window creation failures wrap [driver.ErrWindow].
func Open(opts backend.Options) (*Target, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", driver.ErrWindow, err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", driver.ErrWindow, err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: opengl init: %v", driver.ErrWindow, err)
	}

	log := windmill.Logger()
	log.Info("OpenGL window successfully created",
		"title", opts.Title, "width", opts.Width, "height", opts.Height,
		"version", gl.GoStr(gl.GetString(gl.VERSION)))

	t := &Target{window: window}
	if err := t.link(opts.GLSL); err != nil {
		t.destroy()
		return nil, err
	}

	window.SetKeyCallback(t.onKey)
	window.SetMouseButtonCallback(t.onMouseButton)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		log.Debug("opengl: framebuffer resized", "width", width, "height", height)
	})
	return t, nil
}

// Clear fills the framebuffer with c.
func (t *Target) Clear(c windmill.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Present swaps the window buffers.
func (t *Target) Present() {
	t.window.SwapBuffers()
}

// PollEvents processes pending window events; input callbacks run here.
func (t *Target) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose reports the window's close flag.
func (t *Target) ShouldClose() bool {
	return t.window.ShouldClose()
}

// SetShouldClose sets the window's close flag.
func (t *Target) SetShouldClose(v bool) {
	t.window.SetShouldClose(v)
}

// Time returns seconds since GLFW was initialized.
func (t *Target) Time() float64 {
	return glfw.GetTime()
}

// SetInput registers the receiver of key and mouse callbacks.
func (t *Target) SetInput(in driver.Input) {
	t.input = in
}

// Close deletes the GL objects, destroys the window and terminates GLFW.
func (t *Target) Close() error {
	if t.closed {
		return backend.ErrClosed
	}
	t.destroy()
	windmill.Logger().Info("opengl: window closed")
	return nil
}

func (t *Target) destroy() {
	t.closed = true
	for k := range t.vaos {
		if t.vaos[k] != 0 {
			gl.DeleteVertexArrays(1, &t.vaos[k])
		}
		if t.posBufs[k] != 0 {
			gl.DeleteBuffers(1, &t.posBufs[k])
		}
	}
	for s := range t.colBufs {
		if t.colBufs[s] != 0 {
			gl.DeleteBuffers(1, &t.colBufs[s])
		}
	}
	if t.program != 0 {
		gl.DeleteProgram(t.program)
	}
	t.window.Destroy()
	glfw.Terminate()
}

// Ensure Target implements backend.Target.
var _ backend.Target = (*Target)(nil)
