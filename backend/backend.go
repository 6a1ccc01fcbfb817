package backend

import (
	"errors"

	"github.com/gogpu/windmill/driver"
	"github.com/gogpu/windmill/scene"
	"github.com/gogpu/windmill/shader"
	"github.com/gogpu/windmill/store"
)

// Backend name constants.
const (
	// BackendGL is the name of the OpenGL window backend.
	BackendGL = "gl"
	// BackendTerm is the name of the terminal preview backend.
	BackendTerm = "term"
	// BackendSoftware is the name of the headless CPU backend.
	BackendSoftware = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrClosed is returned when a closed target is used.
	ErrClosed = errors.New("backend: target closed")
)

// Options configures a target.
type Options struct {
	// Title is the window title.
	Title string

	// Width and Height are the frame size in pixels.
	Width, Height int

	// GLSL lists the stages of the program for backends that link GLSL.
	// Nil selects the embedded trans.vert and trans.frag.
	GLSL []shader.Info

	// WGSL lists the stages of the program for the CPU backends.
	// Nil selects the embedded trans.wgsl.
	WGSL []shader.Info

	// Frames is the number of frames a headless target presents before
	// requesting a close.
	Frames int

	// FrameTime is the simulated seconds per frame of a headless target.
	FrameTime float64

	// Supersample renders CPU frames at this multiple of the frame size.
	Supersample int

	// Output is the PNG file a headless target writes when closed.
	Output string
}

// Target is an opened backend: the host the driver runs, the device the
// composer draws through and the uploader the store fills.
type Target interface {
	driver.Host
	scene.Device
	store.Uploader

	// Close releases all target resources.
	// The target should not be used after Close is called.
	Close() error
}

// Backend opens targets.
type Backend interface {
	// Name returns the backend identifier (e.g., "gl", "software").
	Name() string

	// Open creates a target. Backends with a window create it here.
	Open(opts Options) (Target, error)
}
