// Package driver runs the frame loop: clear, compose, present, poll input and
// advance the animation angle, until the host asks to close.
package driver

import (
	"context"
	"errors"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/anim"
	"github.com/gogpu/windmill/scene"
)

// ErrWindow is returned by hosts that fail to create their window or screen.
var ErrWindow = errors.New("driver: could not open window")

// State is the driver's lifecycle state.
type State int

const (
	// Idle is the running state: frames are drawn until a close is requested.
	Idle State = iota

	// Closing is terminal: the loop exits before drawing another frame.
	Closing
)

// String returns the state name.
func (s State) String() string {
	if s == Closing {
		return "closing"
	}
	return "idle"
}

// Input receives input events. Hosts deliver them synchronously from PollEvents.
type Input interface {
	HandleKey(KeyEvent)
	HandleMouse(MouseEvent)
}

// Host is the window or screen the driver draws into.
type Host interface {
	// Clear fills the frame with c.
	Clear(c windmill.Color)

	// Present flushes the pipeline and shows the frame.
	Present()

	// PollEvents delivers pending input to the registered Input.
	PollEvents()

	// ShouldClose reports whether a close was requested.
	ShouldClose() bool

	// SetShouldClose requests or cancels a close.
	SetShouldClose(bool)

	// Time returns seconds since the host started.
	Time() float64

	// SetInput registers the receiver of input events.
	SetInput(Input)
}

// Driver owns the per-frame state: the composer, the animation state and the
// time of the previous frame.
//
// Driver is not safe for concurrent use. Input handlers run on the goroutine
// that calls Frame or Run.
type Driver struct {
	host     Host
	composer *scene.Composer
	anim     *anim.State
	clear    windmill.Color

	state  State
	last   float64
	frames int
}

// Option configures a Driver.
type Option func(*Driver)

// WithClearColor sets the color the frame is cleared to. The default is
// transparent black, the OpenGL default clear color.
func WithClearColor(c windmill.Color) Option {
	return func(d *Driver) {
		d.clear = c
	}
}

// New creates a driver and registers it as the host's input receiver.
func New(host Host, composer *scene.Composer, a *anim.State, opts ...Option) *Driver {
	d := &Driver{
		host:     host,
		composer: composer,
		anim:     a,
		clear:    windmill.Transparent,
	}
	for _, opt := range opts {
		opt(d)
	}
	host.SetInput(d)
	d.last = host.Time()
	return d
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	if d.state == Idle && d.host.ShouldClose() {
		d.state = Closing
	}
	return d.state
}

// Anim returns the animation state.
func (d *Driver) Anim() *anim.State {
	return d.anim
}

// Frames returns the number of frames drawn.
func (d *Driver) Frames() int {
	return d.frames
}

// Frame draws one frame and processes its input:
// clear, compose, present, poll, then advance the angle by the time elapsed
// since the previous frame. The angle only advances while animation is enabled.
func (d *Driver) Frame() {
	d.host.Clear(d.clear)
	d.composer.Compose(d.anim.Spin())
	d.host.Present()
	d.frames++

	d.host.PollEvents()

	now := d.host.Time()
	if d.anim.Enabled {
		d.anim.Advance(now - d.last)
	}
	d.last = now
}

// Run draws frames until the driver enters Closing or ctx is done.
// A cancelled context also requests a close on the host.
func (d *Driver) Run(ctx context.Context) error {
	log := windmill.Logger()
	log.Info("driver: frame loop started")

	for d.State() == Idle {
		if err := ctx.Err(); err != nil {
			d.host.SetShouldClose(true)
			d.state = Closing
			return err
		}
		d.Frame()
	}

	log.Info("driver: frame loop finished", "frames", d.frames, "angle", d.anim.Angle)
	return nil
}
