// Package software is the headless backend: frames are rasterized on the CPU
// and the last one is written as a PNG.
package software

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/backend"
	"github.com/gogpu/windmill/driver"
	"github.com/gogpu/windmill/render"
	"github.com/gogpu/windmill/shader"
)

// Defaults for zero Options fields.
const (
	DefaultSize      = 512
	DefaultFrameTime = 1.0 / 60
)

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend {
		return Backend{}
	})
}

// Backend opens headless targets.
type Backend struct{}

// Name returns the backend identifier.
func (Backend) Name() string {
	return backend.BackendSoftware
}

// Open creates a headless target.
func (Backend) Open(opts backend.Options) (backend.Target, error) {
	return Open(opts)
}

// Target is a headless host around a [render.Rasterizer].
//
// Time is simulated: each PollEvents advances the clock by FrameTime, so a
// run is deterministic. After Frames presents the target requests a close.
// Input can be scripted with Queue.
type Target struct {
	*render.Rasterizer

	frame       *render.PixmapTarget
	frames      int
	frameTime   float64
	output      string
	supersample int

	input       driver.Input
	queue       []any
	presented   int
	now         float64
	shouldClose bool
	closed      bool
}

// Open creates a headless target. The program is linked from opts.WGSL, or
// the embedded module when nil.
func Open(opts backend.Options) (*Target, error) {
	opts = withDefaults(opts)

	infos := opts.WGSL
	if infos == nil {
		infos = shader.WGSLInfos()
	}
	prog, err := shader.LoadProgram(infos)
	if err != nil {
		return nil, fmt.Errorf("software: %w", err)
	}

	ss := opts.Supersample
	raster, err := render.NewRasterizer(render.NewPixmapTarget(opts.Width*ss, opts.Height*ss), prog)
	if err != nil {
		return nil, fmt.Errorf("software: %w", err)
	}

	windmill.Logger().Info("software: target opened",
		"width", opts.Width, "height", opts.Height, "supersample", ss, "frames", opts.Frames)
	return &Target{
		Rasterizer:  raster,
		frame:       render.NewPixmapTarget(opts.Width, opts.Height),
		frames:      opts.Frames,
		frameTime:   opts.FrameTime,
		output:      opts.Output,
		supersample: ss,
	}, nil
}

func withDefaults(opts backend.Options) backend.Options {
	if opts.Width <= 0 {
		opts.Width = DefaultSize
	}
	if opts.Height <= 0 {
		opts.Height = DefaultSize
	}
	if opts.Frames <= 0 {
		opts.Frames = 1
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = DefaultFrameTime
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	return opts
}

// Clear fills the frame with c.
func (t *Target) Clear(c windmill.Color) {
	t.Rasterizer.Clear(c)
}

// Present resolves the rasterized frame to the frame size.
func (t *Target) Present() {
	render.Downsample(t.frame, t.Rasterizer.Target())
	t.presented++
	if t.presented >= t.frames {
		t.shouldClose = true
	}
}

// Queue schedules events for delivery by the next PollEvents.
// Events must be driver.KeyEvent or driver.MouseEvent values.
func (t *Target) Queue(events ...any) {
	t.queue = append(t.queue, events...)
}

// PollEvents delivers queued events and advances the clock by one frame.
func (t *Target) PollEvents() {
	queue := t.queue
	t.queue = nil
	for _, ev := range queue {
		if t.input == nil {
			break
		}
		switch ev := ev.(type) {
		case driver.KeyEvent:
			t.input.HandleKey(ev)
		case driver.MouseEvent:
			t.input.HandleMouse(ev)
		default:
			windmill.Logger().Warn("software: dropped unknown event", "type", fmt.Sprintf("%T", ev))
		}
	}
	t.now += t.frameTime
}

// ShouldClose reports whether a close was requested.
func (t *Target) ShouldClose() bool {
	return t.shouldClose
}

// SetShouldClose requests or cancels a close.
func (t *Target) SetShouldClose(v bool) {
	t.shouldClose = v
}

// Time returns the simulated seconds since the target opened.
func (t *Target) Time() float64 {
	return t.now
}

// SetInput registers the receiver of queued events.
func (t *Target) SetInput(in driver.Input) {
	t.input = in
}

// Presented returns the number of presented frames.
func (t *Target) Presented() int {
	return t.presented
}

// Image returns an opaque copy of the last presented frame.
func (t *Target) Image() *image.RGBA {
	return t.frame.Opaque()
}

// WritePNG encodes the last presented frame to w.
func (t *Target) WritePNG(w io.Writer) error {
	if err := png.Encode(w, t.Image()); err != nil {
		return fmt.Errorf("software: encode png: %w", err)
	}
	return nil
}

// Close writes the last frame to the output file, if one is set.
func (t *Target) Close() error {
	if t.closed {
		return backend.ErrClosed
	}
	t.closed = true
	if t.output == "" {
		return nil
	}

	f, err := os.Create(t.output)
	if err != nil {
		return fmt.Errorf("software: %w", err)
	}
	if err := t.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("software: %w", err)
	}
	windmill.Logger().Info("software: frame written", "path", t.output, "frames", t.presented)
	return nil
}

// Ensure Target implements backend.Target.
var _ backend.Target = (*Target)(nil)
