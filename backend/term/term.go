// Package term is the terminal preview backend: frames are rasterized on the
// CPU and painted with half-block cells through tcell, two pixels per cell.
//
// Esc (or Ctrl-C) closes, Space toggles the animation and a left click flips
// its direction.
package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/backend"
	"github.com/gogpu/windmill/driver"
	"github.com/gogpu/windmill/render"
	"github.com/gogpu/windmill/shader"
)

// FrameInterval is the minimum time between presented frames.
const FrameInterval = time.Second / 30

// halfBlock paints the upper pixel as foreground, the lower as background.
const halfBlock = '▀'

func init() {
	backend.Register(backend.BackendTerm, func() backend.Backend {
		return Backend{}
	})
}

// Backend opens terminal targets.
type Backend struct{}

// Name returns the backend identifier.
func (Backend) Name() string {
	return backend.BackendTerm
}

// Open creates a target on the controlling terminal.
func (Backend) Open(opts backend.Options) (backend.Target, error) {
	return Open(opts)
}

// Target is a tcell screen host around a [render.Rasterizer].
// The frame size follows the terminal; Options.Width and Height are unused.
type Target struct {
	*render.Rasterizer

	screen      tcell.Screen
	frame       *render.PixmapTarget
	supersample int

	events chan tcell.Event
	quit   chan struct{}
	ticker *time.Ticker
	start  time.Time

	input       driver.Input
	leftDown    bool
	shouldClose bool
	closed      bool
}

// Open creates a target on the controlling terminal.
func Open(opts backend.Options) (*Target, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", driver.ErrWindow, err)
	}
	return OpenScreen(screen, opts)
}

// OpenScreen initializes screen and creates a target on it. The program is
// linked from opts.WGSL, or the embedded module when nil.
func OpenScreen(screen tcell.Screen, opts backend.Options) (*Target, error) {
	infos := opts.WGSL
	if infos == nil {
		infos = shader.WGSLInfos()
	}
	prog, err := shader.LoadProgram(infos)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", driver.ErrWindow, err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	if opts.Title != "" {
		screen.SetTitle(opts.Title)
	}

	ss := max(opts.Supersample, 1)
	cols, rows := screen.Size()
	raster, err := render.NewRasterizer(render.NewPixmapTarget(cols*ss, 2*rows*ss), prog)
	if err != nil {
		screen.Fini()
		return nil, fmt.Errorf("term: %w", err)
	}

	t := &Target{
		Rasterizer:  raster,
		screen:      screen,
		frame:       render.NewPixmapTarget(cols, 2*rows),
		supersample: ss,
		events:      make(chan tcell.Event, 64),
		quit:        make(chan struct{}),
		ticker:      time.NewTicker(FrameInterval),
		start:       time.Now(),
	}
	go screen.ChannelEvents(t.events, t.quit)

	windmill.Logger().Info("term: screen opened", "cols", cols, "rows", rows, "supersample", ss)
	return t, nil
}

// Clear fills the frame with c.
func (t *Target) Clear(c windmill.Color) {
	t.Rasterizer.Clear(c)
}

// Present paints the frame as half-block cells and waits for the next tick.
func (t *Target) Present() {
	render.Downsample(t.frame, t.Rasterizer.Target())

	cols, rows := t.frame.Width(), t.frame.Height()/2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top, bottom := t.frame.GetPixel(x, 2*y), t.frame.GetPixel(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	<-t.ticker.C
}

// PollEvents delivers the events received since the last call.
func (t *Target) PollEvents() {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return
			}
			t.handle(ev)
		default:
			return
		}
	}
}

func (t *Target) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if t.input == nil {
			return
		}
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			t.input.HandleKey(driver.KeyEvent{Key: driver.KeyEscape, Action: driver.Press})
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			t.input.HandleKey(driver.KeyEvent{Key: driver.KeySpace, Action: driver.Press})
		}

	case *tcell.EventMouse:
		// Terminals report button state; presses are its rising edges.
		down := ev.Buttons()&tcell.Button1 != 0
		if down != t.leftDown && t.input != nil {
			action := driver.Release
			if down {
				action = driver.Press
			}
			t.input.HandleMouse(driver.MouseEvent{Button: driver.ButtonLeft, Action: action})
		}
		t.leftDown = down

	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.frame.Resize(cols, 2*rows)
		t.Rasterizer.Target().Resize(cols*t.supersample, 2*rows*t.supersample)
		t.screen.Sync()
		windmill.Logger().Debug("term: resized", "cols", cols, "rows", rows)
	}
}

// ShouldClose reports whether a close was requested.
func (t *Target) ShouldClose() bool {
	return t.shouldClose
}

// SetShouldClose requests or cancels a close.
func (t *Target) SetShouldClose(v bool) {
	t.shouldClose = v
}

// Time returns seconds since the target opened.
func (t *Target) Time() float64 {
	return time.Since(t.start).Seconds()
}

// SetInput registers the receiver of key and mouse events.
func (t *Target) SetInput(in driver.Input) {
	t.input = in
}

// Close stops the event pump and restores the terminal.
func (t *Target) Close() error {
	if t.closed {
		return backend.ErrClosed
	}
	t.closed = true
	close(t.quit)
	t.ticker.Stop()
	t.screen.Fini()
	return nil
}

// Ensure Target implements backend.Target.
var _ backend.Target = (*Target)(nil)
