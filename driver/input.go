package driver

import "github.com/gogpu/windmill"

// Key is a keyboard key the driver reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Action is what happened to a key or button.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// KeyEvent is a key press, release or repeat.
type KeyEvent struct {
	Key    Key
	Action Action
}

// MouseEvent is a mouse button press or release.
type MouseEvent struct {
	Button Button
	Action Action
}

// HandleKey reacts to a key: Escape requests a close, a Space press starts
// or stops the animation.
func (d *Driver) HandleKey(ev KeyEvent) {
	switch ev.Key {
	case KeyEscape:
		d.host.SetShouldClose(true)
		d.state = Closing
		windmill.Logger().Debug("driver: escape, closing")
	case KeySpace:
		if ev.Action == Press {
			on := d.anim.Toggle()
			windmill.Logger().Debug("driver: animation toggled", "enabled", on)
		}
	}
}

// HandleMouse flips the rotation direction once per left button press.
func (d *Driver) HandleMouse(ev MouseEvent) {
	if ev.Button == ButtonLeft && ev.Action == Press {
		d.anim.FlipDirection()
		windmill.Logger().Debug("driver: direction flipped", "dir", d.anim.Dir)
	}
}
