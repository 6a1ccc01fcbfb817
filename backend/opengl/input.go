package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/windmill/driver"
)

func (t *Target) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if t.input == nil {
		return
	}
	t.input.HandleKey(driver.KeyEvent{Key: mapKey(key), Action: mapAction(action)})
}

func (t *Target) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if t.input == nil {
		return
	}
	b, ok := mapButton(button)
	if !ok {
		return
	}
	t.input.HandleMouse(driver.MouseEvent{Button: b, Action: mapAction(action)})
}

func mapKey(k glfw.Key) driver.Key {
	switch k {
	case glfw.KeyEscape:
		return driver.KeyEscape
	case glfw.KeySpace:
		return driver.KeySpace
	default:
		return driver.KeyUnknown
	}
}

func mapAction(a glfw.Action) driver.Action {
	switch a {
	case glfw.Press:
		return driver.Press
	case glfw.Repeat:
		return driver.Repeat
	default:
		return driver.Release
	}
}

func mapButton(b glfw.MouseButton) (driver.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return driver.ButtonLeft, true
	case glfw.MouseButtonRight:
		return driver.ButtonRight, true
	case glfw.MouseButtonMiddle:
		return driver.ButtonMiddle, true
	default:
		return 0, false
	}
}
