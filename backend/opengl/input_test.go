package opengl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/windmill/driver"
)

type recordingInput struct {
	keys  []driver.KeyEvent
	mouse []driver.MouseEvent
}

func (r *recordingInput) HandleKey(ev driver.KeyEvent)     { r.keys = append(r.keys, ev) }
func (r *recordingInput) HandleMouse(ev driver.MouseEvent) { r.mouse = append(r.mouse, ev) }

func TestMapKey(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want driver.Key
	}{
		{glfw.KeyEscape, driver.KeyEscape},
		{glfw.KeySpace, driver.KeySpace},
		{glfw.KeyA, driver.KeyUnknown},
		{glfw.KeyEnter, driver.KeyUnknown},
	}
	for _, tt := range tests {
		if got := mapKey(tt.key); got != tt.want {
			t.Errorf("mapKey(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMapAction(t *testing.T) {
	tests := []struct {
		action glfw.Action
		want   driver.Action
	}{
		{glfw.Press, driver.Press},
		{glfw.Release, driver.Release},
		{glfw.Repeat, driver.Repeat},
	}
	for _, tt := range tests {
		if got := mapAction(tt.action); got != tt.want {
			t.Errorf("mapAction(%v) = %v, want %v", tt.action, got, tt.want)
		}
	}
}

func TestCallbacks(t *testing.T) {
	rec := &recordingInput{}
	target := &Target{}

	// No receiver registered yet.
	target.onKey(nil, glfw.KeyEscape, 0, glfw.Press, 0)

	target.SetInput(rec)
	target.onKey(nil, glfw.KeySpace, 0, glfw.Press, 0)
	target.onMouseButton(nil, glfw.MouseButtonLeft, glfw.Press, 0)
	target.onMouseButton(nil, glfw.MouseButton5, glfw.Press, 0)

	if len(rec.keys) != 1 || rec.keys[0] != (driver.KeyEvent{Key: driver.KeySpace, Action: driver.Press}) {
		t.Errorf("keys = %+v", rec.keys)
	}
	if len(rec.mouse) != 1 || rec.mouse[0].Button != driver.ButtonLeft {
		t.Errorf("mouse = %+v, want one left press", rec.mouse)
	}
}
