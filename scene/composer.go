// Package scene composes the frame: for every element it computes a model
// matrix and issues one draw call through a [Device].
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/shape"
)

// Device is the pipeline the composer draws through.
//
// Every draw call is issued as the same sequence, and each call fully
// rebinds the state it needs:
//
//  1. UseProgram selects the shared transform program.
//  2. SetModel uploads the model matrix uniform.
//  3. BindGeometry binds the shape's vertex array and position buffer and
//     enables the position attribute. It returns the shape's vertex count.
//  4. BindColors binds the slot's color buffer and enables the color attribute.
//  5. Draw draws count vertices from the bound buffers.
//
// Implementations mutate their own binding state; calls are not reorderable
// with respect to other users of the same device.
type Device interface {
	UseProgram()
	SetModel(m mgl32.Mat4)
	BindGeometry(k shape.Kind) int
	BindColors(s shape.Slot)
	Draw(mode Mode, count int)
}

// Composer draws a fixed, ordered list of elements.
type Composer struct {
	dev      Device
	elements []Element
}

// NewComposer returns a composer drawing elements in order on dev.
func NewComposer(dev Device, elements []Element) *Composer {
	return &Composer{dev: dev, elements: elements}
}

// Elements returns the elements in draw order.
func (c *Composer) Elements() []Element {
	return c.elements
}

// Compose issues one draw call per element and returns the number of calls.
// spin is the animation angle in degrees added to spinning elements.
func (c *Composer) Compose(spin float32) int {
	log := windmill.Logger()
	for _, e := range c.elements {
		c.draw(e, e.Model(spin))
		log.Debug("scene: drew element", "name", e.Name, "shape", e.Shape, "slot", e.Slot, "mode", e.Mode)
	}
	return len(c.elements)
}

func (c *Composer) draw(e Element, model mgl32.Mat4) {
	c.dev.UseProgram()
	c.dev.SetModel(model)
	count := c.dev.BindGeometry(e.Shape)
	c.dev.BindColors(e.Slot)
	c.dev.Draw(e.Mode, count)
}
