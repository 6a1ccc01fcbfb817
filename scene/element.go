package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/windmill/shape"
)

// Mode selects how a draw call assembles vertices into triangles.
type Mode int

const (
	// Triangles treats every three vertices as an unconnected triangle.
	Triangles Mode = iota

	// Fan shares the first vertex: triangle i is (0, i+1, i+2).
	Fan
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Fan {
		return "fan"
	}
	return "triangles"
}

// Topology returns the primitive topology a modern pipeline draws the mode
// with. Fans have no native topology and are expanded to a triangle list.
func (m Mode) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyTriangleList
}

// Triangles returns the number of triangles count vertices form in this mode.
func (m Mode) Triangles(count int) int {
	if m == Fan {
		if count < 3 {
			return 0
		}
		return count - 2
	}
	return count / 3
}

// Order is the multiplication order of an element's model matrix.
type Order int

const (
	// TRS is translate x rotate x scale: scale first, translate last.
	TRS Order = iota

	// RST is rotate x scale x translate: translate first, rotate last.
	RST
)

// Rotation is a rotation of Angle degrees about Axis. Axis is used as given,
// without normalization.
type Rotation struct {
	Angle float32
	Axis  mgl32.Vec3
}

// Element is one drawn object of the scene.
type Element struct {
	Name      string
	Shape     shape.Kind
	Slot      shape.Slot
	Translate mgl32.Vec3
	Rotate    *Rotation
	Scale     mgl32.Vec3
	Order     Order
	Mode      Mode

	// Spin adds the animation angle about z after the element's own rotation.
	Spin bool
}

// Model computes the element's model matrix. spin is in degrees and only
// applies to elements with Spin set.
func (e Element) Model(spin float32) mgl32.Mat4 {
	t := mgl32.Translate3D(e.Translate[0], e.Translate[1], e.Translate[2])
	s := mgl32.Scale3D(e.Scale[0], e.Scale[1], e.Scale[2])

	r := mgl32.Ident4()
	if e.Rotate != nil {
		r = mgl32.HomogRotate3D(mgl32.DegToRad(e.Rotate.Angle), e.Rotate.Axis)
	}
	if e.Spin && spin != 0 {
		r = r.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(spin)))
	}

	if e.Order == RST {
		return r.Mul4(s).Mul4(t)
	}
	return t.Mul4(r).Mul4(s)
}

// DefaultElements returns the scene in draw order: sky, grass, house, roof,
// fan and sun.
func DefaultElements() []Element {
	return []Element{
		{
			Name:      "sky",
			Shape:     shape.Square,
			Slot:      shape.SkyBlue,
			Translate: mgl32.Vec3{0, 0.25, 0},
			Scale:     mgl32.Vec3{1, 0.75, 1},
			Order:     TRS,
			Mode:      Triangles,
		},
		{
			Name:      "grass",
			Shape:     shape.Square,
			Slot:      shape.GrassGreen,
			Translate: mgl32.Vec3{0, -0.75, 0},
			Scale:     mgl32.Vec3{3.5, 0.40, 1.6},
			Order:     TRS,
			Mode:      Triangles,
		},
		{
			Name:      "house",
			Shape:     shape.Square,
			Slot:      shape.HouseBrown,
			Translate: mgl32.Vec3{-0.02, -0.20, 0.10},
			Scale:     mgl32.Vec3{0.32, -0.30, -0.10},
			Order:     TRS,
			Mode:      Triangles,
		},
		{
			Name:      "roof",
			Shape:     shape.Triangle,
			Slot:      shape.RoofRed,
			Translate: mgl32.Vec3{0, -0.09, 0},
			Rotate:    &Rotation{Angle: -45, Axis: mgl32.Vec3{0, 0, 1}},
			Scale:     mgl32.Vec3{0.31, 0.31, 0.07},
			Order:     RST,
			Mode:      Fan,
		},
		{
			Name:      "fan",
			Shape:     shape.Triangle,
			Slot:      shape.FanBlue,
			Translate: mgl32.Vec3{0.10, 0.10, 0.10},
			Rotate:    &Rotation{Angle: 3, Axis: mgl32.Vec3{0, 10, 1}},
			Scale:     mgl32.Vec3{0, 0.30, -0.10},
			Order:     TRS,
			Mode:      Triangles,
			Spin:      true,
		},
		{
			Name:      "sun",
			Shape:     shape.Sun,
			Slot:      shape.SunYellow,
			Translate: mgl32.Vec3{-0.26, 0.26, 1},
			Rotate:    &Rotation{Angle: -45, Axis: mgl32.Vec3{0, 0, 1}},
			Scale:     mgl32.Vec3{0.25, 0.25, 1},
			Order:     TRS,
			Mode:      Fan,
			Spin:      true,
		},
	}
}

// Validate checks that every element's color slot belongs to its shape.
func Validate(elements []Element) error {
	for i, e := range elements {
		if e.Shape < 0 || e.Shape >= shape.NumKinds {
			return fmt.Errorf("scene: element %d (%s): unknown shape %s", i, e.Name, e.Shape)
		}
		if e.Slot < 0 || e.Slot >= shape.NumSlots {
			return fmt.Errorf("scene: element %d (%s): unknown slot %s", i, e.Name, e.Slot)
		}
		if e.Slot.Kind() != e.Shape {
			return fmt.Errorf("scene: element %d (%s): slot %s colors %s, not %s",
				i, e.Name, e.Slot, e.Slot.Kind(), e.Shape)
		}
	}
	return nil
}
