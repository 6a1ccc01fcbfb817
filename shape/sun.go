package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunRimVertices is the number of rim vertices of the sun fan: one per
// degree, with the last coinciding with the first to close the fan.
const SunRimVertices = 361

// SunSpec describes the sun fan.
type SunSpec struct {
	// Rim is the number of rim vertices, first and last coinciding.
	Rim int

	// Center is the color of the shared first vertex.
	Center mgl32.Vec4

	// Rays alternate along the rim every RayDegrees so rotation is visible.
	RayA, RayB mgl32.Vec4
	RayDegrees int
}

// DefaultSun returns the yellow gradient sun.
func DefaultSun() SunSpec {
	return SunSpec{
		Rim:        SunRimVertices,
		Center:     mgl32.Vec4{1, 1, 0.6, 1},
		RayA:       mgl32.Vec4{1, 0.85, 0, 1},
		RayB:       mgl32.Vec4{1, 0.6, 0, 1},
		RayDegrees: 15,
	}
}

// BuildSun builds a unit-radius triangle fan: the center vertex followed by
// sun.Rim points on the unit circle. The sun is the only fan-built shape, so
// its vertex count is sun.Rim+1 rather than a multiple of three.
func BuildSun(sun SunSpec) *Geometry {
	if sun.Rim < 3 {
		sun.Rim = 3
	}
	if sun.RayDegrees <= 0 {
		sun.RayDegrees = 360
	}

	n := sun.Rim + 1
	g := &Geometry{
		Kind:      Sun,
		Positions: make([]mgl32.Vec2, 0, n),
		Colors:    map[Slot][]mgl32.Vec4{SunYellow: make([]mgl32.Vec4, 0, n)},
	}

	g.Positions = append(g.Positions, mgl32.Vec2{0, 0})
	g.Colors[SunYellow] = append(g.Colors[SunYellow], sun.Center)

	step := 360.0 / float64(sun.Rim-1)
	for i := 0; i < sun.Rim; i++ {
		deg := float64(i) * step
		rad := deg * math.Pi / 180
		g.Positions = append(g.Positions, mgl32.Vec2{float32(math.Cos(rad)), float32(math.Sin(rad))})

		ray := sun.RayA
		if (int(deg)/sun.RayDegrees)%2 == 1 {
			ray = sun.RayB
		}
		g.Colors[SunYellow] = append(g.Colors[SunYellow], ray)
	}

	return g
}
