package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// SquareTable returns the unit square drawn as sky, grass and house.
// Faces are counter-clockwise.
func SquareTable() Table {
	return Table{
		Kind: Square,
		Vertices: []mgl32.Vec2{
			{1, 1},
			{-1, 1},
			{-1, -1},
			{1, -1},
		},
		Faces: []Face{
			{0, 1, 2},
			{2, 3, 0},
		},
		Colors: map[Slot][]mgl32.Vec4{
			SkyBlue: {
				{0, 0, 1, 1},
				{0, 0, 1, 1},
				{1, 1, 1, 1},
				{1, 1, 1, 1},
			},
			GrassGreen: {
				{0, 0, 0, 1},
				{0, 0, 0, 1},
				{0, 1, 0, 1},
				{0, 1, 0, 1},
			},
			HouseBrown: {
				{0.5, 0.35, 0, 1},
				{0.5, 0.35, 0, 1},
				{0.5, 0.35, 1, 1},
				{0.5, 0.35, 0, 1},
			},
		},
	}
}

// TriangleTable returns the unit right triangle drawn as roof and fan.
// Both color lists carry zero alpha.
func TriangleTable() Table {
	return Table{
		Kind: Triangle,
		Vertices: []mgl32.Vec2{
			{1, 1},
			{-1, 1},
			{-1, -1},
		},
		Faces: []Face{
			{0, 1, 2},
		},
		Colors: map[Slot][]mgl32.Vec4{
			RoofRed: {
				{1, 0, 0, 0},
				{1, 0, 0, 0},
				{1, 0, 0, 0},
			},
			FanBlue: {
				{0, 0, 1, 0},
				{1, 1, 1, 0},
				{1, 1, 1, 0},
			},
		},
	}
}

// BuildAll builds every shape, indexed by Kind.
func BuildAll(opts ...Option) ([NumKinds]*Geometry, error) {
	var geoms [NumKinds]*Geometry

	square, err := Build(SquareTable(), opts...)
	if err != nil {
		return geoms, fmt.Errorf("shape: build square: %w", err)
	}
	triangle, err := Build(TriangleTable(), opts...)
	if err != nil {
		return geoms, fmt.Errorf("shape: build triangle: %w", err)
	}

	geoms[Square] = square
	geoms[Triangle] = triangle
	geoms[Sun] = BuildSun(DefaultSun())
	return geoms, nil
}
