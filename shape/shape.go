// Package shape builds the flat, deindexed vertex and color arrays that the
// scene is drawn from.
//
// A shape is described by a [Table]: a vertex list, a face list of index
// triples into it, and one color list per color [Slot], keyed by the same
// vertex indices. [Build] walks every face and appends the referenced
// position and the referenced color of each slot, so the produced arrays
// always hold 3 x len(Faces) entries and no index buffer is kept.
package shape

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Errors returned by Build.
var (
	// ErrBadIndex is returned when a face references a vertex outside the table.
	ErrBadIndex = errors.New("shape: face index out of range")

	// ErrColorTable is returned when a color list does not have one entry per vertex.
	ErrColorTable = errors.New("shape: color table length mismatch")
)

// Kind identifies one of the fixed shapes.
type Kind int

const (
	Square Kind = iota
	Triangle
	Sun

	// NumKinds is the number of shape kinds.
	NumKinds
)

var kindNames = [NumKinds]string{"square", "triangle", "sun"}

// String returns the lowercase shape name.
func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Slot names one color buffer. Every slot belongs to exactly one shape.
type Slot int

const (
	SkyBlue Slot = iota
	GrassGreen
	HouseBrown
	RoofRed
	FanBlue
	SunYellow

	// NumSlots is the number of color slots.
	NumSlots
)

var slotNames = [NumSlots]string{"sky", "grass", "house", "roof", "fan", "sun"}

var slotKinds = [NumSlots]Kind{Square, Square, Square, Triangle, Triangle, Sun}

// String returns the lowercase slot name.
func (s Slot) String() string {
	if s < 0 || s >= NumSlots {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// Kind returns the shape whose geometry this slot colors.
func (s Slot) Kind() Kind {
	return slotKinds[s]
}

// Face is a triangle given as three indices into a vertex list.
type Face [3]int

// Table is the indexed description of one shape.
type Table struct {
	Kind     Kind
	Vertices []mgl32.Vec2
	Faces    []Face

	// Colors holds one color per vertex for each slot the shape is drawn with.
	Colors map[Slot][]mgl32.Vec4
}

// Geometry is a built, immutable shape: positions and per-slot colors in draw order.
type Geometry struct {
	Kind      Kind
	Positions []mgl32.Vec2
	Colors    map[Slot][]mgl32.Vec4
}

// Count returns the number of vertices in the geometry.
func (g *Geometry) Count() int {
	return len(g.Positions)
}

// Slots returns the color slots present in the geometry in slot order.
func (g *Geometry) Slots() []Slot {
	slots := make([]Slot, 0, len(g.Colors))
	for s := Slot(0); s < NumSlots; s++ {
		if _, ok := g.Colors[s]; ok {
			slots = append(slots, s)
		}
	}
	return slots
}

// Option configures Build.
type Option func(*options)

type options struct {
	legacyHouse bool
}

// WithLegacyHouseColors selects the legacy house color lookup, which reads
// brown[faces[i][i]] instead of brown[faces[i][j]]: every
// vertex of face i takes the color of that face's i-th index. The result is
// deterministic but differs from the per-vertex gradient in the table.
func WithLegacyHouseColors(on bool) Option {
	return func(o *options) {
		o.legacyHouse = on
	}
}

// Build expands t into flat position and color arrays.
//
// For each face, for each of its three index slots, the referenced vertex
// and the referenced color of every slot in t.Colors are appended.
func Build(t Table, opts ...Option) (*Geometry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	n := len(t.Vertices)
	for s, colors := range t.Colors {
		if len(colors) != n {
			return nil, fmt.Errorf("%w: %s has %d colors for %d vertices", ErrColorTable, s, len(colors), n)
		}
	}
	for i, f := range t.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: %s face %d references vertex %d of %d", ErrBadIndex, t.Kind, i, idx, n)
			}
		}
	}

	count := 3 * len(t.Faces)
	g := &Geometry{
		Kind:      t.Kind,
		Positions: make([]mgl32.Vec2, 0, count),
		Colors:    make(map[Slot][]mgl32.Vec4, len(t.Colors)),
	}
	for s := range t.Colors {
		g.Colors[s] = make([]mgl32.Vec4, 0, count)
	}

	for i, f := range t.Faces {
		for j := 0; j < 3; j++ {
			g.Positions = append(g.Positions, t.Vertices[f[j]])
			for s, colors := range t.Colors {
				idx := f[j]
				if o.legacyHouse && s == HouseBrown {
					idx = f[i%3]
				}
				g.Colors[s] = append(g.Colors[s], colors[idx])
			}
		}
	}

	return g, nil
}
