// Package store holds the vertex data of every shape in upload format: one
// position buffer per shape and one color buffer per color slot.
//
// The store is filled once from built geometry, uploaded once to a device,
// and never updated afterwards.
package store

import (
	"errors"
	"fmt"

	"github.com/gogpu/windmill"
	"github.com/gogpu/windmill/shape"
)

// Component counts of the uploaded attributes.
const (
	PosCoords = 2
	ColCoords = 4
)

// Errors returned by the store.
var (
	// ErrLengthMismatch is returned when a color slot does not have one color
	// per vertex of its shape.
	ErrLengthMismatch = errors.New("store: color buffer length does not match vertex count")

	// ErrMissing is returned when a shape or slot has no geometry.
	ErrMissing = errors.New("store: missing geometry")

	// ErrUploaded is returned by a second Upload.
	ErrUploaded = errors.New("store: already uploaded")
)

// Uploader receives the store contents. Backends implement it to create
// their static vertex buffers.
type Uploader interface {
	// UploadPositions creates the position buffer of a shape. data holds
	// PosCoords floats per vertex.
	UploadPositions(k shape.Kind, data []float32, count int) error

	// UploadColors creates the color buffer of a slot. data holds ColCoords
	// floats per vertex.
	UploadColors(s shape.Slot, data []float32) error
}

// Store is the set of flattened vertex buffers.
type Store struct {
	positions [shape.NumKinds][]float32
	counts    [shape.NumKinds]int
	colors    [shape.NumSlots][]float32
	uploaded  bool
}

// New flattens geoms into a store. Every shape and every slot must be
// present and every slot must have one color per vertex of its shape.
func New(geoms [shape.NumKinds]*shape.Geometry) (*Store, error) {
	s := &Store{}

	for k := shape.Kind(0); k < shape.NumKinds; k++ {
		g := geoms[k]
		if g == nil {
			return nil, fmt.Errorf("%w: shape %s", ErrMissing, k)
		}
		s.counts[k] = g.Count()
		s.positions[k] = make([]float32, 0, PosCoords*g.Count())
		for _, p := range g.Positions {
			s.positions[k] = append(s.positions[k], p[0], p[1])
		}
	}

	for slot := shape.Slot(0); slot < shape.NumSlots; slot++ {
		k := slot.Kind()
		colors, ok := geoms[k].Colors[slot]
		if !ok {
			return nil, fmt.Errorf("%w: slot %s on %s", ErrMissing, slot, k)
		}
		if len(colors) != s.counts[k] {
			return nil, fmt.Errorf("%w: %s has %d colors, %s has %d vertices",
				ErrLengthMismatch, slot, len(colors), k, s.counts[k])
		}
		s.colors[slot] = make([]float32, 0, ColCoords*len(colors))
		for _, c := range colors {
			s.colors[slot] = append(s.colors[slot], c[0], c[1], c[2], c[3])
		}
	}

	return s, nil
}

// Count returns the number of vertices of a shape.
func (s *Store) Count(k shape.Kind) int {
	return s.counts[k]
}

// Positions returns the flattened positions of a shape. The slice must not be modified.
func (s *Store) Positions(k shape.Kind) []float32 {
	return s.positions[k]
}

// Colors returns the flattened colors of a slot. The slice must not be modified.
func (s *Store) Colors(slot shape.Slot) []float32 {
	return s.colors[slot]
}

// Upload hands every buffer to u: positions in shape order, then colors in
// slot order. A store can be uploaded once.
func (s *Store) Upload(u Uploader) error {
	if s.uploaded {
		return ErrUploaded
	}

	log := windmill.Logger()
	for k := shape.Kind(0); k < shape.NumKinds; k++ {
		if err := u.UploadPositions(k, s.positions[k], s.counts[k]); err != nil {
			return fmt.Errorf("store: upload %s positions: %w", k, err)
		}
		log.Debug("store: uploaded positions", "shape", k, "vertices", s.counts[k], "bytes", 4*len(s.positions[k]))
	}
	for slot := shape.Slot(0); slot < shape.NumSlots; slot++ {
		if err := u.UploadColors(slot, s.colors[slot]); err != nil {
			return fmt.Errorf("store: upload %s colors: %w", slot, err)
		}
		log.Debug("store: uploaded colors", "slot", slot, "bytes", 4*len(s.colors[slot]))
	}

	s.uploaded = true
	return nil
}
