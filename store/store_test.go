package store

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/windmill/shape"
)

type recordingUploader struct {
	positions map[shape.Kind][]float32
	counts    map[shape.Kind]int
	colors    map[shape.Slot][]float32
	order     []string
	fail      error
}

func newRecordingUploader() *recordingUploader {
	return &recordingUploader{
		positions: make(map[shape.Kind][]float32),
		counts:    make(map[shape.Kind]int),
		colors:    make(map[shape.Slot][]float32),
	}
}

func (u *recordingUploader) UploadPositions(k shape.Kind, data []float32, count int) error {
	if u.fail != nil {
		return u.fail
	}
	u.positions[k] = data
	u.counts[k] = count
	u.order = append(u.order, k.String())
	return nil
}

func (u *recordingUploader) UploadColors(s shape.Slot, data []float32) error {
	u.colors[s] = data
	u.order = append(u.order, s.String())
	return nil
}

func buildStore(t *testing.T) *Store {
	t.Helper()
	geoms, err := shape.BuildAll()
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(geoms)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewFlattens(t *testing.T) {
	s := buildStore(t)

	if got := s.Count(shape.Square); got != 6 {
		t.Errorf("Count(square) = %d, want 6", got)
	}
	if got := s.Count(shape.Triangle); got != 3 {
		t.Errorf("Count(triangle) = %d, want 3", got)
	}
	for k := shape.Kind(0); k < shape.NumKinds; k++ {
		if got, want := len(s.Positions(k)), PosCoords*s.Count(k); got != want {
			t.Errorf("len(Positions(%s)) = %d, want %d", k, got, want)
		}
	}
	for slot := shape.Slot(0); slot < shape.NumSlots; slot++ {
		if got, want := len(s.Colors(slot)), ColCoords*s.Count(slot.Kind()); got != want {
			t.Errorf("len(Colors(%s)) = %d, want %d", slot, got, want)
		}
	}

	// First square vertex is (1, 1); first sky color is opaque blue.
	if p := s.Positions(shape.Square)[:2]; p[0] != 1 || p[1] != 1 {
		t.Errorf("first square position = %v, want [1 1]", p)
	}
	if c := s.Colors(shape.SkyBlue)[:4]; c[0] != 0 || c[1] != 0 || c[2] != 1 || c[3] != 1 {
		t.Errorf("first sky color = %v, want [0 0 1 1]", c)
	}
}

func TestNewErrors(t *testing.T) {
	geoms, err := shape.BuildAll()
	if err != nil {
		t.Fatal(err)
	}

	missing := geoms
	missing[shape.Sun] = nil
	if _, err := New(missing); !errors.Is(err, ErrMissing) {
		t.Errorf("New(nil sun) error = %v, want ErrMissing", err)
	}

	short := geoms
	tri := *geoms[shape.Triangle]
	tri.Colors = map[shape.Slot][]mgl32.Vec4{
		shape.RoofRed: tri.Colors[shape.RoofRed],
		shape.FanBlue: tri.Colors[shape.FanBlue][:1],
	}
	short[shape.Triangle] = &tri
	if _, err := New(short); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("New(short fan colors) error = %v, want ErrLengthMismatch", err)
	}
}

func TestUploadOnce(t *testing.T) {
	s := buildStore(t)
	u := newRecordingUploader()

	if err := s.Upload(u); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	want := []string{"square", "triangle", "sun", "sky", "grass", "house", "roof", "fan", "sun"}
	if len(u.order) != len(want) {
		t.Fatalf("upload order = %v, want %v", u.order, want)
	}
	for i := range want {
		if u.order[i] != want[i] {
			t.Fatalf("upload order = %v, want %v", u.order, want)
		}
	}
	if u.counts[shape.Square] != 6 {
		t.Errorf("uploaded square count = %d, want 6", u.counts[shape.Square])
	}

	if err := s.Upload(u); !errors.Is(err, ErrUploaded) {
		t.Errorf("second Upload() error = %v, want ErrUploaded", err)
	}
}

func TestUploadPropagatesErrors(t *testing.T) {
	s := buildStore(t)
	boom := errors.New("boom")
	u := newRecordingUploader()
	u.fail = boom

	if err := s.Upload(u); !errors.Is(err, boom) {
		t.Errorf("Upload() error = %v, want wrapped boom", err)
	}
	if err := s.Upload(newRecordingUploader()); err != nil {
		t.Errorf("Upload() after failure error = %v, want nil", err)
	}
}
