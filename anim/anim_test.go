package anim

import (
	"math"
	"testing"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name    string
		dir     int
		rpm     float64
		elapsed float64
		want    float64
	}{
		{"forward", 1, 10, 6, 360},
		{"reverse", -1, 10, 6, -360},
		{"tenth of a revolution", 1, 10, 0.6, 36},
		{"tenth of a revolution reversed", -1, 10, 0.6, -36},
		{"one revolution", 1, 60, 1, 360},
		{"zero elapsed", 1, 10, 0, 0},
		{"zero value dir turns forward", 0, 10, 0.6, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Angle: 100, Dir: tt.dir, RPM: tt.rpm}
			delta := s.Advance(tt.elapsed)
			if math.Abs(delta-tt.want) > 1e-9 {
				t.Errorf("Advance(%v) = %v, want %v", tt.elapsed, delta, tt.want)
			}
			if math.Abs(s.Angle-(100+tt.want)) > 1e-9 {
				t.Errorf("Angle = %v, want %v", s.Angle, 100+tt.want)
			}
		})
	}
}

func TestFlipDirection(t *testing.T) {
	s := New(DefaultRPM)
	if s.Dir != 1 {
		t.Fatalf("New().Dir = %d, want 1", s.Dir)
	}

	s.FlipDirection()
	if s.Dir != -1 {
		t.Errorf("after one flip Dir = %d, want -1", s.Dir)
	}
	s.FlipDirection()
	if s.Dir != 1 {
		t.Errorf("after two flips Dir = %d, want 1", s.Dir)
	}
}

func TestSpinGatedByEnabled(t *testing.T) {
	s := New(DefaultRPM)
	s.Advance(0.6)

	if got := s.Spin(); got != 0 {
		t.Errorf("Spin() while disabled = %v, want 0", got)
	}
	if !s.Toggle() {
		t.Fatal("Toggle() = false, want true")
	}
	if got := s.Spin(); math.Abs(float64(got)-36) > 1e-4 {
		t.Errorf("Spin() while enabled = %v, want 36", got)
	}
	if s.Toggle() {
		t.Error("second Toggle() = true, want false")
	}
}
