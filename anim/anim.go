// Package anim tracks the rotation applied to the spinning scene elements.
package anim

// DefaultRPM is the rotation rate used when none is configured.
const DefaultRPM = 10.0

// State is the rotation angle, its direction and rate, and whether the
// rotation is applied when drawing.
//
// State is not safe for concurrent use; it is owned by the frame loop.
type State struct {
	// Angle is the accumulated rotation in degrees. It is not wrapped.
	Angle float64

	// Dir is +1 or -1.
	Dir int

	// RPM is the rotation rate in revolutions per minute.
	RPM float64

	// Enabled gates whether Spin reports the angle.
	Enabled bool
}

// New returns a stopped state turning counter-clockwise at rpm.
func New(rpm float64) *State {
	return &State{Dir: 1, RPM: rpm}
}

// Advance adds elapsed seconds of rotation to the angle and returns the
// change in degrees: elapsed x (RPM/60) x 360 x Dir.
func (s *State) Advance(elapsed float64) float64 {
	delta := elapsed * (s.RPM / 60.0) * 360.0 * float64(s.sign())
	s.Angle += delta
	return delta
}

// FlipDirection reverses the direction of rotation.
func (s *State) FlipDirection() {
	s.Dir = -s.sign()
}

// Toggle starts or stops the rotation and reports the new state.
func (s *State) Toggle() bool {
	s.Enabled = !s.Enabled
	return s.Enabled
}

// Spin returns the angle to add to spinning elements: the accumulated angle
// while enabled, zero otherwise.
func (s *State) Spin() float32 {
	if !s.Enabled {
		return 0
	}
	return float32(s.Angle)
}

// sign normalizes Dir so a zero value state turns counter-clockwise.
func (s *State) sign() int {
	if s.Dir < 0 {
		return -1
	}
	return 1
}
