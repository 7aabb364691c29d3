// Package gesture turns horizontal drag movement into card feedback and a
// final accept/reject/cancel classification. Distances are in pixels; the
// UI scales terminal columns before calling in.
package gesture

import "math"

const (
	// Threshold is the displacement a drag must exceed to count as a swipe.
	Threshold = 80.0
	// RotationDivisor maps displacement to tilt in degrees.
	RotationDivisor = 18.0
	// IntensityRange is the displacement at which a badge is fully shown.
	IntensityRange = 100.0
)

// Outcome classifies a finished gesture.
type Outcome int

const (
	Cancel Outcome = iota
	Accept
	Reject
)

func (o Outcome) String() string {
	switch o {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	default:
		return "cancel"
	}
}

// Frame is the visual state of the card during a drag.
type Frame struct {
	Delta    float64 // horizontal displacement
	Rotation float64 // degrees, positive is clockwise
	Like     float64 // LIKE badge intensity in [0,1]
	Nope     float64 // NOPE badge intensity in [0,1]
}

// Neutral is the resting frame.
var Neutral = Frame{}

// Classify maps a final displacement to an outcome. Boundaries are exclusive.
func Classify(delta float64) Outcome {
	switch {
	case delta > Threshold:
		return Accept
	case delta < -Threshold:
		return Reject
	default:
		return Cancel
	}
}

// FrameFor computes the card feedback for a displacement. Only one badge is
// ever lit.
func FrameFor(delta float64) Frame {
	intensity := math.Min(math.Abs(delta)/IntensityRange, 1)
	f := Frame{Delta: delta, Rotation: delta / RotationDivisor}
	switch {
	case delta > 0:
		f.Like = intensity
	case delta < 0:
		f.Nope = intensity
	}
	return f
}

// Recognizer tracks one drag at a time.
type Recognizer struct {
	active   bool
	originX  float64
	currentX float64
}

// Start begins a drag at x.
func (r *Recognizer) Start(x float64) {
	r.active = true
	r.originX = x
	r.currentX = x
}

// Move updates the drag position. It reports false when no drag is active.
func (r *Recognizer) Move(x float64) (Frame, bool) {
	if !r.active {
		return Neutral, false
	}
	r.currentX = x
	return FrameFor(r.currentX - r.originX), true
}

// End finishes the drag and classifies it. It reports false when no drag
// was active. The recognizer is always inactive afterwards.
func (r *Recognizer) End() (Outcome, bool) {
	if !r.active {
		return Cancel, false
	}
	delta := r.currentX - r.originX
	r.Reset()
	return Classify(delta), true
}

// Active reports whether a drag is in progress.
func (r *Recognizer) Active() bool { return r.active }

// Delta returns the current displacement; zero when idle.
func (r *Recognizer) Delta() float64 {
	if !r.active {
		return 0
	}
	return r.currentX - r.originX
}

// Reset drops any drag in progress.
func (r *Recognizer) Reset() {
	*r = Recognizer{}
}
