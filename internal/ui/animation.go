package ui

import (
	"time"

	"github.com/abelbrown/kittyswipe/internal/model"
	"github.com/abelbrown/kittyswipe/internal/session"
	"github.com/charmbracelet/harmonica"
	tea "github.com/charmbracelet/bubbletea"
)

// Animation timing. Purely cosmetic: the session has already moved on by
// the time the first frame is drawn.
const (
	exitFrames    = 7
	exitInterval  = 400 * time.Millisecond / exitFrames
	exitRotation  = 14.0
	snapFPS       = 20
	snapFrames    = 6 // ~300ms
	snapInterval  = time.Second / snapFPS
)

// snapSpring pulls a released card back to rest with a little overshoot.
var snapSpring = harmonica.NewSpring(harmonica.FPS(snapFPS), 20.0, 0.35)

type animKind int

const (
	animNone animKind = iota
	animExit
	animSnap
)

// animation is the cosmetic state layered over the session.
type animation struct {
	kind     animKind
	frame    int
	item     model.Item
	decision session.Decision
	counter  string
	complete bool // the exit finishes the session

	pos, vel float64 // snap-back spring state, in pixels
}

func (a animation) running() bool { return a.kind != animNone }

func (a animation) frames() int {
	switch a.kind {
	case animExit:
		return exitFrames
	case animSnap:
		return snapFrames
	default:
		return 0
	}
}

func (a animation) interval() time.Duration {
	if a.kind == animSnap {
		return snapInterval
	}
	return exitInterval
}

// progress returns how far through the animation we are, in (0,1].
func (a animation) progress() float64 {
	n := a.frames()
	if n == 0 {
		return 1
	}
	return float64(a.frame+1) / float64(n)
}

// exitTransform returns the displacement (in pixels) and rotation of the
// departing card. screenPx is the terminal width in pixels.
func (a animation) exitTransform(screenPx float64) (offset, rotation float64) {
	sign := 1.0
	if a.decision == session.Reject {
		sign = -1
	}
	p := a.progress()
	return sign * screenPx * p, sign * exitRotation * p
}

// step advances the snap-back spring by one frame.
func (a *animation) step() {
	if a.kind == animSnap {
		a.pos, a.vel = snapSpring.Update(a.pos, a.vel, 0)
	}
}

// animTick advances the animation identified by seq.
type animTick struct {
	seq int
}

func tickAnimation(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return animTick{seq: seq}
	})
}
