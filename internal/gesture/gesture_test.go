package gesture

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		delta float64
		want  Outcome
	}{
		{81, Accept},
		{-81, Reject},
		{0, Cancel},
		{80, Cancel},
		{-80, Cancel},
		{80.01, Accept},
		{-80.01, Reject},
		{500, Accept},
		{-500, Reject},
	}

	for _, tc := range tests {
		if got := Classify(tc.delta); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.delta, got, tc.want)
		}
	}
}

func TestFrameFor(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  Frame
	}{
		{"rest", 0, Frame{}},
		{"half right", 50, Frame{Delta: 50, Rotation: 50.0 / 18, Like: 0.5}},
		{"half left", -50, Frame{Delta: -50, Rotation: -50.0 / 18, Nope: 0.5}},
		{"clamped right", 250, Frame{Delta: 250, Rotation: 250.0 / 18, Like: 1}},
		{"clamped left", -250, Frame{Delta: -250, Rotation: -250.0 / 18, Nope: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FrameFor(tc.delta)
			if got.Delta != tc.want.Delta ||
				math.Abs(got.Rotation-tc.want.Rotation) > 1e-9 ||
				got.Like != tc.want.Like ||
				got.Nope != tc.want.Nope {
				t.Errorf("FrameFor(%v) = %+v, want %+v", tc.delta, got, tc.want)
			}
		})
	}
}

func TestBadgesAreExclusive(t *testing.T) {
	for d := -200.0; d <= 200; d += 7 {
		f := FrameFor(d)
		if f.Like > 0 && f.Nope > 0 {
			t.Fatalf("both badges lit at delta %v: %+v", d, f)
		}
	}
}

func TestRecognizerLifecycle(t *testing.T) {
	var r Recognizer

	if _, ok := r.Move(10); ok {
		t.Error("Move without Start should be ignored")
	}
	if _, ok := r.End(); ok {
		t.Error("End without Start should be ignored")
	}

	r.Start(100)
	if !r.Active() {
		t.Fatal("expected active after Start")
	}

	f, ok := r.Move(160)
	if !ok || f.Delta != 60 || f.Like != 0.6 {
		t.Errorf("unexpected frame %+v ok=%v", f, ok)
	}

	f, _ = r.Move(190)
	if f.Delta != 90 {
		t.Errorf("delta should be measured from origin, got %v", f.Delta)
	}
	if r.Delta() != 90 {
		t.Errorf("Delta() = %v", r.Delta())
	}

	out, ok := r.End()
	if !ok || out != Accept {
		t.Errorf("expected accept, got %s ok=%v", out, ok)
	}
	if r.Active() {
		t.Error("End must clear active")
	}
	if r.Delta() != 0 {
		t.Error("idle recognizer should report zero delta")
	}
}

func TestRecognizerZeroMovementCancels(t *testing.T) {
	var r Recognizer
	r.Start(42)
	out, ok := r.End()
	if !ok || out != Cancel {
		t.Errorf("expected cancel, got %s", out)
	}
}

func TestRecognizerReject(t *testing.T) {
	var r Recognizer
	r.Start(300)
	r.Move(250)
	f, _ := r.Move(200)
	if f.Nope != 1 || f.Like != 0 {
		t.Errorf("expected full NOPE, got %+v", f)
	}
	if out, _ := r.End(); out != Reject {
		t.Errorf("expected reject, got %s", out)
	}
}
