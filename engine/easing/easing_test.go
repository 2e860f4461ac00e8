package easing

import (
	"math"
	"testing"
)

var curves = []struct {
	name  string
	curve Curve
}{
	{"step", StepCurve},
	{"ease", Curve{0.25, 0.1, 0.25, 1}},
	{"linear", Curve{0, 0, 1, 1}},
	{"ease-in-out", Curve{0.42, 0, 0.58, 1}},
	{"flat start", Curve{0, 0, 0, 1}},
	{"sharp", Curve{1, 0, 0, 1}},
}

func TestCubicBezierEndpoints(t *testing.T) {
	for _, tt := range curves {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.curve.Ease(0); got != 0 {
				t.Errorf("expected 0 at t=0, got %v", got)
			}
			if got := tt.curve.Ease(1); got != 1 {
				t.Errorf("expected 1 at t=1, got %v", got)
			}
		})
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	for _, tt := range curves {
		t.Run(tt.name, func(t *testing.T) {
			prev := 0.0
			for i := 1; i <= 200; i++ {
				x := float64(i) / 200
				y := tt.curve.Ease(x)
				if y < prev-1e-9 {
					t.Fatalf("expected non-decreasing output, got %f after %f at t=%f", y, prev, x)
				}
				prev = y
			}
		})
	}
}

func TestCubicBezierLinearIsIdentity(t *testing.T) {
	for i := 0; i <= 10; i++ {
		x := float64(i) / 10
		if got := CubicBezier(x, 0, 0, 1, 1); math.Abs(got-x) > 1e-5 {
			t.Errorf("expected %f, got %f", x, got)
		}
	}
}

func TestCubicBezierSymmetricCurveHitsHalf(t *testing.T) {
	got := CubicBezier(0.5, 0.42, 0, 0.58, 1)
	if math.Abs(got-0.5) > 1e-5 {
		t.Errorf("expected 0.5 at the midpoint of a symmetric curve, got %f", got)
	}
}

func TestCubicBezierOutOfRangeInput(t *testing.T) {
	if got := StepCurve.Ease(-0.5); got != 0 {
		t.Errorf("expected 0 for negative time, got %f", got)
	}
	if got := StepCurve.Ease(3); got != 1 {
		t.Errorf("expected 1 for time past the end, got %f", got)
	}
	if got := StepCurve.Ease(math.NaN()); got != 0 {
		t.Errorf("expected 0 for NaN, got %f", got)
	}
}

func TestCubicBezierFlatSlopeFallsBackToBisection(t *testing.T) {
	// x'(0) is zero for x1 = 0, so Newton stalls near the start and bisection resolves it.
	got := CubicBezier(1e-4, 0, 0, 0, 1)
	if math.IsNaN(got) || got < 0 || got > 1 {
		t.Errorf("expected a value in [0,1], got %f", got)
	}
}
