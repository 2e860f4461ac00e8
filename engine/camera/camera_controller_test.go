package camera

import (
	"math"
	"testing"
)

func TestDragAppliesSensitivity(t *testing.T) {
	cc := NewCameraController()
	cc.Drag(100, -40)

	if got := cc.RotationY(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected rotY 0.5, got %f", got)
	}
	if got := cc.RotationX(); math.Abs(got+0.2) > 1e-12 {
		t.Errorf("expected rotX -0.2, got %f", got)
	}
}

func TestDragClampsRotation(t *testing.T) {
	cc := NewCameraController()
	for i := 0; i < 50; i++ {
		cc.Drag(1000, 0)
		if cc.RotationY() > math.Pi {
			t.Fatalf("expected rotY <= pi, got %f", cc.RotationY())
		}
	}
	if cc.RotationY() != math.Pi {
		t.Errorf("expected rotY clamped to pi, got %f", cc.RotationY())
	}

	deltas := [][2]float64{{-300, 800}, {12, -5000}, {-9000, 3}, {0, 700}, {450, 450}}
	for _, d := range deltas {
		cc.Drag(d[0], d[1])
		if rx := cc.RotationX(); rx < -math.Pi/2 || rx > math.Pi/2 {
			t.Errorf("expected rotX in [-pi/2, pi/2], got %f", rx)
		}
		if ry := cc.RotationY(); ry < -math.Pi || ry > math.Pi {
			t.Errorf("expected rotY in [-pi, pi], got %f", ry)
		}
	}
}

func TestWheelClampsDistance(t *testing.T) {
	tests := []struct {
		name     string
		deltas   []float64
		expected float64
	}{
		{"zoom out", []float64{100, 100}, 1800},
		{"zoom in past minimum", []float64{-5000}, DefaultMinDistance},
		{"zoom out past maximum", []float64{4000, 4000, 4000}, DefaultMaxDistance},
		{"back and forth", []float64{-100000, 300}, DefaultMinDistance + 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController()
			for _, d := range tt.deltas {
				cc.Wheel(d)
				if dist := cc.Distance(); dist < DefaultMinDistance || dist > DefaultMaxDistance {
					t.Fatalf("expected distance in bounds, got %f", dist)
				}
			}
			if got := cc.Distance(); got != tt.expected {
				t.Errorf("expected distance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestResetForViewport(t *testing.T) {
	tests := []struct {
		width, height int
		expected      float64
	}{
		{1920, 1080, 1600},
		{1080, 1920, 1920.0 / 1080.0 * 1600},
		{800, 800, 1600},
		{0, 0, 1600},
	}

	for _, tt := range tests {
		cc := NewCameraController(WithRotation(0.3, -1))
		cc.ResetForViewport(tt.width, tt.height)
		if math.Abs(cc.Distance()-tt.expected) > 1e-9 {
			t.Errorf("%dx%d: expected distance %f, got %f", tt.width, tt.height, tt.expected, cc.Distance())
		}
		if cc.RotationX() != 0 || cc.RotationY() != 0 {
			t.Errorf("%dx%d: expected rotation reset, got %f/%f", tt.width, tt.height, cc.RotationX(), cc.RotationY())
		}
	}
}

func TestFitViewportKeepsRotation(t *testing.T) {
	cc := NewCameraController(WithRotation(0.3, -1))
	cc.FitViewport(600, 1200)
	if math.Abs(cc.Distance()-3200) > 1e-9 {
		t.Errorf("expected distance 3200, got %f", cc.Distance())
	}
	if cc.RotationX() != 0.3 || cc.RotationY() != -1 {
		t.Errorf("expected rotation 0.3/-1, got %f/%f", cc.RotationX(), cc.RotationY())
	}
}

func TestNonFiniteInputIsIgnored(t *testing.T) {
	cc := NewCameraController()
	cc.Drag(100, -40)
	cc.Wheel(400)

	cc.Drag(math.NaN(), math.Inf(1))
	cc.Drag(math.Inf(-1), 10)
	cc.Wheel(math.NaN())
	cc.Wheel(math.Inf(1))

	if math.Abs(cc.RotationY()-0.5) > 1e-12 || math.Abs(cc.RotationX()+0.2) > 1e-12 {
		t.Errorf("expected rotation -0.2/0.5, got %f/%f", cc.RotationX(), cc.RotationY())
	}
	if cc.Distance() != 2000 {
		t.Errorf("expected distance 2000, got %f", cc.Distance())
	}

	cc.SetDistance(math.NaN())
	if cc.Distance() != DefaultMinDistance {
		t.Errorf("expected NaN distance to clamp to %f, got %f", DefaultMinDistance, cc.Distance())
	}
}

func TestOptionsAreClampedAtConstruction(t *testing.T) {
	cc := NewCameraController(WithDistance(50), WithRotation(5, -5))
	if cc.Distance() != DefaultMinDistance {
		t.Errorf("expected distance %f, got %f", DefaultMinDistance, cc.Distance())
	}
	if cc.RotationX() != math.Pi/2 || cc.RotationY() != -math.Pi {
		t.Errorf("expected clamped rotation, got %f/%f", cc.RotationX(), cc.RotationY())
	}
}
