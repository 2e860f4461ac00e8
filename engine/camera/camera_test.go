package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/kinetic-ring/common"
)

func TestCompensationScale(t *testing.T) {
	if got := CompensationScale(math.Pi / 3); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected 1 at 60 degrees, got %f", got)
	}
	narrow := CompensationScale(30 * math.Pi / 180)
	wide := CompensationScale(90 * math.Pi / 180)
	if narrow <= 1 || wide >= 1 {
		t.Errorf("expected narrow fov to push the camera back and wide fov to pull it in, got %f and %f", narrow, wide)
	}
}

func TestUpdateDistance(t *testing.T) {
	cam := NewCamera(WithController(NewCameraController(WithDistance(2000))))

	vp := cam.Update(60, 1)
	if math.Abs(vp.Distance-2000) > 1e-9 {
		t.Errorf("expected distance 2000, got %f", vp.Distance)
	}

	vp = cam.Update(60, 2.5)
	if math.Abs(vp.Distance-5000) > 1e-9 {
		t.Errorf("expected export scaled distance 5000, got %f", vp.Distance)
	}

	vp = cam.Update(90, 1)
	expected := 2000 * math.Tan(math.Pi/6) / math.Tan(math.Pi/4)
	if math.Abs(vp.Distance-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, vp.Distance)
	}
}

func TestUpdateClampsExternalScalars(t *testing.T) {
	cam := NewCamera()

	if vp := cam.Update(500, 1); vp.FovDegrees != MaxFovDegrees {
		t.Errorf("expected fov %f, got %f", MaxFovDegrees, vp.FovDegrees)
	}
	if vp := cam.Update(1, 1); vp.FovDegrees != MinFovDegrees {
		t.Errorf("expected fov %f, got %f", MinFovDegrees, vp.FovDegrees)
	}
	if vp := cam.Update(60, 0); vp.ExportScale != 1 {
		t.Errorf("expected export scale 1, got %f", vp.ExportScale)
	}
}

func TestViewProjectionCentersOrigin(t *testing.T) {
	cam := NewCamera(WithAspect(1))
	vp := cam.Update(60, 1)

	p := common.TransformPoint(vp.ViewProjection[:], 0, 0, 0)
	if p[3] <= 0 {
		t.Fatalf("expected origin in front of the camera, got w=%f", p[3])
	}
	if math.Abs(float64(p[0]/p[3])) > 1e-5 || math.Abs(float64(p[1]/p[3])) > 1e-5 {
		t.Errorf("expected origin at screen center, got (%f, %f)", p[0]/p[3], p[1]/p[3])
	}

	// +y in world space lands in the lower half of the screen.
	q := common.TransformPoint(vp.ViewProjection[:], 0, 100, 0)
	if q[1]/q[3] >= 0 {
		t.Errorf("expected +y to project below center, got %f", q[1]/q[3])
	}
}

func TestCameraSpaceDistance(t *testing.T) {
	tests := []struct {
		name             string
		x, y, z          float64
		rotX, rotY, camZ float64
		expected         float64
	}{
		{"origin", 0, 0, 0, 0, 0, 1600, 1600},
		{"on axis toward camera", 0, 0, 600, 0, 0, 1600, 1000},
		{"lateral", 720, 0, 0, 0, 0, 1600, math.Hypot(720, 1600)},
		{"half turn brings far side near", 0, 0, -400, 0, math.Pi, 1600, 1200},
		{"tilt lifts y into z", 0, 500, 0, math.Pi / 2, 0, 1600, 1100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CameraSpaceDistance(tt.x, tt.y, tt.z, tt.rotX, tt.rotY, tt.camZ)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}
