package scene

import (
	"image"
	"math"
	"testing"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/camera"
	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
)

func testImages(n int, placeholder bool) []*common.RenderImage {
	images := make([]*common.RenderImage, n)
	for i := range images {
		images[i] = common.NewRenderImage("test", image.NewRGBA(image.Rect(0, 0, 16, 8)))
		images[i].Placeholder = placeholder
	}
	return images
}

func defaultControls() Controls {
	return Controls{FovDegrees: 60, Mode: clock.Continuous, ExportScale: 1}
}

func TestFrameFirstPlacement(t *testing.T) {
	s := NewScene()
	s.SetImages(testImages(6, false))

	f := s.Frame(defaultControls())
	if len(f.Commands) != 6 {
		t.Fatalf("expected 6 commands, got %d", len(f.Commands))
	}
	if f.Number != 0 || f.RotationOffset != 0 {
		t.Errorf("expected frame 0 with no rotation, got frame %d offset %f", f.Number, f.RotationOffset)
	}

	// frame 0, node 0: no expansion, z = 150, size wave 1
	cmd := f.Commands[0]
	want := [3]float64{420 + DefaultRingOffset, 0, 150}
	for i := range want {
		if math.Abs(cmd.Transform.Translation[i]-want[i]) > 1e-9 {
			t.Errorf("expected translation %v, got %v", want, cmd.Transform.Translation)
			break
		}
	}
	if math.Abs(cmd.Transform.Scale-1) > 1e-9 {
		t.Errorf("expected scale 1, got %f", cmd.Transform.Scale)
	}
	if cmd.Mesh.Width != 280 || cmd.Mesh.Height != 140 {
		t.Errorf("expected a 280x140 plane, got %fx%f", cmd.Mesh.Width, cmd.Mesh.Height)
	}

	expectedDist := camera.CameraSpaceDistance(want[0], want[1], want[2], 0, 0, f.View.Distance)
	if math.Abs(cmd.CameraDistance-expectedDist) > 1e-9 {
		t.Errorf("expected camera distance %f, got %f", expectedDist, cmd.CameraDistance)
	}
}

func TestFrameAdvancesClock(t *testing.T) {
	s := NewScene()
	s.SetImages(testImages(3, false))

	s.Frame(defaultControls())
	f := s.Frame(defaultControls())
	if f.Number != 1 || math.Abs(f.RotationOffset-0.03) > 1e-12 {
		t.Errorf("expected frame 1 with offset 0.03, got frame %d offset %f", f.Number, f.RotationOffset)
	}
}

func TestModeSwitchResetsOffset(t *testing.T) {
	s := NewScene()
	s.SetImages(testImages(6, false))
	for i := 0; i < 90; i++ {
		s.Frame(defaultControls())
	}

	controls := defaultControls()
	controls.Mode = clock.Stepped
	f := s.Frame(controls)
	if f.Number != 0 || f.RotationOffset != 0 {
		t.Errorf("expected reset on mode switch, got frame %d offset %f", f.Number, f.RotationOffset)
	}
	for _, cmd := range f.Commands {
		if cmd.Transform.Translation[2] != 0 || cmd.Transform.Scale != 1 {
			t.Errorf("expected rigid placement in stepped mode, got %+v", cmd.Transform)
		}
	}

	for i := 1; i < 60; i++ {
		s.Frame(controls)
	}
	f = s.Frame(controls)
	if f.Number != 60 || math.Abs(f.RotationOffset-2*math.Pi/6) > 1e-12 {
		t.Errorf("expected one slot after 60 frames, got frame %d offset %f", f.Number, f.RotationOffset)
	}
}

func TestRebuildResetsClock(t *testing.T) {
	s := NewScene()
	s.SetImages(testImages(4, false))
	for i := 0; i < 10; i++ {
		s.Frame(defaultControls())
	}

	s.SetImages(testImages(5, false))
	f := s.Frame(defaultControls())
	if f.Number != 0 || len(f.Commands) != 5 {
		t.Errorf("expected a fresh ring of 5 at frame 0, got %d nodes at frame %d", len(f.Commands), f.Number)
	}
}

func TestEmptyRing(t *testing.T) {
	s := NewScene()
	controls := defaultControls()
	controls.Mode = clock.Stepped

	for i := 0; i < 70; i++ {
		f := s.Frame(controls)
		if len(f.Commands) != 0 || f.RotationOffset != 0 {
			t.Fatalf("expected an empty frame, got %d commands offset %f", len(f.Commands), f.RotationOffset)
		}
	}
}

func TestDegenerateImagesAreSkipped(t *testing.T) {
	s := NewScene()
	images := testImages(2, false)
	images = append(images, nil, common.NewRenderImage("empty", image.NewRGBA(image.Rect(0, 0, 0, 0))))
	s.SetImages(images)

	f := s.Frame(defaultControls())
	if f.Slots != 4 || len(f.Commands) != 2 {
		t.Errorf("expected 2 commands over 4 slots, got %d over %d", len(f.Commands), f.Slots)
	}
}

func TestAppendReplacesPlaceholders(t *testing.T) {
	s := NewScene()
	s.SetImages(testImages(6, true))

	s.AppendImages(testImages(1, false)...)
	if got := len(s.Images()); got != 1 {
		t.Fatalf("expected placeholders replaced by 1 upload, got %d images", got)
	}

	s.AppendImages(testImages(2, false)...)
	if got := len(s.Images()); got != 3 {
		t.Errorf("expected uploads to accumulate to 3, got %d", got)
	}
	if got := s.Layout().Len(); got != 3 {
		t.Errorf("expected 3 ring slots, got %d", got)
	}
}

func TestBillboardFacesCamera(t *testing.T) {
	cc := camera.NewCameraController(camera.WithRotation(0.4, -0.9))
	s := NewScene(WithCamera(camera.NewCamera(camera.WithController(cc))))
	s.SetImages(testImages(3, false))

	f := s.Frame(defaultControls())
	for _, cmd := range f.Commands {
		// The plane normal (0,0,1) must end up along the view axis after the scene rotation.
		var full [16]float32
		common.Mul4(full[:], f.View.View[:], cmd.Model[:])
		n := common.TransformPoint(full[:], 0, 0, 1)
		o := common.TransformPoint(full[:], 0, 0, 0)
		nx, ny, nz := n[0]-o[0], n[1]-o[1], n[2]-o[2]
		length := math.Sqrt(float64(nx*nx + ny*ny + nz*nz))
		if math.Abs(float64(nz)/length-1) > 1e-4 {
			t.Errorf("expected node %d to face the camera, normal is (%f, %f, %f)", cmd.Index, nx, ny, nz)
		}
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	images := testImages(80, false)

	serial := NewScene(WithParallelThreshold(1000))
	parallel := NewScene(WithParallelThreshold(1), WithComputeWorkers(4))
	serial.SetImages(images)
	parallel.SetImages(images)

	for i := 0; i < 3; i++ {
		a := serial.Frame(defaultControls())
		b := parallel.Frame(defaultControls())
		if len(a.Commands) != len(b.Commands) {
			t.Fatalf("expected equal command counts, got %d and %d", len(a.Commands), len(b.Commands))
		}
		for j := range a.Commands {
			if a.Commands[j].MVP != b.Commands[j].MVP || a.Commands[j].Index != b.Commands[j].Index {
				t.Fatalf("frame %d command %d differs between serial and parallel generation", i, j)
			}
		}
	}
}

func TestResetRestoresCamera(t *testing.T) {
	s := NewScene()
	s.Camera().Controller().Drag(300, 300)
	s.Camera().Controller().Wheel(900)

	s.Reset(1080, 1920)
	cc := s.Camera().Controller()
	if cc.RotationX() != 0 || cc.RotationY() != 0 {
		t.Errorf("expected rotation reset, got %f/%f", cc.RotationX(), cc.RotationY())
	}
	if want := 1920.0 / 1080.0 * 1600; math.Abs(cc.Distance()-want) > 1e-9 {
		t.Errorf("expected distance %f, got %f", want, cc.Distance())
	}
	if math.Abs(s.Camera().Aspect()-1080.0/1920.0) > 1e-12 {
		t.Errorf("expected portrait aspect, got %f", s.Camera().Aspect())
	}
}

func TestResizeKeepsAnimationAndRotation(t *testing.T) {
	s := NewScene()
	s.SetImages(testImages(6, false))
	for range 100 {
		s.Frame(defaultControls())
	}
	cc := s.Camera().Controller()
	cc.Drag(200, 100)
	rotX, rotY := cc.RotationX(), cc.RotationY()

	s.Resize(600, 1200)
	f := s.Frame(defaultControls())
	if f.Number != 100 {
		t.Errorf("expected frame 100 after resize, got %d", f.Number)
	}
	if f.RotationOffset == 0 {
		t.Error("expected the ring to keep its rotation offset")
	}
	if cc.RotationX() != rotX || cc.RotationY() != rotY {
		t.Errorf("expected rotation %f/%f, got %f/%f", rotX, rotY, cc.RotationX(), cc.RotationY())
	}
	if math.Abs(cc.Distance()-3200) > 1e-9 {
		t.Errorf("expected distance 3200, got %f", cc.Distance())
	}
	if math.Abs(s.Camera().Aspect()-0.5) > 1e-12 {
		t.Errorf("expected aspect 0.5, got %f", s.Camera().Aspect())
	}
}
