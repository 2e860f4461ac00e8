package scene

import (
	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/camera"
	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
)

// Controls are the externally owned scalars read once per frame.
type Controls struct {
	// FovDegrees is the vertical field of view; it is clamped by the camera.
	FovDegrees float64
	// Mode selects the motion regime. Changing it resets the animation clock.
	Mode clock.Mode
	// ExportScale is 1 in normal operation and targetHeight/viewportHeight while exporting.
	ExportScale float64
}

// Transform places one plane: world translation first, then the face-camera rotations, then the uniform scale.
type Transform struct {
	// Translation is the node position on the ring in scene space.
	Translation [3]float64
	// FaceRotX and FaceRotY undo the scene orientation so the plane faces the camera.
	FaceRotX, FaceRotY float64
	// Scale is displayScale * sizeWave.
	Scale float64
}

// Matrix composes Translate * RotateY(FaceRotY) * RotateX(FaceRotX) * Scale in column-major order.
//
// Returns:
//   - [16]float32: the model matrix
func (t Transform) Matrix() [16]float32 {
	var tr, ry, rx, sc, out [16]float32
	common.Translate4(tr[:], float32(t.Translation[0]), float32(t.Translation[1]), float32(t.Translation[2]))
	common.RotateY4(ry[:], float32(t.FaceRotY))
	common.RotateX4(rx[:], float32(t.FaceRotX))
	common.Scale4(sc[:], float32(t.Scale))
	common.Chain(out[:], tr[:], ry[:], rx[:], sc[:])
	return out
}

// DrawCommand is one textured plane to draw this frame.
type DrawCommand struct {
	// Index is the node's slot index.
	Index int
	// Image is the texture to bind.
	Image *common.RenderImage
	// Transform is the world placement of the plane.
	Transform Transform
	// CameraDistance is the camera-space distance that drove the mesh roundness.
	CameraDistance float64
	// Mesh is the generated rounded plane.
	Mesh model.PlaneMesh
	// Model is Transform.Matrix().
	Model [16]float32
	// MVP is ViewProjection * Model.
	MVP [16]float32
}

// Frame is everything the rendering backend needs to draw one frame.
type Frame struct {
	// Number is the animation frame counter the frame was sampled at.
	Number uint64
	// Mode is the motion mode of the frame.
	Mode clock.Mode
	// Generation identifies the node collection that was drawn.
	Generation uint64
	// Slots is the number of ring slots, including undrawable ones.
	Slots int
	// RotationOffset is the ring rotation added to every base angle.
	RotationOffset float64
	// View holds the camera parameters of the frame.
	View camera.ViewParams
	// Commands are in slot order.
	Commands []DrawCommand
}
