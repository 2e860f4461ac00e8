package camera

import (
	"math"

	"github.com/Carmen-Shannon/kinetic-ring/common"
)

// Projection defaults.
const (
	DefaultFovDegrees   = 60.0
	MinFovDegrees       = 10.0
	MaxFovDegrees       = 150.0
	DefaultNear         = 0.1
	DefaultFar          = 50000.0
	referenceHalfFovRad = math.Pi / 6
)

type cameraImpl struct {
	aspect float64
	near   float64
	far    float64

	minFov, maxFov float64

	controller CameraController
}

// Camera defines the interface for the ring camera.
// The camera holds perspective settings and computes view/projection parameters
// from an attached CameraController each frame via Update().
type Camera interface {
	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float64: the aspect ratio
	Aspect() float64

	// SetViewport updates the aspect ratio from the viewport size. Degenerate sizes are ignored.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	SetViewport(width, height int)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float64: near plane distance
	Near() float64

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float64: far plane distance
	Far() float64

	// ClampFov restricts a field of view in degrees to the supported range.
	//
	// Parameters:
	//   - fovDegrees: requested field of view
	//
	// Returns:
	//   - float64: the clamped field of view
	ClampFov(fovDegrees float64) float64

	// Controller returns the attached camera controller.
	//
	// Returns:
	//   - CameraController: the controller that owns orientation and distance
	Controller() CameraController

	// Update computes the view parameters for one frame.
	// The field of view is clamped, the camera distance is compensated so that the ring keeps its apparent size
	// across fields of view, and the export scale multiplies the distance and the scene scale.
	//
	// Parameters:
	//   - fovDegrees: externally owned field of view in degrees
	//   - exportScale: export scale factor, 1 in normal operation; non-positive values are treated as 1
	//
	// Returns:
	//   - ViewParams: the per-frame view parameters
	Update(fovDegrees, exportScale float64) ViewParams
}

// ViewParams is the immutable result of Camera.Update for one frame.
type ViewParams struct {
	// FovDegrees is the clamped field of view.
	FovDegrees float64
	// CompensationScale is tan(pi/6) / tan(fov/2).
	CompensationScale float64
	// ExportScale is the export scale factor applied this frame.
	ExportScale float64
	// Distance is the effective camera distance: base distance * export scale * compensation scale.
	Distance float64
	// RotX and RotY are the controller orientation used for the scene and for billboarding.
	RotX, RotY float64

	// View holds LookAt * RotateX(rotX) * RotateY(rotY) * Scale(exportScale).
	View [16]float32
	// Projection is the perspective matrix with screen y growing downward.
	Projection [16]float32
	// ViewProjection is Projection * View.
	ViewProjection [16]float32
}

// DistanceTo returns the camera-space distance of a world position under these parameters.
//
// Parameters:
//   - x, y, z: world position before the scene rotation
//
// Returns:
//   - float64: distance to the camera
func (v ViewParams) DistanceTo(x, y, z float64) float64 {
	return CameraSpaceDistance(x, y, z, v.RotX, v.RotY, v.Distance)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the provided options.
// A controller is created with defaults when none is supplied.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions to configure the camera
//
// Returns:
//   - Camera: the newly created Camera instance
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		aspect: 16.0 / 9.0,
		near:   DefaultNear,
		far:    DefaultFar,
		minFov: MinFovDegrees,
		maxFov: MaxFovDegrees,
	}

	for _, option := range options {
		option(c)
	}

	if c.controller == nil {
		c.controller = NewCameraController()
	}
	return c
}

func (c *cameraImpl) Aspect() float64 {
	return c.aspect
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float64(width) / float64(height)
}

func (c *cameraImpl) Near() float64 {
	return c.near
}

func (c *cameraImpl) Far() float64 {
	return c.far
}

func (c *cameraImpl) ClampFov(fovDegrees float64) float64 {
	if math.IsNaN(fovDegrees) {
		return DefaultFovDegrees
	}
	return common.Clamp(fovDegrees, c.minFov, c.maxFov)
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) Update(fovDegrees, exportScale float64) ViewParams {
	if exportScale <= 0 || math.IsNaN(exportScale) {
		exportScale = 1
	}
	fov := c.ClampFov(fovDegrees)
	fovRad := fov * math.Pi / 180
	compensation := CompensationScale(fovRad)

	vp := ViewParams{
		FovDegrees:        fov,
		CompensationScale: compensation,
		ExportScale:       exportScale,
		Distance:          c.controller.Distance() * exportScale * compensation,
		RotX:              c.controller.RotationX(),
		RotY:              c.controller.RotationY(),
	}

	var lookAt, rx, ry, sc [16]float32
	common.LookAt(lookAt[:], 0, 0, float32(vp.Distance), 0, 0, 0, 0, 1, 0)
	common.RotateX4(rx[:], float32(vp.RotX))
	common.RotateY4(ry[:], float32(vp.RotY))
	common.Scale4(sc[:], float32(exportScale))
	common.Chain(vp.View[:], lookAt[:], rx[:], ry[:], sc[:])

	common.Perspective(vp.Projection[:], float32(fovRad), float32(c.aspect), float32(c.near), float32(c.far), true)
	common.Mul4(vp.ViewProjection[:], vp.Projection[:], vp.View[:])
	return vp
}

// CompensationScale returns tan(pi/6) / tan(fov/2), the distance multiplier that keeps the apparent
// scene size constant relative to a 60 degree field of view.
//
// Parameters:
//   - fovRadians: vertical field of view in radians
//
// Returns:
//   - float64: the compensating scale factor
func CompensationScale(fovRadians float64) float64 {
	return math.Tan(referenceHalfFovRad) / math.Tan(fovRadians/2)
}

// CameraSpaceDistance rotates a world point around the horizontal axis by rotX, then around the vertical
// axis by rotY, and returns its Euclidean distance to the camera at (0, 0, cameraZ).
//
// Parameters:
//   - x, y, z: world position
//   - rotX: rotation around the horizontal axis in radians
//   - rotY: rotation around the vertical axis in radians
//   - cameraZ: camera position on the view axis
//
// Returns:
//   - float64: distance from the rotated point to the camera
func CameraSpaceDistance(x, y, z, rotX, rotY, cameraZ float64) float64 {
	sx, cx := math.Sincos(rotX)
	sy, cy := math.Sincos(rotY)

	y1 := y*cx - z*sx
	z1 := y*sx + z*cx
	x2 := x*cy + z1*sy
	z2 := -x*sy + z1*cy

	dz := z2 - cameraZ
	return math.Sqrt(x2*x2 + y1*y1 + dz*dz)
}
