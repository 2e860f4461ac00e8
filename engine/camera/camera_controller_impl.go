package camera

import (
	"math"

	"github.com/Carmen-Shannon/kinetic-ring/common"
)

// Default controller bounds and tuning.
const (
	DefaultSensitivity       = 0.005
	DefaultMinDistance       = 200.0
	DefaultMaxDistance       = 10000.0
	DefaultReferenceDistance = 1600.0
)

// cameraControllerImpl is the single implementation of CameraController.
// It is owned by the frame loop; input callbacks run on the same thread, so it carries no lock.
type cameraControllerImpl struct {
	rotX     float64
	rotY     float64
	distance float64

	minRotX, maxRotX         float64
	minRotY, maxRotY         float64
	minDistance, maxDistance float64

	sensitivity       float64
	referenceDistance float64
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with the ring defaults: rotation around the
// horizontal axis limited to [-pi/2, pi/2], around the vertical axis to [-pi, pi], and distance to [200, 10000].
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		distance: DefaultReferenceDistance,

		minRotX:     -math.Pi / 2,
		maxRotX:     math.Pi / 2,
		minRotY:     -math.Pi,
		maxRotY:     math.Pi,
		minDistance: DefaultMinDistance,
		maxDistance: DefaultMaxDistance,

		sensitivity:       DefaultSensitivity,
		referenceDistance: DefaultReferenceDistance,
	}

	for _, option := range options {
		option(cc)
	}

	cc.clamp()
	return cc
}

func (cc *cameraControllerImpl) clamp() {
	cc.rotX = common.Clamp(cc.rotX, cc.minRotX, cc.maxRotX)
	cc.rotY = common.Clamp(cc.rotY, cc.minRotY, cc.maxRotY)
	cc.distance = common.Clamp(cc.distance, cc.minDistance, cc.maxDistance)
}

func (cc *cameraControllerImpl) Drag(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	cc.rotY += dx * cc.sensitivity
	cc.rotX += dy * cc.sensitivity
	cc.clamp()
}

func (cc *cameraControllerImpl) Wheel(delta float64) {
	if !finite(delta) {
		return
	}
	cc.distance += delta
	cc.clamp()
}

func (cc *cameraControllerImpl) RotationX() float64 {
	return cc.rotX
}

func (cc *cameraControllerImpl) RotationY() float64 {
	return cc.rotY
}

func (cc *cameraControllerImpl) Distance() float64 {
	return cc.distance
}

func (cc *cameraControllerImpl) SetRotation(rotX, rotY float64) {
	cc.rotX = rotX
	cc.rotY = rotY
	cc.clamp()
}

func (cc *cameraControllerImpl) SetDistance(distance float64) {
	cc.distance = distance
	cc.clamp()
}

func (cc *cameraControllerImpl) ResetForViewport(width, height int) {
	cc.rotX, cc.rotY = 0, 0
	cc.FitViewport(width, height)
}

func (cc *cameraControllerImpl) FitViewport(width, height int) {
	minDim := min(width, height)
	if minDim <= 0 {
		cc.distance = cc.referenceDistance
	} else {
		cc.distance = float64(height) / float64(minDim) * cc.referenceDistance
	}
	cc.clamp()
}

func (cc *cameraControllerImpl) Sensitivity() float64 {
	return cc.sensitivity
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
