package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithDistance sets the initial camera distance.
//
// Parameters:
//   - distance: distance from the ring center
//
// Returns:
//   - CameraControllerOption: functional option to set the distance
func WithDistance(distance float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.distance = distance
	}
}

// WithRotation sets the initial orientation.
//
// Parameters:
//   - rotX: rotation around the horizontal axis in radians
//   - rotY: rotation around the vertical axis in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation
func WithRotation(rotX, rotY float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotX = rotX
		cc.rotY = rotY
	}
}

// WithDistanceBounds sets the minimum and maximum camera distance.
//
// Parameters:
//   - minDistance: closest allowed distance
//   - maxDistance: farthest allowed distance
//
// Returns:
//   - CameraControllerOption: functional option to set the distance bounds
func WithDistanceBounds(minDistance, maxDistance float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minDistance = minDistance
		cc.maxDistance = maxDistance
	}
}

// WithRotationXBounds sets the limits of the rotation around the horizontal axis.
//
// Parameters:
//   - minRot: lowest allowed rotation in radians
//   - maxRot: highest allowed rotation in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the bounds
func WithRotationXBounds(minRot, maxRot float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRotX = minRot
		cc.maxRotX = maxRot
	}
}

// WithRotationYBounds sets the limits of the rotation around the vertical axis.
//
// Parameters:
//   - minRot: lowest allowed rotation in radians
//   - maxRot: highest allowed rotation in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the bounds
func WithRotationYBounds(minRot, maxRot float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRotY = minRot
		cc.maxRotY = maxRot
	}
}

// WithSensitivity sets the drag sensitivity in radians per pixel.
//
// Parameters:
//   - sensitivity: rotation applied per pixel of drag
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}

// WithReferenceDistance sets the distance used by ResetForViewport for a landscape viewport.
//
// Parameters:
//   - distance: reference distance in world units
//
// Returns:
//   - CameraControllerOption: functional option to set the reference distance
func WithReferenceDistance(distance float64) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.referenceDistance = distance
	}
}
