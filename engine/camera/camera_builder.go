package camera

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the camera's near clipping plane distance.
//
// Parameters:
//   - near: the near clipping plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the camera's far clipping plane distance.
//
// Parameters:
//   - far: the far clipping plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithFovBounds sets the supported field of view range in degrees.
//
// Parameters:
//   - minFov: narrowest field of view
//   - maxFov: widest field of view
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view bounds
func WithFovBounds(minFov, maxFov float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minFov = minFov
		c.maxFov = maxFov
	}
}

// WithController attaches a camera controller.
//
// Parameters:
//   - controller: the controller that owns orientation and distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the controller
func WithController(controller CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = controller
	}
}
