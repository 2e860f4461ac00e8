package camera

// CameraController defines the orbit controls of the ring camera.
// Controllers own the orientation and zoom state. Camera reads from the controller
// and computes view/projection matrices each frame.
// Every mutation is clamped immediately to the configured bounds.
type CameraController interface {
	// Drag rotates the camera by a pointer drag delta in pixels.
	// Horizontal motion turns around the vertical axis, vertical motion around the horizontal axis.
	//
	// Parameters:
	//   - dx: horizontal pointer delta
	//   - dy: vertical pointer delta
	Drag(dx, dy float64)

	// Wheel moves the camera along its view axis by delta world units.
	// Positive delta moves away from the ring.
	//
	// Parameters:
	//   - delta: wheel delta in world units
	Wheel(delta float64)

	// RotationX returns the rotation around the horizontal axis in radians.
	//
	// Returns:
	//   - float64: rotation in [MinRotationX, MaxRotationX]
	RotationX() float64

	// RotationY returns the rotation around the vertical axis in radians.
	//
	// Returns:
	//   - float64: rotation in [MinRotationY, MaxRotationY]
	RotationY() float64

	// Distance returns the unscaled camera distance from the ring center.
	//
	// Returns:
	//   - float64: distance in [MinDistance, MaxDistance]
	Distance() float64

	// SetRotation sets both rotations, clamping each to its bounds.
	//
	// Parameters:
	//   - rotX: rotation around the horizontal axis in radians
	//   - rotY: rotation around the vertical axis in radians
	SetRotation(rotX, rotY float64)

	// SetDistance sets the camera distance, clamping it to its bounds.
	//
	// Parameters:
	//   - distance: the new distance in world units
	SetDistance(distance float64)

	// ResetForViewport zeroes the rotation and derives the distance from the viewport shape:
	// (height / min(width, height)) * reference distance.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	ResetForViewport(width, height int)

	// FitViewport derives the distance from the viewport shape like ResetForViewport but keeps the rotation.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	FitViewport(width, height int)

	// Sensitivity returns the radians of rotation applied per pixel of drag.
	//
	// Returns:
	//   - float64: the drag sensitivity
	Sensitivity() float64
}
