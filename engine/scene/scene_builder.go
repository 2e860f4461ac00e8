package scene

import (
	"github.com/Carmen-Shannon/kinetic-ring/engine/camera"
	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
	"github.com/Carmen-Shannon/kinetic-ring/engine/ring"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera sets the scene camera.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithLayout sets the ring layout.
//
// Parameters:
//   - layout: the layout to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLayout(layout ring.Layout) SceneBuilderOption {
	return func(s *scene) {
		s.layout = layout
	}
}

// WithClock sets the animation clock.
//
// Parameters:
//   - clk: the clock to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClock(clk clock.Clock) SceneBuilderOption {
	return func(s *scene) {
		s.clk = clk
	}
}

// WithPlaneGenerator sets the plane mesh generator.
//
// Parameters:
//   - generator: the generator to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPlaneGenerator(generator model.PlaneGenerator) SceneBuilderOption {
	return func(s *scene) {
		s.generator = generator
	}
}

// WithRingOffset sets the distance added to every node's orbit radius when it is placed.
//
// Parameters:
//   - offset: world units added to the orbit radius
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRingOffset(offset float64) SceneBuilderOption {
	return func(s *scene) {
		s.ringOffset = offset
	}
}

// WithParallelThreshold sets the node count from which plane generation runs on the worker pool.
//
// Parameters:
//   - n: the node count threshold (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParallelThreshold(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.parallelThreshold = n
	}
}

// WithComputeWorkers sets the number of worker goroutines used for parallel plane generation.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}
