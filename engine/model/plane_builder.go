package model

// PlaneGeneratorOption is a functional option for configuring a PlaneGenerator.
type PlaneGeneratorOption func(*planeGenerator)

// WithSteps sets the number of segments per corner arc. Values below 1 are raised to 1.
//
// Parameters:
//   - steps: arc segments per corner
//
// Returns:
//   - PlaneGeneratorOption: a function that sets the step count
func WithSteps(steps int) PlaneGeneratorOption {
	return func(g *planeGenerator) {
		g.steps = steps
	}
}

// WithRoundnessRange sets the corner radius fractions used at the near and far edge of the depth band.
//
// Parameters:
//   - nearRoundness: fraction at base-depthBand and closer
//   - farRoundness: fraction at base+depthBand and farther
//
// Returns:
//   - PlaneGeneratorOption: a function that sets the roundness range
func WithRoundnessRange(nearRoundness, farRoundness float64) PlaneGeneratorOption {
	return func(g *planeGenerator) {
		g.minRoundness = nearRoundness
		g.maxRoundness = farRoundness
	}
}

// WithDepthBand sets the half width of the distance band over which roundness varies.
//
// Parameters:
//   - band: world units either side of the camera distance
//
// Returns:
//   - PlaneGeneratorOption: a function that sets the depth band
func WithDepthBand(band float64) PlaneGeneratorOption {
	return func(g *planeGenerator) {
		g.depthBand = band
	}
}
