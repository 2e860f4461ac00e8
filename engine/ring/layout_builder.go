package ring

// LayoutBuilderOption is a functional option for configuring a Layout.
type LayoutBuilderOption func(*layoutImpl)

// WithOrbitRadius sets the base orbit radius shared by every node.
//
// Parameters:
//   - radius: distance from the ring center in world units
//
// Returns:
//   - LayoutBuilderOption: a function that sets the orbit radius
func WithOrbitRadius(radius float64) LayoutBuilderOption {
	return func(l *layoutImpl) {
		l.orbitRadius = radius
	}
}

// WithMaxSize sets the plane size of an image's larger side.
//
// Parameters:
//   - size: world units of the larger side
//
// Returns:
//   - LayoutBuilderOption: a function that sets the maximum plane size
func WithMaxSize(size float64) LayoutBuilderOption {
	return func(l *layoutImpl) {
		l.maxSize = size
	}
}

// WithRelaxFactor sets how far DisplayScale moves toward 1 per frame.
//
// Parameters:
//   - factor: interpolation factor in [0, 1]
//
// Returns:
//   - LayoutBuilderOption: a function that sets the relax factor
func WithRelaxFactor(factor float64) LayoutBuilderOption {
	return func(l *layoutImpl) {
		l.relaxFactor = factor
	}
}
