package clock

// ClockBuilderOption is a functional option for configuring a Clock.
type ClockBuilderOption func(*clockImpl)

// WithMode sets the initial motion mode.
//
// Parameters:
//   - mode: the initial mode
//
// Returns:
//   - ClockBuilderOption: a function that sets the mode
func WithMode(mode Mode) ClockBuilderOption {
	return func(c *clockImpl) {
		c.mode = mode
	}
}

// WithStrategy replaces the strategy used for a mode.
//
// Parameters:
//   - mode: the mode to configure
//   - strategy: the strategy to use while mode is active
//
// Returns:
//   - ClockBuilderOption: a function that sets the strategy
func WithStrategy(mode Mode, strategy Strategy) ClockBuilderOption {
	return func(c *clockImpl) {
		c.strategies[mode] = strategy
	}
}
