package clock

import "fmt"

// Mode selects the motion regime of the ring.
type Mode int

const (
	// Continuous drifts the ring with per-node breathing.
	Continuous Mode = iota
	// Stepped advances the ring one slot per period with eased transitions.
	Stepped
)

func (m Mode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case Stepped:
		return "stepped"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode.
//
// Parameters:
//   - s: "continuous" or "stepped"
//
// Returns:
//   - Mode: the parsed mode
//   - error: error if the name is unknown
func ParseMode(s string) (Mode, error) {
	switch s {
	case "continuous", "":
		return Continuous, nil
	case "stepped":
		return Stepped, nil
	default:
		return Continuous, fmt.Errorf("unknown motion mode %q", s)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Stepped {
		return Continuous
	}
	return Stepped
}

// Sample is the clock output for one frame.
type Sample struct {
	// Frame is the frame counter the sample was taken at.
	Frame uint64
	// Mode is the active motion mode.
	Mode Mode
	// RotationOffset is added to every node's base angle.
	RotationOffset float64

	strategy Strategy
}

// Transients returns the oscillation terms of node index for this sample.
//
// Parameters:
//   - index: the node index
//
// Returns:
//   - Transients: the node's transient terms
func (s Sample) Transients(index int) Transients {
	if s.strategy == nil {
		return Rigid
	}
	return s.strategy.Transients(s.Frame, index)
}

type clockImpl struct {
	frame      uint64
	mode       Mode
	strategies map[Mode]Strategy
}

// Clock owns the frame counter and motion mode of the ring animation.
// It is owned by the frame loop and is not safe for concurrent use.
type Clock interface {
	// Frame returns the current frame counter.
	//
	// Returns:
	//   - uint64: frames elapsed since the last reset
	Frame() uint64

	// Mode returns the active motion mode.
	//
	// Returns:
	//   - Mode: the active mode
	Mode() Mode

	// SetMode switches the motion mode. A change resets the frame counter to 0; setting the active mode is a no-op.
	//
	// Parameters:
	//   - mode: the requested mode
	//
	// Returns:
	//   - bool: true if the mode changed
	SetMode(mode Mode) bool

	// Reset sets the frame counter to 0.
	Reset()

	// Sample evaluates the active strategy at the current frame.
	//
	// Parameters:
	//   - slots: the number of ring slots
	//
	// Returns:
	//   - Sample: the rotation offset and transient source for this frame
	Sample(slots int) Sample

	// Tick advances the frame counter by one.
	Tick()
}

var _ Clock = &clockImpl{}

// NewClock creates a clock in Continuous mode at frame 0.
//
// Parameters:
//   - options: functional options to configure the clock
//
// Returns:
//   - Clock: the newly created clock
func NewClock(options ...ClockBuilderOption) Clock {
	c := &clockImpl{
		mode: Continuous,
		strategies: map[Mode]Strategy{
			Continuous: NewContinuousStrategy(),
			Stepped:    NewSteppedStrategy(),
		},
	}

	for _, option := range options {
		option(c)
	}
	return c
}

func (c *clockImpl) Frame() uint64 {
	return c.frame
}

func (c *clockImpl) Mode() Mode {
	return c.mode
}

func (c *clockImpl) SetMode(mode Mode) bool {
	if mode == c.mode {
		return false
	}
	c.mode = mode
	c.frame = 0
	return true
}

func (c *clockImpl) Reset() {
	c.frame = 0
}

func (c *clockImpl) Sample(slots int) Sample {
	strategy := c.strategies[c.mode]
	s := Sample{Frame: c.frame, Mode: c.mode, strategy: strategy}
	if strategy != nil {
		s.RotationOffset = strategy.RotationOffset(c.frame, slots)
	}
	return s
}

func (c *clockImpl) Tick() {
	c.frame++
}
