package clock

import (
	"math"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/easing"
)

// Transients are the per-node oscillation terms of one frame.
type Transients struct {
	// Expansion is added to the node's orbit radius.
	Expansion float64
	// ZOffset is the node's position along the ring axis.
	ZOffset float64
	// SizeWave multiplies the node's display scale. 1 is neutral.
	SizeWave float64
}

// Rigid is the neutral transient set: no expansion, no depth offset, unit size.
var Rigid = Transients{SizeWave: 1}

// Strategy produces the ring rotation offset and per-node transients for a frame.
// Implementations are stateless; all state lives in the Clock.
type Strategy interface {
	// RotationOffset returns the angle in radians added to every node's base angle.
	//
	// Parameters:
	//   - frame: the frame counter
	//   - slots: the number of ring slots
	//
	// Returns:
	//   - float64: the rotation offset
	RotationOffset(frame uint64, slots int) float64

	// Transients returns the oscillation terms of node index at frame.
	//
	// Parameters:
	//   - frame: the frame counter
	//   - index: the node index
	//
	// Returns:
	//   - Transients: the node's transient terms
	Transients(frame uint64, index int) Transients
}

// ContinuousStrategy drifts the ring at a constant angular speed and lets every node breathe
// with its own phase.
type ContinuousStrategy struct {
	// Speed is the rotation in radians per frame.
	Speed float64
	// ExpansionAmplitude scales the radial breathing.
	ExpansionAmplitude float64
	// ZAmplitude scales the depth breathing.
	ZAmplitude float64
	// SizeMin and SizeMax bound the size wave.
	SizeMin, SizeMax float64
}

// NewContinuousStrategy returns a ContinuousStrategy with the ring defaults.
func NewContinuousStrategy() ContinuousStrategy {
	return ContinuousStrategy{
		Speed:              0.03,
		ExpansionAmplitude: 200,
		ZAmplitude:         150,
		SizeMin:            0.6,
		SizeMax:            1.4,
	}
}

func (s ContinuousStrategy) RotationOffset(frame uint64, _ int) float64 {
	return float64(frame) * s.Speed
}

func (s ContinuousStrategy) Transients(frame uint64, index int) Transients {
	f := float64(frame)
	i := float64(index)
	return Transients{
		Expansion: math.Sin(f*0.04+i*0.1) * s.ExpansionAmplitude,
		ZOffset:   math.Cos(f*0.05+i*0.2) * s.ZAmplitude,
		SizeWave:  common.Remap(math.Sin(f*0.05+i*0.5), -1, 1, s.SizeMin, s.SizeMax, false),
	}
}

// SteppedStrategy advances the ring exactly one slot per period. The eased transition occupies the
// first half of the period and the ring holds still for the second half.
type SteppedStrategy struct {
	// Period is the number of frames per slot advance.
	Period uint64
	// Curve eases each transition.
	Curve easing.Curve
}

// NewSteppedStrategy returns a SteppedStrategy with a 60 frame period and the step curve.
func NewSteppedStrategy() SteppedStrategy {
	return SteppedStrategy{Period: 60, Curve: easing.StepCurve}
}

func (s SteppedStrategy) RotationOffset(frame uint64, slots int) float64 {
	if slots <= 0 || s.Period == 0 {
		return 0
	}
	step := 2 * math.Pi / float64(slots)
	tick := frame / s.Period
	rawT := common.Clamp(float64(frame%s.Period)/(float64(s.Period)*0.5), 0, 1)
	return (float64(tick) + s.Curve.Ease(rawT)) * step
}

func (s SteppedStrategy) Transients(uint64, int) Transients {
	return Rigid
}
