// Package easing evaluates CSS-style cubic Bezier timing curves.
package easing

import "math"

const (
	newtonIterations  = 8
	epsilon           = 1e-6
	bisectionMaxSteps = 64
)

// Curve is a cubic Bezier timing curve with fixed endpoints (0,0) and (1,1) and the two interior
// control points (X1,Y1) and (X2,Y2).
type Curve struct {
	X1, Y1, X2, Y2 float64
}

// StepCurve is the curve that drives one slot advance of the stepped ring motion.
var StepCurve = Curve{X1: 0.5, Y1: 0.1, X2: 0.1, Y2: 0.9}

// Ease evaluates the curve at normalized time t.
//
// Parameters:
//   - t: normalized time, clamped to [0, 1]
//
// Returns:
//   - float64: the eased progress
func (c Curve) Ease(t float64) float64 {
	return CubicBezier(t, c.X1, c.Y1, c.X2, c.Y2)
}

// CubicBezier treats the curve defined by (0,0), (x1,y1), (x2,y2), (1,1) as a time remapping:
// it finds the curve parameter whose x equals t and returns the y at that parameter.
// Newton-Raphson is tried first and bisection takes over when the slope vanishes or Newton does not
// converge. t <= 0 yields exactly 0 and t >= 1 yields exactly 1.
//
// Parameters:
//   - t: normalized time in [0, 1]
//   - x1, y1: first interior control point
//   - x2, y2: second interior control point
//
// Returns:
//   - float64: the eased value
func CubicBezier(t, x1, y1, x2, y2 float64) float64 {
	if t <= 0 || math.IsNaN(t) {
		return 0
	}
	if t >= 1 {
		return 1
	}

	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx

	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(u float64) float64 { return ((ax*u+bx)*u + cx) * u }
	sampleY := func(u float64) float64 { return ((ay*u+by)*u + cy) * u }
	slopeX := func(u float64) float64 { return (3*ax*u+2*bx)*u + cx }

	return sampleY(solveX(t, sampleX, slopeX))
}

func solveX(x float64, sampleX, slopeX func(float64) float64) float64 {
	u := x
	for i := 0; i < newtonIterations; i++ {
		dx := sampleX(u) - x
		if math.Abs(dx) < epsilon {
			return u
		}
		d := slopeX(u)
		if math.Abs(d) < epsilon {
			break
		}
		u -= dx / d
	}

	lo, hi := 0.0, 1.0
	u = x
	// the step cap stops the loop once lo and hi become adjacent floats
	for i := 0; i < bisectionMaxSteps && lo < hi; i++ {
		sx := sampleX(u)
		if math.Abs(sx-x) < epsilon {
			return u
		}
		if sx > x {
			hi = u
		} else {
			lo = u
		}
		u = (hi-lo)*0.5 + lo
	}
	return u
}
