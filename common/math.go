package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix mapping depth to the WebGPU clip range [0, 1].
// When flipY is set the projected y axis is negated so that +y points down the screen.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//   - flipY: whether screen y grows downward
func Perspective(out []float32, fovY, aspect, near, far float32, flipY bool) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	if flipY {
		out[5] = -f
	}
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Translate4 writes a translation matrix into out.
func Translate4(out []float32, x, y, z float32) {
	Identity(out)
	out[12], out[13], out[14] = x, y, z
}

// Scale4 writes a uniform scale matrix into out.
func Scale4(out []float32, s float32) {
	Identity(out)
	out[0], out[5], out[10] = s, s, s
}

// RotateX4 writes a right-handed rotation of angle radians around the X axis into out.
func RotateX4(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[5], out[6] = c, s
	out[9], out[10] = -s, c
}

// RotateY4 writes a right-handed rotation of angle radians around the Y axis into out.
func RotateY4(out []float32, angle float32) {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	Identity(out)
	out[0], out[2] = c, -s
	out[8], out[10] = s, c
}

// Chain multiplies the given matrices left to right (out = m[0] * m[1] * ... * m[n-1]).
// A vertex transformed by the result sees the last matrix first.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - matrices: column-major 4x4 matrices to compose
func Chain(out []float32, matrices ...[]float32) {
	var acc [16]float32
	Identity(acc[:])
	for _, m := range matrices {
		Mul4(acc[:], acc[:], m)
	}
	copy(out, acc[:])
}

// TransformPoint applies a column-major 4x4 matrix to the point (x, y, z, 1) and returns the
// resulting homogeneous coordinate.
func TransformPoint(m []float32, x, y, z float32) [4]float32 {
	return [4]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15],
	}
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z0 := eyeX - centerX
	z1 := eyeY - centerY
	z2 := eyeZ - centerZ
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := upY*z2 - upZ*z1
	x1 := upZ*z0 - upX*z2
	x2 := upX*z1 - upY*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eyeX + x1*eyeY + x2*eyeZ)
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eyeX + y1*eyeY + y2*eyeZ)
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eyeX + z1*eyeY + z2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// Clamp restricts v to the closed interval [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a toward b by factor t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Remap linearly maps v from the range [inLo, inHi] onto [outLo, outHi].
// A degenerate input range maps everything to outLo.
//
// Parameters:
//   - v: the value to remap
//   - inLo, inHi: the source range
//   - outLo, outHi: the destination range
//   - clamp: whether the result is restricted to the destination range
//
// Returns:
//   - float64: the remapped value
func Remap(v, inLo, inHi, outLo, outHi float64, clamp bool) float64 {
	if inHi == inLo {
		return outLo
	}
	out := outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
	if !clamp {
		return out
	}
	if outLo < outHi {
		return Clamp(out, outLo, outHi)
	}
	return Clamp(out, outHi, outLo)
}
