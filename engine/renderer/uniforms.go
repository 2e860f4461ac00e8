package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
)

// DrawUniformsSize is the byte size of the per-draw uniform block.
const DrawUniformsSize = 80

// DrawUniforms is the per-draw uniform block.
// Matches the WGSL DrawUniforms struct: mat4x4<f32> followed by vec4<f32>.
type DrawUniforms struct {
	MVP [16]float32
	// Opacity multiplies the sampled texel.
	Opacity float32
}

// Marshal serializes the block into an 80-byte little-endian buffer.
func (u DrawUniforms) Marshal() []byte {
	buf := make([]byte, DrawUniformsSize)
	for i, v := range u.MVP {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(u.Opacity))
	return buf
}

// drawList returns the commands that produce geometry, in slot order. Visibility between planes is left to the
// depth buffer; transparent texels are discarded in the fragment shader.
func drawList(commands []scene.DrawCommand) []scene.DrawCommand {
	return common.Filter(commands, func(cmd scene.DrawCommand) bool {
		return cmd.Image.Drawable() && len(cmd.Mesh.Outline) >= 3
	})
}
