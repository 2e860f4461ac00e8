package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for plane pipelines.
// Matches GPUVertex layout exactly (20 bytes).
//
//go:embed assets/plane_vertex.wgsl
var GPUVertexSource string

// GPUVertexStride is the byte size of one marshalled GPUVertex.
const GPUVertexStride = 20

// GPUVertex is the GPU representation of a single plane vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in plane space (12 bytes)
	TexCoord [2]float32 // offset 12: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

func (g *GPUVertex) marshalInto(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.TexCoord[1]))
}

// MarshalVertices serializes a vertex slice into one contiguous buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices) * GPUVertexStride bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, len(vertices)*GPUVertexStride)
	for i := range vertices {
		vertices[i].marshalInto(buf[i*GPUVertexStride:])
	}
	return buf
}
