package model

import (
	"math"

	"github.com/Carmen-Shannon/kinetic-ring/common"
)

// Plane generator defaults.
const (
	DefaultSteps        = 6
	DefaultMinRoundness = 0.02
	DefaultMaxRoundness = 0.11
	DefaultDepthBand    = 1200.0
)

// PlaneMesh is a rounded rectangle centred on the origin of its own plane space.
// Outline walks the four corner arcs counter-clockwise starting at the (+x, +y) corner and forms a closed loop.
type PlaneMesh struct {
	Width, Height float64
	// Roundness is the corner radius as a fraction of min(Width, Height).
	Roundness float64
	// CornerRadius is the radius of every corner arc in world units.
	CornerRadius float64
	// Outline holds 4*(steps+1) perimeter vertices with texture coordinates remapped into the unit square.
	Outline []GPUVertex
}

// FanVertices returns the centre vertex followed by the outline, the vertex order expected by FanIndices.
//
// Returns:
//   - []GPUVertex: len(Outline)+1 vertices
func (m PlaneMesh) FanVertices() []GPUVertex {
	out := make([]GPUVertex, 0, len(m.Outline)+1)
	out = append(out, GPUVertex{TexCoord: [2]float32{0.5, 0.5}})
	return append(out, m.Outline...)
}

// FanIndices triangulates a convex closed outline of n vertices as a fan around vertex 0.
//
// Parameters:
//   - n: the number of outline vertices
//
// Returns:
//   - []uint32: 3*n indices, or nil when n < 3
func FanIndices(n int) []uint32 {
	if n < 3 {
		return nil
	}
	indices := make([]uint32, 0, 3*n)
	for i := 0; i < n; i++ {
		indices = append(indices, 0, uint32(1+i), uint32(1+(i+1)%n))
	}
	return indices
}

type planeGenerator struct {
	steps        int
	minRoundness float64
	maxRoundness float64
	depthBand    float64
}

// PlaneGenerator builds rounded-rectangle meshes whose corner radius follows the plane's distance from the camera:
// nearer planes get sharper corners, farther planes rounder ones.
type PlaneGenerator interface {
	// Generate builds the mesh of a width x height plane seen from cameraSpaceDistance while the camera sits at
	// baseCameraDistance from the ring center.
	//
	// Parameters:
	//   - width, height: plane dimensions in world units
	//   - cameraSpaceDistance: the plane's distance from the camera
	//   - baseCameraDistance: the camera's distance from the ring center
	//
	// Returns:
	//   - PlaneMesh: the generated mesh
	Generate(width, height, cameraSpaceDistance, baseCameraDistance float64) PlaneMesh

	// Roundness maps a distance to the corner radius fraction. The band [base-depthBand, base+depthBand]
	// maps linearly onto [minRoundness, maxRoundness], clamped at both ends.
	//
	// Parameters:
	//   - cameraSpaceDistance: the plane's distance from the camera
	//   - baseCameraDistance: the camera's distance from the ring center
	//
	// Returns:
	//   - float64: the roundness fraction
	Roundness(cameraSpaceDistance, baseCameraDistance float64) float64

	// Steps returns the number of segments per corner arc.
	//
	// Returns:
	//   - int: arc segments per corner
	Steps() int

	// OutlineLen returns the number of outline vertices of every generated mesh.
	//
	// Returns:
	//   - int: 4*(steps+1)
	OutlineLen() int
}

var _ PlaneGenerator = &planeGenerator{}

// NewPlaneGenerator creates a plane generator with 6 steps per corner and a roundness range of [0.02, 0.11]
// across a depth band of 1200 world units either side of the camera distance.
//
// Parameters:
//   - options: functional options to configure the generator
//
// Returns:
//   - PlaneGenerator: the newly created generator
func NewPlaneGenerator(options ...PlaneGeneratorOption) PlaneGenerator {
	g := &planeGenerator{
		steps:        DefaultSteps,
		minRoundness: DefaultMinRoundness,
		maxRoundness: DefaultMaxRoundness,
		depthBand:    DefaultDepthBand,
	}

	for _, option := range options {
		option(g)
	}

	if g.steps < 1 {
		g.steps = 1
	}
	return g
}

func (g *planeGenerator) Steps() int {
	return g.steps
}

func (g *planeGenerator) OutlineLen() int {
	return 4 * (g.steps + 1)
}

func (g *planeGenerator) Roundness(cameraSpaceDistance, baseCameraDistance float64) float64 {
	closest := baseCameraDistance - g.depthBand
	furthest := baseCameraDistance + g.depthBand
	return common.Remap(cameraSpaceDistance, closest, furthest, g.minRoundness, g.maxRoundness, true)
}

func (g *planeGenerator) Generate(width, height, cameraSpaceDistance, baseCameraDistance float64) PlaneMesh {
	roundness := g.Roundness(cameraSpaceDistance, baseCameraDistance)
	r := math.Min(width, height) * roundness
	hw, hh := width/2, height/2

	mesh := PlaneMesh{
		Width:        width,
		Height:       height,
		Roundness:    roundness,
		CornerRadius: r,
		Outline:      make([]GPUVertex, 0, g.OutlineLen()),
	}

	corners := [4][2]float64{
		{hw - r, hh - r},
		{-hw + r, hh - r},
		{-hw + r, -hh + r},
		{hw - r, -hh + r},
	}
	for c, center := range corners {
		start := float64(c) * math.Pi / 2
		for i := 0; i <= g.steps; i++ {
			theta := start + float64(i)/float64(g.steps)*math.Pi/2
			px := center[0] + r*math.Cos(theta)
			py := center[1] + r*math.Sin(theta)
			mesh.Outline = append(mesh.Outline, GPUVertex{
				Position: [3]float32{float32(px), float32(py), 0},
				TexCoord: [2]float32{
					float32(common.Remap(px, -hw, hw, 0, 1, false)),
					float32(common.Remap(py, -hh, hh, 0, 1, false)),
				},
			})
		}
	}
	return mesh
}
