package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
)

//go:embed assets/plane.wgsl
var planeShaderBody string

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// planeShaderSource joins the shared vertex input definition with the plane shader.
func planeShaderSource() string {
	return model.GPUVertexSource + "\n" + planeShaderBody
}
