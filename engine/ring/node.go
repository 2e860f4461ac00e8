package ring

import (
	"github.com/Carmen-Shannon/kinetic-ring/common"
)

// Node is one textured plane on the ring. Nodes are values: a frame reads them from a Snapshot
// and the only per-frame change, DisplayScale, is produced by Relax into a fresh snapshot.
type Node struct {
	// Index is the slot index; the angle is derived from it.
	Index int
	// Image is a non-owning reference to the texture shown on the node. It may be nil.
	Image *common.RenderImage
	// Angle is the fixed angular slot in radians: 2*pi*Index/N.
	Angle float64
	// OrbitRadius is the base distance from the ring center.
	OrbitRadius float64
	// Width and Height are the plane dimensions in world units.
	Width, Height float64
	// DisplayScale relaxes toward 1 every frame.
	DisplayScale float64
}

// Drawable reports whether the node has a usable image and non-zero plane dimensions.
func (n Node) Drawable() bool {
	return n.Image.Drawable() && n.Width > 0 && n.Height > 0
}

// Dimensions fits an image of the given pixel size into a maxSize square while preserving its aspect ratio.
// The larger side becomes maxSize. Zero-sized images yield 0x0.
//
// Parameters:
//   - imageWidth: image width in pixels
//   - imageHeight: image height in pixels
//   - maxSize: the plane size of the larger side in world units
//
// Returns:
//   - width, height: plane dimensions in world units
func Dimensions(imageWidth, imageHeight int, maxSize float64) (width, height float64) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return 0, 0
	}
	aspect := float64(imageWidth) / float64(imageHeight)
	if aspect >= 1 {
		return maxSize, maxSize / aspect
	}
	return maxSize * aspect, maxSize
}

// Relax returns a new snapshot in which every node's DisplayScale moved toward 1 by factor.
// The input slice is not modified.
//
// Parameters:
//   - nodes: the previous snapshot
//   - factor: interpolation factor per frame in [0, 1]
//
// Returns:
//   - []Node: the relaxed snapshot
func Relax(nodes []Node, factor float64) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.DisplayScale = common.Lerp(n.DisplayScale, 1, factor)
		out[i] = n
	}
	return out
}
