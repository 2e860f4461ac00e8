// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"image"
	"image/draw"
	"sync/atomic"
)

var nextImageID atomic.Uint64

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// RenderImage is a decoded image ready to be bound as a texture on a ring node.
// The ring holds non-owning references to it; the loader that produced it owns the pixel data.
type RenderImage struct {
	// ID uniquely identifies the image for the lifetime of the process. The renderer keys its texture cache on it.
	ID uint64
	// Name is a human readable label, usually the source file name or "Image N" for placeholders.
	Name string
	// Texture holds the RGBA pixels.
	Texture TextureStagingData
	// Placeholder marks generated stand-in images that an upload replaces instead of appending to.
	Placeholder bool
}

// NewRenderImage converts any image.Image into an RGBA RenderImage with a fresh ID.
//
// Parameters:
//   - name: a human readable label for the image
//   - img: the source image
//
// Returns:
//   - *RenderImage: the converted image
func NewRenderImage(name string, img image.Image) *RenderImage {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return &RenderImage{
		ID:   nextImageID.Add(1),
		Name: name,
		Texture: TextureStagingData{
			Pixels: rgba.Pix,
			Width:  uint32(bounds.Dx()),
			Height: uint32(bounds.Dy()),
		},
	}
}

// Size returns the pixel dimensions of the image. A nil image reports 0x0.
func (r *RenderImage) Size() (width, height int) {
	if r == nil {
		return 0, 0
	}
	return int(r.Texture.Width), int(r.Texture.Height)
}

// Drawable reports whether the image has non-zero dimensions.
func (r *RenderImage) Drawable() bool {
	w, h := r.Size()
	return w > 0 && h > 0
}
