package loader

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Downscale shrinks img so its longer side is at most maxDim, preserving the aspect ratio.
// Images already within the bound, or a non-positive bound, are returned unchanged.
//
// Parameters:
//   - img: the source image
//   - maxDim: the maximum side length in pixels
//
// Returns:
//   - image.Image: the scaled image or img itself
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) || w == 0 || h == 0 {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	dw := max(1, int(math.Round(float64(w)*scale)))
	dh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToRGBA returns img as a zero-origin RGBA image, copying only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == b.Dx()*4 {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// RoundCorners clears the pixels of img that fall outside a rounded rectangle of the given radius.
// Edge pixels get fractional coverage so the curve is antialiased.
//
// Parameters:
//   - img: the image to modify in place
//   - radius: corner radius in pixels
func RoundCorners(img *image.RGBA, radius float64) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	radius = math.Min(radius, float64(min(w, h))/2)
	if radius <= 0 {
		return
	}
	r := int(math.Ceil(radius))

	// sx and sy point away from the image centre so only the outward quadrant is curved.
	corner := func(x0, y0 int, cx, cy, sx, sy float64) {
		for y := y0; y < y0+r; y++ {
			for x := x0; x < x0+r; x++ {
				if x < 0 || y < 0 || x >= w || y >= h {
					continue
				}
				dx := math.Max(0, sx*(float64(x)+0.5-cx))
				dy := math.Max(0, sy*(float64(y)+0.5-cy))
				// Coverage falls from 1 to 0 across the one-pixel band straddling the arc.
				coverage := math.Max(0, math.Min(1, radius-math.Hypot(dx, dy)+0.5))
				if coverage >= 1 {
					continue
				}
				px := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
				img.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{
					R: uint8(float64(px.R) * coverage),
					G: uint8(float64(px.G) * coverage),
					B: uint8(float64(px.B) * coverage),
					A: uint8(float64(px.A) * coverage),
				})
			}
		}
	}

	corner(0, 0, radius, radius, -1, -1)
	corner(w-r, 0, float64(w)-radius, radius, 1, -1)
	corner(0, h-r, radius, float64(h)-radius, -1, 1)
	corner(w-r, h-r, float64(w)-radius, float64(h)-radius, 1, 1)
}
