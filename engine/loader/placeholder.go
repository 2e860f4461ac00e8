package loader

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultPlaceholderSize is the side length of generated placeholder images.
	DefaultPlaceholderSize = 1024

	placeholderGrey   = 220
	placeholderJitter = 20
	placeholderInk    = 100
)

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *opentype.Font
)

func parsedFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
	})
	return goFont, fontErr
}

// PlaceholderOptions controls placeholder generation.
type PlaceholderOptions struct {
	// Count is the number of placeholders.
	Count int
	// Size is the side length in pixels (0 means DefaultPlaceholderSize).
	Size int
	// Seed makes the background jitter reproducible.
	Seed uint64
	// CornerFraction rounds the corners as a fraction of Size (0 keeps them square).
	CornerFraction float64
}

// Placeholders generates labelled stand-in images shown before the user picks their own.
// Each is a light grey square, jittered per image, reading "Upload" above "Image N".
//
// Parameters:
//   - opts: generation options
//
// Returns:
//   - []*common.RenderImage: the placeholders, each marked Placeholder
//   - error: error if the label font cannot be loaded
func Placeholders(opts PlaceholderOptions) ([]*common.RenderImage, error) {
	if opts.Count <= 0 {
		return nil, nil
	}
	size := common.Coalesce(opts.Size, DefaultPlaceholderSize)

	fnt, err := parsedFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse placeholder font: %w", err)
	}
	title, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: float64(size) * 100 / 1024, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder title face: %w", err)
	}
	defer title.Close()
	label, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: float64(size) * 60 / 1024, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder label face: %w", err)
	}
	defer label.Close()

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	ink := image.NewUniform(color.Gray{Y: placeholderInk})
	offset := size * 60 / 1024

	out := make([]*common.RenderImage, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		grey := uint8(placeholderGrey - placeholderJitter + rng.IntN(2*placeholderJitter+1))
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: grey}), image.Point{}, draw.Src)

		drawCentered(img, title, ink, "Upload", size/2, size/2-offset)
		name := fmt.Sprintf("Image %d", i+1)
		drawCentered(img, label, ink, name, size/2, size/2+offset)

		if opts.CornerFraction > 0 {
			RoundCorners(img, float64(size)*opts.CornerFraction)
		}

		ri := common.NewRenderImage(name, img)
		ri.Placeholder = true
		out = append(out, ri)
	}
	return out, nil
}

// drawCentered draws text with its centre at (cx, cy).
func drawCentered(dst draw.Image, face font.Face, src image.Image, text string, cx, cy int) {
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	// Centre the cap height rather than the full line box so the text sits visually on cy.
	baseline := cy + (metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(cx - width/2), Y: fixed.I(baseline)},
	}
	d.DrawString(text)
}
