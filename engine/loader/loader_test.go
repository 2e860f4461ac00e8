package loader

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"within bound", 800, 600, 1024, 800, 600},
		{"landscape", 2048, 1024, 1024, 1024, 512},
		{"portrait", 1000, 4000, 1000, 250, 1000},
		{"disabled", 3000, 3000, 0, 3000, 3000},
		{"thin", 5000, 2, 1000, 1000, 1},
	}
	for _, tt := range tests {
		src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
		got := Downscale(src, tt.max).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("%s: expected %dx%d, got %dx%d", tt.name, tt.wantW, tt.wantH, got.Dx(), got.Dy())
		}
	}
}

func TestToRGBAReusesCompatibleImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if ToRGBA(src) != src {
		t.Errorf("expected zero-origin RGBA to be reused")
	}
	sub := image.NewRGBA(image.Rect(2, 2, 6, 6))
	if got := ToRGBA(sub); got == sub || got.Bounds().Min != (image.Point{}) {
		t.Errorf("expected offset image to be copied to zero origin")
	}
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	if got := ToRGBA(gray); got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Errorf("expected 3x2 conversion, got %v", got.Bounds())
	}
}

func TestRoundCorners(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 60))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	RoundCorners(img, 20)

	for _, p := range []image.Point{{0, 0}, {99, 0}, {0, 59}, {99, 59}} {
		if a := img.RGBAAt(p.X, p.Y).A; a != 0 {
			t.Errorf("expected corner %v to be transparent, got alpha %d", p, a)
		}
	}
	for _, p := range []image.Point{{50, 30}, {50, 0}, {0, 30}, {20, 20}, {79, 39}} {
		if a := img.RGBAAt(p.X, p.Y).A; a != 255 {
			t.Errorf("expected %v to stay opaque, got alpha %d", p, a)
		}
	}
}

func TestRoundCornersClampsRadius(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	RoundCorners(img, 1000)
	if a := img.RGBAAt(5, 5).A; a != 255 {
		t.Errorf("expected centre to stay opaque, got alpha %d", a)
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("expected corner to be transparent, got alpha %d", a)
	}
}

func TestPlaceholders(t *testing.T) {
	images, err := Placeholders(PlaceholderOptions{Count: 6, Size: 128, Seed: 7})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(images) != 6 {
		t.Fatalf("expected 6 placeholders, got %d", len(images))
	}
	seen := map[uint64]bool{}
	for i, img := range images {
		if !img.Placeholder {
			t.Errorf("image %d: expected placeholder flag", i)
		}
		if w, h := img.Size(); w != 128 || h != 128 {
			t.Errorf("image %d: expected 128x128, got %dx%d", i, w, h)
		}
		if want := "Image " + string(rune('1'+i)); img.Name != want {
			t.Errorf("image %d: expected name %q, got %q", i, want, img.Name)
		}
		if seen[img.ID] {
			t.Errorf("image %d: duplicate ID %d", i, img.ID)
		}
		seen[img.ID] = true

		// Top-left pixel is background: grey within the jitter band.
		g := img.Texture.Pixels[0]
		if g < placeholderGrey-placeholderJitter || g > placeholderGrey+placeholderJitter {
			t.Errorf("image %d: expected background in [200,240], got %d", i, g)
		}
	}
}

func TestPlaceholdersHaveLabelInk(t *testing.T) {
	images, err := Placeholders(PlaceholderOptions{Count: 1, Size: 256, Seed: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	bg := images[0].Texture.Pixels[0]
	dark := 0
	pix := images[0].Texture.Pixels
	for i := 0; i < len(pix); i += 4 {
		if pix[i] < bg-40 {
			dark++
		}
	}
	if dark == 0 {
		t.Errorf("expected label pixels darker than the background")
	}
}

func TestPlaceholdersZeroCount(t *testing.T) {
	images, err := Placeholders(PlaceholderOptions{})
	if err != nil || images != nil {
		t.Errorf("expected nil, nil for zero count, got %v, %v", images, err)
	}
}

func TestLoadDecodesAndCaches(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 300, 100)
	b := writePNG(t, dir, "b.png", 50, 80)

	l := NewLoader(WithMaxDimension(150))
	images, err := l.Load(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if w, h := images[0].Size(); w != 150 || h != 50 {
		t.Errorf("expected first image downscaled to 150x50, got %dx%d", w, h)
	}
	if images[1].Name != "b.png" {
		t.Errorf("expected request order preserved, got %q", images[1].Name)
	}

	cached := l.Get(a)
	if len(cached) != 1 || cached[0] != images[0] {
		t.Errorf("expected cached image for %s", a)
	}
	again, err := l.Load(context.Background(), []string{a})
	if err != nil || len(again) != 1 || again[0].ID != images[0].ID {
		t.Errorf("expected cached result on second load")
	}
}

func TestLoadSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, "good.png", 10, 10)
	bad := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(bad, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(corrupt, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader()
	images, err := l.Load(context.Background(), []string{bad, good, corrupt})
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat in joined error, got %v", err)
	}

	_, err = l.Load(context.Background(), []string{bad})
	if !errors.Is(err, ErrNoImages) || !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrNoImages wrapping ErrUnsupportedFormat, got %v", err)
	}
}

func TestSupports(t *testing.T) {
	l := NewLoader()
	tests := map[string]bool{
		"a.PNG":     true,
		"b.jpeg":    true,
		"c.webp":    true,
		"d.pdf":     true,
		"e.svg":     false,
		"no_ext":    false,
		"f.tiff":    true,
		"dir/g.gif": true,
	}
	for path, want := range tests {
		if got := l.Supports(path); got != want {
			t.Errorf("Supports(%q): expected %v, got %v", path, want, got)
		}
	}
}

type fakeBackend struct {
	pages []Page
}

func (fakeBackend) Extensions() []string { return []string{".fake"} }

func (f fakeBackend) Load(path string) ([]Page, error) {
	return f.pages, nil
}

func TestLoadMultiPageBackend(t *testing.T) {
	page := image.NewRGBA(image.Rect(0, 0, 40, 20))
	page.Set(0, 0, color.RGBA{255, 0, 0, 255})
	backend := fakeBackend{pages: []Page{{Name: "doc p1", Image: page}, {Name: "doc p2", Image: page}}}

	l := NewLoader(withBackends(backend), WithCornerFraction(0.25))
	images, err := l.Load(context.Background(), []string{"doc.fake"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(images))
	}
	if images[0].Name != "doc p1" || images[1].Name != "doc p2" {
		t.Errorf("expected page names in order, got %q, %q", images[0].Name, images[1].Name)
	}
	if a := page.RGBAAt(0, 0).A; a != 255 {
		t.Errorf("expected source page to stay untouched, got alpha %d", a)
	}
	if a := images[0].Texture.Pixels[3]; a != 0 {
		t.Errorf("expected rounded corner in output, got alpha %d", a)
	}
}

func TestDefaultLoadKeepsSquareCorners(t *testing.T) {
	page := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for i := range page.Pix {
		page.Pix[i] = 255
	}
	l := NewLoader(withBackends(fakeBackend{pages: []Page{{Name: "doc p1", Image: page}}}))
	images, err := l.Load(context.Background(), []string{"doc.fake"})
	if err != nil || len(images) != 1 {
		t.Fatalf("expected one image, got %d, %v", len(images), err)
	}
	px := images[0].Texture.Pixels
	for _, i := range []int{3, len(px) - 1} {
		if px[i] != 255 {
			t.Errorf("expected opaque corner at byte %d, got alpha %d", i, px[i])
		}
	}

	placeholders, err := l.Placeholders(1)
	if err != nil || len(placeholders) != 1 {
		t.Fatalf("expected one placeholder, got %d, %v", len(placeholders), err)
	}
	if a := placeholders[0].Texture.Pixels[3]; a != 255 {
		t.Errorf("expected opaque placeholder corner, got alpha %d", a)
	}
}

func TestPickAsyncCanceled(t *testing.T) {
	l := NewLoader(WithPicker(func(string, []string) ([]string, error) {
		return nil, ErrCanceled
	}))

	done := make(chan Result, 1)
	l.PickAsync(func(r Result) { done <- r })

	select {
	case r := <-done:
		if !errors.Is(r.Err, ErrCanceled) {
			t.Errorf("expected ErrCanceled, got %v", r.Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("expected callback within timeout")
	}
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "async.png", 20, 20)

	var patterns []string
	l := NewLoader(WithPicker(func(_ string, p []string) ([]string, error) {
		patterns = p
		return []string{path}, nil
	}))

	done := make(chan Result, 2)
	l.LoadAsync([]string{path}, func(r Result) { done <- r })
	l.PickAsync(func(r Result) { done <- r })

	for i := 0; i < 2; i++ {
		select {
		case r := <-done:
			if r.Err != nil || len(r.Images) != 1 {
				t.Errorf("expected one image without error, got %d, %v", len(r.Images), r.Err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("expected callback within timeout")
		}
	}
	if len(patterns) == 0 {
		t.Errorf("expected picker to receive file patterns")
	}
}
