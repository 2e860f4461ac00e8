package loader

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Page is one decoded picture produced by a backend. Raster files yield one page, documents one per page.
type Page struct {
	Name  string
	Image image.Image
}

// loaderBackend decodes one family of file formats into pages.
// Concrete implementations (rasterBackend, pdfBackend) handle format-specific details.
type loaderBackend interface {
	// Extensions lists the lower-case file extensions the backend accepts, including the dot.
	//
	// Returns:
	//   - []string: accepted extensions
	Extensions() []string

	// Load decodes the file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []Page: the decoded pages in document order
	//   - error: error if the file cannot be read or decoded
	Load(path string) ([]Page, error)
}

// rasterBackend decodes single images through the image package registry.
type rasterBackend struct{}

var _ loaderBackend = rasterBackend{}

func (rasterBackend) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff"}
}

func (rasterBackend) Load(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []Page{{Name: filepath.Base(path), Image: img}}, nil
}

// pdfBackend rasterizes every page of a PDF document with MuPDF.
type pdfBackend struct {
	dpi float64
}

var _ loaderBackend = pdfBackend{}

func (pdfBackend) Extensions() []string {
	return []string{".pdf"}
}

func (b pdfBackend) Load(path string) ([]Page, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer doc.Close()

	base := filepath.Base(path)
	pages := make([]Page, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, b.dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d of %s: %w", i+1, path, err)
		}
		pages = append(pages, Page{Name: fmt.Sprintf("%s p%d", base, i+1), Image: img})
	}
	return pages, nil
}

// patterns returns the backend extensions as glob patterns for file dialogs.
func patterns(backends []loaderBackend) []string {
	var out []string
	for _, b := range backends {
		for _, ext := range b.Extensions() {
			out = append(out, "*"+ext)
		}
	}
	return out
}

// hasExtension reports whether the backend accepts the extension of path.
func hasExtension(b loaderBackend, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range b.Extensions() {
		if e == ext {
			return true
		}
	}
	return false
}
