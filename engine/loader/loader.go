package loader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/kinetic-ring/common"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxDimension bounds the longer side of decoded images.
	DefaultMaxDimension = 1024
	// DefaultPDFDPI is the rasterization density for document pages.
	DefaultPDFDPI = 150.0
)

// Result is the outcome of an asynchronous load.
type Result struct {
	// Images holds every successfully decoded page in request order.
	Images []*common.RenderImage
	// Err joins the per-file failures, or is ErrCanceled/ErrNoImages.
	Err error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	cache map[string][]*common.RenderImage

	backends []loaderBackend
	picker   Picker

	maxDimension   int
	pdfDPI         float64
	cornerFraction float64
	concurrency    int

	pool    worker.DynamicWorkerPool
	workers int
	taskID  atomic.Int64
}

// Loader defines the public-facing interface for turning files into ring images.
// It abstracts the file format (raster image, PDF) behind backends selected by extension
// and caches decoded results by path.
type Loader interface {
	// Load decodes the files at paths, in parallel, into render images.
	// Files that fail are logged and skipped; a document contributes one image per page.
	// Cached paths are returned without decoding again.
	//
	// Parameters:
	//   - ctx: cancels outstanding decodes
	//   - paths: file paths to decode
	//
	// Returns:
	//   - []*common.RenderImage: decoded images in request order
	//   - error: joined per-file errors (nil if every file decoded), ErrNoImages if nothing decoded
	Load(ctx context.Context, paths []string) ([]*common.RenderImage, error)

	// LoadAsync runs Load on the loader's worker pool and reports the result through done.
	// done runs on a worker goroutine.
	//
	// Parameters:
	//   - paths: file paths to decode
	//   - done: callback receiving the result
	LoadAsync(paths []string, done func(Result))

	// PickAsync opens the file picker and loads the chosen files on the worker pool.
	// A dismissed picker reports ErrCanceled.
	//
	// Parameters:
	//   - done: callback receiving the result
	PickAsync(done func(Result))

	// Placeholders generates the default stand-in images.
	//
	// Parameters:
	//   - count: number of images
	//
	// Returns:
	//   - []*common.RenderImage: the placeholders
	//   - error: error if generation fails
	Placeholders(count int) ([]*common.RenderImage, error)

	// Get retrieves cached images for a path. Returns nil if not found.
	//
	// Parameters:
	//   - path: the cache key to look up
	//
	// Returns:
	//   - []*common.RenderImage: the cached images or nil
	Get(path string) []*common.RenderImage

	// Supports reports whether a backend accepts the file extension of path.
	//
	// Parameters:
	//   - path: a file path
	//
	// Returns:
	//   - bool: true if the file can be decoded
	Supports(path string) bool
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the raster and PDF backends and the specified options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		cache:        make(map[string][]*common.RenderImage),
		picker:       ZenityPicker,
		maxDimension: DefaultMaxDimension,
		pdfDPI:       DefaultPDFDPI,
		concurrency:  runtime.NumCPU(),
		workers:      2,
	}
	for _, option := range options {
		option(l)
	}
	if l.backends == nil {
		l.backends = []loaderBackend{rasterBackend{}, pdfBackend{dpi: l.pdfDPI}}
	}
	if l.concurrency < 1 {
		l.concurrency = 1
	}
	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(max(1, l.workers), 16, 1*time.Second)
	}
	return l
}

func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	for _, b := range l.backends {
		if hasExtension(b, path) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

func (l *loader) Supports(path string) bool {
	_, err := l.resolveBackend(path)
	return err == nil
}

func (l *loader) Get(path string) []*common.RenderImage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[path]
}

func (l *loader) Load(ctx context.Context, paths []string) ([]*common.RenderImage, error) {
	results := make([][]*common.RenderImage, len(paths))
	failures := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			images, err := l.loadOne(path)
			if err != nil {
				log.Printf("[Loader] skipping %s: %v", path, err)
				failures[i] = err
				return nil
			}
			results[i] = images
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*common.RenderImage
	for _, images := range results {
		out = append(out, images...)
	}
	err := errors.Join(failures...)
	if len(out) == 0 && len(paths) > 0 {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoImages, err)
		}
		return nil, ErrNoImages
	}
	return out, err
}

// loadOne decodes a single path, consulting and filling the cache.
func (l *loader) loadOne(path string) ([]*common.RenderImage, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}
	pages, err := backend.Load(path)
	if err != nil {
		return nil, err
	}

	images := make([]*common.RenderImage, 0, len(pages))
	for _, p := range pages {
		images = append(images, l.prepare(p))
	}

	l.mu.Lock()
	l.cache[path] = images
	l.mu.Unlock()
	return images, nil
}

// prepare downscales, rounds and converts one decoded page.
func (l *loader) prepare(p Page) *common.RenderImage {
	rgba := ToRGBA(Downscale(p.Image, l.maxDimension))
	if l.cornerFraction > 0 {
		if rgba == p.Image {
			// Never mutate a caller-owned image.
			rgba = cloneRGBA(rgba)
		}
		b := rgba.Bounds()
		RoundCorners(rgba, float64(min(b.Dx(), b.Dy()))*l.cornerFraction)
	}
	return common.NewRenderImage(p.Name, rgba)
}

func (l *loader) LoadAsync(paths []string, done func(Result)) {
	l.submit(func() Result {
		images, err := l.Load(context.Background(), paths)
		return Result{Images: images, Err: err}
	}, done)
}

func (l *loader) PickAsync(done func(Result)) {
	l.submit(func() Result {
		paths, err := l.picker("Select images", patterns(l.backends))
		if err != nil {
			return Result{Err: err}
		}
		if len(paths) == 0 {
			return Result{Err: ErrCanceled}
		}
		images, err := l.Load(context.Background(), paths)
		return Result{Images: images, Err: err}
	}, done)
}

func (l *loader) submit(job func() Result, done func(Result)) {
	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			res := job()
			if done != nil {
				done(res)
			}
			return nil, res.Err
		},
	})
}

func (l *loader) Placeholders(count int) ([]*common.RenderImage, error) {
	return Placeholders(PlaceholderOptions{
		Count:          count,
		Size:           min(DefaultPlaceholderSize, common.Coalesce(l.maxDimension, DefaultPlaceholderSize)),
		Seed:           uint64(time.Now().UnixNano()),
		CornerFraction: l.cornerFraction,
	})
}
