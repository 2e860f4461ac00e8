package loader

import "github.com/Carmen-Shannon/automation/tools/worker"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithMaxDimension bounds the longer side of decoded images; larger images are downscaled.
//
// Parameters:
//   - maxDim: maximum side length in pixels (0 disables downscaling)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithMaxDimension(maxDim int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxDimension = maxDim
	}
}

// WithPDFDPI sets the rasterization density for PDF pages.
//
// Parameters:
//   - dpi: dots per inch
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithPDFDPI(dpi float64) LoaderBuilderOption {
	return func(l *loader) {
		if dpi > 0 {
			l.pdfDPI = dpi
		}
	}
}

// WithCornerFraction bakes rounded corners into decoded images and placeholders, as a fraction of the shorter image
// side. The default 0 uploads the pixels unchanged.
//
// Parameters:
//   - fraction: the radius fraction
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithCornerFraction(fraction float64) LoaderBuilderOption {
	return func(l *loader) {
		l.cornerFraction = fraction
	}
}

// WithConcurrency bounds the number of files decoded at once.
//
// Parameters:
//   - n: maximum parallel decodes
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithConcurrency(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.concurrency = n
	}
}

// WithPicker replaces the native file dialog.
//
// Parameters:
//   - p: the picker to use
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithPicker(p Picker) LoaderBuilderOption {
	return func(l *loader) {
		l.picker = p
	}
}

// WithWorkerPool sets the pool asynchronous loads run on.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithWorkerPool(pool worker.DynamicWorkerPool) LoaderBuilderOption {
	return func(l *loader) {
		l.pool = pool
	}
}

// WithAsyncWorkers sets the size of the pool created when no pool is supplied.
//
// Parameters:
//   - n: number of workers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithAsyncWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// withBackends replaces the format backends, for tests.
func withBackends(backends ...loaderBackend) LoaderBuilderOption {
	return func(l *loader) {
		l.backends = backends
	}
}
