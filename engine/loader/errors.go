package loader

import "errors"

var (
	// ErrCanceled is returned when the user dismisses the file picker.
	ErrCanceled = errors.New("loader: selection canceled")
	// ErrUnsupportedFormat is returned for files no backend can decode.
	ErrUnsupportedFormat = errors.New("loader: unsupported format")
	// ErrNoImages is returned when a batch produced no drawable image.
	ErrNoImages = errors.New("loader: no images loaded")
)
