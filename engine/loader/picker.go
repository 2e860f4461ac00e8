package loader

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// Picker asks the user for files to load.
type Picker func(title string, patterns []string) ([]string, error)

// ZenityPicker opens the native multi-file dialog.
func ZenityPicker(title string, patterns []string) ([]string, error) {
	paths, err := zenity.SelectFileMultiple(
		zenity.Title(title),
		zenity.FileFilters{{
			Name:     "Images and documents",
			Patterns: patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, ErrCanceled
		}
		return nil, fmt.Errorf("file dialog failed: %w", err)
	}
	return paths, nil
}
