// Package export describes the output framings the ring can be composed for.
// A preset fixes a target resolution; the camera compensates so the ring fills the target
// the same way it fills the interactive viewport.
package export

import (
	"fmt"
	"strings"
)

// Preset identifies an export framing.
type Preset int

const (
	// Window renders at the current viewport size.
	Window Preset = iota
	Square
	Portrait
	Landscape
	Print
)

var presetNames = [...]string{
	Window:    "window",
	Square:    "square",
	Portrait:  "portrait",
	Landscape: "landscape",
	Print:     "print",
}

var presetSizes = [...][2]int{
	Window:    {0, 0},
	Square:    {1080, 1080},
	Portrait:  {1080, 1920},
	Landscape: {1920, 1080},
	Print:     {2400, 3000},
}

// Presets lists every preset in cycling order.
func Presets() []Preset {
	return []Preset{Window, Square, Portrait, Landscape, Print}
}

func (p Preset) valid() bool {
	return p >= Window && p <= Print
}

func (p Preset) String() string {
	if !p.valid() {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// ParsePreset resolves a preset by name (case-insensitive) or by its "WxH" size.
//
// Parameters:
//   - name: the preset name, e.g. "portrait" or "1080x1920"
//
// Returns:
//   - Preset: the matching preset
//   - error: error if no preset matches
func ParsePreset(name string) (Preset, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Window, nil
	}
	for _, p := range Presets() {
		if n == presetNames[p] {
			return p, nil
		}
		if w, h := p.Size(); w > 0 && n == fmt.Sprintf("%dx%d", w, h) {
			return p, nil
		}
	}
	return Window, fmt.Errorf("unknown export preset %q", name)
}

// Size returns the target resolution in pixels. Window returns 0, 0.
func (p Preset) Size() (width, height int) {
	if !p.valid() {
		return 0, 0
	}
	s := presetSizes[p]
	return s[0], s[1]
}

// Target resolves the output resolution for a given viewport.
//
// Parameters:
//   - viewportW, viewportH: the interactive viewport size in pixels
//
// Returns:
//   - width, height: the export resolution
func (p Preset) Target(viewportW, viewportH int) (width, height int) {
	w, h := p.Size()
	if w == 0 || h == 0 {
		return viewportW, viewportH
	}
	return w, h
}

// Aspect returns the target width/height ratio for a given viewport.
func (p Preset) Aspect(viewportW, viewportH int) float64 {
	w, h := p.Target(viewportW, viewportH)
	if h <= 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// ScaleFactor returns the export compensation factor, the target height over the viewport height.
// A non-positive viewport height or the Window preset yields 1.
//
// Parameters:
//   - viewportH: the interactive viewport height in pixels
//
// Returns:
//   - float64: the scale applied to the view and the camera distance
func (p Preset) ScaleFactor(viewportH int) float64 {
	_, h := p.Size()
	if h == 0 || viewportH <= 0 {
		return 1
	}
	return float64(h) / float64(viewportH)
}

// Next returns the following preset in cycling order, wrapping to Window.
func (p Preset) Next() Preset {
	if !p.valid() || p == Print {
		return Window
	}
	return p + 1
}
