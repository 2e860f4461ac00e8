package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/camera"
	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/export"
	"github.com/Carmen-Shannon/kinetic-ring/engine/loader"
	"github.com/Carmen-Shannon/kinetic-ring/engine/profiler"
	"github.com/Carmen-Shannon/kinetic-ring/engine/renderer"
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
	"github.com/Carmen-Shannon/kinetic-ring/engine/window"
)

const (
	// DefaultFovStep is the field of view change of one Up/Down key press, in degrees.
	DefaultFovStep = 5.0
	// DefaultKeyDragPixels is the pointer travel one Left/Right key press is equivalent to.
	DefaultKeyDragPixels = 40.0
)

// engine implements the Engine interface.
// Every frame, input event and control change runs on the window thread; only image loading runs elsewhere.
type engine struct {
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	loader   loader.Loader

	profiler         *profiler.Profiler
	profilingEnabled bool

	controls      scene.Controls
	preset        export.Preset
	width, height int
	fovStep       float64
	keyDrag       float64

	uncapped bool

	renderFrameLimit time.Duration
	lastRender       time.Time

	frameCallback func(frame scene.Frame)
	titleDirty    atomic.Bool
	loading       atomic.Bool
	baseTitle     string
}

// Engine is the main entry point for the kinetic ring.
// It drives the frame loop, routes window input to the camera and controls, and publishes loaded images to the scene.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil in headless use
	Window() window.Window

	// Scene returns the ring scene.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Controls returns the controls the next frame will be produced with.
	//
	// Returns:
	//   - scene.Controls: the current controls
	Controls() scene.Controls

	// ExportPreset returns the active export framing.
	//
	// Returns:
	//   - export.Preset: the preset
	ExportPreset() export.Preset

	// SetExportPreset selects an export framing and recomputes the export scale factor.
	//
	// Parameters:
	//   - p: the preset
	SetExportPreset(p export.Preset)

	// SetMode selects the motion mode. The scene restarts its clock on change.
	//
	// Parameters:
	//   - m: the motion mode
	SetMode(m clock.Mode)

	// SetFov sets the field of view, clamped to the camera's bounds.
	//
	// Parameters:
	//   - degrees: vertical field of view in degrees
	SetFov(degrees float64)

	// HandleKey applies a key press.
	//
	// Parameters:
	//   - keyCode: a common.Key* code
	HandleKey(keyCode uint32)

	// HandleDrag rotates the camera by a pointer drag.
	//
	// Parameters:
	//   - dx, dy: pointer delta in pixels
	HandleDrag(dx, dy float64)

	// HandleWheel moves the camera along its view axis.
	//
	// Parameters:
	//   - delta: distance change
	HandleWheel(delta float64)

	// HandleResize adapts the renderer, camera distance and export scale to a new viewport.
	// The camera rotation and the animation keep running.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	HandleResize(width, height int)

	// ToggleVSync switches the renderer between vertical sync and uncapped presentation.
	ToggleVSync()

	// ResetRing restores the camera for the current viewport and restarts the animation.
	ResetRing()

	// PickImages opens the file picker and loads the selection asynchronously.
	//
	// Parameters:
	//   - replace: true to replace the ring, false to append to it
	PickImages(replace bool)

	// LoadImages decodes paths asynchronously and publishes them to the scene.
	//
	// Parameters:
	//   - paths: files to load
	//   - replace: true to replace the ring, false to append to it
	LoadImages(paths []string, replace bool)

	// HandleDrop loads the supported files among paths dropped onto the window, replacing the ring.
	//
	// Parameters:
	//   - paths: the dropped file paths
	HandleDrop(paths []string)

	// Step produces, renders and profiles one frame. Run calls it from the window update callback.
	//
	// Returns:
	//   - scene.Frame: the frame that was produced
	Step() scene.Frame

	// SetFrameCallback registers a function receiving every produced frame.
	//
	// Parameters:
	//   - callback: function to call after each frame (nil to disable)
	SetFrameCallback(callback func(frame scene.Frame))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit stops the main loop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A scene is created with defaults when none is supplied. Input and resize callbacks are attached to the window.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		controls: scene.Controls{
			FovDegrees:  camera.DefaultFovDegrees,
			Mode:        clock.Continuous,
			ExportScale: 1,
		},
		fovStep:          DefaultFovStep,
		keyDrag:          DefaultKeyDragPixels,
		renderFrameLimit: time.Second / 60,
		baseTitle:        "Kinetic Ring",
	}

	for _, opt := range options {
		opt(e)
	}

	if e.scene == nil {
		e.scene = scene.NewScene()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window != nil {
		e.width, e.height = e.window.Width(), e.window.Height()
		e.window.SetResizeCallback(e.HandleResize)
		e.window.SetDragCallback(e.HandleDrag)
		e.window.SetWheelCallback(e.HandleWheel)
		e.window.SetKeyDownCallback(e.HandleKey)
		e.window.SetDropCallback(e.HandleDrop)
	}
	if e.width > 0 && e.height > 0 {
		e.scene.Reset(e.width, e.height)
	}
	e.controls.FovDegrees = e.scene.Camera().ClampFov(e.controls.FovDegrees)
	e.controls.ExportScale = e.preset.ScaleFactor(e.height)
	e.titleDirty.Store(true)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Controls() scene.Controls {
	return e.controls
}

func (e *engine) ExportPreset() export.Preset {
	return e.preset
}

func (e *engine) SetExportPreset(p export.Preset) {
	e.preset = p
	e.controls.ExportScale = p.ScaleFactor(e.height)
	e.titleDirty.Store(true)
}

func (e *engine) SetMode(m clock.Mode) {
	if e.controls.Mode != m {
		e.controls.Mode = m
		e.titleDirty.Store(true)
	}
}

func (e *engine) SetFov(degrees float64) {
	e.controls.FovDegrees = e.scene.Camera().ClampFov(degrees)
	e.titleDirty.Store(true)
}

func (e *engine) HandleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyT:
		e.SetMode(e.controls.Mode.Toggle())
	case common.Key4:
		e.ResetRing()
	case common.KeyU:
		e.PickImages(true)
	case common.KeyA:
		e.PickImages(false)
	case common.KeyE:
		e.SetExportPreset(e.preset.Next())
	case common.KeyUp:
		e.SetFov(e.controls.FovDegrees + e.fovStep)
	case common.KeyDown:
		e.SetFov(e.controls.FovDegrees - e.fovStep)
	case common.KeyLeft:
		e.HandleDrag(-e.keyDrag, 0)
	case common.KeyRight:
		e.HandleDrag(e.keyDrag, 0)
	case common.KeyV:
		e.ToggleVSync()
	case common.KeyH:
		if e.profilingEnabled {
			e.DisableProfiler()
		} else {
			e.EnableProfiler()
		}
	case common.KeyEsc:
		e.Quit()
	}
}

func (e *engine) HandleDrag(dx, dy float64) {
	e.scene.Camera().Controller().Drag(dx, dy)
}

func (e *engine) HandleWheel(delta float64) {
	e.scene.Camera().Controller().Wheel(delta)
}

func (e *engine) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized: keep the last viewport so the camera survives restore.
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		return
	}
	e.width, e.height = width, height
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	e.scene.Resize(width, height)
	e.controls.ExportScale = e.preset.ScaleFactor(height)
}

func (e *engine) ToggleVSync() {
	e.uncapped = !e.uncapped
	mode := renderer.PresentModeVSync
	if e.uncapped {
		mode = renderer.PresentModeUncapped
	}
	if e.renderer != nil {
		e.renderer.SetPresentMode(mode)
	}
	log.Printf("[Engine] present mode: %s", mode)
}

func (e *engine) ResetRing() {
	e.scene.Reset(e.width, e.height)
	e.titleDirty.Store(true)
}

func (e *engine) PickImages(replace bool) {
	if e.loader == nil {
		log.Printf("[Engine] no loader configured")
		return
	}
	if !e.loading.CompareAndSwap(false, true) {
		return
	}
	e.titleDirty.Store(true)
	e.loader.PickAsync(func(res loader.Result) {
		e.publish(res, replace)
	})
}

func (e *engine) LoadImages(paths []string, replace bool) {
	if e.loader == nil {
		log.Printf("[Engine] no loader configured")
		return
	}
	e.loading.Store(true)
	e.titleDirty.Store(true)
	e.loader.LoadAsync(paths, func(res loader.Result) {
		e.publish(res, replace)
	})
}

func (e *engine) HandleDrop(paths []string) {
	if e.loader == nil {
		log.Printf("[Engine] no loader configured")
		return
	}
	supported := common.Filter(paths, e.loader.Supports)
	if len(supported) == 0 {
		log.Printf("[Engine] none of the %d dropped files are supported", len(paths))
		return
	}
	e.LoadImages(supported, true)
}

// publish runs on a loader worker. The scene swaps the ring atomically, so the frame loop picks the new set up on
// its next frame.
func (e *engine) publish(res loader.Result, replace bool) {
	defer func() {
		e.loading.Store(false)
		e.titleDirty.Store(true)
	}()

	switch {
	case errors.Is(res.Err, loader.ErrCanceled):
		return
	case res.Err != nil && len(res.Images) == 0:
		log.Printf("[Engine] image load failed: %v", res.Err)
		return
	case res.Err != nil:
		log.Printf("[Engine] some images were skipped: %v", res.Err)
	}

	if replace {
		e.scene.SetImages(res.Images)
	} else {
		e.scene.AppendImages(res.Images...)
	}
	log.Printf("[Engine] ring now holds %d images", len(e.scene.Images()))
}

func (e *engine) Step() (frame scene.Frame) {
	// Recover from panics inside the frame to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	frame = e.scene.Frame(e.controls)

	if e.renderer != nil {
		if err := e.renderer.Render(frame); err != nil {
			log.Printf("[Engine] render failed: %v", err)
		}
	}

	if e.frameCallback != nil {
		e.frameCallback(frame)
	}

	if e.profilingEnabled && e.profiler != nil {
		draws := len(frame.Commands)
		if e.renderer != nil {
			draws = e.renderer.LastDrawCount()
		}
		e.profiler.Tick(draws)
	}

	if e.window != nil && e.titleDirty.CompareAndSwap(true, false) {
		e.window.SetTitle(e.title(frame))
	}
	return frame
}

// title summarizes the ring state for the window title bar.
func (e *engine) title(frame scene.Frame) string {
	t := fmt.Sprintf("%s | %s | %d images | fov %.0f | %s", e.baseTitle, frame.Mode, frame.Slots, e.controls.FovDegrees, e.preset)
	if w, h := e.preset.Size(); w > 0 {
		t += fmt.Sprintf(" %dx%d", w, h)
	}
	if e.loading.Load() {
		t += " | loading..."
	}
	return t
}

// onUpdate is the window update callback: it stops the window once quit is signalled and otherwise paces frames to
// the render frame limit.
func (e *engine) onUpdate() {
	select {
	case <-e.quitChannel:
		if e.window != nil && e.window.IsRunning() {
			if err := e.window.Close(); err != nil {
				log.Printf("[Engine] failed to close window: %v", err)
			}
		}
		return
	default:
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(e.lastRender); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	e.lastRender = time.Now()
	e.Step()
}

func (e *engine) SetFrameCallback(callback func(frame scene.Frame)) {
	e.frameCallback = callback
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("[Engine] no window configured")
		return
	}
	e.running = true
	e.wg.Add(1)
	go e.handleQuit()

	e.lastRender = time.Now()
	e.window.SetUpdateCallback(e.onUpdate)
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	if e.renderer != nil {
		e.renderer.Release()
	}
	if e.window.IsRunning() {
		_ = e.window.Close()
	}
}

// Quit signals the main loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	log.Printf("[Engine] shutting down")
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
