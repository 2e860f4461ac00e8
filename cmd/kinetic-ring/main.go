// Command kinetic-ring shows a set of images on a rotating 3D ring.
//
// Usage:
//
//	kinetic-ring [-config ring.yaml] [-mode continuous|stepped] [-fov 60] [-preset square] [image or pdf ...]
//
// Keys: T toggles the motion mode, 4 resets the camera, U replaces the images, A appends images, E cycles the
// export framing, Up/Down change the field of view, Left/Right rotate, V toggles vsync, H toggles profiling and Esc
// quits. Files dropped onto the window replace the images.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/config"
	"github.com/Carmen-Shannon/kinetic-ring/engine"
	"github.com/Carmen-Shannon/kinetic-ring/engine/camera"
	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/export"
	"github.com/Carmen-Shannon/kinetic-ring/engine/loader"
	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
	"github.com/Carmen-Shannon/kinetic-ring/engine/renderer"
	"github.com/Carmen-Shannon/kinetic-ring/engine/ring"
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
	"github.com/Carmen-Shannon/kinetic-ring/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	mode := flag.String("mode", "", "motion mode: continuous or stepped")
	fov := flag.Float64("fov", 0, "vertical field of view in degrees")
	preset := flag.String("preset", "", "export framing: window, square, portrait, landscape or print (or its WxH size)")
	profile := flag.Bool("profile", false, "log frame statistics")
	software := flag.Bool("software", false, "force the fallback software adapter")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}
	applyFlags(cfg, *mode, *fov, *preset, *profile)

	if *writeConfig != "" {
		if err := cfg.Write(*writeConfig); err != nil {
			log.Fatalf("[Main] %v", err)
		}
		log.Printf("[Main] wrote config to %s", *writeConfig)
		return
	}

	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithWheelStep(cfg.Camera.WheelStep),
	)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		w,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithForceSoftwareRenderer(*software),
	)
	if err != nil {
		_ = w.Close()
		log.Fatalf("[Main] %v", err)
	}

	s := newScene(cfg)
	l := loader.NewLoader(
		loader.WithMaxDimension(cfg.Images.MaxDimension),
		loader.WithPDFDPI(cfg.Images.PDFDPI),
		loader.WithCornerFraction(cfg.Images.CornerFraction),
	)

	paths := append(append([]string{}, cfg.Images.Paths...), flag.Args()...)
	s.SetImages(initialImages(l, paths, cfg.Images.Placeholders))

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderer(r),
		engine.WithScene(s),
		engine.WithLoader(l),
		engine.WithTitle(cfg.Window.Title),
		engine.WithMode(cfg.MotionMode()),
		engine.WithFov(cfg.Camera.FovDegrees),
		engine.WithExportPreset(cfg.ExportPreset()),
		engine.WithProfiling(cfg.Profiling),
		engine.WithRenderFrameLimit(float64(cfg.FrameLimit)),
	)
	eng.Run()
}

// applyFlags overrides config values with any command line flags that were set.
func applyFlags(cfg *config.Config, mode string, fov float64, preset string, profile bool) {
	if mode != "" {
		if _, err := clock.ParseMode(mode); err != nil {
			log.Fatalf("[Main] %v", err)
		}
		cfg.Motion.Mode = mode
	}
	if fov > 0 {
		cfg.Camera.FovDegrees = fov
	}
	if preset != "" {
		if _, err := export.ParsePreset(preset); err != nil {
			log.Fatalf("[Main] %v", err)
		}
		cfg.Export.Preset = preset
	}
	if profile {
		cfg.Profiling = true
	}
	cfg.Normalize()
}

func newScene(cfg *config.Config) scene.Scene {
	controller := camera.NewCameraController(
		camera.WithDistanceBounds(cfg.Camera.MinDistance, cfg.Camera.MaxDistance),
		camera.WithSensitivity(cfg.Camera.Sensitivity),
	)
	options := []scene.SceneBuilderOption{
		scene.WithCamera(camera.NewCamera(camera.WithController(controller))),
		scene.WithLayout(ring.NewLayout(
			ring.WithOrbitRadius(cfg.Ring.OrbitRadius),
			ring.WithMaxSize(cfg.Ring.MaxSize),
			ring.WithRelaxFactor(cfg.Ring.RelaxFactor),
		)),
		scene.WithClock(clock.NewClock(clock.WithMode(cfg.MotionMode()))),
		scene.WithPlaneGenerator(model.NewPlaneGenerator(model.WithSteps(cfg.Mesh.Steps))),
		scene.WithRingOffset(cfg.Ring.RingOffset),
	}
	if cfg.ComputeWorkers > 0 {
		options = append(options, scene.WithComputeWorkers(cfg.ComputeWorkers))
	}
	return scene.NewScene(options...)
}

// initialImages loads the given paths, falling back to placeholders when none are given or none decode.
func initialImages(l loader.Loader, paths []string, placeholders int) []*common.RenderImage {
	if len(paths) > 0 {
		images, err := l.Load(context.Background(), paths)
		if err != nil {
			log.Printf("[Main] %v", err)
		}
		if len(images) > 0 {
			return images
		}
	}

	images, err := l.Placeholders(placeholders)
	if err != nil {
		log.Printf("[Main] failed to draw placeholders: %v", err)
		os.Exit(1)
	}
	return images
}
