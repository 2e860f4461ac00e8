package scene

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/kinetic-ring/common"
	"github.com/Carmen-Shannon/kinetic-ring/engine/camera"
	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/model"
	"github.com/Carmen-Shannon/kinetic-ring/engine/ring"
)

// DefaultRingOffset is added to every node's orbit radius when placing it.
const DefaultRingOffset = 300.0

// DefaultParallelThreshold is the node count from which plane generation fans out to the worker pool.
const DefaultParallelThreshold = 64

type scene struct {
	// mu guards images only; everything else is owned by the frame loop.
	mu     *sync.Mutex
	images []*common.RenderImage

	cam       camera.Camera
	layout    ring.Layout
	clk       clock.Clock
	generator model.PlaneGenerator

	ringOffset     float64
	lastGeneration uint64

	parallelThreshold int
	computeWorkers    int
	computePool       worker.DynamicWorkerPool
}

// Scene is the composition root of the ring. It owns the camera, the layout, the clock and the plane generator,
// and turns them into draw commands once per frame.
type Scene interface {
	// Camera returns the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Layout returns the ring layout.
	//
	// Returns:
	//   - ring.Layout: the layout
	Layout() ring.Layout

	// Clock returns the animation clock.
	//
	// Returns:
	//   - clock.Clock: the clock
	Clock() clock.Clock

	// Images returns a copy of the current image set.
	//
	// Returns:
	//   - []*common.RenderImage: the images in slot order
	Images() []*common.RenderImage

	// SetImages replaces the image set and rebuilds the ring. Safe to call from any goroutine.
	//
	// Parameters:
	//   - images: the new image set in slot order
	SetImages(images []*common.RenderImage)

	// AppendImages adds uploaded images to the ring. If the ring only shows placeholders they are replaced.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - images: the images to add
	AppendImages(images ...*common.RenderImage)

	// Reset returns the camera to its initial orientation and distance for the viewport and restarts the animation.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	Reset(width, height int)

	// Resize adapts the projection aspect and camera distance to a new viewport. The rotation and the animation
	// frame counter are kept.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	Resize(width, height int)

	// Frame advances the ring one frame and returns its draw commands.
	//
	// Parameters:
	//   - controls: the externally owned controls for this frame
	//
	// Returns:
	//   - Frame: the frame to render
	Frame(controls Controls) Frame
}

var _ Scene = &scene{}

// NewScene creates a new Scene. Missing collaborators are created with their defaults.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:                &sync.Mutex{},
		ringOffset:        DefaultRingOffset,
		parallelThreshold: DefaultParallelThreshold,
		computeWorkers:    max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.layout == nil {
		s.layout = ring.NewLayout()
	}
	if s.clk == nil {
		s.clk = clock.NewClock()
	}
	if s.generator == nil {
		s.generator = model.NewPlaneGenerator()
	}

	// Workers idle-exit after a second, so a ring below the threshold never keeps goroutines alive.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	_, s.lastGeneration = s.layout.Snapshot()
	return s
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Layout() ring.Layout {
	return s.layout
}

func (s *scene) Clock() clock.Clock {
	return s.clk
}

func (s *scene) Images() []*common.RenderImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*common.RenderImage, len(s.images))
	copy(out, s.images)
	return out
}

func (s *scene) SetImages(images []*common.RenderImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append([]*common.RenderImage(nil), images...)
	s.layout.Rebuild(s.images)
}

func (s *scene) AppendImages(images ...*common.RenderImage) {
	if len(images) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	onlyPlaceholders := true
	for _, img := range s.images {
		if img != nil && !img.Placeholder {
			onlyPlaceholders = false
			break
		}
	}

	next := make([]*common.RenderImage, 0, len(s.images)+len(images))
	if !onlyPlaceholders {
		next = append(next, s.images...)
	}
	s.images = append(next, images...)
	s.layout.Rebuild(s.images)
}

func (s *scene) Reset(width, height int) {
	s.cam.SetViewport(width, height)
	s.cam.Controller().ResetForViewport(width, height)
	s.clk.Reset()
}

func (s *scene) Resize(width, height int) {
	s.cam.SetViewport(width, height)
	s.cam.Controller().FitViewport(width, height)
}

func (s *scene) Frame(controls Controls) Frame {
	s.clk.SetMode(controls.Mode)

	nodes, generation := s.layout.Advance()
	if generation != s.lastGeneration {
		s.clk.Reset()
		s.lastGeneration = generation
	}

	view := s.cam.Update(controls.FovDegrees, controls.ExportScale)
	sample := s.clk.Sample(len(nodes))

	frame := Frame{
		Number:         sample.Frame,
		Mode:           sample.Mode,
		Generation:     generation,
		Slots:          len(nodes),
		RotationOffset: sample.RotationOffset,
		View:           view,
	}

	commands := make([]DrawCommand, len(nodes))
	drawn := make([]bool, len(nodes))
	if len(nodes) >= s.parallelThreshold {
		var wg sync.WaitGroup
		for i := range nodes {
			wg.Add(1)
			id := i
			s.computePool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					commands[id], drawn[id] = s.place(nodes[id], sample, view)
					return nil, nil
				},
			})
		}
		wg.Wait()
	} else {
		for i := range nodes {
			commands[i], drawn[i] = s.place(nodes[i], sample, view)
		}
	}

	frame.Commands = commands[:0]
	for i := range commands {
		if drawn[i] {
			frame.Commands = append(frame.Commands, commands[i])
		}
	}

	s.clk.Tick()
	return frame
}

// place computes the draw command of one node. It reads only its arguments and the immutable generator,
// so it may run on any worker.
func (s *scene) place(node ring.Node, sample clock.Sample, view camera.ViewParams) (DrawCommand, bool) {
	if !node.Drawable() {
		return DrawCommand{}, false
	}

	tr := sample.Transients(node.Index)
	radius := node.OrbitRadius + s.ringOffset + tr.Expansion
	angle := node.Angle + sample.RotationOffset
	x := radius * math.Cos(angle)
	y := radius * math.Sin(angle)
	z := tr.ZOffset

	dist := view.DistanceTo(x, y, z)
	cmd := DrawCommand{
		Index: node.Index,
		Image: node.Image,
		Transform: Transform{
			Translation: [3]float64{x, y, z},
			FaceRotX:    -view.RotX,
			FaceRotY:    -view.RotY,
			Scale:       node.DisplayScale * tr.SizeWave,
		},
		CameraDistance: dist,
		Mesh:           s.generator.Generate(node.Width, node.Height, dist, view.Distance),
	}
	cmd.Model = cmd.Transform.Matrix()
	common.Mul4(cmd.MVP[:], view.ViewProjection[:], cmd.Model[:])
	return cmd, true
}
