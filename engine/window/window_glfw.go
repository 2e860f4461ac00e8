package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/kinetic-ring/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	window  *glfw.Window
	running bool
}

// newPlatformWindow opens a GLFW window without a client API, since WebGPU owns the surface, and binds the ring's
// input callbacks to it.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	w.internalWindow = &glfwWindow{window: win, running: true}
	bindInput(w, win)

	// The surface is configured in framebuffer pixels, which differ from window units on high-DPI displays.
	w.width, w.height = win.GetFramebufferSize()
	return nil
}

// bindInput translates GLFW events into the window's callbacks.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window
func bindInput(w *engineWindow, win *glfw.Window) {
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch {
		case action == glfw.Release && w.onKeyUp != nil:
			w.onKeyUp(uint32(key))
		case action != glfw.Release && w.onKeyDown != nil:
			w.onKeyDown(uint32(key))
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onWheel != nil {
			w.onWheel(input.WheelDelta(yoff, w.wheelStep))
		}
	})

	// Drags are tracked in screen coordinates, the unit the rotation sensitivity is tuned for.
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Release {
			w.drag.Release()
			return
		}
		w.drag.Press(win.GetCursorPos())
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if dx, dy, ok := w.drag.Move(xpos, ypos); ok && w.onDrag != nil {
			w.onDrag(dx, dy)
		}
	})

	win.SetDropCallback(func(_ *glfw.Window, names []string) {
		if w.onDrop != nil && len(names) > 0 {
			w.onDrop(names)
		}
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		w.updateDragStrip()
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformSetTitle(w *engineWindow, title string) {
	if gw, ok := w.internalWindow.(*glfwWindow); ok {
		gw.window.SetTitle(title)
	}
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	return ok && gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	gw.running = false
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
