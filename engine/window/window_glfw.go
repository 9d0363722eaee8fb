package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow is the GLFW side of an engineWindow. Its methods are the GLFW callbacks; each one translates the
// event and hands it to the engineWindow.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow initialises GLFW, opens a window without a client API (webgpu draws into it) and registers
// the input callbacks. Must run on the thread that later polls events.
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

	gw := &glfwWindow{parent: w, window: win, running: true}
	win.SetKeyCallback(gw.key)
	win.SetScrollCallback(gw.scroll)
	win.SetMouseButtonCallback(gw.mouseButton)
	win.SetCursorPosCallback(gw.cursor)
	// framebuffer size is in pixels, which is what the surface and viewport need on high-DPI displays
	win.SetFramebufferSizeCallback(gw.framebufferSize)
	w.internalWindow = gw

	w.width, w.height = win.GetFramebufferSize()
	return nil
}

func (gw *glfwWindow) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape {
		if action == glfw.Press {
			gw.running = false
			gw.window.SetShouldClose(true)
		}
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		gw.parent.dispatchKey(uint32(key), true)
	case glfw.Release:
		gw.parent.dispatchKey(uint32(key), false)
	}
}

func (gw *glfwWindow) scroll(_ *glfw.Window, _, yoff float64) {
	if gw.parent.onScroll != nil {
		gw.parent.onScroll(float32(yoff))
	}
}

func (gw *glfwWindow) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	x, y := gw.window.GetCursorPos()
	gw.parent.dispatchMouseButton(MouseButton(button), action == glfw.Press, int32(x), int32(y))
}

func (gw *glfwWindow) cursor(_ *glfw.Window, x, y float64) {
	if gw.parent.onMouseMove != nil {
		gw.parent.onMouseMove(int32(x), int32(y))
	}
}

func (gw *glfwWindow) framebufferSize(_ *glfw.Window, width, height int) {
	gw.parent.handleResize(width, height)
}

func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the window and shuts GLFW down.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return errors.New("window is not initialized")
	}
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls pending events without blocking and reports whether the window is still open.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
