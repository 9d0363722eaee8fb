package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/window"
	"github.com/rs/zerolog"
)

// engine implements the Engine interface.
// Input, animation and drawing all run on the window thread, one frame per message loop iteration.
type engine struct {
	quitOnce sync.Once
	quit     bool

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	camera   camera.Camera
	logger   zerolog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool
	profilerInterval time.Duration

	tickCallback func(dt time.Duration)

	lastFrame        time.Time
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It drives the frame loop: poll input, advance the tick callback, tessellate the scene, render.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, nil in headless use
	Window() window.Window

	// Renderer returns the renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, nil in headless use
	Renderer() renderer.Renderer

	// Scene returns the scene drawn each frame.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Camera returns the camera the scene is drawn from.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame before drawing.
	// Use it to advance camera transitions.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous frame
	SetTickCallback(callback func(dt time.Duration))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frame runs one frame: the tick callback, a camera update and, when a renderer is set, a draw.
	//
	// Parameters:
	//   - dt: time since the previous frame
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	Frame(dt time.Duration) error

	// Run starts the main loop (blocks until the window closes or Quit is called).
	Run()

	// Quit stops the main loop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// A scene and a camera are required.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{}
	for _, opt := range options {
		opt(e)
	}
	if e.scene == nil {
		panic("engine needs a scene")
	}
	if e.camera == nil {
		panic("engine needs a camera")
	}
	e.profiler = profiler.NewProfiler(e.logger, e.profilerInterval)

	if e.window != nil {
		e.applyViewport()
		e.window.SetResizeCallback(func(width, height int) {
			if e.renderer != nil {
				e.renderer.Resize(width, height)
			}
			e.applyViewport()
		})
	}

	return e
}

func (e *engine) applyViewport() {
	rect := e.window.Viewport()
	vp := renderer.Viewport{
		X:      float32(rect.X),
		Y:      float32(rect.Y),
		Width:  float32(rect.Width),
		Height: float32(rect.Height),
	}
	if e.renderer != nil {
		e.renderer.SetViewport(vp)
	}
	e.camera.SetAspect(vp.Aspect())
	e.camera.Update()
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Frame(dt time.Duration) error {
	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	e.camera.Update()

	vp := e.camera.ViewProjectionMatrix()
	lines := e.scene.VisibleLines(common.ExtractFrustumFromMatrix(vp[:]))
	if e.renderer != nil {
		if err := e.renderer.Render(e.camera.Uniform(), lines); err != nil {
			return err
		}
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine needs a window to run")
	}

	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		if e.quit {
			e.quitOnce.Do(func() {
				if err := e.window.Close(); err != nil {
					e.logger.Warn().Err(err).Msg("failed to close window")
				}
			})
			return
		}

		now := time.Now()
		dt := now.Sub(e.lastFrame)
		e.lastFrame = now

		if err := e.Frame(dt); err != nil {
			e.logger.Debug().Err(err).Msg("frame skipped")
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quit = true
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(dt time.Duration)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
