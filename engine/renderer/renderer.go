package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"
)

var cameraUniformSize = uint64(camera.GPUCameraUniformSize)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	viewport    Viewport
	logger      zerolog.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	clearColor           common.Color
}

// Renderer draws the line geometry of a scene through a single line-list pipeline.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetViewport sets the rectangle of the surface the scene is drawn into.
	//
	// Parameters:
	//   - viewport: the target rectangle in pixels
	SetViewport(viewport Viewport)

	// Viewport returns the current target rectangle.
	//
	// Returns:
	//   - Viewport: the rectangle in pixels
	Viewport() Viewport

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Render uploads the camera uniform and vertices, then draws and presents one frame.
	//
	// Parameters:
	//   - uniform: the camera uniform for this frame
	//   - lines: line vertices, consecutive pairs form segments
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or the vertices uploaded
	Render(uniform camera.GPUCameraUniform, lines []common.LineVertex) error

	// Release frees the GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the renderer for a window, configures its surface and registers the line pipeline.
//
// Parameters:
//   - backendType: the GPU backend
//   - window: the window whose surface is drawn to
//   - options: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the line pipeline could not be created
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  common.Color{0.1, 0.1, 0.1, 1},
	}

	// Options first so flags like forceFallbackAdapter are set before the adapter is requested.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	clear := wgpu.Color{
		R: float64(r.clearColor[0]),
		G: float64(r.clearColor[1]),
		B: float64(r.clearColor[2]),
		A: float64(r.clearColor[3]),
	}
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, msaa, clear)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	r.viewport = Viewport{Width: float32(window.Width()), Height: float32(window.Height())}
	if err := r.backend.RegisterLinePipeline(LineShaderSource()); err != nil {
		return nil, err
	}
	r.logger.Info().Int("width", window.Width()).Int("height", window.Height()).Uint32("msaa", uint32(msaa)).Msg("renderer ready")
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetViewport(viewport Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = viewport
}

func (r *renderer) Viewport() Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Render(uniform camera.GPUCameraUniform, lines []common.LineVertex) error {
	r.mu.Lock()
	viewport := r.viewport
	r.mu.Unlock()

	r.backend.WriteCamera(uniform.Marshal())
	if err := r.backend.WriteVertices(MarshalLineVertices(lines)); err != nil {
		return err
	}

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.backend.DrawLines(viewport, uint32(len(lines)))
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}
