// package controls is the surface the host UI calls: key bindings and text inputs end up here. Controls owns the
// camera animator and the viewpoint store and keeps the helper geometry in the scene in step with them.
package controls

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/orbit"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/storage"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/tween"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/viewpoint"
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidDistance rejects distance bounds that are empty, not numeric, negative or inverted.
	ErrInvalidDistance = errors.New("wrong distance values")
	// ErrInvalidBounds rejects pan bounds that are empty, not numeric or inverted.
	ErrInvalidBounds = errors.New("wrong bounds values")
	// ErrInvalidViewpoint rejects viewpoint coordinates that are not finite.
	ErrInvalidViewpoint = errors.New("wrong viewpoint values")
	// ErrNoViewpoint is returned when an operation needs a current viewpoint and the store is empty.
	ErrNoViewpoint = errors.New("no current viewpoint")
)

// SceneContext carries the collaborators Controls operates on. Camera, Scene and Storage are required.
type SceneContext struct {
	Camera  camera.Camera
	Scene   scene.Scene
	Storage storage.KV

	// Orbit routes moves around the scene. Without it moves go straight to the destination.
	Orbit orbit.Orbit
	// Grid resolves MoveToGridSlot cells; GridOffset is added to a cell centre to place the camera.
	Grid       camera.GridResolver
	GridOffset common.Point3

	Logger zerolog.Logger
}

// Controls exposes every operation of the viewer's host UI.
// Controls is driven from the frame loop goroutine and is not safe for concurrent use.
type Controls interface {
	// Frame advances the active camera move by dt and refreshes the camera matrices.
	//
	// Parameters:
	//   - dt: time since the previous frame
	//
	// Returns:
	//   - tween.Status: StatusRunning while a move is in flight
	Frame(dt time.Duration) tween.Status

	// MoveToGridSlot moves the camera in front of a bookcase cell.
	//
	// Parameters:
	//   - col: zero-based column
	//   - row: zero-based row
	//
	// Returns:
	//   - error: if there is no grid or the cell does not exist
	MoveToGridSlot(col, row int) error

	// GoToViewpoint moves the camera to the viewpoint at index. The cursor does not move.
	//
	// Returns:
	//   - error: viewpoint.ErrIndexOutOfRange for an unknown index
	GoToViewpoint(index int) error

	// GoToCurrentViewpoint moves the camera to the viewpoint under the cursor.
	//
	// Returns:
	//   - error: ErrNoViewpoint when the store is empty
	GoToCurrentViewpoint() error

	// PreviousViewpoint moves the cursor back. It is a no-op on the first viewpoint.
	PreviousViewpoint() bool

	// NextViewpoint moves the cursor forward. It is a no-op on the last viewpoint.
	NextViewpoint() bool

	// AddViewpoint appends a viewpoint offset from the last one and makes it current.
	//
	// Returns:
	//   - int: the index of the new viewpoint
	AddViewpoint() int

	// AddViewpointFromCamera appends a viewpoint at the live camera placement and makes it current.
	AddViewpointFromCamera() int

	// RemoveViewpoint removes the current viewpoint. It is a no-op on an empty store.
	RemoveViewpoint() bool

	// UpdateViewpoint overwrites the current viewpoint. It is a no-op on an empty store.
	//
	// Parameters:
	//   - position: the new camera position
	//   - target: the new look target
	//
	// Returns:
	//   - error: ErrInvalidViewpoint for non-finite coordinates, leaving the viewpoint untouched
	UpdateViewpoint(position, target common.Point3) error

	// UpdateViewpointFromCamera overwrites the current viewpoint with the live camera placement.
	UpdateViewpointFromCamera() bool

	// SaveViewpoints persists the viewpoint collection.
	SaveViewpoints() error

	// SaveCameraDefault persists the live camera position and target as the startup placement.
	SaveCameraDefault() error

	// DeleteCameraDefault forgets the startup placement.
	DeleteCameraDefault() error

	// SaveDistanceBounds parses, applies and persists the camera distance bounds.
	//
	// Parameters:
	//   - min: minimum distance as typed by the user
	//   - max: maximum distance as typed by the user
	//
	// Returns:
	//   - error: ErrInvalidDistance if either value is rejected, leaving the current bounds untouched
	SaveDistanceBounds(min, max string) error

	// DeleteDistanceBounds removes the distance bounds and forgets them.
	DeleteDistanceBounds() error

	// SavePanBounds parses, applies and persists the box the look target is kept in, and draws it.
	//
	// Parameters:
	//   - values: x min, x max, y min, y max, z min, z max as typed by the user
	//
	// Returns:
	//   - error: ErrInvalidBounds if any value is rejected, leaving the current bounds untouched
	SavePanBounds(values [6]string) error

	// DeletePanBounds removes the pan bounds, their box and the stored value.
	DeletePanBounds() error

	// ToggleHelpers flips the visibility of the orbit helpers, the axes and the pan-bounds box.
	ToggleHelpers()

	// ToggleEditorMode cycles the editor display mode and shows or hides the editor geometry to match.
	//
	// Returns:
	//   - viewpoint.Mode: the new mode
	ToggleEditorMode() viewpoint.Mode

	// EnablePan allows the user to move the look target.
	EnablePan()

	// DisablePan locks the look target.
	DisablePan()

	// SetPolarAngles limits how far the camera may tilt, in degrees from straight up.
	SetPolarAngles(minDegrees, maxDegrees float32)

	// SetAzimuthAngles limits the horizontal angle to a window of the given width in degrees, centred on +Y.
	// A width of 360 or more removes the limit.
	SetAzimuthAngles(degrees float32)

	// Animator returns the camera animator.
	Animator() camera.Animator

	// Store returns the viewpoint store.
	Store() viewpoint.Store

	// Helpers returns the scene handles of the helper nodes.
	Helpers() Helpers
}

// Helpers are the scene handles of the helper geometry Controls maintains. A zero handle means the node does not
// exist.
type Helpers struct {
	// CamHelpers groups the orbit ring and the path preview.
	CamHelpers scene.NodeID
	Orbit      scene.NodeID
	Path       scene.NodeID
	Axes       scene.NodeID
	PanBounds  scene.NodeID
	// Editor groups every viewpoint marker.
	Editor scene.NodeID
}

type controlsImpl struct {
	ctx      SceneContext
	ctrl     camera.CameraController
	animator camera.Animator
	store    viewpoint.Store

	helpers        Helpers
	helpersVisible bool

	animatorOptions []camera.AnimatorBuilderOption
	storeOptions    []viewpoint.StoreBuilderOption
	seedViewpoints  bool
	axesLength      float32
	orbitHeight     float32
	orbitCenterZ    float32
	pathPointSize   float32
}

var _ Controls = &controlsImpl{}

// New builds the controls: it creates the helper geometry, the viewpoint store and the camera animator, loads the
// stored viewpoints and applies the stored camera defaults.
//
// Parameters:
//   - ctx: the collaborators to operate on
//   - options: builder options
//
// Returns:
//   - Controls: the ready controls
func New(ctx SceneContext, options ...ControlsBuilderOption) Controls {
	if ctx.Camera == nil || ctx.Camera.Controller() == nil {
		panic("controls: New requires a camera with a controller")
	}
	if ctx.Scene == nil {
		panic("controls: New requires a scene")
	}
	if ctx.Storage == nil {
		panic("controls: New requires storage")
	}

	c := &controlsImpl{
		ctx:            ctx,
		ctrl:           ctx.Camera.Controller(),
		helpersVisible: true,
		seedViewpoints: true,
		axesLength:     1000,
		orbitHeight:    2000,
		orbitCenterZ:   1250,
		pathPointSize:  25,
	}
	for _, opt := range options {
		opt(c)
	}

	c.buildHelpers()

	c.store = viewpoint.NewStore(append([]viewpoint.StoreBuilderOption{
		viewpoint.WithMarkerSink(ctx.Scene),
		viewpoint.WithLogger(ctx.Logger),
	}, c.storeOptions...)...)
	if !c.store.Load(ctx.Storage) && c.seedViewpoints {
		ctx.Logger.Info().Msg("no stored viewpoints, loading the default set")
		c.store.LoadDefaults()
	}

	animatorOptions := []camera.AnimatorBuilderOption{
		camera.WithLogger(ctx.Logger),
		camera.WithPathObserver(c.showPath),
	}
	if ctx.Orbit != nil {
		animatorOptions = append(animatorOptions, camera.WithOrbit(ctx.Orbit))
	}
	if ctx.Grid != nil {
		animatorOptions = append(animatorOptions, camera.WithGrid(ctx.Grid, ctx.GridOffset))
	}
	c.animator = camera.NewAnimator(c.ctrl, append(animatorOptions, c.animatorOptions...)...)

	c.applyStoredDefaults()
	c.applyMode()
	ctx.Camera.Update()
	return c
}

func (c *controlsImpl) applyStoredDefaults() {
	d := storage.LoadDefaults(c.ctx.Storage, c.ctx.Logger)

	position, target := c.ctrl.Position(), c.ctrl.Target()
	if d.CameraPosition != nil {
		position = *d.CameraPosition
	}
	if d.CameraTarget != nil {
		target = *d.CameraTarget
	}
	c.ctrl.SetView(position, target)

	if r, ok := d.Distance(); ok {
		c.ctrl.SetDistanceBounds(r.Min, r.Max)
	}
	if d.PanBounds != nil {
		c.setPanBounds(*d.PanBounds)
	}
}

func (c *controlsImpl) Frame(dt time.Duration) tween.Status {
	status := c.animator.Advance(dt)
	c.ctx.Camera.Update()
	return status
}

func (c *controlsImpl) MoveToGridSlot(col, row int) error {
	return c.animator.MoveToGridPosition(col, row)
}

func (c *controlsImpl) GoToViewpoint(index int) error {
	vp, err := c.store.Get(index)
	if err != nil {
		return err
	}
	return c.animator.MoveToViewpoint(vp.Position, vp.Target)
}

func (c *controlsImpl) GoToCurrentViewpoint() error {
	vp, ok := c.store.Current()
	if !ok {
		return ErrNoViewpoint
	}
	return c.animator.MoveToViewpoint(vp.Position, vp.Target)
}

func (c *controlsImpl) PreviousViewpoint() bool {
	return c.store.Previous()
}

func (c *controlsImpl) NextViewpoint() bool {
	return c.store.Next()
}

func (c *controlsImpl) AddViewpoint() int {
	return c.store.Add(nil, nil)
}

func (c *controlsImpl) AddViewpointFromCamera() int {
	position, target := c.ctrl.Position(), c.ctrl.Target()
	return c.store.Add(&position, &target)
}

func (c *controlsImpl) RemoveViewpoint() bool {
	return c.store.RemoveCurrent()
}

func (c *controlsImpl) UpdateViewpoint(position, target common.Point3) error {
	if !position.IsFinite() || !target.IsFinite() {
		c.ctx.Logger.Warn().Stringer("position", position).Stringer("target", target).Msg(ErrInvalidViewpoint.Error())
		return ErrInvalidViewpoint
	}
	c.store.UpdateCurrent(position, target)
	return nil
}

func (c *controlsImpl) UpdateViewpointFromCamera() bool {
	return c.store.UpdateCurrent(c.ctrl.Position(), c.ctrl.Target())
}

func (c *controlsImpl) SaveViewpoints() error {
	return c.store.Save(c.ctx.Storage)
}

func (c *controlsImpl) SaveCameraDefault() error {
	if err := storage.SaveCamera(c.ctx.Storage, c.ctrl.Position(), c.ctrl.Target()); err != nil {
		return fmt.Errorf("save camera default: %w", err)
	}
	return nil
}

func (c *controlsImpl) DeleteCameraDefault() error {
	if err := storage.DeleteCamera(c.ctx.Storage); err != nil {
		return fmt.Errorf("delete camera default: %w", err)
	}
	return nil
}

func (c *controlsImpl) SaveDistanceBounds(min, max string) error {
	values, err := parseNumbers(min, max)
	if err != nil || values[0] < 0 || values[0] > values[1] {
		c.ctx.Logger.Warn().Str("min", min).Str("max", max).Msg(ErrInvalidDistance.Error())
		return ErrInvalidDistance
	}

	r := common.Range{Min: values[0], Max: values[1]}
	c.ctrl.SetDistanceBounds(r.Min, r.Max)
	if err := storage.SaveDistance(c.ctx.Storage, r); err != nil {
		return fmt.Errorf("save distance bounds: %w", err)
	}
	return nil
}

func (c *controlsImpl) DeleteDistanceBounds() error {
	c.ctrl.ClearDistanceBounds()
	if err := storage.DeleteDistance(c.ctx.Storage); err != nil {
		return fmt.Errorf("delete distance bounds: %w", err)
	}
	return nil
}

func (c *controlsImpl) SavePanBounds(values [6]string) error {
	v, err := parseNumbers(values[:]...)
	if err != nil || v[0] > v[1] || v[2] > v[3] || v[4] > v[5] {
		c.ctx.Logger.Warn().Strs("values", values[:]).Msg(ErrInvalidBounds.Error())
		return ErrInvalidBounds
	}

	bounds := common.Bounds{
		X: common.Range{Min: v[0], Max: v[1]},
		Y: common.Range{Min: v[2], Max: v[3]},
		Z: common.Range{Min: v[4], Max: v[5]},
	}
	c.setPanBounds(bounds)
	if err := storage.SaveBounds(c.ctx.Storage, bounds); err != nil {
		return fmt.Errorf("save pan bounds: %w", err)
	}
	return nil
}

func (c *controlsImpl) DeletePanBounds() error {
	c.ctrl.ClearPanBounds()
	c.removePanBox()
	if err := storage.DeleteBounds(c.ctx.Storage); err != nil {
		return fmt.Errorf("delete pan bounds: %w", err)
	}
	return nil
}

func (c *controlsImpl) ToggleHelpers() {
	c.helpersVisible = !c.helpersVisible
	if c.helpers.PanBounds != 0 {
		c.ctx.Scene.ToggleVisible(c.helpers.PanBounds)
	}
	c.ctx.Scene.ToggleVisible(c.helpers.CamHelpers)
	c.ctx.Scene.ToggleVisible(c.helpers.Axes)
}

func (c *controlsImpl) ToggleEditorMode() viewpoint.Mode {
	mode := c.store.NextMode()
	c.applyMode()
	return mode
}

func (c *controlsImpl) EnablePan() {
	c.ctrl.SetPanEnabled(true)
}

func (c *controlsImpl) DisablePan() {
	c.ctrl.SetPanEnabled(false)
}

func (c *controlsImpl) SetPolarAngles(minDegrees, maxDegrees float32) {
	c.ctrl.SetPolarBounds(minDegrees*common.DegToRad, maxDegrees*common.DegToRad)
}

func (c *controlsImpl) SetAzimuthAngles(degrees float32) {
	if degrees >= 360 {
		c.ctrl.SetAzimuthWindow(math32.Inf(-1), math32.Inf(1))
		return
	}
	half := degrees / 2 * common.DegToRad
	c.ctrl.SetAzimuthWindow(math32.Pi/2-half, math32.Pi/2+half)
}

func (c *controlsImpl) Animator() camera.Animator {
	return c.animator
}

func (c *controlsImpl) Store() viewpoint.Store {
	return c.store
}

func (c *controlsImpl) Helpers() Helpers {
	return c.helpers
}
