package controls

import (
	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/path"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
)

// Names of the helper nodes.
const (
	CamHelpersName = "Cam Helpers"
	OrbitName      = "orbit helper"
	PathName       = "path helper"
	AxesName       = "axes helper"
	PanBoundsName  = "CAM_BOUNDS"
	EditorName     = "Positions Editor Group"
)

func (c *controlsImpl) buildHelpers() {
	sc := c.ctx.Scene

	c.helpers.CamHelpers = sc.Add(scene.Node{Name: CamHelpersName, Kind: scene.KindGroup, Visible: true})
	if c.ctx.Orbit != nil {
		c.helpers.Orbit = sc.Add(scene.Node{
			Name:     OrbitName,
			Parent:   c.helpers.CamHelpers,
			Kind:     scene.KindCylinder,
			Color:    common.ColorOrbit,
			Visible:  true,
			Center:   common.P3(0, 0, c.orbitCenterZ),
			Radius:   c.ctx.Orbit.Radius(),
			Height:   c.orbitHeight,
			Segments: 64,
		})
	}
	c.helpers.Axes = sc.Add(scene.Node{Name: AxesName, Kind: scene.KindAxes, Visible: true, Radius: c.axesLength})

	c.helpers.Editor = sc.Add(scene.Node{Name: EditorName, Kind: scene.KindGroup, Visible: true})
	sc.SetMarkerParent(c.helpers.Editor)
}

// showPath replaces the path preview with one for p: the sampled curve and a small cube on every control point.
func (c *controlsImpl) showPath(p path.CameraPath) {
	sc := c.ctx.Scene
	if c.helpers.Path != 0 {
		sc.Remove(c.helpers.Path)
	}

	visible := c.store != nil && c.store.Mode().ShowsPath()
	c.helpers.Path = sc.Add(scene.Node{Name: PathName, Parent: c.helpers.CamHelpers, Kind: scene.KindGroup, Visible: visible})
	sc.Add(scene.Node{
		Name:    "path line",
		Parent:  c.helpers.Path,
		Kind:    scene.KindPolyline,
		Color:   common.ColorRed,
		Visible: true,
		Points:  p.Samples(),
	})
	size := common.P3(c.pathPointSize, c.pathPointSize, c.pathPointSize)
	for _, cp := range p.ControlPoints() {
		sc.Add(scene.Node{
			Name:    "path point",
			Parent:  c.helpers.Path,
			Kind:    scene.KindBox,
			Color:   common.ColorBlack,
			Visible: true,
			Center:  cp,
			Size:    size,
		})
	}
}

// applyMode shows the editor geometry the current mode calls for.
func (c *controlsImpl) applyMode() {
	mode := c.store.Mode()
	c.ctx.Scene.SetVisible(c.helpers.Editor, mode.ShowsMarkers())
	if c.helpers.Path != 0 {
		c.ctx.Scene.SetVisible(c.helpers.Path, mode.ShowsPath())
	}
}

// setPanBounds applies bounds to the controller and redraws their box. A new box follows the current helper
// visibility.
func (c *controlsImpl) setPanBounds(bounds common.Bounds) {
	c.ctrl.SetPanBounds(bounds)
	c.removePanBox()
	c.helpers.PanBounds = c.ctx.Scene.Add(scene.Node{
		Name:    PanBoundsName,
		Kind:    scene.KindBox,
		Color:   common.ColorPanBounds,
		Visible: c.helpersVisible,
		Center:  bounds.Center(),
		Size:    bounds.Size(),
	})
}

func (c *controlsImpl) removePanBox() {
	if c.helpers.PanBounds == 0 {
		return
	}
	c.ctx.Scene.Remove(c.helpers.PanBounds)
	c.helpers.PanBounds = 0
}
