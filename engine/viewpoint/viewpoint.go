package viewpoint

import (
	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
)

// Offset between a new viewpoint and the last one when Add is called without coordinates.
var AddOffset = common.P3(0, 150, 0)

// Coordinates used by Add on an empty store, before AddOffset is applied.
var (
	FirstPosition = common.P3(600, -400, 1850)
	FirstTarget   = common.P3(400, -400, 1850)
)

// Viewpoint is a saved camera placement: where the camera sits and what it looks at.
type Viewpoint struct {
	Name     string
	Position common.Point3
	Target   common.Point3

	// Markers is the scene handle of the marker group drawn for this viewpoint.
	Markers scene.NodeID
}

// MarkerSink draws the markers of each viewpoint. scene.Scene satisfies it.
type MarkerSink interface {
	AttachMarkers(name string, position, target common.Point3, active bool) scene.NodeID
	UpdateMarkers(id scene.NodeID, position, target common.Point3)
	SetMarkersActive(id scene.NodeID, active bool)
	DetachMarkers(id scene.NodeID)
}

type nopSink struct{}

func (nopSink) AttachMarkers(string, common.Point3, common.Point3, bool) scene.NodeID { return 0 }
func (nopSink) UpdateMarkers(scene.NodeID, common.Point3, common.Point3)            {}
func (nopSink) SetMarkersActive(scene.NodeID, bool)                                 {}
func (nopSink) DetachMarkers(scene.NodeID)                                          {}

// Defaults are the viewpoints seeded by LoadDefaults.
func Defaults() []Viewpoint {
	return []Viewpoint{
		{Position: common.P3(600, -250, 1850), Target: common.P3(400, -250, 1850)},
		{Position: common.P3(600, 400, 1350), Target: common.P3(400, 400, 1350)},
		{Position: common.P3(-600, -200, 1350), Target: common.P3(-400, -150, 1350)},
	}
}
