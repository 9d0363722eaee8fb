package scene

import "github.com/Carmen-Shannon/oxy-bookcase/common"

// Marker geometry of a viewpoint.
const (
	MarkerSphereRadius = 50
	MarkerCubeSize     = 32
)

var (
	// MarkerDefaultColor is used for the markers of every viewpoint except the current one.
	MarkerDefaultColor = common.ColorRed
	// MarkerActiveColor is used for the markers of the current viewpoint.
	MarkerActiveColor = common.ColorYellow
	// MarkerLineColor is used for the line joining position and target.
	MarkerLineColor = common.ColorBlack
)

type markerParts struct {
	position NodeID
	target   NodeID
	line     NodeID
}

func markerColor(active bool) common.Color {
	if active {
		return MarkerActiveColor
	}
	return MarkerDefaultColor
}

func (s *scene) AttachMarkers(name string, position, target common.Point3, active bool) NodeID {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := markerColor(active)
	group := s.add(Node{Name: name, Parent: s.markerParent, Kind: KindGroup, Visible: true})
	parts := markerParts{
		position: s.add(Node{
			Name: "pos helper", Parent: group, Kind: KindSphere, Visible: true,
			Color: color, Center: position, Radius: MarkerSphereRadius, Segments: 16,
		}),
		target: s.add(Node{
			Name: "target helper", Parent: group, Kind: KindBox, Visible: true,
			Color: color, Center: target, Size: common.P3(MarkerCubeSize, MarkerCubeSize, MarkerCubeSize),
		}),
		line: s.add(Node{
			Name: "dir helper", Parent: group, Kind: KindPolyline, Visible: true,
			Color: MarkerLineColor, Points: []common.Point3{position, target},
		}),
	}
	s.markers[group] = parts
	return group
}

func (s *scene) UpdateMarkers(id NodeID, position, target common.Point3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts, ok := s.markers[id]
	if !ok {
		return
	}
	s.nodes[parts.position].Center = position
	s.nodes[parts.target].Center = target
	s.nodes[parts.line].Points = []common.Point3{position, target}
}

func (s *scene) SetMarkersActive(id NodeID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts, ok := s.markers[id]
	if !ok {
		return
	}
	color := markerColor(active)
	s.nodes[parts.position].Color = color
	s.nodes[parts.target].Color = color
}

func (s *scene) DetachMarkers(id NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markers[id]; !ok {
		return
	}
	s.remove(id)
}

func (s *scene) SetMarkerParent(id NodeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markerParent = id
}
