package viewpoint

// Mode is the editor display mode. It decides which editor helpers the viewer draws.
type Mode string

const (
	// ModeHidden draws no editor helpers.
	ModeHidden Mode = "hidden"
	// ModePositions draws the viewpoint markers.
	ModePositions Mode = "positions"
	// ModeEditor draws the viewpoint markers and the preview of the last camera path.
	ModeEditor Mode = "editor"
)

// DefaultModes is the cycle NextMode walks unless WithModes replaces it.
var DefaultModes = []Mode{ModePositions, ModeEditor}

// ShowsMarkers reports whether viewpoint markers are drawn in this mode.
func (m Mode) ShowsMarkers() bool {
	return m == ModePositions || m == ModeEditor
}

// ShowsPath reports whether the camera path preview is drawn in this mode.
func (m Mode) ShowsPath() bool {
	return m == ModeEditor
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeHidden, ModePositions, ModeEditor:
		return true
	}
	return false
}
