package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func assertPoint(t *testing.T, want, got common.Point3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

func newViewerController(options ...CameraControllerOption) CameraController {
	base := []CameraControllerOption{
		WithPosition(common.P3(3200, 1700, 2400)),
		WithTarget(common.P3(0, 0, 1000)),
	}
	return NewCameraController(append(base, options...)...)
}

func TestControllerKeepsGivenPosition(t *testing.T) {
	cc := newViewerController()
	assert.Equal(t, common.P3(3200, 1700, 2400), cc.Position())
	assert.Equal(t, common.P3(0, 0, 1000), cc.Target())
	assert.InDelta(t, common.P3(3200, 1700, 1400).Length(), cc.Radius(), 0.01)
	assert.InDelta(t, math32.Atan2(1700, 3200), cc.Azimuth(), 1e-5)
}

func TestControllerSphericalConstruction(t *testing.T) {
	cc := NewCameraController(
		WithTarget(common.P3(0, 0, 0)),
		WithRadius(10),
		WithAzimuth(math32.Pi/2),
		WithElevation(0),
	)
	assertPoint(t, common.P3(0, 10, 0), cc.Position(), 1e-4)
}

func TestZoomClampsToDistanceBounds(t *testing.T) {
	cc := newViewerController(WithZoomSpeed(1))
	cc.SetDistanceBounds(1000, 3000)
	assert.Equal(t, float32(3000), cc.Radius(), "current radius is clamped when bounds are set")
	assert.InDelta(t, 3000, cc.Position().DistanceTo(cc.Target()), 0.05)

	cc.Zoom(5000)
	assert.Equal(t, float32(1000), cc.Radius())
	cc.Zoom(-1e6)
	assert.Equal(t, float32(3000), cc.Radius())

	cc.SetDistanceBounds(500, 200)
	assert.Equal(t, common.Range{Min: 200, Max: 500}, cc.DistanceBounds())

	cc.ClearDistanceBounds()
	cc.SetRadius(1e5)
	assert.Equal(t, float32(1e5), cc.Radius())
}

func TestPolarBoundsLimitElevation(t *testing.T) {
	cc := newViewerController(WithOrbitSpeed(0.5))
	cc.SetPolarBounds(math32.Pi/4, math32.Pi/2)
	for range 10 {
		cc.OrbitUp()
	}
	assert.InDelta(t, math32.Pi/4, cc.Elevation(), 1e-5)
	for range 10 {
		cc.OrbitDown()
	}
	assert.InDelta(t, 0, cc.Elevation(), 1e-5)
	assert.InDelta(t, cc.Target().Z, cc.Position().Z, 0.01)

	cc.SetPolarBounds(-1, 7)
	assert.Equal(t, common.Range{Min: 0, Max: math32.Pi}, cc.PolarBounds())
	cc.SetElevation(math32.Pi)
	assert.Less(t, cc.Elevation(), math32.Pi/2, "never reaches the pole")
}

func TestAzimuthWindow(t *testing.T) {
	cc := NewCameraController(WithTarget(common.P3(0, 0, 0)), WithRadius(100), WithAzimuth(0), WithOrbitSpeed(0.2))

	// a 90° window centred on +Y
	cc.SetAzimuthWindow(math32.Pi/2-math32.Pi/4, math32.Pi/2+math32.Pi/4)
	assert.InDelta(t, math32.Pi/4, cc.Azimuth(), 1e-5)

	for range 20 {
		cc.OrbitRight()
	}
	assert.InDelta(t, 3*math32.Pi/4, cc.Azimuth(), 1e-5)

	// outside the window snaps to the angularly nearer bound
	cc.SetAzimuth(0.1)
	assert.InDelta(t, math32.Pi/4, cc.Azimuth(), 1e-5)

	// equivalent angle inside the window is accepted
	cc.SetAzimuthWindow(math32.Pi/2, 3*math32.Pi/2)
	cc.SetAzimuth(-3 * math32.Pi / 4)
	assert.InDelta(t, 5*math32.Pi/4, cc.Azimuth(), 1e-5)
}

func TestPanMovesTargetAndCamera(t *testing.T) {
	cc := NewCameraController(
		WithPosition(common.P3(0, -100, 0)),
		WithTarget(common.P3(0, 0, 0)),
		WithPanSpeed(1),
	)

	cc.PanRight(10)
	assertPoint(t, common.P3(10, 0, 0), cc.Target(), 1e-4)
	assertPoint(t, common.P3(10, -100, 0), cc.Position(), 1e-4)

	cc.PanUp(5)
	assertPoint(t, common.P3(10, 0, 5), cc.Target(), 1e-4)

	cc.PanForward(20)
	assertPoint(t, common.P3(10, 20, 5), cc.Target(), 1e-4)
	assertPoint(t, common.P3(10, -80, 5), cc.Position(), 1e-4)
}

func TestPanDisabled(t *testing.T) {
	cc := newViewerController(WithPanEnabled(false))
	before := cc.Target()
	cc.PanRight(100)
	cc.PanUp(100)
	assert.Equal(t, before, cc.Target())
	assert.False(t, cc.PanEnabled())

	cc.SetPanEnabled(true)
	cc.PanRight(100)
	assert.NotEqual(t, before, cc.Target())
}

func TestPanBoundsConfineTarget(t *testing.T) {
	bounds := common.Bounds{
		X: common.Range{Min: -50, Max: 50},
		Y: common.Range{Min: -50, Max: 50},
		Z: common.Range{Min: 0, Max: 100},
	}
	cc := NewCameraController(
		WithPosition(common.P3(0, -100, 10)),
		WithTarget(common.P3(0, 0, 10)),
		WithPanSpeed(1),
		WithPanBounds(bounds),
	)

	cc.PanRight(500)
	assertPoint(t, common.P3(50, 0, 10), cc.Target(), 1e-4)
	assertPoint(t, common.P3(50, -100, 10), cc.Position(), 1e-4)

	got, ok := cc.PanBounds()
	assert.True(t, ok)
	assert.Equal(t, bounds, got)

	cc.SetTarget(common.P3(1000, 1000, -5))
	assert.Equal(t, common.P3(50, 50, 0), cc.Target())

	cc.ClearPanBounds()
	_, ok = cc.PanBounds()
	assert.False(t, ok)
	cc.SetTarget(common.P3(1000, 0, 0))
	assert.Equal(t, common.P3(1000, 0, 0), cc.Target())
}

func TestSetPanBoundsClampsCurrentTarget(t *testing.T) {
	cc := NewCameraController(WithPosition(common.P3(0, -100, 500)), WithTarget(common.P3(0, 0, 500)))
	cc.SetPanBounds(common.Bounds{Z: common.Range{Min: 0, Max: 100}})
	assert.Equal(t, common.P3(0, 0, 100), cc.Target())
	assert.Equal(t, common.P3(0, -100, 100), cc.Position())
}

func TestSetViewIgnoresConstraints(t *testing.T) {
	cc := newViewerController(WithDistanceBounds(10, 20))
	cc.SetView(common.P3(5000, 0, 0), common.P3(0, 0, 0))
	assert.Equal(t, common.P3(5000, 0, 0), cc.Position())
	assert.Equal(t, float32(5000), cc.Radius())
}

func TestRotateUsesSensitivity(t *testing.T) {
	cc := NewCameraController(WithTarget(common.P3(0, 0, 0)), WithRadius(10), WithAzimuth(0), WithElevation(0), WithMouseSensitivity(0.01))
	cc.Rotate(-100, 50)
	assert.InDelta(t, 1, cc.Azimuth(), 1e-5)
	assert.InDelta(t, 0.5, cc.Elevation(), 1e-5)
	assert.Equal(t, float32(0.01), cc.MouseSensitivity())
}
