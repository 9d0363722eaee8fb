package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(m [16]float32, p common.Point3) (x, y, z, w float32) {
	x = m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y = m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z = m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w = m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	return
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, common.P3(0, 0, 1), c.Up())
	assert.InDelta(t, 45*common.DegToRad, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(40000), c.Far())
	assert.Nil(t, c.Controller())

	// no controller leaves identity matrices
	vm := c.ViewMatrix()
	assert.Equal(t, float32(1), vm[0])
	assert.Equal(t, float32(1), vm[15])
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	ctrl := NewCameraController(WithPosition(common.P3(0, -10, 0)), WithTarget(common.P3(0, 0, 0)))
	c := NewCamera(WithController(ctrl), WithAspect(2))

	x, y, z, w := transform(c.ViewMatrix(), common.P3(0, 0, 0))
	assert.InDelta(t, 0, x, 1e-5)
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, -10, z, 1e-5)
	assert.Equal(t, float32(1), w)

	// world up stays screen up
	_, y, _, _ = transform(c.ViewMatrix(), common.P3(0, 0, 5))
	assert.InDelta(t, 5, y, 1e-5)

	// the target projects to the centre of the screen, inside the depth range
	x, y, z, w = transform(c.ViewProjectionMatrix(), common.P3(0, 0, 0))
	require.Greater(t, w, float32(0))
	assert.InDelta(t, 0, x/w, 1e-5)
	assert.InDelta(t, 0, y/w, 1e-5)
	assert.Greater(t, z/w, float32(0))
	assert.Less(t, z/w, float32(1))
}

func TestUpdateFollowsController(t *testing.T) {
	ctrl := NewCameraController(WithPosition(common.P3(0, -10, 0)), WithTarget(common.P3(0, 0, 0)))
	c := NewCamera(WithController(ctrl))
	before := c.ViewMatrix()

	ctrl.SetView(common.P3(10, 0, 0), common.P3(0, 0, 0))
	assert.Equal(t, before, c.ViewMatrix(), "matrices only change on Update")

	c.Update()
	assert.NotEqual(t, before, c.ViewMatrix())
	_, _, z, _ := transform(c.ViewMatrix(), common.P3(0, 0, 0))
	assert.InDelta(t, -10, z, 1e-5)
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(1.5))
	c.SetAspect(0)
	c.SetAspect(-2)
	assert.Equal(t, float32(1.5), c.Aspect())
	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
}

func TestUniform(t *testing.T) {
	ctrl := NewCameraController(WithPosition(common.P3(1, 2, 3)), WithTarget(common.P3(0, 0, 0)))
	c := NewCamera(WithController(ctrl))

	u := c.Uniform()
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)
	assert.Equal(t, GPUCameraUniformSize, u.Size())
	assert.Len(t, u.Marshal(), GPUCameraUniformSize)
	assert.Contains(t, GPUCameraUniformSource, "view_proj")
	assert.Contains(t, GPUCameraUniformSource, "fn camera_fog")
}

func TestUniformCarriesFog(t *testing.T) {
	c := NewCamera(WithFog(20000, 40000, common.Color{1, 0.5, 0.25, 1}))
	u := c.Uniform()
	assert.Equal(t, float32(20000), u.FogStart)
	assert.Equal(t, float32(40000), u.FogEnd)
	assert.Equal(t, [3]float32{1, 0.5, 0.25}, u.FogColor)

	buf := u.Marshal()
	word := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])) }
	// eye occupies words 16..18, fog start closes that row
	assert.Equal(t, float32(20000), word(19))
	assert.Equal(t, float32(0.5), word(21))
	assert.Equal(t, float32(40000), word(23))
}

func TestBuilderIgnoresInvalidRanges(t *testing.T) {
	c := NewCamera(WithFovDegrees(0), WithClipRange(10, 5))
	assert.InDelta(t, 45*common.DegToRad, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(40000), c.Far())

	c = NewCamera(WithFovDegrees(60), WithClipRange(1, 100))
	assert.InDelta(t, 60*common.DegToRad, c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Near())
	assert.Equal(t, float32(100), c.Far())
}
