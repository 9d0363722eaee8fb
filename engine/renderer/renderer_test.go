package renderer

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFloat(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestMarshalLineVertices(t *testing.T) {
	vertices := []common.LineVertex{
		{Position: [3]float32{1, 2, 3}, Color: common.Color{0.1, 0.2, 0.3, 1}},
		{Position: [3]float32{-4, 5, -6}, Color: common.ColorRed},
	}

	buf := MarshalLineVertices(vertices)
	require.Len(t, buf, 2*LineVertexStride)

	assert.Equal(t, float32(1), readFloat(buf, 0))
	assert.Equal(t, float32(2), readFloat(buf, 4))
	assert.Equal(t, float32(3), readFloat(buf, 8))
	assert.Equal(t, float32(0.1), readFloat(buf, 12))
	assert.Equal(t, float32(1), readFloat(buf, 24))

	second := LineVertexStride
	assert.Equal(t, float32(-4), readFloat(buf, second))
	assert.Equal(t, float32(-6), readFloat(buf, second+8))
	assert.Equal(t, float32(1), readFloat(buf, second+12))
	assert.Equal(t, float32(0), readFloat(buf, second+16))
}

func TestMarshalLineVerticesEmpty(t *testing.T) {
	assert.Empty(t, MarshalLineVertices(nil))
}

func TestLineShaderSource(t *testing.T) {
	src := LineShaderSource()
	assert.Contains(t, src, "struct CameraUniform")
	assert.Contains(t, src, "fn vs_main")
	assert.Contains(t, src, "fn fs_main")
	assert.Less(t, strings.Index(src, "struct CameraUniform"), strings.Index(src, "var<uniform> camera"))
	assert.Contains(t, src, "camera_fog(in.world_position, in.color)")
}

func TestViewportAspect(t *testing.T) {
	assert.Equal(t, float32(2), Viewport{Width: 200, Height: 100}.Aspect())
	assert.Equal(t, float32(1), Viewport{}.Aspect())
}
