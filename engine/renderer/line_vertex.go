package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/camera"
)

// LineVertexStride is the size in bytes of one packed line vertex: a vec3 position followed by a vec4 color.
const LineVertexStride = 7 * 4

//go:embed assets/lines.wgsl
var lineShaderBody string

// LineShaderSource returns the complete WGSL source of the line pipeline, with the camera uniform struct prepended.
//
// Returns:
//   - string: the shader source
func LineShaderSource() string {
	return camera.GPUCameraUniformSource + "\n" + lineShaderBody
}

// MarshalLineVertices packs vertices into the little-endian layout the line pipeline reads.
//
// Parameters:
//   - vertices: line vertices, consecutive pairs form segments
//
// Returns:
//   - []byte: the vertex buffer contents
func MarshalLineVertices(vertices []common.LineVertex) []byte {
	buf := make([]byte, len(vertices)*LineVertexStride)
	for i, v := range vertices {
		off := i * LineVertexStride
		for j := range 3 {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(v.Position[j]))
		}
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[off+12+j*4:], math.Float32bits(v.Color[j]))
		}
	}
	return buf
}
