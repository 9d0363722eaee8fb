package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUCameraUniformSource declares the CameraUniform struct and the camera_fog helper.
// Shaders prepend it and bind a `camera` uniform of that type.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the byte size of CameraUniform: a mat4 followed by two vec3+f32 rows.
const GPUCameraUniformSize = 96

type fog struct {
	start, end float32
	color      [3]float32
}

// GPUCameraUniform is the per-frame camera state uploaded to the line pipeline.
type GPUCameraUniform struct {
	ViewProj       [16]float32
	CameraPosition [3]float32
	FogStart       float32
	FogColor       [3]float32
	FogEnd         float32
}

// Size returns GPUCameraUniformSize.
func (g *GPUCameraUniform) Size() int {
	return GPUCameraUniformSize
}

// Marshal packs the uniform little-endian in WGSL uniform layout.
//
// Returns:
//   - []byte: GPUCameraUniformSize bytes ready for a buffer write
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 0, GPUCameraUniformSize)
	put := func(vs ...float32) {
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	put(g.ViewProj[:]...)
	put(g.CameraPosition[:]...)
	put(g.FogStart)
	put(g.FogColor[:]...)
	put(g.FogEnd)
	return buf
}
