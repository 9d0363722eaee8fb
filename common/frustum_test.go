package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookingDownY(t *testing.T) Frustum {
	t.Helper()
	var view, proj, vp [16]float32
	LookAt(view[:], P3(0, -100, 0), P3(0, 0, 0), P3(0, 0, 1))
	Perspective(proj[:], 60*DegToRad, 1, 1, 1000)
	Mul4(vp[:], proj[:], view[:])
	return ExtractFrustumFromMatrix(vp[:])
}

func cube(c Point3, half float32) Bounds {
	return Bounds{
		X: Range{Min: c.X - half, Max: c.X + half},
		Y: Range{Min: c.Y - half, Max: c.Y + half},
		Z: Range{Min: c.Z - half, Max: c.Z + half},
	}
}

func TestFrustumIntersectsBounds(t *testing.T) {
	f := lookingDownY(t)

	tests := []struct {
		name string
		box  Bounds
		want bool
	}{
		{"at target", cube(P3(0, 0, 0), 5), true},
		{"straddles near plane", cube(P3(0, -99, 0), 5), true},
		{"behind camera", cube(P3(0, -200, 0), 5), false},
		{"beyond far plane", cube(P3(0, 2000, 0), 5), false},
		{"far to the right", cube(P3(1000, 0, 0), 5), false},
		{"far below", cube(P3(0, 0, -1000), 5), false},
		{"encloses camera", cube(P3(0, -100, 0), 5000), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IntersectsBounds(tt.box))
		})
	}
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	for i, p := range lookingDownY(t).Planes {
		l := p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]
		assert.InDelta(t, 1, l, 1e-4, "plane %d", i)
	}
}
