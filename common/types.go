// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Point3 is a world-space coordinate. The scene is Z-up: X and Y span the floor plane.
// JSON field names match the layout stored by earlier versions of the viewer ({"x":..,"y":..,"z":..}).
type Point3 struct {
	X float32 `json:"x" mapstructure:"x"`
	Y float32 `json:"y" mapstructure:"y"`
	Z float32 `json:"z" mapstructure:"z"`
}

// P3 is shorthand for constructing a Point3.
func P3(x, y, z float32) Point3 {
	return Point3{X: x, Y: y, Z: z}
}

// Add returns p + o.
func (p Point3) Add(o Point3) Point3 {
	return Point3{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Sub returns p - o.
func (p Point3) Sub(o Point3) Point3 {
	return Point3{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Scale returns p multiplied by s.
func (p Point3) Scale(s float32) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Lerp linearly interpolates from p towards o by t. t = 0 returns p, t = 1 returns o exactly.
func (p Point3) Lerp(o Point3, t float32) Point3 {
	if t == 1 {
		return o
	}
	return Point3{
		p.X + (o.X-p.X)*t,
		p.Y + (o.Y-p.Y)*t,
		p.Z + (o.Z-p.Z)*t,
	}
}

// Length returns the euclidean length of p treated as a vector.
func (p Point3) Length() float32 {
	return math32.Sqrt(p.LengthSq())
}

// LengthSq returns the squared length of p treated as a vector.
func (p Point3) LengthSq() float32 {
	return p.X*p.X + p.Y*p.Y + p.Z*p.Z
}

// DistanceTo returns the euclidean distance between p and o.
func (p Point3) DistanceTo(o Point3) float32 {
	return p.Sub(o).Length()
}

// HorizontalDistance returns the distance of p from the vertical (Z) axis.
func (p Point3) HorizontalDistance() float32 {
	return math32.Sqrt(p.X*p.X + p.Y*p.Y)
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (p Point3) IsFinite() bool {
	for _, v := range [3]float32{p.X, p.Y, p.Z} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Array returns the point as a [3]float32, the layout used by GPU vertex data.
func (p Point3) Array() [3]float32 {
	return [3]float32{p.X, p.Y, p.Z}
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Range is a closed numeric interval.
type Range struct {
	Min float32 `json:"min" mapstructure:"min"`
	Max float32 `json:"max" mapstructure:"max"`
}

// Contains reports whether v lies within the range (inclusive).
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the range.
func (r Range) Clamp(v float32) float32 {
	return math32.Max(r.Min, math32.Min(r.Max, v))
}

// Center returns the midpoint of the range.
func (r Range) Center() float32 {
	return (r.Min + r.Max) / 2
}

// Size returns the width of the range.
func (r Range) Size() float32 {
	return r.Max - r.Min
}

// Bounds is an axis-aligned box. It is used for the camera pan boundaries, which constrain
// where the look target may be dragged.
type Bounds struct {
	X Range `json:"x" mapstructure:"x"`
	Y Range `json:"y" mapstructure:"y"`
	Z Range `json:"z" mapstructure:"z"`
}

// Clamp returns p limited to the box.
func (b Bounds) Clamp(p Point3) Point3 {
	return Point3{b.X.Clamp(p.X), b.Y.Clamp(p.Y), b.Z.Clamp(p.Z)}
}

// Contains reports whether p lies inside the box (inclusive).
func (b Bounds) Contains(p Point3) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y) && b.Z.Contains(p.Z)
}

// Center returns the box midpoint.
func (b Bounds) Center() Point3 {
	return Point3{b.X.Center(), b.Y.Center(), b.Z.Center()}
}

// Size returns the box extents along each axis.
func (b Bounds) Size() Point3 {
	return Point3{b.X.Size(), b.Y.Size(), b.Z.Size()}
}

// Color is a linear RGBA color used for helper geometry.
type Color [4]float32

// Colors used by helper geometry.
var (
	ColorBlack     = Color{0, 0, 0, 1}
	ColorRed       = Color{1, 0, 0, 1}
	ColorYellow    = Color{1, 1, 0, 1}
	ColorBookcase  = Color{0, 0x7b / 255.0, 1, 1}
	ColorAccent    = Color{1, 0xc1 / 255.0, 0x07 / 255.0, 1}
	ColorOrbit     = Color{1, 0, 0, 0.35}
	ColorPanBounds = Color{0, 0, 1, 0.35}
	ColorFloor     = Color{0.45, 0.45, 0.45, 1}
)

// LineVertex is one end of a line segment as uploaded to the line renderer. Pairs of vertices form segments.
type LineVertex struct {
	Position [3]float32
	Color    Color
}
