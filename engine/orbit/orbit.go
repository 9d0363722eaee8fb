package orbit

import (
	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/chewxy/math32"
)

// DefaultStepAngle is the approximate angular distance between two consecutive orbit waypoints.
const DefaultStepAngle = 30 * common.DegToRad

// DefaultInnerFactor pulls the first and last waypoint of an orbit swing slightly inside the ring.
const DefaultInnerFactor = 0.9

// Orbit describes a fixed-radius horizontal circle centered at the scene origin.
// Camera moves are anchored to this ring: a move that starts inside the ring swings along it
// in roughly equal angular steps before descending to the destination.
// The radius is fixed for the lifetime of the Orbit.
type Orbit interface {
	// Radius returns the orbit radius.
	//
	// Returns:
	//   - float32: the radius in world units
	Radius() float32

	// StepAngle returns the approximate angular step used by StepAngles.
	//
	// Returns:
	//   - float32: step in radians
	StepAngle() float32

	// AngleOf returns the bearing of p around the vertical axis, atan2(p.Y, p.X). Z is ignored.
	//
	// Parameters:
	//   - p: the point to measure
	//
	// Returns:
	//   - float32: bearing in radians within (-π, π]
	AngleOf(p common.Point3) float32

	// IsInside reports whether the horizontal distance of p from the origin is at most the radius.
	//
	// Parameters:
	//   - p: the point to test
	//
	// Returns:
	//   - bool: true if p lies inside or on the ring
	IsInside(p common.Point3) bool

	// PointAt returns the point on the ring (scaled by radiusFactor) at the given bearing and height.
	//
	// Parameters:
	//   - angle: bearing in radians
	//   - z: height of the returned point
	//   - radiusFactor: multiplier applied to the radius (1 = on the ring)
	//
	// Returns:
	//   - common.Point3: (r·f·cos(angle), r·f·sin(angle), z)
	PointAt(angle, z, radiusFactor float32) common.Point3

	// StepAngles divides the span from startAngle to endAngle into equal steps of roughly StepAngle.
	// The result always holds at least two entries, starts at startAngle and ends exactly at endAngle.
	//
	// Parameters:
	//   - startAngle: first bearing in radians
	//   - endAngle: last bearing in radians
	//
	// Returns:
	//   - []float32: the bearings, inclusive of both ends
	StepAngles(startAngle, endAngle float32) []float32

	// WaypointsBetween returns the intermediate points a camera path from p1 to p2 passes through.
	// When p1 is inside the ring the path swings along it: a point just inside the ring at the
	// start bearing, one point on the ring per intermediate step with Z interpolated from p1.Z to
	// p2.Z, then a point just inside the ring at the end bearing. When p1 is outside the ring only
	// the end-bearing point is returned.
	//
	// Parameters:
	//   - p1: current camera position
	//   - p2: destination camera position
	//
	// Returns:
	//   - []common.Point3: waypoints in travel order, never empty
	WaypointsBetween(p1, p2 common.Point3) []common.Point3
}

type orbitImpl struct {
	radius      float32
	stepAngle   float32
	innerFactor float32
}

var _ Orbit = &orbitImpl{}

// NewOrbit creates an Orbit of the given radius.
//
// Parameters:
//   - radius: ring radius (must be > 0)
//   - options: functional options overriding the step angle or inner factor
//
// Returns:
//   - Orbit: the new orbit
func NewOrbit(radius float32, options ...OrbitBuilderOption) Orbit {
	if radius <= 0 {
		panic("orbit: NewOrbit requires a positive radius")
	}
	o := &orbitImpl{
		radius:      radius,
		stepAngle:   DefaultStepAngle,
		innerFactor: DefaultInnerFactor,
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

func (o *orbitImpl) Radius() float32 {
	return o.radius
}

func (o *orbitImpl) StepAngle() float32 {
	return o.stepAngle
}

func (o *orbitImpl) AngleOf(p common.Point3) float32 {
	return math32.Atan2(p.Y, p.X)
}

func (o *orbitImpl) IsInside(p common.Point3) bool {
	return p.HorizontalDistance() <= o.radius
}

func (o *orbitImpl) PointAt(angle, z, radiusFactor float32) common.Point3 {
	r := o.radius * radiusFactor
	return common.Point3{
		X: r * math32.Cos(angle),
		Y: r * math32.Sin(angle),
		Z: z,
	}
}

func (o *orbitImpl) StepAngles(startAngle, endAngle float32) []float32 {
	count := 1 + int(math32.Floor(math32.Abs(startAngle-endAngle)/o.stepAngle))
	step := (endAngle - startAngle) / float32(count)

	angles := make([]float32, count+1)
	for i := 0; i < count; i++ {
		angles[i] = startAngle + float32(i)*step
	}
	// pin the last entry so accumulated rounding never misses the destination bearing
	angles[count] = endAngle
	return angles
}

func (o *orbitImpl) WaypointsBetween(p1, p2 common.Point3) []common.Point3 {
	startAngle := o.AngleOf(p1)
	endAngle := o.AngleOf(p2)
	angles := o.StepAngles(startAngle, endAngle)

	var points []common.Point3
	if o.IsInside(p1) {
		points = make([]common.Point3, 0, len(angles))
		points = append(points, o.PointAt(startAngle, p1.Z, o.innerFactor))

		last := float32(len(angles) - 1)
		for i := 1; i < len(angles)-1; i++ {
			z := p1.Z + (p2.Z-p1.Z)*float32(i)/last
			points = append(points, o.PointAt(angles[i], z, 1))
		}
	}

	return append(points, o.PointAt(endAngle, p2.Z, o.innerFactor))
}
