package path

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/chewxy/math32"
)

// CurveType selects how a CameraPath parameterises the segments between its control points.
type CurveType string

const (
	// CurveCatmullRom is the uniform Catmull-Rom spline, shaped by the path tension.
	CurveCatmullRom CurveType = "catmullrom"
	// CurveCentripetal weights each segment by the fourth root of its squared chord length.
	CurveCentripetal CurveType = "centripetal"
	// CurveChordal weights each segment by its chord length.
	CurveChordal CurveType = "chordal"
)

// Valid reports whether t names a supported curve type.
func (t CurveType) Valid() bool {
	switch t {
	case CurveCatmullRom, CurveCentripetal, CurveChordal:
		return true
	}
	return false
}

const (
	// DefaultPrecision is the number of visualisation samples per segment.
	DefaultPrecision = 50
	// DefaultTension is the tangent scale of the uniform Catmull-Rom spline.
	DefaultTension = 0.5
	// DefaultArcLengthDivisions is the resolution of the table PointAt uses to walk the curve by arc length.
	DefaultArcLengthDivisions = 200
)

// ErrTooFewPoints is returned when a path is built from fewer than two control points.
var ErrTooFewPoints = errors.New("camera path needs at least two control points")

type cameraPathImpl struct {
	points    []common.Point3
	curveType CurveType
	tension   float32
	precision int
	divisions int

	arcLengths []float32
}

// CameraPath is a smooth open curve interpolating an ordered list of control points.
// The curve passes through every control point in order. A CameraPath is immutable once built.
type CameraPath interface {
	// Point returns the curve point at parameter t, where every segment spans an equal share of [0, 1].
	// t is clamped to [0, 1]. Point(0) and Point(1) are the first and last control points exactly.
	//
	// Parameters:
	//   - t: curve parameter
	//
	// Returns:
	//   - common.Point3: the point on the curve
	Point(t float32) common.Point3

	// PointAt returns the curve point at normalized arc length u. Equal steps of u cover roughly
	// equal distances along the curve. u is clamped to [0, 1]. PointAt(0) and PointAt(1) are the
	// first and last control points exactly.
	//
	// Parameters:
	//   - u: fraction of the curve length
	//
	// Returns:
	//   - common.Point3: the point on the curve
	PointAt(u float32) common.Point3

	// Points samples the curve at divisions+1 evenly spaced parameters, endpoints included.
	//
	// Parameters:
	//   - divisions: number of intervals to sample
	//
	// Returns:
	//   - []common.Point3: the sampled points
	Points(divisions int) []common.Point3

	// Samples returns the visualisation polyline of the curve: precision × (control points - 1)
	// intervals, endpoints included.
	//
	// Returns:
	//   - []common.Point3: the sampled points
	Samples() []common.Point3

	// Length returns the approximate arc length of the curve.
	//
	// Returns:
	//   - float32: length in world units
	Length() float32

	// ControlPoints returns a copy of the points the curve interpolates.
	//
	// Returns:
	//   - []common.Point3: the control points in order
	ControlPoints() []common.Point3

	// CurveType returns the parameterisation of the curve.
	//
	// Returns:
	//   - CurveType: the curve type
	CurveType() CurveType

	// Precision returns the number of visualisation samples per segment.
	//
	// Returns:
	//   - int: samples per segment
	Precision() int
}

var _ CameraPath = &cameraPathImpl{}

// NewCameraPath builds a curve through the given control points.
// Unknown curve types fall back to CurveCatmullRom.
//
// Parameters:
//   - points: the control points, at least two
//   - options: functional options to configure the curve
//
// Returns:
//   - CameraPath: the built curve
//   - error: ErrTooFewPoints if fewer than two points were given
func NewCameraPath(points []common.Point3, options ...CameraPathBuilderOption) (CameraPath, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	p := &cameraPathImpl{
		points:    append([]common.Point3(nil), points...),
		curveType: CurveCatmullRom,
		tension:   DefaultTension,
		precision: DefaultPrecision,
		divisions: DefaultArcLengthDivisions,
	}
	for _, option := range options {
		option(p)
	}
	if !p.curveType.Valid() {
		p.curveType = CurveCatmullRom
	}

	p.buildArcLengths()
	return p, nil
}

func (p *cameraPathImpl) Point(t float32) common.Point3 {
	n := len(p.points)
	if t <= 0 {
		return p.points[0]
	}
	if t >= 1 {
		return p.points[n-1]
	}

	scaled := float32(n-1) * t
	seg := int(math32.Floor(scaled))
	weight := scaled - float32(seg)
	if seg >= n-1 {
		seg = n - 2
		weight = 1
	}

	var p0, p3 common.Point3
	p1 := p.points[seg]
	p2 := p.points[seg+1]
	if seg > 0 {
		p0 = p.points[seg-1]
	} else {
		p0 = p.points[0].Add(p.points[0].Sub(p.points[1]))
	}
	if seg+2 < n {
		p3 = p.points[seg+2]
	} else {
		p3 = p.points[n-1].Add(p.points[n-1].Sub(p.points[n-2]))
	}

	var px, py, pz cubicPoly
	if p.curveType == CurveCatmullRom {
		px.initCatmullRom(p0.X, p1.X, p2.X, p3.X, p.tension)
		py.initCatmullRom(p0.Y, p1.Y, p2.Y, p3.Y, p.tension)
		pz.initCatmullRom(p0.Z, p1.Z, p2.Z, p3.Z, p.tension)
	} else {
		exp := float32(0.25)
		if p.curveType == CurveChordal {
			exp = 0.5
		}
		dt0 := math32.Pow(p0.Sub(p1).LengthSq(), exp)
		dt1 := math32.Pow(p1.Sub(p2).LengthSq(), exp)
		dt2 := math32.Pow(p2.Sub(p3).LengthSq(), exp)
		// coincident points would divide by zero
		if dt1 < 1e-4 {
			dt1 = 1
		}
		if dt0 < 1e-4 {
			dt0 = dt1
		}
		if dt2 < 1e-4 {
			dt2 = dt1
		}
		px.initNonuniform(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2)
		py.initNonuniform(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2)
		pz.initNonuniform(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2)
	}

	return common.Point3{X: px.calc(weight), Y: py.calc(weight), Z: pz.calc(weight)}
}

func (p *cameraPathImpl) PointAt(u float32) common.Point3 {
	if u <= 0 {
		return p.points[0]
	}
	if u >= 1 {
		return p.points[len(p.points)-1]
	}
	return p.Point(p.uToT(u))
}

func (p *cameraPathImpl) Points(divisions int) []common.Point3 {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]common.Point3, divisions+1)
	for d := 0; d <= divisions; d++ {
		out[d] = p.Point(float32(d) / float32(divisions))
	}
	return out
}

func (p *cameraPathImpl) Samples() []common.Point3 {
	return p.Points(p.precision * (len(p.points) - 1))
}

func (p *cameraPathImpl) Length() float32 {
	return p.arcLengths[len(p.arcLengths)-1]
}

func (p *cameraPathImpl) ControlPoints() []common.Point3 {
	return append([]common.Point3(nil), p.points...)
}

func (p *cameraPathImpl) CurveType() CurveType {
	return p.curveType
}

func (p *cameraPathImpl) Precision() int {
	return p.precision
}

// buildArcLengths fills the cumulative length table sampled at divisions+1 evenly spaced parameters.
func (p *cameraPathImpl) buildArcLengths() {
	p.arcLengths = make([]float32, p.divisions+1)
	last := p.Point(0)
	var sum float32
	for d := 1; d <= p.divisions; d++ {
		cur := p.Point(float32(d) / float32(p.divisions))
		sum += cur.DistanceTo(last)
		p.arcLengths[d] = sum
		last = cur
	}
}

// uToT maps a normalized arc length onto the curve parameter by binary search over the length table.
func (p *cameraPathImpl) uToT(u float32) float32 {
	lengths := p.arcLengths
	il := len(lengths)
	total := lengths[il-1]
	if total == 0 {
		return u
	}
	target := u * total

	low, high := 0, il-1
	for low <= high {
		i := low + (high-low)/2
		cmp := lengths[i] - target
		if cmp < 0 {
			low = i + 1
		} else if cmp > 0 {
			high = i - 1
		} else {
			high = i
			break
		}
	}
	i := high
	if i < 0 {
		i = 0
	}
	if lengths[i] == target || i >= il-1 {
		return float32(i) / float32(il-1)
	}

	before := lengths[i]
	segment := lengths[i+1] - before
	if segment == 0 {
		return float32(i) / float32(il-1)
	}
	return (float32(i) + (target-before)/segment) / float32(il-1)
}

// cubicPoly evaluates c0 + c1·t + c2·t² + c3·t³ for one axis of one segment.
type cubicPoly struct {
	c0, c1, c2, c3 float32
}

// init sets up a Hermite segment from x0 to x1 with tangents t0 and t1.
func (c *cubicPoly) init(x0, x1, t0, t1 float32) {
	c.c0 = x0
	c.c1 = t0
	c.c2 = -3*x0 + 3*x1 - 2*t0 - t1
	c.c3 = 2*x0 - 2*x1 + t0 + t1
}

func (c *cubicPoly) initCatmullRom(x0, x1, x2, x3, tension float32) {
	c.init(x1, x2, tension*(x2-x0), tension*(x3-x1))
}

func (c *cubicPoly) initNonuniform(x0, x1, x2, x3, dt0, dt1, dt2 float32) {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2
	c.init(x1, x2, t1*dt1, t2*dt1)
}

func (c *cubicPoly) calc(t float32) float32 {
	t2 := t * t
	return c.c0 + c.c1*t + c.c2*t2 + c.c3*t2*t
}
