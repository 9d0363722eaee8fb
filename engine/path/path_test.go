package path

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orbitSwing = []common.Point3{
	{X: 2500, Y: 0, Z: 1000},
	{X: 2250, Y: 0, Z: 1000},
	{X: 2165, Y: -1250, Z: 1283},
	{X: 1250, Y: -2165, Z: 1566},
	{X: 0, Y: -2250, Z: 1850},
	{X: 0, Y: -2500, Z: 1850},
}

func TestNewCameraPathTooFewPoints(t *testing.T) {
	_, err := NewCameraPath(nil)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = NewCameraPath([]common.Point3{{X: 1}})
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestEndpointsAreExact(t *testing.T) {
	for _, ct := range []CurveType{CurveCatmullRom, CurveCentripetal, CurveChordal} {
		t.Run(string(ct), func(t *testing.T) {
			p, err := NewCameraPath(orbitSwing, WithCurveType(ct))
			require.NoError(t, err)

			assert.Equal(t, orbitSwing[0], p.PointAt(0))
			assert.Equal(t, orbitSwing[len(orbitSwing)-1], p.PointAt(1))
			assert.Equal(t, orbitSwing[0], p.Point(0))
			assert.Equal(t, orbitSwing[len(orbitSwing)-1], p.Point(1))
			assert.Equal(t, orbitSwing[0], p.PointAt(-0.5))
			assert.Equal(t, orbitSwing[len(orbitSwing)-1], p.PointAt(7))
		})
	}
}

func TestPassesThroughControlPoints(t *testing.T) {
	p, err := NewCameraPath(orbitSwing)
	require.NoError(t, err)

	segments := float32(len(orbitSwing) - 1)
	for i, cp := range orbitSwing {
		got := p.Point(float32(i) / segments)
		assert.InDelta(t, cp.X, got.X, 0.01, "control point %d", i)
		assert.InDelta(t, cp.Y, got.Y, 0.01, "control point %d", i)
		assert.InDelta(t, cp.Z, got.Z, 0.01, "control point %d", i)
	}
}

func TestPointAtIsContinuous(t *testing.T) {
	for _, ct := range []CurveType{CurveCatmullRom, CurveCentripetal, CurveChordal} {
		t.Run(string(ct), func(t *testing.T) {
			p, err := NewCameraPath(orbitSwing, WithCurveType(ct))
			require.NoError(t, err)

			const steps = 1000
			// evenly spaced arc length steps should each cover about Length/steps
			limit := p.Length() / steps * 4
			prev := p.PointAt(0)
			for i := 1; i <= steps; i++ {
				cur := p.PointAt(float32(i) / steps)
				require.True(t, cur.IsFinite())
				assert.LessOrEqual(t, cur.DistanceTo(prev), limit, "jump at step %d", i)
				prev = cur
			}
		})
	}
}

func TestTwoPointPathIsStraight(t *testing.T) {
	a := common.P3(0, 0, 0)
	b := common.P3(100, 200, 300)
	p, err := NewCameraPath([]common.Point3{a, b})
	require.NoError(t, err)

	assert.InDelta(t, a.DistanceTo(b), p.Length(), 0.1)
	mid := p.PointAt(0.5)
	assert.InDelta(t, 50, mid.X, 0.1)
	assert.InDelta(t, 100, mid.Y, 0.1)
	assert.InDelta(t, 150, mid.Z, 0.1)
}

func TestCoincidentPoints(t *testing.T) {
	a := common.P3(5, 5, 5)
	for _, ct := range []CurveType{CurveCatmullRom, CurveCentripetal, CurveChordal} {
		p, err := NewCameraPath([]common.Point3{a, a, a}, WithCurveType(ct))
		require.NoError(t, err)
		assert.Equal(t, float32(0), p.Length())
		got := p.PointAt(0.3)
		assert.True(t, got.IsFinite(), "curve %s", ct)
		assert.InDelta(t, 5, got.X, 1e-4)
	}
}

func TestSamples(t *testing.T) {
	p, err := NewCameraPath(orbitSwing, WithPrecision(10))
	require.NoError(t, err)

	samples := p.Samples()
	require.Len(t, samples, 10*(len(orbitSwing)-1)+1)
	assert.Equal(t, orbitSwing[0], samples[0])
	assert.Equal(t, orbitSwing[len(orbitSwing)-1], samples[len(samples)-1])
	assert.Equal(t, 10, p.Precision())

	assert.Len(t, p.Points(0), 2)
}

func TestControlPointsIsACopy(t *testing.T) {
	src := []common.Point3{{X: 1}, {X: 2}}
	p, err := NewCameraPath(src)
	require.NoError(t, err)

	src[0].X = 99
	cps := p.ControlPoints()
	assert.Equal(t, float32(1), cps[0].X)
	cps[1].X = 42
	assert.Equal(t, float32(2), p.ControlPoints()[1].X)
}

func TestBuilderOptions(t *testing.T) {
	p, err := NewCameraPath(orbitSwing, WithCurveType("bogus"), WithPrecision(0), WithArcLengthDivisions(-3))
	require.NoError(t, err)
	assert.Equal(t, CurveCatmullRom, p.CurveType())
	assert.Equal(t, DefaultPrecision, p.Precision())

	p, err = NewCameraPath(orbitSwing, WithCurveType(CurveChordal), WithTension(0.2))
	require.NoError(t, err)
	assert.Equal(t, CurveChordal, p.CurveType())
}

func TestTensionShapesUniformCurve(t *testing.T) {
	pts := []common.Point3{{X: 0}, {X: 100, Y: 100}, {X: 200}}
	loose, err := NewCameraPath(pts, WithTension(0.5))
	require.NoError(t, err)
	tight, err := NewCameraPath(pts, WithTension(0))
	require.NoError(t, err)

	// zero tension makes each segment a straight line between its control points
	q := tight.Point(0.25)
	assert.InDelta(t, 50, q.X, 1e-3)
	assert.InDelta(t, 50, q.Y, 1e-3)
	assert.NotEqual(t, q, loose.Point(0.25))
}
