package orbit

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-3

func TestIsInside(t *testing.T) {
	tests := []struct {
		name   string
		radius float32
		p      common.Point3
		want   bool
	}{
		{"origin", 2500, common.P3(0, 0, 0), true},
		{"on ring", 2500, common.P3(2500, 0, 1000), true},
		{"on ring diagonal", 5, common.P3(3, 4, -7), true},
		{"just outside", 2500, common.P3(2500.5, 0, 0), false},
		{"far outside", 2500, common.P3(5000, 0, 0), false},
		{"height ignored", 10, common.P3(1, 1, 1e6), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrbit(tt.radius)
			assert.Equal(t, tt.want, o.IsInside(tt.p))
			assert.Equal(t, tt.p.HorizontalDistance() <= tt.radius, o.IsInside(tt.p))
		})
	}
}

func TestAngleOf(t *testing.T) {
	o := NewOrbit(100)
	assert.InDelta(t, 0, o.AngleOf(common.P3(10, 0, 50)), eps)
	assert.InDelta(t, math32.Pi/2, o.AngleOf(common.P3(0, 10, -3)), eps)
	assert.InDelta(t, -math32.Pi/2, o.AngleOf(common.P3(0, -10, 0)), eps)
	assert.InDelta(t, math32.Pi, o.AngleOf(common.P3(-10, 0, 0)), eps)
}

func TestPointAt(t *testing.T) {
	o := NewOrbit(2500)

	p := o.PointAt(0, 1000, 1)
	assert.InDelta(t, 2500, p.X, eps)
	assert.InDelta(t, 0, p.Y, eps)
	assert.Equal(t, float32(1000), p.Z)

	inner := o.PointAt(math32.Pi/2, 5, 0.9)
	assert.InDelta(t, 0, inner.X, eps)
	assert.InDelta(t, 2250, inner.Y, eps)
	assert.InDelta(t, 2250, inner.HorizontalDistance(), eps)
}

func TestPointAtRoundTripsBearing(t *testing.T) {
	o := NewOrbit(2500)
	for _, p := range []common.Point3{
		common.P3(100, 200, 3),
		common.P3(-4000, 1, 0),
		common.P3(-3, -3, 99),
		common.P3(0.5, -7000, 1850),
	} {
		q := o.PointAt(o.AngleOf(p), p.Z, 1)
		assert.InDelta(t, o.AngleOf(p), o.AngleOf(q), eps, "bearing of %v", p)
		assert.InDelta(t, 2500, q.HorizontalDistance(), 0.5)
		assert.Equal(t, p.Z, q.Z)
	}
}

func TestStepAngles(t *testing.T) {
	o := NewOrbit(1)
	pairs := [][2]float32{
		{0, 0},
		{1, 1},
		{0, math32.Pi / 2},
		{0, -math32.Pi / 2},
		{-3, 3},
		{2.5, -0.1},
		{0.1, 0.2},
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		steps := o.StepAngles(a, b)

		require.GreaterOrEqual(t, len(steps), 2, "steps for %v", pair)
		assert.Equal(t, a, steps[0])
		assert.Equal(t, b, steps[len(steps)-1])

		delta := steps[1] - steps[0]
		for i := 2; i < len(steps); i++ {
			assert.InDelta(t, delta, steps[i]-steps[i-1], 1e-5, "uneven step in %v", steps)
		}
		assert.LessOrEqual(t, math32.Abs(delta), DefaultStepAngle+1e-5)
	}
}

func TestStepAnglesCount(t *testing.T) {
	o := NewOrbit(1, WithStepAngle(1))
	// 1 + floor(2.5 / 1) = 3 steps, 4 entries
	steps := o.StepAngles(0, 2.5)
	require.Len(t, steps, 4)
	assert.InDelta(t, 2.5/3, steps[1], 1e-6)
}

func TestWaypointsBetweenSwingsAlongRing(t *testing.T) {
	o := NewOrbit(2500)
	start := common.P3(2500, 0, 1000)
	end := common.P3(0, -2500, 1850)

	points := o.WaypointsBetween(start, end)
	require.NotEmpty(t, points)
	require.GreaterOrEqual(t, len(points), 3)

	first := points[0]
	last := points[len(points)-1]
	assert.InDelta(t, 0, o.AngleOf(first), eps)
	assert.InDelta(t, 2250, first.HorizontalDistance(), 0.5)
	assert.InDelta(t, -math32.Pi/2, o.AngleOf(last), eps)
	assert.InDelta(t, 2250, last.HorizontalDistance(), 0.5)

	assert.Equal(t, float32(1000), first.Z)
	assert.Equal(t, float32(1850), last.Z)
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].Z, points[i-1].Z, "z must rise monotonically")
	}
	for _, p := range points[1 : len(points)-1] {
		assert.InDelta(t, 2500, p.HorizontalDistance(), 0.5)
		assert.Less(t, o.AngleOf(p), float32(0))
		assert.Greater(t, o.AngleOf(p), -math32.Pi/2)
	}
}

func TestWaypointsBetweenFromOutsideIsDirect(t *testing.T) {
	o := NewOrbit(2500)
	start := common.P3(5000, 0, 1000)
	end := common.P3(600, -250, 1850)

	points := o.WaypointsBetween(start, end)
	require.Len(t, points, 1)
	assert.InDelta(t, o.AngleOf(end), o.AngleOf(points[0]), eps)
	assert.InDelta(t, 2250, points[0].HorizontalDistance(), 0.5)
	assert.Equal(t, end.Z, points[0].Z)
}

func TestWaypointsBetweenZeroSpan(t *testing.T) {
	o := NewOrbit(2500)
	points := o.WaypointsBetween(common.P3(100, 0, 0), common.P3(200, 0, 10))
	// start and end bearing collapse: inner start point and inner end point only
	require.Len(t, points, 2)
	assert.Equal(t, float32(0), points[0].Z)
	assert.Equal(t, float32(10), points[1].Z)
}

func TestNewOrbitRejectsNonPositiveRadius(t *testing.T) {
	assert.Panics(t, func() { NewOrbit(0) })
	assert.Panics(t, func() { NewOrbit(-1) })
}

func TestBuilderOptions(t *testing.T) {
	o := NewOrbit(10, WithStepAngle(-1), WithInnerFactor(0))
	assert.Equal(t, DefaultStepAngle, o.StepAngle())
	assert.InDelta(t, 9, o.WaypointsBetween(common.P3(1, 0, 0), common.P3(0, 1, 0))[0].HorizontalDistance(), eps)

	o = NewOrbit(10, WithInnerFactor(0.5))
	assert.InDelta(t, 5, o.WaypointsBetween(common.P3(1, 0, 0), common.P3(0, 1, 0))[0].HorizontalDistance(), eps)
}
