package scene

import (
	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/chewxy/math32"
)

// NodeID identifies a node in a Scene. The zero value is never assigned and means "no node".
type NodeID uint64

// Kind selects the geometry a node draws.
type Kind int

const (
	// KindGroup draws nothing. Its visibility applies to its children.
	KindGroup Kind = iota
	// KindBox draws the edges of an axis-aligned box of Size centred on Center.
	KindBox
	// KindSphere draws three great circles of Radius around Center.
	KindSphere
	// KindPolyline draws consecutive segments through Points.
	KindPolyline
	// KindCylinder draws a vertical cylinder of Radius and Height centred on Center.
	KindCylinder
	// KindAxes draws the X, Y and Z axes from Center with length Radius, in red, green and blue.
	KindAxes
	// KindGrid draws a square floor grid of side Size.X centred on Center with Segments cells per side.
	KindGrid
)

// defaultSegments is the circle resolution used when a node leaves Segments at zero.
const defaultSegments = 24

// Node is one drawable element of a Scene.
type Node struct {
	ID       NodeID
	Name     string
	Parent   NodeID
	Kind     Kind
	Color    common.Color
	Visible  bool
	Center   common.Point3
	Size     common.Point3
	Radius   float32
	Height   float32
	Segments int
	Points   []common.Point3
}

// Bounds returns the axis-aligned box the node's own geometry occupies. Groups have an empty box at Center.
//
// Returns:
//   - common.Bounds: the box
func (n Node) Bounds() common.Bounds {
	switch n.Kind {
	case KindBox:
		h := n.Size.Scale(0.5)
		return boundsOf(n.Center.Sub(h), n.Center.Add(h))
	case KindSphere:
		r := common.P3(n.Radius, n.Radius, n.Radius)
		return boundsOf(n.Center.Sub(r), n.Center.Add(r))
	case KindCylinder:
		h := common.P3(n.Radius, n.Radius, n.Height/2)
		return boundsOf(n.Center.Sub(h), n.Center.Add(h))
	case KindAxes:
		return boundsOf(n.Center, n.Center.Add(common.P3(n.Radius, n.Radius, n.Radius)))
	case KindGrid:
		h := common.P3(n.Size.X/2, n.Size.X/2, 0)
		return boundsOf(n.Center.Sub(h), n.Center.Add(h))
	case KindPolyline:
		if len(n.Points) == 0 {
			break
		}
		lo, hi := n.Points[0], n.Points[0]
		for _, p := range n.Points[1:] {
			lo = common.P3(math32.Min(lo.X, p.X), math32.Min(lo.Y, p.Y), math32.Min(lo.Z, p.Z))
			hi = common.P3(math32.Max(hi.X, p.X), math32.Max(hi.Y, p.Y), math32.Max(hi.Z, p.Z))
		}
		return boundsOf(lo, hi)
	}
	return boundsOf(n.Center, n.Center)
}

func boundsOf(lo, hi common.Point3) common.Bounds {
	return common.Bounds{
		X: common.Range{Min: lo.X, Max: hi.X},
		Y: common.Range{Min: lo.Y, Max: hi.Y},
		Z: common.Range{Min: lo.Z, Max: hi.Z},
	}
}

// appendLines appends the node's line-list vertices to out.
func (n *Node) appendLines(out []common.LineVertex) []common.LineVertex {
	seg := func(a, b common.Point3, c common.Color) {
		out = append(out,
			common.LineVertex{Position: a.Array(), Color: c},
			common.LineVertex{Position: b.Array(), Color: c},
		)
	}
	segments := n.Segments
	if segments < 3 {
		segments = defaultSegments
	}

	switch n.Kind {
	case KindBox:
		h := n.Size.Scale(0.5)
		var corners [8]common.Point3
		for i := range corners {
			sx, sy, sz := float32(-1), float32(-1), float32(-1)
			if i&1 != 0 {
				sx = 1
			}
			if i&2 != 0 {
				sy = 1
			}
			if i&4 != 0 {
				sz = 1
			}
			corners[i] = n.Center.Add(common.P3(sx*h.X, sy*h.Y, sz*h.Z))
		}
		for i := range corners {
			for _, bit := range [3]int{1, 2, 4} {
				if i&bit == 0 {
					seg(corners[i], corners[i|bit], n.Color)
				}
			}
		}

	case KindSphere:
		for axis := range 3 {
			circle(n.Center, n.Radius, axis, segments, func(a, b common.Point3) { seg(a, b, n.Color) })
		}

	case KindPolyline:
		for i := 1; i < len(n.Points); i++ {
			seg(n.Points[i-1], n.Points[i], n.Color)
		}

	case KindCylinder:
		half := common.P3(0, 0, n.Height/2)
		bottom, top := n.Center.Sub(half), n.Center.Add(half)
		circle(bottom, n.Radius, 2, segments, func(a, b common.Point3) { seg(a, b, n.Color) })
		circle(top, n.Radius, 2, segments, func(a, b common.Point3) { seg(a, b, n.Color) })
		for i := 0; i < segments; i += max(segments/8, 1) {
			angle := 2 * math32.Pi * float32(i) / float32(segments)
			off := common.P3(n.Radius*math32.Cos(angle), n.Radius*math32.Sin(angle), 0)
			seg(bottom.Add(off), top.Add(off), n.Color)
		}

	case KindAxes:
		seg(n.Center, n.Center.Add(common.P3(n.Radius, 0, 0)), common.Color{1, 0, 0, 1})
		seg(n.Center, n.Center.Add(common.P3(0, n.Radius, 0)), common.Color{0, 1, 0, 1})
		seg(n.Center, n.Center.Add(common.P3(0, 0, n.Radius)), common.Color{0, 0, 1, 1})

	case KindGrid:
		cells := max(n.Segments, 1)
		half := n.Size.X / 2
		step := n.Size.X / float32(cells)
		for i := 0; i <= cells; i++ {
			d := -half + float32(i)*step
			seg(n.Center.Add(common.P3(d, -half, 0)), n.Center.Add(common.P3(d, half, 0)), n.Color)
			seg(n.Center.Add(common.P3(-half, d, 0)), n.Center.Add(common.P3(half, d, 0)), n.Color)
		}
	}
	return out
}

// circle emits the segments of a circle around c in the plane normal to axis (0 = X, 1 = Y, 2 = Z).
func circle(c common.Point3, r float32, axis, segments int, emit func(a, b common.Point3)) {
	at := func(i int) common.Point3 {
		angle := 2 * math32.Pi * float32(i%segments) / float32(segments)
		u, v := r*math32.Cos(angle), r*math32.Sin(angle)
		switch axis {
		case 0:
			return c.Add(common.P3(0, u, v))
		case 1:
			return c.Add(common.P3(u, 0, v))
		default:
			return c.Add(common.P3(u, v, 0))
		}
	}
	for i := range segments {
		emit(at(i), at(i+1))
	}
}
