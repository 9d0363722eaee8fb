// package bookcase builds the parametric shelf unit the viewer orbits: its boards, for drawing, and the grid of
// cell centres the camera can be sent to.
package bookcase

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-bookcase/common"
	"github.com/Carmen-Shannon/oxy-bookcase/engine/scene"
)

// DefaultThickness is the board thickness.
const DefaultThickness = 18

var (
	// ErrSlotOutOfRange is returned by Slot for a column or row outside the grid.
	ErrSlotOutOfRange = errors.New("bookcase: slot out of range")
	// ErrInvalidDimensions is returned by New for non-positive sizes or counts.
	ErrInvalidDimensions = errors.New("bookcase: invalid dimensions")
)

// Box is one board of the unit, an axis-aligned box.
type Box struct {
	Name   string
	Center common.Point3
	Size   common.Point3
	Color  common.Color
}

// Bookcase is a shelf unit standing on the floor plane, centred on the Z axis. X is its depth, Y its width and
// Z its height. Cols vertical compartments split the width and Rows shelves split the height.
type Bookcase interface {
	// Size returns the outer dimensions along X, Y and Z.
	Size() common.Point3

	// Rows returns the number of shelf rows.
	Rows() int

	// Cols returns the number of compartments.
	Cols() int

	// Thickness returns the board thickness.
	Thickness() float32

	// Boxes returns every board: bottom, top, both sides, the dividers between compartments and the shelves
	// inside each compartment.
	Boxes() []Box

	// Nodes returns the boards as scene box nodes under parent.
	//
	// Parameters:
	//   - parent: the scene node the boards are attached to
	//
	// Returns:
	//   - []scene.Node: one visible KindBox node per board
	Nodes(parent scene.NodeID) []scene.Node

	// Slot returns the centre of the cell at col, row. Columns count along +Y, rows upwards.
	//
	// Parameters:
	//   - col: compartment index, 0 to Cols()-1
	//   - row: shelf row index, 0 to Rows()-1
	//
	// Returns:
	//   - common.Point3: the cell centre
	//   - error: ErrSlotOutOfRange if col or row is outside the grid
	Slot(col, row int) (common.Point3, error)

	// Slots returns every cell centre indexed [col][row].
	Slots() [][]common.Point3

	// Bounds returns the box enclosing the unit.
	Bounds() common.Bounds
}

type bookcaseImpl struct {
	size       common.Point3
	rows, cols int
	thickness  float32

	mainColor   common.Color
	accentColor common.Color

	boxes []Box
	slots [][]common.Point3
}

var _ Bookcase = &bookcaseImpl{}

// New builds a bookcase.
//
// Parameters:
//   - width: depth along X
//   - depth: width along Y
//   - height: height along Z
//   - rows: number of shelf rows
//   - cols: number of compartments
//   - options: builder options
//
// Returns:
//   - Bookcase: the built unit
//   - error: ErrInvalidDimensions if any size or count is not positive, or the boards do not fit
func New(width, depth, height float32, rows, cols int, options ...BookcaseBuilderOption) (Bookcase, error) {
	b := &bookcaseImpl{
		size:        common.P3(width, depth, height),
		rows:        rows,
		cols:        cols,
		thickness:   DefaultThickness,
		mainColor:   common.ColorBookcase,
		accentColor: common.ColorAccent,
	}
	for _, opt := range options {
		opt(b)
	}

	if width <= 0 || depth <= 0 || height <= 0 || rows <= 0 || cols <= 0 || b.thickness <= 0 {
		return nil, fmt.Errorf("%w: %gx%gx%g, %d rows, %d cols, thickness %g",
			ErrInvalidDimensions, width, depth, height, rows, cols, b.thickness)
	}
	if 2*b.thickness >= height || float32(cols+1)*b.thickness >= depth {
		return nil, fmt.Errorf("%w: boards of thickness %g do not fit", ErrInvalidDimensions, b.thickness)
	}

	b.build()
	return b, nil
}

func (b *bookcaseImpl) build() {
	x, y, z, t := b.size.X, b.size.Y, b.size.Z, b.thickness

	b.boxes = []Box{
		{Name: "bottom", Center: common.P3(0, 0, t/2), Size: common.P3(x, y, t), Color: b.mainColor},
		{Name: "top", Center: common.P3(0, 0, z-t/2), Size: common.P3(x, y, t), Color: b.mainColor},
		{Name: "left", Center: common.P3(0, -y/2+t/2, z/2), Size: common.P3(x, t, z-2*t), Color: b.mainColor},
		{Name: "right", Center: common.P3(0, y/2-t/2, z/2), Size: common.P3(x, t, z-2*t), Color: b.mainColor},
	}

	pitch := (y - t) / float32(b.cols)
	shelfWidth := (y - 2*t - float32(b.cols-1)*t) / float32(b.cols)
	rowPitch := z / float32(b.rows)

	b.slots = make([][]common.Point3, b.cols)
	for i := range b.cols {
		divider := -y/2 + t/2 + float32(i+1)*pitch
		if i+1 != b.cols {
			b.boxes = append(b.boxes, Box{
				Name:   fmt.Sprintf("divider %d", i+1),
				Center: common.P3(0, divider, z/2),
				Size:   common.P3(x, t, z-2*t),
				Color:  b.accentColor,
			})
		}

		shelfY := divider - shelfWidth/2 - t/2
		for j := range b.rows - 1 {
			b.boxes = append(b.boxes, Box{
				Name:   fmt.Sprintf("shelf %d/%d", i+1, j+1),
				Center: common.P3(0, shelfY, float32(j+1)*rowPitch-t/2),
				Size:   common.P3(x, shelfWidth, t),
				Color:  b.mainColor,
			})
		}

		b.slots[i] = make([]common.Point3, b.rows)
		for j := range b.rows {
			b.slots[i][j] = common.P3(0, -y/2+t/2+(float32(i)+0.5)*pitch, (float32(j)+0.5)*rowPitch)
		}
	}
}

func (b *bookcaseImpl) Size() common.Point3 {
	return b.size
}

func (b *bookcaseImpl) Rows() int {
	return b.rows
}

func (b *bookcaseImpl) Cols() int {
	return b.cols
}

func (b *bookcaseImpl) Thickness() float32 {
	return b.thickness
}

func (b *bookcaseImpl) Boxes() []Box {
	out := make([]Box, len(b.boxes))
	copy(out, b.boxes)
	return out
}

func (b *bookcaseImpl) Nodes(parent scene.NodeID) []scene.Node {
	nodes := make([]scene.Node, len(b.boxes))
	for i, box := range b.boxes {
		nodes[i] = scene.Node{
			Name:    box.Name,
			Parent:  parent,
			Kind:    scene.KindBox,
			Color:   box.Color,
			Visible: true,
			Center:  box.Center,
			Size:    box.Size,
		}
	}
	return nodes
}

func (b *bookcaseImpl) Slot(col, row int) (common.Point3, error) {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return common.Point3{}, fmt.Errorf("slot (%d, %d) of %dx%d: %w", col, row, b.cols, b.rows, ErrSlotOutOfRange)
	}
	return b.slots[col][row], nil
}

func (b *bookcaseImpl) Slots() [][]common.Point3 {
	out := make([][]common.Point3, len(b.slots))
	for i, col := range b.slots {
		out[i] = append([]common.Point3(nil), col...)
	}
	return out
}

func (b *bookcaseImpl) Bounds() common.Bounds {
	return common.Bounds{
		X: common.Range{Min: -b.size.X / 2, Max: b.size.X / 2},
		Y: common.Range{Min: -b.size.Y / 2, Max: b.size.Y / 2},
		Z: common.Range{Min: 0, Max: b.size.Z},
	}
}
