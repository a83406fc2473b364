package perspective

import (
	"errors"
	"fmt"
	"math"

	"github.com/MobRulesGames/mathgl"
)

var ErrInvalidOffsets = errors.New("invalid wall offsets")

func (o Offsets) validate() error {
	if math.IsNaN(o.X) || math.IsInf(o.X, 0) || math.IsNaN(o.Y) || math.IsInf(o.Y, 0) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidOffsets, o.X, o.Y)
	}
	return nil
}

// Returns the matrix taking (col, row, height, 1) in board space to
// (x, y, height, 1) in screen space, with the normalization offsets folded
// into the translation. Column-major, like every other mathgl.Mat4.
//
//	x = (cx - cy) * 32
//	y = (cx + cy) * 16 - height * 32
func TileToScreen(off Offsets) (*mathgl.Mat4, error) {
	if err := off.validate(); err != nil {
		return nil, err
	}
	const u = TileUnit
	ox, oy := float32(off.X), float32(off.Y)
	return &mathgl.Mat4{
		u, u / 2, 0, 0,
		-u, u / 2, 0, 0,
		0, -u, 1, 0,
		u * (ox - oy), u / 2 * (ox + oy), 0, 1,
	}, nil
}

// Projects the top-left corner of the cell at (col, row) raised to height
// onto the screen.
func Project(col, row, height int, off Offsets) (ScreenPoint, error) {
	m, err := TileToScreen(off)
	if err != nil {
		return ScreenPoint{}, err
	}
	return ProjectWith(m, col, row, height), nil
}

// Like Project but reuses a matrix from TileToScreen; handy when projecting
// every cell of a tilemap.
func ProjectWith(m *mathgl.Mat4, col, row, height int) ScreenPoint {
	v := mathgl.Vec4{X: float32(col), Y: float32(row), Z: float32(height), W: 1}
	v.Transform(m)
	return ScreenPoint{X: float64(v.X), Y: float64(v.Y)}
}

// Returns the cell whose floor diamond, at height 0, contains the screen
// point (x, y). The result may lie outside of the tilemap.
func PickTile(x, y float64, off Offsets) (col, row int, err error) {
	m, err := TileToScreen(off)
	if err != nil {
		return 0, 0, err
	}
	var inv mathgl.Mat4
	inv.Assign(m)
	inv.Inverse()

	// Tile sprites are drawn with their bounding box's top-left at the
	// projected point, which puts the diamond's top vertex half a tile to the
	// right of where the board transform puts the cell's origin.
	v := mathgl.Vec4{X: float32(x - TileUnit), Y: float32(y), Z: 0, W: 1}
	v.Transform(&inv)
	return int(math.Floor(float64(v.X))), int(math.Floor(float64(v.Y))), nil
}
