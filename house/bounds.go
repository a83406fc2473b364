package house

import (
	"errors"
	"fmt"
	"math"

	"github.com/caffeine-storm/isoroom/house/perspective"
)

var ErrNoValidTile = errors.New("tilemap has no walkable tile")

const (
	// Screen-space size of a tile sprite's bounding box.
	TileSpriteWidth  = 2 * perspective.TileUnit
	TileSpriteHeight = perspective.TileUnit

	// Headroom left above the highest tile for the walls.
	WallAllowance = perspective.TileUnit
)

type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Returns the screen-space box covering every tile and stair of tm, with
// WallAllowance of extra room on top.
func TilemapBounds(tm Tilemap, off perspective.Offsets) (Bounds, error) {
	mat, err := perspective.TileToScreen(off)
	if err != nil {
		return Bounds{}, err
	}

	b := Bounds{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	found := false
	for row := range tm {
		for col, cell := range tm[row] {
			if !cell.Walkable() {
				continue
			}
			found = true
			p := perspective.ProjectWith(mat, col, row, cell.Height)
			b.MinX = math.Min(b.MinX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxX = math.Max(b.MaxX, p.X+TileSpriteWidth)
			b.MaxY = math.Max(b.MaxY, p.Y+TileSpriteHeight)
		}
	}
	if !found {
		return Bounds{}, fmt.Errorf("TilemapBounds: %w", ErrNoValidTile)
	}

	b.MinY -= WallAllowance
	return b, nil
}
