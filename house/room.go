package house

import (
	"context"
	"fmt"
	"sync"

	"github.com/caffeine-storm/isoroom/house/perspective"
	"github.com/caffeine-storm/isoroom/logging"
	"github.com/runningwild/glop/util/algorithm"
)

type TileType int

const (
	TileTypeOther TileType = iota
	TileTypeTile
	TileTypeStairs
)

// A Room ties a tilemap to the objects placed in it. Room coordinates are
// those of the tilemap as given; geometry derived from the normalized tilemap
// is translated back into them, and everything is projected with Offsets().
type Room struct {
	Name string

	tilemap    Tilemap
	normalized Tilemap
	offsets    perspective.Offsets

	occupancy *OccupancyGrid

	objectsMutex sync.Mutex
	objects      []RoomObject
}

func NewRoom(name string, tm Tilemap, info FurnitureInfoSource) (*Room, error) {
	normalized, off, err := Normalize(tm)
	if err != nil {
		return nil, fmt.Errorf("room %q: %w", name, err)
	}
	room := &Room{
		Name:       name,
		tilemap:    tm.Clone(),
		normalized: normalized,
		offsets:    off,
		occupancy:  NewOccupancyGrid(tm, info),
	}
	logging.Debug("NewRoom", "name", name, "rows", tm.Rows(), "cols", tm.Cols(), "offsets", off)
	return room, nil
}

func (room *Room) Tilemap() Tilemap {
	return room.tilemap.Clone()
}

func (room *Room) Offsets() perspective.Offsets {
	return room.offsets
}

func (room *Room) Occupancy() *OccupancyGrid {
	return room.occupancy
}

func (room *Room) Bounds() (Bounds, error) {
	return TilemapBounds(room.tilemap, room.offsets)
}

// Wall segments in room coordinates. A wall sits on the void line just
// outside of the room, so Fixed can be -1.
func (room *Room) Walls() (WallSet, error) {
	walls, err := ExtractWalls(room.normalized)
	if err != nil {
		return WallSet{}, err
	}
	return walls.Translate(-int(room.offsets.X), -int(room.offsets.Y)), nil
}

// Screen position of the top-left of the tile sprite at pos.
func (room *Room) ScreenPosition(pos RoomPosition) (perspective.ScreenPoint, error) {
	p, err := perspective.Project(pos.X, pos.Y, 0, room.offsets)
	if err != nil {
		return p, err
	}
	p.Y -= pos.Z * perspective.TileUnit
	return p, nil
}

// The tile at (x, y) and its height.
func (room *Room) TileAt(x, y int) (TileType, float64) {
	cell := room.tilemap.At(x, y)
	switch cell.Kind {
	case CellTile:
		return TileTypeTile, float64(cell.Height)
	case CellStairs:
		return TileTypeStairs, float64(cell.Height)
	}
	return TileTypeOther, 0
}

// How high something standing on a tile of the given type and height is.
// Stairs put it half way up to the next level.
func StandingHeight(kind TileType, z float64) float64 {
	switch kind {
	case TileTypeTile:
		return z
	case TileTypeStairs:
		return z + 0.5
	}
	return 0
}

// The entry point of the room, standing on its tile.
func (room *Room) DoorPosition() (RoomPosition, bool) {
	row, col, ok := room.occupancy.DoorCell()
	if !ok {
		return RoomPosition{}, false
	}
	return RoomPosition{X: col, Y: row, Z: StandingHeight(room.TileAt(col, row))}, true
}

func (room *Room) Objects() []RoomObject {
	room.objectsMutex.Lock()
	defer room.objectsMutex.Unlock()
	return append([]RoomObject(nil), room.objects...)
}

func (room *Room) AddObject(obj RoomObject) {
	room.objectsMutex.Lock()
	defer room.objectsMutex.Unlock()
	room.objects = append(room.objects, obj)
}

// Removes every object with the given id and reports whether there was one.
func (room *Room) RemoveObject(id string) bool {
	room.objectsMutex.Lock()
	defer room.objectsMutex.Unlock()
	before := len(room.objects)
	algorithm.Choose(&room.objects, func(obj RoomObject) bool {
		return obj.ObjectID() != id
	})
	return len(room.objects) != before
}

// Placed floor furniture, in placement order.
func (room *Room) FloorFurniture() []FloorFurniture {
	var out []FloorFurniture
	for _, obj := range room.Objects() {
		if f, ok := obj.(FloorFurniture); ok {
			out = append(out, f)
		}
	}
	return out
}

// Rebuilds the navigation grid from the objects currently in the room.
func (room *Room) Recompute(ctx context.Context) (*Snapshot, error) {
	return room.occupancy.Recompute(ctx, room.Objects())
}
