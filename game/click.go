package game

import (
	"context"

	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/house/perspective"
	"github.com/caffeine-storm/isoroom/logging"
)

// The cell of room whose height 0 floor is under the screen point (x, y),
// standing on its tile. Clicks that miss the room's walkable cells are
// reported with ok false.
func PickPosition(room *house.Room, x, y float64) (pos house.RoomPosition, ok bool, err error) {
	col, row, err := perspective.PickTile(x, y, room.Offsets())
	if err != nil {
		return house.RoomPosition{}, false, err
	}
	kind, z := room.TileAt(col, row)
	if kind == house.TileTypeOther {
		return house.RoomPosition{X: col, Y: row}, false, nil
	}
	return house.RoomPosition{X: col, Y: row, Z: house.StandingHeight(kind, z)}, true, nil
}

// Plans a walk from origin to whatever floor cell was clicked. Clicks are
// resolved at height 0, so a raised tile is picked by clicking where its
// floor would be. A click off the floor gives an empty path.
func (pp *PathPlanner) WalkToClick(ctx context.Context, room *house.Room, origin house.RoomPosition, x, y float64) ([]Waypoint, error) {
	target, ok, err := PickPosition(room, x, y)
	if err != nil {
		return nil, err
	}
	if !ok {
		logging.Debug("WalkToClick: missed the floor", "x", x, "y", y, "cell", target)
		return []Waypoint{}, nil
	}
	return pp.FindPath(ctx, origin, target)
}
