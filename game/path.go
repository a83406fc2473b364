package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/logging"
)

// Two consecutive waypoints on the same cell; the searcher handed back a
// corrupt path.
var ErrZeroStep = errors.New("zero length step in path")

// One step of a walk: the cell stepped onto, how high something standing
// there is and which way it faces after the step.
type Waypoint struct {
	RoomX, RoomY int
	RoomZ        float64
	Direction    house.Direction
}

type GridSource interface {
	Snapshot() *house.Snapshot
}

type TileLookup interface {
	TileAt(x, y int) (house.TileType, float64)
}

type PathPlanner struct {
	grid     GridSource
	tiles    TileLookup
	searcher Searcher
}

func NewPathPlanner(grid GridSource, tiles TileLookup) *PathPlanner {
	return &PathPlanner{
		grid:     grid,
		tiles:    tiles,
		searcher: DijkstraSearcher{},
	}
}

// Plans walks through room using its current occupancy.
func NewRoomPathPlanner(room *house.Room) *PathPlanner {
	return NewPathPlanner(room.Occupancy(), room)
}

func (pp *PathPlanner) WithSearcher(s Searcher) *PathPlanner {
	pp.searcher = s
	return pp
}

// Finds a walk from origin to target on whatever grid is published when it
// is called. The origin is not part of the result. An unreachable target
// gives an empty path and a nil error; so does origin == target.
//
// Furniture that can be sat or lain on blocks every cell it covers, but a
// walk may still end on one.
func (pp *PathPlanner) FindPath(ctx context.Context, origin, target house.RoomPosition) ([]Waypoint, error) {
	grid := pp.grid.Snapshot().CloneGrid()
	if v, ok := grid.At(target.X, target.Y); ok && v < house.NavBlocked {
		grid[target.Y][target.X] = 0
	}

	from := GridPoint{X: origin.X, Y: origin.Y}
	to := GridPoint{X: target.X, Y: target.Y}
	search := pp.searcher.NewSearch(grid, from, to)
	search.Start()
	points, err := search.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		logging.Debug("FindPath: no path", "from", from, "to", to)
		return []Waypoint{}, nil
	}
	return pp.waypoints(points)
}

func (pp *PathPlanner) waypoints(points []GridPoint) ([]Waypoint, error) {
	out := make([]Waypoint, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		dir := StepDirection(cur.X-prev.X, cur.Y-prev.Y)
		if dir == house.NoDirection {
			return nil, fmt.Errorf("%w: %v to %v", ErrZeroStep, prev, cur)
		}
		out = append(out, Waypoint{
			RoomX:     cur.X,
			RoomY:     cur.Y,
			RoomZ:     house.StandingHeight(pp.tiles.TileAt(cur.X, cur.Y)),
			Direction: dir,
		})
	}
	return out, nil
}

// The facing of a step by (dx, dy); only the signs matter. Returns
// house.NoDirection for a step that goes nowhere.
func StepDirection(dx, dy int) house.Direction {
	switch [2]int{sign(dx), sign(dy)} {
	case [2]int{0, -1}:
		return house.North
	case [2]int{1, -1}:
		return house.NorthEast
	case [2]int{1, 0}:
		return house.East
	case [2]int{1, 1}:
		return house.SouthEast
	case [2]int{0, 1}:
		return house.South
	case [2]int{-1, 1}:
		return house.SouthWest
	case [2]int{-1, 0}:
		return house.West
	case [2]int{-1, -1}:
		return house.NorthWest
	}
	return house.NoDirection
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
