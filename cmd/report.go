package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/caffeine-storm/isoroom/game"
	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/house/perspective"
)

// Everything the tool knows about a room.
type Report struct {
	Room       string
	Tilemap    string
	Offsets    perspective.Offsets
	Bounds     house.Bounds
	Walls      house.WallSet
	Door       *house.RoomPosition `json:",omitempty"`
	Generation uint64
	Grid       house.NavGrid
	Walk       []game.Waypoint `json:",omitempty"`
}

func MakeReport(room *house.Room, snap *house.Snapshot, walk []game.Waypoint) (*Report, error) {
	bounds, err := room.Bounds()
	if err != nil {
		return nil, err
	}
	walls, err := room.Walls()
	if err != nil {
		return nil, err
	}
	rep := &Report{
		Room:       room.Name,
		Tilemap:    room.Tilemap().String(),
		Offsets:    room.Offsets(),
		Bounds:     bounds,
		Walls:      walls,
		Generation: snap.Generation,
		Grid:       snap.CloneGrid(),
		Walk:       walk,
	}
	if door, ok := room.DoorPosition(); ok {
		rep.Door = &door
	}
	return rep, nil
}

func (rep *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "room %s\n", rep.Room)
	fmt.Fprintf(w, "offsets %v,%v\n", rep.Offsets.X, rep.Offsets.Y)
	fmt.Fprintf(w, "bounds (%v, %v)-(%v, %v) %vx%v\n",
		rep.Bounds.MinX, rep.Bounds.MinY, rep.Bounds.MaxX, rep.Bounds.MaxY,
		rep.Bounds.Width(), rep.Bounds.Height())
	for _, seg := range rep.Walls.Rows {
		fmt.Fprintf(w, "row wall y=%d x=%d..%d height %d\n", seg.Fixed, seg.Start, seg.End, seg.Height)
	}
	for _, seg := range rep.Walls.Columns {
		fmt.Fprintf(w, "column wall x=%d y=%d..%d height %d\n", seg.Fixed, seg.Start, seg.End, seg.Height)
	}
	if rep.Door != nil {
		fmt.Fprintf(w, "door %d,%d\n", rep.Door.X, rep.Door.Y)
	} else {
		fmt.Fprintln(w, "door none")
	}

	fmt.Fprintf(w, "grid (generation %d)\n", rep.Generation)
	for _, row := range rep.Grid {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%3d", v)
		}
		fmt.Fprintln(w, strings.Join(cells, ""))
	}

	if rep.Walk == nil {
		return
	}
	if len(rep.Walk) == 0 {
		fmt.Fprintln(w, "walk unreachable")
		return
	}
	fmt.Fprintf(w, "walk %d steps\n", len(rep.Walk))
	for _, wp := range rep.Walk {
		fmt.Fprintf(w, "  %d,%d z=%v facing %v\n", wp.RoomX, wp.RoomY, wp.RoomZ, wp.Direction)
	}
}
