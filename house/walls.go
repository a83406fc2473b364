package house

import "github.com/caffeine-storm/isoroom/logging"

// A WallSegment covers the cells Start..End (inclusive) along one axis. Fixed
// is its coordinate on the other axis: the row for row walls, the column for
// column walls.
type WallSegment struct {
	Start, End int
	Fixed      int
	Height     int
}

func (w WallSegment) Length() int {
	return w.End - w.Start + 1
}

type WallSet struct {
	Rows    []WallSegment
	Columns []WallSegment
}

// Moves every segment by dx columns and dy rows.
func (ws WallSet) Translate(dx, dy int) WallSet {
	out := WallSet{
		Rows:    make([]WallSegment, len(ws.Rows)),
		Columns: make([]WallSegment, len(ws.Columns)),
	}
	for i, w := range ws.Rows {
		out.Rows[i] = WallSegment{Start: w.Start + dx, End: w.End + dx, Fixed: w.Fixed + dy, Height: w.Height}
	}
	for i, w := range ws.Columns {
		out.Columns[i] = WallSegment{Start: w.Start + dy, End: w.End + dy, Fixed: w.Fixed + dx, Height: w.Height}
	}
	return out
}

// Finds the back walls: for each row, from top to bottom, the runs of cells
// whose upper neighbour is outside of the room. Segments come back in the
// order they were found.
func RowWalls(tm Tilemap, tc TileClassifier) ([]WallSegment, error) {
	if err := tm.Validate(); err != nil {
		return nil, err
	}
	return scanWalls(tm.Rows(), tm.Cols(), func(row, col int) (bool, int) {
		info := tc.Classify(tm, col, row)
		return info.RowEdge && !info.RowDoor, info.Height
	}), nil
}

// Finds the left walls: for each column, from left to right, the runs of
// cells whose left neighbour is outside of the room.
func ColumnWalls(tm Tilemap, tc TileClassifier) ([]WallSegment, error) {
	if err := tm.Validate(); err != nil {
		return nil, err
	}
	return scanWalls(tm.Cols(), tm.Rows(), func(col, row int) (bool, int) {
		info := tc.Classify(tm, col, row)
		return info.ColEdge && !info.ColDoor, info.Height
	}), nil
}

// Runs both passes with an AdjacencyClassifier.
func ExtractWalls(tm Tilemap) (WallSet, error) {
	rows, err := RowWalls(tm, AdjacencyClassifier{})
	if err != nil {
		return WallSet{}, err
	}
	cols, err := ColumnWalls(tm, AdjacencyClassifier{})
	if err != nil {
		return WallSet{}, err
	}
	logging.Debug("ExtractWalls", "rows", len(rows), "columns", len(cols))
	return WallSet{Rows: rows, Columns: cols}, nil
}

type wallRun struct {
	active     bool
	start, end int
	height     int
}

func (r *wallRun) extend(at, height int) {
	if !r.active {
		*r = wallRun{active: true, start: at, end: at, height: height}
		return
	}
	r.start = at
	if height < r.height {
		r.height = height
	}
}

func (r *wallRun) flush(walls []WallSegment, fixed int) []WallSegment {
	if !r.active {
		return walls
	}
	walls = append(walls, WallSegment{Start: r.start, End: r.end, Fixed: fixed, Height: r.height})
	*r = wallRun{}
	return walls
}

// Shared by both passes. The outer loop walks the fixed axis in ascending
// order and the inner loop scans the other axis downwards from 'last'. Every
// edge cell pulls 'last' below itself, so later lines only consider cells
// strictly before the walls already found and runs never overlap.
//
// A run's height is the lowest tile it covers so that a wall never pokes
// through a lower neighbouring tile.
func scanWalls(outerLen, innerLen int, isEdge func(outer, inner int) (bool, int)) []WallSegment {
	var walls []WallSegment
	last := innerLen - 1
	for outer := 0; outer < outerLen; outer++ {
		var run wallRun
		for inner := last; inner >= 0; inner-- {
			edge, height := isEdge(outer, inner)
			if edge {
				run.extend(inner, height)
				last = inner - 1
				continue
			}
			walls = run.flush(walls, outer-1)
		}
		walls = run.flush(walls, outer-1)
	}
	return walls
}
