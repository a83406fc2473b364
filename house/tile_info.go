package house

// TileInfo describes how a cell borders the walls of its room. Row fields
// concern the back wall running along a row (the cell's upper neighbour),
// column fields the wall running along a column (its left neighbour).
type TileInfo struct {
	Height int

	RowEdge bool
	RowDoor bool

	ColEdge bool
	ColDoor bool
}

type TileClassifier interface {
	Classify(tm Tilemap, col, row int) TileInfo
}

// Classifies cells purely from the tilemap.
//
// A door tile is a walkable cell that sticks one cell out of the room into a
// wall line: void behind it and on both of its flanks, walkable in front of
// it. A cell is an edge for a wall line when the neighbour on that side is
// void (or off the map) or is a door tile, and it is a door opening when it
// is a door tile or sits directly in front of one.
type AdjacencyClassifier struct{}

var _ TileClassifier = AdjacencyClassifier{}

func (AdjacencyClassifier) Classify(tm Tilemap, col, row int) TileInfo {
	cell := tm.At(col, row)
	if !cell.Walkable() {
		return TileInfo{}
	}

	up := !tm.walkable(col, row-1) || isDoorTile(tm, col, row-1)
	left := !tm.walkable(col-1, row) || isDoorTile(tm, col-1, row)
	door := isDoorTile(tm, col, row)

	return TileInfo{
		Height:  cell.Height,
		RowEdge: up,
		RowDoor: door || isDoorTile(tm, col, row-1),
		ColEdge: left,
		ColDoor: door || isDoorTile(tm, col-1, row),
	}
}

func isDoorTile(tm Tilemap, col, row int) bool {
	if !tm.walkable(col, row) {
		return false
	}
	// Sticks out of the back wall.
	if !tm.walkable(col, row-1) && !tm.walkable(col-1, row) && !tm.walkable(col+1, row) && tm.walkable(col, row+1) {
		return true
	}
	// Sticks out of the left wall.
	if !tm.walkable(col-1, row) && !tm.walkable(col, row-1) && !tm.walkable(col, row+1) && tm.walkable(col+1, row) {
		return true
	}
	return false
}
