package perspective

// TileUnit is the screen-space size of one board step: a tile is two units
// wide and one unit tall on screen, and one unit of height lifts it by one
// whole unit.
const TileUnit = 32

// Offsets is the padding, in tiles, that normalization added to a tilemap.
// Every projection of a cell from that tilemap has to take it into account.
type Offsets struct {
	X, Y float64
}

type ScreenPoint struct {
	X, Y float64
}
