package house

import "fmt"

// Directions are numbered clockwise starting from north, where north is
// towards row 0 and east is towards higher columns.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	// Used where a facing has not been decided yet.
	NoDirection Direction = -1
)

func (d Direction) Valid() bool {
	return d >= North && d <= NorthWest
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case NorthEast:
		return "NorthEast"
	case East:
		return "East"
	case SouthEast:
		return "SouthEast"
	case South:
		return "South"
	case SouthWest:
		return "SouthWest"
	case West:
		return "West"
	case NorthWest:
		return "NorthWest"
	case NoDirection:
		return "NoDirection"
	}
	return fmt.Sprintf("invalid direction (%d)", int(d))
}

// Furniture dimensions are given for this pair of facings; any other facing
// turns the piece by 90 degrees.
func (d Direction) Canonical() bool {
	return d == North || d == South
}

type RoomPosition struct {
	X, Y int
	Z    float64
}

// RoomObject is one of Avatar, FloorFurniture or WallFurniture.
type RoomObject interface {
	ObjectID() string
	roomObject()
}

type Avatar struct {
	ID        string
	Pos       RoomPosition
	Direction Direction
}

type FloorFurniture struct {
	ID        string
	Defname   string
	X, Y      int
	Direction Direction
}

type WallFurniture struct {
	ID        string
	Defname   string
	X, Y      int
	Direction Direction
}

func (a Avatar) ObjectID() string         { return a.ID }
func (f FloorFurniture) ObjectID() string { return f.ID }
func (w WallFurniture) ObjectID() string  { return w.ID }

func (Avatar) roomObject()         {}
func (FloorFurniture) roomObject() {}
func (WallFurniture) roomObject()  {}
