package house

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoomFile is the on-disk description of a room: its heightmap and whatever
// is placed in it.
type RoomFile struct {
	Name      string            `yaml:"name"`
	Tilemap   string            `yaml:"tilemap"`
	Furniture []Placement       `yaml:"furniture"`
	WallItems []Placement       `yaml:"wall_items"`
	Avatars   []AvatarPlacement `yaml:"avatars"`
}

var ErrInvalidDirection = errors.New("invalid direction")

type Placement struct {
	ID  string `yaml:"id"`
	Def string `yaml:"def"`
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`

	// Falls back to the def's Default_dir, then North.
	Direction *int `yaml:"direction"`
}

type AvatarPlacement struct {
	ID        string `yaml:"id"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction int    `yaml:"direction"`
}

func LoadRoomFile(path string) (*RoomFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoomFile(data)
}

func ParseRoomFile(data []byte) (*RoomFile, error) {
	var rf RoomFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("couldn't decode room file: %w", err)
	}
	if rf.Tilemap == "" {
		return nil, fmt.Errorf("room %q: %w: missing tilemap", rf.Name, ErrInvalidTilemap)
	}
	if err := rf.checkDirections(); err != nil {
		return nil, fmt.Errorf("room %q: %w", rf.Name, err)
	}
	return &rf, nil
}

func (rf *RoomFile) checkDirections() error {
	for _, list := range [][]Placement{rf.Furniture, rf.WallItems} {
		for _, pl := range list {
			if pl.Direction != nil && !Direction(*pl.Direction).Valid() {
				return fmt.Errorf("%w %d for %q at %d,%d", ErrInvalidDirection, *pl.Direction, pl.Def, pl.X, pl.Y)
			}
		}
	}
	for _, pl := range rf.Avatars {
		if !Direction(pl.Direction).Valid() {
			return fmt.Errorf("%w %d for avatar %q", ErrInvalidDirection, pl.Direction, pl.ID)
		}
	}
	return nil
}

func (pl Placement) direction(info FurnitureInfoSource) Direction {
	if pl.Direction != nil {
		return Direction(*pl.Direction)
	}
	if info == nil {
		return North
	}
	def, err := info.InfoForFurniture(context.Background(), FloorFurniture{Defname: pl.Def, X: pl.X, Y: pl.Y})
	if err != nil || def == nil || !def.Default_dir.Valid() {
		return North
	}
	return def.Default_dir
}

func (pl Placement) id(kind string, i int) string {
	if pl.ID != "" {
		return pl.ID
	}
	return fmt.Sprintf("%s-%d", kind, i)
}

// Objects in file order: floor furniture first, then wall items, then avatars.
// Placements without a facing take their def's Default_dir from info.
func (rf *RoomFile) Objects(info FurnitureInfoSource) []RoomObject {
	var objects []RoomObject
	for i, pl := range rf.Furniture {
		objects = append(objects, FloorFurniture{
			ID:        pl.id("furniture", i),
			Defname:   pl.Def,
			X:         pl.X,
			Y:         pl.Y,
			Direction: pl.direction(info),
		})
	}
	for i, pl := range rf.WallItems {
		objects = append(objects, WallFurniture{
			ID:        pl.id("wall", i),
			Defname:   pl.Def,
			X:         pl.X,
			Y:         pl.Y,
			Direction: pl.direction(info),
		})
	}
	for i, pl := range rf.Avatars {
		id := pl.ID
		if id == "" {
			id = fmt.Sprintf("avatar-%d", i)
		}
		objects = append(objects, Avatar{
			ID:        id,
			Pos:       RoomPosition{X: pl.X, Y: pl.Y},
			Direction: Direction(pl.Direction),
		})
	}
	return objects
}

// Parses the tilemap and places every object in a new Room. Avatars are put
// at the height of the tile they stand on.
func (rf *RoomFile) Build(info FurnitureInfoSource) (*Room, error) {
	tm, err := ParseTilemap(rf.Tilemap)
	if err != nil {
		return nil, fmt.Errorf("room %q: %w", rf.Name, err)
	}
	room, err := NewRoom(rf.Name, tm, info)
	if err != nil {
		return nil, err
	}
	for _, obj := range rf.Objects(info) {
		if avatar, ok := obj.(Avatar); ok {
			avatar.Pos.Z = StandingHeight(room.TileAt(avatar.Pos.X, avatar.Pos.Y))
			obj = avatar
		}
		room.AddObject(obj)
	}
	return room, nil
}
