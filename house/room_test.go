package house_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/house/perspective"
	. "github.com/smartystreets/goconvey/convey"
)

func givenARoom(name string) *house.Room {
	So(house.LoadAllFurnitureInDir(filepath.Join("testdata", "furniture")), ShouldBeNil)
	rf, err := house.LoadRoomFile(filepath.Join("testdata", "rooms", name+".yaml"))
	So(err, ShouldBeNil)
	room, err := rf.Build(house.Catalog{})
	So(err, ShouldBeNil)
	return room
}

func TestRoomFile(t *testing.T) {
	Convey("house.RoomFile", t, func() {
		So(house.LoadAllFurnitureInDir(filepath.Join("testdata", "furniture")), ShouldBeNil)
		rf, err := house.LoadRoomFile(filepath.Join("testdata", "rooms", "parlor.yaml"))
		So(err, ShouldBeNil)
		So(rf.Name, ShouldEqual, "parlor")

		objects := rf.Objects(house.Catalog{})
		So(len(objects), ShouldEqual, 6)

		Convey("names unnamed objects by kind and position", func() {
			So(objects[0].ObjectID(), ShouldEqual, "bed")
			So(objects[2].ObjectID(), ShouldEqual, "furniture-2")
			So(objects[4].ObjectID(), ShouldEqual, "wall-0")
			So(objects[5].ObjectID(), ShouldEqual, "guest")
		})

		Convey("falls back on the def's facing", func() {
			sofa, ok := objects[2].(house.FloorFurniture)
			So(ok, ShouldBeTrue)
			So(sofa.Direction, ShouldEqual, house.East)
		})

		Convey("falls back on north for unknown defs", func() {
			painting, ok := objects[4].(house.WallFurniture)
			So(ok, ShouldBeTrue)
			So(painting.Direction, ShouldEqual, house.North)
		})

		Convey("takes default facings from the catalog it is given", func() {
			catalog := house.StaticCatalog{
				"sofa": {Name: "sofa", X_dim: 2, Y_dim: 1, Default_dir: house.West},
			}
			sofa, ok := rf.Objects(catalog)[2].(house.FloorFurniture)
			So(ok, ShouldBeTrue)
			So(sofa.Direction, ShouldEqual, house.West)

			room, err := rf.Build(catalog)
			So(err, ShouldBeNil)
			for _, obj := range room.Objects() {
				if obj.ObjectID() == "furniture-2" {
					So(obj.(house.FloorFurniture).Direction, ShouldEqual, house.West)
				}
			}
		})

		Convey("refuses facings outside of the eight directions", func() {
			_, err := house.ParseRoomFile([]byte("name: odd\ntilemap: \"x0\"\nfurniture:\n  - def: sofa\n    x: 1\n    y: 0\n    direction: 9\n"))
			So(errors.Is(err, house.ErrInvalidDirection), ShouldBeTrue)

			_, err = house.ParseRoomFile([]byte("name: odd\ntilemap: \"x0\"\navatars:\n  - id: guest\n    x: 1\n    y: 0\n    direction: -1\n"))
			So(errors.Is(err, house.ErrInvalidDirection), ShouldBeTrue)
		})

		Convey("refuses a file without a tilemap", func() {
			_, err := house.ParseRoomFile([]byte("name: empty\n"))
			So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)
		})

		Convey("refuses a file that isn't yaml", func() {
			_, err := house.ParseRoomFile([]byte("name: [unterminated"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRoom(t *testing.T) {
	Convey("house.Room", t, func() {
		ctx := context.Background()
		room := givenARoom("parlor")

		Convey("knows what is under each cell", func() {
			kind, z := room.TileAt(3, 5)
			So(kind, ShouldEqual, house.TileTypeStairs)
			So(z, ShouldEqual, 0.0)
			kind, z = room.TileAt(4, 4)
			So(kind, ShouldEqual, house.TileTypeTile)
			So(z, ShouldEqual, 1.0)
			kind, _ = room.TileAt(0, 0)
			So(kind, ShouldEqual, house.TileTypeOther)
			kind, _ = room.TileAt(40, 40)
			So(kind, ShouldEqual, house.TileTypeOther)
		})

		Convey("stands avatars on the tile they were placed on", func() {
			var guest house.Avatar
			for _, obj := range room.Objects() {
				if a, ok := obj.(house.Avatar); ok {
					guest = a
				}
			}
			So(guest.ID, ShouldEqual, "guest")
			So(guest.Pos, ShouldResemble, house.RoomPosition{X: 3, Y: 5, Z: 0.5})

			flat, err := perspective.Project(3, 5, 0, room.Offsets())
			So(err, ShouldBeNil)
			p, err := room.ScreenPosition(guest.Pos)
			So(err, ShouldBeNil)
			So(p.X, ShouldEqual, flat.X)
			So(p.Y, ShouldEqual, flat.Y-16)
		})

		Convey("has its door in the door column", func() {
			door, ok := room.DoorPosition()
			So(ok, ShouldBeTrue)
			So(door, ShouldResemble, house.RoomPosition{X: 3, Y: 1})
		})

		Convey("needs no padding when it already has a void border", func() {
			So(room.Offsets(), ShouldResemble, perspective.Offsets{})
			walls, err := room.Walls()
			So(err, ShouldBeNil)
			expected, err := house.ExtractWalls(room.Tilemap())
			So(err, ShouldBeNil)
			So(walls, ShouldResemble, expected)
		})

		Convey("has the bounds of its tilemap", func() {
			b, err := room.Bounds()
			So(err, ShouldBeNil)
			expected, err := house.TilemapBounds(room.Tilemap(), room.Offsets())
			So(err, ShouldBeNil)
			So(b, ShouldResemble, expected)
		})

		Convey("stamps its furniture when recomputed", func() {
			snap, err := room.Recompute(ctx)
			So(err, ShouldBeNil)

			v, _ := snap.At(1, 3)
			So(v, ShouldEqual, house.NavLayable)
			v, _ = snap.At(5, 3)
			So(v, ShouldEqual, house.NavBlocked)
			v, _ = snap.At(2, 5)
			So(v, ShouldEqual, house.NavSittable)
			v, _ = snap.At(4, 5)
			So(v, ShouldEqual, 0)
			v, _ = snap.At(4, 4)
			So(v, ShouldEqual, 1)

			Convey("and forgets furniture that was removed", func() {
				So(room.RemoveObject("table"), ShouldBeTrue)
				So(room.RemoveObject("table"), ShouldBeFalse)
				So(len(room.FloorFurniture()), ShouldEqual, 3)

				snap, err := room.Recompute(ctx)
				So(err, ShouldBeNil)
				v, _ := snap.At(5, 3)
				So(v, ShouldEqual, 0)
			})
		})

		Convey("keeps a copy of the tilemap it was built from", func() {
			tm := room.Tilemap()
			tm[2][2] = house.Void()
			kind, _ := room.TileAt(2, 2)
			So(kind, ShouldEqual, house.TileTypeTile)
		})
	})

	Convey("a room without a void border", t, func() {
		room := givenARoom("hall")
		So(room.Offsets(), ShouldResemble, perspective.Offsets{X: 1, Y: 1})

		Convey("reports its walls in its own coordinates", func() {
			walls, err := room.Walls()
			So(err, ShouldBeNil)
			So(walls.Rows, ShouldResemble, []house.WallSegment{{Start: 0, End: 3, Fixed: -1, Height: 0}})
			So(walls.Columns, ShouldResemble, []house.WallSegment{{Start: 0, End: 1, Fixed: -1, Height: 0}})
		})
	})
}

func TestStandingHeight(t *testing.T) {
	Convey("house.StandingHeight", t, func() {
		So(house.StandingHeight(house.TileTypeTile, 2), ShouldEqual, 2.0)
		So(house.StandingHeight(house.TileTypeStairs, 2), ShouldEqual, 2.5)
		So(house.StandingHeight(house.TileTypeOther, 2), ShouldEqual, 0.0)
	})
}
