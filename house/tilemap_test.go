package house_test

import (
	"errors"
	"testing"

	"github.com/caffeine-storm/isoroom/house"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTilemap(t *testing.T) {
	Convey("house.ParseTilemap", t, ParseTilemapSpecs)
	Convey("house.Tilemap", t, TilemapSpecs)
}

func ParseTilemapSpecs() {
	Convey("reads void and heights", func() {
		tm, err := house.ParseTilemap("xxx\nx0a\nx91")
		So(err, ShouldBeNil)
		So(tm.Rows(), ShouldEqual, 3)
		So(tm.Cols(), ShouldEqual, 3)
		So(tm[0][0], ShouldResemble, house.Void())
		So(tm[1][1], ShouldResemble, house.Tile(0))
		So(tm[1][2], ShouldResemble, house.Tile(10))
		So(tm[2][1], ShouldResemble, house.Tile(9))
		So(tm[2][2], ShouldResemble, house.Tile(1))
	})

	Convey("ignores surrounding whitespace and blank lines", func() {
		tm, err := house.ParseTilemap("\n   xx\n\n   x0   \n")
		So(err, ShouldBeNil)
		So(tm.String(), ShouldEqual, "xx\nx0")
	})

	Convey("pads short rows with void", func() {
		tm, err := house.ParseTilemap("xxxx\nx0")
		So(err, ShouldBeNil)
		So(tm.Validate(), ShouldBeNil)
		So(tm[1][3], ShouldResemble, house.Void())
	})

	Convey("marks tiles in front of a higher neighbour as stairs", func() {
		tm, err := house.ParseTilemap("xxxx\nx111\nx000\nx003")
		So(err, ShouldBeNil)
		So(tm[2][1], ShouldResemble, house.Stairs(0))
		So(tm[2][2], ShouldResemble, house.Stairs(0))
		So(tm[1][1], ShouldResemble, house.Tile(1))
		So(tm[3][1], ShouldResemble, house.Tile(0))
		Convey("but not tiles two levels down", func() {
			steep, err := house.ParseTilemap("xx\nx3\nx1")
			So(err, ShouldBeNil)
			So(steep[2][1], ShouldResemble, house.Tile(1))
		})
	})

	Convey("rejects unknown characters", func() {
		_, err := house.ParseTilemap("xx\nx?")
		So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)
	})

	Convey("rejects empty input", func() {
		_, err := house.ParseTilemap(" \n \n")
		So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)
	})
}

func TilemapSpecs() {
	Convey("Validate", func() {
		So(errors.Is(house.Tilemap{}.Validate(), house.ErrInvalidTilemap), ShouldBeTrue)
		So(errors.Is(house.Tilemap{{}}.Validate(), house.ErrInvalidTilemap), ShouldBeTrue)
		ragged := house.Tilemap{
			{house.Void(), house.Void()},
			{house.Tile(0)},
		}
		So(errors.Is(ragged.Validate(), house.ErrInvalidTilemap), ShouldBeTrue)
		So(house.Tilemap{{house.Tile(0)}}.Validate(), ShouldBeNil)
	})

	Convey("At treats off-map cells as void", func() {
		tm := house.Tilemap{{house.Tile(2)}}
		So(tm.At(0, 0), ShouldResemble, house.Tile(2))
		So(tm.At(-1, 0).Walkable(), ShouldBeFalse)
		So(tm.At(0, 1).Walkable(), ShouldBeFalse)
	})

	Convey("Clone does not share rows", func() {
		tm := house.Tilemap{{house.Tile(2)}}
		clone := tm.Clone()
		clone[0][0] = house.Void()
		So(tm[0][0], ShouldResemble, house.Tile(2))
	})

	Convey("WalkableCount counts tiles and stairs", func() {
		tm := house.Tilemap{{house.Tile(0), house.Stairs(1), house.Void()}}
		So(tm.WalkableCount(), ShouldEqual, 2)
	})
}
