package house_test

import (
	"errors"
	"testing"

	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/house/housetest"
	. "github.com/smartystreets/goconvey/convey"
)

// Classifies one row of cells as back-wall edges with a door at doorCol.
type rowStub struct {
	row     int
	doorCol int
	heights []int
}

func (rs rowStub) Classify(tm house.Tilemap, col, row int) house.TileInfo {
	if row != rs.row || col >= len(rs.heights) {
		return house.TileInfo{}
	}
	return house.TileInfo{
		Height:  rs.heights[col],
		RowEdge: true,
		RowDoor: col == rs.doorCol,
	}
}

func TestWalls(t *testing.T) {
	Convey("house.RowWalls", t, RowWallSpecs)
	Convey("house.ColumnWalls", t, ColumnWallSpecs)
	Convey("house.ExtractWalls", t, ExtractWallSpecs)
}

func RowWallSpecs() {
	Convey("a door splits a run of edges", func() {
		tm := housetest.GivenAFlatTilemap(5, 1)
		walls, err := house.RowWalls(tm, rowStub{row: 1, doorCol: 3, heights: []int{2, 1, 3, 0, 4}})
		So(err, ShouldBeNil)
		So(walls, ShouldResemble, []house.WallSegment{
			{Start: 4, End: 4, Fixed: 0, Height: 4},
			{Start: 0, End: 2, Fixed: 0, Height: 1},
		})
		So(walls[0].Length(), ShouldEqual, 1)
		So(walls[1].Length(), ShouldEqual, 3)
	})

	Convey("a closed rectangle has one back wall", func() {
		tm := housetest.GivenATilemap("xxxxx\nx0000\nx0000\nx0000")
		walls, err := house.RowWalls(tm, house.AdjacencyClassifier{})
		So(err, ShouldBeNil)
		So(walls, ShouldResemble, []house.WallSegment{{Start: 1, End: 4, Fixed: 0, Height: 0}})
	})

	Convey("a wall is as high as the lowest tile under it", func() {
		tm := house.Tilemap{
			{house.Void(), house.Void(), house.Void(), house.Void()},
			{house.Void(), house.Tile(3), house.Tile(1), house.Tile(2)},
			{house.Void(), house.Tile(0), house.Tile(0), house.Tile(0)},
		}
		walls, err := house.RowWalls(tm, house.AdjacencyClassifier{})
		So(err, ShouldBeNil)
		So(walls, ShouldResemble, []house.WallSegment{{Start: 1, End: 3, Fixed: 0, Height: 1}})
	})

	Convey("a door tile in the back wall leaves a gap", func() {
		tm := housetest.GivenATilemap("xxxxxx\nxxxx0x\nx00000\nx00000")
		walls, err := house.RowWalls(tm, house.AdjacencyClassifier{})
		So(err, ShouldBeNil)
		So(walls, ShouldResemble, []house.WallSegment{
			{Start: 5, End: 5, Fixed: 1, Height: 0},
			{Start: 1, End: 3, Fixed: 1, Height: 0},
		})
	})

	Convey("later rows only get walls left of the walls already found", func() {
		tm := housetest.GivenATilemap("xxxxx\nxxx00\nx0000\nx0000")
		walls, err := house.RowWalls(tm, house.AdjacencyClassifier{})
		So(err, ShouldBeNil)
		So(walls, ShouldResemble, []house.WallSegment{
			{Start: 3, End: 4, Fixed: 0, Height: 0},
			{Start: 1, End: 2, Fixed: 1, Height: 0},
		})
	})

	Convey("an all void tilemap has no walls", func() {
		walls, err := house.RowWalls(house.Tilemap{{house.Void()}}, house.AdjacencyClassifier{})
		So(err, ShouldBeNil)
		So(walls, ShouldBeEmpty)
	})

	Convey("rejects malformed tilemaps", func() {
		_, err := house.RowWalls(house.Tilemap{}, house.AdjacencyClassifier{})
		So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)
		_, err = house.RowWalls(house.Tilemap{{house.Void()}, {}}, house.AdjacencyClassifier{})
		So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)
	})
}

func ColumnWallSpecs() {
	Convey("a closed rectangle has one left wall", func() {
		tm := housetest.GivenATilemap("xxxxx\nx0000\nx0000\nx0000")
		walls, err := house.ColumnWalls(tm, house.AdjacencyClassifier{})
		So(err, ShouldBeNil)
		So(walls, ShouldResemble, []house.WallSegment{{Start: 1, End: 3, Fixed: 0, Height: 0}})
	})

	Convey("a door tile in the left wall leaves a gap", func() {
		tm := housetest.GivenATilemap("xxxx\nx000\n0000\nx000\nx000")
		walls, err := house.ColumnWalls(tm, house.AdjacencyClassifier{})
		So(err, ShouldBeNil)
		So(walls, ShouldResemble, []house.WallSegment{
			{Start: 3, End: 4, Fixed: 0, Height: 0},
			{Start: 1, End: 1, Fixed: 0, Height: 0},
		})
	})

	Convey("rejects malformed tilemaps", func() {
		_, err := house.ColumnWalls(house.Tilemap{{}}, house.AdjacencyClassifier{})
		So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)
	})
}

func ExtractWallSpecs() {
	Convey("a door tile in the back wall gets no wall of its own", func() {
		tm := housetest.GivenATilemap("xxxxxx\nxxxx0x\nx00000\nx00000")
		walls, err := house.ExtractWalls(tm)
		So(err, ShouldBeNil)
		So(walls.Columns, ShouldResemble, []house.WallSegment{{Start: 2, End: 3, Fixed: 0, Height: 0}})
		So(len(walls.Rows), ShouldEqual, 2)
	})

	Convey("Translate moves both kinds of segment", func() {
		walls := house.WallSet{
			Rows:    []house.WallSegment{{Start: 1, End: 4, Fixed: 0, Height: 2}},
			Columns: []house.WallSegment{{Start: 1, End: 3, Fixed: 0, Height: 2}},
		}
		moved := walls.Translate(-1, -2)
		So(moved.Rows[0], ShouldResemble, house.WallSegment{Start: 0, End: 3, Fixed: -2, Height: 2})
		So(moved.Columns[0], ShouldResemble, house.WallSegment{Start: -1, End: 1, Fixed: -1, Height: 2})
	})
}
