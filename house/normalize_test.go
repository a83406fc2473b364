package house_test

import (
	"errors"
	"testing"

	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/house/housetest"
	"github.com/caffeine-storm/isoroom/house/perspective"
	. "github.com/smartystreets/goconvey/convey"
)

var normalizeFixtures = []string{
	"00\n00",
	"xxxx\nx000\nx000",
	"xxxx\nx000\n0000\nx000",
	"0000\nx000",
	"xxx\n000\n000",
	"x\n0",
	"0",
	"xxxxx\nxxx0x\nx0000\nx0000",
}

func TestNormalize(t *testing.T) {
	Convey("house.Normalize", t, NormalizeSpecs)
}

func NormalizeSpecs() {
	Convey("pads both a walkable top row and a walkable left column", func() {
		tm := housetest.GivenATilemap("00\n00")
		out, off, err := house.Normalize(tm)
		So(err, ShouldBeNil)
		So(off, ShouldResemble, perspective.Offsets{X: 1, Y: 1})
		So(out.String(), ShouldEqual, "xxx\nx00\nx00")
	})

	Convey("leaves an already closed room alone", func() {
		tm := housetest.GivenATilemap("xxxx\nx000\nx000")
		out, off, err := house.Normalize(tm)
		So(err, ShouldBeNil)
		So(off, ShouldResemble, perspective.Offsets{})
		So(out, ShouldResemble, tm)
	})

	Convey("does not pad for a single door cell on the left border", func() {
		tm := housetest.GivenATilemap("xxxx\nx000\n0000\nx000")
		_, off, err := house.Normalize(tm)
		So(err, ShouldBeNil)
		So(off, ShouldResemble, perspective.Offsets{})
	})

	Convey("pads only the top when the left column is closed", func() {
		tm := housetest.GivenATilemap("x000\nx000")
		out, off, err := house.Normalize(tm)
		So(err, ShouldBeNil)
		So(off, ShouldResemble, perspective.Offsets{X: 0, Y: 1})
		So(out.Rows(), ShouldEqual, 3)
	})

	Convey("does not modify its input", func() {
		tm := housetest.GivenATilemap("00\n00")
		before := tm.String()
		_, _, err := house.Normalize(tm)
		So(err, ShouldBeNil)
		So(tm.String(), ShouldEqual, before)
	})

	Convey("is idempotent", func() {
		for _, text := range normalizeFixtures {
			once, _, err := house.Normalize(housetest.GivenATilemap(text))
			So(err, ShouldBeNil)
			twice, off, err := house.Normalize(once)
			So(err, ShouldBeNil)
			So(off, ShouldResemble, perspective.Offsets{})
			So(twice, ShouldResemble, once)
		}
	})

	Convey("rejects empty and ragged tilemaps", func() {
		_, _, err := house.Normalize(house.Tilemap{})
		So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)

		_, _, err = house.Normalize(house.Tilemap{{house.Tile(0), house.Tile(0)}, {house.Tile(0)}})
		So(errors.Is(err, house.ErrInvalidTilemap), ShouldBeTrue)
	})
}
