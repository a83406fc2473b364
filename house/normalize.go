package house

import "github.com/caffeine-storm/isoroom/house/perspective"

// Pads tm so that its top row is entirely void and, when more than one row
// starts with a walkable cell, so that its left column is entirely void. The
// wall passes rely on both. The returned offsets say how many rows/columns
// were inserted (0 or 1 each); tm itself is never modified.
//
// Normalizing an already normalized tilemap is a no-op with zero offsets.
func Normalize(tm Tilemap) (Tilemap, perspective.Offsets, error) {
	var off perspective.Offsets
	if err := tm.Validate(); err != nil {
		return nil, off, err
	}

	out := tm.Clone()
	width := out.Cols()

	if rowHasWalkable(out[0]) {
		top := make([]Cell, width)
		for i := range top {
			top[i] = Void()
		}
		out = append(Tilemap{top}, out...)
		off.Y = 1
	}

	leading := 0
	for _, row := range out {
		if row[0].Walkable() {
			leading++
		}
	}
	// A single walkable cell on the left border is a door; it does not need a
	// wall behind it.
	if leading > 1 {
		for i := range out {
			out[i] = append([]Cell{Void()}, out[i]...)
		}
		off.X = 1
	}

	return out, off, nil
}

func rowHasWalkable(row []Cell) bool {
	for _, cell := range row {
		if cell.Walkable() {
			return true
		}
	}
	return false
}
