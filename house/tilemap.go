package house

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTilemap = errors.New("invalid tilemap")

type CellKind int

const (
	CellVoid CellKind = iota
	CellTile
	CellStairs
)

func (k CellKind) String() string {
	switch k {
	case CellVoid:
		return "Void"
	case CellTile:
		return "Tile"
	case CellStairs:
		return "Stairs"
	}
	return fmt.Sprintf("invalid cell kind (%d)", int(k))
}

// A Cell is one square of a room's tilemap. Height is meaningless for void
// cells.
type Cell struct {
	Kind   CellKind
	Height int
}

func Void() Cell {
	return Cell{Kind: CellVoid}
}

func Tile(height int) Cell {
	return Cell{Kind: CellTile, Height: height}
}

func Stairs(height int) Cell {
	return Cell{Kind: CellStairs, Height: height}
}

func (c Cell) Walkable() bool {
	return c.Kind == CellTile || c.Kind == CellStairs
}

func (c Cell) String() string {
	if c.Kind == CellVoid {
		return "Void"
	}
	return fmt.Sprintf("%v(%d)", c.Kind, c.Height)
}

// A Tilemap is indexed [row][col].
type Tilemap [][]Cell

// Returns ErrInvalidTilemap if tm has no cells or if its rows differ in
// length.
func (tm Tilemap) Validate() error {
	if len(tm) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidTilemap)
	}
	width := len(tm[0])
	if width == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidTilemap)
	}
	for row := range tm {
		if len(tm[row]) != width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidTilemap, row, len(tm[row]), width)
		}
	}
	return nil
}

func (tm Tilemap) Rows() int {
	return len(tm)
}

func (tm Tilemap) Cols() int {
	if len(tm) == 0 {
		return 0
	}
	return len(tm[0])
}

// Returns the cell at (col, row); anything outside of the map is void.
func (tm Tilemap) At(col, row int) Cell {
	if row < 0 || row >= len(tm) || col < 0 || col >= len(tm[row]) {
		return Void()
	}
	return tm[row][col]
}

func (tm Tilemap) walkable(col, row int) bool {
	return tm.At(col, row).Walkable()
}

func (tm Tilemap) Clone() Tilemap {
	out := make(Tilemap, len(tm))
	for row := range tm {
		out[row] = append([]Cell(nil), tm[row]...)
	}
	return out
}

func (tm Tilemap) WalkableCount() int {
	count := 0
	for _, row := range tm {
		for _, cell := range row {
			if cell.Walkable() {
				count++
			}
		}
	}
	return count
}

// Renders tm back into the text form understood by ParseTilemap. Stairs are
// written as their height.
func (tm Tilemap) String() string {
	var sb strings.Builder
	for row := range tm {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range tm[row] {
			sb.WriteByte(heightChar(cell))
		}
	}
	return sb.String()
}

const heightDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

func heightChar(c Cell) byte {
	if !c.Walkable() || c.Height < 0 || c.Height >= len(heightDigits) {
		return 'x'
	}
	return heightDigits[c.Height]
}

// Parses the classic heightmap text format: one line per row, 'x' for void
// and '0'-'9' then 'a'-'z' for tiles of height 0 through 35. Surrounding
// whitespace and blank lines are ignored and short rows are padded with void.
// Tiles that sit directly in front of a tile one level higher (above or to
// the left of them) become stairs.
func ParseTilemap(text string) (Tilemap, error) {
	var tm Tilemap
	width := 0
	for lineno, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]Cell, 0, len(line))
		for i := 0; i < len(line); i++ {
			ch := line[i]
			switch {
			case ch == 'x' || ch == 'X':
				row = append(row, Void())
			case ch >= '0' && ch <= '9':
				row = append(row, Tile(int(ch-'0')))
			case ch >= 'a' && ch <= 'z':
				row = append(row, Tile(10+int(ch-'a')))
			default:
				return nil, fmt.Errorf("%w: line %d: unexpected %q", ErrInvalidTilemap, lineno+1, ch)
			}
		}
		if len(row) > width {
			width = len(row)
		}
		tm = append(tm, row)
	}
	if len(tm) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidTilemap)
	}
	for i := range tm {
		for len(tm[i]) < width {
			tm[i] = append(tm[i], Void())
		}
	}
	markStairs(tm)
	return tm, nil
}

func markStairs(tm Tilemap) {
	for row := range tm {
		for col := range tm[row] {
			cell := tm[row][col]
			if cell.Kind != CellTile {
				continue
			}
			up := tm.At(col, row-1)
			left := tm.At(col-1, row)
			if (up.Walkable() && up.Height == cell.Height+1) || (left.Walkable() && left.Height == cell.Height+1) {
				tm[row][col] = Stairs(cell.Height)
			}
		}
	}
}
