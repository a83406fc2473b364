package house

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/MobRulesGames/GoLLRB/llrb"
	"github.com/caffeine-storm/isoroom/logging"
)

// Values below zero in a NavGrid are not heights.
const (
	NavBlocked  = -1
	NavLayable  = -2
	NavSittable = -3
)

// The column searched for the room's entry point. This matches the layouts
// the rooms are authored with rather than anything general.
const DoorColumn = 3

// A NavGrid is indexed [row][col] and always has the shape of the tilemap it
// came from.
type NavGrid [][]int

// Void cells are blocked; tiles and stairs keep their height.
func BaseGrid(tm Tilemap) NavGrid {
	grid := make(NavGrid, len(tm))
	for row := range tm {
		grid[row] = make([]int, len(tm[row]))
		for col, cell := range tm[row] {
			if cell.Walkable() {
				grid[row][col] = cell.Height
			} else {
				grid[row][col] = NavBlocked
			}
		}
	}
	return grid
}

func (g NavGrid) Clone() NavGrid {
	out := make(NavGrid, len(g))
	for row := range g {
		out[row] = append([]int(nil), g[row]...)
	}
	return out
}

func (g NavGrid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g NavGrid) Height() int {
	return len(g)
}

func (g NavGrid) At(x, y int) (int, bool) {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return 0, false
	}
	return g[y][x], true
}

// One piece of furniture stamped onto a cell, with the def it was stamped
// with.
type Occupant struct {
	Object FloorFurniture
	Def    *FurnitureDef
}

type occupiedCell struct {
	row, col  int
	occupants []Occupant
}

func cellLess(_a, _b interface{}) bool {
	a := _a.(*occupiedCell)
	b := _b.(*occupiedCell)
	if a.row != b.row {
		return a.row < b.row
	}
	return a.col < b.col
}

// Maps cells to the furniture stamped on them, in stamping order. Built once
// per recompute and never changed after it is published.
type OccupancyIndex struct {
	tree *llrb.Tree
}

func newOccupancyIndex() *OccupancyIndex {
	return &OccupancyIndex{tree: llrb.New(cellLess)}
}

func (ix *OccupancyIndex) add(row, col int, occ Occupant) {
	if found := ix.tree.Get(&occupiedCell{row: row, col: col}); found != nil {
		cell := found.(*occupiedCell)
		cell.occupants = append(cell.occupants, occ)
		return
	}
	ix.tree.ReplaceOrInsert(&occupiedCell{row: row, col: col, occupants: []Occupant{occ}})
}

// Returns a copy of the occupants of (row, col).
func (ix *OccupancyIndex) At(row, col int) []Occupant {
	found := ix.tree.Get(&occupiedCell{row: row, col: col})
	if found == nil {
		return nil
	}
	return append([]Occupant(nil), found.(*occupiedCell).occupants...)
}

// Number of occupied cells.
func (ix *OccupancyIndex) Len() int {
	return ix.tree.Len()
}

// A Snapshot is a navigation grid and occupancy index that were computed
// together. Snapshots are never modified once published.
type Snapshot struct {
	grid  NavGrid
	index *OccupancyIndex

	// Which recompute produced this snapshot; 0 for the furniture-free one
	// built at construction.
	Generation uint64
}

func (s *Snapshot) Width() int {
	return s.grid.Width()
}

func (s *Snapshot) Height() int {
	return s.grid.Height()
}

func (s *Snapshot) At(x, y int) (int, bool) {
	return s.grid.At(x, y)
}

// Returns a grid the caller is free to modify.
func (s *Snapshot) CloneGrid() NavGrid {
	return s.grid.Clone()
}

func (s *Snapshot) Occupants(x, y int) []Occupant {
	return s.index.At(y, x)
}

func (s *Snapshot) OccupiedCells() int {
	return s.index.Len()
}

// OccupancyGrid owns a room's navigation grid. Recompute builds a fresh grid
// from the furniture in the room and publishes it in one step, so readers
// always see a complete grid.
//
// Recomputes are not serialized against each other: when two overlap, the
// one that finishes last is the one that stays published. A recompute whose
// ctx is cancelled before its furniture info arrives publishes nothing and
// leaves the current snapshot in place.
type OccupancyGrid struct {
	base NavGrid
	info FurnitureInfoSource

	doorRow, doorCol int
	hasDoor          bool

	generation atomic.Uint64
	current    atomic.Pointer[Snapshot]
}

func NewOccupancyGrid(tm Tilemap, info FurnitureInfoSource) *OccupancyGrid {
	og := &OccupancyGrid{
		base: BaseGrid(tm),
		info: info,
	}
	for row := range og.base {
		if DoorColumn < len(og.base[row]) && og.base[row][DoorColumn] == 0 {
			og.doorRow, og.doorCol, og.hasDoor = row, DoorColumn, true
			break
		}
	}
	og.current.Store(&Snapshot{
		grid:  og.base.Clone(),
		index: newOccupancyIndex(),
	})
	return og
}

// The room's entry point, if it has one.
func (og *OccupancyGrid) DoorCell() (row, col int, ok bool) {
	return og.doorRow, og.doorCol, og.hasDoor
}

func (og *OccupancyGrid) Snapshot() *Snapshot {
	return og.current.Load()
}

// Rebuilds the grid from objects. Only floor furniture is considered. Defs
// are fetched concurrently; a piece whose def can't be fetched is left out of
// the grid. Furniture is stamped in the order given once every fetch is done,
// so a later piece overwrites an earlier one on shared cells.
//
// If ctx is done before the fetches finish nothing is published and ctx's
// error is returned.
func (og *OccupancyGrid) Recompute(ctx context.Context, objects []RoomObject) (*Snapshot, error) {
	generation := og.generation.Add(1)

	var items []FloorFurniture
	for _, obj := range objects {
		switch o := obj.(type) {
		case FloorFurniture:
			items = append(items, o)
		case *FloorFurniture:
			items = append(items, *o)
		}
	}

	defs := make([]*FurnitureDef, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			def, err := og.info.InfoForFurniture(ctx, items[i])
			if err != nil {
				logging.Warn("Recompute: skipping furniture", "id", items[i].ID, "def", items[i].Defname, "err", err)
				return
			}
			if def == nil {
				logging.Warn("Recompute: skipping furniture without info", "id", items[i].ID, "def", items[i].Defname)
				return
			}
			defs[i] = def
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid := og.base.Clone()
	index := newOccupancyIndex()
	for i, item := range items {
		def := defs[i]
		if def == nil || def.Can_stand_on {
			continue
		}
		stamp(grid, index, item, def)
	}

	snap := &Snapshot{
		grid:       grid,
		index:      index,
		Generation: generation,
	}
	og.current.Store(snap)
	logging.Debug("Recompute: published", "generation", generation, "furniture", len(items), "occupied", index.Len())
	return snap, nil
}

func stamp(grid NavGrid, index *OccupancyIndex, item FloorFurniture, def *FurnitureDef) {
	dx, dy := def.Dims(item.Direction)
	value := def.Sentinel()
	for row := item.Y; row < item.Y+dy; row++ {
		for col := item.X; col < item.X+dx; col++ {
			if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
				continue
			}
			grid[row][col] = value
			index.add(row, col, Occupant{Object: item, Def: def})
		}
	}
}
