package housetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/caffeine-storm/isoroom/house"
)

// Parses text with house.ParseTilemap and panics on failure; for fixtures.
func GivenATilemap(text string) house.Tilemap {
	tm, err := house.ParseTilemap(text)
	if err != nil {
		panic(fmt.Errorf("bad fixture tilemap: %w", err))
	}
	return tm
}

// A flat 'cols' x 'rows' room at height 0 with a void border on top and on
// the left.
func GivenAFlatTilemap(cols, rows int) house.Tilemap {
	tm := make(house.Tilemap, rows+1)
	for row := range tm {
		tm[row] = make([]house.Cell, cols+1)
		for col := range tm[row] {
			if row == 0 || col == 0 {
				tm[row][col] = house.Void()
			} else {
				tm[row][col] = house.Tile(0)
			}
		}
	}
	return tm
}

// A furniture source that records every lookup and can be told to fail or to
// block until released.
type StubCatalog struct {
	Defs  map[string]*house.FurnitureDef
	Fails map[string]error

	// Lookups of a def with a gate wait for it to be closed before answering.
	Gates map[string]chan struct{}

	mutex   sync.Mutex
	lookups []string
}

var _ house.FurnitureInfoSource = (*StubCatalog)(nil)

func (sc *StubCatalog) InfoForFurniture(ctx context.Context, f house.FloorFurniture) (*house.FurnitureDef, error) {
	sc.mutex.Lock()
	sc.lookups = append(sc.lookups, f.Defname)
	gate := sc.Gates[f.Defname]
	sc.mutex.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := sc.Fails[f.Defname]; ok {
		return nil, err
	}
	return sc.Defs[f.Defname], nil
}

func (sc *StubCatalog) Lookups() []string {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	return append([]string(nil), sc.lookups...)
}

func Blocking(name string, x, y int) *house.FurnitureDef {
	return &house.FurnitureDef{Name: name, X_dim: x, Y_dim: y}
}
