package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/caffeine-storm/isoroom/house"
	"github.com/caffeine-storm/isoroom/logging"
	"github.com/runningwild/glop/util/algorithm"
)

var ErrSearchNotStarted = errors.New("search was never started")

type GridPoint struct {
	X, Y int
}

func (p GridPoint) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// A Searcher prepares path searches over a navigation grid.
type Searcher interface {
	NewSearch(grid house.NavGrid, from, to GridPoint) Search
}

// A Search runs once. Nothing happens until Start is called; Wait then blocks
// until the search is over or ctx is done. A search that finds nothing
// returns an empty path, not an error. A path starts at 'from' and ends at
// 'to'.
type Search interface {
	Start()
	Wait(ctx context.Context) ([]GridPoint, error)
}

// Searches with glop's Dijkstra in a goroutine of its own.
type DijkstraSearcher struct{}

var _ Searcher = DijkstraSearcher{}

func (DijkstraSearcher) NewSearch(grid house.NavGrid, from, to GridPoint) Search {
	return &dijkstraSearch{
		graph: &gridGraph{grid: grid},
		from:  from,
		to:    to,
		done:  make(chan struct{}),
	}
}

type dijkstraSearch struct {
	graph    *gridGraph
	from, to GridPoint

	once    sync.Once
	started atomic.Bool
	done    chan struct{}
	path    []GridPoint
}

func (ds *dijkstraSearch) Start() {
	ds.once.Do(func() {
		ds.started.Store(true)
		go func() {
			defer close(ds.done)
			ds.path = ds.run()
		}()
	})
}

func (ds *dijkstraSearch) Wait(ctx context.Context) ([]GridPoint, error) {
	if !ds.started.Load() {
		return nil, ErrSearchNotStarted
	}
	select {
	case <-ds.done:
		return ds.path, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (ds *dijkstraSearch) run() []GridPoint {
	if !ds.graph.contains(ds.from) || !ds.graph.contains(ds.to) {
		return nil
	}
	if ds.from == ds.to {
		return []GridPoint{ds.from}
	}

	src := ds.graph.toVertex(ds.from.X, ds.from.Y)
	dst := ds.graph.toVertex(ds.to.X, ds.to.Y)
	cost, vertices := algorithm.Dijkstra(ds.graph, []int{src}, []int{dst})
	if len(vertices) > 1 && vertices[0] == dst && vertices[len(vertices)-1] == src {
		slices.Reverse(vertices)
	}
	if len(vertices) == 0 || vertices[len(vertices)-1] != dst {
		logging.Trace("dijkstraSearch: no path", "from", ds.from, "to", ds.to)
		return nil
	}

	path := make([]GridPoint, 0, len(vertices)+1)
	if vertices[0] != src {
		path = append(path, ds.from)
	}
	for _, v := range vertices {
		x, y := ds.graph.fromVertex(v)
		path = append(path, GridPoint{X: x, Y: y})
	}
	logging.Trace("dijkstraSearch: found path", "from", ds.from, "to", ds.to, "cost", cost, "steps", len(path)-1)
	return path
}
