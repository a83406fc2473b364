package game

import "github.com/caffeine-storm/isoroom/house"

// gridGraph exposes a navigation grid to algorithm.Dijkstra. Vertex v is the
// cell (v % width, v / width). Only 4-connected steps onto walkable cells
// are edges and every step costs the same.
type gridGraph struct {
	grid house.NavGrid
}

func (gg *gridGraph) NumVertex() int {
	return gg.grid.Width() * gg.grid.Height()
}

func (gg *gridGraph) Adjacent(v int) ([]int, []float64) {
	x, y := gg.fromVertex(v)
	var adj []int
	var cost []float64
	for _, step := range [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		nx, ny := x+step[0], y+step[1]
		value, ok := gg.grid.At(nx, ny)
		if !ok || !traversable(value) {
			continue
		}
		adj = append(adj, gg.toVertex(nx, ny))
		cost = append(cost, 1)
	}
	return adj, cost
}

func (gg *gridGraph) toVertex(x, y int) int {
	return y*gg.grid.Width() + x
}

func (gg *gridGraph) fromVertex(v int) (x, y int) {
	w := gg.grid.Width()
	return v % w, v / w
}

func (gg *gridGraph) contains(p GridPoint) bool {
	_, ok := gg.grid.At(p.X, p.Y)
	return ok
}

// Only cells at height 0 or 1 can be walked across. Taller tiles and every
// sentinel are off limits.
func traversable(value int) bool {
	return value == 0 || value == 1
}
