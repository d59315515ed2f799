// Package grid models the rectangular floor a robot cleans: a bounded board
// of cells that can hold dirt, obstacles, or a cleaned marker.
//
// Coordinates are (x, y) with x growing rightward across columns and y
// growing downward across rows. Every query is total: out-of-bounds
// coordinates answer false (or Empty) rather than panicking, and mutations
// outside the board are silent no-ops.
package grid

import "fmt"

// Grid is a width x height board of cells, stored row-major.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// maxCells caps how many cells a board may hold. New checks it by division
// so width*height can never overflow.
const maxCells = 1 << 24

// New returns an empty grid of the given dimensions.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: width and height must be positive, got %dx%d", width, height)
	}
	if width > maxCells/height {
		return nil, fmt.Errorf("grid: %dx%d exceeds the %d cell limit", width, height, maxCells)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y*g.width+x]
}

// IsObstacle reports whether (x, y) holds an obstacle. Out-of-bounds
// coordinates are not obstacles; movement rules treat them separately.
func (g *Grid) IsObstacle(x, y int) bool {
	return g.InBounds(x, y) && g.cells[y*g.width+x] == Obstacle
}

// IsDirt reports whether (x, y) holds dirt.
func (g *Grid) IsDirt(x, y int) bool {
	return g.InBounds(x, y) && g.cells[y*g.width+x] == Dirt
}

// AddDirt marks (x, y) as dirt, overwriting whatever was there. Last write
// wins; out-of-bounds coordinates are ignored.
func (g *Grid) AddDirt(x, y int) {
	g.set(x, y, Dirt)
}

// AddObstacle marks (x, y) as an obstacle, overwriting whatever was there.
func (g *Grid) AddObstacle(x, y int) {
	g.set(x, y, Obstacle)
}

// Clean marks (x, y) as cleaned. The write is unconditional for in-bounds
// cells, even ones that held an obstacle; callers that only want to clean
// dirt must check IsDirt first.
func (g *Grid) Clean(x, y int) {
	g.set(x, y, Cleaned)
}

func (g *Grid) set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// Count returns how many cells currently hold the given state.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Cells returns a row-major copy of the board. Callers own the slice.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}
