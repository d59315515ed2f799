package grid

// Cell is the state of a single floor cell.
type Cell uint8

const (
	Empty Cell = iota
	Dirt
	Obstacle
	Cleaned
)

// String returns the lowercase cell name.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Dirt:
		return "dirt"
	case Obstacle:
		return "obstacle"
	case Cleaned:
		return "cleaned"
	}
	return "unknown"
}

// Glyph returns the single-character display form of the cell.
func (c Cell) Glyph() byte {
	switch c {
	case Dirt:
		return 'D'
	case Obstacle:
		return 'X'
	case Cleaned:
		return '*'
	}
	return '.'
}
