package rules

// Cell is the state of a single grid position.
type Cell uint8

const (
	Dead Cell = iota
	Alive
)

// CellOf converts a stored bit into a Cell.
func CellOf(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}

// IsAlive reports whether c is Alive.
func (c Cell) IsAlive() bool {
	return c == Alive
}

// Next returns the state of c in the following generation given its live neighbor count.
func (c Cell) Next(neighbors int) Cell {
	switch {
	case c == Alive && (neighbors == 2 || neighbors == 3):
		return Alive
	case c == Alive:
		// under- or over-population
		return Dead
	case neighbors == 3:
		// reproduction
		return Alive
	default:
		return c
	}
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules (B3/S23): (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return CellOf(alive).Next(neighbors).IsAlive()
}
