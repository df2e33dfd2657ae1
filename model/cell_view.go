package model

// CellView is a borrowed, read-only window onto a grid's packed cells: one
// bit per cell, row-major, bit i of the view living in Words()[i/64] at
// position i%64. It stays valid only until the next mutating call on the grid.
type CellView struct {
	grid    *Grid
	words   []uint64
	rows    uint32
	cols    uint32
	version uint64
}

// Len returns the number of cells covered by the view.
func (v CellView) Len() uint {
	return uint(v.rows) * uint(v.cols)
}

func (v CellView) Rows() uint32 { return v.rows }

func (v CellView) Cols() uint32 { return v.cols }

// Alive reports whether the cell at (row, col) was alive when the view was taken.
// row and col must be in range.
func (v CellView) Alive(row, col uint32) bool {
	idx := uint(row)*uint(v.cols) + uint(col)
	return v.words[idx>>6]&(1<<(idx&63)) != 0
}

// Words exposes the packed storage without copying. Callers must not modify it.
func (v CellView) Words() []uint64 {
	return v.words
}

// Valid reports whether the grid has not been mutated since the view was taken.
func (v CellView) Valid() bool {
	return v.grid != nil && v.grid.version == v.version
}
