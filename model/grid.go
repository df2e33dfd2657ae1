package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-torus/rules"
)

const (
	// DefaultRows and DefaultCols are the dimensions of every grid built by the exported constructors.
	DefaultRows uint32 = 64
	DefaultCols uint32 = 64

	aliveGlyph = '◼'
	deadGlyph  = '◻'

	historySize = 5
)

// ErrInvalidWorkers is returned by StepParallel when asked to run with fewer than one worker.
var ErrInvalidWorkers = errors.New("worker count must be at least 1")

// RandomSource supplies uniform values in [0,1). *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Coord is a row/column position on the grid.
type Coord struct {
	Row, Col uint32
}

// Grid is a fixed-size toroidal Game of Life board with one bit per cell, stored row-major.
type Grid struct {
	numRows uint32
	numCols uint32
	cells   *bitset.BitSet

	generation uint64
	version    uint64   // bumped on every mutation, invalidates CellViews
	history    []string // recent state hashes for cycle detection
}

// NewGrid creates an empty 64x64 grid.
func NewGrid() *Grid {
	return newGrid(DefaultRows, DefaultCols)
}

// NewInterestingGrid creates a grid where cell idx is alive when idx%2 == 0 or idx%7 == 0.
func NewInterestingGrid() *Grid {
	g := NewGrid()
	g.SeedInteresting()
	return g
}

// NewGliderGrid creates an empty grid with a single glider whose top-left corner is at the centre.
func NewGliderGrid() *Grid {
	g := NewGrid()
	g.SeedGlider()
	return g
}

// NewRandomGrid creates a grid where each cell is alive when src yields a value >= 0.5.
func NewRandomGrid(src RandomSource) *Grid {
	g := NewGrid()
	g.SeedRandom(src)
	return g
}

func newGrid(rows, cols uint32) *Grid {
	return &Grid{
		numRows: rows,
		numCols: cols,
		cells:   bitset.New(uint(rows) * uint(cols)),
	}
}

// RowCount returns the number of rows
func (g *Grid) RowCount() uint32 {
	return g.numRows
}

// ColCount returns the number of columns
func (g *Grid) ColCount() uint32 {
	return g.numCols
}

// Generation returns how many times the grid has been stepped since it was last seeded or cleared.
func (g *Grid) Generation() uint64 {
	return g.generation
}

// Cells returns a read-only view of the packed cell storage. The view is
// valid until the next mutating call on g.
func (g *Grid) Cells() CellView {
	return CellView{
		grid:    g,
		words:   g.cells.Words(),
		rows:    g.numRows,
		cols:    g.numCols,
		version: g.version,
	}
}

// SeedInteresting clears the grid and fills it with the deterministic stripe pattern.
func (g *Grid) SeedInteresting() {
	g.Clear()
	for idx := uint(0); idx < g.cells.Len(); idx++ {
		if idx%2 == 0 || idx%7 == 0 {
			g.cells.Set(idx)
		}
	}
}

// SeedGlider clears the grid and places a glider at (rows/2, cols/2).
func (g *Grid) SeedGlider() {
	g.Clear()
	g.AddGlider(int(g.numRows/2), int(g.numCols/2))
}

// SeedRandom clears the grid and flips a fair coin for every cell in row-major order.
func (g *Grid) SeedRandom(src RandomSource) {
	g.Clear()
	for idx := uint(0); idx < g.cells.Len(); idx++ {
		if src.Float64() >= 0.5 {
			g.cells.Set(idx)
		}
	}
}

// AddGlider sets the five cells of a glider with its top-left corner at (row, col).
func (g *Grid) AddGlider(row, col int) {
	glider := [5][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	for _, off := range glider {
		g.Set(row+off[0], col+off[1], true)
	}
}

// Clear kills every cell and resets generation and history.
func (g *Grid) Clear() {
	g.cells.ClearAll()
	g.generation = 0
	g.history = nil
	g.version++
}

// Set sets a cell to alive (true) or dead (false). Coordinates wrap around both axes.
func (g *Grid) Set(row, col int, alive bool) {
	g.cells.SetTo(g.wrappedIndex(row, col), alive)
	g.version++
}

// Get returns the state of a cell. Coordinates wrap around both axes.
func (g *Grid) Get(row, col int) bool {
	return g.cells.Test(g.wrappedIndex(row, col))
}

func (g *Grid) index(row, col uint32) uint {
	return uint(row)*uint(g.numCols) + uint(col)
}

func (g *Grid) wrappedIndex(row, col int) uint {
	r := wrap(row, int(g.numRows))
	c := wrap(col, int(g.numCols))
	return g.index(uint32(r), uint32(c))
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

// LiveNeighborCount counts the live cells among the 8 toroidal neighbors of (row, col).
func (g *Grid) LiveNeighborCount(row, col uint32) uint8 {
	var count uint8
	for _, dr := range [3]uint32{g.numRows - 1, 0, 1} {
		for _, dc := range [3]uint32{g.numCols - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr) % g.numRows
			c := (col + dc) % g.numCols
			if g.cells.Test(g.index(r, c)) {
				count++
			}
		}
	}
	return count
}

// evolveRows writes the next state of rows [from, to) into dst, reading only g.cells.
func (g *Grid) evolveRows(dst *bitset.BitSet, from, to uint32) {
	for r := from; r < to; r++ {
		for c := uint32(0); c < g.numCols; c++ {
			idx := g.index(r, c)
			next := rules.CellOf(g.cells.Test(idx)).Next(int(g.LiveNeighborCount(r, c)))
			dst.SetTo(idx, next.IsAlive())
		}
	}
}

func (g *Grid) replaceCells(next *bitset.BitSet) {
	g.cells = next
	g.generation++
	g.version++
}

// Step advances the grid one generation. All cells flip at once; neighbor
// counts are always taken from the previous generation.
func (g *Grid) Step() {
	next := g.cells.Clone()
	g.evolveRows(next, 0, g.numRows)
	g.replaceCells(next)
}

// StepParallel advances the grid one generation, splitting rows into bands
// evaluated by up to workers goroutines. The result is identical to Step.
func (g *Grid) StepParallel(workers int) error {
	if workers < 1 {
		return errors.Wrapf(ErrInvalidWorkers, "[StepParallel] got %d", workers)
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (g.numRows + uint32(workers) - 1) / uint32(workers) // Ceiling division
		bands         = make([]*bitset.BitSet, 0, workers)
	)
	eg.SetLimit(workers)

	// Each band owns its buffer so no two goroutines write the same word.
	for start := uint32(0); start < g.numRows; start += rowsPerWorker {
		end := min(start+rowsPerWorker, g.numRows)
		band := bitset.New(g.cells.Len())
		bands = append(bands, band)

		eg.Go(func() error {
			g.evolveRows(band, start, end)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "[StepParallel] band evaluation failed")
	}

	next := bitset.New(g.cells.Len())
	for _, band := range bands {
		next.InPlaceUnion(band)
	}
	g.replaceCells(next)
	return nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() int {
	return int(g.cells.Count())
}

// LiveCells returns the coordinates of every living cell in row-major order.
func (g *Grid) LiveCells() []Coord {
	live := make([]Coord, 0, g.cells.Count())
	for idx, ok := g.cells.NextSet(0); ok; idx, ok = g.cells.NextSet(idx + 1) {
		live = append(live, Coord{
			Row: uint32(idx / uint(g.numCols)),
			Col: uint32(idx % uint(g.numCols)),
		})
	}
	return live
}

// Equal reports whether both grids have the same dimensions and cell states.
func (g *Grid) Equal(other *Grid) bool {
	return g.numRows == other.numRows &&
		g.numCols == other.numCols &&
		g.cells.Equal(other.cells)
}

// Render returns one line per row, one glyph per cell, each line ending in a newline.
func (g *Grid) Render() string {
	var sb strings.Builder
	sb.Grow(int(g.numRows) * (int(g.numCols)*len(string(aliveGlyph)) + 1))

	for r := uint32(0); r < g.numRows; r++ {
		for c := uint32(0); c < g.numCols; c++ {
			if g.cells.Test(g.index(r, c)) {
				sb.WriteRune(aliveGlyph)
			} else {
				sb.WriteRune(deadGlyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (g *Grid) String() string {
	return g.Render()
}

// GetGridHash returns an MD5 hash of the packed cell state
func (g *Grid) GetGridHash() string {
	words := g.cells.Words()
	buf := make([]byte, 0, len(words)*8)
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return fmt.Sprintf("%x", md5.Sum(buf))
}

// UpdateHistory adds current state to history and maintains size
func (g *Grid) UpdateHistory() {
	g.history = append(g.history, g.GetGridHash())

	if len(g.history) > historySize {
		g.history = g.history[1:]
	}
}

// IsStagnant reports whether the most recently recorded state matches one of
// the three recorded before it, i.e. the grid is static or cycling with period <= 3.
func (g *Grid) IsStagnant() bool {
	n := len(g.history)
	if n < 2 {
		return false
	}

	latest := g.history[n-1]
	for _, h := range g.history[max(0, n-4) : n-1] {
		if h == latest {
			return true
		}
	}
	return false
}

// InjectRandomLife sets count randomly chosen cells alive to break stagnation
func (g *Grid) InjectRandomLife(src RandomSource, count int) {
	for range count {
		row := int(src.Float64() * float64(g.numRows))
		col := int(src.Float64() * float64(g.numCols))
		g.Set(row, col, true)
	}
}
