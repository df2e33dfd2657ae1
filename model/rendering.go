package model

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	// ansiClear moves the cursor home and clears the screen.
	ansiClear = "\033[H\033[2J"
)

// TerminalRenderer writes grids to a terminal
type TerminalRenderer struct {
	out io.Writer
}

func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

// Display writes the glyph rendering of the grid
func (r *TerminalRenderer) Display(g *Grid) error {
	if _, err := io.WriteString(r.out, g.Render()); err != nil {
		return errors.Wrap(err, "[Display] failed to write grid")
	}
	return nil
}

// DisplayBlocks draws the grid from a cell view, two columns per cell.
func (r *TerminalRenderer) DisplayBlocks(view CellView) error {
	w := bufio.NewWriter(r.out)
	for row := range view.Rows() {
		for col := range view.Cols() {
			if view.Alive(row, col) {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "[DisplayBlocks] failed to write grid")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	if _, err := io.WriteString(r.out, ansiClear); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
