package model

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTerminalRenderer_Display(t *testing.T) {
	var buf bytes.Buffer
	g := NewGliderGrid()

	require.NoError(t, NewTerminalRenderer(&buf).Display(g))
	assert.Equal(t, g.Render(), buf.String())
}

func TestTerminalRenderer_DisplayBlocks(t *testing.T) {
	var buf bytes.Buffer
	g := newGrid(2, 3)
	g.Set(0, 0, true)
	g.Set(1, 2, true)

	require.NoError(t, NewTerminalRenderer(&buf).DisplayBlocks(g.Cells()))
	assert.Equal(t, "██    \n    ██\n", buf.String())
}

func TestTerminalRenderer_DisplayBlocksDefaultSize(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewTerminalRenderer(&buf).DisplayBlocks(NewGrid().Cells()))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 64)
	assert.Equal(t, strings.Repeat(gridPosEmpty, 64), lines[0])
}

func TestTerminalRenderer_Clear(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewTerminalRenderer(&buf).Clear())
	assert.Equal(t, ansiClear, buf.String())
}

func TestTerminalRenderer_WriteErrors(t *testing.T) {
	r := NewTerminalRenderer(failingWriter{})

	assert.ErrorContains(t, r.Display(NewGrid()), "[Display]")
	assert.ErrorContains(t, r.DisplayBlocks(NewGrid().Cells()), "[DisplayBlocks]")
	assert.ErrorContains(t, r.Clear(), "[Clear]")
}
