package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_Update(t *testing.T) {
	s := NewStats()

	s.Update(1, 100, 400, 100*time.Millisecond)
	assert.Equal(t, 1, s.TotalGenerations)
	assert.Equal(t, 100, s.ActiveCells)
	assert.InDelta(t, 25.0, s.Density, 1e-9)
	assert.InDelta(t, 10.0, s.GenerationsPerSecond, 1e-9)
	assert.InDelta(t, 100.0, s.AveragePopulation, 1e-9)

	s.Update(2, 200, 400, 0)
	assert.InDelta(t, 110.0, s.AveragePopulation, 1e-9)
	assert.InDelta(t, 10.0, s.GenerationsPerSecond, 1e-9, "zero duration keeps the last rate")
	assert.GreaterOrEqual(t, s.Runtime(), time.Duration(0))
}
