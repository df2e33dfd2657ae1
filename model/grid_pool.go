package model

import "sync"

// GridToPool returns a grid to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles default-size grids across restarts
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return NewGrid()
			},
		},
	}
}

// Get retrieves an empty grid from the pool
func (p *GridPool) Get() *Grid {
	return p.pool.Get().(*Grid)
}

// Put clears the grid and returns it to the pool
func (p *GridPool) Put(g *Grid) {
	g.Clear()
	p.pool.Put(g)
}
