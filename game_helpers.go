package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-torus/model"
	"github.com/sheikhrachel/go-gol-torus/utils"
)

// game is the state owned by the terminal loop
type game struct {
	config   utils.Config
	out      io.Writer
	logger   *slog.Logger
	grid     *model.Grid
	pool     *model.GridPool
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	rng      *rand.Rand
	seed     int64

	generation     int
	stagnantCount  int
	lastRestartGen int
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, out io.Writer, logger *slog.Logger) (*game, error) {
	rng, seed, err := utils.NewRandomSource(config.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to seed random source")
	}

	g := &game{
		config:   config,
		out:      out,
		logger:   logger,
		renderer: model.NewTerminalRenderer(out),
		stats:    utils.NewStats(),
		rng:      rng,
		seed:     seed,
	}
	if config.UseMemoryPool {
		g.pool = model.NewGridPool()
	}
	g.grid = newSeededGrid(config.Pattern, g.pool, rng)

	return g, nil
}

// newSeededGrid builds a grid, reusing a pooled one when a pool is given
func newSeededGrid(pattern string, pool *model.GridPool, src model.RandomSource) *model.Grid {
	if pool == nil {
		switch pattern {
		case utils.PatternInteresting:
			return model.NewInterestingGrid()
		case utils.PatternGlider:
			return model.NewGliderGrid()
		case utils.PatternRandom:
			return model.NewRandomGrid(src)
		default:
			return model.NewGrid()
		}
	}

	grid := pool.Get()
	switch pattern {
	case utils.PatternInteresting:
		grid.SeedInteresting()
	case utils.PatternGlider:
		grid.SeedGlider()
	case utils.PatternRandom:
		grid.SeedRandom(src)
	}
	return grid
}

// displayGameInfo shows the initial game information
func (g *game) displayGameInfo() {
	g.logger.Info("starting game",
		"pattern", g.config.Pattern,
		"seed", g.seed,
		"rows", g.grid.RowCount(),
		"cols", g.grid.ColCount(),
		"living", g.grid.CountLivingCells(),
		"parallel", g.config.UseParallel,
		"memory_pool", g.config.UseMemoryPool,
	)
}

// updateGameState records the current generation and returns the living cell count, status and stagnation
func (g *game) updateGameState(lastFrameTime time.Time) (int, string, bool) {
	livingCells := g.grid.CountLivingCells()
	totalCells := int(g.grid.RowCount()) * int(g.grid.ColCount())

	g.stats.Update(g.generation, livingCells, totalCells, time.Since(lastFrameTime))

	g.grid.UpdateHistory()
	isStagnant := g.grid.IsStagnant()

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, status, isStagnant
}

// displayGameStatus draws the status lines and the grid
func (g *game) displayGameStatus(livingCells int, status string) error {
	if err := g.renderer.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(g.out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		g.generation, livingCells, g.stats.Density, status)
	fmt.Fprintf(g.out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Runtime().Seconds())

	// Show time since last restart
	if g.generation > g.lastRestartGen {
		fmt.Fprintf(g.out, "Generations since restart: %d\n", g.generation-g.lastRestartGen)
	}
	fmt.Fprintln(g.out)

	if g.config.BlockView {
		return g.renderer.DisplayBlocks(g.grid.Cells())
	}
	return g.renderer.Display(g.grid)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame returns the current grid to the pool and seeds a fresh one
func (g *game) restartGame(reason string) {
	model.GridToPool(g.grid, g.pool)
	g.grid = newSeededGrid(g.config.Pattern, g.pool, g.rng)
	g.lastRestartGen = g.generation
	g.stagnantCount = 0

	g.logger.Info("restarted game", "reason", reason, "generation", g.generation, "living", g.grid.CountLivingCells())
}

// advance computes the next generation
func (g *game) advance() error {
	if g.config.UseParallel {
		return g.grid.StepParallel(g.config.Workers)
	}
	g.grid.Step()
	return nil
}

// run drives the game until the context is cancelled or the generation limit is reached
func run(ctx context.Context, out io.Writer, config utils.Config, logger *slog.Logger) error {
	g, err := initializeGame(config, out, logger)
	if err != nil {
		return err
	}
	g.displayGameInfo()

	lastFrameTime := time.Now()
	for {
		if ctx.Err() != nil {
			g.logger.Info("shutting down", "generations", g.generation,
				"runtime", g.stats.Runtime(), "avg_population", g.stats.AveragePopulation)
			return nil
		}

		frameStart := time.Now()
		livingCells, status, isStagnant := g.updateGameState(lastFrameTime)
		lastFrameTime = frameStart

		if isStagnant {
			g.stagnantCount++
		} else {
			g.stagnantCount = 0
		}

		if err = g.displayGameStatus(livingCells, status); err != nil {
			return errors.Wrapf(err, "[run] failed to render generation %d", g.generation)
		}

		if config.MaxGenerations > 0 && g.generation >= config.MaxGenerations {
			g.logger.Info("reached maximum generations", "limit", config.MaxGenerations)
			return nil
		}

		shouldRestart, reason := checkRestartConditions(livingCells, g.stagnantCount, config)
		if shouldRestart && config.AutoRestart {
			g.restartGame(reason)
		} else if g.stagnantCount >= 2 && g.stagnantCount < config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			g.logger.Debug("injecting life", "generation", g.generation, "count", config.InjectionCount)
			g.grid.InjectRandomLife(g.rng, config.InjectionCount)
		}

		if err = g.advance(); err != nil {
			return errors.Wrapf(err, "[run] failed to advance generation %d", g.generation)
		}
		g.generation++

		if config.FrameRate > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(config.FrameRate):
			}
		}
	}
}
