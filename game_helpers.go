package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/sheikhrachel/hexlife/engine"
	"github.com/sheikhrachel/hexlife/model"
	"github.com/sheikhrachel/hexlife/patterns"
	"github.com/sheikhrachel/hexlife/utils"
)

// periodicRestart forces a fresh soup every this many generations
const periodicRestart = 200

// game is the state of one headless session
type game struct {
	config  utils.Config
	sim     *engine.Simulation
	history *engine.History
	stats   *utils.Stats
	rng     *rand.Rand

	runID          string
	seed           int64
	generation     int
	stagnantCount  int
	lastRestartGen int
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config) (*game, error) {
	rule, err := config.ParseRule()
	if err != nil {
		return nil, err
	}

	workers := config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	eng := engine.New(
		engine.WithWorkers(workers),
		engine.WithRefractory(config.Refractory),
	)

	g := &game{
		config:  config,
		history: engine.NewHistory(config.StagnationThreshold),
		stats:   utils.NewStats(),
		rng:     rand.New(rand.NewPCG(uint64(config.Seed), 2)),
		seed:    config.Seed,
	}
	g.sim = engine.NewSimulation(eng, rule, g.newSoup())
	return g, nil
}

// newSoup seeds a fresh board for the current seed and starts a new run id
func (g *game) newSoup() *model.Board {
	g.runID = uuid.NewString()
	board := model.NewBoard()
	patterns.Soup(board, g.config.Soup(g.seed))
	return board
}

// logGameInfo shows the initial game information
func (g *game) logGameInfo() {
	board := g.sim.Board()
	slog.Info("hexlife starting",
		"run", g.runID,
		"rule", g.sim.Rule().String(),
		"workers", g.config.Workers,
		"refractory", g.config.Refractory,
		"seed", g.seed,
		"live_edges", board.LiveCount(),
		"hexes", board.Len(),
	)
}

// updateGameState updates the stats and stagnation history and returns
// status information
func (g *game) updateGameState(lastFrameTime time.Time) (int, string, bool) {
	board := g.sim.Board()
	livingEdges := board.LiveCount()

	g.stats.Update(g.generation, livingEdges, board.Len(), time.Since(lastFrameTime))
	isStagnant := g.history.Record(board)

	status := "active"
	if isStagnant {
		status = "stagnant"
	}
	if livingEdges == 0 {
		status = "extinct"
	}
	return livingEdges, status, isStagnant
}

// logGameStatus shows the current game status
func (g *game) logGameStatus(status string) {
	last := g.sim.LastStats()
	slog.Debug("generation",
		"run", g.runID,
		"gen", g.generation,
		"status", status,
		"live_edges", g.stats.LiveEdges,
		"born", last.Born,
		"died", last.Died,
		"decayed", last.Decayed,
		"since_restart", g.generation-g.lastRestartGen,
	)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingEdges, stagnantCount, generation int, config utils.Config) (bool, string) {
	if livingEdges == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if generation > 0 && generation%periodicRestart == 0 {
		return true, "periodic refresh"
	}
	return false, ""
}

// restartGame seeds a new soup with the next seed
func (g *game) restartGame(reason string) {
	previous := g.runID
	g.seed++
	g.sim.Reset(g.newSoup())
	g.history.Reset()
	g.lastRestartGen = g.generation
	g.stagnantCount = 0

	board := g.sim.Board()
	slog.Info("restarting",
		"reason", reason,
		"previous_run", previous,
		"run", g.runID,
		"seed", g.seed,
		"live_edges", board.LiveCount(),
	)
}

// run is the main game loop. It returns when the context is cancelled or the
// generation limit is reached.
func (g *game) run(ctx context.Context) error {
	lastFrameTime := time.Now()
	for {
		frameStart := time.Now()

		livingEdges, status, isStagnant := g.updateGameState(lastFrameTime)
		lastFrameTime = frameStart

		if isStagnant {
			g.stagnantCount++
		} else {
			g.stagnantCount = 0
		}
		g.logGameStatus(status)

		if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
			slog.Info("reached maximum generations", "limit", g.config.MaxGenerations)
			return nil
		}

		shouldRestart, restartReason := checkRestartConditions(livingEdges, g.stagnantCount, g.generation, g.config)
		if shouldRestart && g.config.AutoRestart {
			g.restartGame(restartReason)
		} else if g.stagnantCount >= 2 && g.stagnantCount < g.config.StagnationThreshold {
			// Inject some life to try to break the stagnation
			g.sim.Edit(func(b *model.Board) {
				patterns.InjectRandom(b, g.config.SeedRadius, g.config.InjectionCount, g.rng)
			})
		}

		if err := g.sim.Step(); err != nil {
			return err
		}
		g.generation++

		if err := sleepCtx(ctx, g.config.FrameRate); err != nil {
			return nil
		}
	}
}

// report logs a summary of the latest published generation every
// StatsInterval. It runs beside the game loop and only touches sim.
func (g *game) report(ctx context.Context) error {
	if g.config.StatsInterval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(g.config.StatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			board := g.sim.Board()
			census := board.Census()
			slog.Info("snapshot",
				"sim_gen", g.sim.Generation(),
				"alive", census[model.Alive],
				"barren", census[model.Barren],
				"hexes", board.Len(),
			)
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
