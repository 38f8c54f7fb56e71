// Package engine advances an edge board by one generation under a rule.
//
// A step runs in two phases. The first scans every held hex and records, per
// edge position, either an unconditional decay (Barren edges) or a count of
// live neighbours. The second judges every recorded position against the
// board as it was before the step and only then writes the results, so no
// edge ever sees a value written during its own generation.
package engine

import (
	"fmt"
	"runtime"

	"github.com/sheikhrachel/hexlife/model"
	"github.com/sheikhrachel/hexlife/rules"
)

// defaultParallelMin is the board size, in hexes, below which sharding costs
// more than it saves
const defaultParallelMin = 2048

// Engine steps boards. It keeps no per-board state, so one Engine may step
// different boards from different goroutines.
type Engine struct {
	workers     int
	refractory  bool
	parallelMin int
	pool        *updatePool
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers sets how many goroutines share the neighbour counting of large
// boards. Values below 2 keep the step on the calling goroutine.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithRefractory chooses between the three-state model, where a dying edge
// spends one generation Barren, and the two-state model, where it dies at
// once. The three-state model is the default.
func WithRefractory(on bool) Option {
	return func(e *Engine) {
		e.refractory = on
	}
}

// New creates an Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		workers:     1,
		refractory:  true,
		parallelMin: defaultParallelMin,
		pool:        newUpdatePool(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewParallel creates an Engine using one worker per CPU
func NewParallel(opts ...Option) *Engine {
	return New(append([]Option{WithWorkers(runtime.NumCPU())}, opts...)...)
}

// Refractory reports whether dying edges pass through Barren
func (e *Engine) Refractory() bool {
	return e.refractory
}

// Stats describes what one step did
type Stats struct {
	Evaluated int // edge positions judged
	Born      int // Dead to Alive
	Died      int // Alive to Barren or Dead
	Decayed   int // Barren to Dead
}

// InvariantError reports pending-update bookkeeping that cannot come from a
// valid board. The board is left as it was before the step.
type InvariantError struct {
	Pos model.EdgePos
	Err error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("engine: invariant violated at %s: %v", e.Pos, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

type write struct {
	pos   model.EdgePos
	state model.Aliveness
}

// Step advances the board by one generation
func (e *Engine) Step(board *model.Board, rule rules.Rule) (Stats, error) {
	u := e.pool.Get()
	defer e.pool.Put(u)

	if err := e.accumulate(u, board, rule.Region()); err != nil {
		return Stats{}, err
	}

	writes, stats, err := e.decide(u, board, rule)
	if err != nil {
		return Stats{}, err
	}
	for _, w := range writes {
		board.SetAlive(w.pos, w.state)
	}
	return stats, nil
}

// decide works out the next state of every pending position without touching
// the board
func (e *Engine) decide(u updates, board *model.Board, rule rules.Rule) ([]write, Stats, error) {
	stats := Stats{Evaluated: len(u)}
	writes := make([]write, 0, len(u)/2)

	for pos, p := range u {
		current := board.Liveness(pos)

		next := model.Dead
		if !p.decay {
			var err error
			if next, err = rule.Next(current, int(p.count), e.refractory); err != nil {
				return nil, Stats{}, &InvariantError{Pos: pos, Err: err}
			}
		}
		if next == current {
			continue
		}

		switch {
		case current == model.Barren:
			stats.Decayed++
		case next == model.Alive:
			stats.Born++
		default:
			stats.Died++
		}
		writes = append(writes, write{pos: pos, state: next})
	}
	return writes, stats, nil
}

var defaultEngine = New()

// ApplyRule advances the board by one generation on the calling goroutine
// using the three-state model
func ApplyRule(board *model.Board, rule rules.Rule) error {
	_, err := defaultEngine.Step(board, rule)
	return err
}
