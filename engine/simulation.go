package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sheikhrachel/hexlife/model"
	"github.com/sheikhrachel/hexlife/rules"
)

// Simulation owns a board that readers on other goroutines can look at while
// it is being stepped or edited.
//
// Every change is made to a private copy which is then published with one
// atomic swap, so a board returned by Board never changes and never shows a
// half-finished generation. Writers are serialized.
type Simulation struct {
	engine *Engine

	mu   sync.Mutex // serializes writers
	rule rules.Rule

	board      atomic.Pointer[model.Board]
	generation atomic.Uint64
	last       atomic.Pointer[Stats]
}

// NewSimulation wraps board, which the Simulation takes ownership of
func NewSimulation(e *Engine, rule rules.Rule, board *model.Board) *Simulation {
	if board == nil {
		board = model.NewBoard()
	}
	s := &Simulation{engine: e, rule: rule}
	s.board.Store(board)
	return s
}

// Board returns the current generation. Callers must treat it as read-only.
func (s *Simulation) Board() *model.Board {
	return s.board.Load()
}

// Generation returns how many steps have been published
func (s *Simulation) Generation() uint64 {
	return s.generation.Load()
}

// LastStats returns the stats of the most recent step
func (s *Simulation) LastStats() Stats {
	if st := s.last.Load(); st != nil {
		return *st
	}
	return Stats{}
}

// Rule returns the rule used by Step
func (s *Simulation) Rule() rules.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rule
}

// SetRule changes the rule used by later steps
func (s *Simulation) SetRule(r rules.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rule = r
}

// Step advances one generation. On error nothing is published.
func (s *Simulation) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.board.Load().Clone()
	stats, err := s.engine.Step(next, s.rule)
	if err != nil {
		return err
	}
	s.last.Store(&stats)
	s.board.Store(next)
	s.generation.Add(1)
	return nil
}

// Run steps until n generations have been published, the context is
// cancelled or a step fails. n <= 0 runs until cancelled. The context is only
// checked between generations.
func (s *Simulation) Run(ctx context.Context, n int) error {
	for i := 0; n <= 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Edit applies fn to a copy of the current board and publishes the result
func (s *Simulation) Edit(fn func(b *model.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.board.Load().Clone()
	fn(next)
	s.board.Store(next)
}

// Set sets one edge
func (s *Simulation) Set(pos model.EdgePos, a model.Aliveness) {
	s.Edit(func(b *model.Board) { b.SetAlive(pos, a) })
}

// Toggle flips one edge between Alive and Dead
func (s *Simulation) Toggle(pos model.EdgePos) {
	s.Edit(func(b *model.Board) { b.Toggle(pos) })
}

// Clear empties the board and resets the generation counter
func (s *Simulation) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.Store(model.NewBoard())
	s.generation.Store(0)
	s.last.Store(nil)
}

// Reset replaces the board, taking ownership of it, and resets the
// generation counter
func (s *Simulation) Reset(board *model.Board) {
	if board == nil {
		board = model.NewBoard()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.Store(board)
	s.generation.Store(0)
	s.last.Store(nil)
}
