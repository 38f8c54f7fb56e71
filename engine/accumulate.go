package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/hexlife/model"
	"github.com/sheikhrachel/hexlife/rules"
)

// pending is what happens to one edge this generation: either a Barren edge
// decays, or the edge is judged on its count of live neighbours.
type pending struct {
	decay bool
	count uint8
}

// ensure makes sure the edge is judged even if nothing alive touches it
func (u updates) ensure(pos model.EdgePos) {
	if _, ok := u[pos]; !ok {
		u[pos] = pending{}
	}
}

func (u updates) bump(pos model.EdgePos) {
	p := u[pos]
	if p.decay {
		return
	}
	p.count++
	u[pos] = p
}

// merge adds the entries of o into u. Counts from disjoint shards of the
// board add up to the counts of a single pass.
func (u updates) merge(o updates) {
	for pos, p := range o {
		cur, ok := u[pos]
		switch {
		case !ok || p.decay:
			u[pos] = p
		case cur.decay:
			// decay wins
		default:
			cur.count += p.count
			u[pos] = cur
		}
	}
}

// accumulateHex records the pending updates caused by the three edges of one
// hex. buf is scratch space for neighbour lists and is returned for reuse.
func accumulateHex(
	dst updates,
	board *model.Board,
	region rules.NeighborRegion,
	coord model.HexCoord,
	state model.EdgesState,
	buf []model.EdgePos,
) []model.EdgePos {
	for _, e := range model.EdgeDirs {
		here := model.EdgeAt(coord, e)
		switch state.Get(e) {
		case model.Barren:
			dst[here] = pending{decay: true}
		case model.Dead:
			dst.ensure(here)
		case model.Alive:
			dst.ensure(here)
			buf = region.AppendNeighbors(buf[:0], here)
			for _, n := range buf {
				// Barren edges neither count nor get counted
				if board.Liveness(n) != model.Barren {
					dst.bump(n)
				}
			}
		}
	}
	return buf
}

// accumulate runs the first phase of a step over the whole board
func (e *Engine) accumulate(dst updates, board *model.Board, region rules.NeighborRegion) error {
	if e.workers <= 1 || board.Len() < e.parallelMin {
		buf := make([]model.EdgePos, 0, region.Count())
		for coord, state := range board.All() {
			buf = accumulateHex(dst, board, region, coord, state, buf)
		}
		return nil
	}
	return e.accumulateParallel(dst, board, region)
}

// accumulateParallel shards the board's hexes across workers, each filling
// its own map, and merges the maps once every worker is done. The board is
// only read while workers run.
func (e *Engine) accumulateParallel(dst updates, board *model.Board, region rules.NeighborRegion) error {
	coords := make([]model.HexCoord, 0, board.Len())
	for coord := range board.All() {
		coords = append(coords, coord)
	}
	if len(coords) == 0 {
		return nil
	}

	var (
		eg             errgroup.Group
		numWorkers     = min(e.workers, len(coords))
		coordsPerShard = (len(coords) + numWorkers - 1) / numWorkers // Ceiling division
		shards         = make([]updates, numWorkers)
	)

	for i := range numWorkers {
		var (
			start = i * coordsPerShard
			end   = min(start+coordsPerShard, len(coords))
		)
		if start >= len(coords) {
			break
		}

		shard := e.pool.Get()
		shards[i] = shard
		eg.Go(func() error {
			buf := make([]model.EdgePos, 0, region.Count())
			for _, coord := range coords[start:end] {
				state, _ := board.Edges(coord)
				buf = accumulateHex(shard, board, region, coord, state, buf)
			}
			return nil
		})
	}

	err := eg.Wait()
	for _, shard := range shards {
		if shard == nil {
			continue
		}
		if err == nil {
			dst.merge(shard)
		}
		e.pool.Put(shard)
	}
	return err
}
