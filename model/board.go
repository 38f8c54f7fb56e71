package model

import (
	"cmp"
	"encoding/binary"
	"iter"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Board is a sparse store of edge states keyed by hex.
//
// A coordinate is present only while at least one of its edges is not Dead,
// so memory follows the live structure rather than the explored area. Board
// does no locking; callers own it exclusively.
type Board struct {
	cells map[HexCoord]uint8
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{cells: make(map[HexCoord]uint8)}
}

// Liveness returns the state of an edge. Edges of absent hexes are Dead.
func (b *Board) Liveness(pos EdgePos) Aliveness {
	packed, ok := b.cells[pos.coord]
	if !ok {
		return Dead
	}
	return UnpackEdges(packed).Get(pos.edge)
}

// IsAlive reports whether an edge is Alive
func (b *Board) IsAlive(pos EdgePos) bool {
	return b.Liveness(pos) == Alive
}

// SetAlive sets the state of one edge
func (b *Board) SetAlive(pos EdgePos, a Aliveness) {
	packed, ok := b.cells[pos.coord]
	if !ok && a == Dead {
		// Nothing to kill
		return
	}

	state := UnpackEdges(packed)
	state.Set(pos.edge, a)
	if state.IsDead() {
		delete(b.cells, pos.coord)
		return
	}
	b.cells[pos.coord] = state.Pack()
}

// Toggle turns a Dead or Barren edge Alive and an Alive edge Dead
func (b *Board) Toggle(pos EdgePos) {
	if b.Liveness(pos) == Alive {
		b.SetAlive(pos, Dead)
		return
	}
	b.SetAlive(pos, Alive)
}

// Edges returns the three edges stored at a hex. The second result is false
// when the hex holds nothing, which means all three edges are Dead.
func (b *Board) Edges(c HexCoord) (EdgesState, bool) {
	packed, ok := b.cells[c]
	if !ok {
		return EdgesState{}, false
	}
	return UnpackEdges(packed), true
}

// Clear removes every edge from the board
func (b *Board) Clear() {
	clear(b.cells)
}

// Len returns the number of hexes holding at least one non-dead edge
func (b *Board) Len() int {
	return len(b.cells)
}

// LiveCount returns the number of Alive edges
func (b *Board) LiveCount() (count int) {
	for _, packed := range b.cells {
		for _, a := range UnpackEdges(packed) {
			if a == Alive {
				count++
			}
		}
	}
	return
}

// Census counts edge states over the hexes the board holds, indexed by
// Aliveness. Dead edges of absent hexes are not counted.
func (b *Board) Census() (counts [3]int) {
	for _, packed := range b.cells {
		for _, a := range UnpackEdges(packed) {
			counts[a]++
		}
	}
	return
}

// All iterates over held hexes in no particular order
func (b *Board) All() iter.Seq2[HexCoord, EdgesState] {
	return func(yield func(HexCoord, EdgesState) bool) {
		for c, packed := range b.cells {
			if !yield(c, UnpackEdges(packed)) {
				return
			}
		}
	}
}

// Coords returns the held hexes sorted by Q then R
func (b *Board) Coords() []HexCoord {
	return slices.SortedFunc(maps.Keys(b.cells), compareCoords)
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	return &Board{cells: maps.Clone(b.cells)}
}

// Equal reports whether two boards hold the same edges
func (b *Board) Equal(o *Board) bool {
	return maps.Equal(b.cells, o.cells)
}

// Hash returns a digest of the board contents that does not depend on map
// iteration order
func (b *Board) Hash() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 17)
	for _, c := range b.Coords() {
		buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(c.Q))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(c.R))
		buf = append(buf, b.cells[c])
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

func compareCoords(a, b HexCoord) int {
	if c := cmp.Compare(a.Q, b.Q); c != 0 {
		return c
	}
	return cmp.Compare(a.R, b.R)
}
