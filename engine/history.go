package engine

import "github.com/sheikhrachel/hexlife/model"

// stagnationWindow is how many previous generations a board is compared
// against, which catches still lifes and oscillators of period up to three
const stagnationWindow = 3

// History remembers the hashes of recent generations to spot boards that
// have stopped changing.
type History struct {
	size   int
	hashes []uint64
}

// NewHistory keeps up to size hashes, never fewer than the stagnation window
func NewHistory(size int) *History {
	size = max(size, stagnationWindow)
	return &History{size: size, hashes: make([]uint64, 0, size)}
}

// Record compares the board against recent generations and then remembers
// it. It reports whether the board repeats one of them.
func (h *History) Record(b *model.Board) bool {
	hash := b.Hash()
	stagnant := h.seen(hash)

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

func (h *History) seen(hash uint64) bool {
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-stagnationWindow; i-- {
		if h.hashes[i] == hash {
			return true
		}
	}
	return false
}

// Len returns how many generations are remembered
func (h *History) Len() int {
	return len(h.hashes)
}

// Reset forgets every recorded generation
func (h *History) Reset() {
	h.hashes = h.hashes[:0]
}
