// Package patterns seeds boards with starting configurations.
package patterns

import (
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/sheikhrachel/hexlife/model"
)

// SoupConfig controls Soup
type SoupConfig struct {
	Radius  int64   // hexes within this distance of the origin are seeded
	Density float64 // average fraction of edges set alive
	Scale   float64 // noise frequency; larger means smaller clumps
	Seed    int64
}

// DefaultSoupConfig returns a medium-sized, fairly sparse soup
func DefaultSoupConfig() SoupConfig {
	return SoupConfig{Radius: 12, Density: 0.15, Scale: 0.2, Seed: 42}
}

// Soup sets edges alive around the origin. Each edge comes alive with
// probability Density scaled by a smooth noise field, so live edges clump
// together instead of spreading evenly. The same config always produces the
// same soup. It returns how many edges it set.
func Soup(b *model.Board, cfg SoupConfig) int {
	noise := opensimplex.NewNormalized(cfg.Seed)
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 1))

	set := 0
	for _, c := range Within(model.HexCoord{}, cfg.Radius) {
		// Normalized noise averages one half, so doubling keeps the mean
		// density at cfg.Density.
		local := cfg.Density * 2 * noise.Eval2(float64(c.Q)*cfg.Scale, float64(c.R)*cfg.Scale)
		for _, e := range model.EdgeDirs {
			if rng.Float64() < local {
				b.SetAlive(model.EdgeAt(c, e), model.Alive)
				set++
			}
		}
	}
	return set
}

// InjectRandom picks count random edges within radius of the origin and sets
// them alive. Picks may repeat.
func InjectRandom(b *model.Board, radius int64, count int, rng *rand.Rand) {
	hexes := Within(model.HexCoord{}, radius)
	for range count {
		c := hexes[rng.IntN(len(hexes))]
		e := model.EdgeDirs[rng.IntN(len(model.EdgeDirs))]
		b.SetAlive(model.EdgeAt(c, e), model.Alive)
	}
}

// Ring sets the six edges around one hex alive
func Ring(b *model.Board, center model.HexCoord) {
	for _, d := range model.Directions {
		b.SetAlive(model.NewEdgePos(center, d), model.Alive)
	}
}

// Within lists the hexes at most radius steps from center. A negative radius
// is treated as zero.
func Within(center model.HexCoord, radius int64) []model.HexCoord {
	radius = max(radius, 0)
	out := make([]model.HexCoord, 0, 3*radius*(radius+1)+1)
	for q := -radius; q <= radius; q++ {
		for r := max(-radius, -q-radius); r <= min(radius, -q+radius); r++ {
			out = append(out, center.Add(model.HexCoord{Q: q, R: r}))
		}
	}
	return out
}
