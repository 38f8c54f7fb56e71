package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	PeakPopulation       int
	TotalGenerations     int
	StartTime            time.Time
	LiveEdges            int
	Hexes                int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation's population and how long it took
func (s *Stats) Update(generation int, population, hexes int, duration time.Duration) {
	s.TotalGenerations = generation
	s.LiveEdges = population
	s.Hexes = hexes
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}
	s.PeakPopulation = max(s.PeakPopulation, population)

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Summary renders the stats for a status line
func (s *Stats) Summary() string {
	return fmt.Sprintf("%s generations | %s live edges on %s hexes | peak %s | avg %.1f | %.1f gen/sec",
		humanize.Comma(int64(s.TotalGenerations)),
		humanize.Comma(int64(s.LiveEdges)),
		humanize.Comma(int64(s.Hexes)),
		humanize.Comma(int64(s.PeakPopulation)),
		s.AveragePopulation,
		s.GenerationsPerSecond,
	)
}
