package neat

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises the population at the end of a generation transition.
type GenerationStats struct {
	Generation      int     // Generation number after the transition.
	Species         int     // Species count after the transition.
	Population      int     // Genome count after the transition.
	MaxFitness      float64 // Global max fitness of the evaluated generation.
	MeanFitness     float64 // Mean fitness of the evaluated generation.
	StdevFitness    float64 // Sample standard deviation of the evaluated generation.
	Culled          int     // Genomes removed by culling.
	StaleRemoved    int     // Species removed for staleness.
	WeakRemoved     int     // Species removed for weakness.
	ChildrenWithin  int     // Children bred within species.
	ChildrenBetween int     // Children bred between species.
	Mutated         int     // Genomes mutated in the mutation pass.
	MaxInnovation   int     // Innovation counter after the mutation pass.
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("species", s.Species),
		slog.Int("population", s.Population),
		slog.Float64("max_fitness", s.MaxFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("stdev_fitness", s.StdevFitness),
		slog.Int("culled", s.Culled),
		slog.Int("stale_removed", s.StaleRemoved),
		slog.Int("weak_removed", s.WeakRemoved),
		slog.Int("children_within", s.ChildrenWithin),
		slog.Int("children_between", s.ChildrenBetween),
		slog.Int("mutated", s.Mutated),
		slog.Int("max_innovation", s.MaxInnovation),
	)
}

// FitnessSummary returns the max, mean and sample standard deviation of the
// member fitnesses of every species in the set.
func FitnessSummary(speciesSet *SpeciesSet) (maxFitness, mean, stdev float64) {
	fitnesses := make([]float64, 0, speciesSet.Population())
	for _, sp := range speciesSet.Species {
		fitnesses = append(fitnesses, sp.GetFitnesses()...)
	}
	if len(fitnesses) == 0 {
		return 0, 0, 0
	}
	maxFitness = floats.Max(fitnesses)
	if len(fitnesses) < 2 {
		return maxFitness, fitnesses[0], 0
	}
	mean, stdev = stat.MeanStdDev(fitnesses, nil)
	return maxFitness, mean, stdev
}
