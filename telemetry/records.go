package telemetry

import (
	"github.com/baldhumanity/neat-mario/agent"
	"github.com/baldhumanity/neat-mario/neat"
)

// GenerationRecord is one row of generations.csv.
type GenerationRecord struct {
	RunID           string  `csv:"run_id"`
	Generation      int     `csv:"generation"`
	Species         int     `csv:"species"`
	Population      int     `csv:"population"`
	MaxFitness      float64 `csv:"max_fitness"`
	MeanFitness     float64 `csv:"mean_fitness"`
	StdevFitness    float64 `csv:"stdev_fitness"`
	Culled          int     `csv:"culled"`
	StaleRemoved    int     `csv:"stale_removed"`
	WeakRemoved     int     `csv:"weak_removed"`
	ChildrenWithin  int     `csv:"children_within"`
	ChildrenBetween int     `csv:"children_between"`
	Mutated         int     `csv:"mutated"`
	MaxInnovation   int     `csv:"max_innovation"`
}

// EpisodeRecord is one row of episodes.csv.
type EpisodeRecord struct {
	RunID      string  `csv:"run_id"`
	Episode    int     `csv:"episode"`
	Generation int     `csv:"generation"`
	SpeciesIdx int     `csv:"species_index"`
	Individual int     `csv:"individual"`
	SpeciesID  int     `csv:"species_id"`
	Outcome    string  `csv:"outcome"`
	RawFitness float64 `csv:"raw_fitness"`
	Fitness    float64 `csv:"fitness"`
	MaxFitness float64 `csv:"max_fitness"`
	Ticks      int     `csv:"ticks"`
}

func generationRecord(runID string, s neat.GenerationStats) GenerationRecord {
	return GenerationRecord{
		RunID:           runID,
		Generation:      s.Generation,
		Species:         s.Species,
		Population:      s.Population,
		MaxFitness:      s.MaxFitness,
		MeanFitness:     s.MeanFitness,
		StdevFitness:    s.StdevFitness,
		Culled:          s.Culled,
		StaleRemoved:    s.StaleRemoved,
		WeakRemoved:     s.WeakRemoved,
		ChildrenWithin:  s.ChildrenWithin,
		ChildrenBetween: s.ChildrenBetween,
		Mutated:         s.Mutated,
		MaxInnovation:   s.MaxInnovation,
	}
}

func episodeRecord(runID string, r agent.FitnessReport) EpisodeRecord {
	return EpisodeRecord{
		RunID:      runID,
		Episode:    r.Episode,
		Generation: r.Generation,
		SpeciesIdx: r.Cursor.Species,
		Individual: r.Cursor.Individual,
		SpeciesID:  r.SpeciesID,
		Outcome:    r.Outcome.String(),
		RawFitness: r.RawFitness,
		Fitness:    r.Fitness,
		MaxFitness: r.MaxFitness,
		Ticks:      r.Ticks,
	}
}
