package neat

import (
	"fmt"
	"time"
)

// Population holds the state of the evolutionary process: the species, the
// generation counter, and the cursor naming the genome currently on trial.
//
// A Population is not safe for concurrent use; one goroutine drives it.
type Population struct {
	Config       *Config
	SpeciesSet   *SpeciesSet
	Stagnation   *Stagnation
	Reproduction *Reproduction
	Generation   int
	MaxFitness   float64 // Global max fitness as of the last generation transition.
	NumInputs    int
	NumOutputs   int

	cursor     Cursor
	innovation int // Highest innovation number ever handed out.
	reporters  []Reporter
}

// NewPopulation creates a Population seeded with two single-genome species.
// rng drives every random choice of the engine; pass a seeded source for
// reproducible runs.
func NewPopulation(config *Config, numInputs, numOutputs int, rng Rand) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if numInputs <= 0 || numOutputs <= 0 {
		return nil, fmt.Errorf("population needs at least one input and one output node (got %d, %d)", numInputs, numOutputs)
	}

	speciesSet := NewSpeciesSet(&config.Speciation)
	reproduction := NewReproduction(config, rng)
	reproduction.CreateSeedPopulation(speciesSet, numInputs, numOutputs)

	p := &Population{
		Config:       config,
		SpeciesSet:   speciesSet,
		Stagnation:   NewStagnation(&config.Population),
		Reproduction: reproduction,
		NumInputs:    numInputs,
		NumOutputs:   numOutputs,
		innovation:   speciesSet.MaxInnovation(),
	}
	return p, nil
}

// AddReporter registers a reporter called after every generation transition.
func (p *Population) AddReporter(r Reporter) {
	p.reporters = append(p.reporters, r)
}

// Cursor returns the position of the genome currently on trial.
func (p *Population) Cursor() Cursor {
	return p.cursor
}

// Innovation returns the highest innovation number handed out so far.
func (p *Population) Innovation() int {
	return p.innovation
}

// Size returns the number of genomes across all species.
func (p *Population) Size() int {
	return p.SpeciesSet.Population()
}

// CurrentSpecies returns the species of the genome currently on trial.
func (p *Population) CurrentSpecies() (*Species, error) {
	if len(p.SpeciesSet.Species) == 0 {
		return nil, ErrEmptyPool
	}
	if !p.cursor.valid(p.SpeciesSet) {
		return nil, fmt.Errorf("cursor %s: %w", p.cursor, ErrEmptySpecies)
	}
	return p.SpeciesSet.Species[p.cursor.Species], nil
}

// Current returns the genome currently on trial.
func (p *Population) Current() (*Genome, error) {
	sp, err := p.CurrentSpecies()
	if err != nil {
		return nil, err
	}
	return sp.Members[p.cursor.Individual], nil
}

// Record stores the fitness of the genome currently on trial and returns the
// value stored. With fitness sharing enabled, fitness is divided by the size
// of the genome's species once that species reaches SharingMinSize members.
func (p *Population) Record(fitness float64) (float64, error) {
	sp, err := p.CurrentSpecies()
	if err != nil {
		return 0, err
	}
	if p.Config.Population.FitnessSharing && sp.Size() >= p.Config.Population.SharingMinSize {
		fitness /= float64(sp.Size())
	}
	sp.Members[p.cursor.Individual].Fitness = fitness
	return fitness, nil
}

// Advance moves the cursor to the next genome. When the cursor was on the last
// genome of the last species, a generation transition runs first and the
// cursor restarts at the first genome; wrapped is true in that case.
func (p *Population) Advance() (wrapped bool, err error) {
	if !p.cursor.valid(p.SpeciesSet) {
		if len(p.SpeciesSet.Species) == 0 {
			return false, ErrEmptyPool
		}
		return false, fmt.Errorf("cursor %s: %w", p.cursor, ErrEmptySpecies)
	}

	next, wrapped := p.cursor.next(p.SpeciesSet)
	if wrapped {
		if _, err := p.NextGeneration(); err != nil {
			return false, err
		}
	}
	p.cursor = next
	return wrapped, nil
}

// NextGeneration runs one generation transition: culling, stale and weak
// species removal, within- and between-species crossover, and the mutation
// pass. It is normally triggered by Advance; calling it directly resets the
// cursor to the first genome.
func (p *Population) NextGeneration() (GenerationStats, error) {
	if p.SpeciesSet.Population() == 0 {
		return GenerationStats{}, ErrEmptyPool
	}
	start := time.Now()

	// 1. Global max fitness.
	maxFitness, meanFitness, stdevFitness := FitnessSummary(p.SpeciesSet)
	p.MaxFitness = maxFitness

	// 2. Sort members fittest first.
	for _, sp := range p.SpeciesSet.Species {
		sp.Sort()
	}

	// 3. Cull the bottom half of every species.
	before := p.SpeciesSet.Population()
	p.Reproduction.Cull(p.SpeciesSet)
	culled := before - p.SpeciesSet.Population()

	// 4. Remove stale species, sparing the one holding the global best.
	stale := p.Stagnation.RemoveStale(p.SpeciesSet, p.MaxFitness)

	// 5. Remove weak species when there are too many.
	weak := p.Stagnation.RemoveWeak(p.SpeciesSet)

	// 6. and 7. Breed within and then between species.
	within := p.Reproduction.CrossoverWithinSpecies(p.SpeciesSet)
	between := p.Reproduction.CrossoverBetweenSpecies(p.SpeciesSet)

	// 8. Mutation pass; the counter never goes back, even if the genes
	// carrying the highest innovation numbers were culled.
	innovation := max(p.innovation, p.SpeciesSet.MaxInnovation())
	innovation, mutated := p.Reproduction.MutatePass(p.SpeciesSet, innovation)
	p.innovation = innovation

	// 9. Next generation.
	p.Generation++
	p.cursor = Cursor{}

	stats := GenerationStats{
		Generation:      p.Generation,
		Species:         len(p.SpeciesSet.Species),
		Population:      p.SpeciesSet.Population(),
		MaxFitness:      maxFitness,
		MeanFitness:     meanFitness,
		StdevFitness:    stdevFitness,
		Culled:          culled,
		StaleRemoved:    len(stale),
		WeakRemoved:     len(weak),
		ChildrenWithin:  within,
		ChildrenBetween: between,
		Mutated:         mutated,
		MaxInnovation:   innovation,
	}
	logger().Info("generation complete", "stats", stats, "elapsed", time.Since(start))

	for _, r := range p.reporters {
		r.GenerationEnd(stats)
	}
	return stats, nil
}

// BestGenome returns the fittest genome in the population.
func (p *Population) BestGenome() *Genome {
	var best *Genome
	for _, sp := range p.SpeciesSet.Species {
		if rep := sp.Representative(); rep != nil && (best == nil || rep.Fitness > best.Fitness) {
			best = rep
		}
	}
	return best
}
